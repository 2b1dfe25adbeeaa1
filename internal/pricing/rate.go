package pricing

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"rentalmarket-backend/internal/domain"
)

var (
	ErrInvalidRange     = errors.New("invalid rental range: end must be after start")
	ErrMissingRateTable = errors.New("missing rate table: item has no daily price")
)

// Tier identifies the duration bucket used to price a rental
type Tier string

const (
	TierDaily    Tier = "daily"
	TierWeekly   Tier = "weekly"
	TierBiWeekly Tier = "bi_weekly"
	TierMonthly  Tier = "monthly"
)

const (
	daysPerWeek   = 7
	daysPerBiWeek = 14
	daysPerMonth  = 30
)

// RateBreakdown provides detailed base rate breakdown
type RateBreakdown struct {
	Days          int             `json:"days"`
	Tier          Tier            `json:"tier"`
	Units         int             `json:"units"`
	UnitRate      decimal.Decimal `json:"unit_rate"`
	RemainderDays int             `json:"remainder_days"`
	DailyRate     decimal.Decimal `json:"daily_rate"`
	Total         decimal.Decimal `json:"total"`
}

type tierRule struct {
	tier Tier
	span int
	rate func(item *domain.Item) *int64
}

// Evaluated in order; the first bucket that fits the duration and has a rate wins.
var tierRules = []tierRule{
	{TierMonthly, daysPerMonth, func(i *domain.Item) *int64 { return effectiveRate(i.MonthlyPrice, i.DiscountedMonthlyPrice) }},
	{TierBiWeekly, daysPerBiWeek, func(i *domain.Item) *int64 { return effectiveRate(i.BiWeeklyPrice, i.DiscountedBiWeeklyPrice) }},
	{TierWeekly, daysPerWeek, func(i *domain.Item) *int64 { return effectiveRate(i.WeeklyPrice, i.DiscountedWeeklyPrice) }},
}

// effectiveRate prefers the discounted variant of a tier when it is set
func effectiveRate(nominal, discounted *int64) *int64 {
	if discounted != nil {
		return discounted
	}
	return nominal
}

// RentalDays returns the number of days spanned by [from, to). Partial days count
// as a full day.
func RentalDays(from, to time.Time) (int, error) {
	if !to.After(from) {
		return 0, ErrInvalidRange
	}

	const day = 24 * time.Hour
	span := to.Sub(from)
	days := int(span / day)
	if span%day != 0 {
		days++
	}
	return days, nil
}

// ComputeBaseRate calculates the base rental price of item for [from, to)
func ComputeBaseRate(item *domain.Item, from, to time.Time) (decimal.Decimal, error) {
	breakdown, err := ComputeBaseRateWithBreakdown(item, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	return breakdown.Total, nil
}

// ComputeBaseRateWithBreakdown calculates the base rental price and reports which
// tier was applied.
func ComputeBaseRateWithBreakdown(item *domain.Item, from, to time.Time) (RateBreakdown, error) {
	days, err := RentalDays(from, to)
	if err != nil {
		return RateBreakdown{}, err
	}
	if item == nil {
		return RateBreakdown{}, ErrMissingRateTable
	}

	daily := effectiveRate(item.DailyPrice, item.DiscountedDailyPrice)
	if daily == nil {
		return RateBreakdown{}, fmt.Errorf("%w (item %s)", ErrMissingRateTable, item.ID)
	}
	dailyRate := decimal.NewFromInt(*daily)

	for _, rule := range tierRules {
		if days < rule.span {
			continue
		}
		rate := rule.rate(item)
		if rate == nil {
			continue
		}

		units := days / rule.span
		remainder := days % rule.span
		unitRate := decimal.NewFromInt(*rate)
		unitsCost := unitRate.Mul(decimal.NewFromInt(int64(units)))
		remainderCost := dailyRate.Mul(decimal.NewFromInt(int64(remainder)))

		return RateBreakdown{
			Days:          days,
			Tier:          rule.tier,
			Units:         units,
			UnitRate:      unitRate,
			RemainderDays: remainder,
			DailyRate:     dailyRate,
			Total:         unitsCost.Add(remainderCost),
		}, nil
	}

	return RateBreakdown{
		Days:      days,
		Tier:      TierDaily,
		Units:     days,
		UnitRate:  dailyRate,
		DailyRate: dailyRate,
		Total:     dailyRate.Mul(decimal.NewFromInt(int64(days))),
	}, nil
}
