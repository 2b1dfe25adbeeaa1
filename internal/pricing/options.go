package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"rentalmarket-backend/internal/domain"
)

var ErrOptionNotOffered = errors.New("option not offered")

// OptionNotOfferedError names the option a caller tried to purchase on an item
// that does not offer it.
type OptionNotOfferedError struct {
	Option Option
}

func (e *OptionNotOfferedError) Error() string {
	return fmt.Sprintf("option %s is not offered for this item", e.Option)
}

func (e *OptionNotOfferedError) Is(target error) bool {
	return target == ErrOptionNotOffered
}

type Option string

const (
	OptionCancellation          Option = "cancellation"
	OptionAmendments            Option = "amendments"
	OptionTheftProtection       Option = "theft_protection"
	OptionCollisionDamageWaiver Option = "collision_damage_waiver"
	OptionFullInsurance         Option = "full_insurance"
	OptionAdditionalDriver      Option = "additional_driver"
)

// OptionKind classifies how an option is priced on an item
type OptionKind int

const (
	Unavailable OptionKind = iota
	Included
	Priced
)

func (k OptionKind) String() string {
	switch k {
	case Included:
		return "included"
	case Priced:
		return "priced"
	default:
		return "unavailable"
	}
}

func (k OptionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// OptionTag is the display classification of a single option. Booking forms and
// price breakdowns both derive from it.
type OptionTag struct {
	Option Option          `json:"option,omitempty"`
	Kind   OptionKind      `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
	PerDay bool            `json:"per_day"`
}

// OptionCharge is one purchased option line of a price breakdown
type OptionCharge struct {
	OptionTag
	Days  int             `json:"days"`
	Total decimal.Decimal `json:"total"`
}

type optionRule struct {
	option   Option
	perDay   bool
	value    func(item *domain.Item) int64
	selected func(set domain.OptionSet) bool
}

var optionRules = []optionRule{
	{OptionCancellation, false,
		func(i *domain.Item) int64 { return i.Cancellation },
		func(s domain.OptionSet) bool { return s.Cancellation }},
	{OptionAmendments, false,
		func(i *domain.Item) int64 { return i.Amendments },
		func(s domain.OptionSet) bool { return s.Amendments }},
	{OptionTheftProtection, true,
		func(i *domain.Item) int64 { return i.TheftProtection },
		func(s domain.OptionSet) bool { return s.TheftProtection }},
	{OptionCollisionDamageWaiver, true,
		func(i *domain.Item) int64 { return i.CollisionDamageWaiver },
		func(s domain.OptionSet) bool { return s.CollisionDamageWaiver }},
	{OptionFullInsurance, true,
		func(i *domain.Item) int64 { return i.FullInsurance },
		func(s domain.OptionSet) bool { return s.FullInsurance }},
	{OptionAdditionalDriver, true,
		func(i *domain.Item) int64 { return i.AdditionalDriver },
		func(s domain.OptionSet) bool { return s.AdditionalDriver }},
}

var hundred = decimal.NewFromInt(100)

// AdjustFee applies a supplier percentage rate to a raw option fee
func AdjustFee(fee int64, rate decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(rate.Div(hundred))
	return decimal.NewFromInt(fee).Mul(factor)
}

// DescribeOption classifies an option value. Any negative value is treated as
// not offered.
func DescribeOption(value int64, rate decimal.Decimal) OptionTag {
	switch {
	case value < 0:
		return OptionTag{Kind: Unavailable, Amount: decimal.Zero}
	case value == 0:
		return OptionTag{Kind: Included, Amount: decimal.Zero}
	default:
		return OptionTag{Kind: Priced, Amount: AdjustFee(value, rate)}
	}
}

// DescribeOptions returns the tag of every option of item, in display order
func DescribeOptions(item *domain.Item, rate decimal.Decimal) []OptionTag {
	tags := make([]OptionTag, 0, len(optionRules))
	for _, rule := range optionRules {
		tag := DescribeOption(rule.value(item), rate)
		tag.Option = rule.option
		tag.PerDay = rule.perDay
		tags = append(tags, tag)
	}
	return tags
}

// OptionCharges prices every selected option of a booking lasting days
func OptionCharges(item *domain.Item, days int, selected domain.OptionSet, rate decimal.Decimal) ([]OptionCharge, error) {
	if days < 1 {
		return nil, ErrInvalidRange
	}

	var charges []OptionCharge
	for _, rule := range optionRules {
		if !rule.selected(selected) {
			continue
		}

		tag := DescribeOption(rule.value(item), rate)
		tag.Option = rule.option
		tag.PerDay = rule.perDay

		charge := OptionCharge{OptionTag: tag, Days: 1, Total: decimal.Zero}
		switch tag.Kind {
		case Unavailable:
			return nil, &OptionNotOfferedError{Option: rule.option}
		case Priced:
			charge.Total = tag.Amount
			if rule.perDay {
				charge.Days = days
				charge.Total = tag.Amount.Mul(decimal.NewFromInt(int64(days)))
			}
		}
		charges = append(charges, charge)
	}
	return charges, nil
}

// ComputeOptionsTotal sums the price of the selected options
func ComputeOptionsTotal(item *domain.Item, days int, selected domain.OptionSet, rate decimal.Decimal) (decimal.Decimal, error) {
	charges, err := OptionCharges(item, days, selected, rate)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, c := range charges {
		total = total.Add(c.Total)
	}
	return total, nil
}

// CancellationFee returns the adjusted cancellation option fee of item. It is
// never applied automatically when a booking is cancelled.
func CancellationFee(item *domain.Item, rate decimal.Decimal) (decimal.Decimal, error) {
	tag := DescribeOption(item.Cancellation, rate)
	if tag.Kind == Unavailable {
		return decimal.Zero, &OptionNotOfferedError{Option: OptionCancellation}
	}
	return tag.Amount, nil
}
