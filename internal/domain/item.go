package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ItemKind string

const (
	ItemKindCar   ItemKind = "car"
	ItemKindDress ItemKind = "dress"
)

// Option values: -1 not offered, 0 included, >0 fee in minor currency units.
const (
	OptionNotOffered int64 = -1
	OptionIncluded   int64 = 0
)

type Item struct {
	ID         string   `json:"id" db:"id"`
	SupplierID string   `json:"supplier_id" db:"supplier_id"`
	Kind       ItemKind `json:"kind" db:"kind"`
	Name       string   `json:"name" db:"name"`
	Available  bool     `json:"available" db:"available"`

	// Tiered price table, minor currency units. Nil means the tier is not set.
	DailyPrice              *int64 `json:"daily_price" db:"daily_price"`
	DiscountedDailyPrice    *int64 `json:"discounted_daily_price,omitempty" db:"discounted_daily_price"`
	WeeklyPrice             *int64 `json:"weekly_price,omitempty" db:"weekly_price"`
	DiscountedWeeklyPrice   *int64 `json:"discounted_weekly_price,omitempty" db:"discounted_weekly_price"`
	BiWeeklyPrice           *int64 `json:"bi_weekly_price,omitempty" db:"bi_weekly_price"`
	DiscountedBiWeeklyPrice *int64 `json:"discounted_bi_weekly_price,omitempty" db:"discounted_bi_weekly_price"`
	MonthlyPrice            *int64 `json:"monthly_price,omitempty" db:"monthly_price"`
	DiscountedMonthlyPrice  *int64 `json:"discounted_monthly_price,omitempty" db:"discounted_monthly_price"`

	Cancellation          int64 `json:"cancellation" db:"cancellation"`
	Amendments            int64 `json:"amendments" db:"amendments"`
	TheftProtection       int64 `json:"theft_protection" db:"theft_protection"`
	CollisionDamageWaiver int64 `json:"collision_damage_waiver" db:"collision_damage_waiver"`
	FullInsurance         int64 `json:"full_insurance" db:"full_insurance"`
	AdditionalDriver      int64 `json:"additional_driver" db:"additional_driver"`

	// Percentage applied on top of option fees; copied from the owning supplier.
	PriceChangeRate decimal.Decimal `json:"price_change_rate" db:"price_change_rate"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// OptionValues returns the six option fields in display order.
func (i *Item) OptionValues() []int64 {
	return []int64{
		i.Cancellation,
		i.Amendments,
		i.TheftProtection,
		i.CollisionDamageWaiver,
		i.FullInsurance,
		i.AdditionalDriver,
	}
}

type Supplier struct {
	ID              string          `json:"id" db:"id"`
	Name            string          `json:"name" db:"name"`
	PriceChangeRate decimal.Decimal `json:"price_change_rate" db:"price_change_rate"`
	PayLater        bool            `json:"pay_later" db:"pay_later"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
}
