package pricing

import "github.com/shopspring/decimal"

// Converter turns an amount in the platform currency into the customer's display
// currency.
type Converter interface {
	Convert(amount decimal.Decimal) decimal.Decimal
}

// RateConverter converts with a fixed exchange rate and rounds to whole minor units
type RateConverter struct {
	rate decimal.Decimal
}

func NewRateConverter(rate decimal.Decimal) *RateConverter {
	if rate.IsZero() {
		rate = decimal.NewFromInt(1)
	}
	return &RateConverter{rate: rate}
}

func (c *RateConverter) Convert(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(c.rate).Round(0)
}
