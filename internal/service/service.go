package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"rentalmarket-backend/internal/domain"
	"rentalmarket-backend/internal/pricing"
)

type QuoteRequest struct {
	ItemID  string           `json:"item_id"`
	From    time.Time        `json:"from"`
	To      time.Time        `json:"to"`
	Options domain.OptionSet `json:"options"`
}

// Quote is the full price of a prospective booking. Amounts are in minor units of
// the platform currency except DisplayTotal.
type Quote struct {
	ItemID       string                 `json:"item_id"`
	Days         int                    `json:"days"`
	Base         decimal.Decimal        `json:"base"`
	Options      decimal.Decimal        `json:"options"`
	Total        decimal.Decimal        `json:"total"`
	DisplayTotal decimal.Decimal        `json:"display_total"`
	Breakdown    pricing.RateBreakdown  `json:"breakdown"`
	Charges      []pricing.OptionCharge `json:"charges"`
}

type CreateBookingRequest struct {
	QuoteRequest
	DriverID          string                   `json:"driver_id"`
	PickupLocationID  string                   `json:"pickup_location_id"`
	DropOffLocationID string                   `json:"drop_off_location_id"`
	AdditionalDriver  *domain.AdditionalDriver `json:"additional_driver,omitempty"`
	PayNow            bool                     `json:"pay_now"`
}

type BookingService interface {
	Quote(ctx context.Context, req QuoteRequest) (*Quote, error)
	CreateBooking(ctx context.Context, actor domain.Actor, req CreateBookingRequest) (*domain.Booking, error)
	GetBooking(ctx context.Context, actor domain.Actor, id string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, actor domain.Actor, id string, status domain.BookingStatus, recompute bool) (*domain.Booking, error)
	CancellationFee(ctx context.Context, actor domain.Actor, id string) (decimal.Decimal, error)
	DeleteBookings(ctx context.Context, actor domain.Actor, ids []string) (int64, error)
	ListBookings(ctx context.Context, actor domain.Actor, filter domain.BookingFilter) ([]domain.Booking, int32, error)
}

type ItemService interface {
	CreateItem(ctx context.Context, actor domain.Actor, item *domain.Item) error
	UpdateItem(ctx context.Context, actor domain.Actor, item *domain.Item) error
	GetItem(ctx context.Context, id string) (*domain.Item, error)
	ListItems(ctx context.Context, supplierID string, page, pageSize int32) ([]domain.Item, int32, error)
	IsReferenced(ctx context.Context, id string) (bool, error)
	DeleteItem(ctx context.Context, actor domain.Actor, id string) error
	DescribeOptions(ctx context.Context, id string) ([]pricing.OptionTag, error)
}
