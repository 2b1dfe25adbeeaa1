package http_test

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"rentalmarket-backend/internal/domain"
	"rentalmarket-backend/internal/pricing"
	"rentalmarket-backend/internal/service"
)

// MockBookingService
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) Quote(ctx context.Context, req service.QuoteRequest) (*service.Quote, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Quote), args.Error(1)
}
func (m *MockBookingService) CreateBooking(ctx context.Context, actor domain.Actor, req service.CreateBookingRequest) (*domain.Booking, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) GetBooking(ctx context.Context, actor domain.Actor, id string) (*domain.Booking, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) UpdateStatus(ctx context.Context, actor domain.Actor, id string, status domain.BookingStatus, recompute bool) (*domain.Booking, error) {
	args := m.Called(ctx, actor, id, status, recompute)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) CancellationFee(ctx context.Context, actor domain.Actor, id string) (decimal.Decimal, error) {
	args := m.Called(ctx, actor, id)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockBookingService) DeleteBookings(ctx context.Context, actor domain.Actor, ids []string) (int64, error) {
	args := m.Called(ctx, actor, ids)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockBookingService) ListBookings(ctx context.Context, actor domain.Actor, filter domain.BookingFilter) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, actor, filter)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}

// MockItemService
type MockItemService struct {
	mock.Mock
}

func (m *MockItemService) CreateItem(ctx context.Context, actor domain.Actor, item *domain.Item) error {
	args := m.Called(ctx, actor, item)
	return args.Error(0)
}
func (m *MockItemService) UpdateItem(ctx context.Context, actor domain.Actor, item *domain.Item) error {
	args := m.Called(ctx, actor, item)
	return args.Error(0)
}
func (m *MockItemService) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}
func (m *MockItemService) ListItems(ctx context.Context, supplierID string, page, pageSize int32) ([]domain.Item, int32, error) {
	args := m.Called(ctx, supplierID, page, pageSize)
	return args.Get(0).([]domain.Item), args.Get(1).(int32), args.Error(2)
}
func (m *MockItemService) IsReferenced(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
func (m *MockItemService) DeleteItem(ctx context.Context, actor domain.Actor, id string) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}
func (m *MockItemService) DescribeOptions(ctx context.Context, id string) ([]pricing.OptionTag, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]pricing.OptionTag), args.Error(1)
}
