package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"rentalmarket-backend/internal/domain"
)

// MockItemRepo
type MockItemRepo struct {
	mock.Mock
}

func (m *MockItemRepo) Create(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockItemRepo) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}
func (m *MockItemRepo) Update(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockItemRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockItemRepo) ListBySupplier(ctx context.Context, supplierID string, page, pageSize int32) ([]domain.Item, int32, error) {
	args := m.Called(ctx, supplierID, page, pageSize)
	return args.Get(0).([]domain.Item), args.Get(1).(int32), args.Error(2)
}

// MockSupplierRepo
type MockSupplierRepo struct {
	mock.Mock
}

func (m *MockSupplierRepo) GetByID(ctx context.Context, id string) (*domain.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) Update(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}
func (m *MockBookingRepo) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) ExistsByItem(ctx context.Context, itemID string) (bool, error) {
	args := m.Called(ctx, itemID)
	return args.Bool(0), args.Error(1)
}
func (m *MockBookingRepo) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockBookingRepo) UpdateStatusFrom(ctx context.Context, booking *domain.Booking, from domain.BookingStatus) (bool, error) {
	args := m.Called(ctx, booking, from)
	return args.Bool(0), args.Error(1)
}
func (m *MockBookingRepo) ListExpiredPending(ctx context.Context, before time.Time, limit int) ([]domain.Booking, error) {
	args := m.Called(ctx, before, limit)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
