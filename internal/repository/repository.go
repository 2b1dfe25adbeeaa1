package repository

import (
	"context"
	"errors"
	"time"

	"rentalmarket-backend/internal/domain"
)

var ErrNotFound = errors.New("record not found")

type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id string) (*domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	Delete(ctx context.Context, id string) error
	ListBySupplier(ctx context.Context, supplierID string, page, pageSize int32) ([]domain.Item, int32, error)
}

type SupplierRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Supplier, error)
}

type BookingRepository interface {
	// Create stores the booking and its additional driver, if any, atomically.
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	// Update writes back status and price.
	Update(ctx context.Context, booking *domain.Booking) error
	List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, int32, error)
	ExistsByItem(ctx context.Context, itemID string) (bool, error)
	// DeleteMany removes bookings together with their additional drivers.
	DeleteMany(ctx context.Context, ids []string) (int64, error)
	// UpdateStatusFrom writes back the status only while the stored status is
	// still from. It reports false when another writer changed it first.
	UpdateStatusFrom(ctx context.Context, booking *domain.Booking, from domain.BookingStatus) (bool, error)
	// ListExpiredPending lists pending bookings untouched since before.
	ListExpiredPending(ctx context.Context, before time.Time, limit int) ([]domain.Booking, error)
}
