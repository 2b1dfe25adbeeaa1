package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rentalmarket-backend/internal/config"
	"rentalmarket-backend/internal/domain"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	return m.Called(ctx, b).Error(0)
}
func (m *mockBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *mockBookingRepo) Update(ctx context.Context, b *domain.Booking) error {
	return m.Called(ctx, b).Error(0)
}
func (m *mockBookingRepo) List(ctx context.Context, f domain.BookingFilter) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *mockBookingRepo) ExistsByItem(ctx context.Context, itemID string) (bool, error) {
	args := m.Called(ctx, itemID)
	return args.Bool(0), args.Error(1)
}
func (m *mockBookingRepo) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}
func (m *mockBookingRepo) UpdateStatusFrom(ctx context.Context, b *domain.Booking, from domain.BookingStatus) (bool, error) {
	args := m.Called(ctx, b, from)
	return args.Bool(0), args.Error(1)
}
func (m *mockBookingRepo) ListExpiredPending(ctx context.Context, before time.Time, limit int) ([]domain.Booking, error) {
	args := m.Called(ctx, before, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func newTestRunner(repo *mockBookingRepo) *JobRunner {
	cfg := &config.Config{Booking: config.BookingConfig{PendingTTLMinutes: 60}}
	jr := NewJobRunner(repo, cfg)
	jr.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	return jr
}

func TestVoidExpiredBookings(t *testing.T) {
	ctx := context.Background()
	cutoff := time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC)

	t.Run("Voids every expired pending booking", func(t *testing.T) {
		repo := new(mockBookingRepo)
		jr := newTestRunner(repo)

		expired := []domain.Booking{
			{ID: "bk-1", Status: domain.BookingStatusPending},
			{ID: "bk-2", Status: domain.BookingStatusPending},
		}
		repo.On("ListExpiredPending", ctx, cutoff, voidBatchSize).Return(expired, nil)
		repo.On("UpdateStatusFrom", ctx, mock.MatchedBy(func(b *domain.Booking) bool {
			return b.Status == domain.BookingStatusVoid
		}), domain.BookingStatusPending).Return(true, nil)

		voided, err := jr.voidExpiredBookings(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, voided)
		repo.AssertNumberOfCalls(t, "UpdateStatusFrom", 2)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Booking paid meanwhile is not voided", func(t *testing.T) {
		repo := new(mockBookingRepo)
		jr := newTestRunner(repo)

		expired := []domain.Booking{
			{ID: "bk-1", Status: domain.BookingStatusPending},
			{ID: "bk-2", Status: domain.BookingStatusPending},
		}
		repo.On("ListExpiredPending", ctx, cutoff, voidBatchSize).Return(expired, nil)
		repo.On("UpdateStatusFrom", ctx, mock.MatchedBy(func(b *domain.Booking) bool {
			return b.ID == "bk-1"
		}), domain.BookingStatusPending).Return(false, nil)
		repo.On("UpdateStatusFrom", ctx, mock.MatchedBy(func(b *domain.Booking) bool {
			return b.ID == "bk-2"
		}), domain.BookingStatusPending).Return(true, nil)

		voided, err := jr.voidExpiredBookings(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, voided)
	})

	t.Run("Failed updates do not loop", func(t *testing.T) {
		repo := new(mockBookingRepo)
		jr := newTestRunner(repo)

		expired := make([]domain.Booking, voidBatchSize)
		for i := range expired {
			expired[i] = domain.Booking{ID: "bk", Status: domain.BookingStatusPending}
		}
		repo.On("ListExpiredPending", ctx, cutoff, voidBatchSize).Return(expired, nil)
		repo.On("UpdateStatusFrom", ctx, mock.Anything, domain.BookingStatusPending).Return(false, errors.New("connection reset"))

		voided, err := jr.voidExpiredBookings(ctx)
		require.NoError(t, err)
		assert.Zero(t, voided)
		repo.AssertNumberOfCalls(t, "ListExpiredPending", 1)
	})

	t.Run("List error", func(t *testing.T) {
		repo := new(mockBookingRepo)
		jr := newTestRunner(repo)
		repo.On("ListExpiredPending", ctx, cutoff, voidBatchSize).Return(nil, errors.New("db down"))

		_, err := jr.voidExpiredBookings(ctx)
		assert.Error(t, err)
	})

	t.Run("Job entry point recovers from panics", func(t *testing.T) {
		jr := newTestRunner(nil)
		jr.bookings = nil
		assert.NotPanics(t, jr.VoidExpiredBookings)
	})
}

func TestRunJob(t *testing.T) {
	repo := new(mockBookingRepo)
	jr := newTestRunner(repo)
	repo.On("ListExpiredPending", mock.Anything, mock.Anything, voidBatchSize).Return([]domain.Booking{}, nil)

	assert.NoError(t, jr.RunJob(JobVoidExpiredBookings))
	assert.Error(t, jr.RunJob("send-newsletter"))
}
