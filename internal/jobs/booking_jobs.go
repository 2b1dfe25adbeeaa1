package jobs

import (
	"context"

	"rentalmarket-backend/internal/domain"
	"rentalmarket-backend/internal/lifecycle"
	"rentalmarket-backend/internal/logger"
)

const voidBatchSize = 200

// VoidExpiredBookings voids pending bookings left untouched for longer than the
// configured time to live
func (jr *JobRunner) VoidExpiredBookings() {
	jr.runWithRecovery("VoidExpiredBookings", func() {
		voided, err := jr.voidExpiredBookings(context.Background())
		if err != nil {
			logger.Error("Failed to void expired bookings", "error", err, "voided", voided)
			return
		}
		logger.Info("Voided expired bookings", "count", voided)
	})
}

func (jr *JobRunner) voidExpiredBookings(ctx context.Context) (int, error) {
	cutoff := jr.now().UTC().Add(-jr.config.PendingTTL())
	voided := 0

	for {
		bookings, err := jr.bookings.ListExpiredPending(ctx, cutoff, voidBatchSize)
		if err != nil {
			return voided, err
		}

		progressed := 0
		for i := range bookings {
			b := &bookings[i]
			next, err := lifecycle.Transition(b.Status, domain.BookingStatusVoid, domain.RoleAdmin)
			if err != nil {
				logger.WarnContext(ctx, "Skipping expired booking", "booking_id", b.ID, "error", err)
				continue
			}
			prev := b.Status
			b.Status = next
			ok, err := jr.bookings.UpdateStatusFrom(ctx, b, prev)
			if err != nil {
				logger.ErrorContext(ctx, "Failed to void booking", "booking_id", b.ID, "error", err)
				continue
			}
			if !ok {
				logger.InfoContext(ctx, "Booking changed before it could be voided", "booking_id", b.ID)
				continue
			}
			logger.Debug("Voided expired booking", "booking_id", b.ID, "pending_since", b.UpdatedAt)
			progressed++
		}
		voided += progressed

		// A short batch is the last one. A batch with no progress would be
		// returned again unchanged.
		if len(bookings) < voidBatchSize || progressed == 0 {
			return voided, nil
		}
	}
}
