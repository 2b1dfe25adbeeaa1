package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"rentalmarket-backend/internal/domain"
	"rentalmarket-backend/internal/logger"
	"rentalmarket-backend/internal/repository"
)

const bookingColumns = `id, item_id, supplier_id, driver_id, pickup_location_id, drop_off_location_id,
	from_date, to_date, status,
	cancellation, amendments, theft_protection, collision_damage_waiver, full_insurance, additional_driver,
	price, created_at, updated_at`

type bookingRepository struct {
	db *sqlx.DB
}

func NewBookingRepository(db *sqlx.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	b.CreatedAt, b.UpdatedAt = now, now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	logger.DatabaseCall("bookings.insert", query, "booking_id", b.ID)
	_, err = tx.ExecContext(ctx, query, b.ID, b.ItemID, b.SupplierID, b.DriverID, b.PickupLocationID, b.DropOffLocationID,
		b.From, b.To, b.Status,
		b.OptionSet.Cancellation, b.OptionSet.Amendments, b.OptionSet.TheftProtection,
		b.OptionSet.CollisionDamageWaiver, b.OptionSet.FullInsurance, b.OptionSet.AdditionalDriver,
		b.Price, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		logger.DatabaseResult("bookings.insert", 0, err, "booking_id", b.ID)
		return err
	}

	if d := b.AdditionalDriver; d != nil {
		if d.ID == "" {
			d.ID = uuid.NewString()
		}
		d.BookingID = b.ID
		driverQuery := `INSERT INTO additional_drivers (id, booking_id, full_name, email, phone, birth_date)
			VALUES ($1, $2, $3, $4, $5, $6)`
		if _, err := tx.ExecContext(ctx, driverQuery, d.ID, d.BookingID, d.FullName, d.Email, d.Phone, d.BirthDate); err != nil {
			logger.DatabaseResult("additional_drivers.insert", 0, err, "booking_id", b.ID)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	logger.DatabaseResult("bookings.insert", 1, nil, "booking_id", b.ID)
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	b := &domain.Booking{}
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	if err := r.db.GetContext(ctx, b, query, id); err != nil {
		return nil, notFound(err)
	}

	if b.OptionSet.AdditionalDriver {
		d := &domain.AdditionalDriver{}
		driverQuery := `SELECT id, booking_id, full_name, email, phone, birth_date FROM additional_drivers WHERE booking_id = $1`
		err := r.db.GetContext(ctx, d, driverQuery, id)
		switch {
		case err == nil:
			b.AdditionalDriver = d
		case err != sql.ErrNoRows:
			return nil, err
		}
	}
	return b, nil
}

func (r *bookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	b.UpdatedAt = time.Now().UTC()
	query := `UPDATE bookings SET status=$1, price=$2, updated_at=$3 WHERE id=$4`
	res, err := r.db.ExecContext(ctx, query, b.Status, b.Price, b.UpdatedAt, b.ID)
	if err != nil {
		logger.DatabaseResult("bookings.update", 0, err, "booking_id", b.ID)
		return err
	}
	return requireAffected(res)
}

func (r *bookingRepository) UpdateStatusFrom(ctx context.Context, b *domain.Booking, from domain.BookingStatus) (bool, error) {
	updatedAt := time.Now().UTC()
	query := `UPDATE bookings SET status=$1, updated_at=$2 WHERE id=$3 AND status=$4`
	res, err := r.db.ExecContext(ctx, query, b.Status, updatedAt, b.ID, from)
	if err != nil {
		logger.DatabaseResult("bookings.update_status", 0, err, "booking_id", b.ID)
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, nil
	}
	b.UpdatedAt = updatedAt
	return true, nil
}

func (r *bookingRepository) List(ctx context.Context, f domain.BookingFilter) ([]domain.Booking, int32, error) {
	where := ` WHERE 1=1`
	var args []interface{}
	argIdx := 1

	if f.SupplierID != "" {
		where += fmt.Sprintf(" AND supplier_id = $%d", argIdx)
		args = append(args, f.SupplierID)
		argIdx++
	}
	if f.DriverID != "" {
		where += fmt.Sprintf(" AND driver_id = $%d", argIdx)
		args = append(args, f.DriverID)
		argIdx++
	}
	if f.ItemID != "" {
		where += fmt.Sprintf(" AND item_id = $%d", argIdx)
		args = append(args, f.ItemID)
		argIdx++
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			statuses[i] = string(s)
		}
		where += fmt.Sprintf(" AND status = ANY($%d)", argIdx)
		args = append(args, pq.Array(statuses))
		argIdx++
	}

	var count int32
	if err := r.db.GetContext(ctx, &count, `SELECT count(*) FROM bookings`+where, args...); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, f.PageSize, offset(f.Page, f.PageSize))

	var bookings []domain.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, 0, err
	}
	return bookings, count, nil
}

// ExistsByItem reports whether any booking, whatever its status, references the item
func (r *bookingRepository) ExistsByItem(ctx context.Context, itemID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM bookings WHERE item_id = $1)`
	if err := r.db.GetContext(ctx, &exists, query, itemID); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *bookingRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM additional_drivers WHERE booking_id = ANY($1)`, pq.Array(ids)); err != nil {
		return 0, err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM bookings WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return 0, err
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	logger.DatabaseResult("bookings.delete_many", deleted, nil)
	return deleted, nil
}

func (r *bookingRepository) ListExpiredPending(ctx context.Context, before time.Time, limit int) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
		WHERE status = $1 AND updated_at < $2 ORDER BY updated_at LIMIT $3`
	var bookings []domain.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, domain.BookingStatusPending, before, limit); err != nil {
		return nil, err
	}
	return bookings, nil
}
