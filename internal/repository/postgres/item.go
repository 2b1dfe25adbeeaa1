package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"rentalmarket-backend/internal/domain"
	"rentalmarket-backend/internal/repository"
)

// The supplier's price change rate is read through the join so callers get a
// fully populated item.
const itemSelect = `SELECT i.id, i.supplier_id, i.kind, i.name, i.available,
	i.daily_price, i.discounted_daily_price, i.weekly_price, i.discounted_weekly_price,
	i.bi_weekly_price, i.discounted_bi_weekly_price, i.monthly_price, i.discounted_monthly_price,
	i.cancellation, i.amendments, i.theft_protection, i.collision_damage_waiver, i.full_insurance, i.additional_driver,
	s.price_change_rate, i.created_at, i.updated_at
	FROM items i JOIN suppliers s ON s.id = i.supplier_id`

type itemRepository struct {
	db *sqlx.DB
}

func NewItemRepository(db *sqlx.DB) repository.ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, it *domain.Item) error {
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	it.CreatedAt, it.UpdatedAt = now, now

	query := `INSERT INTO items (id, supplier_id, kind, name, available,
		daily_price, discounted_daily_price, weekly_price, discounted_weekly_price,
		bi_weekly_price, discounted_bi_weekly_price, monthly_price, discounted_monthly_price,
		cancellation, amendments, theft_protection, collision_damage_waiver, full_insurance, additional_driver,
		created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err := r.db.ExecContext(ctx, query, it.ID, it.SupplierID, it.Kind, it.Name, it.Available,
		it.DailyPrice, it.DiscountedDailyPrice, it.WeeklyPrice, it.DiscountedWeeklyPrice,
		it.BiWeeklyPrice, it.DiscountedBiWeeklyPrice, it.MonthlyPrice, it.DiscountedMonthlyPrice,
		it.Cancellation, it.Amendments, it.TheftProtection, it.CollisionDamageWaiver, it.FullInsurance, it.AdditionalDriver,
		it.CreatedAt, it.UpdatedAt)
	return err
}

func (r *itemRepository) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	it := &domain.Item{}
	if err := r.db.GetContext(ctx, it, itemSelect+` WHERE i.id = $1`, id); err != nil {
		return nil, notFound(err)
	}
	return it, nil
}

func (r *itemRepository) Update(ctx context.Context, it *domain.Item) error {
	it.UpdatedAt = time.Now().UTC()
	query := `UPDATE items SET kind=$1, name=$2, available=$3,
		daily_price=$4, discounted_daily_price=$5, weekly_price=$6, discounted_weekly_price=$7,
		bi_weekly_price=$8, discounted_bi_weekly_price=$9, monthly_price=$10, discounted_monthly_price=$11,
		cancellation=$12, amendments=$13, theft_protection=$14, collision_damage_waiver=$15, full_insurance=$16, additional_driver=$17,
		updated_at=$18 WHERE id=$19`
	res, err := r.db.ExecContext(ctx, query, it.Kind, it.Name, it.Available,
		it.DailyPrice, it.DiscountedDailyPrice, it.WeeklyPrice, it.DiscountedWeeklyPrice,
		it.BiWeeklyPrice, it.DiscountedBiWeeklyPrice, it.MonthlyPrice, it.DiscountedMonthlyPrice,
		it.Cancellation, it.Amendments, it.TheftProtection, it.CollisionDamageWaiver, it.FullInsurance, it.AdditionalDriver,
		it.UpdatedAt, it.ID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Delete removes the item row. Callers check booking references first.
func (r *itemRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *itemRepository) ListBySupplier(ctx context.Context, supplierID string, page, pageSize int32) ([]domain.Item, int32, error) {
	var count int32
	countQuery := `SELECT count(*) FROM items WHERE supplier_id = $1`
	if err := r.db.GetContext(ctx, &count, countQuery, supplierID); err != nil {
		return nil, 0, err
	}

	query := itemSelect + ` WHERE i.supplier_id = $1 ORDER BY i.created_at DESC LIMIT $2 OFFSET $3`
	var items []domain.Item
	if err := r.db.SelectContext(ctx, &items, query, supplierID, pageSize, offset(page, pageSize)); err != nil {
		return nil, 0, err
	}
	return items, count, nil
}
