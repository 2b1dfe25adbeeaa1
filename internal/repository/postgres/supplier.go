package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"rentalmarket-backend/internal/domain"
	"rentalmarket-backend/internal/repository"
)

type supplierRepository struct {
	db *sqlx.DB
}

func NewSupplierRepository(db *sqlx.DB) repository.SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) GetByID(ctx context.Context, id string) (*domain.Supplier, error) {
	s := &domain.Supplier{}
	query := `SELECT id, name, price_change_rate, pay_later, created_at FROM suppliers WHERE id = $1`
	if err := r.db.GetContext(ctx, s, query, id); err != nil {
		return nil, notFound(err)
	}
	return s, nil
}
