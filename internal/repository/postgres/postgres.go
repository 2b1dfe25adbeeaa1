package postgres

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"rentalmarket-backend/internal/repository"
)

type Store struct {
	db *sqlx.DB
	repository.ItemRepository
	repository.SupplierRepository
	repository.BookingRepository
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{
		db:                 db,
		ItemRepository:     NewItemRepository(db),
		SupplierRepository: NewSupplierRepository(db),
		BookingRepository:  NewBookingRepository(db),
	}
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Open connects to PostgreSQL and verifies the connection
func Open(dsn string, maxOpenConns int) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}
	return db, nil
}

// notFound maps a missing row to repository.ErrNotFound
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}

// requireAffected reports repository.ErrNotFound when a write touched no rows
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func offset(page, pageSize int32) int32 {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}
