package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// postgresStore combines the PostgreSQL product and order repositories.
type postgresStore struct {
	ProductRepository
	OrderRepository
}

// NewPostgresStore creates a Store backed by the given pool. The pool stays
// owned by the caller and is not closed by Close.
func NewPostgresStore(pool *pgxpool.Pool, logger zerolog.Logger) Store {
	return &postgresStore{
		ProductRepository: NewProductRepository(pool, logger),
		OrderRepository:   NewOrderRepository(pool, logger),
	}
}

// Close is a no-op; see NewPostgresStore.
func (s *postgresStore) Close() error {
	return nil
}
