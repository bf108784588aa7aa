package repository

import (
	"context"
	"errors"
	"fmt"

	"trem-do-bem/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

const productColumns = `id, name, price_per_100g, image, active`

// GetActiveProducts retrieves the active products in catalogue order.
func (r *productRepository) GetActiveProducts(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE active
		ORDER BY position
	`
	return r.queryProducts(ctx, query)
}

// GetAllProducts retrieves every product in catalogue order.
func (r *productRepository) GetAllProducts(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY position
	`
	return r.queryProducts(ctx, query)
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...any) ([]model.Product, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.PricePer100g, &p.Image, &p.Active); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetProductByID retrieves a single product by its ID.
func (r *productRepository) GetProductByID(ctx context.Context, id string) (*model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1
	`

	var p model.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.PricePer100g, &p.Image, &p.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// UpsertProduct inserts a product ahead of the current catalogue head, or
// replaces the stored fields while keeping its catalogue position.
func (r *productRepository) UpsertProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	query := `
		INSERT INTO products (id, name, price_per_100g, image, active, position)
		VALUES ($1, $2, $3, $4, $5, (SELECT COALESCE(MIN(position), 0) - 1 FROM products))
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			price_per_100g = EXCLUDED.price_per_100g,
			image = EXCLUDED.image,
			active = EXCLUDED.active,
			updated_at = NOW()
		RETURNING ` + productColumns

	var p model.Product
	err := r.pool.QueryRow(ctx, query,
		product.ID,
		product.Name,
		product.PricePer100g,
		product.Image,
		product.Active,
	).Scan(&p.ID, &p.Name, &p.PricePer100g, &p.Image, &p.Active)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", product.ID).Msg("failed to upsert product")
		return nil, fmt.Errorf("failed to upsert product: %w", err)
	}

	r.logger.Debug().Str("product_id", p.ID).Msg("product upserted")

	return &p, nil
}

// SetProductActive toggles the active flag of a product.
func (r *productRepository) SetProductActive(ctx context.Context, id string, active bool) (*model.Product, error) {
	query := `
		UPDATE products
		SET active = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + productColumns

	var p model.Product
	err := r.pool.QueryRow(ctx, query, id, active).Scan(&p.ID, &p.Name, &p.PricePer100g, &p.Image, &p.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to set product active")
		return nil, fmt.Errorf("failed to set product active: %w", err)
	}

	return &p, nil
}
