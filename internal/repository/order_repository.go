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

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

const orderColumns = `
	id, created_at, status,
	customer_name, customer_phone, customer_address, customer_reference,
	notes, subtotal
`

// AppendOrder inserts the order and its items in a single transaction.
func (r *orderRepository) AppendOrder(ctx context.Context, order *model.Order) (err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				r.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	orderQuery := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = tx.Exec(ctx, orderQuery,
		order.ID,
		order.CreatedAt,
		string(order.Status),
		order.Customer.Name,
		order.Customer.Phone,
		order.Customer.Address,
		order.Customer.Reference,
		order.Notes,
		order.Totals.Subtotal,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (order_id, position, product_id, name, price_per_100g, grams, line_total, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	batch := &pgx.Batch{}
	for i, item := range order.Items {
		batch.Queue(itemQuery,
			order.ID, i, item.ProductID, item.Name, item.PricePer100g, item.Grams, item.LineTotal, item.Image)
	}

	results := tx.SendBatch(ctx, batch)
	for i := range order.Items {
		if _, err = results.Exec(); err != nil {
			results.Close()
			r.logger.Error().
				Err(err).
				Str("order_id", order.ID).
				Str("product_id", order.Items[i].ProductID).
				Msg("failed to create order item")
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}
	if err = results.Close(); err != nil {
		return fmt.Errorf("failed to create order items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to commit transaction")
		return fmt.Errorf("failed to commit order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID).
		Int("item_count", len(order.Items)).
		Msg("order created successfully")

	return nil
}

// ListOrders retrieves every order with its items, newest first.
func (r *orderRepository) ListOrders(ctx context.Context) ([]model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		ORDER BY seq DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	index := map[string]int{}
	ids := []string{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		index[order.ID] = len(orders)
		ids = append(ids, order.ID)
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	if len(ids) == 0 {
		return orders, nil
	}

	items, err := r.queryItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for orderID, orderItems := range items {
		if i, ok := index[orderID]; ok {
			orders[i].Items = orderItems
		}
	}

	return orders, nil
}

// GetOrderByID retrieves an order by its ID along with its items.
func (r *orderRepository) GetOrderByID(ctx context.Context, id string) (*model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE id = $1
	`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("order_id", id).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	items, err := r.queryItems(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	order.Items = items[id]

	return order, nil
}

// UpdateOrderStatus sets the status of an order and returns the updated order.
func (r *orderRepository) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	query := `
		UPDATE orders
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, string(status))
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id).Msg("failed to update order status")
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Debug().Str("order_id", id).Msg("order not found")
		return nil, nil
	}

	return r.GetOrderByID(ctx, id)
}

func (r *orderRepository) queryItems(ctx context.Context, orderIDs []string) (map[string][]model.OrderItem, error) {
	query := `
		SELECT order_id, product_id, name, price_per_100g, grams, line_total, image
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, position
	`

	rows, err := r.pool.Query(ctx, query, orderIDs)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(orderIDs)).Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	items := make(map[string][]model.OrderItem, len(orderIDs))
	for rows.Next() {
		var orderID string
		var item model.OrderItem
		err := rows.Scan(&orderID, &item.ProductID, &item.Name, &item.PricePer100g, &item.Grams, &item.LineTotal, &item.Image)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items[orderID] = append(items[orderID], item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order item rows")
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return items, nil
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	var status string
	err := row.Scan(
		&o.ID,
		&o.CreatedAt,
		&status,
		&o.Customer.Name,
		&o.Customer.Phone,
		&o.Customer.Address,
		&o.Customer.Reference,
		&o.Notes,
		&o.Totals.Subtotal,
	)
	if err != nil {
		return nil, err
	}
	o.Status = model.OrderStatus(status)
	o.CreatedAt = o.CreatedAt.UTC()
	return &o, nil
}
