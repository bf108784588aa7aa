package repository

import (
	"context"

	"trem-do-bem/internal/model"
)

// ProductRepository defines the interface for product data access operations.
// Lookups that find nothing return a nil product and a nil error.
type ProductRepository interface {
	// GetActiveProducts retrieves the products with active set, in catalogue order.
	GetActiveProducts(ctx context.Context) ([]model.Product, error)

	// GetAllProducts retrieves every product, active or not, in catalogue order.
	GetAllProducts(ctx context.Context) ([]model.Product, error)

	// GetProductByID retrieves a single product by its ID.
	GetProductByID(ctx context.Context, id string) (*model.Product, error)

	// UpsertProduct inserts the product at the head of the catalogue when its
	// ID is unseen, otherwise replaces the stored product in place.
	UpsertProduct(ctx context.Context, product *model.Product) (*model.Product, error)

	// SetProductActive toggles the active flag of a product.
	SetProductActive(ctx context.Context, id string, active bool) (*model.Product, error)
}

// OrderRepository defines the interface for order data access operations.
// Lookups that find nothing return a nil order and a nil error.
type OrderRepository interface {
	// AppendOrder stores a new order ahead of all existing ones.
	AppendOrder(ctx context.Context, order *model.Order) error

	// ListOrders retrieves every order with its items, newest first.
	ListOrders(ctx context.Context) ([]model.Order, error)

	// GetOrderByID retrieves an order by its ID along with its items.
	GetOrderByID(ctx context.Context, id string) (*model.Order, error)

	// UpdateOrderStatus sets the status of an order and returns the updated order.
	UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error)
}

// Store is a single backend holding both the catalogue and the orders.
type Store interface {
	ProductRepository
	OrderRepository

	// Close releases resources held by the store.
	Close() error
}
