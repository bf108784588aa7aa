package repository

import (
	"context"
	"sync"

	"trem-do-bem/internal/model"

	"github.com/rs/zerolog"
)

// memoryStore implements Store with in-process storage.
// Writes are serialised by mu and reads hand out copies.
type memoryStore struct {
	mu     sync.RWMutex
	doc    document
	logger zerolog.Logger
}

// NewMemoryStore creates a new in-memory store holding the given products.
func NewMemoryStore(products []model.Product, logger zerolog.Logger) Store {
	return &memoryStore{
		doc:    document{Products: append([]model.Product(nil), products...)},
		logger: logger.With().Str("repository", "memory").Logger(),
	}
}

// GetActiveProducts retrieves the active products.
func (s *memoryStore) GetActiveProducts(ctx context.Context) ([]model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.activeProducts(), nil
}

// GetAllProducts retrieves every product.
func (s *memoryStore) GetAllProducts(ctx context.Context) ([]model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.allProducts(), nil
}

// GetProductByID retrieves a single product by its ID.
func (s *memoryStore) GetProductByID(ctx context.Context, id string) (*model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.product(id), nil
}

// UpsertProduct inserts or replaces a product.
func (s *memoryStore) UpsertProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.upsertProduct(*product)
	s.logger.Debug().Str("product_id", product.ID).Msg("product upserted")

	p := *product
	return &p, nil
}

// SetProductActive toggles the active flag of a product.
func (s *memoryStore) SetProductActive(ctx context.Context, id string, active bool) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.setProductActive(id, active), nil
}

// AppendOrder stores a new order ahead of all existing ones.
func (s *memoryStore) AppendOrder(ctx context.Context, order *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.prependOrder(order)
	s.logger.Debug().Str("order_id", order.ID).Msg("order created successfully")

	return nil
}

// ListOrders retrieves every order, newest first.
func (s *memoryStore) ListOrders(ctx context.Context) ([]model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.allOrders(), nil
}

// GetOrderByID retrieves an order by its ID.
func (s *memoryStore) GetOrderByID(ctx context.Context, id string) (*model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.order(id), nil
}

// UpdateOrderStatus sets the status of an order.
func (s *memoryStore) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.setOrderStatus(id, status), nil
}

// Close is a no-op for the in-memory store.
func (s *memoryStore) Close() error {
	return nil
}
