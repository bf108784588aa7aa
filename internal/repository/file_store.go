package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"trem-do-bem/internal/model"

	"github.com/rs/zerolog"
)

// fileStore implements Store on top of a single JSON document holding the
// products and orders collections. Every mutation is a full read-modify-write
// of the file, serialised by mu.
type fileStore struct {
	mu     sync.Mutex
	path   string
	logger zerolog.Logger
}

// NewFileStore creates a JSON-file-backed store. The parent directory is
// created if needed; a missing file reads as an empty document.
func NewFileStore(path string, logger zerolog.Logger) (Store, error) {
	if path == "" {
		return nil, fmt.Errorf("store file path is required")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	logger = logger.With().Str("repository", "file").Str("file", path).Logger()
	logger.Info().Msg("using JSON file store")

	return &fileStore{
		path:   path,
		logger: logger,
	}, nil
}

// load reads the document; callers must hold mu.
func (s *fileStore) load() (*document, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &document{Products: []model.Product{}, Orders: []model.Order{}}, nil
		}
		s.logger.Error().Err(err).Msg("failed to read store file")
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}

	var doc document
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &doc); err != nil {
			s.logger.Error().Err(err).Msg("failed to decode store file")
			return nil, fmt.Errorf("failed to decode store file: %w", err)
		}
	}
	if doc.Products == nil {
		doc.Products = []model.Product{}
	}
	if doc.Orders == nil {
		doc.Orders = []model.Order{}
	}

	return &doc, nil
}

// save rewrites the whole document through a temp file and a rename so a
// reader never observes a partially written file; callers must hold mu.
func (s *fileStore) save(doc *document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create temp store file")
		return fmt.Errorf("failed to write store file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		s.logger.Error().Err(err).Msg("failed to write temp store file")
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close store file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		s.logger.Error().Err(err).Msg("failed to replace store file")
		return fmt.Errorf("failed to replace store file: %w", err)
	}

	return nil
}

func (s *fileStore) read(fn func(doc *document)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	fn(doc)
	return nil
}

// mutate applies fn and persists the document when fn reports a change.
func (s *fileStore) mutate(fn func(doc *document) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if !fn(doc) {
		return nil
	}
	return s.save(doc)
}

// GetActiveProducts retrieves the active products.
func (s *fileStore) GetActiveProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := s.read(func(doc *document) { products = doc.activeProducts() })
	return products, err
}

// GetAllProducts retrieves every product.
func (s *fileStore) GetAllProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := s.read(func(doc *document) { products = doc.allProducts() })
	return products, err
}

// GetProductByID retrieves a single product by its ID.
func (s *fileStore) GetProductByID(ctx context.Context, id string) (*model.Product, error) {
	var product *model.Product
	err := s.read(func(doc *document) { product = doc.product(id) })
	return product, err
}

// UpsertProduct inserts or replaces a product.
func (s *fileStore) UpsertProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	err := s.mutate(func(doc *document) bool {
		doc.upsertProduct(*product)
		return true
	})
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", product.ID).Msg("failed to upsert product")
		return nil, fmt.Errorf("failed to upsert product: %w", err)
	}

	p := *product
	return &p, nil
}

// SetProductActive toggles the active flag of a product.
func (s *fileStore) SetProductActive(ctx context.Context, id string, active bool) (*model.Product, error) {
	var product *model.Product
	err := s.mutate(func(doc *document) bool {
		product = doc.setProductActive(id, active)
		return product != nil
	})
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to set product active")
		return nil, fmt.Errorf("failed to set product active: %w", err)
	}
	return product, nil
}

// AppendOrder stores a new order ahead of all existing ones.
func (s *fileStore) AppendOrder(ctx context.Context, order *model.Order) error {
	err := s.mutate(func(doc *document) bool {
		doc.prependOrder(order)
		return true
	})
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Debug().Str("order_id", order.ID).Msg("order created successfully")
	return nil
}

// ListOrders retrieves every order, newest first.
func (s *fileStore) ListOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := s.read(func(doc *document) { orders = doc.allOrders() })
	return orders, err
}

// GetOrderByID retrieves an order by its ID.
func (s *fileStore) GetOrderByID(ctx context.Context, id string) (*model.Order, error) {
	var order *model.Order
	err := s.read(func(doc *document) { order = doc.order(id) })
	return order, err
}

// UpdateOrderStatus sets the status of an order.
func (s *fileStore) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	var order *model.Order
	err := s.mutate(func(doc *document) bool {
		order = doc.setOrderStatus(id, status)
		return order != nil
	})
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id).Msg("failed to update order status")
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	return order, nil
}

// Close is a no-op; every write is already on disk.
func (s *fileStore) Close() error {
	return nil
}
