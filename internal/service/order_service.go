package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"trem-do-bem/internal/model"
	"trem-do-bem/internal/pricing"
	"trem-do-bem/internal/repository"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	notifier    OrderNotifier
	now         func() time.Time
	newID       func() string
	logger      zerolog.Logger
}

// NewOrderService creates a new order service. notifier may be nil.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	notifier OrderNotifier,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		notifier:    notifier,
		now:         time.Now,
		newID:       func() string { return "o_" + uuid.NewString() },
		logger:      logger.With().Str("service", "order").Logger(),
	}
}

// CreateOrder validates the checkout, prices it against the active catalogue and appends it.
// Items naming unknown or inactive products are dropped; the order fails only if none remain.
func (s *orderService) CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.Order, error) {
	if req == nil {
		return nil, model.ErrMissingCustomerFields
	}

	customer := model.Customer{
		Name:      strings.TrimSpace(req.Customer.Name),
		Phone:     strings.TrimSpace(req.Customer.Phone),
		Address:   strings.TrimSpace(req.Customer.Address),
		Reference: strings.TrimSpace(req.Customer.Reference),
	}
	if customer.Name == "" || customer.Phone == "" || customer.Address == "" {
		return nil, model.ErrMissingCustomerFields
	}

	if len(req.Items) == 0 {
		return nil, model.ErrEmptyCart
	}

	active, err := s.productRepo.GetActiveProducts(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to read catalogue snapshot")
		return nil, fmt.Errorf("failed to read catalogue: %w", err)
	}
	catalogue := make(map[string]model.Product, len(active))
	for _, p := range active {
		catalogue[p.ID] = p
	}

	items := make([]model.OrderItem, 0, len(req.Items))
	lineTotals := make([]float64, 0, len(req.Items))
	for _, line := range req.Items {
		product, ok := catalogue[line.ProductID]
		if !ok {
			s.logger.Debug().Str("product_id", line.ProductID).Msg("dropping item for unavailable product")
			continue
		}

		grams := pricing.QuantizeGrams(float64(line.Grams))
		total := pricing.LineTotal(product.PricePer100g, grams)
		items = append(items, model.OrderItem{
			ProductID:    product.ID,
			Name:         product.Name,
			PricePer100g: product.PricePer100g,
			Grams:        grams,
			LineTotal:    total,
			Image:        product.Image,
		})
		lineTotals = append(lineTotals, total)
	}

	if len(items) == 0 {
		return nil, model.ErrInvalidItems
	}

	order := &model.Order{
		ID:        s.newID(),
		CreatedAt: s.now().UTC(),
		Status:    model.StatusPending,
		Customer:  customer,
		Items:     items,
		Totals:    model.Totals{Subtotal: pricing.Subtotal(lineTotals...)},
		Notes:     strings.TrimSpace(req.Notes),
	}

	if err := s.orderRepo.AppendOrder(ctx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to store order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID).
		Int("item_count", len(items)).
		Int("dropped_items", len(req.Items)-len(items)).
		Float64("subtotal", order.Totals.Subtotal).
		Msg("order created successfully")

	return order, nil
}

// ListOrders returns every order, newest first.
func (s *orderService) ListOrders(ctx context.Context) ([]model.Order, error) {
	orders, err := s.orderRepo.ListOrders(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// SetStatus accepts any of the four statuses from any current status.
// The notification is fired after the change is stored and never affects the result.
func (s *orderService) SetStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, model.ErrInvalidStatus
	}

	order, err := s.orderRepo.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id).Msg("failed to update order status")
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	s.logger.Info().Str("order_id", id).Str("status", string(status)).Msg("order status changed")

	if s.notifier != nil {
		s.notifier.Dispatch(order.Clone())
	}

	return order, nil
}
