package service

import (
	"context"

	"github.com/go-playground/validator/v10"

	"trem-do-bem/internal/model"
	"trem-do-bem/internal/notify"
)

// validate is shared by every service; validator caches struct metadata.
var validate = validator.New(validator.WithRequiredStructEnabled())

// ProductService defines operations for catalogue management.
type ProductService interface {
	// ListActive returns the products shown in the public storefront.
	ListActive(ctx context.Context) ([]model.Product, error)

	// ListAll returns every product, active or not.
	ListAll(ctx context.Context) ([]model.Product, error)

	// Upsert creates a product or replaces the one with the same ID.
	Upsert(ctx context.Context, req *model.ProductRequest) (*model.Product, error)

	// SetActive toggles whether a product is sold.
	SetActive(ctx context.Context, id string, active bool) (*model.Product, error)
}

// OrderService defines operations for order management.
type OrderService interface {
	// CreateOrder validates a checkout against the active catalogue and stores the order.
	CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.Order, error)

	// ListOrders returns every order, newest first.
	ListOrders(ctx context.Context) ([]model.Order, error)

	// SetStatus changes an order's status and notifies the customer in the background.
	SetStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error)
}

// NotificationService sends ad-hoc messages through the gateway.
type NotificationService interface {
	Send(ctx context.Context, req *model.NotificationRequest) (notify.Result, error)
}

// AuthService handles admin authentication.
type AuthService interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
}

// OrderNotifier is told about every committed status change.
type OrderNotifier interface {
	Dispatch(order *model.Order)
}
