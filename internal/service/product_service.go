package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"trem-do-bem/internal/model"
	"trem-do-bem/internal/pricing"
	"trem-do-bem/internal/repository"
)

// productService implements ProductService.
type productService struct {
	repo   repository.ProductRepository
	logger zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(repo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		repo:   repo,
		logger: logger.With().Str("service", "product").Logger(),
	}
}

// ListActive returns the active products.
func (s *productService) ListActive(ctx context.Context) ([]model.Product, error) {
	products, err := s.repo.GetActiveProducts(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list active products")
		return nil, fmt.Errorf("failed to list active products: %w", err)
	}
	return products, nil
}

// ListAll returns every product.
func (s *productService) ListAll(ctx context.Context) ([]model.Product, error) {
	products, err := s.repo.GetAllProducts(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// Upsert normalises the payload and stores it. A missing price is zero,
// a missing image falls back to the default and a missing active flag is false.
func (s *productService) Upsert(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	if req == nil {
		return nil, model.ErrInvalidProductPayload
	}

	normalised := *req
	normalised.ID = strings.TrimSpace(req.ID)
	normalised.Name = strings.TrimSpace(req.Name)

	if err := validate.Struct(&normalised); err != nil {
		s.logger.Debug().Err(err).Str("product_id", normalised.ID).Msg("invalid product payload")
		return nil, model.ErrInvalidProductPayload
	}

	product := &model.Product{
		ID:    normalised.ID,
		Name:  normalised.Name,
		Image: strings.TrimSpace(req.Image),
	}
	if req.PricePer100g != nil {
		price := *req.PricePer100g
		if !pricing.ValidPrice(price) {
			return nil, model.ErrInvalidProductPayload
		}
		product.PricePer100g = price
	}
	if product.Image == "" {
		product.Image = model.DefaultProductImage
	}
	if req.Active != nil {
		product.Active = *req.Active
	}

	saved, err := s.repo.UpsertProduct(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", product.ID).Msg("failed to upsert product")
		return nil, fmt.Errorf("failed to upsert product: %w", err)
	}

	s.logger.Info().Str("product_id", saved.ID).Bool("active", saved.Active).Msg("product saved")
	return saved, nil
}

// SetActive toggles a product's active flag.
func (s *productService) SetActive(ctx context.Context, id string, active bool) (*model.Product, error) {
	product, err := s.repo.SetProductActive(ctx, id, active)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to set product active flag")
		return nil, fmt.Errorf("failed to set product active flag: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	s.logger.Info().Str("product_id", id).Bool("active", active).Msg("product active flag changed")
	return product, nil
}
