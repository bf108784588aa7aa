package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"trem-do-bem/internal/model"
	"trem-do-bem/internal/service"
)

// ProductsResponse wraps a product list.
type ProductsResponse struct {
	Products []model.Product `json:"products"`
}

// ProductResponse wraps a single product.
type ProductResponse struct {
	Product *model.Product `json:"product"`
}

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// ListPublic handles GET /products/public requests.
func (h *ProductHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListActive(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, ProductsResponse{Products: nonNil(products)}, h.logger)
}

// ListAll handles GET /products requests.
func (h *ProductHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, ProductsResponse{Products: nonNil(products)}, h.logger)
}

// Upsert handles POST /products requests.
func (h *ProductHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req model.ProductRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	product, err := h.service.Upsert(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, ProductResponse{Product: product}, h.logger)
}

// SetActive handles PATCH /products/{id}/active requests.
func (h *ProductHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	var req model.ActiveRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	product, err := h.service.SetActive(r.Context(), chi.URLParam(r, "id"), req.Active)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, ProductResponse{Product: product}, h.logger)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
