package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"trem-do-bem/internal/auth"
	"trem-do-bem/internal/handler"
	"trem-do-bem/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by the router.
type Handlers struct {
	Product      *handler.ProductHandler
	Order        *handler.OrderHandler
	Auth         *handler.AuthHandler
	Notification *handler.NotificationHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, credential auth.Credential, allowedOrigins []string, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Recovery -> RequestID -> Logging -> CORS, then AdminAuth per route group
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.RequestID)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(allowedOrigins))

	// Health check endpoint (no authentication required)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok":true}`))
	})

	r.Post("/auth/login", h.Auth.Login)
	r.Get("/products/public", h.Product.ListPublic)
	r.Post("/orders", h.Order.Create)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AdminAuth(credential, logger))

		r.Get("/products", h.Product.ListAll)
		r.Post("/products", h.Product.Upsert)
		r.Patch("/products/{id}/active", h.Product.SetActive)

		r.Get("/orders", h.Order.List)
		r.Patch("/orders/{id}/status", h.Order.SetStatus)

		r.Post("/notifications", h.Notification.Send)
	})

	return r
}
