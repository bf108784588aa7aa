package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trem-do-bem/internal/auth"
	"trem-do-bem/internal/handler"
	"trem-do-bem/internal/model"
	"trem-do-bem/internal/notify"
	"trem-do-bem/internal/repository"
	"trem-do-bem/internal/seed"
	"trem-do-bem/internal/service"
)

func newTestRouter(t *testing.T) (http.Handler, auth.Credential) {
	t.Helper()
	logger := zerolog.Nop()

	store := repository.NewMemoryStore(seed.DefaultCatalog(), logger)
	cred := auth.NewTokenManager("test-secret", time.Hour)
	notifier := notify.NewWebhookNotifier(false, "", nil, logger)
	dispatcher := notify.NewDispatcher(notifier, time.Second, logger)
	t.Cleanup(func() { _ = dispatcher.Wait(context.Background()) })

	h := Handlers{
		Product: handler.NewProductHandler(service.NewProductService(store, logger), logger),
		Order:   handler.NewOrderHandler(service.NewOrderService(store, store, dispatcher, logger), logger),
		Auth: handler.NewAuthHandler(
			service.NewAuthService("admin", auth.NewPasswordChecker("s3cret", ""), cred, logger), logger),
		Notification: handler.NewNotificationHandler(service.NewNotificationService(notifier, logger), logger),
	}
	return New(h, cred, nil, logger), cred
}

func TestRouter_PublicRoutes(t *testing.T) {
	r, _ := newTestRouter(t)

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
	}{
		{"Health", http.MethodGet, "/health", "", http.StatusOK},
		{"Public products", http.MethodGet, "/products/public", "", http.StatusOK},
		{"Login", http.MethodPost, "/auth/login", `{"user":"admin","pass":"s3cret"}`, http.StatusOK},
		{"Checkout", http.MethodPost, "/orders",
			`{"customer":{"name":"Maria","phone":"32991137334","address":"Rua A"},"items":[{"productId":"p_castanha_para","grams":200}]}`,
			http.StatusOK},
		{"Unknown route", http.MethodGet, "/nope", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRouter_AdminRoutesRequireToken(t *testing.T) {
	r, cred := newTestRouter(t)

	adminRoutes := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/products", ""},
		{http.MethodPost, "/products", `{"id":"p_new","name":"Novo","pricePer100g":5}`},
		{http.MethodPatch, "/products/p_canela_inteira/active", `{"active":false}`},
		{http.MethodGet, "/orders", ""},
		{http.MethodPatch, "/orders/ghost/status", `{"status":"DELIVERED"}`},
		{http.MethodPost, "/notifications", `{"phone":"32991137334","text":"oi"}`},
	}

	token, err := cred.Issue("admin", auth.RoleAdmin)
	require.NoError(t, err)
	guest, err := cred.Issue("someone", "guest")
	require.NoError(t, err)

	for _, route := range adminRoutes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(route.method, route.path, strings.NewReader(route.body)))
			assert.Equal(t, http.StatusUnauthorized, w.Code)

			req := httptest.NewRequest(route.method, route.path, strings.NewReader(route.body))
			req.Header.Set("Authorization", "Bearer "+guest)
			w = httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusForbidden, w.Code)

			req = httptest.NewRequest(route.method, route.path, strings.NewReader(route.body))
			req.Header.Set("Authorization", "Bearer "+token)
			w = httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.NotEqual(t, http.StatusUnauthorized, w.Code)
			assert.NotEqual(t, http.StatusForbidden, w.Code)
		})
	}
}

func TestRouter_StatusFlow(t *testing.T) {
	r, cred := newTestRouter(t)
	token, err := cred.Issue("admin", auth.RoleAdmin)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(
		`{"customer":{"name":"Maria","phone":"32991137334","address":"Rua A"},"items":[{"productId":"p_semente_abobora","grams":300}]}`)))
	require.Equal(t, http.StatusOK, w.Code)

	var created handler.OrderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 26.7, created.Order.Totals.Subtotal)

	req := httptest.NewRequest(http.MethodPatch, "/orders/"+created.Order.ID+"/status", strings.NewReader(`{"status":"IN_DELIVERY"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var updated handler.OrderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, model.StatusInDelivery, updated.Order.Status)
}
