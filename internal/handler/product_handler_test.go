package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"trem-do-bem/internal/model"
)

func TestProductHandler_ListPublic(t *testing.T) {
	tests := []struct {
		name           string
		mockSetup      func(*MockProductService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success",
			mockSetup: func(m *MockProductService) {
				m.On("ListActive", mock.Anything).Return([]model.Product{
					{ID: "p1", Name: "P1", PricePer100g: 8.9, Image: "/images/p1.jpeg", Active: true},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"products":[{"id":"p1","name":"P1","pricePer100g":8.9,"image":"/images/p1.jpeg","active":true}]}`,
		},
		{
			name: "Empty catalogue is an empty array",
			mockSetup: func(m *MockProductService) {
				m.On("ListActive", mock.Anything).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"products":[]}`,
		},
		{
			name: "Service error",
			mockSetup: func(m *MockProductService) {
				m.On("ListActive", mock.Anything).Return(nil, errors.New("disk gone"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal_error","message":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockProductService)
			tt.mockSetup(svc)
			h := NewProductHandler(svc, zerolog.Nop())

			w := httptest.NewRecorder()
			h.ListPublic(w, httptest.NewRequest(http.MethodGet, "/products/public", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		})
	}
}

func TestProductHandler_ListAll(t *testing.T) {
	svc := new(MockProductService)
	svc.On("ListAll", mock.Anything).Return([]model.Product{
		{ID: "p1", Active: true}, {ID: "p2", Active: false},
	}, nil)
	h := NewProductHandler(svc, zerolog.Nop())

	w := httptest.NewRecorder()
	h.ListAll(w, httptest.NewRequest(http.MethodGet, "/products", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp ProductsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Products, 2)
}

func TestProductHandler_Upsert(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockSetup      func(*MockProductService)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "Success",
			body: `{"id":"p1","name":"P1","pricePer100g":10,"active":true}`,
			mockSetup: func(m *MockProductService) {
				m.On("Upsert", mock.Anything, mock.MatchedBy(func(r *model.ProductRequest) bool {
					return r.ID == "p1" && r.PricePer100g != nil && *r.PricePer100g == 10 && r.Active != nil && *r.Active
				})).Return(&model.Product{ID: "p1", Name: "P1", PricePer100g: 10, Active: true}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Invalid payload",
			body: `{"id":"","name":"P1"}`,
			mockSetup: func(m *MockProductService) {
				m.On("Upsert", mock.Anything, mock.Anything).Return(nil, model.ErrInvalidProductPayload)
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  model.ErrCodeInvalidProductPayload,
		},
		{
			name:           "Malformed JSON",
			body:           `{"id":`,
			mockSetup:      func(m *MockProductService) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  model.ErrCodeInvalidJSON,
		},
		{
			name:           "Wrong price type",
			body:           `{"id":"p1","name":"P1","pricePer100g":"cheap"}`,
			mockSetup:      func(m *MockProductService) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  model.ErrCodeInvalidJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockProductService)
			tt.mockSetup(svc)
			h := NewProductHandler(svc, zerolog.Nop())

			w := httptest.NewRecorder()
			h.Upsert(w, httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(tt.body)))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				var resp model.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedError, resp.Error)
			} else {
				var resp ProductResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, "p1", resp.Product.ID)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestProductHandler_SetActive(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		body           string
		mockSetup      func(*MockProductService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Deactivate",
			id:   "p1",
			body: `{"active":false}`,
			mockSetup: func(m *MockProductService) {
				m.On("SetActive", mock.Anything, "p1", false).Return(&model.Product{ID: "p1", Name: "P1", Image: "/i.jpeg"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"product":{"id":"p1","name":"P1","pricePer100g":0,"image":"/i.jpeg","active":false}}`,
		},
		{
			name: "Unknown product",
			id:   "ghost",
			body: `{"active":true}`,
			mockSetup: func(m *MockProductService) {
				m.On("SetActive", mock.Anything, "ghost", true).Return(nil, model.ErrProductNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"product_not_found","message":"Product not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockProductService)
			tt.mockSetup(svc)
			h := NewProductHandler(svc, zerolog.Nop())

			req := withURLParam(httptest.NewRequest(http.MethodPatch, "/products/"+tt.id+"/active", strings.NewReader(tt.body)), "id", tt.id)
			w := httptest.NewRecorder()
			h.SetActive(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
