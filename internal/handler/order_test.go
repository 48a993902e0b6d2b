package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/ydot228/ecommerce-patterns-kvaskov/internal/order"
	"github.com/ydot228/ecommerce-patterns-kvaskov/internal/payment"
)

type mockOrderService struct {
	placeOrderFunc   func(ctx context.Context, req order.Request) (*order.Order, error)
	getOrderByIDFunc func(ctx context.Context, id string) (*order.Order, error)
	listOrdersFunc   func(ctx context.Context) ([]order.Order, error)
}

func (m *mockOrderService) PlaceOrder(ctx context.Context, req order.Request) (*order.Order, error) {
	return m.placeOrderFunc(ctx, req)
}

func (m *mockOrderService) GetOrderByID(ctx context.Context, id string) (*order.Order, error) {
	return m.getOrderByIDFunc(ctx, id)
}

func (m *mockOrderService) ListOrders(ctx context.Context) ([]order.Order, error) {
	return m.listOrdersFunc(ctx)
}

func placedOrder() *order.Order {
	return &order.Order{
		OrderID:       "550e8400-e29b-41d4-a716-446655440000",
		UserID:        "u1",
		Subtotal:      998,
		ShippingCost:  399,
		Total:         1397,
		TransactionID: "tx_abc",
		CreatedAt:     time.Date(2025, 4, 16, 12, 0, 0, 0, time.UTC),
	}
}

func TestOrderHandler_PlaceOrder(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		placeOrder     func(ctx context.Context, req order.Request) (*order.Order, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success",
			body: `{"userId":"u1","items":[{"productId":"p1","qty":2}],"shippingMethod":"courier"}`,
			placeOrder: func(ctx context.Context, req order.Request) (*order.Order, error) {
				return placedOrder(), nil
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"orderId":"550e8400-e29b-41d4-a716-446655440000","subtotal":998,"shippingCost":399,"total":1397,"transactionId":"tx_abc","createdAt":"2025-04-16T12:00:00Z"}`,
		},
		{
			name:           "invalid_json",
			body:           `{invalid json}`,
			placeOrder:     func(ctx context.Context, req order.Request) (*order.Order, error) { return placedOrder(), nil },
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"VALIDATION","message":"invalid request body"}`,
		},
		{
			name: "validation_error_from_service",
			body: `{"userId":"u1","items":[{"productId":"p1"}]}`,
			placeOrder: func(ctx context.Context, req order.Request) (*order.Order, error) {
				return nil, order.ErrNoItems
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"VALIDATION","message":"order must contain at least one item"}`,
		},
		{
			name: "product_not_found",
			body: `{"userId":"u1","items":[{"productId":"ghost"}]}`,
			placeOrder: func(ctx context.Context, req order.Request) (*order.Order, error) {
				return nil, fmt.Errorf("%w: ghost", order.ErrProductNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"NOT_FOUND","message":"product not found: ghost"}`,
		},
		{
			name: "payment_failure",
			body: `{"userId":"u1","items":[{"productId":"p1"}]}`,
			placeOrder: func(ctx context.Context, req order.Request) (*order.Order, error) {
				return nil, fmt.Errorf("%w: provider status %q", payment.ErrPaymentFailed, "declined")
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"BAD_REQUEST","message":"payment was not accepted by the provider: provider status \"declined\""}`,
		},
		{
			name: "unexpected_error_is_internal",
			body: `{"userId":"u1","items":[{"productId":"p1"}]}`,
			placeOrder: func(ctx context.Context, req order.Request) (*order.Order, error) {
				return nil, fmt.Errorf("service: failed to save order")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"INTERNAL","message":"failed to place order"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &mockOrderService{
				placeOrderFunc:   tt.placeOrder,
				getOrderByIDFunc: func(ctx context.Context, id string) (*order.Order, error) { return nil, nil },
				listOrdersFunc:   func(ctx context.Context) ([]order.Order, error) { return nil, nil },
			}

			h := NewOrderHandler(mockSvc)
			r := chi.NewRouter()
			h.RegisterRoutes(r)

			req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedBody, w.Body.String())
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		})
	}
}

func TestOrderHandler_PlaceOrder_RequestShapeValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing_user_id", body: `{"items":[{"productId":"p1","qty":1}]}`},
		{name: "missing_items", body: `{"userId":"u1"}`},
		{name: "empty_items", body: `{"userId":"u1","items":[]}`},
		{name: "item_without_product_id", body: `{"userId":"u1","items":[{"qty":1}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			placeOrderCalled := false
			mockSvc := &mockOrderService{
				placeOrderFunc: func(ctx context.Context, req order.Request) (*order.Order, error) {
					placeOrderCalled = true
					return placedOrder(), nil
				},
				getOrderByIDFunc: func(ctx context.Context, id string) (*order.Order, error) { return nil, nil },
				listOrdersFunc:   func(ctx context.Context) ([]order.Order, error) { return nil, nil },
			}

			h := NewOrderHandler(mockSvc)
			r := chi.NewRouter()
			h.RegisterRoutes(r)

			req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, placeOrderCalled)

			var resp map[string]string
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, KindValidation, resp["error"])
		})
	}
}

func TestOrderHandler_PlaceOrder_PassesRequestToService(t *testing.T) {
	var gotReq order.Request
	mockSvc := &mockOrderService{
		placeOrderFunc: func(ctx context.Context, req order.Request) (*order.Order, error) {
			gotReq = req
			return placedOrder(), nil
		},
		getOrderByIDFunc: func(ctx context.Context, id string) (*order.Order, error) { return nil, nil },
		listOrdersFunc:   func(ctx context.Context) ([]order.Order, error) { return nil, nil },
	}

	h := NewOrderHandler(mockSvc)
	r := chi.NewRouter()
	h.RegisterRoutes(r)

	body := `{"userId":"u1","items":[{"productId":"p1","qty":2},{"productId":"p2"}],"shippingMethod":"express"}`
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, order.Request{
		UserID:         "u1",
		Items:          []order.Item{{ProductID: "p1", Qty: 2}, {ProductID: "p2", Qty: 0}},
		ShippingMethod: "express",
	}, gotReq)
}

func TestOrderHandler_GetOrderByID(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		getOrderByID   func(ctx context.Context, id string) (*order.Order, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success",
			id:   "550e8400-e29b-41d4-a716-446655440000",
			getOrderByID: func(ctx context.Context, id string) (*order.Order, error) {
				return placedOrder(), nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"orderId":"550e8400-e29b-41d4-a716-446655440000","subtotal":998,"shippingCost":399,"total":1397,"transactionId":"tx_abc","createdAt":"2025-04-16T12:00:00Z"}`,
		},
		{
			name: "not_found",
			id:   "999e8400-e29b-41d4-a716-446655440000",
			getOrderByID: func(ctx context.Context, id string) (*order.Order, error) {
				return nil, order.ErrOrderNotFound
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"NOT_FOUND","message":"order not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &mockOrderService{
				placeOrderFunc:   func(ctx context.Context, req order.Request) (*order.Order, error) { return nil, nil },
				getOrderByIDFunc: tt.getOrderByID,
				listOrdersFunc:   func(ctx context.Context) ([]order.Order, error) { return nil, nil },
			}

			h := NewOrderHandler(mockSvc)

			req := httptest.NewRequest(http.MethodGet, "/orders/"+tt.id, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			h.GetOrderByID(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestOrderHandler_ListOrders(t *testing.T) {
	mockSvc := &mockOrderService{
		placeOrderFunc:   func(ctx context.Context, req order.Request) (*order.Order, error) { return nil, nil },
		getOrderByIDFunc: func(ctx context.Context, id string) (*order.Order, error) { return nil, nil },
		listOrdersFunc: func(ctx context.Context) ([]order.Order, error) {
			return []order.Order{*placedOrder()}, nil
		},
	}

	h := NewOrderHandler(mockSvc)
	r := chi.NewRouter()
	h.RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `[{"orderId":"550e8400-e29b-41d4-a716-446655440000","subtotal":998,"shippingCost":399,"total":1397,"transactionId":"tx_abc","createdAt":"2025-04-16T12:00:00Z"}]`, w.Body.String())
}

func TestOrderHandler_ListOrders_EmptyIsEmptyArray(t *testing.T) {
	mockSvc := &mockOrderService{
		placeOrderFunc:   func(ctx context.Context, req order.Request) (*order.Order, error) { return nil, nil },
		getOrderByIDFunc: func(ctx context.Context, id string) (*order.Order, error) { return nil, nil },
		listOrdersFunc:   func(ctx context.Context) ([]order.Order, error) { return []order.Order{}, nil },
	}

	h := NewOrderHandler(mockSvc)
	r := chi.NewRouter()
	h.RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `[]`, w.Body.String())
}
