package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/ydot228/ecommerce-patterns-kvaskov/internal/order"
)

type placeOrderItem struct {
	ProductID string `json:"productId" validate:"required"`
	Qty       int    `json:"qty"`
}

type placeOrderRequest struct {
	UserID         string           `json:"userId" validate:"required"`
	Items          []placeOrderItem `json:"items" validate:"required,min=1,dive"`
	ShippingMethod string           `json:"shippingMethod"`
}

type orderResponse struct {
	OrderID       string    `json:"orderId"`
	Subtotal      float64   `json:"subtotal"`
	ShippingCost  float64   `json:"shippingCost"`
	Total         float64   `json:"total"`
	TransactionID string    `json:"transactionId"`
	CreatedAt     time.Time `json:"createdAt"`
}

func newOrderResponse(ord *order.Order) orderResponse {
	return orderResponse{
		OrderID:       ord.OrderID,
		Subtotal:      ord.Subtotal,
		ShippingCost:  ord.ShippingCost,
		Total:         ord.Total,
		TransactionID: ord.TransactionID,
		CreatedAt:     ord.CreatedAt,
	}
}

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	svc      order.Service
	validate *validator.Validate
}

func NewOrderHandler(svc order.Service) *OrderHandler {
	return &OrderHandler{
		svc:      svc,
		validate: validator.New(),
	}
}

func (h *OrderHandler) RegisterRoutes(router chi.Router) {
	router.Post("/orders", h.PlaceOrder)
	router.Get("/orders", h.ListOrders)
	router.Get("/orders/{id}", h.GetOrderByID)
}

// PlaceOrder runs the whole placement pipeline and returns the priced order.
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, KindValidation, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, KindValidation, err.Error())
		return
	}

	items := make([]order.Item, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, order.Item{ProductID: item.ProductID, Qty: item.Qty})
	}

	ord, err := h.svc.PlaceOrder(r.Context(), order.Request{
		UserID:         req.UserID,
		Items:          items,
		ShippingMethod: req.ShippingMethod,
	})
	if err != nil {
		status, kind := mapError(err)
		if status == http.StatusInternalServerError {
			log.Error().Err(err).Msg("handler: failed to place order")
			respondWithError(w, status, kind, "failed to place order")
			return
		}
		respondWithError(w, status, kind, err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, newOrderResponse(ord))
}

// ListOrders returns every order placed since the process started.
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.ListOrders(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("handler: failed to list orders")
		respondWithError(w, http.StatusInternalServerError, KindInternal, "failed to list orders")
		return
	}

	responses := make([]orderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, newOrderResponse(&orders[i]))
	}

	respondWithJSON(w, http.StatusOK, responses)
}

func (h *OrderHandler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, KindValidation, "id is required")
		return
	}

	ord, err := h.svc.GetOrderByID(r.Context(), id)
	if err != nil {
		status, kind := mapError(err)
		if status == http.StatusInternalServerError {
			log.Error().Err(err).Str("order_id", id).Msg("handler: failed to get order")
			respondWithError(w, status, kind, "failed to get order")
			return
		}
		respondWithError(w, status, kind, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, newOrderResponse(ord))
}
