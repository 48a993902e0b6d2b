package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ydot228/ecommerce-patterns-kvaskov/internal/catalog"
	"github.com/ydot228/ecommerce-patterns-kvaskov/internal/notify"
	"github.com/ydot228/ecommerce-patterns-kvaskov/internal/payment"
	"github.com/ydot228/ecommerce-patterns-kvaskov/internal/shipping"
)

var (
	ErrUserIDRequired  = errors.New("user id is required")
	ErrNoItems         = errors.New("order must contain at least one item")
	ErrProductNotFound = errors.New("product not found")
)

// Catalog resolves product ids. A missing product is (nil, nil).
type Catalog interface {
	GetProductByID(ctx context.Context, id string) (*catalog.Product, error)
}

// Charger runs exactly one charge attempt against the payment provider.
type Charger interface {
	Charge(ctx context.Context, req payment.ChargeRequest) (payment.ChargeResult, error)
}

// Notifier accepts fire-and-forget notification jobs.
type Notifier interface {
	Enqueue(job notify.Job)
}

// Service is the single entry point for placing and reading orders.
type Service interface {
	PlaceOrder(ctx context.Context, req Request) (*Order, error)
	GetOrderByID(ctx context.Context, id string) (*Order, error)
	ListOrders(ctx context.Context) ([]Order, error)
}

type service struct {
	catalog  Catalog
	payments Charger
	queue    Notifier
	orders   Store
	currency string
}

func NewService(cat Catalog, payments Charger, queue Notifier, orders Store, currency string) Service {
	return &service{
		catalog:  cat,
		payments: payments,
		queue:    queue,
		orders:   orders,
		currency: currency,
	}
}

// PlaceOrder validates the request, prices the items against the catalog,
// quotes shipping, charges the total and queues an ORDER_CREATED notification.
// The steps run strictly in that order; any failure aborts the whole call
// before a notification is enqueued.
func (s *service) PlaceOrder(ctx context.Context, req Request) (*Order, error) {
	if req.UserID == "" {
		log.Warn().Msg("service: attempt to place order without user id")
		return nil, ErrUserIDRequired
	}
	if len(req.Items) == 0 {
		log.Warn().Str("user_id", req.UserID).Msg("service: attempt to place order with no items")
		return nil, ErrNoItems
	}

	subtotal := 0.0
	for _, item := range req.Items {
		product, err := s.catalog.GetProductByID(ctx, item.ProductID)
		if err != nil {
			log.Error().Err(err).Str("product_id", item.ProductID).Msg("service: catalog lookup failed")
			return nil, fmt.Errorf("service: failed to look up product %s: %w", item.ProductID, err)
		}
		if product == nil {
			log.Warn().Str("product_id", item.ProductID).Msg("service: order references unknown product")
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, item.ProductID)
		}

		qty := item.Qty
		if qty < 1 {
			qty = 1
		}
		subtotal += product.Price * float64(qty)
	}

	shippingCost := shipping.Pick(req.ShippingMethod).Calc(subtotal)
	total := subtotal + shippingCost

	orderID, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("service: failed to generate order id: %w", err)
	}

	chargeResult, err := s.payments.Charge(ctx, payment.ChargeRequest{
		Amount:   total,
		Currency: s.currency,
		OrderID:  orderID.String(),
	})
	if err != nil {
		return nil, err
	}

	ord := &Order{
		OrderID:       orderID.String(),
		UserID:        req.UserID,
		Subtotal:      subtotal,
		ShippingCost:  shippingCost,
		Total:         total,
		TransactionID: chargeResult.TransactionID,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.orders.Save(ctx, ord); err != nil {
		log.Error().Err(err).Str("order_id", ord.OrderID).Msg("service: failed to save order")
		return nil, fmt.Errorf("service: failed to save order: %w", err)
	}

	// Fire-and-forget: the queue never blocks and its failures never reach
	// the caller. Payment success is the only required postcondition.
	s.queue.Enqueue(notify.Job{
		Type: notify.TypeOrderCreated,
		Payload: map[string]any{
			"orderId":       ord.OrderID,
			"userId":        ord.UserID,
			"total":         ord.Total,
			"transactionId": ord.TransactionID,
		},
	})

	log.Info().
		Str("order_id", ord.OrderID).
		Str("user_id", ord.UserID).
		Float64("total", ord.Total).
		Msg("service: order placed")

	return ord, nil
}

func (s *service) GetOrderByID(ctx context.Context, id string) (*Order, error) {
	ord, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("service: failed to fetch order by id: %w", err)
	}
	return ord, nil
}

func (s *service) ListOrders(ctx context.Context) ([]Order, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list orders: %w", err)
	}
	return orders, nil
}
