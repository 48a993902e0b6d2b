package order

import "time"

// Item is one requested order line. Qty below 1 is coerced to 1 when the
// order is priced.
type Item struct {
	ProductID string
	Qty       int
}

// Request is the immutable input to PlaceOrder.
type Request struct {
	UserID         string
	Items          []Item
	ShippingMethod string
}

// Order is the result of a successful placement. It is constructed only
// after a successful charge and never mutated afterwards.
type Order struct {
	OrderID       string
	UserID        string
	Subtotal      float64
	ShippingCost  float64
	Total         float64
	TransactionID string
	CreatedAt     time.Time
}
