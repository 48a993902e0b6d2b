// Package shipping holds the shipping cost strategies used when pricing an order.
package shipping

// Strategy calculates the shipping cost for a given order subtotal.
type Strategy interface {
	Calc(subtotal float64) float64
}

const (
	MethodPickup  = "pickup"
	MethodCourier = "courier"
	MethodExpress = "express"
)

const (
	courierDiscountThreshold = 3000
	courierDiscountedCost    = 199
	courierBaseCost          = 399
	expressCost              = 799
)

// Pickup is free regardless of the subtotal.
type Pickup struct{}

func (Pickup) Calc(subtotal float64) float64 {
	return 0
}

// Courier gets cheaper once the cart is expensive enough.
type Courier struct{}

func (Courier) Calc(subtotal float64) float64 {
	if subtotal >= courierDiscountThreshold {
		return courierDiscountedCost
	}
	return courierBaseCost
}

// Express is a flat rate.
type Express struct{}

func (Express) Calc(subtotal float64) float64 {
	return expressCost
}

// Pick resolves a shipping method name to its strategy. Unknown or empty
// methods fall back to courier; that fallback is part of the contract, not
// an error.
func Pick(method string) Strategy {
	switch method {
	case MethodPickup:
		return Pickup{}
	case MethodExpress:
		return Express{}
	case MethodCourier:
		return Courier{}
	default:
		return Courier{}
	}
}
