// Package payment adapts the internal charge contract onto an external
// payment provider with a different call shape.
package payment

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidAmount = errors.New("charge amount must be a positive finite number")
	ErrPaymentFailed = errors.New("payment was not accepted by the provider")
)

// StatusSuccess is the only provider status treated as an accepted payment.
const StatusSuccess = "success"

// ChargeRequest is the internal contract: amounts in major currency units.
type ChargeRequest struct {
	Amount   float64
	Currency string
	OrderID  string
}

// ChargeResult is returned on a successful charge only.
type ChargeResult struct {
	TransactionID string
}

// ProviderResult is the external provider's raw response.
type ProviderResult struct {
	Status        string
	TransactionID string
	Provider      string
}

// Provider is the external payment interface being adapted. It takes the
// amount in minor currency units and opaque metadata.
type Provider interface {
	Pay(ctx context.Context, amountMinor int64, currency string, meta map[string]string) (ProviderResult, error)
}

// Adapter translates ChargeRequest into a Provider call and normalizes the
// result. It performs exactly one provider call per Charge and never retries.
type Adapter struct {
	provider Provider
}

func NewAdapter(provider Provider) *Adapter {
	return &Adapter{provider: provider}
}

// Charge validates the amount, converts it to minor units and runs the
// provider call. Any provider error or non-success status maps to
// ErrPaymentFailed.
func (a *Adapter) Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error) {
	if req.Amount <= 0 || math.IsInf(req.Amount, 0) || math.IsNaN(req.Amount) {
		return ChargeResult{}, fmt.Errorf("%w: got %f", ErrInvalidAmount, req.Amount)
	}

	amountMinor := int64(math.Round(req.Amount * 100))
	meta := map[string]string{"orderId": req.OrderID}

	result, err := a.provider.Pay(ctx, amountMinor, req.Currency, meta)
	if err != nil {
		log.Error().Err(err).Str("order_id", req.OrderID).Msg("payment: provider call failed")
		return ChargeResult{}, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	if result.Status != StatusSuccess {
		log.Warn().
			Str("order_id", req.OrderID).
			Str("status", result.Status).
			Str("provider", result.Provider).
			Msg("payment: provider returned non-success status")
		return ChargeResult{}, fmt.Errorf("%w: provider status %q", ErrPaymentFailed, result.Status)
	}

	return ChargeResult{TransactionID: result.TransactionID}, nil
}
