package payment

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid"
)

// FakeProvider stands in for a real payment provider. It accepts every
// charge and issues a fresh transaction id.
type FakeProvider struct{}

func NewFakeProvider() *FakeProvider {
	return &FakeProvider{}
}

func (p *FakeProvider) Pay(ctx context.Context, amountMinor int64, currency string, meta map[string]string) (ProviderResult, error) {
	txID, err := uuid.NewV4()
	if err != nil {
		return ProviderResult{}, fmt.Errorf("fake provider: failed to generate transaction id: %w", err)
	}

	return ProviderResult{
		Status:        StatusSuccess,
		TransactionID: fmt.Sprintf("tx_%s", txID),
		Provider:      "FakePay",
	}, nil
}
