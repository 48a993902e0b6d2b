package order

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrDuplicateOrderID = errors.New("order with this ID already exists")
)

// Store keeps placed orders. The core runs on the in-memory implementation;
// durable storage is a collaborator outside this service's scope.
type Store interface {
	Save(ctx context.Context, ord *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context) ([]Order, error)
}

type memoryStore struct {
	mu     sync.RWMutex
	ids    []string
	orders map[string]*Order
}

func NewMemoryStore() Store {
	return &memoryStore{orders: make(map[string]*Order)}
}

func (s *memoryStore) Save(ctx context.Context, ord *Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.orders[ord.OrderID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateOrderID, ord.OrderID)
	}

	copied := *ord
	s.ids = append(s.ids, ord.OrderID)
	s.orders[ord.OrderID] = &copied
	return nil
}

func (s *memoryStore) GetByID(ctx context.Context, id string) (*Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ord, ok := s.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}

	copied := *ord
	return &copied, nil
}

func (s *memoryStore) List(ctx context.Context) ([]Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Order, 0, len(s.ids))
	for _, id := range s.ids {
		result = append(result, *s.orders[id])
	}
	return result, nil
}
