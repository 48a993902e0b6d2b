// Package catalog is the in-memory product collaborator consumed by the
// order orchestrator and exposed read-only over HTTP.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

var ErrProductNotFound = errors.New("product not found")

type Product struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

// StockEvent describes a stock change handed to subscribers.
type StockEvent struct {
	ProductID string
	Stock     int
	At        time.Time
}

// StockSubscriber receives stock change events. Subscribers run synchronously
// in registration order; a failing subscriber never blocks the others.
type StockSubscriber func(event StockEvent)

// Store keeps the product catalog in memory.
type Store struct {
	mu          sync.RWMutex
	order       []string
	products    map[string]*Product
	subscribers []StockSubscriber
}

// DefaultProducts seeds the demo catalog.
func DefaultProducts() []Product {
	return []Product{
		{ID: "p1", Title: "USB-C cable", Price: 499, Stock: 15},
		{ID: "p2", Title: "Headphones", Price: 2490, Stock: 7},
	}
}

func NewStore(seed []Product) *Store {
	s := &Store{products: make(map[string]*Product, len(seed))}
	for i := range seed {
		p := seed[i]
		s.order = append(s.order, p.ID)
		s.products[p.ID] = &p
	}
	return s
}

// Subscribe registers a stock change subscriber.
func (s *Store) Subscribe(sub StockSubscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, sub)
}

// GetProductByID returns the product or (nil, nil) when it does not exist.
func (s *Store) GetProductByID(ctx context.Context, id string) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}

	copied := *p
	return &copied, nil
}

// List returns all products in seed order.
func (s *Store) List(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Product, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, *s.products[id])
	}
	return result, nil
}

// UpdateStock sets a product's stock level and notifies subscribers.
func (s *Store) UpdateStock(ctx context.Context, id string, stock int) (*Product, error) {
	if stock < 0 {
		return nil, fmt.Errorf("stock for product %s cannot be negative", id)
	}

	s.mu.Lock()
	p, ok := s.products[id]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	p.Stock = stock
	copied := *p
	subscribers := make([]StockSubscriber, len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	event := StockEvent{ProductID: id, Stock: stock, At: time.Now().UTC()}
	for _, sub := range subscribers {
		notifySubscriber(sub, event)
	}

	return &copied, nil
}

// notifySubscriber isolates one subscriber's failure from the rest.
func notifySubscriber(sub StockSubscriber, event StockEvent) {
	defer func() {
		if p := recover(); p != nil {
			log.Warn().Interface("panic_value", p).Str("product_id", event.ProductID).Msg("catalog: stock subscriber panicked")
		}
	}()
	sub(event)
}
