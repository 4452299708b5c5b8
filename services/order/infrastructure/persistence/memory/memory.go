// Package memory provides an in-memory OrderStore used in development,
// testing, and as the reference behavior for the other backends.
package memory

import (
	"context"
	"sync"

	domain "github.com/ghuser/orderflow/services/order/domain"
	"github.com/ghuser/orderflow/services/order/domain/models"
)

// Store is a thread-safe map-backed OrderStore.
type Store struct {
	mu     sync.RWMutex
	orders map[string]*models.Order
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{orders: make(map[string]*models.Order)}
}

// Save appends a new order. Returns ErrOrderExists when the id is taken.
func (s *Store) Save(_ context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[order.ID]; ok {
		return domain.ErrOrderExists
	}
	s.orders[order.ID] = clone(order)
	return nil
}

// List returns all valid orders, normalized, newest first.
func (s *Store) List(_ context.Context) ([]*models.Order, error) {
	s.mu.RLock()
	raw := make([]*models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		raw = append(raw, clone(o))
	}
	s.mu.RUnlock()
	return models.SanitizeList(raw), nil
}

// Update replaces the order with a matching id, appending when absent.
// The stored record's creation time survives the replace; order is updated
// to reflect what was persisted.
func (s *Store) Update(_ context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.orders[order.ID]; ok {
		order.CreatedAt = existing.CreatedAt
	}
	s.orders[order.ID] = clone(order)
	return nil
}

// Delete removes the order if present. Absent ids are a no-op.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.orders, id)
	return nil
}

// Ping always succeeds.
func (s *Store) Ping(_ context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close() error { return nil }

// clone copies an order so callers cannot mutate stored state.
func clone(o *models.Order) *models.Order {
	c := *o
	c.Products = make([]models.Product, len(o.Products))
	copy(c.Products, o.Products)
	if o.UpdatedAt != nil {
		t := *o.UpdatedAt
		c.UpdatedAt = &t
	}
	return &c
}
