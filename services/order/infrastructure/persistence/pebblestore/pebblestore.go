// Package pebblestore provides an OrderStore backed by Pebble, an embedded
// LSM key/value store. Each order is one JSON document keyed by its id.
// It plays the role an indexed browser document store plays in the web build.
package pebblestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/cockroachdb/pebble"

	domain "github.com/ghuser/orderflow/services/order/domain"
	"github.com/ghuser/orderflow/services/order/domain/models"
)

// Store wraps a Pebble database with the OrderStore contract.
type Store struct {
	db *pebble.DB
}

// New opens (or creates) a Pebble database under dir.
func New(dir string) (*Store, error) {
	db, err := pebble.Open(filepath.Clean(dir), &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("pebblestore: open %s: %w", dir, err)
	}
	return &Store{db: db}, nil
}

// Save appends a new order. Returns ErrOrderExists when the id is taken.
func (s *Store) Save(_ context.Context, order *models.Order) error {
	key := []byte(order.ID)
	_, closer, err := s.db.Get(key)
	if err == nil {
		_ = closer.Close()
		return domain.ErrOrderExists
	}
	if !errors.Is(err, pebble.ErrNotFound) {
		return fmt.Errorf("%w: get %s: %w", domain.ErrPersistence, order.ID, err)
	}
	return s.put(key, order)
}

// List returns all valid orders, normalized, newest first.
func (s *Store) List(_ context.Context) ([]*models.Order, error) {
	it, err := s.db.NewIter(nil)
	if err != nil {
		return nil, fmt.Errorf("%w: iterator: %w", domain.ErrPersistence, err)
	}
	defer it.Close()

	var raw []*models.Order
	for it.First(); it.Valid(); it.Next() {
		var o models.Order
		if err := json.Unmarshal(it.Value(), &o); err != nil {
			continue
		}
		raw = append(raw, &o)
	}
	if err := it.Error(); err != nil {
		return nil, fmt.Errorf("%w: scan: %w", domain.ErrPersistence, err)
	}
	return models.SanitizeList(raw), nil
}

// Update replaces the order with a matching id; Set is an upsert, covering
// the append-when-absent fallback. The stored record's creation time
// survives the replace.
func (s *Store) Update(_ context.Context, order *models.Order) error {
	key := []byte(order.ID)
	prev, closer, err := s.db.Get(key)
	if err == nil {
		var existing models.Order
		if uerr := json.Unmarshal(prev, &existing); uerr == nil {
			order.CreatedAt = existing.CreatedAt
		}
		_ = closer.Close()
	} else if !errors.Is(err, pebble.ErrNotFound) {
		return fmt.Errorf("%w: get %s: %w", domain.ErrPersistence, order.ID, err)
	}
	return s.put(key, order)
}

// Delete removes the order if present. Pebble's Delete on a missing key
// succeeds, matching the no-op contract.
func (s *Store) Delete(_ context.Context, id string) error {
	if err := s.db.Delete([]byte(id), pebble.Sync); err != nil {
		return fmt.Errorf("%w: delete %s: %w", domain.ErrPersistence, id, err)
	}
	return nil
}

// Ping runs a cheap point read to confirm the store is open.
func (s *Store) Ping(_ context.Context) error {
	_, closer, err := s.db.Get([]byte("_ping"))
	if err == nil {
		_ = closer.Close()
		return nil
	}
	if errors.Is(err, pebble.ErrNotFound) {
		return nil
	}
	return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
}

// Close flushes and closes the database.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) put(key []byte, order *models.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", domain.ErrPersistence, order.ID, err)
	}
	if err := s.db.Set(key, data, pebble.Sync); err != nil {
		return fmt.Errorf("%w: set %s: %w", domain.ErrPersistence, order.ID, err)
	}
	return nil
}
