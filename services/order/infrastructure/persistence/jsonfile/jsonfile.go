// Package jsonfile provides an OrderStore persisting all orders as a single
// JSON document on disk. Writes replace the whole document atomically
// (temp file + rename), matching the one-overwrite-per-write atomicity of
// a browser key/value store.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	domain "github.com/ghuser/orderflow/services/order/domain"
	"github.com/ghuser/orderflow/services/order/domain/models"
)

// Store persists orders in one JSON file.
type Store struct {
	mu   sync.Mutex
	path string
}

// New returns a Store writing to path. The parent directory is created if
// missing; the file itself is created on first write.
func New(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("jsonfile: create data dir: %w", err)
	}
	return &Store{path: path}, nil
}

// Save appends a new order. Returns ErrOrderExists when the id is taken.
func (s *Store) Save(_ context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load()
	if err != nil {
		return err
	}
	for _, o := range orders {
		if o.ID == order.ID {
			return domain.ErrOrderExists
		}
	}
	orders = append(orders, order)
	return s.write(orders)
}

// List returns all valid orders, normalized, newest first. Invalid records
// are pruned from the file as a side effect of being read, so demo residue
// does not survive the first listing.
func (s *Store) List(_ context.Context) ([]*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load()
	if err != nil {
		return nil, err
	}
	clean := models.SanitizeList(orders)
	if len(clean) != len(orders) {
		if err := s.write(clean); err != nil {
			return nil, err
		}
	}
	return clean, nil
}

// Update replaces the order with a matching id, appending when absent.
// The stored record's creation time survives the replace; order is updated
// to reflect what was persisted.
func (s *Store) Update(_ context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load()
	if err != nil {
		return err
	}
	replaced := false
	for i, o := range orders {
		if o.ID == order.ID {
			order.CreatedAt = o.CreatedAt
			orders[i] = order
			replaced = true
			break
		}
	}
	if !replaced {
		orders = append(orders, order)
	}
	return s.write(orders)
}

// Delete removes the order if present. Absent ids are a no-op.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load()
	if err != nil {
		return err
	}
	kept := orders[:0]
	for _, o := range orders {
		if o.ID != id {
			kept = append(kept, o)
		}
	}
	if len(kept) == len(orders) {
		return nil
	}
	return s.write(kept)
}

// Ping checks that the data directory is accessible.
func (s *Store) Ping(_ context.Context) error {
	if _, err := os.Stat(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return nil
}

// Close is a no-op; every write already reaches disk.
func (s *Store) Close() error { return nil }

func (s *Store) load() ([]*models.Order, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrPersistence, s.path, err)
	}
	var orders []*models.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", domain.ErrPersistence, s.path, err)
	}
	return orders, nil
}

func (s *Store) write(orders []*models.Order) error {
	if orders == nil {
		orders = []*models.Order{}
	}
	data, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("%w: encode orders: %w", domain.ErrPersistence, err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %w", domain.ErrPersistence, tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("%w: replace %s: %w", domain.ErrPersistence, s.path, err)
	}
	return nil
}
