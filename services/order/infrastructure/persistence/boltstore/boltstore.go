// Package boltstore provides an OrderStore backed by BoltDB, the on-device
// key/value backend. All data lives in a single file; one JSON value per
// order id inside one bucket.
package boltstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "github.com/boltdb/bolt"

	domain "github.com/ghuser/orderflow/services/order/domain"
	"github.com/ghuser/orderflow/services/order/domain/models"
)

const bucketName = "orders"

// Store wraps a BoltDB database with the OrderStore contract.
type Store struct {
	db *bolt.DB
}

// New opens (or creates) a BoltDB database at path and ensures the orders
// bucket exists.
func New(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("boltstore: create data dir: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("boltstore: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("boltstore: create bucket: %w", err)
	}
	return &Store{db: db}, nil
}

// Save appends a new order. Returns ErrOrderExists when the id is taken.
func (s *Store) Save(_ context.Context, order *models.Order) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b.Get([]byte(order.ID)) != nil {
			return domain.ErrOrderExists
		}
		data, err := json.Marshal(order)
		if err != nil {
			return err
		}
		return b.Put([]byte(order.ID), data)
	})
	return wrap(err)
}

// List returns all valid orders, normalized, newest first. Undecodable
// values are skipped, not fatal.
func (s *Store) List(_ context.Context) ([]*models.Order, error) {
	var raw []*models.Order
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		return b.ForEach(func(_, v []byte) error {
			var o models.Order
			if err := json.Unmarshal(v, &o); err != nil {
				return nil
			}
			raw = append(raw, &o)
			return nil
		})
	})
	if err != nil {
		return nil, wrap(err)
	}
	return models.SanitizeList(raw), nil
}

// Update replaces the order with a matching id. Put is an upsert, which is
// exactly the append-when-absent fallback the contract asks for. The stored
// record's creation time survives the replace.
func (s *Store) Update(_ context.Context, order *models.Order) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if prev := b.Get([]byte(order.ID)); prev != nil {
			var existing models.Order
			if err := json.Unmarshal(prev, &existing); err == nil {
				order.CreatedAt = existing.CreatedAt
			}
		}
		data, err := json.Marshal(order)
		if err != nil {
			return err
		}
		return b.Put([]byte(order.ID), data)
	})
	return wrap(err)
}

// Delete removes the order if present. Bolt's Delete on a missing key is
// already a no-op.
func (s *Store) Delete(_ context.Context, id string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Delete([]byte(id))
	})
	return wrap(err)
}

// Ping verifies the bucket is readable.
func (s *Store) Ping(_ context.Context) error {
	return wrap(s.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(bucketName)) == nil {
			return fmt.Errorf("bucket %q missing", bucketName)
		}
		return nil
	}))
}

// Close releases the database file lock.
func (s *Store) Close() error { return s.db.Close() }

func wrap(err error) error {
	if err == nil {
		return nil
	}
	// Domain sentinels pass through unwrapped so errors.Is keeps working.
	if errors.Is(err, domain.ErrOrderExists) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
}
