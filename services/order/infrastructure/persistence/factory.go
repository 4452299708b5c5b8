// Package persistence selects and opens the configured storage backend.
//
// The backend is a deploy-time choice (STORAGE_BACKEND); an unknown name or
// a backend that fails to open surfaces ErrBackendUnavailable at startup
// instead of being probed for silently at runtime.
package persistence

import (
	"context"
	"fmt"

	"github.com/ghuser/orderflow/pkg/config"
	"github.com/ghuser/orderflow/pkg/database"
	"github.com/ghuser/orderflow/pkg/logger"
	domain "github.com/ghuser/orderflow/services/order/domain"
	"github.com/ghuser/orderflow/services/order/domain/repositories"
	"github.com/ghuser/orderflow/services/order/infrastructure/persistence/boltstore"
	"github.com/ghuser/orderflow/services/order/infrastructure/persistence/jsonfile"
	"github.com/ghuser/orderflow/services/order/infrastructure/persistence/memory"
	"github.com/ghuser/orderflow/services/order/infrastructure/persistence/pebblestore"
	"github.com/ghuser/orderflow/services/order/infrastructure/persistence/postgres"
)

// NewPrimary opens the primary order store named by cfg.StorageBackend.
func NewPrimary(ctx context.Context, cfg *config.Config, log logger.Logger) (repositories.OrderStore, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		return memory.New(), nil
	case config.BackendFile:
		store, err := jsonfile.New(cfg.DataFile)
		if err != nil {
			return nil, unavailable(cfg.StorageBackend, err)
		}
		return store, nil
	case config.BackendBolt:
		store, err := boltstore.New(cfg.BoltPath)
		if err != nil {
			return nil, unavailable(cfg.StorageBackend, err)
		}
		return store, nil
	case config.BackendPebble:
		store, err := pebblestore.New(cfg.PebblePath)
		if err != nil {
			return nil, unavailable(cfg.StorageBackend, err)
		}
		return store, nil
	case config.BackendPostgres:
		db, err := database.NewPool(ctx, cfg.OrdersDatabaseURL, log)
		if err != nil {
			return nil, unavailable(cfg.StorageBackend, err)
		}
		return postgres.New(db), nil
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", domain.ErrBackendUnavailable, cfg.StorageBackend)
	}
}

// NewRemote opens the remote mirror store used by background reconciliation.
// Returns (nil, nil) when no remote database is configured; callers treat a
// nil store as "reconciliation disabled".
func NewRemote(ctx context.Context, cfg *config.Config, log logger.Logger) (repositories.OrderStore, error) {
	if !cfg.SyncEnabled() {
		return nil, nil
	}
	db, err := database.NewPool(ctx, cfg.RemoteDatabaseURL, log)
	if err != nil {
		return nil, unavailable("remote postgres", err)
	}
	return postgres.New(db), nil
}

func unavailable(name string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrBackendUnavailable, name, err)
}
