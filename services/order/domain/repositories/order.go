package repositories

import (
	"context"

	"github.com/ghuser/orderflow/services/order/domain/models"
)

// OrderStore is the persistence interface for the Order aggregate. The
// domain layer owns this interface; each storage backend implements it.
//
// Contracts shared by all backends:
//   - Save appends a new order and must not merge with an existing record
//     sharing the same id; it returns ErrOrderExists in that case.
//   - List returns every order visible to the backend sorted by CreatedAt
//     descending, after dropping records whose order or product ids are not
//     valid UUIDs and applying text normalization.
//   - Update replaces the record with a matching id; when no such record
//     exists it appends instead (upsert fallback, kept from the original
//     behavior — see DESIGN.md). The stored record's CreatedAt survives the
//     replace, and the passed order is updated to carry the persisted value.
//   - Delete removes the matching record; deleting an absent id is a no-op.
type OrderStore interface {
	Save(ctx context.Context, order *models.Order) error
	List(ctx context.Context) ([]*models.Order, error)
	Update(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, id string) error

	// Ping reports backend reachability for health checks.
	Ping(ctx context.Context) error
	Close() error
}
