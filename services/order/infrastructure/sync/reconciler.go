package sync

import (
	"context"
	"fmt"

	"github.com/ghuser/orderflow/pkg/logger"
	"github.com/ghuser/orderflow/services/order/domain/models"
	"github.com/ghuser/orderflow/services/order/domain/repositories"
)

// Reconciler keeps the primary store and an optional secondary store
// approximately consistent without ever blocking the caller.
//
// This is cache warming and mirroring, not replication: a failed mirror
// attempt is simply lost until the next write or read schedules another
// one, and the pull path overwrites the primary wholesale whenever the
// secondary returns a non-empty result (last successful read wins).
type Reconciler struct {
	primary   repositories.OrderStore
	secondary repositories.OrderStore // nil disables every method
	queue     *Queue
	log       logger.Logger
}

// NewReconciler wires a reconciler. secondary may be nil, in which case
// every schedule call is a no-op.
func NewReconciler(primary, secondary repositories.OrderStore, queue *Queue, log logger.Logger) *Reconciler {
	return &Reconciler{primary: primary, secondary: secondary, queue: queue, log: log}
}

// Enabled reports whether a secondary store is configured.
func (r *Reconciler) Enabled() bool {
	return r.secondary != nil
}

// MirrorWrite schedules a best-effort upsert of order into the secondary
// store. Mirrors use the update path so a record that already reached the
// secondary through an earlier attempt is replaced, not duplicated.
func (r *Reconciler) MirrorWrite(order *models.Order) {
	if !r.Enabled() {
		return
	}
	mirrored := *order
	mirrored.Products = append([]models.Product(nil), order.Products...)
	r.queue.Enqueue(Task{
		Name: "mirror-write",
		Run: func(ctx context.Context) error {
			return r.secondary.Update(ctx, &mirrored)
		},
	})
}

// MirrorDelete schedules a best-effort delete against the secondary store.
func (r *Reconciler) MirrorDelete(id string) {
	if !r.Enabled() {
		return
	}
	r.queue.Enqueue(Task{
		Name: "mirror-delete",
		Run: func(ctx context.Context) error {
			return r.secondary.Delete(ctx, id)
		},
	})
}

// PullOverwrite schedules a read of the secondary store; when it yields a
// non-empty result the primary store is overwritten with it wholesale.
// There is no merge and no timestamp comparison — a stale secondary will
// replace a richer primary. The result is only visible on a later read.
func (r *Reconciler) PullOverwrite() {
	if !r.Enabled() {
		return
	}
	r.queue.Enqueue(Task{
		Name: "pull-overwrite",
		Run:  r.pullOnce,
	})
}

func (r *Reconciler) pullOnce(ctx context.Context) error {
	remote, err := r.secondary.List(ctx)
	if err != nil {
		return fmt.Errorf("list secondary: %w", err)
	}
	if len(remote) == 0 {
		return nil
	}

	local, err := r.primary.List(ctx)
	if err != nil {
		return fmt.Errorf("list primary: %w", err)
	}

	keep := make(map[string]bool, len(remote))
	for _, o := range remote {
		keep[o.ID] = true
		if err := r.primary.Update(ctx, o); err != nil {
			return fmt.Errorf("overwrite order %s: %w", o.ID, err)
		}
	}
	for _, o := range local {
		if !keep[o.ID] {
			if err := r.primary.Delete(ctx, o.ID); err != nil {
				return fmt.Errorf("prune order %s: %w", o.ID, err)
			}
		}
	}
	r.log.InfoContext(ctx, "sync: primary cache refreshed from secondary", "orders", len(remote))
	return nil
}

// MigrateIfEmpty copies the primary store's current contents into the
// secondary once, at startup, when the secondary is reachable and empty.
// Failures are logged and swallowed; the migration is retried naturally on
// the next process start.
func (r *Reconciler) MigrateIfEmpty(ctx context.Context) {
	if !r.Enabled() {
		return
	}
	remote, err := r.secondary.List(ctx)
	if err != nil {
		r.log.WarnContext(ctx, "sync: startup migration skipped, secondary unreachable", "error", err)
		return
	}
	if len(remote) > 0 {
		return
	}
	local, err := r.primary.List(ctx)
	if err != nil {
		r.log.WarnContext(ctx, "sync: startup migration skipped, primary unreadable", "error", err)
		return
	}
	migrated := 0
	for _, o := range local {
		if err := r.secondary.Update(ctx, o); err != nil {
			r.log.WarnContext(ctx, "sync: migrate order failed", "order_id", o.ID, "error", err)
			continue
		}
		migrated++
	}
	if migrated > 0 {
		r.log.InfoContext(ctx, "sync: migrated primary orders to empty secondary", "orders", migrated)
	}
}

// FullSync mirrors every primary order into the secondary store. Used by
// the scheduled full-sync workflow; unlike the queue tasks this runs
// synchronously and reports its error to the scheduler.
func (r *Reconciler) FullSync(ctx context.Context) error {
	if !r.Enabled() {
		return nil
	}
	local, err := r.primary.List(ctx)
	if err != nil {
		return fmt.Errorf("full sync: list primary: %w", err)
	}
	for _, o := range local {
		if err := r.secondary.Update(ctx, o); err != nil {
			return fmt.Errorf("full sync: mirror order %s: %w", o.ID, err)
		}
	}
	r.log.InfoContext(ctx, "sync: full mirror pass complete", "orders", len(local))
	return nil
}
