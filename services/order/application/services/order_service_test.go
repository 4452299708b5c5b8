package services

import (
	"context"
	"errors"
	gosync "sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	pkgcache "github.com/ghuser/orderflow/pkg/cache"
	"github.com/ghuser/orderflow/pkg/config"
	"github.com/ghuser/orderflow/pkg/logger"
	orderdomain "github.com/ghuser/orderflow/services/order/domain"
	"github.com/ghuser/orderflow/services/order/domain/models"
	"github.com/ghuser/orderflow/services/order/domain/repositories"
	"github.com/ghuser/orderflow/services/order/infrastructure/persistence/memory"
	ordersync "github.com/ghuser/orderflow/services/order/infrastructure/sync"
)

func testLogger() logger.Logger {
	return logger.New(&config.Config{LogLevel: "error"})
}

func newOrderService(t *testing.T, secondary *memory.Store) (*OrderService, *memory.Store) {
	t.Helper()
	primary := memory.New()
	q := ordersync.NewQueue(16, 1, 0, testLogger())
	t.Cleanup(q.Close)
	var sec repositories.OrderStore
	if secondary != nil {
		sec = secondary
	}
	rec := ordersync.NewReconciler(primary, sec, q, testLogger())
	return NewOrderService(primary, rec, nil, nil, testLogger()), primary
}

func validInput() *models.Order {
	return models.NewOrder("2026-08-30", "tech supply co.", []models.Product{
		{ID: models.NewProductID(), Name: "  RAM module ", Quantity: 10, Price: 19.99, Category: "memory", Brand: "kingston"},
		{ID: models.NewProductID(), Name: "SSD drive", Quantity: 5, Price: 24.50, Category: "storage", Brand: "samsung"},
	})
}

func TestOrderService_SaveOrder(t *testing.T) {
	ctx := context.Background()
	svc, store := newOrderService(t, nil)

	saved, err := svc.SaveOrder(ctx, validInput())
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if saved.Supplier != "Tech Supply Co." {
		t.Fatalf("supplier not normalized: %q", saved.Supplier)
	}
	if saved.TotalAmount != 322.40 {
		t.Fatalf("total = %v, want 322.40", saved.TotalAmount)
	}
	if saved.Products[0].Name != "RAM module" {
		t.Fatalf("product name not trimmed: %q", saved.Products[0].Name)
	}

	got, _ := store.List(ctx)
	if len(got) != 1 {
		t.Fatalf("order not persisted, store has %d", len(got))
	}
}

func TestOrderService_SaveOrder_TotalNeverTrusted(t *testing.T) {
	ctx := context.Background()
	svc, _ := newOrderService(t, nil)

	o := validInput()
	o.TotalAmount = 1.23 // client-supplied garbage

	saved, err := svc.SaveOrder(ctx, o)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.TotalAmount != 322.40 {
		t.Fatalf("client total was trusted: %v", saved.TotalAmount)
	}
}

func TestOrderService_SaveOrder_Invalid(t *testing.T) {
	ctx := context.Background()
	svc, _ := newOrderService(t, nil)

	tests := []struct {
		name   string
		mutate func(*models.Order)
	}{
		{"no products", func(o *models.Order) { o.Products = nil }},
		{"bad order id", func(o *models.Order) { o.ID = "demo-1" }},
		{"bad product id", func(o *models.Order) { o.Products[0].ID = "x" }},
		{"negative price", func(o *models.Order) { o.Products[0].Price = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := validInput()
			tt.mutate(o)
			if _, err := svc.SaveOrder(ctx, o); !errors.Is(err, orderdomain.ErrInvalidOrder) {
				t.Fatalf("expected ErrInvalidOrder, got %v", err)
			}
		})
	}
}

func TestOrderService_SaveOrder_Duplicate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newOrderService(t, nil)

	o := validInput()
	if _, err := svc.SaveOrder(ctx, o); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if _, err := svc.SaveOrder(ctx, o); !errors.Is(err, orderdomain.ErrOrderExists) {
		t.Fatalf("expected ErrOrderExists, got %v", err)
	}
}

func TestOrderService_SaveOrder_MirrorsToSecondary(t *testing.T) {
	ctx := context.Background()
	secondary := memory.New()
	svc, _ := newOrderService(t, secondary)

	saved, err := svc.SaveOrder(ctx, validInput())
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		mirrored, _ := secondary.List(ctx)
		if len(mirrored) == 1 && mirrored[0].ID == saved.ID {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("order never reached the secondary store")
}

func TestOrderService_GetOrders(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store yields empty non-nil slice", func(t *testing.T) {
		svc, _ := newOrderService(t, nil)
		got := svc.GetOrders(ctx)
		if got == nil || len(got) != 0 {
			t.Fatalf("expected empty slice, got %v", got)
		}
	})

	t.Run("storage failure degrades to empty list", func(t *testing.T) {
		q := ordersync.NewQueue(4, 1, 0, testLogger())
		t.Cleanup(q.Close)
		failing := &failingStore{err: errors.New("disk on fire")}
		rec := ordersync.NewReconciler(failing, nil, q, testLogger())
		svc := NewOrderService(failing, rec, nil, nil, testLogger())

		got := svc.GetOrders(ctx)
		if got == nil || len(got) != 0 {
			t.Fatalf("expected empty slice on failure, got %v", got)
		}
	})
}

func TestOrderService_UpdateOrder(t *testing.T) {
	ctx := context.Background()
	svc, store := newOrderService(t, nil)

	t.Run("falls back to insert", func(t *testing.T) {
		o := validInput()
		updated, err := svc.UpdateOrder(ctx, o)
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.UpdatedAt == nil {
			t.Fatal("UpdatedAt not stamped")
		}
		got, _ := store.List(ctx)
		if len(got) != 1 {
			t.Fatalf("expected fallback insert, store has %d", len(got))
		}
	})

	t.Run("replaces in place", func(t *testing.T) {
		got, _ := store.List(ctx)
		o := got[0]
		o.Supplier = "new supplier inc."
		if _, err := svc.UpdateOrder(ctx, o); err != nil {
			t.Fatalf("update: %v", err)
		}
		after, _ := store.List(ctx)
		if len(after) != 1 {
			t.Fatalf("update duplicated the order: %d", len(after))
		}
		if after[0].Supplier != "New Supplier Inc." {
			t.Fatalf("supplier = %q", after[0].Supplier)
		}
	})
}

func TestOrderService_DeleteOrder(t *testing.T) {
	ctx := context.Background()
	svc, store := newOrderService(t, nil)

	saved, err := svc.SaveOrder(ctx, validInput())
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := svc.DeleteOrder(ctx, saved.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.DeleteOrder(ctx, saved.ID); err != nil {
		t.Fatalf("second delete should be a no-op: %v", err)
	}
	if err := svc.DeleteOrder(ctx, "not-a-uuid"); !errors.Is(err, orderdomain.ErrInvalidOrder) {
		t.Fatalf("expected ErrInvalidOrder for malformed id, got %v", err)
	}

	got, _ := store.List(ctx)
	if len(got) != 0 {
		t.Fatalf("expected empty store, got %d", len(got))
	}
}

func TestOrderService_WritesInvalidatePriceListCache(t *testing.T) {
	ctx := context.Background()
	primary := memory.New()
	q := ordersync.NewQueue(16, 1, 0, testLogger())
	t.Cleanup(q.Close)
	rec := ordersync.NewReconciler(primary, nil, q, testLogger())
	fake := &fakePriceCache{}
	svc := NewOrderService(primary, rec, nil, fake, testLogger())

	seedStale := func() {
		if err := fake.Set(ctx, []pkgcache.PriceRow{{Name: "stale row"}}); err != nil {
			t.Fatalf("seed cache: %v", err)
		}
	}
	assertDropped := func(op string) {
		t.Helper()
		if _, err := fake.Get(ctx); !errors.Is(err, redis.Nil) {
			t.Fatalf("%s left the cached price list in place", op)
		}
	}

	seedStale()
	saved, err := svc.SaveOrder(ctx, validInput())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	assertDropped("save")

	seedStale()
	saved.Supplier = "new supplier"
	if _, err := svc.UpdateOrder(ctx, saved); err != nil {
		t.Fatalf("update: %v", err)
	}
	assertDropped("update")

	seedStale()
	if err := svc.DeleteOrder(ctx, saved.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	assertDropped("delete")
}

// A write must be visible on the next price list read even when the order
// store runs without the event bus, so no worker drops the cache.
func TestPriceList_FreshAfterWrite(t *testing.T) {
	ctx := context.Background()
	primary := memory.New()
	q := ordersync.NewQueue(16, 1, 0, testLogger())
	t.Cleanup(q.Close)
	rec := ordersync.NewReconciler(primary, nil, q, testLogger())
	fake := &fakePriceCache{}
	orders := NewOrderService(primary, rec, nil, fake, testLogger())
	prices := NewPriceListService(primary, fake, testLogger())

	if err := fake.Set(ctx, []pkgcache.PriceRow{{Name: "stale row"}}); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	if _, err := orders.SaveOrder(ctx, validInput()); err != nil {
		t.Fatalf("save: %v", err)
	}

	rows := prices.GetPriceList(ctx, SortByName)
	if len(rows) != 2 {
		t.Fatalf("expected 2 fresh rows, got %d", len(rows))
	}
	for _, r := range rows {
		if r.Name == "stale row" {
			t.Fatal("price list served stale cached rows after a write")
		}
	}
}

// fakePriceCache is an in-memory stand-in for the Redis price list cache.
// A missing entry is reported as redis.Nil, matching the real client.
type fakePriceCache struct {
	mu   gosync.Mutex
	rows []pkgcache.PriceRow
}

func (f *fakePriceCache) Get(context.Context) ([]pkgcache.PriceRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rows == nil {
		return nil, redis.Nil
	}
	return f.rows, nil
}

func (f *fakePriceCache) Set(_ context.Context, rows []pkgcache.PriceRow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = rows
	return nil
}

func (f *fakePriceCache) Invalidate(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = nil
	return nil
}

// failingStore errors on every operation.
type failingStore struct{ err error }

func (f *failingStore) Save(context.Context, *models.Order) error      { return f.err }
func (f *failingStore) List(context.Context) ([]*models.Order, error)  { return nil, f.err }
func (f *failingStore) Update(context.Context, *models.Order) error    { return f.err }
func (f *failingStore) Delete(context.Context, string) error           { return f.err }
func (f *failingStore) Ping(context.Context) error                     { return f.err }
func (f *failingStore) Close() error                                   { return nil }
