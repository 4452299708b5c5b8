package pebblestore

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/ghuser/orderflow/services/order/domain"
	"github.com/ghuser/orderflow/services/order/domain/models"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sample() *models.Order {
	return models.NewOrder("2026-08-30", "Acme", []models.Product{
		{ID: models.NewProductID(), Name: "Widget", Quantity: 2, Price: 5},
	})
}

func TestStore_SaveAndList(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	o := sample()
	if err := s.Save(ctx, o); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != o.ID {
		t.Fatalf("expected the saved order back, got %+v", got)
	}
}

func TestStore_SaveConflict(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	o := sample()
	if err := s.Save(ctx, o); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save(ctx, o); !errors.Is(err, domain.ErrOrderExists) {
		t.Fatalf("expected ErrOrderExists, got %v", err)
	}
}

func TestStore_UpdateFallsBackToInsert(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	if err := s.Update(ctx, sample()); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected inserted order, got %d", len(got))
	}
}

func TestStore_UpdateKeepsCreationTime(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	o := sample()
	if err := s.Save(ctx, o); err != nil {
		t.Fatalf("save: %v", err)
	}
	original := o.CreatedAt

	replacement := sample()
	replacement.ID = o.ID
	replacement.CreatedAt = original.Add(48 * time.Hour)
	if err := s.Update(ctx, replacement); err != nil {
		t.Fatalf("update: %v", err)
	}

	if !replacement.CreatedAt.Equal(original) {
		t.Fatalf("update did not report the stored creation time: got %v, want %v", replacement.CreatedAt, original)
	}
	got, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || !got[0].CreatedAt.Equal(original) {
		t.Fatalf("creation time changed across update: got %+v", got)
	}
}

func TestStore_DeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	o := sample()
	if err := s.Save(ctx, o); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Delete(ctx, o.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, o.ID); err != nil {
		t.Fatalf("second delete: %v", err)
	}

	got, _ := s.List(ctx)
	if len(got) != 0 {
		t.Fatalf("expected empty store, got %d orders", len(got))
	}
}

func TestStore_ListExcludesInvalidRecords(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	valid := sample()
	if err := s.Save(ctx, valid); err != nil {
		t.Fatalf("save valid: %v", err)
	}
	invalid := sample()
	invalid.ID = "demo-1"
	if err := s.Update(ctx, invalid); err != nil {
		t.Fatalf("seed invalid: %v", err)
	}

	got, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != valid.ID {
		t.Fatalf("expected only the valid order, got %+v", got)
	}
}

func TestStore_Ping(t *testing.T) {
	s := newStore(t)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
