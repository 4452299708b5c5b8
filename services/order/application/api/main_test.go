package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/orderflow/pkg/app"
	"github.com/ghuser/orderflow/pkg/config"
	"github.com/ghuser/orderflow/pkg/logger"
	"github.com/ghuser/orderflow/services/order/application/api"
	"github.com/ghuser/orderflow/services/order/domain/models"
	"github.com/ghuser/orderflow/services/order/infrastructure/persistence/memory"
	ordersync "github.com/ghuser/orderflow/services/order/infrastructure/sync"
)

func newTestRouter(t *testing.T) (http.Handler, *memory.Store) {
	t.Helper()
	log := logger.New(&config.Config{LogLevel: "error"})
	store := memory.New()
	q := ordersync.NewQueue(16, 1, 0, log)
	t.Cleanup(q.Close)

	a := &app.Application{
		Store:      store,
		Reconciler: ordersync.NewReconciler(store, nil, q, log),
		Logger:     log,
	}

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		api.OrderRoutes(r, a)
	})
	return r, store
}

const orderBody = `{
	"date": "2026-08-30",
	"supplier": "tech supply co.",
	"products": [
		{"name": "RAM module", "quantity": 10, "price": 19.99, "category": "memory", "brand": "kingston"},
		{"name": "SSD drive", "quantity": 5, "price": 24.50, "category": "storage", "brand": "samsung"}
	]
}`

func postOrder(t *testing.T, r http.Handler) models.Order {
	t.Helper()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(orderBody))
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var o models.Order
	if err := json.NewDecoder(rr.Body).Decode(&o); err != nil {
		t.Fatalf("decode created order: %v", err)
	}
	return o
}

func TestPostOrder(t *testing.T) {
	r, _ := newTestRouter(t)

	o := postOrder(t, r)
	if o.Supplier != "Tech Supply Co." {
		t.Errorf("supplier not normalized: %q", o.Supplier)
	}
	if o.TotalAmount != 322.40 {
		t.Errorf("total = %v, want 322.40", o.TotalAmount)
	}
	if !models.ValidID(o.ID) {
		t.Errorf("invalid generated id %q", o.ID)
	}
	for _, p := range o.Products {
		if !models.ValidID(p.ID) {
			t.Errorf("product id not generated: %q", p.ID)
		}
	}
}

func TestPostOrder_Validation(t *testing.T) {
	r, _ := newTestRouter(t)

	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{"malformed json", `{nope`, http.StatusBadRequest},
		{"missing supplier", `{"date":"2026-08-30","products":[{"name":"x"}]}`, http.StatusUnprocessableEntity},
		{"no products", `{"date":"2026-08-30","supplier":"Acme","products":[]}`, http.StatusUnprocessableEntity},
		{"bad date format", `{"date":"30/08/2026","supplier":"Acme","products":[{"name":"x"}]}`, http.StatusUnprocessableEntity},
		{"negative price", `{"date":"2026-08-30","supplier":"Acme","products":[{"name":"x","price":-1}]}`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(tt.body))
			r.ServeHTTP(rr, req)
			if rr.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d: %s", tt.wantCode, rr.Code, rr.Body.String())
			}
		})
	}
}

func TestGetOrders(t *testing.T) {
	r, _ := newTestRouter(t)

	t.Run("empty store returns empty array", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/orders", http.NoBody))
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		if body := strings.TrimSpace(rr.Body.String()); body != "[]" {
			t.Fatalf("expected empty JSON array, got %q", body)
		}
	})

	t.Run("returns created orders", func(t *testing.T) {
		created := postOrder(t, r)

		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/orders", http.NoBody))
		var orders []models.Order
		if err := json.NewDecoder(rr.Body).Decode(&orders); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(orders) != 1 || orders[0].ID != created.ID {
			t.Fatalf("unexpected orders: %+v", orders)
		}
	})
}

func TestPutOrder(t *testing.T) {
	r, store := newTestRouter(t)
	created := postOrder(t, r)

	t.Run("updates in place", func(t *testing.T) {
		body := strings.Replace(orderBody, "tech supply co.", "new supplier", 1)
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/orders/"+created.ID, strings.NewReader(body))
		r.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
		}
		var updated models.Order
		_ = json.NewDecoder(rr.Body).Decode(&updated)
		if updated.Supplier != "New Supplier" {
			t.Errorf("supplier = %q", updated.Supplier)
		}
		if updated.UpdatedAt == nil {
			t.Error("UpdatedAt not stamped")
		}

		got, _ := store.List(req.Context())
		if len(got) != 1 {
			t.Fatalf("update duplicated the order: %d", len(got))
		}
	})

	t.Run("unknown id falls back to insert", func(t *testing.T) {
		newID := "99999999-aaaa-4bbb-8ccc-000000000001"
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/orders/"+newID, strings.NewReader(orderBody))
		r.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
		}

		got, _ := store.List(req.Context())
		if len(got) != 2 {
			t.Fatalf("expected fallback insert to grow the store to 2, got %d", len(got))
		}
	})

	t.Run("malformed path id is rejected", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/orders/not-a-uuid", strings.NewReader(orderBody))
		r.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rr.Code)
		}
	})
}

func TestDeleteOrder(t *testing.T) {
	r, store := newTestRouter(t)
	created := postOrder(t, r)

	del := func() int {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/orders/"+created.ID, http.NoBody))
		return rr.Code
	}

	if code := del(); code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", code)
	}
	if code := del(); code != http.StatusNoContent {
		t.Fatalf("second delete should still be 204, got %d", code)
	}

	got, _ := store.List(httptest.NewRequest(http.MethodGet, "/", http.NoBody).Context())
	if len(got) != 0 {
		t.Fatalf("expected empty store, got %d", len(got))
	}
}

func TestPriceListEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)
	postOrder(t, r)

	t.Run("pricelist rows", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/pricelist?sort=brand", http.NoBody))
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		var rows []map[string]any
		if err := json.NewDecoder(rr.Body).Decode(&rows); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(rows))
		}
		if rows[0]["brand"] != "Kingston" {
			t.Errorf("expected Kingston first when sorted by brand, got %v", rows[0]["brand"])
		}
	})

	t.Run("stats", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/pricelist/stats", http.NoBody))
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		var stats map[string]any
		_ = json.NewDecoder(rr.Body).Decode(&stats)
		if stats["products"] != float64(2) {
			t.Errorf("products = %v, want 2", stats["products"])
		}
	})

	t.Run("csv export", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/pricelist/export", http.NoBody))
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
			t.Errorf("Content-Type = %q", ct)
		}
		if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
			t.Errorf("Content-Disposition = %q", cd)
		}
		if cl := rr.Header().Get("Content-Length"); cl != strconv.Itoa(rr.Body.Len()) {
			t.Errorf("Content-Length = %q, body is %d bytes", cl, rr.Body.Len())
		}
		lines := strings.Split(strings.TrimSpace(rr.Body.String()), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
		}
	})

	t.Run("suggestions", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/suggestions?field=supplier&q=te", http.NoBody))
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		var got []string
		_ = json.NewDecoder(rr.Body).Decode(&got)
		if len(got) != 1 || got[0] != "Tech Supply Co." {
			t.Fatalf("suggestions = %v", got)
		}
	})
}

func TestPutOrder_PreservesCreatedAt(t *testing.T) {
	r, _ := newTestRouter(t)

	put := func(t *testing.T, id, body string) models.Order {
		t.Helper()
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/orders/"+id, strings.NewReader(body))
		r.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
		}
		var updated models.Order
		_ = json.NewDecoder(rr.Body).Decode(&updated)
		return updated
	}

	t.Run("createdAt omitted from the body", func(t *testing.T) {
		created := postOrder(t, r)
		updated := put(t, created.ID, `{
			"date": "2026-08-30",
			"supplier": "Acme",
			"products": [{"name": "Widget", "quantity": 1, "price": 1}]
		}`)
		if !updated.CreatedAt.Equal(created.CreatedAt) {
			t.Errorf("createdAt not preserved: %v vs %v", updated.CreatedAt, created.CreatedAt)
		}
	})

	t.Run("client echoes a createdAt", func(t *testing.T) {
		created := postOrder(t, r)
		updated := put(t, created.ID, fmt.Sprintf(`{
			"date": "2026-08-30",
			"supplier": "Acme",
			"products": [{"name": "Widget", "quantity": 1, "price": 1}],
			"createdAt": %q
		}`, created.CreatedAt.Format(time.RFC3339)))
		if !updated.CreatedAt.Equal(created.CreatedAt) {
			t.Errorf("createdAt not preserved: %v vs %v", updated.CreatedAt, created.CreatedAt)
		}
	})
}
