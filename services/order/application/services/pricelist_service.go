package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	pkgcache "github.com/ghuser/orderflow/pkg/cache"
	"github.com/ghuser/orderflow/pkg/logger"
	"github.com/ghuser/orderflow/services/order/domain/models"
	"github.com/ghuser/orderflow/services/order/domain/repositories"
)

// Sort keys accepted by the price list endpoints. Unknown keys fall back to SortByCategory.
const (
	SortByCategory = "category"
	SortByBrand    = "brand"
	SortBySupplier = "supplier"
	SortByName     = "name"
	SortByPrice    = "price"
)

// PriceListStats summarizes the flattened price list.
type PriceListStats struct {
	Products   int     `json:"products"`
	Categories int     `json:"categories"`
	Brands     int     `json:"brands"`
	Suppliers  int     `json:"suppliers"`
	TotalValue float64 `json:"totalValue"`
}

// PriceListCache is the cache surface the services depend on: the
// read-through in PriceListService and the write-path invalidation in
// OrderService. pkg/cache's Redis client satisfies it; a miss is reported
// as redis.Nil.
type PriceListCache interface {
	Get(ctx context.Context) ([]pkgcache.PriceRow, error)
	Set(ctx context.Context, rows []pkgcache.PriceRow) error
	Invalidate(ctx context.Context) error
}

// PriceListService builds the denormalized price list read model: every
// product of every order flattened into one row with its supplier and order
// date attached.
//
// Reads go through Redis when it is configured:
//  1. Check the cache first.
//  2. On miss (or cache error), flatten from the primary store.
//  3. Asynchronously warm the cache with the result.
//
// Rows are cached unsorted; sorting is applied per request.
type PriceListService struct {
	store repositories.OrderStore
	cache PriceListCache // nil when Redis is not configured
	log   logger.Logger
}

// NewPriceListService returns a PriceListService wired with the given store and cache.
func NewPriceListService(store repositories.OrderStore, priceCache PriceListCache, log logger.Logger) *PriceListService {
	return &PriceListService{store: store, cache: priceCache, log: log}
}

// GetPriceList returns the flattened price list sorted by sortBy.
// Storage failures degrade to an empty list, matching order reads.
func (s *PriceListService) GetPriceList(ctx context.Context, sortBy string) []pkgcache.PriceRow {
	rows := s.rows(ctx)
	sortRows(rows, sortBy)
	return rows
}

// GetStats returns aggregate counts over the current price list.
func (s *PriceListService) GetStats(ctx context.Context) PriceListStats {
	rows := s.rows(ctx)

	categories := make(map[string]bool)
	brands := make(map[string]bool)
	suppliers := make(map[string]bool)
	var total float64
	for _, r := range rows {
		if r.Category != "" {
			categories[r.Category] = true
		}
		if r.Brand != "" {
			brands[r.Brand] = true
		}
		if r.Supplier != "" {
			suppliers[r.Supplier] = true
		}
		total += r.Price * float64(r.Quantity)
	}

	return PriceListStats{
		Products:   len(rows),
		Categories: len(categories),
		Brands:     len(brands),
		Suppliers:  len(suppliers),
		TotalValue: models.Round2(total),
	}
}

// ExportCSV writes the price list as CSV to w, sorted by sortBy.
// Column order matches the price list table in the UI.
func (s *PriceListService) ExportCSV(ctx context.Context, w io.Writer, sortBy string) error {
	rows := s.rows(ctx)
	sortRows(rows, sortBy)

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"name", "category", "brand", "compatibility", "quantity", "price", "supplier", "order_date"}); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.Name,
			r.Category,
			r.Brand,
			r.Compatibility,
			strconv.Itoa(r.Quantity),
			strconv.FormatFloat(r.Price, 'f', 2, 64),
			r.Supplier,
			r.OrderDate,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("export csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	return nil
}

// Suggestions returns distinct values of the given field that start with
// prefix, case-insensitively, sorted and capped at 20. Supported fields are
// supplier, category, brand, name and compatibility; anything else yields no
// suggestions.
func (s *PriceListService) Suggestions(ctx context.Context, field, prefix string) []string {
	const maxSuggestions = 20

	pick := fieldPicker(field)
	if pick == nil {
		return []string{}
	}

	lowered := strings.ToLower(strings.TrimSpace(prefix))
	seen := make(map[string]bool)
	out := make([]string, 0, maxSuggestions)
	for _, r := range s.rows(ctx) {
		v := pick(r)
		if v == "" || seen[v] {
			continue
		}
		if lowered != "" && !strings.HasPrefix(strings.ToLower(v), lowered) {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

func fieldPicker(field string) func(pkgcache.PriceRow) string {
	switch field {
	case "supplier":
		return func(r pkgcache.PriceRow) string { return r.Supplier }
	case "category":
		return func(r pkgcache.PriceRow) string { return r.Category }
	case "brand":
		return func(r pkgcache.PriceRow) string { return r.Brand }
	case "name":
		return func(r pkgcache.PriceRow) string { return r.Name }
	case "compatibility":
		return func(r pkgcache.PriceRow) string { return r.Compatibility }
	default:
		return nil
	}
}

// rows returns the flattened price list, consulting the cache first.
func (s *PriceListService) rows(ctx context.Context) []pkgcache.PriceRow {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx); err == nil {
			return cached
		} else if !errors.Is(err, redis.Nil) {
			s.log.WarnContext(ctx, "price list cache read failed", "error", err)
		}
	}

	rows := s.flatten(ctx)

	if s.cache != nil {
		warmed := append([]pkgcache.PriceRow(nil), rows...)
		go func() {
			if err := s.cache.Set(context.Background(), warmed); err != nil {
				s.log.Warn("price list cache warm failed", "error", err)
			}
		}()
	}

	return rows
}

func (s *PriceListService) flatten(ctx context.Context) []pkgcache.PriceRow {
	orders, err := s.store.List(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "list orders for price list failed, returning empty list", "error", err)
		return []pkgcache.PriceRow{}
	}

	rows := make([]pkgcache.PriceRow, 0, len(orders))
	for _, o := range orders {
		for _, p := range o.Products {
			rows = append(rows, pkgcache.PriceRow{
				ProductID:     p.ID,
				Name:          p.Name,
				Quantity:      p.Quantity,
				Price:         p.Price,
				Category:      p.Category,
				Brand:         p.Brand,
				Compatibility: p.Compatibility,
				Supplier:      o.Supplier,
				OrderDate:     o.Date,
			})
		}
	}
	return rows
}

// sortRows orders rows in place by the given key, with product name as the
// tiebreaker. Comparisons are case-insensitive.
func sortRows(rows []pkgcache.PriceRow, sortBy string) {
	less := func(a, b pkgcache.PriceRow) bool {
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	}
	switch sortBy {
	case SortByBrand:
		less = byStringThenName(func(r pkgcache.PriceRow) string { return r.Brand })
	case SortBySupplier:
		less = byStringThenName(func(r pkgcache.PriceRow) string { return r.Supplier })
	case SortByName:
		// name comparator is the default tiebreaker already
	case SortByPrice:
		less = func(a, b pkgcache.PriceRow) bool {
			if a.Price != b.Price {
				return a.Price < b.Price
			}
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	default: // SortByCategory
		less = byStringThenName(func(r pkgcache.PriceRow) string { return r.Category })
	}
	sort.SliceStable(rows, func(i, j int) bool { return less(rows[i], rows[j]) })
}

func byStringThenName(key func(pkgcache.PriceRow) string) func(a, b pkgcache.PriceRow) bool {
	return func(a, b pkgcache.PriceRow) bool {
		ka, kb := strings.ToLower(key(a)), strings.ToLower(key(b))
		if ka != kb {
			return ka < kb
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	}
}
