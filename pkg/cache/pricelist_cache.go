package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// PriceListTTL is the time-to-live for the cached price list.
	PriceListTTL = time.Hour

	priceListKey = "pricelist:v1"
)

// PriceRow is one denormalized line of the price list: a product with its
// supplier and order date attached. This is a read model only; the Order
// aggregate stays the source of truth.
type PriceRow struct {
	ProductID     string  `json:"product_id"`
	Name          string  `json:"name"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
	Category      string  `json:"category"`
	Brand         string  `json:"brand"`
	Compatibility string  `json:"compatibility,omitempty"`
	Supplier      string  `json:"supplier"`
	OrderDate     string  `json:"order_date"`
}

// PriceListCache stores the flattened price list as a single JSON value.
// Writes invalidate it inline (and the worker does so again on order
// events); it is repopulated lazily on the next read.
type PriceListCache struct {
	client *RedisClient
}

// NewPriceListCache returns a PriceListCache backed by the given RedisClient.
func NewPriceListCache(r *RedisClient) *PriceListCache {
	return &PriceListCache{client: r}
}

// Get retrieves the cached price list.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *PriceListCache) Get(ctx context.Context) ([]PriceRow, error) {
	data, err := c.client.Client().Get(ctx, priceListKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, redis.Nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}
	var rows []PriceRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return rows, nil
}

// Set writes the price list with a one-hour TTL.
func (c *PriceListCache) Set(ctx context.Context, rows []PriceRow) error {
	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Client().Set(ctx, priceListKey, data, PriceListTTL).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate drops the cached price list.
func (c *PriceListCache) Invalidate(ctx context.Context) error {
	if err := c.client.Client().Del(ctx, priceListKey).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}
