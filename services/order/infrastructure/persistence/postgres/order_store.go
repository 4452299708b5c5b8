// Package postgres implements the relational OrderStore. Orders and their
// line items are split across the orders and order_products tables.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/orderflow/pkg/database"
	domain "github.com/ghuser/orderflow/services/order/domain"
	"github.com/ghuser/orderflow/services/order/domain/models"
)

// Store implements repositories.OrderStore against PostgreSQL.
type Store struct {
	db *database.Database
}

// New returns a Store backed by the given connection pool.
func New(db *database.Database) *Store {
	return &Store{db: db}
}

// Save inserts the order and its products in one transaction.
// Returns ErrOrderExists on a primary-key collision.
func (s *Store) Save(ctx context.Context, order *models.Order) error {
	err := s.db.WithTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO orders (id, order_date, supplier, total_amount, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			order.ID, order.Date, order.Supplier, order.TotalAmount, order.CreatedAt, order.UpdatedAt,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return domain.ErrOrderExists
			}
			return fmt.Errorf("insert order: %w", err)
		}
		return insertProducts(ctx, tx, order)
	})
	if err != nil {
		if errors.Is(err, domain.ErrOrderExists) {
			return err
		}
		return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return nil
}

// List loads every order with its products, newest first. Filtering and
// normalization run on the mapped result, matching the other backends.
func (s *Store) List(ctx context.Context) ([]*models.Order, error) {
	rows, err := s.db.Pool().Query(ctx,
		`SELECT id, order_date, supplier, total_amount, created_at, updated_at
		 FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("%w: query orders: %w", domain.ErrPersistence, err)
	}
	defer rows.Close()

	var orders []*models.Order
	index := make(map[string]*models.Order)
	for rows.Next() {
		var (
			o         models.Order
			orderDate time.Time
		)
		if err := rows.Scan(&o.ID, &orderDate, &o.Supplier, &o.TotalAmount, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan order: %w", domain.ErrPersistence, err)
		}
		o.Date = orderDate.Format("2006-01-02")
		orders = append(orders, &o)
		index[o.ID] = &o
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: orders rows: %w", domain.ErrPersistence, err)
	}

	prows, err := s.db.Pool().Query(ctx,
		`SELECT order_id, id, name, quantity, price, category, brand, COALESCE(compatibility, '')
		 FROM order_products ORDER BY order_id, position`)
	if err != nil {
		return nil, fmt.Errorf("%w: query products: %w", domain.ErrPersistence, err)
	}
	defer prows.Close()

	for prows.Next() {
		var (
			orderID string
			p       models.Product
		)
		if err := prows.Scan(&orderID, &p.ID, &p.Name, &p.Quantity, &p.Price, &p.Category, &p.Brand, &p.Compatibility); err != nil {
			return nil, fmt.Errorf("%w: scan product: %w", domain.ErrPersistence, err)
		}
		if o, ok := index[orderID]; ok {
			o.Products = append(o.Products, p)
		}
	}
	if err := prows.Err(); err != nil {
		return nil, fmt.Errorf("%w: products rows: %w", domain.ErrPersistence, err)
	}

	return models.SanitizeList(orders), nil
}

// Update upserts the parent row, then replaces every child row. Products
// are deleted and reinserted wholesale rather than diffed, so child rows
// for unchanged items are recreated on each update. created_at is excluded
// from the conflict update so the stored creation time survives the
// replace; RETURNING feeds it back into order.
func (s *Store) Update(ctx context.Context, order *models.Order) error {
	err := s.db.WithTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO orders (id, order_date, supplier, total_amount, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (id) DO UPDATE SET
			   order_date = EXCLUDED.order_date,
			   supplier = EXCLUDED.supplier,
			   total_amount = EXCLUDED.total_amount,
			   updated_at = EXCLUDED.updated_at
			 RETURNING created_at`,
			order.ID, order.Date, order.Supplier, order.TotalAmount, order.CreatedAt, order.UpdatedAt,
		).Scan(&order.CreatedAt)
		if err != nil {
			return fmt.Errorf("upsert order: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM order_products WHERE order_id = $1`, order.ID); err != nil {
			return fmt.Errorf("clear products: %w", err)
		}
		return insertProducts(ctx, tx, order)
	})
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return nil
}

// Delete removes child rows before the parent to respect the foreign key.
// A missing id deletes zero rows and returns nil.
func (s *Store) Delete(ctx context.Context, id string) error {
	err := s.db.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM order_products WHERE order_id = $1`, id); err != nil {
			return fmt.Errorf("delete products: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete order: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return nil
}

// Ping checks database connection health.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close shuts down the owned connection pool.
func (s *Store) Close() error {
	s.db.Close()
	return nil
}

func insertProducts(ctx context.Context, tx pgx.Tx, order *models.Order) error {
	for i, p := range order.Products {
		var compat any
		if p.Compatibility != "" {
			compat = p.Compatibility
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO order_products (id, order_id, position, name, quantity, price, category, brand, compatibility)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			p.ID, order.ID, i, p.Name, p.Quantity, p.Price, p.Category, p.Brand, compat,
		)
		if err != nil {
			return fmt.Errorf("insert product %d: %w", i, err)
		}
	}
	return nil
}
