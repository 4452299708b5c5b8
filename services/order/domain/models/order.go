package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a single line item. It has no lifecycle of its own — it is
// created and destroyed with the Order that owns it.
type Product struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
	Category      string  `json:"category"`
	Brand         string  `json:"brand"`
	Compatibility string  `json:"compatibility,omitempty"`
}

// Order is the core aggregate: one purchase order with its line items.
// Products keep insertion order; that order is the display order.
type Order struct {
	ID          string     `json:"id"`
	Date        string     `json:"date"` // calendar date, YYYY-MM-DD
	Supplier    string     `json:"supplier"`
	Products    []Product  `json:"products"`
	TotalAmount float64    `json:"totalAmount"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// NewOrder constructs an Order with a generated ID, the current timestamp,
// normalized text fields, and a recomputed total.
func NewOrder(date, supplier string, products []Product) *Order {
	o := &Order{
		ID:        uuid.NewString(),
		Date:      date,
		Supplier:  supplier,
		Products:  products,
		CreatedAt: time.Now().UTC(),
	}
	o.Normalize()
	o.RecomputeTotal()
	return o
}

// Normalize applies the display-layer text rules in place: supplier,
// category, and brand become title case; name and compatibility are
// trimmed. Calling it twice is a no-op.
func (o *Order) Normalize() {
	o.Supplier = TitleCase(o.Supplier)
	for i := range o.Products {
		p := &o.Products[i]
		p.Category = TitleCase(p.Category)
		p.Brand = TitleCase(p.Brand)
		p.Name = TrimText(p.Name)
		p.Compatibility = TrimText(p.Compatibility)
	}
}

// RecomputeTotal sets TotalAmount to the rounded sum of price×quantity
// over all line items. Must be called on every edit.
func (o *Order) RecomputeTotal() {
	var sum float64
	for _, p := range o.Products {
		sum += p.Price * float64(p.Quantity)
	}
	o.TotalAmount = Round2(sum)
}

// Touch stamps UpdatedAt with the current time.
func (o *Order) Touch() {
	now := time.Now().UTC()
	o.UpdatedAt = &now
}

// HasValidIDs reports whether the order id and every product id match the
// canonical UUID shape. Records failing this check are demo residue or
// corruption and are excluded from reads.
func (o *Order) HasValidIDs() bool {
	if !ValidID(o.ID) {
		return false
	}
	for _, p := range o.Products {
		if !ValidID(p.ID) {
			return false
		}
	}
	return true
}

// NewProductID returns a fresh product identifier.
func NewProductID() string {
	return uuid.NewString()
}
