// Package services contains stateless domain services for the order bounded
// context. They enforce business rules that operate purely on domain types.
package services

import (
	"fmt"

	"github.com/ghuser/orderflow/services/order/domain/models"
)

// ValidateOrderForWrite checks the structural invariants every order must
// satisfy before it reaches a store. Read paths filter silently; write paths
// must reject up front.
func ValidateOrderForWrite(o *models.Order) error {
	if o == nil {
		return fmt.Errorf("order cannot be nil")
	}
	if !models.ValidID(o.ID) {
		return fmt.Errorf("order id %q is not a valid UUID", o.ID)
	}
	if o.Supplier == "" {
		return fmt.Errorf("supplier is required")
	}
	if len(o.Products) == 0 {
		return fmt.Errorf("order must contain at least one product")
	}
	for i, p := range o.Products {
		if !models.ValidID(p.ID) {
			return fmt.Errorf("product %d id %q is not a valid UUID", i, p.ID)
		}
		if p.Name == "" {
			return fmt.Errorf("product %d name is required", i)
		}
		if p.Quantity < 0 {
			return fmt.Errorf("product %d quantity must not be negative", i)
		}
		if p.Price < 0 {
			return fmt.Errorf("product %d price must not be negative", i)
		}
	}
	return nil
}
