package handlers

import (
	"github.com/ghuser/orderflow/services/order/domain/models"
)

// ProductRequest is one line item in an order write request.
// An empty id means the server generates one; a present id must be a UUID.
type ProductRequest struct {
	ID            string  `json:"id"            validate:"omitempty,uuid"  example:"123e4567-e89b-12d3-a456-426614174000"`
	Name          string  `json:"name"          validate:"required,max=255" example:"Brake pads"`
	Quantity      int     `json:"quantity"      validate:"gte=0"            example:"10"`
	Price         float64 `json:"price"         validate:"gte=0"            example:"19.99"`
	Category      string  `json:"category"      validate:"max=255"          example:"Brakes"`
	Brand         string  `json:"brand"         validate:"max=255"          example:"Brembo"`
	Compatibility string  `json:"compatibility" validate:"max=255"          example:"Golf IV 1.9 TDI"`
} // @name ProductRequest

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"order validation failed"`
} // @name ErrorResponse

func toModelProducts(reqs []ProductRequest) []models.Product {
	products := make([]models.Product, 0, len(reqs))
	for _, p := range reqs {
		id := p.ID
		if id == "" {
			id = models.NewProductID()
		}
		products = append(products, models.Product{
			ID:            id,
			Name:          p.Name,
			Quantity:      p.Quantity,
			Price:         p.Price,
			Category:      p.Category,
			Brand:         p.Brand,
			Compatibility: p.Compatibility,
		})
	}
	return products
}
