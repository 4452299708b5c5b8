package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/orderflow/pkg/errhttp"
	"github.com/ghuser/orderflow/pkg/httpx"
	pkgvalidator "github.com/ghuser/orderflow/pkg/validator"
	appsvcs "github.com/ghuser/orderflow/services/order/application/services"
	"github.com/ghuser/orderflow/services/order/domain/models"
)

// UpdateOrderRequest is the request body for PUT /orders/{id}.
// createdAt is optional and only matters on the insert-fallback path; when
// a record with the id already exists its stored creation time wins.
type UpdateOrderRequest struct {
	Date      string           `json:"date"      validate:"required,datetime=2006-01-02" example:"2026-08-30"`
	Supplier  string           `json:"supplier"  validate:"required,max=255"             example:"Tech Supply Co."`
	Products  []ProductRequest `json:"products"  validate:"required,min=1,dive"`
	CreatedAt string           `json:"createdAt" validate:"omitempty"                    example:"2026-08-30T10:30:00Z"`
} // @name UpdateOrderRequest

// PutOrderHandler handles PUT /orders/{id} requests.
type PutOrderHandler struct {
	svc *appsvcs.Services
}

// NewPutOrderHandler returns a PutOrderHandler backed by the given services.
func NewPutOrderHandler(svc *appsvcs.Services) *PutOrderHandler {
	return &PutOrderHandler{svc: svc}
}

// Execute updates an order, inserting it when no record with the id exists.
//
//	@Summary		Update order
//	@Description	Replaces the order with the given id; falls back to insert when the id is absent
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Order ID"
//	@Param			request	body		UpdateOrderRequest	true	"Order update request"
//	@Success		200		{object}	models.Order
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		502		{object}	ErrorResponse
//	@Router			/orders/{id} [put]
func (h *PutOrderHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	req, ok := pkgvalidator.ValidateRequest[UpdateOrderRequest](w, r)
	if !ok {
		return
	}

	createdAt := time.Now().UTC()
	if req.CreatedAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.CreatedAt)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "createdAt must be RFC 3339")
			return
		}
		createdAt = parsed.UTC()
	}

	order := &models.Order{
		ID:        id,
		Date:      req.Date,
		Supplier:  req.Supplier,
		Products:  toModelProducts(req.Products),
		CreatedAt: createdAt,
	}

	updated, err := h.svc.Order.UpdateOrder(r.Context(), order)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, updated)
}
