package handlers

import (
	"net/http"

	"github.com/ghuser/orderflow/pkg/errhttp"
	"github.com/ghuser/orderflow/pkg/httpx"
	pkgvalidator "github.com/ghuser/orderflow/pkg/validator"
	appsvcs "github.com/ghuser/orderflow/services/order/application/services"
	"github.com/ghuser/orderflow/services/order/domain/models"
)

// CreateOrderRequest is the request body for POST /orders.
type CreateOrderRequest struct {
	Date     string           `json:"date"     validate:"required,datetime=2006-01-02" example:"2026-08-30"`
	Supplier string           `json:"supplier" validate:"required,max=255"             example:"Tech Supply Co."`
	Products []ProductRequest `json:"products" validate:"required,min=1,dive"`
} // @name CreateOrderRequest

// PostOrderHandler handles POST /orders requests.
type PostOrderHandler struct {
	svc *appsvcs.Services
}

// NewPostOrderHandler returns a PostOrderHandler backed by the given services.
func NewPostOrderHandler(svc *appsvcs.Services) *PostOrderHandler {
	return &PostOrderHandler{svc: svc}
}

// Execute creates a new order.
//
//	@Summary		Create order
//	@Description	Creates a new purchase order; the total amount is computed server-side
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateOrderRequest	true	"Order creation request"
//	@Success		201		{object}	models.Order
//	@Failure		400		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		502		{object}	ErrorResponse
//	@Router			/orders [post]
func (h *PostOrderHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateOrderRequest](w, r)
	if !ok {
		return
	}

	order := models.NewOrder(req.Date, req.Supplier, toModelProducts(req.Products))

	saved, err := h.svc.Order.SaveOrder(r.Context(), order)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, saved)
}
