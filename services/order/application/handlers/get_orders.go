package handlers

import (
	"net/http"

	"github.com/ghuser/orderflow/pkg/httpx"
	appsvcs "github.com/ghuser/orderflow/services/order/application/services"
)

// GetOrdersHandler handles GET /orders requests.
type GetOrdersHandler struct {
	svc *appsvcs.Services
}

// NewGetOrdersHandler returns a GetOrdersHandler backed by the given services.
func NewGetOrdersHandler(svc *appsvcs.Services) *GetOrdersHandler {
	return &GetOrdersHandler{svc: svc}
}

// Execute lists all orders, newest first.
//
//	@Summary		List orders
//	@Description	Returns every valid order sorted by creation time descending; storage failures yield an empty list
//	@Tags			orders
//	@Produce		json
//	@Success		200	{array}	models.Order
//	@Router			/orders [get]
func (h *GetOrdersHandler) Execute(w http.ResponseWriter, r *http.Request) {
	orders := h.svc.Order.GetOrders(r.Context())
	httpx.JSON(w, http.StatusOK, orders)
}
