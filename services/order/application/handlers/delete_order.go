package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/orderflow/pkg/errhttp"
	appsvcs "github.com/ghuser/orderflow/services/order/application/services"
)

// DeleteOrderHandler handles DELETE /orders/{id} requests.
type DeleteOrderHandler struct {
	svc *appsvcs.Services
}

// NewDeleteOrderHandler returns a DeleteOrderHandler backed by the given services.
func NewDeleteOrderHandler(svc *appsvcs.Services) *DeleteOrderHandler {
	return &DeleteOrderHandler{svc: svc}
}

// Execute deletes an order. Deleting a missing id succeeds.
//
//	@Summary		Delete order
//	@Description	Removes the order with the given id; a missing id is a successful no-op
//	@Tags			orders
//	@Param			id	path	string	true	"Order ID"
//	@Success		204
//	@Failure		422	{object}	ErrorResponse
//	@Failure		502	{object}	ErrorResponse
//	@Router			/orders/{id} [delete]
func (h *DeleteOrderHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.Order.DeleteOrder(r.Context(), id); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
