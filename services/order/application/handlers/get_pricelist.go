package handlers

import (
	"net/http"

	"github.com/ghuser/orderflow/pkg/httpx"
	appsvcs "github.com/ghuser/orderflow/services/order/application/services"
)

// GetPriceListHandler handles GET /pricelist requests.
type GetPriceListHandler struct {
	svc *appsvcs.Services
}

// NewGetPriceListHandler returns a GetPriceListHandler backed by the given services.
func NewGetPriceListHandler(svc *appsvcs.Services) *GetPriceListHandler {
	return &GetPriceListHandler{svc: svc}
}

// Execute returns the flattened price list.
//
//	@Summary		Get price list
//	@Description	Every product across all orders, flattened with supplier and order date
//	@Tags			pricelist
//	@Produce		json
//	@Param			sort	query	string	false	"Sort key"	Enums(category, brand, supplier, name, price)
//	@Success		200		{array}	cache.PriceRow
//	@Router			/pricelist [get]
func (h *GetPriceListHandler) Execute(w http.ResponseWriter, r *http.Request) {
	rows := h.svc.PriceList.GetPriceList(r.Context(), r.URL.Query().Get("sort"))
	httpx.JSON(w, http.StatusOK, rows)
}
