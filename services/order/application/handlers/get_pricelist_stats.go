package handlers

import (
	"net/http"

	"github.com/ghuser/orderflow/pkg/httpx"
	appsvcs "github.com/ghuser/orderflow/services/order/application/services"
)

// GetPriceListStatsHandler handles GET /pricelist/stats requests.
type GetPriceListStatsHandler struct {
	svc *appsvcs.Services
}

// NewGetPriceListStatsHandler returns a GetPriceListStatsHandler backed by the given services.
func NewGetPriceListStatsHandler(svc *appsvcs.Services) *GetPriceListStatsHandler {
	return &GetPriceListStatsHandler{svc: svc}
}

// Execute returns aggregate counts over the price list.
//
//	@Summary		Price list statistics
//	@Description	Product count, distinct categories, brands and suppliers, and total inventory value
//	@Tags			pricelist
//	@Produce		json
//	@Success		200	{object}	services.PriceListStats
//	@Router			/pricelist/stats [get]
func (h *GetPriceListStatsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	stats := h.svc.PriceList.GetStats(r.Context())
	httpx.JSON(w, http.StatusOK, stats)
}
