package handlers

import (
	"net/http"

	"github.com/ghuser/orderflow/pkg/httpx"
	appsvcs "github.com/ghuser/orderflow/services/order/application/services"
)

// GetSuggestionsHandler handles GET /suggestions requests.
type GetSuggestionsHandler struct {
	svc *appsvcs.Services
}

// NewGetSuggestionsHandler returns a GetSuggestionsHandler backed by the given services.
func NewGetSuggestionsHandler(svc *appsvcs.Services) *GetSuggestionsHandler {
	return &GetSuggestionsHandler{svc: svc}
}

// Execute returns autocomplete suggestions for order entry fields.
//
//	@Summary		Field suggestions
//	@Description	Distinct historical values for supplier, category, brand, name or compatibility, filtered by prefix
//	@Tags			pricelist
//	@Produce		json
//	@Param			field	query	string	true	"Field to suggest"	Enums(supplier, category, brand, name, compatibility)
//	@Param			q		query	string	false	"Prefix filter"
//	@Success		200		{array}	string
//	@Router			/suggestions [get]
func (h *GetSuggestionsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	suggestions := h.svc.PriceList.Suggestions(r.Context(), q.Get("field"), q.Get("q"))
	httpx.JSON(w, http.StatusOK, suggestions)
}
