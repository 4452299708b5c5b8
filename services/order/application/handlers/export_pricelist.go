package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ghuser/orderflow/pkg/httpx"
	appsvcs "github.com/ghuser/orderflow/services/order/application/services"
)

// ExportPriceListHandler handles GET /pricelist/export requests.
type ExportPriceListHandler struct {
	svc *appsvcs.Services
}

// NewExportPriceListHandler returns an ExportPriceListHandler backed by the given services.
func NewExportPriceListHandler(svc *appsvcs.Services) *ExportPriceListHandler {
	return &ExportPriceListHandler{svc: svc}
}

// Execute serves the price list as a CSV download. The CSV is rendered into
// a buffer first so an encoding failure still yields a clean JSON 500; the
// price list is bounded by the order history and stays small enough to hold
// in memory.
//
//	@Summary		Export price list
//	@Description	Downloads the price list as CSV
//	@Tags			pricelist
//	@Produce		text/csv
//	@Param			sort	query	string	false	"Sort key"	Enums(category, brand, supplier, name, price)
//	@Success		200		{string}	string	"CSV file"
//	@Failure		500		{object}	ErrorResponse
//	@Router			/pricelist/export [get]
func (h *ExportPriceListHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.svc.PriceList.ExportCSV(r.Context(), &buf, r.URL.Query().Get("sort")); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "export failed")
		return
	}

	filename := fmt.Sprintf("pricelist-%s.csv", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = w.Write(buf.Bytes())
}
