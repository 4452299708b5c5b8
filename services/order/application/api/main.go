package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/orderflow/pkg/app"
	"github.com/ghuser/orderflow/services/order/application/handlers"
	appsvcs "github.com/ghuser/orderflow/services/order/application/services"
)

// OrderRoutes registers order and price list endpoints on the provided chi router.
func OrderRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", handlers.NewPostOrderHandler(svcs).Execute)
			r.Get("/", handlers.NewGetOrdersHandler(svcs).Execute)
			r.Put("/{id}", handlers.NewPutOrderHandler(svcs).Execute)
			r.Delete("/{id}", handlers.NewDeleteOrderHandler(svcs).Execute)
		})
		r.Route("/pricelist", func(r chi.Router) {
			r.Get("/", handlers.NewGetPriceListHandler(svcs).Execute)
			r.Get("/stats", handlers.NewGetPriceListStatsHandler(svcs).Execute)
			r.Get("/export", handlers.NewExportPriceListHandler(svcs).Execute)
		})
		r.Get("/suggestions", handlers.NewGetSuggestionsHandler(svcs).Execute)
	})
}
