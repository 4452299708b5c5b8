package services

import (
	"github.com/ghuser/orderflow/pkg/app"
	"github.com/ghuser/orderflow/pkg/cache"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Order     *OrderService
	PriceList *PriceListService
}

// New wires all order application services with infrastructure from the Application container.
// The primary store is whatever backend the factory selected; Redis and the
// event bus are optional and may be nil.
func New(a *app.Application) *Services {
	// Assign the interface only when Redis is configured so the services'
	// nil checks see a nil interface, not a typed nil.
	var priceCache PriceListCache
	if a.Redis != nil {
		priceCache = cache.NewPriceListCache(a.Redis)
	}
	return &Services{
		Order:     NewOrderService(a.Store, a.Reconciler, a.EventBus, priceCache, a.Logger),
		PriceList: NewPriceListService(a.Store, priceCache, a.Logger),
	}
}
