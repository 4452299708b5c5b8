package app

import (
	"github.com/ghuser/orderflow/pkg/cache"
	"github.com/ghuser/orderflow/pkg/events"
	"github.com/ghuser/orderflow/pkg/logger"
	"github.com/ghuser/orderflow/services/order/domain/repositories"
	ordersync "github.com/ghuser/orderflow/services/order/infrastructure/sync"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to each service's route registration during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler — use slog's context methods
// and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "saving order", "order_id", id)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Store      repositories.OrderStore // primary storage, selected by STORAGE_BACKEND
	Remote     repositories.OrderStore // remote mirror; nil when sync is disabled
	Reconciler *ordersync.Reconciler
	Logger     logger.Logger
	EventBus   *events.EventBus   // nil unless the postgres backend is active
	Redis      *cache.RedisClient // nil when REDIS_URL is empty
}
