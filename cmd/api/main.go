package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/ghuser/orderflow/docs/swagger"
	"github.com/ghuser/orderflow/pkg/app"
	"github.com/ghuser/orderflow/pkg/cache"
	"github.com/ghuser/orderflow/pkg/config"
	"github.com/ghuser/orderflow/pkg/events"
	"github.com/ghuser/orderflow/pkg/httpx"
	"github.com/ghuser/orderflow/pkg/logger"
	"github.com/ghuser/orderflow/pkg/telemetry"
	orderApi "github.com/ghuser/orderflow/services/order/application/api"
	"github.com/ghuser/orderflow/services/order/infrastructure/persistence"
	ordersync "github.com/ghuser/orderflow/services/order/infrastructure/sync"
)

// @title					Orderflow API
// @version				1.0
// @description			Order entry and price list API with swappable storage backends.
// @contact.name			API Support
// @license.name			MIT
// @license.url			https://opensource.org/licenses/MIT
// @host					localhost:8080
// @BasePath				/api
// @schemes				http https
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	// Telemetry: OTel tracing + metrics
	ctx := context.Background()
	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	// Crash reporting: Sentry (optional — log and continue on failure)
	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	store, err := persistence.NewPrimary(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open storage backend", "backend", cfg.StorageBackend, "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred flushes are best-effort
	}
	defer store.Close() //nolint:errcheck
	log.Info("storage backend ready", "backend", cfg.StorageBackend)

	remote, err := persistence.NewRemote(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open remote mirror store", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	if remote != nil {
		defer remote.Close() //nolint:errcheck
	}

	queue := ordersync.NewQueue(cfg.SyncQueueSize, 2, cfg.SyncRetries, log)
	defer queue.Close()

	reconciler := ordersync.NewReconciler(store, remote, queue, log)
	if reconciler.Enabled() {
		log.Info("background reconciliation enabled")
		reconciler.MigrateIfEmpty(ctx)
	}

	// Event transport rides on the orders database; it only exists when the
	// primary store is Postgres.
	var eventBus *events.EventBus
	if cfg.StorageBackend == config.BackendPostgres {
		eventBus, err = events.NewEventBusWithForwarder(cfg, log)
		if err != nil {
			log.Error("failed to setup event bus", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer eventBus.Close() //nolint:errcheck

		if err := eventBus.StartForwarder(ctx); err != nil {
			log.Error("failed to start event forwarder", "error", err)
			os.Exit(1) //nolint:gocritic
		}
	}

	// Redis is a read-model cache, not a dependency; run without it if down.
	var redisClient *cache.RedisClient
	if cfg.RedisURL != "" {
		redisClient, err = cache.NewRedisClient(cfg)
		if err != nil {
			log.Warn("failed to connect to redis, continuing without cache", "error", err)
			redisClient = nil
		} else {
			defer redisClient.Close() //nolint:errcheck
			log.Info("redis connected")
		}
	}

	appConfig := &app.Application{
		Store:      store,
		Remote:     remote,
		Reconciler: reconciler,
		Logger:     log,
		EventBus:   eventBus,
		Redis:      redisClient,
	}

	r := httpx.NewRouter(
		httpx.ServerConfig{
			ServiceName:        cfg.ServiceName,
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		},
		logger.Middleware(log),
		logger.Recovery(log),
		telemetry.SentryMiddleware(),
		otelhttp.NewMiddleware(cfg.ServiceName),
	)

	healthChecks := httpx.HealthChecks{Store: store}
	if redisClient != nil {
		healthChecks.Redis = redisClient
	}
	if eventBus != nil {
		healthChecks.EventBus = eventBus
	}
	r.Get("/health", httpx.HealthHandler(healthChecks))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	r.Route("/api", func(r chi.Router) {
		registerRoutes(r, appConfig)
	})

	srv := httpx.NewServer(":8080", r)

	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment, "backend", cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// registerRoutes mounts all service routes under /api.
// Add each new service's route function here.
func registerRoutes(r chi.Router, a *app.Application) {
	orderApi.OrderRoutes(r, a)
}
