package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.temporal.io/sdk/worker"

	"github.com/ghuser/orderflow/pkg/app"
	"github.com/ghuser/orderflow/pkg/cache"
	"github.com/ghuser/orderflow/pkg/config"
	"github.com/ghuser/orderflow/pkg/events"
	"github.com/ghuser/orderflow/pkg/logger"
	"github.com/ghuser/orderflow/pkg/telemetry"
	"github.com/ghuser/orderflow/pkg/workflows"
	orderEvents "github.com/ghuser/orderflow/services/order/domain/events"
	"github.com/ghuser/orderflow/services/order/infrastructure/persistence"
	ordersync "github.com/ghuser/orderflow/services/order/infrastructure/sync"
)

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

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	store, err := persistence.NewPrimary(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open storage backend", "backend", cfg.StorageBackend, "error", err)
		os.Exit(1) //nolint:gocritic
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

	queue := ordersync.NewQueue(cfg.SyncQueueSize, 1, cfg.SyncRetries, log)
	defer queue.Close()
	reconciler := ordersync.NewReconciler(store, remote, queue, log)

	var eventBus *events.EventBus
	if cfg.StorageBackend == config.BackendPostgres {
		eventBus, err = events.NewEventBus(cfg, log)
		if err != nil {
			log.Error("failed to setup event bus", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer eventBus.Close() //nolint:errcheck
	}

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

	if eventBus != nil && redisClient != nil {
		if err := registerSubscribers(ctx, appConfig); err != nil {
			log.Error("failed to register subscribers", "error", err)
			os.Exit(1) //nolint:gocritic
		}
	}

	// Scheduled full sync runs on Temporal when a server is configured.
	if cfg.TemporalHostPort != "" && reconciler.Enabled() {
		temporalClient, err := workflows.NewTemporalClient(ctx, cfg.TemporalHostPort, cfg.TemporalNamespace, log)
		if err != nil {
			log.Error("failed to initialize temporal client", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer temporalClient.Close()

		w := worker.New(temporalClient.Client, workflows.FullSyncTaskQueue, worker.Options{})
		w.RegisterWorkflow(workflows.FullSyncWorkflow)
		w.RegisterActivity((&workflows.SyncActivities{Syncer: reconciler}).FullSyncActivity)

		if err := w.Start(); err != nil {
			log.Error("failed to start temporal worker", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer w.Stop()
		log.Info("temporal worker started", "task_queue", workflows.FullSyncTaskQueue)

		if err := temporalClient.ScheduleFullSync(ctx, cfg.SyncCron); err != nil {
			log.Error("failed to schedule full sync", "error", err)
			os.Exit(1) //nolint:gocritic
		}
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	topics := []string{
		orderEvents.TopicOrderCreated,
		orderEvents.TopicOrderUpdated,
		orderEvents.TopicOrderDeleted,
	}
	handler := handleOrderChanged(a)

	for _, topic := range topics {
		errCh, err := a.EventBus.Subscribe(ctx, topic, handler)
		if err != nil {
			return err
		}

		// Drain subscriber errors in background so the channel never blocks.
		go func(topic string) {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}(topic)
	}

	a.Logger.Info("event subscribers registered", "topics", topics)
	return nil
}

// handleOrderChanged returns a handler for order lifecycle events.
// Handlers must be idempotent — EventBus retries up to 3× on failure.
// Drops the price list read model so the next read rebuilds it from storage.
func handleOrderChanged(a *app.Application) func(context.Context, *message.Message) error {
	priceCache := cache.NewPriceListCache(a.Redis)
	return func(ctx context.Context, msg *message.Message) error {
		var evt orderEvents.OrderChangedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		if err := priceCache.Invalidate(ctx); err != nil {
			// Invalidation is best-effort; the TTL bounds staleness anyway.
			a.Logger.WarnContext(ctx, "price list invalidation failed",
				"order_id", evt.OrderID, "error", err)
		} else {
			a.Logger.InfoContext(ctx, "price list invalidated",
				"order_id", evt.OrderID, "event_id", evt.EventID)
		}

		return nil
	}
}
