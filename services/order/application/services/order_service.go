package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	pkgevents "github.com/ghuser/orderflow/pkg/events"
	"github.com/ghuser/orderflow/pkg/logger"
	orderdomain "github.com/ghuser/orderflow/services/order/domain"
	"github.com/ghuser/orderflow/services/order/domain/events"
	"github.com/ghuser/orderflow/services/order/domain/models"
	"github.com/ghuser/orderflow/services/order/domain/repositories"
	domainsvcs "github.com/ghuser/orderflow/services/order/domain/services"
	ordersync "github.com/ghuser/orderflow/services/order/infrastructure/sync"
)

// OrderService orchestrates order writes and reads against the primary store.
//
// Every successful write schedules a best-effort mirror to the remote store,
// invalidates the price list cache and publishes a lifecycle event; none of
// these can fail the request. The inline invalidation keeps the price list
// fresh on backends that run without the event bus, where no worker is
// listening for order events. Reads degrade to an empty list on storage
// errors so the caller always gets a renderable result.
type OrderService struct {
	store repositories.OrderStore
	rec   *ordersync.Reconciler
	bus   *pkgevents.EventBus // nil when no event transport is configured
	cache PriceListCache      // nil when Redis is not configured
	log   logger.Logger
}

// NewOrderService returns an OrderService wired with the given store, reconciler, bus and cache.
func NewOrderService(store repositories.OrderStore, rec *ordersync.Reconciler, bus *pkgevents.EventBus, priceCache PriceListCache, log logger.Logger) *OrderService {
	return &OrderService{store: store, rec: rec, bus: bus, cache: priceCache, log: log}
}

// SaveOrder validates, normalizes and persists a new order.
// The total amount is always recomputed server-side, never trusted from input.
func (s *OrderService) SaveOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := domainsvcs.ValidateOrderForWrite(order); err != nil {
		return nil, fmt.Errorf("%w: %w", orderdomain.ErrInvalidOrder, err)
	}

	order.Normalize()
	order.RecomputeTotal()

	if err := s.store.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}

	s.rec.MirrorWrite(order)
	s.invalidatePriceList(ctx)
	s.publish(ctx, events.TopicOrderCreated, order)

	return order, nil
}

// GetOrders returns all valid orders, newest first. A storage failure is
// logged and reported as an empty list; it never surfaces to the caller.
// Each read also schedules a pull from the remote store so a fresher remote
// state becomes visible on a later read.
func (s *OrderService) GetOrders(ctx context.Context) []*models.Order {
	s.rec.PullOverwrite()

	orders, err := s.store.List(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "list orders failed, returning empty list", "error", err)
		return []*models.Order{}
	}
	if orders == nil {
		orders = []*models.Order{}
	}
	return orders
}

// UpdateOrder validates, normalizes and upserts an order. When no record
// with the given id exists the order is inserted instead; callers cannot
// distinguish the two outcomes and should not try.
func (s *OrderService) UpdateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := domainsvcs.ValidateOrderForWrite(order); err != nil {
		return nil, fmt.Errorf("%w: %w", orderdomain.ErrInvalidOrder, err)
	}

	order.Normalize()
	order.RecomputeTotal()
	order.Touch()

	if err := s.store.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}

	s.rec.MirrorWrite(order)
	s.invalidatePriceList(ctx)
	s.publish(ctx, events.TopicOrderUpdated, order)

	return order, nil
}

// DeleteOrder removes the order with the given id. Deleting an id that does
// not exist is a successful no-op.
func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	if !models.ValidID(id) {
		return fmt.Errorf("%w: malformed order id", orderdomain.ErrInvalidOrder)
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}

	s.rec.MirrorDelete(id)
	s.invalidatePriceList(ctx)
	s.publish(ctx, events.TopicOrderDeleted, &models.Order{ID: id})

	return nil
}

// invalidatePriceList drops the cached price list after a successful write.
// Best effort: a cache failure is logged and the write still succeeds; the
// entry's TTL bounds how long a stale copy can linger.
func (s *OrderService) invalidatePriceList(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.WarnContext(ctx, "price list cache invalidation failed", "error", err)
	}
}

// publish emits an order lifecycle event. Publishing is best effort; a bus
// failure is logged and the write it accompanies still succeeds.
func (s *OrderService) publish(ctx context.Context, topic string, order *models.Order) {
	if s.bus == nil {
		return
	}

	evt := events.OrderChangedEvent{
		EventID:     uuid.New(),
		Version:     1,
		OrderID:     order.ID,
		Supplier:    order.Supplier,
		TotalAmount: order.TotalAmount,
		Products:    len(order.Products),
		OccurredAt:  time.Now().UTC(),
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		s.log.ErrorContext(ctx, "encode order event failed", "topic", topic, "error", err)
		return
	}

	if err := s.bus.Publish(ctx, topic, message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		s.log.ErrorContext(ctx, "publish order event failed", "topic", topic, "order_id", order.ID, "error", err)
	}
}
