package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics for order lifecycle events.
const (
	TopicOrderCreated = "order.created"
	TopicOrderUpdated = "order.updated"
	TopicOrderDeleted = "order.deleted"
)

// OrderChangedEvent is published after an order is created, updated, or
// deleted. Consumers use it to refresh read models (the price-list cache);
// the payload carries the full summary so subscribers never need to read
// back through the primary store.
type OrderChangedEvent struct {
	EventID     uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version     int       `json:"version"`  // Schema version; increment on breaking changes
	OrderID     string    `json:"order_id"`
	Supplier    string    `json:"supplier"`
	TotalAmount float64   `json:"total_amount"`
	Products    int       `json:"products"` // line-item count at publish time
	OccurredAt  time.Time `json:"occurred_at"`
}
