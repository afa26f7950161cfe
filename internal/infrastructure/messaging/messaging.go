package messaging

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Publisher defines an interface for publishing events to a message broker.
type Publisher interface {
	PublishEvent(ctx context.Context, topic string, key string, event any) error
}

// Order event types
const (
	EventOrderItemAdded = "order.item_added"
	EventOrderClosed    = "order.closed"
	EventOrderRefunded  = "order.refunded"
	EventOrderDeleted   = "order.deleted"
)

// OrderEvent is published after an order changing operation commits
type OrderEvent struct {
	Type          string           `json:"type"`
	OrderID       uuid.UUID        `json:"order_id"`
	BusinessID    uuid.UUID        `json:"business_id"`
	OrderItemID   *uuid.UUID       `json:"order_item_id,omitempty"`
	TransactionID *uuid.UUID       `json:"transaction_id,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	OccurredAt    time.Time        `json:"occurred_at"`
}

type noopPublisher struct{}

// NewNoopPublisher returns a publisher that drops every event
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) PublishEvent(ctx context.Context, topic string, key string, event any) error {
	return nil
}
