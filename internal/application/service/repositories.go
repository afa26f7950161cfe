package service

import (
	"context"
	"time"

	"github.com/sangkips/pos-api/internal/domain/repository"
	"github.com/sangkips/pos-api/internal/infrastructure/messaging"
	"github.com/sangkips/pos-api/pkg/logger"
	"go.uber.org/zap"
)

// Repositories groups the stores the order services work on
type Repositories struct {
	Tx             repository.TxManager
	Businesses     repository.BusinessRepository
	Users          repository.UserRepository
	Products       repository.ProductRepository
	Services       repository.ServiceRepository
	Categories     repository.CategoryRepository
	Discounts      repository.DiscountRepository
	Taxes          repository.TaxRepository
	AppliedPricing repository.AppliedPricingRepository
	Giftcards      repository.GiftcardRepository
	Orders         repository.OrderRepository
	OrderItems     repository.OrderItemRepository
	Transactions   repository.TransactionRepository
}

// EventSink publishes order events once the unit of work has committed.
// Publish failures are logged and never fail the operation.
type EventSink struct {
	publisher messaging.Publisher
	topic     string
	logger    *zap.Logger
}

// NewEventSink creates an EventSink writing to topic
func NewEventSink(publisher messaging.Publisher, topic string, log *zap.Logger) *EventSink {
	if publisher == nil {
		publisher = messaging.NewNoopPublisher()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &EventSink{publisher: publisher, topic: topic, logger: log}
}

func (e *EventSink) publish(ctx context.Context, event messaging.OrderEvent) {
	if e == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	if err := e.publisher.PublishEvent(ctx, e.topic, event.OrderID.String(), event); err != nil {
		logger.FromContext(ctx, e.logger).Warn("failed to publish order event",
			zap.String("type", event.Type),
			zap.String("order_id", event.OrderID.String()),
			zap.Error(err),
		)
	}
}

func utcNow() time.Time {
	return time.Now().UTC()
}
