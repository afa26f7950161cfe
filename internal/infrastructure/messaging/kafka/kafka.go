package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sangkips/pos-api/internal/infrastructure/messaging"
	kafkaGo "github.com/segmentio/kafka-go"
)

// Publisher writes events to kafka through one long-lived writer
type Publisher struct {
	writer *kafkaGo.Writer
}

var _ messaging.Publisher = (*Publisher)(nil)

// NewPublisher creates a kafka publisher for the given brokers. The topic is
// chosen per message.
func NewPublisher(brokers []string) *Publisher {
	return &Publisher{
		writer: &kafkaGo.Writer{
			Addr:         kafkaGo.TCP(brokers...),
			Balancer:     &kafkaGo.Hash{},
			RequiredAcks: kafkaGo.RequireOne,
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

func (p *Publisher) PublishEvent(ctx context.Context, topic string, key string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafkaGo.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
	})
}

// Close flushes pending messages and closes the writer
func (p *Publisher) Close() error {
	return p.writer.Close()
}
