// Package kafka publishes order lifecycle events to the order-changed
// topic for downstream consumers (kitchen displays, analytics). Publishing
// is best-effort: the transition is already committed when an event is
// written, and a broker failure never undoes it.
package kafka

import (
	"context"
	"encoding/json"

	"cafeteria/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// OrderChangedPublisher implements ports.EventPublisher over a kafka-go
// writer. Events are keyed by order id so all changes of one order land in
// the same partition, preserving their relative order.
type OrderChangedPublisher struct {
	writer *kafka.Writer
}

// NewOrderChangedPublisher creates a publisher for order-changed events.
func NewOrderChangedPublisher(writer *kafka.Writer) *OrderChangedPublisher {
	return &OrderChangedPublisher{writer: writer}
}

// NewWriter builds the kafka writer for the order-changed topic.
func NewWriter(host, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(host),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}
}

// PublishOrderChanged serializes the event as JSON and writes it to the
// topic.
func (p *OrderChangedPublisher) PublishOrderChanged(
	ctx context.Context,
	event ports.OrderChangedEvent,
) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: value,
	})
}

// Close flushes and closes the underlying writer.
func (p *OrderChangedPublisher) Close() error {
	return p.writer.Close()
}
