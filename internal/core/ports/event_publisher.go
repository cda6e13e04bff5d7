package ports

import (
	"context"
	"time"
)

// OrderChangedEvent describes a committed order lifecycle change for
// downstream consumers. Statuses are carried in their wire representation.
type OrderChangedEvent struct {
	OrderID    string    `json:"order_id"`
	UserID     string    `json:"user_id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher emits order lifecycle events after a successful commit.
// Publishing is best-effort: a broker failure is reported to the caller
// for logging but must never undo the committed transition.
type EventPublisher interface {
	PublishOrderChanged(ctx context.Context, event OrderChangedEvent) error
}
