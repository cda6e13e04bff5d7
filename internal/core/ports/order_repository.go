package ports

import (
	"context"
	"time"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Every read and conditional write is scoped to the owning user; an order
// that exists but belongs to someone else is reported as not found so that
// foreign records never leak.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// GetForUser retrieves an order by its identifier, scoped to the owning
	// user. Returns an ObjectNotFoundError both when no such order exists
	// and when it is owned by a different user; the two cases are
	// deliberately indistinguishable.
	GetForUser(ctx context.Context, userID, id kernel.UUID) (*order.Order, error)

	// UpdateStatus persists the aggregate's current status as a conditional
	// update keyed on the expected previous status. When the row no longer
	// carries the expected status (a concurrent transition won the race), a
	// ConflictError is returned and nothing is written.
	UpdateStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// ListStalePending retrieves up to limit pending orders created before
	// the given instant, oldest first. Used by the stale-order cleanup job.
	ListStalePending(ctx context.Context, olderThan time.Time, limit int) ([]*order.Order, error)
}
