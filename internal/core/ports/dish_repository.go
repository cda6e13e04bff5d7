package ports

import (
	"context"

	"cafeteria/internal/core/domain/model/dish"
	"cafeteria/internal/core/domain/model/kernel"
)

// DishRepository is the read-only contract to the dish catalog. The order
// core uses it to validate that an ordered dish exists; catalog management
// is an external concern.
type DishRepository interface {
	// Get retrieves a dish by its identifier.
	// Returns an ObjectNotFoundError if the dish does not exist.
	Get(ctx context.Context, id kernel.UUID) (*dish.Dish, error)
}
