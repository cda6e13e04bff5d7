// Package orderrepo provides data transfer objects and mapping functions
// for order persistence. It implements the repository pattern for the
// order aggregate, handling the conversion between domain entities and
// database rows.
package orderrepo

import (
	"time"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database row for an order aggregate. The
// composite indexes on (user_id, created_at) and
// (user_id, status, created_at) serve the query engine's owner-scoped,
// cursor-paginated access patterns.
//
// Timestamps are owned by the domain, so GORM's automatic time tracking is
// disabled on both columns.
type OrderDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_orders_user_created,priority:1;index:idx_orders_user_status_created,priority:1"`
	DishID    uuid.UUID `gorm:"type:uuid;not null"`
	Quantity  int       `gorm:"not null"`
	Status    int       `gorm:"not null;index:idx_orders_user_status_created,priority:2"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false;autoUpdateTime:false;index:idx_orders_user_created,priority:2;index:idx_orders_user_status_created,priority:3"`
	UpdatedAt time.Time `gorm:"not null;autoCreateTime:false;autoUpdateTime:false"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:        aggregate.ID().Bytes(),
		UserID:    aggregate.UserID().Bytes(),
		DishID:    aggregate.DishID().Bytes(),
		Quantity:  aggregate.Quantity(),
		Status:    int(aggregate.Status()),
		CreatedAt: aggregate.CreatedAt(),
		UpdatedAt: aggregate.UpdatedAt(),
	}
}

// toDomain converts a database row to an order aggregate via RestoreOrder,
// re-validating every invariant.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	dishID, err := kernel.UUIDFromBytes(dto.DishID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		userID,
		dishID,
		dto.Quantity,
		order.Status(dto.Status),
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
