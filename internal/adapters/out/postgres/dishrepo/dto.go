// Package dishrepo provides read-only persistence access to the dish
// catalog. The order core only looks dishes up; catalog writes happen
// elsewhere.
package dishrepo

import (
	"cafeteria/internal/core/domain/model/dish"
	"cafeteria/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DishDTO represents the database row for a catalog dish.
type DishDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string    `gorm:"not null"`
	Price int       `gorm:"not null"`
}

// TableName specifies the database table name for dish entities.
func (DishDTO) TableName() string {
	return "dishes"
}

// toDomain converts a database row to a dish reference entity.
func toDomain(dto DishDTO) (*dish.Dish, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return dish.NewDish(id, dto.Name, dto.Price)
}
