// Package userrepo provides read-only persistence access to users for
// ownership scoping and token resolution. The auth fields stored on the
// row (email, access token) never leave this package: the domain entity
// carries only id and display name.
package userrepo

import (
	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// UserDTO represents the database row for a user account.
type UserDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"not null"`
	Email       string    `gorm:"not null;uniqueIndex"`
	AccessToken string    `gorm:"not null;uniqueIndex"`
}

// TableName specifies the database table name for user entities.
func (UserDTO) TableName() string {
	return "users"
}

// toDomain converts a database row to a user reference entity, dropping
// every auth field.
func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return user.NewUser(id, dto.Name)
}
