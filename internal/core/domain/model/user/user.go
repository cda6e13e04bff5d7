// Package user provides the read-only User reference entity. Identity and
// credential management live in the authentication layer; the order core
// only needs the resolved user id for ownership scoping and the display
// name for listing payloads. Email, provider, and credential fields never
// enter this model, so they cannot leak through order responses.
package user

import (
	"errors"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/pkg/errs"
)

// ErrUserIsNotConstructed is returned when a User instance was not created
// through the NewUser factory.
var ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

// User is the acting identity resolved by the authentication collaborator.
// The core trusts it completely and performs no credential checks itself.
type User struct {
	id   kernel.UUID
	name string

	isConstructed bool
}

// NewUser creates a User reference. Name must be non-empty.
func NewUser(id kernel.UUID, name string) (*User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}

	return &User{
		id:            id,
		name:          name,
		isConstructed: true,
	}, nil
}

// Validate ensures the User was created through NewUser.
func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

// ID returns the user identifier.
func (u *User) ID() kernel.UUID {
	return u.id
}

// Name returns the display name.
func (u *User) Name() string {
	return u.name
}
