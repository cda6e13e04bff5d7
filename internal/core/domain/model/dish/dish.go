// Package dish provides the read-only Dish reference entity. Dishes belong
// to the catalog, which is owned by another part of the system; the order
// core only validates dish references and denormalizes dish attributes
// into order listings.
package dish

import (
	"errors"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/pkg/errs"
)

// ErrDishIsNotConstructed is returned when a Dish instance was not created
// through the NewDish factory.
var ErrDishIsNotConstructed = errors.New("Dish must be created via NewDish constructor")

// Dish is a read-only reference to a catalog dish. The order core never
// mutates dishes; it reads id, name, and price for validation and for the
// denormalized listing payload.
type Dish struct {
	id    kernel.UUID
	name  string
	price int

	isConstructed bool
}

// NewDish creates a Dish reference. Name must be non-empty and price
// non-negative.
func NewDish(id kernel.UUID, name string, price int) (*Dish, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if price < 0 {
		return nil, errs.NewValueIsInvalidError("price")
	}

	return &Dish{
		id:            id,
		name:          name,
		price:         price,
		isConstructed: true,
	}, nil
}

// Validate ensures the Dish was created through NewDish.
func (d *Dish) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDishIsNotConstructed
	}
	return nil
}

// ID returns the dish identifier.
func (d *Dish) ID() kernel.UUID {
	return d.id
}

// Name returns the dish name.
func (d *Dish) Name() string {
	return d.name
}

// Price returns the dish price in yen.
func (d *Dish) Price() int {
	return d.price
}
