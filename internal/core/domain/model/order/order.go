package order

import (
	"errors"
	"fmt"
	"time"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder. This ensures all orders are
	// properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order represents a cafeteria order placed by a user for a dish. It is
// the aggregate root that manages the order lifecycle from placement
// through fulfillment.
//
// Order maintains these invariants:
//   - id, userID, and dishID are valid and immutable
//   - quantity is positive at all times
//   - status only moves along the edges of the transition table
//   - createdAt is assigned once at placement and never changes; it is the
//     sort and cursor key of the order history
//   - updatedAt is refreshed on every mutation
//
// Private fields keep the aggregate encapsulated; all mutation goes
// through ChangeStatus.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// userID references the owning user; every read and write is scoped to it
	userID kernel.UUID

	// dishID references the ordered dish
	dishID kernel.UUID

	// quantity is the number of servings (must be positive)
	quantity int

	// status is the current state in the order lifecycle
	status Status

	// createdAt is the placement instant, used as the pagination cursor key
	createdAt time.Time

	// updatedAt is the instant of the last mutation
	updatedAt time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in Pending status. This is the only way to
// place an order, ensuring all business invariants hold from the start.
// Creation bypasses the transition table: Pending is assigned directly,
// never transitioned into.
//
// The placement timestamp is taken once, in UTC, and shared by createdAt
// and updatedAt.
func NewOrder(id, userID, dishID kernel.UUID, quantity int) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setDishID(dishID),
		o.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence. Unlike NewOrder it
// accepts any valid status and the stored timestamps, but it re-validates
// every invariant so corrupt rows never become live aggregates.
func RestoreOrder(
	id, userID, dishID kernel.UUID,
	quantity int,
	status Status,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setDishID(dishID),
		o.setQuantity(quantity),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
// Returns ErrOrderIsNotConstructed for direct struct instantiation.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// UserID returns the identifier of the owning user.
func (o *Order) UserID() kernel.UUID {
	return o.userID
}

// DishID returns the identifier of the ordered dish.
func (o *Order) DishID() kernel.UUID {
	return o.dishID
}

// Quantity returns the number of servings.
func (o *Order) Quantity() int {
	return o.quantity
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the placement timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the timestamp of the last mutation.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// IsOwnedBy reports whether the order belongs to the given user.
func (o *Order) IsOwnedBy(userID kernel.UUID) bool {
	return o.userID.IsEqual(userID)
}

// ChangeStatus moves the order to the requested status.
//
// The requested status is evaluated against the transition table like any
// other target: terminal orders reject every request, and requesting the
// current status is rejected because no state has a self-edge.
//
// On success the status is updated and updatedAt is refreshed. On failure
// the order is left untouched and an InvalidStatusTransitionError naming
// both statuses is returned.
func (o *Order) ChangeStatus(target Status) error {
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = time.Now().UTC()
	return nil
}

// setID validates and sets the order's unique identifier.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setUserID validates and sets the owning user reference.
func (o *Order) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	o.userID = userID
	return nil
}

// setDishID validates and sets the dish reference.
func (o *Order) setDishID(dishID kernel.UUID) error {
	if err := dishID.Validate(); err != nil {
		return err
	}
	o.dishID = dishID
	return nil
}

// setQuantity validates and sets the quantity.
// Quantity must be positive.
func (o *Order) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	o.quantity = quantity
	return nil
}

// setStatus validates and sets the status during restoration.
func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
