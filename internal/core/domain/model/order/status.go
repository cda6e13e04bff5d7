package order

import (
	"errors"
	"fmt"

	"cafeteria/internal/pkg/errs"
)

// ErrInvalidStatusTransition is the sentinel for all rejected status
// transitions, including attempts to mutate a terminal order.
var ErrInvalidStatusTransition = errors.New("invalid status transition")

// Status represents the lifecycle state of an order. It implements a state
// machine with an explicit transition table so orders always follow the
// fulfillment workflow.
//
// State transitions:
//
//	pending ───> confirmed ───> preparing ───> ready ───> completed
//	   │             │              │
//	   └─────────────┴──────────────┴───> cancelled
//
// completed and cancelled are terminal: they have no outgoing edges. A
// state has no edge to itself, so requesting the current status again is
// rejected like any other non-edge.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status assigned at order creation.
	Pending

	// Confirmed indicates the kitchen accepted the order.
	Confirmed

	// Preparing indicates the dish is being cooked.
	Preparing

	// Ready indicates the order is ready to be picked up.
	Ready

	// Completed indicates the order was served. Terminal.
	Completed

	// Cancelled indicates the order was cancelled before serving. Terminal.
	Cancelled
)

// getStatusStrings returns the wire representation of every Status,
// including Unknown, to support string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Confirmed: "confirmed",
		Preparing: "preparing",
		Ready:     "ready",
		Completed: "completed",
		Cancelled: "cancelled",
	}
}

// getValidStatusStrings returns only the statuses that may appear on a
// persisted order, to support validation and parsing.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		Confirmed: "confirmed",
		Preparing: "preparing",
		Ready:     "ready",
		Completed: "completed",
		Cancelled: "cancelled",
	}
}

// getStatusTransitions is the adjacency map of the lifecycle graph. It is
// the single source of truth for which transitions are legal.
func getStatusTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:   {Confirmed, Cancelled},
		Confirmed: {Preparing, Cancelled},
		Preparing: {Ready, Cancelled},
		Ready:     {Completed},
		Completed: {},
		Cancelled: {},
	}
}

// StatusFromString parses the wire representation of a status
// (e.g. "pending"). Returns an error for anything outside the closed set
// of valid statuses.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks that the Status is a member of the closed status set.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the wire representation of the status. It implements
// fmt.Stringer and is safe on any value, returning "unknown" for invalid
// ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status has no outgoing edges.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// CanTransitionTo reports whether the transition table contains an edge
// from s to target. Self-transitions are not edges.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range getStatusTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo validates the edge from s to target against the transition
// table and returns the new status.
//
// Returns an InvalidStatusTransitionError naming both statuses when the
// edge does not exist. Moving out of a terminal status and re-requesting
// the current status are both rejected this way.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(target) {
		return Unknown, NewInvalidStatusTransitionError(s, target)
	}
	return target, nil
}

// InvalidStatusTransitionError reports a rejected transition, carrying the
// current and requested status so callers can surface both.
type InvalidStatusTransitionError struct {
	From Status
	To   Status
}

// NewInvalidStatusTransitionError creates an InvalidStatusTransitionError
// for the edge from -> to.
func NewInvalidStatusTransitionError(from, to Status) *InvalidStatusTransitionError {
	return &InvalidStatusTransitionError{From: from, To: to}
}

func (e *InvalidStatusTransitionError) Error() string {
	return fmt.Sprintf("%s: from %s to %s", ErrInvalidStatusTransition, e.From, e.To)
}

func (e *InvalidStatusTransitionError) Unwrap() error {
	return ErrInvalidStatusTransition
}
