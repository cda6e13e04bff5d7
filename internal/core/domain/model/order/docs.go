// Package order provides domain entities and business logic for order
// management in the cafeteria system. It implements the Order aggregate
// root with lifecycle management and state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, ownership,
//     quantity, and lifecycle timestamps
//   - Status: A state machine that enforces valid order status transitions
//     through an explicit adjacency map
//
// Key business rules:
//   - Orders must reference a valid user and dish and have a positive quantity
//   - Order status follows the workflow pending -> confirmed -> preparing ->
//     ready -> completed, with cancellation possible until preparation ends
//   - completed and cancelled are terminal states with no outgoing edges
//   - A transition request equal to the current status is rejected; the
//     table contains no self-edges
//
// The package follows Domain-Driven Design principles, providing rich
// domain behavior, encapsulation, and validation to ensure business rules
// are enforced.
package order
