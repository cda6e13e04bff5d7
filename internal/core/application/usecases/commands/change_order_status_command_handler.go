package commands

import (
	"context"
	"log/slog"

	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/core/ports"
)

// ChangeOrderStatusCommandHandler applies a status transition to an order.
//
// The transition is a single atomic read-modify-write: the order is loaded
// owner-scoped, the aggregate validates the edge against the transition
// table, and the repository persists it as a conditional update keyed on
// the previously observed status. A concurrent transition that wins the
// race surfaces as a ConflictError to the loser; nothing is overwritten
// silently.
//
// After a successful commit the handler emits an order-changed event.
// Publishing is best-effort and never fails the request.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewChangeOrderStatusCommandHandler creates a handler for status
// transitions. The publisher may be shared; the logger is namespaced to
// this handler.
func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "change_order_status_handler"),
	}
}

// Handle processes the status change command and returns the updated order.
//
// Failure modes, in evaluation order: command validation error, order not
// found (also covering foreign ownership), InvalidStatusTransitionError
// from the aggregate, ConflictError from the conditional update.
func (h *ChangeOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeOrderStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetForUser(ctx, cmd.UserID(), cmd.OrderID())
	if err != nil {
		return nil, err
	}

	previous := aggregate.Status()
	if err = aggregate.ChangeStatus(cmd.Status()); err != nil {
		return nil, err
	}

	if err = orderRepo.UpdateStatus(ctx, aggregate, previous); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publishChanged(ctx, aggregate, previous)

	return aggregate, nil
}

func (h *ChangeOrderStatusCommandHandler) publishChanged(
	ctx context.Context,
	aggregate *order.Order,
	previous order.Status,
) {
	if h.publisher == nil {
		return
	}

	event := ports.OrderChangedEvent{
		OrderID:    aggregate.ID().String(),
		UserID:     aggregate.UserID().String(),
		FromStatus: previous.String(),
		ToStatus:   aggregate.Status().String(),
		OccurredAt: aggregate.UpdatedAt(),
	}

	if err := h.publisher.PublishOrderChanged(ctx, event); err != nil {
		h.logger.ErrorContext(ctx, "Failed to publish order changed event",
			"order_id", event.OrderID, "error", err)
	}
}
