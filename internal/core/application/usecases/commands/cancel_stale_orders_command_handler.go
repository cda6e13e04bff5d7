package commands

import (
	"context"
	"errors"
	"log/slog"

	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/core/ports"
	"cafeteria/internal/pkg/errs"
)

// CancelStaleOrdersCommandHandler cancels pending orders that were never
// confirmed before the cutoff. Cancellation goes through the same state
// machine and conditional update as a user-requested transition, so the
// transition table is never bypassed.
//
// Orders that change status concurrently lose the pending precondition and
// are skipped; the next run re-evaluates whatever is still pending.
type CancelStaleOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewCancelStaleOrdersCommandHandler creates a handler for the stale-order
// cleanup command.
func NewCancelStaleOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CancelStaleOrdersCommandHandler {
	return CancelStaleOrdersCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "cancel_stale_orders_handler"),
	}
}

// Handle cancels up to BatchSize stale pending orders and returns how many
// were cancelled.
func (h *CancelStaleOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd CancelStaleOrdersCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	stale, err := orderRepo.ListStalePending(ctx, cmd.OlderThan(), cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	cancelled := make([]*order.Order, 0, len(stale))
	for _, aggregate := range stale {
		if err = aggregate.ChangeStatus(order.Cancelled); err != nil {
			return 0, err
		}

		if err = orderRepo.UpdateStatus(ctx, aggregate, order.Pending); err != nil {
			if errors.Is(err, errs.ErrConflict) {
				h.logger.InfoContext(ctx, "Skipping order changed concurrently",
					"order_id", aggregate.ID().String())
				continue
			}
			return 0, err
		}

		cancelled = append(cancelled, aggregate)
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	for _, aggregate := range cancelled {
		h.publishCancelled(ctx, aggregate)
	}

	return len(cancelled), nil
}

func (h *CancelStaleOrdersCommandHandler) publishCancelled(ctx context.Context, aggregate *order.Order) {
	if h.publisher == nil {
		return
	}

	event := ports.OrderChangedEvent{
		OrderID:    aggregate.ID().String(),
		UserID:     aggregate.UserID().String(),
		FromStatus: order.Pending.String(),
		ToStatus:   order.Cancelled.String(),
		OccurredAt: aggregate.UpdatedAt(),
	}

	if err := h.publisher.PublishOrderChanged(ctx, event); err != nil {
		h.logger.ErrorContext(ctx, "Failed to publish order changed event",
			"order_id", event.OrderID, "error", err)
	}
}
