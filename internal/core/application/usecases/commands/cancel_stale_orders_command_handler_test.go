package commands_test

import (
	"testing"
	"time"

	"cafeteria/internal/core/application/usecases/commands"
	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelStaleOrdersCommandHandler_Handle_CancelsBatch(t *testing.T) {
	ctx := t.Context()
	cutoff := time.Now().UTC().Add(-time.Hour)
	cmd, err := commands.NewCancelStaleOrdersCommand(cutoff, 100)
	require.NoError(t, err)

	first := restoredOrder(t, kernel.NewUUID(), order.Pending)
	second := restoredOrder(t, kernel.NewUUID(), order.Pending)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("ListStalePending", mock.Anything, cutoff, 100).
			Return([]*order.Order{first, second}, nil).Once(),
		repo.On("UpdateStatus", mock.Anything, first, order.Pending).Return(nil).Once(),
		repo.On("UpdateStatus", mock.Anything, second, order.Pending).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	publisher := new(MockEventPublisher)
	publisher.On("PublishOrderChanged", mock.Anything, mock.Anything).Return(nil).Twice()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelStaleOrdersCommandHandler(factory, publisher, discardLogger())
	cancelled, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, 2, cancelled)
	require.Equal(t, order.Cancelled, first.Status())
	require.Equal(t, order.Cancelled, second.Status())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCancelStaleOrdersCommandHandler_Handle_SkipsConcurrentlyChangedOrders(t *testing.T) {
	ctx := t.Context()
	cutoff := time.Now().UTC().Add(-time.Hour)
	cmd, err := commands.NewCancelStaleOrdersCommand(cutoff, 100)
	require.NoError(t, err)

	contested := restoredOrder(t, kernel.NewUUID(), order.Pending)
	stale := restoredOrder(t, kernel.NewUUID(), order.Pending)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("ListStalePending", mock.Anything, cutoff, 100).
			Return([]*order.Order{contested, stale}, nil).Once(),
		repo.On("UpdateStatus", mock.Anything, contested, order.Pending).
			Return(errs.NewConflictError("order", contested.ID().String())).Once(),
		repo.On("UpdateStatus", mock.Anything, stale, order.Pending).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	publisher := new(MockEventPublisher)
	publisher.On("PublishOrderChanged", mock.Anything, mock.Anything).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelStaleOrdersCommandHandler(factory, publisher, discardLogger())
	cancelled, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, 1, cancelled)
	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCancelStaleOrdersCommandHandler_Handle_NothingStale(t *testing.T) {
	ctx := t.Context()
	cutoff := time.Now().UTC().Add(-time.Hour)
	cmd, err := commands.NewCancelStaleOrdersCommand(cutoff, 100)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("ListStalePending", mock.Anything, cutoff, 100).
			Return([]*order.Order{}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelStaleOrdersCommandHandler(factory, nil, discardLogger())
	cancelled, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Zero(t, cancelled)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCancelStaleOrdersCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CancelStaleOrdersCommand{} // not constructed properly
	factory := new(MockOrderUoWFactory)
	h := commands.NewCancelStaleOrdersCommandHandler(factory, nil, discardLogger())
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
}
