package commands_test

import (
	"testing"

	"printshop/internal/core/application/usecases/commands"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/core/domain/model/user"
	"printshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAdvanceOrderCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	t.Run("should advance reviewing to processing under the row lock", func(t *testing.T) {
		cmd, err := commands.NewAdvanceOrderCommand(clientSession(user.RoleMerchant), orderID)
		require.NoError(t, err)

		repo := new(MockOrderRepository)
		uow := new(MockOrderUoW)
		mock.InOrder(
			uow.On("OrderRepository").Return(repo).Once(),
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(repo).Once(),
			repo.On("GetStatusForUpdate", ctx, orderID).Return(order.StatusReviewing, nil).Once(),
			repo.On("UpdateStatus", ctx, orderID, mock.MatchedBy(func(u order.StatusUpdate) bool {
				return u.Status() == order.StatusProcessing
			})).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewAdvanceOrderCommandHandler(factory)

		update, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.StatusProcessing, update.Status())
		assert.False(t, update.Timestamp().IsZero())

		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("should refuse to advance a completed order", func(t *testing.T) {
		cmd, err := commands.NewAdvanceOrderCommand(clientSession(user.RoleMerchant), orderID)
		require.NoError(t, err)

		repo := new(MockOrderRepository)
		repo.On("GetStatusForUpdate", ctx, orderID).Return(order.StatusCompleted, nil).Once()

		uow := new(MockOrderUoW)
		uow.On("OrderRepository").Return(repo)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewAdvanceOrderCommandHandler(factory)

		_, err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should deny a non-owner before opening the transaction", func(t *testing.T) {
		session := clientSession(user.RoleStudent)
		cmd, err := commands.NewAdvanceOrderCommand(session, orderID)
		require.NoError(t, err)

		repo := new(MockOrderRepository)
		repo.On("IsOwnedBy", ctx, orderID, session.UserID()).Return(false, nil).Once()

		uow := new(MockOrderUoW)
		uow.On("OrderRepository").Return(repo).Once()

		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewAdvanceOrderCommandHandler(factory)

		_, err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrPermissionDenied)
		uow.AssertNotCalled(t, "Begin", mock.Anything)
	})
}
