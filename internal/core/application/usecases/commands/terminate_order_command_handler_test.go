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

func terminateFixture(t *testing.T, session user.Session, orderID kernel.UUID, current order.Status) (*MockOrderRepository, *MockOrderUoW, *MockOrderUoWFactory, commands.TerminateOrderCommand) {
	t.Helper()

	cmd, err := commands.NewTerminateOrderCommand(session, orderID)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("GetStatusForUpdate", mock.Anything, orderID).Return(current, nil).Once()
	if !session.Role().IsMerchant() {
		repo.On("IsOwnedBy", mock.Anything, orderID, session.UserID()).Return(true, nil).Once()
	}

	uow := new(MockOrderUoW)
	uow.On("OrderRepository").Return(repo)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	return repo, uow, factory, cmd
}

func TestTerminateOrderCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	t.Run("should cancel for the owning client", func(t *testing.T) {
		session := clientSession(user.RoleStudent)
		repo, uow, factory, cmd := terminateFixture(t, session, orderID, order.StatusProcessing)
		repo.On("UpdateStatus", mock.Anything, orderID, mock.MatchedBy(func(u order.StatusUpdate) bool {
			return u.Status() == order.StatusCancelled
		})).Return(nil).Once()
		uow.On("Commit", mock.Anything).Return(nil).Once()

		h := commands.NewTerminateOrderCommandHandler(factory)

		update, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.StatusCancelled, update.Status())
		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("should reject for the merchant", func(t *testing.T) {
		session := clientSession(user.RoleMerchant)
		repo, uow, factory, cmd := terminateFixture(t, session, orderID, order.StatusReviewing)
		repo.On("UpdateStatus", mock.Anything, orderID, mock.MatchedBy(func(u order.StatusUpdate) bool {
			return u.Status() == order.StatusRejected
		})).Return(nil).Once()
		uow.On("Commit", mock.Anything).Return(nil).Once()

		h := commands.NewTerminateOrderCommandHandler(factory)

		update, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.StatusRejected, update.Status())
	})

	t.Run("should refuse to terminate a terminal order", func(t *testing.T) {
		session := clientSession(user.RoleStudent)
		repo, uow, factory, cmd := terminateFixture(t, session, orderID, order.StatusCancelled)

		h := commands.NewTerminateOrderCommandHandler(factory)

		_, err := h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})
}
