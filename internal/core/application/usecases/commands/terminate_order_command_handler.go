package commands

import (
	"context"
	"time"

	"printshop/internal/core/domain/model/order"
)

// TerminateOrderCommandHandler takes orders out of the workflow under the
// same row-level locking discipline as advancement. An order that already
// reached a terminal status cannot be terminated again.
type TerminateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewTerminateOrderCommandHandler creates a handler for order termination.
func NewTerminateOrderCommandHandler(uowFactory OrderUoWFactory) TerminateOrderCommandHandler {
	return TerminateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle terminates the order and returns the appended history row. Client
// sessions cancel, merchant sessions reject.
func (h *TerminateOrderCommandHandler) Handle(ctx context.Context, cmd TerminateOrderCommand) (order.StatusUpdate, error) {
	if err := cmd.Validate(); err != nil {
		return order.StatusUpdate{}, err
	}

	uow := h.uowFactory.Create()

	if err := CheckOrderAccess(ctx, uow.OrderRepository(), cmd.OrderID(), cmd.Session(), true); err != nil {
		return order.StatusUpdate{}, err
	}

	if err := uow.Begin(ctx); err != nil {
		return order.StatusUpdate{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	current, err := repo.GetStatusForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return order.StatusUpdate{}, err
	}

	next, err := current.Terminate(cmd.Session().Role())
	if err != nil {
		return order.StatusUpdate{}, err
	}

	update, err := order.NewStatusUpdate(time.Now().UTC(), next)
	if err != nil {
		return order.StatusUpdate{}, err
	}

	if err = repo.UpdateStatus(ctx, cmd.OrderID(), update); err != nil {
		return order.StatusUpdate{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return order.StatusUpdate{}, err
	}

	return update, nil
}
