package commands

import (
	"context"
	"time"

	"printshop/internal/core/domain/model/order"
)

// AdvanceOrderCommandHandler moves orders along the forward status ladder.
// The current status is read under a row-level lock inside the transaction,
// so two concurrent transitions on the same order serialize and the second
// one sees the status left by the first.
type AdvanceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAdvanceOrderCommandHandler creates a handler for status advancement.
func NewAdvanceOrderCommandHandler(uowFactory OrderUoWFactory) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle advances the order one step and returns the appended history row.
// The permission gate runs before the transaction opens; merchants pass
// without an ownership check.
func (h *AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) (order.StatusUpdate, error) {
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

	next, err := current.Advance()
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
