package commands

import (
	"errors"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/user"
	"printshop/internal/pkg/guard"
)

var ErrAdvanceOrderCommandIsNotConstructed = errors.New(
	"AdvanceOrderCommand must be created via NewAdvanceOrderCommand constructor",
)

// AdvanceOrderCommand represents a request to move an order one step along
// the forward status ladder: reviewing, processing, ready, completed.
type AdvanceOrderCommand struct { //nolint:recvcheck //using for validation
	session user.Session
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAdvanceOrderCommand creates a command to advance the given order.
func NewAdvanceOrderCommand(session user.Session, orderID kernel.UUID) (AdvanceOrderCommand, error) {
	cmd := AdvanceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSession(session),
		cmd.setOrderID(orderID),
	); err != nil {
		return AdvanceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAdvanceOrderCommandIsNotConstructed if validation fails.
func (c AdvanceOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderCommandIsNotConstructed)
}

// Session returns the authenticated caller.
func (c AdvanceOrderCommand) Session() user.Session {
	return c.session
}

// OrderID returns the order to advance.
func (c AdvanceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *AdvanceOrderCommand) setSession(session user.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	c.session = session
	return nil
}

func (c *AdvanceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
