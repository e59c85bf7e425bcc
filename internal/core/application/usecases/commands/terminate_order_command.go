package commands

import (
	"errors"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/user"
	"printshop/internal/pkg/guard"
)

var ErrTerminateOrderCommandIsNotConstructed = errors.New(
	"TerminateOrderCommand must be created via NewTerminateOrderCommand constructor",
)

// TerminateOrderCommand represents a request to take an order out of the
// workflow. The terminal status depends on who asks: clients cancel their
// own orders, merchants reject them.
type TerminateOrderCommand struct { //nolint:recvcheck //using for validation
	session user.Session
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewTerminateOrderCommand creates a command to terminate the given order.
func NewTerminateOrderCommand(session user.Session, orderID kernel.UUID) (TerminateOrderCommand, error) {
	cmd := TerminateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSession(session),
		cmd.setOrderID(orderID),
	); err != nil {
		return TerminateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrTerminateOrderCommandIsNotConstructed if validation fails.
func (c TerminateOrderCommand) Validate() error {
	return c.guard.Validate(ErrTerminateOrderCommandIsNotConstructed)
}

// Session returns the authenticated caller.
func (c TerminateOrderCommand) Session() user.Session {
	return c.session
}

// OrderID returns the order to terminate.
func (c TerminateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *TerminateOrderCommand) setSession(session user.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	c.session = session
	return nil
}

func (c *TerminateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
