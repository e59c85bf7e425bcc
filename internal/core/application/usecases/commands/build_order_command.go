package commands

import (
	"errors"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/user"
	"printshop/internal/core/domain/services"
	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/guard"
)

var ErrBuildOrderCommandIsNotConstructed = errors.New(
	"BuildOrderCommand must be created via NewBuildOrderCommand constructor",
)

// BuildOrderCommand represents a request to promote the caller's draft into
// a confirmed, persisted order. The request carries the print specification
// for every staged file the client wants on the order; deep validation of
// the specification against the staged files happens inside the registry,
// under the owner's lock.
type BuildOrderCommand struct { //nolint:recvcheck //using for validation
	session user.Session
	orderID kernel.UUID
	request services.BuildRequest

	guard guard.ConstructorGuard
}

// NewBuildOrderCommand creates a command to build the draft with the given
// order id. The request must reference at least one file.
func NewBuildOrderCommand(
	session user.Session,
	orderID kernel.UUID,
	request services.BuildRequest,
) (BuildOrderCommand, error) {
	cmd := BuildOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSession(session),
		cmd.setOrderID(orderID),
		cmd.setRequest(request),
	); err != nil {
		return BuildOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrBuildOrderCommandIsNotConstructed if validation fails.
func (c BuildOrderCommand) Validate() error {
	return c.guard.Validate(ErrBuildOrderCommandIsNotConstructed)
}

// Session returns the authenticated caller.
func (c BuildOrderCommand) Session() user.Session {
	return c.session
}

// OrderID returns the draft order being built.
func (c BuildOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Request returns the client's build specification.
func (c BuildOrderCommand) Request() services.BuildRequest {
	return c.request
}

func (c *BuildOrderCommand) setSession(session user.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	c.session = session
	return nil
}

func (c *BuildOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *BuildOrderCommand) setRequest(request services.BuildRequest) error {
	if len(request.Files) == 0 {
		return errs.NewValueIsRequiredError("build files")
	}

	c.request = request
	return nil
}
