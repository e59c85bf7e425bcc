package commands

import (
	"errors"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/user"
	"printshop/internal/pkg/guard"
)

var ErrRemoveDraftFileCommandIsNotConstructed = errors.New(
	"RemoveDraftFileCommand must be created via NewRemoveDraftFileCommand constructor",
)

// RemoveDraftFileCommand represents a request to unstage a file from the
// caller's draft order and discard its uploaded object.
type RemoveDraftFileCommand struct { //nolint:recvcheck //using for validation
	session user.Session
	orderID kernel.UUID
	fileID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemoveDraftFileCommand creates a command to unstage the given file from
// the draft with the given order id.
func NewRemoveDraftFileCommand(
	session user.Session,
	orderID kernel.UUID,
	fileID kernel.UUID,
) (RemoveDraftFileCommand, error) {
	cmd := RemoveDraftFileCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSession(session),
		cmd.setOrderID(orderID),
		cmd.setFileID(fileID),
	); err != nil {
		return RemoveDraftFileCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRemoveDraftFileCommandIsNotConstructed if validation fails.
func (c RemoveDraftFileCommand) Validate() error {
	return c.guard.Validate(ErrRemoveDraftFileCommandIsNotConstructed)
}

// Session returns the authenticated caller.
func (c RemoveDraftFileCommand) Session() user.Session {
	return c.session
}

// OrderID returns the draft order the file is staged on.
func (c RemoveDraftFileCommand) OrderID() kernel.UUID {
	return c.orderID
}

// FileID returns the staged file to remove.
func (c RemoveDraftFileCommand) FileID() kernel.UUID {
	return c.fileID
}

func (c *RemoveDraftFileCommand) setSession(session user.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	c.session = session
	return nil
}

func (c *RemoveDraftFileCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RemoveDraftFileCommand) setFileID(fileID kernel.UUID) error {
	if err := fileID.Validate(); err != nil {
		return err
	}

	c.fileID = fileID
	return nil
}
