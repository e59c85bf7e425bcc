package commands

import (
	"errors"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/core/domain/model/user"
	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/guard"
)

var ErrStageFileCommandIsNotConstructed = errors.New(
	"StageFileCommand must be created via NewStageFileCommand constructor",
)

// StageFileCommand represents a request to reserve an upload slot on the
// caller's draft order. The declared filetype and filesize are fixed at
// staging time and merged into the final file record at build.
type StageFileCommand struct { //nolint:recvcheck //using for validation
	session  user.Session
	orderID  kernel.UUID
	filetype order.FileType
	filesize int64

	guard guard.ConstructorGuard
}

// NewStageFileCommand creates a command to stage a file on the draft with
// the given order id. The filetype must be a supported format and the size
// positive.
func NewStageFileCommand(
	session user.Session,
	orderID kernel.UUID,
	filetype order.FileType,
	filesize int64,
) (StageFileCommand, error) {
	cmd := StageFileCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSession(session),
		cmd.setOrderID(orderID),
		cmd.setFiletype(filetype),
		cmd.setFilesize(filesize),
	); err != nil {
		return StageFileCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrStageFileCommandIsNotConstructed if validation fails.
func (c StageFileCommand) Validate() error {
	return c.guard.Validate(ErrStageFileCommandIsNotConstructed)
}

// Session returns the authenticated caller.
func (c StageFileCommand) Session() user.Session {
	return c.session
}

// OrderID returns the draft order the file is staged on.
func (c StageFileCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Filetype returns the declared format of the upload.
func (c StageFileCommand) Filetype() order.FileType {
	return c.filetype
}

// Filesize returns the declared size of the upload in bytes.
func (c StageFileCommand) Filesize() int64 {
	return c.filesize
}

func (c *StageFileCommand) setSession(session user.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	c.session = session
	return nil
}

func (c *StageFileCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *StageFileCommand) setFiletype(filetype order.FileType) error {
	if err := filetype.Validate(); err != nil {
		return err
	}

	c.filetype = filetype
	return nil
}

func (c *StageFileCommand) setFilesize(filesize int64) error {
	if filesize <= 0 {
		return errs.NewValueIsInvalidError("filesize")
	}

	c.filesize = filesize
	return nil
}
