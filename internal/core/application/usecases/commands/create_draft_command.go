package commands

import (
	"errors"

	"printshop/internal/core/domain/model/user"
	"printshop/internal/pkg/guard"
)

var ErrCreateDraftCommandIsNotConstructed = errors.New(
	"CreateDraftCommand must be created via NewCreateDraftCommand constructor",
)

// CreateDraftCommand represents a request to open a draft order for the
// calling client. Opening is idempotent: a client that already holds a live
// draft gets the same draft back.
type CreateDraftCommand struct { //nolint:recvcheck //using for validation
	session user.Session

	guard guard.ConstructorGuard
}

// NewCreateDraftCommand creates a command to open a draft for the session's
// user. The session must be valid and carry a client role.
func NewCreateDraftCommand(session user.Session) (CreateDraftCommand, error) {
	cmd := CreateDraftCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setSession(session); err != nil {
		return CreateDraftCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateDraftCommandIsNotConstructed if validation fails.
func (c CreateDraftCommand) Validate() error {
	return c.guard.Validate(ErrCreateDraftCommandIsNotConstructed)
}

// Session returns the authenticated caller.
func (c CreateDraftCommand) Session() user.Session {
	return c.session
}

func (c *CreateDraftCommand) setSession(session user.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	c.session = session
	return nil
}
