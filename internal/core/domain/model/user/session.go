// Package user provides caller identity primitives: the Role enum and the
// Session value extracted by the authentication middleware. The order
// lifecycle only ever needs this (user id, role) shape; token verification
// itself lives in the HTTP in-adapter.
package user

import (
	"errors"

	"printshop/internal/core/domain/model/kernel"
)

// ErrSessionIsNotConstructed is returned when a Session instance was not
// created through the NewSession factory method.
var ErrSessionIsNotConstructed = errors.New("Session must be created via NewSession constructor")

// Session identifies the authenticated caller of a request. It is a value
// object produced once per request by the authentication middleware and
// passed into every permission-gated operation.
type Session struct {
	userID kernel.UUID
	role   Role

	isConstructed bool
}

// NewSession creates a Session after validating the user id and role.
func NewSession(userID kernel.UUID, role Role) (Session, error) {
	if err := errors.Join(userID.Validate(), role.Validate()); err != nil {
		return Session{}, err
	}

	return Session{
		userID:        userID,
		role:          role,
		isConstructed: true,
	}, nil
}

// Validate ensures the Session instance was properly constructed through
// NewSession.
func (s Session) Validate() error {
	if !s.isConstructed {
		return ErrSessionIsNotConstructed
	}
	return nil
}

// UserID returns the authenticated caller's unique identifier.
func (s Session) UserID() kernel.UUID {
	return s.userID
}

// Role returns the authenticated caller's role.
func (s Session) Role() Role {
	return s.role
}
