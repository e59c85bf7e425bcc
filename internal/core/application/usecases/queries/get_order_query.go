// Package queries contains read-only operations in the CQRS architecture.
// Query handlers read from the database directly and return lightweight
// response models; they never mutate state.
package queries

import (
	"errors"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/user"
	"printshop/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order in full detail: files with their ranges,
// services, and the complete status history. Clients see only their own
// orders; merchants see any order.
type GetOrderQuery struct {
	session user.Session
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for the given order on behalf of the
// session's user.
func NewGetOrderQuery(session user.Session, orderID kernel.UUID) (GetOrderQuery, error) {
	if err := errors.Join(session.Validate(), orderID.Validate()); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		session: session,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// Session returns the authenticated caller.
func (q GetOrderQuery) Session() user.Session {
	return q.session
}

// OrderID returns the order to fetch.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}
