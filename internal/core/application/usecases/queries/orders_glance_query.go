package queries

import (
	"errors"
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/user"
	"printshop/internal/pkg/guard"
)

var ErrOrdersGlanceQueryIsNotConstructed = errors.New(
	"OrdersGlanceQuery must be created via NewOrdersGlanceQuery constructor",
)

// glanceFinishedLimit caps the number of finished orders the glance view
// carries; the full list lives behind the history query.
const glanceFinishedLimit = 5

// OrdersGlanceQuery retrieves a client's dashboard view: every ongoing
// order and the last few finished ones, compact form, newest first.
type OrdersGlanceQuery struct {
	session user.Session

	guard guard.ConstructorGuard
}

// NewOrdersGlanceQuery creates a glance query for the session's user.
// Merchant sessions are rejected; the glance is a client-side view.
func NewOrdersGlanceQuery(session user.Session) (OrdersGlanceQuery, error) {
	if err := session.Validate(); err != nil {
		return OrdersGlanceQuery{}, err
	}

	return OrdersGlanceQuery{
		session: session,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrOrdersGlanceQueryIsNotConstructed if validation fails.
func (q OrdersGlanceQuery) Validate() error {
	return q.guard.Validate(ErrOrdersGlanceQueryIsNotConstructed)
}

// Session returns the authenticated caller.
func (q OrdersGlanceQuery) Session() user.Session {
	return q.session
}

// CompactOrder is the list-view projection of an order: enough to render a
// row without loading files, services or history.
type CompactOrder struct {
	ID          kernel.UUID
	CreatedAt   time.Time
	OrderNumber string
	Status      string
	FilesCount  int
}

// OrdersGlanceQueryResponse carries the two glance sections.
type OrdersGlanceQueryResponse struct {
	Ongoing  []CompactOrder
	Finished []CompactOrder
}
