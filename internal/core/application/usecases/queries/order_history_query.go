package queries

import (
	"errors"

	"printshop/internal/core/domain/model/user"
	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/guard"
)

var ErrOrderHistoryQueryIsNotConstructed = errors.New(
	"OrderHistoryQuery must be created via NewOrderHistoryQuery constructor",
)

// historyMaxLimit caps the page size a client may request.
const historyMaxLimit = 50

// OrderHistoryQuery retrieves a client's finished orders page by page,
// newest first.
type OrderHistoryQuery struct {
	session user.Session
	page    int
	limit   int

	guard guard.ConstructorGuard
}

// NewOrderHistoryQuery creates a history query for the session's user.
// Pages are 1-based; a limit outside [1, 50] is rejected.
func NewOrderHistoryQuery(session user.Session, page, limit int) (OrderHistoryQuery, error) {
	if err := session.Validate(); err != nil {
		return OrderHistoryQuery{}, err
	}

	if page < 1 {
		return OrderHistoryQuery{}, errs.NewValueIsInvalidError("page")
	}

	if limit < 1 || limit > historyMaxLimit {
		return OrderHistoryQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, historyMaxLimit)
	}

	return OrderHistoryQuery{
		session: session,
		page:    page,
		limit:   limit,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrOrderHistoryQueryIsNotConstructed if validation fails.
func (q OrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrOrderHistoryQueryIsNotConstructed)
}

// Session returns the authenticated caller.
func (q OrderHistoryQuery) Session() user.Session {
	return q.session
}

// Page returns the 1-based page number.
func (q OrderHistoryQuery) Page() int {
	return q.page
}

// Limit returns the page size.
func (q OrderHistoryQuery) Limit() int {
	return q.limit
}

// OrderHistoryQueryResponse is one page of finished orders plus the total
// count for pagination.
type OrderHistoryQueryResponse struct {
	Orders []CompactOrder
	Total  int64
}
