package queries

import (
	"context"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/pkg/errs"
)

// OrderReader is the slice of the order repository the detailed order query
// needs: aggregate retrieval plus the ownership check backing the gate.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
	IsOwnedBy(ctx context.Context, id, ownerID kernel.UUID) (bool, error)
}

// GetOrderQueryHandler retrieves full order aggregates for display. Unlike
// the compact list queries this goes through the repository, because the
// response is the complete aggregate the repository already knows how to
// reassemble.
type GetOrderQueryHandler struct {
	reader OrderReader
}

// NewGetOrderQueryHandler creates a handler for detailed order queries.
func NewGetOrderQueryHandler(reader OrderReader) GetOrderQueryHandler {
	return GetOrderQueryHandler{reader: reader}
}

// Handle returns the order aggregate after checking access: merchants read
// any order, clients only their own. A missing order and a foreign order
// look identical to the caller.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if !query.Session().Role().IsMerchant() {
		owned, err := h.reader.IsOwnedBy(ctx, query.OrderID(), query.Session().UserID())
		if err != nil {
			return nil, err
		}
		if !owned {
			return nil, errs.NewPermissionDeniedError("order " + query.OrderID().String())
		}
	}

	return h.reader.Get(ctx, query.OrderID())
}
