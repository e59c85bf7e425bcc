package queries

import (
	"context"

	"printshop/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// Status sets backing the list queries. These mirror the terminal statuses
// of the domain state machine; the strings are the persisted forms.
var (
	ongoingStatuses  = []string{"reviewing", "processing", "ready"}
	finishedStatuses = []string{"completed", "cancelled", "rejected"}
)

// OrdersGlanceQueryHandler builds the client dashboard from the database:
// all ongoing orders plus the most recent finished ones.
type OrdersGlanceQueryHandler struct {
	db *gorm.DB
}

// NewOrdersGlanceQueryHandler creates a handler for glance queries.
// Requires a GORM database connection for query execution.
func NewOrdersGlanceQueryHandler(db *gorm.DB) OrdersGlanceQueryHandler {
	return OrdersGlanceQueryHandler{db: db}
}

// Handle executes the glance query for the caller's own orders.
func (h OrdersGlanceQueryHandler) Handle(
	ctx context.Context,
	query OrdersGlanceQuery,
) (OrdersGlanceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return OrdersGlanceQueryResponse{}, err
	}

	ownerID := query.Session().UserID()

	ongoing, err := h.selectCompact(ctx, ownerID, ongoingStatuses, 0)
	if err != nil {
		return OrdersGlanceQueryResponse{}, err
	}

	finished, err := h.selectCompact(ctx, ownerID, finishedStatuses, glanceFinishedLimit)
	if err != nil {
		return OrdersGlanceQueryResponse{}, err
	}

	return OrdersGlanceQueryResponse{
		Ongoing:  ongoing,
		Finished: finished,
	}, nil
}

// selectCompact reads the compact projection of the owner's orders in the
// given statuses, newest first. A limit of 0 means no limit.
func (h OrdersGlanceQueryHandler) selectCompact(
	ctx context.Context,
	ownerID kernel.UUID,
	statuses []string,
	limit int,
) ([]CompactOrder, error) {
	sql := `
		SELECT
			o.id,
			o.created_at,
			o.order_number,
			o.status,
			COUNT(f.id)
		FROM orders o
		LEFT JOIN order_files f ON f.order_id = o.id
		WHERE o.owner_id = ? AND o.status IN ?
		GROUP BY o.id
		ORDER BY o.created_at DESC
	`
	args := []any{ownerID.Bytes(), statuses}
	if limit > 0 {
		sql += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCompactOrders(rows)
}
