package queries

import (
	"context"

	"gorm.io/gorm"
)

// OrderHistoryQueryHandler pages through a client's finished orders.
type OrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewOrderHistoryQueryHandler creates a handler for history queries.
// Requires a GORM database connection for query execution.
func NewOrderHistoryQueryHandler(db *gorm.DB) OrderHistoryQueryHandler {
	return OrderHistoryQueryHandler{db: db}
}

// Handle executes the history query for the caller's own finished orders,
// newest first, with offset pagination.
func (h OrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query OrderHistoryQuery,
) (OrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderHistoryQueryResponse{}, err
	}

	ownerID := query.Session().UserID().Bytes()

	var total int64
	err := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM orders
		WHERE owner_id = ? AND status IN ?
	`, ownerID, finishedStatuses).Scan(&total).Error
	if err != nil {
		return OrderHistoryQueryResponse{}, err
	}

	offset := (query.Page() - 1) * query.Limit()

	rows, err := h.db.WithContext(ctx).Raw(`
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
		LIMIT ? OFFSET ?
	`, ownerID, finishedStatuses, query.Limit(), offset).Rows()
	if err != nil {
		return OrderHistoryQueryResponse{}, err
	}
	defer rows.Close()

	orders, err := scanCompactOrders(rows)
	if err != nil {
		return OrderHistoryQueryResponse{}, err
	}

	return OrderHistoryQueryResponse{
		Orders: orders,
		Total:  total,
	}, nil
}
