package queries

import (
	"database/sql"
	"time"

	"printshop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// scanCompactOrders reads rows shaped as
// (id, created_at, order_number, status, files_count).
func scanCompactOrders(rows *sql.Rows) ([]CompactOrder, error) {
	orders := make([]CompactOrder, 0)

	for rows.Next() {
		var (
			id          uuid.UUID
			createdAt   time.Time
			orderNumber string
			status      string
			filesCount  int
		)

		if err := rows.Scan(&id, &createdAt, &orderNumber, &status, &filesCount); err != nil {
			return nil, err
		}

		orderID, err := kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}

		orders = append(orders, CompactOrder{
			ID:          orderID,
			CreatedAt:   createdAt,
			OrderNumber: orderNumber,
			Status:      status,
			FilesCount:  filesCount,
		})
	}

	return orders, rows.Err()
}
