// Package ports defines repository and gateway interfaces for the print shop
// domain. These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing confirmed orders and for driving the status
// state machine under row-level locking.
type OrderRepository interface {
	// Add persists a freshly built order aggregate, including its files,
	// ranges, services and the initial status history row.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier, with its
	// files, services and full status history.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetStatusForUpdate reads the order's current status and acquires a
	// row-level lock on it. Must be called inside an open transaction; the
	// lock is held until the transaction commits or rolls back, so two
	// concurrent transitions on the same order serialize.
	GetStatusForUpdate(ctx context.Context, id kernel.UUID) (order.Status, error)

	// UpdateStatus sets the order's status to the update's status and
	// appends the update as a history row. Must run in the same transaction
	// that took the row lock.
	UpdateStatus(ctx context.Context, id kernel.UUID, update order.StatusUpdate) error

	// IsOwnedBy reports whether the order exists and belongs to the given
	// owner. Used by the permission gate for non-merchant sessions.
	IsOwnedBy(ctx context.Context, id, ownerID kernel.UUID) (bool, error)
}
