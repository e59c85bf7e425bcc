package order

import (
	"time"

	"printshop/internal/pkg/errs"
)

// StatusUpdate is one row of an order's append-only status audit trail.
// The first row is written atomically with order creation; every subsequent
// transition appends exactly one row.
type StatusUpdate struct {
	timestamp time.Time
	status    Status
}

// NewStatusUpdate creates a validated StatusUpdate.
func NewStatusUpdate(timestamp time.Time, status Status) (StatusUpdate, error) {
	if timestamp.IsZero() {
		return StatusUpdate{}, errs.NewValueIsRequiredError("status update timestamp")
	}

	if err := status.Validate(); err != nil {
		return StatusUpdate{}, err
	}

	return StatusUpdate{timestamp: timestamp, status: status}, nil
}

// Timestamp returns when the transition was recorded.
func (u StatusUpdate) Timestamp() time.Time { return u.timestamp }

// Status returns the status the order entered.
func (u StatusUpdate) Status() Status { return u.status }
