package order

import (
	"errors"
	"fmt"
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder or RestoreOrder factory methods. This ensures all
// orders are properly validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order represents a persisted print order. It is the aggregate root created
// as the output of a successful draft build and managed through the status
// state machine until a terminal status is reached.
//
// Order follows these invariants:
//   - Must have valid unique identifiers for the order and its owner
//   - Must carry between 1 and MaxFileLimit files
//   - Every service references only files present on the order
//   - The status history starts with the initial status and grows by exactly
//     one row per transition, non-decreasing in time
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	id          kernel.UUID
	createdAt   time.Time
	ownerID     kernel.UUID
	orderNumber string
	status      Status
	notes       string

	// price is set later by merchant pricing; nil until then.
	price *int64

	files         []File
	services      []Service
	statusHistory []StatusUpdate

	isConstructed bool
}

// NewOrder creates a freshly built Order in StatusReviewing, seeding the
// status history with its first row. The id and createdAt are carried over
// from the draft; orderNumber comes from the sequencer.
//
// All inputs are validated; services may only reference the given files.
func NewOrder(
	id kernel.UUID,
	createdAt time.Time,
	ownerID kernel.UUID,
	orderNumber string,
	notes string,
	files []File,
	services []Service,
) (*Order, error) {
	first, err := NewStatusUpdate(time.Now().UTC(), StatusReviewing)
	if err != nil {
		return nil, err
	}

	o := &Order{
		status:        StatusReviewing,
		statusHistory: []StatusUpdate{first},
		notes:         notes,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCreatedAt(createdAt),
		o.setOwnerID(ownerID),
		o.setOrderNumber(orderNumber),
		o.setFiles(files),
		o.setServices(services),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence, including its current
// status, price and full status history. Used by repository implementations.
func RestoreOrder(
	id kernel.UUID,
	createdAt time.Time,
	ownerID kernel.UUID,
	orderNumber string,
	status Status,
	notes string,
	price *int64,
	files []File,
	services []Service,
	statusHistory []StatusUpdate,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	o := &Order{
		status:        status,
		notes:         notes,
		price:         price,
		statusHistory: append([]StatusUpdate(nil), statusHistory...),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCreatedAt(createdAt),
		o.setOwnerID(ownerID),
		o.setOrderNumber(orderNumber),
		o.setFiles(files),
		o.setServices(services),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory method. This prevents bypassing validation by directly
// instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// CreatedAt returns when the draft behind this order was started.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// OwnerID returns the identifier of the user who built the order.
func (o *Order) OwnerID() kernel.UUID { return o.ownerID }

// OrderNumber returns the human-readable order code assigned at build time.
func (o *Order) OrderNumber() string { return o.orderNumber }

// Status returns the current status of the order.
func (o *Order) Status() Status { return o.status }

// Notes returns free-form instructions attached at build time.
func (o *Order) Notes() string { return o.notes }

// Price returns the merchant-set price in minor units, nil until priced.
func (o *Order) Price() *int64 { return o.price }

// Files returns the order's finalized files in submission order.
func (o *Order) Files() []File {
	return append([]File(nil), o.files...)
}

// Services returns the order's ancillary service requests in submission
// order.
func (o *Order) Services() []Service {
	return append([]Service(nil), o.services...)
}

// StatusHistory returns the append-only audit trail, ascending by timestamp.
func (o *Order) StatusHistory() []StatusUpdate {
	return append([]StatusUpdate(nil), o.statusHistory...)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt
	return nil
}

func (o *Order) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	o.ownerID = ownerID
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setFiles(files []File) error {
	if len(files) < 1 || len(files) > MaxFileLimit {
		return errs.NewValueIsOutOfRangeError("order files", len(files), 1, MaxFileLimit)
	}

	for _, f := range files {
		if err := f.Validate(); err != nil {
			return err
		}
	}

	o.files = append([]File(nil), files...)
	return nil
}

func (o *Order) setServices(services []Service) error {
	present := make(map[kernel.UUID]struct{}, len(o.files))
	for _, f := range o.files {
		present[f.ID()] = struct{}{}
	}

	for _, svc := range services {
		for _, fileID := range svc.FileIDs() {
			if _, ok := present[fileID]; !ok {
				return errs.NewValueIsInvalidErrorWithCause(
					"service file reference is invalid",
					fmt.Errorf("file %s is not part of the order", fileID),
				)
			}
		}
	}

	o.services = append([]Service(nil), services...)
	return nil
}
