package order

import (
	"fmt"

	"printshop/internal/core/domain/model/user"
	"printshop/internal/pkg/errs"
)

// Status represents the lifecycle state of a persisted order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct fulfillment workflow.
//
// State transitions:
//
//	Reviewing ──> Processing ──> Ready ──> Completed
//	    │              │           │
//	    └──────────────┴───────────┴──> Cancelled / Rejected
//
// The forward ladder is merchant-driven via Advance. Cancelled (owner) and
// Rejected (merchant) are side exits reachable from any non-terminal status.
// Completed, Cancelled and Rejected are terminal.
//
// A draft under construction is never represented here: drafts exist only in
// the in-memory registry and become a persisted order at build time.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusReviewing is the initial status assigned at build time, while
	// the merchant reviews the submitted order.
	StatusReviewing

	// StatusProcessing indicates the merchant has accepted the order and is
	// printing it.
	StatusProcessing

	// StatusReady indicates the printed order is ready for pickup.
	StatusReady

	// StatusCompleted indicates the order was picked up. Terminal.
	StatusCompleted

	// StatusCancelled indicates the owner withdrew the order. Terminal.
	StatusCancelled

	// StatusRejected indicates the merchant refused the order. Terminal.
	StatusRejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "unknown",
		StatusReviewing:  "reviewing",
		StatusProcessing: "processing",
		StatusReady:      "ready",
		StatusCompleted:  "completed",
		StatusCancelled:  "cancelled",
		StatusRejected:   "rejected",
	}
}

// getAdvanceTable returns the fixed forward transition table used by Advance.
// Statuses absent from the table cannot advance.
func getAdvanceTable() map[Status]Status {
	return map[Status]Status{
		StatusReviewing:  StatusProcessing,
		StatusProcessing: StatusReady,
		StatusReady:      StatusCompleted,
	}
}

// StatusFromString parses the lowercase wire/database representation of a
// status.
func StatusFromString(s string) (Status, error) {
	for st, str := range getStatusStrings() {
		if st != StatusUnknown && str == s {
			return st, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// String returns the lowercase name of the status, "unknown" for invalid
// values. Matches the wire and database representation.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks if the Status value is valid.
// StatusUnknown (0) and any out-of-range value are invalid.
func (s Status) Validate() error {
	if s < StatusReviewing || s > StatusRejected {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// IsTerminal reports whether no further transitions are legal from s.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusRejected
}

// Advance returns the next status along the forward ladder
// Reviewing -> Processing -> Ready -> Completed.
//
// Returns an error if the current status cannot advance: terminal statuses
// and StatusUnknown have no successor. The caller is expected to hold the
// order's row lock so that two racing advances cannot both observe the same
// predecessor.
func (s Status) Advance() (Status, error) {
	next, ok := getAdvanceTable()[s]
	if !ok {
		return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
			"status cannot advance further",
			fmt.Errorf("%s has no next status", s),
		)
	}

	return next, nil
}

// Terminate returns the terminal side-exit status for the given caller role:
// owners (students and teachers) cancel, merchants reject.
//
// Returns an error if the order is already in a terminal status. Termination
// of an already-terminated order is rejected rather than silently overwritten
// so the audit trail records every transition exactly once.
func (s Status) Terminate(role user.Role) (Status, error) {
	if err := role.Validate(); err != nil {
		return StatusUnknown, err
	}

	if s.IsTerminal() {
		return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
			"status cannot be terminated",
			fmt.Errorf("%s is already terminal", s),
		)
	}

	if role.IsMerchant() {
		return StatusRejected, nil
	}
	return StatusCancelled, nil
}
