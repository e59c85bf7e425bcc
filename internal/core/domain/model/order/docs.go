// Package order provides domain entities and business logic for persisted
// print orders. It implements the Order aggregate root with lifecycle
// management and state transitions.
//
// The package includes:
//   - Order: The aggregate root holding files, services and the status history
//   - Status: A state machine that enforces valid order status transitions
//   - File/FileRange: finalized print files with per-range print settings
//   - Service: ancillary service requests (binding, lamination) over files
//   - StatusUpdate: one row of the append-only status audit trail
//
// Key business rules:
//   - Orders carry between 1 and MaxFileLimit files; each file carries
//     between 1 and MaxFileRanges print ranges
//   - Order status moves strictly forward: Reviewing -> Processing -> Ready ->
//     Completed, with Cancelled and Rejected as terminal side exits from any
//     non-terminal status
//   - Completed, Cancelled and Rejected are terminal; no transition leaves them
//   - The status history reflects every transition exactly once, in order
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
