// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the print shop. It implements workflows that
// don't naturally belong to a single aggregate root.
//
// The package includes:
//   - DraftOrderRegistry: An in-memory, concurrency-safe staging area for draft
//     orders, keyed by owner, with TTL-based expiry and atomic promotion of a
//     draft into a confirmed order.
//   - OrderNumberSequencer: A lock-free, wrapping sequencer that issues
//     human-readable order numbers ("A-001" .. "Z-999").
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
