// Package types provides core type definitions and interfaces for the seatplan library.
//
// This package contains shared types that are used across multiple packages in the
// seatplan library. By keeping these types in a separate package, we avoid import cycles
// between the main seatplan package and its strategy, conflict and history implementations.
//
// Key types:
//   - Participant, Table: Static roster records supplied by a RosterSource
//   - Assignment: One participant seated at one table
//   - TableState: Per-run working structure used by placement algorithms
//   - Conflict, ConflictReport: Computed seating problems
//   - Version: Immutable audit record of a committed seating
//   - Logger, MetricsCollector, Hooks: Ambient collaborators
package types
