package types

import (
	"errors"
	"strings"
)

// Sentinel errors for the seatplan library.
//
// Use errors.Is() to test for these conditions. Components wrap external
// errors with context using fmt.Errorf("%s: %w", msg, err).
//
// Expected seating conditions (no capacity, no conflicts, empty inputs) are
// returned as data, never as errors.

// Planner errors - Public API errors returned by Planner and Session.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrRosterSourceRequired is returned when the roster source is nil.
	ErrRosterSourceRequired = errors.New("roster source is required")

	// ErrUnsupportedAlgorithm is returned for an algorithm outside the closed set.
	ErrUnsupportedAlgorithm = errors.New("unsupported assignment algorithm")

	// ErrInvalidResult is returned when the validator rejects an algorithm result.
	// The result must not be used or persisted.
	ErrInvalidResult = errors.New("assignment result failed validation")

	// ErrEventIDRequired is returned when an operation needs an event ID.
	ErrEventIDRequired = errors.New("event ID is required")
)

// Session errors - Draft editing errors.
var (
	// ErrNothingToCommit is returned when the draft equals the confirmed seating.
	ErrNothingToCommit = errors.New("draft has no changes to commit")

	// ErrNothingToUndo is returned when the undo stack is empty.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo is returned when the redo stack is empty.
	ErrNothingToRedo = errors.New("nothing to redo")

	// ErrUnknownParticipant is returned for a participant ID not in the roster.
	ErrUnknownParticipant = errors.New("unknown participant")

	// ErrUnknownTable is returned for a table ID not in the roster.
	ErrUnknownTable = errors.New("unknown table")

	// ErrTableFull is returned when a manual move targets a full table.
	ErrTableFull = errors.New("table is full")
)

// History errors - Version store errors.
var (
	// ErrVersionNotFound is returned when a requested version does not exist.
	ErrVersionNotFound = errors.New("version not found")

	// ErrVersionConflict is returned when another writer appended the same version number.
	ErrVersionConflict = errors.New("version number already taken")

	// ErrInvalidEventID is returned when an event ID cannot be used as a store key.
	ErrInvalidEventID = errors.New("invalid event ID")

	// ErrStoreUnavailable is returned when the version store cannot be reached.
	// The session draft is kept and the operation can be retried.
	ErrStoreUnavailable = errors.New("version store unavailable")

	// ErrNoKeysFound is returned when NATS KV returns no keys (expected condition).
	ErrNoKeysFound = errors.New("no keys found")
)

// IsNoKeysFoundError checks if an error indicates that no keys were found in NATS KV.
//
// This function handles NATS-specific "no keys found" errors which may come as:
//   - Direct error: "nats: no keys found"
//   - Wrapped error: "failed to list KV keys: nats: no keys found"
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - bool: true if the error indicates no keys were found, false otherwise
func IsNoKeysFoundError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNoKeysFound) {
		return true
	}

	return strings.Contains(err.Error(), "no keys found")
}
