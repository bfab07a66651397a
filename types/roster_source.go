package types

import "context"

// RosterSource supplies the participants and tables of an event.
//
// This is the read side of the persistence layer. Implementations can use:
//   - A static in-memory roster (source.NewStatic)
//   - A YAML roster file (source.LoadFile)
//   - Any database the host application already owns
type RosterSource interface {
	// ListParticipants returns the participants of an event in display order.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//   - eventID: Event identifier
	//
	// Returns:
	//   - []Participant: Participants of the event (may be empty)
	//   - error: Read error
	ListParticipants(ctx context.Context, eventID string) ([]Participant, error)

	// ListTables returns the tables of an event in display order.
	//
	// Table order is authoritative for round-robin rotation and tie-breaks.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//   - eventID: Event identifier
	//
	// Returns:
	//   - []Table: Tables of the event (may be empty)
	//   - error: Read error
	ListTables(ctx context.Context, eventID string) ([]Table, error)
}

// VersionStore persists the append-only version history of each event.
//
// Implementations must assign VersionNumber themselves (previous + 1, starting
// at 1) and must reject concurrent appends that would reuse a number.
type VersionStore interface {
	// Append stores v as the next version of v.EventID.
	//
	// Returns:
	//   - Version: The stored record with VersionNumber and CreatedAt set
	//   - error: ErrVersionConflict if another writer appended first, or a storage error
	Append(ctx context.Context, v Version) (Version, error)

	// Latest returns the highest version of an event.
	//
	// Returns:
	//   - Version: Latest version
	//   - error: ErrVersionNotFound if the event has no history
	Latest(ctx context.Context, eventID string) (Version, error)

	// Get returns one version of an event.
	//
	// Returns:
	//   - Version: Requested version
	//   - error: ErrVersionNotFound if it does not exist
	Get(ctx context.Context, eventID string, versionNumber int64) (Version, error)

	// List returns all versions of an event in ascending order.
	List(ctx context.Context, eventID string) ([]Version, error)
}
