package types

import "time"

// Move records a participant changing tables between two versions.
type Move struct {
	ParticipantID string `json:"participantId"`
	FromTableID   string `json:"fromTableId"`
	ToTableID     string `json:"toTableId"`
}

// Diff describes the change from one assignment list to another.
type Diff struct {
	Added   []Assignment `json:"added"`
	Removed []Assignment `json:"removed"`
	Moved   []Move       `json:"moved"`
}

// Empty reports whether the diff contains no change.
func (d Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Moved) == 0
}

// Version is an immutable snapshot of a committed seating.
//
// Versions are created on every commit, never mutated and only appended.
// VersionNumber increases by one per event.
type Version struct {
	EventID       string    `json:"eventId"`
	VersionNumber int64     `json:"versionNumber"`
	Source        string    `json:"source"`
	AssignedBy    string    `json:"assignedBy"`
	BatchID       string    `json:"batchId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	Fingerprint   uint64    `json:"fingerprint"`

	Assignments []Assignment `json:"assignments"`
	Diff        Diff         `json:"diff"`
}

// Version source tags.
const (
	SourceManual    = "manual"
	SourceSmartFix  = "smart_fix"
	SourceRebalance = "rebalance"
	SourceRestore   = "restore"
)
