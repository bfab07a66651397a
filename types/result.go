package types

// AssignmentResult is the output of one placement run.
type AssignmentResult struct {
	EventID     string       `json:"eventId"`
	Algorithm   Algorithm    `json:"algorithm"`
	BatchID     string       `json:"batchId"`
	Assignments []Assignment `json:"assignments"`
	Summary     Summary      `json:"summary"`
}

// Summary reports aggregate figures of a placement run.
//
// Invariant: AssignedCount + UnassignedCount == TotalParticipants.
type Summary struct {
	TotalParticipants int            `json:"totalParticipants"`
	TotalTables       int            `json:"totalTables"`
	AssignedCount     int            `json:"assignedCount"`
	UnassignedCount   int            `json:"unassignedCount"`
	UnassignedIDs     []string       `json:"unassignedIds,omitempty"`
	Tables            []TableSummary `json:"tables"`
}

// TableSummary is the per-table occupancy of a run.
type TableSummary struct {
	TableID   string `json:"tableId"`
	TableName string `json:"tableName"`
	Assigned  int    `json:"assigned"`
	Capacity  int    `json:"capacity"`
}

// FixResult is the candidate next state produced by the fixer or rebalancer.
type FixResult struct {
	// Assignments is the complete new assignment list.
	Assignments []Assignment `json:"assignments"`
	// Changes are human-readable log lines, one per change applied.
	Changes []string `json:"changes"`
}
