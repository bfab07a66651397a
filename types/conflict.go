package types

// ConflictType classifies a detected seating problem.
type ConflictType string

const (
	// ConflictCapacityOverflow: a table seats more participants than its capacity.
	ConflictCapacityOverflow ConflictType = "capacity_overflow"
	// ConflictDuplicateAssignment: a participant is seated at more than one table.
	ConflictDuplicateAssignment ConflictType = "duplicate_assignment"
	// ConflictUnassigned: participants have no seat.
	ConflictUnassigned ConflictType = "unassigned"
	// ConflictVIPImbalance: a table holds a disproportionate share of VIPs.
	ConflictVIPImbalance ConflictType = "vip_imbalance"
	// ConflictGroupScatter: a company is split across several tables.
	ConflictGroupScatter ConflictType = "group_scatter"
)

// Severity of a conflict.
type Severity string

const (
	// SeverityError marks conflicts that must be resolved before seating is usable.
	SeverityError Severity = "error"
	// SeverityWarning marks soft-quality findings the user may ignore.
	SeverityWarning Severity = "warning"
)

// Severity returns the fixed severity of the conflict type.
func (t ConflictType) Severity() Severity {
	switch t {
	case ConflictVIPImbalance, ConflictGroupScatter:
		return SeverityWarning
	default:
		return SeverityError
	}
}

// Conflict is a computed violation. Conflicts are never stored.
//
// Payload fields are populated per type:
//   - capacity_overflow: TableID, TableName, Count, Capacity, ParticipantIDs (overflowing rows)
//   - duplicate_assignment: ParticipantIDs (one participant), TableIDs, Count
//   - unassigned: ParticipantIDs, Count
//   - vip_imbalance: TableID, TableName, Count (VIPs), VIPRatio, ParticipantIDs (VIPs)
//   - group_scatter: CompanyKey, TableIDs, Count (members), ParticipantIDs
type Conflict struct {
	Type     ConflictType `json:"type"`
	Severity Severity     `json:"severity"`
	Message  string       `json:"message"`

	TableID        string   `json:"tableId,omitempty"`
	TableName      string   `json:"tableName,omitempty"`
	ParticipantIDs []string `json:"participantIds,omitempty"`
	TableIDs       []string `json:"tableIds,omitempty"`
	CompanyKey     string   `json:"companyKey,omitempty"`
	Count          int      `json:"count,omitempty"`
	Capacity       int      `json:"capacity,omitempty"`
	VIPRatio       float64  `json:"vipRatio,omitempty"`
}

// ConflictReport is the ordered output of one inspection.
type ConflictReport struct {
	Conflicts   []Conflict `json:"conflicts"`
	HasErrors   bool       `json:"hasErrors"`
	HasWarnings bool       `json:"hasWarnings"`
}

// Errors returns the error-severity conflicts in report order.
func (r ConflictReport) Errors() []Conflict {
	return r.filter(SeverityError)
}

// Warnings returns the warning-severity conflicts in report order.
func (r ConflictReport) Warnings() []Conflict {
	return r.filter(SeverityWarning)
}

// ByType returns the conflicts of type t in report order.
func (r ConflictReport) ByType(t ConflictType) []Conflict {
	var out []Conflict
	for _, c := range r.Conflicts {
		if c.Type == t {
			out = append(out, c)
		}
	}

	return out
}

// Counts returns the number of conflicts per type.
func (r ConflictReport) Counts() map[ConflictType]int {
	counts := make(map[ConflictType]int, 5)
	for _, c := range r.Conflicts {
		counts[c.Type]++
	}

	return counts
}

func (r ConflictReport) filter(sev Severity) []Conflict {
	var out []Conflict
	for _, c := range r.Conflicts {
		if c.Severity == sev {
			out = append(out, c)
		}
	}

	return out
}
