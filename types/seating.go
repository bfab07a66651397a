package types

// UnknownCompany is the company key of participants without any company information.
const UnknownCompany = "unknown"

// Participant is a person to be seated.
//
// Participants are immutable for the duration of one assignment run.
type Participant struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`

	// CompanyID is the stable company identifier and wins over the free-text fields.
	CompanyID string `json:"companyId,omitempty" yaml:"companyId,omitempty"`
	// CompanyName is the registered company name.
	CompanyName string `json:"companyName,omitempty" yaml:"companyName,omitempty"`
	// Company is the free-text company entered by the participant.
	Company string `json:"company,omitempty" yaml:"company,omitempty"`

	IsVIP bool `json:"isVip,omitempty" yaml:"isVip,omitempty"`
}

// CompanyKey returns the grouping key of the participant's company.
//
// Precedence: CompanyID, then CompanyName, then Company, then UnknownCompany.
//
// Returns:
//   - string: Company grouping key (never empty)
func (p Participant) CompanyKey() string {
	switch {
	case p.CompanyID != "":
		return p.CompanyID
	case p.CompanyName != "":
		return p.CompanyName
	case p.Company != "":
		return p.Company
	default:
		return UnknownCompany
	}
}

// Table is a capacity-bounded seating unit. Tables are static per run.
type Table struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Capacity   int    `json:"capacity" yaml:"capacity"`
	IsVIPTable bool   `json:"isVipTable,omitempty" yaml:"isVipTable,omitempty"`
}

// Assignment seats one participant at one table.
//
// TableName and IsVIP are denormalized copies of the Table and Participant
// records kept for display and diffing. Every mutation performed by this
// library refreshes them from the roster.
type Assignment struct {
	ParticipantID string `json:"participantId"`
	TableID       string `json:"tableId"`
	TableName     string `json:"tableName"`
	IsVIP         bool   `json:"isVip"`
}

// NewAssignment builds an assignment with denormalized fields taken from p and t.
func NewAssignment(p Participant, t Table) Assignment {
	return Assignment{
		ParticipantID: p.ID,
		TableID:       t.ID,
		TableName:     t.Name,
		IsVIP:         p.IsVIP,
	}
}

// CloneAssignments returns a copy of the given assignment list.
//
// A nil input yields an empty, non-nil slice so that callers can always
// append to the result.
func CloneAssignments(assignments []Assignment) []Assignment {
	out := make([]Assignment, len(assignments))
	copy(out, assignments)

	return out
}
