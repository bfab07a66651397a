// Package roster indexes the participants and tables of one event for O(1) lookups.
package roster

import "github.com/arloliu/seatplan/types"

// Index is a read-only lookup over an event roster.
//
// When the roster contains repeated IDs the first record wins.
type Index struct {
	participants map[string]types.Participant
	tables       map[string]types.Table
	tablePos     map[string]int
}

// New builds an index over participants and tables.
func New(participants []types.Participant, tables []types.Table) *Index {
	idx := &Index{
		participants: make(map[string]types.Participant, len(participants)),
		tables:       make(map[string]types.Table, len(tables)),
		tablePos:     make(map[string]int, len(tables)),
	}
	for _, p := range participants {
		if _, ok := idx.participants[p.ID]; !ok {
			idx.participants[p.ID] = p
		}
	}
	for i, t := range tables {
		if _, ok := idx.tables[t.ID]; !ok {
			idx.tables[t.ID] = t
			idx.tablePos[t.ID] = i
		}
	}

	return idx
}

// Participant returns the participant with the given ID.
func (x *Index) Participant(id string) (types.Participant, bool) {
	p, ok := x.participants[id]
	return p, ok
}

// Table returns the table with the given ID.
func (x *Index) Table(id string) (types.Table, bool) {
	t, ok := x.tables[id]
	return t, ok
}

// TablePosition returns the position of the table in roster order, or -1.
func (x *Index) TablePosition(id string) int {
	if pos, ok := x.tablePos[id]; ok {
		return pos
	}

	return -1
}

// IsVIP reports the live VIP status of the assigned participant.
//
// The roster flag wins over the denormalized flag on the row; the row flag
// is only used for participants that are no longer in the roster.
func (x *Index) IsVIP(a types.Assignment) bool {
	if p, ok := x.participants[a.ParticipantID]; ok {
		return p.IsVIP
	}

	return a.IsVIP
}

// CompanyKey returns the company key of a participant, or UnknownCompany.
func (x *Index) CompanyKey(participantID string) string {
	if p, ok := x.participants[participantID]; ok {
		return p.CompanyKey()
	}

	return types.UnknownCompany
}

// Seat builds a fully denormalized assignment of participantID at tableID.
//
// Unknown IDs keep whatever is known: a missing table leaves TableName empty.
func (x *Index) Seat(participantID, tableID string) types.Assignment {
	a := types.Assignment{ParticipantID: participantID, TableID: tableID}
	if t, ok := x.tables[tableID]; ok {
		a.TableName = t.Name
	}
	if p, ok := x.participants[participantID]; ok {
		a.IsVIP = p.IsVIP
	}

	return a
}

// Refresh returns a copy of assignments with denormalized fields re-read from the roster.
func (x *Index) Refresh(assignments []types.Assignment) []types.Assignment {
	out := make([]types.Assignment, len(assignments))
	for i, a := range assignments {
		out[i] = a
		if t, ok := x.tables[a.TableID]; ok {
			out[i].TableName = t.Name
		}
		if p, ok := x.participants[a.ParticipantID]; ok {
			out[i].IsVIP = p.IsVIP
		}
	}

	return out
}
