package conflict

import (
	"fmt"

	"github.com/arloliu/seatplan/internal/roster"
	"github.com/arloliu/seatplan/internal/tablestate"
	"github.com/arloliu/seatplan/types"
)

// Default inspector thresholds.
const (
	DefaultVIPRatioMultiplier = 2.0
	DefaultVIPRatioFloor      = 0.5
	DefaultScatterMinMembers  = 3
)

// Inspector analyzes assignment sets.
type Inspector struct {
	vipRatioMultiplier float64
	vipRatioFloor      float64
	scatterMinMembers  int
}

// InspectorOption configures an Inspector.
type InspectorOption func(*Inspector)

// WithVIPRatioMultiplier flags tables whose VIP ratio exceeds m times the event average.
func WithVIPRatioMultiplier(m float64) InspectorOption {
	return func(in *Inspector) {
		if m > 0 {
			in.vipRatioMultiplier = m
		}
	}
}

// WithVIPRatioFloor sets the absolute VIP ratio a table must also exceed to be flagged.
func WithVIPRatioFloor(f float64) InspectorOption {
	return func(in *Inspector) {
		if f >= 0 {
			in.vipRatioFloor = f
		}
	}
}

// WithScatterMinMembers sets how many assigned members a company needs before
// being split across tables is reported.
func WithScatterMinMembers(n int) InspectorOption {
	return func(in *Inspector) {
		if n > 0 {
			in.scatterMinMembers = n
		}
	}
}

// NewInspector creates an inspector.
//
// Defaults: a table is VIP-imbalanced when its VIP ratio exceeds both twice
// the event average and 0.5; a company is scattered when at least three of
// its assigned members sit at more than one table.
//
// Parameters:
//   - opts: Optional threshold overrides
//
// Returns:
//   - *Inspector: Ready to use inspector
func NewInspector(opts ...InspectorOption) *Inspector {
	in := &Inspector{
		vipRatioMultiplier: DefaultVIPRatioMultiplier,
		vipRatioFloor:      DefaultVIPRatioFloor,
		scatterMinMembers:  DefaultScatterMinMembers,
	}
	for _, opt := range opts {
		opt(in)
	}

	return in
}

// scan holds the lookup maps built in one pass over the assignments.
type scan struct {
	idx *roster.Index

	// rows per table in list order
	tableRows map[string][]types.Assignment
	// tables per participant in list order, with first-appearance order of participants
	participantTables map[string][]string
	participantOrder  []string
	vipCount          map[string]int
	// distinct members and tables per company, in first-appearance order
	companyMembers map[string][]string
	companyTables  map[string][]string
	companyOrder   []string

	seatedRows int
	seatedVIPs int
}

func newScan(idx *roster.Index, assignments []types.Assignment) *scan {
	sc := &scan{
		idx:               idx,
		tableRows:         make(map[string][]types.Assignment),
		participantTables: make(map[string][]string, len(assignments)),
		vipCount:          make(map[string]int),
		companyMembers:    make(map[string][]string),
		companyTables:     make(map[string][]string),
	}

	seenMember := make(map[string]struct{}, len(assignments))
	seenCompanyTable := make(map[[2]string]struct{})
	for _, a := range assignments {
		sc.tableRows[a.TableID] = append(sc.tableRows[a.TableID], a)

		if _, ok := sc.participantTables[a.ParticipantID]; !ok {
			sc.participantOrder = append(sc.participantOrder, a.ParticipantID)
		}
		sc.participantTables[a.ParticipantID] = append(sc.participantTables[a.ParticipantID], a.TableID)

		vip := idx.IsVIP(a)
		if _, ok := idx.Table(a.TableID); ok {
			sc.seatedRows++
			if vip {
				sc.seatedVIPs++
				sc.vipCount[a.TableID]++
			}
		}

		company := idx.CompanyKey(a.ParticipantID)
		if _, ok := sc.companyMembers[company]; !ok {
			sc.companyOrder = append(sc.companyOrder, company)
		}
		if _, ok := seenMember[a.ParticipantID]; !ok {
			seenMember[a.ParticipantID] = struct{}{}
			sc.companyMembers[company] = append(sc.companyMembers[company], a.ParticipantID)
		}
		key := [2]string{company, a.TableID}
		if _, ok := seenCompanyTable[key]; !ok {
			seenCompanyTable[key] = struct{}{}
			sc.companyTables[company] = append(sc.companyTables[company], a.TableID)
		}
	}

	return sc
}

// Inspect returns the conflicts of an assignment set.
//
// Conflicts are ordered by check: capacity_overflow (table order),
// duplicate_assignment (first appearance), one aggregated unassigned
// conflict, vip_imbalance (table order), group_scatter (first appearance).
//
// Parameters:
//   - assignments: Current assignment list
//   - tables: Event tables
//   - participants: Event participants
//
// Returns:
//   - types.ConflictReport: Ordered conflicts and severity flags
func (in *Inspector) Inspect(assignments []types.Assignment, tables []types.Table, participants []types.Participant) types.ConflictReport {
	idx := roster.New(participants, tables)
	sc := newScan(idx, assignments)
	tables = tablestate.Unique(tables)

	var conflicts []types.Conflict
	conflicts = append(conflicts, in.overflow(sc, tables)...)
	conflicts = append(conflicts, in.duplicates(sc)...)
	conflicts = append(conflicts, in.unassigned(sc, participants)...)
	conflicts = append(conflicts, in.vipImbalance(sc, tables)...)
	conflicts = append(conflicts, in.scatter(sc)...)

	report := types.ConflictReport{Conflicts: conflicts}
	if report.Conflicts == nil {
		report.Conflicts = []types.Conflict{}
	}
	for _, c := range conflicts {
		switch c.Severity {
		case types.SeverityError:
			report.HasErrors = true
		case types.SeverityWarning:
			report.HasWarnings = true
		}
	}

	return report
}

func (in *Inspector) overflow(sc *scan, tables []types.Table) []types.Conflict {
	var out []types.Conflict
	for _, t := range tables {
		rows := sc.tableRows[t.ID]
		if len(rows) <= t.Capacity {
			continue
		}

		keep := max(t.Capacity, 0)
		ids := make([]string, 0, len(rows)-keep)
		for _, a := range rows[keep:] {
			ids = append(ids, a.ParticipantID)
		}

		out = append(out, newConflict(types.ConflictCapacityOverflow, types.Conflict{
			Message:        fmt.Sprintf("%s has %d participants but only %d seats", tableLabel(t), len(rows), t.Capacity),
			TableID:        t.ID,
			TableName:      t.Name,
			ParticipantIDs: ids,
			Count:          len(rows),
			Capacity:       t.Capacity,
		}))
	}

	return out
}

func (in *Inspector) duplicates(sc *scan) []types.Conflict {
	var out []types.Conflict
	for _, id := range sc.participantOrder {
		tableIDs := sc.participantTables[id]
		if len(tableIDs) < 2 {
			continue
		}

		out = append(out, newConflict(types.ConflictDuplicateAssignment, types.Conflict{
			Message:        fmt.Sprintf("%s is assigned to %d tables", participantLabel(sc.idx, id), len(tableIDs)),
			ParticipantIDs: []string{id},
			TableIDs:       append([]string(nil), tableIDs...),
			Count:          len(tableIDs),
		}))
	}

	return out
}

func (in *Inspector) unassigned(sc *scan, participants []types.Participant) []types.Conflict {
	var ids []string
	seen := make(map[string]struct{}, len(participants))
	for _, p := range participants {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		if len(sc.participantTables[p.ID]) == 0 {
			ids = append(ids, p.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	msg := fmt.Sprintf("%d participants are not assigned to any table", len(ids))
	if len(ids) == 1 {
		msg = fmt.Sprintf("%s is not assigned to any table", participantLabel(sc.idx, ids[0]))
	}

	return []types.Conflict{newConflict(types.ConflictUnassigned, types.Conflict{
		Message:        msg,
		ParticipantIDs: ids,
		Count:          len(ids),
	})}
}

func (in *Inspector) vipImbalance(sc *scan, tables []types.Table) []types.Conflict {
	if sc.seatedRows == 0 || sc.seatedVIPs == 0 {
		return nil
	}
	average := float64(sc.seatedVIPs) / float64(sc.seatedRows)

	var out []types.Conflict
	for _, t := range tables {
		rows := sc.tableRows[t.ID]
		vips := sc.vipCount[t.ID]
		if len(rows) == 0 || vips == 0 {
			continue
		}

		ratio := float64(vips) / float64(len(rows))
		if ratio <= in.vipRatioMultiplier*average || ratio <= in.vipRatioFloor {
			continue
		}

		ids := make([]string, 0, vips)
		for _, a := range rows {
			if sc.idx.IsVIP(a) {
				ids = append(ids, a.ParticipantID)
			}
		}

		out = append(out, newConflict(types.ConflictVIPImbalance, types.Conflict{
			Message: fmt.Sprintf("%s has %d VIPs out of %d participants (%.0f%%, event average %.0f%%)",
				tableLabel(t), vips, len(rows), ratio*100, average*100),
			TableID:        t.ID,
			TableName:      t.Name,
			ParticipantIDs: ids,
			Count:          vips,
			Capacity:       t.Capacity,
			VIPRatio:       ratio,
		}))
	}

	return out
}

func (in *Inspector) scatter(sc *scan) []types.Conflict {
	var out []types.Conflict
	for _, company := range sc.companyOrder {
		if company == types.UnknownCompany {
			continue
		}
		members := sc.companyMembers[company]
		tableIDs := sc.companyTables[company]
		if len(members) < in.scatterMinMembers || len(tableIDs) < 2 {
			continue
		}

		out = append(out, newConflict(types.ConflictGroupScatter, types.Conflict{
			Message:        fmt.Sprintf("Company %s has %d members split across %d tables", companyLabel(sc.idx, company, members), len(members), len(tableIDs)),
			CompanyKey:     company,
			ParticipantIDs: append([]string(nil), members...),
			TableIDs:       append([]string(nil), tableIDs...),
			Count:          len(members),
		}))
	}

	return out
}

func newConflict(t types.ConflictType, c types.Conflict) types.Conflict {
	c.Type = t
	c.Severity = t.Severity()

	return c
}

func tableLabel(t types.Table) string {
	if t.Name != "" {
		return t.Name
	}

	return "Table " + t.ID
}

func participantLabel(idx *roster.Index, id string) string {
	if p, ok := idx.Participant(id); ok && p.Name != "" {
		return p.Name
	}

	return id
}

// companyLabel prefers a human-readable company name over the key.
func companyLabel(idx *roster.Index, key string, members []string) string {
	for _, id := range members {
		p, ok := idx.Participant(id)
		if !ok {
			continue
		}
		if p.CompanyName != "" {
			return p.CompanyName
		}
		if p.Company != "" {
			return p.Company
		}
	}

	return key
}
