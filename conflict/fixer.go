package conflict

import (
	"fmt"

	"github.com/arloliu/seatplan/internal/heap"
	"github.com/arloliu/seatplan/internal/roster"
	"github.com/arloliu/seatplan/internal/tablestate"
	"github.com/arloliu/seatplan/types"
)

// vipKeyWeight makes VIP count the primary key and occupancy the secondary one.
const vipKeyWeight = 10000

// Fixer computes corrective next states for single conflicts.
type Fixer struct{}

// NewFixer creates a fixer.
func NewFixer() *Fixer {
	return &Fixer{}
}

// workspace is the mutable copy of the state a fix operates on.
type workspace struct {
	idx     *roster.Index
	rows    []types.Assignment
	states  []*types.TableState
	byID    map[string]*types.TableState
	changes []string
}

func newWorkspace(assignments []types.Assignment, tables []types.Table, participants []types.Participant) *workspace {
	idx := roster.New(participants, tables)
	rows := idx.Refresh(assignments)
	states, byID := tablestate.FromAssignments(tables, idx, rows)

	return &workspace{
		idx:     idx,
		rows:    rows,
		states:  states,
		byID:    byID,
		changes: []string{},
	}
}

func (w *workspace) result() types.FixResult {
	return types.FixResult{Assignments: w.rows, Changes: w.changes}
}

func (w *workspace) logf(format string, args ...any) {
	w.changes = append(w.changes, fmt.Sprintf(format, args...))
}

func (w *workspace) participant(id string) types.Participant {
	if p, ok := w.idx.Participant(id); ok {
		return p
	}

	return types.Participant{ID: id}
}

func (w *workspace) participantLabel(id string) string {
	return participantLabel(w.idx, id)
}

func (w *workspace) tableLabel(id string) string {
	if s, ok := w.byID[id]; ok {
		return tableLabel(s.Table)
	}

	return "Table " + id
}

// move reseats row i at target and updates the table states.
func (w *workspace) move(i int, target *types.TableState) {
	from := w.rows[i]
	if s, ok := w.byID[from.TableID]; ok {
		s.Unseat(from.ParticipantID)
	}
	target.Seat(w.participant(from.ParticipantID))
	w.rows[i] = w.idx.Seat(from.ParticipantID, target.Table.ID)
}

// drop removes the rows at the given indices, which must be ascending.
func (w *workspace) drop(indices []int) {
	if len(indices) == 0 {
		return
	}

	out := make([]types.Assignment, 0, len(w.rows)-len(indices))
	next := 0
	for i, a := range w.rows {
		if next < len(indices) && indices[next] == i {
			next++
			if s, ok := w.byID[a.TableID]; ok {
				s.Unseat(a.ParticipantID)
			}

			continue
		}
		out = append(out, a)
	}
	w.rows = out
}

// seatedElsewhere reports whether pid holds a row at a table other than tableID.
func (w *workspace) seatedElsewhere(pid, tableID string) bool {
	for _, a := range w.rows {
		if a.ParticipantID == pid && a.TableID != tableID {
			return true
		}
	}

	return false
}

// bestTable picks a table with free seats for p.
//
// VIPs prefer VIP tables. Ties on remaining capacity resolve in table order.
// Tables where p already holds a row are skipped so a participant never
// takes two seats at one table. Returns nil when no table other than
// exclude has a free seat.
func (w *workspace) bestTable(p types.Participant, exclude string) *types.TableState {
	held := make(map[string]struct{})
	for _, a := range w.rows {
		if a.ParticipantID == p.ID {
			held[a.TableID] = struct{}{}
		}
	}
	eligible := func(s *types.TableState) bool {
		_, ok := held[s.Table.ID]
		return !ok && s.Table.ID != exclude
	}

	if p.IsVIP {
		if s := mostRemainingWhere(w.states, func(s *types.TableState) bool {
			return s.Table.IsVIPTable && eligible(s)
		}); s != nil {
			return s
		}
	}

	return mostRemainingWhere(w.states, eligible)
}

func mostRemainingWhere(states []*types.TableState, keep func(*types.TableState) bool) *types.TableState {
	h := heap.NewMax[*types.TableState]()
	for _, s := range states {
		if s.HasCapacity() && keep(s) {
			h.Push(s.RemainingCapacity, s)
		}
	}

	top, ok := h.Pop()
	if !ok {
		return nil
	}

	return top.Value
}

// Fix returns the next state that resolves c.
//
// The fix is recomputed from the current assignments, so a stale conflict
// only acts on what is still wrong. Participants that cannot be reseated
// for lack of capacity are left unassigned and noted in Changes.
//
// Parameters:
//   - c: Conflict to resolve, as returned by Inspector.Inspect
//   - assignments: Current assignment list (not modified)
//   - tables: Event tables
//   - participants: Event participants
//
// Returns:
//   - types.FixResult: Complete new assignment list and change log
func (f *Fixer) Fix(c types.Conflict, assignments []types.Assignment, tables []types.Table, participants []types.Participant) types.FixResult {
	w := newWorkspace(assignments, tables, participants)

	switch c.Type {
	case types.ConflictCapacityOverflow:
		f.fixOverflow(w, c.TableID)
	case types.ConflictUnassigned:
		f.fixUnassigned(w, participants)
	case types.ConflictDuplicateAssignment:
		f.fixDuplicates(w, c.ParticipantIDs)
	case types.ConflictVIPImbalance:
		f.fixVIPImbalance(w, c.TableID)
	case types.ConflictGroupScatter:
		f.fixScatter(w, c.CompanyKey)
	}

	return w.result()
}

// fixOverflow moves the rows beyond the table's capacity, in list order.
// A row whose participant is already seated at another table is removed
// instead of moved.
func (f *Fixer) fixOverflow(w *workspace, tableID string) {
	state, ok := w.byID[tableID]
	if !ok {
		return
	}

	keep := max(state.Table.Capacity, 0)
	seen := 0
	var overflow []int
	for i, a := range w.rows {
		if a.TableID != tableID {
			continue
		}
		seen++
		if seen > keep {
			overflow = append(overflow, i)
		}
	}

	var unplaced []int
	for _, i := range overflow {
		a := w.rows[i]
		if w.seatedElsewhere(a.ParticipantID, tableID) {
			unplaced = append(unplaced, i)
			w.logf("Removed duplicate seat of %s at %s", w.participantLabel(a.ParticipantID), w.tableLabel(tableID))

			continue
		}
		target := w.bestTable(w.participant(a.ParticipantID), tableID)
		if target == nil {
			unplaced = append(unplaced, i)
			w.logf("Could not reseat %s from %s: no table has a free seat", w.participantLabel(a.ParticipantID), w.tableLabel(tableID))

			continue
		}
		w.move(i, target)
		w.logf("Moved %s from %s to %s", w.participantLabel(a.ParticipantID), w.tableLabel(tableID), tableLabel(target.Table))
	}
	w.drop(unplaced)
}

// fixUnassigned seats every participant without an assignment.
func (f *Fixer) fixUnassigned(w *workspace, participants []types.Participant) {
	seated := make(map[string]struct{}, len(w.rows))
	for _, a := range w.rows {
		seated[a.ParticipantID] = struct{}{}
	}

	for _, p := range participants {
		if _, ok := seated[p.ID]; ok {
			continue
		}
		seated[p.ID] = struct{}{}
		p = w.participant(p.ID)

		target := w.bestTable(p, "")
		if target == nil {
			w.logf("Could not seat %s: no table has a free seat", w.participantLabel(p.ID))
			continue
		}
		target.Seat(p)
		w.rows = append(w.rows, w.idx.Seat(p.ID, target.Table.ID))
		w.logf("Assigned %s to %s", w.participantLabel(p.ID), tableLabel(target.Table))
	}
}

// fixDuplicates keeps the first row of each listed participant, or of every
// duplicated participant when ids is empty.
func (f *Fixer) fixDuplicates(w *workspace, ids []string) {
	var only map[string]struct{}
	if len(ids) > 0 {
		only = make(map[string]struct{}, len(ids))
		for _, id := range ids {
			only[id] = struct{}{}
		}
	}

	seen := make(map[string]struct{}, len(w.rows))
	var extra []int
	for i, a := range w.rows {
		if only != nil {
			if _, ok := only[a.ParticipantID]; !ok {
				continue
			}
		}
		if _, ok := seen[a.ParticipantID]; !ok {
			seen[a.ParticipantID] = struct{}{}
			continue
		}
		extra = append(extra, i)
		w.logf("Removed duplicate seat of %s at %s", w.participantLabel(a.ParticipantID), w.tableLabel(a.TableID))
	}
	w.drop(extra)
}

// fixVIPImbalance moves half of the table's VIPs, rounded down, one at a
// time to the other table with the fewest VIPs that has a free seat.
func (f *Fixer) fixVIPImbalance(w *workspace, tableID string) {
	if _, ok := w.byID[tableID]; !ok {
		return
	}

	var vipRows []int
	for i, a := range w.rows {
		if a.TableID == tableID && a.IsVIP {
			vipRows = append(vipRows, i)
		}
	}

	for _, i := range vipRows[:len(vipRows)/2] {
		target := fewestVIPs(w.states, tableID)
		if target == nil {
			w.logf("Could not move %s from %s: no other table has a free seat", w.participantLabel(w.rows[i].ParticipantID), w.tableLabel(tableID))
			return
		}
		pid := w.rows[i].ParticipantID
		w.move(i, target)
		w.logf("Moved VIP %s from %s to %s", w.participantLabel(pid), w.tableLabel(tableID), tableLabel(target.Table))
	}
}

// fewestVIPs returns the table other than exclude with the fewest VIPs, then
// fewest participants, that has a free seat.
func fewestVIPs(states []*types.TableState, exclude string) *types.TableState {
	h := heap.NewMin[*types.TableState]()
	for _, s := range states {
		if s.Table.ID != exclude && s.HasCapacity() {
			h.Push(s.VIPCount*vipKeyWeight+s.Count(), s)
		}
	}

	top, ok := h.Pop()
	if !ok {
		return nil
	}

	return top.Value
}

// fixScatter gathers the company's members at the table already holding
// most of them, as far as its free seats allow.
func (f *Fixer) fixScatter(w *workspace, company string) {
	if company == "" {
		return
	}

	var memberRows []int
	perTable := make(map[string]int)
	for i, a := range w.rows {
		if w.idx.CompanyKey(a.ParticipantID) != company {
			continue
		}
		memberRows = append(memberRows, i)
		perTable[a.TableID]++
	}

	h := heap.NewMax[*types.TableState]()
	for _, s := range w.states {
		if n := perTable[s.Table.ID]; n > 0 && s.HasCapacity() {
			h.Push(n, s)
		}
	}
	top, ok := h.Pop()
	if !ok {
		w.logf("Could not gather company %s: no table holding its members has a free seat", company)
		return
	}
	target := top.Value

	atTarget := make(map[string]struct{})
	for _, i := range memberRows {
		if w.rows[i].TableID == target.Table.ID {
			atTarget[w.rows[i].ParticipantID] = struct{}{}
		}
	}

	for _, i := range memberRows {
		a := w.rows[i]
		if a.TableID == target.Table.ID {
			continue
		}
		if _, ok := atTarget[a.ParticipantID]; ok {
			continue
		}
		if !target.HasCapacity() {
			w.logf("Could not move %s to %s: table is full", w.participantLabel(a.ParticipantID), tableLabel(target.Table))
			continue
		}
		w.move(i, target)
		atTarget[a.ParticipantID] = struct{}{}
		w.logf("Moved %s from %s to %s", w.participantLabel(a.ParticipantID), w.tableLabel(a.TableID), tableLabel(target.Table))
	}
}
