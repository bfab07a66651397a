// Package tablestate builds the per-run TableState working structures.
//
// TableState is never reused across runs: every algorithm invocation calls
// Build (or FromAssignments) again, so no state leaks between runs.
package tablestate

import (
	"github.com/arloliu/seatplan/internal/roster"
	"github.com/arloliu/seatplan/types"
)

// Build returns one empty TableState per table ID, in table order.
//
// Repeated table IDs collapse to their first definition, so a table can
// never be filled twice under the same ID.
//
// Parameters:
//   - tables: Static table definitions (not modified)
//
// Returns:
//   - []*types.TableState: States with RemainingCapacity = Capacity and no occupants
func Build(tables []types.Table) []*types.TableState {
	tables = Unique(tables)
	states := make([]*types.TableState, len(tables))
	for i, t := range tables {
		states[i] = &types.TableState{
			Table:             t,
			RemainingCapacity: t.Capacity,
			Participants:      []types.Participant{},
		}
	}

	return states
}

// FromAssignments returns table states populated from an existing assignment list.
//
// Rows referencing unknown tables are skipped. Rows of participants missing
// from the roster are seated as stubs carrying the row's ID and VIP flag.
// RemainingCapacity goes negative for overflowing tables.
//
// Returns:
//   - []*types.TableState: States in table order
//   - map[string]*types.TableState: The same states keyed by table ID
func FromAssignments(tables []types.Table, idx *roster.Index, assignments []types.Assignment) ([]*types.TableState, map[string]*types.TableState) {
	states := Build(tables)
	byID := make(map[string]*types.TableState, len(states))
	for _, s := range states {
		byID[s.Table.ID] = s
	}

	for _, a := range assignments {
		s, ok := byID[a.TableID]
		if !ok {
			continue
		}
		p, ok := idx.Participant(a.ParticipantID)
		if !ok {
			p = types.Participant{ID: a.ParticipantID, IsVIP: a.IsVIP}
		}
		s.Seat(p)
	}

	return states, byID
}

// Unique drops repeated table IDs, keeping the first definition.
func Unique(tables []types.Table) []types.Table {
	seen := make(map[string]struct{}, len(tables))
	out := make([]types.Table, 0, len(tables))
	for _, t := range tables {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}

	return out
}
