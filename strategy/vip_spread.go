package strategy

import (
	"github.com/arloliu/seatplan/internal/heap"
	"github.com/arloliu/seatplan/internal/tablestate"
	"github.com/arloliu/seatplan/types"
)

// vipKeyWeight makes VIP count the primary key and occupancy the secondary one.
const vipKeyWeight = 10000

// VIPSpread implements VIP-first seating.
type VIPSpread struct{}

var _ types.AssignmentStrategy = (*VIPSpread)(nil)

// NewVIPSpread creates a new VIP spread strategy.
//
// VIPs are seated first. When VIP tables exist, each VIP goes to the VIP
// table with the fewest VIPs (then fewest participants); if no VIP table has
// a free seat, or none exist, the VIP goes to the table with the most free
// seats. Everyone else is then seated one at a time at the table with the
// most free seats at that moment.
//
// Returns:
//   - *VIPSpread: Initialized VIP spread strategy
func NewVIPSpread() *VIPSpread {
	return &VIPSpread{}
}

// Algorithm returns types.AlgorithmVIPSpread.
func (vs *VIPSpread) Algorithm() types.Algorithm {
	return types.AlgorithmVIPSpread
}

// Assign seats VIPs first, then everyone else.
//
// Parameters:
//   - opts: Event and batch identifiers
//   - participants: Participants to seat
//   - tables: Available tables
//
// Returns:
//   - types.AssignmentResult: Assignment set and summary
//   - error: Always nil
func (vs *VIPSpread) Assign(opts types.AssignmentOptions, participants []types.Participant, tables []types.Table) (types.AssignmentResult, error) {
	participants = uniqueParticipants(participants)
	states := tablestate.Build(tables)
	pl := newPlacement(len(participants))

	var vips, regular []types.Participant
	for _, p := range participants {
		if p.IsVIP {
			vips = append(vips, p)
		} else {
			regular = append(regular, p)
		}
	}

	var vipTables []*types.TableState
	for _, s := range states {
		if s.Table.IsVIPTable {
			vipTables = append(vipTables, s)
		}
	}

	for _, p := range vips {
		target := fewestVIPs(vipTables)
		if target == nil {
			target = mostRemaining(states)
		}
		if target == nil {
			pl.skip(p)
			continue
		}
		pl.seat(p, target)
	}

	// The heap is rebuilt per participant so every pick sees current occupancy.
	for _, p := range regular {
		target := mostRemaining(states)
		if target == nil {
			pl.skip(p)
			continue
		}
		pl.seat(p, target)
	}

	return pl.result(opts, vs.Algorithm(), len(participants), states), nil
}

// fewestVIPs returns the VIP table with the fewest VIPs, then fewest
// participants, that still has a free seat. Exhausted entries are skipped.
func fewestVIPs(vipTables []*types.TableState) *types.TableState {
	if len(vipTables) == 0 {
		return nil
	}

	items := make([]heap.Item[*types.TableState], len(vipTables))
	for i, s := range vipTables {
		items[i] = heap.Item[*types.TableState]{Key: s.VIPCount*vipKeyWeight + s.Count(), Value: s}
	}

	h := heap.NewMin(items...)
	for {
		top, ok := h.Pop()
		if !ok {
			return nil
		}
		if top.Value.HasCapacity() {
			return top.Value
		}
	}
}

// mostRemaining returns the table with the most free seats, or nil when all are full.
func mostRemaining(states []*types.TableState) *types.TableState {
	h := heap.NewMax[*types.TableState]()
	for _, s := range states {
		if s.HasCapacity() {
			h.Push(s.RemainingCapacity, s)
		}
	}

	top, ok := h.Pop()
	if !ok {
		return nil
	}

	return top.Value
}
