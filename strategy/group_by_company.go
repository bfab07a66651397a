package strategy

import (
	"slices"

	"github.com/arloliu/seatplan/internal/heap"
	"github.com/arloliu/seatplan/internal/tablestate"
	"github.com/arloliu/seatplan/types"
)

// GroupByCompany implements company-clustered seating.
type GroupByCompany struct{}

var _ types.AssignmentStrategy = (*GroupByCompany)(nil)

type companyGroup struct {
	key     string
	members []types.Participant
}

// NewGroupByCompany creates a new group-by-company strategy.
//
// Participants are grouped by Participant.CompanyKey (participants without
// company information share the "unknown" group). Groups are seated largest
// first; each group fills the table with the most free seats, as many
// members as fit, before the next table is chosen.
//
// Returns:
//   - *GroupByCompany: Initialized group-by-company strategy
func NewGroupByCompany() *GroupByCompany {
	return &GroupByCompany{}
}

// Algorithm returns types.AlgorithmGroupByCompany.
func (g *GroupByCompany) Algorithm() types.Algorithm {
	return types.AlgorithmGroupByCompany
}

// Assign seats each company together where capacity allows.
//
// The algorithm:
//  1. Group participants by company key, in first-appearance order
//  2. Stable-sort groups by size, largest first
//  3. For each group, pick the table with the most free seats and seat as
//     many members as fit; repeat until the group is seated or no table has
//     a free seat
//
// Parameters:
//   - opts: Event and batch identifiers
//   - participants: Participants to seat
//   - tables: Available tables
//
// Returns:
//   - types.AssignmentResult: Assignment set and summary
//   - error: Always nil
func (g *GroupByCompany) Assign(opts types.AssignmentOptions, participants []types.Participant, tables []types.Table) (types.AssignmentResult, error) {
	participants = uniqueParticipants(participants)
	states := tablestate.Build(tables)
	pl := newPlacement(len(participants))

	groups := groupByCompany(participants)
	slices.SortStableFunc(groups, func(a, b companyGroup) int {
		return len(b.members) - len(a.members)
	})

	for _, group := range groups {
		members := group.members
		for len(members) > 0 {
			target := roomiest(states)
			if target == nil {
				for _, p := range members {
					pl.skip(p)
				}

				break
			}

			n := min(target.RemainingCapacity, len(members))
			for _, p := range members[:n] {
				pl.seat(p, target)
			}
			members = members[n:]
		}
	}

	return pl.result(opts, g.Algorithm(), len(participants), states), nil
}

func groupByCompany(participants []types.Participant) []companyGroup {
	pos := make(map[string]int)
	var groups []companyGroup
	for _, p := range participants {
		key := p.CompanyKey()
		i, ok := pos[key]
		if !ok {
			i = len(groups)
			pos[key] = i
			groups = append(groups, companyGroup{key: key})
		}
		groups[i].members = append(groups[i].members, p)
	}

	return groups
}

// roomiest returns the table with the most free seats using a MinHeap over
// negated remaining capacity, or nil when every table is full.
func roomiest(states []*types.TableState) *types.TableState {
	h := heap.NewMin[*types.TableState]()
	for _, s := range states {
		if s.HasCapacity() {
			h.Push(-s.RemainingCapacity, s)
		}
	}

	top, ok := h.Pop()
	if !ok {
		return nil
	}

	return top.Value
}
