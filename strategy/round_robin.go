package strategy

import (
	"github.com/arloliu/seatplan/internal/tablestate"
	"github.com/arloliu/seatplan/types"
)

// RoundRobin implements round-robin seating.
type RoundRobin struct{}

var _ types.AssignmentStrategy = (*RoundRobin)(nil)

// NewRoundRobin creates a new round-robin strategy.
//
// The strategy visits tables in table order, seating one participant per
// visited table and skipping full tables. The rotation pointer persists
// across participants so occupancy spreads evenly.
//
// Returns:
//   - *RoundRobin: Initialized round-robin strategy
func NewRoundRobin() *RoundRobin {
	return &RoundRobin{}
}

// Algorithm returns types.AlgorithmRoundRobin.
func (rr *RoundRobin) Algorithm() types.Algorithm {
	return types.AlgorithmRoundRobin
}

// Assign seats participants using round-robin rotation.
//
// The algorithm:
//  1. Build fresh table states
//  2. For each participant, advance the rotation pointer at most one lap to
//     the next table with a free seat
//  3. Once every table is full, the remaining participants stay unassigned
//
// Parameters:
//   - opts: Event and batch identifiers
//   - participants: Participants to seat
//   - tables: Tables in rotation order
//
// Returns:
//   - types.AssignmentResult: Assignment set and summary
//   - error: Always nil
func (rr *RoundRobin) Assign(opts types.AssignmentOptions, participants []types.Participant, tables []types.Table) (types.AssignmentResult, error) {
	participants = uniqueParticipants(participants)
	states := tablestate.Build(tables)
	pl := newPlacement(len(participants))

	free := 0
	for _, s := range states {
		if s.HasCapacity() {
			free += s.RemainingCapacity
		}
	}

	next := 0
	for _, p := range participants {
		if free == 0 {
			pl.skip(p)
			continue
		}

		for range len(states) {
			s := states[next]
			next = (next + 1) % len(states)
			if s.HasCapacity() {
				pl.seat(p, s)
				free--

				break
			}
		}
	}

	return pl.result(opts, rr.Algorithm(), len(participants), states), nil
}
