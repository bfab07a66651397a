package strategy

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/arloliu/seatplan/types"
)

// New returns the strategy implementing algorithm.
//
// Parameters:
//   - algorithm: One of types.Algorithms()
//
// Returns:
//   - types.AssignmentStrategy: Strategy ready for use
//   - error: ErrUnsupportedAlgorithm for any other value
//
// Example:
//
//	strat, err := strategy.New(types.AlgorithmVIPSpread)
//	if err != nil { /* reject the run */ }
//	result, _ := strat.Assign(types.AssignmentOptions{EventID: "gala"}, participants, tables)
func New(algorithm types.Algorithm) (types.AssignmentStrategy, error) {
	switch algorithm {
	case types.AlgorithmRoundRobin:
		return NewRoundRobin(), nil
	case types.AlgorithmVIPSpread:
		return NewVIPSpread(), nil
	case types.AlgorithmGroupByCompany:
		return NewGroupByCompany(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, algorithm)
	}
}

// placement accumulates the outcome of one run.
type placement struct {
	assignments []types.Assignment
	unassigned  []string
}

func newPlacement(participants int) *placement {
	return &placement{assignments: make([]types.Assignment, 0, participants)}
}

func (pl *placement) seat(p types.Participant, s *types.TableState) {
	s.Seat(p)
	pl.assignments = append(pl.assignments, types.NewAssignment(p, s.Table))
}

func (pl *placement) skip(p types.Participant) {
	pl.unassigned = append(pl.unassigned, p.ID)
}

// result assembles the AssignmentResult from the final table states.
func (pl *placement) result(
	opts types.AssignmentOptions,
	algorithm types.Algorithm,
	participants int,
	states []*types.TableState,
) types.AssignmentResult {
	batchID := opts.BatchID
	if batchID == "" {
		batchID = uuid.NewString()
	}

	tables := make([]types.TableSummary, len(states))
	for i, s := range states {
		tables[i] = types.TableSummary{
			TableID:   s.Table.ID,
			TableName: s.Table.Name,
			Assigned:  s.Count(),
			Capacity:  s.Table.Capacity,
		}
	}

	return types.AssignmentResult{
		EventID:     opts.EventID,
		Algorithm:   algorithm,
		BatchID:     batchID,
		Assignments: pl.assignments,
		Summary: types.Summary{
			TotalParticipants: participants,
			TotalTables:       len(states),
			AssignedCount:     len(pl.assignments),
			UnassignedCount:   len(pl.unassigned),
			UnassignedIDs:     pl.unassigned,
			Tables:            tables,
		},
	}
}

// uniqueParticipants drops repeated participant IDs, keeping the first record.
func uniqueParticipants(participants []types.Participant) []types.Participant {
	seen := make(map[string]struct{}, len(participants))
	out := make([]types.Participant, 0, len(participants))
	for _, p := range participants {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}

	return out
}
