package conflict

import (
	"github.com/arloliu/seatplan/internal/heap"
	"github.com/arloliu/seatplan/types"
)

// DefaultMaxIterations is the rebalancer's default move budget.
const DefaultMaxIterations = 10

// Rebalancer levels table occupancy one move at a time.
//
// It is a best-effort heuristic, not an optimal min-max balancer.
type Rebalancer struct {
	maxIterations int
}

// RebalancerOption configures a Rebalancer.
type RebalancerOption func(*Rebalancer)

// WithMaxIterations sets the default move budget used when Rebalance is
// called with a non-positive budget.
func WithMaxIterations(n int) RebalancerOption {
	return func(r *Rebalancer) {
		if n > 0 {
			r.maxIterations = n
		}
	}
}

// NewRebalancer creates a rebalancer.
func NewRebalancer(opts ...RebalancerOption) *Rebalancer {
	r := &Rebalancer{maxIterations: DefaultMaxIterations}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Rebalance moves participants from the most loaded table to the least
// loaded one until occupancies differ by at most one.
//
// Each iteration moves exactly one participant, preferring a non-VIP
// occupant of the most loaded table. Iterations are capped at twice the
// number of tables. The pass stops early when no table with a free seat
// remains.
//
// Parameters:
//   - assignments: Current assignment list (not modified)
//   - tables: Event tables
//   - participants: Event participants
//   - maxIterations: Move budget; <= 0 uses the configured default
//
// Returns:
//   - types.FixResult: Complete new assignment list and change log
func (r *Rebalancer) Rebalance(assignments []types.Assignment, tables []types.Table, participants []types.Participant, maxIterations int) types.FixResult {
	w := newWorkspace(assignments, tables, participants)

	if maxIterations <= 0 {
		maxIterations = r.maxIterations
	}
	maxIterations = min(maxIterations, 2*len(w.states))

	for range maxIterations {
		if !r.step(w) {
			break
		}
	}

	return w.result()
}

// step performs one move and reports whether it did.
func (r *Rebalancer) step(w *workspace) bool {
	loaded := heap.NewMax[*types.TableState]()
	open := heap.NewMin[*types.TableState]()
	for _, s := range w.states {
		if s.Count() > 0 {
			loaded.Push(s.Count(), s)
		}
		if s.HasCapacity() {
			open.Push(s.Count(), s)
		}
	}

	most, ok := loaded.Pop()
	if !ok {
		return false
	}
	least, ok := open.Pop()
	if !ok {
		return false
	}
	if most.Key-least.Key <= 1 {
		return false
	}

	from, to := most.Value, least.Value
	mover := from.Participants[0]
	for _, p := range from.Participants {
		if !p.IsVIP {
			mover = p
			break
		}
	}

	for i, a := range w.rows {
		if a.ParticipantID == mover.ID && a.TableID == from.Table.ID {
			w.move(i, to)
			w.logf("Moved %s from %s to %s to balance occupancy", w.participantLabel(mover.ID), tableLabel(from.Table), tableLabel(to.Table))

			return true
		}
	}

	return false
}
