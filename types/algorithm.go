package types

import "fmt"

// Algorithm selects a placement algorithm. The set is closed.
type Algorithm string

const (
	// AlgorithmRoundRobin deals participants across tables in rotation.
	AlgorithmRoundRobin Algorithm = "round_robin"
	// AlgorithmVIPSpread seats VIPs first, spread over VIP tables, then balances everyone else.
	AlgorithmVIPSpread Algorithm = "vip_spread"
	// AlgorithmGroupByCompany keeps colleagues together, largest company first.
	AlgorithmGroupByCompany Algorithm = "group_by_company"
)

// Algorithms lists every supported algorithm in display order.
func Algorithms() []Algorithm {
	return []Algorithm{AlgorithmRoundRobin, AlgorithmVIPSpread, AlgorithmGroupByCompany}
}

// Valid reports whether a is one of the supported algorithms.
func (a Algorithm) Valid() bool {
	switch a {
	case AlgorithmRoundRobin, AlgorithmVIPSpread, AlgorithmGroupByCompany:
		return true
	default:
		return false
	}
}

// Source returns the version source tag for a run of this algorithm.
func (a Algorithm) Source() string {
	return "algorithm:" + string(a)
}

// ParseAlgorithm converts a string to an Algorithm.
//
// Returns:
//   - Algorithm: Parsed algorithm
//   - error: ErrUnsupportedAlgorithm wrapped with the offending value
func ParseAlgorithm(s string) (Algorithm, error) {
	a := Algorithm(s)
	if !a.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, s)
	}

	return a, nil
}

// AssignmentOptions carries per-run identifiers.
type AssignmentOptions struct {
	// EventID identifies the event being seated.
	EventID string
	// BatchID tags the produced assignment set. A fresh UUID is minted when empty.
	BatchID string
}

// AssignmentStrategy places participants at tables.
//
// Strategies implement different placement algorithms:
//   - RoundRobin: Even dealing in table order
//   - VIPSpread: VIP-first placement with even VIP distribution
//   - GroupByCompany: Company clustering, largest contingent first
//
// Strategy implementations should:
//   - Be deterministic for a given input order (BatchID aside)
//   - Never mutate their inputs
//   - Treat capacity shortfall as a normal outcome (UnassignedCount > 0)
//   - Rebuild all working state on every call
type AssignmentStrategy interface {
	// Algorithm returns the algorithm implemented by this strategy.
	Algorithm() Algorithm

	// Assign seats participants at tables.
	//
	// Parameters:
	//   - opts: Event and batch identifiers
	//   - participants: Participants to seat
	//   - tables: Available tables
	//
	// Returns:
	//   - AssignmentResult: Complete assignment set and summary
	//   - error: Only for programmer errors; capacity shortfall is not an error
	Assign(opts AssignmentOptions, participants []Participant, tables []Table) (AssignmentResult, error)
}
