// Package validate checks the structural invariants of an assignment set.
//
// The validator is the correctness gate run after every placement: a result
// with a fatal violation is an algorithm bug and must not be used or
// persisted. Check is pure and idempotent.
package validate

import (
	"fmt"

	"github.com/arloliu/seatplan/internal/tablestate"
	"github.com/arloliu/seatplan/types"
)

// ViolationKind classifies a validation failure.
type ViolationKind string

const (
	// InvalidCapacity: a table has capacity <= 0.
	InvalidCapacity ViolationKind = "invalid_capacity"
	// DuplicateAssignment: a participant has more than one assignment.
	DuplicateAssignment ViolationKind = "duplicate_assignment"
	// CapacityExceeded: a table has more assignments than seats.
	CapacityExceeded ViolationKind = "capacity_exceeded"
	// UnknownTable: an assignment references a table outside the roster.
	UnknownTable ViolationKind = "unknown_table"
	// UnknownParticipant: an assignment references a participant outside the roster.
	UnknownParticipant ViolationKind = "unknown_participant"
	// Unassigned: a participant has no assignment. This is the only soft kind.
	Unassigned ViolationKind = "unassigned"
)

// Violation is one failed check.
type Violation struct {
	Kind          ViolationKind
	Message       string
	TableID       string
	ParticipantID string
}

// Result is the validator verdict.
//
// OK is false whenever any violation exists, including unassigned
// participants. Fatal distinguishes structural failures from the soft
// unassigned finding.
type Result struct {
	OK         bool
	Errors     []string
	Violations []Violation
}

// Fatal reports whether the result has a structural violation.
func (r Result) Fatal() bool {
	for _, v := range r.Violations {
		if v.Kind != Unassigned {
			return true
		}
	}

	return false
}

// Count returns the number of violations of the given kind.
func (r Result) Count(kind ViolationKind) int {
	n := 0
	for _, v := range r.Violations {
		if v.Kind == kind {
			n++
		}
	}

	return n
}

// Check validates assignments against the roster.
//
// Checks, in output order:
//  1. tables with non-positive capacity (table order)
//  2. assignments to unknown tables or of unknown participants (assignment order)
//  3. participants assigned more than once (first-appearance order)
//  4. tables over capacity (table order)
//  5. participants without assignment (participant order)
//
// A repeated table ID counts once, with its first definition.
//
// Parameters:
//   - participants: Roster participants
//   - tables: Roster tables
//   - assignments: Assignment set to check
//
// Returns:
//   - Result: Verdict with one error string per violation
func Check(participants []types.Participant, tables []types.Table, assignments []types.Assignment) Result {
	tables = tablestate.Unique(tables)

	var violations []Violation
	add := func(v Violation) {
		violations = append(violations, v)
	}

	knownTables := make(map[string]struct{}, len(tables))
	for _, t := range tables {
		knownTables[t.ID] = struct{}{}
		if t.Capacity <= 0 {
			add(Violation{
				Kind:    InvalidCapacity,
				TableID: t.ID,
				Message: fmt.Sprintf("table %s has non-positive capacity %d", t.ID, t.Capacity),
			})
		}
	}

	knownParticipants := make(map[string]struct{}, len(participants))
	for _, p := range participants {
		knownParticipants[p.ID] = struct{}{}
	}

	perParticipant := make(map[string]int, len(assignments))
	var participantOrder []string
	perTable := make(map[string]int, len(tables))
	for _, a := range assignments {
		if _, ok := knownTables[a.TableID]; !ok {
			add(Violation{
				Kind:          UnknownTable,
				TableID:       a.TableID,
				ParticipantID: a.ParticipantID,
				Message:       fmt.Sprintf("participant %s is assigned to unknown table %s", a.ParticipantID, a.TableID),
			})
		}
		if _, ok := knownParticipants[a.ParticipantID]; !ok {
			add(Violation{
				Kind:          UnknownParticipant,
				TableID:       a.TableID,
				ParticipantID: a.ParticipantID,
				Message:       fmt.Sprintf("unknown participant %s is assigned to table %s", a.ParticipantID, a.TableID),
			})
		}
		if perParticipant[a.ParticipantID] == 0 {
			participantOrder = append(participantOrder, a.ParticipantID)
		}
		perParticipant[a.ParticipantID]++
		perTable[a.TableID]++
	}

	for _, id := range participantOrder {
		if n := perParticipant[id]; n > 1 {
			add(Violation{
				Kind:          DuplicateAssignment,
				ParticipantID: id,
				Message:       fmt.Sprintf("participant %s is assigned %d times", id, n),
			})
		}
	}

	for _, t := range tables {
		if n := perTable[t.ID]; n > t.Capacity && t.Capacity > 0 {
			add(Violation{
				Kind:    CapacityExceeded,
				TableID: t.ID,
				Message: fmt.Sprintf("table %s has %d assignments for capacity %d", t.ID, n, t.Capacity),
			})
		}
	}

	for _, p := range participants {
		if perParticipant[p.ID] == 0 {
			add(Violation{
				Kind:          Unassigned,
				ParticipantID: p.ID,
				Message:       fmt.Sprintf("participant %s has no assignment", p.ID),
			})
		}
	}

	result := Result{OK: len(violations) == 0, Violations: violations}
	for _, v := range violations {
		result.Errors = append(result.Errors, v.Message)
	}

	return result
}
