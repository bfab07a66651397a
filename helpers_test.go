package seatplan

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/seatplan/internal/metrics"
	"github.com/arloliu/seatplan/source"
	seattest "github.com/arloliu/seatplan/testing"
	"github.com/arloliu/seatplan/types"
)

const testEvent = "gala-2025"

// recordingMetrics counts the calls the planner and sessions make.
type recordingMetrics struct {
	*metrics.NopMetrics

	mu                 sync.Mutex
	placements         []string
	validationFailures []string
	fixes              map[string]int
	commits            []string
	inspections        int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{NopMetrics: metrics.NewNop(), fixes: make(map[string]int)}
}

func (m *recordingMetrics) RecordPlacement(algorithm string, _ float64, _, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.placements = append(m.placements, algorithm)
}

func (m *recordingMetrics) RecordValidationFailure(algorithm string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.validationFailures = append(m.validationFailures, algorithm)
}

func (m *recordingMetrics) RecordInspection(_ float64, _ map[types.ConflictType]int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inspections++
}

func (m *recordingMetrics) RecordFix(kind string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fixes[kind]++
}

func (m *recordingMetrics) RecordCommit(source string, _ int64, _, _, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commits = append(m.commits, source)
}

// newTestPlanner builds a planner over a generated roster for testEvent.
func newTestPlanner(t *testing.T, spec seattest.RosterSpec, opts ...Option) (*Planner, *source.Static) {
	t.Helper()

	participants, tables := seattest.Roster(spec)
	src := source.NewStatic()
	src.Set(testEvent, source.Roster{Participants: participants, Tables: tables})

	cfg := TestConfig()
	planner, err := NewPlanner(&cfg, src, append([]Option{WithLogger(seattest.NewTestLogger(t))}, opts...)...)
	require.NoError(t, err)

	return planner, src
}

// openSession opens the testEvent session of a fresh planner.
func openSession(t *testing.T, spec seattest.RosterSpec, opts ...Option) (*Session, *Planner, *source.Static) {
	t.Helper()

	planner, src := newTestPlanner(t, spec, opts...)
	session, err := planner.Session(context.Background(), testEvent)
	require.NoError(t, err)

	return session, planner, src
}

// tablesOf returns the tables a participant sits at, in list order.
func tablesOf(assignments []Assignment, participantID string) []string {
	var out []string
	for _, a := range assignments {
		if a.ParticipantID == participantID {
			out = append(out, a.TableID)
		}
	}

	return out
}

// seat moves participants to tables given as alternating ID pairs.
func seat(t *testing.T, s *Session, pairs ...string) {
	t.Helper()

	for i := 0; i+1 < len(pairs); i += 2 {
		_, err := s.Move(context.Background(), pairs[i], pairs[i+1])
		require.NoError(t, err)
	}
}
