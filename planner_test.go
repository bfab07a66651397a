package seatplan

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/seatplan/history"
	"github.com/arloliu/seatplan/source"
	seattest "github.com/arloliu/seatplan/testing"
	"github.com/arloliu/seatplan/types"
)

// failingSource returns err from every call.
type failingSource struct{ err error }

func (f failingSource) ListParticipants(context.Context, string) ([]types.Participant, error) {
	return nil, f.err
}

func (f failingSource) ListTables(context.Context, string) ([]types.Table, error) {
	return nil, f.err
}

func TestNewPlanner(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		_, err := NewPlanner(nil, source.NewStatic())
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("nil source", func(t *testing.T) {
		cfg := TestConfig()
		_, err := NewPlanner(&cfg, nil)
		require.ErrorIs(t, err, ErrRosterSourceRequired)
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := TestConfig()
		cfg.Inspector.ScatterMinMembers = 1
		_, err := NewPlanner(&cfg, source.NewStatic())
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("fills defaults", func(t *testing.T) {
		cfg := Config{}
		planner, err := NewPlanner(&cfg, source.NewStatic())
		require.NoError(t, err)
		require.Equal(t, DefaultConfig(), planner.Config())
		require.Equal(t, DefaultConfig(), cfg)
	})
}

func TestPlanner_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("runs the default algorithm", func(t *testing.T) {
		rec := newRecordingMetrics()
		planner, _ := newTestPlanner(t, seattest.RosterSpec{Participants: 6, TableCapacities: []int{3, 3}}, WithMetrics(rec))

		result, err := planner.Run(ctx, testEvent, "")
		require.NoError(t, err)
		require.Equal(t, AlgorithmRoundRobin, result.Algorithm)
		require.Equal(t, testEvent, result.EventID)
		require.NotEmpty(t, result.BatchID)
		require.Len(t, result.Assignments, 6)
		require.Equal(t, 0, result.Summary.UnassignedCount)
		require.Equal(t, []string{"round_robin"}, rec.placements)
	})

	t.Run("every algorithm passes the gate", func(t *testing.T) {
		planner, _ := newTestPlanner(t, seattest.RosterSpec{
			Participants:    12,
			VIPs:            3,
			Companies:       3,
			TableCapacities: []int{4, 4, 4},
			VIPTables:       1,
		})

		for _, alg := range types.Algorithms() {
			result, err := planner.Run(ctx, testEvent, alg)
			require.NoError(t, err, alg)
			require.Equal(t, alg, result.Algorithm)
			require.Len(t, result.Assignments, 12)
		}
	})

	t.Run("fresh batch per run", func(t *testing.T) {
		planner, _ := newTestPlanner(t, seattest.RosterSpec{Participants: 2, TableCapacities: []int{2}})

		first, err := planner.Run(ctx, testEvent, AlgorithmVIPSpread)
		require.NoError(t, err)
		second, err := planner.Run(ctx, testEvent, AlgorithmVIPSpread)
		require.NoError(t, err)
		require.NotEqual(t, first.BatchID, second.BatchID)
	})

	t.Run("shortfall is not a rejection", func(t *testing.T) {
		planner, _ := newTestPlanner(t, seattest.RosterSpec{Participants: 5, TableCapacities: []int{2, 2}})

		result, err := planner.Run(ctx, testEvent, AlgorithmGroupByCompany)
		require.NoError(t, err)
		require.Equal(t, 4, result.Summary.AssignedCount)
		require.Equal(t, 1, result.Summary.UnassignedCount)
	})

	t.Run("invalid capacity rejects the run", func(t *testing.T) {
		rec := newRecordingMetrics()
		planner, _ := newTestPlanner(t, seattest.RosterSpec{Participants: 2, TableCapacities: []int{2, 0}}, WithMetrics(rec))

		_, err := planner.Run(ctx, testEvent, AlgorithmRoundRobin)
		require.ErrorIs(t, err, ErrInvalidResult)
		require.Contains(t, err.Error(), "non-positive capacity")
		require.Equal(t, []string{"round_robin"}, rec.validationFailures)
		require.Empty(t, rec.placements)
	})

	t.Run("unsupported algorithm", func(t *testing.T) {
		planner, _ := newTestPlanner(t, seattest.RosterSpec{Participants: 1, TableCapacities: []int{1}})

		_, err := planner.Run(ctx, testEvent, "random")
		require.ErrorIs(t, err, ErrUnsupportedAlgorithm)
	})

	t.Run("event ID required", func(t *testing.T) {
		planner, _ := newTestPlanner(t, seattest.RosterSpec{})

		_, err := planner.Run(ctx, "", AlgorithmRoundRobin)
		require.ErrorIs(t, err, ErrEventIDRequired)
	})

	t.Run("roster error", func(t *testing.T) {
		boom := errors.New("database down")
		cfg := TestConfig()
		planner, err := NewPlanner(&cfg, failingSource{err: boom})
		require.NoError(t, err)

		_, err = planner.Run(ctx, testEvent, AlgorithmRoundRobin)
		require.ErrorIs(t, err, boom)
	})
}

func TestPlanner_Sessions(t *testing.T) {
	ctx := context.Background()

	t.Run("same session per event", func(t *testing.T) {
		planner, _ := newTestPlanner(t, seattest.RosterSpec{Participants: 2, TableCapacities: []int{2}})

		first, err := planner.Session(ctx, testEvent)
		require.NoError(t, err)
		second, err := planner.Session(ctx, testEvent)
		require.NoError(t, err)
		require.Same(t, first, second)
		require.Equal(t, 1, planner.OpenSessions())

		other, err := planner.Session(ctx, "summit")
		require.NoError(t, err)
		require.NotSame(t, first, other)
		require.Equal(t, 2, planner.OpenSessions())
	})

	t.Run("close drops the draft", func(t *testing.T) {
		planner, _ := newTestPlanner(t, seattest.RosterSpec{Participants: 2, TableCapacities: []int{2}})

		session, err := planner.Session(ctx, testEvent)
		require.NoError(t, err)
		seat(t, session, "p1", "t1")

		require.True(t, planner.CloseSession(testEvent))
		require.False(t, planner.CloseSession(testEvent))

		reopened, err := planner.Session(ctx, testEvent)
		require.NoError(t, err)
		require.NotSame(t, session, reopened)
		require.Empty(t, reopened.Draft())
	})

	t.Run("reopened session starts from the latest version", func(t *testing.T) {
		planner, _ := newTestPlanner(t, seattest.RosterSpec{Participants: 2, TableCapacities: []int{2}})

		session, err := planner.Session(ctx, testEvent)
		require.NoError(t, err)
		seat(t, session, "p1", "t1", "p2", "t1")
		_, err = session.Commit(ctx, "alice")
		require.NoError(t, err)
		planner.CloseSession(testEvent)

		reopened, err := planner.Session(ctx, testEvent)
		require.NoError(t, err)
		require.Equal(t, int64(1), reopened.ConfirmedVersion())
		require.Equal(t, reopened.Confirmed(), reopened.Draft())
		require.False(t, reopened.Dirty())
		require.Empty(t, reopened.Conflicts().Conflicts)
	})

	t.Run("event ID required", func(t *testing.T) {
		planner, _ := newTestPlanner(t, seattest.RosterSpec{})

		_, err := planner.Session(ctx, "")
		require.ErrorIs(t, err, ErrEventIDRequired)
		_, err = planner.History(ctx, "")
		require.ErrorIs(t, err, ErrEventIDRequired)
	})

	t.Run("roster error", func(t *testing.T) {
		cfg := TestConfig()
		planner, err := NewPlanner(&cfg, failingSource{err: errors.New("database down")})
		require.NoError(t, err)

		_, err = planner.Session(ctx, testEvent)
		require.Error(t, err)
		require.Equal(t, 0, planner.OpenSessions())
	})
}

func TestPlanner_History(t *testing.T) {
	ctx := context.Background()
	store := history.NewMemoryStore()
	planner, _ := newTestPlanner(t, seattest.RosterSpec{Participants: 3, TableCapacities: []int{2, 2}}, WithVersionStore(store))

	session, err := planner.Session(ctx, testEvent)
	require.NoError(t, err)

	_, err = session.ApplyAlgorithm(ctx, AlgorithmRoundRobin)
	require.NoError(t, err)
	_, err = session.Commit(ctx, "alice")
	require.NoError(t, err)

	seat(t, session, "p1", "t2")
	_, err = session.Commit(ctx, "bob")
	require.NoError(t, err)

	versions, err := planner.History(ctx, testEvent)
	require.NoError(t, err)
	require.Len(t, versions, 2)
	require.Equal(t, "algorithm:round_robin", versions[0].Source)
	require.Equal(t, "alice", versions[0].AssignedBy)
	require.Equal(t, SourceManual, versions[1].Source)
	require.Equal(t, []Move{{ParticipantID: "p1", FromTableID: "t1", ToTableID: "t2"}}, versions[1].Diff.Moved)

	stored, err := store.List(ctx, testEvent)
	require.NoError(t, err)
	require.Equal(t, versions, stored)
}
