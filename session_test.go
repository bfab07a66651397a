package seatplan

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/seatplan/history"
	"github.com/arloliu/seatplan/source"
	seattest "github.com/arloliu/seatplan/testing"
)

func TestSession_Open(t *testing.T) {
	session, _, _ := openSession(t, seattest.RosterSpec{Participants: 3, TableCapacities: []int{2, 2}})

	require.Equal(t, testEvent, session.EventID())
	require.Empty(t, session.Draft())
	require.Empty(t, session.Confirmed())
	require.Equal(t, int64(0), session.ConfirmedVersion())
	require.False(t, session.Dirty())

	report := session.Conflicts()
	require.True(t, report.HasErrors)
	require.Len(t, report.ByType(ConflictUnassigned), 1)
	require.Equal(t, 3, report.ByType(ConflictUnassigned)[0].Count)

	participants, tables := session.Roster()
	require.Len(t, participants, 3)
	require.Len(t, tables, 2)
}

func TestSession_ApplyAlgorithm(t *testing.T) {
	ctx := context.Background()
	session, _, _ := openSession(t, seattest.RosterSpec{Participants: 4, TableCapacities: []int{2, 2}})

	result, err := session.ApplyAlgorithm(ctx, AlgorithmRoundRobin)
	require.NoError(t, err)
	require.Equal(t, result.Assignments, session.Draft())
	require.True(t, session.Dirty())
	require.Empty(t, session.Conflicts().Conflicts)

	undo, redo := session.UndoDepth()
	require.Equal(t, 1, undo)
	require.Equal(t, 0, redo)

	t.Run("rejected run leaves the draft", func(t *testing.T) {
		_, err := session.ApplyAlgorithm(ctx, "random")
		require.ErrorIs(t, err, ErrUnsupportedAlgorithm)
		require.Equal(t, result.Assignments, session.Draft())
	})
}

func TestSession_Move(t *testing.T) {
	ctx := context.Background()

	t.Run("seats and moves", func(t *testing.T) {
		session, _, _ := openSession(t, seattest.RosterSpec{Participants: 2, TableCapacities: []int{2, 2}})

		report, err := session.Move(ctx, "p1", "t1")
		require.NoError(t, err)
		require.Equal(t, []string{"t1"}, tablesOf(session.Draft(), "p1"))
		require.Len(t, report.ByType(ConflictUnassigned), 1)

		_, err = session.Move(ctx, "p1", "t2")
		require.NoError(t, err)
		draft := session.Draft()
		require.Equal(t, []string{"t2"}, tablesOf(draft, "p1"))
		require.Equal(t, "Table 2", draft[0].TableName)
	})

	t.Run("same table changes nothing", func(t *testing.T) {
		session, _, _ := openSession(t, seattest.RosterSpec{Participants: 1, TableCapacities: []int{1}})
		seat(t, session, "p1", "t1")

		_, err := session.Move(ctx, "p1", "t1")
		require.NoError(t, err)
		undo, _ := session.UndoDepth()
		require.Equal(t, 1, undo)
	})

	t.Run("full table", func(t *testing.T) {
		session, _, _ := openSession(t, seattest.RosterSpec{Participants: 3, TableCapacities: []int{1, 2}})
		seat(t, session, "p1", "t1", "p2", "t2")

		_, err := session.Move(ctx, "p2", "t1")
		require.ErrorIs(t, err, ErrTableFull)
		require.Equal(t, []string{"t2"}, tablesOf(session.Draft(), "p2"))
	})

	t.Run("unknown IDs", func(t *testing.T) {
		session, _, _ := openSession(t, seattest.RosterSpec{Participants: 1, TableCapacities: []int{1}})

		_, err := session.Move(ctx, "nobody", "t1")
		require.ErrorIs(t, err, ErrUnknownParticipant)
		_, err = session.Move(ctx, "p1", "t9")
		require.ErrorIs(t, err, ErrUnknownTable)
		require.Empty(t, session.Draft())
	})
}

func TestSession_Unseat(t *testing.T) {
	ctx := context.Background()
	session, _, _ := openSession(t, seattest.RosterSpec{Participants: 2, TableCapacities: []int{2}})
	seat(t, session, "p1", "t1", "p2", "t1")

	report, err := session.Unseat(ctx, "p1")
	require.NoError(t, err)
	require.Nil(t, tablesOf(session.Draft(), "p1"))
	require.Len(t, report.ByType(ConflictUnassigned), 1)

	undoBefore, _ := session.UndoDepth()
	_, err = session.Unseat(ctx, "p1")
	require.NoError(t, err)
	undoAfter, _ := session.UndoDepth()
	require.Equal(t, undoBefore, undoAfter)

	_, err = session.Unseat(ctx, "nobody")
	require.ErrorIs(t, err, ErrUnknownParticipant)
}

func TestSession_FixConflict(t *testing.T) {
	ctx := context.Background()

	t.Run("unassigned", func(t *testing.T) {
		rec := newRecordingMetrics()
		session, _, _ := openSession(t, seattest.RosterSpec{Participants: 4, TableCapacities: []int{2, 2}}, WithMetrics(rec))

		c := session.Conflicts().ByType(ConflictUnassigned)[0]
		fix, report := session.FixConflict(ctx, c)
		require.Len(t, fix.Changes, 4)
		require.Empty(t, report.Conflicts)
		require.Equal(t, fix.Assignments, session.Draft())
		require.Equal(t, []string{"t1"}, tablesOf(fix.Assignments, "p1"))
		require.Equal(t, []string{"t2"}, tablesOf(fix.Assignments, "p2"))
		require.Equal(t, 1, rec.fixes[string(ConflictUnassigned)])
	})

	t.Run("overflow after a capacity cut", func(t *testing.T) {
		session, _, src := openSession(t, seattest.RosterSpec{Participants: 2, TableCapacities: []int{2, 2}})
		seat(t, session, "p1", "t1", "p2", "t1")

		participants, tables := session.Roster()
		tables[0].Capacity = 1
		src.Set(testEvent, source.Roster{Participants: participants, Tables: tables})

		report, err := session.Reload(ctx)
		require.NoError(t, err)
		overflow := report.ByType(ConflictCapacityOverflow)
		require.Len(t, overflow, 1)

		fix, report := session.FixConflict(ctx, overflow[0])
		require.Equal(t, []string{"Moved Participant 2 from Table 1 to Table 2"}, fix.Changes)
		require.Empty(t, report.Conflicts)
	})

	t.Run("stale conflict changes nothing", func(t *testing.T) {
		session, _, _ := openSession(t, seattest.RosterSpec{Participants: 1, TableCapacities: []int{1}})
		stale := session.Conflicts().ByType(ConflictUnassigned)[0]
		seat(t, session, "p1", "t1")

		undoBefore, _ := session.UndoDepth()
		fix, report := session.FixConflict(ctx, stale)
		require.Empty(t, fix.Changes)
		require.Empty(t, report.Conflicts)
		undoAfter, _ := session.UndoDepth()
		require.Equal(t, undoBefore, undoAfter)
	})
}

func TestSession_FixAll(t *testing.T) {
	ctx := context.Background()
	rec := newRecordingMetrics()
	session, _, _ := openSession(t, seattest.RosterSpec{Participants: 4, TableCapacities: []int{2, 2}}, WithMetrics(rec))

	fix, report := session.FixAll(ctx)
	require.Len(t, fix.Changes, 4)
	require.Empty(t, report.Conflicts)
	require.Len(t, session.Draft(), 4)
	require.Equal(t, 1, rec.fixes[fixAllKind])

	undo, _ := session.UndoDepth()
	require.Equal(t, 1, undo)

	_, err := session.Undo(ctx)
	require.NoError(t, err)
	require.Empty(t, session.Draft())

	t.Run("clean draft changes nothing", func(t *testing.T) {
		_, err := session.Redo(ctx)
		require.NoError(t, err)

		fix, report := session.FixAll(ctx)
		require.Empty(t, fix.Changes)
		require.Empty(t, report.Conflicts)
	})
}

func TestSession_Rebalance(t *testing.T) {
	ctx := context.Background()
	session, _, _ := openSession(t, seattest.RosterSpec{Participants: 3, TableCapacities: []int{4, 4}})
	seat(t, session, "p1", "t1", "p2", "t1", "p3", "t1")

	fix, _ := session.Rebalance(ctx, 0)
	require.Len(t, fix.Changes, 1)
	require.Equal(t, []string{"t2"}, tablesOf(session.Draft(), "p1"))

	undoBefore, _ := session.UndoDepth()
	fix, _ = session.Rebalance(ctx, 0)
	require.Empty(t, fix.Changes)
	undoAfter, _ := session.UndoDepth()
	require.Equal(t, undoBefore, undoAfter)
}

func TestSession_UndoRedo(t *testing.T) {
	ctx := context.Background()

	t.Run("empty stacks", func(t *testing.T) {
		session, _, _ := openSession(t, seattest.RosterSpec{Participants: 1, TableCapacities: []int{1}})

		_, err := session.Undo(ctx)
		require.ErrorIs(t, err, ErrNothingToUndo)
		_, err = session.Redo(ctx)
		require.ErrorIs(t, err, ErrNothingToRedo)
	})

	t.Run("walks back and forth", func(t *testing.T) {
		session, _, _ := openSession(t, seattest.RosterSpec{Participants: 1, TableCapacities: []int{1, 1}})
		seat(t, session, "p1", "t1", "p1", "t2")

		_, err := session.Undo(ctx)
		require.NoError(t, err)
		require.Equal(t, []string{"t1"}, tablesOf(session.Draft(), "p1"))

		_, err = session.Undo(ctx)
		require.NoError(t, err)
		require.Empty(t, session.Draft())

		_, err = session.Redo(ctx)
		require.NoError(t, err)
		require.Equal(t, []string{"t1"}, tablesOf(session.Draft(), "p1"))

		undo, redo := session.UndoDepth()
		require.Equal(t, 1, undo)
		require.Equal(t, 1, redo)
	})

	t.Run("new change clears redo", func(t *testing.T) {
		session, _, _ := openSession(t, seattest.RosterSpec{Participants: 2, TableCapacities: []int{2}})
		seat(t, session, "p1", "t1")

		_, err := session.Undo(ctx)
		require.NoError(t, err)
		seat(t, session, "p2", "t1")

		_, err = session.Redo(ctx)
		require.ErrorIs(t, err, ErrNothingToRedo)
	})

	t.Run("undo limit drops the oldest snapshots", func(t *testing.T) {
		participants, tables := seattest.Roster(seattest.RosterSpec{Participants: 1, TableCapacities: []int{1, 1}})
		src := source.NewStatic()
		src.Set(testEvent, source.Roster{Participants: participants, Tables: tables})

		cfg := TestConfig()
		cfg.Session.UndoLimit = 2
		planner, err := NewPlanner(&cfg, src)
		require.NoError(t, err)
		session, err := planner.Session(ctx, testEvent)
		require.NoError(t, err)

		seat(t, session, "p1", "t1", "p1", "t2", "p1", "t1")
		undo, _ := session.UndoDepth()
		require.Equal(t, 2, undo)

		_, err = session.Undo(ctx)
		require.NoError(t, err)
		_, err = session.Undo(ctx)
		require.NoError(t, err)
		require.Equal(t, []string{"t1"}, tablesOf(session.Draft(), "p1"))

		_, err = session.Undo(ctx)
		require.ErrorIs(t, err, ErrNothingToUndo)
	})
}

func TestSession_Commit(t *testing.T) {
	ctx := context.Background()

	t.Run("promotes the draft", func(t *testing.T) {
		rec := newRecordingMetrics()
		session, _, _ := openSession(t, seattest.RosterSpec{Participants: 4, TableCapacities: []int{2, 2}}, WithMetrics(rec))

		result, err := session.ApplyAlgorithm(ctx, AlgorithmVIPSpread)
		require.NoError(t, err)
		require.Len(t, session.Preview().Added, 4)

		v, err := session.Commit(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, int64(1), v.VersionNumber)
		require.Equal(t, "algorithm:vip_spread", v.Source)
		require.Equal(t, "alice", v.AssignedBy)
		require.Equal(t, result.BatchID, v.BatchID)
		require.Len(t, v.Diff.Added, 4)
		require.NotZero(t, v.Fingerprint)

		require.False(t, session.Dirty())
		require.Equal(t, int64(1), session.ConfirmedVersion())
		require.Equal(t, session.Draft(), session.Confirmed())
		require.True(t, session.Preview().Empty())
		require.Equal(t, []string{"algorithm:vip_spread"}, rec.commits)
	})

	t.Run("nothing to commit", func(t *testing.T) {
		session, _, _ := openSession(t, seattest.RosterSpec{Participants: 1, TableCapacities: []int{1}})

		_, err := session.Commit(ctx, "alice")
		require.ErrorIs(t, err, ErrNothingToCommit)

		seat(t, session, "p1", "t1")
		_, err = session.Commit(ctx, "alice")
		require.NoError(t, err)

		_, err = session.Commit(ctx, "alice")
		require.ErrorIs(t, err, ErrNothingToCommit)
	})

	t.Run("source follows the last change", func(t *testing.T) {
		session, _, _ := openSession(t, seattest.RosterSpec{Participants: 2, TableCapacities: []int{2, 2}})

		_, err := session.ApplyAlgorithm(ctx, AlgorithmRoundRobin)
		require.NoError(t, err)
		seat(t, session, "p1", "t2")

		v, err := session.Commit(ctx, "bob")
		require.NoError(t, err)
		require.Equal(t, SourceManual, v.Source)
		require.Empty(t, v.BatchID)
	})

	t.Run("concurrent writer is detected", func(t *testing.T) {
		store := history.NewMemoryStore()
		first, _, _ := openSession(t, seattest.RosterSpec{Participants: 2, TableCapacities: []int{2, 2}}, WithVersionStore(store))
		second, _, _ := openSession(t, seattest.RosterSpec{Participants: 2, TableCapacities: []int{2, 2}}, WithVersionStore(store))

		seat(t, first, "p1", "t1")
		_, err := first.Commit(ctx, "alice")
		require.NoError(t, err)

		seat(t, second, "p2", "t2")
		_, err = second.Commit(ctx, "bob")
		require.ErrorIs(t, err, ErrVersionConflict)
		require.True(t, second.Dirty())

		_, err = second.Reload(ctx)
		require.NoError(t, err)
		require.Equal(t, int64(1), second.ConfirmedVersion())

		v, err := second.Commit(ctx, "bob")
		require.NoError(t, err)
		require.Equal(t, int64(2), v.VersionNumber)
		require.Len(t, v.Diff.Removed, 1)
		require.Len(t, v.Diff.Added, 1)
	})
}

func TestSession_Discard(t *testing.T) {
	ctx := context.Background()
	session, _, _ := openSession(t, seattest.RosterSpec{Participants: 1, TableCapacities: []int{1, 1}})
	seat(t, session, "p1", "t1")
	_, err := session.Commit(ctx, "alice")
	require.NoError(t, err)

	seat(t, session, "p1", "t2")
	require.True(t, session.Dirty())

	session.Discard(ctx)
	require.False(t, session.Dirty())
	require.Equal(t, []string{"t1"}, tablesOf(session.Draft(), "p1"))

	_, err = session.Undo(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"t2"}, tablesOf(session.Draft(), "p1"))
}

func TestSession_Restore(t *testing.T) {
	ctx := context.Background()
	rec := newRecordingMetrics()
	session, _, _ := openSession(t, seattest.RosterSpec{Participants: 1, TableCapacities: []int{1, 1}}, WithMetrics(rec))

	seat(t, session, "p1", "t1")
	_, err := session.Commit(ctx, "alice")
	require.NoError(t, err)
	seat(t, session, "p1", "t2")
	_, err = session.Commit(ctx, "alice")
	require.NoError(t, err)

	_, err = session.Restore(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, []string{"t1"}, tablesOf(session.Draft(), "p1"))
	require.Equal(t, []string{"t2"}, tablesOf(session.Confirmed(), "p1"))

	v, err := session.Commit(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, int64(3), v.VersionNumber)
	require.Equal(t, "restore:1", v.Source)
	require.Equal(t, []Move{{ParticipantID: "p1", FromTableID: "t2", ToTableID: "t1"}}, v.Diff.Moved)

	_, err = session.Restore(ctx, 9)
	require.ErrorIs(t, err, ErrVersionNotFound)
}

func TestSession_ReloadRefreshesVIPStatus(t *testing.T) {
	ctx := context.Background()
	session, _, src := openSession(t, seattest.RosterSpec{Participants: 2, TableCapacities: []int{2}})
	seat(t, session, "p1", "t1")
	require.False(t, session.Draft()[0].IsVIP)

	participants, tables := session.Roster()
	participants[0].IsVIP = true
	tables[0].Name = "Head table"
	src.Set(testEvent, source.Roster{Participants: participants, Tables: tables})

	_, err := session.Reload(ctx)
	require.NoError(t, err)
	draft := session.Draft()
	require.True(t, draft[0].IsVIP)
	require.Equal(t, "Head table", draft[0].TableName)
}

func TestSession_Hooks(t *testing.T) {
	ctx := context.Background()

	var drafts, commits, failures atomic.Int32
	var lastVersion atomic.Int64
	hooks := &Hooks{
		OnDraftChanged: func(_ context.Context, eventID string, _ ConflictReport) error {
			require.Equal(t, testEvent, eventID)
			drafts.Add(1)

			return errors.New("ignored")
		},
		OnCommitted: func(_ context.Context, v Version) error {
			commits.Add(1)
			lastVersion.Store(v.VersionNumber)

			return nil
		},
		OnError: func(_ context.Context, _ error) error {
			failures.Add(1)
			return nil
		},
	}

	store := history.NewMemoryStore()
	session, _, _ := openSession(t, seattest.RosterSpec{Participants: 2, TableCapacities: []int{2}},
		WithHooks(hooks), WithVersionStore(store))

	seat(t, session, "p1", "t1", "p2", "t1")
	require.Equal(t, int32(2), drafts.Load())

	_, err := session.Undo(ctx)
	require.NoError(t, err)
	require.Equal(t, int32(3), drafts.Load())

	_, err = session.Commit(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, int32(1), commits.Load())
	require.Equal(t, int64(1), lastVersion.Load())

	// A second writer takes version 2, so the next commit here conflicts.
	other, _, _ := openSession(t, seattest.RosterSpec{Participants: 2, TableCapacities: []int{2}}, WithVersionStore(store))
	require.Equal(t, int64(1), other.ConfirmedVersion())
	seat(t, other, "p2", "t1")
	_, err = other.Commit(ctx, "bob")
	require.NoError(t, err)
	_, err = other.Commit(ctx, "bob")
	require.ErrorIs(t, err, ErrNothingToCommit)

	seat(t, session, "p2", "t1")
	_, err = session.Commit(ctx, "alice")
	require.ErrorIs(t, err, ErrVersionConflict)
	require.Equal(t, int32(1), failures.Load())
	require.Equal(t, int32(1), commits.Load())
}

func TestSession_KVHistory(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping embedded NATS test in short mode")
	}

	ctx := context.Background()
	_, nc := seattest.StartEmbeddedNATS(t)
	js := seattest.NewJetStream(t, nc)

	cfg := TestConfig()
	store, err := OpenHistory(ctx, js, cfg)
	require.NoError(t, err)

	session, planner, _ := openSession(t, seattest.RosterSpec{Participants: 4, VIPs: 1, TableCapacities: []int{2, 2}, VIPTables: 1},
		WithVersionStore(store))

	_, err = session.ApplyAlgorithm(ctx, AlgorithmVIPSpread)
	require.NoError(t, err)
	v1, err := session.Commit(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, int64(1), v1.VersionNumber)

	_, report := session.Rebalance(ctx, 0)
	require.False(t, report.HasErrors)

	// A fresh store over the same bucket sees the committed history.
	reopened, err := OpenHistory(ctx, js, cfg)
	require.NoError(t, err)
	latest, err := reopened.Latest(ctx, testEvent)
	require.NoError(t, err)
	require.Equal(t, v1.VersionNumber, latest.VersionNumber)
	require.Equal(t, v1.Fingerprint, latest.Fingerprint)

	versions, err := planner.History(ctx, testEvent)
	require.NoError(t, err)
	require.Len(t, versions, 1)
}
