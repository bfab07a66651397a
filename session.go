package seatplan

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/arloliu/seatplan/history"
	"github.com/arloliu/seatplan/internal/hash"
	"github.com/arloliu/seatplan/internal/logging"
	"github.com/arloliu/seatplan/internal/roster"
	"github.com/arloliu/seatplan/types"
)

// fixAllKind is the metrics label of FixAll.
const fixAllKind = "all"

// draftState is one undoable state of the draft plane.
type draftState struct {
	assignments []Assignment
	source      string
	batchID     string
}

// Session edits the seating of one event.
//
// A session holds two planes: the confirmed seating (the latest committed
// version) and a draft that every editing method changes. The draft may hold
// conflicts; the conflict report is recomputed after every change. Commit
// promotes the draft and appends a version record to the store.
//
// Every draft change is undoable. Undo and redo keep full snapshots, bounded
// by Config.Session.UndoLimit.
//
// Thread Safety:
//   - All methods are safe for concurrent use; edits are serialized
//   - Hooks run after the session lock is released
type Session struct {
	planner *Planner
	eventID string
	logger  Logger

	mu               sync.Mutex
	participants     []Participant
	tables           []Table
	idx              *roster.Index
	confirmed        []Assignment
	confirmedVersion int64
	draft            draftState
	undo             []draftState
	redo             []draftState
	report           ConflictReport
}

func newSession(p *Planner, eventID string, participants []Participant, tables []Table, latest Version) *Session {
	s := &Session{
		planner:          p,
		eventID:          eventID,
		logger:           logging.With(p.logger, "event_id", eventID),
		participants:     participants,
		tables:           tables,
		idx:              roster.New(participants, tables),
		confirmedVersion: latest.VersionNumber,
	}
	s.confirmed = s.idx.Refresh(latest.Assignments)
	s.draft = draftState{assignments: types.CloneAssignments(s.confirmed), source: latest.Source, batchID: latest.BatchID}
	s.inspectLocked()

	return s
}

// EventID returns the event the session edits.
func (s *Session) EventID() string {
	return s.eventID
}

// Draft returns a copy of the draft assignments.
func (s *Session) Draft() []Assignment {
	s.mu.Lock()
	defer s.mu.Unlock()

	return types.CloneAssignments(s.draft.assignments)
}

// Confirmed returns a copy of the confirmed assignments.
func (s *Session) Confirmed() []Assignment {
	s.mu.Lock()
	defer s.mu.Unlock()

	return types.CloneAssignments(s.confirmed)
}

// ConfirmedVersion returns the version number of the confirmed seating (0 before the first commit).
func (s *Session) ConfirmedVersion() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.confirmedVersion
}

// Dirty reports whether the draft differs from the confirmed seating.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return !hash.Equal(s.draft.assignments, s.confirmed)
}

// Roster returns copies of the participants and tables the session works with.
func (s *Session) Roster() ([]Participant, []Table) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.participants), slices.Clone(s.tables)
}

// Conflicts returns the conflict report of the current draft.
func (s *Session) Conflicts() ConflictReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.report
}

// UndoDepth returns how many undo and redo steps are available.
func (s *Session) UndoDepth() (undo, redo int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.undo), len(s.redo)
}

// ApplyAlgorithm replaces the draft with a fresh algorithm run.
//
// The run goes through the same validation gate as Planner.Run; a rejected
// result leaves the draft untouched.
//
// Parameters:
//   - ctx: Context passed to hooks
//   - alg: Algorithm to run; empty uses Config.DefaultAlgorithm
//
// Returns:
//   - AssignmentResult: The validated result now held by the draft
//   - error: ErrUnsupportedAlgorithm or ErrInvalidResult
func (s *Session) ApplyAlgorithm(ctx context.Context, alg Algorithm) (AssignmentResult, error) {
	s.mu.Lock()
	result, err := s.planner.runAlgorithm(s.eventID, alg, s.participants, s.tables)
	if err != nil {
		s.mu.Unlock()
		return AssignmentResult{}, err
	}
	report := s.applyLocked(result.Assignments, result.Algorithm.Source(), result.BatchID)
	s.mu.Unlock()

	s.logger.Info("algorithm applied to draft",
		"algorithm", result.Algorithm,
		"batch_id", result.BatchID,
		"assigned", result.Summary.AssignedCount,
		"unassigned", result.Summary.UnassignedCount)
	s.draftChanged(ctx, report)

	return result, nil
}

// Move seats a participant at a table.
//
// An unseated participant gets a new assignment. A seated participant has
// their first assignment moved; further duplicate seats are left for the
// duplicate_assignment fix. Moving a participant to the table they already
// sit at changes nothing.
//
// Parameters:
//   - ctx: Context passed to hooks
//   - participantID: Participant to seat
//   - tableID: Target table
//
// Returns:
//   - ConflictReport: Report of the resulting draft
//   - error: ErrUnknownParticipant, ErrUnknownTable or ErrTableFull
func (s *Session) Move(ctx context.Context, participantID, tableID string) (ConflictReport, error) {
	s.mu.Lock()

	if _, ok := s.idx.Participant(participantID); !ok {
		s.mu.Unlock()
		return ConflictReport{}, fmt.Errorf("%w: %s", ErrUnknownParticipant, participantID)
	}
	table, ok := s.idx.Table(tableID)
	if !ok {
		s.mu.Unlock()
		return ConflictReport{}, fmt.Errorf("%w: %s", ErrUnknownTable, tableID)
	}

	current := s.draft.assignments
	first := slices.IndexFunc(current, func(a Assignment) bool { return a.ParticipantID == participantID })
	if first >= 0 && current[first].TableID == tableID {
		report := s.report
		s.mu.Unlock()

		return report, nil
	}

	seated := 0
	for _, a := range current {
		if a.TableID == tableID {
			seated++
		}
	}
	if seated >= table.Capacity {
		s.mu.Unlock()
		return ConflictReport{}, fmt.Errorf("%w: %s has %d of %d seats taken", ErrTableFull, tableID, seated, table.Capacity)
	}

	next := types.CloneAssignments(current)
	from := ""
	if first >= 0 {
		from = next[first].TableID
		next[first] = s.idx.Seat(participantID, tableID)
	} else {
		next = append(next, s.idx.Seat(participantID, tableID))
	}
	report := s.applyLocked(next, SourceManual, "")
	s.mu.Unlock()

	s.logger.Debug("participant moved", "participant_id", participantID, "from", from, "to", tableID)
	s.draftChanged(ctx, report)

	return report, nil
}

// Unseat removes every assignment of a participant from the draft.
//
// Rows of participants no longer in the roster can be removed too. Unseating
// a known participant without a seat changes nothing.
//
// Returns:
//   - ConflictReport: Report of the resulting draft
//   - error: ErrUnknownParticipant if the ID is neither in the roster nor seated
func (s *Session) Unseat(ctx context.Context, participantID string) (ConflictReport, error) {
	s.mu.Lock()

	next := slices.DeleteFunc(types.CloneAssignments(s.draft.assignments), func(a Assignment) bool {
		return a.ParticipantID == participantID
	})
	if len(next) == len(s.draft.assignments) {
		report := s.report
		_, known := s.idx.Participant(participantID)
		s.mu.Unlock()
		if !known {
			return ConflictReport{}, fmt.Errorf("%w: %s", ErrUnknownParticipant, participantID)
		}

		return report, nil
	}
	report := s.applyLocked(next, SourceManual, "")
	s.mu.Unlock()

	s.logger.Debug("participant unseated", "participant_id", participantID)
	s.draftChanged(ctx, report)

	return report, nil
}

// Inspect re-runs the conflict inspector over the draft.
//
// Editing methods already keep the report current; Inspect is for callers
// that changed inspector-relevant roster data through Reload.
func (s *Session) Inspect() ConflictReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inspectLocked()
}

// FixConflict applies the smart fix for one conflict to the draft.
//
// The fix is computed from the current draft, so a conflict taken from an
// older report is still safe to pass. A fix that changes nothing leaves the
// draft and the undo stack untouched.
//
// Parameters:
//   - ctx: Context passed to hooks
//   - c: Conflict to fix, usually taken from Conflicts()
//
// Returns:
//   - FixResult: The new draft and the change log
//   - ConflictReport: Report of the resulting draft
func (s *Session) FixConflict(ctx context.Context, c Conflict) (FixResult, ConflictReport) {
	s.mu.Lock()
	fix := s.planner.fixer.Fix(c, s.draft.assignments, s.tables, s.participants)
	s.planner.metrics.RecordFix(string(c.Type), len(fix.Changes))

	if hash.Equal(fix.Assignments, s.draft.assignments) {
		report := s.report
		s.mu.Unlock()

		return fix, report
	}
	report := s.applyLocked(fix.Assignments, SourceSmartFix, "")
	s.mu.Unlock()

	s.logger.Info("conflict fixed", "type", c.Type, "changes", len(fix.Changes))
	s.draftChanged(ctx, report)

	return fix, report
}

// FixAll repeatedly inspects the draft and fixes what it finds.
//
// Each pass fixes every error-severity conflict, or every warning when no
// error is left. Passes stop when the draft is clean, when a pass changes
// nothing, or after Config.Session.MaxFixPasses passes. The whole run is a
// single undo step.
//
// Returns:
//   - FixResult: The new draft and the change log of all passes
//   - ConflictReport: Report of the resulting draft
func (s *Session) FixAll(ctx context.Context) (FixResult, ConflictReport) {
	s.mu.Lock()

	work := s.draft.assignments
	changes := []string{}
	for range s.planner.cfg.Session.MaxFixPasses {
		report := s.planner.inspector.Inspect(work, s.tables, s.participants)
		batch := report.Errors()
		if len(batch) == 0 {
			batch = report.Warnings()
		}
		if len(batch) == 0 {
			break
		}

		before := hash.Fingerprint(work)
		for _, c := range batch {
			fix := s.planner.fixer.Fix(c, work, s.tables, s.participants)
			work = fix.Assignments
			changes = append(changes, fix.Changes...)
		}
		if hash.Fingerprint(work) == before {
			break
		}
	}
	s.planner.metrics.RecordFix(fixAllKind, len(changes))

	fix := FixResult{Assignments: types.CloneAssignments(work), Changes: changes}
	if hash.Equal(work, s.draft.assignments) {
		report := s.report
		s.mu.Unlock()

		return fix, report
	}
	report := s.applyLocked(work, SourceSmartFix, "")
	s.mu.Unlock()

	s.logger.Info("conflicts fixed", "changes", len(changes), "remaining", len(report.Conflicts))
	s.draftChanged(ctx, report)

	return fix, report
}

// Rebalance levels table occupancy in the draft.
//
// Parameters:
//   - ctx: Context passed to hooks
//   - maxIterations: Move budget; <= 0 uses Config.Rebalance.MaxIterations
//
// Returns:
//   - FixResult: The new draft and one change line per move
//   - ConflictReport: Report of the resulting draft
func (s *Session) Rebalance(ctx context.Context, maxIterations int) (FixResult, ConflictReport) {
	s.mu.Lock()
	fix := s.planner.rebalancer.Rebalance(s.draft.assignments, s.tables, s.participants, maxIterations)
	s.planner.metrics.RecordFix(types.SourceRebalance, len(fix.Changes))

	if len(fix.Changes) == 0 {
		report := s.report
		s.mu.Unlock()

		return fix, report
	}
	report := s.applyLocked(fix.Assignments, SourceRebalance, "")
	s.mu.Unlock()

	s.logger.Info("draft rebalanced", "moves", len(fix.Changes))
	s.draftChanged(ctx, report)

	return fix, report
}

// Undo restores the draft as it was before the last change.
//
// Returns:
//   - ConflictReport: Report of the restored draft
//   - error: ErrNothingToUndo when the undo stack is empty
func (s *Session) Undo(ctx context.Context) (ConflictReport, error) {
	s.mu.Lock()
	if len(s.undo) == 0 {
		s.mu.Unlock()
		return ConflictReport{}, ErrNothingToUndo
	}

	prev := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = append(s.redo, s.draft)
	prev.assignments = s.idx.Refresh(prev.assignments)
	s.draft = prev
	report := s.inspectLocked()
	s.mu.Unlock()

	s.draftChanged(ctx, report)

	return report, nil
}

// Redo re-applies the change most recently undone.
//
// Returns:
//   - ConflictReport: Report of the restored draft
//   - error: ErrNothingToRedo when nothing was undone since the last change
func (s *Session) Redo(ctx context.Context) (ConflictReport, error) {
	s.mu.Lock()
	if len(s.redo) == 0 {
		s.mu.Unlock()
		return ConflictReport{}, ErrNothingToRedo
	}

	next := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.pushUndoLocked(s.draft)
	next.assignments = s.idx.Refresh(next.assignments)
	s.draft = next
	report := s.inspectLocked()
	s.mu.Unlock()

	s.draftChanged(ctx, report)

	return report, nil
}

// Preview returns the diff that committing the draft would record.
func (s *Session) Preview() Diff {
	s.mu.Lock()
	defer s.mu.Unlock()

	return history.Diff(s.confirmed, s.draft.assignments)
}

// Discard resets the draft to the confirmed seating. Discard is undoable.
func (s *Session) Discard(ctx context.Context) ConflictReport {
	s.mu.Lock()
	if hash.Equal(s.draft.assignments, s.confirmed) {
		report := s.report
		s.mu.Unlock()

		return report
	}
	report := s.applyLocked(s.confirmed, "", "")
	s.mu.Unlock()

	s.logger.Debug("draft discarded")
	s.draftChanged(ctx, report)

	return report
}

// Commit promotes the draft to the confirmed seating.
//
// The draft is appended to the version store as the next version, tagged
// with the source of the last draft change and the given actor. The store
// rejects the commit with ErrVersionConflict when another writer committed
// since this session last loaded the confirmed seating; Reload picks up
// that version.
//
// Parameters:
//   - ctx: Context for the store write
//   - actor: Who commits, stored as AssignedBy
//
// Returns:
//   - Version: The stored version record, including its diff
//   - error: ErrNothingToCommit, ErrVersionConflict or a store error
func (s *Session) Commit(ctx context.Context, actor string) (Version, error) {
	s.mu.Lock()
	if hash.Equal(s.draft.assignments, s.confirmed) {
		s.mu.Unlock()
		return Version{}, ErrNothingToCommit
	}

	source := s.draft.source
	if source == "" {
		source = SourceManual
	}

	start := time.Now()
	stored, err := s.planner.store.Append(ctx, Version{
		EventID:       s.eventID,
		VersionNumber: s.confirmedVersion + 1,
		Source:        source,
		AssignedBy:    actor,
		BatchID:       s.draft.batchID,
		Assignments:   s.draft.assignments,
	})
	if err != nil {
		s.mu.Unlock()
		err = fmt.Errorf("failed to commit draft: %w", err)
		s.planner.reportError(ctx, s.logger, err)

		return Version{}, err
	}

	s.confirmed = types.CloneAssignments(stored.Assignments)
	s.confirmedVersion = stored.VersionNumber
	s.mu.Unlock()

	s.planner.metrics.RecordCommit(stored.Source, stored.VersionNumber,
		len(stored.Diff.Added), len(stored.Diff.Removed), len(stored.Diff.Moved))
	s.logger.Info("draft committed",
		"version", stored.VersionNumber,
		"source", stored.Source,
		"assigned_by", actor,
		"added", len(stored.Diff.Added),
		"removed", len(stored.Diff.Removed),
		"moved", len(stored.Diff.Moved),
		"duration", time.Since(start))

	if hookErr := s.planner.hooks.OnCommitted(ctx, stored); hookErr != nil {
		s.logger.Warn("OnCommitted hook failed", "version", stored.VersionNumber, "error", hookErr)
	}

	return stored, nil
}

// Restore loads a stored version into the draft.
//
// The confirmed seating is unchanged until Commit, which then records the
// version with source "restore:<n>". Restore is undoable.
//
// Parameters:
//   - ctx: Context for the store read
//   - versionNumber: Version to restore
//
// Returns:
//   - ConflictReport: Report of the restored draft against the current roster
//   - error: ErrVersionNotFound or a store error
func (s *Session) Restore(ctx context.Context, versionNumber int64) (ConflictReport, error) {
	v, err := s.planner.store.Get(ctx, s.eventID, versionNumber)
	if err != nil {
		if !errors.Is(err, ErrVersionNotFound) {
			s.planner.reportError(ctx, s.logger, err)
		}

		return ConflictReport{}, fmt.Errorf("failed to restore version %d: %w", versionNumber, err)
	}

	s.mu.Lock()
	report := s.applyLocked(v.Assignments, SourceRestore+":"+strconv.FormatInt(versionNumber, 10), v.BatchID)
	s.mu.Unlock()

	s.logger.Info("version restored into draft", "version", versionNumber)
	s.draftChanged(ctx, report)

	return report, nil
}

// Reload re-reads the roster and the latest stored version.
//
// The draft keeps its rows; their table names and VIP flags are refreshed
// from the new roster and the conflict report is recomputed. Reload is not
// an undo step.
//
// Returns:
//   - ConflictReport: Report of the draft against the new roster
//   - error: Roster or store error
func (s *Session) Reload(ctx context.Context) (ConflictReport, error) {
	participants, tables, err := s.planner.loadRoster(ctx, s.eventID)
	if err != nil {
		s.planner.reportError(ctx, s.logger, err)
		return ConflictReport{}, err
	}

	latest, err := s.planner.store.Latest(ctx, s.eventID)
	if err != nil && !errors.Is(err, ErrVersionNotFound) {
		err = fmt.Errorf("failed to load latest version: %w", err)
		s.planner.reportError(ctx, s.logger, err)

		return ConflictReport{}, err
	}

	s.mu.Lock()
	s.participants = participants
	s.tables = tables
	s.idx = roster.New(participants, tables)
	if latest.VersionNumber > s.confirmedVersion {
		s.confirmedVersion = latest.VersionNumber
		s.confirmed = latest.Assignments
	}
	s.confirmed = s.idx.Refresh(s.confirmed)
	s.draft.assignments = s.idx.Refresh(s.draft.assignments)
	report := s.inspectLocked()
	confirmedVersion := s.confirmedVersion
	s.mu.Unlock()

	s.logger.Info("session reloaded",
		"participants", len(participants),
		"tables", len(tables),
		"confirmed_version", confirmedVersion)
	s.draftChanged(ctx, report)

	return report, nil
}

// applyLocked installs next as the draft, recording the previous draft for undo.
func (s *Session) applyLocked(next []Assignment, source, batchID string) ConflictReport {
	s.pushUndoLocked(s.draft)
	s.redo = nil
	s.draft = draftState{
		assignments: s.idx.Refresh(next),
		source:      source,
		batchID:     batchID,
	}

	return s.inspectLocked()
}

func (s *Session) pushUndoLocked(d draftState) {
	s.undo = append(s.undo, d)
	if over := len(s.undo) - s.planner.cfg.Session.UndoLimit; over > 0 {
		s.undo = slices.Delete(s.undo, 0, over)
	}
}

func (s *Session) inspectLocked() ConflictReport {
	start := time.Now()
	s.report = s.planner.inspector.Inspect(s.draft.assignments, s.tables, s.participants)
	s.planner.metrics.RecordInspection(time.Since(start).Seconds(), s.report.Counts())

	return s.report
}

// draftChanged runs the OnDraftChanged hook. It must be called without the lock held.
func (s *Session) draftChanged(ctx context.Context, report ConflictReport) {
	if err := s.planner.hooks.OnDraftChanged(ctx, s.eventID, report); err != nil {
		s.logger.Warn("OnDraftChanged hook failed", "error", err)
	}
}
