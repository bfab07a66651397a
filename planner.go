package seatplan

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v4"

	"github.com/arloliu/seatplan/conflict"
	"github.com/arloliu/seatplan/history"
	"github.com/arloliu/seatplan/internal/hooks"
	"github.com/arloliu/seatplan/internal/logging"
	"github.com/arloliu/seatplan/internal/metrics"
	"github.com/arloliu/seatplan/strategy"
	"github.com/arloliu/seatplan/types"
	"github.com/arloliu/seatplan/validate"
)

// Planner is the entry point for seating events.
//
// Planner runs placement algorithms behind the validation gate and keeps one
// editing Session per event. It handles:
//   - Loading rosters from the RosterSource
//   - Running an algorithm and rejecting results the validator finds invalid
//   - Opening, sharing and closing per-event sessions
//   - Reading committed history from the VersionStore
//
// Thread Safety:
//   - All public methods are safe for concurrent use
//   - Each Session serializes its own edits
//
// Example:
//
//	planner, err := seatplan.NewPlanner(&cfg, src, seatplan.WithVersionStore(store))
//	session, err := planner.Session(ctx, "gala-2025")
//	report, err := session.ApplyAlgorithm(ctx, seatplan.AlgorithmVIPSpread)
//	version, err := session.Commit(ctx, "alice@example.com")
type Planner struct {
	cfg    Config
	source RosterSource
	store  VersionStore

	hooks   Hooks
	metrics MetricsCollector
	logger  Logger

	inspector  *conflict.Inspector
	fixer      *conflict.Fixer
	rebalancer *conflict.Rebalancer

	sessions *xsync.Map[string, *Session]
}

// NewPlanner creates a planner.
//
// Parameters:
//   - cfg: Configuration; missing values are filled with defaults (modified in place)
//   - source: Roster source for participants and tables
//   - opts: Optional logger, metrics, hooks and version store
//
// Returns:
//   - *Planner: Ready planner
//   - error: ErrInvalidConfig or ErrRosterSourceRequired
func NewPlanner(cfg *Config, source RosterSource, opts ...Option) (*Planner, error) {
	if cfg == nil {
		return nil, ErrInvalidConfig
	}
	if source == nil {
		return nil, ErrRosterSourceRequired
	}

	SetDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	options := &plannerOptions{}
	for _, opt := range opts {
		opt(options)
	}

	// Provide safe defaults for optional dependencies to avoid nil checks everywhere
	metricsCollector := options.metrics
	if metricsCollector == nil {
		metricsCollector = metrics.NewNop()
	}

	loggerInstance := options.logger
	if loggerInstance == nil {
		loggerInstance = logging.NewNop()
	}

	cfg.ValidateWithWarnings(loggerInstance)

	store := options.store
	if store == nil {
		store = history.NewMemoryStore(history.WithLogger(loggerInstance), history.WithMetrics(metricsCollector))
	}

	return &Planner{
		cfg:        *cfg,
		source:     source,
		store:      store,
		hooks:      hooks.Complete(options.hooks),
		metrics:    metricsCollector,
		logger:     loggerInstance,
		inspector:  conflict.NewInspector(cfg.inspectorOptions()...),
		fixer:      conflict.NewFixer(),
		rebalancer: conflict.NewRebalancer(conflict.WithMaxIterations(cfg.Rebalance.MaxIterations)),
		sessions:   xsync.NewMap[string, *Session](),
	}, nil
}

// Config returns the effective configuration.
func (p *Planner) Config() Config {
	return p.cfg
}

// Run executes one algorithm over the event's roster without touching any session.
//
// The result passes through the validator. Results with duplicate seats,
// overfilled tables, unknown IDs or tables of non-positive capacity are
// rejected with ErrInvalidResult. Participants left unseated for lack of
// capacity are not a rejection; they show up in the summary.
//
// Parameters:
//   - ctx: Context for roster loading
//   - eventID: Event to seat
//   - alg: Algorithm to run; empty uses Config.DefaultAlgorithm
//
// Returns:
//   - AssignmentResult: Validated result
//   - error: ErrEventIDRequired, ErrUnsupportedAlgorithm, ErrInvalidResult or a roster error
func (p *Planner) Run(ctx context.Context, eventID string, alg Algorithm) (AssignmentResult, error) {
	if eventID == "" {
		return AssignmentResult{}, ErrEventIDRequired
	}

	participants, tables, err := p.loadRoster(ctx, eventID)
	if err != nil {
		return AssignmentResult{}, err
	}

	return p.runAlgorithm(eventID, alg, participants, tables)
}

// runAlgorithm runs alg and applies the validation gate.
func (p *Planner) runAlgorithm(eventID string, alg Algorithm, participants []Participant, tables []Table) (AssignmentResult, error) {
	if alg == "" {
		alg = p.cfg.DefaultAlgorithm
	}

	strat, err := strategy.New(alg)
	if err != nil {
		return AssignmentResult{}, err
	}

	start := time.Now()
	result, err := strat.Assign(types.AssignmentOptions{EventID: eventID, BatchID: uuid.NewString()}, participants, tables)
	if err != nil {
		return AssignmentResult{}, fmt.Errorf("failed to run %s: %w", alg, err)
	}
	duration := time.Since(start).Seconds()

	check := validate.Check(participants, tables, result.Assignments)
	if check.Fatal() {
		p.metrics.RecordValidationFailure(string(alg))
		p.logger.Error("algorithm result rejected",
			"event_id", eventID,
			"algorithm", alg,
			"batch_id", result.BatchID,
			"violations", len(check.Violations))

		return AssignmentResult{}, fmt.Errorf("%w: %s", ErrInvalidResult, strings.Join(check.Errors, "; "))
	}

	p.metrics.RecordPlacement(string(alg), duration, result.Summary.AssignedCount, result.Summary.UnassignedCount)
	if result.Summary.UnassignedCount > 0 {
		p.logger.Warn("not every participant could be seated",
			"event_id", eventID,
			"algorithm", alg,
			"unassigned", result.Summary.UnassignedCount)
	}
	p.logger.Debug("algorithm completed",
		"event_id", eventID,
		"algorithm", alg,
		"batch_id", result.BatchID,
		"assigned", result.Summary.AssignedCount,
		"duration_s", duration)

	return result, nil
}

// Session returns the editing session of an event, opening it on first use.
//
// A new session loads the roster and takes the latest stored version as its
// confirmed seating (empty when the event has no history). Concurrent callers
// for the same event receive the same session.
//
// Parameters:
//   - ctx: Context for roster and history loading
//   - eventID: Event to edit
//
// Returns:
//   - *Session: Shared session of the event
//   - error: ErrEventIDRequired, roster or store error
func (p *Planner) Session(ctx context.Context, eventID string) (*Session, error) {
	if eventID == "" {
		return nil, ErrEventIDRequired
	}
	if s, ok := p.sessions.Load(eventID); ok {
		return s, nil
	}

	s, err := p.openSession(ctx, eventID)
	if err != nil {
		return nil, err
	}

	actual, loaded := p.sessions.LoadOrStore(eventID, s)
	if !loaded {
		p.logger.Info("session opened",
			"event_id", eventID,
			"confirmed_version", s.confirmedVersion,
			"participants", len(s.participants),
			"tables", len(s.tables))
	}

	return actual, nil
}

// CloseSession drops the session of an event, discarding its draft and undo history.
//
// Returns:
//   - bool: true if a session was open
func (p *Planner) CloseSession(eventID string) bool {
	_, ok := p.sessions.LoadAndDelete(eventID)
	if ok {
		p.logger.Info("session closed", "event_id", eventID)
	}

	return ok
}

// OpenSessions returns the number of open sessions.
func (p *Planner) OpenSessions() int {
	return p.sessions.Size()
}

// History returns every committed version of an event in ascending order.
func (p *Planner) History(ctx context.Context, eventID string) ([]Version, error) {
	if eventID == "" {
		return nil, ErrEventIDRequired
	}

	versions, err := p.store.List(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}

	return versions, nil
}

func (p *Planner) openSession(ctx context.Context, eventID string) (*Session, error) {
	participants, tables, err := p.loadRoster(ctx, eventID)
	if err != nil {
		return nil, err
	}

	latest, err := p.store.Latest(ctx, eventID)
	if err != nil && !errors.Is(err, ErrVersionNotFound) {
		return nil, fmt.Errorf("failed to load latest version: %w", err)
	}

	return newSession(p, eventID, participants, tables, latest), nil
}

func (p *Planner) loadRoster(ctx context.Context, eventID string) ([]Participant, []Table, error) {
	participants, err := p.source.ListParticipants(ctx, eventID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list participants: %w", err)
	}

	tables, err := p.source.ListTables(ctx, eventID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list tables: %w", err)
	}

	return participants, tables, nil
}

// reportError logs err and forwards it to the OnError hook.
func (p *Planner) reportError(ctx context.Context, logger Logger, err error) {
	logger.Error("seating operation failed", "error", err)
	if hookErr := p.hooks.OnError(ctx, err); hookErr != nil {
		logger.Warn("OnError hook failed", "error", hookErr)
	}
}
