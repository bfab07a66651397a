package seatplan

// Option configures a Planner with optional dependencies.
type Option func(*plannerOptions)

// plannerOptions holds optional Planner configuration.
type plannerOptions struct {
	hooks   *Hooks
	metrics MetricsCollector
	logger  Logger
	store   VersionStore
}

// WithHooks sets draft and commit hooks.
//
// Hooks run synchronously on the editing goroutine; returned errors are logged
// and reported to OnError but never undo the operation.
//
// Parameters:
//   - hooks: Hooks structure with callback functions (nil callbacks are skipped)
//
// Returns:
//   - Option: Functional option for NewPlanner
//
// Example:
//
//	hooks := &seatplan.Hooks{
//	    OnCommitted: func(ctx context.Context, v seatplan.Version) error {
//	        return notifyFrontDesk(v.EventID, v.Diff)
//	    },
//	}
//	planner, err := seatplan.NewPlanner(&cfg, src, seatplan.WithHooks(hooks))
func WithHooks(hooks *Hooks) Option {
	return func(o *plannerOptions) {
		o.hooks = hooks
	}
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - metrics: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for NewPlanner
//
// Example:
//
//	collector := seatplan.NewPrometheusMetrics(prometheus.DefaultRegisterer, "")
//	planner, err := seatplan.NewPlanner(&cfg, src, seatplan.WithMetrics(collector))
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *plannerOptions) {
		o.metrics = metrics
	}
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation (see NewZapLogger and NewSlogLogger)
//
// Returns:
//   - Option: Functional option for NewPlanner
//
// Example:
//
//	logger := seatplan.NewZapLogger(zap.NewExample())
//	planner, err := seatplan.NewPlanner(&cfg, src, seatplan.WithLogger(logger))
func WithLogger(logger Logger) Option {
	return func(o *plannerOptions) {
		o.logger = logger
	}
}

// WithVersionStore sets the store that receives committed versions.
//
// Without this option the Planner keeps history in memory only.
//
// Parameters:
//   - store: VersionStore implementation (history.MemoryStore, history.KVStore, ...)
//
// Returns:
//   - Option: Functional option for NewPlanner
//
// Example:
//
//	store, err := seatplan.OpenHistory(ctx, js, cfg)
//	planner, err := seatplan.NewPlanner(&cfg, src, seatplan.WithVersionStore(store))
func WithVersionStore(store VersionStore) Option {
	return func(o *plannerOptions) {
		o.store = store
	}
}
