package history

import (
	"fmt"
	"slices"
	"time"

	"github.com/arloliu/seatplan/internal/hash"
	"github.com/arloliu/seatplan/internal/logging"
	"github.com/arloliu/seatplan/internal/metrics"
	"github.com/arloliu/seatplan/types"
)

// Option configures a store.
type Option func(*options)

type options struct {
	logger  types.Logger
	metrics types.HistoryMetrics
	now     func() time.Time
	timeout time.Duration
}

func newOptions(opts []Option) options {
	o := options{
		logger:  logging.NewNop(),
		metrics: metrics.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithLogger sets the store logger.
func WithLogger(logger types.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics sets the collector receiving KV operation latencies.
func WithMetrics(m types.HistoryMetrics) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithClock sets the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithOperationTimeout bounds every KV operation. Zero disables the bound.
func WithOperationTimeout(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.timeout = d
		}
	}
}

// nextVersion completes v as the successor of head.
//
// head.VersionNumber == 0 means the event has no history. A caller-set
// v.VersionNumber acts as an optimistic expectation and must equal the next
// number.
func nextVersion(head, v types.Version, now time.Time) (types.Version, error) {
	next := head.VersionNumber + 1
	if v.VersionNumber != 0 && v.VersionNumber != next {
		return types.Version{}, fmt.Errorf("%w: event %s expected version %d, next is %d",
			types.ErrVersionConflict, v.EventID, v.VersionNumber, next)
	}

	out := cloneVersion(v)
	out.VersionNumber = next
	if out.CreatedAt.IsZero() {
		out.CreatedAt = now.UTC()
	}
	if out.Assignments == nil {
		out.Assignments = []types.Assignment{}
	}
	out.Fingerprint = hash.Fingerprint(out.Assignments)
	out.Diff = Diff(head.Assignments, out.Assignments)

	return out, nil
}

func cloneVersion(v types.Version) types.Version {
	out := v
	out.Assignments = types.CloneAssignments(v.Assignments)
	out.Diff = types.Diff{
		Added:   types.CloneAssignments(v.Diff.Added),
		Removed: types.CloneAssignments(v.Diff.Removed),
		Moved:   slices.Clone(v.Diff.Moved),
	}

	return out
}
