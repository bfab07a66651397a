package metrics

import (
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arloliu/seatplan/types"
)

// conflictTypes lists every conflict type so the current-conflicts gauge
// drops back to zero for types absent from the latest inspection.
var conflictTypes = []types.ConflictType{
	types.ConflictCapacityOverflow,
	types.ConflictDuplicateAssignment,
	types.ConflictUnassigned,
	types.ConflictVIPImbalance,
	types.ConflictGroupScatter,
}

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Collectors are created and registered lazily on first use, so constructing
// a collector that is never used registers nothing.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	// placement
	placementRuns       *prometheus.CounterVec
	placementDuration   *prometheus.HistogramVec
	placementAssigned   *prometheus.CounterVec
	placementUnassigned *prometheus.CounterVec
	validationFailures  *prometheus.CounterVec

	// conflicts
	inspections        prometheus.Counter
	inspectionDuration prometheus.Histogram
	conflictsCurrent   *prometheus.GaugeVec
	fixes              *prometheus.CounterVec
	fixChanges         *prometheus.CounterVec

	// history
	commits     *prometheus.CounterVec
	lastVersion prometheus.Gauge
	diffEntries *prometheus.CounterVec
	kvDuration  *prometheus.HistogramVec
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "seatplan" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "seatplan"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.placementRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "placement",
			Name:      "runs_total",
			Help:      "Total placement runs by algorithm.",
		}, []string{"algorithm"})
		p.placementDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "placement",
			Name:      "duration_seconds",
			Help:      "Duration of placement runs in seconds by algorithm.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8), // 100us .. ~1.6s
		}, []string{"algorithm"})
		p.placementAssigned = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "placement",
			Name:      "assigned_participants_total",
			Help:      "Total participants seated by placement runs.",
		}, []string{"algorithm"})
		p.placementUnassigned = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "placement",
			Name:      "unassigned_participants_total",
			Help:      "Total participants left without a seat by placement runs.",
		}, []string{"algorithm"})
		p.validationFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "placement",
			Name:      "validation_failures_total",
			Help:      "Total placement results rejected by the validator.",
		}, []string{"algorithm"})

		p.inspections = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "conflicts",
			Name:      "inspections_total",
			Help:      "Total inspector passes.",
		})
		p.inspectionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "conflicts",
			Name:      "inspection_duration_seconds",
			Help:      "Duration of inspector passes in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		})
		p.conflictsCurrent = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "conflicts",
			Name:      "current",
			Help:      "Conflicts found by the latest inspection, by type.",
		}, []string{"type"})
		p.fixes = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "conflicts",
			Name:      "fixes_total",
			Help:      "Total fixer and rebalancer invocations by kind.",
		}, []string{"kind"})
		p.fixChanges = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "conflicts",
			Name:      "fix_changes_total",
			Help:      "Total change lines produced by fixes, by kind.",
		}, []string{"kind"})

		p.commits = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "history",
			Name:      "commits_total",
			Help:      "Total committed versions by source.",
		}, []string{"source"})
		p.lastVersion = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "history",
			Name:      "last_version",
			Help:      "Version number of the most recent commit.",
		})
		p.diffEntries = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "history",
			Name:      "diff_entries_total",
			Help:      "Total committed diff entries by kind (added, removed, moved).",
		}, []string{"kind"})
		p.kvDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "history",
			Name:      "kv_operation_duration_seconds",
			Help:      "Latency of version store KV operations in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 10), // 1ms .. ~0.5s
		}, []string{"operation"})

		p.reg.MustRegister(
			p.placementRuns,
			p.placementDuration,
			p.placementAssigned,
			p.placementUnassigned,
			p.validationFailures,
			p.inspections,
			p.inspectionDuration,
			p.conflictsCurrent,
			p.fixes,
			p.fixChanges,
			p.commits,
			p.lastVersion,
			p.diffEntries,
			p.kvDuration,
		)
	})
}

// RecordPlacement records one completed placement run.
func (p *PrometheusCollector) RecordPlacement(algorithm string, duration float64, assigned, unassigned int) {
	p.ensureRegistered()
	p.placementRuns.WithLabelValues(algorithm).Inc()
	p.placementDuration.WithLabelValues(algorithm).Observe(duration)
	p.placementAssigned.WithLabelValues(algorithm).Add(float64(assigned))
	p.placementUnassigned.WithLabelValues(algorithm).Add(float64(unassigned))
}

// RecordValidationFailure records a result rejected by the validator.
func (p *PrometheusCollector) RecordValidationFailure(algorithm string) {
	p.ensureRegistered()
	p.validationFailures.WithLabelValues(algorithm).Inc()
}

// RecordInspection records one inspector pass and publishes its conflict counts.
func (p *PrometheusCollector) RecordInspection(duration float64, counts map[types.ConflictType]int) {
	p.ensureRegistered()
	p.inspections.Inc()
	p.inspectionDuration.Observe(duration)
	for _, t := range conflictTypes {
		p.conflictsCurrent.WithLabelValues(string(t)).Set(float64(counts[t]))
	}
}

// RecordFix records a fixer or rebalancer invocation.
func (p *PrometheusCollector) RecordFix(kind string, changes int) {
	p.ensureRegistered()
	p.fixes.WithLabelValues(kind).Inc()
	p.fixChanges.WithLabelValues(kind).Add(float64(changes))
}

// RecordCommit records a committed version.
//
// Restore sources carry the restored version number ("restore:3"); only the
// "restore" prefix is used as label to keep cardinality bounded.
func (p *PrometheusCollector) RecordCommit(source string, version int64, added, removed, moved int) {
	p.ensureRegistered()
	if prefix, _, ok := strings.Cut(source, ":"); ok && prefix == types.SourceRestore {
		source = prefix
	}
	p.commits.WithLabelValues(source).Inc()
	p.lastVersion.Set(float64(version))
	p.diffEntries.WithLabelValues("added").Add(float64(added))
	p.diffEntries.WithLabelValues("removed").Add(float64(removed))
	p.diffEntries.WithLabelValues("moved").Add(float64(moved))
}

// RecordKVOperationDuration records NATS KV operation latency.
func (p *PrometheusCollector) RecordKVOperationDuration(operation string, duration float64) {
	p.ensureRegistered()
	p.kvDuration.WithLabelValues(operation).Observe(duration)
}
