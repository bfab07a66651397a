package types

// MetricsCollector defines methods for recording operational metrics.
//
// Implementations should be non-blocking and handle failures gracefully.
// Sessions of different events record concurrently, so implementations must
// be thread-safe.
//
// This interface composes smaller, domain-focused interfaces for better modularity.
type MetricsCollector interface {
	PlacementMetrics
	ConflictMetrics
	HistoryMetrics
}

// PlacementMetrics defines metrics for placement runs.
type PlacementMetrics interface {
	// RecordPlacement records one completed placement run.
	//
	// Parameters:
	//   - algorithm: Algorithm name
	//   - duration: Time taken in seconds
	//   - assigned: Number of participants seated
	//   - unassigned: Number of participants left without a seat
	RecordPlacement(algorithm string, duration float64, assigned, unassigned int)

	// RecordValidationFailure records a result rejected by the validator.
	RecordValidationFailure(algorithm string)
}

// ConflictMetrics defines metrics for inspection and repair.
type ConflictMetrics interface {
	// RecordInspection records one inspector pass.
	//
	// Parameters:
	//   - duration: Time taken in seconds
	//   - counts: Number of conflicts per type
	RecordInspection(duration float64, counts map[ConflictType]int)

	// RecordFix records a fixer or rebalancer invocation.
	//
	// Parameters:
	//   - kind: Conflict type or "rebalance"
	//   - changes: Number of change lines produced
	RecordFix(kind string, changes int)
}

// HistoryMetrics defines metrics for committed versions and the version store.
type HistoryMetrics interface {
	// RecordCommit records a committed version.
	//
	// Parameters:
	//   - source: Version source tag
	//   - version: Version number
	//   - added, removed, moved: Diff sizes
	RecordCommit(source string, version int64, added, removed, moved int)

	// RecordKVOperationDuration records NATS KV operation latency.
	//
	// Parameters:
	//   - operation: Operation type ("get", "put", "keys")
	//   - duration: Time taken in seconds
	RecordKVOperationDuration(operation string, duration float64)
}
