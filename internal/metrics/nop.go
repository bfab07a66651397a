// Package metrics provides types.MetricsCollector implementations.
package metrics

import "github.com/arloliu/seatplan/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. It is the default collector of Planner and the
// history stores.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Example:
//
//	planner, _ := seatplan.NewPlanner(cfg, src, seatplan.WithMetrics(metrics.NewNop()))
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// PlacementMetrics implementation

// RecordPlacement discards the placement metric.
func (n *NopMetrics) RecordPlacement(_ /* algorithm */ string, _ /* duration */ float64, _ /* assigned */, _ /* unassigned */ int) {
}

// RecordValidationFailure discards the validation failure metric.
func (n *NopMetrics) RecordValidationFailure(_ /* algorithm */ string) {}

// ConflictMetrics implementation

// RecordInspection discards the inspection metric.
func (n *NopMetrics) RecordInspection(_ /* duration */ float64, _ /* counts */ map[types.ConflictType]int) {
}

// RecordFix discards the fix metric.
func (n *NopMetrics) RecordFix(_ /* kind */ string, _ /* changes */ int) {}

// HistoryMetrics implementation

// RecordCommit discards the commit metric.
func (n *NopMetrics) RecordCommit(_ /* source */ string, _ /* version */ int64, _ /* added */, _ /* removed */, _ /* moved */ int) {
}

// RecordKVOperationDuration discards the KV operation duration metric.
func (n *NopMetrics) RecordKVOperationDuration(_ /* operation */ string, _ /* duration */ float64) {}
