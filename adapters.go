package seatplan

import (
	"context"
	"log/slog"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/arloliu/seatplan/history"
	"github.com/arloliu/seatplan/internal/logging"
	"github.com/arloliu/seatplan/internal/metrics"
)

// NewPrometheusMetrics creates a Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Registerer for the collectors (prometheus.DefaultRegisterer if nil)
//   - namespace: Metric namespace ("seatplan" if empty)
//
// Returns:
//   - MetricsCollector: Collector for WithMetrics
func NewPrometheusMetrics(reg prometheus.Registerer, namespace string) MetricsCollector {
	return metrics.NewPrometheus(reg, namespace)
}

// NewZapLogger adapts a zap logger to Logger.
//
// A nil logger yields a no-op zap logger.
func NewZapLogger(l *zap.Logger) Logger {
	return logging.NewZap(l)
}

// NewSlogLogger adapts a slog logger to Logger.
func NewSlogLogger(l *slog.Logger) Logger {
	if l == nil {
		return logging.NewSlogDefault()
	}

	return logging.NewSlog(l)
}

// OpenHistory opens the JetStream KV version store described by cfg.History.
//
// The bucket is created when missing. Defaults are applied to a copy of cfg.
//
// Parameters:
//   - ctx: Context for bucket creation
//   - js: JetStream context
//   - cfg: Planner configuration
//   - opts: Logger and metrics for the store
//
// Returns:
//   - *history.KVStore: Store for WithVersionStore
//   - error: Bucket creation error
//
// Example:
//
//	js, _ := jetstream.New(nc)
//	store, err := seatplan.OpenHistory(ctx, js, cfg, history.WithLogger(logger))
func OpenHistory(ctx context.Context, js jetstream.JetStream, cfg Config, opts ...history.Option) (*history.KVStore, error) {
	SetDefaults(&cfg)

	kvOpts := append([]history.Option{history.WithOperationTimeout(cfg.History.OperationTimeout)}, opts...)

	return history.OpenKVStore(ctx, js, history.KVConfig{
		Bucket:    cfg.History.Bucket,
		KeyPrefix: cfg.History.KeyPrefix,
		TTL:       cfg.History.TTL,
	}, kvOpts...)
}
