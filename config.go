package seatplan

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/seatplan/conflict"
	"github.com/arloliu/seatplan/types"
)

// InspectorConfig controls conflict detection thresholds.
type InspectorConfig struct {
	// VIPRatioMultiplier flags a table whose VIP ratio exceeds this multiple of
	// the event average. Default: 2.0
	VIPRatioMultiplier float64 `yaml:"vipRatioMultiplier"`

	// VIPRatioFloor is the minimum VIP ratio a table must exceed before it can be
	// flagged, so that small events with a low average do not flood the report.
	// Default: 0.5
	VIPRatioFloor float64 `yaml:"vipRatioFloor"`

	// ScatterMinMembers is the smallest company (inclusive) reported as scattered
	// when its members sit at more than one table. Default: 3
	ScatterMinMembers int `yaml:"scatterMinMembers"`
}

// RebalanceConfig controls the occupancy rebalancer.
type RebalanceConfig struct {
	// MaxIterations bounds the number of single-participant moves per call.
	// Default: 10
	MaxIterations int `yaml:"maxIterations"`
}

// SessionConfig controls draft editing.
type SessionConfig struct {
	// UndoLimit is the number of draft snapshots kept for undo. Default: 50
	UndoLimit int `yaml:"undoLimit"`

	// MaxFixPasses bounds the inspect-and-fix rounds of FixAll. Default: 5
	MaxFixPasses int `yaml:"maxFixPasses"`
}

// HistoryConfig configures the NATS JetStream KV version store.
type HistoryConfig struct {
	// Bucket is the KV bucket holding version records.
	Bucket string `yaml:"bucket"`

	// KeyPrefix is prepended to every version key (<prefix>.<eventID>.<n>).
	KeyPrefix string `yaml:"keyPrefix"`

	// TTL is how long version records remain in KV (0 = no expiration).
	// Recommended: 0, expiring history breaks version numbering.
	TTL time.Duration `yaml:"ttl"`

	// OperationTimeout is the timeout for a single KV operation.
	OperationTimeout time.Duration `yaml:"operationTimeout"`
}

// Config is the configuration for the Planner.
//
// All duration fields accept standard Go duration strings like "5s", "1m".
type Config struct {
	// DefaultAlgorithm is used by Run and ApplyAlgorithm when the caller passes
	// an empty algorithm. Default: round_robin
	DefaultAlgorithm Algorithm `yaml:"defaultAlgorithm"`

	// Inspector controls conflict detection thresholds.
	Inspector InspectorConfig `yaml:"inspector"`

	// Rebalance controls the occupancy rebalancer.
	Rebalance RebalanceConfig `yaml:"rebalance"`

	// Session controls draft editing.
	Session SessionConfig `yaml:"session"`

	// History configures the KV version store opened by OpenHistory.
	History HistoryConfig `yaml:"history"`
}

// DefaultConfig returns a Config with sensible defaults.
//
// Returns:
//   - Config: Configuration with default values
func DefaultConfig() Config {
	return Config{
		DefaultAlgorithm: types.AlgorithmRoundRobin,
		Inspector: InspectorConfig{
			VIPRatioMultiplier: conflict.DefaultVIPRatioMultiplier,
			VIPRatioFloor:      conflict.DefaultVIPRatioFloor,
			ScatterMinMembers:  conflict.DefaultScatterMinMembers,
		},
		Rebalance: RebalanceConfig{
			MaxIterations: conflict.DefaultMaxIterations,
		},
		Session: SessionConfig{
			UndoLimit:    50,
			MaxFixPasses: 5,
		},
		History: HistoryConfig{
			Bucket:           "seatplan-history",
			KeyPrefix:        "version",
			TTL:              0, // No TTL - history persists for version continuity
			OperationTimeout: 5 * time.Second,
		},
	}
}

// SetDefaults fills in missing configuration values with production defaults.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.DefaultAlgorithm == "" {
		cfg.DefaultAlgorithm = defaults.DefaultAlgorithm
	}
	if cfg.Inspector.VIPRatioMultiplier == 0 {
		cfg.Inspector.VIPRatioMultiplier = defaults.Inspector.VIPRatioMultiplier
	}
	if cfg.Inspector.VIPRatioFloor == 0 {
		cfg.Inspector.VIPRatioFloor = defaults.Inspector.VIPRatioFloor
	}
	if cfg.Inspector.ScatterMinMembers == 0 {
		cfg.Inspector.ScatterMinMembers = defaults.Inspector.ScatterMinMembers
	}
	if cfg.Rebalance.MaxIterations == 0 {
		cfg.Rebalance.MaxIterations = defaults.Rebalance.MaxIterations
	}
	if cfg.Session.UndoLimit == 0 {
		cfg.Session.UndoLimit = defaults.Session.UndoLimit
	}
	if cfg.Session.MaxFixPasses == 0 {
		cfg.Session.MaxFixPasses = defaults.Session.MaxFixPasses
	}
	if cfg.History.Bucket == "" {
		cfg.History.Bucket = defaults.History.Bucket
	}
	if cfg.History.KeyPrefix == "" {
		cfg.History.KeyPrefix = defaults.History.KeyPrefix
	}
	if cfg.History.OperationTimeout == 0 {
		cfg.History.OperationTimeout = defaults.History.OperationTimeout
	}
	// Note: TTL of 0 is valid (no expiration), so we don't apply default
}

// Validate checks configuration constraints and returns error for invalid values.
//
// Hard Validation Rules:
//   - DefaultAlgorithm is one of the supported algorithms
//   - VIPRatioMultiplier >= 1 (a table at the average is never flagged)
//   - 0 <= VIPRatioFloor <= 1
//   - ScatterMinMembers >= 2 (a single member cannot be scattered)
//   - MaxIterations, UndoLimit, MaxFixPasses > 0
//   - TTL >= 0, OperationTimeout > 0
//
// Returns:
//   - error: Validation error with clear explanation, nil if valid
func (cfg *Config) Validate() error {
	if !cfg.DefaultAlgorithm.Valid() {
		return fmt.Errorf("%w: DefaultAlgorithm %q", ErrUnsupportedAlgorithm, cfg.DefaultAlgorithm)
	}

	if cfg.Inspector.VIPRatioMultiplier < 1 {
		return fmt.Errorf("VIPRatioMultiplier must be >= 1, got %v", cfg.Inspector.VIPRatioMultiplier)
	}
	if cfg.Inspector.VIPRatioFloor < 0 || cfg.Inspector.VIPRatioFloor > 1 {
		return fmt.Errorf("VIPRatioFloor must be within [0, 1], got %v", cfg.Inspector.VIPRatioFloor)
	}
	if cfg.Inspector.ScatterMinMembers < 2 {
		return fmt.Errorf("ScatterMinMembers must be >= 2, got %d", cfg.Inspector.ScatterMinMembers)
	}

	if cfg.Rebalance.MaxIterations <= 0 {
		return fmt.Errorf("MaxIterations must be > 0, got %d", cfg.Rebalance.MaxIterations)
	}

	if cfg.Session.UndoLimit <= 0 {
		return fmt.Errorf("UndoLimit must be > 0, got %d", cfg.Session.UndoLimit)
	}
	if cfg.Session.MaxFixPasses <= 0 {
		return fmt.Errorf("MaxFixPasses must be > 0, got %d", cfg.Session.MaxFixPasses)
	}

	if cfg.History.TTL < 0 {
		return fmt.Errorf("history TTL must be >= 0, got %v", cfg.History.TTL)
	}
	if cfg.History.OperationTimeout <= 0 {
		return fmt.Errorf("history OperationTimeout must be > 0, got %v", cfg.History.OperationTimeout)
	}

	return nil
}

// ValidateWithWarnings checks configuration and logs warnings for non-recommended values.
//
// This is called after Validate() in NewPlanner() to provide operator guidance.
//
// Parameters:
//   - logger: Logger instance for warning output
func (cfg *Config) ValidateWithWarnings(logger Logger) {
	if cfg.History.TTL > 0 {
		logger.Warn(
			"history TTL is set, expired versions break version numbering",
			"ttl", cfg.History.TTL,
			"recommended", "0 (no expiration)",
		)
	}

	if cfg.Session.UndoLimit > 1000 {
		logger.Warn(
			"UndoLimit is very large, every snapshot holds a full copy of the draft",
			"undoLimit", cfg.Session.UndoLimit,
			"recommended", "50-200",
		)
	}

	if cfg.Rebalance.MaxIterations > 100 {
		logger.Warn(
			"MaxIterations is large, the rebalancer still stops at twice the table count",
			"maxIterations", cfg.Rebalance.MaxIterations,
		)
	}
}

// TestConfig returns a configuration suited to unit tests.
//
// Short KV timeouts and a small undo stack keep failures fast and memory low.
//
// Returns:
//   - Config: Configuration for tests
//
// Example:
//
//	cfg := seatplan.TestConfig()
//	cfg.Session.UndoLimit = 3
//	planner, err := seatplan.NewPlanner(&cfg, src)
func TestConfig() Config {
	cfg := DefaultConfig()

	cfg.Session.UndoLimit = 10
	cfg.History.Bucket = "seatplan-history-test"
	cfg.History.OperationTimeout = time.Second

	return cfg
}

// LoadConfig reads a YAML configuration file and applies defaults.
//
// Parameters:
//   - path: Path to the configuration file
//
// Returns:
//   - Config: Parsed configuration with defaults applied
//   - error: Read or parse error
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig parses a YAML configuration document and applies defaults.
//
// The result is not validated; NewPlanner validates it.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	SetDefaults(&cfg)

	return cfg, nil
}

// inspectorOptions maps the inspector section to conflict options.
func (cfg *Config) inspectorOptions() []conflict.InspectorOption {
	return []conflict.InspectorOption{
		conflict.WithVIPRatioMultiplier(cfg.Inspector.VIPRatioMultiplier),
		conflict.WithVIPRatioFloor(cfg.Inspector.VIPRatioFloor),
		conflict.WithScatterMinMembers(cfg.Inspector.ScatterMinMembers),
	}
}
