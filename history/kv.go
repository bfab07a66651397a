package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/arloliu/seatplan/internal/kvutil"
	"github.com/arloliu/seatplan/internal/natsutil"
	"github.com/arloliu/seatplan/types"
)

// DefaultKeyPrefix is the key prefix used when none is configured.
const DefaultKeyPrefix = "version"

// eventIDPattern keeps event IDs usable as a single NATS key token.
var eventIDPattern = regexp.MustCompile(`^[A-Za-z0-9_=-]+$`)

// KVConfig describes the history bucket opened by OpenKVStore.
type KVConfig struct {
	// Bucket is the KV bucket name.
	Bucket string
	// KeyPrefix prefixes every version key (default "version").
	KeyPrefix string
	// TTL expires versions after the given age. Zero keeps history forever.
	TTL time.Duration
	// Replicas is the bucket replica count (default 1).
	Replicas int
}

// KVStore is a VersionStore backed by NATS JetStream KeyValue.
//
// Each version is one key, "<prefix>.<eventID>.<versionNumber>", holding the
// JSON encoded types.Version. Appends use KV create semantics, so two
// writers can never store the same version number: the loser gets
// ErrVersionConflict and must reload.
//
// The highest version per event is discovered by scanning keys on first use
// and cached afterwards.
type KVStore struct {
	kv        jetstream.KeyValue
	prefix    string
	keyPrefix string // cached "prefix."
	opts      options

	mu    sync.Mutex
	heads map[string]types.Version
}

// Compile-time assertion that KVStore implements VersionStore.
var _ types.VersionStore = (*KVStore)(nil)

// NewKVStore creates a store over an existing bucket.
//
// Parameters:
//   - kv: NATS KV bucket for versions
//   - prefix: Key prefix (empty means DefaultKeyPrefix)
//   - opts: Logger, metrics, clock and timeout options
//
// Returns:
//   - *KVStore: Ready store
func NewKVStore(kv jetstream.KeyValue, prefix string, opts ...Option) *KVStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}

	return &KVStore{
		kv:        kv,
		prefix:    prefix,
		keyPrefix: prefix + ".",
		opts:      newOptions(opts),
		heads:     make(map[string]types.Version),
	}
}

// OpenKVStore creates or opens the history bucket and returns a store over it.
//
// Parameters:
//   - ctx: Context for bucket creation
//   - js: JetStream context
//   - cfg: Bucket settings
//   - opts: Store options
//
// Returns:
//   - *KVStore: Ready store
//   - error: Bucket creation error
//
// Example:
//
//	js, _ := jetstream.New(nc)
//	store, err := history.OpenKVStore(ctx, js, history.KVConfig{Bucket: "seatplan-history"})
func OpenKVStore(ctx context.Context, js jetstream.JetStream, cfg KVConfig, opts ...Option) (*KVStore, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: history bucket name is required", types.ErrInvalidConfig)
	}
	replicas := cfg.Replicas
	if replicas <= 0 {
		replicas = 1
	}

	kv, err := kvutil.EnsureKVBucketWithRetry(ctx, js, jetstream.KeyValueConfig{
		Bucket:      cfg.Bucket,
		Description: "seatplan version history",
		History:     1,
		TTL:         cfg.TTL,
		Replicas:    replicas,
	}, 3)
	if err != nil {
		return nil, fmt.Errorf("failed to open history bucket: %w", err)
	}

	return NewKVStore(kv, cfg.KeyPrefix, opts...), nil
}

// Append stores v as the next version of its event.
func (s *KVStore) Append(ctx context.Context, v types.Version) (types.Version, error) {
	if err := validateEventID(v.EventID); err != nil {
		return types.Version{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	head, err := s.head(ctx, v.EventID, false)
	if err != nil {
		return types.Version{}, err
	}

	stored, err := nextVersion(head, v, s.opts.now())
	if err != nil {
		return types.Version{}, err
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return types.Version{}, fmt.Errorf("failed to marshal version: %w", err)
	}

	key := s.key(stored.EventID, stored.VersionNumber)
	opCtx, cancel := s.opContext(ctx)
	defer cancel()

	start := time.Now()
	_, err = s.kv.Create(opCtx, key, data)
	s.opts.metrics.RecordKVOperationDuration("create", time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyExists) {
			// another writer got there first; rediscover on the next call
			delete(s.heads, stored.EventID)
			s.opts.logger.Warn("version already taken", "event_id", stored.EventID, "version", stored.VersionNumber)

			return types.Version{}, fmt.Errorf("%w: event %s version %d", types.ErrVersionConflict, stored.EventID, stored.VersionNumber)
		}

		return types.Version{}, natsutil.Wrap("failed to store version", err)
	}

	s.heads[stored.EventID] = stored
	s.opts.logger.Info("version stored",
		"event_id", stored.EventID,
		"version", stored.VersionNumber,
		"source", stored.Source,
		"key", key)

	return cloneVersion(stored), nil
}

// Latest returns the highest version of an event.
//
// The key space is rescanned on every call so versions appended by other
// processes are visible.
func (s *KVStore) Latest(ctx context.Context, eventID string) (types.Version, error) {
	if err := validateEventID(eventID); err != nil {
		return types.Version{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	head, err := s.head(ctx, eventID, true)
	if err != nil {
		return types.Version{}, err
	}
	if head.VersionNumber == 0 {
		return types.Version{}, fmt.Errorf("%w: event %s has no history", types.ErrVersionNotFound, eventID)
	}

	return cloneVersion(head), nil
}

// Get returns one version of an event.
func (s *KVStore) Get(ctx context.Context, eventID string, versionNumber int64) (types.Version, error) {
	if err := validateEventID(eventID); err != nil {
		return types.Version{}, err
	}
	if versionNumber < 1 {
		return types.Version{}, fmt.Errorf("%w: event %s version %d", types.ErrVersionNotFound, eventID, versionNumber)
	}

	return s.load(ctx, s.key(eventID, versionNumber))
}

// List returns all versions of an event in ascending order.
func (s *KVStore) List(ctx context.Context, eventID string) ([]types.Version, error) {
	if err := validateEventID(eventID); err != nil {
		return nil, err
	}

	numbers, err := s.versionNumbers(ctx, eventID)
	if err != nil {
		return nil, err
	}

	out := make([]types.Version, 0, len(numbers))
	for _, n := range numbers {
		v, err := s.load(ctx, s.key(eventID, n))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	return out, nil
}

// head returns the latest version of an event, or the zero Version when the
// event has no history. Callers hold s.mu.
func (s *KVStore) head(ctx context.Context, eventID string, refresh bool) (types.Version, error) {
	if v, ok := s.heads[eventID]; ok && !refresh {
		return v, nil
	}

	numbers, err := s.versionNumbers(ctx, eventID)
	if err != nil {
		return types.Version{}, err
	}
	if len(numbers) == 0 {
		s.opts.logger.Debug("no existing versions found", "event_id", eventID)
		s.heads[eventID] = types.Version{}

		return types.Version{}, nil
	}

	highest := numbers[len(numbers)-1]
	v, err := s.load(ctx, s.key(eventID, highest))
	if err != nil {
		return types.Version{}, err
	}
	s.heads[eventID] = v
	s.opts.logger.Debug("discovered highest version", "event_id", eventID, "version", highest, "versions", len(numbers))

	return v, nil
}

// versionNumbers returns the stored version numbers of an event, ascending.
func (s *KVStore) versionNumbers(ctx context.Context, eventID string) ([]int64, error) {
	opCtx, cancel := s.opContext(ctx)
	defer cancel()

	eventPrefix := s.keyPrefix + eventID + "."
	start := time.Now()
	keys, err := kvutil.KeysWithPrefix(opCtx, s.kv, eventPrefix)
	s.opts.metrics.RecordKVOperationDuration("keys", time.Since(start).Seconds())
	if err != nil {
		return nil, natsutil.Wrap("failed to list versions of "+eventID, err)
	}

	numbers := make([]int64, 0, len(keys))
	for _, key := range keys {
		n, err := strconv.ParseInt(strings.TrimPrefix(key, eventPrefix), 10, 64)
		if err != nil || n < 1 {
			s.opts.logger.Debug("skipping non-version key", "key", key)
			continue
		}
		numbers = append(numbers, n)
	}
	slices.Sort(numbers)

	return numbers, nil
}

func (s *KVStore) load(ctx context.Context, key string) (types.Version, error) {
	opCtx, cancel := s.opContext(ctx)
	defer cancel()

	start := time.Now()
	entry, err := s.kv.Get(opCtx, key)
	s.opts.metrics.RecordKVOperationDuration("get", time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return types.Version{}, fmt.Errorf("%w: %s", types.ErrVersionNotFound, key)
		}

		return types.Version{}, natsutil.Wrap("failed to read version "+key, err)
	}

	var v types.Version
	if err := json.Unmarshal(entry.Value(), &v); err != nil {
		return types.Version{}, fmt.Errorf("failed to unmarshal version %s: %w", key, err)
	}

	return v, nil
}

func (s *KVStore) key(eventID string, versionNumber int64) string {
	return s.keyPrefix + eventID + "." + strconv.FormatInt(versionNumber, 10)
}

func (s *KVStore) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opts.timeout > 0 {
		return context.WithTimeout(ctx, s.opts.timeout)
	}

	return context.WithCancel(ctx)
}

func validateEventID(eventID string) error {
	if eventID == "" {
		return types.ErrEventIDRequired
	}
	if !eventIDPattern.MatchString(eventID) {
		return fmt.Errorf("%w: %q", types.ErrInvalidEventID, eventID)
	}

	return nil
}
