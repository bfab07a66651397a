package history

import (
	"context"
	"fmt"
	"sync"

	"github.com/arloliu/seatplan/types"
)

// MemoryStore is a process-local VersionStore.
//
// It is safe for concurrent use. Versions are copied on the way in and out,
// so callers can never mutate stored history.
type MemoryStore struct {
	mu       sync.RWMutex
	versions map[string][]types.Version
	opts     options
}

// Compile-time assertion that MemoryStore implements VersionStore.
var _ types.VersionStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	return &MemoryStore{
		versions: make(map[string][]types.Version),
		opts:     newOptions(opts),
	}
}

// Append stores v as the next version of its event.
func (s *MemoryStore) Append(_ context.Context, v types.Version) (types.Version, error) {
	if v.EventID == "" {
		return types.Version{}, types.ErrEventIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var head types.Version
	if list := s.versions[v.EventID]; len(list) > 0 {
		head = list[len(list)-1]
	}

	stored, err := nextVersion(head, v, s.opts.now())
	if err != nil {
		return types.Version{}, err
	}
	s.versions[v.EventID] = append(s.versions[v.EventID], stored)

	s.opts.logger.Debug("version appended",
		"event_id", stored.EventID,
		"version", stored.VersionNumber,
		"source", stored.Source)

	return cloneVersion(stored), nil
}

// Latest returns the highest version of an event.
func (s *MemoryStore) Latest(_ context.Context, eventID string) (types.Version, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.versions[eventID]
	if len(list) == 0 {
		return types.Version{}, fmt.Errorf("%w: event %s has no history", types.ErrVersionNotFound, eventID)
	}

	return cloneVersion(list[len(list)-1]), nil
}

// Get returns one version of an event.
func (s *MemoryStore) Get(_ context.Context, eventID string, versionNumber int64) (types.Version, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.versions[eventID]
	if versionNumber < 1 || versionNumber > int64(len(list)) {
		return types.Version{}, fmt.Errorf("%w: event %s version %d", types.ErrVersionNotFound, eventID, versionNumber)
	}

	return cloneVersion(list[versionNumber-1]), nil
}

// List returns all versions of an event in ascending order.
func (s *MemoryStore) List(_ context.Context, eventID string) ([]types.Version, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.versions[eventID]
	out := make([]types.Version, len(list))
	for i, v := range list {
		out[i] = cloneVersion(v)
	}

	return out, nil
}
