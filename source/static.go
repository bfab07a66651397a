package source

import (
	"context"
	"slices"
	"sync"

	"github.com/arloliu/seatplan/types"
)

// Roster is the participants and tables of one event.
type Roster struct {
	Participants []types.Participant `yaml:"participants"`
	Tables       []types.Table       `yaml:"tables"`
}

// Static implements a roster source over in-memory rosters.
//
// Unknown events have an empty roster.
type Static struct {
	mu      sync.RWMutex
	rosters map[string]Roster
}

var _ types.RosterSource = (*Static)(nil)

// NewStatic creates an empty static roster source.
//
// Example:
//
//	src := source.NewStatic()
//	src.Set("gala-2025", source.Roster{Participants: participants, Tables: tables})
//	planner, err := seatplan.NewPlanner(cfg, src)
func NewStatic() *Static {
	return &Static{rosters: make(map[string]Roster)}
}

// Set replaces the roster of an event.
//
// The roster is copied; later changes to the caller's slices are not seen.
func (s *Static) Set(eventID string, r Roster) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rosters[eventID] = Roster{
		Participants: slices.Clone(r.Participants),
		Tables:       slices.Clone(r.Tables),
	}
}

// Events returns the IDs of all events with a roster, sorted.
func (s *Static) Events() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.rosters))
	for id := range s.rosters {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	return ids
}

// ListParticipants returns a copy of the event's participants.
func (s *Static) ListParticipants(_ context.Context, eventID string) ([]types.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := slices.Clone(s.rosters[eventID].Participants)
	if out == nil {
		out = []types.Participant{}
	}

	return out, nil
}

// ListTables returns a copy of the event's tables.
func (s *Static) ListTables(_ context.Context, eventID string) ([]types.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := slices.Clone(s.rosters[eventID].Tables)
	if out == nil {
		out = []types.Table{}
	}

	return out, nil
}
