package types

// TableState wraps a Table with the occupancy of one algorithm run.
//
// TableState is derived fresh at the start of each run and never persisted.
type TableState struct {
	Table             Table
	RemainingCapacity int
	Participants      []Participant
	VIPCount          int
}

// Count returns the number of seated participants.
func (s *TableState) Count() int {
	return len(s.Participants)
}

// HasCapacity reports whether at least one seat is free.
func (s *TableState) HasCapacity() bool {
	return s.RemainingCapacity > 0
}

// Seat adds p to the table and updates the derived counters.
//
// Seat does not check capacity; callers select tables with HasCapacity first.
func (s *TableState) Seat(p Participant) {
	s.Participants = append(s.Participants, p)
	s.RemainingCapacity--
	if p.IsVIP {
		s.VIPCount++
	}
}

// Unseat removes the participant with the given ID.
//
// Returns:
//   - Participant: The removed participant
//   - bool: false if the participant was not seated here
func (s *TableState) Unseat(participantID string) (Participant, bool) {
	for i, p := range s.Participants {
		if p.ID != participantID {
			continue
		}
		s.Participants = append(s.Participants[:i], s.Participants[i+1:]...)
		s.RemainingCapacity++
		if p.IsVIP {
			s.VIPCount--
		}

		return p, true
	}

	return Participant{}, false
}
