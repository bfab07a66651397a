package source

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidRoster is returned for a roster document that cannot be served.
var ErrInvalidRoster = errors.New("invalid roster")

// document is the YAML roster file layout.
//
//	events:
//	  - id: gala-2025
//	    participants:
//	      - {id: p1, name: Ada, companyId: acme, isVip: true}
//	    tables:
//	      - {id: t1, name: Head table, capacity: 8, isVipTable: true}
type document struct {
	Events []struct {
		ID     string `yaml:"id"`
		Roster `yaml:",inline"`
	} `yaml:"events"`
}

// LoadFile reads a YAML roster file.
//
// Parameters:
//   - path: Path to the roster file
//
// Returns:
//   - *Static: Source serving every event of the file
//   - error: Read, parse or validation error
func LoadFile(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}

	return Parse(data)
}

// Parse builds a source from a YAML roster document.
//
// Event IDs must be non-empty and unique. Participant and table IDs must be
// non-empty and unique within their event. Capacities are not checked here;
// the validator reports non-positive capacities.
func Parse(data []byte) (*Static, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}

	src := NewStatic()
	seen := make(map[string]struct{}, len(doc.Events))
	for i, ev := range doc.Events {
		if ev.ID == "" {
			return nil, fmt.Errorf("%w: event %d has no id", ErrInvalidRoster, i)
		}
		if _, ok := seen[ev.ID]; ok {
			return nil, fmt.Errorf("%w: event %s is listed twice", ErrInvalidRoster, ev.ID)
		}
		seen[ev.ID] = struct{}{}

		if err := checkIDs(ev.ID, ev.Roster); err != nil {
			return nil, err
		}
		src.Set(ev.ID, ev.Roster)
	}

	return src, nil
}

func checkIDs(eventID string, r Roster) error {
	participants := make(map[string]struct{}, len(r.Participants))
	for i, p := range r.Participants {
		if p.ID == "" {
			return fmt.Errorf("%w: event %s participant %d has no id", ErrInvalidRoster, eventID, i)
		}
		if _, ok := participants[p.ID]; ok {
			return fmt.Errorf("%w: event %s participant %s is listed twice", ErrInvalidRoster, eventID, p.ID)
		}
		participants[p.ID] = struct{}{}
	}

	tables := make(map[string]struct{}, len(r.Tables))
	for i, t := range r.Tables {
		if t.ID == "" {
			return fmt.Errorf("%w: event %s table %d has no id", ErrInvalidRoster, eventID, i)
		}
		if _, ok := tables[t.ID]; ok {
			return fmt.Errorf("%w: event %s table %s is listed twice", ErrInvalidRoster, eventID, t.ID)
		}
		tables[t.ID] = struct{}{}
	}

	return nil
}
