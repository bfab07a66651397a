package strategy

import (
	"fmt"

	"github.com/arloliu/seatplan/types"
)

func makeParticipants(n int, prefix string) []types.Participant {
	out := make([]types.Participant, n)
	for i := range out {
		out[i] = types.Participant{ID: fmt.Sprintf("%s%d", prefix, i), Name: fmt.Sprintf("Guest %s%d", prefix, i)}
	}

	return out
}

func makeTables(capacities ...int) []types.Table {
	out := make([]types.Table, len(capacities))
	for i, c := range capacities {
		out[i] = types.Table{ID: fmt.Sprintf("t%d", i+1), Name: fmt.Sprintf("Table %d", i+1), Capacity: c}
	}

	return out
}

func countByTable(assignments []types.Assignment) map[string]int {
	counts := make(map[string]int)
	for _, a := range assignments {
		counts[a.TableID]++
	}

	return counts
}

func tableOf(assignments []types.Assignment, participantID string) string {
	for _, a := range assignments {
		if a.ParticipantID == participantID {
			return a.TableID
		}
	}

	return ""
}
