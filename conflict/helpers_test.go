package conflict

import (
	"fmt"

	"github.com/arloliu/seatplan/types"
)

func people(ids ...string) []types.Participant {
	out := make([]types.Participant, len(ids))
	for i, id := range ids {
		out[i] = types.Participant{ID: id}
	}

	return out
}

func vip(id string) types.Participant {
	return types.Participant{ID: id, IsVIP: true}
}

func makeTables(capacities ...int) []types.Table {
	out := make([]types.Table, len(capacities))
	for i, c := range capacities {
		out[i] = types.Table{ID: fmt.Sprintf("t%d", i+1), Name: fmt.Sprintf("Table %d", i+1), Capacity: c}
	}

	return out
}

func seat(pid, tid string) types.Assignment {
	return types.Assignment{ParticipantID: pid, TableID: tid}
}

func seatAll(tid string, pids ...string) []types.Assignment {
	out := make([]types.Assignment, len(pids))
	for i, pid := range pids {
		out[i] = seat(pid, tid)
	}

	return out
}

func countAt(assignments []types.Assignment, tableID string) int {
	n := 0
	for _, a := range assignments {
		if a.TableID == tableID {
			n++
		}
	}

	return n
}

func tablesOf(assignments []types.Assignment, participantID string) []string {
	var out []string
	for _, a := range assignments {
		if a.ParticipantID == participantID {
			out = append(out, a.TableID)
		}
	}

	return out
}

func conflictTypes(report types.ConflictReport) []types.ConflictType {
	out := make([]types.ConflictType, len(report.Conflicts))
	for i, c := range report.Conflicts {
		out[i] = c.Type
	}

	return out
}
