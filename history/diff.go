package history

import (
	"github.com/arloliu/seatplan/types"
)

// Diff computes the change from before to after.
//
// For each participant the tables it left are paired, in list order, with
// the tables it joined; each pair is a move. Unpaired rows of after are
// added and unpaired rows of before are removed. Output follows the
// first appearance of each participant, before first.
//
// Parameters:
//   - before: Previous assignment list
//   - after: New assignment list
//
// Returns:
//   - types.Diff: Added, removed and moved entries (never nil slices)
func Diff(before, after []types.Assignment) types.Diff {
	diff := types.Diff{
		Added:   []types.Assignment{},
		Removed: []types.Assignment{},
		Moved:   []types.Move{},
	}

	var order []string
	oldRows := groupByParticipant(before, &order)
	newRows := groupByParticipant(after, &order)

	for _, pid := range order {
		left := subtract(oldRows[pid], newRows[pid])
		joined := subtract(newRows[pid], oldRows[pid])

		n := min(len(left), len(joined))
		for i := range n {
			diff.Moved = append(diff.Moved, types.Move{
				ParticipantID: pid,
				FromTableID:   left[i].TableID,
				ToTableID:     joined[i].TableID,
			})
		}
		diff.Removed = append(diff.Removed, left[n:]...)
		diff.Added = append(diff.Added, joined[n:]...)
	}

	return diff
}

func groupByParticipant(rows []types.Assignment, order *[]string) map[string][]types.Assignment {
	out := make(map[string][]types.Assignment, len(rows))
	seen := make(map[string]struct{}, len(*order))
	for _, pid := range *order {
		seen[pid] = struct{}{}
	}

	for _, a := range rows {
		if _, ok := seen[a.ParticipantID]; !ok {
			seen[a.ParticipantID] = struct{}{}
			*order = append(*order, a.ParticipantID)
		}
		out[a.ParticipantID] = append(out[a.ParticipantID], a)
	}

	return out
}

// subtract returns the rows of a whose table does not occur in b, counting
// multiplicity, so a participant listed twice at one table keeps one surplus row.
func subtract(a, b []types.Assignment) []types.Assignment {
	if len(a) == 0 {
		return nil
	}

	remaining := make(map[string]int, len(b))
	for _, r := range b {
		remaining[r.TableID]++
	}

	var out []types.Assignment
	for _, r := range a {
		if remaining[r.TableID] > 0 {
			remaining[r.TableID]--
			continue
		}
		out = append(out, r)
	}

	return out
}
