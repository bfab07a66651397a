package conflict

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/seatplan/types"
)

func TestInspector_Clean(t *testing.T) {
	participants := people("p1", "p2", "p3")
	tables := makeTables(2, 2)
	assignments := []types.Assignment{seat("p1", "t1"), seat("p2", "t1"), seat("p3", "t2")}

	report := NewInspector().Inspect(assignments, tables, participants)
	require.Empty(t, report.Conflicts)
	require.NotNil(t, report.Conflicts)
	require.False(t, report.HasErrors)
	require.False(t, report.HasWarnings)
}

func TestInspector_Empty(t *testing.T) {
	report := NewInspector().Inspect(nil, nil, nil)
	require.Empty(t, report.Conflicts)
	require.False(t, report.HasErrors)
}

func TestInspector_CapacityOverflow(t *testing.T) {
	participants := people("p1", "p2", "p3", "p4")
	tables := makeTables(2, 3)
	assignments := []types.Assignment{seat("p1", "t1"), seat("p2", "t1"), seat("p3", "t1"), seat("p4", "t2")}

	report := NewInspector().Inspect(assignments, tables, participants)
	require.Len(t, report.Conflicts, 1)

	c := report.Conflicts[0]
	require.Equal(t, types.ConflictCapacityOverflow, c.Type)
	require.Equal(t, types.SeverityError, c.Severity)
	require.Equal(t, "t1", c.TableID)
	require.Equal(t, "Table 1", c.TableName)
	require.Equal(t, 3, c.Count)
	require.Equal(t, 2, c.Capacity)
	require.Equal(t, []string{"p3"}, c.ParticipantIDs)
	require.Equal(t, "Table 1 has 3 participants but only 2 seats", c.Message)
	require.True(t, report.HasErrors)
	require.False(t, report.HasWarnings)
}

func TestInspector_DuplicateAssignment(t *testing.T) {
	participants := []types.Participant{{ID: "x", Name: "Xavier"}, {ID: "y"}}
	tables := makeTables(5, 5)
	assignments := []types.Assignment{seat("x", "t1"), seat("y", "t1"), seat("x", "t2")}

	report := NewInspector().Inspect(assignments, tables, participants)
	dups := report.ByType(types.ConflictDuplicateAssignment)
	require.Len(t, dups, 1)
	require.Len(t, report.Conflicts, 1)
	require.Equal(t, []string{"x"}, dups[0].ParticipantIDs)
	require.Equal(t, []string{"t1", "t2"}, dups[0].TableIDs)
	require.Equal(t, 2, dups[0].Count)
	require.Equal(t, "Xavier is assigned to 2 tables", dups[0].Message)
}

func TestInspector_Unassigned(t *testing.T) {
	t.Run("aggregated into one conflict", func(t *testing.T) {
		participants := people("p1", "p2", "p3")
		report := NewInspector().Inspect([]types.Assignment{seat("p1", "t1")}, makeTables(4), participants)

		require.Len(t, report.Conflicts, 1)
		c := report.Conflicts[0]
		require.Equal(t, types.ConflictUnassigned, c.Type)
		require.Equal(t, types.SeverityError, c.Severity)
		require.Equal(t, []string{"p2", "p3"}, c.ParticipantIDs)
		require.Equal(t, 2, c.Count)
		require.Equal(t, "2 participants are not assigned to any table", c.Message)
	})

	t.Run("single participant named", func(t *testing.T) {
		participants := []types.Participant{{ID: "p1"}, {ID: "p2", Name: "Bea"}}
		report := NewInspector().Inspect([]types.Assignment{seat("p1", "t1")}, makeTables(4), participants)

		require.Len(t, report.Conflicts, 1)
		require.Equal(t, "Bea is not assigned to any table", report.Conflicts[0].Message)
	})
}

// vipHeavy returns a roster where Table 1 seats two VIPs and one regular
// and Table 2 seats five regulars.
func vipHeavy() ([]types.Assignment, []types.Table, []types.Participant) {
	participants := append([]types.Participant{vip("v1"), vip("v2")}, people("r1", "r2", "r3", "r4", "r5", "r6")...)
	tables := makeTables(4, 5)
	assignments := append(seatAll("t1", "v1", "v2", "r1"), seatAll("t2", "r2", "r3", "r4", "r5", "r6")...)

	return assignments, tables, participants
}

func TestInspector_VIPImbalance(t *testing.T) {
	t.Run("flags table above both thresholds", func(t *testing.T) {
		assignments, tables, participants := vipHeavy()
		report := NewInspector().Inspect(assignments, tables, participants)

		require.Len(t, report.Conflicts, 1)
		c := report.Conflicts[0]
		require.Equal(t, types.ConflictVIPImbalance, c.Type)
		require.Equal(t, types.SeverityWarning, c.Severity)
		require.Equal(t, "t1", c.TableID)
		require.Equal(t, 2, c.Count)
		require.Equal(t, []string{"v1", "v2"}, c.ParticipantIDs)
		require.InDelta(t, 2.0/3.0, c.VIPRatio, 1e-9)
		require.False(t, report.HasErrors)
		require.True(t, report.HasWarnings)
	})

	t.Run("absolute floor suppresses", func(t *testing.T) {
		assignments, tables, participants := vipHeavy()
		report := NewInspector(WithVIPRatioFloor(0.7)).Inspect(assignments, tables, participants)
		require.Empty(t, report.Conflicts)
	})

	t.Run("multiplier suppresses", func(t *testing.T) {
		assignments, tables, participants := vipHeavy()
		report := NewInspector(WithVIPRatioMultiplier(3)).Inspect(assignments, tables, participants)
		require.Empty(t, report.Conflicts)
	})

	t.Run("uniform VIP ratio is not flagged", func(t *testing.T) {
		participants := []types.Participant{vip("v1"), vip("v2")}
		report := NewInspector().Inspect(seatAll("t1", "v1", "v2"), makeTables(2), participants)
		require.Empty(t, report.Conflicts)
	})

	t.Run("uses live VIP status", func(t *testing.T) {
		assignments, tables, participants := vipHeavy()
		// rows carry a stale flag
		for i := range assignments {
			assignments[i].IsVIP = assignments[i].ParticipantID == "r2"
		}

		report := NewInspector().Inspect(assignments, tables, participants)
		require.Len(t, report.ByType(types.ConflictVIPImbalance), 1)
		require.Equal(t, "t1", report.Conflicts[0].TableID)
	})
}

func TestInspector_GroupScatter(t *testing.T) {
	acme := func(id string) types.Participant {
		return types.Participant{ID: id, CompanyID: "acme", CompanyName: "Acme Corp"}
	}

	t.Run("company split across tables", func(t *testing.T) {
		participants := []types.Participant{acme("a1"), acme("a2"), acme("a3")}
		assignments := []types.Assignment{seat("a1", "t1"), seat("a2", "t1"), seat("a3", "t2")}

		report := NewInspector().Inspect(assignments, makeTables(4, 4), participants)
		require.Len(t, report.Conflicts, 1)
		c := report.Conflicts[0]
		require.Equal(t, types.ConflictGroupScatter, c.Type)
		require.Equal(t, types.SeverityWarning, c.Severity)
		require.Equal(t, "acme", c.CompanyKey)
		require.Equal(t, []string{"t1", "t2"}, c.TableIDs)
		require.Equal(t, []string{"a1", "a2", "a3"}, c.ParticipantIDs)
		require.Equal(t, 3, c.Count)
		require.Equal(t, "Company Acme Corp has 3 members split across 2 tables", c.Message)
	})

	t.Run("two members are not enough", func(t *testing.T) {
		participants := []types.Participant{acme("a1"), acme("a2"), acme("a3")}
		assignments := []types.Assignment{seat("a1", "t1"), seat("a2", "t2")}

		report := NewInspector().Inspect(assignments, makeTables(4, 4), participants)
		require.Empty(t, report.ByType(types.ConflictGroupScatter))
	})

	t.Run("threshold option", func(t *testing.T) {
		participants := []types.Participant{acme("a1"), acme("a2")}
		assignments := []types.Assignment{seat("a1", "t1"), seat("a2", "t2")}

		report := NewInspector(WithScatterMinMembers(2)).Inspect(assignments, makeTables(4, 4), participants)
		require.Len(t, report.ByType(types.ConflictGroupScatter), 1)
	})

	t.Run("unknown company is ignored", func(t *testing.T) {
		participants := people("p1", "p2", "p3")
		assignments := []types.Assignment{seat("p1", "t1"), seat("p2", "t2"), seat("p3", "t2")}

		report := NewInspector().Inspect(assignments, makeTables(4, 4), participants)
		require.Empty(t, report.Conflicts)
	})
}

func TestInspector_Order(t *testing.T) {
	participants := append(people("p1", "p2", "p3"), vip("v1"), vip("v2"))
	for i := range participants[:3] {
		participants[i].Company = "Initech"
	}
	tables := makeTables(1, 4, 4)
	assignments := []types.Assignment{
		seat("p1", "t1"), seat("p2", "t1"), seat("p1", "t2"), seat("p3", "t2"),
		seat("v1", "t3"), seat("v2", "t3"),
	}
	participants = append(participants, types.Participant{ID: "late"})

	report := NewInspector().Inspect(assignments, tables, participants)
	require.Equal(t, []types.ConflictType{
		types.ConflictCapacityOverflow,
		types.ConflictDuplicateAssignment,
		types.ConflictUnassigned,
		types.ConflictVIPImbalance,
		types.ConflictGroupScatter,
	}, conflictTypes(report))
	require.True(t, report.HasErrors)
	require.True(t, report.HasWarnings)
	require.Len(t, report.Errors(), 3)
	require.Len(t, report.Warnings(), 2)
}

func TestInspector_DoesNotMutateInput(t *testing.T) {
	assignments, tables, participants := vipHeavy()
	before := types.CloneAssignments(assignments)

	NewInspector().Inspect(assignments, tables, participants)
	require.Equal(t, before, assignments)
}
