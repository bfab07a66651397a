package roster

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/seatplan/types"
)

func TestIndex(t *testing.T) {
	participants := []types.Participant{
		{ID: "p1", Name: "Ada", IsVIP: true, CompanyID: "acme"},
		{ID: "p2", Name: "Bob"},
		{ID: "p1", Name: "Shadow"},
	}
	tables := []types.Table{
		{ID: "t1", Name: "Table 1", Capacity: 4},
		{ID: "t2", Name: "Table 2", Capacity: 4},
	}
	idx := New(participants, tables)

	t.Run("first record wins", func(t *testing.T) {
		p, ok := idx.Participant("p1")
		require.True(t, ok)
		require.Equal(t, "Ada", p.Name)
	})

	t.Run("table positions follow roster order", func(t *testing.T) {
		require.Equal(t, 0, idx.TablePosition("t1"))
		require.Equal(t, 1, idx.TablePosition("t2"))
		require.Equal(t, -1, idx.TablePosition("t9"))
	})

	t.Run("live VIP flag wins over row flag", func(t *testing.T) {
		require.True(t, idx.IsVIP(types.Assignment{ParticipantID: "p1"}))
		require.False(t, idx.IsVIP(types.Assignment{ParticipantID: "p2", IsVIP: true}))
		require.True(t, idx.IsVIP(types.Assignment{ParticipantID: "gone", IsVIP: true}))
	})

	t.Run("seat denormalizes", func(t *testing.T) {
		a := idx.Seat("p1", "t2")
		require.Equal(t, types.Assignment{ParticipantID: "p1", TableID: "t2", TableName: "Table 2", IsVIP: true}, a)
	})

	t.Run("refresh rewrites stale fields without touching input", func(t *testing.T) {
		in := []types.Assignment{{ParticipantID: "p2", TableID: "t1", TableName: "old", IsVIP: true}}
		out := idx.Refresh(in)
		require.Equal(t, "Table 1", out[0].TableName)
		require.False(t, out[0].IsVIP)
		require.Equal(t, "old", in[0].TableName)
	})

	t.Run("company key", func(t *testing.T) {
		require.Equal(t, "acme", idx.CompanyKey("p1"))
		require.Equal(t, types.UnknownCompany, idx.CompanyKey("p2"))
		require.Equal(t, types.UnknownCompany, idx.CompanyKey("gone"))
	})
}
