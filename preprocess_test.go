package dpll

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDedupClausesRemovesOrderInsensitiveDuplicates(t *testing.T) {
	in := [][]int{
		{1, 2, 3},
		{3, 1, 2}, // same clause, different order
		{-1, 2},
		{1, 2, 3}, // exact duplicate
	}
	out := DedupClauses(in)
	require.Len(t, out, 2)
	require.Equal(t, []int{1, 2, 3}, out[0])
	require.Equal(t, []int{-1, 2}, out[1])
}

func TestSubsumeClausesRemovesSupersets(t *testing.T) {
	in := [][]int{
		{1},          // subsumes clause 1 below
		{1, 2, 3},    // subsumed by clause 0
		{-4, 5},      // unrelated, survives
		{-4, 5, 6},   // subsumed by clause 2
	}
	out := SubsumeClauses(in)
	require.Len(t, out, 2)
	require.Contains(t, out, []int{1})
	require.Contains(t, out, []int{-4, 5})
}

func TestSubsumeClausesIgnoresEqualClausesWithoutDedup(t *testing.T) {
	// Equal clauses are not subsets-proper of one another (A != B is
	// required), so subsumption alone must not remove either copy; only
	// DedupClauses removes exact duplicates.
	in := [][]int{{1, 2}, {2, 1}}
	out := SubsumeClauses(in)
	require.Len(t, out, 2)
}

func TestSubsumptionAfterDedup(t *testing.T) {
	in := [][]int{{1, 2}, {2, 1}, {1, 2, 3}}
	out := SubsumeClauses(DedupClauses(in))
	require.Len(t, out, 1)
	require.Equal(t, []int{1, 2}, out[0])
}
