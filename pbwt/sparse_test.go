package pbwt

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func collectSparseMatches(t *testing.T, run func(report SparseReporter) error) []Match {
	t.Helper()
	var got []Match
	require.NoError(t, run(func(a, b, s, e int, isSparse bool) error {
		require.True(t, isSparse)
		got = append(got, Match{AIdx: a, BIdx: b, Start: s, End: e})
		return nil
	}))
	sort.Slice(got, func(i, j int) bool {
		if got[i].BIdx != got[j].BIdx {
			return got[i].BIdx < got[j].BIdx
		}
		if got[i].AIdx != got[j].AIdx {
			return got[i].AIdx < got[j].AIdx
		}
		return got[i].Start < got[j].Start
	})
	return got
}

// TestTrivialPanelSparse is spec.md §8 scenario 1's sparse-sweep repeat:
// an identical panel matches end-to-end regardless of nSparse.
func TestTrivialPanelSparse(t *testing.T) {
	ref := newTestPanel([][]uint8{
		{0, 0, 0, 0},
	})
	query := newTestPanel([][]uint8{
		{0, 0, 0, 0},
	})
	got := collectSparseMatches(t, func(r SparseReporter) error {
		return SparseSweep(ref, query, Config{L: 1, NSparse: 2}, r)
	})
	// Both phase sub-panels (even sites {0,2}, odd sites {1,3}) see an
	// unbroken match the whole way through, so each independently reports
	// a match from its own first site to the end: [0,4) for the even phase,
	// [1,4) for the odd one. The two phases are not deduplicated against
	// each other (spec.md §4.7).
	require.Equal(t, []Match{
		{AIdx: 0, BIdx: 0, Start: 0, End: 4},
		{AIdx: 0, BIdx: 0, Start: 1, End: 4},
	}, got)
}

// TestSparseRecoversLongMatch is spec.md §8 scenario 5: a single flip on
// an odd site splits the dense (all-sites) match into two short matches,
// but is invisible to the nSparse=2 sub-panel that only ever looks at
// even sites, so the sparse sweep recovers one long match spanning the
// whole even-indexed subsequence that the dense sweep could not see.
func TestSparseRecoversLongMatch(t *testing.T) {
	ref := newTestPanel([][]uint8{
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	})
	query := newTestPanel([][]uint8{
		{0, 0, 0, 0, 0, 1, 0, 0, 0, 0}, // flip at site 5 (odd)
	})

	naive := collectPanelQueryMatches(t, func(r Reporter) error {
		return NaiveMatch(ref, query, Config{NSparse: 1}, r)
	})
	for _, m := range naive {
		require.Less(t, m.End-m.Start, 10, "dense matcher should split around the single flip")
	}

	got := collectSparseMatches(t, func(r SparseReporter) error {
		return SparseSweep(ref, query, Config{NSparse: 2}, r)
	})
	var sawFullEvenRun bool
	for _, m := range got {
		if m.AIdx == 0 && m.Start == 0 && m.End == 10 {
			sawFullEvenRun = true
		}
	}
	require.True(t, sawFullEvenRun, "sparse sweep (nSparse=2) should recover the full even-phase run against row 0: %v", got)
}

// TestSparseSweepRejectsBadNSparse checks spec.md §7.
func TestSparseSweepRejectsBadNSparse(t *testing.T) {
	p := newTestPanel([][]uint8{{0}, {1}})
	err := SparseSweep(p, p, Config{NSparse: 0}, func(int, int, int, int, bool) error { return nil })
	require.Error(t, err)
}
