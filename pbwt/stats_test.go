package pbwt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHistogram(t *testing.T) {
	h := NewHistogram()
	h.Add(3)
	h.Add(3)
	h.Add(1)
	h.Add(5)

	var lengths []int
	var counts []int64
	h.Do(func(length int, count int64) bool {
		lengths = append(lengths, length)
		counts = append(counts, count)
		return true
	})
	require.Equal(t, []int{1, 3, 5}, lengths)
	require.Equal(t, []int64{1, 2, 1}, counts)
}

func TestHistogramReporterFeedsAdd(t *testing.T) {
	h := NewHistogram()
	r := h.Reporter()
	require.NoError(t, r(0, 1, 2, 9))
	require.NoError(t, r(0, 2, 0, 3))

	got := map[int]int64{}
	h.Do(func(length int, count int64) bool {
		got[length] = count
		return true
	})
	require.Equal(t, map[int]int64{7: 1, 3: 1}, got)
}

func TestChecksumMatchesOrderIndependent(t *testing.T) {
	a := []Match{
		{AIdx: 0, BIdx: 1, Start: 0, End: 4},
		{AIdx: 2, BIdx: 3, Start: 1, End: 9},
	}
	b := []Match{a[1], a[0]}
	require.Equal(t, ChecksumMatches(a), ChecksumMatches(b))

	c := []Match{a[0], {AIdx: 2, BIdx: 3, Start: 1, End: 8}}
	require.NotEqual(t, ChecksumMatches(a), ChecksumMatches(c))
}
