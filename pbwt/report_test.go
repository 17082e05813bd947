package pbwt

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	require.NoError(t, Config{L: 0, NSparse: 1}.Validate())
	require.Error(t, Config{L: -1, NSparse: 1}.Validate())
	require.Error(t, Config{L: 0, NSparse: 0}.Validate())
}

func TestNewTextReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextReporter(&buf)
	require.NoError(t, r(0, 1, 2, 9))
	require.NoError(t, r(3, 3, 5, 5)) // empty match, silently dropped
	require.Equal(t, "MATCH\t0\t1\t2\t9\t7\n", buf.String())
}

func TestNewSparseTextReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewSparseTextReporter(&buf)
	require.NoError(t, r(0, 1, 2, 9, true))
	require.Equal(t, "MATCH\t0\t1\t2\t9\t7\ttrue\n", buf.String())
}

func TestMatchRangeOrdering(t *testing.T) {
	a := Match{Start: 1, End: 4}.Range()
	b := Match{Start: 1, End: 5}.Range()
	c := Match{Start: 2, End: 3}.Range()

	require.True(t, a.LT(b))
	require.True(t, a.LE(a))
	require.True(t, b.GT(a))
	require.True(t, a.EQ(a))
	require.True(t, a.Overlaps(c))
	require.False(t, a.Overlaps(SiteRange{Start: 4, End: 6}))
	require.Equal(t, 4, b.Len())
}
