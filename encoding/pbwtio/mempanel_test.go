package pbwtio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemPanelBasics(t *testing.T) {
	haps := [][]uint8{
		{0, 1, 0, 1},
		{1, 1, 0, 0},
		{0, 0, 0, 1},
	}
	p, err := NewMemPanelFromHaplotypes(haps)
	require.NoError(t, err)
	require.Equal(t, 3, p.NumHaplotypes())
	require.Equal(t, 4, p.NumSites())

	got, err := p.Haplotypes()
	require.NoError(t, err)
	require.Equal(t, haps, got)

	out := make([]uint8, 3)
	require.NoError(t, p.Column(2, []int{2, 1, 0}, out))
	require.Equal(t, []uint8{0, 0, 0}, out)

	cur, err := p.NewCursor()
	require.NoError(t, err)
	require.Equal(t, 3, cur.M())
}

func TestMemPanelShapeMismatch(t *testing.T) {
	_, err := NewMemPanelFromHaplotypes([][]uint8{{0, 1}, {0, 1, 1}})
	require.Error(t, err)
}

func TestMemPanelSelect(t *testing.T) {
	haps := [][]uint8{
		{0, 1, 0, 1, 1},
		{1, 1, 0, 0, 1},
	}
	p, err := NewMemPanelFromHaplotypes(haps)
	require.NoError(t, err)

	sub, err := p.Select([]int{1, 3, 4})
	require.NoError(t, err)
	require.Equal(t, 3, sub.NumSites())
	gotHaps, err := sub.Haplotypes()
	require.NoError(t, err)
	require.Equal(t, [][]uint8{
		{1, 1, 1},
		{1, 0, 1},
	}, gotHaps)

	_, err = p.Select([]int{10})
	require.Error(t, err)
}
