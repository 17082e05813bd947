package pbwtio

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/grailbio/base/vcontext"
	"github.com/stretchr/testify/require"
)

func randomHaps(m, n int, seed uint64) [][]uint8 {
	state := seed | 1
	next := func() uint64 {
		state = state*6364136223846793005 + 1442695040888963407
		return state
	}
	haps := make([][]uint8, m)
	for i := range haps {
		row := make([]uint8, n)
		for k := range row {
			row[k] = uint8(next() >> 63)
		}
		haps[i] = row
	}
	return haps
}

// TestWriteReadPanelRoundTrip checks SPEC_FULL.md §8's on-disk round-trip
// property: Write followed by Read reconstructs an identical haplotype
// matrix.
func TestWriteReadPanelRoundTrip(t *testing.T) {
	dir, err := ioutil.TempDir("", "pbwtio-codec-test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	haps := randomHaps(6, 37, 99)
	p, err := NewMemPanelFromHaplotypes(haps)
	require.NoError(t, err)

	ctx := vcontext.Background()
	path := filepath.Join(dir, "panel.pbwt")
	require.NoError(t, WritePanel(ctx, path, p))

	got, err := ReadPanel(ctx, path)
	require.NoError(t, err)
	require.Equal(t, p.NumHaplotypes(), got.NumHaplotypes())
	require.Equal(t, p.NumSites(), got.NumSites())

	wantHaps, err := p.Haplotypes()
	require.NoError(t, err)
	gotHaps, err := got.Haplotypes()
	require.NoError(t, err)
	require.Equal(t, wantHaps, gotHaps)
}

// TestReadPanelRejectsBadMagic checks that a file without the expected
// header is rejected before any block is decoded.
func TestReadPanelRejectsBadMagic(t *testing.T) {
	dir, err := ioutil.TempDir("", "pbwtio-codec-test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "bad.pbwt")
	require.NoError(t, ioutil.WriteFile(path, []byte("not a panel file at all"), 0644))

	_, err = ReadPanel(vcontext.Background(), path)
	require.Error(t, err)
}

// TestReadPanelRejectsCorruptBlock checks SPEC_FULL.md §7: a checksum
// mismatch on a panel block is a fatal structural error, caught before
// any symbol is decoded.
func TestReadPanelRejectsCorruptBlock(t *testing.T) {
	dir, err := ioutil.TempDir("", "pbwtio-codec-test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	haps := randomHaps(3, 10, 5)
	p, err := NewMemPanelFromHaplotypes(haps)
	require.NoError(t, err)

	ctx := vcontext.Background()
	path := filepath.Join(dir, "panel.pbwt")
	require.NoError(t, WritePanel(ctx, path, p))

	raw, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	// Flip a byte well past the header, inside the first compressed
	// block, so its checksum no longer matches.
	raw[20] ^= 0xFF
	require.NoError(t, ioutil.WriteFile(path, raw, 0644))

	_, err = ReadPanel(ctx, path)
	require.Error(t, err)
}
