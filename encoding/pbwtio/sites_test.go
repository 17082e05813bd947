package pbwtio

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/grailbio/base/vcontext"
	"github.com/stretchr/testify/require"
)

func TestReadSitesFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "pbwtio-sites-test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "sites.txt")
	content := "# projection sites\n0\n\n5\n12\n"
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0644))

	sites, err := ReadSitesFile(vcontext.Background(), path)
	require.NoError(t, err)
	require.Equal(t, []int{0, 5, 12}, sites)
}

func TestReadSitesFileRejectsNonInteger(t *testing.T) {
	dir, err := ioutil.TempDir("", "pbwtio-sites-test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "sites.txt")
	require.NoError(t, ioutil.WriteFile(path, []byte("0\nabc\n"), 0644))

	_, err = ReadSitesFile(vcontext.Background(), path)
	require.Error(t, err)
}
