package panelcache

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseS3URL(t *testing.T) {
	bucket, key, err := parseS3URL("s3://my-bucket/some/path/panel.pbwt")
	require.NoError(t, err)
	require.Equal(t, "my-bucket", bucket)
	require.Equal(t, "some/path/panel.pbwt", key)

	_, _, err = parseS3URL("https://example.com/panel.pbwt")
	require.Error(t, err)
}

func TestCachePathDeterministicAndDistinct(t *testing.T) {
	p1 := cachePath("/tmp/cache", "s3://bucket/a/panel.pbwt")
	p2 := cachePath("/tmp/cache", "s3://bucket/a/panel.pbwt")
	require.Equal(t, p1, p2)

	p3 := cachePath("/tmp/cache", "s3://bucket/b/panel.pbwt")
	require.NotEqual(t, p1, p3)
}

// TestFetchLocalPathPassthrough checks that a non-s3:// path is returned
// unchanged without any network access.
func TestFetchLocalPathPassthrough(t *testing.T) {
	got, err := Fetch("/tmp/whatever-cache-dir", "/local/panel.pbwt")
	require.NoError(t, err)
	require.Equal(t, "/local/panel.pbwt", got)
}
