package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertFileContent checks that path is a regular file holding content
func AssertFileContent(t *testing.T, path, content string) {
	t.Helper()

	info, err := os.Lstat(path)
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular(), "%s should be a regular file", path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

// AssertHardlinked checks that a and b are the same inode
func AssertHardlinked(t *testing.T, a, b string) {
	t.Helper()

	infoA, err := os.Lstat(a)
	require.NoError(t, err)
	infoB, err := os.Lstat(b)
	require.NoError(t, err)
	assert.True(t, os.SameFile(infoA, infoB), "%s and %s should be hard links", a, b)
}

// AssertCopied checks that dst has src's content but is a separate file
func AssertCopied(t *testing.T, src, dst string) {
	t.Helper()

	want, err := os.ReadFile(src)
	require.NoError(t, err)
	AssertFileContent(t, dst, string(want))

	infoSrc, err := os.Stat(src)
	require.NoError(t, err)
	infoDst, err := os.Stat(dst)
	require.NoError(t, err)
	assert.False(t, os.SameFile(infoSrc, infoDst), "%s should be an independent copy", dst)
}

// AssertSymlinkTo checks that link is a symlink whose target is exactly target
func AssertSymlinkTo(t *testing.T, link, target string) {
	t.Helper()

	info, err := os.Lstat(link)
	require.NoError(t, err)
	require.True(t, info.Mode()&os.ModeSymlink != 0, "%s should be a symlink", link)

	got, err := os.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, target, got)
}

// AssertNotExists checks that nothing, not even a dangling link, is at path
func AssertNotExists(t *testing.T, path string) {
	t.Helper()

	_, err := os.Lstat(path)
	assert.True(t, os.IsNotExist(err), "%s should not exist", path)
}
