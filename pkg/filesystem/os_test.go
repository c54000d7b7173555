package filesystem

import (
	iofs "io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOS(t *testing.T) {
	fs := NewOS()
	assert.NotNil(t, fs)

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.txt")
	testContent := []byte("hello world")

	require.NoError(t, fs.WriteFile(testFile, testContent, 0644))

	info, err := fs.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, "test.txt", info.Name())
	assert.Equal(t, int64(len(testContent)), info.Size())

	content, err := fs.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, testContent, content)

	subDir := filepath.Join(tmpDir, "sub", "dir")
	require.NoError(t, fs.MkdirAll(subDir, 0755))
	info, err = fs.Stat(subDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestOSWritable(t *testing.T) {
	fsys := NewOS()
	tmpDir := t.TempDir()
	assert.NoError(t, fsys.Writable(tmpDir))

	if os.Geteuid() == 0 {
		t.Skip("root bypasses directory permissions")
	}
	locked := filepath.Join(tmpDir, "locked")
	require.NoError(t, os.Mkdir(locked, 0555))
	t.Cleanup(func() { _ = os.Chmod(locked, 0755) })

	err := fsys.Writable(locked)
	require.Error(t, err)
	assert.ErrorIs(t, err, iofs.ErrPermission)
}

func TestOSLinks(t *testing.T) {
	fs := NewOS()
	tmpDir := t.TempDir()

	src := filepath.Join(tmpDir, "src")
	require.NoError(t, fs.WriteFile(src, []byte("data"), 0644))

	hard := filepath.Join(tmpDir, "hard")
	require.NoError(t, fs.Link(src, hard))
	srcInfo, err := fs.Stat(src)
	require.NoError(t, err)
	hardInfo, err := fs.Stat(hard)
	require.NoError(t, err)
	assert.True(t, os.SameFile(srcInfo, hardInfo), "hard link should share the inode")

	sym := filepath.Join(tmpDir, "sym")
	require.NoError(t, os.Symlink(src, sym))
	info, err := fs.Lstat(sym)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink)
}
