package materialize

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotsync/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests run the default synthfs executor against real directories.

func materializeReal(t *testing.T, d syncDirs, mode types.SyncMode, entries ...types.TrackedPath) *Report {
	t.Helper()
	report, err := New(Options{}).Materialize(context.Background(), entries,
		types.SyncSpec{SourceDir: d.source, TargetDir: d.target, Mode: mode})
	require.NoError(t, err)
	require.NoError(t, report.Err())
	return report
}

func TestCopyProducesIndependentFiles(t *testing.T) {
	d := newDirs(t, map[string]string{".bashrc": "export PS1", ".config/i3/config": "bindsym $mod+Return"})

	report := materializeReal(t, d, types.ModeCopy, ".bashrc", ".config/i3/config")
	assert.Equal(t, 2, report.Materialized())

	for rel, want := range map[string]string{".bashrc": "export PS1", ".config/i3/config": "bindsym $mod+Return"} {
		dest := filepath.Join(d.target, filepath.FromSlash(rel))
		got, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Equal(t, want, string(got))

		srcInfo, err := os.Stat(filepath.Join(d.source, filepath.FromSlash(rel)))
		require.NoError(t, err)
		destInfo, err := os.Lstat(dest)
		require.NoError(t, err)
		assert.True(t, destInfo.Mode().IsRegular())
		assert.False(t, os.SameFile(srcInfo, destInfo), "copy must be a distinct file")
	}

	info, err := os.Stat(filepath.Join(d.target, ".config", "i3"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestHardlinkSharesData(t *testing.T) {
	d := newDirs(t, map[string]string{".gitconfig": "[user]"})

	materializeReal(t, d, types.ModeHardlink, ".gitconfig")

	src := filepath.Join(d.source, ".gitconfig")
	dest := filepath.Join(d.target, ".gitconfig")
	require.NoError(t, os.WriteFile(src, []byte("[user]\nname = u"), 0644))

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "[user]\nname = u", string(got))
}

func TestSymlinkPointsAtAbsoluteSource(t *testing.T) {
	d := newDirs(t, map[string]string{".config/nvim/init.lua": "vim.o.number = true"})

	materializeReal(t, d, types.ModeSymlink, ".config/nvim/init.lua")

	dest := filepath.Join(d.target, ".config", "nvim", "init.lua")
	info, err := os.Lstat(dest)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink)

	target, err := os.Readlink(dest)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(d.source, ".config", "nvim", "init.lua"), target)
}

func TestExistingDestinationScenario(t *testing.T) {
	d := newDirs(t, map[string]string{".vimrc": "from source"})
	dest := filepath.Join(d.target, ".vimrc")
	require.NoError(t, os.WriteFile(dest, []byte("keep me"), 0600))

	report := materializeReal(t, d, types.ModeCopy, ".vimrc")
	assert.Equal(t, StatusSkippedExists, report.Entries[0].Status)

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(got))
}
