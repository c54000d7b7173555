package dotsync

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI with args and returns stdout and stderr
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	rootCmd := NewRootCmd()
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--no-color"}, args...))

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestAddThenList(t *testing.T) {
	env := testutil.NewTestEnvironment(t, nil)
	bashrc := env.WriteFile(env.HomeDir, ".bashrc", "export PS1='$ '\n")
	i3 := env.WriteFile(env.HomeDir, ".config/i3/config", "font pango:mono 10\n")

	out, _, err := run(t, "add", i3, bashrc, filepath.Join(env.HomeDir, ".missing"))
	require.NoError(t, err)
	assert.Contains(t, out, "added    .bashrc\n")
	assert.Contains(t, out, "added    .config/i3/config\n")
	assert.Contains(t, out, "skipped  "+filepath.Join(env.HomeDir, ".missing"))

	out, _, err = run(t, "ls")
	require.NoError(t, err)
	assert.Equal(t, ".bashrc\n.config/i3/config\n", out)
}

func TestListEmptyWritesHintToStderr(t *testing.T) {
	testutil.NewTestEnvironment(t, nil)

	out, errOut, err := run(t, "list")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, MsgEmptyList)
}

func TestCommandsLogToStateDir(t *testing.T) {
	env := testutil.NewTestEnvironment(t, nil)

	_, _, err := run(t, "list")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(env.StateDir, "dotsync", "dotsync.log"))
	assert.NoError(t, err)
}

func TestRmAll(t *testing.T) {
	env := testutil.NewTestEnvironment(t, nil)
	env.SetManifest(".bashrc", ".vimrc")

	out, _, err := run(t, "rm", "--all")
	require.NoError(t, err)
	assert.Equal(t, "cleared all tracked files\n", out)
	assert.Empty(t, env.ManifestContent())
}

func TestRmRequiresPathsWithoutAll(t *testing.T) {
	testutil.NewTestEnvironment(t, nil)

	_, _, err := run(t, "rm")
	assert.Error(t, err)
}

func TestLinkHardlinksIntoDir(t *testing.T) {
	env := testutil.NewTestEnvironment(t, nil)
	vimrc := env.WriteFile(env.HomeDir, ".vimrc", "set nu\n")
	env.SetManifest(".vimrc")

	out, _, err := run(t, "link", env.SyncDir)
	require.NoError(t, err)
	assert.Contains(t, out, "hardlinked        .vimrc\n")
	assert.Contains(t, out, "1 materialized, 0 skipped, 0 failed\n")
	testutil.AssertHardlinked(t, vimrc, filepath.Join(env.SyncDir, ".vimrc"))
}

func TestLinkSymbolic(t *testing.T) {
	env := testutil.NewTestEnvironment(t, nil)
	vimrc := env.WriteFile(env.HomeDir, ".vimrc", "set nu\n")
	env.SetManifest(".vimrc")

	_, _, err := run(t, "ln", "--symbolic", env.SyncDir)
	require.NoError(t, err)
	testutil.AssertSymlinkTo(t, filepath.Join(env.SyncDir, ".vimrc"), vimrc)
}

func TestCopyUsesConfiguredSyncDir(t *testing.T) {
	env := testutil.NewTestEnvironment(t, nil)
	t.Setenv("DOTSYNC_SYNC_DIR", env.SyncDir)
	gitconfig := env.WriteFile(env.HomeDir, ".gitconfig", "[user]\n")
	env.SetManifest(".gitconfig")

	_, _, err := run(t, "cp")
	require.NoError(t, err)
	testutil.AssertCopied(t, gitconfig, filepath.Join(env.SyncDir, ".gitconfig"))
}

func TestSyncFromDirIntoHome(t *testing.T) {
	env := testutil.NewTestEnvironment(t, nil)
	src := env.WriteFile(env.SyncDir, ".config/i3/config", "font pango:mono 10\n")
	env.SetManifest(".config/i3/config")

	_, _, err := run(t, "sync", "--copy", env.SyncDir)
	require.NoError(t, err)
	testutil.AssertCopied(t, src, filepath.Join(env.HomeDir, ".config/i3/config"))
}

func TestSyncRejectsCopyAndSymbolic(t *testing.T) {
	env := testutil.NewTestEnvironment(t, nil)

	_, _, err := run(t, "sync", "--copy", "--symbolic", env.SyncDir)
	assert.Error(t, err)
}

func TestSyncDirsDryRun(t *testing.T) {
	env := testutil.NewTestEnvironment(t, nil)
	src := filepath.Join(env.SyncDir, "a")
	dst := filepath.Join(env.SyncDir, "b")
	env.WriteFile(src, ".profile", "umask 022\n")
	env.WriteFile(dst, ".keep", "")
	env.SetManifest(".profile")

	out, _, err := run(t, "--dry-run", "sync-dirs", src, dst)
	require.NoError(t, err)
	assert.Contains(t, out, "[dry run]")
	assert.Contains(t, out, "would-materialize .profile\n")
	testutil.AssertNotExists(t, filepath.Join(dst, ".profile"))
}

func TestSyncMissingDirIsValidationError(t *testing.T) {
	env := testutil.NewTestEnvironment(t, nil)

	_, _, err := run(t, "link", filepath.Join(env.SyncDir, "nope"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrValidation))
}

func TestSyncFailedEntryReturnsError(t *testing.T) {
	env := testutil.NewTestEnvironment(t, nil)
	env.WriteFile(env.HomeDir, ".config/app/rc", "x\n")
	env.WriteFile(env.HomeDir, ".vimrc", "set nu\n")
	// a file where the target needs a directory
	env.WriteFile(env.SyncDir, ".config", "not a dir\n")
	env.SetManifest(".config/app/rc", ".vimrc")

	out, _, err := run(t, "copy", env.SyncDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 tracked files failed")
	assert.Contains(t, out, "failed            .config/app/rc")
	assert.Contains(t, out, "copied            .vimrc")
	assert.Contains(t, out, "1 materialized, 0 skipped, 1 failed\n")
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "dotsync version ")
}

func TestCompletion(t *testing.T) {
	out, _, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "dotsync")
}
