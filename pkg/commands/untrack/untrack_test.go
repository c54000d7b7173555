package untrack_test

import (
	"context"
	"testing"

	"github.com/arthur-debert/dotsync/pkg/commands/untrack"
	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/testutil"
	"github.com/arthur-debert/dotsync/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUntrackFiles_ExactMatch(t *testing.T) {
	env := testutil.NewTestEnvironment(t, nil)
	env.SetManifest(".bashrc", ".config/nvim", ".vimrc")

	result, err := untrack.UntrackFiles(context.Background(), untrack.UntrackFilesOptions{
		Config: env.Config,
		Paths:  []string{".vimrc", ".config/nvim/"},
	})

	require.NoError(t, err)
	assert.Equal(t, []types.TrackedPath{".vimrc"}, result.Removed)
	assert.Equal(t, []string{".config/nvim/"}, result.NotFound, "trailing slash does not match")
	assert.False(t, result.AllCleared)
	assert.Equal(t, ".bashrc\n.config/nvim\n", env.ManifestContent())
}

func TestUntrackFiles_All(t *testing.T) {
	env := testutil.NewTestEnvironment(t, nil)
	env.SetManifest(".bashrc", ".vimrc")

	result, err := untrack.UntrackFiles(context.Background(), untrack.UntrackFilesOptions{
		Config: env.Config,
		Paths:  []string{".bashrc"},
		All:    true,
	})

	require.NoError(t, err)
	assert.True(t, result.AllCleared)
	assert.Equal(t, []types.TrackedPath{".bashrc", ".vimrc"}, result.Removed)
	assert.FileExists(t, env.Config.ManifestPath(), "the manifest is emptied, not deleted")
	assert.Empty(t, env.ManifestContent())
}

func TestUntrackFiles_NoPaths(t *testing.T) {
	env := testutil.NewTestEnvironment(t, nil)

	_, err := untrack.UntrackFiles(context.Background(), untrack.UntrackFilesOptions{Config: env.Config})

	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
