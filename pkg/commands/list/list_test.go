package list_test

import (
	"testing"

	"github.com/arthur-debert/dotsync/pkg/commands/list"
	"github.com/arthur-debert/dotsync/pkg/testutil"
	"github.com/arthur-debert/dotsync/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTracked_FreshInstall(t *testing.T) {
	env := testutil.NewTestEnvironment(t, nil)

	entries, err := list.ListTracked(list.ListTrackedOptions{Config: env.Config})

	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.FileExists(t, env.Config.ManifestPath(), "first use creates the manifest")
}

func TestListTracked_StoredOrder(t *testing.T) {
	env := testutil.NewTestEnvironment(t, nil)
	env.SetManifest(".zshrc", ".bashrc", ".config/i3/config")

	entries, err := list.ListTracked(list.ListTrackedOptions{Config: env.Config})

	require.NoError(t, err)
	assert.Equal(t, []types.TrackedPath{".bashrc", ".config/i3/config", ".zshrc"}, entries)
}
