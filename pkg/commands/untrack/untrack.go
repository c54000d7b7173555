package untrack

import (
	"context"

	"github.com/arthur-debert/dotsync/pkg/commands/internal"
	"github.com/arthur-debert/dotsync/pkg/config"
	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/logging"
	"github.com/arthur-debert/dotsync/pkg/manifest"
	"github.com/spf13/afero"
)

// UntrackFilesOptions holds options for the rm command
type UntrackFilesOptions struct {
	Config *config.Config
	// Paths are matched literally against manifest entries
	Paths []string
	// All empties the manifest; Paths are ignored
	All bool
	// Fs allows injecting a filesystem for testing
	Fs afero.Fs
}

// UntrackFiles removes entries from the manifest. With All set the result
// has AllCleared and nothing else.
func UntrackFiles(ctx context.Context, opts UntrackFilesOptions) (*manifest.UntrackResult, error) {
	logger := logging.GetLogger("commands.untrack")
	logger.Info().
		Strs("paths", opts.Paths).
		Bool("all", opts.All).
		Msg("Untracking files")

	if !opts.All && len(opts.Paths) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "no paths given to remove; use --all to clear the list")
	}

	store := internal.OpenStore(opts.Config, opts.Fs)
	result, err := store.Untrack(ctx, opts.Paths, opts.All)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int("removed", len(result.Removed)).
		Int("not_found", len(result.NotFound)).
		Bool("all_cleared", result.AllCleared).
		Msg("Untrack completed")
	return result, nil
}
