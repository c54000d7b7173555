package track

import (
	"context"

	"github.com/arthur-debert/dotsync/pkg/commands/internal"
	"github.com/arthur-debert/dotsync/pkg/config"
	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/logging"
	"github.com/arthur-debert/dotsync/pkg/manifest"
	"github.com/spf13/afero"
)

// TrackFilesOptions holds options for the add command
type TrackFilesOptions struct {
	Config *config.Config
	// Paths are the files to track, absolute or relative to Cwd
	Paths []string
	// Cwd defaults to the process working directory
	Cwd string
	// Fs allows injecting a filesystem for testing
	Fs afero.Fs
}

// TrackFiles adds files under the home directory to the manifest. Files
// that are missing, not regular, or outside home are reported as skipped.
func TrackFiles(ctx context.Context, opts TrackFilesOptions) (*manifest.TrackResult, error) {
	logger := logging.GetLogger("commands.track")
	logger.Info().
		Strs("paths", opts.Paths).
		Msg("Tracking files")

	if len(opts.Paths) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "no files given to track")
	}

	cwd, err := internal.WorkingDir(opts.Cwd)
	if err != nil {
		return nil, err
	}

	store := internal.OpenStore(opts.Config, opts.Fs)
	result, err := store.Track(ctx, opts.Paths, opts.Config.HomeDir(), cwd)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int("added", len(result.Added)).
		Int("already_tracked", len(result.AlreadyTracked)).
		Int("skipped", len(result.Skipped)).
		Msg("Track completed")
	return result, nil
}
