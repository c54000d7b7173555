// Package sync implements the link, copy, sync and sync-dirs commands.
package sync

import (
	"context"

	"github.com/arthur-debert/dotsync/pkg/commands/internal"
	"github.com/arthur-debert/dotsync/pkg/config"
	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/logging"
	"github.com/arthur-debert/dotsync/pkg/materialize"
	"github.com/arthur-debert/dotsync/pkg/types"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Direction selects the source and target of a sync
type Direction int

const (
	// ToDir reproduces home files under the sync dir (link, copy)
	ToDir Direction = iota
	// FromDir reproduces sync dir files under home (sync)
	FromDir
	// Between uses the explicit Source and Target (sync-dirs)
	Between
)

func (d Direction) String() string {
	switch d {
	case ToDir:
		return "to-dir"
	case FromDir:
		return "from-dir"
	case Between:
		return "between"
	}
	return "unknown"
}

// SyncFilesOptions holds options for the materializing commands
type SyncFilesOptions struct {
	Config    *config.Config
	Direction Direction

	// Dir is the explicit sync dir for ToDir and FromDir. When empty the
	// configured sync.dir is used, then the git root of Cwd.
	Dir string
	// Source and Target are used by Between
	Source string
	Target string

	// Mode defaults to the configured sync.mode
	Mode   types.SyncMode
	DryRun bool

	// Cwd defaults to the process working directory
	Cwd string

	// Fs and Materializer allow injection for testing
	Fs           afero.Fs
	Materializer *materialize.Materializer
}

// SyncFiles materializes every manifest entry from the source directory to
// the target directory. Per-entry skips and failures are in the report;
// the error is reserved for problems that stop the whole run.
func SyncFiles(ctx context.Context, opts SyncFilesOptions) (*materialize.Report, error) {
	logger := logging.GetLogger("commands.sync")

	spec, err := buildSpec(logger, opts)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("direction", opts.Direction.String()).
		Str("source", spec.SourceDir).
		Str("target", spec.TargetDir).
		Str("mode", string(spec.Mode)).
		Bool("dry_run", spec.DryRun).
		Msg("Syncing tracked files")

	entries, err := internal.OpenStore(opts.Config, opts.Fs).List()
	if err != nil {
		return nil, err
	}

	m := opts.Materializer
	if m == nil {
		m = materialize.New(materialize.Options{})
	}

	report, err := m.Materialize(ctx, entries, spec)
	if report != nil {
		logger.Info().
			Int("materialized", report.Materialized()).
			Int("skipped", report.Skipped()).
			Int("failed", report.Failed()).
			Msg("Sync completed")
	}
	return report, err
}

func buildSpec(logger zerolog.Logger, opts SyncFilesOptions) (types.SyncSpec, error) {
	cfg := opts.Config
	spec := types.SyncSpec{Mode: opts.Mode, DryRun: opts.DryRun}
	if spec.Mode == "" {
		spec.Mode = cfg.Sync.Mode
	}
	if !spec.Mode.IsValid() {
		return spec, errors.Newf(errors.ErrValidation, "unknown sync mode %q", spec.Mode)
	}

	cwd, err := internal.WorkingDir(opts.Cwd)
	if err != nil {
		return spec, err
	}

	switch opts.Direction {
	case ToDir, FromDir:
		dir, usedFallback, err := cfg.SyncDir(opts.Dir, cwd)
		if err != nil {
			return spec, err
		}
		if usedFallback {
			logger.Info().Str("dir", dir).Msg("Using git repository root as sync dir")
		}
		if opts.Direction == ToDir {
			spec.SourceDir, spec.TargetDir = cfg.HomeDir(), dir
		} else {
			spec.SourceDir, spec.TargetDir = dir, cfg.HomeDir()
		}
	case Between:
		if opts.Source == "" || opts.Target == "" {
			return spec, errors.New(errors.ErrValidation, "both source and target directories are required")
		}
		spec.SourceDir = cfg.Paths.AbsDir(opts.Source, cwd)
		spec.TargetDir = cfg.Paths.AbsDir(opts.Target, cwd)
	default:
		return spec, errors.Newf(errors.ErrInternal, "unknown sync direction %d", opts.Direction)
	}
	return spec, nil
}
