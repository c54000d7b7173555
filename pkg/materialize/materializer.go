package materialize

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotsync/pkg/errors"
	dsfs "github.com/arthur-debert/dotsync/pkg/filesystem"
	"github.com/arthur-debert/dotsync/pkg/logging"
	"github.com/arthur-debert/dotsync/pkg/types"
	"github.com/rs/zerolog"
)

const dirPerm = 0755

// Options configures a Materializer. Zero values use the OS filesystem and
// the synthfs executor.
type Options struct {
	FS       types.FS
	Executor Executor
}

// Materializer reproduces manifest entries between two directories
type Materializer struct {
	fs       types.FS
	executor Executor
	logger   zerolog.Logger
}

// New creates a Materializer
func New(opts Options) *Materializer {
	fsys := opts.FS
	if fsys == nil {
		fsys = dsfs.NewOS()
	}
	executor := opts.Executor
	if executor == nil {
		executor = NewSynthfsExecutor(fsys)
	}
	return &Materializer{
		fs:       fsys,
		executor: executor,
		logger:   logging.GetLogger("materialize"),
	}
}

// Materialize reproduces each entry found under spec.SourceDir at the same
// relative path under spec.TargetDir, in entry order.
//
// The returned error is non-nil only for structural problems: invalid
// directories, an unwritable target, or context cancellation. Per-entry
// failures are recorded in the report; use Report.Err to collect them.
func (m *Materializer) Materialize(ctx context.Context, entries []types.TrackedPath, spec types.SyncSpec) (*Report, error) {
	done := logging.LogOperationStart(m.logger, "materialize")
	defer done()

	if err := m.validate(spec); err != nil {
		return nil, err
	}

	spec.SourceDir = filepath.Clean(spec.SourceDir)
	spec.TargetDir = filepath.Clean(spec.TargetDir)
	report := &Report{Spec: spec}

	m.logger.Info().
		Str("source", spec.SourceDir).
		Str("target", spec.TargetDir).
		Str("mode", string(spec.Mode)).
		Bool("dry_run", spec.DryRun).
		Int("entries", len(entries)).
		Msg("Materializing tracked files")

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		result, fatal := m.materializeEntry(ctx, entry, spec)
		report.add(result)
		m.logResult(result)

		if fatal != nil {
			return report, fatal
		}
	}

	m.logger.Info().
		Int("materialized", report.Materialized()).
		Int("skipped", report.Skipped()).
		Int("failed", report.Failed()).
		Msg("Materialization finished")

	return report, nil
}

// materializeEntry handles one entry. A non-nil second return value aborts
// the whole pass.
func (m *Materializer) materializeEntry(ctx context.Context, entry types.TrackedPath, spec types.SyncSpec) (EntryResult, error) {
	result := EntryResult{Path: entry}

	if err := checkTrackedPath(entry); err != nil {
		result.Status = StatusFailed
		result.Err = err
		return result, nil
	}

	dir, base := entry.Split()
	result.Source = filepath.Join(spec.SourceDir, filepath.FromSlash(string(entry)))
	result.Destination = filepath.Join(spec.TargetDir, filepath.FromSlash(dir), base)

	info, err := m.fs.Stat(result.Source)
	switch {
	case err != nil:
		result.Status = StatusSkippedMissing
		result.Err = errors.Wrapf(err, errors.ErrFileNotFound, "source missing: %s", result.Source)
		return result, nil
	case !info.Mode().IsRegular():
		result.Status = StatusSkippedMissing
		result.Err = errors.Newf(errors.ErrNotRegularFile, "source is not a regular file: %s", result.Source)
		return result, nil
	}

	if _, err := m.fs.Lstat(result.Destination); err == nil {
		result.Status = StatusSkippedExists
		result.Err = errors.Newf(errors.ErrAlreadyExists, "already exists: %s", result.Destination)
		return result, nil
	} else if !os.IsNotExist(err) {
		result.Status = StatusFailed
		result.Err = errors.Wrapf(err, errors.ErrFileNotFound, "cannot inspect destination %s", result.Destination)
		return result, nil
	}

	if spec.DryRun {
		result.Status = StatusPlanned
		return result, nil
	}

	parent := filepath.Dir(result.Destination)
	if err := m.fs.MkdirAll(parent, dirPerm); err != nil {
		wrapped := errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", parent)
		result.Status = StatusFailed
		result.Err = wrapped
		if stderrors.Is(err, fs.ErrPermission) {
			return result, wrapped
		}
		return result, nil
	}

	if err := m.executor.Execute(ctx, spec.Mode, result.Source, result.Destination); err != nil {
		result.Status = StatusFailed
		result.Err = err
		if stderrors.Is(err, fs.ErrPermission) {
			return result, err
		}
		return result, nil
	}

	result.Status = statusForMode[spec.Mode]
	return result, nil
}

func (m *Materializer) validate(spec types.SyncSpec) error {
	if !spec.Mode.IsValid() {
		return errors.Newf(errors.ErrValidation, "unknown sync mode %q", spec.Mode)
	}
	if err := m.validateDir("source", spec.SourceDir); err != nil {
		return err
	}
	if err := m.validateDir("target", spec.TargetDir); err != nil {
		return err
	}
	if spec.DryRun {
		return nil
	}
	if err := m.fs.Writable(spec.TargetDir); err != nil {
		return errors.Wrapf(err, errors.ErrValidation, "target directory %s is not writable", spec.TargetDir).
			WithDetail("path", spec.TargetDir)
	}
	return nil
}

func (m *Materializer) validateDir(role, dir string) error {
	if dir == "" {
		return errors.Newf(errors.ErrValidation, "%s directory not given", role)
	}
	if !filepath.IsAbs(dir) {
		return errors.Newf(errors.ErrValidation, "%s directory must be absolute: %s", role, dir)
	}
	info, err := m.fs.Stat(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrValidation, "%s directory %s does not exist", role, dir).
			WithDetail("path", dir)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrValidation, "%s %s is not a directory", role, dir).
			WithDetail("path", dir)
	}
	return nil
}

// checkTrackedPath rejects entries that would escape the target directory,
// which can only come from a hand-edited manifest
func checkTrackedPath(p types.TrackedPath) error {
	s := string(p)
	if s == "" || strings.HasPrefix(s, "/") || strings.ContainsAny(s, "\r\n") {
		return errors.Newf(errors.ErrInvalidInput, "invalid tracked path %q", s)
	}
	for _, segment := range strings.Split(s, "/") {
		if segment == ".." {
			return errors.Newf(errors.ErrInvalidInput, "tracked path %q leaves the base directory", s)
		}
	}
	return nil
}

func (m *Materializer) logResult(r EntryResult) {
	switch {
	case r.Status == StatusFailed:
		m.logger.Error().Err(r.Err).Str("path", string(r.Path)).Msg("Failed to materialize")
	case r.IsSkipped():
		m.logger.Warn().Err(r.Err).Str("path", string(r.Path)).Str("status", string(r.Status)).Msg("Skipped")
	default:
		m.logger.Info().
			Str("path", string(r.Path)).
			Str("destination", r.Destination).
			Str("status", string(r.Status)).
			Msg("Materialized")
	}
}
