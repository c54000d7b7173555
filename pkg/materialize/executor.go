package materialize

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/logging"
	"github.com/arthur-debert/dotsync/pkg/types"
	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/rs/zerolog"
)

// Executor performs the filesystem action for one entry. The destination's
// parent directory exists and the destination itself does not.
type Executor interface {
	Execute(ctx context.Context, mode types.SyncMode, source, destination string) error
}

// SynthfsExecutor runs each action as a synthfs operation on the OS
// filesystem. Hard links are not a synthfs primitive and run as a custom
// operation through the injected types.FS.
type SynthfsExecutor struct {
	filesystem filesystem.FullFileSystem
	links      types.FS
	logger     zerolog.Logger
}

// NewSynthfsExecutor creates an executor operating on absolute OS paths
func NewSynthfsExecutor(links types.FS) *SynthfsExecutor {
	osfs := filesystem.NewOSFileSystem("/")
	pathAwareFS := synthfs.NewPathAwareFileSystem(osfs, "/").WithAbsolutePaths()

	return &SynthfsExecutor{
		filesystem: pathAwareFS,
		links:      links,
		logger:     logging.GetLogger("materialize.executor"),
	}
}

// Execute implements Executor
func (e *SynthfsExecutor) Execute(ctx context.Context, mode types.SyncMode, source, destination string) error {
	sfs := synthfs.New()
	id := fmt.Sprintf("%s_%s_%d", mode, filepath.Base(destination), time.Now().UnixNano())

	var op synthfs.Operation
	code := errors.ErrLinkCreate
	switch mode {
	case types.ModeCopy:
		op = sfs.CopyWithID(id, source, destination)
		code = errors.ErrCopyFile
	case types.ModeSymlink:
		op = sfs.CreateSymlinkWithID(id, source, destination)
	case types.ModeHardlink:
		op = sfs.CustomOperationWithID(id, func(ctx context.Context, _ filesystem.FileSystem) error {
			return e.links.Link(source, destination)
		})
	default:
		return errors.Newf(errors.ErrValidation, "unknown sync mode %q", mode)
	}

	options := synthfs.DefaultPipelineOptions()
	options.RollbackOnError = false

	e.logger.Trace().
		Str("id", id).
		Str("mode", string(mode)).
		Str("source", source).
		Str("destination", destination).
		Msg("Running synthfs operation")

	if _, err := synthfs.RunWithOptions(ctx, e.filesystem, options, op); err != nil {
		return errors.Wrapf(err, code, "%s %s -> %s failed", mode, source, destination)
	}
	return nil
}
