// Package editor opens the manifest file in the user's editor.
package editor

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/arthur-debert/dotsync/pkg/config"
	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/logging"
	"github.com/arthur-debert/dotsync/pkg/manifest"
)

// DefaultEditor is used when neither the config nor the environment names one
const DefaultEditor = "vi"

// Options configures Open
type Options struct {
	Config *config.Config

	// Stdio of the editor process, defaulting to the process' own
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Getenv defaults to os.Getenv
	Getenv func(string) string
}

// Command returns the editor argv. The configured command wins, then
// $VISUAL, then $EDITOR, then DefaultEditor. Commands are split on
// whitespace, so "code --wait" works but quoted arguments do not.
func Command(configured string, getenv func(string) string) []string {
	for _, candidate := range []string{configured, getenv("VISUAL"), getenv("EDITOR")} {
		if fields := strings.Fields(candidate); len(fields) > 0 {
			return fields
		}
	}
	return []string{DefaultEditor}
}

// Open launches the editor on the manifest, creating the file first if
// needed. Once the editor exits the manifest is rewritten in canonical
// form: sorted, deduplicated, blank lines dropped.
func Open(ctx context.Context, opts Options) error {
	log := logging.GetLogger("editor")
	cfg := opts.Config

	store := manifest.NewStore(manifest.StoreOptions{
		Path: cfg.ManifestPath(),
		Lock: cfg.Manifest.Lock,
	})
	if _, err := store.Load(); err != nil {
		return err
	}

	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	argv := Command(cfg.Editor.Command, getenv)
	args := append(argv[1:], store.Path())

	log.Info().
		Str("editor", argv[0]).
		Strs("args", args).
		Msg("Opening manifest in editor")

	cmd := exec.CommandContext(ctx, argv[0], args...)
	cmd.Stdin = orReader(opts.Stdin, os.Stdin)
	cmd.Stdout = orWriter(opts.Stdout, os.Stdout)
	cmd.Stderr = orWriter(opts.Stderr, os.Stderr)

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, errors.ErrEditor, "editor %s failed", argv[0]).
			WithDetail("manifest", store.Path())
	}

	// Update with a no-op rewrites the file through Parse and Bytes
	return store.Update(ctx, func(*manifest.Manifest) error { return nil })
}

func orReader(r, fallback io.Reader) io.Reader {
	if r != nil {
		return r
	}
	return fallback
}

func orWriter(w, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}
