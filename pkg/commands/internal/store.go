// Package internal holds helpers shared by the command implementations.
package internal

import (
	"os"

	"github.com/arthur-debert/dotsync/pkg/config"
	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/manifest"
	"github.com/spf13/afero"
)

// OpenStore returns the manifest store described by cfg. A nil fs means the
// OS filesystem.
func OpenStore(cfg *config.Config, fs afero.Fs) *manifest.Store {
	return manifest.NewStore(manifest.StoreOptions{
		Fs:   fs,
		Path: cfg.ManifestPath(),
		Lock: cfg.Manifest.Lock,
	})
}

// WorkingDir returns cwd, or the process working directory when empty
func WorkingDir(cwd string) (string, error) {
	if cwd != "" {
		return cwd, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to get working directory")
	}
	return wd, nil
}
