package config

import (
	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/paths"
	"github.com/arthur-debert/dotsync/pkg/types"
)

// Config is the resolved dotsync configuration
type Config struct {
	Manifest ManifestConfig `koanf:"manifest"`
	Sync     SyncConfig     `koanf:"sync"`
	Editor   EditorConfig   `koanf:"editor"`

	// Paths holds the directories resolved at startup
	Paths *paths.Paths `koanf:"-"`
}

// ManifestConfig controls where and how the tracked-files list is stored
type ManifestConfig struct {
	File string `koanf:"file"`
	Lock bool   `koanf:"lock"`
}

// SyncConfig holds defaults for the materializing commands
type SyncConfig struct {
	Dir  string         `koanf:"dir"`
	Mode types.SyncMode `koanf:"mode"`
}

// EditorConfig configures `dotsync edit`
type EditorConfig struct {
	Command string `koanf:"command"`
}

// HomeDir returns the base directory tracked paths are relative to
func (c *Config) HomeDir() string {
	return c.Paths.HomeDir()
}

// ManifestPath returns the absolute location of the manifest file
func (c *Config) ManifestPath() string {
	return c.Paths.ManifestPath(c.Manifest.File)
}

// SyncDir returns the directory to use when a command was given none.
// An explicit dir wins, then the configured sync.dir, then the root of the
// git repository containing cwd. usedFallback reports the git case.
func (c *Config) SyncDir(explicit, cwd string) (dir string, usedFallback bool, err error) {
	switch {
	case explicit != "":
		dir = explicit
	case c.Sync.Dir != "":
		dir = c.Sync.Dir
	default:
		root, gitErr := paths.FindGitRoot(cwd)
		if gitErr != nil {
			return "", false, errors.Wrap(gitErr, errors.ErrValidation,
				"no directory given, sync.dir is not configured and the working directory is not in a git repository")
		}
		dir = root
		usedFallback = true
	}

	return c.Paths.AbsDir(dir, cwd), usedFallback, nil
}
