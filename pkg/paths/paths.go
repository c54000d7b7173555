package paths

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/types"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for dotsync
	EnvConfigDir = "DOTSYNC_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// AppDirName is the directory name used under the XDG base directories
	AppDirName = "dotsync"

	// ConfigFileName is the optional user configuration file
	ConfigFileName = "config.toml"

	// DefaultManifestName is the file name of the tracked-files manifest
	DefaultManifestName = "tracked"

	// LogFileName is the name of the log file
	LogFileName = "dotsync.log"
)

// Options configures New. Empty fields are resolved from the environment.
type Options struct {
	HomeDir   string
	ConfigDir string
}

// Paths holds the directories resolved once at startup
type Paths struct {
	homeDir   string
	configDir string
	stateDir  string
}

// New creates a Paths instance, filling unset options from the environment
func New(opts Options) (*Paths, error) {
	home := opts.HomeDir
	if home == "" {
		var err error
		home, err = userHomeDir()
		if err != nil {
			return nil, err
		}
	}

	absHome, err := filepath.Abs(home)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "failed to get absolute path for home directory")
	}

	p := &Paths{homeDir: filepath.Clean(absHome)}

	switch {
	case opts.ConfigDir != "":
		p.configDir = ExpandHomeWith(opts.ConfigDir, p.homeDir)
	case os.Getenv(EnvConfigDir) != "":
		p.configDir = ExpandHomeWith(os.Getenv(EnvConfigDir), p.homeDir)
	default:
		p.configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		p.stateDir = filepath.Join(stateHome, AppDirName)
	} else {
		p.stateDir = filepath.Join(p.homeDir, ".local", "state", AppDirName)
	}

	return p, nil
}

func userHomeDir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrConfigLoad, "cannot determine home directory")
	}
	return home, nil
}

// HomeDir returns the base directory tracked paths are relative to
func (p *Paths) HomeDir() string {
	return p.homeDir
}

// ConfigDir returns the dotsync config directory
func (p *Paths) ConfigDir() string {
	return p.configDir
}

// ConfigFilePath returns the path of the optional user config file
func (p *Paths) ConfigFilePath() string {
	return filepath.Join(p.configDir, ConfigFileName)
}

// ManifestPath returns the location of the manifest file. A relative name is
// placed inside the config directory; an absolute one is used as is.
func (p *Paths) ManifestPath(name string) string {
	if name == "" {
		name = DefaultManifestName
	}
	name = ExpandHomeWith(name, p.homeDir)
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(p.configDir, name)
}

// LogFilePath returns the path of the log file
func (p *Paths) LogFilePath() string {
	return filepath.Join(p.stateDir, LogFileName)
}

// Resolve converts inputPath into a path relative to the home directory
func (p *Paths) Resolve(inputPath, cwd string) (types.TrackedPath, error) {
	return Resolve(inputPath, p.homeDir, cwd)
}

// Absolute returns the location of a tracked path under the home directory
func (p *Paths) Absolute(tracked types.TrackedPath) string {
	return Absolute(p.homeDir, tracked)
}

// ExpandHome expands a leading ~ against the resolved home directory
func (p *Paths) ExpandHome(path string) string {
	return ExpandHomeWith(path, p.homeDir)
}

// AbsDir expands ~ in dir and makes it absolute relative to cwd
func (p *Paths) AbsDir(dir, cwd string) string {
	dir = p.ExpandHome(dir)
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(cwd, dir)
	}
	return filepath.Clean(dir)
}

// Resolve converts a user supplied path into a TrackedPath relative to
// baseDir. Absolute paths under baseDir have the prefix stripped; anything
// else is taken relative to cwd first. Paths containing CR or LF are
// rejected since the manifest stores one path per line.
func Resolve(inputPath, baseDir, cwd string) (types.TrackedPath, error) {
	if strings.TrimSpace(inputPath) == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}
	if strings.ContainsAny(inputPath, "\r\n") {
		return "", errors.Newf(errors.ErrInvalidInput, "path %q contains a line break", inputPath).
			WithDetail("path", inputPath)
	}

	base := filepath.Clean(baseDir)
	candidate := ExpandHomeWith(inputPath, base)

	if tracked, ok := relativeTo(candidate, base); ok {
		return tracked, nil
	}

	if !filepath.IsAbs(candidate) {
		if tracked, ok := relativeTo(filepath.Join(cwd, candidate), base); ok {
			return tracked, nil
		}
	}

	return "", errors.Newf(errors.ErrOutsideBaseDir, "%s is not under %s", inputPath, base).
		WithDetail("path", inputPath).
		WithDetail("base", base)
}

// relativeTo strips base from an absolute path p. Matching is done on whole
// path components so /home/al does not contain /home/alice.
func relativeTo(p, base string) (types.TrackedPath, bool) {
	if !filepath.IsAbs(p) {
		return "", false
	}
	p = filepath.Clean(p)

	prefix := base
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	if !strings.HasPrefix(p, prefix) {
		return "", false
	}

	rest := strings.TrimPrefix(p, prefix)
	if rest == "" {
		return "", false
	}
	return types.TrackedPath(filepath.ToSlash(rest)), true
}

// Absolute joins a tracked path back onto its base directory
func Absolute(baseDir string, tracked types.TrackedPath) string {
	return filepath.Join(baseDir, filepath.FromSlash(string(tracked)))
}

// ExpandHome expands ~ to the user's home directory
func ExpandHome(path string) string {
	home, err := userHomeDir()
	if err != nil {
		return path
	}
	return ExpandHomeWith(path, home)
}

// ExpandHomeWith expands a leading ~ against the given home directory
func ExpandHomeWith(path, home string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	if len(path) == 1 {
		return home
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(home, path[2:])
	}
	// ~something (not the user's home)
	return path
}

// FindGitRoot returns the top level of the git repository containing dir
func FindGitRoot(dir string) (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir

	output, err := cmd.Output()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrValidation, "not inside a git repository")
	}

	gitRoot := strings.TrimSpace(string(output))
	if gitRoot == "" {
		return "", errors.New(errors.ErrValidation, "git root is empty")
	}
	return gitRoot, nil
}
