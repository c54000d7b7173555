package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/arthur-debert/dotsync/pkg/config"
	"github.com/arthur-debert/dotsync/pkg/filesystem"
	"github.com/arthur-debert/dotsync/pkg/paths"
	"github.com/arthur-debert/dotsync/pkg/types"
)

// TestEnvironment provides an isolated dotsync installation
type TestEnvironment struct {
	HomeDir   string
	ConfigDir string
	StateDir  string
	// SyncDir is an empty directory usable as a link/copy target or sync source
	SyncDir string

	FS     types.FS
	Config *config.Config

	t *testing.T
}

// FileTree represents a directory structure for testing.
// Values are either file contents (string) or nested FileTrees.
type FileTree map[string]interface{}

// NewTestEnvironment creates the directories and loads the configuration.
// Overrides are passed to config.Load as dotted keys.
func NewTestEnvironment(t *testing.T, overrides map[string]interface{}) *TestEnvironment {
	t.Helper()

	root := t.TempDir()
	env := &TestEnvironment{
		HomeDir:   filepath.Join(root, "home"),
		ConfigDir: filepath.Join(root, "home", ".config", paths.AppDirName),
		StateDir:  filepath.Join(root, "state"),
		SyncDir:   filepath.Join(root, "sync"),
		FS:        filesystem.NewOS(),
		t:         t,
	}

	for _, dir := range []string{env.HomeDir, env.ConfigDir, env.StateDir, env.SyncDir} {
		if err := env.FS.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}

	t.Setenv(paths.EnvHome, env.HomeDir)
	t.Setenv(paths.EnvConfigDir, env.ConfigDir)
	t.Setenv("XDG_STATE_HOME", env.StateDir)
	clearDotsyncEnv(t)

	env.Config = env.LoadConfig(overrides)
	return env
}

// LoadConfig loads a fresh configuration for the environment's directories
func (env *TestEnvironment) LoadConfig(overrides map[string]interface{}) *config.Config {
	env.t.Helper()

	cfg, err := config.Load(config.LoadOptions{
		HomeDir:   env.HomeDir,
		ConfigDir: env.ConfigDir,
		Overrides: overrides,
	})
	if err != nil {
		env.t.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

// WithFileTree creates tree under root
func (env *TestEnvironment) WithFileTree(root string, tree FileTree) {
	env.t.Helper()
	createFileTree(env.t, env.FS, root, tree)
}

// WriteFile writes content to root/rel, creating parent directories
func (env *TestEnvironment) WriteFile(root, rel, content string) string {
	env.t.Helper()

	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := env.FS.MkdirAll(filepath.Dir(full), 0755); err != nil {
		env.t.Fatalf("Failed to create directory for %s: %v", full, err)
	}
	if err := env.FS.WriteFile(full, []byte(content), 0644); err != nil {
		env.t.Fatalf("Failed to write file %s: %v", full, err)
	}
	return full
}

// SetManifest writes the manifest file directly, bypassing the store
func (env *TestEnvironment) SetManifest(entries ...string) {
	env.t.Helper()

	sorted := append([]string(nil), entries...)
	sort.Strings(sorted)
	content := ""
	if len(sorted) > 0 {
		content = strings.Join(sorted, "\n") + "\n"
	}
	if err := env.FS.WriteFile(env.Config.ManifestPath(), []byte(content), 0644); err != nil {
		env.t.Fatalf("Failed to write manifest: %v", err)
	}
}

// ManifestContent returns the raw manifest file, "" when absent
func (env *TestEnvironment) ManifestContent() string {
	env.t.Helper()

	data, err := env.FS.ReadFile(env.Config.ManifestPath())
	if os.IsNotExist(err) {
		return ""
	}
	if err != nil {
		env.t.Fatalf("Failed to read manifest: %v", err)
	}
	return string(data)
}

// clearDotsyncEnv keeps the developer's DOTSYNC_* variables out of tests
func clearDotsyncEnv(t *testing.T) {
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, config.EnvPrefix) && key != paths.EnvConfigDir {
			t.Setenv(key, "")
			_ = os.Unsetenv(key)
		}
	}
}

// createFileTree recursively creates a file tree
func createFileTree(t *testing.T, fs types.FS, basePath string, tree FileTree) {
	t.Helper()

	for name, content := range tree {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			if err := fs.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
				t.Fatalf("Failed to create directory for %s: %v", fullPath, err)
			}
			if err := fs.WriteFile(fullPath, []byte(v), 0644); err != nil {
				t.Fatalf("Failed to write file %s: %v", fullPath, err)
			}
		case FileTree:
			if err := fs.MkdirAll(fullPath, 0755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", fullPath, err)
			}
			createFileTree(t, fs, fullPath, v)
		default:
			t.Fatalf("Invalid file tree content type for %s: %T", name, content)
		}
	}
}
