package editor

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotsync/pkg/config"
	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestCommand(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		vars       map[string]string
		want       []string
	}{
		{"configured wins", "nano -w", map[string]string{"VISUAL": "code", "EDITOR": "vim"}, []string{"nano", "-w"}},
		{"visual before editor", "", map[string]string{"VISUAL": "code --wait", "EDITOR": "vim"}, []string{"code", "--wait"}},
		{"editor", "", map[string]string{"EDITOR": "vim"}, []string{"vim"}},
		{"blank values ignored", "  ", map[string]string{"VISUAL": " ", "EDITOR": "emacs"}, []string{"emacs"}},
		{"default", "", nil, []string{DefaultEditor}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Command(tt.configured, env(tt.vars)))
		})
	}
}

func loadConfig(t *testing.T, editorCommand string) *config.Config {
	t.Helper()
	home := t.TempDir()
	cfg, err := config.Load(config.LoadOptions{
		HomeDir:   home,
		ConfigDir: filepath.Join(home, ".config", "dotsync"),
		Overrides: map[string]interface{}{"editor.command": editorCommand},
	})
	require.NoError(t, err)
	return cfg
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	script := filepath.Join(t.TempDir(), "editor.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\n"+body+"\n"), 0755))
	return script
}

func TestOpenCreatesManifest(t *testing.T) {
	cfg := loadConfig(t, "true")

	err := Open(context.Background(), Options{Config: cfg, Getenv: env(nil)})
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.ManifestPath())
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestOpenNormalizesAfterEdit(t *testing.T) {
	script := writeScript(t, `printf '.zshrc\n\n.bashrc\n.zshrc\n' > "$1"`)
	cfg := loadConfig(t, script)

	err := Open(context.Background(), Options{Config: cfg, Getenv: env(nil)})
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.ManifestPath())
	require.NoError(t, err)
	assert.Equal(t, ".bashrc\n.zshrc\n", string(data))
}

func TestOpenPassesStdio(t *testing.T) {
	script := writeScript(t, `echo "editing $1"`)
	cfg := loadConfig(t, script)

	var out bytes.Buffer
	err := Open(context.Background(), Options{Config: cfg, Stdout: &out, Getenv: env(nil)})
	require.NoError(t, err)
	assert.Equal(t, "editing "+cfg.ManifestPath()+"\n", out.String())
}

func TestOpenEditorFailure(t *testing.T) {
	tests := []struct {
		name    string
		command string
	}{
		{"non-zero exit", "false"},
		{"missing binary", "dotsync-no-such-editor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := loadConfig(t, tt.command)

			err := Open(context.Background(), Options{Config: cfg, Getenv: env(nil)})
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrEditor))
		})
	}
}
