package types

import (
	"fmt"
	"strings"
)

// TrackedPath is a manifest entry: a file location relative to the base
// (home) directory, always forward-slash separated.
type TrackedPath string

// String returns the path as stored in the manifest
func (p TrackedPath) String() string {
	return string(p)
}

// Split returns the directory part and the last segment of the path.
// dir is empty when the path has no directory component.
func (p TrackedPath) Split() (dir, base string) {
	s := string(p)
	i := strings.LastIndex(s, "/")
	if i < 0 {
		return "", s
	}
	return s[:i], s[i+1:]
}

// SyncMode selects how a tracked file is materialized in the target directory
type SyncMode string

const (
	// ModeCopy copies file content byte for byte
	ModeCopy SyncMode = "copy"
	// ModeHardlink creates a hard link to the source file
	ModeHardlink SyncMode = "hardlink"
	// ModeSymlink creates a symbolic link pointing at the absolute source path
	ModeSymlink SyncMode = "symlink"
)

// DefaultSyncMode is used when neither copy nor symbolic is requested
const DefaultSyncMode = ModeHardlink

// ParseSyncMode converts a configuration or flag value into a SyncMode.
// An empty string yields DefaultSyncMode.
func ParseSyncMode(s string) (SyncMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultSyncMode, nil
	case "copy", "cp":
		return ModeCopy, nil
	case "hardlink", "hard", "link", "ln":
		return ModeHardlink, nil
	case "symlink", "symbolic", "sym":
		return ModeSymlink, nil
	default:
		return "", fmt.Errorf("unknown sync mode %q", s)
	}
}

// ModeFromFlags picks the mode for the --copy and --symbolic flags, falling
// back to the given default when neither is set.
func ModeFromFlags(copyFlag, symbolicFlag bool, fallback SyncMode) SyncMode {
	switch {
	case copyFlag:
		return ModeCopy
	case symbolicFlag:
		return ModeSymlink
	case fallback == "":
		return DefaultSyncMode
	default:
		return fallback
	}
}

// IsValid reports whether the mode is one of the known modes
func (m SyncMode) IsValid() bool {
	switch m {
	case ModeCopy, ModeHardlink, ModeSymlink:
		return true
	}
	return false
}

// SyncSpec describes one materialization request
type SyncSpec struct {
	SourceDir string
	TargetDir string
	Mode      SyncMode
	DryRun    bool
}
