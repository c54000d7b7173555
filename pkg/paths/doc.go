// Package paths provides centralized path handling for dotsync.
//
// It resolves the directories dotsync works with and converts user supplied
// paths into manifest entries:
//
//   - Home directory: the base every tracked path is relative to
//   - Config directory: $DOTSYNC_CONFIG_DIR or $XDG_CONFIG_HOME/dotsync,
//     holding config.toml and the manifest file
//   - State directory: $XDG_STATE_HOME/dotsync, holding the log file
//   - Default sync directory: configured explicitly, else the root of the git
//     repository containing the working directory
//
// # Resolving tracked paths
//
//	tracked, err := paths.Resolve("../.config/i3/config", "/home/u", "/home/u/src")
//	// tracked == ".config/i3/config"
//
// Paths that do not fall under the base directory fail with
// errors.ErrOutsideBaseDir.
package paths
