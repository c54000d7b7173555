// Package version carries the build information injected at release time.
package version

import "fmt"

// Build information set by ldflags:
//
//	-X github.com/arthur-debert/dotsync/internal/version.Version={{.Version}}
//	-X github.com/arthur-debert/dotsync/internal/version.Commit={{.Commit}}
//	-X github.com/arthur-debert/dotsync/internal/version.Date={{.Date}}
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info formats the build information for `dotsync version`
func Info() string {
	return fmt.Sprintf("dotsync version %s\n  commit: %s\n  built:  %s\n", Version, Commit, Date)
}
