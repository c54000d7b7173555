// Package config handles configuration management for dotsync.
// Values are layered, later sources overriding earlier ones:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user's config.toml in the dotsync config directory
//  3. DOTSYNC_<SECTION>_<KEY> environment variables
//  4. command-line overrides
//
// The result is a single Config value built at startup and passed to the
// commands that need it.
package config
