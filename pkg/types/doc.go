// Package types defines the core types and interfaces shared across dotsync.
// This includes the FS interface used for filesystem access, the TrackedPath
// manifest entry and the SyncSpec describing a single materialization request.
package types
