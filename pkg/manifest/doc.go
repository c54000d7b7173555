// Package manifest maintains the list of tracked files.
//
// A Manifest is an ordered set of paths relative to the home directory. It is
// always deduplicated and sorted in byte order, and is persisted as a plain
// newline-delimited text file so it can be edited by hand.
//
// Store persists a Manifest. Every mutation writes a temporary file next to
// the store and renames it into place, so an interrupted write never
// truncates the existing list. When locking is enabled, read-modify-write
// cycles are serialized across processes with an advisory lock file.
package manifest
