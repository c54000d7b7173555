package types

import (
	"io/fs"
)

// FS is the filesystem interface required for dotsync operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	// Writable reports, as an error wrapping fs.ErrPermission, that the
	// current user cannot create entries in path
	Writable(path string) error

	// Link operations
	Link(oldname, newname string) error
}
