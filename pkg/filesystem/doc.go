// Package filesystem provides the OS implementation of types.FS used by the
// materializer to inspect and link files.
package filesystem
