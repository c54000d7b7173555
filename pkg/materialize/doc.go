// Package materialize reproduces tracked files from a source directory under
// a target directory.
//
// Every manifest entry is handled on its own: a missing source or an
// existing destination is reported as a skip, an I/O failure is reported as
// a failed entry, and processing carries on with the next entry. Existing
// destinations are never modified. Only invalid source or target directories
// and an unwritable target abort the whole pass. Nothing is rolled back.
package materialize
