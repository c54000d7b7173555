package manifest

import (
	"bytes"
	"slices"
	"strings"

	"github.com/arthur-debert/dotsync/pkg/types"
)

// Manifest is a sorted, deduplicated set of tracked paths
type Manifest struct {
	entries []types.TrackedPath
}

// New returns a manifest holding the given entries
func New(entries ...types.TrackedPath) *Manifest {
	m := &Manifest{}
	m.Add(entries...)
	return m
}

// Parse reads the on-disk format: one path per line. Blank lines are ignored
// and CRLF line endings are accepted.
func Parse(data []byte) *Manifest {
	var entries []types.TrackedPath
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		entries = append(entries, types.TrackedPath(line))
	}
	return New(entries...)
}

// Bytes returns the on-disk representation
func (m *Manifest) Bytes() []byte {
	var buf bytes.Buffer
	for _, e := range m.entries {
		buf.WriteString(string(e))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Add inserts paths and returns the ones that were not already present, in
// sorted order. Empty paths and paths containing a line break cannot be
// written as a single manifest line and are ignored.
func (m *Manifest) Add(paths ...types.TrackedPath) []types.TrackedPath {
	var added []types.TrackedPath
	for _, p := range paths {
		if p == "" || strings.ContainsAny(string(p), "\r\n") {
			continue
		}
		i, found := slices.BinarySearch(m.entries, p)
		if found {
			continue
		}
		m.entries = slices.Insert(m.entries, i, p)
		added = append(added, p)
	}
	slices.Sort(added)
	return added
}

// Remove deletes entries whose string value equals one of targets exactly.
// No path normalization happens: "foo/" does not remove "foo".
func (m *Manifest) Remove(targets ...string) []types.TrackedPath {
	var removed []types.TrackedPath
	for _, target := range targets {
		i, found := slices.BinarySearch(m.entries, types.TrackedPath(target))
		if !found {
			continue
		}
		removed = append(removed, m.entries[i])
		m.entries = slices.Delete(m.entries, i, i+1)
	}
	slices.Sort(removed)
	return removed
}

// Clear removes every entry
func (m *Manifest) Clear() {
	m.entries = nil
}

// Contains reports whether p is tracked
func (m *Manifest) Contains(p types.TrackedPath) bool {
	_, found := slices.BinarySearch(m.entries, p)
	return found
}

// Entries returns a copy of the entries in stored order
func (m *Manifest) Entries() []types.TrackedPath {
	return slices.Clone(m.entries)
}

// Len returns the number of entries
func (m *Manifest) Len() int {
	return len(m.entries)
}
