package materialize

import (
	"github.com/arthur-debert/dotsync/pkg/types"
	"go.uber.org/multierr"
)

// Status is the outcome for a single manifest entry
type Status string

const (
	StatusCopied         Status = "copied"
	StatusHardlinked     Status = "hardlinked"
	StatusSymlinked      Status = "symlinked"
	StatusPlanned        Status = "would-materialize"
	StatusSkippedMissing Status = "skipped-missing"
	StatusSkippedExists  Status = "skipped-exists"
	StatusFailed         Status = "failed"
)

// statusForMode is the success status recorded for each mode
var statusForMode = map[types.SyncMode]Status{
	types.ModeCopy:     StatusCopied,
	types.ModeHardlink: StatusHardlinked,
	types.ModeSymlink:  StatusSymlinked,
}

// EntryResult records what happened to one manifest entry
type EntryResult struct {
	Path        types.TrackedPath
	Source      string
	Destination string
	Status      Status
	// Err explains skips and failures
	Err error
}

// IsSkipped reports whether the entry was skipped
func (r EntryResult) IsSkipped() bool {
	return r.Status == StatusSkippedMissing || r.Status == StatusSkippedExists
}

// Report collects per-entry results in manifest order
type Report struct {
	Spec    types.SyncSpec
	Entries []EntryResult
}

func (r *Report) add(entry EntryResult) {
	r.Entries = append(r.Entries, entry)
}

// Materialized counts entries that were (or in a dry run would be) created
func (r *Report) Materialized() int {
	return r.count(func(e EntryResult) bool {
		return e.Status != StatusFailed && !e.IsSkipped()
	})
}

// Skipped counts skipped entries
func (r *Report) Skipped() int {
	return r.count(EntryResult.IsSkipped)
}

// Failed counts failed entries
func (r *Report) Failed() int {
	return r.count(func(e EntryResult) bool { return e.Status == StatusFailed })
}

// Err combines the errors of all failed entries, nil when none failed
func (r *Report) Err() error {
	var err error
	for _, e := range r.Entries {
		if e.Status == StatusFailed {
			err = multierr.Append(err, e.Err)
		}
	}
	return err
}

func (r *Report) count(match func(EntryResult) bool) int {
	n := 0
	for _, e := range r.Entries {
		if match(e) {
			n++
		}
	}
	return n
}
