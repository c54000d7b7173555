package manifest

import (
	"context"
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/paths"
	"github.com/arthur-debert/dotsync/pkg/types"
)

// SkippedCandidate is a path given to Track that was not added
type SkippedCandidate struct {
	Input  string
	Reason error
}

// TrackResult describes the outcome of Track
type TrackResult struct {
	Added          []types.TrackedPath
	AlreadyTracked []types.TrackedPath
	Skipped        []SkippedCandidate
}

// UntrackResult describes the outcome of Untrack.
// AllCleared is set when the whole manifest was emptied; callers should stop
// processing the command at that point.
type UntrackResult struct {
	Removed    []types.TrackedPath
	NotFound   []string
	AllCleared bool
}

// List returns the tracked paths in stored order
func (s *Store) List() ([]types.TrackedPath, error) {
	m, err := s.Load()
	if err != nil {
		return nil, err
	}
	return m.Entries(), nil
}

// Track adds candidate files to the manifest. Candidates may be absolute or
// relative to cwd. Missing files, non-regular files and files outside baseDir
// are skipped with a warning; the rest are added and the manifest is saved
// once.
func (s *Store) Track(ctx context.Context, candidates []string, baseDir, cwd string) (*TrackResult, error) {
	result := &TrackResult{}

	var resolved []types.TrackedPath
	for _, candidate := range candidates {
		tracked, err := s.checkCandidate(candidate, baseDir, cwd)
		if err != nil {
			s.logger.Warn().Err(err).Str("path", candidate).Msg("Skipping file")
			result.Skipped = append(result.Skipped, SkippedCandidate{Input: candidate, Reason: err})
			continue
		}
		resolved = append(resolved, tracked)
	}

	err := s.Update(ctx, func(m *Manifest) error {
		added := m.Add(resolved...)
		result.Added = added

		seen := make(map[types.TrackedPath]bool, len(added))
		for _, p := range added {
			seen[p] = true
		}
		for _, p := range resolved {
			if !seen[p] {
				seen[p] = true
				result.AlreadyTracked = append(result.AlreadyTracked, p)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int("added", len(result.Added)).
		Int("already_tracked", len(result.AlreadyTracked)).
		Int("skipped", len(result.Skipped)).
		Msg("Tracked files")
	return result, nil
}

// checkCandidate verifies the candidate is an existing regular file under
// baseDir and returns its tracked form
func (s *Store) checkCandidate(candidate, baseDir, cwd string) (types.TrackedPath, error) {
	abs := paths.ExpandHomeWith(candidate, baseDir)
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(cwd, abs)
	}

	info, err := s.fs.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Newf(errors.ErrFileNotFound, "%s does not exist", candidate).WithDetail("path", abs)
		}
		return "", errors.Wrapf(err, errors.ErrFileNotFound, "cannot stat %s", candidate)
	}
	if !info.Mode().IsRegular() {
		return "", errors.Newf(errors.ErrNotRegularFile, "%s is not a regular file", candidate).WithDetail("path", abs)
	}

	return paths.Resolve(abs, baseDir, cwd)
}

// Untrack removes targets from the manifest by exact string match. With all
// set, the manifest is emptied and targets are ignored.
func (s *Store) Untrack(ctx context.Context, targets []string, all bool) (*UntrackResult, error) {
	result := &UntrackResult{}

	err := s.Update(ctx, func(m *Manifest) error {
		if all {
			removed := m.Entries()
			m.Clear()
			result.Removed = removed
			result.AllCleared = true
			return nil
		}

		result.Removed = m.Remove(targets...)

		removed := make(map[string]bool, len(result.Removed))
		for _, p := range result.Removed {
			removed[string(p)] = true
		}
		for _, target := range targets {
			if !removed[target] {
				result.NotFound = append(result.NotFound, target)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, target := range result.NotFound {
		s.logger.Warn().Str("path", target).Msg("Not tracked, nothing removed")
	}
	s.logger.Info().
		Int("removed", len(result.Removed)).
		Bool("all", result.AllCleared).
		Msg("Untracked files")
	return result, nil
}
