package manifest

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/logging"
	"github.com/gofrs/flock"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

const (
	filePerm = 0644
	dirPerm  = 0755

	lockRetryDelay = 50 * time.Millisecond
	lockTimeout    = 10 * time.Second
)

// StoreOptions configures a Store
type StoreOptions struct {
	// Fs is the filesystem the manifest and candidate files live on.
	// Defaults to the OS filesystem.
	Fs afero.Fs
	// Path is the manifest file location
	Path string
	// Lock serializes mutations with an advisory lock file next to Path.
	// Only honored on the OS filesystem.
	Lock bool
}

// Store persists a Manifest to a text file
type Store struct {
	fs     afero.Fs
	path   string
	lock   bool
	logger zerolog.Logger
}

// NewStore creates a store for the manifest at opts.Path
func NewStore(opts StoreOptions) *Store {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Store{
		fs:     fs,
		path:   opts.Path,
		lock:   opts.Lock,
		logger: logging.GetLogger("manifest.store"),
	}
}

// Path returns the manifest file location
func (s *Store) Path() string {
	return s.path
}

// Load reads the manifest, creating an empty file when none exists
func (s *Store) Load() (*Manifest, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err == nil {
		m := Parse(data)
		s.logger.Debug().Str("path", s.path).Int("entries", m.Len()).Msg("Loaded manifest")
		return m, nil
	}
	if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, errors.ErrStorageIO, "failed to read manifest %s", s.path)
	}

	s.logger.Info().Str("path", s.path).Msg("Manifest not found, creating empty one")
	m := New()
	if err := s.Save(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Save replaces the manifest file with m. The content is written to a
// temporary file in the same directory and renamed over the old file, so a
// failure leaves the previous content intact.
func (s *Store) Save(m *Manifest) error {
	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, dirPerm); err != nil {
		return errors.Wrapf(err, errors.ErrStorageIO, "failed to create manifest directory %s", dir)
	}

	tmp, err := afero.TempFile(s.fs, dir, "."+filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, errors.ErrStorageIO, "failed to create temporary manifest")
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = s.fs.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(m.Bytes()); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, errors.ErrStorageIO, "failed to write temporary manifest")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, errors.ErrStorageIO, "failed to flush temporary manifest")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, errors.ErrStorageIO, "failed to close temporary manifest")
	}
	if err := s.fs.Chmod(tmpPath, filePerm); err != nil {
		return errors.Wrap(err, errors.ErrStorageIO, "failed to set manifest permissions")
	}
	if err := s.fs.Rename(tmpPath, s.path); err != nil {
		return errors.Wrapf(err, errors.ErrStorageIO, "failed to replace manifest %s", s.path)
	}
	committed = true

	s.logger.Debug().Str("path", s.path).Int("entries", m.Len()).Msg("Saved manifest")
	return nil
}

// Update runs a read-modify-write cycle: load, apply fn, save. fn returning
// an error aborts without writing.
func (s *Store) Update(ctx context.Context, fn func(m *Manifest) error) error {
	unlock, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	m, err := s.Load()
	if err != nil {
		return err
	}
	if err := fn(m); err != nil {
		return err
	}
	return s.Save(m)
}

// acquire takes the advisory lock when enabled. The returned func releases it.
func (s *Store) acquire(ctx context.Context) (func(), error) {
	if !s.lock {
		return func() {}, nil
	}
	if _, ok := s.fs.(*afero.OsFs); !ok {
		s.logger.Debug().Msg("Locking skipped on non-OS filesystem")
		return func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), dirPerm); err != nil {
		return nil, errors.Wrap(err, errors.ErrLock, "failed to create lock directory")
	}

	lockPath := s.path + ".lock"
	fl := flock.New(lockPath)

	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	locked, err := fl.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrLock, "failed to lock %s", lockPath)
	}
	if !locked {
		return nil, errors.Newf(errors.ErrLock, "manifest is locked by another process: %s", lockPath)
	}

	s.logger.Trace().Str("lock", lockPath).Msg("Acquired manifest lock")
	return func() {
		if err := fl.Unlock(); err != nil {
			s.logger.Warn().Err(err).Str("lock", lockPath).Msg("Failed to release manifest lock")
		}
	}, nil
}
