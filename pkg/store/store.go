package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/arthur-debert/projman/pkg/errors"
	"github.com/arthur-debert/projman/pkg/logging"
	"github.com/arthur-debert/projman/pkg/types"
	"github.com/rs/zerolog"
)

// Validator is implemented by records that can tell a complete entry from
// the zero value JSON decoding leaves behind for unrelated objects.
type Validator interface {
	Valid() bool
}

// Store reads and writes a []T as a JSON array at a fixed path.
type Store[T any] struct {
	fs     types.FS
	path   string
	logger zerolog.Logger
}

// New creates a Store for the file at path.
func New[T any](fs types.FS, path string) *Store[T] {
	return &Store[T]{
		fs:     fs,
		path:   path,
		logger: logging.GetLogger("store").With().Str("file", filepath.Base(path)).Logger(),
	}
}

// Path returns the file backing the store
func (s *Store[T]) Path() string {
	return s.path
}

// EnsureReady creates the parent directory and seeds an empty array when
// the file does not exist yet. Existing content is never touched.
func (s *Store[T]) EnsureReady() error {
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrWrite, "failed to create directory for %s", s.path).
			WithDetail("path", s.path)
	}

	if _, err := s.fs.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to access %s", s.path).
			WithDetail("path", s.path)
	}

	if err := s.fs.WriteFile(s.path, []byte("[]"), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrWrite, "failed to initialise %s", s.path).
			WithDetail("path", s.path)
	}
	s.logger.Debug().Str("path", s.path).Msg("Seeded empty collection")
	return nil
}

// Load returns the stored collection. A missing or unparseable file yields
// an empty collection rather than an error.
func (s *Store[T]) Load() ([]T, error) {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug().Str("path", s.path).Msg("Collection file absent, using empty collection")
			return []T{}, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", s.path).
			WithDetail("path", s.path)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		parseErr := errors.Wrapf(err, errors.ErrParse, "failed to parse %s", s.path)
		s.logger.Warn().Err(parseErr).Str("path", s.path).Msg("Collection file corrupted, using empty collection")
		return []T{}, nil
	}
	if items == nil {
		// "null" decodes without error but is not an array
		s.logger.Warn().Str("path", s.path).Msg("Collection file corrupted, using empty collection")
		return []T{}, nil
	}

	for i, item := range items {
		if v, ok := any(item).(Validator); ok && !v.Valid() {
			s.logger.Warn().Int("index", i).Str("path", s.path).Msg("Collection file corrupted, using empty collection")
			return []T{}, nil
		}
	}

	s.logger.Trace().Int("count", len(items)).Msg("Loaded collection")
	return items, nil
}

// Save replaces the file content with items. The data is written next to
// the target and renamed over it, so readers see the old or the new
// collection and never a partial one.
func (s *Store[T]) Save(items []T) error {
	if items == nil {
		items = []T{}
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrWrite, "failed to encode collection").
			WithDetail("path", s.path)
	}

	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrWrite, "failed to create directory for %s", s.path).
			WithDetail("path", s.path)
	}

	tmp := filepath.Join(dir, "."+filepath.Base(s.path)+".tmp")
	if err := s.fs.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrWrite, "failed to write %s", s.path).
			WithDetail("path", s.path)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return errors.Wrapf(err, errors.ErrWrite, "failed to write %s", s.path).
			WithDetail("path", s.path)
	}

	s.logger.Debug().Int("count", len(items)).Msg("Saved collection")
	return nil
}
