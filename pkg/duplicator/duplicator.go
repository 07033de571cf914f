// Package duplicator copies a directory tree to a new location, skipping
// entries that match exclude patterns. It refuses to copy a folder into
// itself and never merges into an existing destination.
package duplicator

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/projman/pkg/errors"
	"github.com/arthur-debert/projman/pkg/logging"
	"github.com/arthur-debert/projman/pkg/paths"
	"github.com/arthur-debert/projman/pkg/types"
	"github.com/rs/zerolog"
)

// Stats counts what a copy did
type Stats struct {
	Files    int
	Dirs     int
	Symlinks int
	Skipped  int
	Bytes    int64
}

// Duplicator performs filtered recursive copies on a types.FS
type Duplicator struct {
	fs     types.FS
	logger zerolog.Logger
}

// New creates a Duplicator
func New(fs types.FS) *Duplicator {
	return &Duplicator{
		fs:     fs,
		logger: logging.GetLogger("duplicator"),
	}
}

// Copy duplicates source into destination and returns the absolute
// destination path. Checks run in order and the first failure wins:
//
//  1. destination inside source: SELF_CONTAINMENT
//  2. destination already present: ALREADY_EXISTS
//  3. source missing or not a directory: NOT_FOUND
//
// Any entry whose full source path contains one of excludePatterns is
// skipped, directories together with their subtree. An I/O failure part way
// through returns COPY and leaves whatever was already written in place.
func (d *Duplicator) Copy(source, destination string, excludePatterns []string) (string, error) {
	src, err := filepath.Abs(source)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "invalid source path %s", source)
	}
	dst, err := filepath.Abs(destination)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "invalid destination path %s", destination)
	}

	inside, err := paths.IsStrictDescendant(src, dst)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInvalidInput, "cannot compare source and destination")
	}
	if inside {
		return "", errors.New(errors.ErrSelfContainment, "Cannot copy a folder into itself").
			WithDetail("source", src).
			WithDetail("destination", dst)
	}

	if _, err := d.fs.Lstat(dst); err == nil {
		return "", errors.Newf(errors.ErrAlreadyExists, "Destination %s already exists", dst).
			WithDetail("destination", dst)
	} else if !os.IsNotExist(err) {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot access %s", dst)
	}

	info, err := d.fs.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Newf(errors.ErrNotFound, "Source folder %s does not exist", src).
				WithDetail("source", src)
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot access %s", src)
	}
	if !info.IsDir() {
		return "", errors.Newf(errors.ErrNotFound, "Source %s is not a folder", src).
			WithDetail("source", src)
	}

	logger := d.logger.With().Str("source", src).Str("destination", dst).Logger()
	logger.Info().Strs("exclude", excludePatterns).Msg("Copying folder")

	stats := &Stats{}
	c := &copier{fs: d.fs, patterns: excludePatterns, stats: stats, logger: logger}

	if err := d.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", copyError(err, dst)
	}
	if err := d.fs.MkdirAll(dst, info.Mode().Perm()|0700); err != nil {
		return "", copyError(err, dst)
	}
	stats.Dirs++

	if err := c.copyDir(src, dst); err != nil {
		logger.Error().Err(err).
			Int("files", stats.Files).
			Int("dirs", stats.Dirs).
			Msg("Copy failed, destination left partially populated")
		return "", err
	}

	logger.Debug().
		Int("files", stats.Files).
		Int("dirs", stats.Dirs).
		Int("symlinks", stats.Symlinks).
		Int("skipped", stats.Skipped).
		Int64("bytes", stats.Bytes).
		Msg("Copy completed")
	return dst, nil
}

// Excluded reports whether path contains any of patterns. Empty patterns
// never match.
func Excluded(path string, patterns []string) bool {
	for _, p := range patterns {
		if p != "" && strings.Contains(path, p) {
			return true
		}
	}
	return false
}

type copier struct {
	fs       types.FS
	patterns []string
	stats    *Stats
	logger   zerolog.Logger
}

func (c *copier) copyDir(src, dst string) error {
	entries, err := c.fs.ReadDir(src)
	if err != nil {
		return copyError(err, src)
	}

	for _, entry := range entries {
		from := filepath.Join(src, entry.Name())
		to := filepath.Join(dst, entry.Name())

		if Excluded(from, c.patterns) {
			c.stats.Skipped++
			c.logger.Trace().Str("path", from).Msg("Excluded")
			continue
		}

		info, err := c.fs.Lstat(from)
		if err != nil {
			return copyError(err, from)
		}

		switch {
		case info.Mode()&fs.ModeSymlink != 0:
			if err := c.copySymlink(from, to); err != nil {
				return err
			}
		case info.IsDir():
			if err := c.fs.MkdirAll(to, info.Mode().Perm()|0700); err != nil {
				return copyError(err, to)
			}
			c.stats.Dirs++
			if err := c.copyDir(from, to); err != nil {
				return err
			}
		case info.Mode().IsRegular():
			if err := c.copyFile(from, to, info.Mode().Perm()); err != nil {
				return err
			}
		default:
			// Sockets, devices and pipes have no meaningful copy
			c.stats.Skipped++
			c.logger.Debug().Str("path", from).Str("mode", info.Mode().String()).Msg("Skipping special file")
		}
	}
	return nil
}

func (c *copier) copyFile(from, to string, perm fs.FileMode) error {
	in, err := c.fs.Open(from)
	if err != nil {
		return copyError(err, from)
	}
	defer func() { _ = in.Close() }()

	out, err := c.fs.Create(to, perm)
	if err != nil {
		return copyError(err, to)
	}

	n, err := io.Copy(out, in)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return copyError(err, to)
	}

	c.stats.Files++
	c.stats.Bytes += n
	return nil
}

func (c *copier) copySymlink(from, to string) error {
	target, err := c.fs.Readlink(from)
	if err != nil {
		return copyError(err, from)
	}
	if err := c.fs.Symlink(target, to); err != nil {
		return copyError(err, to)
	}
	c.stats.Symlinks++
	return nil
}

func copyError(err error, path string) error {
	return errors.Wrapf(err, errors.ErrCopy, "Failed to copy %s", path).
		WithDetail("path", path)
}
