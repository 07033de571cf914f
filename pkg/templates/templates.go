// Package templates is the registry of reusable project templates. A
// template records a live source folder and the patterns to skip when
// copying it; the folder content itself is never snapshotted.
package templates

import (
	"strings"
	"time"

	"github.com/arthur-debert/projman/pkg/errors"
	"github.com/arthur-debert/projman/pkg/logging"
	"github.com/arthur-debert/projman/pkg/paths"
	"github.com/arthur-debert/projman/pkg/store"
	"github.com/arthur-debert/projman/pkg/types"
	"github.com/rs/zerolog"
)

// TimeFormat is the layout of DateCreated: ISO-8601, UTC, milliseconds
const TimeFormat = "2006-01-02T15:04:05.000Z"

// Template is a named source folder plus exclude patterns
type Template struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	SourcePath      string   `json:"sourcePath"`
	DateCreated     string   `json:"dateCreated"`
	ExcludePatterns []string `json:"excludePatterns"`
}

// Valid reports whether the record carries both a name and a source folder
func (t Template) Valid() bool {
	return strings.TrimSpace(t.Name) != "" && t.SourcePath != ""
}

// Created parses DateCreated, returning the zero time when it is malformed
func (t Template) Created() time.Time {
	ts, err := time.Parse(TimeFormat, t.DateCreated)
	if err != nil {
		return time.Time{}
	}
	return ts
}

// SaveOptions describes a template to record
type SaveOptions struct {
	Name            string
	Description     string
	SourcePath      string
	ExcludePatterns []string
	// AllowOverwrite replaces an existing template with the same name
	AllowOverwrite bool
}

// Registry reads and writes templates.json. Every call reloads from disk.
type Registry struct {
	store  *store.Store[Template]
	logger zerolog.Logger

	// Now stamps DateCreated; replaced in tests
	Now func() time.Time
}

// New creates a Registry backed by the file at path
func New(fs types.FS, path string) *Registry {
	return &Registry{
		store:  store.New[Template](fs, path),
		logger: logging.GetLogger("templates"),
		Now:    time.Now,
	}
}

// EnsureReady seeds the backing file
func (r *Registry) EnsureReady() error {
	return r.store.EnsureReady()
}

// List returns every template in insertion order. Templates whose source
// folder has vanished are still listed.
func (r *Registry) List() ([]Template, error) {
	return r.store.Load()
}

// Get returns the template with the given name
func (r *Registry) Get(name string) (*Template, error) {
	list, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	if i := indexOf(list, name); i >= 0 {
		return &list[i], nil
	}
	return nil, notFound(name)
}

// Exists reports whether a template with the given name is stored
func (r *Registry) Exists(name string) (bool, error) {
	list, err := r.store.Load()
	if err != nil {
		return false, err
	}
	return indexOf(list, name) >= 0, nil
}

// Save records a template. An existing template with the same name is a
// DUPLICATE_NAME error unless opts.AllowOverwrite is set, in which case
// the old record is removed and the new one appended.
func (r *Registry) Save(opts SaveOptions) (*Template, error) {
	if err := paths.ValidateName(opts.Name); err != nil {
		return nil, err
	}
	if opts.SourcePath == "" {
		return nil, errors.New(errors.ErrInvalidInput, "template source folder cannot be empty").
			WithDetail("name", opts.Name)
	}

	list, err := r.store.Load()
	if err != nil {
		return nil, err
	}

	if i := indexOf(list, opts.Name); i >= 0 {
		if !opts.AllowOverwrite {
			return nil, errors.New(errors.ErrDuplicateName, "A template with this name already exists").
				WithDetail("name", opts.Name)
		}
		list = append(list[:i:i], list[i+1:]...)
		r.logger.Info().Str("name", opts.Name).Msg("Replacing existing template")
	}

	patterns := opts.ExcludePatterns
	if patterns == nil {
		patterns = []string{}
	}

	tmpl := Template{
		Name:            opts.Name,
		Description:     opts.Description,
		SourcePath:      opts.SourcePath,
		DateCreated:     r.Now().UTC().Format(TimeFormat),
		ExcludePatterns: patterns,
	}
	if err := r.store.Save(append(list, tmpl)); err != nil {
		return nil, err
	}

	r.logger.Info().
		Str("name", tmpl.Name).
		Str("source", tmpl.SourcePath).
		Strs("exclude", tmpl.ExcludePatterns).
		Msg("Template saved")
	return &tmpl, nil
}

// Delete removes the template with the given name, keeping the order of
// the others.
func (r *Registry) Delete(name string) error {
	list, err := r.store.Load()
	if err != nil {
		return err
	}

	i := indexOf(list, name)
	if i < 0 {
		return notFound(name)
	}

	remaining := append(list[:i:i], list[i+1:]...)
	if err := r.store.Save(remaining); err != nil {
		return err
	}

	r.logger.Info().Str("name", name).Msg("Template deleted")
	return nil
}

func notFound(name string) error {
	return errors.Newf(errors.ErrNotFound, "Template %q not found", name).
		WithDetail("name", name)
}

func indexOf(list []Template, name string) int {
	for i, t := range list {
		if t.Name == name {
			return i
		}
	}
	return -1
}
