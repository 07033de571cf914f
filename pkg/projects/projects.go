// Package projects is the registry of saved project folders.
package projects

import (
	"os"
	"strings"

	"github.com/arthur-debert/projman/pkg/errors"
	"github.com/arthur-debert/projman/pkg/logging"
	"github.com/arthur-debert/projman/pkg/store"
	"github.com/arthur-debert/projman/pkg/types"
	"github.com/rs/zerolog"
)

// Project is a named reference to a folder on disk
type Project struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Valid reports whether the record carries both a name and a folder
func (p Project) Valid() bool {
	return strings.TrimSpace(p.Name) != "" && p.Path != ""
}

// Registry reads and writes projects.json. Every call reloads from disk.
type Registry struct {
	fs     types.FS
	store  *store.Store[Project]
	logger zerolog.Logger
}

// New creates a Registry backed by the file at path
func New(fs types.FS, path string) *Registry {
	return &Registry{
		fs:     fs,
		store:  store.New[Project](fs, path),
		logger: logging.GetLogger("projects"),
	}
}

// EnsureReady seeds the backing file
func (r *Registry) EnsureReady() error {
	return r.store.EnsureReady()
}

// List returns the projects whose folder still exists, in insertion order.
func (r *Registry) List() ([]Project, error) {
	all, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	return r.existing(all), nil
}

// Find returns the live project with the given name
func (r *Registry) Find(name string) (*Project, error) {
	list, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].Name == name {
			return &list[i], nil
		}
	}
	return nil, errors.Newf(errors.ErrNotFound, "project %q not found", name).
		WithDetail("name", name)
}

// Exists reports whether name is taken, including by projects whose folder
// has disappeared.
func (r *Registry) Exists(name string) (bool, error) {
	all, err := r.store.Load()
	if err != nil {
		return false, err
	}
	return indexOf(all, name) >= 0, nil
}

// Add registers a project. Names are unique across the stored collection,
// stale entries included; the stale entries themselves are dropped from
// the file by this write. Any non-blank name is accepted here; names that
// must double as directory names are checked by the caller.
func (r *Registry) Add(name, path string) (*Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New(errors.ErrInvalidInput, "name cannot be empty")
	}
	if path == "" {
		return nil, errors.New(errors.ErrInvalidInput, "project folder cannot be empty").
			WithDetail("name", name)
	}

	all, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	if indexOf(all, name) >= 0 {
		return nil, errors.New(errors.ErrDuplicateName, "A project with this name already exists").
			WithDetail("name", name)
	}

	live := r.existing(all)
	if dropped := len(all) - len(live); dropped > 0 {
		r.logger.Info().Int("dropped", dropped).Msg("Removing projects whose folder no longer exists")
	}

	project := Project{Name: name, Path: path}
	if err := r.store.Save(append(live, project)); err != nil {
		return nil, err
	}

	r.logger.Info().Str("name", name).Str("path", path).Msg("Project added")
	return &project, nil
}

func (r *Registry) existing(all []Project) []Project {
	live := make([]Project, 0, len(all))
	for _, p := range all {
		if _, err := r.fs.Stat(p.Path); err != nil {
			if !os.IsNotExist(err) {
				r.logger.Debug().Err(err).Str("path", p.Path).Msg("Cannot stat project folder")
			}
			continue
		}
		live = append(live, p)
	}
	return live
}

func indexOf(list []Project, name string) int {
	for i, p := range list {
		if p.Name == name {
			return i
		}
	}
	return -1
}
