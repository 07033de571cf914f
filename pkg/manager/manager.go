package manager

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/projman/pkg/config"
	"github.com/arthur-debert/projman/pkg/errors"
	"github.com/arthur-debert/projman/pkg/filesystem"
	"github.com/arthur-debert/projman/pkg/host"
	"github.com/arthur-debert/projman/pkg/paths"
	"github.com/arthur-debert/projman/pkg/projects"
	"github.com/arthur-debert/projman/pkg/templates"
	"github.com/arthur-debert/projman/pkg/types"
	"github.com/rs/zerolog"
)

// ProjectRegistry is the subset of projects.Registry the facade uses
type ProjectRegistry interface {
	EnsureReady() error
	List() ([]projects.Project, error)
	Find(name string) (*projects.Project, error)
	Exists(name string) (bool, error)
	Add(name, path string) (*projects.Project, error)
}

// TemplateRegistry is the subset of templates.Registry the facade uses
type TemplateRegistry interface {
	EnsureReady() error
	List() ([]templates.Template, error)
	Get(name string) (*templates.Template, error)
	Exists(name string) (bool, error)
	Save(opts templates.SaveOptions) (*templates.Template, error)
	Delete(name string) error
}

// Copier duplicates folder trees
type Copier interface {
	Copy(source, destination string, excludePatterns []string) (string, error)
}

// Deps are the collaborators a Manager is built from
type Deps struct {
	Host       host.Host
	Projects   ProjectRegistry
	Templates  TemplateRegistry
	Duplicator Copier
	// FS checks folders picked by the user; defaults to the OS filesystem
	FS     types.FS
	Logger zerolog.Logger
}

// Fallbacks for settings the host has no value for
var (
	DefaultCopyExcludePatterns     = []string{"node_modules", ".git"}
	DefaultTemplateExcludePatterns = []string{"node_modules", ".git", "dist", "build", "out"}
)

// Manager runs operations against one set of dependencies
type Manager struct {
	deps  Deps
	ready bool
}

// New creates a Manager. No I/O happens until the first operation.
func New(deps Deps) *Manager {
	if deps.FS == nil {
		deps.FS = filesystem.NewOS()
	}
	return &Manager{deps: deps}
}

// EnsureReady seeds the registry files. It is called by every operation
// and does its work once.
func (m *Manager) EnsureReady() error {
	if m.ready {
		return nil
	}
	if err := m.deps.Projects.EnsureReady(); err != nil {
		return err
	}
	if err := m.deps.Templates.EnsureReady(); err != nil {
		return err
	}
	m.ready = true
	m.deps.Logger.Debug().Msg("Storage ready")
	return nil
}

func (m *Manager) begin(op Operation) (*run, bool) {
	r := newRun(m.deps.Host, m.deps.Logger, op)
	if err := m.EnsureReady(); err != nil {
		r.fail(errors.Wrap(err, errors.GetErrorCode(err), "Failed to initialize storage"))
		return r, false
	}
	return r, true
}

func (m *Manager) workspace() (string, error) {
	root, ok := m.deps.Host.WorkspaceRoot()
	if !ok || root == "" {
		return "", errors.New(errors.ErrNoWorkspace, "No folder is currently open")
	}
	return root, nil
}

func (m *Manager) targetFolder() string {
	return paths.ExpandHome(config.AsString(m.deps.Host.GetConfigValue(config.KeyTargetFolder)))
}

func (m *Manager) patterns(key string, fallback []string) []string {
	v := m.deps.Host.GetConfigValue(key)
	if v == nil {
		return append([]string{}, fallback...)
	}
	return config.AsStrings(v)
}

func (m *Manager) flag(key string, fallback bool) bool {
	return config.AsBool(m.deps.Host.GetConfigValue(key), fallback)
}

// promptName asks for a name. Blank input is treated like dismissing the
// prompt.
func (m *Manager) promptName(label, def string) (string, bool, error) {
	name, err := m.deps.Host.PromptText(label, def)
	if err != nil {
		if host.IsCancelled(err) {
			return "", false, nil
		}
		return "", false, err
	}
	name = strings.TrimSpace(name)
	return name, name != "", nil
}

// checkFolder resolves a user-supplied folder to an absolute path of an
// existing directory.
func (m *Manager) checkFolder(folder string) (string, error) {
	abs, err := filepath.Abs(paths.ExpandHome(folder))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "Invalid folder %s", folder)
	}
	info, err := m.deps.FS.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", errors.Newf(errors.ErrInvalidInput, "%s is not an existing folder", abs).
			WithDetail("path", abs)
	}
	return abs, nil
}

// checkProjectName rejects names already used by a saved project
func (m *Manager) checkProjectName(name string) error {
	taken, err := m.deps.Projects.Exists(name)
	if err != nil {
		return err
	}
	if taken {
		return errors.New(errors.ErrDuplicateName, "A project with this name already exists").
			WithDetail("name", name)
	}
	return nil
}

// checkCopyName validates the name of a project about to be created at
// <target>/<name>, so it must also be a single directory name.
func (m *Manager) checkCopyName(name string) error {
	if err := paths.ValidateName(name); err != nil {
		return err
	}
	return m.checkProjectName(name)
}

// openNew opens a freshly created project when the user asked for it.
// Failing to open does not undo the creation.
func (m *Manager) openNew(r *run, path string) {
	if !m.flag(config.KeyAutoOpenNewProjects, true) {
		return
	}
	if err := m.deps.Host.OpenAsWorkspace(path); err != nil {
		r.logger.Warn().Err(err).Str("path", path).Msg("Failed to open new project")
		m.deps.Host.NotifyError(errors.UserMessage(errors.Wrap(err, errors.ErrInternal, "Failed to open project")))
	}
}
