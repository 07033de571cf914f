package paths

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/projman/pkg/errors"
	"github.com/arthur-debert/projman/pkg/types"
)

// Environment variable names
const (
	// EnvDataDir overrides the XDG data directory for projman
	EnvDataDir = "PROJMAN_DATA_DIR"

	// EnvConfigDir overrides the XDG config directory for projman
	EnvConfigDir = "PROJMAN_CONFIG_DIR"

	// EnvWorkspace sets the active workspace root
	EnvWorkspace = "PROJMAN_WORKSPACE"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// AppDirName is the directory name for projman-specific files
	AppDirName = "projman"

	// ProjectsFileName is the project registry file
	ProjectsFileName = "projects.json"

	// TemplatesFileName is the template registry file
	TemplatesFileName = "templates.json"

	// ConfigFileName is the user configuration file
	ConfigFileName = "config.toml"

	// LogFileName is the name of the log file
	LogFileName = "projman.log"
)

// paths resolves projman's storage locations
type paths struct {
	dataDir   string
	configDir string
	stateDir  string
}

// New creates a Pather resolving XDG directories, honoring the
// PROJMAN_DATA_DIR and PROJMAN_CONFIG_DIR overrides.
func New() (types.Pather, error) {
	p := &paths{}
	xdg.Reload()

	if dataDir := os.Getenv(EnvDataDir); dataDir != "" {
		p.dataDir = ExpandHome(dataDir)
	} else {
		p.dataDir = filepath.Join(xdg.DataHome, AppDirName)
	}

	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.configDir = ExpandHome(configDir)
	} else {
		p.configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	// XDG_STATE_HOME is read directly to stay in step with pkg/logging
	if stateDir := os.Getenv("XDG_STATE_HOME"); stateDir != "" {
		p.stateDir = filepath.Join(stateDir, AppDirName)
	} else {
		homeDir, _ := os.UserHomeDir()
		p.stateDir = filepath.Join(homeDir, ".local", "state", AppDirName)
	}

	for _, dir := range []*string{&p.dataDir, &p.configDir} {
		abs, err := filepath.Abs(*dir)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", *dir)
		}
		*dir = abs
	}

	return p, nil
}

// NewWithRoot places every location under root.
func NewWithRoot(root string) types.Pather {
	return &paths{
		dataDir:   filepath.Join(root, "data"),
		configDir: filepath.Join(root, "config"),
		stateDir:  filepath.Join(root, "state"),
	}
}

func (p *paths) DataDir() string   { return p.dataDir }
func (p *paths) ConfigDir() string { return p.configDir }
func (p *paths) StateDir() string  { return p.stateDir }

func (p *paths) ProjectsFile() string {
	return filepath.Join(p.dataDir, ProjectsFileName)
}

func (p *paths) TemplatesFile() string {
	return filepath.Join(p.dataDir, TemplatesFileName)
}

func (p *paths) ConfigFile() string {
	return filepath.Join(p.configDir, ConfigFileName)
}

// FindWorkspaceRoot determines the active workspace using the following priority:
// 1. explicit override (the --workspace flag)
// 2. PROJMAN_WORKSPACE environment variable
// 3. Git repository root (found via 'git rev-parse --show-toplevel')
// 4. Current working directory
//
// The returned path is absolute. ok is false only when no candidate exists
// on disk.
func FindWorkspaceRoot(override string) (root string, ok bool) {
	candidates := []func() string{
		func() string { return override },
		func() string { return os.Getenv(EnvWorkspace) },
		func() string {
			gitRoot, err := findGitRoot()
			if err != nil {
				return ""
			}
			return gitRoot
		},
		func() string {
			cwd, err := os.Getwd()
			if err != nil {
				return ""
			}
			return cwd
		},
	}

	for _, candidate := range candidates {
		path := candidate()
		if path == "" {
			continue
		}
		abs, err := filepath.Abs(ExpandHome(path))
		if err != nil {
			continue
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			continue
		}
		return abs, true
	}
	return "", false
}

// findGitRoot attempts to find the root of the current git repository
func findGitRoot() (string, error) {
	output, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", err
	}

	gitRoot := strings.TrimSpace(string(output))
	if gitRoot == "" {
		return "", errors.New(errors.ErrNotFound, "git root is empty")
	}
	return gitRoot, nil
}

// ExpandHome expands ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}

// ExpandAbs expands a leading ~ and makes path absolute
func ExpandAbs(path string) (string, error) {
	abs, err := filepath.Abs(ExpandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", path)
	}
	return abs, nil
}
