package types

import (
	"io"
	"io/fs"
)

// FS is the filesystem surface used by the stores and the duplicator.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Open(name string) (io.ReadCloser, error)
	// Create opens name for writing, truncating any existing content.
	Create(name string, perm fs.FileMode) (io.WriteCloser, error)
	Rename(oldpath, newpath string) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error

	// Lstat falls back to Stat on filesystems without symlink support
	Lstat(name string) (fs.FileInfo, error)
}

// Pather provides the locations of projman's persisted state
type Pather interface {
	// DataDir returns the directory holding the registries
	DataDir() string

	// ConfigDir returns the directory holding the user configuration
	ConfigDir() string

	// StateDir returns the directory holding logs
	StateDir() string

	// ProjectsFile returns the path of projects.json
	ProjectsFile() string

	// TemplatesFile returns the path of templates.json
	TemplatesFile() string

	// ConfigFile returns the path of the user configuration file
	ConfigFile() string
}
