// pkg/testutil/environment.go
// DEPENDENCIES: pkg/filesystem, pkg/paths, registries, duplicator
// PURPOSE: Orchestrate test environments with proper dependencies

package testutil

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/projman/pkg/duplicator"
	"github.com/arthur-debert/projman/pkg/filesystem"
	"github.com/arthur-debert/projman/pkg/paths"
	"github.com/arthur-debert/projman/pkg/projects"
	"github.com/arthur-debert/projman/pkg/templates"
	"github.com/arthur-debert/projman/pkg/types"
	"github.com/stretchr/testify/require"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// Environment bundles a filesystem, storage locations and the components
// built on them.
type Environment struct {
	Root       string
	FS         types.FS
	Paths      types.Pather
	Projects   *projects.Registry
	Templates  *templates.Registry
	Duplicator *duplicator.Duplicator

	t *testing.T
}

// FixedTime is the clock used by Environment's template registry
var FixedTime = time.Date(2024, 5, 4, 12, 0, 0, 0, time.UTC)

// NewEnvironment creates an isolated environment. Memory environments are
// rooted at /env; isolated ones at a fresh temp dir.
func NewEnvironment(t *testing.T, envType EnvType) *Environment {
	t.Helper()

	var fs types.FS
	var root string
	switch envType {
	case EnvIsolated:
		fs = filesystem.NewOS()
		root = t.TempDir()
	default:
		fs = filesystem.NewMemory()
		root = "/env"
		require.NoError(t, fs.MkdirAll(root, 0755))
	}

	p := paths.NewWithRoot(filepath.Join(root, "projman"))
	tmpl := templates.New(fs, p.TemplatesFile())
	tmpl.Now = func() time.Time { return FixedTime }

	return &Environment{
		Root:       root,
		FS:         fs,
		Paths:      p,
		Projects:   projects.New(fs, p.ProjectsFile()),
		Templates:  tmpl,
		Duplicator: duplicator.New(fs),
		t:          t,
	}
}

// Path joins elem onto the environment root
func (e *Environment) Path(elem ...string) string {
	return filepath.Join(append([]string{e.Root}, elem...)...)
}

// Mkdir creates a directory under the root and returns its path
func (e *Environment) Mkdir(rel string) string {
	e.t.Helper()
	dir := e.Path(rel)
	require.NoError(e.t, e.FS.MkdirAll(dir, 0755))
	return dir
}

// WriteTree creates files (relative path to content) under dir
func (e *Environment) WriteTree(dir string, files map[string]string) {
	e.t.Helper()
	WriteTree(e.t, e.FS, dir, files)
}

// ReadFile returns the content of path as a string
func (e *Environment) ReadFile(path string) string {
	e.t.Helper()
	data, err := e.FS.ReadFile(path)
	require.NoError(e.t, err)
	return string(data)
}

// Exists reports whether path exists
func (e *Environment) Exists(path string) bool {
	_, err := e.FS.Lstat(path)
	return err == nil
}

// WriteTree creates files (relative path to content) under dir
func WriteTree(t *testing.T, fs types.FS, dir string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(dir, rel)
		require.NoError(t, fs.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, fs.WriteFile(p, []byte(content), 0644))
	}
}

// CompactJSON strips insignificant whitespace from a JSON document
func CompactJSON(t *testing.T, data string) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.Compact(&buf, []byte(data)))
	return buf.String()
}
