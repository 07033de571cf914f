// cmd/projman/commands_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem in temp directories, environment overrides
// PURPOSE: Run the CLI end to end through line-mode prompts

package projman

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/projman/internal/version"
	"github.com/arthur-debert/projman/pkg/errors"
	"github.com/arthur-debert/projman/pkg/filesystem"
	"github.com/arthur-debert/projman/pkg/paths"
	"github.com/arthur-debert/projman/pkg/testutil"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cliEnv struct {
	root      string
	workspace string
}

// newCLIEnv points every projman location at a temp dir and makes
// <root>/ws/app the workspace.
func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	pterm.DisableColor()

	root := t.TempDir()
	e := &cliEnv{root: root, workspace: filepath.Join(root, "ws", "app")}
	testutil.WriteTree(t, filesystem.NewOS(), e.workspace, map[string]string{
		"main.go":             "package main\n",
		"node_modules/dep.js": "x",
	})

	t.Setenv(paths.EnvDataDir, filepath.Join(root, "data"))
	t.Setenv(paths.EnvConfigDir, filepath.Join(root, "config"))
	t.Setenv(paths.EnvWorkspace, e.workspace)
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	t.Setenv("NO_COLOR", "1")
	return e
}

func (e *cliEnv) run(t *testing.T, input string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func (e *cliEnv) readData(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(e.root, "data", name))
	require.NoError(t, err)
	return string(data)
}

func TestAddThenList(t *testing.T) {
	e := newCLIEnv(t)

	_, stderr, err := e.run(t, "\n", "add")
	require.NoError(t, err)
	assert.Contains(t, stderr, `Project "app" has been saved`)
	assert.Contains(t, stderr, "Enter project name [app]: ")

	stdout, _, err := e.run(t, "", "list", "--format", "json")
	require.NoError(t, err)
	var listed []map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &listed))
	assert.Equal(t, []map[string]string{{"name": "app", "path": e.workspace}}, listed)

	stdout, _, err = e.run(t, "", "ls")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Projects")
	assert.Contains(t, stdout, e.workspace)
}

func TestAdd_CancelExitsCleanly(t *testing.T) {
	e := newCLIEnv(t)

	_, stderr, err := e.run(t, "", "add")
	require.NoError(t, err)
	assert.NotContains(t, stderr, "saved")
	assert.Equal(t, "[]", strings.TrimSpace(e.readData(t, "projects.json")))
}

func TestAdd_DuplicateIsReportedOnce(t *testing.T) {
	e := newCLIEnv(t)

	_, _, err := e.run(t, "\n", "add")
	require.NoError(t, err)

	_, stderr, err := e.run(t, "\n", "add")
	require.Error(t, err)
	assert.True(t, IsReported(err))
	assert.True(t, errors.IsErrorCode(err, errors.ErrDuplicateName))
	assert.Equal(t, 1, strings.Count(stderr, "A project with this name already exists"))
}

func TestCopy_RequiresTargetFolder(t *testing.T) {
	e := newCLIEnv(t)

	_, stderr, err := e.run(t, "", "copy")
	require.Error(t, err)
	assert.True(t, IsReported(err))
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoTargetFolder))
	assert.Contains(t, stderr, "Please select a target folder first")
}

func TestTargetThenCopy(t *testing.T) {
	e := newCLIEnv(t)
	target := filepath.Join(e.root, "targets")
	require.NoError(t, os.MkdirAll(target, 0755))

	_, stderr, err := e.run(t, target+"\n", "target")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Target folder set to: "+target)

	stdout, stderr, err := e.run(t, "copy1\n", "copy")
	require.NoError(t, err)

	dest := filepath.Join(target, "copy1")
	assert.Contains(t, stderr, "Project copied to "+dest)
	// auto_open_new_projects is on and no open_command is set
	assert.Equal(t, dest+"\n", stdout)

	assert.FileExists(t, filepath.Join(dest, "main.go"))
	assert.NoDirExists(t, filepath.Join(dest, "node_modules"))
	assert.Contains(t, e.readData(t, "projects.json"), `"name": "copy1"`)
}

func TestTemplateLifecycle(t *testing.T) {
	e := newCLIEnv(t)

	_, stderr, err := e.run(t, "starter\nA *small* starter\nnode_modules\n", "template", "save")
	require.NoError(t, err)
	assert.Contains(t, stderr, `Template "starter" saved`)

	stdout, _, err := e.run(t, "", "template", "list", "--format", "json")
	require.NoError(t, err)
	var listed []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "starter", listed[0]["name"])
	assert.Equal(t, e.workspace, listed[0]["sourcePath"])
	assert.Equal(t, []interface{}{"node_modules"}, listed[0]["excludePatterns"])
	assert.NotContains(t, listed[0], "sourceMissing")

	stdout, _, err = e.run(t, "", "template", "show", "starter", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, stdout, "starter")
	assert.Contains(t, stdout, "small")

	_, stderr, err = e.run(t, "", "template", "delete", "starter", "--yes")
	require.NoError(t, err)
	assert.Contains(t, stderr, `Template "starter" deleted`)
	assert.Equal(t, "[]", strings.TrimSpace(e.readData(t, "templates.json")))
}

func TestTemplateSave_DashMeansNoPatterns(t *testing.T) {
	e := newCLIEnv(t)

	_, _, err := e.run(t, "bare\n\n-\n", "template", "save")
	require.NoError(t, err)

	stdout, _, err := e.run(t, "", "template", "list", "--format", "json")
	require.NoError(t, err)
	var listed []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, []interface{}{}, listed[0]["excludePatterns"])
}

func TestTemplateList_FlagsVanishedSource(t *testing.T) {
	e := newCLIEnv(t)

	_, _, err := e.run(t, "gone\n\n\n", "template", "save")
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(e.workspace))

	stdout, _, err := e.run(t, "", "template", "list", "--format", "json")
	require.NoError(t, err)
	var listed []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, true, listed[0]["sourceMissing"])
}

func TestTemplateNew_CreatesFromTemplate(t *testing.T) {
	e := newCLIEnv(t)
	target := filepath.Join(e.root, "targets")
	require.NoError(t, os.MkdirAll(target, 0755))

	_, _, err := e.run(t, "starter\n\nnode_modules\n", "template", "save")
	require.NoError(t, err)

	// template choice, project name, then the folder prompt since no target is set
	stdout, stderr, err := e.run(t, "1\nfresh\n"+target+"\n", "template", "new")
	require.NoError(t, err)

	dest := filepath.Join(target, "fresh")
	assert.Contains(t, stderr, `Project "fresh" created from template "starter"`)
	assert.Equal(t, dest+"\n", stdout)
	assert.FileExists(t, filepath.Join(dest, "main.go"))
	assert.NoDirExists(t, filepath.Join(dest, "node_modules"))

	got, _, err := e.run(t, "", "config", "get", "target_folder")
	require.NoError(t, err)
	assert.Equal(t, target+"\n", got)
}

func TestTemplateDelete_DeclinedKeepsTemplate(t *testing.T) {
	e := newCLIEnv(t)

	_, _, err := e.run(t, "starter\n\n\n", "template", "save")
	require.NoError(t, err)

	_, _, err = e.run(t, "2\n", "template", "delete", "starter")
	require.NoError(t, err)
	assert.Contains(t, e.readData(t, "templates.json"), `"name": "starter"`)
}

func TestTemplateShow_Unknown(t *testing.T) {
	e := newCLIEnv(t)

	_, _, err := e.run(t, "", "template", "show", "nope")
	require.Error(t, err)
	assert.False(t, IsReported(err))
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestConfigSetGetList(t *testing.T) {
	e := newCLIEnv(t)

	_, stderr, err := e.run(t, "", "config", "set", "copy_exclude_patterns", "vendor, .cache")
	require.NoError(t, err)
	assert.Contains(t, stderr, "copy_exclude_patterns set to vendor,.cache")

	stdout, _, err := e.run(t, "", "config", "get", "copy_exclude_patterns", "--format", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"key":"copy_exclude_patterns","value":["vendor",".cache"]}`, stdout)

	stdout, _, err = e.run(t, "", "config", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "auto_open_new_projects      true")
	assert.Contains(t, stdout, "copy_exclude_patterns       vendor,.cache")

	assert.FileExists(t, filepath.Join(e.root, "config", "config.toml"))
}

func TestConfigSet_TargetFolderIsMadeAbsolute(t *testing.T) {
	e := newCLIEnv(t)
	cwd, err := os.Getwd()
	require.NoError(t, err)

	_, _, err = e.run(t, "", "config", "set", "target_folder", "some/where")
	require.NoError(t, err)

	stdout, _, err := e.run(t, "", "config", "get", "target_folder")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, "some", "where")+"\n", stdout)
}

func TestConfig_InvalidInput(t *testing.T) {
	e := newCLIEnv(t)

	_, _, err := e.run(t, "", "config", "get", "colour")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	assert.Contains(t, err.Error(), "target_folder")

	_, _, err = e.run(t, "", "config", "set", "auto_open_new_projects", "sometimes")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestWorkspaceFlag(t *testing.T) {
	e := newCLIEnv(t)
	other := filepath.Join(e.root, "ws", "other")
	require.NoError(t, os.MkdirAll(other, 0755))

	_, stderr, err := e.run(t, "\n", "--workspace", other, "add")
	require.NoError(t, err)
	assert.Contains(t, stderr, `Project "other" has been saved`)

	_, _, err = e.run(t, "\n", "-w", filepath.Join(e.root, "missing"), "add")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestUnknownFormat(t *testing.T) {
	e := newCLIEnv(t)

	_, _, err := e.run(t, "", "list", "--format", "xml")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestVersionAndCompletion(t *testing.T) {
	e := newCLIEnv(t)

	stdout, _, err := e.run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "projman "+version.Version)

	stdout, _, err = e.run(t, "", "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, stdout, "projman")

	_, _, err = e.run(t, "", "completion", "tcsh")
	assert.Error(t, err)
}

func TestCompletionFunctions(t *testing.T) {
	e := newCLIEnv(t)

	for _, name := range []string{"starter", "stack", "web"} {
		_, _, err := e.run(t, name+"\n\n\n", "template", "save")
		require.NoError(t, err)
	}

	names, directive := templateNamesCompletion(&cobra.Command{}, nil, "st")
	assert.Equal(t, []string{"starter", "stack"}, names)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)

	names, _ = templateNamesCompletion(&cobra.Command{}, []string{"web"}, "")
	assert.Empty(t, names)

	keys, _ := configKeysCompletion(&cobra.Command{}, nil, "co")
	assert.Equal(t, []string{"confirm_template_overwrite", "copy_exclude_patterns"}, keys)
}

func TestRootWithoutCommand(t *testing.T) {
	e := newCLIEnv(t)

	stdout, _, err := e.run(t, "")
	require.Error(t, err)
	assert.Contains(t, stdout, "PROJECTS:")
	assert.Contains(t, stdout, "template")
}

func TestSnippet(t *testing.T) {
	e := newCLIEnv(t)

	stdout, _, err := e.run(t, "", "snippet", "--shell", "zsh", "--name", "pj")
	require.NoError(t, err)
	assert.Contains(t, stdout, "pj() {")

	stdout, stderr, err := e.run(t, "", "snippet", "--install")
	require.NoError(t, err)
	script := filepath.Join(e.root, "data", "shell", "projman-init.sh")
	assert.FileExists(t, script)
	assert.Contains(t, stderr, "Shell integration installed to "+script)
	assert.Equal(t, `[ -f "`+script+`" ] && source "`+script+`"`+"\n", stdout)

	_, _, err = e.run(t, "", "snippet", "--shell", "tcsh")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
