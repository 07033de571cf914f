// pkg/output/renderer_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Verify list and detail rendering in every output format

package output_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/arthur-debert/projman/pkg/output"
	"github.com/arthur-debert/projman/pkg/projects"
	"github.com/arthur-debert/projman/pkg/templates"
	"github.com/arthur-debert/projman/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var sampleProjects = []projects.Project{
	{Name: "app", Path: "/w/app"},
	{Name: "library", Path: "/w/library"},
}

var sampleTemplates = []templates.Template{
	{
		Name:            "web",
		Description:     "A **web** starter\n\nWith a second paragraph.",
		SourcePath:      "/src/web",
		DateCreated:     "2024-05-04T12:00:00.000Z",
		ExcludePatterns: []string{"node_modules", "dist"},
	},
	{Name: "cli", SourcePath: "/src/cli", DateCreated: "2024-05-05T08:00:00.000Z"},
}

func render(t *testing.T, format ui.Format, fn func(r *output.Renderer) error) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, fn(output.NewRenderer(&buf, format)))
	return buf.String()
}

func TestProjects_Text(t *testing.T) {
	out := render(t, ui.FormatText, func(r *output.Renderer) error { return r.Projects(sampleProjects) })

	assert.Equal(t, "Projects\n  app      /w/app\n  library  /w/library\n", out)
	assert.NotContains(t, out, "\x1b[", "plain text carries no escape codes")
}

func TestProjects_Empty(t *testing.T) {
	out := render(t, ui.FormatText, func(r *output.Renderer) error { return r.Projects(nil) })
	assert.Equal(t, "No projects added yet.\n", out)

	out = render(t, ui.FormatJSON, func(r *output.Renderer) error { return r.Projects(nil) })
	assert.Equal(t, "[]\n", out)
}

func TestProjects_JSONAndYAML(t *testing.T) {
	out := render(t, ui.FormatJSON, func(r *output.Renderer) error { return r.Projects(sampleProjects) })
	var decoded []output.ProjectView
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, []output.ProjectView{{Name: "app", Path: "/w/app"}, {Name: "library", Path: "/w/library"}}, decoded)

	out = render(t, ui.FormatYAML, func(r *output.Renderer) error { return r.Projects(sampleProjects) })
	assert.Equal(t, "- name: app\n  path: /w/app\n- name: library\n  path: /w/library\n", out)
}

func TestTemplates_TextMarksMissingSources(t *testing.T) {
	missing := func(tmpl templates.Template) bool { return tmpl.Name == "cli" }
	out := render(t, ui.FormatText, func(r *output.Renderer) error { return r.Templates(sampleTemplates, missing) })

	assert.Contains(t, out, "web  A **web** starter\n")
	assert.Contains(t, out, "cli  /src/cli (source missing)")
	assert.NotContains(t, out, "second paragraph", "only the first line of the description is listed")
}

func TestTemplates_YAMLUsesStableFieldNames(t *testing.T) {
	out := render(t, ui.FormatYAML, func(r *output.Renderer) error { return r.Templates(sampleTemplates[1:], nil) })

	var decoded []map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "/src/cli", decoded[0]["sourcePath"])
	assert.Equal(t, []interface{}{}, decoded[0]["excludePatterns"])
	assert.NotContains(t, decoded[0], "sourceMissing")
}

func TestTemplate_DetailRendersMarkdown(t *testing.T) {
	out := render(t, ui.FormatText, func(r *output.Renderer) error { return r.Template(sampleTemplates[0], nil) })

	assert.Contains(t, out, "web\n")
	assert.Contains(t, out, "/src/web")
	assert.Contains(t, out, "node_modules, dist")
	assert.Contains(t, out, "starter")
	assert.Contains(t, out, "second paragraph")
	assert.NotContains(t, out, "\x1b[")
}

func TestTemplate_JSON(t *testing.T) {
	missing := func(templates.Template) bool { return true }
	out := render(t, ui.FormatJSON, func(r *output.Renderer) error { return r.Template(sampleTemplates[1], missing) })

	var decoded output.TemplateView
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.True(t, decoded.SourceMissing)
	assert.Equal(t, []string{}, decoded.ExcludePatterns)
}

func TestSettings(t *testing.T) {
	values := map[string]interface{}{
		"target_folder":          "/t",
		"auto_open_new_projects": true,
		"copy_exclude_patterns":  []interface{}{"node_modules", ".git"},
	}

	out := render(t, ui.FormatText, func(r *output.Renderer) error { return r.Settings(values) })
	assert.Equal(t,
		"auto_open_new_projects  true\n"+
			"copy_exclude_patterns   node_modules,.git\n"+
			"target_folder           /t\n", out)

	out = render(t, ui.FormatJSON, func(r *output.Renderer) error { return r.Settings(values) })
	var decoded []output.Setting
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 3)
	assert.Equal(t, "auto_open_new_projects", decoded[0].Key)
}

func TestValue(t *testing.T) {
	out := render(t, ui.FormatText, func(r *output.Renderer) error {
		return r.Value("default_exclude_patterns", []string{"a", "b"})
	})
	assert.Equal(t, "a,b\n", out)

	out = render(t, ui.FormatYAML, func(r *output.Renderer) error { return r.Value("target_folder", "/t") })
	assert.Equal(t, "key: target_folder\nvalue: /t\n", out)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "", output.FormatValue(nil))
	assert.Equal(t, "false", output.FormatValue(false))
	assert.Equal(t, "x,y", output.FormatValue([]string{"x", "y"}))
}
