// pkg/templates/templates_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: afero MemMapFs
// PURPOSE: Verify template save/overwrite/delete semantics

package templates_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/arthur-debert/projman/pkg/errors"
	"github.com/arthur-debert/projman/pkg/filesystem"
	"github.com/arthur-debert/projman/pkg/templates"
	"github.com/arthur-debert/projman/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const file = "/data/templates.json"

type clock struct{ t time.Time }

func (c *clock) now() time.Time {
	c.t = c.t.Add(1500 * time.Millisecond)
	return c.t
}

func setup(t *testing.T) (*templates.Registry, types.FS) {
	t.Helper()
	fs := filesystem.NewMemory()
	reg := templates.New(fs, file)
	c := &clock{t: time.Date(2024, 3, 1, 9, 30, 0, 0, time.FixedZone("CET", 3600))}
	reg.Now = c.now
	require.NoError(t, reg.EnsureReady())
	return reg, fs
}

func save(t *testing.T, reg *templates.Registry, name string) *templates.Template {
	t.Helper()
	tmpl, err := reg.Save(templates.SaveOptions{
		Name:            name,
		Description:     "desc " + name,
		SourcePath:      "/src/" + name,
		ExcludePatterns: []string{"node_modules", ".git"},
	})
	require.NoError(t, err)
	return tmpl
}

func TestSave_StampsUTCMillis(t *testing.T) {
	reg, fs := setup(t)

	tmpl := save(t, reg, "web")
	assert.Equal(t, "2024-03-01T08:30:01.500Z", tmpl.DateCreated)
	assert.Equal(t, time.Date(2024, 3, 1, 8, 30, 1, 500_000_000, time.UTC), tmpl.Created())

	data, err := fs.ReadFile(file)
	require.NoError(t, err)
	var raw []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 1)
	assert.Equal(t, map[string]interface{}{
		"name":            "web",
		"description":     "desc web",
		"sourcePath":      "/src/web",
		"dateCreated":     "2024-03-01T08:30:01.500Z",
		"excludePatterns": []interface{}{"node_modules", ".git"},
	}, raw[0])
}

func TestSave_NilPatternsPersistAsEmptyArray(t *testing.T) {
	reg, fs := setup(t)

	_, err := reg.Save(templates.SaveOptions{Name: "bare", SourcePath: "/src"})
	require.NoError(t, err)

	data, err := fs.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"excludePatterns": []`)
}

func TestSave_DuplicateWithoutOverwrite(t *testing.T) {
	reg, fs := setup(t)
	save(t, reg, "web")
	before, err := fs.ReadFile(file)
	require.NoError(t, err)

	_, err = reg.Save(templates.SaveOptions{Name: "web", SourcePath: "/elsewhere"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDuplicateName))

	after, err := fs.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestSave_OverwriteReplacesRecord(t *testing.T) {
	reg, _ := setup(t)
	save(t, reg, "a")
	old := save(t, reg, "web")
	save(t, reg, "b")

	replaced, err := reg.Save(templates.SaveOptions{
		Name:           "web",
		Description:    "new",
		SourcePath:     "/src/new",
		AllowOverwrite: true,
	})
	require.NoError(t, err)
	assert.NotEqual(t, old.DateCreated, replaced.DateCreated)

	list, err := reg.List()
	require.NoError(t, err)

	var names []string
	count := 0
	for _, tmpl := range list {
		names = append(names, tmpl.Name)
		if tmpl.Name == "web" {
			count++
			assert.Equal(t, "new", tmpl.Description)
			assert.NotEqual(t, old.DateCreated, tmpl.DateCreated)
		}
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, []string{"a", "b", "web"}, names, "replacement is appended")
}

func TestGet(t *testing.T) {
	reg, _ := setup(t)
	save(t, reg, "web")

	tmpl, err := reg.Get("web")
	require.NoError(t, err)
	assert.Equal(t, "/src/web", tmpl.SourcePath)

	_, err = reg.Get("nope")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestDelete_PreservesOthers(t *testing.T) {
	reg, _ := setup(t)
	save(t, reg, "a")
	save(t, reg, "b")
	save(t, reg, "c")

	before, err := reg.List()
	require.NoError(t, err)

	require.NoError(t, reg.Delete("b"))

	after, err := reg.List()
	require.NoError(t, err)
	assert.Equal(t, []templates.Template{before[0], before[2]}, after)
}

func TestDelete_Missing(t *testing.T) {
	reg, fs := setup(t)
	save(t, reg, "a")
	before, err := fs.ReadFile(file)
	require.NoError(t, err)

	err = reg.Delete("zzz")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))

	after, err := fs.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestList_KeepsTemplatesWithVanishedSource(t *testing.T) {
	reg, _ := setup(t)
	save(t, reg, "ghost")

	list, err := reg.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "/src/ghost", list[0].SourcePath)
}

func TestSave_RejectsEmptySource(t *testing.T) {
	reg, fs := setup(t)
	before, err := fs.ReadFile(file)
	require.NoError(t, err)

	_, err = reg.Save(templates.SaveOptions{Name: "bare"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	after, err := fs.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestList_IncompleteRecordsCountAsCorrupted(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty record", `[{}]`},
		{"unrelated fields", `[{"bogus":1}]`},
		{"null record", `[null]`},
		{"missing source", `[{"name":"web","sourcePath":"/src/web"},{"name":"api"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, fs := setup(t)
			require.NoError(t, fs.WriteFile(file, []byte(tt.content), 0644))

			list, err := reg.List()
			require.NoError(t, err)
			assert.Empty(t, list)
		})
	}
}

func TestCreated_Malformed(t *testing.T) {
	assert.True(t, templates.Template{DateCreated: "yesterday"}.Created().IsZero())
}
