// pkg/shell/snippets_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: Memory filesystem
// PURPOSE: Test shell integration snippet generation and installation

package shell_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/projman/pkg/errors"
	"github.com/arthur-debert/projman/pkg/filesystem"
	"github.com/arthur-debert/projman/pkg/shell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnippet(t *testing.T) {
	tests := []struct {
		name     string
		shell    string
		fn       string
		contains []string
	}{
		{
			name:  "bash_default_name",
			shell: "bash",
			contains: []string{
				"pcd() {",
				`dir="$(PROJMAN_OPEN_COMMAND= command projman open "$@")" || return`,
				`cd "$dir"`,
			},
		},
		{
			name:     "zsh_custom_name",
			shell:    "zsh",
			fn:       "goto-project",
			contains: []string{"goto-project() {"},
		},
		{
			name:  "fish",
			shell: "fish",
			fn:    "p",
			contains: []string{
				"function p\n",
				"set -l dir (env PROJMAN_OPEN_COMMAND= command projman open $argv)",
				"\nend\n",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := shell.Snippet(tt.shell, tt.fn)
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
		})
	}
}

func TestSnippet_Rejects(t *testing.T) {
	_, err := shell.Snippet("tcsh", "")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = shell.Snippet("bash", "rm -rf /; x")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestSourceLine(t *testing.T) {
	assert.Equal(t,
		`[ -f "/data/shell/projman-init.sh" ] && source "/data/shell/projman-init.sh"`,
		shell.SourceLine("zsh", "/data"))
	assert.Equal(t,
		"if test -f \"/data/shell/projman-init.fish\"\n    source \"/data/shell/projman-init.fish\"\nend",
		shell.SourceLine("fish", "/data"))
}

func TestInstall(t *testing.T) {
	fs := filesystem.NewMemory()

	written, err := shell.Install(fs, "/data", "pj")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("/data", "shell", "projman-init.sh"),
		filepath.Join("/data", "shell", "projman-init.fish"),
	}, written)

	data, err := fs.ReadFile("/data/shell/projman-init.sh")
	require.NoError(t, err)
	assert.Contains(t, string(data), "pj() {")

	data, err = fs.ReadFile("/data/shell/projman-init.fish")
	require.NoError(t, err)
	assert.Contains(t, string(data), "function pj")
}

func TestInstall_BadName(t *testing.T) {
	fs := filesystem.NewMemory()
	_, err := shell.Install(fs, "/data", "bad name")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
