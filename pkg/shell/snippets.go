package shell

import (
	"fmt"
	"regexp"

	"github.com/arthur-debert/projman/pkg/errors"
)

// DefaultFunctionName is the shell function the snippet defines
const DefaultFunctionName = "pcd"

// Supported shells
var Shells = []string{"bash", "zsh", "fish"}

var functionName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// The function empties open_command for the call so 'projman open' prints
// the chosen path instead of launching an editor.
const posixSnippet = `%[1]s() {
    local dir
    dir="$(PROJMAN_OPEN_COMMAND= command projman open "$@")" || return
    [ -n "$dir" ] && [ -d "$dir" ] && cd "$dir"
}
`

const fishSnippet = `function %[1]s
    set -l dir (env PROJMAN_OPEN_COMMAND= command projman open $argv)
    or return
    test -n "$dir"; and test -d "$dir"; and cd "$dir"
end
`

// Snippet returns shell code defining a function named fn that changes
// to the project picked with 'projman open'.
func Snippet(shell, fn string) (string, error) {
	if fn == "" {
		fn = DefaultFunctionName
	}
	if !functionName.MatchString(fn) {
		return "", errors.Newf(errors.ErrInvalidInput, "invalid function name %q", fn)
	}
	switch shell {
	case "bash", "zsh":
		return fmt.Sprintf(posixSnippet, fn), nil
	case "fish":
		return fmt.Sprintf(fishSnippet, fn), nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unsupported shell %q (bash, zsh, fish)", shell)
	}
}

// ScriptName is the file Install writes for shell
func ScriptName(shell string) string {
	if shell == "fish" {
		return "projman-init.fish"
	}
	return "projman-init.sh"
}

// SourceLine returns the line a user adds to their shell rc file to load
// the script installed under dataDir.
func SourceLine(shell, dataDir string) string {
	script := dataDir + "/shell/" + ScriptName(shell)
	if shell == "fish" {
		return fmt.Sprintf(`if test -f "%s"
    source "%s"
end`, script, script)
	}
	return fmt.Sprintf(`[ -f "%s" ] && source "%s"`, script, script)
}
