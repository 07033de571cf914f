package shell

import (
	"path/filepath"

	"github.com/arthur-debert/projman/pkg/errors"
	"github.com/arthur-debert/projman/pkg/logging"
	"github.com/arthur-debert/projman/pkg/types"
)

// Install writes the shell scripts defining fn into dataDir/shell and
// returns the paths written.
func Install(fs types.FS, dataDir, fn string) ([]string, error) {
	logger := logging.GetLogger("shell")
	shellDir := filepath.Join(dataDir, "shell")

	if err := fs.MkdirAll(shellDir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrWrite, "failed to create %s", shellDir)
	}

	var written []string
	for _, shell := range []string{"bash", "fish"} {
		snippet, err := Snippet(shell, fn)
		if err != nil {
			return written, err
		}
		dest := filepath.Join(shellDir, ScriptName(shell))
		if err := fs.WriteFile(dest, []byte(snippet), 0644); err != nil {
			return written, errors.Wrapf(err, errors.ErrWrite, "failed to write %s", dest)
		}
		logger.Info().Str("script", ScriptName(shell)).Str("dest", dest).Msg("Installed shell integration script")
		written = append(written, dest)
	}
	return written, nil
}
