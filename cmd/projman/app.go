package projman

import (
	stderrors "errors"
	"io"
	"os"

	"github.com/arthur-debert/projman/pkg/config"
	"github.com/arthur-debert/projman/pkg/duplicator"
	"github.com/arthur-debert/projman/pkg/errors"
	"github.com/arthur-debert/projman/pkg/filesystem"
	"github.com/arthur-debert/projman/pkg/logging"
	"github.com/arthur-debert/projman/pkg/manager"
	"github.com/arthur-debert/projman/pkg/output"
	"github.com/arthur-debert/projman/pkg/paths"
	"github.com/arthur-debert/projman/pkg/projects"
	"github.com/arthur-debert/projman/pkg/templates"
	"github.com/arthur-debert/projman/pkg/types"
	"github.com/arthur-debert/projman/pkg/ui"
	"github.com/arthur-debert/projman/pkg/ui/terminal"
	"github.com/spf13/cobra"
)

// globalOptions holds the persistent flags
type globalOptions struct {
	verbosity int
	workspace string
	noColor   bool
}

// app is everything one invocation needs, built from the real
// filesystem, the user's settings and the terminal.
type app struct {
	paths     types.Pather
	fs        types.FS
	settings  *config.Store
	projects  *projects.Registry
	templates *templates.Registry
	host      *terminal.Host
	manager   *manager.Manager
	noColor   bool
}

func newApp(cmd *cobra.Command, opts *globalOptions) (*app, error) {
	logger := logging.GetLogger("cli")

	p, err := paths.New()
	if err != nil {
		return nil, err
	}
	settings, err := config.Load(p)
	if err != nil {
		return nil, err
	}

	workspace, err := resolveWorkspace(opts.workspace)
	if err != nil {
		return nil, err
	}
	if workspace != "" {
		logger.Debug().Str("workspace", workspace).Msg(MsgRunningWithWorkspace)
	} else {
		logger.Debug().Msg(MsgNoWorkspaceDetected)
	}

	fs := filesystem.NewOS()
	a := &app{
		paths:     p,
		fs:        fs,
		settings:  settings,
		projects:  projects.New(fs, p.ProjectsFile()),
		templates: templates.New(fs, p.TemplatesFile()),
		noColor:   opts.noColor,
	}

	in := cmd.InOrStdin()
	a.host = terminal.New(terminal.Options{
		Workspace:   workspace,
		Settings:    settings,
		Interactive: interactive(in, cmd.ErrOrStderr()),
		In:          in,
		Out:         cmd.ErrOrStderr(),
		Stdout:      cmd.OutOrStdout(),
	})
	a.manager = manager.New(manager.Deps{
		Host:       a.host,
		Projects:   a.projects,
		Templates:  a.templates,
		Duplicator: duplicator.New(fs),
		FS:         fs,
		Logger:     logging.GetLogger("manager"),
	})
	return a, nil
}

// resolveWorkspace applies the workspace lookup order. An explicit
// --workspace must exist; the other sources fall through silently.
func resolveWorkspace(override string) (string, error) {
	if override != "" {
		abs, err := paths.ExpandAbs(override)
		if err != nil {
			return "", err
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			return "", errors.Newf(errors.ErrInvalidInput, "%s is not an existing folder", override)
		}
		return abs, nil
	}
	workspace, _ := paths.FindWorkspaceRoot("")
	return workspace, nil
}

// interactive reports whether prompts can use pterm's key-driven widgets.
// Anything other than a real terminal on both ends gets line prompts.
func interactive(in io.Reader, out io.Writer) bool {
	inFile, ok := in.(*os.File)
	if !ok || !ui.IsTerminal(inFile) {
		return false
	}
	outFile, ok := out.(*os.File)
	return ok && ui.IsTerminal(outFile)
}

// renderer builds an output renderer for cmd's stdout in the requested format
func (a *app) renderer(cmd *cobra.Command, format string) (*output.Renderer, error) {
	return newRenderer(cmd, format, a.noColor)
}

func newRenderer(cmd *cobra.Command, format string, noColor bool) (*output.Renderer, error) {
	f, err := ui.ParseFormat(format)
	if err != nil {
		return nil, errors.Newf(errors.ErrInvalidInput, MsgErrUnknownFormat, format)
	}
	w := cmd.OutOrStdout()
	if file, ok := w.(*os.File); ok {
		f = ui.Resolve(f, file, noColor)
	} else if f == ui.FormatAuto || (noColor && f == ui.FormatTerminal) {
		f = ui.FormatText
	}
	return output.NewRenderer(w, f), nil
}

// sourceMissing reports templates whose source folder is gone
func (a *app) sourceMissing(t templates.Template) bool {
	info, err := a.fs.Stat(t.SourcePath)
	if err != nil || !info.IsDir() {
		logger := logging.GetLogger("cli")
		logger.Debug().Str("template", t.Name).Str("source", t.SourcePath).Msg(MsgSkippingMissingSource)
		return true
	}
	return false
}

// reportedError carries a failure the host already showed the user
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// IsReported reports whether err was already displayed to the user, so
// callers only need to set the exit status.
func IsReported(err error) bool {
	var r *reportedError
	return stderrors.As(err, &r)
}

// finish turns an operation result into the command's error. Cancelled
// operations exit cleanly.
func finish(res *manager.Result) error {
	logger := logging.GetLogger("cli")
	logger.Debug().
		Str("operation", string(res.Operation)).
		Str("state", res.State.String()).
		Msg("Command finished")
	if res.Failed() {
		return &reportedError{err: res.Err}
	}
	return nil
}
