// Package terminal implements host.Host for a command-line session.
// Interactive sessions get pterm prompts; when stdin is not a terminal the
// prompts fall back to reading plain lines so projman can be scripted.
package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/arthur-debert/projman/pkg/config"
	"github.com/arthur-debert/projman/pkg/errors"
	"github.com/arthur-debert/projman/pkg/host"
	"github.com/arthur-debert/projman/pkg/logging"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// Settings is where the host reads and writes configuration values
type Settings interface {
	Get(key string) interface{}
	Set(key string, value interface{}) error
}

// Options configures a Host
type Options struct {
	// Workspace is the active folder; empty means none
	Workspace string
	Settings  Settings
	// Interactive selects pterm prompts over line reading
	Interactive bool
	// In is read by line-mode prompts
	In io.Reader
	// Out receives prompts and notifications
	Out io.Writer
	// Stdout receives opened paths when no open command is configured
	Stdout io.Writer
}

// Host talks to the user through the terminal
type Host struct {
	opts   Options
	in     *bufio.Reader
	logger zerolog.Logger
}

var _ host.Host = (*Host)(nil)

// New creates a terminal Host. Nil streams default to the process's
// standard streams.
func New(opts Options) *Host {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stderr
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	return &Host{
		opts:   opts,
		in:     bufio.NewReader(opts.In),
		logger: logging.GetLogger("terminal"),
	}
}

func (h *Host) WorkspaceRoot() (string, bool) {
	return h.opts.Workspace, h.opts.Workspace != ""
}

// PromptText returns the entered text, or def when the line is left empty.
// A lone host.EmptyAnswer clears the answer so an empty value can be given
// even when a default is offered.
func (h *Host) PromptText(label, def string) (string, error) {
	if h.opts.Interactive {
		result, err := pterm.DefaultInteractiveTextInput.
			WithDefaultValue(def).
			Show(label)
		if err != nil {
			return "", errors.Wrap(err, errors.ErrInternal, "prompt failed")
		}
		result = strings.TrimSpace(result)
		if result == host.EmptyAnswer {
			return "", nil
		}
		return result, nil
	}

	if def != "" {
		fmt.Fprintf(h.opts.Out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(h.opts.Out, "%s: ", label)
	}
	line, err := h.readLine()
	if err != nil {
		return "", err
	}
	switch line {
	case "":
		return def, nil
	case host.EmptyAnswer:
		return "", nil
	}
	return line, nil
}

// PromptChoice shows options and returns the one picked. In line mode the
// user answers with the option's number; a blank answer cancels.
func (h *Host) PromptChoice(options []host.Option, placeholder string) (host.Option, error) {
	if len(options) == 0 {
		return host.Option{}, errors.New(errors.ErrInvalidInput, "nothing to choose from")
	}

	labels := make([]string, len(options))
	for i, o := range options {
		labels[i] = formatOption(i, o, h.opts.Interactive)
	}

	if h.opts.Interactive {
		selected, err := pterm.DefaultInteractiveSelect.
			WithOptions(labels).
			WithDefaultText(placeholder).
			Show()
		if err != nil {
			return host.Option{}, errors.Wrap(err, errors.ErrInternal, "prompt failed")
		}
		for i, l := range labels {
			if l == selected {
				return options[i], nil
			}
		}
		return host.Option{}, host.ErrCancelled
	}

	fmt.Fprintln(h.opts.Out, placeholder)
	for _, l := range labels {
		fmt.Fprintf(h.opts.Out, "  %s\n", l)
	}
	fmt.Fprint(h.opts.Out, "> ")

	line, err := h.readLine()
	if err != nil {
		return host.Option{}, err
	}
	if line == "" {
		return host.Option{}, host.ErrCancelled
	}
	if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(options) {
		return options[n-1], nil
	}
	// Accept the label itself, which is friendlier for scripts
	for _, o := range options {
		if o.Label == line {
			return o, nil
		}
	}
	return host.Option{}, errors.Newf(errors.ErrInvalidInput, "%q is not one of the choices", line)
}

// PromptFolder asks for a folder path
func (h *Host) PromptFolder(title string) (string, error) {
	return h.PromptText(title, "")
}

func (h *Host) GetConfigValue(key string) interface{} {
	if h.opts.Settings == nil {
		return nil
	}
	return h.opts.Settings.Get(key)
}

func (h *Host) SetConfigValue(key string, value interface{}) error {
	if h.opts.Settings == nil {
		return errors.New(errors.ErrConfigWrite, "settings are not available")
	}
	return h.opts.Settings.Set(key, value)
}

// OpenAsWorkspace runs the configured open_command with path appended, or
// prints path to stdout so the shell can use it (cd "$(projman open)").
func (h *Host) OpenAsWorkspace(path string) error {
	command := strings.Fields(config.AsString(h.GetConfigValue(config.KeyOpenCommand)))
	if len(command) == 0 {
		_, err := fmt.Fprintln(h.opts.Stdout, path)
		return err
	}

	args := append(command[1:], path)
	h.logger.Debug().Str("command", command[0]).Strs("args", args).Msg("Opening project")

	cmd := exec.Command(command[0], args...)
	cmd.Dir = path
	cmd.Stdin = os.Stdin
	cmd.Stdout = h.opts.Stdout
	cmd.Stderr = h.opts.Out
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "failed to run %s", command[0]).
			WithDetail("path", path)
	}
	return nil
}

func (h *Host) NotifyInfo(message string) {
	pterm.Info.WithWriter(h.opts.Out).Println(message)
}

func (h *Host) NotifyError(message string) {
	pterm.Error.WithWriter(h.opts.Out).Println(message)
}

// readLine returns the next trimmed line. End of input cancels.
func (h *Host) readLine() (string, error) {
	line, err := h.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimSpace(line), nil
		}
		if err == io.EOF {
			return "", host.ErrCancelled
		}
		return "", errors.Wrap(err, errors.ErrInternal, "failed to read input")
	}
	return strings.TrimSpace(line), nil
}

func formatOption(i int, o host.Option, styled bool) string {
	switch {
	case o.Detail == "":
		return fmt.Sprintf("%d) %s", i+1, o.Label)
	case styled:
		return fmt.Sprintf("%d) %s  %s", i+1, o.Label, pterm.Gray(o.Detail))
	default:
		return fmt.Sprintf("%d) %s  (%s)", i+1, o.Label, o.Detail)
	}
}
