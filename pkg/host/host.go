// Package host defines what the operation facade needs from its
// surroundings: the active workspace, prompts, settings, and a way to
// show messages and open folders.
package host

import (
	"github.com/arthur-debert/projman/pkg/errors"
)

// ErrCancelled is returned by prompts the user dismissed
var ErrCancelled = errors.New(errors.ErrCancelled, "cancelled by user")

// EmptyAnswer typed alone at a text prompt means "nothing", where a blank
// line would take the default instead.
const EmptyAnswer = "-"

// Option is one entry of a choice prompt
type Option struct {
	Label  string
	Detail string
}

// Host is implemented by the terminal UI and by test fakes.
type Host interface {
	// WorkspaceRoot returns the folder currently being worked on
	WorkspaceRoot() (string, bool)

	// PromptText asks for a line of text, offering def as the default.
	// An answer of EmptyAnswer yields "". Returns ErrCancelled when dismissed.
	PromptText(label, def string) (string, error)

	// PromptChoice asks the user to pick one of options.
	// Returns ErrCancelled when dismissed.
	PromptChoice(options []Option, placeholder string) (Option, error)

	// PromptFolder asks for a folder path.
	// Returns ErrCancelled when dismissed.
	PromptFolder(title string) (string, error)

	GetConfigValue(key string) interface{}
	SetConfigValue(key string, value interface{}) error

	// OpenAsWorkspace switches the user over to path
	OpenAsWorkspace(path string) error

	NotifyInfo(message string)
	NotifyError(message string)
}

// IsCancelled reports whether err means the user dismissed a prompt
func IsCancelled(err error) bool {
	return errors.IsErrorCode(err, errors.ErrCancelled)
}

// Confirm asks a yes/no question through PromptChoice. Dismissing the
// prompt counts as no.
func Confirm(h Host, question string) (bool, error) {
	choice, err := h.PromptChoice([]Option{
		{Label: "Yes"},
		{Label: "No"},
	}, question)
	if err != nil {
		if IsCancelled(err) {
			return false, nil
		}
		return false, err
	}
	return choice.Label == "Yes", nil
}
