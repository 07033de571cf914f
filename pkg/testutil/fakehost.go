// pkg/testutil/fakehost.go
// DEPENDENCIES: pkg/host
// PURPOSE: Scripted host for driving facade operations in tests

package testutil

import (
	"fmt"
	"sync"

	"github.com/arthur-debert/projman/pkg/host"
)

// Answer is the scripted response to one prompt
type Answer struct {
	// Value is the text entered, the folder picked, or the label chosen
	Value string
	// Cancel dismisses the prompt
	Cancel bool
	// Err makes the prompt fail with this error
	Err error
}

// Text answers a text or folder prompt with value
func Text(value string) Answer { return Answer{Value: value} }

// Choose answers a choice prompt by label
func Choose(label string) Answer { return Answer{Value: label} }

// Cancel dismisses a prompt
func Cancel() Answer { return Answer{Cancel: true} }

// Prompt records one prompt the fake was asked
type Prompt struct {
	Kind    string // "text", "choice" or "folder"
	Label   string
	Default string
	Options []host.Option
}

// FakeHost implements host.Host with scripted answers. Prompts consume
// Answers in order; running out of answers fails the prompt.
type FakeHost struct {
	mu sync.Mutex

	Workspace string
	Answers   []Answer
	Config    map[string]interface{}

	// SetConfigErr makes SetConfigValue fail
	SetConfigErr error
	// OpenErr makes OpenAsWorkspace fail
	OpenErr error

	Prompts []Prompt
	Opened  []string
	Infos   []string
	Errors  []string
}

// NewFakeHost creates a FakeHost with the given workspace ("" for none)
// and answers.
func NewFakeHost(workspace string, answers ...Answer) *FakeHost {
	return &FakeHost{
		Workspace: workspace,
		Answers:   answers,
		Config:    map[string]interface{}{},
	}
}

var _ host.Host = (*FakeHost)(nil)

func (f *FakeHost) next(p Prompt) (Answer, error) {
	f.Prompts = append(f.Prompts, p)
	if len(f.Answers) == 0 {
		return Answer{}, fmt.Errorf("unexpected %s prompt %q: no scripted answer left", p.Kind, p.Label)
	}
	a := f.Answers[0]
	f.Answers = f.Answers[1:]
	if a.Err != nil {
		return Answer{}, a.Err
	}
	if a.Cancel {
		return Answer{}, host.ErrCancelled
	}
	return a, nil
}

func (f *FakeHost) WorkspaceRoot() (string, bool) {
	return f.Workspace, f.Workspace != ""
}

func (f *FakeHost) PromptText(label, def string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, err := f.next(Prompt{Kind: "text", Label: label, Default: def})
	if err != nil {
		return "", err
	}
	return a.Value, nil
}

// PromptChoice returns the option whose label matches the answer. An
// answer naming no option is returned as-is, standing in for a selection
// that went stale between listing and choosing.
func (f *FakeHost) PromptChoice(options []host.Option, placeholder string) (host.Option, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, err := f.next(Prompt{Kind: "choice", Label: placeholder, Options: append([]host.Option{}, options...)})
	if err != nil {
		return host.Option{}, err
	}
	for _, o := range options {
		if o.Label == a.Value {
			return o, nil
		}
	}
	return host.Option{Label: a.Value}, nil
}

func (f *FakeHost) PromptFolder(title string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, err := f.next(Prompt{Kind: "folder", Label: title})
	if err != nil {
		return "", err
	}
	return a.Value, nil
}

func (f *FakeHost) GetConfigValue(key string) interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Config[key]
}

func (f *FakeHost) SetConfigValue(key string, value interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SetConfigErr != nil {
		return f.SetConfigErr
	}
	f.Config[key] = value
	return nil
}

func (f *FakeHost) OpenAsWorkspace(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.OpenErr != nil {
		return f.OpenErr
	}
	f.Opened = append(f.Opened, path)
	return nil
}

func (f *FakeHost) NotifyInfo(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Infos = append(f.Infos, message)
}

func (f *FakeHost) NotifyError(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Errors = append(f.Errors, message)
}

// PromptCount returns how many prompts of kind were shown
func (f *FakeHost) PromptCount(kind string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, p := range f.Prompts {
		if p.Kind == kind {
			n++
		}
	}
	return n
}

// Remaining returns the number of unused answers
func (f *FakeHost) Remaining() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Answers)
}
