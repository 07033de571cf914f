package manager

import (
	"fmt"
	"time"

	"github.com/arthur-debert/projman/pkg/errors"
	"github.com/arthur-debert/projman/pkg/host"
	"github.com/rs/zerolog"
)

// State is the phase an operation is in
type State int

const (
	// StateCollecting gathers input through prompts
	StateCollecting State = iota
	// StateValidating checks the collected input; nothing is written yet
	StateValidating
	// StateCommitting mutates registries, settings and the filesystem
	StateCommitting
	StateDone
	StateCancelled
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateCollecting:
		return "collecting"
	case StateValidating:
		return "validating"
	case StateCommitting:
		return "committing"
	case StateDone:
		return "done"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether the operation has finished
func (s State) Terminal() bool {
	return s == StateDone || s == StateCancelled || s == StateFailed
}

// Operation names a user-facing operation
type Operation string

const (
	OpAddCurrentProject  Operation = "add-current-project"
	OpOpenProject        Operation = "open-project"
	OpCopyProject        Operation = "copy-project"
	OpSelectTargetFolder Operation = "select-target-folder"
	OpSaveAsTemplate     Operation = "save-as-template"
	OpCreateFromTemplate Operation = "create-from-template"
	OpManageTemplates    Operation = "manage-templates"
	OpDeleteTemplate     Operation = "delete-template"
)

// Result is the outcome of one operation
type Result struct {
	Operation Operation
	State     State
	// Message is what was reported to the user, if anything
	Message string
	// Path is the folder the operation produced or opened
	Path string
	Err  error
}

// Succeeded reports whether the operation ran to completion
func (r *Result) Succeeded() bool { return r.State == StateDone }

// Cancelled reports whether the user backed out
func (r *Result) Cancelled() bool { return r.State == StateCancelled }

// Failed reports whether the operation ended with an error
func (r *Result) Failed() bool { return r.State == StateFailed }

// transitions lists the non-terminal moves; any state may end.
var transitions = map[State]State{
	StateCollecting: StateValidating,
	StateValidating: StateCommitting,
}

// run drives one operation through its states and reports the outcome
// through the host exactly once.
type run struct {
	host   host.Host
	logger zerolog.Logger
	result *Result
	start  time.Time
}

func newRun(h host.Host, logger zerolog.Logger, op Operation) *run {
	r := &run{
		host:   h,
		logger: logger.With().Str("operation", string(op)).Logger(),
		result: &Result{Operation: op, State: StateCollecting},
		start:  time.Now(),
	}
	r.logger.Debug().Msg("Operation started")
	return r
}

// advance moves to next. Skipping a phase or leaving a terminal state is a
// programming error and fails the operation.
func (r *run) advance(next State) error {
	cur := r.result.State
	if want, ok := transitions[cur]; !ok || want != next {
		return errors.Newf(errors.ErrInternal, "invalid transition %s -> %s", cur, next)
	}
	r.logger.Trace().Str("from", cur.String()).Str("to", next.String()).Msg("State transition")
	r.result.State = next
	return nil
}

func (r *run) finish(state State) *Result {
	r.result.State = state
	r.logger.Debug().
		Str("state", state.String()).
		Dur("duration", time.Since(r.start)).
		Msg("Operation finished")
	return r.result
}

// done ends the operation successfully. A non-empty message is shown to
// the user.
func (r *run) done(message, path string) *Result {
	r.result.Message = message
	r.result.Path = path
	if message != "" {
		r.host.NotifyInfo(message)
	}
	return r.finish(StateDone)
}

// cancel ends the operation silently
func (r *run) cancel() *Result {
	r.logger.Debug().Str("at", r.result.State.String()).Msg("Cancelled by user")
	return r.finish(StateCancelled)
}

// fail ends the operation and reports err. Cancellation errors coming out
// of prompts are routed to cancel.
func (r *run) fail(err error) *Result {
	if host.IsCancelled(err) {
		return r.cancel()
	}
	r.result.Err = err
	r.result.Message = errors.UserMessage(err)
	r.logger.Error().Err(err).
		Str("at", r.result.State.String()).
		Str("code", string(errors.GetErrorCode(err))).
		Msg("Operation failed")
	r.host.NotifyError(r.result.Message)
	return r.finish(StateFailed)
}
