package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which operation the error occurred in
type Phase string

const (
	PhaseCreate Phase = "create" // instance creation
	PhaseResume Phase = "resume" // resumption steps
	PhaseThrow  Phase = "throw"  // failure injection
	PhaseClose  Phase = "close"  // early termination
	PhaseBody   Phase = "body"   // inside the coroutine body
	PhaseParse  Phase = "parse"  // scenario parsing
	PhaseLoad   Phase = "load"   // program/handle lookup
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidState          Kind = "invalid_state"
	KindCompleted             Kind = "completed"
	KindUnsupportedSuspension Kind = "unsupported_suspension"
	KindBodyFailure           Kind = "body_failure"
	KindCanceled              Kind = "canceled"
	KindNotFound              Kind = "not_found"
	KindInvalidInput          Kind = "invalid_input"
	KindInvalidData           Kind = "invalid_data"
	KindClosed                Kind = "closed"
)

// Error is the structured error type used throughout the engine
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	State    string
	Program  string
	Detail   string
	StepPath []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.StepPath) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.StepPath, "."))
	}

	if e.Program != "" || e.State != "" {
		b.WriteString(": ")
		if e.Program != "" && e.State != "" {
			b.WriteString("program ")
			b.WriteString(e.Program)
			b.WriteString(", state ")
			b.WriteString(e.State)
		} else if e.Program != "" {
			b.WriteString("program ")
			b.WriteString(e.Program)
		} else {
			b.WriteString("state ")
			b.WriteString(e.State)
		}
	}

	if e.Detail != "" {
		if e.Program != "" || e.State != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// StepPath sets the scenario step path
func (b *Builder) StepPath(path ...string) *Builder {
	b.err.StepPath = path
	return b
}

// State sets the instance state at the time of the error
func (b *Builder) State(s string) *Builder {
	b.err.State = s
	return b
}

// Program sets the program name
func (b *Builder) Program(name string) *Builder {
	b.err.Program = name
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InvalidState creates an invalid state error for a misplaced operation
func InvalidState(phase Phase, state, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidState,
		State:  state,
		Detail: detail,
	}
}

// InitialInput creates the error for supplying an input value on the
// very first resumption of a fresh instance
func InitialInput(value any) *Error {
	return &Error{
		Phase:  PhaseResume,
		Kind:   KindInvalidState,
		State:  "suspended-start",
		Detail: fmt.Sprintf("input value %v supplied before the first suspension point", value),
		Value:  value,
	}
}

// Reentrant creates the error for resuming an instance that is already
// executing
func Reentrant(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidState,
		State:  "running",
		Detail: "instance is already executing; concurrent resumption is rejected",
	}
}

// UnsupportedSuspension creates the error for a yield attempt from a
// context the engine cannot pause
func UnsupportedSuspension(detail string) *Error {
	return &Error{
		Phase:  PhaseBody,
		Kind:   KindUnsupportedSuspension,
		Detail: detail,
	}
}

// BodyFailure wraps a failure raised by the coroutine body itself
func BodyFailure(phase Phase, cause error) *Error {
	return &Error{
		Phase: phase,
		Kind:  KindBodyFailure,
		Cause: cause,
	}
}

// Canceled creates the synthetic termination error delivered at a
// suspension point when an instance is closed
func Canceled() *Error {
	return &Error{
		Phase:  PhaseClose,
		Kind:   KindCanceled,
		Detail: "coroutine closed",
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindInvalidData,
		StepPath: path,
		Detail:   detail,
	}
}

// Closed creates the error for operations on a closed runtime or table
func Closed(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindClosed,
		Detail: fmt.Sprintf("%s is closed", what),
	}
}

// ParseFailed creates a parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidData,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}
