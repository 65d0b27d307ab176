package engine

import (
	"fmt"
	"runtime/debug"
)

// PanicError wraps a panic raised inside a coroutine body so it can be
// surfaced to the caller of the triggering Resume/Throw as an ordinary
// error, with the body's stack preserved for debugging.
type PanicError struct {
	value any
	stack []byte
}

func (p *PanicError) Error() string {
	return fmt.Sprintf("coroutine body panic: %v", p.value)
}

// Value returns the original panic value.
func (p *PanicError) Value() any {
	return p.value
}

// Stack returns the stack trace captured at the panic site.
func (p *PanicError) Stack() []byte {
	return p.stack
}

func (p *PanicError) Unwrap() error {
	err, ok := p.value.(error)
	if !ok {
		return nil
	}
	return err
}

// NewPanicError captures the current stack and wraps v.
func NewPanicError(v any) *PanicError {
	return &PanicError{
		value: v,
		stack: debug.Stack(),
	}
}
