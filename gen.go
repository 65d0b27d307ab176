package genruntime

// State identifies where a coroutine instance is in its lifecycle.
// Transitions are forward-only; an instance never re-enters
// SuspendedStart and never leaves Completed.
type State int32

const (
	// SuspendedStart is the initial state: the instance exists but no
	// body code has executed yet.
	SuspendedStart State = iota
	// Running means control is currently inside the body.
	Running
	// SuspendedYield means the body is paused at a yield point.
	SuspendedYield
	// Completed means the body returned, failed, or was closed.
	Completed
)

func (s State) String() string {
	switch s {
	case SuspendedStart:
		return "suspended-start"
	case Running:
		return "running"
	case SuspendedYield:
		return "suspended-yield"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// Result is the outcome of one resumption step. While the instance is
// suspended, Value carries the yielded value and Done is false. On the
// final step, Value carries the body's return value and Done is true.
// Every step after completion reports {Value: nil, Done: true}.
type Result struct {
	Value any
	Done  bool
}
