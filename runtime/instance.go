package runtime

import (
	"iter"

	genruntime "github.com/wippyai/gen-runtime"
	"github.com/wippyai/gen-runtime/engine"
	"github.com/wippyai/gen-runtime/errors"
)

// Instance is a handle-tracked coroutine instance spawned from a
// registered program.
//
// Instance is NOT thread-safe in the sense that only one caller may be
// stepping it at a time; concurrent steps are rejected by the engine, not
// interleaved.
type Instance struct {
	rt      *Runtime
	co      *engine.Coroutine
	handle  engine.Handle
	program string
}

// Handle returns the opaque handle identifying this instance.
func (i *Instance) Handle() engine.Handle {
	return i.handle
}

// Program returns the name of the program this instance was spawned from.
func (i *Instance) Program() string {
	return i.program
}

// State reports the instance's lifecycle state.
func (i *Instance) State() genruntime.State {
	return i.co.State()
}

// Resume steps the instance, delivering in at the current suspension point.
func (i *Instance) Resume(in any) (genruntime.Result, error) {
	return i.co.Resume(in)
}

// Throw steps the instance by injecting err at the current suspension point.
func (i *Instance) Throw(err error) (genruntime.Result, error) {
	return i.co.Throw(err)
}

// Close terminates the instance early, running its cleanup, and drops it
// from the runtime's handle table.
func (i *Instance) Close() (genruntime.Result, error) {
	res, err := i.co.Close()
	i.rt.table.Drop(i.handle)
	return res, err
}

// Err returns the failure that terminated the instance, if any.
func (i *Instance) Err() error {
	return i.co.Err()
}

// Drain resumes the instance with no input until completion and returns
// the yielded values in order, discarding the final return value. Only
// meaningful for instances known to be finite; limit bounds the number of
// steps and a run that exceeds it fails.
func (i *Instance) Drain(limit int) ([]any, error) {
	var out []any
	for steps := 0; ; steps++ {
		if limit > 0 && steps >= limit {
			return out, errors.New(errors.PhaseResume, errors.KindInvalidInput).
				Program(i.program).
				Detail("drain exceeded %d steps; instance may be infinite", limit).
				Build()
		}
		res, err := i.Resume(nil)
		if err != nil {
			return out, err
		}
		if res.Done {
			return out, nil
		}
		out = append(out, res.Value)
	}
}

// Values returns the instance's yielded values as a range-over-func
// sequence. The sequence ends at completion or on the first failure.
// Breaking out of the range early closes the instance so its cleanup
// runs.
func (i *Instance) Values() iter.Seq[any] {
	return func(yield func(any) bool) {
		for {
			res, err := i.Resume(nil)
			if err != nil || res.Done {
				return
			}
			if !yield(res.Value) {
				i.Close() //nolint:errcheck // consumer abandoned the sequence
				return
			}
		}
	}
}
