package engine

import (
	stderrors "errors"
	"runtime"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	genruntime "github.com/wippyai/gen-runtime"
	"github.com/wippyai/gen-runtime/errors"
)

// Definition is an opaque coroutine body. It receives a Ctx that carries
// the suspension capability and returns the body's final value. A nil
// error means normal completion; a non-nil error completes the instance
// with a pending failure that propagates to the caller of the triggering
// Resume/Throw.
type Definition func(ctx *Ctx) (any, error)

// step carries one resumption from the external caller into the body.
type step struct {
	in  any
	err error // non-nil: delivered at the suspension point (Throw/Close)
}

// yres carries one suspension or completion from the body to the caller.
type yres struct {
	out    any
	retErr error
	done   bool
}

// Coroutine is a single stateful execution of a Definition.
//
// The instance has exactly one execution cursor: control is either with
// an external caller or inside the body, never both. External calls are
// serialized; a call that arrives while another is in flight is rejected
// with an invalid-state error rather than interleaved.
type Coroutine struct {
	def      Definition
	ctx      *Ctx
	resumeCh chan step
	yieldCh  chan yres

	mu      sync.Mutex // held for the duration of each external call
	started bool

	state   atomic.Int32
	inBody  atomic.Bool   // true while control is inside the body
	bodyGID atomic.Uint64 // id of the body goroutine; 0 until started
	closing atomic.Bool

	lastYield  any
	returnVal  any
	pendingErr error
}

// New allocates an instance in the SuspendedStart state. No body code
// executes until the first Resume.
func New(def Definition) *Coroutine {
	c := &Coroutine{
		def:      def,
		resumeCh: make(chan step),
		yieldCh:  make(chan yres),
	}
	c.ctx = &Ctx{co: c}
	c.state.Store(int32(genruntime.SuspendedStart))
	return c
}

// State reports the instance's current lifecycle state.
func (c *Coroutine) State() genruntime.State {
	return genruntime.State(c.state.Load())
}

// LastYielded returns the value produced at the most recent suspension
// point, or nil if the instance has not yielded.
func (c *Coroutine) LastYielded() any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastYield
}

// ReturnValue returns the body's return value. Valid only once the
// instance is Completed.
func (c *Coroutine) ReturnValue() any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.returnVal
}

// Err returns the failure that terminated the body, if any.
func (c *Coroutine) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pendingErr
}

// Resume transfers control into the body from its last suspension point
// (or from the start), running synchronously until the next suspension
// point, a return, or a failure.
//
// The input value is delivered as the result of the suspension expression
// the body is paused at. The very first Resume only starts execution, so
// supplying a non-nil input on a fresh instance is rejected. Resuming a
// Completed instance is a no-op reporting completion again.
func (c *Coroutine) Resume(in any) (genruntime.Result, error) {
	if !c.mu.TryLock() {
		return genruntime.Result{}, errors.Reentrant(errors.PhaseResume)
	}
	defer c.mu.Unlock()

	switch c.State() {
	case genruntime.Completed:
		return genruntime.Result{Done: true}, nil
	case genruntime.SuspendedStart:
		if in != nil {
			return genruntime.Result{}, errors.InitialInput(in)
		}
	}

	return c.advance(errors.PhaseResume, step{in: in})
}

// Throw resumes the body by delivering errValue at the current suspension
// point, as if the suspension expression itself had failed. The body may
// handle the failure and continue, or let it propagate, which completes
// the instance and surfaces the failure to the caller.
//
// Throwing into a fresh instance completes it without running any body
// code; the failure comes straight back to the caller.
func (c *Coroutine) Throw(errValue error) (genruntime.Result, error) {
	if errValue == nil {
		return genruntime.Result{}, errors.InvalidInput(errors.PhaseThrow, "nil error")
	}
	if !c.mu.TryLock() {
		return genruntime.Result{}, errors.Reentrant(errors.PhaseThrow)
	}
	defer c.mu.Unlock()

	switch c.State() {
	case genruntime.Completed:
		return genruntime.Result{Done: true}, nil
	case genruntime.SuspendedStart:
		c.state.Store(int32(genruntime.Completed))
		c.pendingErr = errValue
		return genruntime.Result{Done: true}, errors.BodyFailure(errors.PhaseThrow, errValue)
	}

	return c.advance(errors.PhaseThrow, step{err: errValue})
}

// Close injects a synthetic termination at the current suspension point
// and runs any cleanup the body registered, transitioning the instance to
// Completed. A body that intercepts the termination and returns normally
// contributes its return value; otherwise the result value is nil.
//
// Closing a fresh or completed instance completes it without running body
// code.
func (c *Coroutine) Close() (genruntime.Result, error) {
	if !c.mu.TryLock() {
		return genruntime.Result{}, errors.Reentrant(errors.PhaseClose)
	}
	defer c.mu.Unlock()

	switch c.State() {
	case genruntime.Completed:
		return genruntime.Result{Done: true}, nil
	case genruntime.SuspendedStart:
		c.state.Store(int32(genruntime.Completed))
		return genruntime.Result{Done: true}, nil
	}

	c.closing.Store(true)
	return c.advance(errors.PhaseClose, step{err: errors.Canceled()})
}

// advance performs one handoff to the body and interprets the outcome.
// Caller holds c.mu and has validated the current state.
func (c *Coroutine) advance(phase errors.Phase, s step) (genruntime.Result, error) {
	c.state.Store(int32(genruntime.Running))

	if !c.started {
		c.started = true
		debugf("starting body")
		go c.run()
	} else {
		c.resumeCh <- s
	}

	y := <-c.yieldCh

	if !y.done {
		c.lastYield = y.out
		c.state.Store(int32(genruntime.SuspendedYield))
		return genruntime.Result{Value: y.out}, nil
	}

	c.state.Store(int32(genruntime.Completed))
	if y.retErr != nil {
		if c.closing.Load() && stderrors.Is(y.retErr, errors.Canceled()) {
			// Body acknowledged the close; clean completion.
			return genruntime.Result{Done: true}, nil
		}
		c.pendingErr = y.retErr
		debugf("body failed: %v", y.retErr)
		return genruntime.Result{Done: true}, errors.BodyFailure(phase, y.retErr)
	}

	c.returnVal = y.out
	return genruntime.Result{Value: y.out, Done: true}, nil
}

// run executes the body on its own goroutine. The goroutine exists only
// so the body's stack can be parked between handoffs; it never runs
// concurrently with the caller.
func (c *Coroutine) run() {
	c.bodyGID.Store(goid())
	c.inBody.Store(true)

	var ret any
	err := func() (err error) {
		defer func() {
			if p := recover(); p != nil {
				err = NewPanicError(p)
				Logger().Debug("coroutine body panicked", zap.Any("panic", p))
			}
		}()
		var bodyErr error
		ret, bodyErr = c.def(c.ctx)
		return bodyErr
	}()

	c.inBody.Store(false)
	c.yieldCh <- yres{out: ret, retErr: err, done: true}
}

// goid parses the current goroutine's id from the runtime stack header
// ("goroutine N [..."). Used only to verify a suspension attempt comes
// from the body goroutine; ids are never reused within a process.
func goid() uint64 {
	var buf [32]byte
	n := runtime.Stack(buf[:], false)
	var id uint64
	for _, c := range buf[len("goroutine "):n] {
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + uint64(c-'0')
	}
	return id
}

// Ctx is the suspension capability handed to a coroutine body. It is only
// valid inside the body's own flow of control.
type Ctx struct {
	co *Coroutine
}

// Yield pauses the body, surfacing out to the caller of Resume, and
// blocks until the instance is resumed again.
//
// The returned value is the input passed to the resuming Resume call. A
// non-nil error means the resumption was a Throw (the error is the thrown
// value) or a Close (the error matches errors.Canceled); the body may
// handle a thrown error and continue, but after a Close any further Yield
// reports the termination again without suspending.
//
// Yield must be called from the body's own flow. Calling it from a
// context the engine cannot pause, such as a callback that fires after
// the body has suspended or completed, fails fast with an
// unsupported-suspension error.
func (ctx *Ctx) Yield(out any) (any, error) {
	c := ctx.co

	// Only the body goroutine holds the execution cursor; a yield from any
	// other goroutine (a spawned helper, an escaped callback) cannot be
	// paused even while the body is still running.
	if c.bodyGID.Load() != goid() {
		return nil, errors.UnsupportedSuspension(
			"yield outside the body's flow of control; the engine cannot pause here")
	}
	if !c.inBody.CompareAndSwap(true, false) {
		return nil, errors.UnsupportedSuspension(
			"yield outside the body's flow of control; the engine cannot pause here")
	}
	if c.closing.Load() {
		c.inBody.Store(true)
		return nil, errors.Canceled()
	}

	c.yieldCh <- yres{out: out}
	s := <-c.resumeCh
	c.inBody.Store(true)

	if s.err != nil {
		return nil, s.err
	}
	return s.in, nil
}

// YieldFrom delegates to inner: every resumption of the outer instance is
// forwarded to inner until inner completes, and inner's yields surface as
// if yielded by the outer instance. YieldFrom evaluates to inner's return
// value.
//
// Thrown failures are routed into inner, where its body may handle them.
// A Close on the outer instance closes inner before the termination
// propagates to the outer body.
func (ctx *Ctx) YieldFrom(inner *Coroutine) (any, error) {
	var (
		in       any
		injected error
	)
	for {
		var (
			res genruntime.Result
			err error
		)
		if injected != nil {
			res, err = inner.Throw(injected)
			injected = nil
		} else {
			res, err = inner.Resume(in)
		}
		if err != nil {
			// Inner failure surfaces at the delegation point; the outer
			// body may handle it or return it.
			return nil, err
		}
		if res.Done {
			return res.Value, nil
		}

		got, yerr := ctx.Yield(res.Value)
		switch {
		case yerr == nil:
			in = got
		case stderrors.Is(yerr, errors.Canceled()):
			inner.Close() //nolint:errcheck // termination already in progress
			return nil, yerr
		default:
			injected = yerr
		}
	}
}

// Delegate creates an instance from def and delegates to it. Shorthand
// for YieldFrom(New(def)).
func (ctx *Ctx) Delegate(def Definition) (any, error) {
	return ctx.YieldFrom(New(def))
}
