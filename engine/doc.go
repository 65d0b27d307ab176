// Package engine implements the low-level cooperative coroutine engine.
//
// A coroutine body is an ordinary Go function that receives a Ctx. The
// body suspends by calling Ctx.Yield, which hands a value and control
// back to whichever caller invoked Resume; the Resume input becomes
// Yield's result when execution continues. Failures can be injected at a
// suspension point with Throw, and Close delivers a synthetic termination
// that runs the body's cleanup before completing the instance.
//
// # State Machine
//
// Instances move forward-only through four states:
//
//	SuspendedStart --Resume--> Running
//	Running --Yield--> SuspendedYield
//	SuspendedYield --Resume/Throw--> Running
//	Running --return/failure--> Completed
//	SuspendedStart/SuspendedYield --Close--> Completed
//
// Resume and Throw on a Completed instance are idempotent no-ops that
// report completion again; they never re-execute body code. Calls on a
// Running instance are rejected.
//
// # Execution Transfer
//
// The body runs on a dedicated goroutine whose only purpose is to keep
// the body's stack alive between handoffs. Control is exchanged over
// unbuffered channels, so the caller and the body never run concurrently:
// the caller blocks while the body runs, and the body blocks while
// suspended. This reproduces native stack-pausing semantics without any
// state-machine rewriting of the body.
//
// # Delegation
//
// Ctx.YieldFrom forwards the outer instance's resumptions to an inner
// instance until the inner completes, surfacing inner yields as outer
// yields and evaluating to the inner's return value. Thrown failures
// route into the inner body; closing the outer instance closes the inner
// one first.
//
// # Handle Table
//
// Table maps opaque integer handles to live instances with free-list
// reuse, for hosts that expose coroutines to external collaborators
// without sharing pointers. The high-level runtime package builds on it.
//
// # Limitations
//
// Suspension works only from the body's own flow of control. A callback
// that escapes the body and fires later, or a goroutine the body spawned
// while it keeps running, cannot pause anything; Yield verifies the
// caller is the body goroutine and fails fast with an
// unsupported-suspension error instead of silently continuing.
//
// A body that ignores the termination delivered by Close and never
// returns will wedge the closing caller, just as an uncooperative
// cleanup block would in any cooperative scheme. Bodies are expected to
// propagate the termination error or return shortly after observing it.
package engine
