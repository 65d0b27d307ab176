// Package genruntime provides a cooperative coroutine engine for Go.
//
// A coroutine is a computation that can suspend itself at explicit yield
// points, handing a value and control back to its caller, and later be
// resumed from exactly where it stopped. The engine implements creation,
// stepwise resumption, bidirectional value exchange, failure injection,
// early termination, and delegation between coroutines.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	genruntime/      Root package with the shared State and Result types
//	├── runtime/     High-level API: program registry, handles, draining
//	├── engine/      Low-level coroutine engine and instance handle table
//	├── program/     Named example programs used by the CLI and tests
//	├── scenario/    YAML-driven step scenarios for replay and testing
//	├── errors/      Structured error types for debugging
//	└── cmd/run      CLI with an interactive stepper TUI
//
// # Quick Start
//
// Drive a coroutine directly through the engine:
//
//	co := engine.New(func(ctx *engine.Ctx) (any, error) {
//	    got, err := ctx.Yield("first")
//	    if err != nil {
//	        return nil, err
//	    }
//	    return got, nil
//	})
//
//	res, err := co.Resume(nil) // {Value: "first", Done: false}
//	res, err = co.Resume(42)   // {Value: 42, Done: true}
//
// Or register programs and drive them by handle through the runtime:
//
//	rt := runtime.New()
//	defer rt.Close()
//
//	rt.Register("counter", program.Counter(3))
//	inst, err := rt.Spawn("counter")
//	values, err := inst.Drain(16) // [0 1 2]
//
// # Execution Model
//
// The model is strictly single-threaded cooperative. Control transfers
// synchronously between the caller and the coroutine body; the two never
// run concurrently and there is no background execution. Suspension
// happens only at explicit Yield calls authored in the body. An instance
// advances through forward-only states:
//
//	SuspendedStart --Resume--> Running --Yield--> SuspendedYield
//	SuspendedYield --Resume--> Running --return/failure--> Completed
//
// Resuming a Completed instance is an idempotent no-op that reports
// completion again. Resuming a Running instance is rejected.
//
// # Thread Safety
//
// Runtime and the handle table are safe for concurrent use. A Coroutine
// instance is NOT thread-safe: it has a single execution cursor, and
// concurrent calls into one instance are rejected rather than interleaved.
package genruntime
