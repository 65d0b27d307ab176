// Package scenario provides YAML-driven step scripts for coroutine
// programs, used for replay from the CLI and for integration testing.
//
// A scenario names a registered program and an ordered list of steps to
// apply to one instance of it. Each step may carry an expectation checked
// against the step's outcome:
//
//	name: consume-two-values
//	program: data-consumer
//	steps:
//	  - op: resume
//	    expect: {done: false}
//	  - op: resume
//	    value: a
//	    expect: {done: false}
//	  - op: resume
//	    value: b
//	    expect: {value: result, done: true}
//
// Throw steps inject a failure at the current suspension point and close
// steps terminate the instance early:
//
//	steps:
//	  - op: resume
//	  - op: throw
//	    error: glitch
//	    expect: {value: "recovered: glitch", done: false}
//	  - op: close
//	    expect: {done: true}
//
// Parse validates the script before anything runs; Runner executes it
// against a runtime and produces a per-step Report.
package scenario
