package scenario

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	genruntime "github.com/wippyai/gen-runtime"
	"github.com/wippyai/gen-runtime/runtime"
)

// StepResult records the outcome of one executed step and any
// expectation mismatches.
type StepResult struct {
	Index      int
	Op         string
	Result     genruntime.Result
	Err        error
	Mismatches []string
}

// Report is the outcome of running a scenario to the end.
type Report struct {
	Scenario string
	Program  string
	Steps    []StepResult
}

// OK reports whether every step met its expectations.
func (r *Report) OK() bool {
	for _, s := range r.Steps {
		if len(s.Mismatches) > 0 {
			return false
		}
	}
	return true
}

// Summary renders a one-line-per-step description of the run.
func (r *Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario %s (program %s)\n", r.Scenario, r.Program)
	for _, s := range r.Steps {
		status := "ok"
		if len(s.Mismatches) > 0 {
			status = "FAIL: " + strings.Join(s.Mismatches, "; ")
		}
		if s.Err != nil {
			fmt.Fprintf(&b, "  %2d %-6s error=%v  %s\n", s.Index, s.Op, s.Err, status)
			continue
		}
		fmt.Fprintf(&b, "  %2d %-6s value=%v done=%v  %s\n", s.Index, s.Op, s.Result.Value, s.Result.Done, status)
	}
	return b.String()
}

// Runner executes scenarios against programs registered on a runtime.
type Runner struct {
	rt *runtime.Runtime
}

// NewRunner creates a runner over rt.
func NewRunner(rt *runtime.Runtime) *Runner {
	return &Runner{rt: rt}
}

// Run spawns one instance of the scenario's program and applies every
// step in order. Step failures (including propagated body failures) are
// recorded, not fatal: an expectation may demand them. The spawn itself
// failing is the only fatal error.
func (r *Runner) Run(sc *Scenario) (*Report, error) {
	inst, err := r.rt.Spawn(sc.Program)
	if err != nil {
		return nil, err
	}
	defer inst.Close() //nolint:errcheck // instance may already be completed

	report := &Report{
		Scenario: sc.Name,
		Program:  sc.Program,
	}

	for i, step := range sc.Steps {
		sr := StepResult{Index: i, Op: step.Op}
		switch step.Op {
		case OpResume:
			sr.Result, sr.Err = inst.Resume(step.Value)
		case OpThrow:
			sr.Result, sr.Err = inst.Throw(stderrors.New(step.Error))
		case OpClose:
			sr.Result, sr.Err = inst.Close()
		}
		sr.Mismatches = checkExpect(step.Expect, sr)
		report.Steps = append(report.Steps, sr)
	}

	return report, nil
}

func checkExpect(exp *Expect, sr StepResult) []string {
	if exp == nil {
		return nil
	}

	var mismatches []string
	if exp.Error != "" {
		if sr.Err == nil {
			mismatches = append(mismatches, fmt.Sprintf("expected error containing %q, got none", exp.Error))
		} else if !strings.Contains(sr.Err.Error(), exp.Error) {
			mismatches = append(mismatches, fmt.Sprintf("expected error containing %q, got %q", exp.Error, sr.Err))
		}
		return mismatches
	}

	if sr.Err != nil {
		return append(mismatches, fmt.Sprintf("unexpected error: %v", sr.Err))
	}
	if exp.Done != nil && sr.Result.Done != *exp.Done {
		mismatches = append(mismatches, fmt.Sprintf("done = %v, want %v", sr.Result.Done, *exp.Done))
	}
	if exp.Value != nil && !reflect.DeepEqual(sr.Result.Value, exp.Value) {
		mismatches = append(mismatches, fmt.Sprintf("value = %v, want %v", sr.Result.Value, exp.Value))
	}
	return mismatches
}
