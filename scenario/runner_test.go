package scenario

import (
	"strings"
	"testing"

	"github.com/wippyai/gen-runtime/program"
	"github.com/wippyai/gen-runtime/runtime"
)

func newRunnerForTest(t *testing.T) *Runner {
	t.Helper()
	rt := runtime.New()
	t.Cleanup(func() { rt.Close() })
	if err := program.RegisterAll(rt); err != nil {
		t.Fatalf("RegisterAll failed: %v", err)
	}
	return NewRunner(rt)
}

func runScenario(t *testing.T, payload string) *Report {
	t.Helper()
	sc, err := Parse([]byte(payload))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	report, err := newRunnerForTest(t).Run(sc)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return report
}

func TestRun_DataConsumer(t *testing.T) {
	report := runScenario(t, `
name: consume
program: data-consumer
steps:
  - op: resume
    expect: {done: false}
  - op: resume
    value: a
    expect: {done: false}
  - op: resume
    value: b
    expect: {value: result, done: true}
`)
	if !report.OK() {
		t.Fatalf("report not OK:\n%s", report.Summary())
	}
	if len(report.Steps) != 3 {
		t.Fatalf("Steps = %d, want 3", len(report.Steps))
	}
}

func TestRun_DelegationOrder(t *testing.T) {
	report := runScenario(t, `
name: delegate
program: outer
steps:
  - op: resume
    expect: {value: x, done: false}
  - op: resume
    expect: {value: a, done: false}
  - op: resume
    expect: {value: b, done: false}
  - op: resume
    expect: {value: y, done: false}
  - op: resume
    expect: {value: inner-done, done: true}
`)
	if !report.OK() {
		t.Fatalf("report not OK:\n%s", report.Summary())
	}
}

func TestRun_ThrowRecovery(t *testing.T) {
	report := runScenario(t, `
name: recover
program: recoverer
steps:
  - op: resume
    expect: {value: ready, done: false}
  - op: throw
    error: glitch
    expect: {value: "recovered: glitch", done: false}
  - op: resume
    expect: {value: ok, done: true}
`)
	if !report.OK() {
		t.Fatalf("report not OK:\n%s", report.Summary())
	}
}

func TestRun_ExpectedError(t *testing.T) {
	report := runScenario(t, `
name: invalid first input
program: counter
steps:
  - op: resume
    value: 7
    expect: {error: invalid_state}
  - op: close
    expect: {done: true}
`)
	if !report.OK() {
		t.Fatalf("report not OK:\n%s", report.Summary())
	}
}

func TestRun_MismatchReported(t *testing.T) {
	report := runScenario(t, `
name: wrong expectation
program: counter
steps:
  - op: resume
    expect: {value: 99, done: false}
`)
	if report.OK() {
		t.Fatal("expected a mismatch")
	}
	if !strings.Contains(report.Summary(), "want 99") {
		t.Fatalf("summary missing mismatch detail:\n%s", report.Summary())
	}
}

func TestRun_UnknownProgram(t *testing.T) {
	sc := &Scenario{Program: "missing", Steps: []Step{{Op: OpResume}}}
	if _, err := newRunnerForTest(t).Run(sc); err == nil {
		t.Fatal("expected error for unknown program")
	}
}
