package testbed

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	genruntime "github.com/wippyai/gen-runtime"
	"github.com/wippyai/gen-runtime/engine"
	"github.com/wippyai/gen-runtime/errors"
	"github.com/wippyai/gen-runtime/program"
	"github.com/wippyai/gen-runtime/runtime"
	"github.com/wippyai/gen-runtime/scenario"
)

func newRuntime(t *testing.T) *runtime.Runtime {
	t.Helper()
	rt := runtime.New()
	t.Cleanup(func() { rt.Close() })
	if err := program.RegisterAll(rt); err != nil {
		t.Fatalf("RegisterAll failed: %v", err)
	}
	return rt
}

func TestScenarioFiles(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no scenario files found in testdata")
	}

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			data, err := os.ReadFile(file)
			if err != nil {
				t.Fatal(err)
			}
			sc, err := scenario.Parse(data)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			report, err := scenario.NewRunner(newRuntime(t)).Run(sc)
			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}
			if !report.OK() {
				t.Fatalf("scenario failed:\n%s", report.Summary())
			}
		})
	}
}

func TestEndToEnd_HandleLifecycle(t *testing.T) {
	rt := newRuntime(t)

	inst, err := rt.Spawn("counter")
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}

	// Hand the handle around and step through it.
	viaHandle, err := rt.Get(inst.Handle())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	values, err := viaHandle.Drain(16)
	if err != nil {
		t.Fatalf("Drain failed: %v", err)
	}
	if len(values) != 5 {
		t.Fatalf("Drain = %v, want 5 values", values)
	}

	if inst.State() != genruntime.Completed {
		t.Fatalf("State = %v, want completed", inst.State())
	}
}

func TestEndToEnd_FibonacciRange(t *testing.T) {
	rt := newRuntime(t)

	inst, err := rt.Spawn("fibonacci")
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}

	var got []any
	for v := range inst.Values() {
		got = append(got, v)
		if len(got) == 6 {
			break
		}
	}
	want := []any{0, 1, 1, 2, 3, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}

	// Breaking the range closed the infinite instance.
	if inst.State() != genruntime.Completed {
		t.Fatalf("State = %v, want completed", inst.State())
	}
}

func TestEndToEnd_ErrorClassification(t *testing.T) {
	rt := newRuntime(t)

	inst, err := rt.Spawn("counter")
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}

	_, err = inst.Resume("input-too-early")
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseResume, Kind: errors.KindInvalidState}) {
		t.Fatalf("error = %v, want invalid_state", err)
	}

	boom := stderrors.New("boom")
	if _, err := inst.Resume(nil); err != nil {
		t.Fatalf("Resume failed: %v", err)
	}
	_, err = inst.Throw(boom)
	if err == nil {
		t.Fatal("expected propagated failure")
	}
	if !stderrors.Is(err, boom) {
		t.Fatalf("error = %v, want wrapped boom", err)
	}
	if !stderrors.Is(inst.Err(), boom) {
		t.Fatalf("Err() = %v, want boom", inst.Err())
	}
}

func TestEndToEnd_ManyConcurrentInstances(t *testing.T) {
	rt := newRuntime(t)

	// Many independent instances of the same program, interleaved
	// arbitrarily, never share state.
	const n = 20
	instances := make([]*runtime.Instance, n)
	for i := range instances {
		inst, err := rt.Spawn("counter")
		if err != nil {
			t.Fatalf("Spawn %d failed: %v", i, err)
		}
		instances[i] = inst
	}

	for round := 0; round < 3; round++ {
		for i, inst := range instances {
			res, err := inst.Resume(nil)
			if err != nil {
				t.Fatalf("Resume %d failed: %v", i, err)
			}
			if res.Value != round {
				t.Fatalf("instance %d yielded %v in round %d", i, res.Value, round)
			}
		}
	}
}

func TestEndToEnd_AdHocRegistration(t *testing.T) {
	rt := newRuntime(t)

	err := rt.Register("pair", func(ctx *engine.Ctx) (any, error) {
		first, err := ctx.Yield("want-first")
		if err != nil {
			return nil, err
		}
		second, err := ctx.Yield("want-second")
		if err != nil {
			return nil, err
		}
		return []any{first, second}, nil
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	inst, err := rt.Spawn("pair")
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	if _, err := inst.Resume(nil); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if _, err := inst.Resume(1); err != nil {
		t.Fatalf("first input failed: %v", err)
	}
	res, err := inst.Resume(2)
	if err != nil {
		t.Fatalf("second input failed: %v", err)
	}
	pair, ok := res.Value.([]any)
	if !ok || !res.Done || len(pair) != 2 || pair[0] != 1 || pair[1] != 2 {
		t.Fatalf("final = %+v, want {[1 2] true}", res)
	}
}
