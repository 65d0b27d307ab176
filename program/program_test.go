package program

import (
	"errors"
	"testing"

	"github.com/wippyai/gen-runtime/engine"
	"github.com/wippyai/gen-runtime/runtime"
)

func TestDataConsumer(t *testing.T) {
	var sink []any
	co := engine.New(DataConsumer(&sink))

	res, err := co.Resume(nil)
	if err != nil || res.Done || res.Value != nil {
		t.Fatalf("step 1 = %+v/%v, want {nil false}", res, err)
	}
	res, err = co.Resume("a")
	if err != nil || res.Done || res.Value != nil {
		t.Fatalf("step 2 = %+v/%v, want {nil false}", res, err)
	}
	res, err = co.Resume("b")
	if err != nil || !res.Done || res.Value != "result" {
		t.Fatalf("step 3 = %+v/%v, want {result true}", res, err)
	}

	if len(sink) != 2 || sink[0] != "a" || sink[1] != "b" {
		t.Fatalf("sink = %v, want [a b]", sink)
	}
}

func TestDataConsumer_InstancesHaveIndependentSinks(t *testing.T) {
	var first, second []any
	a := engine.New(DataConsumer(&first))
	b := engine.New(DataConsumer(&second))

	for _, co := range []*engine.Coroutine{a, b} {
		if _, err := co.Resume(nil); err != nil {
			t.Fatalf("start failed: %v", err)
		}
	}
	steps := []struct {
		co *engine.Coroutine
		in any
	}{
		{a, "a1"}, {b, "b1"}, {a, "a2"}, {b, "b2"},
	}
	for _, s := range steps {
		if _, err := s.co.Resume(s.in); err != nil {
			t.Fatalf("Resume(%v) failed: %v", s.in, err)
		}
	}

	if len(first) != 2 || first[0] != "a1" || first[1] != "a2" {
		t.Fatalf("first sink = %v, want [a1 a2]", first)
	}
	if len(second) != 2 || second[0] != "b1" || second[1] != "b2" {
		t.Fatalf("second sink = %v, want [b1 b2]", second)
	}
}

func TestOuter_DelegationOrder(t *testing.T) {
	co := engine.New(Outer())

	var got []any
	var final any
	for {
		res, err := co.Resume(nil)
		if err != nil {
			t.Fatalf("Resume failed: %v", err)
		}
		if res.Done {
			final = res.Value
			break
		}
		got = append(got, res.Value)
	}

	want := []any{"x", "a", "b", "y"}
	if len(got) != len(want) {
		t.Fatalf("yields = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("yields = %v, want %v", got, want)
		}
	}
	if final != "inner-done" {
		t.Fatalf("return = %v, want inner-done", final)
	}
}

func TestFibonacci_Prefix(t *testing.T) {
	co := engine.New(Fibonacci())

	want := []int{0, 1, 1, 2, 3, 5, 8}
	for i, w := range want {
		res, err := co.Resume(nil)
		if err != nil {
			t.Fatalf("Resume %d failed: %v", i, err)
		}
		if res.Done {
			t.Fatalf("fibonacci completed unexpectedly at step %d", i)
		}
		if res.Value != w {
			t.Fatalf("value %d = %v, want %d", i, res.Value, w)
		}
	}

	if _, err := co.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}

func TestRecoverer(t *testing.T) {
	co := engine.New(Recoverer())

	if _, err := co.Resume(nil); err != nil {
		t.Fatalf("Resume failed: %v", err)
	}
	res, err := co.Throw(errors.New("glitch"))
	if err != nil {
		t.Fatalf("Throw failed: %v", err)
	}
	if res.Done {
		t.Fatal("expected recovery yield, got completion")
	}
	if res.Value != "recovered: glitch" {
		t.Fatalf("Value = %v, want recovered: glitch", res.Value)
	}

	res, err = co.Resume(nil)
	if err != nil || !res.Done || res.Value != "ok" {
		t.Fatalf("final = %+v/%v, want {ok true}", res, err)
	}
}

func TestRegisterAll(t *testing.T) {
	rt := runtime.New()
	defer rt.Close()

	if err := RegisterAll(rt); err != nil {
		t.Fatalf("RegisterAll failed: %v", err)
	}

	for _, name := range []string{"data-consumer", "counter", "fibonacci", "inner", "outer", "recoverer"} {
		inst, err := rt.Spawn(name)
		if err != nil {
			t.Fatalf("Spawn(%q) failed: %v", name, err)
		}
		if _, err := inst.Resume(nil); err != nil {
			t.Fatalf("first resume of %q failed: %v", name, err)
		}
		if _, err := inst.Close(); err != nil {
			t.Fatalf("Close(%q) failed: %v", name, err)
		}
	}
}
