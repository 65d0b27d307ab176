package program

import (
	"fmt"

	"github.com/wippyai/gen-runtime/engine"
	"github.com/wippyai/gen-runtime/runtime"
)

// DataConsumer is a stepwise consumer with two suspension points: the
// first resume starts it, the next two deliver the values it consumes,
// and it completes with "result". Consumed values are appended to sink
// when non-nil.
func DataConsumer(sink *[]any) engine.Definition {
	return func(ctx *engine.Ctx) (any, error) {
		a, err := ctx.Yield(nil)
		if err != nil {
			return nil, err
		}
		if sink != nil {
			*sink = append(*sink, a)
		}
		b, err := ctx.Yield(nil)
		if err != nil {
			return nil, err
		}
		if sink != nil {
			*sink = append(*sink, b)
		}
		return "result", nil
	}
}

// Counter yields 0..n-1 and completes.
func Counter(n int) engine.Definition {
	return func(ctx *engine.Ctx) (any, error) {
		for i := 0; i < n; i++ {
			if _, err := ctx.Yield(i); err != nil {
				return nil, err
			}
		}
		return nil, nil
	}
}

// Fibonacci yields the Fibonacci sequence indefinitely. Intended to be
// consumed incrementally or closed; draining it without a limit will not
// terminate.
func Fibonacci() engine.Definition {
	return func(ctx *engine.Ctx) (any, error) {
		a, b := 0, 1
		for {
			if _, err := ctx.Yield(a); err != nil {
				return nil, err
			}
			a, b = b, a+b
		}
	}
}

// Inner yields "a" then "b" and returns "inner-done".
func Inner() engine.Definition {
	return func(ctx *engine.Ctx) (any, error) {
		for _, v := range []any{"a", "b"} {
			if _, err := ctx.Yield(v); err != nil {
				return nil, err
			}
		}
		return "inner-done", nil
	}
}

// Outer yields "x", delegates to Inner, then yields "y". Draining it
// produces [x a b y]; the delegation's result ("inner-done") becomes the
// outer return value.
func Outer() engine.Definition {
	return func(ctx *engine.Ctx) (any, error) {
		if _, err := ctx.Yield("x"); err != nil {
			return nil, err
		}
		v, err := ctx.Delegate(Inner())
		if err != nil {
			return nil, err
		}
		if _, err := ctx.Yield("y"); err != nil {
			return nil, err
		}
		return v, nil
	}
}

// Recoverer yields "ready" and, if a failure is thrown at that point,
// yields a recovery message instead of propagating it. A second thrown
// failure propagates.
func Recoverer() engine.Definition {
	return func(ctx *engine.Ctx) (any, error) {
		_, err := ctx.Yield("ready")
		if err != nil {
			if _, yerr := ctx.Yield(fmt.Sprintf("recovered: %v", err)); yerr != nil {
				return nil, yerr
			}
		}
		return "ok", nil
	}
}

// RegisterAll registers every named program on rt. The names are stable
// and shared by the CLI and the scenario runner.
func RegisterAll(rt *runtime.Runtime) error {
	// A sink would be shared by every spawned instance; callers that want
	// to observe consumed values register DataConsumer with their own.
	programs := map[string]engine.Definition{
		"data-consumer": DataConsumer(nil),
		"counter":       Counter(5),
		"fibonacci":     Fibonacci(),
		"inner":         Inner(),
		"outer":         Outer(),
		"recoverer":     Recoverer(),
	}
	for name, def := range programs {
		if err := rt.Register(name, def); err != nil {
			return err
		}
	}
	return nil
}
