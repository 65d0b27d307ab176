// Package runtime provides the high-level API for the coroutine engine.
//
// # Quick Start
//
//	rt := runtime.New()
//	defer rt.Close()
//
//	rt.Register("counter", func(ctx *engine.Ctx) (any, error) {
//	    for i := 0; i < 3; i++ {
//	        if _, err := ctx.Yield(i); err != nil {
//	            return nil, err
//	        }
//	    }
//	    return nil, nil
//	})
//
//	inst, err := rt.Spawn("counter")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	values, err := inst.Drain(16) // [0 1 2]
//
// # Handles
//
// Every spawned instance is tracked in a handle table, so external
// collaborators can refer to instances by opaque integer handles rather
// than pointers:
//
//	h := inst.Handle()
//	same, err := rt.Get(h)
//
// Closing an instance drops its handle; closing the runtime terminates
// every instance it still tracks.
//
// # Iteration
//
// Finite instances can be drained into an ordered slice of yielded
// values with Drain, or consumed incrementally with Values:
//
//	for v := range inst.Values() {
//	    fmt.Println(v)
//	}
//
// Breaking out of the range closes the instance so registered cleanup
// runs, matching the engine's early-termination semantics.
package runtime
