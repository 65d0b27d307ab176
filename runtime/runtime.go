package runtime

import (
	"sort"
	"sync"

	"github.com/wippyai/gen-runtime/engine"
	"github.com/wippyai/gen-runtime/errors"
)

// Runtime owns a registry of named coroutine programs and a handle table
// of live instances. Safe for concurrent use.
type Runtime struct {
	mu       sync.RWMutex
	programs map[string]engine.Definition
	table    *engine.Table
	closed   bool
}

// New creates an empty runtime.
func New() *Runtime {
	return &Runtime{
		programs: make(map[string]engine.Definition),
		table:    engine.NewTable(),
	}
}

// Close terminates all live instances and releases the runtime.
// Registered programs become unavailable.
func (r *Runtime) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.mu.Unlock()

	var firstErr error
	for _, co := range r.table.Close() {
		if _, err := co.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Register adds a named program. Registering the same name twice fails.
func (r *Runtime) Register(name string, def engine.Definition) error {
	if name == "" {
		return errors.InvalidInput(errors.PhaseLoad, "empty program name")
	}
	if def == nil {
		return errors.InvalidInput(errors.PhaseLoad, "nil program definition")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return errors.Closed(errors.PhaseLoad, "runtime")
	}
	if _, exists := r.programs[name]; exists {
		return errors.New(errors.PhaseLoad, errors.KindInvalidInput).
			Program(name).
			Detail("program already registered").
			Build()
	}
	r.programs[name] = def
	return nil
}

// Programs returns the registered program names, sorted.
func (r *Runtime) Programs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.programs))
	for name := range r.programs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Spawn creates a fresh instance of the named program and returns it.
// The instance is tracked in the runtime's handle table until dropped or
// the runtime closes.
func (r *Runtime) Spawn(name string) (*Instance, error) {
	r.mu.RLock()
	def, ok := r.programs[name]
	closed := r.closed
	r.mu.RUnlock()

	if closed {
		return nil, errors.Closed(errors.PhaseCreate, "runtime")
	}
	if !ok {
		return nil, errors.NotFound(errors.PhaseCreate, "program", name)
	}

	co := engine.New(def)
	handle, err := r.table.Add(name, co)
	if err != nil {
		return nil, err
	}
	return &Instance{
		rt:      r,
		co:      co,
		handle:  handle,
		program: name,
	}, nil
}

// Get resolves a handle to its live instance.
func (r *Runtime) Get(handle engine.Handle) (*Instance, error) {
	co, ok := r.table.Get(handle)
	if !ok {
		return nil, errors.New(errors.PhaseLoad, errors.KindNotFound).
			Detail("handle %d not found", handle).
			Build()
	}
	program, _ := r.table.Program(handle)
	return &Instance{
		rt:      r,
		co:      co,
		handle:  handle,
		program: program,
	}, nil
}

// Count reports the number of live instances.
func (r *Runtime) Count() int {
	return r.table.Count()
}
