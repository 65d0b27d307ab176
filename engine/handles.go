package engine

import (
	"sync"

	"github.com/wippyai/gen-runtime/errors"
)

// Handle is an opaque reference to a live coroutine instance. Handle 0 is
// never valid.
type Handle uint32

// Table is an in-memory handle table mapping handles to coroutine
// instances. Dropped handles are recycled through a free list. Safe for
// concurrent use.
type Table struct {
	entries  []tableEntry
	freeList []Handle
	mu       sync.RWMutex
	closed   bool
}

type tableEntry struct {
	co      *Coroutine
	program string
	valid   bool
}

// NewTable creates an empty handle table.
func NewTable() *Table {
	return &Table{
		entries:  make([]tableEntry, 0, 64),
		freeList: make([]Handle, 0, 16),
	}
}

// Add stores an instance and returns its handle. The program name is
// retained for diagnostics.
func (t *Table) Add(program string, co *Coroutine) (Handle, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return 0, errors.Closed(errors.PhaseCreate, "handle table")
	}

	e := tableEntry{
		co:      co,
		program: program,
		valid:   true,
	}

	if len(t.freeList) > 0 {
		handle := t.freeList[len(t.freeList)-1]
		t.freeList = t.freeList[:len(t.freeList)-1]
		t.entries[handle-1] = e
		return handle, nil
	}

	t.entries = append(t.entries, e)
	return Handle(len(t.entries)), nil
}

// Get retrieves an instance by handle.
func (t *Table) Get(handle Handle) (*Coroutine, bool) {
	if handle == 0 {
		return nil, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	idx := handle - 1
	if int(idx) >= len(t.entries) {
		return nil, false
	}

	e := t.entries[idx]
	if !e.valid {
		return nil, false
	}
	return e.co, true
}

// Program returns the program name recorded for handle.
func (t *Table) Program(handle Handle) (string, bool) {
	if handle == 0 {
		return "", false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	idx := handle - 1
	if int(idx) >= len(t.entries) {
		return "", false
	}

	e := t.entries[idx]
	if !e.valid {
		return "", false
	}
	return e.program, true
}

// Drop removes a handle and returns the instance it referenced. The
// handle becomes available for reuse.
func (t *Table) Drop(handle Handle) (*Coroutine, bool) {
	if handle == 0 {
		return nil, false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	idx := handle - 1
	if int(idx) >= len(t.entries) || !t.entries[idx].valid {
		return nil, false
	}

	co := t.entries[idx].co
	t.entries[idx] = tableEntry{}
	t.freeList = append(t.freeList, handle)
	return co, true
}

// Count reports the number of live handles.
func (t *Table) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := 0
	for _, e := range t.entries {
		if e.valid {
			n++
		}
	}
	return n
}

// Close marks the table closed and returns all remaining instances so the
// owner can terminate them. Further Add calls fail.
func (t *Table) Close() []*Coroutine {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true

	var remaining []*Coroutine
	for i, e := range t.entries {
		if e.valid {
			remaining = append(remaining, e.co)
			t.entries[i] = tableEntry{}
		}
	}
	t.freeList = t.freeList[:0]
	return remaining
}
