// Package handles maps opaque native identifiers to the Go objects behind them.
//
// The render engine and the window system hand out native.Handle values
// instead of pointers, the same way a C library returns opaque ids. A Table
// issues those ids. Ids start at 1 and are never reused, so native.Empty (0)
// never names a live object and a stale id never resolves to a newer object.
package handles

import (
	"slices"
	"sync"

	"github.com/younwookim/mythforge/internal/domain/native"
)

// Table is a thread-safe id → object registry
type Table[T any] struct {
	mu      sync.RWMutex
	objects map[native.Handle]T
	nextID  native.Handle
}

// NewTable creates an empty table
func NewTable[T any]() *Table[T] {
	return &Table[T]{
		objects: make(map[native.Handle]T),
		nextID:  1,
	}
}

// Register stores v and returns its new handle
func (t *Table[T]) Register(v T) native.Handle {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.nextID
	t.nextID++
	t.objects[id] = v
	return id
}

// Lookup returns the object for id
func (t *Table[T]) Lookup(id native.Handle) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.objects[id]
	return v, ok
}

// Unregister removes id and returns the object it named
func (t *Table[T]) Unregister(id native.Handle) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.objects[id]
	if ok {
		delete(t.objects, id)
	}
	return v, ok
}

// Count returns the number of registered objects.
// Useful for leak checks in tests.
func (t *Table[T]) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.objects)
}

// Each calls fn for every registered object in ascending id order
func (t *Table[T]) Each(fn func(id native.Handle, v T)) {
	t.mu.RLock()
	ids := make([]native.Handle, 0, len(t.objects))
	for id := range t.objects {
		ids = append(ids, id)
	}
	t.mu.RUnlock()

	slices.Sort(ids)
	for _, id := range ids {
		v, ok := t.Lookup(id)
		if ok {
			fn(id, v)
		}
	}
}
