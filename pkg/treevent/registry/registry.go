package registry

import (
	"reflect"
	"sync"
)

// Table is a thread-safe side table mapping objects to attached state.
// It uses sync.RWMutex because lookups vastly outnumber insertions.
type Table[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]V
}

// New creates a new empty table.
func New[K comparable, V any]() *Table[K, V] {
	return &Table[K, V]{
		entries: make(map[K]V),
	}
}

// Comparable reports whether v can be used as a map key without panicking.
// A nil interface is not considered a usable key.
func Comparable(v any) bool {
	if v == nil {
		return false
	}
	return reflect.ValueOf(v).Comparable()
}

// Get returns the state for a key and whether it exists.
func (t *Table[K, V]) Get(key K) (V, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.entries[key]
	return v, ok
}

// Delete detaches the state for key. Deleting a missing key is a no-op.
func (t *Table[K, V]) Delete(key K) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, key)
}

// Len returns the number of objects with attached state.
func (t *Table[K, V]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// GetOrCreate returns the state for key, creating it with factory if absent.
// The factory runs at most once per key, even under concurrent access, and
// must not call back into the same table.
func (t *Table[K, V]) GetOrCreate(key K, factory func() V) V {
	t.mu.RLock()
	v, ok := t.entries[key]
	t.mu.RUnlock()
	if ok {
		return v
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// Another goroutine may have won the race
	if v, ok := t.entries[key]; ok {
		return v
	}

	v = factory()
	t.entries[key] = v
	return v
}
