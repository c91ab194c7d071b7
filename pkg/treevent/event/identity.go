package event

import (
	"reflect"

	"github.com/google/uuid"

	"github.com/randalmurphal/treevent/pkg/treevent/registry"
)

// Identified is implemented by objects that carry their own identity token.
// Every type embedding an Emitter satisfies it.
type Identified interface {
	CID() string
}

// cids caches tokens for objects that cannot carry one themselves.
var cids = registry.New[any, string]()

func newCID() string {
	return "cid-" + uuid.NewString()
}

// CID returns the emitter's identity token, assigning it on first use.
// The token never changes afterwards.
func (e *Emitter) CID() string {
	e.cidOnce.Do(func() {
		if e.cid == "" {
			e.cid = newCID()
		}
	})
	return e.cid
}

// adoptCID pins the emitter's token to one assigned elsewhere.
// It has no effect once the token has been read.
func (e *Emitter) adoptCID(cid string) {
	e.cidOnce.Do(func() {
		e.cid = cid
	})
}

// CID returns the identity token of obj, assigning one on first use.
//
// Objects implementing Identified answer for themselves; any other
// comparable object gets a token cached in a process-wide side table.
// Non-comparable values (slices, maps, funcs) and nil, including typed nil
// pointers, have no identity and yield "".
func CID(obj any) string {
	if isNil(obj) {
		return ""
	}
	if id, ok := obj.(Identified); ok {
		return id.CID()
	}
	if !registry.Comparable(obj) {
		return ""
	}
	return cids.GetOrCreate(obj, newCID)
}

// knownCID is CID without assignment: objects without a cached token
// yield "" and nothing is added to the side table.
func knownCID(obj any) string {
	if isNil(obj) {
		return ""
	}
	if id, ok := obj.(Identified); ok {
		return id.CID()
	}
	if !registry.Comparable(obj) {
		return ""
	}
	cid, _ := cids.Get(obj)
	return cid
}

// forgetCID drops the cached token for obj. Only Dispose calls it: a
// disposed object is treated as dead and must not be reused as a key.
func forgetCID(obj any) {
	if isNil(obj) || !registry.Comparable(obj) {
		return
	}
	if _, ok := obj.(Identified); ok {
		return
	}
	cids.Delete(obj)
}

// isNil reports whether obj is nil or a nil pointer, map, slice, func,
// chan or interface held in a non-nil interface.
func isNil(obj any) bool {
	if obj == nil {
		return true
	}
	switch v := reflect.ValueOf(obj); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}
