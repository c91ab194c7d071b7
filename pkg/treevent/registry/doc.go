// Package registry provides side tables that attach state to objects by identity.
//
// Objects that do not embed their own event state (plain structs, map keys,
// values owned by another package) still need somewhere to keep handlers and
// identity tokens. A Table holds that state outside the object, keyed by the
// object itself, so nothing has to be injected into the object.
//
// # Basic Usage
//
//	states := registry.New[any, *State]()
//
//	// First call creates the state, later calls return the same one
//	st := states.GetOrCreate(obj, func() *State {
//	    return &State{}
//	})
//
//	// Explicit disposal releases the entry (and the table's reference to obj)
//	states.Delete(obj)
//
// # Keys
//
// Keys are compared with ==. Interface-typed keys holding non-comparable
// dynamic values (slices, maps, funcs) would panic inside a Go map, so
// callers guard with Comparable before using such a key:
//
//	if registry.Comparable(obj) {
//	    st := states.GetOrCreate(obj, newState)
//	}
//
// # Thread Safety
//
// All Table methods are safe for concurrent use. A GetOrCreate factory must
// not call back into the same table.
package registry
