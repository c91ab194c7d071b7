package event

import (
	"github.com/randalmurphal/treevent/pkg/treevent/registry"
)

// Kind identifies how a Target delivers bind, unbind and trigger requests.
type Kind int

const (
	// KindInvalid is a target that accepts nothing (nil or non-comparable objects).
	KindInvalid Kind = iota

	// KindPlainObject keeps its handlers in a process-wide side table.
	KindPlainObject

	// KindDispatchable manages its own subscriptions through Dispatcher.
	KindDispatchable

	// KindTreeNode is a node in a tree; triggers may bubble to ancestors.
	KindTreeNode
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindPlainObject:
		return "plain"
	case KindDispatchable:
		return "dispatchable"
	case KindTreeNode:
		return "tree_node"
	default:
		return "invalid"
	}
}

// Dispatcher is implemented by objects with their own event system.
// Any struct embedding an Emitter satisfies it. For such structs ListenTo
// and StopListening work on the embedded Emitter directly, so overriding
// Bind or Unbind does not affect relay subscriptions.
type Dispatcher interface {
	Bind(name string, l *Listener)
	Unbind(name string, l *Listener)
	Trigger(ev *Event, args ...any) *Event
}

// TreeNode is implemented by nodes of an event-aware tree.
type TreeNode interface {
	// EventEmitter returns the node's handler state.
	EventEmitter() *Emitter

	// ParentNode returns the node's parent, or false at the root or when
	// the parent cannot receive events.
	ParentNode() (TreeNode, bool)
}

type emitterHolder interface {
	EventEmitter() *Emitter
}

// plain holds handler state for objects that carry none of their own.
var plain = registry.New[any, *Emitter]()

// Target is an object resolved to one delivery capability. Resolve it once
// with TargetOf and reuse it; the kind never changes.
type Target struct {
	kind Kind
	obj  any
	em   *Emitter
	disp Dispatcher
	node TreeNode
}

// TargetOf classifies obj. Tree nodes win over dispatchers, which win over
// plain objects. Nil (including typed nil pointers) and non-comparable
// values yield an invalid target whose operations do nothing.
//
// TargetOf never creates state: a plain object that was never bound
// resolves to a target without handler state, and stays untracked until
// Bind, One or ListenTo attaches some.
func TargetOf(obj any) Target {
	if isNil(obj) {
		return Target{}
	}
	switch v := obj.(type) {
	case TreeNode:
		return Target{kind: KindTreeNode, obj: obj, node: v, em: v.EventEmitter()}
	case Dispatcher:
		t := Target{kind: KindDispatchable, obj: obj, disp: v}
		if h, ok := obj.(emitterHolder); ok {
			t.em = h.EventEmitter()
		}
		return t
	}

	if !registry.Comparable(obj) {
		return Target{}
	}
	t := Target{kind: KindPlainObject, obj: obj}
	if em, ok := plain.Get(obj); ok {
		t.em = em
	}
	return t
}

// attached returns t with side-table state for plain objects, creating it
// on first use. Other kinds are returned unchanged.
func (t Target) attached() Target {
	if t.kind != KindPlainObject || t.em != nil {
		return t
	}
	obj := t.obj
	t.em = plain.GetOrCreate(obj, func() *Emitter {
		em := &Emitter{receiver: obj}
		em.adoptCID(CID(obj))
		return em
	})
	return t
}

// Kind returns the delivery capability.
func (t Target) Kind() Kind {
	return t.kind
}

// Valid reports whether the target accepts operations.
func (t Target) Valid() bool {
	return t.kind != KindInvalid
}

// Object returns the resolved object.
func (t Target) Object() any {
	return t.obj
}

// CID returns the object's identity token, assigning one on first use.
func (t Target) CID() string {
	if !t.Valid() {
		return ""
	}
	if t.em != nil {
		return t.em.CID()
	}
	return CID(t.obj)
}

// knownCID returns the identity token without assigning one. An object
// that never had a token cannot be keyed anywhere, so "" means untracked.
func (t Target) knownCID() string {
	if !t.Valid() {
		return ""
	}
	if t.em != nil {
		return t.em.CID()
	}
	return knownCID(t.obj)
}

// Emitter returns the handler state behind the target, or nil for
// dispatchers that manage their own and for plain objects never bound.
func (t Target) Emitter() *Emitter {
	return t.em
}

// Bind registers l for name on the target.
func (t Target) Bind(name string, l *Listener) {
	t = t.attached()
	switch t.kind {
	case KindDispatchable:
		t.disp.Bind(name, l)
	case KindTreeNode, KindPlainObject:
		t.em.AddEvent(name, l)
	}
}

// Unbind removes l for name from the target. A nil listener removes all.
func (t Target) Unbind(name string, l *Listener) {
	switch t.kind {
	case KindDispatchable:
		t.disp.Unbind(name, l)
	case KindTreeNode, KindPlainObject:
		if t.em != nil {
			t.em.RemoveEvent(name, l)
		}
	}
}

// One binds l so that it runs for the first trigger of name only.
func (t Target) One(name string, l *Listener) {
	if l == nil || !t.Valid() {
		return
	}
	t = t.attached()
	t.Bind(name, onceListener(l, func(w *Listener) { t.Unbind(name, w) }))
}

// Trigger fires ev on the target and returns it. ev.Target defaults to the
// target object. For tree nodes with bubble set, the event then walks up
// ParentNode until the root or until a handler stops propagation.
func (t Target) Trigger(ev *Event, bubble bool, args ...any) *Event {
	if ev == nil || !t.Valid() {
		return ev
	}
	if ev.Target == nil {
		ev.Target = t.obj
	}

	switch t.kind {
	case KindDispatchable:
		t.disp.Trigger(ev, args...)
	case KindPlainObject:
		if t.em != nil {
			t.em.DispatchAs(t.obj, ev, args...)
		}
	case KindTreeNode:
		node := t.node
		for node != nil {
			node.EventEmitter().DispatchAs(node, ev, args...)
			if !bubble || ev.IsPropagationStopped() {
				break
			}
			parent, ok := node.ParentNode()
			if !ok {
				break
			}
			node = parent
		}
	}
	return ev
}

// Bind registers l for name on obj, whatever its capability.
func Bind(obj any, name string, l *Listener) {
	TargetOf(obj).Bind(name, l)
}

// Unbind removes l for name from obj. A nil listener removes all.
func Unbind(obj any, name string, l *Listener) {
	TargetOf(obj).Unbind(name, l)
}

// One binds l on obj for the first trigger of name only.
func One(obj any, name string, l *Listener) {
	TargetOf(obj).One(name, l)
}

// Trigger fires ev on obj. See Target.Trigger.
func Trigger(obj any, ev *Event, bubble bool, args ...any) *Event {
	return TargetOf(obj).Trigger(ev, bubble, args...)
}

// TriggerName fires a new event called name on obj.
func TriggerName(obj any, name string, bubble bool, args ...any) *Event {
	return Trigger(obj, NewEvent(name), bubble, args...)
}

// Dispose releases all event state held for obj: its registrations, its
// relay subscriptions, relay entries other objects keep for it and, for
// objects without an Emitter of their own, the side-table entries that
// would otherwise keep obj alive.
func Dispose(obj any) {
	t := TargetOf(obj)
	if !t.Valid() {
		return
	}
	if t.em != nil {
		t.em.Dispose()
	}
	if t.kind == KindPlainObject {
		plain.Delete(obj)
	}
	forgetCID(obj)
}

// Tracked returns how many objects without an Emitter of their own hold
// side-table state. Only Bind, One and ListenTo add to it; Dispose removes.
func Tracked() int {
	return plain.Len()
}
