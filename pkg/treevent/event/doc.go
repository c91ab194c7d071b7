// Package event provides synchronous, in-process event subscriptions for
// arbitrary objects and tree nodes.
//
// # Overview
//
//   - Emitter: per-object handler registry with add, remove, one-shot and dispatch
//   - Relay subscriptions: ListenTo / StopListening for bulk teardown
//   - Targets: one Bind / Unbind / Trigger surface over tree nodes,
//     self-dispatching objects and plain objects
//   - Identity tokens: stable per-object CIDs keying relay bookkeeping
//
// # Emitters
//
// Embed an Emitter to make a type an event source:
//
//	type Model struct {
//	    event.Emitter
//	}
//
//	m := &Model{}
//	m.SetReceiver(m)
//	changed := event.Func(func(ev *event.Event, args ...any) {
//	    fmt.Println(ev.Type, args)
//	})
//	m.On("change", changed)
//	m.Dispatch("change", "name", "old", "new")
//	m.Off("change", changed)
//
// Handlers run in registration order over a snapshot of the handler list, so
// a handler may remove itself or others mid-dispatch. Nothing is recovered:
// a panicking handler stops the pass and the panic reaches the caller.
//
// # Relay Subscriptions
//
// A subscriber can register handlers on other objects and forget about them:
//
//	view.ListenTo(model, "change", render)
//	view.ListenTo(collection, "add", render)
//
//	// Later, on teardown
//	view.StopListening(nil, "", nil)
//
// StopListening narrows by object, event name and listener; each argument
// left empty widens the selection. Relay bookkeeping references the other
// object weakly and never keeps it alive.
//
// # Targets
//
// TargetOf resolves an object once to a capability: tree nodes (TreeNode),
// objects with their own event system (Dispatcher) and plain objects. Plain
// objects get side-table state only when something is bound to them, and
// keep it until Dispose; queries, triggers and removals never add any.
// Trigger on a tree node may bubble to ancestors.
package event
