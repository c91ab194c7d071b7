// Package treevent wires the event registry, insertion detection and the
// in-memory document tree to a configured logging, metrics and journaling
// stack.
//
// The subpackages stand on their own:
//
//   - event: per-object handler registries, relay subscriptions, identity
//     tokens and the trigger primitives shared by every kind of target.
//   - inserted: batch insertion detection over any tree backend.
//   - dom: a document tree whose mutations fire lifecycle events.
//   - observability: slog helpers, OpenTelemetry metrics and spans.
//   - journal: a dispatch journal backed by memory or SQLite.
//   - config: settings files.
//
// Setup builds a Runtime from config.Settings for programs that want all of
// it at once:
//
//	settings, err := config.Load("treevent.yaml")
//	if err != nil {
//	    return err
//	}
//	rt, err := treevent.Setup(settings, os.Stderr)
//	if err != nil {
//	    return err
//	}
//	defer rt.Close()
//
//	doc := rt.NewDocument()
package treevent
