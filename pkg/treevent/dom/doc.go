// Package dom is an in-memory document tree wired to the event and inserted
// packages.
//
// Every node embeds an event.Emitter, so nodes are tree-node targets:
// triggering with bubbling walks from the node up through its parents.
// Mutations report lifecycle events:
//
//   - AppendChild and InsertBefore run insertion detection on the nodes they
//     place. Inserting a fragment moves its children and detects them as one
//     batch. Nodes placed under a detached parent are not notified.
//   - Destroy fires "removed" on a node and then on each element below it,
//     detaches the node and releases every emitter in the subtree.
//   - SetAttribute and RemoveAttribute fire "attributes" when a value
//     changes, carrying the attribute name and previous value in Event.Data.
//
// None of these notifications bubble.
//
// A Document is not safe for concurrent use.
package dom
