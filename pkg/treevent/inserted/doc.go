// Package inserted detects when a batch of nodes has entered a live
// document tree and fires an insertion notification on every member of the
// batch and every descendant of those members.
//
// The detector knows nothing about any concrete tree. A backend supplies the
// three structural queries through Tree and the trigger primitive through
// Notifier:
//
//	d := inserted.New[dom.Node](backend, backend,
//	    inserted.WithLogger(logger),
//	    inserted.WithMetrics(observability.NewMetricsRecorder()),
//	)
//	res := d.Detect(ctx, []dom.Node{child})
//
// # Membership
//
// Membership in the document is decided once per call, from the first
// candidate that can enumerate descendants. Leading leaf candidates (text
// nodes) are skipped without deciding anything. If the first container is
// not reachable from the root, the whole call stops there: the batch is
// taken to be a detached fragment and nothing is notified. Later candidates
// are never examined on their own, so a batch that mixes attached and
// detached nodes notifies either all of its containers or none of them.
//
// Leaf candidates are never notified, before or after membership is
// confirmed.
//
// # Order
//
// For each container candidate, its descendants are enumerated before any
// notification fires for it. The candidate is then notified, followed by each
// descendant in enumeration order. Handlers that restructure the tree during
// a notification do not change which nodes the current candidate notifies.
package inserted
