package inserted

import (
	"context"
	"slices"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/randalmurphal/treevent/pkg/treevent/observability"
)

// Tree is the structural collaborator a backend provides.
type Tree[N any] interface {
	// IsDescendantEnumerable reports whether n can hold children.
	IsDescendantEnumerable(n N) bool

	// EnumerateDescendants returns every descendant of n in depth-first
	// document order, excluding n itself.
	EnumerateDescendants(n N) []N

	// IsReachableFromRoot reports whether n is attached to the live document.
	IsReachableFromRoot(n N) bool
}

// Notifier fires a named, non-bubbling notification on exactly one node.
type Notifier[N any] interface {
	Notify(n N, name string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc[N any] func(n N, name string)

// Notify calls f(n, name).
func (f NotifierFunc[N]) Notify(n N, name string) {
	f(n, name)
}

// Result describes one detection pass.
type Result struct {
	// Confirmed is true when a container candidate was found reachable.
	Confirmed bool

	// Aborted is true when the first container candidate was detached.
	Aborted bool

	// Examined counts candidates visited before the pass finished or stopped.
	Examined int

	// Notified counts notifications fired.
	Notified int
}

// Detector runs insertion detection against one backend.
// A Detector is safe for concurrent use if its backend is.
type Detector[N any] struct {
	tree     Tree[N]
	notifier Notifier[N]
	cfg      detectorConfig
}

// New creates a Detector.
func New[N any](tree Tree[N], notifier Notifier[N], opts ...Option) *Detector[N] {
	cfg := defaultDetectorConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Detector[N]{tree: tree, notifier: notifier, cfg: cfg}
}

// EventName returns the notification name this detector fires.
func (d *Detector[N]) EventName() string {
	return d.cfg.eventName
}

// Detect examines candidates in order and notifies inserted nodes.
//
// candidates must already be expanded (no fragments). The slice is copied
// before the walk, so handlers may mutate the caller's slice freely. Detect
// never fails: a detached batch is an expected outcome and is reported only
// through Result.Aborted.
func (d *Detector[N]) Detect(ctx context.Context, candidates []N) Result {
	batch := slices.Clone(candidates)
	done := observability.TimedOperation()

	if d.cfg.tracing {
		var span trace.Span
		ctx, span = d.cfg.spans.StartDetectSpan(ctx, d.cfg.eventName, len(batch))
		defer func() { d.cfg.spans.EndSpanWithError(span, nil) }()
	}

	res := d.walk(ctx, batch)

	d.cfg.metrics.RecordInsertion(ctx, res.Notified, res.Aborted)
	switch {
	case res.Aborted:
		observability.LogInsertionAborted(d.cfg.logger, len(batch), res.Examined)
	case res.Confirmed:
		observability.LogInsertionPass(d.cfg.logger, len(batch), res.Notified, done())
	}
	return res
}

func (d *Detector[N]) walk(ctx context.Context, batch []N) Result {
	var res Result
	for i, n := range batch {
		res.Examined++
		if !d.tree.IsDescendantEnumerable(n) {
			continue
		}

		if !res.Confirmed {
			if !d.tree.IsReachableFromRoot(n) {
				res.Aborted = true
				return res
			}
			res.Confirmed = true
			d.cfg.spans.AddSpanEvent(ctx, "membership.confirmed",
				attribute.Int("candidate.index", i))
		}

		descendants := d.tree.EnumerateDescendants(n)
		d.notifier.Notify(n, d.cfg.eventName)
		for _, desc := range descendants {
			d.notifier.Notify(desc, d.cfg.eventName)
		}
		res.Notified += 1 + len(descendants)
	}
	return res
}
