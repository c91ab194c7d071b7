package observability

import (
	"context"
	"log/slog"

	"github.com/randalmurphal/treevent/pkg/treevent/event"
)

// EventObserver reports emitter activity through a logger and a
// MetricsRecorder. Install it with event.SetObserver.
type EventObserver struct {
	logger  *slog.Logger
	metrics MetricsRecorder
}

// Compile-time interface check.
var _ event.Observer = (*EventObserver)(nil)

// NewEventObserver returns an observer. A nil logger disables logging and a
// nil recorder falls back to NoopMetrics.
func NewEventObserver(logger *slog.Logger, metrics MetricsRecorder) *EventObserver {
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	return &EventObserver{logger: logger, metrics: metrics}
}

// Dispatched logs and counts a dispatch pass.
func (o *EventObserver) Dispatched(recv any, ev *event.Event, handlers int) {
	LogDispatch(o.logger, event.CID(recv), ev.Type, handlers)
	o.metrics.RecordDispatch(context.Background(), ev.Type, handlers)
}

// RelayStopped logs and counts relay teardown.
func (o *EventObserver) RelayStopped(subscriber string, removed int) {
	LogRelayTeardown(o.logger, subscriber, removed)
	o.metrics.RecordRelayTeardown(context.Background(), removed)
}
