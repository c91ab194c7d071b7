package journal

import (
	"log/slog"
	"time"

	"github.com/randalmurphal/treevent/pkg/treevent/event"
	"github.com/randalmurphal/treevent/pkg/treevent/observability"
)

// Recorder is an event.Observer that appends to a Store. Write failures
// are logged and otherwise ignored; they never reach the dispatching code.
type Recorder struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

// Compile-time interface check.
var _ event.Observer = (*Recorder)(nil)

// NewRecorder returns a Recorder writing to store. logger may be nil.
func NewRecorder(store Store, logger *slog.Logger) *Recorder {
	return &Recorder{store: store, logger: logger, now: time.Now}
}

// Dispatched implements event.Observer.
func (r *Recorder) Dispatched(recv any, ev *event.Event, handlers int) {
	r.append(Entry{
		Kind:  KindDispatch,
		CID:   event.CID(recv),
		Event: ev.Type,
		Count: handlers,
	})
}

// RelayStopped implements event.Observer.
func (r *Recorder) RelayStopped(subscriber string, removed int) {
	r.append(Entry{
		Kind:  KindRelayStopped,
		CID:   subscriber,
		Count: removed,
	})
}

func (r *Recorder) append(e Entry) {
	e.Timestamp = r.now().UTC()
	if _, err := r.store.Append(e); err != nil {
		observability.LogJournalError(observability.EnrichLogger(r.logger, e.CID), string(e.Kind), err)
	}
}
