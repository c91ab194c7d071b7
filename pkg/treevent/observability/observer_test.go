package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/treevent/pkg/treevent/event"
)

type source struct {
	event.Emitter
}

func TestEventObserver(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics()
	require.NoError(t, err)

	var buf bytes.Buffer
	event.SetObserver(NewEventObserver(newTestLogger(&buf), m))
	defer event.SetObserver(nil)

	view, model := &source{}, &source{}
	model.SetReceiver(model)
	view.ListenTo(model, "change", event.Func(func(*event.Event, ...any) {}))
	model.Dispatch("change")

	record := lastRecord(t, &buf)
	assert.Equal(t, "event dispatched", record["msg"])
	assert.Equal(t, model.CID(), record["cid"])
	assert.Equal(t, float64(1), record["handlers"])

	view.StopListening(nil, "", nil)
	record = lastRecord(t, &buf)
	assert.Equal(t, "relay subscriptions removed", record["msg"])
	assert.Equal(t, view.CID(), record["subscriber"])

	rm := collectMetrics(t, reader)
	assert.Equal(t, int64(1), sumOf(t, findMetric(rm, "treevent.dispatch.count")))
	assert.Equal(t, int64(1), sumOf(t, findMetric(rm, "treevent.relay.removed")))
}

func TestEventObserverDefaults(t *testing.T) {
	o := NewEventObserver(nil, nil)
	assert.NotPanics(t, func() {
		o.Dispatched(&source{}, event.NewEvent("x"), 0)
		o.RelayStopped("cid-1", 1)
	})
}
