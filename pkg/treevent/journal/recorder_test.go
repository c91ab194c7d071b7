package journal_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/treevent/pkg/treevent/event"
	"github.com/randalmurphal/treevent/pkg/treevent/journal"
)

type widget struct {
	event.Emitter
}

func TestRecorderJournalsActivity(t *testing.T) {
	store := journal.NewMemoryStore()
	event.SetObserver(journal.NewRecorder(store, nil))
	defer event.SetObserver(nil)

	view, model := &widget{}, &widget{}
	model.SetReceiver(model)
	view.ListenTo(model, "change", event.Func(func(*event.Event, ...any) {}))
	model.Dispatch("change")
	view.StopListening(nil, "", nil)

	entries, err := store.List(journal.Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, journal.KindDispatch, entries[0].Kind)
	assert.Equal(t, model.CID(), entries[0].CID)
	assert.Equal(t, "change", entries[0].Event)
	assert.Equal(t, 1, entries[0].Count)
	assert.False(t, entries[0].Timestamp.IsZero())

	assert.Equal(t, journal.KindRelayStopped, entries[1].Kind)
	assert.Equal(t, view.CID(), entries[1].CID)
	assert.Equal(t, 1, entries[1].Count)
}

func TestRecorderLogsWriteFailures(t *testing.T) {
	store := journal.NewMemoryStore()
	require.NoError(t, store.Close())

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	rec := journal.NewRecorder(store, logger)

	w := &widget{}
	assert.NotPanics(t, func() {
		rec.Dispatched(w, event.NewEvent("x"), 1)
	})
	assert.Contains(t, buf.String(), "journal write failed")
	assert.Contains(t, buf.String(), "cid="+event.CID(w))
	assert.Contains(t, buf.String(), journal.ErrStoreClosed.Error())
}
