package treevent_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/treevent/pkg/treevent"
	"github.com/randalmurphal/treevent/pkg/treevent/config"
	"github.com/randalmurphal/treevent/pkg/treevent/event"
	"github.com/randalmurphal/treevent/pkg/treevent/journal"
	"github.com/randalmurphal/treevent/pkg/treevent/observability"
)

func TestSetupRejectsInvalidSettings(t *testing.T) {
	s := config.Default()
	s.Log.Format = "xml"

	_, err := treevent.Setup(s, nil)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestSetupDefaults(t *testing.T) {
	rt, err := treevent.Setup(config.Default(), nil)
	require.NoError(t, err)
	defer rt.Close()

	assert.Nil(t, rt.Journal)
	assert.IsType(t, observability.NoopMetrics{}, rt.Metrics)
	assert.NotNil(t, rt.Logger)
}

func TestRuntimeDocumentJournal(t *testing.T) {
	s := config.Default()
	s.Events.Inserted = "attached"
	s.Log.Level = "debug"
	s.Log.Format = "json"
	s.Journal = config.JournalSettings{Driver: config.JournalSQLite, Path: filepath.Join(t.TempDir(), "j.db")}

	var logs bytes.Buffer
	rt, err := treevent.Setup(s, &logs)
	require.NoError(t, err)

	doc := rt.NewDocument()
	el := doc.CreateElement("div")
	calls := 0
	el.On("attached", event.Func(func(*event.Event, ...any) { calls++ }))
	require.NoError(t, doc.Body().AppendChild(el))
	assert.Equal(t, 1, calls)

	entries, err := rt.Journal.List(journal.Filter{Event: "attached"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, el.CID(), entries[0].CID)

	assert.Contains(t, logs.String(), `"msg":"insertion detected"`)
	assert.Contains(t, logs.String(), `"msg":"event dispatched"`)

	require.NoError(t, rt.Close())
	assert.Contains(t, logs.String(), `"msg":"treevent runtime closed"`)
	assert.Contains(t, logs.String(), `"tracked_objects":`)

	// Observer is uninstalled after Close.
	el.Dispatch("attached")
	assert.Equal(t, 2, calls)
}

func TestSetupBadJournalPath(t *testing.T) {
	s := config.Default()
	s.Journal = config.JournalSettings{Driver: config.JournalSQLite, Path: "/nonexistent/dir/j.db"}

	_, err := treevent.Setup(s, nil)
	assert.Error(t, err)
}
