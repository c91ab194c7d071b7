package observability

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestLogger returns a debug-level JSON logger writing to buf.
func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var m map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &m))
	return m
}

func TestEnrichLogger(t *testing.T) {
	t.Run("adds cid", func(t *testing.T) {
		var buf bytes.Buffer
		EnrichLogger(newTestLogger(&buf), "cid-1").Info("hello")

		record := lastRecord(t, &buf)
		assert.Equal(t, "cid-1", record["cid"])
		assert.Equal(t, "hello", record["msg"])
	})

	t.Run("nil logger returns nil", func(t *testing.T) {
		assert.Nil(t, EnrichLogger(nil, "cid-1"))
	})
}

func TestLogHelpers(t *testing.T) {
	tests := []struct {
		name   string
		log    func(*slog.Logger)
		level  string
		msg    string
		fields map[string]any
	}{
		{
			name:   "dispatch",
			log:    func(l *slog.Logger) { LogDispatch(l, "cid-1", "change", 3) },
			level:  "DEBUG",
			msg:    "event dispatched",
			fields: map[string]any{"cid": "cid-1", "event": "change", "handlers": float64(3)},
		},
		{
			name:   "relay teardown",
			log:    func(l *slog.Logger) { LogRelayTeardown(l, "cid-2", 4) },
			level:  "DEBUG",
			msg:    "relay subscriptions removed",
			fields: map[string]any{"subscriber": "cid-2", "removed": float64(4)},
		},
		{
			name:   "insertion pass",
			log:    func(l *slog.Logger) { LogInsertionPass(l, 2, 5, 1.5) },
			level:  "DEBUG",
			msg:    "insertion detected",
			fields: map[string]any{"candidates": float64(2), "notified": float64(5), "duration_ms": 1.5},
		},
		{
			name:   "insertion aborted",
			log:    func(l *slog.Logger) { LogInsertionAborted(l, 3, 1) },
			level:  "DEBUG",
			msg:    "insertion skipped, batch not in document",
			fields: map[string]any{"candidates": float64(3), "examined": float64(1)},
		},
		{
			name:   "journal error",
			log:    func(l *slog.Logger) { LogJournalError(l, "append", errors.New("disk full")) },
			level:  "WARN",
			msg:    "journal write failed",
			fields: map[string]any{"operation": "append", "error": "disk full"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(newTestLogger(&buf))

			record := lastRecord(t, &buf)
			assert.Equal(t, tt.level, record["level"])
			assert.Equal(t, tt.msg, record["msg"])
			for k, v := range tt.fields {
				assert.Equal(t, v, record[k], k)
			}
		})

		t.Run(tt.name+" nil logger", func(t *testing.T) {
			assert.NotPanics(t, func() { tt.log(nil) })
		})
	}
}

func TestTimedOperation(t *testing.T) {
	done := TimedOperation()
	time.Sleep(2 * time.Millisecond)
	assert.GreaterOrEqual(t, done(), 1.0)
}
