// Package observability provides structured logging, metrics, and tracing
// for treevent: event dispatch, relay teardown, and insertion detection.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds the identity token of the object being worked on.
func EnrichLogger(logger *slog.Logger, cid string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("cid", cid))
}

// LogDispatch logs a completed dispatch pass.
func LogDispatch(logger *slog.Logger, cid, eventType string, handlers int) {
	if logger == nil {
		return
	}
	logger.Debug("event dispatched",
		slog.String("cid", cid),
		slog.String("event", eventType),
		slog.Int("handlers", handlers),
	)
}

// LogRelayTeardown logs handlers removed by StopListening.
func LogRelayTeardown(logger *slog.Logger, subscriber string, removed int) {
	if logger == nil {
		return
	}
	logger.Debug("relay subscriptions removed",
		slog.String("subscriber", subscriber),
		slog.Int("removed", removed),
	)
}

// LogInsertionPass logs a detection pass that confirmed document membership.
func LogInsertionPass(logger *slog.Logger, candidates, notified int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("insertion detected",
		slog.Int("candidates", candidates),
		slog.Int("notified", notified),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogInsertionAborted logs a batch whose first container was not attached.
// This is the normal outcome for detached fragments.
func LogInsertionAborted(logger *slog.Logger, candidates, examined int) {
	if logger == nil {
		return
	}
	logger.Debug("insertion skipped, batch not in document",
		slog.Int("candidates", candidates),
		slog.Int("examined", examined),
	)
}

// LogJournalError logs a failed journal write (non-fatal).
func LogJournalError(logger *slog.Logger, op string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("journal write failed",
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000
	}
}
