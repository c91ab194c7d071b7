package observability

import (
	"context"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records treevent metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordDispatch records a dispatch pass and how many handlers it ran.
	RecordDispatch(ctx context.Context, eventType string, handlers int)

	// RecordRelayTeardown records handlers removed by StopListening.
	RecordRelayTeardown(ctx context.Context, removed int)

	// RecordInsertion records a detection pass.
	RecordInsertion(ctx context.Context, notified int, aborted bool)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	dispatches       metric.Int64Counter
	dispatchHandlers metric.Int64Histogram
	relayRemoved     metric.Int64Counter
	notifications    metric.Int64Counter
	insertionPasses  metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("treevent")

	dispatches, err := meter.Int64Counter("treevent.dispatch.count",
		metric.WithDescription("Number of dispatch passes"),
	)
	if err != nil {
		return nil, err
	}

	dispatchHandlers, err := meter.Int64Histogram("treevent.dispatch.handlers",
		metric.WithDescription("Handlers invoked per dispatch pass"),
	)
	if err != nil {
		return nil, err
	}

	relayRemoved, err := meter.Int64Counter("treevent.relay.removed",
		metric.WithDescription("Relay handlers removed by StopListening"),
	)
	if err != nil {
		return nil, err
	}

	notifications, err := meter.Int64Counter("treevent.inserted.notifications",
		metric.WithDescription("Insertion notifications fired"),
	)
	if err != nil {
		return nil, err
	}

	insertionPasses, err := meter.Int64Counter("treevent.inserted.passes",
		metric.WithDescription("Insertion detection passes"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		dispatches:       dispatches,
		dispatchHandlers: dispatchHandlers,
		relayRemoved:     relayRemoved,
		notifications:    notifications,
		insertionPasses:  insertionPasses,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordDispatch records a dispatch pass.
func (m *otelMetrics) RecordDispatch(ctx context.Context, eventType string, handlers int) {
	attrs := metric.WithAttributes(attribute.String("event", eventType))
	m.dispatches.Add(ctx, 1, attrs)
	m.dispatchHandlers.Record(ctx, int64(handlers), attrs)
}

// RecordRelayTeardown records removed relay handlers.
func (m *otelMetrics) RecordRelayTeardown(ctx context.Context, removed int) {
	m.relayRemoved.Add(ctx, int64(removed))
}

// RecordInsertion records a detection pass.
func (m *otelMetrics) RecordInsertion(ctx context.Context, notified int, aborted bool) {
	m.insertionPasses.Add(ctx, 1, metric.WithAttributes(attribute.Bool("aborted", aborted)))
	if notified > 0 {
		m.notifications.Add(ctx, int64(notified))
	}
}
