package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// setupMetricsTest creates a test meter provider and returns a function to collect metrics.
func setupMetricsTest(t *testing.T) (*sdkmetric.ManualReader, func()) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	originalProvider := otel.GetMeterProvider()
	otel.SetMeterProvider(provider)

	cleanup := func() {
		otel.SetMeterProvider(originalProvider)
		if err := provider.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down meter provider: %v", err)
		}
	}
	return reader, cleanup
}

// collectMetrics collects all metrics from the reader.
func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) *metricdata.ResourceMetrics {
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	return &rm
}

// findMetric finds a metric by name in the collected data.
func findMetric(rm *metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func sumOf(t *testing.T, m *metricdata.Metrics) int64 {
	t.Helper()
	require.NotNil(t, m)
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "expected Sum[int64], got %T", m.Data)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestNewMetricsRecorder(t *testing.T) {
	_, cleanup := setupMetricsTest(t)
	defer cleanup()

	recorder := NewMetricsRecorder()
	require.NotNil(t, recorder)

	_, isNoop := recorder.(NoopMetrics)
	assert.False(t, isNoop, "Expected real metrics recorder, got noop")
}

func TestRecordDispatch(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics()
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordDispatch(ctx, "change", 2)
	m.RecordDispatch(ctx, "change", 3)
	m.RecordDispatch(ctx, "inserted", 0)

	rm := collectMetrics(t, reader)
	assert.Equal(t, int64(3), sumOf(t, findMetric(rm, "treevent.dispatch.count")))

	hist := findMetric(rm, "treevent.dispatch.handlers")
	require.NotNil(t, hist)
	data, ok := hist.Data.(metricdata.Histogram[int64])
	require.True(t, ok)

	var total int64
	for _, dp := range data.DataPoints {
		if v, _ := dp.Attributes.Value(attribute.Key("event")); v.AsString() == "change" {
			assert.Equal(t, uint64(2), dp.Count)
			total += dp.Sum
		}
	}
	assert.Equal(t, int64(5), total)
}

func TestRecordRelayTeardown(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics()
	require.NoError(t, err)

	m.RecordRelayTeardown(context.Background(), 4)
	m.RecordRelayTeardown(context.Background(), 1)

	rm := collectMetrics(t, reader)
	assert.Equal(t, int64(5), sumOf(t, findMetric(rm, "treevent.relay.removed")))
}

func TestRecordInsertion(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics()
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordInsertion(ctx, 3, false)
	m.RecordInsertion(ctx, 0, true)

	rm := collectMetrics(t, reader)
	assert.Equal(t, int64(3), sumOf(t, findMetric(rm, "treevent.inserted.notifications")))

	passes := findMetric(rm, "treevent.inserted.passes")
	require.NotNil(t, passes)
	sum, ok := passes.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	assert.Len(t, sum.DataPoints, 2, "one series per aborted value")
	assert.Equal(t, int64(2), sumOf(t, passes))
}
