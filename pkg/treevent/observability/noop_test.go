package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestNoopMetrics(t *testing.T) {
	var m MetricsRecorder = NoopMetrics{}
	assert.NotPanics(t, func() {
		m.RecordDispatch(context.Background(), "x", 1)
		m.RecordRelayTeardown(context.Background(), 2)
		m.RecordInsertion(context.Background(), 3, true)
	})
}

func TestNoopSpanManager(t *testing.T) {
	var sm SpanManager = NoopSpanManager{}
	ctx := context.Background()

	got, span := sm.StartDetectSpan(ctx, "inserted", 2)
	assert.Equal(t, ctx, got, "context returned unchanged")
	assert.False(t, span.IsRecording())

	assert.NotPanics(t, func() {
		sm.AddSpanEvent(got, "x", attribute.String("k", "v"))
		sm.EndSpanWithError(span, errors.New("ignored"))
	})
}
