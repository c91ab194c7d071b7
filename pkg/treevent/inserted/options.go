package inserted

import (
	"log/slog"

	"github.com/randalmurphal/treevent/pkg/treevent/observability"
)

// DefaultEventName is the notification fired on inserted nodes.
const DefaultEventName = "inserted"

// detectorConfig holds configuration for a Detector.
type detectorConfig struct {
	eventName string
	logger    *slog.Logger
	metrics   observability.MetricsRecorder
	spans     observability.SpanManager
	tracing   bool
}

func defaultDetectorConfig() detectorConfig {
	return detectorConfig{
		eventName: DefaultEventName,
		metrics:   observability.NoopMetrics{},
		spans:     observability.NoopSpanManager{},
	}
}

// Option configures a Detector.
type Option func(*detectorConfig)

// WithEventName overrides the notification name.
// Default: "inserted". An empty name is ignored.
func WithEventName(name string) Option {
	return func(c *detectorConfig) {
		if name != "" {
			c.eventName = name
		}
	}
}

// WithLogger enables structured logging of detection passes.
func WithLogger(logger *slog.Logger) Option {
	return func(c *detectorConfig) {
		c.logger = logger
	}
}

// WithMetrics records detection passes and notification counts.
// A nil recorder keeps metrics disabled.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(c *detectorConfig) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithTracing wraps every pass in a span.
//
// Example:
//
//	d := inserted.New(tree, notifier, inserted.WithTracing(true))
func WithTracing(enabled bool) Option {
	return func(c *detectorConfig) {
		c.tracing = enabled
		if enabled {
			c.spans = observability.NewSpanManager()
		} else {
			c.spans = observability.NoopSpanManager{}
		}
	}
}
