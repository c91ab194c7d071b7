package treevent

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/randalmurphal/treevent/pkg/treevent/config"
	"github.com/randalmurphal/treevent/pkg/treevent/dom"
	"github.com/randalmurphal/treevent/pkg/treevent/event"
	"github.com/randalmurphal/treevent/pkg/treevent/inserted"
	"github.com/randalmurphal/treevent/pkg/treevent/journal"
	"github.com/randalmurphal/treevent/pkg/treevent/observability"
)

// Runtime holds the process-wide stack built by Setup.
type Runtime struct {
	Settings config.Settings
	Logger   *slog.Logger
	Metrics  observability.MetricsRecorder

	// Journal is nil when the journal driver is "none".
	Journal journal.Store
}

// Setup validates settings, builds the logger writing to w, opens the
// journal, and installs the event observer. Only one Runtime should be
// active at a time; Close uninstalls the observer.
func Setup(settings config.Settings, w io.Writer) (*Runtime, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	rt := &Runtime{
		Settings: settings,
		Logger:   newLogger(settings.Log, settings.SlogLevel(), w),
		Metrics:  observability.NoopMetrics{},
	}
	if settings.Metrics {
		rt.Metrics = observability.NewMetricsRecorder()
	}

	store, err := openJournal(settings.Journal)
	if err != nil {
		return nil, err
	}
	rt.Journal = store

	observers := []event.Observer{observability.NewEventObserver(rt.Logger, rt.Metrics)}
	if store != nil {
		observers = append(observers, journal.NewRecorder(store, rt.Logger))
	}
	event.SetObserver(event.Observers(observers...))

	rt.Logger.Debug("treevent runtime ready",
		slog.Bool("metrics", settings.Metrics),
		slog.Bool("tracing", settings.Tracing),
		slog.String("journal", settings.Journal.Driver),
	)
	return rt, nil
}

// DetectorOptions returns the insertion detector options matching the
// runtime settings.
func (rt *Runtime) DetectorOptions() []inserted.Option {
	return []inserted.Option{
		inserted.WithEventName(rt.Settings.Events.Inserted),
		inserted.WithLogger(rt.Logger),
		inserted.WithMetrics(rt.Metrics),
		inserted.WithTracing(rt.Settings.Tracing),
	}
}

// NewDocument returns a document using the configured event names and
// observability.
func (rt *Runtime) NewDocument() *dom.Document {
	return dom.NewDocument(
		dom.WithDetectorOptions(rt.DetectorOptions()...),
		dom.WithRemovedEventName(rt.Settings.Events.Removed),
		dom.WithAttributesEventName(rt.Settings.Events.Attributes),
	)
}

// Close uninstalls the observer and closes the journal. Objects still
// holding side-table state are reported at debug level; a growing count
// across runs points at plain objects bound without a matching Dispose.
func (rt *Runtime) Close() error {
	event.SetObserver(nil)
	rt.Logger.Debug("treevent runtime closed",
		slog.Int("tracked_objects", event.Tracked()),
	)
	if rt.Journal == nil {
		return nil
	}
	if err := rt.Journal.Close(); err != nil {
		return fmt.Errorf("close journal: %w", err)
	}
	return nil
}

func newLogger(ls config.LogSettings, level slog.Level, w io.Writer) *slog.Logger {
	if w == nil {
		w = io.Discard
	}
	opts := &slog.HandlerOptions{Level: level}
	if ls.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func openJournal(js config.JournalSettings) (journal.Store, error) {
	switch js.Driver {
	case config.JournalMemory:
		return journal.NewMemoryStore(), nil
	case config.JournalSQLite:
		store, err := journal.NewSQLiteStore(js.Path)
		if err != nil {
			return nil, fmt.Errorf("open journal %s: %w", js.Path, err)
		}
		return store, nil
	case config.JournalNone, "":
		return nil, nil
	default:
		return nil, errors.New("unknown journal driver " + js.Driver)
	}
}
