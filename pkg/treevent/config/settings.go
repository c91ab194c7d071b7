package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid settings")

// Journal drivers.
const (
	JournalNone   = "none"
	JournalMemory = "memory"
	JournalSQLite = "sqlite"
)

// Settings is the typed runtime configuration.
type Settings struct {
	Events  EventNames
	Log     LogSettings
	Metrics bool
	Tracing bool
	Journal JournalSettings
}

// EventNames are the lifecycle notification names.
type EventNames struct {
	Inserted   string
	Removed    string
	Attributes string
}

// LogSettings configure the slog handler.
type LogSettings struct {
	Level  string
	Format string
}

// JournalSettings select where dispatches are recorded.
type JournalSettings struct {
	Driver string
	Path   string
}

// Default returns the settings used when nothing is configured.
func Default() Settings {
	return Settings{
		Events: EventNames{
			Inserted:   "inserted",
			Removed:    "removed",
			Attributes: "attributes",
		},
		Log: LogSettings{
			Level:  "info",
			Format: "text",
		},
		Journal: JournalSettings{
			Driver: JournalNone,
			Path:   "treevent.db",
		},
	}
}

// Decode overlays cfg on Default and validates the result.
func Decode(cfg Config) (Settings, error) {
	s := Default()

	events := cfg.Sub("events")
	s.Events.Inserted = events.String("inserted", s.Events.Inserted)
	s.Events.Removed = events.String("removed", s.Events.Removed)
	s.Events.Attributes = events.String("attributes", s.Events.Attributes)

	log := cfg.Sub("log")
	s.Log.Level = log.String("level", s.Log.Level)
	s.Log.Format = log.String("format", s.Log.Format)

	s.Metrics = cfg.Bool("metrics", s.Metrics)
	s.Tracing = cfg.Bool("tracing", s.Tracing)

	journal := cfg.Sub("journal")
	s.Journal.Driver = journal.String("driver", s.Journal.Driver)
	s.Journal.Path = journal.String("path", s.Journal.Path)

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate reports every invalid field. The returned error wraps ErrInvalid.
func (s Settings) Validate() error {
	var errs []error
	for field, name := range map[string]string{
		"events.inserted":   s.Events.Inserted,
		"events.removed":    s.Events.Removed,
		"events.attributes": s.Events.Attributes,
	} {
		if name == "" {
			errs = append(errs, fmt.Errorf("%w: %s is empty", ErrInvalid, field))
		}
	}

	if _, err := parseLevel(s.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if !slices.Contains([]string{"text", "json"}, s.Log.Format) {
		errs = append(errs, fmt.Errorf("%w: log.format %q", ErrInvalid, s.Log.Format))
	}

	switch s.Journal.Driver {
	case JournalNone, JournalMemory:
	case JournalSQLite:
		if s.Journal.Path == "" {
			errs = append(errs, fmt.Errorf("%w: journal.path is required for sqlite", ErrInvalid))
		}
	default:
		errs = append(errs, fmt.Errorf("%w: journal.driver %q", ErrInvalid, s.Journal.Driver))
	}
	return errors.Join(errs...)
}

// SlogLevel returns the configured level, or info when it is unparseable.
func (s Settings) SlogLevel() slog.Level {
	lvl, err := parseLevel(s.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func parseLevel(name string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("%w: log.level %q", ErrInvalid, name)
	}
	return lvl, nil
}
