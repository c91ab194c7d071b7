// Package journal records emitter activity for later inspection.
//
// A Recorder installed with event.SetObserver appends one Entry per dispatch
// pass and per relay teardown to a Store. MemoryStore keeps entries for the
// life of the process; SQLiteStore persists them to a file.
package journal

import (
	"errors"
	"time"
)

// Kind classifies an entry.
type Kind string

const (
	// KindDispatch records a dispatch pass on an object.
	KindDispatch Kind = "dispatch"

	// KindRelayStopped records handlers removed by StopListening.
	KindRelayStopped Kind = "relay_stopped"
)

// Entry is one journaled occurrence.
type Entry struct {
	// Seq is assigned by the store on Append, starting at 1.
	Seq int64

	Kind Kind

	// CID is the identity token of the receiver (dispatch) or the
	// subscriber (relay teardown).
	CID string

	// Event is the dispatched event type. Empty for relay teardown.
	Event string

	// Count is the number of handlers run or removed.
	Count int

	Timestamp time.Time
}

// Filter selects entries. Zero fields match everything.
type Filter struct {
	Kind  Kind
	CID   string
	Event string

	// Limit caps the number of entries returned when positive.
	Limit int
}

func (f Filter) match(e Entry) bool {
	return (f.Kind == "" || e.Kind == f.Kind) &&
		(f.CID == "" || e.CID == f.CID) &&
		(f.Event == "" || e.Event == f.Event)
}

// Store persists entries.
// Implementations must be safe for concurrent use.
type Store interface {
	// Append stores e and returns its assigned sequence number.
	Append(e Entry) (int64, error)

	// List returns matching entries ordered by sequence.
	// Returns an empty slice (not error) when nothing matches.
	List(f Filter) ([]Entry, error)

	// Count returns the number of stored entries.
	Count() (int, error)

	// Clear removes every entry. Sequence numbers keep increasing.
	Clear() error

	// Close releases any resources (connections, files).
	Close() error
}

// Sentinel errors for journal operations.
var (
	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("journal store closed")
)
