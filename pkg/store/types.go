package store

import (
	"log/slog"
	"time"

	"github.com/stefanpenner/focusone/pkg/goal"
)

// Key is the backend key holding the goal collection.
const Key = "focusone_goals_v1"

// EventKind describes why subscribers are being notified.
type EventKind int

const (
	// EventChanged follows a mutation made through the store.
	EventChanged EventKind = iota
	// EventReloaded follows a change picked up from the backend by Watch.
	EventReloaded
)

func (k EventKind) String() string {
	switch k {
	case EventChanged:
		return "changed"
	case EventReloaded:
		return "reloaded"
	}
	return "unknown"
}

// Event is delivered to subscribers after the collection changes.
type Event struct {
	Kind EventKind
	// PersistErr is the error from the write that accompanied the change,
	// if any. The in-memory state is authoritative either way.
	PersistErr error
}

// Options configures a GoalStore. The zero value is usable.
type Options struct {
	Logger *slog.Logger
	// Today supplies the current day for sanitizing records.
	Today func() goal.Date
	// Debounce is how long Watch waits after the last filesystem event.
	Debounce time.Duration
}

const defaultDebounce = 150 * time.Millisecond

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Today == nil {
		o.Today = goal.Today
	}
	if o.Debounce <= 0 {
		o.Debounce = defaultDebounce
	}
	return o
}
