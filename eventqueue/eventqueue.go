// Package eventqueue is the single import path external callers use for
// the event queue core — the one entry point aggregating everything
// underneath internal/.
package eventqueue

import (
	"log/slog"

	"github.com/rexlin1010/synergy-stable-builds/api"
	"github.com/rexlin1010/synergy-stable-builds/internal/queue"
)

// EventQueue is the process-wide event multiplexer. See internal/queue for
// the implementation; this package only re-exports it.
type EventQueue = queue.EventQueue

// Re-exported type aliases so callers need only import this package and
// api, not internal/queue.
type (
	Type        = api.Type
	Target      = api.Target
	Event       = api.Event
	TimerEvent  = api.TimerEvent
	TimerHandle = api.TimerHandle
	Handler     = api.Handler
	HandlerFunc = api.HandlerFunc
	Buffer      = api.Buffer
	Config      = api.Config
)

// Re-exported reserved type constants.
const (
	Unknown = api.Unknown
	Quit    = api.Quit
	System  = api.System
	Timer   = api.Timer
	Last    = api.Last
)

// New constructs an EventQueue and registers it as the process-wide
// singleton, installing the default in-memory buffer and (unless cfg
// disables it) a SIGINT/SIGTERM handler that posts Quit. A nil cfg uses
// DefaultConfig().
func New(cfg *Config) *EventQueue {
	return queue.New(cfg)
}

// DefaultConfig returns the configuration New uses when given nil.
func DefaultConfig() *Config {
	return api.DefaultConfig()
}

// Instance returns the current process-wide EventQueue, or nil if none has
// been constructed or it has since been closed.
func Instance() *EventQueue {
	return queue.Instance()
}

// NewEvent constructs an Event with no payload deletion hook.
func NewEvent(t Type, target Target) Event {
	return api.NewEvent(t, target)
}

// NewDataEvent constructs an Event carrying data and a deletion hook run if
// the event is discarded before reaching a handler.
func NewDataEvent(t Type, target Target, data any, deleter api.DeleteFunc) Event {
	return api.NewDataEvent(t, target, data, deleter)
}

// SetDefaultLogger replaces the process-wide slog default. An EventQueue
// takes slog.Default() as its logger when it is constructed (or when
// SetLogger(nil) is called on it), so the change reaches queues built after
// this call; a queue that already exists keeps the logger it holds.
func SetDefaultLogger(l *slog.Logger) {
	slog.SetDefault(l)
}
