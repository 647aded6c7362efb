// Package queue
// Author: momentics <momentics@gmail.com>
//
// EventQueue is the façade: the process-wide singleton that owns the type
// registry, the event-data table, the handler table, the timer queue, and
// the currently-adopted backend buffer, and drives the dequeue/dispatch
// loop described by the event queue core.
package queue

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rexlin1010/synergy-stable-builds/api"
	"github.com/rexlin1010/synergy-stable-builds/internal/buffer"
	"github.com/rexlin1010/synergy-stable-builds/internal/clock"
	"github.com/rexlin1010/synergy-stable-builds/internal/interrupt"
)

// singleton holds the process-wide instance the interrupt handler resolves
// through.
var singleton atomic.Pointer[EventQueue]

// Instance returns the current process-wide EventQueue, or nil if none has
// been constructed (or it has since been closed).
func Instance() *EventQueue {
	return singleton.Load()
}

// EventQueue is the public façade type. The zero value is not usable; build
// one with New.
type EventQueue struct {
	mu sync.Mutex

	buffer   api.Buffer
	events   *eventTable
	handlers *handlerTable
	types    *typeRegistry
	timers   *timerQueue

	sweepClock *clock.Stopwatch
	timerEvent api.TimerEvent

	cfg             *api.Config
	interruptHandle *interrupt.Handle
	logger          *slog.Logger

	closed bool
}

// New constructs an EventQueue, registers it as the process-wide singleton,
// installs the default in-memory buffer, and — unless cfg disables it —
// installs an interrupt handler that posts Quit on SIGINT/SIGTERM. A nil
// cfg uses api.DefaultConfig().
func New(cfg *api.Config) *EventQueue {
	if cfg == nil {
		cfg = api.DefaultConfig()
	}
	q := &EventQueue{
		events:     newEventTable(),
		handlers:   newHandlerTable(),
		types:      newTypeRegistry(),
		timers:     newTimerQueue(),
		sweepClock: clock.NewStopwatch(),
		cfg:        cfg,
		logger:     slog.Default(),
	}
	q.buffer = buffer.NewSimpleBuffer(cfg.DefaultBufferCapacityHint)

	singleton.Store(q)

	if cfg.InstallInterruptHandler {
		q.interruptHandle = interrupt.Install(func() {
			q.AddEvent(api.NewEvent(api.Quit, nil))
		})
	}
	return q
}

// SetLogger overrides the *slog.Logger used for debug tracing (type
// registration, buffer swaps, timer fires, and event drops). Passing nil
// restores slog.Default().
func (q *EventQueue) SetLogger(l *slog.Logger) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if l == nil {
		l = slog.Default()
	}
	q.logger = l
}

// Close reverses New: uninstalls the interrupt handler and unregisters the
// singleton, in the opposite order construction performed them. Closing an
// already-closed EventQueue is a no-op.
func (q *EventQueue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.mu.Unlock()

	q.interruptHandle.Uninstall()
	singleton.CompareAndSwap(q, nil)
}

// RegisterType allocates a new event type and records its name.
func (q *EventQueue) RegisterType(name string) api.Type {
	q.mu.Lock()
	defer q.mu.Unlock()
	t := q.types.register(name)
	q.logger.Debug("registered event type", "name", name, "type", int32(t))
	return t
}

// RegisterTypeOnce allocates a new type into *slot only if *slot is still
// api.Unknown; repeated calls with the same slot are idempotent.
func (q *EventQueue) RegisterTypeOnce(slot *api.Type, name string) api.Type {
	q.mu.Lock()
	defer q.mu.Unlock()
	before := *slot
	t := q.types.registerOnce(slot, name)
	if before == api.Unknown {
		q.logger.Debug("registered event type", "name", name, "type", int32(t))
	}
	return t
}

// GetTypeName resolves a type to the name it was registered with, or one
// of the four fixed reserved names, or "<unknown>".
func (q *EventQueue) GetTypeName(t api.Type) string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.types.name(t)
}

// AdoptBuffer installs buf as the backend buffer, discarding the current
// one and flushing every saved user event — ids are only meaningful
// relative to the buffer they were submitted to. A nil buf installs a
// fresh SimpleBuffer.
func (q *EventQueue) AdoptBuffer(buf api.Buffer) {
	q.mu.Lock()
	defer q.mu.Unlock()

	flushed := q.events.size()
	q.events.clear(func(e *api.Event) { e.DeleteData() })

	if buf == nil {
		buf = buffer.NewSimpleBuffer(q.cfg.DefaultBufferCapacityHint)
	}
	q.buffer = buf
	q.logger.Debug("adopted buffer", "flushed", flushed)
}

// AddEvent enqueues e for later delivery. Events of a reserved type
// (Unknown, System, Timer) are silently dropped — by contract the caller
// retains ownership of their payload in that case, so no deletion hook
// runs. If the backend buffer rejects the submission (backpressure), the
// event is dropped and its payload released.
func (q *EventQueue) AddEvent(e api.Event) {
	if e.Type.IsReserved() {
		return
	}

	q.mu.Lock()
	id := q.events.save(e)
	ok := q.buffer.AddEvent(id)
	if !ok {
		ev := q.events.remove(id)
		q.mu.Unlock()
		ev.DeleteData()
		q.logger.Debug("event dropped",
			"err", api.NewError(api.ErrCodeResourceExhausted, api.ErrResourceExhausted.Error()).
				WithContext("type", int32(e.Type)).WithContext("id", id))
		return
	}
	q.mu.Unlock()
}

// GetEvent blocks until an event is available or timeout elapses, filling
// *out and returning true on success. timeout < 0 waits indefinitely. If
// the buffer reports a spurious wake (VerdictNone) while time remains,
// GetEvent returns false at once rather than waiting out the timeout.
func (q *EventQueue) GetEvent(out *api.Event, timeout time.Duration) bool {
	entry := clock.NewStopwatch()

	for {
		for q.buffer.IsEmpty() {
			var ev api.Event
			q.mu.Lock()
			expired := q.hasTimerExpiredLocked(&ev)
			q.mu.Unlock()
			if expired {
				*out = ev
				return true
			}

			timeLeft := timeout - entry.Elapsed()
			if timeout >= 0 && timeLeft <= 0 {
				return false
			}

			q.mu.Lock()
			timerTimeout := q.timers.nextTimeout()
			q.mu.Unlock()
			if timeout < 0 || (timerTimeout >= 0 && timerTimeout < timeLeft) {
				timeLeft = timerTimeout
			}

			q.buffer.WaitForEvent(timeLeft)
		}

		verdict, filled, id := q.buffer.GetEvent()
		switch verdict {
		case api.VerdictSystem:
			*out = filled
			return true

		case api.VerdictUser:
			q.mu.Lock()
			*out = q.events.remove(id)
			q.mu.Unlock()
			return true

		default:
			// VerdictNone, and any verdict we don't recognize, is treated
			// as a spurious wake. Retrying here doesn't skip the timeout:
			// the outer loop re-checks timeLeft against entry.Elapsed() on
			// its very next pass, so a retry costs at most one extra loop
			// before returning false on its own.
			if timeout < 0 || timeout <= entry.Elapsed() {
				continue
			}
			return false
		}
	}
}

// DispatchEvent looks up the handler for (e.Type, e.Target) — falling back
// to the wildcard handler for e.Target if no exact match exists — and
// invokes it. Returns false if no handler, exact or wildcard, was found.
func (q *EventQueue) DispatchEvent(e api.Event) bool {
	q.mu.Lock()
	handler := q.handlers.lookup(e.Type, e.Target)
	q.mu.Unlock()

	if handler == nil {
		q.logger.Debug("dispatch failed",
			"err", api.NewError(api.ErrCodeNotFound, api.ErrNotFound.Error()).
				WithContext("type", int32(e.Type)).WithContext("target", e.Target))
		return false
	}
	handler.Handle(e)
	return true
}

// IsEmpty reports whether the buffer has nothing waiting and no timer is
// currently due.
func (q *EventQueue) IsEmpty() bool {
	q.mu.Lock()
	timerTimeout := q.timers.nextTimeout()
	q.mu.Unlock()
	return q.buffer.IsEmpty() && timerTimeout != 0
}

// NewTimer schedules a repeating timer that fires every duration. If
// target is nil, the backend timer handle itself is used as the target
// identity. Panics if duration <= 0.
func (q *EventQueue) NewTimer(duration time.Duration, target api.Target) *api.TimerHandle {
	return q.newTimer(duration, target, false)
}

// NewOneShotTimer schedules a timer that fires exactly once after
// duration. Panics if duration <= 0.
func (q *EventQueue) NewOneShotTimer(duration time.Duration, target api.Target) *api.TimerHandle {
	return q.newTimer(duration, target, true)
}

func (q *EventQueue) newTimer(duration time.Duration, target api.Target, oneShot bool) *api.TimerHandle {
	if duration <= 0 {
		panic(api.NewError(api.ErrCodeInvalidArgument, "timer duration must be > 0").
			WithContext("duration", duration))
	}

	q.mu.Lock()
	buf := q.buffer
	q.mu.Unlock()

	handle := buf.NewTimer(duration, oneShot)
	if target == nil {
		target = handle
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	// The initial remaining time is the requested duration plus whatever
	// is already on the sweep clock, because that much will be
	// subtracted the next time hasTimerExpiredLocked runs — preserving
	// "first fires `duration` after creation" regardless of when the next
	// sweep happens to land.
	q.timers.insert(&timerRecord{
		handle:    handle,
		timeout:   duration,
		remaining: duration + q.sweepClock.Elapsed(),
		target:    target,
		oneShot:   oneShot,
	})
	return handle
}

// DeleteTimer cancels a timer previously returned by NewTimer or
// NewOneShotTimer. Deleting an unknown or already-fired one-shot handle
// leaves the timer queue unchanged; the handle is still passed to the
// buffer's DeleteTimer.
func (q *EventQueue) DeleteTimer(h *api.TimerHandle) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.timers.removeByHandle(h)
	q.buffer.DeleteTimer(h)
}

// AdoptHandler installs handler as the wildcard handler for target,
// serving any event type that has no more specific handler. Overwriting an
// existing wildcard handler simply drops the old reference.
func (q *EventQueue) AdoptHandler(target api.Target, handler api.Handler) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers.adopt(api.Unknown, target, handler)
}

// AdoptTypedHandler installs handler for the exact (t, target) pair. t must
// not be api.Unknown — use AdoptHandler for the wildcard slot.
func (q *EventQueue) AdoptTypedHandler(t api.Type, target api.Target, handler api.Handler) {
	if t == api.Unknown {
		panic(api.NewError(api.ErrCodeInvalidArgument, "handler type must not be Unknown").
			WithContext("target", target))
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers.adopt(t, target, handler)
}

// OrphanHandler removes and returns the wildcard handler for target, or
// nil if none was installed. Ownership transfers to the caller.
func (q *EventQueue) OrphanHandler(target api.Target) api.Handler {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.handlers.orphan(api.Unknown, target)
}

// OrphanTypedHandler removes and returns the handler at (t, target). t must
// not be api.Unknown.
func (q *EventQueue) OrphanTypedHandler(t api.Type, target api.Target) api.Handler {
	if t == api.Unknown {
		panic(api.NewError(api.ErrCodeInvalidArgument, "handler type must not be Unknown").
			WithContext("target", target))
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.handlers.orphan(t, target)
}

// RemoveHandler discards the wildcard handler for target.
func (q *EventQueue) RemoveHandler(target api.Target) {
	q.OrphanHandler(target)
}

// RemoveTypedHandler discards the handler at (t, target).
func (q *EventQueue) RemoveTypedHandler(t api.Type, target api.Target) {
	q.OrphanTypedHandler(t, target)
}

// hasTimerExpiredLocked implements the countdown sweep: subtract elapsed
// time from every outstanding timer (uniform subtraction preserves heap
// order, so no re-heapify is needed) and, if the earliest one is now due,
// pop it, compute overshoot, reinsert it unless it's one-shot, and fill
// *out. Callers must hold q.mu.
func (q *EventQueue) hasTimerExpiredLocked(out *api.Event) bool {
	if q.timers.len() == 0 {
		return false
	}

	delta := q.sweepClock.Reset()
	q.timers.subtractAll(delta)

	if q.timers.peekMin().remaining > 0 {
		return false
	}

	rec := q.timers.popMin()

	var count uint32
	if rec.remaining <= 0 {
		count = uint32((rec.timeout - rec.remaining) / rec.timeout)
	}
	q.timerEvent = api.TimerEvent{Timer: rec.handle, Count: count}

	rec.remaining = rec.timeout
	if !rec.oneShot {
		q.timers.reinsert(rec)
	} else {
		delete(q.timers.known, rec.handle)
	}

	q.logger.Debug("timer fired", "target", rec.target, "count", count, "oneShot", rec.oneShot)

	*out = api.NewDataEvent(api.Timer, rec.target, &q.timerEvent, nil)
	return true
}
