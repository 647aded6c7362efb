// Package api
// Author: momentics <momentics@gmail.com>
//
// Event types shared by producers, the event queue façade, and handlers.

package api

// Type identifies the kind of an Event. The reserved range {Unknown..Last}
// is fixed; everything from Last upward is allocated dynamically by
// RegisterType/RegisterTypeOnce.
type Type int32

const (
	// Unknown is both "no type" and the wildcard slot in the handler table.
	// It must never appear on an event passed to AddEvent.
	Unknown Type = iota
	// Quit may only be enqueued by the interrupt handler.
	Quit
	// System is filled in directly by a backend buffer and never saved
	// into the event-data table.
	System
	// Timer marks events synthesized by the timer expiry sweep.
	Timer
	// Last is the first type available for dynamic allocation.
	Last
)

// IsReserved reports whether t is one of the types that must never be
// injected through AddEvent.
func (t Type) IsReserved() bool {
	return t == Unknown || t == System || t == Timer
}

// Target is an opaque recipient identity. Handlers are keyed by (Type,
// Target); any comparable value works, including pointers.
type Target any

// DeleteFunc releases whatever memory or resources a payload holds. It runs
// when a payload is discarded without ever reaching a handler.
type DeleteFunc func(payload any)

// Event is the tagged union dispatched through the queue: a type, a target,
// and an optional opaque payload.
type Event struct {
	Type   Type
	Target Target
	Data   any
	Flags  uint32

	deleter DeleteFunc
}

// NewEvent constructs an Event with no payload deletion hook.
func NewEvent(t Type, target Target) Event {
	return Event{Type: t, Target: target}
}

// NewDataEvent constructs an Event carrying data and a deletion hook that
// runs if the event is discarded before reaching a handler.
func NewDataEvent(t Type, target Target, data any, deleter DeleteFunc) Event {
	return Event{Type: t, Target: target, Data: data, deleter: deleter}
}

// DeleteData invokes the event's deletion hook, if any, and clears it so a
// second call is a no-op.
func (e *Event) DeleteData() {
	if e.deleter != nil {
		e.deleter(e.Data)
		e.deleter = nil
	}
}

// TimerEvent is the payload attached to synthesized Timer events.
type TimerEvent struct {
	// Timer identifies which timer fired.
	Timer *TimerHandle
	// Count is the number of timer periods that had come due when the sweep
	// fired this timer, this fire included: 1 when the consumer kept up,
	// more when it fell behind and several fires were folded into this one
	// event (overshoot accounting).
	Count uint32
}
