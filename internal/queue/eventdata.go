// Package queue
// Author: momentics <momentics@gmail.com>
//
// eventTable is the id-indexed storage for payloads of enqueued user
// events, with id reuse via a free-id stack (a slab allocator over a map).
package queue

import "github.com/rexlin1010/synergy-stable-builds/api"

type eventTable struct {
	events  map[uint32]api.Event
	freeIDs []uint32
}

func newEventTable() *eventTable {
	return &eventTable{events: make(map[uint32]api.Event)}
}

// save assigns the event an id — reusing one off the free stack if
// available, otherwise the next integer equal to the table's current
// size — and stores it.
func (t *eventTable) save(e api.Event) uint32 {
	var id uint32
	if n := len(t.freeIDs); n > 0 {
		id = t.freeIDs[n-1]
		t.freeIDs = t.freeIDs[:n-1]
	} else {
		id = uint32(len(t.events))
	}
	t.events[id] = e
	return id
}

// remove extracts the event stored at id, pushing id onto the free stack.
// Looking up an absent id returns the zero Event, not an error.
func (t *eventTable) remove(id uint32) api.Event {
	e, ok := t.events[id]
	if !ok {
		return api.Event{}
	}
	delete(t.events, id)
	t.freeIDs = append(t.freeIDs, id)
	return e
}

// clear discards every stored event, invoking deleter on each payload
// first, and empties the free stack too — used by AdoptBuffer, since ids
// are only meaningful relative to the buffer they were submitted to.
func (t *eventTable) clear(deleter func(*api.Event)) {
	for id, e := range t.events {
		if deleter != nil {
			deleter(&e)
		}
		delete(t.events, id)
	}
	t.freeIDs = nil
}

// size reports how many ids are currently occupied.
func (t *eventTable) size() int { return len(t.events) }
