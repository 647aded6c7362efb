// Package queue
// Author: momentics <momentics@gmail.com>
//
// timerHeap is the timer priority queue, ordered by remaining time
// ascending so the earliest-due timer is always at the root.
package queue

import (
	"container/heap"
	"time"

	"github.com/rexlin1010/synergy-stable-builds/api"
)

// timerRecord is a single scheduled timer: its backend handle, its original
// period, how much time remains before it next fires, which target it
// delivers to, and whether it fires once or repeats.
type timerRecord struct {
	handle    *api.TimerHandle
	timeout   time.Duration
	remaining time.Duration
	target    api.Target
	oneShot   bool
}

// timerHeap implements container/heap.Interface, ordered by remaining time.
type timerHeap []*timerRecord

func (h timerHeap) Len() int           { return len(h) }
func (h timerHeap) Less(i, j int) bool { return h[i].remaining < h[j].remaining }
func (h timerHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *timerHeap) Push(x any)        { *h = append(*h, x.(*timerRecord)) }
func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	rec := old[n-1]
	*h = old[:n-1]
	return rec
}

// timerQueue bundles the heap with the set of backend handles it has
// scheduled. A handle leaves the set when removeByHandle is called for it or
// when it fires as a one-shot.
type timerQueue struct {
	heap  timerHeap
	known map[*api.TimerHandle]struct{}
}

func newTimerQueue() *timerQueue {
	return &timerQueue{known: make(map[*api.TimerHandle]struct{})}
}

// insert adds a new timer record and remembers its handle.
func (q *timerQueue) insert(rec *timerRecord) {
	q.known[rec.handle] = struct{}{}
	heap.Push(&q.heap, rec)
}

// reinsert pushes a record already known (reused after firing) back onto
// the heap without re-adding it to the known set.
func (q *timerQueue) reinsert(rec *timerRecord) {
	heap.Push(&q.heap, rec)
}

// len reports how many timers are currently scheduled.
func (q *timerQueue) len() int { return len(q.heap) }

// peekMin returns the earliest-due record without removing it. Callers must
// check len() > 0 first.
func (q *timerQueue) peekMin() *timerRecord { return q.heap[0] }

// popMin removes and returns the earliest-due record.
func (q *timerQueue) popMin() *timerRecord {
	return heap.Pop(&q.heap).(*timerRecord)
}

// subtractAll decrements every record's remaining time by delta. Because
// the subtraction is uniform, relative order is preserved and the heap
// invariant needs no repair.
func (q *timerQueue) subtractAll(delta time.Duration) {
	for _, rec := range q.heap {
		rec.remaining -= delta
	}
}

// removeByHandle scans for and removes the record matching h, forgetting
// its handle too. Returns false if h was never known or has already fired
// as a one-shot.
func (q *timerQueue) removeByHandle(h *api.TimerHandle) bool {
	delete(q.known, h)
	for i, rec := range q.heap {
		if rec.handle == h {
			heap.Remove(&q.heap, i)
			return true
		}
	}
	return false
}

// nextTimeout returns -1 if there are no timers, 0 if the earliest one is
// already due, or the time remaining until it fires.
func (q *timerQueue) nextTimeout() time.Duration {
	if q.len() == 0 {
		return -1
	}
	if top := q.peekMin().remaining; top <= 0 {
		return 0
	} else {
		return top
	}
}
