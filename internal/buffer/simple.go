// Package buffer
// Author: momentics <momentics@gmail.com>
//
// SimpleBuffer is the default in-memory backend buffer installed by
// EventQueue when no platform buffer has been adopted. It holds nothing but
// a FIFO of previously-saved event ids; the façade does the real work of
// resolving an id back into an Event.
package buffer

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/eapache/queue"

	"github.com/rexlin1010/synergy-stable-builds/api"
)

// SimpleBuffer is a process-local FIFO of submitted event ids, satisfying
// api.Buffer. It never produces VerdictSystem events — it has no system
// event source of its own, only user-submitted ids.
type SimpleBuffer struct {
	mu     sync.Mutex
	ids    *queue.Queue
	signal chan struct{}

	nextTimerID uint64
}

var _ api.Buffer = (*SimpleBuffer)(nil)

// NewSimpleBuffer constructs an empty SimpleBuffer. eapache/queue has no
// sizing constructor of its own, so a positive capacityHint is applied by
// adding and immediately draining that many placeholder ids — its ring
// only ever grows by doubling on Add, never shrinks on Remove, so this
// leaves the ring pre-grown to the next power of two at or above
// capacityHint without disturbing FIFO order for anything added afterward.
func NewSimpleBuffer(capacityHint int) *SimpleBuffer {
	b := &SimpleBuffer{
		ids:    queue.New(),
		signal: make(chan struct{}, 1),
	}
	for i := 0; i < capacityHint; i++ {
		b.ids.Add(uint32(0))
	}
	for i := 0; i < capacityHint; i++ {
		b.ids.Remove()
	}
	return b
}

// IsEmpty reports whether any id is queued, without blocking.
func (b *SimpleBuffer) IsEmpty() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ids.Length() == 0
}

// WaitForEvent blocks until an id is submitted or timeout elapses.
// timeout < 0 waits indefinitely.
func (b *SimpleBuffer) WaitForEvent(timeout time.Duration) {
	if !b.IsEmpty() {
		return
	}
	if timeout < 0 {
		<-b.signal
		return
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-b.signal:
	case <-timer.C:
	}
}

// GetEvent pops the oldest submitted id, if any.
func (b *SimpleBuffer) GetEvent() (api.VerdictKind, api.Event, uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ids.Length() == 0 {
		return api.VerdictNone, api.Event{}, 0
	}
	id := b.ids.Remove().(uint32)
	return api.VerdictUser, api.Event{}, id
}

// AddEvent enqueues id and wakes one blocked WaitForEvent, if any. A
// process-local FIFO never rejects a submission.
func (b *SimpleBuffer) AddEvent(id uint32) bool {
	b.mu.Lock()
	b.ids.Add(id)
	b.mu.Unlock()

	select {
	case b.signal <- struct{}{}:
	default:
	}
	return true
}

// NewTimer hands out a unique handle; SimpleBuffer has no platform timer of
// its own to allocate, so the façade's own countdown sweep does all the
// work and this handle is only ever used as a comparable identity.
func (b *SimpleBuffer) NewTimer(duration time.Duration, oneShot bool) *api.TimerHandle {
	id := atomic.AddUint64(&b.nextTimerID, 1)
	return api.NewTimerHandle(id)
}

// DeleteTimer is a no-op: there is no backend resource to release.
func (b *SimpleBuffer) DeleteTimer(h *api.TimerHandle) {}
