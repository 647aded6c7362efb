// Package interrupt
// Author: momentics <momentics@gmail.com>
//
// Install registers a callback invoked on SIGINT/SIGTERM. The event queue
// only ever consumes this registration; it never touches os/signal
// directly, so a platform that wants different termination handling can
// swap this package out without the queue noticing.
package interrupt

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Handle represents one installed handler; Uninstall reverses Install.
type Handle struct {
	stopCh chan struct{}
	once   sync.Once
}

// Install starts a goroutine that waits for SIGINT or SIGTERM and calls fn
// exactly once if one arrives before Uninstall is called.
func Install(fn func()) *Handle {
	h := &Handle{stopCh: make(chan struct{})}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigCh)
		select {
		case <-sigCh:
			fn()
		case <-h.stopCh:
		}
	}()

	return h
}

// Uninstall stops the handler. Safe to call more than once or on a nil
// Handle.
func (h *Handle) Uninstall() {
	if h == nil {
		return
	}
	h.once.Do(func() {
		close(h.stopCh)
	})
}
