package interrupt_test

import (
	"os"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/rexlin1010/synergy-stable-builds/internal/interrupt"
)

func TestInstallInvokesOnSignal(t *testing.T) {
	if os.Getenv("CI_NO_SIGNALS") != "" {
		t.Skip("signal delivery disabled in this environment")
	}

	var called atomic.Bool
	h := interrupt.Install(func() { called.Store(true) })
	defer h.Uninstall()

	proc, err := os.FindProcess(os.Getpid())
	if err != nil {
		t.Fatal(err)
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if called.Load() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("interrupt handler was not invoked within the deadline")
}

func TestUninstallIsIdempotent(t *testing.T) {
	h := interrupt.Install(func() {})
	h.Uninstall()
	h.Uninstall() // must not panic
}
