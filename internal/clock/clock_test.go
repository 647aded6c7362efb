package clock_test

import (
	"testing"
	"time"

	"github.com/rexlin1010/synergy-stable-builds/internal/clock"
)

func TestStopwatchElapsedGrows(t *testing.T) {
	sw := clock.NewStopwatch()
	time.Sleep(20 * time.Millisecond)
	if e := sw.Elapsed(); e < 15*time.Millisecond {
		t.Errorf("Elapsed() = %v, want >= ~20ms", e)
	}
}

func TestStopwatchResetRestarts(t *testing.T) {
	sw := clock.NewStopwatch()
	time.Sleep(20 * time.Millisecond)
	first := sw.Reset()
	if first < 15*time.Millisecond {
		t.Errorf("Reset() = %v, want >= ~20ms", first)
	}
	if e := sw.Elapsed(); e > 10*time.Millisecond {
		t.Errorf("Elapsed() right after Reset() = %v, want near 0", e)
	}
}
