package queue

import (
	"testing"

	"github.com/rexlin1010/synergy-stable-builds/api"
)

func TestHandlerTableLookupFallsBackToWildcard(t *testing.T) {
	ht := newHandlerTable()
	target := new(int)
	wildcard := api.HandlerFunc(func(api.Event) {})
	ht.adopt(api.Unknown, target, wildcard)

	got := ht.lookup(api.Type(100), target)
	if got == nil {
		t.Fatal("expected wildcard fallback, got nil")
	}
}

func TestHandlerTableExactBeatsWildcard(t *testing.T) {
	ht := newHandlerTable()
	target := new(int)
	var calledExact, calledWildcard bool
	ht.adopt(api.Unknown, target, api.HandlerFunc(func(api.Event) { calledWildcard = true }))
	ht.adopt(api.Type(5), target, api.HandlerFunc(func(api.Event) { calledExact = true }))

	h := ht.lookup(api.Type(5), target)
	h.Handle(api.Event{})
	if !calledExact || calledWildcard {
		t.Fatal("expected exact handler to win over wildcard")
	}
}

func TestHandlerTableAdoptOverwritesAndOrphanRemoves(t *testing.T) {
	ht := newHandlerTable()
	target := new(int)
	first := api.HandlerFunc(func(api.Event) {})
	second := api.HandlerFunc(func(api.Event) {})

	old := ht.adopt(api.Type(1), target, first)
	if old != nil {
		t.Fatal("expected nil previous handler on first adopt")
	}
	old = ht.adopt(api.Type(1), target, second)
	if old == nil {
		t.Fatal("expected first handler back from adopt overwrite")
	}

	orphaned := ht.orphan(api.Type(1), target)
	if orphaned == nil {
		t.Fatal("expected orphan to return the installed handler")
	}
	if ht.orphan(api.Type(1), target) != nil {
		t.Fatal("expected nil on second orphan of the same key")
	}
}
