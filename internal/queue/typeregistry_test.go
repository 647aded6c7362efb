package queue

import (
	"testing"

	"github.com/rexlin1010/synergy-stable-builds/api"
)

func TestTypeRegistryRegisterAssignsSequentialTypes(t *testing.T) {
	r := newTypeRegistry()
	t1 := r.register("one")
	t2 := r.register("two")
	if t1 != api.Last || t2 != api.Last+1 {
		t.Fatalf("got types %v, %v, want %v, %v", t1, t2, api.Last, api.Last+1)
	}
	if r.name(t1) != "one" || r.name(t2) != "two" {
		t.Fatalf("names = %q, %q", r.name(t1), r.name(t2))
	}
}

func TestTypeRegistryFixedNames(t *testing.T) {
	r := newTypeRegistry()
	cases := map[api.Type]string{
		api.Unknown: "nil",
		api.Quit:    "quit",
		api.System:  "system",
		api.Timer:   "timer",
	}
	for typ, want := range cases {
		if got := r.name(typ); got != want {
			t.Errorf("name(%v) = %q, want %q", typ, got, want)
		}
	}
}

func TestTypeRegistryUnknownAllocatedTypeName(t *testing.T) {
	r := newTypeRegistry()
	if got := r.name(api.Last + 50); got != "<unknown>" {
		t.Errorf("name(unregistered) = %q, want <unknown>", got)
	}
}

func TestTypeRegistryRegisterOnce(t *testing.T) {
	r := newTypeRegistry()
	var slot api.Type
	first := r.registerOnce(&slot, "lazy")
	second := r.registerOnce(&slot, "lazy-again")
	if first != second {
		t.Fatalf("registerOnce not idempotent: %v != %v", first, second)
	}
	if r.name(first) != "lazy" {
		t.Errorf("name = %q, want lazy (from first registration)", r.name(first))
	}
}
