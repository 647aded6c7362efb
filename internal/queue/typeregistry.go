// Package queue
// Author: momentics <momentics@gmail.com>
//
// typeRegistry allocates event types dynamically starting at api.Last and
// remembers the name each one was registered with.
package queue

import "github.com/rexlin1010/synergy-stable-builds/api"

type typeRegistry struct {
	names map[api.Type]string
	next  api.Type
}

func newTypeRegistry() *typeRegistry {
	return &typeRegistry{names: make(map[api.Type]string), next: api.Last}
}

// register allocates the next integer, records name against it, and
// returns it.
func (r *typeRegistry) register(name string) api.Type {
	t := r.next
	r.next++
	r.names[t] = name
	return t
}

// registerOnce allocates a new id only if *slot is still api.Unknown;
// otherwise it returns the existing value unchanged. Idempotent across any
// number of calls once a slot has been assigned.
func (r *typeRegistry) registerOnce(slot *api.Type, name string) api.Type {
	if *slot == api.Unknown {
		*slot = r.register(name)
	}
	return *slot
}

// name resolves a type to its registered name. The four reserved types
// have fixed names; an allocated type nobody registered returns
// "<unknown>" — this can only happen for a Type value fabricated by the
// caller rather than returned by register/registerOnce.
func (r *typeRegistry) name(t api.Type) string {
	switch t {
	case api.Unknown:
		return "nil"
	case api.Quit:
		return "quit"
	case api.System:
		return "system"
	case api.Timer:
		return "timer"
	}
	if n, ok := r.names[t]; ok {
		return n
	}
	return "<unknown>"
}
