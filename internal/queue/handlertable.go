// Package queue
// Author: momentics <momentics@gmail.com>
//
// handlerTable maps (type, target) pairs to a Handler, with a wildcard
// fallback stored under (Unknown, target).
package queue

import "github.com/rexlin1010/synergy-stable-builds/api"

// typeTarget is the handler table key. api.Target is declared as any, so
// callers must only ever use comparable values (pointers, ints, strings).
type typeTarget struct {
	Type   api.Type
	Target api.Target
}

type handlerTable struct {
	handlers map[typeTarget]api.Handler
}

func newHandlerTable() *handlerTable {
	return &handlerTable{handlers: make(map[typeTarget]api.Handler)}
}

// adopt installs handler at (t, target), overwriting and returning whatever
// was there before (nil if nothing was).
func (h *handlerTable) adopt(t api.Type, target api.Target, handler api.Handler) api.Handler {
	key := typeTarget{t, target}
	old := h.handlers[key]
	h.handlers[key] = handler
	return old
}

// orphan removes and returns the handler at (t, target), or nil if absent.
func (h *handlerTable) orphan(t api.Type, target api.Target) api.Handler {
	key := typeTarget{t, target}
	handler, ok := h.handlers[key]
	if !ok {
		return nil
	}
	delete(h.handlers, key)
	return handler
}

// lookup finds the handler for (t, target), falling back to the wildcard
// handler registered under (Unknown, target).
func (h *handlerTable) lookup(t api.Type, target api.Target) api.Handler {
	if handler, ok := h.handlers[typeTarget{t, target}]; ok {
		return handler
	}
	if handler, ok := h.handlers[typeTarget{api.Unknown, target}]; ok {
		return handler
	}
	return nil
}
