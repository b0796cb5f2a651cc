package binding

import (
	"errors"
	"sync"
	"unsafe"
)

var (
	ErrClosed   = errors.New("binding registry closed")
	ErrNotBound = errors.New("object handle not bound")
)

type entry struct {
	wrapper any
	domain  Domain
}

// store is the lock-guarded handle map. It never runs callbacks.
type store struct {
	entries map[unsafe.Pointer]entry
	mu      sync.RWMutex
	closed  bool
}

func newStore() *store {
	return &store{entries: make(map[unsafe.Pointer]entry, 64)}
}

// put binds handle and returns the entry it replaced, if any. A handle
// already bound in the same domain is left alone and reported as a conflict.
func (s *store) put(handle unsafe.Pointer, e entry) (prev entry, replaced, conflict bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return entry{}, false, false, ErrClosed
	}
	prev, replaced = s.entries[handle]
	if replaced && prev.domain == e.domain {
		return prev, false, true, nil
	}
	s.entries[handle] = e
	return prev, replaced, false, nil
}

func (s *store) get(handle unsafe.Pointer) (entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[handle]
	return e, ok
}

func (s *store) drop(handle unsafe.Pointer) (entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[handle]
	if ok {
		delete(s.entries, handle)
	}
	return e, ok
}

// dropAll empties the map and optionally closes the store.
func (s *store) dropAll(closing bool) map[unsafe.Pointer]entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if closing {
		s.closed = true
	}
	old := s.entries
	s.entries = make(map[unsafe.Pointer]entry)
	return old
}

func (s *store) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// snapshot copies the map so iteration can call back into the registry.
func (s *store) snapshot() map[unsafe.Pointer]entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[unsafe.Pointer]entry, len(s.entries))
	for h, e := range s.entries {
		out[h] = e
	}
	return out
}
