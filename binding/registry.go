package binding

import (
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/godot-bridge/errors"
)

// Registry maps native object handles to wrappers.
type Registry struct {
	store     *store
	native    Native
	hooks     Hooks
	observers []Observer
	obsMu     sync.RWMutex // guards hooks and observers
	domain    atomic.Uint32
}

// Option configures a Registry.
type Option func(*Registry)

// WithNative sets the host used by Release to destroy objects.
func WithNative(n Native) Option {
	return func(r *Registry) { r.native = n }
}

// WithHooks installs lifecycle hooks.
func WithHooks(h Hooks) Option {
	return func(r *Registry) { r.hooks = h }
}

// WithDomain sets the initial current domain.
func WithDomain(d Domain) Option {
	return func(r *Registry) { r.domain.Store(uint32(d)) }
}

// NewRegistry creates an empty registry in domain 0.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{store: newStore()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetHooks replaces the lifecycle hooks.
func (r *Registry) SetHooks(h Hooks) {
	r.obsMu.Lock()
	r.hooks = h
	r.obsMu.Unlock()
}

func (r *Registry) currentHooks() Hooks {
	r.obsMu.RLock()
	defer r.obsMu.RUnlock()
	return r.hooks
}

// Domain returns the current domain.
func (r *Registry) Domain() Domain {
	return Domain(r.domain.Load())
}

// SetDomain changes the current domain. Existing bindings keep theirs and
// become stale for Lookup if it differs.
func (r *Registry) SetDomain(d Domain) {
	r.domain.Store(uint32(d))
}

// Advance moves to the next domain and returns it. When the counter wraps
// every binding is cleared first, so none left from an earlier cycle can
// match a reused value.
func (r *Registry) Advance() Domain {
	next := r.Domain() + 1
	if next == 0 {
		n := r.Len()
		r.Clear()
		Logger().Warn("domain counter wrapped, cleared bindings", zap.Int("cleared", n))
	}
	r.SetDomain(next)
	return next
}

func handlePath(handle unsafe.Pointer) []string {
	return []string{fmt.Sprintf("%p", handle)}
}

// Bind associates handle with wrapper under domain. Binding a handle that
// is already bound in the same domain fails; a binding left over from
// another domain is replaced, since the host has reused the address.
func (r *Registry) Bind(handle unsafe.Pointer, wrapper any, domain Domain) error {
	if handle == nil {
		return errors.NilPointer(errors.PhaseBinding, []string{"bind"}, "Object")
	}
	if wrapper == nil {
		return errors.InvalidInput(errors.PhaseBinding, "nil wrapper")
	}
	prev, replaced, conflict, err := r.store.put(handle, entry{wrapper: wrapper, domain: domain})
	if err != nil {
		return err
	}
	if conflict {
		return errors.New(errors.PhaseBinding, errors.KindAlreadyBound).
			Path(handlePath(handle)...).
			Detail("already bound in domain %d", domain).
			Build()
	}
	if replaced {
		Logger().Warn("replacing stale binding",
			zap.Uintptr("handle", uintptr(handle)),
			zap.Uint8("bound_domain", uint8(prev.domain)),
			zap.Uint8("domain", uint8(domain)))
		r.ended(handle, prev, EventUnbound)
	}

	if h := r.currentHooks(); h.ObjectInited != nil {
		h.ObjectInited(handle)
	}
	r.notify(Event{Type: EventBound, Handle: handle, Wrapper: wrapper, Domain: domain})
	return nil
}

// Lookup returns the wrapper bound to handle in the current domain.
func (r *Registry) Lookup(handle unsafe.Pointer) (any, error) {
	e, ok := r.store.get(handle)
	if !ok {
		return nil, ErrNotBound
	}
	if cur := r.Domain(); e.domain != cur {
		return nil, errors.StaleBinding(uintptr(handle), uint8(e.domain), uint8(cur))
	}
	return e.wrapper, nil
}

// DomainOf returns the domain handle was bound in.
func (r *Registry) DomainOf(handle unsafe.Pointer) (Domain, bool) {
	e, ok := r.store.get(handle)
	return e.domain, ok
}

// Unbind forgets handle without touching the native object.
func (r *Registry) Unbind(handle unsafe.Pointer) (any, bool) {
	e, ok := r.store.drop(handle)
	if !ok {
		return nil, false
	}
	r.ended(handle, e, EventUnbound)
	return e.wrapper, true
}

// Release unbinds handle and destroys the native object unless
// Hooks.ShouldDeinit refuses. Stale bindings are released too: the object
// is being torn down either way.
func (r *Registry) Release(handle unsafe.Pointer) error {
	e, ok := r.store.drop(handle)
	if !ok {
		return ErrNotBound
	}
	r.release(handle, e)
	return nil
}

func (r *Registry) release(handle unsafe.Pointer, e entry) {
	if d, ok := e.wrapper.(Dropper); ok {
		d.Drop()
	}
	h := r.currentHooks()
	if r.native != nil && (h.ShouldDeinit == nil || h.ShouldDeinit(handle)) {
		r.native.ObjectDestroy(handle)
	} else {
		Logger().Debug("native destroy skipped", zap.Uintptr("handle", uintptr(handle)))
	}
	r.ended(handle, e, EventReleased)
}

func (r *Registry) ended(handle unsafe.Pointer, e entry, kind EventType) {
	if h := r.currentHooks(); h.ObjectDeinited != nil {
		h.ObjectDeinited(handle)
	}
	r.notify(Event{Type: kind, Handle: handle, Wrapper: e.wrapper, Domain: e.domain})
}

// Len returns the number of bindings, stale ones included.
func (r *Registry) Len() int {
	return r.store.len()
}

// Each calls fn for every binding until fn returns false. fn may modify
// the registry.
func (r *Registry) Each(fn func(handle unsafe.Pointer, wrapper any, domain Domain) bool) {
	for h, e := range r.store.snapshot() {
		if !fn(h, e.wrapper, e.domain) {
			return
		}
	}
}

// Clear unbinds every handle without destroying native objects.
func (r *Registry) Clear() {
	for h, e := range r.store.dropAll(false) {
		r.ended(h, e, EventUnbound)
	}
}

// Close releases every binding and rejects later Binds.
func (r *Registry) Close() error {
	for h, e := range r.store.dropAll(true) {
		r.release(h, e)
	}
	return nil
}

// Subscribe adds an observer.
func (r *Registry) Subscribe(o Observer) {
	r.obsMu.Lock()
	defer r.obsMu.Unlock()
	r.observers = append(r.observers, o)
}

// Unsubscribe removes an observer.
func (r *Registry) Unsubscribe(o Observer) {
	r.obsMu.Lock()
	defer r.obsMu.Unlock()
	for i, obs := range r.observers {
		if obs == o {
			r.observers = append(r.observers[:i], r.observers[i+1:]...)
			return
		}
	}
}

func (r *Registry) notify(e Event) {
	r.obsMu.RLock()
	defer r.obsMu.RUnlock()
	for _, o := range r.observers {
		o.OnBindingEvent(e)
	}
}

// As looks up handle and asserts the wrapper's type.
func As[T any](r *Registry, handle unsafe.Pointer) (T, error) {
	var zero T
	w, err := r.Lookup(handle)
	if err != nil {
		return zero, err
	}
	v, ok := w.(T)
	if !ok {
		return zero, errors.TypeMismatch(errors.PhaseBinding, handlePath(handle), fmt.Sprintf("%T", zero), fmt.Sprintf("%T", w))
	}
	return v, nil
}
