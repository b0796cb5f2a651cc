package binding

import (
	stderrors "errors"
	"sync"
	"testing"
	"unsafe"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/godot-bridge/errors"
	"github.com/wippyai/godot-bridge/internal/fakenative"
)

type testObserver struct {
	events []Event
}

func (o *testObserver) OnBindingEvent(e Event) {
	o.events = append(o.events, e)
}

type dropWrapper struct {
	dropped int
}

func (w *dropWrapper) Drop() { w.dropped++ }

// objects returns n distinct stand-in object addresses.
func objects(n int) []unsafe.Pointer {
	backing := make([]uint64, n)
	out := make([]unsafe.Pointer, n)
	for i := range backing {
		out[i] = unsafe.Pointer(&backing[i])
	}
	return out
}

var stale = &errors.Error{Phase: errors.PhaseBinding, Kind: errors.KindStaleBinding}

func TestRegistry_Basic(t *testing.T) {
	r := NewRegistry(WithDomain(1))
	obj := objects(1)[0]

	if err := r.Bind(obj, "node", 1); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	w, err := r.Lookup(obj)
	if err != nil || w != "node" {
		t.Fatalf("Lookup = %v, %v", w, err)
	}
	if d, ok := r.DomainOf(obj); !ok || d != 1 {
		t.Fatalf("DomainOf = %d, %v", d, ok)
	}
	if r.Len() != 1 {
		t.Fatalf("Len = %d", r.Len())
	}

	w, ok := r.Unbind(obj)
	if !ok || w != "node" {
		t.Fatalf("Unbind = %v, %v", w, ok)
	}
	if _, err := r.Lookup(obj); !stderrors.Is(err, ErrNotBound) {
		t.Fatalf("Lookup after Unbind = %v, want ErrNotBound", err)
	}
	if _, ok := r.Unbind(obj); ok {
		t.Fatal("second Unbind should fail")
	}
	if _, ok := r.DomainOf(obj); ok {
		t.Fatal("DomainOf after Unbind should fail")
	}
}

func TestRegistry_BindRejects(t *testing.T) {
	r := NewRegistry()
	obj := objects(1)[0]

	if err := r.Bind(nil, "x", 0); !stderrors.Is(err, &errors.Error{Phase: errors.PhaseBinding, Kind: errors.KindNilPointer}) {
		t.Errorf("Bind(nil) = %v", err)
	}
	if err := r.Bind(obj, nil, 0); !stderrors.Is(err, &errors.Error{Phase: errors.PhaseBinding, Kind: errors.KindInvalidInput}) {
		t.Errorf("Bind(nil wrapper) = %v", err)
	}
	if err := r.Bind(obj, "a", 0); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if err := r.Bind(obj, "b", 0); !stderrors.Is(err, &errors.Error{Phase: errors.PhaseBinding, Kind: errors.KindAlreadyBound}) {
		t.Errorf("rebind in same domain = %v, want already_bound", err)
	}
	if w, _ := r.Lookup(obj); w != "a" {
		t.Errorf("failed rebind replaced wrapper with %v", w)
	}
}

func TestRegistry_StaleDomain(t *testing.T) {
	r := NewRegistry(WithDomain(1))
	obj := objects(1)[0]
	r.Bind(obj, "old", 1)

	r.SetDomain(2)
	w, err := r.Lookup(obj)
	if !stderrors.Is(err, stale) {
		t.Fatalf("Lookup across domains = %v, %v; want stale_binding", w, err)
	}
	if w != nil {
		t.Fatalf("stale Lookup returned wrapper %v", w)
	}
	var be *errors.Error
	if !stderrors.As(err, &be) || be.Value != uintptr(obj) {
		t.Errorf("stale error does not carry the handle: %#v", err)
	}

	// The host reused the address for a new object in the new domain.
	if err := r.Bind(obj, "new", 2); err != nil {
		t.Fatalf("Bind over stale binding: %v", err)
	}
	if w, err := r.Lookup(obj); err != nil || w != "new" {
		t.Fatalf("Lookup after rebind = %v, %v", w, err)
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
}

func TestRegistry_Hooks(t *testing.T) {
	var inited, deinited []unsafe.Pointer
	host := fakenative.New()
	veto := map[unsafe.Pointer]bool{}
	r := NewRegistry(
		WithNative(host),
		WithHooks(Hooks{
			ShouldDeinit:   func(h unsafe.Pointer) bool { return !veto[h] },
			ObjectInited:   func(h unsafe.Pointer) { inited = append(inited, h) },
			ObjectDeinited: func(h unsafe.Pointer) { deinited = append(deinited, h) },
		}),
	)
	objs := objects(4)
	for _, o := range objs {
		if err := r.Bind(o, "w", 0); err != nil {
			t.Fatalf("Bind: %v", err)
		}
	}
	if len(inited) != 4 || len(deinited) != 0 {
		t.Fatalf("after Bind: inited=%d deinited=%d", len(inited), len(deinited))
	}

	r.Unbind(objs[0])
	r.Unbind(objs[0])
	if err := r.Release(objs[1]); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if err := r.Release(objs[1]); !stderrors.Is(err, ErrNotBound) {
		t.Errorf("second Release = %v, want ErrNotBound", err)
	}
	veto[objs[2]] = true
	r.Release(objs[2])

	if len(deinited) != 3 {
		t.Fatalf("deinited = %d, want 3", len(deinited))
	}
	destroyed := host.DestroyedObjects()
	if len(destroyed) != 1 || destroyed[0] != objs[1] {
		t.Errorf("destroyed = %v, want only %p", destroyed, objs[1])
	}

	r.Close()
	if len(deinited) != 4 {
		t.Errorf("deinited after Close = %d, want 4", len(deinited))
	}
	if len(host.DestroyedObjects()) != 2 {
		t.Errorf("Close did not release remaining object")
	}
	if err := r.Bind(objs[0], "late", 0); !stderrors.Is(err, ErrClosed) {
		t.Errorf("Bind after Close = %v, want ErrClosed", err)
	}
}

func TestRegistry_ReleaseDrops(t *testing.T) {
	r := NewRegistry()
	obj := objects(1)[0]
	w := &dropWrapper{}
	r.Bind(obj, w, 0)
	if err := r.Release(obj); err != nil {
		t.Fatalf("Release without native: %v", err)
	}
	if w.dropped != 1 {
		t.Errorf("dropped = %d, want 1", w.dropped)
	}

	// Unbind never drops.
	w2 := &dropWrapper{}
	r.Bind(obj, w2, 0)
	r.Unbind(obj)
	if w2.dropped != 0 {
		t.Errorf("Unbind dropped the wrapper")
	}
}

func TestRegistry_Observer(t *testing.T) {
	r := NewRegistry()
	obs := &testObserver{}
	r.Subscribe(obs)
	objs := objects(2)

	r.Bind(objs[0], "a", 0)
	r.Unbind(objs[0])
	r.Bind(objs[1], "b", 0)
	r.SetDomain(1)
	r.Bind(objs[1], "c", 1)
	r.Release(objs[1])

	want := []EventType{EventBound, EventUnbound, EventBound, EventUnbound, EventBound, EventReleased}
	if len(obs.events) != len(want) {
		t.Fatalf("got %d events, want %d", len(obs.events), len(want))
	}
	for i, e := range obs.events {
		if e.Type != want[i] {
			t.Errorf("event %d = %s, want %s", i, e.Type, want[i])
		}
	}
	if e := obs.events[3]; e.Wrapper != "b" || e.Domain != 0 {
		t.Errorf("replacement event = %+v", e)
	}

	r.Unsubscribe(obs)
	r.Bind(objs[0], "d", 1)
	if len(obs.events) != len(want) {
		t.Error("observer notified after Unsubscribe")
	}
}

func TestRegistry_EachAndClear(t *testing.T) {
	deinited := 0
	r := NewRegistry(WithHooks(Hooks{ObjectDeinited: func(unsafe.Pointer) { deinited++ }}))
	objs := objects(5)
	for i, o := range objs {
		r.Bind(o, i, Domain(i%2))
	}

	seen := 0
	r.Each(func(h unsafe.Pointer, w any, d Domain) bool {
		if Domain(w.(int)%2) != d {
			t.Errorf("wrapper %v has domain %d", w, d)
		}
		seen++
		return true
	})
	if seen != 5 {
		t.Errorf("Each visited %d, want 5", seen)
	}

	seen = 0
	r.Each(func(unsafe.Pointer, any, Domain) bool {
		seen++
		return false
	})
	if seen != 1 {
		t.Errorf("Each did not stop early: %d", seen)
	}

	// Each runs on a snapshot, so fn may unbind.
	r.Each(func(h unsafe.Pointer, _ any, d Domain) bool {
		if d == 1 {
			r.Unbind(h)
		}
		return true
	})
	if r.Len() != 3 {
		t.Errorf("Len after unbinding odd = %d", r.Len())
	}

	r.Clear()
	if r.Len() != 0 || deinited != 5 {
		t.Errorf("after Clear: Len=%d deinited=%d", r.Len(), deinited)
	}
	if err := r.Bind(objs[0], "again", 0); err != nil {
		t.Errorf("Bind after Clear: %v", err)
	}
}

func TestAs(t *testing.T) {
	r := NewRegistry()
	objs := objects(2)
	w := &dropWrapper{}
	r.Bind(objs[0], w, 0)

	got, err := As[*dropWrapper](r, objs[0])
	if err != nil || got != w {
		t.Fatalf("As = %v, %v", got, err)
	}
	if _, err := As[string](r, objs[0]); !stderrors.Is(err, &errors.Error{Phase: errors.PhaseBinding, Kind: errors.KindTypeMismatch}) {
		t.Errorf("As[string] = %v, want type_mismatch", err)
	}
	if _, err := As[*dropWrapper](r, objs[1]); !stderrors.Is(err, ErrNotBound) {
		t.Errorf("As on unbound = %v", err)
	}
}

func TestRegistry_HookMayReenter(t *testing.T) {
	var r *Registry
	objs := objects(2)
	r = NewRegistry(WithHooks(Hooks{
		ObjectDeinited: func(h unsafe.Pointer) {
			if h == objs[0] {
				r.Bind(objs[1], "child", 0)
			}
		},
	}))
	r.Bind(objs[0], "parent", 0)
	r.Unbind(objs[0])
	if w, err := r.Lookup(objs[1]); err != nil || w != "child" {
		t.Fatalf("Bind from hook: %v, %v", w, err)
	}
}

func TestRegistry_Concurrent(t *testing.T) {
	r := NewRegistry()
	objs := objects(64)
	var wg sync.WaitGroup
	for _, o := range objs {
		wg.Add(1)
		go func(o unsafe.Pointer) {
			defer wg.Done()
			if err := r.Bind(o, "w", 0); err != nil {
				t.Errorf("Bind: %v", err)
				return
			}
			if _, err := r.Lookup(o); err != nil {
				t.Errorf("Lookup: %v", err)
			}
			r.Unbind(o)
		}(o)
	}
	wg.Wait()
	if r.Len() != 0 {
		t.Errorf("Len = %d after concurrent bind/unbind", r.Len())
	}
}

func TestRegistry_ReplaceLogsHandle(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(zap.NewNop()) })

	r := NewRegistry(WithDomain(1))
	obj := objects(1)[0]
	r.Bind(obj, "old", 1)
	r.SetDomain(2)
	if err := r.Bind(obj, "new", 2); err != nil {
		t.Fatalf("Bind over stale binding: %v", err)
	}

	entries := logs.FilterMessage("replacing stale binding").All()
	if len(entries) != 1 {
		t.Fatalf("got %d replace warnings, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if got, ok := fields["handle"].(uintptr); !ok || got != uintptr(obj) {
		t.Errorf("handle field = %#v, want %#x", fields["handle"], uintptr(obj))
	}
	if fields["bound_domain"] != uint8(1) || fields["domain"] != uint8(2) {
		t.Errorf("domain fields = %v", fields)
	}
}

func TestRegistry_AdvanceWraps(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(zap.NewNop()) })

	r := NewRegistry(WithDomain(254))
	objs := objects(2)
	w := &dropWrapper{}
	r.Bind(objs[0], w, 254)

	if d := r.Advance(); d != 255 {
		t.Fatalf("Advance = %d, want 255", d)
	}
	if _, err := r.Lookup(objs[0]); !stderrors.Is(err, stale) {
		t.Fatalf("Lookup after Advance = %v, want stale_binding", err)
	}
	r.Bind(objs[1], "current", 255)

	if d := r.Advance(); d != 0 {
		t.Fatalf("Advance past 255 = %d, want 0", d)
	}
	if r.Len() != 0 {
		t.Errorf("Len after wrap = %d, want 0", r.Len())
	}
	for _, obj := range objs {
		if _, err := r.Lookup(obj); !stderrors.Is(err, ErrNotBound) {
			t.Errorf("Lookup after wrap = %v, want ErrNotBound", err)
		}
	}
	if w.dropped != 0 {
		t.Error("wrap dropped a wrapper")
	}
	entries := logs.FilterMessage("domain counter wrapped, cleared bindings").All()
	if len(entries) != 1 || entries[0].ContextMap()["cleared"] != int64(2) {
		t.Errorf("wrap log = %v", entries)
	}

	// The cleared addresses bind freshly in the new cycle.
	if err := r.Bind(objs[0], "again", 0); err != nil {
		t.Errorf("Bind after wrap: %v", err)
	}
}
