package lifecycle

import (
	stderrors "errors"
	"fmt"
	"slices"
	"testing"

	"github.com/wippyai/godot-bridge/errors"
)

type recorder struct {
	events []string
}

func (r *recorder) callbacks(name string) (Callback, Callback) {
	return func(l Level) { r.events = append(r.events, fmt.Sprintf("%s+%s", name, l)) },
		func(l Level) { r.events = append(r.events, fmt.Sprintf("%s-%s", name, l)) }
}

var ordering = &errors.Error{Phase: errors.PhaseLifecycle, Kind: errors.KindOrdering}

func initAll(t *testing.T, m *Manager, lib Library) {
	t.Helper()
	for _, l := range Levels() {
		if err := m.DispatchInit(lib, int64(l)); err != nil {
			t.Fatalf("DispatchInit(%s): %v", l, err)
		}
	}
}

func deinitAll(t *testing.T, m *Manager, lib Library) {
	t.Helper()
	levels := Levels()
	slices.Reverse(levels)
	for _, l := range levels {
		if err := m.DispatchDeinit(lib, int64(l)); err != nil {
			t.Fatalf("DispatchDeinit(%s): %v", l, err)
		}
	}
}

func TestFullCycle(t *testing.T) {
	rec := &recorder{}
	m := NewManager()
	onInit, onDeinit := rec.callbacks("a")
	if err := m.Register(1, onInit, onDeinit, LevelCore); err != nil {
		t.Fatalf("Register: %v", err)
	}

	initAll(t, m, 1)
	p, _ := m.Progress(1)
	if top, ok := p.Highest(); !ok || top != LevelEditor {
		t.Errorf("Highest = %s, %v", top, ok)
	}
	deinitAll(t, m, 1)

	want := []string{
		"a+core", "a+servers", "a+scene", "a+editor",
		"a-editor", "a-scene", "a-servers", "a-core",
	}
	if !slices.Equal(rec.events, want) {
		t.Errorf("events = %v\nwant %v", rec.events, want)
	}
	if m.Registered(1) {
		t.Error("registration survived the terminal level")
	}
	// Events after removal are ignored.
	if err := m.DispatchDeinit(1, int64(LevelCore)); err != nil {
		t.Errorf("event after removal: %v", err)
	}
}

func TestMinimumLevel(t *testing.T) {
	rec := &recorder{}
	m := NewManager()
	onInit, onDeinit := rec.callbacks("s")
	m.Register(7, onInit, onDeinit, LevelScene)

	initAll(t, m, 7)
	if !m.Registered(7) {
		t.Fatal("lost registration")
	}
	if err := m.DispatchDeinit(7, int64(LevelEditor)); err != nil {
		t.Fatal(err)
	}
	if err := m.DispatchDeinit(7, int64(LevelScene)); err != nil {
		t.Fatal(err)
	}
	// Scene is the lowest level this library was initialized at.
	if m.Registered(7) {
		t.Error("registration survived its lowest level")
	}
	want := []string{"s+scene", "s+editor", "s-editor", "s-scene"}
	if !slices.Equal(rec.events, want) {
		t.Errorf("events = %v, want %v", rec.events, want)
	}
}

func TestOrdering(t *testing.T) {
	rec := &recorder{}
	m := NewManager()
	onInit, onDeinit := rec.callbacks("a")
	m.Register(1, onInit, onDeinit, LevelCore)

	if err := m.DispatchInit(1, int64(LevelServers)); !stderrors.Is(err, ordering) {
		t.Errorf("init skipping core = %v, want ordering", err)
	}
	m.DispatchInit(1, int64(LevelCore))
	if err := m.DispatchInit(1, int64(LevelCore)); !stderrors.Is(err, ordering) {
		t.Errorf("repeated init = %v, want ordering", err)
	}
	if err := m.DispatchInit(1, int64(LevelScene)); !stderrors.Is(err, ordering) {
		t.Errorf("init skipping servers = %v, want ordering", err)
	}
	m.DispatchInit(1, int64(LevelServers))

	if err := m.DispatchDeinit(1, int64(LevelCore)); !stderrors.Is(err, ordering) {
		t.Errorf("deinit below highest = %v, want ordering", err)
	}
	if err := m.DispatchDeinit(1, int64(LevelEditor)); !stderrors.Is(err, ordering) {
		t.Errorf("deinit of uninitialized level = %v, want ordering", err)
	}
	m.DispatchDeinit(1, int64(LevelServers))
	if err := m.DispatchDeinit(1, int64(LevelServers)); !stderrors.Is(err, ordering) {
		t.Errorf("repeated deinit = %v, want ordering", err)
	}
	if !m.Registered(1) {
		t.Error("registration removed before core")
	}

	want := []string{"a+core", "a+servers", "a-servers"}
	if !slices.Equal(rec.events, want) {
		t.Errorf("events = %v, want %v", rec.events, want)
	}
}

func TestInvalidLevel(t *testing.T) {
	rec := &recorder{}
	scene := 0
	m := NewManager(OnSceneInit(func() { scene++ }))
	onInit, onDeinit := rec.callbacks("a")
	m.Register(1, onInit, onDeinit, LevelCore)

	for _, raw := range []int64{-1, 4, 99} {
		if err := m.DispatchInit(1, raw); !stderrors.Is(err, &errors.Error{Phase: errors.PhaseLifecycle, Kind: errors.KindInvalidLevel}) {
			t.Errorf("DispatchInit(%d) = %v", raw, err)
		}
		if err := m.DispatchDeinit(1, raw); err == nil {
			t.Errorf("DispatchDeinit(%d) expected error", raw)
		}
	}
	if len(rec.events) != 0 || scene != 0 {
		t.Errorf("invalid levels reached callbacks: %v, scene=%d", rec.events, scene)
	}
	if err := m.Register(2, nil, nil, Level(5)); err == nil {
		t.Error("Register with invalid minimum expected error")
	}
}

func TestUnregisteredIgnored(t *testing.T) {
	scene := 0
	m := NewManager(OnSceneInit(func() { scene++ }))
	for _, l := range Levels() {
		if err := m.DispatchInit(42, int64(l)); err != nil {
			t.Errorf("DispatchInit(%s) for unknown library: %v", l, err)
		}
		if err := m.DispatchDeinit(42, int64(l)); err != nil {
			t.Errorf("DispatchDeinit(%s) for unknown library: %v", l, err)
		}
	}
	if scene != 1 {
		t.Errorf("scene hook ran %d times, want 1", scene)
	}
}

func TestSceneHookAfterOrdering(t *testing.T) {
	rec := &recorder{}
	var order []string
	m := NewManager(OnSceneInit(func() { order = append(order, "hook") }))
	onInit, onDeinit := rec.callbacks("a")
	m.Register(1, func(l Level) {
		order = append(order, "init "+l.String())
		onInit(l)
	}, onDeinit, LevelCore)

	// Scene before servers is out of order.
	m.DispatchInit(1, int64(LevelCore))
	if err := m.DispatchInit(1, int64(LevelScene)); !stderrors.Is(err, ordering) {
		t.Fatalf("early scene = %v, want ordering", err)
	}
	m.DispatchInit(1, int64(LevelServers))
	m.DispatchInit(1, int64(LevelScene))
	// Repeated scene is rejected as well.
	if err := m.DispatchInit(1, int64(LevelScene)); err == nil {
		t.Fatal("repeated scene accepted")
	}

	want := []string{"init " + LevelCore.String(), "init " + LevelServers.String(), "hook", "init " + LevelScene.String()}
	if !slices.Equal(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestLibrariesIndependent(t *testing.T) {
	rec := &recorder{}
	m := NewManager()
	ai, ad := rec.callbacks("a")
	bi, bd := rec.callbacks("b")
	m.Register(1, ai, ad, LevelCore)
	m.Register(2, bi, bd, LevelCore)
	if m.Len() != 2 {
		t.Fatalf("Len = %d", m.Len())
	}

	m.DispatchInit(1, int64(LevelCore))
	m.DispatchInit(2, int64(LevelCore))
	m.DispatchInit(1, int64(LevelServers))
	m.DispatchDeinit(1, int64(LevelServers))
	m.DispatchDeinit(1, int64(LevelCore))

	if m.Registered(1) || !m.Registered(2) {
		t.Fatalf("registered: a=%v b=%v", m.Registered(1), m.Registered(2))
	}
	p, _ := m.Progress(2)
	if !p.Initialized(LevelCore) || p.Initialized(LevelServers) {
		t.Errorf("library b progress disturbed: %+v", p)
	}
	want := []string{"a+core", "b+core", "a+servers", "a-servers", "a-core"}
	if !slices.Equal(rec.events, want) {
		t.Errorf("events = %v, want %v", rec.events, want)
	}
}

func TestReRegisterResets(t *testing.T) {
	rec := &recorder{}
	m := NewManager()
	onInit, onDeinit := rec.callbacks("old")
	m.Register(1, onInit, onDeinit, LevelCore)
	m.DispatchInit(1, int64(LevelCore))
	m.DispatchInit(1, int64(LevelServers))

	onInit, onDeinit = rec.callbacks("new")
	m.Register(1, onInit, onDeinit, LevelCore)
	p, ok := m.Progress(1)
	if !ok {
		t.Fatal("Progress missing")
	}
	if _, ok := p.Highest(); ok {
		t.Errorf("progress not reset: %+v", p)
	}
	initAll(t, m, 1)
	if got := rec.events[len(rec.events)-1]; got != "new+editor" {
		t.Errorf("last event %q", got)
	}
	if !m.Unregister(1) || m.Unregister(1) {
		t.Error("Unregister result")
	}
}

func TestCallbackMayRegister(t *testing.T) {
	m := NewManager()
	var child []Level
	m.Register(1, func(l Level) {
		if l == LevelCore {
			m.Register(2, func(l Level) { child = append(child, l) }, nil, LevelCore)
		}
	}, nil, LevelCore)

	m.DispatchInit(1, int64(LevelCore))
	if !m.Registered(2) {
		t.Fatal("registration from callback lost")
	}
	m.DispatchInit(2, int64(LevelCore))
	if !slices.Equal(child, []Level{LevelCore}) {
		t.Errorf("child events = %v", child)
	}
}

func TestProgressLowest(t *testing.T) {
	p := Progress{mask: 1<<LevelServers | 1<<LevelEditor}
	if l, ok := p.Lowest(); !ok || l != LevelServers {
		t.Errorf("Lowest = %s, %v", l, ok)
	}
	if _, ok := (Progress{}).Lowest(); ok {
		t.Error("empty Lowest should fail")
	}
}
