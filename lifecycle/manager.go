package lifecycle

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/godot-bridge/errors"
)

// Library identifies a loaded extension library. It is the opaque handle
// the host passes back with every level event.
type Library uintptr

// Callback receives one level transition.
type Callback func(level Level)

// Progress is the per-library initialization state.
type Progress struct {
	Minimum Level
	mask    uint8
}

// Initialized reports whether l has been initialized and not yet
// deinitialized.
func (p Progress) Initialized(l Level) bool {
	return l.Valid() && p.mask&(1<<l) != 0
}

// Highest returns the highest initialized level.
func (p Progress) Highest() (Level, bool) {
	for l := LevelEditor; l >= LevelCore; l-- {
		if p.Initialized(l) {
			return l, true
		}
	}
	return 0, false
}

// Lowest returns the lowest initialized level.
func (p Progress) Lowest() (Level, bool) {
	for l := LevelCore; l < levelCount; l++ {
		if p.Initialized(l) {
			return l, true
		}
	}
	return 0, false
}

type registration struct {
	init     Callback
	deinit   Callback
	progress Progress
}

// Manager dispatches level events to registered libraries. Several
// libraries may be registered at once; each progresses independently.
type Manager struct {
	mu      sync.Mutex
	libs    map[Library]*registration
	onScene func()
}

// Option configures a Manager.
type Option func(*Manager)

// OnSceneInit sets a process-wide hook run on scene-level initialization,
// before the library's own callback. Events for libraries that are not
// registered run it too; events rejected as out of order do not.
func OnSceneInit(fn func()) Option {
	return func(m *Manager) { m.onScene = fn }
}

// NewManager creates an empty manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{libs: make(map[Library]*registration)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Register stores the callbacks for lib. Registering lib again replaces its
// callbacks and resets its progress. Nil callbacks are no-ops.
func (m *Manager) Register(lib Library, onInit, onDeinit Callback, minimum Level) error {
	if !minimum.Valid() {
		return errors.InvalidLevel(int64(minimum))
	}

	m.mu.Lock()
	_, replaced := m.libs[lib]
	m.libs[lib] = &registration{init: onInit, deinit: onDeinit, progress: Progress{Minimum: minimum}}
	m.mu.Unlock()

	if replaced {
		Logger().Warn("library re-registered, progress reset", zap.Uintptr("library", uintptr(lib)))
	} else {
		Logger().Debug("library registered", zap.Uintptr("library", uintptr(lib)), zap.Stringer("minimum", minimum))
	}
	return nil
}

// Unregister forgets lib without running any callback.
func (m *Manager) Unregister(lib Library) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.libs[lib]
	delete(m.libs, lib)
	return ok
}

// Registered reports whether lib has a live registration.
func (m *Manager) Registered(lib Library) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.libs[lib]
	return ok
}

// Len returns the number of registered libraries.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.libs)
}

// Progress returns lib's initialization state.
func (m *Manager) Progress(lib Library) (Progress, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.libs[lib]
	if !ok {
		return Progress{}, false
	}
	return r.progress, true
}

func orderingError(lib Library, level Level, format string, args ...any) error {
	return errors.New(errors.PhaseLifecycle, errors.KindOrdering).
		Path(level.String()).
		Value(uintptr(lib)).
		Detail(format, args...).
		Build()
}

// DispatchInit delivers an initialization event. Levels must arrive one at
// a time in ascending order starting at the library's minimum; invalid,
// skipped and repeated levels return an error and are dropped. Events
// for unregistered libraries and levels below the library's minimum are
// ignored.
func (m *Manager) DispatchInit(lib Library, raw int64) error {
	level, err := ParseLevel(raw)
	if err != nil {
		Logger().Error("init event dropped", zap.Uintptr("library", uintptr(lib)), zap.Error(err))
		return err
	}

	m.mu.Lock()
	r, ok := m.libs[lib]
	if !ok || level < r.progress.Minimum {
		m.mu.Unlock()
		m.scene(level)
		return nil
	}
	next := r.progress.Minimum
	if top, ok := r.progress.Highest(); ok {
		next = top + 1
	}
	if level != next {
		m.mu.Unlock()
		if r.progress.Initialized(level) {
			return m.dropped(orderingError(lib, level, "level already initialized"))
		}
		return m.dropped(orderingError(lib, level, "expected %s", next))
	}
	r.progress.mask |= 1 << level
	cb := r.init
	m.mu.Unlock()

	m.scene(level)
	Logger().Debug("initialize", zap.Uintptr("library", uintptr(lib)), zap.Stringer("level", level))
	if cb != nil {
		cb(level)
	}
	return nil
}

func (m *Manager) scene(level Level) {
	if level == LevelScene && m.onScene != nil {
		m.onScene()
	}
}

// DispatchDeinit delivers a deinitialization event. After the terminal
// level (core, or the lowest level the library was initialized at) the
// registration is removed.
func (m *Manager) DispatchDeinit(lib Library, raw int64) error {
	level, err := ParseLevel(raw)
	if err != nil {
		Logger().Error("deinit event dropped", zap.Uintptr("library", uintptr(lib)), zap.Error(err))
		return err
	}

	m.mu.Lock()
	r, ok := m.libs[lib]
	if !ok {
		m.mu.Unlock()
		return nil
	}
	if level < r.progress.Minimum {
		m.mu.Unlock()
		return nil
	}
	if !r.progress.Initialized(level) {
		m.mu.Unlock()
		return m.dropped(orderingError(lib, level, "level not initialized"))
	}
	if top, _ := r.progress.Highest(); level < top {
		m.mu.Unlock()
		return m.dropped(orderingError(lib, level, "deinitialized before %s", top))
	}
	r.progress.mask &^= 1 << level
	terminal := r.progress.mask == 0
	if terminal {
		delete(m.libs, lib)
	}
	cb := r.deinit
	m.mu.Unlock()

	Logger().Debug("deinitialize", zap.Uintptr("library", uintptr(lib)), zap.Stringer("level", level), zap.Bool("terminal", terminal))
	if cb != nil {
		cb(level)
	}
	return nil
}

func (m *Manager) dropped(err error) error {
	Logger().Warn("level event dropped", zap.Error(err))
	return err
}
