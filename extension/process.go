// Package extension is the host-facing entry point. It owns the one
// process-lifetime state object the host calls into: the function table,
// its generation, the lifecycle manager, the object binding registry and
// the Variant bridge.
//
// A c-shared library exports its GDExtension entry symbol and forwards to
// Initialize:
//
//	//export gdext_main
//	func gdext_main(getProc, library, record unsafe.Pointer) C.GDExtensionBool {
//	    if extension.Initialize(getProc, library, record, onInit, onDeinit) {
//	        return 1
//	    }
//	    return 0
//	}
//
// Calling Initialize again with a different get_proc_address (a host-side
// reload) loads a fresh table, bumps the generation and the binding domain
// and rebuilds the Variant bridge. Bindings from the previous domain become
// stale.
package extension

import (
	"sync"
	"unsafe"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/godot-bridge/binding"
	"github.com/wippyai/godot-bridge/config"
	"github.com/wippyai/godot-bridge/errors"
	"github.com/wippyai/godot-bridge/ffi"
	"github.com/wippyai/godot-bridge/lifecycle"
	"github.com/wippyai/godot-bridge/packed"
	"github.com/wippyai/godot-bridge/variant"
)

// Process is the state shared by every library loaded into this process.
type Process struct {
	mu         sync.RWMutex
	table      *ffi.Table
	generation uint64
	config     config.Config
	logger     *zap.Logger
	variants   *variant.Bridge

	// Settings shared by every library. The first library to initialize
	// owns them; others may only fill in what is still unset.
	owner        lifecycle.Library
	owned        bool
	sceneInit    func(*Process)
	variantHooks variant.Hooks
	bindingHooks binding.Hooks

	lifecycle *lifecycle.Manager
	bindings  *binding.Registry
}

var (
	currentMu sync.Mutex
	current   *Process
)

// Current returns the process state, creating it on first use. Before the
// first Initialize the table and Variant bridge are nil.
func Current() *Process {
	currentMu.Lock()
	defer currentMu.Unlock()
	if current == nil {
		current = newProcess()
	}
	return current
}

func newProcess() *Process {
	p := &Process{
		config: config.Default(),
		logger: zap.NewNop(),
	}
	p.lifecycle = lifecycle.NewManager(lifecycle.OnSceneInit(p.onScene))
	p.bindings = binding.NewRegistry(binding.WithNative(objectHost{p}))
	return p
}

// objectHost routes object destruction to whichever table is current.
type objectHost struct{ p *Process }

func (h objectHost) ObjectDestroy(obj unsafe.Pointer) {
	if t := h.p.Table(); t != nil {
		t.ObjectDestroy(obj)
	}
}

func (p *Process) onScene() {
	p.mu.RLock()
	fn := p.sceneInit
	p.mu.RUnlock()
	if fn != nil {
		fn(p)
	}
}

// Table returns the loaded function table.
func (p *Process) Table() *ffi.Table {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.table
}

// Generation returns the generation of the loaded table, 0 before Initialize.
func (p *Process) Generation() uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.generation
}

// Domain returns the current binding domain.
func (p *Process) Domain() binding.Domain {
	return p.bindings.Domain()
}

// Variants returns the Variant bridge over the current table.
func (p *Process) Variants() *variant.Bridge {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.variants
}

// Bindings returns the object binding registry.
func (p *Process) Bindings() *binding.Registry {
	return p.bindings
}

// Lifecycle returns the level dispatcher.
func (p *Process) Lifecycle() *lifecycle.Manager {
	return p.lifecycle
}

// Config returns the active configuration.
func (p *Process) Config() config.Config {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.config
}

// Logger returns the process logger.
func (p *Process) Logger() *zap.Logger {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.logger
}

// Initialize is the body of a library's GDExtension entry symbol. It
// returns false when the host's record cannot be filled or when the
// library asks for process-wide settings another library already owns. Configuration
// failures (bad config, an incomplete function table, a native layout the
// Go mirrors cannot describe) terminate the process through the logger.
func Initialize(getProc, library, record unsafe.Pointer, onInit, onDeinit lifecycle.Callback, opts ...Option) bool {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return Current().initialize(getProc, library, record, onInit, onDeinit, o)
}

func (p *Process) initialize(getProc, library, record unsafe.Pointer, onInit, onDeinit lifecycle.Callback, o options) bool {
	lib := lifecycle.Library(uintptr(library))
	t := p.Table()
	reloading := t == nil || t.GetProcAddress() != getProc

	cfg, cfgErr := p.resolveConfig(o)
	log := p.Logger()
	if o.logger != nil || reloading || p.ownedBy(lib) {
		log = p.installLogger(cfg, o)
	}
	if cfgErr != nil {
		log.Fatal("invalid configuration", zap.Error(cfgErr))
		return false
	}

	minimum, err := cfg.MinimumLevel()
	if o.minimum != nil {
		minimum, err = *o.minimum, nil
	}
	if err != nil {
		log.Fatal("invalid minimum level", zap.Error(err))
		return false
	}

	if err := ffi.CheckLayout(uintptr(cfg.Variant.Size)); err != nil {
		log.Fatal("native layout mismatch", zap.Error(err))
		return false
	}
	if err := p.claim(lib, cfg, o, reloading); err != nil {
		log.Error("library settings conflict with the running process",
			zap.Uintptr("library", uintptr(library)), zap.Error(err))
		return false
	}
	if reloading {
		p.reload(getProc, library, cfg, log)
	}
	p.applyHooks()

	if err := p.lifecycle.Register(lib, onInit, onDeinit, minimum); err != nil {
		log.Error("library registration failed", zap.Error(err))
		return false
	}
	ffi.HandleLevels(p.dispatch)

	if err := ffi.FillInitialization(record, int32(minimum), library); err != nil {
		log.Error("cannot fill initialization record", zap.Error(err))
		p.lifecycle.Unregister(lib)
		return false
	}

	log.Info("extension initialized",
		zap.Uintptr("library", uintptr(library)),
		zap.Stringer("minimum_level", minimum),
		zap.Uint64("generation", p.Generation()),
		zap.Uint8("domain", uint8(p.Domain())))
	return true
}

// ownedBy reports whether lib may replace the process-wide settings.
func (p *Process) ownedBy(lib lifecycle.Library) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return !p.owned || p.owner == lib
}

func variantHooksSet(h variant.Hooks) bool {
	return h.ShouldDeinit != nil || h.Inited != nil || h.Deinited != nil
}

func bindingHooksSet(h binding.Hooks) bool {
	return h.ShouldDeinit != nil || h.ObjectInited != nil || h.ObjectDeinited != nil
}

func conflict(what string) error {
	return errors.New(errors.PhaseConfig, errors.KindConflict).
		Path(what).
		Detail("already set by another library").
		Build()
}

// claim records the process-wide settings requested by lib. The owner and
// a reload replace them; any other library may only fill unset ones. The
// Variant settings of a running bridge never change without a reload.
// Nothing is modified when an error is returned.
func (p *Process) claim(lib lifecycle.Library, cfg config.Config, o options, reloading bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !reloading && p.variants != nil && cfg.Variant != p.config.Variant {
		return errors.New(errors.PhaseConfig, errors.KindConflict).
			Path("variant").
			Detail("running bridge uses %+v, library asked for %+v", p.config.Variant, cfg.Variant).
			Build()
	}

	if reloading || !p.owned || p.owner == lib {
		p.owner, p.owned = lib, true
		p.config = cfg
		if o.sceneInit != nil {
			p.sceneInit = o.sceneInit
		}
		if variantHooksSet(o.variantHooks) {
			p.variantHooks = o.variantHooks
		}
		if bindingHooksSet(o.bindingHooks) {
			p.bindingHooks = o.bindingHooks
		}
		return nil
	}

	switch {
	case o.sceneInit != nil && p.sceneInit != nil:
		return conflict("scene_init")
	case variantHooksSet(o.variantHooks) && variantHooksSet(p.variantHooks):
		return conflict("variant_hooks")
	case bindingHooksSet(o.bindingHooks) && bindingHooksSet(p.bindingHooks):
		return conflict("binding_hooks")
	}
	if o.sceneInit != nil {
		p.sceneInit = o.sceneInit
	}
	if variantHooksSet(o.variantHooks) {
		p.variantHooks = o.variantHooks
	}
	if bindingHooksSet(o.bindingHooks) {
		p.bindingHooks = o.bindingHooks
	}
	return nil
}

func (p *Process) applyHooks() {
	p.mu.RLock()
	vh, bh, bridge := p.variantHooks, p.bindingHooks, p.variants
	p.mu.RUnlock()
	if bridge != nil {
		bridge.SetHooks(vh)
	}
	p.bindings.SetHooks(bh)
}

func (p *Process) resolveConfig(o options) (config.Config, error) {
	if o.config != nil {
		return *o.config, o.config.Validate()
	}
	return config.Load()
}

// installLogger builds the process logger and hands it to every package.
func (p *Process) installLogger(cfg config.Config, o options) *zap.Logger {
	log := o.logger
	if log == nil {
		var err error
		log, err = buildLogger(cfg, p.Table)
		if err != nil {
			log = zap.NewNop()
		}
	}

	p.mu.Lock()
	p.logger = log
	p.mu.Unlock()

	SetLogger(log)
	ffi.SetLogger(log.Named("ffi"))
	variant.SetLogger(log.Named("variant"))
	packed.SetLogger(log.Named("packed"))
	binding.SetLogger(log.Named("binding"))
	lifecycle.SetLogger(log.Named("lifecycle"))
	return log
}

func buildLogger(cfg config.Config, table func() *ffi.Table) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Log.Development {
		zc = zap.NewDevelopmentConfig()
	}
	if lvl, err := cfg.ZapLevel(); err == nil {
		zc.Level = zap.NewAtomicLevelAt(lvl)
	}

	var opts []zap.Option
	if cfg.Log.HostSink {
		opts = append(opts, zap.WrapCore(func(c zapcore.Core) zapcore.Core {
			return zapcore.NewTee(c, newHostCore(table))
		}))
	}
	return zc.Build(opts...)
}

// reload swaps in a table resolved through getProc. The Variant bridge is
// rebuilt over it. Slots still live in the old bridge and names cached by
// the old table are abandoned, their storage belongs to the previous
// runtime.
func (p *Process) reload(getProc, library unsafe.Pointer, cfg config.Config, log *zap.Logger) {
	t := ffi.MustLoad(getProc, library)

	bridge := variant.NewBridge(t,
		variant.WithSize(uintptr(cfg.Variant.Size)),
		variant.WithDestroyDisabled(cfg.Variant.DisableDestroy))

	p.mu.Lock()
	old, oldBridge := p.table, p.variants
	p.table = t
	p.generation = t.Generation()
	p.variants = bridge
	p.mu.Unlock()

	if old != nil {
		p.bindings.Advance()
		if oldBridge != nil && oldBridge.Live() > 0 {
			log.Warn("abandoning variants from previous generation", zap.Int("live", oldBridge.Live()))
		}
		if n := old.Abandon(); n > 0 {
			log.Debug("abandoning cached names from previous generation",
				zap.Uint64("generation", old.Generation()),
				zap.Int("names", n))
		}
	}
	log.Debug("function table ready",
		zap.Uint64("generation", t.Generation()),
		zap.Uint8("domain", uint8(p.Domain())))
}

func (p *Process) dispatch(library unsafe.Pointer, level int32, initialize bool) {
	lib := lifecycle.Library(uintptr(library))
	var err error
	if initialize {
		err = p.lifecycle.DispatchInit(lib, int64(level))
	} else {
		err = p.lifecycle.DispatchDeinit(lib, int64(level))
	}
	if err != nil {
		Logger().Debug("level event rejected", zap.Error(err))
	}
}
