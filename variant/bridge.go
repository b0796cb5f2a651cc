package variant

import (
	"sync"
	"unsafe"

	"go.uber.org/zap"

	godotbridge "github.com/wippyai/godot-bridge"
	"github.com/wippyai/godot-bridge/errors"
)

// Slot is a handle to one native Variant.
type Slot struct {
	ptr      unsafe.Pointer
	owned    bool // storage allocated by the bridge
	borrowed bool // storage and value owned by the host
}

// Ptr returns the native address of the Variant.
func (s *Slot) Ptr() unsafe.Pointer {
	return s.ptr
}

// Borrowed reports whether the host owns this Variant.
func (s *Slot) Borrowed() bool {
	return s.borrowed
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithHooks installs transition hooks.
func WithHooks(h Hooks) Option {
	return func(b *Bridge) { b.hooks = h }
}

// WithSize overrides the Variant size allocated per slot.
func WithSize(size uintptr) Option {
	return func(b *Bridge) { b.size = size }
}

// WithDestroyDisabled skips every native destroy while keeping bookkeeping.
// It exists to diagnose host crashes in Variant teardown.
func WithDestroyDisabled(disabled bool) Option {
	return func(b *Bridge) { b.disableDestroy = disabled }
}

// Bridge constructs, converts and destroys Variants through a Native host.
type Bridge struct {
	native         Native
	size           uintptr
	disableDestroy bool

	mu       sync.Mutex
	hooks    Hooks
	live     map[unsafe.Pointer]*Slot
	reserved map[unsafe.Pointer]struct{} // ConstructAt addresses being constructed
}

// NewBridge creates a Bridge over native.
func NewBridge(native Native, opts ...Option) *Bridge {
	b := &Bridge{
		native: native,
		size:   godotbridge.VariantSize,
		live:     make(map[unsafe.Pointer]*Slot),
		reserved: make(map[unsafe.Pointer]struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SetHooks replaces the transition hooks for subsequent transitions.
func (b *Bridge) SetHooks(h Hooks) {
	b.mu.Lock()
	b.hooks = h
	b.mu.Unlock()
}

func (b *Bridge) currentHooks() Hooks {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hooks
}

func (b *Bridge) inited(ptr unsafe.Pointer) {
	if h := b.currentHooks(); h.Inited != nil {
		h.Inited(ptr)
	}
}

// Size returns the number of bytes allocated per slot.
func (b *Bridge) Size() uintptr {
	return b.size
}

// Live returns the number of constructed, not yet destroyed slots.
func (b *Bridge) Live() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.live)
}

// Borrow wraps a host-owned Variant. The bridge reads and writes it but
// never destroys it.
func (b *Bridge) Borrow(ptr unsafe.Pointer) (*Slot, error) {
	if ptr == nil {
		return nil, errors.NilPointer(errors.PhaseVariant, []string{"borrow"}, "Variant")
	}
	return &Slot{ptr: ptr, borrowed: true}, nil
}

func (b *Bridge) alloc() (*Slot, error) {
	p := b.native.MemAlloc(b.size)
	if p == nil {
		return nil, errors.AllocationFailed(errors.PhaseVariant, b.size)
	}
	return &Slot{ptr: p, owned: true}, nil
}

func (b *Bridge) release(s *Slot) {
	if s.owned {
		b.native.MemFree(s.ptr)
	}
}

// track records a slot the host has just constructed.
func (b *Bridge) track(s *Slot) {
	b.mu.Lock()
	b.live[s.ptr] = s
	b.mu.Unlock()
	b.inited(s.ptr)
}

func (b *Bridge) check(s *Slot, op string) error {
	if s == nil {
		return errors.NilPointer(errors.PhaseVariant, []string{op}, "Variant")
	}
	if s.borrowed {
		return nil
	}
	b.mu.Lock()
	_, ok := b.live[s.ptr]
	b.mu.Unlock()
	if !ok {
		return errors.New(errors.PhaseVariant, errors.KindNotConstructed).
			Path(op).
			Detail("slot at %p is not live", s.ptr).
			Build()
	}
	return nil
}

// Construct allocates a slot and constructs a Variant of kind from args.
// With no args it produces the kind's default value.
func (b *Bridge) Construct(kind godotbridge.VariantType, args ...*Slot) (*Slot, error) {
	s, err := b.alloc()
	if err != nil {
		return nil, err
	}
	if err := b.construct(s, kind, args); err != nil {
		b.release(s)
		return nil, err
	}
	return s, nil
}

// ConstructAt constructs a Variant in caller-provided storage of at least
// Size bytes. The address must not hold a live slot.
func (b *Bridge) ConstructAt(addr unsafe.Pointer, kind godotbridge.VariantType, args ...*Slot) (*Slot, error) {
	if addr == nil {
		return nil, errors.NilPointer(errors.PhaseVariant, []string{"construct_at"}, "Variant")
	}
	b.mu.Lock()
	_, exists := b.live[addr]
	_, busy := b.reserved[addr]
	if !exists && !busy {
		b.reserved[addr] = struct{}{}
	}
	b.mu.Unlock()
	if exists || busy {
		return nil, errors.New(errors.PhaseVariant, errors.KindAlreadyConstructed).
			Path("construct_at").
			Detail("slot at %p is already live", addr).
			Build()
	}
	defer func() {
		b.mu.Lock()
		delete(b.reserved, addr)
		b.mu.Unlock()
	}()

	s := &Slot{ptr: addr}
	if err := b.construct(s, kind, args); err != nil {
		return nil, err
	}
	return s, nil
}

func (b *Bridge) construct(s *Slot, kind godotbridge.VariantType, args []*Slot) error {
	if !kind.Valid() {
		return errors.InvalidInput(errors.PhaseVariant, "variant type "+kind.String()+" out of range")
	}
	if kind == godotbridge.TypeNil && len(args) == 0 {
		b.native.VariantNewNil(s.ptr)
		b.track(s)
		return nil
	}

	argv, err := b.pointers("construct", args)
	if err != nil {
		return err
	}
	res := b.native.VariantConstruct(kind, s.ptr, argv)
	if !res.OK() {
		// The host leaves a nil Variant behind on failure.
		b.native.VariantDestroy(s.ptr)
		return newCallError(kind.String(), res)
	}
	b.track(s)
	return nil
}

func (b *Bridge) pointers(op string, args []*Slot) ([]unsafe.Pointer, error) {
	if len(args) == 0 {
		return nil, nil
	}
	out := make([]unsafe.Pointer, len(args))
	for i, a := range args {
		if err := b.check(a, op); err != nil {
			return nil, err
		}
		out[i] = a.ptr
	}
	return out, nil
}

// Nil constructs a nil Variant.
func (b *Bridge) Nil() (*Slot, error) {
	return b.Construct(godotbridge.TypeNil)
}

// Copy constructs an independent copy of src.
func (b *Bridge) Copy(src *Slot) (*Slot, error) {
	if err := b.check(src, "copy"); err != nil {
		return nil, err
	}
	s, err := b.alloc()
	if err != nil {
		return nil, err
	}
	b.native.VariantNewCopy(s.ptr, src.ptr)
	b.track(s)
	return s, nil
}

// Destroy releases a slot. The host's destroy runs unless suppressed by
// configuration or the ShouldDeinit hook. A slot that is not live yields a
// double_destroy error and no native call.
func (b *Bridge) Destroy(s *Slot) error {
	if s == nil {
		return errors.NilPointer(errors.PhaseVariant, []string{"destroy"}, "Variant")
	}
	if s.borrowed {
		return errors.New(errors.PhaseVariant, errors.KindInvalidOperation).
			Path("destroy").
			Detail("borrowed Variant at %p is owned by the host", s.ptr).
			Build()
	}

	b.mu.Lock()
	cur, ok := b.live[s.ptr]
	if ok && cur == s {
		delete(b.live, s.ptr)
	}
	b.mu.Unlock()
	if !ok || cur != s {
		Logger().Warn("double destroy", zap.Uintptr("addr", uintptr(s.ptr)))
		return errors.DoubleDestroy([]string{"destroy"})
	}

	b.deinit(s.ptr)
	b.release(s)
	return nil
}

func (b *Bridge) deinit(ptr unsafe.Pointer) {
	h := b.currentHooks()
	run := !b.disableDestroy
	if run && h.ShouldDeinit != nil {
		run = h.ShouldDeinit(ptr)
	}
	if run {
		b.native.VariantDestroy(ptr)
	}
	if h.Deinited != nil {
		h.Deinited(ptr)
	}
}

// discard destroys a result slot produced by a failed native call.
func (b *Bridge) discard(s *Slot) {
	if err := b.Destroy(s); err != nil {
		Logger().Debug("discard failed", zap.Error(err))
	}
}

// Close destroys every live slot. Used when the owning generation ends.
func (b *Bridge) Close() int {
	b.mu.Lock()
	slots := make([]*Slot, 0, len(b.live))
	for _, s := range b.live {
		slots = append(slots, s)
	}
	b.live = make(map[unsafe.Pointer]*Slot)
	b.mu.Unlock()

	for _, s := range slots {
		b.deinit(s.ptr)
		b.release(s)
	}
	if len(slots) > 0 {
		Logger().Debug("released live variants", zap.Int("count", len(slots)))
	}
	return len(slots)
}
