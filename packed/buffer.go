// Package packed gives bounds-checked, mutable access to native packed
// arrays. The host owns the element storage and may move it on any resize,
// so element addresses are re-derived through the host's index entry point
// on every access and never retained past the call that obtained them.
package packed

import (
	"unsafe"

	"go.uber.org/zap"

	godotbridge "github.com/wippyai/godot-bridge"
	"github.com/wippyai/godot-bridge/errors"
)

// Native is the subset of the host's function table packed arrays need.
// *ffi.Table satisfies it.
type Native interface {
	godotbridge.Allocator
	godotbridge.StringCodec
	godotbridge.Builtins

	PackedIndex(t godotbridge.VariantType, array unsafe.Pointer, index int64) unsafe.Pointer
	PackedIndexConst(t godotbridge.VariantType, array unsafe.Pointer, index int64) unsafe.Pointer
	PackedSize(t godotbridge.VariantType, array unsafe.Pointer) (int64, error)
	PackedResize(t godotbridge.VariantType, array unsafe.Pointer, n int64) error
	PackedAppend(t godotbridge.VariantType, array, value unsafe.Pointer) error
}

// buffer is the part shared by every element type: the 16-byte handle and
// its ownership.
type buffer struct {
	native Native
	handle unsafe.Pointer
	kind   godotbridge.VariantType
	owned  bool
	closed bool
}

func newBuffer(native Native, kind godotbridge.VariantType) (buffer, error) {
	h := native.MemAlloc(godotbridge.PackedArraySize)
	if h == nil {
		return buffer{}, errors.AllocationFailed(errors.PhasePacked, godotbridge.PackedArraySize)
	}
	if err := native.BuiltinConstruct(kind, h); err != nil {
		native.MemFree(h)
		return buffer{}, err
	}
	return buffer{native: native, handle: h, kind: kind, owned: true}, nil
}

func wrapBuffer(native Native, kind godotbridge.VariantType, handle unsafe.Pointer) (buffer, error) {
	if handle == nil {
		return buffer{}, errors.NilPointer(errors.PhasePacked, []string{"wrap"}, kind.String())
	}
	return buffer{native: native, handle: handle, kind: kind}, nil
}

// Handle returns the native array storage.
func (b *buffer) Handle() unsafe.Pointer {
	return b.handle
}

// Kind returns the packed array's Variant type.
func (b *buffer) Kind() godotbridge.VariantType {
	return b.kind
}

func (b *buffer) usable(op string) error {
	if b.closed {
		return errors.New(errors.PhasePacked, errors.KindClosed).
			Path(op).
			NativeType(b.kind.String()).
			Build()
	}
	return nil
}

// Len returns the element count.
func (b *buffer) Len() (int, error) {
	if err := b.usable("len"); err != nil {
		return 0, err
	}
	n, err := b.native.PackedSize(b.kind, b.handle)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// Resize sets the element count. New elements hold zero values.
func (b *buffer) Resize(n int) error {
	if err := b.usable("resize"); err != nil {
		return err
	}
	if n < 0 {
		return errors.InvalidInput(errors.PhasePacked, "negative size")
	}
	return b.native.PackedResize(b.kind, b.handle, int64(n))
}

// element validates i against the current length and returns its address.
func (b *buffer) element(op string, i int, write bool) (unsafe.Pointer, error) {
	n, err := b.Len()
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= n {
		return nil, errors.OutOfBounds(errors.PhasePacked, []string{b.kind.String(), op}, int64(i), int64(n))
	}
	var p unsafe.Pointer
	if write {
		p = b.native.PackedIndex(b.kind, b.handle, int64(i))
	} else {
		p = b.native.PackedIndexConst(b.kind, b.handle, int64(i))
	}
	if p == nil {
		return nil, errors.NilPointer(errors.PhasePacked, []string{b.kind.String(), op}, b.kind.String())
	}
	return p, nil
}

// base returns the address of element 0 for a bulk operation over n elements.
func (b *buffer) base(n int, write bool) (unsafe.Pointer, error) {
	if n == 0 {
		return nil, nil
	}
	return b.element("bulk", 0, write)
}

// Close destroys an owned array. Wrapped arrays are only detached.
func (b *buffer) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	if !b.owned {
		return nil
	}
	err := b.native.BuiltinDestroy(b.kind, b.handle)
	b.native.MemFree(b.handle)
	if err != nil {
		Logger().Warn("packed array destroy failed", zap.Stringer("kind", b.kind), zap.Error(err))
	}
	return err
}
