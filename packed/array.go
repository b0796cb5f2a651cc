package packed

import (
	"unsafe"

	godotbridge "github.com/wippyai/godot-bridge"
	"github.com/wippyai/godot-bridge/errors"
)

// Element is the set of element types with a native packed array.
type Element interface {
	uint8 | int32 | int64 | float32 | float64 |
		godotbridge.Vector2 | godotbridge.Vector3 | godotbridge.Vector4 | godotbridge.Color
}

// KindOf returns the packed array type holding T.
func KindOf[T Element]() godotbridge.VariantType {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return godotbridge.TypePackedByteArray
	case int32:
		return godotbridge.TypePackedInt32Array
	case int64:
		return godotbridge.TypePackedInt64Array
	case float32:
		return godotbridge.TypePackedFloat32Array
	case float64:
		return godotbridge.TypePackedFloat64Array
	case godotbridge.Vector2:
		return godotbridge.TypePackedVector2Array
	case godotbridge.Vector3:
		return godotbridge.TypePackedVector3Array
	case godotbridge.Vector4:
		return godotbridge.TypePackedVector4Array
	default:
		return godotbridge.TypePackedColorArray
	}
}

// Array is a view over a native packed array of T.
type Array[T Element] struct {
	buffer
}

// New constructs an empty array owned by the caller; release it with Close.
func New[T Element](native Native) (*Array[T], error) {
	b, err := newBuffer(native, KindOf[T]())
	if err != nil {
		return nil, err
	}
	return &Array[T]{b}, nil
}

// Wrap views an existing host-owned array. Close does not destroy it.
func Wrap[T Element](native Native, handle unsafe.Pointer) (*Array[T], error) {
	b, err := wrapBuffer(native, KindOf[T](), handle)
	if err != nil {
		return nil, err
	}
	return &Array[T]{b}, nil
}

// FromSlice constructs a new array holding a copy of seq.
func FromSlice[T Element](native Native, seq []T) (*Array[T], error) {
	a, err := New[T](native)
	if err != nil {
		return nil, err
	}
	if err := a.Import(seq); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

// Import replaces the contents with seq: one resize, one element-0 address,
// then a straight copy.
func (a *Array[T]) Import(seq []T) error {
	if err := a.Resize(len(seq)); err != nil {
		return err
	}
	p, err := a.base(len(seq), true)
	if err != nil || p == nil {
		return err
	}
	copy(unsafe.Slice((*T)(p), len(seq)), seq)
	return nil
}

// Slice copies the contents out.
func (a *Array[T]) Slice() ([]T, error) {
	n, err := a.Len()
	if err != nil {
		return nil, err
	}
	out := make([]T, n)
	p, err := a.base(n, false)
	if err != nil || p == nil {
		return out, err
	}
	copy(out, unsafe.Slice((*T)(p), n))
	return out, nil
}

// Get returns element i.
func (a *Array[T]) Get(i int) (T, error) {
	var zero T
	p, err := a.element("get", i, false)
	if err != nil {
		return zero, err
	}
	return *(*T)(p), nil
}

// Set replaces element i.
func (a *Array[T]) Set(i int, v T) error {
	p, err := a.element("set", i, true)
	if err != nil {
		return err
	}
	*(*T)(p) = v
	return nil
}

// Append adds v at the end. Integer elements travel as int64 and float
// elements as float64, the argument types of the host's append.
func (a *Array[T]) Append(v T) error {
	if err := a.usable("append"); err != nil {
		return err
	}
	var arg unsafe.Pointer
	switch x := any(v).(type) {
	case uint8:
		w := int64(x)
		arg = unsafe.Pointer(&w)
	case int32:
		w := int64(x)
		arg = unsafe.Pointer(&w)
	case int64:
		arg = unsafe.Pointer(&x)
	case float32:
		w := float64(x)
		arg = unsafe.Pointer(&w)
	case float64:
		arg = unsafe.Pointer(&x)
	default:
		arg = unsafe.Pointer(&v)
	}
	return a.native.PackedAppend(a.kind, a.handle, arg)
}

// View runs fn over the native elements without copying. The slice is only
// valid inside fn and must not be retained; resizing inside fn invalidates it.
func (a *Array[T]) View(fn func([]T) error) error {
	n, err := a.Len()
	if err != nil {
		return err
	}
	p, err := a.base(n, true)
	if err != nil {
		return err
	}
	if p == nil {
		return fn(nil)
	}
	return fn(unsafe.Slice((*T)(p), n))
}

// Bytes copies a byte array out. It is Slice for PackedByteArray.
func Bytes(a *Array[uint8]) ([]byte, error) {
	if a == nil {
		return nil, errors.NilPointer(errors.PhasePacked, []string{"bytes"}, godotbridge.TypePackedByteArray.String())
	}
	return a.Slice()
}
