package variant

import (
	"fmt"
	"math"
	"unsafe"

	godotbridge "github.com/wippyai/godot-bridge"
	"github.com/wippyai/godot-bridge/errors"
)

// encoder writes one Go value into uninitialized Variant storage.
type encoder func(b *Bridge, dst unsafe.Pointer) error

// encoderFor resolves the conversion for v without touching native state, so
// an unsupported value never costs the slot its current contents.
func encoderFor(v any) (encoder, error) {
	switch x := v.(type) {
	case nil:
		return func(b *Bridge, dst unsafe.Pointer) error {
			b.native.VariantNewNil(dst)
			return nil
		}, nil
	case *Slot:
		if x == nil {
			return encoderFor(nil)
		}
		return func(b *Bridge, dst unsafe.Pointer) error {
			if err := b.check(x, "write"); err != nil {
				return err
			}
			b.native.VariantNewCopy(dst, x.ptr)
			return nil
		}, nil
	case bool:
		var u uint8
		if x {
			u = 1
		}
		return fromType(godotbridge.TypeBool, unsafe.Pointer(&u)), nil
	case int:
		return fromInt(int64(x)), nil
	case int8:
		return fromInt(int64(x)), nil
	case int16:
		return fromInt(int64(x)), nil
	case int32:
		return fromInt(int64(x)), nil
	case int64:
		return fromInt(x), nil
	case uint8:
		return fromInt(int64(x)), nil
	case uint16:
		return fromInt(int64(x)), nil
	case uint32:
		return fromInt(int64(x)), nil
	case uint:
		if uint64(x) > math.MaxInt64 {
			return nil, overflow(x)
		}
		return fromInt(int64(x)), nil
	case uint64:
		if x > math.MaxInt64 {
			return nil, overflow(x)
		}
		return fromInt(int64(x)), nil
	case float32:
		f := float64(x)
		return fromType(godotbridge.TypeFloat, unsafe.Pointer(&f)), nil
	case float64:
		return fromType(godotbridge.TypeFloat, unsafe.Pointer(&x)), nil
	case string:
		return func(b *Bridge, dst unsafe.Pointer) error {
			return b.withString(x, func(str unsafe.Pointer) error {
				return b.native.VariantFromType(godotbridge.TypeString, dst, str)
			})
		}, nil
	case godotbridge.Vector2:
		return fromType(godotbridge.TypeVector2, unsafe.Pointer(&x)), nil
	case godotbridge.Vector3:
		return fromType(godotbridge.TypeVector3, unsafe.Pointer(&x)), nil
	case godotbridge.Vector4:
		return fromType(godotbridge.TypeVector4, unsafe.Pointer(&x)), nil
	case godotbridge.Color:
		return fromType(godotbridge.TypeColor, unsafe.Pointer(&x)), nil
	default:
		return nil, errors.TypeMismatch(errors.PhaseVariant, []string{"write"}, fmt.Sprintf("%T", v), "Variant")
	}
}

func fromType(t godotbridge.VariantType, src unsafe.Pointer) encoder {
	return func(b *Bridge, dst unsafe.Pointer) error {
		return b.native.VariantFromType(t, dst, src)
	}
}

func fromInt(i int64) encoder {
	return fromType(godotbridge.TypeInt, unsafe.Pointer(&i))
}

func overflow(v any) error {
	return errors.New(errors.PhaseVariant, errors.KindInvalidInput).
		GoType(fmt.Sprintf("%T", v)).
		NativeType("int").
		Value(v).
		Detail("value %v overflows a 64-bit signed integer", v).
		Build()
}

// withString constructs a temporary native String holding s.
func (b *Bridge) withString(s string, fn func(str unsafe.Pointer) error) error {
	str := b.native.MemAlloc(godotbridge.StringSize)
	if str == nil {
		return errors.AllocationFailed(errors.PhaseVariant, godotbridge.StringSize)
	}
	defer b.native.MemFree(str)

	b.native.StringNew(str, s)
	err := fn(str)
	if derr := b.native.BuiltinDestroy(godotbridge.TypeString, str); err == nil {
		err = derr
	}
	return err
}

// readString default-constructs a temporary String, lets fill assign it and
// copies the result out.
func (b *Bridge) readString(fill func(str unsafe.Pointer) error) (string, error) {
	str := b.native.MemAlloc(godotbridge.StringSize)
	if str == nil {
		return "", errors.AllocationFailed(errors.PhaseVariant, godotbridge.StringSize)
	}
	defer b.native.MemFree(str)

	if err := b.native.BuiltinConstruct(godotbridge.TypeString, str); err != nil {
		return "", err
	}
	var out string
	err := fill(str)
	if err == nil {
		out = b.native.StringToUTF8(str)
	}
	if derr := b.native.BuiltinDestroy(godotbridge.TypeString, str); err == nil {
		err = derr
	}
	return out, err
}

// withStringName constructs a temporary native StringName holding s.
func (b *Bridge) withStringName(s string, fn func(name unsafe.Pointer)) error {
	name := b.native.MemAlloc(godotbridge.StringNameSize)
	if name == nil {
		return errors.AllocationFailed(errors.PhaseVariant, godotbridge.StringNameSize)
	}
	defer b.native.MemFree(name)

	b.native.StringNameNew(name, s)
	fn(name)
	return b.native.BuiltinDestroy(godotbridge.TypeStringName, name)
}

// FromValue constructs a new slot holding v.
func (b *Bridge) FromValue(v any) (*Slot, error) {
	enc, err := encoderFor(v)
	if err != nil {
		return nil, err
	}
	s, err := b.alloc()
	if err != nil {
		return nil, err
	}
	if err := enc(b, s.ptr); err != nil {
		b.release(s)
		return nil, err
	}
	b.track(s)
	return s, nil
}

// Write replaces the value held by s. The old value is destroyed first; if
// the new value cannot be encoded the slot is left nil.
func (b *Bridge) Write(s *Slot, v any) error {
	if err := b.check(s, "write"); err != nil {
		return err
	}
	enc, err := encoderFor(v)
	if err != nil {
		return err
	}
	if src, ok := v.(*Slot); ok && src != nil && src.ptr == s.ptr {
		return nil
	}

	b.deinit(s.ptr)
	if err := enc(b, s.ptr); err != nil {
		b.native.VariantNewNil(s.ptr)
		b.inited(s.ptr)
		return err
	}
	b.inited(s.ptr)
	return nil
}

// Type returns the dynamic type held by s.
func (b *Bridge) Type(s *Slot) (godotbridge.VariantType, error) {
	if err := b.check(s, "type"); err != nil {
		return godotbridge.TypeNil, err
	}
	return b.native.VariantGetType(s.ptr), nil
}

// Read converts the value held by s into its Go form.
func (b *Bridge) Read(s *Slot) (any, error) {
	t, err := b.Type(s)
	if err != nil {
		return nil, err
	}

	switch t {
	case godotbridge.TypeNil:
		return nil, nil
	case godotbridge.TypeBool:
		var u uint8
		err := b.native.VariantToType(t, unsafe.Pointer(&u), s.ptr)
		return u != 0, err
	case godotbridge.TypeInt:
		var i int64
		err := b.native.VariantToType(t, unsafe.Pointer(&i), s.ptr)
		return i, err
	case godotbridge.TypeFloat:
		var f float64
		err := b.native.VariantToType(t, unsafe.Pointer(&f), s.ptr)
		return f, err
	case godotbridge.TypeString:
		return b.readString(func(str unsafe.Pointer) error {
			return b.native.VariantToType(t, str, s.ptr)
		})
	case godotbridge.TypeVector2:
		var v godotbridge.Vector2
		err := b.native.VariantToType(t, unsafe.Pointer(&v), s.ptr)
		return v, err
	case godotbridge.TypeVector3:
		var v godotbridge.Vector3
		err := b.native.VariantToType(t, unsafe.Pointer(&v), s.ptr)
		return v, err
	case godotbridge.TypeVector4:
		var v godotbridge.Vector4
		err := b.native.VariantToType(t, unsafe.Pointer(&v), s.ptr)
		return v, err
	case godotbridge.TypeColor:
		var c godotbridge.Color
		err := b.native.VariantToType(t, unsafe.Pointer(&c), s.ptr)
		return c, err
	default:
		return nil, errors.Unsupported(errors.PhaseVariant, "reading "+t.String()+" into a Go value")
	}
}

// As reads s and asserts the Go type T.
func As[T any](b *Bridge, s *Slot) (T, error) {
	var zero T
	v, err := b.Read(s)
	if err != nil {
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		t, _ := b.Type(s)
		return zero, errors.TypeMismatch(errors.PhaseVariant, []string{"read"}, fmt.Sprintf("%T", zero), t.String())
	}
	return out, nil
}
