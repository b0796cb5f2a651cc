package godotbridge

import (
	"fmt"
	"unsafe"
)

// Native sizes for a single-precision, 64-bit engine build.
const (
	VariantSize     = 24
	StringSize      = 8
	StringNameSize  = 8
	PackedArraySize = 16
	ObjectPtrSize   = 8
)

// VariantType identifies the dynamic type held by a Variant.
type VariantType int32

const (
	TypeNil VariantType = iota
	TypeBool
	TypeInt
	TypeFloat
	TypeString
	TypeVector2
	TypeVector2i
	TypeRect2
	TypeRect2i
	TypeVector3
	TypeVector3i
	TypeTransform2D
	TypeVector4
	TypeVector4i
	TypePlane
	TypeQuaternion
	TypeAABB
	TypeBasis
	TypeTransform3D
	TypeProjection
	TypeColor
	TypeStringName
	TypeNodePath
	TypeRID
	TypeObject
	TypeCallable
	TypeSignal
	TypeDictionary
	TypeArray
	TypePackedByteArray
	TypePackedInt32Array
	TypePackedInt64Array
	TypePackedFloat32Array
	TypePackedFloat64Array
	TypePackedStringArray
	TypePackedVector2Array
	TypePackedVector3Array
	TypePackedColorArray
	TypePackedVector4Array
	TypeMax
)

var variantTypeNames = [...]string{
	"Nil", "bool", "int", "float", "String", "Vector2", "Vector2i", "Rect2",
	"Rect2i", "Vector3", "Vector3i", "Transform2D", "Vector4", "Vector4i",
	"Plane", "Quaternion", "AABB", "Basis", "Transform3D", "Projection",
	"Color", "StringName", "NodePath", "RID", "Object", "Callable", "Signal",
	"Dictionary", "Array", "PackedByteArray", "PackedInt32Array",
	"PackedInt64Array", "PackedFloat32Array", "PackedFloat64Array",
	"PackedStringArray", "PackedVector2Array", "PackedVector3Array",
	"PackedColorArray", "PackedVector4Array",
}

func (t VariantType) String() string {
	if t >= 0 && int(t) < len(variantTypeNames) {
		return variantTypeNames[t]
	}
	return fmt.Sprintf("VariantType(%d)", int32(t))
}

// Valid reports whether t is inside the closed native enumeration.
func (t VariantType) Valid() bool {
	return t >= TypeNil && t < TypeMax
}

// IsPacked reports whether t is one of the packed array types.
func (t VariantType) IsPacked() bool {
	return t >= TypePackedByteArray && t <= TypePackedVector4Array
}

// Operator is a Variant operator understood by the native evaluator.
type Operator int32

const (
	OpEqual Operator = iota
	OpNotEqual
	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpNegate
	OpPositive
	OpModule
	OpPower
	OpShiftLeft
	OpShiftRight
	OpBitAnd
	OpBitOr
	OpBitXor
	OpBitNegate
	OpAnd
	OpOr
	OpXor
	OpNot
	OpIn
	OpMax
)

// Vector2 mirrors the native Vector2 (two 32-bit floats).
type Vector2 struct {
	X, Y float32
}

// Vector3 mirrors the native Vector3.
type Vector3 struct {
	X, Y, Z float32
}

// Vector4 mirrors the native Vector4.
type Vector4 struct {
	X, Y, Z, W float32
}

// Color mirrors the native Color (RGBA, 32-bit floats).
type Color struct {
	R, G, B, A float32
}

// Allocator is the native heap.
type Allocator interface {
	MemAlloc(size uintptr) unsafe.Pointer
	MemFree(ptr unsafe.Pointer)
}

// StringCodec converts between Go strings and native String/StringName values.
type StringCodec interface {
	// StringNew constructs a native String at dst. dst must be uninitialized.
	StringNew(dst unsafe.Pointer, s string)
	// StringToUTF8 copies a native String out as a Go string.
	StringToUTF8(src unsafe.Pointer) string
	// StringNameNew constructs a native StringName at dst.
	StringNameNew(dst unsafe.Pointer, s string)
}

// Builtins runs default constructors and destructors of builtin types.
type Builtins interface {
	BuiltinConstruct(t VariantType, dst unsafe.Pointer) error
	BuiltinDestroy(t VariantType, ptr unsafe.Pointer) error
}
