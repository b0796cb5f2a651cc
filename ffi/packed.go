package ffi

/*
#include "bridge.h"
*/
import "C"

import (
	"unsafe"

	godotbridge "github.com/wippyai/godot-bridge"
	"github.com/wippyai/godot-bridge/errors"
	"github.com/wippyai/godot-bridge/symbols"
)

// Builtin method hashes from extension_api.json. Hashes depend on the
// signature only, so every packed type with the same signature shares one.
const (
	hashPackedSize          int64 = 3173160232
	hashPackedResize        int64 = 848867239
	hashPackedAppendInt     int64 = 694024632
	hashPackedAppendFloat   int64 = 4094791666
	hashPackedAppendString  int64 = 816187996
	hashPackedAppendVector2 int64 = 4188891560
	hashPackedAppendVector3 int64 = 3295363524
	hashPackedAppendColor   int64 = 1007858200
	hashPackedAppendVector4 int64 = 3289167688
)

type packedInfo struct {
	index, indexConst symbols.ID
	appendHash        int64
}

var packedTypes = map[godotbridge.VariantType]packedInfo{
	godotbridge.TypePackedByteArray:    {symbols.PackedByteArrayOperatorIndex, symbols.PackedByteArrayOperatorIndexConst, hashPackedAppendInt},
	godotbridge.TypePackedInt32Array:   {symbols.PackedInt32ArrayOperatorIndex, symbols.PackedInt32ArrayOperatorIndexConst, hashPackedAppendInt},
	godotbridge.TypePackedInt64Array:   {symbols.PackedInt64ArrayOperatorIndex, symbols.PackedInt64ArrayOperatorIndexConst, hashPackedAppendInt},
	godotbridge.TypePackedFloat32Array: {symbols.PackedFloat32ArrayOperatorIndex, symbols.PackedFloat32ArrayOperatorIndexConst, hashPackedAppendFloat},
	godotbridge.TypePackedFloat64Array: {symbols.PackedFloat64ArrayOperatorIndex, symbols.PackedFloat64ArrayOperatorIndexConst, hashPackedAppendFloat},
	godotbridge.TypePackedStringArray:  {symbols.PackedStringArrayOperatorIndex, symbols.PackedStringArrayOperatorIndexConst, hashPackedAppendString},
	godotbridge.TypePackedVector2Array: {symbols.PackedVector2ArrayOperatorIndex, symbols.PackedVector2ArrayOperatorIndexConst, hashPackedAppendVector2},
	godotbridge.TypePackedVector3Array: {symbols.PackedVector3ArrayOperatorIndex, symbols.PackedVector3ArrayOperatorIndexConst, hashPackedAppendVector3},
	godotbridge.TypePackedColorArray:   {symbols.PackedColorArrayOperatorIndex, symbols.PackedColorArrayOperatorIndexConst, hashPackedAppendColor},
	godotbridge.TypePackedVector4Array: {symbols.PackedVector4ArrayOperatorIndex, symbols.PackedVector4ArrayOperatorIndexConst, hashPackedAppendVector4},
}

func packedLookup(tp godotbridge.VariantType) (packedInfo, error) {
	info, ok := packedTypes[tp]
	if !ok {
		return packedInfo{}, errors.TypeMismatch(errors.PhasePacked, nil, "", tp.String())
	}
	return info, nil
}

// PackedIndex returns the address of element index. The host does not
// bounds-check; callers must.
func (t *Table) PackedIndex(tp godotbridge.VariantType, array unsafe.Pointer, index int64) unsafe.Pointer {
	info, err := packedLookup(tp)
	if err != nil {
		return nil
	}
	return C.gdx_operator_index(t.procs[info.index], array, C.GDExtensionInt(index))
}

// PackedIndexConst is PackedIndex through the read-only entry point.
func (t *Table) PackedIndexConst(tp godotbridge.VariantType, array unsafe.Pointer, index int64) unsafe.Pointer {
	info, err := packedLookup(tp)
	if err != nil {
		return nil
	}
	return C.gdx_operator_index_const(t.procs[info.indexConst], array, C.GDExtensionInt(index))
}

// PackedSize returns the element count of a packed array.
func (t *Table) PackedSize(tp godotbridge.VariantType, array unsafe.Pointer) (int64, error) {
	if _, err := packedLookup(tp); err != nil {
		return 0, err
	}
	m, err := t.builtinMethod(tp, "size", hashPackedSize)
	if err != nil {
		return 0, err
	}
	var n int64
	C.gdx_call_builtin_method(m, array, nil, unsafe.Pointer(&n), 0)
	return n, nil
}

// PackedResize sets the element count. New elements are zero values.
func (t *Table) PackedResize(tp godotbridge.VariantType, array unsafe.Pointer, n int64) error {
	if _, err := packedLookup(tp); err != nil {
		return err
	}
	m, err := t.builtinMethod(tp, "resize", hashPackedResize)
	if err != nil {
		return err
	}
	var code int64
	callArgs([]unsafe.Pointer{unsafe.Pointer(&n)}, func(argv *unsafe.Pointer) {
		C.gdx_call_builtin_method(m, array, argv, unsafe.Pointer(&code), 1)
	})
	if code != 0 {
		return errors.New(errors.PhasePacked, errors.KindAllocation).
			NativeType(tp.String()).
			Detail("resize to %d failed with error %d", n, code).
			Build()
	}
	return nil
}

// PackedAppend appends one element. value points at the widened native
// argument: int64 for integer arrays, float64 for float arrays, a native
// String for string arrays and the struct itself for vectors and colors.
func (t *Table) PackedAppend(tp godotbridge.VariantType, array, value unsafe.Pointer) error {
	info, err := packedLookup(tp)
	if err != nil {
		return err
	}
	m, err := t.builtinMethod(tp, "append", info.appendHash)
	if err != nil {
		return err
	}
	var failed uint8
	callArgs([]unsafe.Pointer{value}, func(argv *unsafe.Pointer) {
		C.gdx_call_builtin_method(m, array, argv, unsafe.Pointer(&failed), 1)
	})
	if failed != 0 {
		return errors.New(errors.PhasePacked, errors.KindAllocation).
			NativeType(tp.String()).
			Detail("append failed").
			Build()
	}
	return nil
}
