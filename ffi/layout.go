package ffi

/*
#include "gdextension.h"
*/
import "C"

import (
	"unsafe"

	godotbridge "github.com/wippyai/godot-bridge"
	"github.com/wippyai/godot-bridge/errors"
)

// CheckLayout verifies that the Go mirrors of native value types have the
// sizes of a single-precision 64-bit engine build. variantSize is the size
// the bridge is configured to allocate for one Variant. Native sizes come
// from the interface header and fixed constants; the host is not asked.
func CheckLayout(variantSize uintptr) error {
	checks := []struct {
		name   string
		goSize uintptr
		native uintptr
	}{
		{"Variant", variantSize, godotbridge.VariantSize},
		{"Vector2", unsafe.Sizeof(godotbridge.Vector2{}), 8},
		{"Vector3", unsafe.Sizeof(godotbridge.Vector3{}), 12},
		{"Vector4", unsafe.Sizeof(godotbridge.Vector4{}), 16},
		{"Color", unsafe.Sizeof(godotbridge.Color{}), 16},
		{"GDExtensionCallError", unsafe.Sizeof(godotbridge.CallResult{}), uintptr(C.sizeof_GDExtensionCallError)},
		{"GDExtensionInt", unsafe.Sizeof(int64(0)), uintptr(C.sizeof_GDExtensionInt)},
		{"GDExtensionBool", unsafe.Sizeof(uint8(0)), uintptr(C.sizeof_GDExtensionBool)},
		{"ObjectPtr", unsafe.Sizeof(unsafe.Pointer(nil)), godotbridge.ObjectPtrSize},
	}

	for _, c := range checks {
		if c.goSize != c.native {
			return errors.LayoutMismatch(c.name, c.goSize, c.native)
		}
	}
	return nil
}
