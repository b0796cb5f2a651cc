package variant

import (
	"unsafe"

	godotbridge "github.com/wippyai/godot-bridge"
)

// Native is the subset of the host's function table a Bridge needs.
// *ffi.Table satisfies it.
type Native interface {
	godotbridge.Allocator
	godotbridge.StringCodec
	godotbridge.Builtins

	VariantNewNil(dst unsafe.Pointer)
	VariantNewCopy(dst, src unsafe.Pointer)
	VariantDestroy(v unsafe.Pointer)
	VariantGetType(v unsafe.Pointer) godotbridge.VariantType
	VariantHash(v unsafe.Pointer) int64
	VariantStringify(v, dst unsafe.Pointer)
	VariantEvaluate(op godotbridge.Operator, a, b, dst unsafe.Pointer) bool
	VariantConstruct(t godotbridge.VariantType, dst unsafe.Pointer, args []unsafe.Pointer) godotbridge.CallResult
	VariantCall(self, method unsafe.Pointer, args []unsafe.Pointer, dst unsafe.Pointer) godotbridge.CallResult
	VariantGet(self, key, dst unsafe.Pointer) bool
	VariantSet(self, key, value unsafe.Pointer) bool
	VariantGetIndexed(self unsafe.Pointer, index int64, dst unsafe.Pointer) (valid, oob bool)
	VariantSetIndexed(self unsafe.Pointer, index int64, value unsafe.Pointer) (valid, oob bool)
	VariantFromType(t godotbridge.VariantType, dst, src unsafe.Pointer) error
	VariantToType(t godotbridge.VariantType, dst, src unsafe.Pointer) error
}

// Hooks observe slot transitions. Each is optional and called at most once
// per transition.
type Hooks struct {
	// ShouldDeinit decides whether the host's destroy runs for ptr. Returning
	// false keeps the bookkeeping but skips the native call.
	ShouldDeinit func(ptr unsafe.Pointer) bool
	// Inited runs after a slot is constructed.
	Inited func(ptr unsafe.Pointer)
	// Deinited runs after a slot is destroyed (or its destroy suppressed).
	Deinited func(ptr unsafe.Pointer)
}
