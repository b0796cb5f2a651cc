// Package fakehost is an in-process stand-in for a GDExtension host, written
// in C so the bridge's trampolines run against real C function pointers in
// tests. It keeps global state; tests using it must not run in parallel.
package fakehost

/*
#cgo CFLAGS: -I${SRCDIR}/../../ffi
#include <stdlib.h>
#include "fakehost.h"
*/
import "C"

import "unsafe"

// Counters are cumulative since the last Reset.
type Counters struct {
	Lookups         int64
	Allocs          int64
	Frees           int64
	Errors          int64
	Warnings        int64
	VariantDestroys int64
	ObjectDestroys  int64
	PackedIndex     int64
	PackedLive      int64
	Unimplemented   int64
}

// GetProcAddress returns the host's resolver.
func GetProcAddress() unsafe.Pointer {
	return C.fh_resolver()
}

// AltGetProcAddress returns a second resolver over the same entry points,
// for simulating a host reload.
func AltGetProcAddress() unsafe.Pointer {
	return C.fh_resolver_alt()
}

// Library returns the library handle the host passes to the entry point.
func Library() unsafe.Pointer {
	return C.fh_library()
}

// SecondLibrary is a distinct handle for a second library in the process.
func SecondLibrary() unsafe.Pointer {
	return C.fh_second_library()
}

// EngineSingleton is the object returned for global_get_singleton("Engine").
func EngineSingleton() unsafe.Pointer {
	return C.fh_engine_singleton()
}

// Hide makes the resolver return NULL for name until Reset.
func Hide(name string) {
	cs := C.CString(name)
	defer C.free(unsafe.Pointer(cs))
	C.fh_hide(cs)
}

// Reset clears hidden names, counters and injected call errors.
func Reset() {
	C.fh_reset()
}

// Stats returns the current counters.
func Stats() Counters {
	c := C.fh_get_counters()
	return Counters{
		Lookups:         int64(c.lookups),
		Allocs:          int64(c.allocs),
		Frees:           int64(c.frees),
		Errors:          int64(c.errors),
		Warnings:        int64(c.warnings),
		VariantDestroys: int64(c.variant_destroys),
		ObjectDestroys:  int64(c.object_destroys),
		PackedIndex:     int64(c.packed_index),
		PackedLive:      int64(c.packed_live),
		Unimplemented:   int64(c.unimplemented),
	}
}

// LastPrint returns the description (or message) of the last print call.
func LastPrint() string {
	return C.GoString(C.fh_last_print())
}

// SetCallError makes every variant_call fail with the given error triple.
func SetCallError(code, argument, expected int32) {
	C.fh_set_call_error(C.int32_t(code), C.int32_t(argument), C.int32_t(expected))
}

// NewRecord allocates a zeroed GDExtensionInitialization.
func NewRecord() unsafe.Pointer {
	return C.fh_new_record()
}

// FreeRecord releases a record from NewRecord.
func FreeRecord(record unsafe.Pointer) {
	C.fh_free_record(record)
}

// RecordMinLevel reads minimum_initialization_level from a filled record.
func RecordMinLevel(record unsafe.Pointer) int32 {
	return int32(C.fh_record_min_level(record))
}

// RecordUserdata reads userdata from a filled record.
func RecordUserdata(record unsafe.Pointer) unsafe.Pointer {
	return C.fh_record_userdata(record)
}

// Drive invokes the record's initialize or deinitialize callback the way the
// host does. It reports false when the callback is unset.
func Drive(record unsafe.Pointer, level int32, initialize bool) bool {
	var init C.int
	if initialize {
		init = 1
	}
	return C.fh_drive(record, C.int32_t(level), init) != 0
}

// InitAll drives initialize for every level from minLevel through Editor.
func InitAll(record unsafe.Pointer, minLevel int32) {
	for l := minLevel; l <= 3; l++ {
		Drive(record, l, true)
	}
}

// DeinitAll drives deinitialize from Editor down to minLevel.
func DeinitAll(record unsafe.Pointer, minLevel int32) {
	for l := int32(3); l >= minLevel; l-- {
		Drive(record, l, false)
	}
}

// Hashes the host accepts for Node.add and the print utility.
const (
	AddHash   = C.FH_ADD_HASH
	PrintHash = C.FH_PRINT_HASH
)

// Call is the last classdb, object or static call the host received.
type Call struct {
	Op    string
	Names [2]string
	Ptrs  [3]unsafe.Pointer
	Num   int64
	Argc  int64
}

// LastCall returns the most recent recorded call.
func LastCall() Call {
	c := C.fh_last_call()
	return Call{
		Op:    C.GoString(&c.op[0]),
		Names: [2]string{C.GoString(&c.name[0][0]), C.GoString(&c.name[1][0])},
		Ptrs:  [3]unsafe.Pointer{c.ptr[0], c.ptr[1], c.ptr[2]},
		Num:   int64(c.num),
		Argc:  int64(c.argc),
	}
}

// Plugins returns editor plugins added minus removed since Reset.
func Plugins() int {
	return int(C.fh_plugins())
}

// NodeObject is the object classdb_construct_object("Node") returns.
func NodeObject() unsafe.Pointer {
	return C.fh_node_object()
}

// NodeClassTag is the tag classdb_get_class_tag("Node") returns.
func NodeClassTag() unsafe.Pointer {
	return C.fh_node_class_tag()
}

// AddBind is the method bind for Node.add, which returns a*10 + b.
func AddBind() unsafe.Pointer {
	return C.fh_add_bind()
}

// IntMinusFloatEvaluator is the evaluator returned for int - float.
func IntMinusFloatEvaluator() unsafe.Pointer {
	return C.fh_int_minus_float_evaluator()
}

// PrintUtility is the utility function returned for print.
func PrintUtility() unsafe.Pointer {
	return C.fh_utility_print_fn()
}

// NewArray allocates a native Array of n nil Variants.
func NewArray(n int64) unsafe.Pointer {
	return C.fh_new_array(C.int64_t(n))
}

// FreeArray releases an Array from NewArray.
func FreeArray(array unsafe.Pointer) {
	C.fh_free_array(array)
}
