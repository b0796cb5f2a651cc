package ffi

/*
#include <stdlib.h>
#include "bridge.h"
*/
import "C"

import (
	"runtime"
	"unsafe"

	godotbridge "github.com/wippyai/godot-bridge"
	"github.com/wippyai/godot-bridge/errors"
	"github.com/wippyai/godot-bridge/symbols"
)

func cbool(b bool) C.GDExtensionBool {
	if b {
		return 1
	}
	return 0
}

// callArgs pins the argument pointers for the duration of fn and hands the
// array to C. Native pointers pass through Pin unchanged.
func callArgs(args []unsafe.Pointer, fn func(argv *unsafe.Pointer)) {
	if len(args) == 0 {
		fn(nil)
		return
	}
	var pinner runtime.Pinner
	defer pinner.Unpin()
	for _, a := range args {
		if a != nil {
			pinner.Pin(a)
		}
	}
	fn(&args[0])
}

func callResult(e C.GDExtensionCallError) godotbridge.CallResult {
	return godotbridge.CallResult{
		Code:     int32(e.error),
		Argument: int32(e.argument),
		Expected: int32(e.expected),
	}
}

func checkType(tp godotbridge.VariantType) error {
	if !tp.Valid() {
		return errors.InvalidInput(errors.PhaseVariant, "variant type "+tp.String()+" out of range")
	}
	return nil
}

// Memory

// MemAlloc allocates from the host heap. It returns nil when the host does.
func (t *Table) MemAlloc(size uintptr) unsafe.Pointer {
	return C.gdx_mem_alloc(t.procs[symbols.MemAlloc], C.size_t(size))
}

// MemRealloc resizes a host allocation.
func (t *Table) MemRealloc(ptr unsafe.Pointer, size uintptr) unsafe.Pointer {
	return C.gdx_mem_realloc(t.procs[symbols.MemRealloc], ptr, C.size_t(size))
}

// MemFree releases a host allocation. nil is ignored.
func (t *Table) MemFree(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	C.gdx_mem_free(t.procs[symbols.MemFree], ptr)
}

// Printing

func (t *Table) print(id symbols.ID, desc, function, file string, line int32, notify bool) {
	cdesc, cfunc, cfile := C.CString(desc), C.CString(function), C.CString(file)
	defer C.free(unsafe.Pointer(cdesc))
	defer C.free(unsafe.Pointer(cfunc))
	defer C.free(unsafe.Pointer(cfile))
	C.gdx_print(t.procs[id], cdesc, cfunc, cfile, C.int32_t(line), cbool(notify))
}

func (t *Table) printMessage(id symbols.ID, desc, msg, function, file string, line int32, notify bool) {
	cdesc, cmsg, cfunc, cfile := C.CString(desc), C.CString(msg), C.CString(function), C.CString(file)
	defer C.free(unsafe.Pointer(cdesc))
	defer C.free(unsafe.Pointer(cmsg))
	defer C.free(unsafe.Pointer(cfunc))
	defer C.free(unsafe.Pointer(cfile))
	C.gdx_print_msg(t.procs[id], cdesc, cmsg, cfunc, cfile, C.int32_t(line), cbool(notify))
}

// PrintError reports an error through the host's logger.
func (t *Table) PrintError(desc, function, file string, line int32, notify bool) {
	t.print(symbols.PrintError, desc, function, file, line, notify)
}

// PrintErrorWithMessage reports an error with an additional user message.
func (t *Table) PrintErrorWithMessage(desc, msg, function, file string, line int32, notify bool) {
	t.printMessage(symbols.PrintErrorWithMessage, desc, msg, function, file, line, notify)
}

// PrintWarning reports a warning through the host's logger.
func (t *Table) PrintWarning(desc, function, file string, line int32, notify bool) {
	t.print(symbols.PrintWarning, desc, function, file, line, notify)
}

// PrintWarningWithMessage reports a warning with an additional user message.
func (t *Table) PrintWarningWithMessage(desc, msg, function, file string, line int32, notify bool) {
	t.printMessage(symbols.PrintWarningWithMessage, desc, msg, function, file, line, notify)
}

// PrintScriptError reports a script error.
func (t *Table) PrintScriptError(desc, function, file string, line int32, notify bool) {
	t.print(symbols.PrintScriptError, desc, function, file, line, notify)
}

// PrintScriptErrorWithMessage reports a script error with a user message.
func (t *Table) PrintScriptErrorWithMessage(desc, msg, function, file string, line int32, notify bool) {
	t.printMessage(symbols.PrintScriptErrorWithMessage, desc, msg, function, file, line, notify)
}

// Strings

// StringNew constructs a native String at dst from UTF-8.
func (t *Table) StringNew(dst unsafe.Pointer, s string) {
	cs := C.CString(s)
	defer C.free(unsafe.Pointer(cs))
	C.gdx_string_new_utf8(t.procs[symbols.StringNewWithUTF8Chars], dst, cs)
}

// StringToUTF8 copies a native String out. The first call sizes the buffer.
func (t *Table) StringToUTF8(src unsafe.Pointer) string {
	fn := t.procs[symbols.StringToUTF8Chars]
	n := C.gdx_string_to_utf8(fn, src, nil, 0)
	if n <= 0 {
		return ""
	}
	buf := (*C.char)(C.malloc(C.size_t(n)))
	defer C.free(unsafe.Pointer(buf))
	n = C.gdx_string_to_utf8(fn, src, buf, n)
	return C.GoStringN(buf, C.int(n))
}

// StringNameNew constructs a native StringName at dst. The host copies s.
func (t *Table) StringNameNew(dst unsafe.Pointer, s string) {
	cs := C.CString(s)
	defer C.free(unsafe.Pointer(cs))
	C.gdx_string_name_new_latin1(t.procs[symbols.StringNameNewWithLatin1Chars], dst, cs, 0)
}

// StringNameToUTF8 converts a native StringName through a temporary String.
func (t *Table) StringNameToUTF8(src unsafe.Pointer) string {
	// String constructor 2 takes a StringName.
	ctor := t.ptrConstructor(godotbridge.TypeString, 2)
	if ctor == nil {
		return ""
	}
	tmp := t.MemAlloc(godotbridge.StringSize)
	defer t.MemFree(tmp)

	callArgs([]unsafe.Pointer{src}, func(argv *unsafe.Pointer) {
		C.gdx_call_ptr_constructor(ctor, tmp, argv)
	})
	s := t.StringToUTF8(tmp)
	_ = t.BuiltinDestroy(godotbridge.TypeString, tmp)
	return s
}

// GetNativeStructSize asks the host for the size of a named native struct.
func (t *Table) GetNativeStructSize(name string) uint64 {
	sn, ok := t.name("get_native_struct_size", name)
	if !ok {
		return 0
	}
	return uint64(C.gdx_native_struct_size(t.procs[symbols.GetNativeStructSize], sn))
}

// Builtin constructors and destructors

// BuiltinConstruct runs the default constructor of tp at dst.
func (t *Table) BuiltinConstruct(tp godotbridge.VariantType, dst unsafe.Pointer) error {
	if err := checkType(tp); err != nil {
		return err
	}
	ctor := t.ptrConstructor(tp, 0)
	if ctor == nil {
		return errors.Unsupported(errors.PhaseVariant, "no default constructor for "+tp.String())
	}
	C.gdx_call_ptr_constructor(ctor, dst, nil)
	return nil
}

// BuiltinDestroy runs the destructor of tp at ptr. Types without one are a no-op.
func (t *Table) BuiltinDestroy(tp godotbridge.VariantType, ptr unsafe.Pointer) error {
	if err := checkType(tp); err != nil {
		return err
	}
	if dtor := t.ptrDestructor(tp); dtor != nil {
		C.gdx_call_ptr_destructor(dtor, ptr)
	}
	return nil
}

// Variants

// VariantNewNil constructs a nil Variant at dst.
func (t *Table) VariantNewNil(dst unsafe.Pointer) {
	C.gdx_variant_new_nil(t.procs[symbols.VariantNewNil], dst)
}

// VariantNewCopy constructs a copy of src at dst.
func (t *Table) VariantNewCopy(dst, src unsafe.Pointer) {
	C.gdx_variant_new_copy(t.procs[symbols.VariantNewCopy], dst, src)
}

// VariantDestroy destroys the Variant at v.
func (t *Table) VariantDestroy(v unsafe.Pointer) {
	C.gdx_variant_destroy(t.procs[symbols.VariantDestroy], v)
}

// VariantGetType returns the dynamic type of v.
func (t *Table) VariantGetType(v unsafe.Pointer) godotbridge.VariantType {
	return godotbridge.VariantType(C.gdx_variant_get_type(t.procs[symbols.VariantGetType], v))
}

// VariantHash returns the host's hash of v.
func (t *Table) VariantHash(v unsafe.Pointer) int64 {
	return int64(C.gdx_variant_hash(t.procs[symbols.VariantHash], v))
}

// VariantEvaluate applies op. dst is constructed whether or not the
// operation is valid.
func (t *Table) VariantEvaluate(op godotbridge.Operator, a, b, dst unsafe.Pointer) bool {
	return C.gdx_variant_evaluate(t.procs[symbols.VariantEvaluate], C.GDExtensionVariantOperator(op), a, b, dst) != 0
}

// VariantStringify writes the text form of v into the initialized String dst.
func (t *Table) VariantStringify(v, dst unsafe.Pointer) {
	C.gdx_variant_stringify(t.procs[symbols.VariantStringify], v, dst)
}

// VariantGetTypeName returns the host's name for tp.
func (t *Table) VariantGetTypeName(tp godotbridge.VariantType) string {
	tmp := t.MemAlloc(godotbridge.StringSize)
	defer t.MemFree(tmp)
	C.gdx_variant_get_type_name(t.procs[symbols.VariantGetTypeName], C.GDExtensionVariantType(tp), tmp)
	s := t.StringToUTF8(tmp)
	_ = t.BuiltinDestroy(godotbridge.TypeString, tmp)
	return s
}

// VariantGet reads self[key] into dst, which is always constructed.
func (t *Table) VariantGet(self, key, dst unsafe.Pointer) bool {
	return C.gdx_variant_get(t.procs[symbols.VariantGet], self, key, dst) != 0
}

// VariantSet writes self[key] = value.
func (t *Table) VariantSet(self, key, value unsafe.Pointer) bool {
	return C.gdx_variant_set(t.procs[symbols.VariantSet], self, key, value) != 0
}

// VariantGetNamed reads a named member into dst, which is always constructed
// unless the table is closed.
func (t *Table) VariantGetNamed(self unsafe.Pointer, name string, dst unsafe.Pointer) bool {
	sn, ok := t.name("variant_get_named", name)
	if !ok {
		return false
	}
	return C.gdx_variant_get_named(t.procs[symbols.VariantGetNamed], self, sn, dst) != 0
}

// VariantGetIndexed reads self[index] into dst, which is always constructed.
func (t *Table) VariantGetIndexed(self unsafe.Pointer, index int64, dst unsafe.Pointer) (valid, oob bool) {
	var coob C.GDExtensionBool
	v := C.gdx_variant_get_indexed(t.procs[symbols.VariantGetIndexed], self, C.GDExtensionInt(index), dst, &coob)
	return v != 0, coob != 0
}

// VariantSetIndexed writes self[index] = value.
func (t *Table) VariantSetIndexed(self unsafe.Pointer, index int64, value unsafe.Pointer) (valid, oob bool) {
	var coob C.GDExtensionBool
	v := C.gdx_variant_set_indexed(t.procs[symbols.VariantSetIndexed], self, C.GDExtensionInt(index), value, &coob)
	return v != 0, coob != 0
}

// VariantCall invokes a method on self. method is a native StringName; dst
// is always constructed.
func (t *Table) VariantCall(self, method unsafe.Pointer, args []unsafe.Pointer, dst unsafe.Pointer) godotbridge.CallResult {
	var cerr C.GDExtensionCallError
	callArgs(args, func(argv *unsafe.Pointer) {
		C.gdx_variant_call(t.procs[symbols.VariantCall], self, method, argv, C.GDExtensionInt(len(args)), dst, &cerr)
	})
	return callResult(cerr)
}

// VariantCallStatic invokes a static method of tp.
func (t *Table) VariantCallStatic(tp godotbridge.VariantType, method string, args []unsafe.Pointer, dst unsafe.Pointer) godotbridge.CallResult {
	var cerr C.GDExtensionCallError
	sn, ok := t.name("variant_call_static", method)
	if !ok {
		return godotbridge.CallResult{Code: godotbridge.CallErrorInvalidMethod}
	}
	callArgs(args, func(argv *unsafe.Pointer) {
		C.gdx_variant_call_static(t.procs[symbols.VariantCallStatic], C.GDExtensionVariantType(tp), sn, argv, C.GDExtensionInt(len(args)), dst, &cerr)
	})
	return callResult(cerr)
}

// VariantConstruct constructs a Variant of tp from Variant arguments.
func (t *Table) VariantConstruct(tp godotbridge.VariantType, dst unsafe.Pointer, args []unsafe.Pointer) godotbridge.CallResult {
	var cerr C.GDExtensionCallError
	callArgs(args, func(argv *unsafe.Pointer) {
		C.gdx_variant_construct(t.procs[symbols.VariantConstruct], C.GDExtensionVariantType(tp), dst, argv, C.int32_t(len(args)), &cerr)
	})
	return callResult(cerr)
}

// VariantFromType builds a Variant at dst from the native value of tp at src.
func (t *Table) VariantFromType(tp godotbridge.VariantType, dst, src unsafe.Pointer) error {
	if err := checkType(tp); err != nil {
		return err
	}
	fn := t.fromTypeCtor(tp)
	if fn == nil {
		return errors.Unsupported(errors.PhaseVariant, "no from-type constructor for "+tp.String())
	}
	C.gdx_call_from_type(fn, dst, src)
	return nil
}

// VariantToType copies the value of Variant src into the native value at dst.
func (t *Table) VariantToType(tp godotbridge.VariantType, dst, src unsafe.Pointer) error {
	if err := checkType(tp); err != nil {
		return err
	}
	fn := t.toTypeCtor(tp)
	if fn == nil {
		return errors.Unsupported(errors.PhaseVariant, "no to-type constructor for "+tp.String())
	}
	C.gdx_call_to_type(fn, dst, src)
	return nil
}

// OperatorEvaluator returns the host's ptr evaluator for op on (a, b).
func (t *Table) OperatorEvaluator(op godotbridge.Operator, a, b godotbridge.VariantType) unsafe.Pointer {
	return C.gdx_variant_get_ptr_operator_evaluator(t.procs[symbols.VariantGetPtrOperatorEvaluator],
		C.GDExtensionVariantOperator(op), C.GDExtensionVariantType(a), C.GDExtensionVariantType(b))
}

// UtilityFunction returns the host's utility function pointer.
func (t *Table) UtilityFunction(name string, hash int64) unsafe.Pointer {
	sn, ok := t.name("variant_get_ptr_utility_function", name)
	if !ok {
		return nil
	}
	return C.gdx_variant_get_ptr_utility_function(t.procs[symbols.VariantGetPtrUtilityFunction], sn, C.GDExtensionInt(hash))
}

// Arrays

// ArrayIndex returns the address of element index of a native Array.
func (t *Table) ArrayIndex(array unsafe.Pointer, index int64) unsafe.Pointer {
	return C.gdx_operator_index(t.procs[symbols.ArrayOperatorIndex], array, C.GDExtensionInt(index))
}

// ArraySetTyped restricts a native Array to one element type.
func (t *Table) ArraySetTyped(array unsafe.Pointer, tp godotbridge.VariantType, className string, script unsafe.Pointer) {
	sn, ok := t.name("array_set_typed", className)
	if !ok {
		return
	}
	C.gdx_array_set_typed(t.procs[symbols.ArraySetTyped], array, C.GDExtensionVariantType(tp), sn, script)
}

// Objects

// ObjectDestroy frees a native object.
func (t *Table) ObjectDestroy(obj unsafe.Pointer) {
	C.gdx_object_destroy(t.procs[symbols.ObjectDestroy], obj)
}

// GlobalGetSingleton returns the engine singleton with the given name.
func (t *Table) GlobalGetSingleton(name string) unsafe.Pointer {
	sn, ok := t.name("global_get_singleton", name)
	if !ok {
		return nil
	}
	return C.gdx_ptr_from_name(t.procs[symbols.GlobalGetSingleton], sn)
}

// ClassdbConstructObject instantiates a registered class.
func (t *Table) ClassdbConstructObject(class string) unsafe.Pointer {
	sn, ok := t.name("classdb_construct_object", class)
	if !ok {
		return nil
	}
	return C.gdx_ptr_from_name(t.procs[symbols.ClassdbConstructObject], sn)
}

// ClassdbGetClassTag returns the host's tag for a class.
func (t *Table) ClassdbGetClassTag(class string) unsafe.Pointer {
	sn, ok := t.name("classdb_get_class_tag", class)
	if !ok {
		return nil
	}
	return C.gdx_ptr_from_name(t.procs[symbols.ClassdbGetClassTag], sn)
}

// ClassdbGetMethodBind looks up a method bind by class, name and hash.
func (t *Table) ClassdbGetMethodBind(class, method string, hash int64) unsafe.Pointer {
	cn, ok := t.name("classdb_get_method_bind", class)
	if !ok {
		return nil
	}
	mn, ok := t.name("classdb_get_method_bind", method)
	if !ok {
		return nil
	}
	return C.gdx_classdb_get_method_bind(t.procs[symbols.ClassdbGetMethodBind], cn, mn, C.GDExtensionInt(hash))
}

// ClassdbUnregisterExtensionClass removes a class registered by this library.
func (t *Table) ClassdbUnregisterExtensionClass(class string) {
	sn, ok := t.name("classdb_unregister_extension_class", class)
	if !ok {
		return
	}
	C.gdx_classdb_unregister_class(t.procs[symbols.ClassdbUnregisterExtensionClass], t.library, sn)
}

// RefGetObject returns the object held by a native Ref.
func (t *Table) RefGetObject(ref unsafe.Pointer) unsafe.Pointer {
	return C.gdx_ref_get_object(t.procs[symbols.RefGetObject], ref)
}

// ObjectGetClassName returns the class name of obj as seen by this library.
func (t *Table) ObjectGetClassName(obj unsafe.Pointer) (string, bool) {
	sn := t.MemAlloc(godotbridge.StringNameSize)
	defer t.MemFree(sn)
	if C.gdx_object_get_class_name(t.procs[symbols.ObjectGetClassName], obj, t.library, sn) == 0 {
		return "", false
	}
	name := t.StringNameToUTF8(sn)
	_ = t.BuiltinDestroy(godotbridge.TypeStringName, sn)
	return name, true
}

// ObjectHasScriptMethod reports whether obj's script defines method.
func (t *Table) ObjectHasScriptMethod(obj unsafe.Pointer, method string) bool {
	sn, ok := t.name("object_has_script_method", method)
	if !ok {
		return false
	}
	return C.gdx_object_has_script_method(t.procs[symbols.ObjectHasScriptMethod], obj, sn) != 0
}

// ObjectSetInstance attaches an extension instance to obj.
func (t *Table) ObjectSetInstance(obj unsafe.Pointer, class string, instance unsafe.Pointer) {
	sn, ok := t.name("object_set_instance", class)
	if !ok {
		return
	}
	C.gdx_object_set_instance(t.procs[symbols.ObjectSetInstance], obj, sn, instance)
}

// ObjectFreeInstanceBinding drops the binding registered under token.
func (t *Table) ObjectFreeInstanceBinding(obj, token unsafe.Pointer) {
	C.gdx_object_free_instance_binding(t.procs[symbols.ObjectFreeInstanceBinding], obj, token)
}

// ObjectMethodBindPtrcall calls a method bind with native-typed arguments.
func (t *Table) ObjectMethodBindPtrcall(bind, obj unsafe.Pointer, args []unsafe.Pointer, ret unsafe.Pointer) {
	callArgs(args, func(argv *unsafe.Pointer) {
		C.gdx_object_method_bind_ptrcall(t.procs[symbols.ObjectMethodBindPtrcall], bind, obj, argv, ret)
	})
}

// ObjectMethodBindCall calls a method bind with Variant arguments.
func (t *Table) ObjectMethodBindCall(bind, obj unsafe.Pointer, args []unsafe.Pointer, dst unsafe.Pointer) godotbridge.CallResult {
	var cerr C.GDExtensionCallError
	callArgs(args, func(argv *unsafe.Pointer) {
		C.gdx_object_method_bind_call(t.procs[symbols.ObjectMethodBindCall], bind, obj, argv, C.GDExtensionInt(len(args)), dst, &cerr)
	})
	return callResult(cerr)
}

// ObjectCallScriptMethod calls a script method on obj.
func (t *Table) ObjectCallScriptMethod(obj unsafe.Pointer, method string, args []unsafe.Pointer, dst unsafe.Pointer) godotbridge.CallResult {
	var cerr C.GDExtensionCallError
	sn, ok := t.name("object_call_script_method", method)
	if !ok {
		return godotbridge.CallResult{Code: godotbridge.CallErrorInvalidMethod}
	}
	callArgs(args, func(argv *unsafe.Pointer) {
		C.gdx_object_call_script_method(t.procs[symbols.ObjectCallScriptMethod], obj, sn, argv, C.GDExtensionInt(len(args)), dst, &cerr)
	})
	return callResult(cerr)
}

// EditorAddPlugin registers an editor plugin class.
func (t *Table) EditorAddPlugin(class string) {
	if sn, ok := t.name("editor_add_plugin", class); ok {
		C.gdx_with_name(t.procs[symbols.EditorAddPlugin], sn)
	}
}

// EditorRemovePlugin unregisters an editor plugin class.
func (t *Table) EditorRemovePlugin(class string) {
	if sn, ok := t.name("editor_remove_plugin", class); ok {
		C.gdx_with_name(t.procs[symbols.EditorRemovePlugin], sn)
	}
}
