// Catalogue of gdextension_interface.h entry points. The order defines ID values
// and must match the slot layout in ffi/bridge.c.

package symbols

// Entry point identifiers, in catalogue order.
const (
	MemAlloc ID = iota
	MemRealloc
	MemFree
	PrintError
	PrintErrorWithMessage
	PrintWarning
	PrintWarningWithMessage
	PrintScriptError
	PrintScriptErrorWithMessage
	StringNewWithUTF8Chars
	StringToUTF8Chars
	StringNameNewWithLatin1Chars
	GetNativeStructSize
	ClassdbConstructObject
	ClassdbGetMethodBind
	ClassdbGetClassTag
	ClassdbRegisterExtensionClass
	ClassdbRegisterExtensionClassSignal
	ClassdbRegisterExtensionClassMethod
	ClassdbRegisterExtensionClassProperty
	ClassdbRegisterExtensionClassPropertyGroup
	ClassdbRegisterExtensionClassPropertySubgroup
	ClassdbUnregisterExtensionClass
	ObjectSetInstance
	ObjectGetInstanceBinding
	ObjectSetInstanceBinding
	ObjectFreeInstanceBinding
	ObjectGetClassName
	ObjectMethodBindPtrcall
	ObjectDestroy
	ObjectHasScriptMethod
	ObjectCallScriptMethod
	GlobalGetSingleton
	RefGetObject
	ObjectMethodBindCall
	VariantNewNil
	VariantNewCopy
	VariantEvaluate
	VariantHash
	VariantDestroy
	VariantGet
	VariantSet
	VariantGetType
	VariantGetTypeName
	VariantStringify
	VariantCall
	VariantCallStatic
	VariantGetIndexed
	VariantSetIndexed
	VariantConstruct
	VariantGetPtrConstructor
	VariantGetPtrBuiltinMethod
	VariantGetPtrOperatorEvaluator
	VariantGetPtrUtilityFunction
	VariantGetPtrDestructor
	VariantGetPtrIndexedGetter
	VariantGetPtrIndexedSetter
	VariantGetPtrKeyedChecker
	VariantGetPtrKeyedGetter
	VariantGetPtrKeyedSetter
	VariantGetNamed
	GetVariantFromTypeConstructor
	GetVariantToTypeConstructor
	ArrayOperatorIndex
	ArraySetTyped
	PackedStringArrayOperatorIndex
	PackedStringArrayOperatorIndexConst
	PackedByteArrayOperatorIndex
	PackedByteArrayOperatorIndexConst
	PackedColorArrayOperatorIndex
	PackedColorArrayOperatorIndexConst
	PackedFloat32ArrayOperatorIndex
	PackedFloat32ArrayOperatorIndexConst
	PackedFloat64ArrayOperatorIndex
	PackedFloat64ArrayOperatorIndexConst
	PackedInt32ArrayOperatorIndex
	PackedInt32ArrayOperatorIndexConst
	PackedInt64ArrayOperatorIndex
	PackedInt64ArrayOperatorIndexConst
	PackedVector2ArrayOperatorIndex
	PackedVector2ArrayOperatorIndexConst
	PackedVector3ArrayOperatorIndex
	PackedVector3ArrayOperatorIndexConst
	PackedVector4ArrayOperatorIndex
	PackedVector4ArrayOperatorIndexConst
	CallableCustomCreate
	EditorAddPlugin
	EditorRemovePlugin

	Count int = iota
)

var catalogue = [...]Entry{
	{ID: MemAlloc, Name: "mem_alloc", Group: "memory", Signature: "void *(*)(size_t p_bytes)"},
	{ID: MemRealloc, Name: "mem_realloc", Group: "memory", Signature: "void *(*)(void *p_ptr, size_t p_bytes)"},
	{ID: MemFree, Name: "mem_free", Group: "memory", Signature: "void (*)(void *p_ptr)"},
	{ID: PrintError, Name: "print_error", Group: "print", Signature: "void (*)(const char *p_description, const char *p_function, const char *p_file, int32_t p_line, GDExtensionBool p_editor_notify)"},
	{ID: PrintErrorWithMessage, Name: "print_error_with_message", Group: "print", Signature: "void (*)(const char *p_description, const char *p_message, const char *p_function, const char *p_file, int32_t p_line, GDExtensionBool p_editor_notify)"},
	{ID: PrintWarning, Name: "print_warning", Group: "print", Signature: "void (*)(const char *p_description, const char *p_function, const char *p_file, int32_t p_line, GDExtensionBool p_editor_notify)"},
	{ID: PrintWarningWithMessage, Name: "print_warning_with_message", Group: "print", Signature: "void (*)(const char *p_description, const char *p_message, const char *p_function, const char *p_file, int32_t p_line, GDExtensionBool p_editor_notify)"},
	{ID: PrintScriptError, Name: "print_script_error", Group: "print", Signature: "void (*)(const char *p_description, const char *p_function, const char *p_file, int32_t p_line, GDExtensionBool p_editor_notify)"},
	{ID: PrintScriptErrorWithMessage, Name: "print_script_error_with_message", Group: "print", Signature: "void (*)(const char *p_description, const char *p_message, const char *p_function, const char *p_file, int32_t p_line, GDExtensionBool p_editor_notify)"},
	{ID: StringNewWithUTF8Chars, Name: "string_new_with_utf8_chars", Group: "string", Signature: "void (*)(GDExtensionUninitializedStringPtr r_dest, const char *p_contents)"},
	{ID: StringToUTF8Chars, Name: "string_to_utf8_chars", Group: "string", Signature: "GDExtensionInt (*)(GDExtensionConstStringPtr p_self, char *r_text, GDExtensionInt p_max_write_length)"},
	{ID: StringNameNewWithLatin1Chars, Name: "string_name_new_with_latin1_chars", Group: "string", Signature: "void (*)(GDExtensionUninitializedStringNamePtr r_dest, const char *p_contents, GDExtensionBool p_is_static)"},
	{ID: GetNativeStructSize, Name: "get_native_struct_size", Group: "string", Signature: "uint64_t (*)(GDExtensionConstStringNamePtr p_name)"},
	{ID: ClassdbConstructObject, Name: "classdb_construct_object", Group: "classdb", Signature: "GDExtensionObjectPtr (*)(GDExtensionConstStringNamePtr p_classname)"},
	{ID: ClassdbGetMethodBind, Name: "classdb_get_method_bind", Group: "classdb", Signature: "GDExtensionMethodBindPtr (*)(GDExtensionConstStringNamePtr p_classname, GDExtensionConstStringNamePtr p_methodname, GDExtensionInt p_hash)"},
	{ID: ClassdbGetClassTag, Name: "classdb_get_class_tag", Group: "classdb", Signature: "void *(*)(GDExtensionConstStringNamePtr p_classname)"},
	{ID: ClassdbRegisterExtensionClass, Name: "classdb_register_extension_class2", Group: "classdb", Signature: "void (*)(GDExtensionClassLibraryPtr p_library, GDExtensionConstStringNamePtr p_class_name, GDExtensionConstStringNamePtr p_parent_class_name, const GDExtensionClassCreationInfo2 *p_extension_funcs)"},
	{ID: ClassdbRegisterExtensionClassSignal, Name: "classdb_register_extension_class_signal", Group: "classdb", Signature: "void (*)(GDExtensionClassLibraryPtr p_library, GDExtensionConstStringNamePtr p_class_name, GDExtensionConstStringNamePtr p_signal_name, const GDExtensionPropertyInfo *p_argument_info, GDExtensionInt p_argument_count)"},
	{ID: ClassdbRegisterExtensionClassMethod, Name: "classdb_register_extension_class_method", Group: "classdb", Signature: "void (*)(GDExtensionClassLibraryPtr p_library, GDExtensionConstStringNamePtr p_class_name, const GDExtensionClassMethodInfo *p_method_info)"},
	{ID: ClassdbRegisterExtensionClassProperty, Name: "classdb_register_extension_class_property", Group: "classdb", Signature: "void (*)(GDExtensionClassLibraryPtr p_library, GDExtensionConstStringNamePtr p_class_name, const GDExtensionPropertyInfo *p_info, GDExtensionConstStringNamePtr p_setter, GDExtensionConstStringNamePtr p_getter)"},
	{ID: ClassdbRegisterExtensionClassPropertyGroup, Name: "classdb_register_extension_class_property_group", Group: "classdb", Signature: "void (*)(GDExtensionClassLibraryPtr p_library, GDExtensionConstStringNamePtr p_class_name, GDExtensionConstStringPtr p_group_name, GDExtensionConstStringPtr p_prefix)"},
	{ID: ClassdbRegisterExtensionClassPropertySubgroup, Name: "classdb_register_extension_class_property_subgroup", Group: "classdb", Signature: "void (*)(GDExtensionClassLibraryPtr p_library, GDExtensionConstStringNamePtr p_class_name, GDExtensionConstStringPtr p_subgroup_name, GDExtensionConstStringPtr p_prefix)"},
	{ID: ClassdbUnregisterExtensionClass, Name: "classdb_unregister_extension_class", Group: "classdb", Signature: "void (*)(GDExtensionClassLibraryPtr p_library, GDExtensionConstStringNamePtr p_class_name)"},
	{ID: ObjectSetInstance, Name: "object_set_instance", Group: "object", Signature: "void (*)(GDExtensionObjectPtr p_o, GDExtensionConstStringNamePtr p_classname, GDExtensionClassInstancePtr p_instance)"},
	{ID: ObjectGetInstanceBinding, Name: "object_get_instance_binding", Group: "object", Signature: "void *(*)(GDExtensionObjectPtr p_o, void *p_token, const GDExtensionInstanceBindingCallbacks *p_callbacks)"},
	{ID: ObjectSetInstanceBinding, Name: "object_set_instance_binding", Group: "object", Signature: "void (*)(GDExtensionObjectPtr p_o, void *p_token, void *p_binding, const GDExtensionInstanceBindingCallbacks *p_callbacks)"},
	{ID: ObjectFreeInstanceBinding, Name: "object_free_instance_binding", Group: "object", Signature: "void (*)(GDExtensionObjectPtr p_o, void *p_token)"},
	{ID: ObjectGetClassName, Name: "object_get_class_name", Group: "object", Signature: "GDExtensionBool (*)(GDExtensionConstObjectPtr p_object, GDExtensionClassLibraryPtr p_library, GDExtensionUninitializedStringNamePtr r_class_name)"},
	{ID: ObjectMethodBindPtrcall, Name: "object_method_bind_ptrcall", Group: "object", Signature: "void (*)(GDExtensionMethodBindPtr p_method_bind, GDExtensionObjectPtr p_instance, const GDExtensionConstTypePtr *p_args, GDExtensionTypePtr r_ret)"},
	{ID: ObjectDestroy, Name: "object_destroy", Group: "object", Signature: "void (*)(GDExtensionObjectPtr p_o)"},
	{ID: ObjectHasScriptMethod, Name: "object_has_script_method", Group: "object", Signature: "GDExtensionBool (*)(GDExtensionConstObjectPtr p_object, GDExtensionConstStringNamePtr p_method)"},
	{ID: ObjectCallScriptMethod, Name: "object_call_script_method", Group: "object", Signature: "void (*)(GDExtensionObjectPtr p_object, GDExtensionConstStringNamePtr p_method, const GDExtensionConstVariantPtr *p_args, GDExtensionInt p_argument_count, GDExtensionUninitializedVariantPtr r_return, GDExtensionCallError *r_error)"},
	{ID: GlobalGetSingleton, Name: "global_get_singleton", Group: "object", Signature: "GDExtensionObjectPtr (*)(GDExtensionConstStringNamePtr p_name)"},
	{ID: RefGetObject, Name: "ref_get_object", Group: "object", Signature: "GDExtensionObjectPtr (*)(GDExtensionConstRefPtr p_ref)"},
	{ID: ObjectMethodBindCall, Name: "object_method_bind_call", Group: "object", Signature: "void (*)(GDExtensionMethodBindPtr p_method_bind, GDExtensionObjectPtr p_instance, const GDExtensionConstVariantPtr *p_args, GDExtensionInt p_arg_count, GDExtensionUninitializedVariantPtr r_ret, GDExtensionCallError *r_error)"},
	{ID: VariantNewNil, Name: "variant_new_nil", Group: "variant", Signature: "void (*)(GDExtensionUninitializedVariantPtr r_dest)"},
	{ID: VariantNewCopy, Name: "variant_new_copy", Group: "variant", Signature: "void (*)(GDExtensionUninitializedVariantPtr r_dest, GDExtensionConstVariantPtr p_src)"},
	{ID: VariantEvaluate, Name: "variant_evaluate", Group: "variant", Signature: "void (*)(GDExtensionVariantOperator p_op, GDExtensionConstVariantPtr p_a, GDExtensionConstVariantPtr p_b, GDExtensionUninitializedVariantPtr r_return, GDExtensionBool *r_valid)"},
	{ID: VariantHash, Name: "variant_hash", Group: "variant", Signature: "GDExtensionInt (*)(GDExtensionConstVariantPtr p_self)"},
	{ID: VariantDestroy, Name: "variant_destroy", Group: "variant", Signature: "void (*)(GDExtensionVariantPtr p_self)"},
	{ID: VariantGet, Name: "variant_get", Group: "variant", Signature: "void (*)(GDExtensionConstVariantPtr p_self, GDExtensionConstVariantPtr p_key, GDExtensionUninitializedVariantPtr r_ret, GDExtensionBool *r_valid)"},
	{ID: VariantSet, Name: "variant_set", Group: "variant", Signature: "void (*)(GDExtensionVariantPtr p_self, GDExtensionConstVariantPtr p_key, GDExtensionConstVariantPtr p_value, GDExtensionBool *r_valid)"},
	{ID: VariantGetType, Name: "variant_get_type", Group: "variant", Signature: "GDExtensionVariantType (*)(GDExtensionConstVariantPtr p_self)"},
	{ID: VariantGetTypeName, Name: "variant_get_type_name", Group: "variant", Signature: "void (*)(GDExtensionVariantType p_type, GDExtensionUninitializedStringPtr r_name)"},
	{ID: VariantStringify, Name: "variant_stringify", Group: "variant", Signature: "void (*)(GDExtensionConstVariantPtr p_self, GDExtensionStringPtr r_ret)"},
	{ID: VariantCall, Name: "variant_call", Group: "variant", Signature: "void (*)(GDExtensionVariantPtr p_self, GDExtensionConstStringNamePtr p_method, const GDExtensionConstVariantPtr *p_args, GDExtensionInt p_argument_count, GDExtensionUninitializedVariantPtr r_return, GDExtensionCallError *r_error)"},
	{ID: VariantCallStatic, Name: "variant_call_static", Group: "variant", Signature: "void (*)(GDExtensionVariantType p_type, GDExtensionConstStringNamePtr p_method, const GDExtensionConstVariantPtr *p_args, GDExtensionInt p_argument_count, GDExtensionUninitializedVariantPtr r_return, GDExtensionCallError *r_error)"},
	{ID: VariantGetIndexed, Name: "variant_get_indexed", Group: "variant", Signature: "void (*)(GDExtensionConstVariantPtr p_self, GDExtensionInt p_index, GDExtensionUninitializedVariantPtr r_ret, GDExtensionBool *r_valid, GDExtensionBool *r_oob)"},
	{ID: VariantSetIndexed, Name: "variant_set_indexed", Group: "variant", Signature: "void (*)(GDExtensionVariantPtr p_self, GDExtensionInt p_index, GDExtensionConstVariantPtr p_value, GDExtensionBool *r_valid, GDExtensionBool *r_oob)"},
	{ID: VariantConstruct, Name: "variant_construct", Group: "variant", Signature: "void (*)(GDExtensionVariantType p_type, GDExtensionUninitializedVariantPtr r_base, const GDExtensionConstVariantPtr *p_args, int32_t p_argument_count, GDExtensionCallError *r_error)"},
	{ID: VariantGetPtrConstructor, Name: "variant_get_ptr_constructor", Group: "variant", Signature: "GDExtensionPtrConstructor (*)(GDExtensionVariantType p_type, int32_t p_constructor)"},
	{ID: VariantGetPtrBuiltinMethod, Name: "variant_get_ptr_builtin_method", Group: "variant", Signature: "GDExtensionPtrBuiltInMethod (*)(GDExtensionVariantType p_type, GDExtensionConstStringNamePtr p_method, GDExtensionInt p_hash)"},
	{ID: VariantGetPtrOperatorEvaluator, Name: "variant_get_ptr_operator_evaluator", Group: "variant", Signature: "GDExtensionPtrOperatorEvaluator (*)(GDExtensionVariantOperator p_operator, GDExtensionVariantType p_type_a, GDExtensionVariantType p_type_b)"},
	{ID: VariantGetPtrUtilityFunction, Name: "variant_get_ptr_utility_function", Group: "variant", Signature: "GDExtensionPtrUtilityFunction (*)(GDExtensionConstStringNamePtr p_function, GDExtensionInt p_hash)"},
	{ID: VariantGetPtrDestructor, Name: "variant_get_ptr_destructor", Group: "variant", Signature: "GDExtensionPtrDestructor (*)(GDExtensionVariantType p_type)"},
	{ID: VariantGetPtrIndexedGetter, Name: "variant_get_ptr_indexed_getter", Group: "variant", Signature: "GDExtensionPtrIndexedGetter (*)(GDExtensionVariantType p_type)"},
	{ID: VariantGetPtrIndexedSetter, Name: "variant_get_ptr_indexed_setter", Group: "variant", Signature: "GDExtensionPtrIndexedSetter (*)(GDExtensionVariantType p_type)"},
	{ID: VariantGetPtrKeyedChecker, Name: "variant_get_ptr_keyed_checker", Group: "variant", Signature: "GDExtensionPtrKeyedChecker (*)(GDExtensionVariantType p_type)"},
	{ID: VariantGetPtrKeyedGetter, Name: "variant_get_ptr_keyed_getter", Group: "variant", Signature: "GDExtensionPtrKeyedGetter (*)(GDExtensionVariantType p_type)"},
	{ID: VariantGetPtrKeyedSetter, Name: "variant_get_ptr_keyed_setter", Group: "variant", Signature: "GDExtensionPtrKeyedSetter (*)(GDExtensionVariantType p_type)"},
	{ID: VariantGetNamed, Name: "variant_get_named", Group: "variant", Signature: "void (*)(GDExtensionConstVariantPtr p_self, GDExtensionConstStringNamePtr p_key, GDExtensionUninitializedVariantPtr r_ret, GDExtensionBool *r_valid)"},
	{ID: GetVariantFromTypeConstructor, Name: "get_variant_from_type_constructor", Group: "variant", Signature: "GDExtensionVariantFromTypeConstructorFunc (*)(GDExtensionVariantType p_type)"},
	{ID: GetVariantToTypeConstructor, Name: "get_variant_to_type_constructor", Group: "variant", Signature: "GDExtensionTypeFromVariantConstructorFunc (*)(GDExtensionVariantType p_type)"},
	{ID: ArrayOperatorIndex, Name: "array_operator_index", Group: "array", Signature: "GDExtensionVariantPtr (*)(GDExtensionTypePtr p_self, GDExtensionInt p_index)"},
	{ID: ArraySetTyped, Name: "array_set_typed", Group: "array", Signature: "void (*)(GDExtensionTypePtr p_self, GDExtensionVariantType p_type, GDExtensionConstStringNamePtr p_class_name, GDExtensionConstVariantPtr p_script)"},
	{ID: PackedStringArrayOperatorIndex, Name: "packed_string_array_operator_index", Group: "packed", Signature: "GDExtensionStringPtr (*)(GDExtensionTypePtr p_self, GDExtensionInt p_index)"},
	{ID: PackedStringArrayOperatorIndexConst, Name: "packed_string_array_operator_index_const", Group: "packed", Signature: "GDExtensionConstStringPtr (*)(GDExtensionConstTypePtr p_self, GDExtensionInt p_index)"},
	{ID: PackedByteArrayOperatorIndex, Name: "packed_byte_array_operator_index", Group: "packed", Signature: "uint8_t *(*)(GDExtensionTypePtr p_self, GDExtensionInt p_index)"},
	{ID: PackedByteArrayOperatorIndexConst, Name: "packed_byte_array_operator_index_const", Group: "packed", Signature: "const uint8_t *(*)(GDExtensionConstTypePtr p_self, GDExtensionInt p_index)"},
	{ID: PackedColorArrayOperatorIndex, Name: "packed_color_array_operator_index", Group: "packed", Signature: "GDExtensionTypePtr (*)(GDExtensionTypePtr p_self, GDExtensionInt p_index)"},
	{ID: PackedColorArrayOperatorIndexConst, Name: "packed_color_array_operator_index_const", Group: "packed", Signature: "GDExtensionConstTypePtr (*)(GDExtensionConstTypePtr p_self, GDExtensionInt p_index)"},
	{ID: PackedFloat32ArrayOperatorIndex, Name: "packed_float32_array_operator_index", Group: "packed", Signature: "float *(*)(GDExtensionTypePtr p_self, GDExtensionInt p_index)"},
	{ID: PackedFloat32ArrayOperatorIndexConst, Name: "packed_float32_array_operator_index_const", Group: "packed", Signature: "const float *(*)(GDExtensionConstTypePtr p_self, GDExtensionInt p_index)"},
	{ID: PackedFloat64ArrayOperatorIndex, Name: "packed_float64_array_operator_index", Group: "packed", Signature: "double *(*)(GDExtensionTypePtr p_self, GDExtensionInt p_index)"},
	{ID: PackedFloat64ArrayOperatorIndexConst, Name: "packed_float64_array_operator_index_const", Group: "packed", Signature: "const double *(*)(GDExtensionConstTypePtr p_self, GDExtensionInt p_index)"},
	{ID: PackedInt32ArrayOperatorIndex, Name: "packed_int32_array_operator_index", Group: "packed", Signature: "int32_t *(*)(GDExtensionTypePtr p_self, GDExtensionInt p_index)"},
	{ID: PackedInt32ArrayOperatorIndexConst, Name: "packed_int32_array_operator_index_const", Group: "packed", Signature: "const int32_t *(*)(GDExtensionConstTypePtr p_self, GDExtensionInt p_index)"},
	{ID: PackedInt64ArrayOperatorIndex, Name: "packed_int64_array_operator_index", Group: "packed", Signature: "int64_t *(*)(GDExtensionTypePtr p_self, GDExtensionInt p_index)"},
	{ID: PackedInt64ArrayOperatorIndexConst, Name: "packed_int64_array_operator_index_const", Group: "packed", Signature: "const int64_t *(*)(GDExtensionConstTypePtr p_self, GDExtensionInt p_index)"},
	{ID: PackedVector2ArrayOperatorIndex, Name: "packed_vector2_array_operator_index", Group: "packed", Signature: "GDExtensionTypePtr (*)(GDExtensionTypePtr p_self, GDExtensionInt p_index)"},
	{ID: PackedVector2ArrayOperatorIndexConst, Name: "packed_vector2_array_operator_index_const", Group: "packed", Signature: "GDExtensionConstTypePtr (*)(GDExtensionConstTypePtr p_self, GDExtensionInt p_index)"},
	{ID: PackedVector3ArrayOperatorIndex, Name: "packed_vector3_array_operator_index", Group: "packed", Signature: "GDExtensionTypePtr (*)(GDExtensionTypePtr p_self, GDExtensionInt p_index)"},
	{ID: PackedVector3ArrayOperatorIndexConst, Name: "packed_vector3_array_operator_index_const", Group: "packed", Signature: "GDExtensionConstTypePtr (*)(GDExtensionConstTypePtr p_self, GDExtensionInt p_index)"},
	{ID: PackedVector4ArrayOperatorIndex, Name: "packed_vector4_array_operator_index", Group: "packed", Signature: "GDExtensionTypePtr (*)(GDExtensionTypePtr p_self, GDExtensionInt p_index)"},
	{ID: PackedVector4ArrayOperatorIndexConst, Name: "packed_vector4_array_operator_index_const", Group: "packed", Signature: "GDExtensionConstTypePtr (*)(GDExtensionConstTypePtr p_self, GDExtensionInt p_index)"},
	{ID: CallableCustomCreate, Name: "callable_custom_create", Group: "plugin", Signature: "void (*)(GDExtensionUninitializedTypePtr r_callable, GDExtensionCallableCustomInfo *p_callable_custom_info)"},
	{ID: EditorAddPlugin, Name: "editor_add_plugin", Group: "plugin", Signature: "void (*)(GDExtensionConstStringNamePtr p_class_name)"},
	{ID: EditorRemovePlugin, Name: "editor_remove_plugin", Group: "plugin", Signature: "void (*)(GDExtensionConstStringNamePtr p_class_name)"},
}
