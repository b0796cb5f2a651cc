// Package godotbridge provides a Go implementation of the GDExtension
// foreign-function bridge.
//
// The native engine loads a shared library built from Go, hands it a
// get_proc_address function, a library handle and an initialization record,
// and from then on drives the library through a leveled init/deinit
// lifecycle. This module is the part of that story that has to be right:
// resolving the engine's entry points, pairing Variant construction with
// destruction, bounds-checking packed array access and keeping object
// bindings from leaking across runtime reloads.
//
// # Architecture Overview
//
//	godotbridge/         Root package with the shared data model
//	├── symbols/         Catalogue of every native entry point the bridge needs
//	├── ffi/             cgo function table loader and typed native calls
//	├── lifecycle/       Per-library initialization level dispatch
//	├── variant/         Variant slot construction, access and destruction
//	├── packed/          Bounds-checked views over native packed arrays
//	├── binding/         Native object handle to Go wrapper registry
//	├── extension/       Process state and the host entry point
//	├── config/          Viper-backed configuration
//	└── errors/          Structured error types
//
// # Quick Start
//
// From a c-shared library entry point:
//
//	//export gdext_go_init
//	func gdext_go_init(getProc, library, record unsafe.Pointer) C.uint8_t {
//	    ok := extension.Initialize(getProc, library, record,
//	        func(level lifecycle.Level) {
//	            if level == lifecycle.Scene {
//	                registerClasses()
//	            }
//	        },
//	        func(level lifecycle.Level) {},
//	    )
//	    if !ok {
//	        return 0
//	    }
//	    return 1
//	}
//
// # Error Tiers
//
// Configuration failures (a missing native entry point, a native layout the
// Go mirrors cannot describe) terminate the process from the entry point.
// Everything else (wrong call arity, stale object handles, out-of-range
// packed array indices, malformed lifecycle levels) is returned as an error.
//
// # Thread Safety
//
// The function table is written once and then only read. The lifecycle
// registry, binding registry and Variant bridge are safe for concurrent use.
// Packed arrays are not; the native buffer they point to is not either.
package godotbridge
