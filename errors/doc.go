// Package errors provides structured error types for the bridge.
//
// Errors are categorized by Phase (which bridge component raised it) and Kind
// (error category). The Error type carries the Go and native type names, an
// optional path (symbol name, slot address, index) and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseVariant, errors.KindTypeMismatch).
//		Path("slot", "0xc000010000").
//		GoType("string").
//		NativeType("Vector2").
//		Detail("cannot read as string").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OutOfBounds(errors.PhasePacked, path, 10, 5)
//	err := errors.StaleBinding(handle, 1, 2)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
