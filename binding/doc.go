// Package binding associates native object handles with Go wrapper values.
//
// The host identifies objects by address. When the Go runtime side is
// reloaded inside a live host process, addresses bound by the previous
// generation may be reused for unrelated objects, so every binding is
// tagged with the Domain that created it:
//
//	reg := binding.NewRegistry(binding.WithNative(table))
//	reg.SetDomain(2)
//
//	_ = reg.Bind(obj, wrapper, reg.Domain())
//
//	w, err := reg.Lookup(obj)
//	switch {
//	case errors.Is(err, binding.ErrNotBound):
//	    // never bound, or already released
//	case errors.Is(err, &bridgeerrors.Error{Phase: bridgeerrors.PhaseBinding, Kind: bridgeerrors.KindStaleBinding}):
//	    // bound by an earlier domain; the wrapper must not be used
//	}
//
// # Hooks
//
// ObjectInited runs once after a handle becomes bound and ObjectDeinited
// runs once after it stops being bound, whichever of Unbind, Release, Clear
// or Close ends the binding. Hooks and observers run without the registry
// lock held, so they may call back into the registry.
//
// # Release
//
// Unbind only forgets the association. Release also destroys the native
// object through the host unless Hooks.ShouldDeinit vetoes it, and calls
// Drop on wrappers implementing Dropper.
package binding
