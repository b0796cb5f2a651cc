// Package ffi resolves the host's GDExtension entry points and exposes them
// as typed Go calls. Resolved pointers are stored untyped; every call goes
// through a C trampoline in bridge.c that casts the pointer to its exact
// signature, so no other package ever handles an unchecked cast.
package ffi

/*
#include <stdlib.h>
#include "bridge.h"
*/
import "C"

import (
	"strconv"
	"strings"
	"sync"
	"unsafe"

	"go.uber.org/zap"

	godotbridge "github.com/wippyai/godot-bridge"
	"github.com/wippyai/godot-bridge/errors"
	"github.com/wippyai/godot-bridge/symbols"
)

// Table is a populated, immutable set of entry points. Derived entry points
// (type constructors, builtin methods) are resolved lazily and cached on the
// table, so they are discarded together with its generation.
type Table struct {
	procs      [symbols.Count]unsafe.Pointer
	getProc    unsafe.Pointer
	library    unsafe.Pointer
	generation uint64

	mu       sync.Mutex
	fromType [godotbridge.TypeMax]unsafe.Pointer
	toType   [godotbridge.TypeMax]unsafe.Pointer
	ctors    map[ctorKey]unsafe.Pointer
	dtors    [godotbridge.TypeMax]unsafe.Pointer
	dtorDone [godotbridge.TypeMax]bool
	builtins map[builtinKey]unsafe.Pointer
	names    map[string]unsafe.Pointer
	closed   bool
}

type ctorKey struct {
	t     godotbridge.VariantType
	index int32
}

type builtinKey struct {
	t    godotbridge.VariantType
	name string
	hash int64
}

// Load resolves every catalogued entry point through getProc. When any are
// missing it returns a *errors.MissingSymbolsError naming all of them; the
// table is never partially populated.
func Load(getProc, library unsafe.Pointer) (*Table, error) {
	if getProc == nil {
		return nil, errors.NilPointer(errors.PhaseLoad, []string{"get_proc_address"}, "GDExtensionInterfaceGetProcAddress")
	}

	t := &Table{
		getProc:  getProc,
		library:  library,
		ctors:    make(map[ctorKey]unsafe.Pointer),
		builtins: make(map[builtinKey]unsafe.Pointer),
		names:    make(map[string]unsafe.Pointer),
	}

	var missing []errors.MissingSymbol
	for _, e := range symbols.All() {
		p := resolve(getProc, e.Name)
		if p == nil {
			missing = append(missing, errors.MissingSymbol{
				Group: e.Group,
				Name:  e.Name,
				Hints: revisionHints(getProc, e.Name),
			})
			continue
		}
		t.procs[e.ID] = p
	}

	if len(missing) > 0 {
		err := &errors.MissingSymbolsError{Symbols: missing}
		Logger().Error("function table incomplete", zap.Int("missing", len(missing)), zap.Error(err))
		return nil, err
	}

	t.generation = NextGeneration()
	Logger().Debug("function table loaded",
		zap.Int("entries", symbols.Count),
		zap.Uint64("generation", t.generation))
	return t, nil
}

// MustLoad is Load for the entry point: an incomplete table is a
// configuration failure and terminates the process.
func MustLoad(getProc, library unsafe.Pointer) *Table {
	t, err := Load(getProc, library)
	if err != nil {
		Logger().Fatal("cannot load function table", zap.Error(err))
	}
	return t
}

func resolve(getProc unsafe.Pointer, name string) unsafe.Pointer {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return C.gdx_get_proc(getProc, cname)
}

// revisionHints asks the host for other numbered revisions of a missing
// entry point (foo, foo2, foo3, ...) and returns the ones it provides.
func revisionHints(getProc unsafe.Pointer, name string) []string {
	base := strings.TrimRight(name, "0123456789")
	var hints []string
	for rev := 1; rev <= 5; rev++ {
		cand := base
		if rev > 1 {
			cand += strconv.Itoa(rev)
		}
		if cand == name {
			continue
		}
		if resolve(getProc, cand) != nil {
			hints = append(hints, cand)
		}
	}
	return hints
}

// Proc returns the raw entry point for id, for callers that bring their own
// trampoline (class registration is driven by generated code).
func (t *Table) Proc(id symbols.ID) unsafe.Pointer {
	return t.procs[id]
}

// GetProcAddress returns the resolver this table was loaded from.
func (t *Table) GetProcAddress() unsafe.Pointer {
	return t.getProc
}

// Library returns the library handle passed to Load.
func (t *Table) Library() unsafe.Pointer {
	return t.library
}

// Generation returns the generation this table was stamped with.
func (t *Table) Generation() uint64 {
	return t.generation
}

// Stale reports whether a newer table has been loaded since this one.
func (t *Table) Stale() bool {
	return t.generation != Generation()
}

// Close releases cached StringNames. The table must not be used afterwards.
func (t *Table) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	names := t.names
	t.names = nil
	t.mu.Unlock()

	for _, p := range names {
		_ = t.BuiltinDestroy(godotbridge.TypeStringName, p)
		t.MemFree(p)
	}
}

// Abandon closes the table without calling into the host. Cached
// StringNames are dropped unreleased; their storage belongs to a runtime
// that may no longer exist. It returns the number of names dropped.
func (t *Table) Abandon() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return 0
	}
	t.closed = true
	n := len(t.names)
	t.names = nil
	return n
}

// stringName returns a cached native StringName for s. A closed table
// allocates nothing.
func (t *Table) stringName(s string) (unsafe.Pointer, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil, errors.New(errors.PhaseLoad, errors.KindClosed).
			Path("string_name").
			Detail("table of generation %d is closed, cannot intern %q", t.generation, s).
			Build()
	}
	if p, ok := t.names[s]; ok {
		return p, nil
	}
	p := t.MemAlloc(godotbridge.StringNameSize)
	if p == nil {
		return nil, errors.AllocationFailed(errors.PhaseLoad, godotbridge.StringNameSize)
	}
	t.StringNameNew(p, s)
	t.names[s] = p
	return p, nil
}

// name is stringName for wrappers without an error result. Failures are
// logged and reported as !ok.
func (t *Table) name(op, s string) (unsafe.Pointer, bool) {
	p, err := t.stringName(s)
	if err != nil {
		Logger().Error("cannot resolve name", zap.String("op", op), zap.Error(err))
		return nil, false
	}
	return p, true
}

func (t *Table) fromTypeCtor(tp godotbridge.VariantType) unsafe.Pointer {
	t.mu.Lock()
	defer t.mu.Unlock()
	if p := t.fromType[tp]; p != nil {
		return p
	}
	p := C.gdx_lookup_by_type(t.procs[symbols.GetVariantFromTypeConstructor], C.GDExtensionVariantType(tp))
	t.fromType[tp] = p
	return p
}

func (t *Table) toTypeCtor(tp godotbridge.VariantType) unsafe.Pointer {
	t.mu.Lock()
	defer t.mu.Unlock()
	if p := t.toType[tp]; p != nil {
		return p
	}
	p := C.gdx_lookup_by_type(t.procs[symbols.GetVariantToTypeConstructor], C.GDExtensionVariantType(tp))
	t.toType[tp] = p
	return p
}

func (t *Table) ptrConstructor(tp godotbridge.VariantType, index int32) unsafe.Pointer {
	key := ctorKey{tp, index}
	t.mu.Lock()
	defer t.mu.Unlock()
	if p, ok := t.ctors[key]; ok {
		return p
	}
	p := C.gdx_variant_get_ptr_constructor(t.procs[symbols.VariantGetPtrConstructor], C.GDExtensionVariantType(tp), C.int32_t(index))
	if p != nil {
		t.ctors[key] = p
	}
	return p
}

// ptrDestructor may legitimately be nil for types without a destructor, so
// resolution is remembered separately from the pointer.
func (t *Table) ptrDestructor(tp godotbridge.VariantType) unsafe.Pointer {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.dtorDone[tp] {
		return t.dtors[tp]
	}
	p := C.gdx_lookup_by_type(t.procs[symbols.VariantGetPtrDestructor], C.GDExtensionVariantType(tp))
	t.dtors[tp] = p
	t.dtorDone[tp] = true
	return p
}

func (t *Table) builtinMethod(tp godotbridge.VariantType, name string, hash int64) (unsafe.Pointer, error) {
	key := builtinKey{tp, name, hash}
	t.mu.Lock()
	p, ok := t.builtins[key]
	t.mu.Unlock()
	if ok {
		return p, nil
	}

	sn, err := t.stringName(name)
	if err != nil {
		return nil, err
	}
	p = C.gdx_variant_get_ptr_builtin_method(t.procs[symbols.VariantGetPtrBuiltinMethod], C.GDExtensionVariantType(tp), sn, C.GDExtensionInt(hash))
	if p == nil {
		return nil, errors.New(errors.PhaseLoad, errors.KindMissingSymbol).
			NativeType(tp.String()).
			Detail("builtin method %s (hash %d) not provided", name, hash).
			Build()
	}

	t.mu.Lock()
	t.builtins[key] = p
	t.mu.Unlock()
	return p, nil
}
