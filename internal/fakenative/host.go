// Package fakenative is a pure-Go stand-in for the host's function table.
// Native storage is Go memory kept alive by the fake; Variants, Strings and
// packed arrays use the same sizes as the real host so the bridge code under
// test is unchanged. The fake records every contract violation it can see
// (destroying a dead Variant, indexing past the end, freeing unknown memory)
// so tests can assert the bridge never commits one.
//
// A Host is not safe for concurrent use except for ObjectDestroy.
package fakenative

import (
	"fmt"
	"sync"
	"testing"
	"unsafe"

	godotbridge "github.com/wippyai/godot-bridge"
	"github.com/wippyai/godot-bridge/errors"
)

// Stats counts native calls.
type Stats struct {
	Allocs          int
	Frees           int
	VariantDestroys int
	IndexCalls      int
	Calls           int
}

// Host implements the variant, packed and binding Native interfaces.
type Host struct {
	blocks   map[unsafe.Pointer][]uint64
	strs     map[uint64]string
	arrays   map[uint64]*array
	dicts    map[uint64]map[any]any
	variants map[unsafe.Pointer]bool
	nextID   uint64

	violations []string
	Stats      Stats

	// FailAlloc makes MemAlloc return nil.
	FailAlloc bool
	// ForceCall, when set, is returned by every VariantCall.
	ForceCall *godotbridge.CallResult

	objMu     sync.Mutex
	destroyed []unsafe.Pointer
}

// New creates an empty host.
func New() *Host {
	return &Host{
		blocks:   make(map[unsafe.Pointer][]uint64),
		strs:     make(map[uint64]string),
		arrays:   make(map[uint64]*array),
		dicts:    make(map[uint64]map[any]any),
		variants: make(map[unsafe.Pointer]bool),
	}
}

func (h *Host) violate(format string, args ...any) {
	h.violations = append(h.violations, fmt.Sprintf(format, args...))
}

// Violations returns every contract violation observed so far.
func (h *Host) Violations() []string {
	return append([]string(nil), h.violations...)
}

// Outstanding returns the number of live allocations.
func (h *Host) Outstanding() int {
	return len(h.blocks)
}

// LiveVariants returns the number of constructed Variants.
func (h *Host) LiveVariants() int {
	return len(h.variants)
}

// IsLiveVariant reports whether a Variant is constructed at p.
func (h *Host) IsLiveVariant(p unsafe.Pointer) bool {
	return h.variants[p]
}

// LiveStrings returns the number of native Strings and StringNames alive.
func (h *Host) LiveStrings() int {
	return len(h.strs)
}

// AssertClean fails t on any violation, leaked allocation or live Variant.
func (h *Host) AssertClean(t testing.TB) {
	t.Helper()
	for _, v := range h.violations {
		t.Errorf("native contract violation: %s", v)
	}
	if n := h.Outstanding(); n != 0 {
		t.Errorf("%d native allocations leaked", n)
	}
	if n := h.LiveVariants(); n != 0 {
		t.Errorf("%d native variants still constructed", n)
	}
	if n := h.LiveStrings(); n != 0 {
		t.Errorf("%d native strings leaked", n)
	}
}

func (h *Host) id() uint64 {
	h.nextID++
	return h.nextID
}

// Memory

func (h *Host) MemAlloc(size uintptr) unsafe.Pointer {
	if h.FailAlloc {
		return nil
	}
	words := make([]uint64, max(1, (size+7)/8))
	p := unsafe.Pointer(&words[0])
	h.blocks[p] = words
	h.Stats.Allocs++
	return p
}

func (h *Host) MemFree(ptr unsafe.Pointer) {
	if _, ok := h.blocks[ptr]; !ok {
		h.violate("free of unknown pointer %p", ptr)
		return
	}
	delete(h.blocks, ptr)
	h.Stats.Frees++
}

// Strings

func (h *Host) newString(s string) uint64 {
	id := h.id()
	h.strs[id] = s
	return id
}

func (h *Host) StringNew(dst unsafe.Pointer, s string) {
	*(*uint64)(dst) = h.newString(s)
}

func (h *Host) StringToUTF8(src unsafe.Pointer) string {
	id := *(*uint64)(src)
	s, ok := h.strs[id]
	if !ok && id != 0 {
		h.violate("read of dead string %d", id)
	}
	return s
}

func (h *Host) StringNameNew(dst unsafe.Pointer, s string) {
	h.StringNew(dst, s)
}

func (h *Host) freeString(p unsafe.Pointer) {
	id := *(*uint64)(p)
	if id == 0 {
		return
	}
	if _, ok := h.strs[id]; !ok {
		h.violate("double free of string %d", id)
	}
	delete(h.strs, id)
	*(*uint64)(p) = 0
}

// Builtins

func (h *Host) BuiltinConstruct(t godotbridge.VariantType, dst unsafe.Pointer) error {
	switch {
	case t == godotbridge.TypeString || t == godotbridge.TypeStringName:
		*(*uint64)(dst) = h.newString("")
	case t.IsPacked():
		h.newArray(t, dst)
	default:
		return errors.Unsupported(errors.PhaseVariant, "fake has no constructor for "+t.String())
	}
	return nil
}

func (h *Host) BuiltinDestroy(t godotbridge.VariantType, ptr unsafe.Pointer) error {
	switch {
	case t == godotbridge.TypeString || t == godotbridge.TypeStringName:
		h.freeString(ptr)
	case t.IsPacked():
		h.freeArray(t, ptr)
	}
	return nil
}

// Objects

// ObjectDestroy records obj as destroyed.
func (h *Host) ObjectDestroy(obj unsafe.Pointer) {
	h.objMu.Lock()
	h.destroyed = append(h.destroyed, obj)
	h.objMu.Unlock()
}

// DestroyedObjects returns the objects passed to ObjectDestroy, in order.
func (h *Host) DestroyedObjects() []unsafe.Pointer {
	h.objMu.Lock()
	defer h.objMu.Unlock()
	return append([]unsafe.Pointer(nil), h.destroyed...)
}

func copyBytes(dst, src unsafe.Pointer, n uintptr) {
	if n == 0 {
		return
	}
	copy(unsafe.Slice((*byte)(dst), n), unsafe.Slice((*byte)(src), n))
}
