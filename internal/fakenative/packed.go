package fakenative

import (
	"unsafe"

	godotbridge "github.com/wippyai/godot-bridge"
	"github.com/wippyai/godot-bridge/errors"
)

// Packed array handle layout: array id in the first 8 of 16 bytes.

type array struct {
	t     godotbridge.VariantType
	elem  uintptr
	words []uint64
	n     int64
}

func (a *array) at(i int64) unsafe.Pointer {
	return unsafe.Add(unsafe.Pointer(&a.words[0]), uintptr(i)*a.elem)
}

func elemSize(t godotbridge.VariantType) uintptr {
	switch t {
	case godotbridge.TypePackedByteArray:
		return 1
	case godotbridge.TypePackedInt32Array, godotbridge.TypePackedFloat32Array:
		return 4
	case godotbridge.TypePackedInt64Array, godotbridge.TypePackedFloat64Array,
		godotbridge.TypePackedStringArray, godotbridge.TypePackedVector2Array:
		return 8
	case godotbridge.TypePackedVector3Array:
		return 12
	case godotbridge.TypePackedColorArray, godotbridge.TypePackedVector4Array:
		return 16
	}
	return 0
}

func (h *Host) newArray(t godotbridge.VariantType, dst unsafe.Pointer) {
	id := h.id()
	h.arrays[id] = &array{t: t, elem: elemSize(t), words: make([]uint64, 1)}
	*(*uint64)(dst) = id
}

func (h *Host) array(t godotbridge.VariantType, handle unsafe.Pointer, op string) *array {
	a, ok := h.arrays[*(*uint64)(handle)]
	if !ok {
		h.violate("%s on dead packed array", op)
		return nil
	}
	if a.t != t {
		h.violate("%s as %s on %s", op, t, a.t)
		return nil
	}
	return a
}

func (h *Host) freeArray(t godotbridge.VariantType, handle unsafe.Pointer) {
	a := h.array(t, handle, "destroy")
	if a == nil {
		return
	}
	h.resize(a, 0)
	delete(h.arrays, *(*uint64)(handle))
	*(*uint64)(handle) = 0
}

func (h *Host) resize(a *array, n int64) {
	if a.t == godotbridge.TypePackedStringArray {
		for i := n; i < a.n; i++ {
			h.freeString(a.at(i))
		}
	}
	words := make([]uint64, max(1, (uintptr(n)*a.elem+7)/8))
	keep := min(n, a.n)
	copyBytes(unsafe.Pointer(&words[0]), unsafe.Pointer(&a.words[0]), uintptr(keep)*a.elem)
	a.words = words
	a.n = n
}

// ArrayLen returns the length of the packed array behind handle, for tests.
func (h *Host) ArrayLen(handle unsafe.Pointer) int64 {
	if a, ok := h.arrays[*(*uint64)(handle)]; ok {
		return a.n
	}
	return -1
}

// LiveArrays returns the number of constructed packed arrays.
func (h *Host) LiveArrays() int {
	return len(h.arrays)
}

func (h *Host) PackedIndex(t godotbridge.VariantType, handle unsafe.Pointer, index int64) unsafe.Pointer {
	h.Stats.IndexCalls++
	a := h.array(t, handle, "index")
	if a == nil {
		return nil
	}
	if index < 0 || index >= a.n {
		h.violate("unchecked index %d into %s of length %d", index, t, a.n)
		return nil
	}
	return a.at(index)
}

func (h *Host) PackedIndexConst(t godotbridge.VariantType, handle unsafe.Pointer, index int64) unsafe.Pointer {
	return h.PackedIndex(t, handle, index)
}

func (h *Host) PackedSize(t godotbridge.VariantType, handle unsafe.Pointer) (int64, error) {
	a := h.array(t, handle, "size")
	if a == nil {
		return 0, errors.NilPointer(errors.PhasePacked, []string{"size"}, t.String())
	}
	return a.n, nil
}

func (h *Host) PackedResize(t godotbridge.VariantType, handle unsafe.Pointer, n int64) error {
	a := h.array(t, handle, "resize")
	if a == nil {
		return errors.NilPointer(errors.PhasePacked, []string{"resize"}, t.String())
	}
	if n < 0 {
		return errors.InvalidInput(errors.PhasePacked, "negative size")
	}
	h.resize(a, n)
	return nil
}

func (h *Host) PackedAppend(t godotbridge.VariantType, handle, value unsafe.Pointer) error {
	a := h.array(t, handle, "append")
	if a == nil {
		return errors.NilPointer(errors.PhasePacked, []string{"append"}, t.String())
	}
	h.resize(a, a.n+1)
	slot := a.at(a.n - 1)
	switch t {
	case godotbridge.TypePackedByteArray:
		*(*uint8)(slot) = uint8(*(*int64)(value))
	case godotbridge.TypePackedInt32Array:
		*(*int32)(slot) = int32(*(*int64)(value))
	case godotbridge.TypePackedInt64Array:
		*(*int64)(slot) = *(*int64)(value)
	case godotbridge.TypePackedFloat32Array:
		*(*float32)(slot) = float32(*(*float64)(value))
	case godotbridge.TypePackedFloat64Array:
		*(*float64)(slot) = *(*float64)(value)
	case godotbridge.TypePackedStringArray:
		*(*uint64)(slot) = h.newString(h.StringToUTF8(value))
	default:
		copyBytes(slot, value, a.elem)
	}
	return nil
}
