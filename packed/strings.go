package packed

import (
	"unsafe"

	godotbridge "github.com/wippyai/godot-bridge"
	"github.com/wippyai/godot-bridge/errors"
)

// Strings is a view over a native PackedStringArray. Elements are native
// String values converted on every access.
type Strings struct {
	buffer
}

// NewStrings constructs an empty string array owned by the caller.
func NewStrings(native Native) (*Strings, error) {
	b, err := newBuffer(native, godotbridge.TypePackedStringArray)
	if err != nil {
		return nil, err
	}
	return &Strings{b}, nil
}

// WrapStrings views an existing host-owned string array.
func WrapStrings(native Native, handle unsafe.Pointer) (*Strings, error) {
	b, err := wrapBuffer(native, godotbridge.TypePackedStringArray, handle)
	if err != nil {
		return nil, err
	}
	return &Strings{b}, nil
}

// StringsFromSlice constructs a new string array holding seq.
func StringsFromSlice(native Native, seq []string) (*Strings, error) {
	a, err := NewStrings(native)
	if err != nil {
		return nil, err
	}
	if err := a.Import(seq); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

func stringAt(base unsafe.Pointer, i int) unsafe.Pointer {
	return unsafe.Add(base, uintptr(i)*godotbridge.StringSize)
}

// replace destroys the String at p and constructs s in its place.
func (a *Strings) replace(p unsafe.Pointer, s string) error {
	if err := a.native.BuiltinDestroy(godotbridge.TypeString, p); err != nil {
		return err
	}
	a.native.StringNew(p, s)
	return nil
}

// Import replaces the contents with seq.
func (a *Strings) Import(seq []string) error {
	if err := a.Resize(len(seq)); err != nil {
		return err
	}
	base, err := a.base(len(seq), true)
	if err != nil || base == nil {
		return err
	}
	for i, s := range seq {
		if err := a.replace(stringAt(base, i), s); err != nil {
			return err
		}
	}
	return nil
}

// Slice copies the contents out as Go strings.
func (a *Strings) Slice() ([]string, error) {
	n, err := a.Len()
	if err != nil {
		return nil, err
	}
	out := make([]string, n)
	base, err := a.base(n, false)
	if err != nil || base == nil {
		return out, err
	}
	for i := range out {
		out[i] = a.native.StringToUTF8(stringAt(base, i))
	}
	return out, nil
}

// Get returns element i.
func (a *Strings) Get(i int) (string, error) {
	p, err := a.element("get", i, false)
	if err != nil {
		return "", err
	}
	return a.native.StringToUTF8(p), nil
}

// Set replaces element i.
func (a *Strings) Set(i int, s string) error {
	p, err := a.element("set", i, true)
	if err != nil {
		return err
	}
	return a.replace(p, s)
}

// Append adds s at the end through a temporary native String.
func (a *Strings) Append(s string) error {
	if err := a.usable("append"); err != nil {
		return err
	}
	tmp := a.native.MemAlloc(godotbridge.StringSize)
	if tmp == nil {
		return errors.AllocationFailed(errors.PhasePacked, godotbridge.StringSize)
	}
	defer a.native.MemFree(tmp)
	a.native.StringNew(tmp, s)
	defer a.native.BuiltinDestroy(godotbridge.TypeString, tmp)
	return a.native.PackedAppend(a.kind, a.handle, tmp)
}
