package variant

import (
	"fmt"
	"unsafe"

	godotbridge "github.com/wippyai/godot-bridge"
	"github.com/wippyai/godot-bridge/errors"
)

// CallError is a failed native call, mapped into the closed taxonomy.
type CallError struct {
	Method   string
	Kind     godotbridge.CallErrorKind
	Code     int32 // raw host code
	Argument int32
	Expected int32
}

func newCallError(method string, r godotbridge.CallResult) *CallError {
	return &CallError{
		Method:   method,
		Kind:     r.Kind(),
		Code:     r.Code,
		Argument: r.Argument,
		Expected: r.Expected,
	}
}

func (e *CallError) Error() string {
	switch e.Kind {
	case godotbridge.CallErrorKindInvalidArgument:
		return fmt.Sprintf("[call] %s: %s %d, expected %s",
			e.Method, e.Kind, e.Argument, godotbridge.VariantType(e.Expected))
	case godotbridge.CallErrorKindTooManyArguments, godotbridge.CallErrorKindTooFewArguments:
		return fmt.Sprintf("[call] %s: %s, expected %d", e.Method, e.Kind, e.Expected)
	case godotbridge.CallErrorKindUnknown:
		return fmt.Sprintf("[call] %s: unknown error code %d", e.Method, e.Code)
	default:
		return fmt.Sprintf("[call] %s: %s", e.Method, e.Kind)
	}
}

// Is matches call/call_failed structured errors and CallErrors of the same kind.
func (e *CallError) Is(target error) bool {
	switch t := target.(type) {
	case *CallError:
		return t.Kind == e.Kind
	case *errors.Error:
		return t.Phase == errors.PhaseCall && t.Kind == errors.KindCallFailed
	}
	return false
}

// Evaluate applies op to lhs and rhs. rhs may be nil for unary operators.
// An operation the host rejects returns an invalid_operation error.
func (b *Bridge) Evaluate(op godotbridge.Operator, lhs, rhs *Slot) (*Slot, error) {
	if op < 0 || op >= godotbridge.OpMax {
		return nil, errors.InvalidInput(errors.PhaseVariant, fmt.Sprintf("operator %d out of range", op))
	}
	if err := b.check(lhs, "evaluate"); err != nil {
		return nil, err
	}
	var rptr unsafe.Pointer
	if rhs != nil {
		if err := b.check(rhs, "evaluate"); err != nil {
			return nil, err
		}
		rptr = rhs.ptr
	}

	dst, err := b.alloc()
	if err != nil {
		return nil, err
	}
	valid := b.native.VariantEvaluate(op, lhs.ptr, rptr, dst.ptr)
	b.track(dst)
	if !valid {
		b.discard(dst)
		lt := b.native.VariantGetType(lhs.ptr)
		rt := godotbridge.TypeNil
		if rhs != nil {
			rt = b.native.VariantGetType(rhs.ptr)
		}
		return nil, errors.New(errors.PhaseVariant, errors.KindInvalidOperation).
			Path("evaluate").
			Value(op).
			Detail("operator %d not defined for %s and %s", op, lt, rt).
			Build()
	}
	return dst, nil
}

// Hash returns the host's hash of the value held by s.
func (b *Bridge) Hash(s *Slot) (int64, error) {
	if err := b.check(s, "hash"); err != nil {
		return 0, err
	}
	return b.native.VariantHash(s.ptr), nil
}

// Stringify returns the host's text form of s.
func (b *Bridge) Stringify(s *Slot) (string, error) {
	if err := b.check(s, "stringify"); err != nil {
		return "", err
	}
	return b.readString(func(str unsafe.Pointer) error {
		b.native.VariantStringify(s.ptr, str)
		return nil
	})
}

// Call invokes method on the value held by s. Failures come back as *CallError.
func (b *Bridge) Call(s *Slot, method string, args ...*Slot) (*Slot, error) {
	if err := b.check(s, "call"); err != nil {
		return nil, err
	}
	argv, err := b.pointers("call", args)
	if err != nil {
		return nil, err
	}

	dst, err := b.alloc()
	if err != nil {
		return nil, err
	}
	var res godotbridge.CallResult
	nameErr := b.withStringName(method, func(name unsafe.Pointer) {
		res = b.native.VariantCall(s.ptr, name, argv, dst.ptr)
	})
	b.track(dst)
	if nameErr != nil {
		b.discard(dst)
		return nil, nameErr
	}
	if !res.OK() {
		b.discard(dst)
		return nil, newCallError(method, res)
	}
	return dst, nil
}

// Get reads s[key].
func (b *Bridge) Get(s, key *Slot) (*Slot, error) {
	if err := b.check(s, "get"); err != nil {
		return nil, err
	}
	if err := b.check(key, "get"); err != nil {
		return nil, err
	}
	dst, err := b.alloc()
	if err != nil {
		return nil, err
	}
	valid := b.native.VariantGet(s.ptr, key.ptr, dst.ptr)
	b.track(dst)
	if !valid {
		b.discard(dst)
		return nil, b.keyError(s, key, "get")
	}
	return dst, nil
}

// Set writes s[key] = value.
func (b *Bridge) Set(s, key, value *Slot) error {
	if err := b.check(s, "set"); err != nil {
		return err
	}
	if err := b.check(key, "set"); err != nil {
		return err
	}
	if err := b.check(value, "set"); err != nil {
		return err
	}
	if !b.native.VariantSet(s.ptr, key.ptr, value.ptr) {
		return b.keyError(s, key, "set")
	}
	return nil
}

func (b *Bridge) keyError(s, key *Slot, op string) error {
	k, _ := b.Stringify(key)
	return errors.New(errors.PhaseVariant, errors.KindInvalidOperation).
		Path(op).
		NativeType(b.native.VariantGetType(s.ptr).String()).
		Detail("key %q not accessible", k).
		Build()
}

// GetIndexed reads s[index].
func (b *Bridge) GetIndexed(s *Slot, index int64) (*Slot, error) {
	if err := b.check(s, "get_indexed"); err != nil {
		return nil, err
	}
	dst, err := b.alloc()
	if err != nil {
		return nil, err
	}
	valid, oob := b.native.VariantGetIndexed(s.ptr, index, dst.ptr)
	b.track(dst)
	if err := b.indexError(s, index, valid, oob, "get_indexed"); err != nil {
		b.discard(dst)
		return nil, err
	}
	return dst, nil
}

// SetIndexed writes s[index] = value.
func (b *Bridge) SetIndexed(s *Slot, index int64, value *Slot) error {
	if err := b.check(s, "set_indexed"); err != nil {
		return err
	}
	if err := b.check(value, "set_indexed"); err != nil {
		return err
	}
	valid, oob := b.native.VariantSetIndexed(s.ptr, index, value.ptr)
	return b.indexError(s, index, valid, oob, "set_indexed")
}

func (b *Bridge) indexError(s *Slot, index int64, valid, oob bool, op string) error {
	if oob {
		return errors.New(errors.PhaseVariant, errors.KindOutOfBounds).
			Path(op).
			Value(index).
			Detail("index %d out of bounds", index).
			Build()
	}
	if !valid {
		return errors.New(errors.PhaseVariant, errors.KindInvalidOperation).
			Path(op).
			NativeType(b.native.VariantGetType(s.ptr).String()).
			Detail("type is not indexable").
			Build()
	}
	return nil
}
