package fakenative

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"unsafe"

	godotbridge "github.com/wippyai/godot-bridge"
	"github.com/wippyai/godot-bridge/errors"
)

// Variant layout: int32 type at offset 0, payload at offset 8.

type dictRef uint64

func vtype(p unsafe.Pointer) godotbridge.VariantType {
	return godotbridge.VariantType(*(*int32)(p))
}

func payload(p unsafe.Pointer) unsafe.Pointer {
	return unsafe.Add(p, 8)
}

func (h *Host) construct(p unsafe.Pointer) {
	if h.variants[p] {
		h.violate("construct over live variant %p", p)
	}
	h.variants[p] = true
	*(*[3]uint64)(p) = [3]uint64{}
}

func (h *Host) live(p unsafe.Pointer, op string) bool {
	if p == nil || !h.variants[p] {
		h.violate("%s on dead variant %p", op, p)
		return false
	}
	return true
}

// load decodes the Variant at p into a Go value.
func (h *Host) load(p unsafe.Pointer) any {
	d := payload(p)
	switch vtype(p) {
	case godotbridge.TypeBool:
		return *(*uint8)(d) != 0
	case godotbridge.TypeInt:
		return *(*int64)(d)
	case godotbridge.TypeFloat:
		return *(*float64)(d)
	case godotbridge.TypeString:
		return h.strs[*(*uint64)(d)]
	case godotbridge.TypeVector2:
		return *(*godotbridge.Vector2)(d)
	case godotbridge.TypeVector3:
		return *(*godotbridge.Vector3)(d)
	case godotbridge.TypeVector4:
		return *(*godotbridge.Vector4)(d)
	case godotbridge.TypeColor:
		return *(*godotbridge.Color)(d)
	case godotbridge.TypeDictionary:
		return dictRef(*(*uint64)(d))
	default:
		return nil
	}
}

// store encodes v into the constructed Variant at p, replacing its payload.
func (h *Host) store(p unsafe.Pointer, v any) {
	h.clear(p)
	d := payload(p)
	t := godotbridge.TypeNil
	switch x := v.(type) {
	case bool:
		t = godotbridge.TypeBool
		if x {
			*(*uint8)(d) = 1
		}
	case int64:
		t = godotbridge.TypeInt
		*(*int64)(d) = x
	case float64:
		t = godotbridge.TypeFloat
		*(*float64)(d) = x
	case string:
		t = godotbridge.TypeString
		*(*uint64)(d) = h.newString(x)
	case godotbridge.Vector2:
		t = godotbridge.TypeVector2
		*(*godotbridge.Vector2)(d) = x
	case godotbridge.Vector3:
		t = godotbridge.TypeVector3
		*(*godotbridge.Vector3)(d) = x
	case godotbridge.Vector4:
		t = godotbridge.TypeVector4
		*(*godotbridge.Vector4)(d) = x
	case godotbridge.Color:
		t = godotbridge.TypeColor
		*(*godotbridge.Color)(d) = x
	case dictRef:
		t = godotbridge.TypeDictionary
		*(*uint64)(d) = uint64(x)
	}
	*(*int32)(p) = int32(t)
}

// clear releases the payload of p and leaves it nil.
func (h *Host) clear(p unsafe.Pointer) {
	if vtype(p) == godotbridge.TypeString {
		h.freeString(payload(p))
	}
	*(*[3]uint64)(p) = [3]uint64{}
}

func (h *Host) VariantNewNil(dst unsafe.Pointer) {
	h.construct(dst)
}

func (h *Host) VariantNewCopy(dst, src unsafe.Pointer) {
	if !h.live(src, "copy") {
		return
	}
	h.construct(dst)
	h.store(dst, h.load(src))
}

func (h *Host) VariantDestroy(v unsafe.Pointer) {
	if !h.live(v, "destroy") {
		return
	}
	h.clear(v)
	delete(h.variants, v)
	h.Stats.VariantDestroys++
}

func (h *Host) VariantGetType(v unsafe.Pointer) godotbridge.VariantType {
	if !h.live(v, "get_type") {
		return godotbridge.TypeNil
	}
	return vtype(v)
}

func (h *Host) VariantHash(v unsafe.Pointer) int64 {
	if !h.live(v, "hash") {
		return 0
	}
	f := fnv.New64a()
	fmt.Fprintf(f, "%d:%v", vtype(v), h.load(v))
	return int64(f.Sum64())
}

func (h *Host) text(v any) string {
	switch x := v.(type) {
	case nil:
		return "<null>"
	case bool:
		return strconv.FormatBool(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case string:
		return x
	case godotbridge.Vector2:
		return fmt.Sprintf("(%g, %g)", x.X, x.Y)
	case godotbridge.Vector3:
		return fmt.Sprintf("(%g, %g, %g)", x.X, x.Y, x.Z)
	case godotbridge.Vector4:
		return fmt.Sprintf("(%g, %g, %g, %g)", x.X, x.Y, x.Z, x.W)
	case godotbridge.Color:
		return fmt.Sprintf("(%g, %g, %g, %g)", x.R, x.G, x.B, x.A)
	case dictRef:
		return fmt.Sprintf("{%d entries}", len(h.dicts[uint64(x)]))
	default:
		return fmt.Sprint(x)
	}
}

// VariantStringify writes into an initialized String.
func (h *Host) VariantStringify(v, dst unsafe.Pointer) {
	if !h.live(v, "stringify") {
		return
	}
	h.freeString(dst)
	*(*uint64)(dst) = h.newString(h.text(h.load(v)))
}

func (h *Host) VariantEvaluate(op godotbridge.Operator, a, b, dst unsafe.Pointer) bool {
	h.construct(dst)
	if !h.live(a, "evaluate") {
		return false
	}
	x := h.load(a)
	var y any
	if b != nil {
		if !h.live(b, "evaluate") {
			return false
		}
		y = h.load(b)
	}

	r, ok := evaluate(op, x, y)
	if ok {
		h.store(dst, r)
	}
	return ok
}

func evaluate(op godotbridge.Operator, x, y any) (any, bool) {
	switch op {
	case godotbridge.OpEqual:
		return x == y, true
	case godotbridge.OpNotEqual:
		return x != y, true
	case godotbridge.OpNot:
		b, ok := x.(bool)
		return !b, ok
	case godotbridge.OpNegate:
		switch n := x.(type) {
		case int64:
			return -n, true
		case float64:
			return -n, true
		}
		return nil, false
	}

	if xs, ok := x.(string); ok {
		ys, ok := y.(string)
		if !ok {
			return nil, false
		}
		switch op {
		case godotbridge.OpAdd:
			return xs + ys, true
		case godotbridge.OpLess:
			return xs < ys, true
		}
		return nil, false
	}

	xi, xInt := x.(int64)
	yi, yInt := y.(int64)
	if xInt && yInt {
		switch op {
		case godotbridge.OpAdd:
			return xi + yi, true
		case godotbridge.OpSubtract:
			return xi - yi, true
		case godotbridge.OpMultiply:
			return xi * yi, true
		case godotbridge.OpDivide:
			if yi == 0 {
				return nil, false
			}
			return xi / yi, true
		case godotbridge.OpModule:
			if yi == 0 {
				return nil, false
			}
			return xi % yi, true
		case godotbridge.OpLess:
			return xi < yi, true
		case godotbridge.OpGreater:
			return xi > yi, true
		}
		return nil, false
	}

	xf, ok1 := toFloat(x)
	yf, ok2 := toFloat(y)
	if !ok1 || !ok2 {
		return nil, false
	}
	switch op {
	case godotbridge.OpAdd:
		return xf + yf, true
	case godotbridge.OpSubtract:
		return xf - yf, true
	case godotbridge.OpMultiply:
		return xf * yf, true
	case godotbridge.OpDivide:
		return xf / yf, true
	case godotbridge.OpLess:
		return xf < yf, true
	case godotbridge.OpGreater:
		return xf > yf, true
	}
	return nil, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func zeroOf(t godotbridge.VariantType) (any, bool) {
	switch t {
	case godotbridge.TypeNil:
		return nil, true
	case godotbridge.TypeBool:
		return false, true
	case godotbridge.TypeInt:
		return int64(0), true
	case godotbridge.TypeFloat:
		return float64(0), true
	case godotbridge.TypeString:
		return "", true
	case godotbridge.TypeVector2:
		return godotbridge.Vector2{}, true
	case godotbridge.TypeVector3:
		return godotbridge.Vector3{}, true
	case godotbridge.TypeVector4:
		return godotbridge.Vector4{}, true
	case godotbridge.TypeColor:
		return godotbridge.Color{}, true
	}
	return nil, false
}

func (h *Host) VariantConstruct(t godotbridge.VariantType, dst unsafe.Pointer, args []unsafe.Pointer) godotbridge.CallResult {
	h.construct(dst)
	switch len(args) {
	case 0:
		if t == godotbridge.TypeDictionary {
			id := h.id()
			h.dicts[id] = make(map[any]any)
			h.store(dst, dictRef(id))
			return godotbridge.CallResult{}
		}
		v, ok := zeroOf(t)
		if !ok {
			return godotbridge.CallResult{Code: godotbridge.CallErrorInvalidMethod}
		}
		h.store(dst, v)
		return godotbridge.CallResult{}
	case 1:
		if !h.live(args[0], "construct") {
			return godotbridge.CallResult{Code: godotbridge.CallErrorInvalidArgument, Expected: int32(t)}
		}
		src := h.load(args[0])
		switch {
		case vtype(args[0]) == t:
			h.store(dst, src)
		case t == godotbridge.TypeInt && vtype(args[0]) == godotbridge.TypeFloat:
			h.store(dst, int64(src.(float64)))
		case t == godotbridge.TypeFloat && vtype(args[0]) == godotbridge.TypeInt:
			h.store(dst, float64(src.(int64)))
		case t == godotbridge.TypeString:
			h.store(dst, h.text(src))
		default:
			return godotbridge.CallResult{Code: godotbridge.CallErrorInvalidArgument, Argument: 0, Expected: int32(t)}
		}
		return godotbridge.CallResult{}
	default:
		return godotbridge.CallResult{Code: godotbridge.CallErrorTooManyArguments, Expected: 1}
	}
}

type method struct {
	self godotbridge.VariantType
	args []godotbridge.VariantType
	fn   func(h *Host, self any, args []any) any
}

var methods = map[string]method{
	"length": {godotbridge.TypeString, nil, func(_ *Host, s any, _ []any) any {
		return int64(len([]rune(s.(string))))
	}},
	"begins_with": {godotbridge.TypeString, []godotbridge.VariantType{godotbridge.TypeString}, func(_ *Host, s any, a []any) any {
		p := a[0].(string)
		str := s.(string)
		return len(str) >= len(p) && str[:len(p)] == p
	}},
	"size": {godotbridge.TypeDictionary, nil, func(h *Host, d any, _ []any) any {
		return int64(len(h.dicts[uint64(d.(dictRef))]))
	}},
	"has": {godotbridge.TypeDictionary, []godotbridge.VariantType{godotbridge.TypeNil}, func(h *Host, d any, a []any) any {
		_, ok := h.dicts[uint64(d.(dictRef))][a[0]]
		return ok
	}},
}

func (h *Host) VariantCall(self, name unsafe.Pointer, args []unsafe.Pointer, dst unsafe.Pointer) godotbridge.CallResult {
	h.Stats.Calls++
	h.construct(dst)
	if h.ForceCall != nil {
		return *h.ForceCall
	}
	if !h.live(self, "call") {
		return godotbridge.CallResult{Code: godotbridge.CallErrorInstanceIsNull}
	}
	if vtype(self) == godotbridge.TypeNil {
		return godotbridge.CallResult{Code: godotbridge.CallErrorInstanceIsNull}
	}

	m, ok := methods[h.StringToUTF8(name)]
	if !ok || m.self != vtype(self) {
		return godotbridge.CallResult{Code: godotbridge.CallErrorInvalidMethod}
	}
	if len(args) > len(m.args) {
		return godotbridge.CallResult{Code: godotbridge.CallErrorTooManyArguments, Expected: int32(len(m.args))}
	}
	if len(args) < len(m.args) {
		return godotbridge.CallResult{Code: godotbridge.CallErrorTooFewArguments, Expected: int32(len(m.args))}
	}

	vals := make([]any, len(args))
	for i, a := range args {
		if !h.live(a, "call argument") {
			return godotbridge.CallResult{Code: godotbridge.CallErrorInvalidArgument, Argument: int32(i)}
		}
		want := m.args[i]
		if want != godotbridge.TypeNil && vtype(a) != want {
			return godotbridge.CallResult{Code: godotbridge.CallErrorInvalidArgument, Argument: int32(i), Expected: int32(want)}
		}
		vals[i] = h.load(a)
	}
	h.store(dst, m.fn(h, h.load(self), vals))
	return godotbridge.CallResult{}
}

var components = map[string]int{"x": 0, "y": 1, "z": 2, "w": 3, "r": 0, "g": 1, "b": 2, "a": 3}

func componentCount(t godotbridge.VariantType) int {
	switch t {
	case godotbridge.TypeVector2:
		return 2
	case godotbridge.TypeVector3:
		return 3
	case godotbridge.TypeVector4, godotbridge.TypeColor:
		return 4
	}
	return 0
}

func component(p unsafe.Pointer, i int) *float32 {
	return (*float32)(unsafe.Add(payload(p), i*4))
}

func (h *Host) VariantGet(self, key, dst unsafe.Pointer) bool {
	h.construct(dst)
	if !h.live(self, "get") || !h.live(key, "get") {
		return false
	}
	k := h.load(key)
	if d, ok := h.load(self).(dictRef); ok {
		v, found := h.dicts[uint64(d)][k]
		if found {
			h.store(dst, v)
		}
		return found
	}
	if name, ok := k.(string); ok {
		i, known := components[name]
		if known && i < componentCount(vtype(self)) {
			h.store(dst, float64(*component(self, i)))
			return true
		}
	}
	return false
}

func (h *Host) VariantSet(self, key, value unsafe.Pointer) bool {
	if !h.live(self, "set") || !h.live(key, "set") || !h.live(value, "set") {
		return false
	}
	if d, ok := h.load(self).(dictRef); ok {
		h.dicts[uint64(d)][h.load(key)] = h.load(value)
		return true
	}
	return false
}

func (h *Host) VariantGetIndexed(self unsafe.Pointer, index int64, dst unsafe.Pointer) (bool, bool) {
	h.construct(dst)
	if !h.live(self, "get_indexed") {
		return false, false
	}
	n := componentCount(vtype(self))
	if n == 0 {
		return false, false
	}
	if index < 0 || index >= int64(n) {
		return true, true
	}
	h.store(dst, float64(*component(self, int(index))))
	return true, false
}

func (h *Host) VariantSetIndexed(self unsafe.Pointer, index int64, value unsafe.Pointer) (bool, bool) {
	if !h.live(self, "set_indexed") || !h.live(value, "set_indexed") {
		return false, false
	}
	n := componentCount(vtype(self))
	if n == 0 {
		return false, false
	}
	if index < 0 || index >= int64(n) {
		return true, true
	}
	f, ok := toFloat(h.load(value))
	if !ok {
		return false, false
	}
	*component(self, int(index)) = float32(f)
	return true, false
}

func payloadSize(t godotbridge.VariantType) (uintptr, bool) {
	switch t {
	case godotbridge.TypeBool:
		return 1, true
	case godotbridge.TypeInt, godotbridge.TypeFloat, godotbridge.TypeVector2:
		return 8, true
	case godotbridge.TypeVector3:
		return 12, true
	case godotbridge.TypeVector4, godotbridge.TypeColor:
		return 16, true
	}
	return 0, false
}

func (h *Host) VariantFromType(t godotbridge.VariantType, dst, src unsafe.Pointer) error {
	if t == godotbridge.TypeString {
		h.construct(dst)
		h.store(dst, h.StringToUTF8(src))
		return nil
	}
	n, ok := payloadSize(t)
	if !ok {
		return errors.Unsupported(errors.PhaseVariant, "fake has no from-type constructor for "+t.String())
	}
	h.construct(dst)
	*(*int32)(dst) = int32(t)
	copyBytes(payload(dst), src, n)
	return nil
}

func (h *Host) VariantToType(t godotbridge.VariantType, dst, src unsafe.Pointer) error {
	if !h.live(src, "to_type") {
		return nil
	}
	if vtype(src) != t {
		h.violate("to_type %s on %s variant", t, vtype(src))
		return nil
	}
	if t == godotbridge.TypeString {
		h.freeString(dst)
		*(*uint64)(dst) = h.newString(h.load(src).(string))
		return nil
	}
	n, ok := payloadSize(t)
	if !ok {
		return errors.Unsupported(errors.PhaseVariant, "fake has no to-type constructor for "+t.String())
	}
	copyBytes(dst, payload(src), n)
	return nil
}
