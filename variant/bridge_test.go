package variant

import (
	stderrors "errors"
	"sync/atomic"
	"testing"
	"unsafe"

	godotbridge "github.com/wippyai/godot-bridge"
	"github.com/wippyai/godot-bridge/errors"
	"github.com/wippyai/godot-bridge/internal/fakenative"
)

func newTestBridge(t *testing.T, opts ...Option) (*Bridge, *fakenative.Host) {
	t.Helper()
	host := fakenative.New()
	return NewBridge(host, opts...), host
}

func mustFrom(t *testing.T, b *Bridge, v any) *Slot {
	t.Helper()
	s, err := b.FromValue(v)
	if err != nil {
		t.Fatalf("FromValue(%v) failed: %v", v, err)
	}
	return s
}

func mustDestroy(t *testing.T, b *Bridge, slots ...*Slot) {
	t.Helper()
	for _, s := range slots {
		if err := b.Destroy(s); err != nil {
			t.Fatalf("Destroy failed: %v", err)
		}
	}
}

func TestConstructDestroy(t *testing.T) {
	b, host := newTestBridge(t)

	s, err := b.Nil()
	if err != nil {
		t.Fatal(err)
	}
	if b.Live() != 1 {
		t.Errorf("Live = %d, want 1", b.Live())
	}
	if typ, _ := b.Type(s); typ != godotbridge.TypeNil {
		t.Errorf("type = %v, want Nil", typ)
	}

	mustDestroy(t, b, s)
	if b.Live() != 0 {
		t.Errorf("Live = %d after destroy", b.Live())
	}
	host.AssertClean(t)
}

func TestConstructKinds(t *testing.T) {
	b, host := newTestBridge(t)

	tests := []struct {
		kind godotbridge.VariantType
		want any
	}{
		{godotbridge.TypeBool, false},
		{godotbridge.TypeInt, int64(0)},
		{godotbridge.TypeFloat, float64(0)},
		{godotbridge.TypeString, ""},
		{godotbridge.TypeVector3, godotbridge.Vector3{}},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			s, err := b.Construct(tt.kind)
			if err != nil {
				t.Fatal(err)
			}
			defer mustDestroy(t, b, s)

			got, err := b.Read(s)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Read = %#v, want %#v", got, tt.want)
			}
		})
	}

	src := mustFrom(t, b, 2.9)
	conv, err := b.Construct(godotbridge.TypeInt, src)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := As[int64](b, conv); got != 2 {
		t.Errorf("int(2.9) = %d", got)
	}
	mustDestroy(t, b, src, conv)

	if _, err := b.Construct(godotbridge.TypeRID); err == nil {
		t.Error("expected constructor failure for RID")
	}
	if _, err := b.Construct(godotbridge.TypeMax); err == nil {
		t.Error("expected error for out-of-range kind")
	}
	host.AssertClean(t)
}

func TestConstructAtReuse(t *testing.T) {
	b, host := newTestBridge(t)
	addr := host.MemAlloc(b.Size())

	for i := 0; i < 3; i++ {
		s, err := b.ConstructAt(addr, godotbridge.TypeInt)
		if err != nil {
			t.Fatalf("round %d: %v", i, err)
		}
		if _, err := b.ConstructAt(addr, godotbridge.TypeInt); err == nil {
			t.Fatal("constructing over a live slot should fail")
		} else if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseVariant, Kind: errors.KindAlreadyConstructed}) {
			t.Errorf("unexpected error %v", err)
		}
		mustDestroy(t, b, s)
	}

	host.MemFree(addr)
	host.AssertClean(t)
}

// gatedNative holds the first VariantConstruct until release is closed.
type gatedNative struct {
	*fakenative.Host
	calls   atomic.Int32
	entered chan struct{}
	release chan struct{}
}

func (g *gatedNative) VariantConstruct(t godotbridge.VariantType, dst unsafe.Pointer, args []unsafe.Pointer) godotbridge.CallResult {
	if g.calls.Add(1) == 1 {
		close(g.entered)
		<-g.release
	}
	return g.Host.VariantConstruct(t, dst, args)
}

func TestConstructAtReservesAddress(t *testing.T) {
	host := fakenative.New()
	native := &gatedNative{Host: host, entered: make(chan struct{}), release: make(chan struct{})}
	b := NewBridge(native)
	addr := host.MemAlloc(b.Size())

	type result struct {
		slot *Slot
		err  error
	}
	first := make(chan result, 1)
	go func() {
		s, err := b.ConstructAt(addr, godotbridge.TypeInt)
		first <- result{s, err}
	}()
	<-native.entered

	_, err := b.ConstructAt(addr, godotbridge.TypeInt)
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseVariant, Kind: errors.KindAlreadyConstructed}) {
		t.Errorf("construct during construction = %v, want already_constructed", err)
	}

	close(native.release)
	r := <-first
	if r.err != nil {
		t.Fatalf("first ConstructAt: %v", r.err)
	}
	if native.calls.Load() != 1 {
		t.Errorf("native constructs = %d, want 1", native.calls.Load())
	}
	mustDestroy(t, b, r.slot)

	// The reservation is gone once construction finishes.
	s, err := b.ConstructAt(addr, godotbridge.TypeInt)
	if err != nil {
		t.Fatalf("reuse after destroy: %v", err)
	}
	mustDestroy(t, b, s)
	host.MemFree(addr)
	host.AssertClean(t)
}

func TestConstructAtFailureReleasesAddress(t *testing.T) {
	b, host := newTestBridge(t)
	addr := host.MemAlloc(b.Size())

	if _, err := b.ConstructAt(addr, godotbridge.TypeMax); err == nil {
		t.Fatal("out of range kind accepted")
	}
	s, err := b.ConstructAt(addr, godotbridge.TypeInt)
	if err != nil {
		t.Fatalf("address still reserved after a failed construct: %v", err)
	}
	mustDestroy(t, b, s)
	host.MemFree(addr)
	host.AssertClean(t)
}

func TestDoubleDestroy(t *testing.T) {
	b, host := newTestBridge(t)

	s := mustFrom(t, b, int64(7))
	mustDestroy(t, b, s)
	destroys := host.Stats.VariantDestroys

	err := b.Destroy(s)
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseVariant, Kind: errors.KindDoubleDestroy}) {
		t.Fatalf("expected double_destroy, got %v", err)
	}
	if host.Stats.VariantDestroys != destroys {
		t.Error("second destroy reached the host")
	}
	if _, err := b.Read(s); !stderrors.Is(err, &errors.Error{Phase: errors.PhaseVariant, Kind: errors.KindNotConstructed}) {
		t.Errorf("read after destroy: %v", err)
	}
	host.AssertClean(t)
}

func TestReadWrite(t *testing.T) {
	b, host := newTestBridge(t)

	tests := []struct {
		name string
		in   any
		want any
	}{
		{"nil", nil, nil},
		{"true", true, true},
		{"false", false, false},
		{"int", 42, int64(42)},
		{"int8", int8(-8), int64(-8)},
		{"uint32", uint32(1 << 31), int64(1 << 31)},
		{"int64 min", int64(-1 << 63), int64(-1 << 63)},
		{"float32", float32(1.5), float64(1.5)},
		{"float64", 3.25, 3.25},
		{"empty string", "", ""},
		{"string", "héllo", "héllo"},
		{"vector2", godotbridge.Vector2{X: 1, Y: 2}, godotbridge.Vector2{X: 1, Y: 2}},
		{"vector3", godotbridge.Vector3{X: 1, Y: 2, Z: 3}, godotbridge.Vector3{X: 1, Y: 2, Z: 3}},
		{"vector4", godotbridge.Vector4{X: 1, Y: 2, Z: 3, W: 4}, godotbridge.Vector4{X: 1, Y: 2, Z: 3, W: 4}},
		{"color", godotbridge.Color{R: 1, G: 0.5, B: 0.25, A: 1}, godotbridge.Color{R: 1, G: 0.5, B: 0.25, A: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustFrom(t, b, tt.in)
			got, err := b.Read(s)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("FromValue/Read = %#v, want %#v", got, tt.want)
			}

			// Overwrite in place and read back.
			if err := b.Write(s, "replaced"); err != nil {
				t.Fatal(err)
			}
			if err := b.Write(s, tt.in); err != nil {
				t.Fatal(err)
			}
			got, _ = b.Read(s)
			if got != tt.want {
				t.Errorf("Write/Read = %#v, want %#v", got, tt.want)
			}
			mustDestroy(t, b, s)
		})
	}
	host.AssertClean(t)
}

func TestWriteRejected(t *testing.T) {
	b, host := newTestBridge(t)
	s := mustFrom(t, b, "keep")

	err := b.Write(s, struct{}{})
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseVariant, Kind: errors.KindTypeMismatch}) {
		t.Fatalf("expected type mismatch, got %v", err)
	}
	if got, _ := As[string](b, s); got != "keep" {
		t.Errorf("value changed to %q", got)
	}

	err = b.Write(s, uint64(1<<63))
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseVariant, Kind: errors.KindInvalidInput}) {
		t.Errorf("expected overflow error, got %v", err)
	}

	if _, err := As[int64](b, s); !stderrors.Is(err, &errors.Error{Phase: errors.PhaseVariant, Kind: errors.KindTypeMismatch}) {
		t.Errorf("As[int64] on string: %v", err)
	}

	mustDestroy(t, b, s)
	host.AssertClean(t)
}

func TestWriteFromSlot(t *testing.T) {
	b, host := newTestBridge(t)
	src := mustFrom(t, b, "shared")
	dst := mustFrom(t, b, int64(1))

	if err := b.Write(dst, src); err != nil {
		t.Fatal(err)
	}
	if err := b.Write(dst, dst); err != nil {
		t.Fatal(err)
	}
	if got, _ := As[string](b, dst); got != "shared" {
		t.Errorf("got %q", got)
	}
	mustDestroy(t, b, src, dst)
	host.AssertClean(t)
}

func TestCopyIsIndependent(t *testing.T) {
	b, host := newTestBridge(t)
	a := mustFrom(t, b, "original")

	c, err := b.Copy(a)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Write(a, "changed"); err != nil {
		t.Fatal(err)
	}
	if got, _ := As[string](b, c); got != "original" {
		t.Errorf("copy = %q, want original", got)
	}
	mustDestroy(t, b, a, c)
	host.AssertClean(t)
}

func TestEvaluate(t *testing.T) {
	b, host := newTestBridge(t)

	tests := []struct {
		name string
		op   godotbridge.Operator
		lhs  any
		rhs  any
		want any
	}{
		{"int add", godotbridge.OpAdd, int64(40), int64(2), int64(42)},
		{"int mul", godotbridge.OpMultiply, int64(6), int64(7), int64(42)},
		{"mixed add", godotbridge.OpAdd, int64(1), 0.5, 1.5},
		{"string concat", godotbridge.OpAdd, "foo", "bar", "foobar"},
		{"equal", godotbridge.OpEqual, "a", "a", true},
		{"less", godotbridge.OpLess, int64(1), int64(2), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, r := mustFrom(t, b, tt.lhs), mustFrom(t, b, tt.rhs)
			defer mustDestroy(t, b, l, r)

			res, err := b.Evaluate(tt.op, l, r)
			if err != nil {
				t.Fatal(err)
			}
			defer mustDestroy(t, b, res)
			if got, _ := b.Read(res); got != tt.want {
				t.Errorf("result = %#v, want %#v", got, tt.want)
			}
		})
	}

	l, r := mustFrom(t, b, "x"), mustFrom(t, b, int64(1))
	_, err := b.Evaluate(godotbridge.OpSubtract, l, r)
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseVariant, Kind: errors.KindInvalidOperation}) {
		t.Errorf("expected invalid operation, got %v", err)
	}
	if b.Live() != 2 {
		t.Errorf("failed evaluation leaked a slot: live = %d", b.Live())
	}

	neg, err := b.Evaluate(godotbridge.OpNegate, r, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := As[int64](b, neg); got != -1 {
		t.Errorf("-1 = %d", got)
	}

	if _, err := b.Evaluate(godotbridge.OpMax, l, r); err == nil {
		t.Error("out-of-range operator accepted")
	}
	mustDestroy(t, b, l, r, neg)
	host.AssertClean(t)
}

func TestHashAndStringify(t *testing.T) {
	b, host := newTestBridge(t)
	a, c, d := mustFrom(t, b, int64(5)), mustFrom(t, b, int64(5)), mustFrom(t, b, int64(6))

	ha, _ := b.Hash(a)
	hc, _ := b.Hash(c)
	hd, _ := b.Hash(d)
	if ha != hc {
		t.Error("equal values hash differently")
	}
	if ha == hd {
		t.Error("different values share a hash")
	}

	tests := []struct {
		in   any
		want string
	}{
		{nil, "<null>"},
		{true, "true"},
		{int64(-3), "-3"},
		{"text", "text"},
		{godotbridge.Vector2{X: 1, Y: 2}, "(1, 2)"},
	}
	for _, tt := range tests {
		s := mustFrom(t, b, tt.in)
		got, err := b.Stringify(s)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("Stringify(%v) = %q, want %q", tt.in, got, tt.want)
		}
		mustDestroy(t, b, s)
	}

	mustDestroy(t, b, a, c, d)
	host.AssertClean(t)
}

func TestCall(t *testing.T) {
	b, host := newTestBridge(t)
	str := mustFrom(t, b, "héllo")
	prefix := mustFrom(t, b, "hé")
	num := mustFrom(t, b, int64(1))
	null, _ := b.Nil()

	ret, err := b.Call(str, "length")
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := As[int64](b, ret); got != 5 {
		t.Errorf("length = %d", got)
	}
	mustDestroy(t, b, ret)

	ret, err = b.Call(str, "begins_with", prefix)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := As[bool](b, ret); !got {
		t.Error("begins_with = false")
	}
	mustDestroy(t, b, ret)

	tests := []struct {
		name     string
		self     *Slot
		method   string
		args     []*Slot
		kind     godotbridge.CallErrorKind
		argument int32
		expected int32
	}{
		{"invalid method", str, "nope", nil, godotbridge.CallErrorKindInvalidMethod, 0, 0},
		{"too many", str, "length", []*Slot{num}, godotbridge.CallErrorKindTooManyArguments, 0, 0},
		{"too few", str, "begins_with", nil, godotbridge.CallErrorKindTooFewArguments, 0, 1},
		{"invalid argument", str, "begins_with", []*Slot{num}, godotbridge.CallErrorKindInvalidArgument, 0, int32(godotbridge.TypeString)},
		{"null instance", null, "length", nil, godotbridge.CallErrorKindInstanceIsNull, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ret, err := b.Call(tt.self, tt.method, tt.args...)
			if ret != nil {
				t.Fatal("failed call returned a slot")
			}
			var ce *CallError
			if !stderrors.As(err, &ce) {
				t.Fatalf("expected *CallError, got %T: %v", err, err)
			}
			if ce.Kind != tt.kind || ce.Argument != tt.argument || ce.Expected != tt.expected {
				t.Errorf("got %+v", ce)
			}
			if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseCall, Kind: errors.KindCallFailed}) {
				t.Error("CallError should match call/call_failed")
			}
		})
	}

	host.ForceCall = &godotbridge.CallResult{Code: 99}
	_, err = b.Call(str, "length")
	var ce *CallError
	if !stderrors.As(err, &ce) || ce.Kind != godotbridge.CallErrorKindUnknown || ce.Code != 99 {
		t.Errorf("unknown code: %v", err)
	}
	host.ForceCall = &godotbridge.CallResult{Code: godotbridge.CallErrorMethodNotConst}
	_, err = b.Call(str, "length")
	if !stderrors.Is(err, &CallError{Kind: godotbridge.CallErrorKindMethodNotConst}) {
		t.Errorf("method not const: %v", err)
	}
	host.ForceCall = nil

	mustDestroy(t, b, str, prefix, num, null)
	host.AssertClean(t)
}

func TestKeyedAndIndexed(t *testing.T) {
	b, host := newTestBridge(t)

	dict, err := b.Construct(godotbridge.TypeDictionary)
	if err != nil {
		t.Fatal(err)
	}
	key, val := mustFrom(t, b, "answer"), mustFrom(t, b, int64(42))
	if err := b.Set(dict, key, val); err != nil {
		t.Fatal(err)
	}
	got, err := b.Get(dict, key)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := As[int64](b, got); v != 42 {
		t.Errorf("dict[answer] = %d", v)
	}
	mustDestroy(t, b, got)

	missing := mustFrom(t, b, "missing")
	if _, err := b.Get(dict, missing); !stderrors.Is(err, &errors.Error{Phase: errors.PhaseVariant, Kind: errors.KindInvalidOperation}) {
		t.Errorf("missing key: %v", err)
	}
	if err := b.Set(val, key, val); err == nil {
		t.Error("set on int should fail")
	}

	vec := mustFrom(t, b, godotbridge.Vector3{X: 1, Y: 2, Z: 3})
	y, err := b.GetIndexed(vec, 1)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := As[float64](b, y); v != 2 {
		t.Errorf("vec[1] = %v", v)
	}
	if err := b.SetIndexed(vec, 2, val); err != nil {
		t.Fatal(err)
	}
	if v, _ := As[godotbridge.Vector3](b, vec); v.Z != 42 {
		t.Errorf("vec after set = %+v", v)
	}
	if _, err := b.GetIndexed(vec, 3); !stderrors.Is(err, &errors.Error{Phase: errors.PhaseVariant, Kind: errors.KindOutOfBounds}) {
		t.Errorf("vec[3]: %v", err)
	}
	if _, err := b.GetIndexed(key, 0); !stderrors.Is(err, &errors.Error{Phase: errors.PhaseVariant, Kind: errors.KindInvalidOperation}) {
		t.Errorf("string[0]: %v", err)
	}

	mustDestroy(t, b, dict, key, val, missing, vec, y)
	host.AssertClean(t)
}

func TestHooks(t *testing.T) {
	var inited, deinited int
	allow := true
	b, host := newTestBridge(t, WithHooks(Hooks{
		ShouldDeinit: func(unsafe.Pointer) bool { return allow },
		Inited:       func(unsafe.Pointer) { inited++ },
		Deinited:     func(unsafe.Pointer) { deinited++ },
	}))

	s := mustFrom(t, b, int64(1))
	mustDestroy(t, b, s)
	if inited != 1 || deinited != 1 {
		t.Errorf("inited=%d deinited=%d, want 1/1", inited, deinited)
	}
	if host.Stats.VariantDestroys != 1 {
		t.Errorf("native destroys = %d", host.Stats.VariantDestroys)
	}

	allow = false
	s = mustFrom(t, b, int64(2))
	mustDestroy(t, b, s)
	if deinited != 2 {
		t.Errorf("deinited = %d, want 2", deinited)
	}
	if host.Stats.VariantDestroys != 1 {
		t.Error("ShouldDeinit=false must skip the native destroy")
	}
	if b.Live() != 0 {
		t.Error("suppressed destroy must still release bookkeeping")
	}
}

func TestSetHooks(t *testing.T) {
	b, host := newTestBridge(t)
	s := mustFrom(t, b, int64(1))

	var inited, deinited int
	b.SetHooks(Hooks{
		ShouldDeinit: func(unsafe.Pointer) bool { return false },
		Inited:       func(unsafe.Pointer) { inited++ },
		Deinited:     func(unsafe.Pointer) { deinited++ },
	})
	mustDestroy(t, b, s)
	if deinited != 1 || host.Stats.VariantDestroys != 0 {
		t.Errorf("deinited=%d destroys=%d, want hooks applied to an existing slot", deinited, host.Stats.VariantDestroys)
	}

	b.SetHooks(Hooks{Inited: func(unsafe.Pointer) { inited++ }})
	s = mustFrom(t, b, int64(2))
	mustDestroy(t, b, s)
	if inited != 1 {
		t.Errorf("inited = %d, want 1", inited)
	}
	if host.Stats.VariantDestroys != 1 {
		t.Errorf("destroys = %d after hooks were replaced", host.Stats.VariantDestroys)
	}
}

func TestDestroyDisabled(t *testing.T) {
	b, host := newTestBridge(t, WithDestroyDisabled(true))
	s := mustFrom(t, b, "leak on purpose")
	mustDestroy(t, b, s)
	if host.Stats.VariantDestroys != 0 {
		t.Error("native destroy ran while disabled")
	}
	if err := b.Destroy(s); err == nil {
		t.Error("double destroy still detected when disabled")
	}
}

func TestBorrow(t *testing.T) {
	b, host := newTestBridge(t)

	owned := host.MemAlloc(godotbridge.VariantSize)
	host.VariantNewNil(owned)

	s, err := b.Borrow(owned)
	if err != nil {
		t.Fatal(err)
	}
	if !s.Borrowed() {
		t.Error("Borrowed() = false")
	}
	if err := b.Write(s, int64(9)); err != nil {
		t.Fatal(err)
	}
	if got, _ := As[int64](b, s); got != 9 {
		t.Errorf("borrowed value = %d", got)
	}
	if err := b.Destroy(s); !stderrors.Is(err, &errors.Error{Phase: errors.PhaseVariant, Kind: errors.KindInvalidOperation}) {
		t.Errorf("destroying a borrowed slot: %v", err)
	}
	if b.Live() != 0 {
		t.Error("borrowed slots are not tracked")
	}
	if _, err := b.Borrow(nil); err == nil {
		t.Error("Borrow(nil) accepted")
	}

	host.VariantDestroy(owned)
	host.MemFree(owned)
	host.AssertClean(t)
}

func TestClose(t *testing.T) {
	b, host := newTestBridge(t)
	for i := 0; i < 5; i++ {
		mustFrom(t, b, i)
	}
	if n := b.Close(); n != 5 {
		t.Errorf("Close released %d, want 5", n)
	}
	if b.Live() != 0 {
		t.Error("slots remain after Close")
	}
	host.AssertClean(t)
}

func TestAllocationFailure(t *testing.T) {
	b, host := newTestBridge(t)
	host.FailAlloc = true

	_, err := b.FromValue(int64(1))
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseVariant, Kind: errors.KindAllocation}) {
		t.Errorf("expected allocation error, got %v", err)
	}
	host.FailAlloc = false
	host.AssertClean(t)
}
