package binding

import "unsafe"

// Domain identifies the runtime generation that created a binding.
type Domain uint8

// EventType distinguishes binding notifications.
type EventType uint8

const (
	EventBound EventType = iota
	EventUnbound
	EventReleased
)

func (e EventType) String() string {
	switch e {
	case EventBound:
		return "bound"
	case EventUnbound:
		return "unbound"
	case EventReleased:
		return "released"
	default:
		return "unknown"
	}
}

// Event describes a binding transition.
type Event struct {
	Wrapper any
	Handle  unsafe.Pointer
	Domain  Domain
	Type    EventType
}

// Observer receives binding notifications.
type Observer interface {
	OnBindingEvent(Event)
}

// Dropper is optionally implemented by wrappers that hold Go-side state
// needing cleanup when their native object is released.
type Dropper interface {
	Drop()
}

// Hooks are supplied by the layer embedding the registry.
type Hooks struct {
	// ShouldDeinit decides whether Release destroys the native object.
	// A nil func always agrees.
	ShouldDeinit func(handle unsafe.Pointer) bool
	// ObjectInited runs once per handle after Bind.
	ObjectInited func(handle unsafe.Pointer)
	// ObjectDeinited runs once per handle after the binding ends.
	ObjectDeinited func(handle unsafe.Pointer)
}

// Native destroys host objects. *ffi.Table satisfies it.
type Native interface {
	ObjectDestroy(obj unsafe.Pointer)
}
