package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which bridge component raised the error
type Phase string

const (
	PhaseLoad      Phase = "load"      // function table resolution
	PhaseLayout    Phase = "layout"    // native struct layout checks
	PhaseLifecycle Phase = "lifecycle" // init/deinit level dispatch
	PhaseVariant   Phase = "variant"   // Variant slots
	PhasePacked    Phase = "packed"    // packed array access
	PhaseBinding   Phase = "binding"   // object binding registry
	PhaseCall      Phase = "call"      // native method calls
	PhaseConfig    Phase = "config"    // configuration loading
)

// Kind categorizes the error
type Kind string

const (
	KindMissingSymbol      Kind = "missing_symbol"
	KindLayoutMismatch     Kind = "layout_mismatch"
	KindInvalidLevel       Kind = "invalid_level"
	KindOrdering           Kind = "ordering"
	KindDoubleDestroy      Kind = "double_destroy"
	KindNotConstructed     Kind = "not_constructed"
	KindAlreadyConstructed Kind = "already_constructed"
	KindOutOfBounds        Kind = "out_of_bounds"
	KindStaleBinding       Kind = "stale_binding"
	KindAlreadyBound       Kind = "already_bound"
	KindCallFailed         Kind = "call_failed"
	KindInvalidOperation   Kind = "invalid_operation"
	KindTypeMismatch       Kind = "type_mismatch"
	KindUnsupported        Kind = "unsupported"
	KindAllocation         Kind = "allocation"
	KindNilPointer         Kind = "nil_pointer"
	KindNotFound           Kind = "not_found"
	KindNotInitialized     Kind = "not_initialized"
	KindInvalidInput       Kind = "invalid_input"
	KindClosed             Kind = "closed"
	KindConflict           Kind = "conflict"
)

// Error is the structured error type used throughout the bridge
type Error struct {
	Value      any
	Cause      error
	Phase      Phase
	Kind       Kind
	GoType     string
	NativeType string
	Detail     string
	Path       []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.NativeType != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.NativeType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", native type ")
			b.WriteString(e.NativeType)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("native type ")
			b.WriteString(e.NativeType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.NativeType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// NativeType sets the native type name
func (b *Builder) NativeType(t string) *Builder {
	b.err.NativeType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, nativeType string) *Error {
	return &Error{
		Phase:      phase,
		Kind:       KindTypeMismatch,
		Path:       path,
		GoType:     goType,
		NativeType: nativeType,
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(phase Phase, size uintptr) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("native allocator returned NULL for %d bytes", size),
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, length int64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// NilPointer creates a nil pointer error
func NilPointer(phase Phase, path []string, nativeType string) *Error {
	return &Error{
		Phase:      phase,
		Kind:       KindNilPointer,
		Path:       path,
		NativeType: nativeType,
		Detail:     "nil pointer",
	}
}

// InvalidLevel creates an error for an initialization level outside the closed set
func InvalidLevel(raw int64) *Error {
	return &Error{
		Phase:  PhaseLifecycle,
		Kind:   KindInvalidLevel,
		Detail: fmt.Sprintf("initialization level %d out of range", raw),
		Value:  raw,
	}
}

// DoubleDestroy creates an error for a second destroy of the same slot
func DoubleDestroy(path []string) *Error {
	return &Error{
		Phase:  PhaseVariant,
		Kind:   KindDoubleDestroy,
		Path:   path,
		Detail: "slot already destroyed or never constructed",
	}
}

// StaleBinding creates an error for a binding used outside its domain
func StaleBinding(handle uintptr, bound, current uint8) *Error {
	return &Error{
		Phase:  PhaseBinding,
		Kind:   KindStaleBinding,
		Path:   []string{fmt.Sprintf("0x%x", handle)},
		Detail: fmt.Sprintf("bound in domain %d, current domain %d", bound, current),
		Value:  handle,
	}
}

// LayoutMismatch creates an error for a native layout the Go mirror cannot describe
func LayoutMismatch(typeName string, goSize, nativeSize uintptr) *Error {
	return &Error{
		Phase:      PhaseLayout,
		Kind:       KindLayoutMismatch,
		NativeType: typeName,
		Detail:     fmt.Sprintf("Go size %d, native size %d", goSize, nativeSize),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// NotInitialized creates a not-initialized error
func NotInitialized(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// MissingSymbol is a single native entry point the host did not provide
type MissingSymbol struct {
	Group string   // e.g., "variant"
	Name  string   // e.g., "variant_new_copy"
	Hints []string // closest known names, if any
}

// MissingSymbolsError is returned when the function table cannot be populated
type MissingSymbolsError struct {
	Symbols []MissingSymbol
}

func (e *MissingSymbolsError) Error() string {
	if len(e.Symbols) == 0 {
		return "[load] missing_symbol: no symbols specified"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("[load] missing_symbol: host did not provide %d entry point(s):\n", len(e.Symbols)))

	// Group for cleaner output
	byGroup := make(map[string][]MissingSymbol)
	var order []string
	for _, s := range e.Symbols {
		if _, exists := byGroup[s.Group]; !exists {
			order = append(order, s.Group)
		}
		byGroup[s.Group] = append(byGroup[s.Group], s)
	}

	for _, g := range order {
		b.WriteString("\n  ")
		b.WriteString(g)
		b.WriteString(":\n")
		for _, s := range byGroup[g] {
			b.WriteString("    - ")
			b.WriteString(s.Name)
			if len(s.Hints) > 0 {
				b.WriteString(" (did you mean ")
				b.WriteString(strings.Join(s.Hints, ", "))
				b.WriteString("?)")
			}
			b.WriteByte('\n')
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// Names returns the missing entry point names in order
func (e *MissingSymbolsError) Names() []string {
	names := make([]string, len(e.Symbols))
	for i, s := range e.Symbols {
		names[i] = s.Name
	}
	return names
}

// Is reports whether target matches this error type
func (e *MissingSymbolsError) Is(target error) bool {
	if _, ok := target.(*MissingSymbolsError); ok {
		return true
	}
	if t, ok := target.(*Error); ok {
		return t.Phase == PhaseLoad && t.Kind == KindMissingSymbol
	}
	return false
}
