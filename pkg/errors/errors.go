// Package errors provides structured error handling for the Glaze framework.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfiguration indicates a malformed widget type hierarchy or
	// an invalid freeze/hydration setup.
	KindConfiguration
	// KindUnresolvedType indicates that tag/class/attribute resolution
	// failed for a widget type.
	KindUnresolvedType
	// KindTypeMismatch indicates a build output contained a value that is
	// neither a widget nor a primitive text leaf.
	KindTypeMismatch
	// KindStateAccess indicates state was mutated outside SetState or read
	// before InitState completed.
	KindStateAccess
	// KindFreeze indicates a failure while serializing a tree to markup.
	KindFreeze
	// KindHydrate indicates a failure while reconstructing a widget from
	// a frozen payload.
	KindHydrate
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindUnresolvedType:
		return "unresolved-type"
	case KindTypeMismatch:
		return "type-mismatch"
	case KindStateAccess:
		return "state-access"
	case KindFreeze:
		return "freeze"
	case KindHydrate:
		return "hydrate"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Sentinel causes wrapped by the structured errors below. Callers that only
// care about the category should test with errors.Is against these.
var (
	// ErrCyclicHierarchy reports a widget type whose ancestry walk exceeded
	// the maximum depth, which means the extends chain loops.
	ErrCyclicHierarchy = errors.New("cyclic widget type hierarchy")
	// ErrUnknownType reports a type ID that was never registered.
	ErrUnknownType = errors.New("unknown widget type")
	// ErrNotRegistered reports a stateful widget type with no hydration
	// factory, which makes its frozen form unrecoverable.
	ErrNotRegistered = errors.New("widget type not registered for hydration")
	// ErrStateAccess reports a state read before InitState or a mutation
	// outside SetState.
	ErrStateAccess = errors.New("state accessed outside its lifecycle")
)

// Error represents a structured error in the Glaze framework.
type Error struct {
	// Op is the operation that failed (e.g., "freeze.Freeze").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Widget is the widget type name involved, if applicable.
	Widget string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *Error) Error() string {
	if e.Widget != "" {
		return fmt.Sprintf("%s [%s] widget=%s: %v", e.Op, e.Kind, e.Widget, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds a structured Error for the given operation and kind.
func New(op string, kind ErrorKind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// Configuration wraps err as a configuration error for op.
func Configuration(op string, err error) *Error {
	return &Error{Op: op, Kind: KindConfiguration, Err: err}
}

// UnresolvedType wraps err as a tag/class resolution failure for op.
// widget names the type whose resolution failed.
func UnresolvedType(op, widget string, err error) *Error {
	return &Error{Op: op, Kind: KindUnresolvedType, Err: err, Widget: widget}
}

// TypeMismatch reports a build output child that is neither a widget nor a
// primitive leaf. got describes the offending value.
func TypeMismatch(op string, got any) *Error {
	return &Error{
		Op:   op,
		Kind: KindTypeMismatch,
		Err:  fmt.Errorf("child must be a widget or a primitive text value, got %T", got),
	}
}

// StateAccess reports a state lifecycle violation. detail says which rule was
// broken (read before init, write outside SetState, nested SetState).
func StateAccess(op, widget, detail string) *Error {
	return &Error{
		Op:     op,
		Kind:   KindStateAccess,
		Err:    fmt.Errorf("%w: %s", ErrStateAccess, detail),
		Widget: widget,
	}
}

// KindOf extracts the ErrorKind from err, unwrapping as needed.
// It returns KindUnknown when err carries no structured kind.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind anywhere in its chain.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "render.Render").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// BuildError represents a failure during a widget build.
type BuildError struct {
	// Widget is the type name of the widget that failed.
	Widget string
	// Element is the element type hosting the widget.
	Element string
	// Recovered is the panic value (nil for regular errors).
	Recovered any
	// Err is the underlying error (nil for panics).
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *BuildError) Error() string {
	if e.Recovered != nil {
		return fmt.Sprintf("panic in %s.Build(): %v", e.Widget, e.Recovered)
	}
	if e.Err != nil {
		return fmt.Sprintf("error in %s.Build(): %v", e.Widget, e.Err)
	}
	return fmt.Sprintf("unknown error in %s.Build()", e.Widget)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// ErrorHandler receives errors reported by the Glaze framework.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *Error)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleBuildError is called when a widget build fails.
	HandleBuildError(err *BuildError)
}

// Is, As, and Unwrap are re-exported from the standard library so callers
// can work with sentinels through a single errors import.
func Is(err, target error) bool { return errors.Is(err, target) }

// As re-exports the standard library's errors.As.
func As(err error, target any) bool { return errors.As(err, target) }

// Unwrap re-exports the standard library's errors.Unwrap.
func Unwrap(err error) error { return errors.Unwrap(err) }
