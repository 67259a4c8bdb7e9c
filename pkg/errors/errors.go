// Package errors provides structured errors and the diagnostics sink for LongUI.
//
// Operations on the widget tree never panic on bad input. They either return
// a *WidgetError wrapping one of the sentinel errors below, or they emit a
// Diagnostic and carry on. Diagnostics are routed to a Handler, which by
// default logs through log/slog.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindPrecondition indicates a violated precondition on a tree operation.
	KindPrecondition
	// KindCreate indicates a widget could not be created from its description.
	KindCreate
	// KindRecreate indicates a device-resource recreation failure.
	KindRecreate
	// KindPerformance indicates a slow code path was taken.
	KindPerformance
	// KindParsing indicates a declarative description could not be parsed.
	KindParsing
	// KindIntegrity indicates corrupted sibling links.
	KindIntegrity
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindPrecondition:
		return "precondition"
	case KindCreate:
		return "create"
	case KindRecreate:
		return "recreate"
	case KindPerformance:
		return "performance"
	case KindParsing:
		return "parsing"
	case KindIntegrity:
		return "integrity"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Sentinel errors wrapped by WidgetError.
var (
	ErrNilWidget     = stderrors.New("nil widget")
	ErrNotChild      = stderrors.New("widget is not a child of this container")
	ErrAlreadyLinked = stderrors.New("widget is already linked into a container")
	ErrForeignTree   = stderrors.New("widget belongs to another tree")
	ErrReleased      = stderrors.New("widget has been released")
	ErrNotMarginal   = stderrors.New("widget is not a marginal control")
	ErrBrokenLinks   = stderrors.New("sibling links are inconsistent")
	ErrUnknownType   = stderrors.New("unknown widget type")
	ErrDetached      = stderrors.New("widget is not owned by a tree")
	ErrCycle         = stderrors.New("widget cannot contain one of its ancestors")
)

// WidgetError represents a failed operation on a widget.
type WidgetError struct {
	// Op is the operation that failed (e.g., "Container.RemoveJust").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Widget is the diagnostic name of the widget involved, if any.
	Widget string
	// Err is the underlying error.
	Err error
}

func (e *WidgetError) Error() string {
	if e.Widget != "" {
		return fmt.Sprintf("%s [%s] widget=%s: %v", e.Op, e.Kind, e.Widget, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *WidgetError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "cmd.layout").
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

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// New returns an error that formats as the given text.
func New(text string) error {
	return stderrors.New(text)
}
