package errors

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Level is the severity of a diagnostic.
type Level int

const (
	// LevelHint is informational and never indicates a defect.
	LevelHint Level = iota
	// LevelWarning flags suspicious but recoverable usage.
	LevelWarning
	// LevelError flags a rejected operation.
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelHint:
		return "hint"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "Level(" + strconv.Itoa(int(l)) + ")"
	}
}

// ParseLevel converts a level name to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hint", "debug":
		return LevelHint, nil
	case "warning", "warn", "":
		return LevelWarning, nil
	case "error":
		return LevelError, nil
	default:
		return LevelWarning, fmt.Errorf("unknown diagnostic level %q", s)
	}
}

// Diagnostic is a single message emitted by the widget tree.
type Diagnostic struct {
	Level Level
	// Op is the operation that emitted the message (e.g., "Container.GetAt").
	Op string
	// Kind categorizes the message.
	Kind ErrorKind
	// Widget is the diagnostic name of the widget involved, if any.
	Widget string
	// Message is the human-readable text.
	Message string
	// Err is the error being reported, if any.
	Err error
	// Timestamp is when the diagnostic was emitted.
	Timestamp time.Time
}

func (d *Diagnostic) String() string {
	var sb strings.Builder
	sb.WriteString(d.Level.String())
	sb.WriteString(" ")
	sb.WriteString(d.Op)
	if d.Widget != "" {
		sb.WriteString(" [")
		sb.WriteString(d.Widget)
		sb.WriteString("]")
	}
	if d.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(d.Message)
	}
	if d.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(d.Err.Error())
	}
	return sb.String()
}

// Handler receives diagnostics reported by the widget tree.
type Handler interface {
	// HandleDiagnostic is called for every emitted diagnostic.
	HandleDiagnostic(d *Diagnostic)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}

var (
	// DefaultHandler is the global diagnostics handler.
	// It defaults to LogHandler at warning level.
	DefaultHandler Handler = NewLogHandler(nil, LevelWarning)

	handlerMu sync.RWMutex
)

// SetHandler configures the global diagnostics handler.
// Pass nil to restore the default LogHandler.
func SetHandler(h Handler) {
	handlerMu.Lock()
	defer handlerMu.Unlock()
	if h == nil {
		DefaultHandler = NewLogHandler(nil, LevelWarning)
	} else {
		DefaultHandler = h
	}
}

func getHandler() Handler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return DefaultHandler
}

// Report sends a diagnostic to h, or to the global handler when h is nil.
// If d.Timestamp is zero, it is set to the current time.
func Report(h Handler, d *Diagnostic) {
	if d == nil {
		return
	}
	if d.Timestamp.IsZero() {
		d.Timestamp = time.Now()
	}
	if h == nil {
		h = getHandler()
	}
	if h != nil {
		h.HandleDiagnostic(d)
	}
}

// Fail reports err as an Error diagnostic and returns it wrapped in a
// *WidgetError, so callers can write `return errors.Fail(...)`.
func Fail(h Handler, op string, kind ErrorKind, widget string, err error) error {
	werr := &WidgetError{Op: op, Kind: kind, Widget: widget, Err: err}
	Report(h, &Diagnostic{
		Level:  LevelError,
		Op:     op,
		Kind:   kind,
		Widget: widget,
		Err:    err,
	})
	return werr
}

// ReportPanic sends a panic error to the global handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if h := getHandler(); h != nil {
		h.HandlePanic(err)
	}
}

// Recover is a helper for deferred panic recovery.
// Usage: defer errors.Recover("operation.name")
func Recover(op string) {
	if r := recover(); r != nil {
		ReportPanic(&PanicError{
			Op:         op,
			Value:      r,
			StackTrace: CaptureStack(),
			Timestamp:  time.Now(),
		})
	}
}

// CaptureStack returns the current call stack as a string.
// It skips the first few frames to exclude the CaptureStack call itself.
func CaptureStack() string {
	const maxDepth = 32
	var pcs [maxDepth]uintptr
	n := runtime.Callers(3, pcs[:])
	if n == 0 {
		return ""
	}

	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		frame, more := frames.Next()
		sb.WriteString(frame.Function)
		sb.WriteString("\n\t")
		sb.WriteString(frame.File)
		sb.WriteString(":")
		sb.WriteString(strconv.Itoa(frame.Line))
		sb.WriteString("\n")
		if !more {
			break
		}
	}
	return sb.String()
}
