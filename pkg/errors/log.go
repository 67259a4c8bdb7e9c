package errors

import (
	"context"
	"log/slog"
	"os"
	"sync"
)

// LogHandler is a Handler that writes diagnostics through a slog.Logger.
// Hints map to debug records, warnings to warn and errors to error.
type LogHandler struct {
	// Logger receives the records. A text logger on stderr is used when nil.
	Logger *slog.Logger
	// MinLevel drops diagnostics below this level.
	MinLevel Level
	// Verbose adds stack traces to panic records.
	Verbose bool
}

// NewLogHandler returns a LogHandler writing to logger at or above min.
func NewLogHandler(logger *slog.Logger, min Level) *LogHandler {
	return &LogHandler{Logger: logger, MinLevel: min}
}

// stderrLogger is shared by every LogHandler without a Logger.
var stderrLogger = sync.OnceValue(func() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
})

func (h *LogHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return stderrLogger()
}

// HandleDiagnostic logs a Diagnostic.
func (h *LogHandler) HandleDiagnostic(d *Diagnostic) {
	if d == nil || d.Level < h.MinLevel {
		return
	}
	attrs := []slog.Attr{slog.String("op", d.Op)}
	if d.Kind != KindUnknown {
		attrs = append(attrs, slog.String("kind", d.Kind.String()))
	}
	if d.Widget != "" {
		attrs = append(attrs, slog.String("widget", d.Widget))
	}
	if d.Err != nil {
		attrs = append(attrs, slog.Any("err", d.Err))
	}
	msg := d.Message
	if msg == "" && d.Err != nil {
		msg = d.Err.Error()
	}
	h.logger().LogAttrs(context.Background(), slogLevel(d.Level), msg, attrs...)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	attrs := []slog.Attr{slog.String("op", err.Op), slog.Any("value", err.Value)}
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, slog.String("stack", err.StackTrace))
	}
	h.logger().LogAttrs(context.Background(), slog.LevelError, "panic", attrs...)
}

func slogLevel(l Level) slog.Level {
	switch l {
	case LevelHint:
		return slog.LevelDebug
	case LevelWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
