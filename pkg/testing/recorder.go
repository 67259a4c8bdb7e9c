package testing

import (
	"iter"
	"sync"

	"github.com/go-longui/longui/pkg/core"
	"github.com/go-longui/longui/pkg/errors"
)

// DisplayOp is one recorded draw call.
type DisplayOp struct {
	Op     string `json:"op"`
	Widget string `json:"widget"`
}

// RecordingRenderer is a core.Renderer that records the passes it is asked
// to draw. Children are rendered through their own Render method, like
// core.ChainRenderer.
type RecordingRenderer struct {
	ops []DisplayOp
}

func (r *RecordingRenderer) RenderBackground(w core.Widget) { r.record("background", w) }
func (r *RecordingRenderer) RenderMain(w core.Widget)       { r.record("main", w) }
func (r *RecordingRenderer) RenderForeground(w core.Widget) { r.record("foreground", w) }

func (r *RecordingRenderer) RenderChildren(children iter.Seq[core.Widget]) {
	for child := range children {
		child.Render()
	}
}

func (r *RecordingRenderer) record(op string, w core.Widget) {
	r.ops = append(r.ops, DisplayOp{Op: op, Widget: w.Node().DebugName()})
}

// Ops returns the recorded calls since the last Reset.
func (r *RecordingRenderer) Ops() []DisplayOp {
	return r.ops
}

// Reset clears the recorded calls.
func (r *RecordingRenderer) Reset() {
	r.ops = nil
}

// DiagnosticRecorder is an errors.Handler that keeps every diagnostic.
type DiagnosticRecorder struct {
	mu          sync.Mutex
	diagnostics []*errors.Diagnostic
	panics      []*errors.PanicError
}

func (r *DiagnosticRecorder) HandleDiagnostic(d *errors.Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.diagnostics = append(r.diagnostics, d)
}

func (r *DiagnosticRecorder) HandlePanic(err *errors.PanicError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.panics = append(r.panics, err)
}

// Diagnostics returns a copy of the recorded diagnostics.
func (r *DiagnosticRecorder) Diagnostics() []*errors.Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*errors.Diagnostic(nil), r.diagnostics...)
}

// Count returns the number of diagnostics at level.
func (r *DiagnosticRecorder) Count(level errors.Level) int {
	n := 0
	for _, d := range r.Diagnostics() {
		if d.Level == level {
			n++
		}
	}
	return n
}

// Has reports whether a diagnostic with the given level and kind was seen.
func (r *DiagnosticRecorder) Has(level errors.Level, kind errors.ErrorKind) bool {
	for _, d := range r.Diagnostics() {
		if d.Level == level && d.Kind == kind {
			return true
		}
	}
	return false
}

// Reset drops every recorded diagnostic and panic.
func (r *DiagnosticRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.diagnostics = nil
	r.panics = nil
}
