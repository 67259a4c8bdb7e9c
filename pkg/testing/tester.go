package testing

import (
	"testing"

	"github.com/go-longui/longui/pkg/core"
	"github.com/go-longui/longui/pkg/geometry"
	"github.com/go-longui/longui/pkg/layout"
	"github.com/go-longui/longui/pkg/markup"
	"github.com/go-longui/longui/pkg/widgets"
)

const (
	// DefaultTestWidth is the default width of the test viewport.
	DefaultTestWidth = 800
	// DefaultTestHeight is the default height of the test viewport.
	DefaultTestHeight = 600
)

// WidgetTester builds a tree on a headless pipeline. It records every draw
// call and diagnostic instead of talking to a window.
type WidgetTester struct {
	tree        *core.Tree
	pipeline    *layout.PipelineOwner
	registry    *markup.Registry
	renderer    *RecordingRenderer
	diagnostics *DiagnosticRecorder
	root        core.Widget
	size        geometry.Size
}

// NewWidgetTester creates a tester with a default viewport and every
// widget type registered. Call Cleanup() when done, or use
// NewWidgetTesterWithT() instead.
func NewWidgetTester() *WidgetTester {
	t := &WidgetTester{
		pipeline:    &layout.PipelineOwner{},
		registry:    widgets.NewRegistry(),
		renderer:    &RecordingRenderer{},
		diagnostics: &DiagnosticRecorder{},
		size:        geometry.Size{Width: DefaultTestWidth, Height: DefaultTestHeight},
	}
	t.tree = core.NewTree(core.TreeConfig{
		Window:      t.pipeline,
		Renderer:    t.renderer,
		Diagnostics: t.diagnostics,
	})
	return t
}

// NewWidgetTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewWidgetTesterWithT(t *testing.T) *WidgetTester {
	tester := NewWidgetTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup releases the root and everything under it.
func (t *WidgetTester) Cleanup() {
	if t.root != nil {
		t.tree.Release(t.root)
		t.root = nil
	}
}

// SetSize sets the viewport size. It takes effect on the next pump.
func (t *WidgetTester) SetSize(size geometry.Size) {
	t.size = size
	if t.root != nil {
		t.pipeline.Resize(size)
	}
}

// Tree returns the tree widgets are created in.
func (t *WidgetTester) Tree() *core.Tree { return t.tree }

// Pipeline returns the headless pipeline.
func (t *WidgetTester) Pipeline() *layout.PipelineOwner { return t.pipeline }

// Registry returns the factory registry used by PumpYAML.
func (t *WidgetTester) Registry() *markup.Registry { return t.registry }

// Renderer returns the renderer that records draw calls.
func (t *WidgetTester) Renderer() *RecordingRenderer { return t.renderer }

// Diagnostics returns the recorder for the tree's diagnostics.
func (t *WidgetTester) Diagnostics() *DiagnosticRecorder { return t.diagnostics }

// Root returns the mounted root widget.
func (t *WidgetTester) Root() core.Widget { return t.root }

// PumpWidget installs root (releasing any previous root) and runs one frame.
func (t *WidgetTester) PumpWidget(root core.Widget) error {
	if t.root != nil && t.root != root {
		t.tree.Release(t.root)
	}
	if _, err := t.tree.Adopt(root); err != nil {
		return err
	}
	t.root = root
	t.pipeline.SetRoot(root, t.size)
	return t.Pump()
}

// PumpYAML builds the tree described by src and pumps it.
func (t *WidgetTester) PumpYAML(src string) error {
	b := &markup.Builder{Tree: t.tree, Registry: t.registry}
	root, err := b.BuildBytes([]byte(src))
	if err != nil {
		return err
	}
	return t.PumpWidget(root)
}

// Pump runs a single frame: layout, world refresh and, if anything was
// invalidated, render.
func (t *WidgetTester) Pump() error {
	t.renderer.Reset()
	t.pipeline.Frame()
	return nil
}

// HitTest returns the deepest widget under pt.
func (t *WidgetTester) HitTest(pt geometry.Offset) core.Widget {
	return t.pipeline.HitTest(pt)
}

// Find evaluates a finder against the current tree.
func (t *WidgetTester) Find(finder Finder) FinderResult {
	if t.root == nil {
		return FinderResult{finder: finder}
	}
	return FinderResult{
		widgets: finder.Evaluate(t.root),
		finder:  finder,
	}
}
