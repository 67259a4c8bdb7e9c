// Package layout drives frames for a widget tree without a platform window.
package layout

import (
	"slices"

	"github.com/go-longui/longui/pkg/core"
	"github.com/go-longui/longui/pkg/geometry"
)

// PipelineOwner collects redraw requests for one tree and runs frames.
// It implements core.Window, so pass it as TreeConfig.Window.
//
// The typical frame sequence is:
//  1. Update - containers with a dirty layout call RefreshLayout
//  2. RefreshWorld - world transforms and clip rectangles from the root down
//  3. Render - the whole tree, if anything was invalidated
type PipelineOwner struct {
	root        core.Widget
	viewport    geometry.Size
	dirtyPaint  map[core.Widget]struct{}
	needsLayout bool
	needsPaint  bool

	// OnNeedsFrame is called when the first widget is scheduled after a
	// frame, so an on-demand frame loop can wake up.
	OnNeedsFrame func()
}

// Invalidate schedules w for repaint.
func (p *PipelineOwner) Invalidate(w core.Widget) {
	p.SchedulePaint(w)
}

// SchedulePaint marks w as needing paint.
func (p *PipelineOwner) SchedulePaint(w core.Widget) {
	if w == nil {
		return
	}
	if p.dirtyPaint == nil {
		p.dirtyPaint = make(map[core.Widget]struct{})
	}
	if _, exists := p.dirtyPaint[w]; exists {
		return
	}
	first := !p.needsPaint
	p.dirtyPaint[w] = struct{}{}
	p.needsPaint = true
	if first && p.OnNeedsFrame != nil {
		p.OnNeedsFrame()
	}
}

// NeedsLayout reports whether the viewport changed since the last frame.
func (p *PipelineOwner) NeedsLayout() bool {
	return p.needsLayout
}

// NeedsPaint reports if any widget needs paint.
func (p *PipelineOwner) NeedsPaint() bool {
	return p.needsPaint
}

// Root returns the root widget.
func (p *PipelineOwner) Root() core.Widget {
	return p.root
}

// Viewport returns the size the root is laid out in.
func (p *PipelineOwner) Viewport() geometry.Size {
	return p.viewport
}

// SetRoot installs root and lays it out in viewport on the next frame.
func (p *PipelineOwner) SetRoot(root core.Widget, viewport geometry.Size) {
	p.root = root
	p.Resize(viewport)
}

// Resize changes the viewport of the root.
func (p *PipelineOwner) Resize(viewport geometry.Size) {
	p.viewport = viewport
	p.needsLayout = true
	if p.root != nil {
		p.SchedulePaint(p.root)
	}
}

// FlushLayout applies the viewport to the root, updates every dirty layout
// and refreshes world transforms.
func (p *PipelineOwner) FlushLayout() {
	if p.root == nil || p.root.Node().Released() {
		return
	}
	rb := p.root.Node()
	if p.needsLayout {
		rb.SetWidth(p.viewport.Width)
		rb.SetHeight(p.viewport.Height)
		rb.SetLayoutChanged()
	}
	p.root.Update()
	rb.RefreshWorld()
	p.needsLayout = false
}

// FlushPaint returns the widgets scheduled for paint, parents first, and
// clears the schedule. Widgets released since they were scheduled are
// dropped.
func (p *PipelineOwner) FlushPaint() []core.Widget {
	if !p.needsPaint || len(p.dirtyPaint) == 0 {
		p.dirtyPaint = nil
		p.needsPaint = false
		return nil
	}

	dirty := make([]core.Widget, 0, len(p.dirtyPaint))
	for w := range p.dirtyPaint {
		if !w.Node().Released() {
			dirty = append(dirty, w)
		}
	}
	slices.SortStableFunc(dirty, func(a, b core.Widget) int {
		return a.Node().Depth() - b.Node().Depth()
	})

	p.dirtyPaint = nil
	p.needsPaint = false
	return dirty
}

// Frame runs one frame and returns the widgets that were invalidated. The
// root is rendered only when that list is not empty.
func (p *PipelineOwner) Frame() []core.Widget {
	if p.root == nil {
		return nil
	}
	p.FlushLayout()
	dirty := p.FlushPaint()
	if len(dirty) > 0 && !p.root.Node().Released() {
		p.root.Render()
	}
	return dirty
}

// HitTest returns the deepest widget whose visible rectangle contains pt,
// or nil when pt is outside the root.
func (p *PipelineOwner) HitTest(pt geometry.Offset) core.Widget {
	if p.root == nil || !p.root.Node().VisibleRect().Contains(pt) {
		return nil
	}
	w := p.root
	for {
		child := w.FindChild(pt)
		if child == nil {
			return w
		}
		w = child
	}
}
