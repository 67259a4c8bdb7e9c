package core

import (
	"github.com/go-longui/longui/pkg/errors"
	"github.com/go-longui/longui/pkg/geometry"
)

// TreeConfig holds the collaborators of a Tree. Zero values fall back to
// defaults: no-op window, ChainRenderer and the global diagnostics handler.
type TreeConfig struct {
	Window      Window
	Renderer    Renderer
	Diagnostics errors.Handler
}

type slot struct {
	w   Widget
	gen uint32
}

// Tree owns every widget of one window. Widgets are addressed by ID; a
// released slot bumps its generation so stale IDs resolve to nil.
type Tree struct {
	slots       []slot
	free        []uint32
	live        int
	placeholder *Placeholder

	window   Window
	renderer Renderer
	diag     errors.Handler
}

// NewTree creates an empty tree with its placeholder sentinel.
func NewTree(config TreeConfig) *Tree {
	t := &Tree{
		window:   config.Window,
		renderer: config.Renderer,
		diag:     config.Diagnostics,
	}
	t.placeholder = &Placeholder{}
	t.placeholder.name = "placeholder"
	t.Adopt(t.placeholder)
	return t
}

// Adopt takes ownership of w and returns its ID. Adopting a widget that
// already belongs to t returns its existing ID.
func (t *Tree) Adopt(w Widget) (ID, error) {
	const op = "Tree.Adopt"
	if w == nil {
		return NoID, t.fail(op, errors.KindPrecondition, nil, errors.ErrNilWidget)
	}
	b := w.Node()
	switch {
	case b.released:
		return NoID, t.fail(op, errors.KindPrecondition, w, errors.ErrReleased)
	case b.tree == t:
		return b.id, nil
	case b.tree != nil:
		return NoID, t.fail(op, errors.KindPrecondition, w, errors.ErrForeignTree)
	}

	var index uint32
	if n := len(t.free); n > 0 {
		index = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		index = uint32(len(t.slots))
		t.slots = append(t.slots, slot{})
	}
	s := &t.slots[index]
	s.w = w
	t.live++

	b.tree = t
	b.id = newID(index, s.gen)
	b.self = w
	if b.zoomX == 0 {
		b.zoomX = 1
	}
	if b.zoomY == 0 {
		b.zoomY = 1
	}
	if !b.weightSet {
		b.weight = 1
	}
	b.world = geometry.Identity()
	b.layoutChanged = true
	return b.id, nil
}

// Lookup resolves id. It returns nil for NoID, stale IDs and IDs from
// another tree's range.
func (t *Tree) Lookup(id ID) Widget {
	if t == nil || id == NoID {
		return nil
	}
	i := id.index()
	if int(i) >= len(t.slots) {
		return nil
	}
	s := t.slots[i]
	if s.w == nil || s.gen != id.generation() {
		return nil
	}
	return s.w
}

func (t *Tree) node(id ID) *Base {
	if w := t.Lookup(id); w != nil {
		return w.Node()
	}
	return nil
}

// Release destroys w: it runs w.Cleanup, which releases any children, and
// frees the slot. The widget must already be unlinked from its parent.
// Releasing the placeholder is a no-op.
func (t *Tree) Release(w Widget) error {
	const op = "Tree.Release"
	if w == nil {
		return t.fail(op, errors.KindPrecondition, nil, errors.ErrNilWidget)
	}
	b := w.Node()
	if b == &t.placeholder.Base {
		return nil
	}
	if b.released {
		t.report(errors.LevelWarning, op, errors.KindPrecondition, w, "widget released twice")
		return nil
	}
	if b.tree != t {
		return t.fail(op, errors.KindPrecondition, w, errors.ErrForeignTree)
	}
	if b.parent != NoID || b.prev != NoID || b.next != NoID {
		return t.fail(op, errors.KindPrecondition, w, errors.ErrAlreadyLinked)
	}

	w.Cleanup()

	i := b.id.index()
	t.slots[i].w = nil
	t.slots[i].gen++
	t.free = append(t.free, i)
	t.live--

	b.released = true
	b.id = NoID
	return nil
}

// Placeholder returns the sentinel that stands in for "no child".
func (t *Tree) Placeholder() *Placeholder {
	if t == nil {
		return nil
	}
	return t.placeholder
}

// Len returns the number of live widgets, including the placeholder.
func (t *Tree) Len() int {
	return t.live
}

// Window returns the window collaborator.
func (t *Tree) Window() Window {
	if t == nil || t.window == nil {
		return nopWindow{}
	}
	return t.window
}

// SetWindow replaces the window collaborator.
func (t *Tree) SetWindow(w Window) {
	t.window = w
}

// Renderer returns the rendering collaborator.
func (t *Tree) Renderer() Renderer {
	if t == nil || t.renderer == nil {
		return ChainRenderer{}
	}
	return t.renderer
}

// Diagnostics returns the tree's diagnostics handler, or nil when the tree
// reports to the global handler.
func (t *Tree) Diagnostics() errors.Handler {
	if t == nil {
		return nil
	}
	return t.diag
}

func (t *Tree) report(level errors.Level, op string, kind errors.ErrorKind, w Widget, msg string) {
	errors.Report(t.Diagnostics(), &errors.Diagnostic{
		Level:   level,
		Op:      op,
		Kind:    kind,
		Widget:  debugName(w),
		Message: msg,
	})
}

func (t *Tree) fail(op string, kind errors.ErrorKind, w Widget, err error) error {
	return errors.Fail(t.Diagnostics(), op, kind, debugName(w), err)
}

func debugName(w Widget) string {
	if w == nil {
		return ""
	}
	return w.Node().DebugName()
}
