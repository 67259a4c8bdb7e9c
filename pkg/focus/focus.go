// Package focus tracks the focused widget of a tree and moves focus
// between laid out widgets.
package focus

import (
	"math"

	"github.com/go-longui/longui/pkg/core"
	"github.com/go-longui/longui/pkg/errors"
	"github.com/go-longui/longui/pkg/geometry"
)

// TraversalDirection indicates the focus traversal direction.
type TraversalDirection int

const (
	// TraversalDirectionUp moves focus upward.
	TraversalDirectionUp TraversalDirection = iota

	// TraversalDirectionDown moves focus downward.
	TraversalDirectionDown

	// TraversalDirectionLeft moves focus leftward.
	TraversalDirectionLeft

	// TraversalDirectionRight moves focus rightward.
	TraversalDirectionRight
)

// Focusable lets a widget opt out of focus traversal.
type Focusable interface {
	CanRequestFocus() bool
}

// Manager holds the primary focus of one tree. Focus changes are delivered
// as EventKillFocus to the widget losing focus and EventSetFocus to the
// widget gaining it; each event's Sender is the other widget.
type Manager struct {
	tree    *core.Tree
	primary core.ID
}

// NewManager returns a manager for t with nothing focused.
func NewManager(t *core.Tree) *Manager {
	return &Manager{tree: t}
}

// Primary returns the focused widget, or nil. A released widget loses
// focus silently.
func (m *Manager) Primary() core.Widget {
	return m.tree.Lookup(m.primary)
}

// RequestFocus gives w the primary focus.
func (m *Manager) RequestFocus(w core.Widget) error {
	const op = "focus.RequestFocus"
	if w == nil {
		return errors.Fail(m.tree.Diagnostics(), op, errors.KindPrecondition, "", errors.ErrNilWidget)
	}
	b := w.Node()
	if b.Released() {
		return errors.Fail(m.tree.Diagnostics(), op, errors.KindPrecondition, b.DebugName(), errors.ErrReleased)
	}
	if b.Tree() != m.tree || m.tree.Lookup(b.ID()) != w {
		return errors.Fail(m.tree.Diagnostics(), op, errors.KindPrecondition, b.DebugName(), errors.ErrForeignTree)
	}
	m.setPrimary(w)
	return nil
}

// Unfocus clears the primary focus if w holds it.
func (m *Manager) Unfocus(w core.Widget) {
	if w != nil && w == m.Primary() {
		m.setPrimary(nil)
	}
}

// MoveFocus moves focus by delta positions through the focusable widgets
// under root, in tree order, wrapping at both ends.
func (m *Manager) MoveFocus(root core.Widget, delta int) bool {
	candidates := Candidates(root)
	count := len(candidates)
	if count == 0 || delta == 0 {
		return false
	}

	current := -1
	if p := m.Primary(); p != nil {
		for i, c := range candidates {
			if c == p {
				current = i
				break
			}
		}
	}
	if current < 0 && delta > 0 {
		current = count - 1
	} else if current < 0 {
		current = 0
	}

	m.setPrimary(candidates[wrapIndex(current+delta, count)])
	return true
}

// FocusInDirection moves focus to the closest focusable widget under root
// in the given direction, judged by visible rectangles. It falls back to
// linear traversal when nothing lies that way.
func (m *Manager) FocusInDirection(root core.Widget, direction TraversalDirection) bool {
	current := m.Primary()
	if current == nil || current.Node().VisibleRect().IsEmpty() {
		return m.MoveFocus(root, linearDelta(direction))
	}
	currentRect := current.Node().VisibleRect()

	var best core.Widget
	bestScore := math.MaxFloat64
	for _, c := range Candidates(root) {
		if c == current {
			continue
		}
		rect := c.Node().VisibleRect()
		if rect.IsEmpty() || !isInDirection(currentRect, rect, direction) {
			continue
		}
		if score := directionalScore(currentRect, rect, direction); score < bestScore {
			bestScore = score
			best = c
		}
	}

	if best == nil {
		return m.MoveFocus(root, linearDelta(direction))
	}
	m.setPrimary(best)
	return true
}

// Candidates returns the widgets under root that can take focus, in
// pre-order. Containers are skipped; leaves take part unless they
// implement Focusable and refuse.
func Candidates(root core.Widget) []core.Widget {
	var out []core.Widget
	var visit func(core.Widget)
	visit = func(w core.Widget) {
		if v, ok := w.(core.ChildVisitor); ok {
			v.VisitChildren(visit)
			return
		}
		if f, ok := w.(Focusable); ok && !f.CanRequestFocus() {
			return
		}
		out = append(out, w)
	}
	if root != nil {
		visit(root)
	}
	return out
}

func (m *Manager) setPrimary(w core.Widget) {
	old := m.Primary()
	if old == w {
		return
	}
	m.primary = core.NoID
	if w != nil {
		m.primary = w.Node().ID()
	}
	if old != nil {
		old.DoEvent(core.Event{Kind: core.EventKillFocus, Sender: w})
	}
	if w != nil {
		w.DoEvent(core.Event{Kind: core.EventSetFocus, Sender: old})
	}
}

// linearDelta returns +1 or -1 for linear focus traversal based on direction.
func linearDelta(direction TraversalDirection) int {
	if direction == TraversalDirectionUp || direction == TraversalDirectionLeft {
		return -1
	}
	return 1
}

// wrapIndex wraps an index to stay within [0, count).
func wrapIndex(index, count int) int {
	index = index % count
	if index < 0 {
		index += count
	}
	return index
}

func center(r geometry.Rect) (x, y float64) {
	return float64(r.Left+r.Right) / 2, float64(r.Top+r.Bottom) / 2
}

// isInDirection checks if target rect is in the specified direction from source.
func isInDirection(source, target geometry.Rect, direction TraversalDirection) bool {
	sourceCX, sourceCY := center(source)
	targetCX, targetCY := center(target)

	switch direction {
	case TraversalDirectionUp:
		return targetCY < sourceCY
	case TraversalDirectionDown:
		return targetCY > sourceCY
	case TraversalDirectionLeft:
		return targetCX < sourceCX
	case TraversalDirectionRight:
		return targetCX > sourceCX
	}
	return false
}

// directionalScore scores a target for directional focus. Lower is better;
// cross-axis distance counts double so aligned widgets win.
func directionalScore(source, target geometry.Rect, direction TraversalDirection) float64 {
	sourceCX, sourceCY := center(source)
	targetCX, targetCY := center(target)

	var primaryDist, crossDist float64
	switch direction {
	case TraversalDirectionUp, TraversalDirectionDown:
		primaryDist = math.Abs(targetCY - sourceCY)
		crossDist = math.Abs(targetCX - sourceCX)
	case TraversalDirectionLeft, TraversalDirectionRight:
		primaryDist = math.Abs(targetCX - sourceCX)
		crossDist = math.Abs(targetCY - sourceCY)
	}
	return primaryDist + crossDist*2
}
