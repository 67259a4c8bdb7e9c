package core

import (
	"iter"

	"github.com/go-longui/longui/pkg/errors"
	"github.com/go-longui/longui/pkg/geometry"
)

// ContainerBase is the shared layer of every container. It owns the four
// marginal slots and provides the fan-out helpers that concrete containers
// apply to their own child ranges.
type ContainerBase struct {
	Base
	marginals [sideCount]ID
}

// Marginal returns the marginal control on side s, or nil.
func (c *ContainerBase) Marginal(s Side) Widget {
	if s < 0 || s >= sideCount {
		return nil
	}
	return c.tree.Lookup(c.marginals[s])
}

func (c *ContainerBase) marginalSeq() iter.Seq[Widget] {
	return func(yield func(Widget) bool) {
		for _, id := range c.marginals {
			if w := c.tree.Lookup(id); w != nil && !yield(w) {
				return
			}
		}
	}
}

// DoEvent forwards a sender-carrying tree-building event to the marginal
// controls and marks the layout dirty.
func (c *ContainerBase) DoEvent(e Event) bool {
	if e.Sender != nil && e.Kind == EventTreeBuildingFinished {
		for m := range c.marginalSeq() {
			m.DoEvent(e)
		}
		c.layoutChanged = true
		return true
	}
	return c.Base.DoEvent(e)
}

// EventHelper runs the container half of DoEvent and then, for the
// tree-building event only, forwards e to every child in order.
func (c *ContainerBase) EventHelper(children iter.Seq[Widget], e Event) bool {
	if e.Sender != nil && e.Kind == EventTreeBuildingFinished {
		c.DoEvent(e)
		for child := range children {
			child.DoEvent(e)
		}
		return true
	}
	return c.DoEvent(e)
}

// RenderHelper draws the three passes: background, then children, the
// marginal controls and the container's own main content, then foreground.
func (c *ContainerBase) RenderHelper(children iter.Seq[Widget]) {
	r := c.tree.Renderer()
	self := c.Self()
	r.RenderBackground(self)
	r.RenderChildren(children)
	r.RenderChildren(c.marginalSeq())
	r.RenderMain(self)
	r.RenderForeground(self)
}

// UpdateHelper refreshes the container's own layout if needed, then updates
// the marginal controls and every child.
func (c *ContainerBase) UpdateHelper(children iter.Seq[Widget]) {
	c.Base.Update()
	for m := range c.marginalSeq() {
		m.Update()
	}
	for child := range children {
		child.Update()
	}
}

// RecreateHelper recreates every child, the marginal controls and the
// container itself. Failures do not stop the walk; the last one is returned.
func (c *ContainerBase) RecreateHelper(children iter.Seq[Widget]) error {
	var last error
	for child := range children {
		if err := child.Recreate(); err != nil {
			if DebugMode {
				c.tree.report(errors.LevelError, "Container.Recreate", errors.KindRecreate, child, err.Error())
			}
			last = err
		}
	}
	if err := c.recreateMarginals(); err != nil {
		last = err
	}
	return last
}

func (c *ContainerBase) recreateMarginals() error {
	var last error
	for m := range c.marginalSeq() {
		if err := m.Recreate(); err != nil {
			if DebugMode {
				c.tree.report(errors.LevelError, "Container.Recreate", errors.KindRecreate, m, err.Error())
			}
			last = err
		}
	}
	if err := c.Base.Recreate(); err != nil {
		last = err
	}
	return last
}

// Recreate recreates the marginal controls.
func (c *ContainerBase) Recreate() error {
	return c.recreateMarginals()
}

// Update updates the marginal controls.
func (c *ContainerBase) Update() {
	c.UpdateHelper(func(func(Widget) bool) {})
}

// Render draws the container with no children.
func (c *ContainerBase) Render() {
	c.RenderHelper(func(func(Widget) bool) {})
}

// FindChild hit-tests the marginal controls.
func (c *ContainerBase) FindChild(pt geometry.Offset) Widget {
	for m := range c.marginalSeq() {
		if m.Node().visible.Contains(pt) {
			return m
		}
	}
	return nil
}

// VisitChildren visits the marginal controls.
func (c *ContainerBase) VisitChildren(visitor func(Widget)) {
	for m := range c.marginalSeq() {
		visitor(m)
	}
}

// PushBack installs a marginal control in the slot named by its side. An
// occupied slot is replaced and its previous control released.
func (c *ContainerBase) PushBack(child Widget) error {
	const op = "Container.PushBack"
	if child != nil && !child.Node().HasFlag(FlagMarginal) {
		return c.tree.fail(op, errors.KindPrecondition, child, errors.ErrNotMarginal)
	}
	if err := c.accept(op, child); err != nil {
		return err
	}
	cb := child.Node()
	side := cb.side
	if side < 0 || side >= sideCount {
		return c.tree.fail(op, errors.KindPrecondition, child, errors.ErrNotMarginal)
	}
	if old := c.tree.Lookup(c.marginals[side]); old != nil {
		c.tree.report(errors.LevelWarning, op, errors.KindPrecondition, old, "replacing marginal control on "+side.String())
		c.marginals[side] = NoID
		old.Node().parent = NoID
		c.tree.Release(old)
	}
	c.marginals[side] = cb.id
	c.AfterInsert(child)
	return nil
}

// RemoveJust unlinks a marginal control without releasing it.
func (c *ContainerBase) RemoveJust(child Widget) error {
	const op = "Container.RemoveJust"
	if child == nil {
		return c.tree.fail(op, errors.KindPrecondition, nil, errors.ErrNilWidget)
	}
	cb := child.Node()
	for i, id := range c.marginals {
		if id != NoID && id == cb.id && cb.tree == c.tree {
			c.marginals[i] = NoID
			c.detach(cb)
			return nil
		}
	}
	return c.tree.fail(op, errors.KindPrecondition, child, errors.ErrNotChild)
}

// AfterInsert records c as child's parent, marks both layouts dirty and
// requests a redraw.
func (c *ContainerBase) AfterInsert(child Widget) {
	cb := child.Node()
	cb.parent = c.id
	cb.layoutChanged = true
	c.layoutChanged = true
	c.Invalidate()
}

// Detach clears child's parent link after a concrete container has dropped
// its own reference to it. Children still linked into a list are refused.
func (c *ContainerBase) Detach(child Widget) error {
	const op = "Container.Detach"
	if child == nil {
		return c.tree.fail(op, errors.KindPrecondition, nil, errors.ErrNilWidget)
	}
	cb := child.Node()
	if cb.tree != c.tree || cb.parent != c.id {
		return c.tree.fail(op, errors.KindPrecondition, child, errors.ErrNotChild)
	}
	if l, ok := c.Self().(listOwner); ok && l.listContains(cb.id) {
		return c.tree.fail(op, errors.KindPrecondition, child, errors.ErrAlreadyLinked)
	}
	c.detach(cb)
	return nil
}

func (c *ContainerBase) detach(cb *Base) {
	cb.parent = NoID
	c.layoutChanged = true
	c.Invalidate()
}

// Accept checks that child may be inserted into c, adopting it into c's
// tree when it has none yet.
func (c *ContainerBase) Accept(child Widget) error {
	return c.accept("Container.Accept", child)
}

func (c *ContainerBase) accept(op string, child Widget) error {
	if child == nil {
		return c.tree.fail(op, errors.KindPrecondition, nil, errors.ErrNilWidget)
	}
	if c.tree == nil || c.released {
		return c.tree.fail(op, errors.KindPrecondition, c.Self(), errors.ErrDetached)
	}
	cb := child.Node()
	if cb.tree == nil && !cb.released {
		if _, err := c.tree.Adopt(child); err != nil {
			return err
		}
	}
	switch {
	case cb.released:
		return c.tree.fail(op, errors.KindPrecondition, child, errors.ErrReleased)
	case cb.tree != c.tree:
		return c.tree.fail(op, errors.KindPrecondition, child, errors.ErrForeignTree)
	case cb == &c.tree.placeholder.Base:
		return c.tree.fail(op, errors.KindPrecondition, child, errors.ErrAlreadyLinked)
	case cb.parent != NoID || cb.prev != NoID || cb.next != NoID:
		return c.tree.fail(op, errors.KindPrecondition, child, errors.ErrAlreadyLinked)
	}
	for p := &c.Base; p != nil; p = c.tree.node(p.parent) {
		if p == cb {
			return c.tree.fail(op, errors.KindPrecondition, child, errors.ErrCycle)
		}
	}
	return nil
}

// Cleanup releases the marginal controls.
func (c *ContainerBase) Cleanup() {
	for i, id := range c.marginals {
		if w := c.tree.Lookup(id); w != nil {
			c.marginals[i] = NoID
			w.Node().parent = NoID
			c.tree.Release(w)
		}
	}
	c.Base.Cleanup()
}

// listOwner is implemented by containers that keep a linked child list.
type listOwner interface {
	listContains(id ID) bool
}
