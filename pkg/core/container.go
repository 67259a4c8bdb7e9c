package core

import (
	"fmt"
	"iter"

	"github.com/go-longui/longui/pkg/errors"
	"github.com/go-longui/longui/pkg/geometry"
)

const (
	// findChildWarnCount is the child count above which FindChild warns
	// about its linear scan.
	findChildWarnCount = 100
	// getAtWarnIndex is the index above which GetAt warns about its walk.
	getAtWarnIndex = 8
)

// Container keeps its children in a doubly linked list threaded through
// the children's own prev/next links. Embed it in containers that arrange
// any number of children.
type Container struct {
	ContainerBase
	head  ID
	tail  ID
	count int
}

// Count returns the number of children in the list.
func (c *Container) Count() int { return c.count }

// Head returns the first child, or nil.
func (c *Container) Head() Widget { return c.tree.Lookup(c.head) }

// Tail returns the last child, or nil.
func (c *Container) Tail() Widget { return c.tree.Lookup(c.tail) }

// All iterates the children from head to tail.
func (c *Container) All() iter.Seq[Widget] {
	return func(yield func(Widget) bool) {
		for id := c.head; id != NoID; {
			w := c.tree.Lookup(id)
			if w == nil {
				return
			}
			next := w.Node().next
			if !yield(w) {
				return
			}
			id = next
		}
	}
}

// Backward iterates the children from tail to head.
func (c *Container) Backward() iter.Seq[Widget] {
	return func(yield func(Widget) bool) {
		for id := c.tail; id != NoID; {
			w := c.tree.Lookup(id)
			if w == nil {
				return
			}
			prev := w.Node().prev
			if !yield(w) {
				return
			}
			id = prev
		}
	}
}

// VisitChildren visits the marginal controls, then the list.
func (c *Container) VisitChildren(visitor func(Widget)) {
	c.ContainerBase.VisitChildren(visitor)
	for child := range c.All() {
		visitor(child)
	}
}

// DoEvent forwards the tree-building event to every child after the
// marginal controls.
func (c *Container) DoEvent(e Event) bool {
	return c.EventHelper(c.All(), e)
}

// Render draws background, children, own main content and foreground.
func (c *Container) Render() {
	c.RenderHelper(c.All())
}

// Update refreshes the layout and updates every child.
func (c *Container) Update() {
	c.UpdateHelper(c.All())
}

// Recreate recreates every child even if some fail.
func (c *Container) Recreate() error {
	return c.RecreateHelper(c.All())
}

// FindChild returns the marginal control or the first child, in list
// order, whose visible rectangle contains pt.
func (c *Container) FindChild(pt geometry.Offset) Widget {
	if w := c.ContainerBase.FindChild(pt); w != nil {
		return w
	}
	if c.count > findChildWarnCount {
		c.tree.report(errors.LevelWarning, "Container.FindChild", errors.KindPerformance, c.Self(),
			fmt.Sprintf("linear hit test over %d children", c.count))
	}
	for child := range c.All() {
		if child.Node().visible.Contains(pt) {
			return child
		}
	}
	return nil
}

// PushBack appends child, or installs it in its marginal slot when it is
// flagged FlagMarginal.
func (c *Container) PushBack(child Widget) error {
	if child != nil && child.Node().HasFlag(FlagMarginal) {
		return c.ContainerBase.PushBack(child)
	}
	return c.Insert(nil, child)
}

// Insert places child before the given sibling (nil appends) and marks the
// layout dirty.
func (c *Container) Insert(before, child Widget) error {
	if err := c.InsertOnly(before, child); err != nil {
		return err
	}
	c.AfterInsert(child)
	return nil
}

// InsertOnly links child into the list before the given sibling, or at the
// end when before is nil, and records c as its parent. It does not touch
// layout state or request a redraw.
func (c *Container) InsertOnly(before, child Widget) error {
	const op = "Container.InsertOnly"
	if err := c.accept(op, child); err != nil {
		return err
	}
	cb := child.Node()
	if before == nil {
		cb.prev = c.tail
		if t := c.tree.node(c.tail); t != nil {
			t.next = cb.id
		} else {
			c.head = cb.id
		}
		c.tail = cb.id
	} else {
		bb := before.Node()
		if !c.owns(bb) {
			return c.tree.fail(op, errors.KindPrecondition, before, errors.ErrNotChild)
		}
		cb.prev = bb.prev
		cb.next = bb.id
		if p := c.tree.node(bb.prev); p != nil {
			p.next = cb.id
		} else {
			c.head = cb.id
		}
		bb.prev = cb.id
	}
	cb.parent = c.id
	c.count++
	return nil
}

// RemoveJust unlinks child without releasing it. A child that does not
// belong to c is left untouched and an error is returned.
func (c *Container) RemoveJust(child Widget) error {
	const op = "Container.RemoveJust"
	if child == nil {
		return c.tree.fail(op, errors.KindPrecondition, nil, errors.ErrNilWidget)
	}
	cb := child.Node()
	if cb.HasFlag(FlagMarginal) && c.isMarginal(cb) {
		return c.ContainerBase.RemoveJust(child)
	}
	if !c.owns(cb) {
		return c.tree.fail(op, errors.KindPrecondition, child, errors.ErrNotChild)
	}
	c.setNext(cb.prev, cb.next)
	c.setPrev(cb.next, cb.prev)
	cb.prev, cb.next = NoID, NoID
	c.count--
	c.detach(cb)
	return nil
}

// IndexOf returns the position of child in the list, or -1 if it is not a
// child of c.
func (c *Container) IndexOf(child Widget) int {
	const op = "Container.IndexOf"
	if child == nil || !c.owns(child.Node()) {
		c.tree.fail(op, errors.KindPrecondition, child, errors.ErrNotChild)
		return -1
	}
	id := child.Node().id
	i := 0
	for w := range c.All() {
		if w.Node().id == id {
			return i
		}
		i++
	}
	return -1
}

// GetAt returns the child at index, or nil when index is out of range.
// It walks from whichever end is closer.
func (c *Container) GetAt(index int) Widget {
	if index < 0 || index >= c.count {
		return nil
	}
	if index == 0 {
		return c.Head()
	}
	if index > getAtWarnIndex {
		c.tree.report(errors.LevelWarning, "Container.GetAt", errors.KindPerformance, c.Self(),
			fmt.Sprintf("random access at index %d walks the child list", index))
	}
	if back := c.count - 1 - index; back < index {
		n := c.tree.node(c.tail)
		for ; back > 0 && n != nil; back-- {
			n = c.tree.node(n.prev)
		}
		return widgetOf(n)
	}
	n := c.tree.node(c.head)
	for i := 0; i < index && n != nil; i++ {
		n = c.tree.node(n.next)
	}
	return widgetOf(n)
}

// SwapChild exchanges the positions of a and b, leaving every other child
// in place.
func (c *Container) SwapChild(a, b Widget) error {
	const op = "Container.SwapChild"
	if a == nil || b == nil {
		return c.tree.fail(op, errors.KindPrecondition, nil, errors.ErrNilWidget)
	}
	na, nb := a.Node(), b.Node()
	if !c.owns(na) {
		return c.tree.fail(op, errors.KindPrecondition, a, errors.ErrNotChild)
	}
	if !c.owns(nb) {
		return c.tree.fail(op, errors.KindPrecondition, b, errors.ErrNotChild)
	}
	if na == nb {
		c.tree.report(errors.LevelWarning, op, errors.KindPrecondition, a, "swapping a child with itself")
		return nil
	}

	if nb.next == na.id {
		na, nb = nb, na
	}
	if na.next == nb.id {
		// prev, a, b, next becomes prev, b, a, next.
		prev, next := na.prev, nb.next
		nb.prev, nb.next = prev, na.id
		na.prev, na.next = nb.id, next
		c.setNext(prev, nb.id)
		c.setPrev(next, na.id)
	} else {
		aPrev, aNext := na.prev, na.next
		bPrev, bNext := nb.prev, nb.next
		na.prev, na.next = bPrev, bNext
		nb.prev, nb.next = aPrev, aNext
		c.setNext(aPrev, nb.id)
		c.setPrev(aNext, nb.id)
		c.setNext(bPrev, na.id)
		c.setPrev(bNext, na.id)
	}

	if DebugMode {
		if err := c.CheckIntegrity(); err != nil {
			return c.tree.fail(op, errors.KindIntegrity, c.Self(), err)
		}
	}
	c.layoutChanged = true
	c.Invalidate()
	return nil
}

// CheckIntegrity walks the list in both directions and reports the first
// inconsistency found.
func (c *Container) CheckIntegrity() error {
	if (c.head == NoID) != (c.tail == NoID) || (c.head == NoID) != (c.count == 0) {
		return c.brokenLinks("head=%s tail=%s count=%d", c.head, c.tail, c.count)
	}
	n, prev := 0, NoID
	for id := c.head; id != NoID; {
		if n >= c.count {
			return c.brokenLinks("forward walk exceeds count %d", c.count)
		}
		node := c.tree.node(id)
		if node == nil {
			return c.brokenLinks("forward walk reached stale handle %s", id)
		}
		if node.prev != prev || node.parent != c.id {
			return c.brokenLinks("child %s has prev=%s parent=%s", node.DebugName(), node.prev, node.parent)
		}
		prev, id = id, node.next
		n++
	}
	if n != c.count || prev != c.tail {
		return c.brokenLinks("forward walk visited %d of %d children", n, c.count)
	}
	n, next := 0, NoID
	for id := c.tail; id != NoID; {
		if n >= c.count {
			return c.brokenLinks("backward walk exceeds count %d", c.count)
		}
		node := c.tree.node(id)
		if node == nil || node.next != next {
			return c.brokenLinks("backward walk broken at %s", id)
		}
		next, id = id, node.prev
		n++
	}
	if n != c.count || next != c.head {
		return c.brokenLinks("backward walk visited %d of %d children", n, c.count)
	}
	return nil
}

func (c *Container) brokenLinks(format string, args ...any) error {
	return &errors.WidgetError{
		Op:     "Container.CheckIntegrity",
		Kind:   errors.KindIntegrity,
		Widget: c.DebugName(),
		Err:    fmt.Errorf("%w: %s", errors.ErrBrokenLinks, fmt.Sprintf(format, args...)),
	}
}

// Cleanup releases every child from head to tail, then the marginal
// controls.
func (c *Container) Cleanup() {
	for id := c.head; id != NoID; {
		w := c.tree.Lookup(id)
		if w == nil {
			break
		}
		cb := w.Node()
		id = cb.next
		cb.prev, cb.next, cb.parent = NoID, NoID, NoID
		c.tree.Release(w)
	}
	c.head, c.tail, c.count = NoID, NoID, 0
	c.ContainerBase.Cleanup()
}

// owns reports whether cb is linked into c's list. The parent check is
// constant time; debug builds also confirm membership by walking the list.
func (c *Container) owns(cb *Base) bool {
	if cb.tree != c.tree || cb.parent != c.id || cb.id == NoID || c.isMarginal(cb) {
		return false
	}
	if DebugMode {
		return c.listContains(cb.id)
	}
	return true
}

func (c *Container) listContains(id ID) bool {
	for w := range c.All() {
		if w.Node().id == id {
			return true
		}
	}
	return false
}

func (c *Container) isMarginal(cb *Base) bool {
	for _, id := range c.marginals {
		if id != NoID && id == cb.id {
			return true
		}
	}
	return false
}

func (c *Container) setNext(id, to ID) {
	if n := c.tree.node(id); n != nil {
		n.next = to
	} else {
		c.head = to
	}
}

func (c *Container) setPrev(id, to ID) {
	if n := c.tree.node(id); n != nil {
		n.prev = to
	} else {
		c.tail = to
	}
}

func widgetOf(b *Base) Widget {
	if b == nil {
		return nil
	}
	return b.Self()
}
