package core

import (
	"golang.org/x/image/math/f32"

	"github.com/go-longui/longui/pkg/geometry"
)

// AutoControlMinSize is the smallest size a layout engine gives a
// weighted child along its layout axis.
const AutoControlMinSize float32 = 8

// Widget is the capability set shared by every node in a Tree.
//
// Concrete widgets embed Base (leaves), ContainerBase or Container and
// override the methods they specialize.
type Widget interface {
	// Node returns the embedded node record.
	Node() *Base
	// DoEvent dispatches a structural event and reports whether it was handled.
	DoEvent(e Event) bool
	// Render draws the widget in three passes: background, main, foreground.
	Render()
	// Update refreshes a dirty layout and propagates to children.
	Update()
	// Recreate rebuilds device resources. Containers continue past failures
	// and return the last one.
	Recreate() error
	// FindChild returns the direct child whose visible rectangle contains pt
	// (in window coordinates), or nil.
	FindChild(pt geometry.Offset) Widget
	// RefreshLayout arranges children inside the viewport.
	RefreshLayout()
	// Cleanup is called by Tree.Release before the widget's slot is freed.
	Cleanup()
}

// Parent is a widget that owns children.
type Parent interface {
	Widget
	PushBack(child Widget) error
	RemoveJust(child Widget) error
	ChildVisitor
}

// ChildVisitor visits every child, marginal controls first.
type ChildVisitor interface {
	VisitChildren(visitor func(Widget))
}

// Base is the node record every widget embeds. Sibling and parent links are
// only written by the list code in this package.
type Base struct {
	tree     *Tree
	id       ID
	self     Widget
	released bool

	name      string
	flags     Flags
	side      Side
	weight    float32
	weightSet bool

	pos         geometry.Offset
	size        geometry.Size
	margin      geometry.Insets
	contentSize geometry.Size
	zoomX       float32
	zoomY       float32

	world   f32.Aff3
	visible geometry.Rect

	layoutChanged bool

	parent ID
	prev   ID
	next   ID
}

// Node returns b.
func (b *Base) Node() *Base { return b }

// Tree returns the owning tree, or nil before adoption.
func (b *Base) Tree() *Tree { return b.tree }

// ID returns the widget's handle.
func (b *Base) ID() ID { return b.id }

// Self returns the outermost widget embedding b.
func (b *Base) Self() Widget {
	if b.self != nil {
		return b.self
	}
	return b
}

// Released reports whether the widget has been released by its tree.
func (b *Base) Released() bool { return b.released }

func (b *Base) Name() string        { return b.name }
func (b *Base) SetName(name string) { b.name = name }

// DebugName returns the name, or the ID when the widget is unnamed.
func (b *Base) DebugName() string {
	if b.name != "" {
		return b.name
	}
	return "#" + b.id.String()
}

func (b *Base) Flags() Flags              { return b.flags }
func (b *Base) SetFlags(f Flags)          { b.flags = f }
func (b *Base) AddFlags(f Flags)          { b.flags |= f }
func (b *Base) ClearFlags(f Flags)        { b.flags &^= f }
func (b *Base) HasFlag(f Flags) bool      { return b.flags&f != 0 }
func (b *Base) Side() Side                { return b.side }
func (b *Base) SetSide(s Side)            { b.side = s }
func (b *Base) Weight() float32           { return b.weight }
func (b *Base) Position() geometry.Offset { return b.pos }

// SetWeight sets the share of flexible space along a layout axis.
func (b *Base) SetWeight(w float32) {
	b.weight = w
	b.weightSet = true
}

// SetPosition moves the widget's outer box, relative to its parent's
// content origin.
func (b *Base) SetPosition(p geometry.Offset) {
	if b.pos != p {
		b.pos = p
		b.layoutChanged = true
	}
}

// Size returns the view size, excluding margins.
func (b *Base) Size() geometry.Size { return b.size }
func (b *Base) Width() float32      { return b.size.Width }
func (b *Base) Height() float32     { return b.size.Height }

// SetViewSize sets the view size directly.
func (b *Base) SetViewSize(s geometry.Size) {
	s.Width = max(s.Width, 0)
	s.Height = max(s.Height, 0)
	if b.size != s {
		b.size = s
		b.layoutChanged = true
	}
}

// SetWidth sets the taking-up width; the view width is what is left after
// the horizontal margins.
func (b *Base) SetWidth(w float32) {
	b.SetViewSize(geometry.Size{Width: w - b.margin.Horizontal(), Height: b.size.Height})
}

// SetHeight sets the taking-up height.
func (b *Base) SetHeight(h float32) {
	b.SetViewSize(geometry.Size{Width: b.size.Width, Height: h - b.margin.Vertical()})
}

// TakingUpWidth returns the view width plus horizontal margins.
func (b *Base) TakingUpWidth() float32 { return b.size.Width + b.margin.Horizontal() }

// TakingUpHeight returns the view height plus vertical margins.
func (b *Base) TakingUpHeight() float32 { return b.size.Height + b.margin.Vertical() }

func (b *Base) Margin() geometry.Insets { return b.margin }

func (b *Base) SetMargin(m geometry.Insets) {
	if b.margin != m {
		b.margin = m
		b.layoutChanged = true
	}
}

func (b *Base) ContentSize() geometry.Size     { return b.contentSize }
func (b *Base) SetContentSize(s geometry.Size) { b.contentSize = s }

// Zoom returns the scale applied to the widget's content.
func (b *Base) Zoom() (x, y float32) { return b.zoomX, b.zoomY }

// SetZoom sets the content scale. Non-positive factors are ignored.
func (b *Base) SetZoom(x, y float32) {
	if x <= 0 || y <= 0 {
		return
	}
	if b.zoomX != x || b.zoomY != y {
		b.zoomX, b.zoomY = x, y
		b.layoutChanged = true
	}
}

// ViewWidthZoomed returns the view width in content units.
func (b *Base) ViewWidthZoomed() float32 { return b.size.Width / b.zoomOrOne(b.zoomX) }

// ViewHeightZoomed returns the view height in content units.
func (b *Base) ViewHeightZoomed() float32 { return b.size.Height / b.zoomOrOne(b.zoomY) }

func (b *Base) zoomOrOne(z float32) float32 {
	if z == 0 {
		return 1
	}
	return z
}

// World returns the transform from the widget's view space to window space,
// as computed by the last RefreshWorld.
func (b *Base) World() f32.Aff3 { return b.world }

// VisibleRect returns the window-space rectangle of the view, clipped by
// every ancestor.
func (b *Base) VisibleRect() geometry.Rect { return b.visible }

func (b *Base) IsLayoutChanged() bool { return b.layoutChanged }
func (b *Base) SetLayoutChanged()     { b.layoutChanged = true }
func (b *Base) LayoutChangeHandled()  { b.layoutChanged = false }

// Parent returns the owning container, or nil.
func (b *Base) Parent() Widget { return b.tree.Lookup(b.parent) }

// Prev returns the previous sibling, or nil.
func (b *Base) Prev() Widget { return b.tree.Lookup(b.prev) }

// Next returns the next sibling, or nil.
func (b *Base) Next() Widget { return b.tree.Lookup(b.next) }

// Linked reports whether the widget has a parent.
func (b *Base) Linked() bool { return b.parent != NoID }

// Depth returns the number of ancestors.
func (b *Base) Depth() int {
	depth := 0
	for p := b.tree.node(b.parent); p != nil; p = b.tree.node(p.parent) {
		depth++
	}
	return depth
}

// Invalidate asks the window to redraw the widget.
func (b *Base) Invalidate() {
	b.tree.Window().Invalidate(b.Self())
}

// RefreshWorld recomputes the world transform and visible rectangle of the
// widget and all of its descendants.
func (b *Base) RefreshWorld() {
	origin := geometry.Offset{X: b.pos.X + b.margin.Left, Y: b.pos.Y + b.margin.Top}
	local := geometry.RectFromLTWH(0, 0, b.size.Width, b.size.Height)
	if p := b.tree.node(b.parent); p != nil {
		b.world = geometry.Mul(p.world, geometry.Mul(geometry.Scaling(p.zoomX, p.zoomY), geometry.Translation(origin.X, origin.Y)))
		b.visible = geometry.TransformRect(b.world, local).Intersect(p.visible)
	} else {
		b.world = geometry.Translation(origin.X, origin.Y)
		b.visible = geometry.TransformRect(b.world, local)
	}
	if v, ok := b.Self().(ChildVisitor); ok {
		v.VisitChildren(func(child Widget) {
			child.Node().RefreshWorld()
		})
	}
}

// DoEvent handles nothing.
func (b *Base) DoEvent(Event) bool { return false }

// Render draws the widget's own three passes.
func (b *Base) Render() {
	r := b.tree.Renderer()
	self := b.Self()
	r.RenderBackground(self)
	r.RenderMain(self)
	r.RenderForeground(self)
}

// Update refreshes the layout if it is dirty.
func (b *Base) Update() {
	if b.layoutChanged {
		b.Self().RefreshLayout()
		b.layoutChanged = false
	}
}

func (b *Base) Recreate() error                  { return nil }
func (b *Base) FindChild(geometry.Offset) Widget { return nil }
func (b *Base) RefreshLayout()                   {}
func (b *Base) Cleanup()                         {}

// Placeholder is the sentinel a single-child container holds when it has
// no real child.
type Placeholder struct {
	Base
}
