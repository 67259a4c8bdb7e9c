package core

import "iter"

// Renderer draws widgets. Containers render in three passes: background,
// main (children first, then the container's own main content) and
// foreground.
type Renderer interface {
	RenderBackground(w Widget)
	RenderMain(w Widget)
	RenderForeground(w Widget)
	// RenderChildren draws children in the order the sequence yields them.
	RenderChildren(children iter.Seq[Widget])
}

// Window receives redraw requests. Invalidate must not block.
type Window interface {
	Invalidate(w Widget)
}

// ChainRenderer is the default Renderer. It draws nothing itself and renders
// children by calling their Render method in order.
type ChainRenderer struct{}

func (ChainRenderer) RenderBackground(Widget) {}
func (ChainRenderer) RenderMain(Widget)       {}
func (ChainRenderer) RenderForeground(Widget) {}

func (ChainRenderer) RenderChildren(children iter.Seq[Widget]) {
	for child := range children {
		child.Render()
	}
}

type nopWindow struct{}

func (nopWindow) Invalidate(Widget) {}
