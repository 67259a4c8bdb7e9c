package widgets

import (
	"github.com/go-longui/longui/pkg/core"
	"github.com/go-longui/longui/pkg/geometry"
)

// HorizontalLayout places its children left to right.
type HorizontalLayout struct {
	core.Container
}

// NewHorizontalLayout creates a horizontal layout owned by t.
func NewHorizontalLayout(t *core.Tree) *HorizontalLayout {
	h := &HorizontalLayout{}
	adopt(t, h)
	return h
}

// RefreshLayout mirrors VerticalLayout.RefreshLayout along the x axis.
// Unlike the vertical engine it only marks its layout handled and leaves
// the world transforms to the next RefreshWorld.
func (h *HorizontalLayout) RefreshLayout() {
	var baseWidth, baseHeight, basicWeight float32
	for child := range h.All() {
		cb := child.Node()
		if cb.HasFlag(core.FlagFloating) {
			continue
		}
		if cb.HasFlag(core.FlagHeightFixed) {
			baseHeight = max(baseHeight, cb.TakingUpHeight())
		}
		if cb.HasFlag(core.FlagWidthFixed) {
			baseWidth += cb.TakingUpWidth()
		} else {
			basicWeight += cb.Weight()
		}
	}

	baseHeight = max(baseHeight, h.ViewHeightZoomed())
	var unit float32
	if basicWeight > 0 {
		unit = max(h.ViewWidthZoomed()-baseWidth, 0) / basicWeight
	}

	var x float32
	for child := range h.All() {
		cb := child.Node()
		if cb.HasFlag(core.FlagFloating) {
			continue
		}
		if !cb.HasFlag(core.FlagHeightFixed) {
			cb.SetHeight(baseHeight)
		}
		if !cb.HasFlag(core.FlagWidthFixed) {
			cb.SetWidth(max(unit*cb.Weight(), core.AutoControlMinSize))
		}
		cb.SetPosition(geometry.Offset{X: x, Y: 0})
		cb.SetLayoutChanged()
		x += cb.TakingUpWidth()
	}

	h.SetContentSize(geometry.Size{Width: x, Height: baseHeight})
	h.LayoutChangeHandled()
}
