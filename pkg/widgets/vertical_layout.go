package widgets

import (
	"github.com/go-longui/longui/pkg/core"
	"github.com/go-longui/longui/pkg/geometry"
)

// VerticalLayout stacks its children top to bottom.
type VerticalLayout struct {
	core.Container
}

// NewVerticalLayout creates a vertical layout owned by t.
func NewVerticalLayout(t *core.Tree) *VerticalLayout {
	v := &VerticalLayout{}
	adopt(t, v)
	return v
}

// RefreshLayout sizes every non-floating child. Children without a fixed
// width take the widest fixed width or the viewport width, whichever is
// larger. Children without a fixed height share the height left over by
// the fixed ones in proportion to their weight.
func (v *VerticalLayout) RefreshLayout() {
	var baseWidth, baseHeight, basicWeight float32
	for child := range v.All() {
		cb := child.Node()
		if cb.HasFlag(core.FlagFloating) {
			continue
		}
		if cb.HasFlag(core.FlagWidthFixed) {
			baseWidth = max(baseWidth, cb.TakingUpWidth())
		}
		if cb.HasFlag(core.FlagHeightFixed) {
			baseHeight += cb.TakingUpHeight()
		} else {
			basicWeight += cb.Weight()
		}
	}

	baseWidth = max(baseWidth, v.ViewWidthZoomed())
	var unit float32
	if basicWeight > 0 {
		unit = max(v.ViewHeightZoomed()-baseHeight, 0) / basicWeight
	}

	var y float32
	for child := range v.All() {
		cb := child.Node()
		if cb.HasFlag(core.FlagFloating) {
			continue
		}
		if !cb.HasFlag(core.FlagWidthFixed) {
			cb.SetWidth(baseWidth)
		}
		if !cb.HasFlag(core.FlagHeightFixed) {
			cb.SetHeight(max(unit*cb.Weight(), core.AutoControlMinSize))
		}
		cb.SetPosition(geometry.Offset{X: 0, Y: y})
		cb.SetLayoutChanged()
		y += cb.TakingUpHeight()
	}

	zx, zy := v.Zoom()
	v.SetContentSize(geometry.Size{Width: baseWidth * zx, Height: y * zy})
	v.RefreshWorld()
}
