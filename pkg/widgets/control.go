package widgets

import "github.com/go-longui/longui/pkg/core"

// Control is a plain leaf widget. It draws through the tree's renderer
// and has no children.
type Control struct {
	core.Base
}

// NewControl creates a named control owned by t.
func NewControl(t *core.Tree, name string) *Control {
	c := &Control{}
	c.SetName(name)
	adopt(t, c)
	return c
}

// adopt hands a new widget to t. With a nil tree the widget stays unowned
// until a container accepts it into its own tree.
func adopt(t *core.Tree, w core.Widget) {
	if t == nil {
		return
	}
	if _, err := t.Adopt(w); err != nil {
		// w is new, so only a corrupted tree can refuse it.
		panic(err)
	}
}
