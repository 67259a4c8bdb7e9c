package markup

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/go-longui/longui/pkg/core"
	"github.com/go-longui/longui/pkg/errors"
)

// Builder creates widget trees from descriptions.
type Builder struct {
	Tree     *core.Tree
	Registry *Registry
}

// BuildBytes parses data and builds the tree it describes.
func (b *Builder) BuildBytes(data []byte) (core.Widget, error) {
	root, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return b.Build(root)
}

// Build creates the widget described by node and all of its children, then
// sends EventTreeBuildingFinished to the root. On failure every widget
// created so far is released.
func (b *Builder) Build(node *yaml.Node) (core.Widget, error) {
	w, err := b.build(node)
	if err != nil {
		return nil, err
	}
	w.DoEvent(core.Event{Kind: core.EventTreeBuildingFinished, Sender: w})
	return w, nil
}

func (b *Builder) build(node *yaml.Node) (core.Widget, error) {
	const op = "Builder.Build"
	d, err := Decode(node)
	if err != nil {
		return nil, err
	}
	fn, ok := b.Registry.Lookup(d.Type)
	if !ok {
		return nil, errors.Fail(b.Tree.Diagnostics(), op, errors.KindCreate, d.Name,
			fmt.Errorf("%w %q at line %d", errors.ErrUnknownType, d.Type, node.Line))
	}
	w := fn(b.Tree, PhaseCreateControl, node)
	if w == nil {
		return nil, &errors.WidgetError{Op: op, Kind: errors.KindCreate, Widget: d.Name,
			Err: fmt.Errorf("factory %q returned no widget", d.Type)}
	}
	if len(d.Children) == 0 {
		return w, nil
	}

	parent, ok := w.(core.Parent)
	if !ok {
		b.Tree.Release(w)
		return nil, errors.Fail(b.Tree.Diagnostics(), op, errors.KindCreate, d.Name,
			fmt.Errorf("%w: %s", ErrNotContainer, d.Type))
	}
	for i := range d.Children {
		child, err := b.build(&d.Children[i])
		if err != nil {
			b.Tree.Release(w)
			return nil, err
		}
		if err := parent.PushBack(child); err != nil {
			b.Tree.Release(child)
			b.Tree.Release(w)
			return nil, err
		}
	}
	return w, nil
}
