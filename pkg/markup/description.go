package markup

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/go-longui/longui/pkg/core"
	"github.com/go-longui/longui/pkg/errors"
	"github.com/go-longui/longui/pkg/geometry"
)

// Description is the decoded form of one node.
type Description struct {
	Type     string      `yaml:"type"`
	Name     string      `yaml:"name,omitempty"`
	Weight   *float32    `yaml:"weight,omitempty"`
	Width    *float32    `yaml:"width,omitempty"`
	Height   *float32    `yaml:"height,omitempty"`
	Margin   []float32   `yaml:"margin,omitempty"`
	Zoom     []float32   `yaml:"zoom,omitempty"`
	Flags    []string    `yaml:"flags,omitempty"`
	Side     string      `yaml:"side,omitempty"`
	Children []yaml.Node `yaml:"children,omitempty"`
}

// Parse reads a YAML document and returns its root mapping node.
func Parse(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, parseError(err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, parseError(ErrEmptyDocument)
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, parseError(fmt.Errorf("%w at line %d", ErrNotMapping, root.Line))
	}
	return root, nil
}

// Decode decodes node into a Description.
func Decode(node *yaml.Node) (*Description, error) {
	if node == nil {
		return nil, parseError(ErrEmptyDocument)
	}
	if node.Kind != yaml.MappingNode {
		return nil, parseError(fmt.Errorf("%w at line %d", ErrNotMapping, node.Line))
	}
	var d Description
	if err := node.Decode(&d); err != nil {
		return nil, parseError(err)
	}
	return &d, nil
}

// Apply copies the description's attributes onto b. A width or height
// marks the corresponding dimension fixed.
func (d *Description) Apply(b *core.Base) error {
	if d.Name != "" {
		b.SetName(d.Name)
	}
	for _, name := range d.Flags {
		f, err := core.ParseFlag(name)
		if err != nil {
			return parseError(err)
		}
		b.AddFlags(f)
	}
	if d.Side != "" {
		s, err := core.ParseSide(d.Side)
		if err != nil {
			return parseError(err)
		}
		b.SetSide(s)
	}
	if d.Weight != nil {
		b.SetWeight(*d.Weight)
	}
	switch len(d.Margin) {
	case 0:
	case 1:
		m := d.Margin[0]
		b.SetMargin(geometry.Insets{Left: m, Top: m, Right: m, Bottom: m})
	case 4:
		b.SetMargin(geometry.Insets{Left: d.Margin[0], Top: d.Margin[1], Right: d.Margin[2], Bottom: d.Margin[3]})
	default:
		return parseError(fmt.Errorf("margin needs 1 or 4 values, got %d", len(d.Margin)))
	}
	switch len(d.Zoom) {
	case 0:
	case 2:
		if d.Zoom[0] <= 0 || d.Zoom[1] <= 0 {
			return parseError(fmt.Errorf("zoom must be positive, got %v", d.Zoom))
		}
		b.SetZoom(d.Zoom[0], d.Zoom[1])
	default:
		return parseError(fmt.Errorf("zoom needs 2 values, got %d", len(d.Zoom)))
	}
	if d.Width != nil {
		b.SetWidth(*d.Width)
		b.AddFlags(core.FlagWidthFixed)
	}
	if d.Height != nil {
		b.SetHeight(*d.Height)
		b.AddFlags(core.FlagHeightFixed)
	}
	return nil
}

func parseError(err error) error {
	return &errors.WidgetError{Op: "markup.Decode", Kind: errors.KindParsing, Err: err}
}
