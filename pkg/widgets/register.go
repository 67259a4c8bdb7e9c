package widgets

import (
	"gopkg.in/yaml.v3"

	"github.com/go-longui/longui/pkg/core"
	"github.com/go-longui/longui/pkg/markup"
)

func CreateVerticalLayout(t *core.Tree, phase markup.Phase, node *yaml.Node) core.Widget {
	return markup.Create(t, phase, node, "VerticalLayout", func() core.Widget { return &VerticalLayout{} })
}

func CreateHorizontalLayout(t *core.Tree, phase markup.Phase, node *yaml.Node) core.Widget {
	return markup.Create(t, phase, node, "HorizontalLayout", func() core.Widget { return &HorizontalLayout{} })
}

func CreateSingle(t *core.Tree, phase markup.Phase, node *yaml.Node) core.Widget {
	return markup.Create(t, phase, node, "Single", func() core.Widget { return &Single{} })
}

func CreateControl(t *core.Tree, phase markup.Phase, node *yaml.Node) core.Widget {
	return markup.Create(t, phase, node, "Control", func() core.Widget { return &Control{} })
}

// Register adds the factories of this package to r.
func Register(r *markup.Registry) {
	r.Register("vertical", CreateVerticalLayout)
	r.Register("horizontal", CreateHorizontalLayout)
	r.Register("single", CreateSingle)
	r.Register("control", CreateControl)
}

// NewRegistry returns a registry with every type of this package.
func NewRegistry() *markup.Registry {
	r := markup.NewRegistry()
	Register(r)
	return r
}
