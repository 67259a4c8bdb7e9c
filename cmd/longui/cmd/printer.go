package cmd

import (
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/go-longui/longui/pkg/core"
)

// treePrinter writes a widget tree with branch glyphs, one widget per line.
type treePrinter struct {
	out    io.Writer
	header lipgloss.Style
	kind   lipgloss.Style
	name   lipgloss.Style
	geom   lipgloss.Style
	flags  lipgloss.Style
	branch lipgloss.Style
}

func newTreePrinter(w io.Writer) *treePrinter {
	r := lipgloss.NewRenderer(w)
	return &treePrinter{
		out:    w,
		header: r.NewStyle().Bold(true).Underline(true),
		kind:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		name:   r.NewStyle().Foreground(lipgloss.Color("10")),
		geom:   r.NewStyle().Foreground(lipgloss.Color("245")),
		flags:  r.NewStyle().Foreground(lipgloss.Color("11")),
		branch: r.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// Header writes a title line.
func (p *treePrinter) Header(format string, args ...any) {
	fmt.Fprintln(p.out, p.header.Render(fmt.Sprintf(format, args...)))
}

// Print writes root and its descendants.
func (p *treePrinter) Print(root core.Widget) {
	p.printNode(root, "", "")
}

func (p *treePrinter) printNode(w core.Widget, lead, childLead string) {
	var sb strings.Builder
	if lead != "" {
		sb.WriteString(p.branch.Render(lead))
	}
	sb.WriteString(p.label(w))
	fmt.Fprintln(p.out, sb.String())

	var children []core.Widget
	if v, ok := w.(core.ChildVisitor); ok {
		v.VisitChildren(func(child core.Widget) {
			children = append(children, child)
		})
	}
	for i, child := range children {
		if i == len(children)-1 {
			p.printNode(child, childLead+"└── ", childLead+"    ")
		} else {
			p.printNode(child, childLead+"├── ", childLead+"│   ")
		}
	}
}

func (p *treePrinter) label(w core.Widget) string {
	b := w.Node()
	parts := []string{p.kind.Render(typeName(w))}
	if b.Name() != "" {
		parts = append(parts, p.name.Render(strconv.Quote(b.Name())))
	}

	pos, size := b.Position(), b.Size()
	geom := fmt.Sprintf("%g,%g %gx%g", pos.X, pos.Y, size.Width, size.Height)
	if c := b.ContentSize(); c.Width != 0 || c.Height != 0 {
		geom += fmt.Sprintf(" content %gx%g", c.Width, c.Height)
	}
	parts = append(parts, p.geom.Render(geom))

	if f := b.Flags(); f != 0 {
		text := f.String()
		if b.HasFlag(core.FlagMarginal) {
			text += " " + b.Side().String()
		}
		parts = append(parts, p.flags.Render("["+text+"]"))
	}
	return strings.Join(parts, " ")
}

func typeName(w core.Widget) string {
	t := reflect.TypeOf(w)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
