package widgets_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-longui/longui/pkg/core"
	"github.com/go-longui/longui/pkg/errors"
	"github.com/go-longui/longui/pkg/geometry"
	longuitest "github.com/go-longui/longui/pkg/testing"
	"github.com/go-longui/longui/pkg/widgets"
)

func newSingle(t *testing.T) (*widgets.Single, *longuitest.DiagnosticRecorder) {
	t.Helper()
	rec := &longuitest.DiagnosticRecorder{}
	tree := core.NewTree(core.TreeConfig{Diagnostics: rec})
	s := widgets.NewSingle(tree)
	s.SetName("frame")
	return s, rec
}

func TestSingle_EmptyHoldsPlaceholder(t *testing.T) {
	s, _ := newSingle(t)

	assert.Same(t, s.Tree().Placeholder(), s.Child())
	var visited int
	s.VisitChildren(func(core.Widget) { visited++ })
	assert.Zero(t, visited, "the placeholder is not a child")

	s.SetViewSize(geometry.Size{Width: 10, Height: 10})
	s.Update()
	assert.Equal(t, geometry.Size{}, s.ContentSize())
}

// setDebugMode sets core.DebugMode until the test ends.
func setDebugMode(t *testing.T, debug bool) {
	t.Helper()
	prev := core.DebugMode
	core.SetDebugMode(debug)
	t.Cleanup(func() { core.SetDebugMode(prev) })
}

func TestSingle_ReplaceReleasesOldChild(t *testing.T) {
	tests := []struct {
		name     string
		debug    bool
		warnings int
	}{
		{"debug", true, 1},
		{"release", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setDebugMode(t, tt.debug)
			s, rec := newSingle(t)
			first := widgets.NewControl(s.Tree(), "first")
			second := widgets.NewControl(s.Tree(), "second")

			require.NoError(t, s.PushBack(first))
			require.NoError(t, s.PushBack(second))

			assert.True(t, first.Released())
			assert.Same(t, core.Widget(second), s.Child())
			assert.Equal(t, s.ID(), second.Parent().Node().ID())
			assert.Equal(t, 3, s.Tree().Len())
			assert.Equal(t, tt.warnings, rec.Count(errors.LevelWarning))
		})
	}
}

func TestSingle_RemoveJust(t *testing.T) {
	s, rec := newSingle(t)
	child := widgets.NewControl(s.Tree(), "child")
	stranger := widgets.NewControl(s.Tree(), "stranger")
	require.NoError(t, s.PushBack(child))

	err := s.RemoveJust(stranger)
	assert.ErrorIs(t, err, errors.ErrNotChild)
	assert.True(t, rec.Has(errors.LevelError, errors.KindPrecondition))
	assert.Same(t, core.Widget(child), s.Child())

	before := s.Tree().Len()
	require.NoError(t, s.RemoveJust(child))
	assert.Same(t, s.Tree().Placeholder(), s.Child())
	assert.True(t, child.Released(), "removal releases the held child")
	assert.False(t, child.Linked())
	assert.Equal(t, before-1, s.Tree().Len())
	assert.Nil(t, s.Tree().Lookup(child.ID()))

	assert.ErrorIs(t, s.RemoveJust(child), errors.ErrNotChild)
}

func TestSingle_RemoveJustKeepsMarginal(t *testing.T) {
	s, _ := newSingle(t)
	bar := widgets.NewControl(s.Tree(), "bar")
	bar.AddFlags(core.FlagMarginal)
	bar.SetSide(core.SideLeft)
	require.NoError(t, s.PushBack(bar))

	require.NoError(t, s.RemoveJust(bar))
	assert.False(t, bar.Released(), "marginal controls are only unlinked")
	assert.Nil(t, s.Marginal(core.SideLeft))
	require.NoError(t, s.Tree().Release(bar))
}

func TestSingle_StretchesChild(t *testing.T) {
	s, _ := newSingle(t)
	s.SetViewSize(geometry.Size{Width: 300, Height: 200})
	s.SetZoom(2, 1)
	child := widgets.NewControl(s.Tree(), "child")
	child.SetMargin(geometry.Insets{Left: 10, Right: 10, Top: 5, Bottom: 5})
	require.NoError(t, s.PushBack(child))

	s.Update()

	assert.Equal(t, geometry.Size{Width: 130, Height: 190}, child.Size())
	assert.Equal(t, geometry.Size{Width: 300, Height: 200}, s.ContentSize())
}

func TestSingle_FloatingChildKeepsGeometry(t *testing.T) {
	s, _ := newSingle(t)
	s.SetViewSize(geometry.Size{Width: 300, Height: 200})
	child := widgets.NewControl(s.Tree(), "child")
	child.AddFlags(core.FlagFloating)
	child.SetViewSize(geometry.Size{Width: 40, Height: 30})
	child.SetMargin(geometry.Insets{Left: 5, Top: 5, Right: 5, Bottom: 5})
	require.NoError(t, s.PushBack(child))

	s.Update()

	assert.Equal(t, geometry.Size{Width: 40, Height: 30}, child.Size())
	assert.Equal(t, geometry.Size{Width: 40, Height: 30}, s.ContentSize(), "margins stay out of the content size")
}

func TestSingle_MarginalAndChildRendering(t *testing.T) {
	tester := longuitest.NewWidgetTesterWithT(t)
	s := widgets.NewSingle(tester.Tree())
	s.SetName("frame")
	bar := widgets.NewControl(tester.Tree(), "bar")
	bar.AddFlags(core.FlagMarginal)
	bar.SetSide(core.SideTop)
	require.NoError(t, s.PushBack(bar))

	require.NoError(t, tester.PumpWidget(s))
	assert.Equal(t, []longuitest.DisplayOp{
		{Op: "background", Widget: "frame"},
		{Op: "background", Widget: "bar"},
		{Op: "main", Widget: "bar"},
		{Op: "foreground", Widget: "bar"},
		{Op: "main", Widget: "frame"},
		{Op: "foreground", Widget: "frame"},
	}, tester.Renderer().Ops(), "the placeholder is never drawn")

	body := widgets.NewControl(tester.Tree(), "body")
	require.NoError(t, s.PushBack(body))
	require.NoError(t, tester.Pump())
	ops := tester.Renderer().Ops()
	require.Len(t, ops, 9)
	assert.Equal(t, longuitest.DisplayOp{Op: "background", Widget: "body"}, ops[1], "children draw before marginals")
	assert.Same(t, core.Widget(bar), s.Marginal(core.SideTop))
}

func TestSingle_CleanupReleasesEverything(t *testing.T) {
	s, _ := newSingle(t)
	tree := s.Tree()
	child := widgets.NewControl(tree, "child")
	bar := widgets.NewControl(tree, "bar")
	bar.AddFlags(core.FlagMarginal)
	require.NoError(t, s.PushBack(child))
	require.NoError(t, s.PushBack(bar))

	require.NoError(t, tree.Release(s))

	assert.True(t, child.Released())
	assert.True(t, bar.Released())
	assert.Equal(t, 1, tree.Len())
}
