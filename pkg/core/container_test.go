package core

import (
	"fmt"
	"iter"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-longui/longui/pkg/errors"
	"github.com/go-longui/longui/pkg/geometry"
)

func newTestList(t *testing.T, n int) (*Tree, *diagRecorder, *list, []*leaf) {
	t.Helper()
	tree, rec := newTestTree()
	c := newList("list")
	_, err := tree.Adopt(c)
	require.NoError(t, err)
	return tree, rec, c, fill(c, n)
}

func assertListOrder(t *testing.T, c *list, want ...string) {
	t.Helper()
	require.NoError(t, c.CheckIntegrity())
	assert.Equal(t, want, names(c.All()))
	backward := names(c.Backward())
	slices.Reverse(backward)
	assert.Equal(t, want, backward)
	assert.Equal(t, len(want), c.Count())
}

func TestPushBackLinksChildren(t *testing.T) {
	_, _, c, leaves := newTestList(t, 3)
	assertListOrder(t, c, "c0", "c1", "c2")
	assert.Equal(t, Widget(leaves[0]), c.Head())
	assert.Equal(t, Widget(leaves[2]), c.Tail())
	assert.Nil(t, leaves[0].Prev())
	assert.Equal(t, Widget(leaves[1]), leaves[0].Next())
	assert.Equal(t, Widget(c), leaves[1].Parent())
	assert.Equal(t, 1, leaves[1].Depth())
	assert.True(t, c.IsLayoutChanged())
}

func TestEmptyListIntegrity(t *testing.T) {
	_, _, c, _ := newTestList(t, 0)
	assertListOrder(t, c)
	assert.Nil(t, c.Head())
	assert.Nil(t, c.Tail())
	assert.Nil(t, c.GetAt(0))
}

func TestInsertBefore(t *testing.T) {
	_, _, c, leaves := newTestList(t, 3)

	require.NoError(t, c.Insert(leaves[0], newLeaf("first")))
	require.NoError(t, c.Insert(leaves[2], newLeaf("mid")))
	require.NoError(t, c.InsertOnly(nil, newLeaf("last")))
	assertListOrder(t, c, "first", "c0", "c1", "mid", "c2", "last")
}

func TestInsertRejectsLinkedAndForeign(t *testing.T) {
	tree, rec, c, leaves := newTestList(t, 2)

	err := c.PushBack(leaves[0])
	assert.ErrorIs(t, err, errors.ErrAlreadyLinked)

	other := newList("other")
	_, err = tree.Adopt(other)
	require.NoError(t, err)
	err = other.PushBack(leaves[1])
	assert.ErrorIs(t, err, errors.ErrAlreadyLinked)

	foreign, _ := newTestTree()
	stranger := newLeaf("stranger")
	_, err = foreign.Adopt(stranger)
	require.NoError(t, err)
	err = c.PushBack(stranger)
	assert.ErrorIs(t, err, errors.ErrForeignTree)

	err = c.Insert(newLeaf("notchild"), newLeaf("x"))
	assert.ErrorIs(t, err, errors.ErrNotChild)

	err = c.PushBack(nil)
	assert.ErrorIs(t, err, errors.ErrNilWidget)

	err = c.PushBack(tree.Placeholder())
	assert.ErrorIs(t, err, errors.ErrAlreadyLinked)

	assertListOrder(t, c, "c0", "c1")
	assert.Equal(t, 6, rec.count(errors.LevelError))
}

func TestInsertRejectsCycles(t *testing.T) {
	tree, _, outer, _ := newTestList(t, 0)
	inner := newList("inner")
	_, err := tree.Adopt(inner)
	require.NoError(t, err)
	require.NoError(t, outer.PushBack(inner))

	assert.ErrorIs(t, inner.PushBack(outer), errors.ErrCycle)
	assert.ErrorIs(t, outer.PushBack(outer), errors.ErrCycle)
	assert.Equal(t, 0, inner.Count())
}

func TestPushBackAdoptsUnownedWidgets(t *testing.T) {
	tree, _, c, _ := newTestList(t, 0)
	l := newLeaf("fresh")
	require.NoError(t, c.PushBack(l))
	assert.Equal(t, tree, l.Tree())
	assert.Equal(t, Widget(l), tree.Lookup(l.ID()))
}

func TestRemoveJust(t *testing.T) {
	tree, _, c, leaves := newTestList(t, 4)
	c.LayoutChangeHandled()

	require.NoError(t, c.RemoveJust(leaves[0]))
	assertListOrder(t, c, "c1", "c2", "c3")
	require.NoError(t, c.RemoveJust(leaves[3]))
	assertListOrder(t, c, "c1", "c2")
	require.NoError(t, c.RemoveJust(leaves[1]))
	assertListOrder(t, c, "c2")
	require.NoError(t, c.RemoveJust(leaves[2]))
	assertListOrder(t, c)

	assert.True(t, c.IsLayoutChanged())
	for _, l := range leaves {
		assert.Nil(t, l.Parent())
		assert.Nil(t, l.Prev())
		assert.Nil(t, l.Next())
		assert.False(t, l.Released(), "RemoveJust must not release")
		assert.Equal(t, Widget(l), tree.Lookup(l.ID()))
	}

	// Removed children can be inserted again.
	require.NoError(t, c.PushBack(leaves[1]))
	assertListOrder(t, c, "c1")
}

func TestRemoveJustNonChildLeavesListUntouched(t *testing.T) {
	inBothModes(t, func(t *testing.T) {
		tree, rec, c, _ := newTestList(t, 3)
		other := newList("other")
		_, err := tree.Adopt(other)
		require.NoError(t, err)
		stranger := fill(other, 1)[0]

		err = c.RemoveJust(stranger)
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrNotChild)
		var werr *errors.WidgetError
		require.ErrorAs(t, err, &werr)
		assert.Equal(t, "Container.RemoveJust", werr.Op)

		assertListOrder(t, c, "c0", "c1", "c2")
		assert.Equal(t, 1, other.Count())
		assert.Equal(t, 1, rec.count(errors.LevelError))

		assert.ErrorIs(t, c.RemoveJust(newLeaf("loose")), errors.ErrNotChild)
		assert.ErrorIs(t, c.RemoveJust(nil), errors.ErrNilWidget)
		assert.Equal(t, -1, c.IndexOf(stranger))
	})
}

func TestDetachRefusesListChildren(t *testing.T) {
	_, _, c, leaves := newTestList(t, 1)
	assert.ErrorIs(t, c.Detach(leaves[0]), errors.ErrAlreadyLinked)
	assertListOrder(t, c, "c0")
}

func TestIndexOf(t *testing.T) {
	_, rec, c, leaves := newTestList(t, 5)
	for i, l := range leaves {
		assert.Equal(t, i, c.IndexOf(l))
	}
	assert.Equal(t, -1, c.IndexOf(newLeaf("loose")))
	assert.Equal(t, -1, c.IndexOf(nil))
	assert.Equal(t, 2, rec.count(errors.LevelError))
}

func TestGetAtMatchesIteration(t *testing.T) {
	for _, n := range []int{1, 2, 3, 10, 21} {
		_, _, c, _ := newTestList(t, n)
		i := 0
		for w := range c.All() {
			assert.Equal(t, w, c.GetAt(i), "n=%d index=%d", n, i)
			i++
		}
		assert.Nil(t, c.GetAt(n))
		assert.Nil(t, c.GetAt(n+5))
		assert.Nil(t, c.GetAt(-1))
	}
}

func TestGetAtWarnsPastIndexEight(t *testing.T) {
	_, rec, c, leaves := newTestList(t, 12)
	assert.Equal(t, Widget(leaves[8]), c.GetAt(8))
	assert.False(t, rec.has(errors.LevelWarning, errors.KindPerformance))
	assert.Equal(t, Widget(leaves[9]), c.GetAt(9))
	assert.True(t, rec.has(errors.LevelWarning, errors.KindPerformance))
}

func TestSwapChildAllPairs(t *testing.T) {
	const n = 5
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			_, _, c, leaves := newTestList(t, n)
			want := []string{"c0", "c1", "c2", "c3", "c4"}
			want[i], want[j] = want[j], want[i]

			require.NoError(t, c.SwapChild(leaves[i], leaves[j]), "swap %d,%d", i, j)
			assertListOrder(t, c, want...)

			require.NoError(t, c.SwapChild(leaves[i], leaves[j]))
			assertListOrder(t, c, "c0", "c1", "c2", "c3", "c4")
			assert.Equal(t, Widget(leaves[0]), c.Head())
			assert.Equal(t, Widget(leaves[4]), c.Tail())
		}
	}
}

func TestSwapChildTwoElements(t *testing.T) {
	_, _, c, leaves := newTestList(t, 2)
	require.NoError(t, c.SwapChild(leaves[1], leaves[0]))
	assertListOrder(t, c, "c1", "c0")
	assert.Equal(t, Widget(leaves[1]), c.Head())
	assert.Equal(t, Widget(leaves[0]), c.Tail())
}

func TestSwapChildSameNodeWarns(t *testing.T) {
	_, rec, c, leaves := newTestList(t, 3)
	require.NoError(t, c.SwapChild(leaves[1], leaves[1]))
	assertListOrder(t, c, "c0", "c1", "c2")
	assert.Equal(t, 1, rec.count(errors.LevelWarning))
}

func TestSwapChildRejectsNonChild(t *testing.T) {
	_, _, c, leaves := newTestList(t, 3)
	err := c.SwapChild(leaves[0], newLeaf("loose"))
	assert.ErrorIs(t, err, errors.ErrNotChild)
	assertListOrder(t, c, "c0", "c1", "c2")
}

func TestSwapChildInvalidates(t *testing.T) {
	win := &countingWindow{}
	tree := NewTree(TreeConfig{Window: win, Diagnostics: &diagRecorder{}})
	c := newList("list")
	_, err := tree.Adopt(c)
	require.NoError(t, err)
	leaves := fill(c, 3)
	c.LayoutChangeHandled()
	win.n = 0

	require.NoError(t, c.SwapChild(leaves[0], leaves[2]))
	assert.True(t, c.IsLayoutChanged())
	assert.Equal(t, 1, win.n)
}

func TestRandomOperationsKeepIntegrity(t *testing.T) {
	inBothModes(t, runRandomOperations)
}

func runRandomOperations(t *testing.T) {
	tree, _, c, _ := newTestList(t, 0)
	rng := rand.New(rand.NewPCG(7, 11))
	var model []*leaf
	next := 0

	for step := 0; step < 500; step++ {
		switch op := rng.IntN(4); {
		case op == 0 || len(model) < 2:
			l := newLeaf(fmt.Sprintf("n%d", next))
			next++
			require.NoError(t, c.PushBack(l))
			model = append(model, l)
		case op == 1:
			at := rng.IntN(len(model))
			l := newLeaf(fmt.Sprintf("n%d", next))
			next++
			require.NoError(t, c.Insert(model[at], l))
			model = slices.Insert(model, at, l)
		case op == 2:
			at := rng.IntN(len(model))
			require.NoError(t, c.RemoveJust(model[at]))
			require.NoError(t, tree.Release(model[at]))
			model = slices.Delete(model, at, at+1)
		default:
			i, j := rng.IntN(len(model)), rng.IntN(len(model))
			require.NoError(t, c.SwapChild(model[i], model[j]))
			model[i], model[j] = model[j], model[i]
		}

		want := make([]string, len(model))
		for i, l := range model {
			want[i] = l.Name()
		}
		assertListOrder(t, c, want...)
	}
}

func TestMarginalSlots(t *testing.T) {
	tree, rec, c, _ := newTestList(t, 1)

	bar := newLeaf("vbar")
	bar.AddFlags(FlagMarginal)
	bar.SetSide(SideRight)
	require.NoError(t, c.PushBack(bar))
	assert.Equal(t, 1, c.Count(), "marginal controls stay out of the list")
	assert.Equal(t, Widget(bar), c.Marginal(SideRight))
	assert.Equal(t, Widget(c), bar.Parent())

	replacement := newLeaf("vbar2")
	replacement.AddFlags(FlagMarginal)
	replacement.SetSide(SideRight)
	require.NoError(t, c.PushBack(replacement))
	assert.True(t, bar.Released())
	assert.Equal(t, 1, bar.cleanups)
	assert.Equal(t, 1, rec.count(errors.LevelWarning))
	assert.Equal(t, Widget(replacement), c.Marginal(SideRight))

	require.NoError(t, c.RemoveJust(replacement))
	assert.Nil(t, c.Marginal(SideRight))
	assert.Nil(t, replacement.Parent())
	assert.False(t, replacement.Released())
	assert.Nil(t, c.Marginal(Side(9)))

	plain := newLeaf("plain")
	_, err := tree.Adopt(plain)
	require.NoError(t, err)
	assert.ErrorIs(t, c.ContainerBase.PushBack(plain), errors.ErrNotMarginal)
}

func TestDoEventForwardsTreeBuildingFinished(t *testing.T) {
	_, _, c, leaves := newTestList(t, 3)
	bar := newLeaf("bar")
	bar.AddFlags(FlagMarginal)
	require.NoError(t, c.PushBack(bar))
	c.LayoutChangeHandled()

	assert.True(t, c.DoEvent(Event{Kind: EventTreeBuildingFinished, Sender: c}))
	for _, l := range leaves {
		assert.Equal(t, []EventKind{EventTreeBuildingFinished}, l.events)
	}
	assert.Equal(t, []EventKind{EventTreeBuildingFinished}, bar.events)
	assert.True(t, c.IsLayoutChanged())

	assert.False(t, c.DoEvent(Event{Kind: EventTreeBuildingFinished}))
	assert.False(t, c.DoEvent(Event{Kind: EventSetFocus, Sender: c}))
	assert.Len(t, leaves[0].events, 1)
}

func TestRenderOrder(t *testing.T) {
	r := &orderRenderer{}
	tree := NewTree(TreeConfig{Renderer: r, Diagnostics: &diagRecorder{}})
	c := newList("list")
	_, err := tree.Adopt(c)
	require.NoError(t, err)
	fill(c, 2)

	c.Render()
	assert.Equal(t, []string{
		"bg:list",
		"child:c0", "bg:c0", "main:c0", "fg:c0",
		"child:c1", "bg:c1", "main:c1", "fg:c1",
		"main:list",
		"fg:list",
	}, r.calls)
}

func TestUpdateRefreshesDirtyLayout(t *testing.T) {
	_, _, c, _ := newTestList(t, 2)
	c.Update()
	assert.Equal(t, 1, c.layouts)
	assert.False(t, c.IsLayoutChanged())
	c.Update()
	assert.Equal(t, 1, c.layouts)
}

func TestRecreateVisitsAllChildren(t *testing.T) {
	withDebugMode(t, true)
	_, rec, c, leaves := newTestList(t, 3)
	first := errors.New("first failure")
	second := errors.New("second failure")
	leaves[0].recreateErr = first
	leaves[1].recreateErr = second

	err := c.Recreate()
	assert.Equal(t, second, err, "last failure wins")
	for _, l := range leaves {
		assert.Equal(t, 1, l.recreates)
	}
	assert.Equal(t, 2, rec.count(errors.LevelError))

	leaves[0].recreateErr, leaves[1].recreateErr = nil, nil
	assert.NoError(t, c.Recreate())
}

func TestRecreateReleaseModeSkipsDiagnostics(t *testing.T) {
	withDebugMode(t, false)
	_, rec, c, leaves := newTestList(t, 2)
	failure := errors.New("device lost")
	leaves[0].recreateErr = failure

	assert.Equal(t, failure, c.Recreate())
	assert.Equal(t, 1, leaves[1].recreates, "the walk continues past failures")
	assert.Zero(t, rec.count(errors.LevelError))
}

func TestFindChild(t *testing.T) {
	_, rec, c, leaves := newTestList(t, 2)
	c.SetViewSize(geometry.Size{Width: 100, Height: 100})
	leaves[0].SetViewSize(geometry.Size{Width: 100, Height: 50})
	leaves[1].SetViewSize(geometry.Size{Width: 100, Height: 80})
	leaves[1].SetPosition(geometry.Offset{Y: 50})
	c.RefreshWorld()

	assert.Equal(t, Widget(leaves[0]), c.FindChild(geometry.Offset{X: 10, Y: 10}))
	assert.Equal(t, Widget(leaves[1]), c.FindChild(geometry.Offset{X: 10, Y: 50}))
	assert.Nil(t, c.FindChild(geometry.Offset{X: 10, Y: 100}), "clipped by the parent")
	assert.Nil(t, c.FindChild(geometry.Offset{X: 100, Y: 10}))
	assert.False(t, rec.has(errors.LevelWarning, errors.KindPerformance))
}

func TestFindChildWarnsOnLargeLists(t *testing.T) {
	_, rec, c, _ := newTestList(t, 101)
	assert.Nil(t, c.FindChild(geometry.Offset{X: 1, Y: 1}))
	assert.True(t, rec.has(errors.LevelWarning, errors.KindPerformance))
}

func TestRefreshWorldAppliesZoom(t *testing.T) {
	_, _, c, leaves := newTestList(t, 1)
	c.SetPosition(geometry.Offset{X: 10, Y: 20})
	c.SetViewSize(geometry.Size{Width: 200, Height: 200})
	c.SetZoom(2, 2)
	leaves[0].SetPosition(geometry.Offset{X: 5, Y: 5})
	leaves[0].SetViewSize(geometry.Size{Width: 10, Height: 10})
	c.RefreshWorld()

	got := leaves[0].VisibleRect()
	assert.InDelta(t, 20, got.Left, 1e-4)
	assert.InDelta(t, 30, got.Top, 1e-4)
	assert.InDelta(t, 40, got.Right, 1e-4)
	assert.InDelta(t, 50, got.Bottom, 1e-4)
}

func TestCleanupReleasesChildren(t *testing.T) {
	tree, _, c, leaves := newTestList(t, 3)
	bar := newLeaf("bar")
	bar.AddFlags(FlagMarginal)
	require.NoError(t, c.PushBack(bar))
	require.Equal(t, 6, tree.Len())

	require.NoError(t, tree.Release(c))
	for _, l := range append(leaves, bar) {
		assert.True(t, l.Released(), l.Name())
		assert.Equal(t, 1, l.cleanups)
	}
	assert.Equal(t, 1, tree.Len(), "only the placeholder is left")
}

type countingWindow struct{ n int }

func (w *countingWindow) Invalidate(Widget) { w.n++ }

type orderRenderer struct{ calls []string }

func (r *orderRenderer) RenderBackground(w Widget) {
	r.calls = append(r.calls, "bg:"+w.Node().Name())
}

func (r *orderRenderer) RenderMain(w Widget) {
	r.calls = append(r.calls, "main:"+w.Node().Name())
}

func (r *orderRenderer) RenderForeground(w Widget) {
	r.calls = append(r.calls, "fg:"+w.Node().Name())
}

func (r *orderRenderer) RenderChildren(children iter.Seq[Widget]) {
	for child := range children {
		r.calls = append(r.calls, "child:"+child.Node().Name())
		child.Render()
	}
}
