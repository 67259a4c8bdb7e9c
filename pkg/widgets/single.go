package widgets

import (
	"iter"

	"github.com/go-longui/longui/pkg/core"
	"github.com/go-longui/longui/pkg/errors"
	"github.com/go-longui/longui/pkg/geometry"
)

// Single is a container that holds one child and fills its viewport with
// it. Without a child it holds the tree's placeholder, which is never
// laid out, drawn or hit.
type Single struct {
	core.ContainerBase
	child core.ID
}

// NewSingle creates a single-child container owned by t.
func NewSingle(t *core.Tree) *Single {
	s := &Single{}
	adopt(t, s)
	return s
}

// Child returns the held child, or the placeholder when there is none.
func (s *Single) Child() core.Widget {
	if w := s.Tree().Lookup(s.child); w != nil {
		return w
	}
	if p := s.Tree().Placeholder(); p != nil {
		return p
	}
	return nil
}

func (s *Single) children() iter.Seq[core.Widget] {
	return func(yield func(core.Widget) bool) {
		if w := s.Tree().Lookup(s.child); w != nil {
			yield(w)
		}
	}
}

// PushBack installs child, releasing the child it replaces. Marginal
// controls go to their edge slot instead.
func (s *Single) PushBack(child core.Widget) error {
	if child != nil && child.Node().HasFlag(core.FlagMarginal) {
		return s.ContainerBase.PushBack(child)
	}
	if err := s.Accept(child); err != nil {
		return err
	}
	if old := s.Tree().Lookup(s.child); old != nil {
		if core.DebugMode {
			errors.Report(s.Tree().Diagnostics(), &errors.Diagnostic{
				Level:   errors.LevelWarning,
				Op:      "Single.PushBack",
				Kind:    errors.KindPrecondition,
				Widget:  s.DebugName(),
				Message: "replacing child " + old.Node().DebugName(),
			})
		}
		s.child = core.NoID
		s.Detach(old)
		s.Tree().Release(old)
	}
	s.child = child.Node().ID()
	s.AfterInsert(child)
	return nil
}

// RemoveJust unlinks and releases the held child and puts the placeholder
// back. Marginal controls are only unlinked.
func (s *Single) RemoveJust(child core.Widget) error {
	if child != nil && child.Node().HasFlag(core.FlagMarginal) && child.Node().ID() != s.child {
		return s.ContainerBase.RemoveJust(child)
	}
	if child == nil || s.child == core.NoID || child.Node().ID() != s.child {
		return errors.Fail(s.Tree().Diagnostics(), "Single.RemoveJust", errors.KindPrecondition,
			s.DebugName(), errors.ErrNotChild)
	}
	s.child = core.NoID
	if err := s.Detach(child); err != nil {
		return err
	}
	return s.Tree().Release(child)
}

// RefreshLayout stretches the child over the viewport. A floating child
// keeps its geometry and the content size follows its view size instead.
func (s *Single) RefreshLayout() {
	child := s.Tree().Lookup(s.child)
	if child == nil {
		return
	}
	cb := child.Node()
	zx, zy := s.Zoom()
	if cb.HasFlag(core.FlagFloating) {
		s.SetContentSize(geometry.Size{Width: cb.Width() * zx, Height: cb.Height() * zy})
		return
	}
	if !cb.HasFlag(core.FlagWidthFixed) {
		cb.SetWidth(s.ViewWidthZoomed())
	}
	if !cb.HasFlag(core.FlagHeightFixed) {
		cb.SetHeight(s.ViewHeightZoomed())
	}
	cb.SetPosition(geometry.Offset{})
	cb.SetLayoutChanged()
	s.SetContentSize(geometry.Size{Width: cb.TakingUpWidth() * zx, Height: cb.TakingUpHeight() * zy})
}

func (s *Single) DoEvent(e core.Event) bool {
	return s.EventHelper(s.children(), e)
}

func (s *Single) Render() {
	s.RenderHelper(s.children())
}

func (s *Single) Update() {
	s.UpdateHelper(s.children())
}

func (s *Single) Recreate() error {
	return s.RecreateHelper(s.children())
}

// FindChild checks the marginal controls, then the held child.
func (s *Single) FindChild(pt geometry.Offset) core.Widget {
	if w := s.ContainerBase.FindChild(pt); w != nil {
		return w
	}
	for child := range s.children() {
		if child.Node().VisibleRect().Contains(pt) {
			return child
		}
	}
	return nil
}

func (s *Single) VisitChildren(visitor func(core.Widget)) {
	s.ContainerBase.VisitChildren(visitor)
	for child := range s.children() {
		visitor(child)
	}
}

// Cleanup releases the held child and the marginal controls.
func (s *Single) Cleanup() {
	if old := s.Tree().Lookup(s.child); old != nil {
		s.child = core.NoID
		s.Detach(old)
		s.Tree().Release(old)
	}
	s.ContainerBase.Cleanup()
}
