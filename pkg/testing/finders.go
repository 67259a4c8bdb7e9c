package testing

import (
	"fmt"
	"reflect"

	"github.com/go-longui/longui/pkg/core"
)

// Finder locates widgets in a tree.
type Finder interface {
	// Evaluate returns all matching widgets under root (depth-first pre-order).
	Evaluate(root core.Widget) []core.Widget
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	widgets []core.Widget
	finder  Finder
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() core.Widget {
	if len(r.widgets) == 0 {
		panic(fmt.Sprintf("Finder found no widgets: %s", r.description()))
	}
	return r.widgets[0]
}

// FirstOrNil returns the first match, or nil if none.
func (r FinderResult) FirstOrNil() core.Widget {
	if len(r.widgets) == 0 {
		return nil
	}
	return r.widgets[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) core.Widget {
	if index < 0 || index >= len(r.widgets) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.widgets), r.description()))
	}
	return r.widgets[index]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []core.Widget {
	return r.widgets
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.widgets)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.widgets) > 0
}

func (r FinderResult) description() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

type typeFinder struct {
	widgetType reflect.Type
}

func (f *typeFinder) Evaluate(root core.Widget) []core.Widget {
	return collectMatches(root, func(w core.Widget) bool {
		return reflect.TypeOf(w) == f.widgetType
	})
}

func (f *typeFinder) Description() string {
	return fmt.Sprintf("ByType(%s)", f.widgetType)
}

// ByType returns a finder that matches widgets of type T, for example
// ByType[*widgets.Control]().
func ByType[T core.Widget]() Finder {
	return &typeFinder{widgetType: reflect.TypeFor[T]()}
}

type nameFinder struct {
	name string
}

func (f *nameFinder) Evaluate(root core.Widget) []core.Widget {
	return collectMatches(root, func(w core.Widget) bool {
		return w.Node().Name() == f.name
	})
}

func (f *nameFinder) Description() string {
	return fmt.Sprintf("ByName(%q)", f.name)
}

// ByName returns a finder that matches widgets with the given name.
func ByName(name string) Finder {
	return &nameFinder{name: name}
}

type predicateFinder struct {
	fn   func(core.Widget) bool
	desc string
}

func (f *predicateFinder) Evaluate(root core.Widget) []core.Widget {
	return collectMatches(root, f.fn)
}

func (f *predicateFinder) Description() string {
	return f.desc
}

// ByPredicate returns a finder that matches widgets satisfying fn.
func ByPredicate(fn func(core.Widget) bool) Finder {
	return &predicateFinder{fn: fn, desc: "ByPredicate(...)"}
}

type descendantFinder struct {
	of       Finder
	matching Finder
}

func (f *descendantFinder) Evaluate(root core.Widget) []core.Widget {
	var results []core.Widget
	seen := make(map[core.Widget]bool)
	for _, ancestor := range f.of.Evaluate(root) {
		visitChildren(ancestor, func(child core.Widget) {
			for _, match := range f.matching.Evaluate(child) {
				if !seen[match] {
					seen[match] = true
					results = append(results, match)
				}
			}
		})
	}
	return results
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Descendant returns a finder that matches widgets satisfying 'matching'
// that are descendants of widgets matching 'of'.
func Descendant(of, matching Finder) Finder {
	return &descendantFinder{of: of, matching: matching}
}

// collectMatches performs depth-first pre-order traversal, collecting
// widgets that satisfy the predicate.
func collectMatches(root core.Widget, predicate func(core.Widget) bool) []core.Widget {
	var results []core.Widget
	walkTree(root, func(w core.Widget) {
		if predicate(w) {
			results = append(results, w)
		}
	})
	return results
}

func walkTree(root core.Widget, visitor func(core.Widget)) {
	visitor(root)
	visitChildren(root, func(child core.Widget) {
		walkTree(child, visitor)
	})
}

func visitChildren(w core.Widget, visitor func(core.Widget)) {
	if v, ok := w.(core.ChildVisitor); ok {
		v.VisitChildren(visitor)
	}
}
