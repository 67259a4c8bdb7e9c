package core

import (
	"fmt"
	"sync"
	"testing"

	"github.com/go-longui/longui/pkg/errors"
)

type leaf struct {
	Base
	recreateErr error
	recreates   int
	cleanups    int
	events      []EventKind
}

func newLeaf(name string) *leaf {
	l := &leaf{}
	l.SetName(name)
	return l
}

func (l *leaf) Recreate() error {
	l.recreates++
	return l.recreateErr
}

func (l *leaf) Cleanup() {
	l.cleanups++
	l.Base.Cleanup()
}

func (l *leaf) DoEvent(e Event) bool {
	l.events = append(l.events, e.Kind)
	return false
}

type list struct {
	Container
	layouts int
}

func newList(name string) *list {
	l := &list{}
	l.SetName(name)
	return l
}

func (l *list) RefreshLayout() { l.layouts++ }

type diagRecorder struct {
	mu    sync.Mutex
	diags []*errors.Diagnostic
}

func (r *diagRecorder) HandleDiagnostic(d *errors.Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.diags = append(r.diags, d)
}

func (r *diagRecorder) HandlePanic(*errors.PanicError) {}

func (r *diagRecorder) count(level errors.Level) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, d := range r.diags {
		if d.Level == level {
			n++
		}
	}
	return n
}

func (r *diagRecorder) has(level errors.Level, kind errors.ErrorKind) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.diags {
		if d.Level == level && d.Kind == kind {
			return true
		}
	}
	return false
}

// withDebugMode sets DebugMode until the test ends.
func withDebugMode(t *testing.T, debug bool) {
	t.Helper()
	prev := DebugMode
	SetDebugMode(debug)
	t.Cleanup(func() { SetDebugMode(prev) })
}

// inBothModes runs fn once with the debug checks on and once with them off.
func inBothModes(t *testing.T, fn func(t *testing.T)) {
	t.Helper()
	for _, debug := range []bool{true, false} {
		name := "debug"
		if !debug {
			name = "release"
		}
		t.Run(name, func(t *testing.T) {
			withDebugMode(t, debug)
			fn(t)
		})
	}
}

func newTestTree() (*Tree, *diagRecorder) {
	rec := &diagRecorder{}
	return NewTree(TreeConfig{Diagnostics: rec}), rec
}

// fill appends n leaves named "c0".."c<n-1>" to c.
func fill(c *list, n int) []*leaf {
	leaves := make([]*leaf, n)
	for i := range leaves {
		leaves[i] = newLeaf(fmt.Sprintf("c%d", i))
		if err := c.PushBack(leaves[i]); err != nil {
			panic(err)
		}
	}
	return leaves
}

func names(seq func(func(Widget) bool)) []string {
	var out []string
	for w := range seq {
		out = append(out, w.Node().Name())
	}
	return out
}
