package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-longui/longui/pkg/core"
)

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the widget tree geometry and the draw calls of the
// last frame.
type Snapshot struct {
	Tree       *Node       `json:"tree"`
	DisplayOps []DisplayOp `json:"displayOps,omitempty"`
}

// Node represents a widget in the serialized tree.
type Node struct {
	ID       string     `json:"id"`
	Type     string     `json:"type"`
	Name     string     `json:"name,omitempty"`
	Offset   [2]float64 `json:"offset"`
	Size     [2]float64 `json:"size"`
	Content  [2]float64 `json:"content,omitzero"`
	Flags    string     `json:"flags,omitempty"`
	Children []*Node    `json:"children,omitempty"`
}

// CaptureSnapshot captures the current tree and the draw calls recorded
// during the last pump.
func (t *WidgetTester) CaptureSnapshot() *Snapshot {
	snap := Capture(t.root)
	if ops := t.renderer.Ops(); len(ops) > 0 {
		snap.DisplayOps = append([]DisplayOp(nil), ops...)
	}
	return snap
}

// Capture serializes the tree under root.
func Capture(root core.Widget) *Snapshot {
	snap := &Snapshot{}
	if root != nil {
		snap.Tree = captureNode(root, &typeCounter{})
	}
	return snap
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When LONGUI_UPDATE_SNAPSHOTS=1
// is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv("LONGUI_UPDATE_SNAPSHOTS") == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: LONGUI_UPDATE_SNAPSHOTS=1 go test -run %s", path, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: LONGUI_UPDATE_SNAPSHOTS=1 go test -run %s", path, diff, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a line diff between this snapshot and other. Returns an
// empty string if equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := marshalSnapshot(s)
	b, _ := marshalSnapshot(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return unifiedDiff(string(b), string(a))
}

// typeCounter assigns stable IDs like "VerticalLayout#0", "Control#1".
type typeCounter struct {
	counts map[string]int
}

func (c *typeCounter) next(typeName string) string {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	n := c.counts[typeName]
	c.counts[typeName] = n + 1
	return fmt.Sprintf("%s#%d", typeName, n)
}

func captureNode(w core.Widget, counter *typeCounter) *Node {
	typeName := widgetTypeName(w)
	b := w.Node()
	pos, size, content := b.Position(), b.Size(), b.ContentSize()

	node := &Node{
		ID:      counter.next(typeName),
		Type:    typeName,
		Name:    b.Name(),
		Offset:  [2]float64{round2(float64(pos.X)), round2(float64(pos.Y))},
		Size:    [2]float64{round2(float64(size.Width)), round2(float64(size.Height))},
		Content: [2]float64{round2(float64(content.Width)), round2(float64(content.Height))},
	}
	if f := b.Flags(); f != 0 {
		node.Flags = f.String()
	}

	visitChildren(w, func(child core.Widget) {
		node.Children = append(node.Children, captureNode(child, counter))
	})
	return node
}

func widgetTypeName(w core.Widget) string {
	t := reflect.TypeOf(w)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unifiedDiff produces a simple line-oriented diff.
func unifiedDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	for i := range max(len(expectedLines), len(actualLines)) {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e != a {
			if i < len(expectedLines) {
				fmt.Fprintf(&buf, "-%s\n", e)
			}
			if i < len(actualLines) {
				fmt.Fprintf(&buf, "+%s\n", a)
			}
		}
	}

	return buf.String()
}
