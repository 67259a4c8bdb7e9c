package testing

import (
	"testing"

	"github.com/go-longui/longui/pkg/core"
	"github.com/go-longui/longui/pkg/errors"
	"github.com/go-longui/longui/pkg/geometry"
	"github.com/go-longui/longui/pkg/widgets"
)

func TestNewWidgetTester_Defaults(t *testing.T) {
	tester := NewWidgetTesterWithT(t)

	if tester.size.Width != DefaultTestWidth || tester.size.Height != DefaultTestHeight {
		t.Errorf("expected default size %dx%d, got %vx%v", DefaultTestWidth, DefaultTestHeight, tester.size.Width, tester.size.Height)
	}
	if tester.Tree() == nil || tester.Pipeline() == nil {
		t.Fatal("expected tree and pipeline to be set")
	}
	if len(tester.Registry().Names()) != 4 {
		t.Errorf("expected 4 registered types, got %v", tester.Registry().Names())
	}
}

func TestPumpYAML_LaysOutWeights(t *testing.T) {
	tester := pumpThreeRows(t)

	wantHeights := map[string]float32{"top": 150, "middle": 300, "bottom": 150}
	wantY := map[string]float32{"top": 0, "middle": 150, "bottom": 450}
	for name, h := range wantHeights {
		w := tester.Find(ByName(name)).First().Node()
		if w.Height() != h || w.Width() != 300 {
			t.Errorf("%s size = %v, want 300x%v", name, w.Size(), h)
		}
		if w.Position().Y != wantY[name] {
			t.Errorf("%s y = %v, want %v", name, w.Position().Y, wantY[name])
		}
	}
	if got := tester.Root().Node().ContentSize(); got != (geometry.Size{Width: 300, Height: 600}) {
		t.Errorf("content size = %v, want 300x600", got)
	}
}

func TestPumpWidget_Remount(t *testing.T) {
	tester := NewWidgetTesterWithT(t)

	first := widgets.NewVerticalLayout(tester.Tree())
	first.PushBack(widgets.NewControl(tester.Tree(), "child"))
	if err := tester.PumpWidget(first); err != nil {
		t.Fatal(err)
	}

	second := widgets.NewSingle(tester.Tree())
	if err := tester.PumpWidget(second); err != nil {
		t.Fatal(err)
	}
	if !first.Released() {
		t.Error("expected previous root to be released")
	}
	if tester.Root() != core.Widget(second) {
		t.Error("expected second root to be mounted")
	}
	if tester.Tree().Len() != 2 {
		t.Errorf("expected placeholder and root only, got %d widgets", tester.Tree().Len())
	}
}

func TestPumpYAML_UnknownType(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	err := tester.PumpYAML("type: slider\n")
	if !errors.Is(err, errors.ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
	if !tester.Diagnostics().Has(errors.LevelError, errors.KindCreate) {
		t.Error("expected an error diagnostic")
	}
}

func TestHitTest(t *testing.T) {
	tester := pumpThreeRows(t)

	got := tester.HitTest(geometry.Offset{X: 10, Y: 200})
	if got == nil || got.Node().Name() != "middle" {
		t.Errorf("HitTest(10,200) = %v, want middle", got)
	}
	if got := tester.HitTest(geometry.Offset{X: 10, Y: 600}); got != nil {
		t.Errorf("HitTest below the viewport = %v, want nil", got)
	}
}

func TestPump_RecordsRenderOrder(t *testing.T) {
	tester := pumpThreeRows(t)
	ops := tester.Renderer().Ops()
	if len(ops) != 12 {
		t.Fatalf("expected 12 draw calls, got %d: %v", len(ops), ops)
	}
	if ops[0] != (DisplayOp{Op: "background", Widget: "root"}) {
		t.Errorf("first op = %v, want root background", ops[0])
	}
	if ops[11] != (DisplayOp{Op: "foreground", Widget: "root"}) {
		t.Errorf("last op = %v, want root foreground", ops[11])
	}

	tester.Pump()
	if len(tester.Renderer().Ops()) != 0 {
		t.Error("expected an idle pump to draw nothing")
	}
}
