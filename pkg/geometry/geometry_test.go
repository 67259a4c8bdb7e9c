package geometry

import "testing"

func TestRectContainsIsHalfOpen(t *testing.T) {
	r := RectFromLTWH(10, 20, 30, 40)
	tests := []struct {
		p    Offset
		want bool
	}{
		{Offset{X: 10, Y: 20}, true},
		{Offset{X: 39.9, Y: 59.9}, true},
		{Offset{X: 40, Y: 30}, false},
		{Offset{X: 20, Y: 60}, false},
		{Offset{X: 9.9, Y: 30}, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
	if (Rect{}).Contains(Offset{}) {
		t.Error("empty rect should not contain its origin")
	}
}

func TestRectIntersect(t *testing.T) {
	a := RectFromLTWH(0, 0, 100, 100)
	b := RectFromLTWH(50, 50, 100, 100)
	got := a.Intersect(b)
	want := Rect{Left: 50, Top: 50, Right: 100, Bottom: 100}
	if got != want {
		t.Errorf("Intersect = %v, want %v", got, want)
	}
	if !a.Intersect(RectFromLTWH(200, 200, 10, 10)).IsEmpty() {
		t.Error("disjoint rects should intersect to empty")
	}
}

func TestTransformCompose(t *testing.T) {
	// Scale first, then translate.
	m := Mul(Translation(10, 20), Scaling(2, 3))
	got := Apply(m, Offset{X: 1, Y: 1})
	if !NearlyEqual(got.X, 12) || !NearlyEqual(got.Y, 23) {
		t.Errorf("Apply = %v, want {12 23}", got)
	}

	r := TransformRect(m, RectFromLTWH(0, 0, 5, 5))
	want := Rect{Left: 10, Top: 20, Right: 20, Bottom: 35}
	if r != want {
		t.Errorf("TransformRect = %v, want %v", r, want)
	}
}

func TestIdentityIsNeutral(t *testing.T) {
	m := Translation(3, 4)
	if Mul(Identity(), m) != m || Mul(m, Identity()) != m {
		t.Error("identity should be neutral under Mul")
	}
}

func TestInsets(t *testing.T) {
	in := Insets{Left: 1, Top: 2, Right: 3, Bottom: 4}
	if in.Horizontal() != 4 || in.Vertical() != 6 {
		t.Errorf("Horizontal/Vertical = %v/%v, want 4/6", in.Horizontal(), in.Vertical())
	}
}
