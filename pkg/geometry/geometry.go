// Package geometry provides the float32 points, sizes, rectangles and affine
// transforms used by the widget tree.
package geometry

import "math"

// epsilon is the tolerance for floating-point comparisons.
const epsilon = 0.0001

// Offset represents a 2D point or vector in pixel coordinates.
type Offset struct {
	X float32
	Y float32
}

// Add returns o translated by other.
func (o Offset) Add(other Offset) Offset {
	return Offset{X: o.X + other.X, Y: o.Y + other.Y}
}

// Size represents width and height dimensions in pixels.
type Size struct {
	Width  float32
	Height float32
}

// IsZero reports whether both dimensions are zero.
func (s Size) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}

// Insets describes the space around the four edges of a box.
type Insets struct {
	Left   float32
	Top    float32
	Right  float32
	Bottom float32
}

// Horizontal returns Left + Right.
func (i Insets) Horizontal() float32 {
	return i.Left + i.Right
}

// Vertical returns Top + Bottom.
func (i Insets) Vertical() float32 {
	return i.Top + i.Bottom
}

// Rect represents a rectangle using left, top, right, bottom coordinates.
type Rect struct {
	Left   float32
	Top    float32
	Right  float32
	Bottom float32
}

// RectFromLTWH constructs a Rect from left, top, width, height values.
func RectFromLTWH(left, top, width, height float32) Rect {
	return Rect{
		Left:   left,
		Top:    top,
		Right:  left + width,
		Bottom: top + height,
	}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float32 {
	return r.Right - r.Left
}

// Height returns the height of the rectangle.
func (r Rect) Height() float32 {
	return r.Bottom - r.Top
}

// Size returns the size of the rectangle.
func (r Rect) Size() Size {
	return Size{Width: r.Width(), Height: r.Height()}
}

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive, so an empty rectangle contains no point.
func (r Rect) Contains(p Offset) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// Intersect returns the intersection of two rectangles.
// Returns empty rect if they don't overlap.
func (r Rect) Intersect(other Rect) Rect {
	left := max(r.Left, other.Left)
	top := max(r.Top, other.Top)
	right := min(r.Right, other.Right)
	bottom := min(r.Bottom, other.Bottom)
	if left >= right || top >= bottom {
		return Rect{}
	}
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// IsEmpty returns true if the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// Translate returns a new rect offset by (dx, dy).
func (r Rect) Translate(dx, dy float32) Rect {
	return Rect{
		Left:   r.Left + dx,
		Top:    r.Top + dy,
		Right:  r.Right + dx,
		Bottom: r.Bottom + dy,
	}
}

// Union returns the smallest rect containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Left:   min(r.Left, other.Left),
		Top:    min(r.Top, other.Top),
		Right:  max(r.Right, other.Right),
		Bottom: max(r.Bottom, other.Bottom),
	}
}

// NearlyEqual returns true if two float32 values are approximately equal.
func NearlyEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) <= epsilon
}
