package geometry

import "golang.org/x/image/math/f32"

// Identity returns the identity transform.
func Identity() f32.Aff3 {
	return f32.Aff3{
		1, 0, 0,
		0, 1, 0,
	}
}

// Translation returns a transform that moves points by (dx, dy).
func Translation(dx, dy float32) f32.Aff3 {
	return f32.Aff3{
		1, 0, dx,
		0, 1, dy,
	}
}

// Scaling returns a transform that scales points by (sx, sy).
func Scaling(sx, sy float32) f32.Aff3 {
	return f32.Aff3{
		sx, 0, 0,
		0, sy, 0,
	}
}

// Mul returns a·b, which applies b first and then a.
func Mul(a, b f32.Aff3) f32.Aff3 {
	return f32.Aff3{
		a[0]*b[0] + a[1]*b[3],
		a[0]*b[1] + a[1]*b[4],
		a[0]*b[2] + a[1]*b[5] + a[2],
		a[3]*b[0] + a[4]*b[3],
		a[3]*b[1] + a[4]*b[4],
		a[3]*b[2] + a[4]*b[5] + a[5],
	}
}

// Apply maps p through m.
func Apply(m f32.Aff3, p Offset) Offset {
	return Offset{
		X: m[0]*p.X + m[1]*p.Y + m[2],
		Y: m[3]*p.X + m[4]*p.Y + m[5],
	}
}

// TransformRect maps r through m and returns the axis-aligned bounds of the result.
func TransformRect(m f32.Aff3, r Rect) Rect {
	corners := [4]Offset{
		Apply(m, Offset{X: r.Left, Y: r.Top}),
		Apply(m, Offset{X: r.Right, Y: r.Top}),
		Apply(m, Offset{X: r.Left, Y: r.Bottom}),
		Apply(m, Offset{X: r.Right, Y: r.Bottom}),
	}
	out := Rect{Left: corners[0].X, Top: corners[0].Y, Right: corners[0].X, Bottom: corners[0].Y}
	for _, c := range corners[1:] {
		out.Left = min(out.Left, c.X)
		out.Top = min(out.Top, c.Y)
		out.Right = max(out.Right, c.X)
		out.Bottom = max(out.Bottom, c.Y)
	}
	return out
}
