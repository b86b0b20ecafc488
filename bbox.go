package catenary

import "math"

// Rect is an axis-aligned rectangle in the curve's coordinate space (y-up).
type Rect struct {
	X0, Y0 float64
	X1, Y1 float64
}

// NewRectFromPoints returns a rectangle with the extents of p0 and p1, ensuring that
// width and height are non-negative.
func NewRectFromPoints(p0, p1 Point) Rect {
	return Rect{
		X0: min(p0.X, p1.X),
		Y0: min(p0.Y, p1.Y),
		X1: max(p0.X, p1.X),
		Y1: max(p0.Y, p1.Y),
	}
}

// Width returns the rectangle's width, defined as X1 − X0.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns the rectangle's height, defined as Y1 − Y0.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// UnionPoint computes the union with one point.
//
// Results are valid only if width and height are non-negative.
func (r Rect) UnionPoint(pt Point) Rect {
	return Rect{
		X0: min(r.X0, pt.X),
		Y0: min(r.Y0, pt.Y),
		X1: max(r.X1, pt.X),
		Y1: max(r.Y1, pt.Y),
	}
}

// Inflate expands a rectangle by a constant amount in both directions.
func (r Rect) Inflate(width, height float64) Rect {
	return Rect{
		X0: r.X0 - width,
		Y0: r.Y0 - height,
		X1: r.X1 + width,
		Y1: r.Y1 + height,
	}
}

// FlipY mirrors the rectangle about the x axis, mapping it into a y-down space.
func (r Rect) FlipY() Rect {
	return Rect{X0: r.X0, Y0: -r.Y1, X1: r.X1, Y1: -r.Y0}
}

// IsInf reports whether any coordinate of r is infinite.
func (r Rect) IsInf() bool {
	return math.IsInf(r.X0, 0) ||
		math.IsInf(r.X1, 0) ||
		math.IsInf(r.Y0, 0) ||
		math.IsInf(r.Y1, 0)
}

// IsNaN reports whether any coordinate of r is NaN.
func (r Rect) IsNaN() bool {
	return math.IsNaN(r.X0) ||
		math.IsNaN(r.X1) ||
		math.IsNaN(r.Y0) ||
		math.IsNaN(r.Y1)
}

// BoundingBox returns the smallest rectangle enclosing the curve over its
// domain.
//
// The curve is monotonic on either side of its vertex, so the extrema are
// the two endpoints and, if it lies inside the domain, the vertex.
func (c Curve) BoundingBox() Rect {
	r := NewRectFromPoints(c.Start(), c.End())
	if v, ok := c.Vertex(); ok {
		r = r.UnionPoint(v)
	}
	return r
}
