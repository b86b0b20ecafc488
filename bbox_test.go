package catenary

import (
	"math"
	"testing"
)

func TestRectFromPoints(t *testing.T) {
	r := NewRectFromPoints(Pt(3, -1), Pt(-2, 4))
	want := Rect{X0: -2, Y0: -1, X1: 3, Y1: 4}
	if r != want {
		t.Errorf("got %v, want %v", r, want)
	}
	if r.Width() != 5 || r.Height() != 5 {
		t.Errorf("got size %gx%g, want 5x5", r.Width(), r.Height())
	}
	if got, want := r.Inflate(1, 0.5), (Rect{X0: -3, Y0: -1.5, X1: 4, Y1: 4.5}); got != want {
		t.Errorf("Inflate: got %v, want %v", got, want)
	}
	if got, want := r.FlipY(), (Rect{X0: -2, Y0: -4, X1: 3, Y1: 1}); got != want {
		t.Errorf("FlipY: got %v, want %v", got, want)
	}
	if (Rect{X1: math.Inf(1)}).IsInf() != true || r.IsInf() {
		t.Error("IsInf")
	}
	if (Rect{Y0: math.NaN()}).IsNaN() != true || r.IsNaN() {
		t.Error("IsNaN")
	}
}

func TestCurveBoundingBox(t *testing.T) {
	// The symmetric curve sags below both endpoints; its minimum is the vertex.
	b := Boundary{A: 1, Y0: 0, Y1: 0}
	c, err := Fit(b, 2.5, Params{C1: 1})
	if err != nil {
		t.Fatal(err)
	}
	bb := c.BoundingBox()
	v, ok := c.Vertex()
	if !ok {
		t.Fatal("expected vertex inside the domain")
	}
	if bb.X0 != -1 || bb.X1 != 1 {
		t.Errorf("got x extent [%g, %g], want [-1, 1]", bb.X0, bb.X1)
	}
	if bb.Y0 != v.Y {
		t.Errorf("got min y %g, want vertex y %g", bb.Y0, v.Y)
	}
	assertNear(t, "max y", bb.Y1, 0, 1e-9)
	for pt := range c.Points(101) {
		if in := bb.Inflate(1e-12, 1e-12); pt.X < in.X0 || pt.X > in.X1 || pt.Y < in.Y0 || pt.Y > in.Y1 {
			t.Errorf("sample %v outside bounding box %v", pt, bb)
		}
	}

	// The vertex of the asymmetric example lies inside the domain and below
	// the left endpoint.
	c, err = Fit(Boundary{A: 1, Y0: 4, Y1: 5}, 5, Params{Lambda: 1})
	if err != nil {
		t.Fatal(err)
	}
	bb = c.BoundingBox()
	v, ok = c.Vertex()
	if !ok {
		t.Fatal("expected vertex inside the domain")
	}
	if bb.Y0 != v.Y || v.Y >= 4 {
		t.Errorf("got min y %g, want vertex y %g below 4", bb.Y0, v.Y)
	}
	assertNear(t, "max y", bb.Y1, 5, 1e-9)
}
