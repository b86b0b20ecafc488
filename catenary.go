package catenary

import (
	"fmt"
	"math"
)

// Boundary describes the boundary conditions of a fit: the curve spans the
// domain [-A, A] and must pass through (-A, Y0) and (A, Y1).
type Boundary struct {
	A  float64
	Y0 float64
	Y1 float64
}

// Start returns the left boundary point (-A, Y0).
func (b Boundary) Start() Point { return Pt(-b.A, b.Y0) }

// End returns the right boundary point (A, Y1).
func (b Boundary) End() Point { return Pt(b.A, b.Y1) }

// Chord returns the straight-line distance between the two boundary points.
// No curve through both points can be shorter.
func (b Boundary) Chord() float64 {
	return math.Hypot(2*b.A, b.Y1-b.Y0)
}

// Validate reports whether the boundary describes a non-empty domain with
// finite ordinates. The returned error matches [ErrInvalidInput].
func (b Boundary) Validate() error {
	switch {
	case !isFinite(b.A) || !isFinite(b.Y0) || !isFinite(b.Y1):
		return fmt.Errorf("%w: boundary %v has non-finite values", ErrInvalidInput, b)
	case b.A <= 0:
		return fmt.Errorf("%w: half-width %g must be positive", ErrInvalidInput, b.A)
	}
	return nil
}

func (b Boundary) String() string {
	return fmt.Sprintf("[%g, %g] from %g to %g", -b.A, b.A, b.Y0, b.Y1)
}

// Params are the parameters of the curve y(x) = C1 cosh(x + C2) - Lambda.
type Params struct {
	C1     float64
	C2     float64
	Lambda float64
}

// Eval evaluates the curve at x.
func (p Params) Eval(x float64) float64 {
	return p.C1*math.Cosh(x+p.C2) - p.Lambda
}

// Deriv evaluates the first derivative of the curve at x.
func (p Params) Deriv(x float64) float64 {
	return p.C1 * math.Sinh(x+p.C2)
}

// Evaluate evaluates the curve at each of xs. The result has the same length
// and order as xs.
func (p Params) Evaluate(xs []float64) []float64 {
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = p.Eval(x)
	}
	return ys
}

// Evaluate applies y(x) = C1 cosh(x + C2) - Lambda to each of xs.
//
// The curve is defined for any real x, but a fitted curve is only meaningful
// on the domain of the boundary it was fitted to.
func Evaluate(p Params, xs []float64) []float64 {
	return p.Evaluate(xs)
}

// IsFinite reports whether all three parameters are neither NaN nor infinite.
func (p Params) IsFinite() bool {
	return isFinite(p.C1) && isFinite(p.C2) && isFinite(p.Lambda)
}

func (p Params) String() string {
	return fmt.Sprintf("C1=%g C2=%g λ=%g", p.C1, p.C2, p.Lambda)
}

func (p Params) vec() []float64 {
	return []float64{p.C1, p.C2, p.Lambda}
}

func paramsFromVec(v []float64) Params {
	return Params{C1: v[0], C2: v[1], Lambda: v[2]}
}

// Point is a point in the plane of the curve.
type Point struct {
	X float64
	Y float64
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (pt Point) String() string {
	return fmt.Sprintf("(%g, %g)", pt.X, pt.Y)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
