package catenary

import (
	"fmt"
	"iter"
	"math"
	"slices"
)

// Curve is a fitted curve: the solved parameters together with the boundary
// and arc length that produced them. Curves are values and never change after
// construction.
type Curve struct {
	Params
	Boundary Boundary
	Length   float64
}

// Fit solves the fit equations with [DefaultOptions] and binds the result to
// its boundary.
func Fit(b Boundary, length float64, guess Params) (Curve, error) {
	c, _, err := FitOpt(b, length, guess, DefaultOptions)
	return c, err
}

// FitOpt is like [Fit] but accepts options and additionally returns the
// solver diagnostics. See [SolveOpt] for the possible errors.
func FitOpt(b Boundary, length float64, guess Params, opts Options) (Curve, Result, error) {
	res, err := SolveOpt(b, length, guess, opts)
	if err != nil {
		return Curve{}, res, err
	}
	return Curve{Params: res.Params, Boundary: b, Length: length}, res, nil
}

// Domain returns the interval on which the curve is meaningful.
func (c Curve) Domain() (float64, float64) {
	return -c.Boundary.A, c.Boundary.A
}

// Contains reports whether x lies in the curve's domain.
func (c Curve) Contains(x float64) bool {
	return x >= -c.Boundary.A && x <= c.Boundary.A
}

// Start returns the point of the curve at the left end of its domain.
func (c Curve) Start() Point {
	return Pt(-c.Boundary.A, c.Eval(-c.Boundary.A))
}

// End returns the point of the curve at the right end of its domain.
func (c Curve) End() Point {
	return Pt(c.Boundary.A, c.Eval(c.Boundary.A))
}

// Points returns an iterator over n evenly spaced points of the curve,
// spanning its whole domain. Both ends are included for n ≥ 2; for n = 1, only
// the left end is produced.
func (c Curve) Points(n int) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		if n <= 0 {
			return
		}
		x0, x1 := c.Domain()
		for i := range n {
			var x float64
			switch i {
			case 0:
				x = x0
			case n - 1:
				x = x1
			default:
				x = x0 + (x1-x0)*float64(i)/float64(n-1)
			}
			if !yield(Pt(x, c.Eval(x))) {
				return
			}
		}
	}
}

// Sample returns n evenly spaced points of the curve. See [Curve.Points].
func (c Curve) Sample(n int) []Point {
	return slices.Collect(c.Points(n))
}

// Arclen returns the length of the curve over its domain.
func (c Curve) Arclen(accuracy float64) (float64, error) {
	x0, x1 := c.Domain()
	return Arclen(c.Params, x0, x1, accuracy)
}

// Vertex returns the turning point of the curve, x = -C2, if it lies within
// the domain. For C1 > 0 it is the lowest point of the curve, for C1 < 0 the
// highest.
func (c Curve) Vertex() (Point, bool) {
	x := -c.C2
	if c.C1 == 0 || !c.Contains(x) {
		return Point{}, false
	}
	return Pt(x, c.Eval(x)), true
}

// SolveForArclen returns the x at which the length of the curve, measured
// from the left end of its domain, equals arclen. Values outside [0, total
// length] are clamped to the ends of the domain.
//
// This uses the [ITP method]. Arc lengths are computed incrementally between
// successive probes instead of from the left end every time.
//
// [ITP method]: https://en.wikipedia.org/wiki/ITP_Method
func (c Curve) SolveForArclen(arclen, accuracy float64) (float64, error) {
	x0, x1 := c.Domain()
	if arclen <= 0.0 {
		return x0, nil
	}
	totalArclen, err := c.Arclen(accuracy)
	if err != nil {
		return math.NaN(), err
	}
	if arclen >= totalArclen {
		return x1, nil
	}

	// |dx| ≤ |ds| everywhere, so an x accuracy of accuracy suffices.
	epsilon := max(accuracy, (x1-x0)*0x1p-50)
	n := 1.0 - min(math.Ceil(math.Log2(epsilon/(x1-x0))), 0.0)
	innerAccuracy := accuracy / n
	xLast := x0
	arclenLast := 0.0
	var ferr error
	f := func(x float64) float64 {
		if ferr != nil {
			return 0
		}
		arc, err := Arclen(c.Params, xLast, x, innerAccuracy)
		if err != nil {
			ferr = err
			return 0
		}
		// Arclen of a reversed interval is negative.
		arclenLast += arc
		xLast = x
		return arclenLast - arclen
	}
	x := SolveITP(f, x0, x1, epsilon, 1, 0.2/(x1-x0), -arclen, totalArclen-arclen)
	if ferr != nil {
		return math.NaN(), fmt.Errorf("solving for arc length %g: %w", arclen, ferr)
	}
	return x, nil
}
