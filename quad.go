package catenary

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

// DefaultAccuracy is the default absolute accuracy requested from numerical
// integration.
const DefaultAccuracy = 1e-12

// maxQuadDepth bounds the number of times a panel gets bisected. At that depth
// the 16 point estimate is accepted as is.
const maxQuadDepth = 20

// Legendre-Gauss nodes and weights on [-1, 1].
var (
	legendre8  = newLegendreRule(8)
	legendre16 = newLegendreRule(16)
)

type legendreRule struct {
	x []float64
	w []float64
}

func newLegendreRule(n int) legendreRule {
	r := legendreRule{x: make([]float64, n), w: make([]float64, n)}
	quad.Legendre{}.FixedLocations(r.x, r.w, -1, 1)
	return r
}

func (r legendreRule) apply(f func(float64) float64, mid, half float64) float64 {
	var sum float64
	for i, xi := range r.x {
		sum += r.w[i] * f(mid+half*xi)
	}
	return sum * half
}

// Integrate computes the definite integral of f over [a, b].
//
// This is an adaptive subdivision approach using Legendre-Gauss quadrature.
// Each panel is integrated with both an 8 and a 16 point rule; if the two
// estimates differ by more than the panel's share of accuracy (or relative
// rounding, for integrals of large magnitude), the panel is bisected.
//
// If f produces NaN or an infinity, the returned error is [ErrOverflow].
func Integrate(f func(float64) float64, a, b, accuracy float64) (float64, error) {
	if a == b {
		return 0, nil
	}
	v := integrate(f, a, b, accuracy, 0)
	if !isFinite(v) {
		return v, ErrOverflow
	}
	return v, nil
}

func integrate(f func(float64) float64, a, b, accuracy float64, depth int) float64 {
	mid := 0.5 * (a + b)
	half := 0.5 * (b - a)
	lo := legendre8.apply(f, mid, half)
	hi := legendre16.apply(f, mid, half)
	if !isFinite(hi) || depth >= maxQuadDepth {
		return hi
	}
	if math.Abs(hi-lo) <= max(accuracy, 1e-14*math.Abs(hi)) {
		return hi
	}
	return integrate(f, a, mid, accuracy*0.5, depth+1) +
		integrate(f, mid, b, accuracy*0.5, depth+1)
}

// Arclen returns the arc length of the curve described by p between x0 and x1,
// accurate to roughly the given accuracy.
//
// The integrand sqrt(1 + C1² sinh²(x + C2)) has no usable antiderivative, so the
// length is integrated numerically. The error matches [ErrOverflow] if the
// hyperbolic functions overflow.
func Arclen(p Params, x0, x1, accuracy float64) (float64, error) {
	return Integrate(func(x float64) float64 {
		return math.Hypot(1, p.Deriv(x))
	}, x0, x1, accuracy)
}
