package catenary

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Residuals holds the residuals of the three fit equations:
//
//	r[0] = C1 cosh(-a + C2) - λ - y0
//	r[1] = C1 cosh(a + C2) - λ - y1
//	r[2] = ∫[-a, a] sqrt(1 + C1² sinh²(x + C2)) dx - L
type Residuals [3]float64

// Norm returns the Euclidean norm of the residuals.
func (r Residuals) Norm() float64 {
	return floats.Norm(r[:], 2)
}

// Jacobian holds the partial derivatives of [Residuals] with respect to
// (C1, C2, λ). Row i contains the derivatives of equation i.
type Jacobian [3][3]float64

// Equations is the equation system of a fit. It holds only the problem
// definition; all values are computed from the parameters passed in.
type Equations struct {
	Boundary Boundary
	Length   float64
	// Accuracy is the absolute accuracy of the arc length integrals.
	Accuracy float64
}

// Residuals evaluates the equation system at p.
func (eq Equations) Residuals(p Params) (Residuals, error) {
	r, _, err := eq.eval(p, false)
	return r, err
}

// Linearize evaluates the equation system and its Jacobian at p.
func (eq Equations) Linearize(p Params) (Residuals, Jacobian, error) {
	return eq.eval(p, true)
}

func (eq Equations) eval(p Params, withJacobian bool) (Residuals, Jacobian, error) {
	var r Residuals
	var jac Jacobian
	a := eq.Boundary.A

	ch0, ch1 := math.Cosh(-a+p.C2), math.Cosh(a+p.C2)
	r[0] = p.C1*ch0 - p.Lambda - eq.Boundary.Y0
	r[1] = p.C1*ch1 - p.Lambda - eq.Boundary.Y1
	if !isFinite(r[0]) || !isFinite(r[1]) {
		return r, jac, fmt.Errorf("%w: boundary residuals at %v", ErrOverflow, p)
	}
	length, err := Arclen(p, -a, a, eq.Accuracy)
	if err != nil {
		return r, jac, fmt.Errorf("arc length at %v: %w", p, err)
	}
	r[2] = length - eq.Length

	if !withJacobian {
		return r, jac, nil
	}
	sh0, sh1 := math.Sinh(-a+p.C2), math.Sinh(a+p.C2)
	jac[0] = [3]float64{ch0, p.C1 * sh0, -1}
	jac[1] = [3]float64{ch1, p.C1 * sh1, -1}

	// d/dC1 and d/dC2 of the integrand, written in terms of u/s with
	// u = C1 sinh and s = sqrt(1 + u²) so that |u/s| ≤ 1 keeps intermediate
	// values finite.
	dC1, err := Integrate(func(x float64) float64 {
		sh := math.Sinh(x + p.C2)
		u := p.C1 * sh
		return u / math.Hypot(1, u) * sh
	}, -a, a, eq.Accuracy)
	if err != nil {
		return r, jac, fmt.Errorf("arc length derivative at %v: %w", p, err)
	}
	dC2, err := Integrate(func(x float64) float64 {
		sh, ch := math.Sinh(x+p.C2), math.Cosh(x+p.C2)
		u := p.C1 * sh
		return u / math.Hypot(1, u) * p.C1 * ch
	}, -a, a, eq.Accuracy)
	if err != nil {
		return r, jac, fmt.Errorf("arc length derivative at %v: %w", p, err)
	}
	jac[2] = [3]float64{dC1, dC2, 0}
	return r, jac, nil
}
