// Package catenary fits catenary-like curves between two points under an arc
// length constraint.
//
// # Curves
//
// The curves considered by this package have the form
//
//	y(x) = C1 cosh(x + C2) - λ
//
// which generalizes the idealized hanging chain with a vertical offset λ and a
// horizontal shift C2. [Params] holds the triple (C1, C2, λ).
//
// # Fitting
//
// Given a [Boundary], i.e. a half-width a and the ordinates y0 and y1 at x = -a
// and x = a, and a target arc length L, [Solve] finds parameters satisfying
//
//	C1 cosh(-a + C2) - λ - y0 = 0
//	C1 cosh(a + C2) - λ - y1 = 0
//	∫[-a, a] sqrt(1 + C1² sinh²(x + C2)) dx - L = 0
//
// The arc length equation is transcendental and its integrand has no usable
// antiderivative, so the system is solved iteratively ([LevenbergMarquardt] by
// default, see [Options]) with the integral evaluated by adaptive
// Legendre-Gauss quadrature ([Integrate]) inside every iteration. [Equations]
// is the composition of the two: a pure function from parameters to residuals
// and their Jacobian.
//
// Unlike a bare root finder, [SolveOpt] never returns an unconverged triple.
// Targets shorter than the chord between the boundary points are rejected up
// front with [ErrInfeasibleTarget], and iterations that end above the residual
// tolerance, including those that diverge until cosh overflows, fail with a
// [*ConvergenceError].
//
// [Fit] binds solved parameters to their boundary as a [Curve], which can be
// evaluated, sampled, measured and drawn as SVG.
package catenary
