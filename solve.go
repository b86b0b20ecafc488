package catenary

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

// Method selects the iteration used to drive the residuals of the fit
// equations to zero.
type Method int

const (
	// LevenbergMarquardt is a damped Gauss-Newton iteration on the 3×3
	// system. The damping makes it robust against the singular Jacobian at
	// C1 = 0, which is where the customary initial guess (0, 0, 1) lies.
	LevenbergMarquardt Method = iota
	// BFGS minimizes half the squared residual norm with a quasi-Newton
	// method, using the analytic gradient Jᵀr.
	BFGS
)

func (m Method) String() string {
	switch m {
	case LevenbergMarquardt:
		return "levenberg-marquardt"
	case BFGS:
		return "bfgs"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod parses a method name as produced by [Method.String]. The short
// name "lm" is accepted for [LevenbergMarquardt].
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lm", "levenberg-marquardt":
		return LevenbergMarquardt, nil
	case "bfgs":
		return BFGS, nil
	default:
		return 0, fmt.Errorf("%w: unknown method %q", ErrInvalidInput, s)
	}
}

// Options control [SolveOpt].
type Options struct {
	Method Method
	// Tolerance is the largest Euclidean norm of the residuals that is
	// accepted as a solution.
	Tolerance float64
	// MaxIterations bounds the number of accepted iterations.
	MaxIterations int
	// Accuracy is the absolute accuracy of the arc length integrals.
	Accuracy float64
}

// DefaultOptions are the options used by [Solve] and [Fit].
var DefaultOptions = Options{
	Method:        LevenbergMarquardt,
	Tolerance:     1e-10,
	MaxIterations: 200,
	Accuracy:      DefaultAccuracy,
}

func (opts Options) withDefaults() Options {
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultOptions.Tolerance
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultOptions.MaxIterations
	}
	if opts.Accuracy <= 0 {
		opts.Accuracy = DefaultOptions.Accuracy
	}
	return opts
}

// Result is the outcome of a successful solve.
type Result struct {
	Params     Params
	Method     Method
	Iterations int
	// Evaluations counts evaluations of the equation system.
	Evaluations int
	// Residual is the Euclidean norm of the residuals at Params.
	Residual float64
}

// Solve finds parameters (C1, C2, λ) such that y(x) = C1 cosh(x + C2) - λ
// passes through both boundary points and has the given arc length over
// [-b.A, b.A]. The guess is the starting point of the iteration; convergence
// is sensitive to it.
//
// Solve uses [DefaultOptions]. See [SolveOpt] for the possible errors.
func Solve(b Boundary, length float64, guess Params) (Params, error) {
	res, err := SolveOpt(b, length, guess, DefaultOptions)
	return res.Params, err
}

// SolveOpt is like [Solve] but allows choosing the method and its tolerances,
// and reports diagnostics.
//
// The returned error matches
//   - [ErrInvalidInput] if the boundary, length or guess aren't usable,
//   - [ErrInfeasibleTarget] if length is shorter than the chord between the
//     boundary points,
//   - [ErrNonConvergence] and [ErrDegenerateTarget] if length equals the
//     chord, as only the straight line, the singular limit C1 → 0, has that
//     length,
//   - [ErrNonConvergence] if the iteration didn't reach opts.Tolerance. If
//     that was caused by overflowing hyperbolic functions, the error also
//     matches [ErrOverflow]. The error is a [*ConvergenceError].
//
// Parameters are only returned together with a nil error.
func SolveOpt(b Boundary, length float64, guess Params, opts Options) (Result, error) {
	if err := b.Validate(); err != nil {
		return Result{}, err
	}
	if !isFinite(length) || length <= 0 {
		return Result{}, fmt.Errorf("%w: arc length %g must be positive", ErrInvalidInput, length)
	}
	if !guess.IsFinite() {
		return Result{}, fmt.Errorf("%w: initial guess %v has non-finite values", ErrInvalidInput, guess)
	}
	opts = opts.withDefaults()

	chord := b.Chord()
	slack := 4 * epsilon * chord
	switch {
	case length < chord-slack:
		return Result{}, fmt.Errorf("%w: length %g, chord %g", ErrInfeasibleTarget, length, chord)
	case length <= chord+slack:
		return Result{}, &ConvergenceError{
			Method:   opts.Method,
			Residual: math.NaN(),
			Params:   guess,
			Err:      ErrDegenerateTarget,
		}
	}

	eq := Equations{Boundary: b, Length: length, Accuracy: opts.Accuracy}
	switch opts.Method {
	case LevenbergMarquardt:
		return levenbergMarquardt(eq, guess, opts)
	case BFGS:
		return minimizeBFGS(eq, guess, opts)
	default:
		return Result{}, fmt.Errorf("%w: unknown method %v", ErrInvalidInput, opts.Method)
	}
}

const epsilon = 0x1p-52

const (
	initialDamping = 1e-3
	minDamping     = 1e-12
	maxDamping     = 1e12
	// minScale is the smallest diagonal entry used to scale the damping
	// term. Columns of the Jacobian can vanish, e.g. the C2 column at C1 = 0.
	minScale = 1e-9
)

func levenbergMarquardt(eq Equations, guess Params, opts Options) (Result, error) {
	fail := func(p Params, iterations int, residual float64, err error) (Result, error) {
		return Result{}, &ConvergenceError{
			Method:     LevenbergMarquardt,
			Iterations: iterations,
			Residual:   residual,
			Params:     p,
			Err:        err,
		}
	}

	p := guess
	r, jac, err := eq.Linearize(p)
	evals := 1
	if err != nil {
		return fail(p, 0, math.NaN(), err)
	}
	cost := r.Norm()
	damping := initialDamping
	// lastErr records why the most recent trial step was rejected, if it
	// was rejected because the equations couldn't be evaluated.
	var lastErr error

	for it := 0; ; it++ {
		if cost <= opts.Tolerance {
			return Result{
				Params:      p,
				Method:      LevenbergMarquardt,
				Iterations:  it,
				Evaluations: evals,
				Residual:    cost,
			}, nil
		}
		if it >= opts.MaxIterations {
			return fail(p, it, cost, lastErr)
		}

		jtj, grad := normalEquations(jac, r)
		for {
			step, ok := dampedStep(jtj, grad, damping)
			if ok {
				trial := Params{
					C1:     p.C1 + step[0],
					C2:     p.C2 + step[1],
					Lambda: p.Lambda + step[2],
				}
				tr, tjac, err := eq.Linearize(trial)
				evals++
				if err == nil && tr.Norm() < cost {
					p, r, jac, cost = trial, tr, tjac, tr.Norm()
					damping = max(damping/10, minDamping)
					lastErr = nil
					break
				}
				lastErr = err
			}
			damping *= 10
			if damping > maxDamping {
				return fail(p, it, cost, lastErr)
			}
		}
	}
}

// normalEquations returns JᵀJ and the gradient Jᵀr of ½‖r‖².
func normalEquations(jac Jacobian, r Residuals) (jtj [3][3]float64, grad [3]float64) {
	for i := range 3 {
		for j := range 3 {
			for k := range 3 {
				jtj[i][j] += jac[k][i] * jac[k][j]
			}
		}
		for k := range 3 {
			grad[i] += jac[k][i] * r[k]
		}
	}
	return jtj, grad
}

// dampedStep solves (JᵀJ + μ D) δ = -Jᵀr, where D is the diagonal of JᵀJ. It
// returns false if the damped matrix isn't positive definite.
func dampedStep(jtj [3][3]float64, grad [3]float64, damping float64) ([3]float64, bool) {
	a := mat.NewSymDense(3, nil)
	for i := range 3 {
		for j := i; j < 3; j++ {
			a.SetSym(i, j, jtj[i][j])
		}
		a.SetSym(i, i, jtj[i][i]+damping*max(jtj[i][i], minScale))
	}
	var chol mat.Cholesky
	if !chol.Factorize(a) {
		return [3]float64{}, false
	}
	b := mat.NewVecDense(3, []float64{-grad[0], -grad[1], -grad[2]})
	var x mat.VecDense
	if err := chol.SolveVecTo(&x, b); err != nil {
		// An ill-conditioned system still yields a usable step; the
		// residual test decides whether it gets accepted.
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return [3]float64{}, false
		}
	}
	step := [3]float64{x.AtVec(0), x.AtVec(1), x.AtVec(2)}
	if !isFinite(step[0]) || !isFinite(step[1]) || !isFinite(step[2]) {
		return [3]float64{}, false
	}
	return step, true
}

func minimizeBFGS(eq Equations, guess Params, opts Options) (Result, error) {
	var evals int
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			evals++
			r, err := eq.Residuals(paramsFromVec(x))
			if err != nil {
				return math.Inf(1)
			}
			return 0.5 * (r[0]*r[0] + r[1]*r[1] + r[2]*r[2])
		},
		Grad: func(grad, x []float64) {
			evals++
			r, jac, err := eq.Linearize(paramsFromVec(x))
			if err != nil {
				for i := range grad {
					grad[i] = math.NaN()
				}
				return
			}
			_, g := normalEquations(jac, r)
			copy(grad, g[:])
		},
	}
	settings := &optimize.Settings{
		MajorIterations:   opts.MaxIterations,
		GradientThreshold: opts.Tolerance * 1e-2,
		// Only stop early if the objective stops decreasing altogether.
		Converger: &optimize.FunctionConverge{Iterations: opts.MaxIterations},
	}

	// Minimize reports failures such as stalled line searches as errors, but
	// whatever location it reached may still satisfy the tolerance. The
	// residual check below is authoritative. Overflows at trial points of the
	// line search are not a cause of failure unless the final iterate itself
	// can't be evaluated.
	res, _ := optimize.Minimize(problem, guess.vec(), settings, &optimize.BFGS{})
	p, iterations := guess, 0
	if res != nil {
		p, iterations = paramsFromVec(res.X), res.Stats.MajorIterations
	}
	r, err := eq.Residuals(p)
	evals++
	if err != nil {
		return Result{}, &ConvergenceError{Method: BFGS, Iterations: iterations, Residual: math.NaN(), Params: p, Err: err}
	}
	if norm := r.Norm(); norm > opts.Tolerance {
		return Result{}, &ConvergenceError{Method: BFGS, Iterations: iterations, Residual: norm, Params: p}
	}
	return Result{
		Params:      p,
		Method:      BFGS,
		Iterations:  iterations,
		Evaluations: evals,
		Residual:    r.Norm(),
	}, nil
}
