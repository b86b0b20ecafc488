package catenary

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for the catenary package.
// Use errors.Is to check: errors.Is(err, catenary.ErrInfeasibleTarget)
var (
	ErrInvalidInput     = errors.New("catenary: invalid input")
	ErrInfeasibleTarget = errors.New("catenary: arc length is shorter than the chord")
	ErrDegenerateTarget = errors.New("catenary: arc length equals the chord")
	ErrNonConvergence   = errors.New("catenary: solver did not converge")
	ErrOverflow         = errors.New("catenary: numeric overflow")
)

// ConvergenceError describes a solve that ended without reaching the requested
// residual tolerance. It matches [ErrNonConvergence] as well as its cause, if
// any, such as [ErrOverflow] or [ErrDegenerateTarget].
type ConvergenceError struct {
	Method     Method
	Iterations int
	// Residual is the Euclidean norm of the residual vector at Params. It is
	// NaN if the residuals could not be evaluated.
	Residual float64
	// Params are the last accepted iterate.
	Params Params
	Err    error
}

func (e *ConvergenceError) Error() string {
	msg := fmt.Sprintf("%s: %s stopped after %d iterations", ErrNonConvergence, e.Method, e.Iterations)
	if !math.IsNaN(e.Residual) {
		msg += fmt.Sprintf(" with residual %g", e.Residual)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConvergenceError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrNonConvergence}
	}
	return []error{ErrNonConvergence, e.Err}
}
