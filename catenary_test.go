package catenary

import (
	"errors"
	"math"
	"testing"
)

func TestBoundaryChord(t *testing.T) {
	tests := []struct {
		b    Boundary
		want float64
	}{
		{Boundary{A: 1, Y0: 0, Y1: 0}, 2},
		{Boundary{A: 1, Y0: 4, Y1: 5}, math.Sqrt(5)},
		{Boundary{A: 1.5, Y0: 3, Y1: -1}, 5},
	}
	for _, tt := range tests {
		assertNear(t, tt.b.String(), tt.b.Chord(), tt.want, 1e-15)
	}
}

func TestBoundaryValidate(t *testing.T) {
	good := []Boundary{
		{A: 1, Y0: 4, Y1: 5},
		{A: 1e-3, Y0: -1, Y1: 1},
	}
	for _, b := range good {
		if err := b.Validate(); err != nil {
			t.Errorf("%v: unexpected error %v", b, err)
		}
	}
	bad := []Boundary{
		{A: 0, Y0: 0, Y1: 0},
		{A: -1, Y0: 0, Y1: 0},
		{A: math.NaN(), Y0: 0, Y1: 0},
		{A: 1, Y0: math.Inf(1), Y1: 0},
		{A: 1, Y0: 0, Y1: math.NaN()},
	}
	for _, b := range bad {
		if err := b.Validate(); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%v: got error %v, expected ErrInvalidInput", b, err)
		}
	}
}

func TestParamsEval(t *testing.T) {
	p := Params{C1: 2, C2: 0.5, Lambda: 1}
	for _, x := range []float64{-1, -0.5, 0, 0.25, 1} {
		assertNear(t, "y", p.Eval(x), 2*math.Cosh(x+0.5)-1, 1e-15)
		assertNear(t, "y'", p.Deriv(x), 2*math.Sinh(x+0.5), 1e-15)
	}
	// The turning point of the curve is at x = -C2.
	assertNear(t, "y'(-C2)", p.Deriv(-0.5), 0, 0)
	assertNear(t, "y(-C2)", p.Eval(-0.5), 1, 0)
}

func TestEvaluate(t *testing.T) {
	p := Params{C1: 1, C2: 0, Lambda: 1}
	xs := []float64{1, -1, 0, 0.5}
	got := Evaluate(p, xs)
	want := []float64{
		math.Cosh(1) - 1,
		math.Cosh(1) - 1,
		0,
		math.Cosh(0.5) - 1,
	}
	diff(t, want, got, approx(1e-15))
	// The input must not be modified.
	diff(t, []float64{1, -1, 0, 0.5}, xs)

	diff(t, []float64{}, Evaluate(p, nil))
}

func TestParamsIsFinite(t *testing.T) {
	if !(Params{1, 2, 3}).IsFinite() {
		t.Error("finite params reported as non-finite")
	}
	for _, p := range []Params{
		{math.NaN(), 0, 0},
		{0, math.Inf(-1), 0},
		{0, 0, math.Inf(1)},
	} {
		if p.IsFinite() {
			t.Errorf("%v reported as finite", p)
		}
	}
}
