package catenary_test

import (
	"errors"
	"fmt"

	"honnef.co/go/catenary"
)

func ExampleSolve() {
	b := catenary.Boundary{A: 1, Y0: 4, Y1: 5}
	p, err := catenary.Solve(b, 5, catenary.Params{C1: 0, C2: 0, Lambda: 1})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("C1=%.6f C2=%.6f λ=%.6f\n", p.C1, p.C2, p.Lambda)
	ys := catenary.Evaluate(p, []float64{-1, 1})
	fmt.Printf("y(-1)=%.6f y(1)=%.6f\n", ys[0], ys[1])
	// Output:
	// C1=3.956169 C2=0.107337 λ=1.639889
	// y(-1)=4.000000 y(1)=5.000000
}

func ExampleSolve_infeasible() {
	b := catenary.Boundary{A: 1, Y0: 4, Y1: 5}
	_, err := catenary.Solve(b, 2, catenary.Params{C1: 0, C2: 0, Lambda: 1})
	fmt.Println(errors.Is(err, catenary.ErrInfeasibleTarget))
	// Output:
	// true
}

func ExampleCurve_SVG() {
	c, err := catenary.Fit(catenary.Boundary{A: 1, Y0: 1, Y1: 1}, 2.5, catenary.Params{C1: 1})
	if err != nil {
		fmt.Println(err)
		return
	}
	// We negate y because SVG's coordinate system is y-down.
	fmt.Println(c.SVG(catenary.SVGOptions{Samples: 5, MaxPrecision: 3, FlipY: true}))
	// Output:
	// M-1,-1 L-0.5,-0.49 L0,-0.333 L0.5,-0.49 L1,-1
}
