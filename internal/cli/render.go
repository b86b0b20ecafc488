package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"honnef.co/go/catenary"
	"honnef.co/go/catenary/internal/config"
)

type point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type params struct {
	C1     float64 `json:"c1"`
	C2     float64 `json:"c2"`
	Lambda float64 `json:"lambda"`
}

type boundary struct {
	A  float64 `json:"a"`
	Y0 float64 `json:"y0"`
	Y1 float64 `json:"y1"`
}

type bounds struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

type report struct {
	Boundary    boundary `json:"boundary"`
	Length      float64  `json:"length"`
	Params      params   `json:"params"`
	Method      string   `json:"method"`
	Iterations  int      `json:"iterations"`
	Evaluations int      `json:"evaluations"`
	Residual    float64  `json:"residual"`
	Arclen      float64  `json:"arclen"`
	Vertex      *point   `json:"vertex,omitempty"`
	Bounds      bounds   `json:"bounds"`
	Midpoint    point    `json:"midpoint"` // halfway by arc length
	Samples     []point  `json:"samples"`

	curve catenary.Curve
}

func newReport(c catenary.Curve, res catenary.Result, samples int, accuracy float64) (report, error) {
	l, err := c.Arclen(accuracy)
	if err != nil {
		return report{}, fmt.Errorf("measuring fitted curve: %w", err)
	}
	rep := report{
		Boundary:    boundary{A: c.Boundary.A, Y0: c.Boundary.Y0, Y1: c.Boundary.Y1},
		Length:      c.Length,
		Params:      params{C1: c.C1, C2: c.C2, Lambda: c.Lambda},
		Method:      res.Method.String(),
		Iterations:  res.Iterations,
		Evaluations: res.Evaluations,
		Residual:    res.Residual,
		Arclen:      l,
		Bounds:      newBounds(c.BoundingBox()),
		Samples:     make([]point, 0, samples),
		curve:       c,
	}
	mid, err := c.SolveForArclen(l/2, accuracy)
	if err != nil {
		return report{}, fmt.Errorf("locating midpoint: %w", err)
	}
	rep.Midpoint = point{X: mid, Y: c.Eval(mid)}
	if v, ok := c.Vertex(); ok {
		rep.Vertex = &point{X: v.X, Y: v.Y}
	}
	for pt := range c.Points(samples) {
		rep.Samples = append(rep.Samples, point{X: pt.X, Y: pt.Y})
	}
	return rep, nil
}

func newBounds(r catenary.Rect) bounds {
	return bounds{MinX: r.X0, MinY: r.Y0, MaxX: r.X1, MaxY: r.Y1}
}

func writeReport(w io.Writer, rep report, out config.Output) error {
	switch out.Format {
	case config.FormatTable, "":
		return writeTable(w, rep, out.Precision)
	case config.FormatCSV:
		return writeCSV(w, rep.Samples, out.Precision)
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case config.FormatSVG:
		return writeSVGDocument(w, rep, out)
	default:
		return fmt.Errorf("unsupported format %q (expected table|csv|json|svg)", out.Format)
	}
}

func formatFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

func writeTable(w io.Writer, rep report, prec int) error {
	r := lipgloss.NewRenderer(w)
	title := r.NewStyle().Bold(true)
	faint := r.NewStyle().Faint(true)

	var err error
	printf := func(format string, args ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, format, args...)
	}
	row := func(k, v string) {
		printf("%s %s\n", faint.Render(fmt.Sprintf("%-12s", k)), v)
	}

	printf("%s\n", title.Render("Fitted curve y = C1 cosh(x + C2) - λ"))
	row("Domain", fmt.Sprintf("[%g, %g]", -rep.Boundary.A, rep.Boundary.A))
	row("Endpoints", fmt.Sprintf("y0=%g y1=%g", rep.Boundary.Y0, rep.Boundary.Y1))
	row("Length", fmt.Sprintf("%g (measured %s)", rep.Length, formatFloat(rep.Arclen, prec)))
	row("Method", rep.Method)
	row("Iterations", strconv.Itoa(rep.Iterations))
	row("Residual", fmt.Sprintf("%.3g", rep.Residual))
	row("C1", formatFloat(rep.Params.C1, prec))
	row("C2", formatFloat(rep.Params.C2, prec))
	row("λ", formatFloat(rep.Params.Lambda, prec))
	if rep.Vertex != nil {
		row("Vertex", fmt.Sprintf("(%s, %s)", formatFloat(rep.Vertex.X, prec), formatFloat(rep.Vertex.Y, prec)))
	}
	row("Midpoint", fmt.Sprintf("(%s, %s)", formatFloat(rep.Midpoint.X, prec), formatFloat(rep.Midpoint.Y, prec)))
	row("Range y", fmt.Sprintf("[%s, %s]", formatFloat(rep.Bounds.MinY, prec), formatFloat(rep.Bounds.MaxY, prec)))
	if len(rep.Samples) == 0 {
		return err
	}

	width := prec + 6
	printf("\n%s\n", title.Render(fmt.Sprintf("%*s  %*s", width, "x", width, "y")))
	for _, pt := range rep.Samples {
		printf("%*s  %*s\n", width, formatFloat(pt.X, prec), width, formatFloat(pt.Y, prec))
	}
	return err
}

func writeCSV(w io.Writer, pts []point, prec int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x", "y"}); err != nil {
		return err
	}
	for _, pt := range pts {
		if err := cw.Write([]string{formatFloat(pt.X, prec), formatFloat(pt.Y, prec)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeSVGDocument draws the fitted curve and its boundary points as a
// standalone SVG document.
func writeSVGDocument(w io.Writer, rep report, out config.Output) error {
	c := rep.curve
	samples := out.Samples
	if samples < 2 {
		samples = catenary.DefaultSVGSamples
	}

	// SVG is y-down.
	bb := c.BoundingBox().FlipY()
	if bb.IsInf() || bb.IsNaN() {
		return fmt.Errorf("%w: curve extent %v can't be drawn", catenary.ErrOverflow, bb)
	}
	size := max(bb.Width(), bb.Height())
	pad := 0.05 * size
	stroke := 0.005 * size
	view := bb.Inflate(pad, pad)

	format := func(v float64) string {
		return strconv.FormatFloat(v, 'g', 6, 64)
	}
	if _, err := fmt.Fprintf(w, `<svg viewBox="%s %s %s %s" xmlns="http://www.w3.org/2000/svg">`+"\n",
		format(view.X0), format(view.Y0), format(view.Width()), format(view.Height())); err != nil {
		return err
	}
	if _, err := fmt.Fprint(w, `<path d="`); err != nil {
		return err
	}
	if err := c.WriteSVG(w, catenary.SVGOptions{
		MaxPrecision: out.Precision,
		Samples:      samples,
		FlipY:        true,
	}); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, `" fill="none" stroke="black" stroke-width="%s" />`+"\n", format(stroke)); err != nil {
		return err
	}
	for _, pt := range []catenary.Point{c.Boundary.Start(), c.Boundary.End()} {
		if _, err := fmt.Fprintf(w, `<circle cx="%s" cy="%s" r="%s" fill="red" />`+"\n",
			format(pt.X), format(-pt.Y), format(2*stroke)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "</svg>")
	return err
}
