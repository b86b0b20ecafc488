package catenary

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DefaultSVGSamples is the number of points used to draw a curve as SVG when
// SVGOptions.Samples is zero.
const DefaultSVGSamples = 100

// SVGOptions specifies optional settings for [Curve.SVG] and [Curve.WriteSVG].
type SVGOptions struct {
	// The maximum precision with which to format coordinates. A value of 0
	// chooses the highest precision necessary to unambiguously represent any
	// given coordinate.
	MaxPrecision int
	// Samples is the number of points of the polyline.
	Samples int
	// FlipY negates y coordinates, for SVG's y-down coordinate system.
	FlipY bool
}

// SVG converts the curve to a string of SVG path commands.
//
// See [Curve.WriteSVG] for a version that writes to an [io.Writer] instead of
// returning a string.
func (c Curve) SVG(opts SVGOptions) string {
	sb := &strings.Builder{}
	c.WriteSVG(sb, opts)
	return sb.String()
}

// WriteSVG writes the curve as SVG path commands to w. The curve is drawn as
// a polyline through evenly spaced samples.
func (c Curve) WriteSVG(w io.Writer, opts SVGOptions) error {
	n := opts.Samples
	if n <= 0 {
		n = DefaultSVGSamples
	}
	var err error
	writef := func(s string, v ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, s, v...)
	}
	format := func(n float64) string {
		maxPrec := opts.MaxPrecision
		if maxPrec <= 0 {
			return strconv.FormatFloat(n, 'f', -1, 64)
		} else {
			s := strconv.FormatFloat(n, 'f', maxPrec, 64)
			s = strings.TrimRight(s, "0")
			return strings.TrimSuffix(s, ".")
		}
	}
	first := true
	for pt := range c.Points(n) {
		if err != nil {
			return err
		}
		y := pt.Y
		if opts.FlipY {
			y = -y
		}
		if first {
			writef("M%s,%s", format(pt.X), format(y))
			first = false
		} else {
			writef(" L%s,%s", format(pt.X), format(y))
		}
	}
	return err
}
