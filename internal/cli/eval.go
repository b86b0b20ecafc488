package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"honnef.co/go/catenary"
	"honnef.co/go/catenary/internal/config"
)

func evalCmd(root *rootOptions) *cobra.Command {
	var p catenary.Params
	var xs []float64
	var format string
	var precision int

	c := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate y = C1 cosh(x + C2) - λ at the given x values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !p.IsFinite() {
				return fmt.Errorf("%w: parameters %v", catenary.ErrInvalidInput, p)
			}
			if precision < 0 || precision > 17 {
				return fmt.Errorf("--precision must be between 0 and 17, got %d", precision)
			}
			root.logger.Debug("evaluating", slog.String("params", p.String()), slog.Int("points", len(xs)))

			ys := catenary.Evaluate(p, xs)
			pts := make([]point, len(xs))
			for i := range xs {
				pts[i] = point{X: xs[i], Y: ys[i]}
			}

			w := cmd.OutOrStdout()
			switch format {
			case config.FormatTable, "":
				for _, pt := range pts {
					if _, err := fmt.Fprintf(w, "%s\t%s\n", formatFloat(pt.X, precision), formatFloat(pt.Y, precision)); err != nil {
						return err
					}
				}
				return nil
			case config.FormatCSV:
				return writeCSV(w, pts, precision)
			case config.FormatJSON:
				return json.NewEncoder(w).Encode(pts)
			default:
				return fmt.Errorf("unsupported format %q (expected table|csv|json)", format)
			}
		},
	}

	fl := c.Flags()
	fl.Float64Var(&p.C1, "c1", 0, "C1")
	fl.Float64Var(&p.C2, "c2", 0, "C2")
	fl.Float64Var(&p.Lambda, "lambda", 0, "λ")
	fl.Float64SliceVar(&xs, "x", nil, "x values (repeatable or comma separated)")
	fl.StringVarP(&format, "format", "f", config.FormatTable, "output format (table|csv|json)")
	fl.IntVar(&precision, "precision", 6, "digits after the decimal point")
	_ = c.MarkFlagRequired("x")
	return c
}
