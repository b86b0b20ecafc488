package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"honnef.co/go/catenary"
	"honnef.co/go/catenary/internal/config"
)

type fitFlags struct {
	configPath string

	a      float64
	y0     float64
	y1     float64
	length float64
	guess  []float64

	method        string
	tolerance     float64
	maxIterations int
	accuracy      float64

	samples   int
	format    string
	precision int
}

func fitCmd(root *rootOptions) *cobra.Command {
	var f fitFlags

	c := &cobra.Command{
		Use:   "fit",
		Short: "Fit a curve through (-a, y0) and (a, y1) with arc length L",
		Long: `Fit solves for (C1, C2, λ) such that y(x) = C1 cosh(x + C2) - λ passes
through (-a, y0) and (a, y1) and has the requested arc length over [-a, a].

Settings are read from --config, if given, and then overridden by flags.
Without either, the example a=1, y0=4, y1=5, L=5 with guess 0,0,1 is solved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveFitConfig(cmd.Flags(), f)
			if err != nil {
				return err
			}
			opts, err := cfg.Options()
			if err != nil {
				return err
			}

			b := cfg.BoundaryCondition()
			guess := cfg.InitialGuess()
			log := root.logger.With(
				slog.String("boundary", b.String()),
				slog.Float64("length", cfg.Length),
			)
			log.Debug("solving",
				slog.String("method", opts.Method.String()),
				slog.String("guess", guess.String()),
				slog.Float64("chord", b.Chord()),
			)

			curve, res, err := catenary.FitOpt(b, cfg.Length, guess, opts)
			if err != nil {
				logFitError(log, err)
				return err
			}
			log.Info("fit converged",
				slog.String("params", res.Params.String()),
				slog.Int("iterations", res.Iterations),
				slog.Int("evaluations", res.Evaluations),
				slog.Float64("residual", res.Residual),
			)

			rep, err := newReport(curve, res, cfg.Output.Samples, opts.Accuracy)
			if err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), rep, cfg.Output)
		},
	}

	fl := c.Flags()
	fl.StringVarP(&f.configPath, "config", "c", "", "YAML fit job (optional)")
	fl.Float64Var(&f.a, "a", 0, "half-width of the domain [-a, a]")
	fl.Float64Var(&f.y0, "y0", 0, "ordinate at x = -a")
	fl.Float64Var(&f.y1, "y1", 0, "ordinate at x = a")
	fl.Float64VarP(&f.length, "length", "L", 0, "target arc length")
	fl.Float64SliceVar(&f.guess, "guess", nil, "initial guess c1,c2,lambda")
	fl.StringVar(&f.method, "method", "", "solver method (lm|bfgs)")
	fl.Float64Var(&f.tolerance, "tolerance", 0, "largest accepted residual norm")
	fl.IntVar(&f.maxIterations, "max-iterations", 0, "iteration budget")
	fl.Float64Var(&f.accuracy, "accuracy", 0, "absolute accuracy of arc length integrals")
	fl.IntVarP(&f.samples, "samples", "n", 0, "number of points to print")
	fl.StringVarP(&f.format, "format", "f", "", "output format (table|csv|json|svg)")
	fl.IntVar(&f.precision, "precision", 0, "digits after the decimal point")
	return c
}

// resolveFitConfig loads the config file, if any, and applies the flags that
// were set explicitly.
func resolveFitConfig(fl *pflag.FlagSet, f fitFlags) (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		cfg, err = config.Load(f.configPath)
		if err != nil {
			return config.Config{}, err
		}
	}

	set := func(name string, apply func()) {
		if fl.Changed(name) {
			apply()
		}
	}
	set("a", func() { cfg.Boundary.A = f.a })
	set("y0", func() { cfg.Boundary.Y0 = f.y0 })
	set("y1", func() { cfg.Boundary.Y1 = f.y1 })
	set("length", func() { cfg.Length = f.length })
	set("method", func() { cfg.Solver.Method = f.method })
	set("tolerance", func() { cfg.Solver.Tolerance = f.tolerance })
	set("max-iterations", func() { cfg.Solver.MaxIterations = f.maxIterations })
	set("accuracy", func() { cfg.Solver.Accuracy = f.accuracy })
	set("samples", func() { cfg.Output.Samples = f.samples })
	set("format", func() { cfg.Output.Format = f.format })
	set("precision", func() { cfg.Output.Precision = f.precision })
	if fl.Changed("guess") {
		if len(f.guess) != 3 {
			return config.Config{}, fmt.Errorf("--guess needs 3 values (c1,c2,lambda), got %d", len(f.guess))
		}
		cfg.Guess = config.Guess{C1: f.guess[0], C2: f.guess[1], Lambda: f.guess[2]}
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// errorKind classifies solve errors for logging.
func errorKind(err error) string {
	switch {
	case errors.Is(err, catenary.ErrInvalidInput):
		return "invalid-input"
	case errors.Is(err, catenary.ErrInfeasibleTarget):
		return "infeasible"
	case errors.Is(err, catenary.ErrDegenerateTarget):
		return "degenerate"
	case errors.Is(err, catenary.ErrOverflow):
		return "overflow"
	case errors.Is(err, catenary.ErrNonConvergence):
		return "non-convergence"
	default:
		return "unknown"
	}
}

func logFitError(log *slog.Logger, err error) {
	attrs := []any{
		slog.String("kind", errorKind(err)),
		slog.String("error", err.Error()),
	}
	var cerr *catenary.ConvergenceError
	if errors.As(err, &cerr) {
		attrs = append(attrs,
			slog.String("method", cerr.Method.String()),
			slog.Int("iterations", cerr.Iterations),
			slog.Float64("residual", cerr.Residual),
			slog.String("last", cerr.Params.String()),
		)
	}
	log.Error("fit failed", attrs...)
}
