// Package config loads fit jobs from YAML files.
//
// A job describes one fit: boundary conditions, target arc length, initial
// guess, solver settings and how to print the result. Fields missing from a
// file keep the values of [Default], which reproduce the classic example
// a = 1, y0 = 4, y1 = 5, L = 5 with the initial guess (0, 0, 1).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"honnef.co/go/catenary"
)

// ErrInvalidConfig is matched by every parse and validation error.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Output formats.
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatJSON  = "json"
	FormatSVG   = "svg"
)

// Config is one fit job.
type Config struct {
	Boundary Boundary `yaml:"boundary"`
	Length   float64  `yaml:"length" validate:"gt=0"`
	Guess    Guess    `yaml:"guess"`
	Solver   Solver   `yaml:"solver"`
	Output   Output   `yaml:"output"`
}

// Boundary holds the half-width of the domain and the ordinates at its ends.
type Boundary struct {
	A  float64 `yaml:"a" validate:"gt=0"`
	Y0 float64 `yaml:"y0"`
	Y1 float64 `yaml:"y1"`
}

// Guess is the starting point of the solver.
type Guess struct {
	C1     float64 `yaml:"c1"`
	C2     float64 `yaml:"c2"`
	Lambda float64 `yaml:"lambda"`
}

// Solver selects the method and its limits. Zero values select the library
// defaults.
type Solver struct {
	Method        string  `yaml:"method" validate:"omitempty,oneof=lm levenberg-marquardt bfgs"`
	Tolerance     float64 `yaml:"tolerance" validate:"gte=0"`
	MaxIterations int     `yaml:"max_iterations" validate:"gte=0"`
	Accuracy      float64 `yaml:"accuracy" validate:"gte=0"`
}

// Output controls how the fitted curve is printed.
type Output struct {
	// Samples is the number of evenly spaced points printed.
	Samples   int    `yaml:"samples" validate:"gte=0,lte=1000000"`
	Format    string `yaml:"format" validate:"oneof=table csv json svg"`
	Precision int    `yaml:"precision" validate:"gte=0,lte=17"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Boundary: Boundary{A: 1, Y0: 4, Y1: 5},
		Length:   5,
		Guess:    Guess{C1: 0, C2: 0, Lambda: 1},
		Solver: Solver{
			Method:        "lm",
			Tolerance:     catenary.DefaultOptions.Tolerance,
			MaxIterations: catenary.DefaultOptions.MaxIterations,
			Accuracy:      catenary.DefaultOptions.Accuracy,
		},
		Output: Output{
			Samples:   100,
			Format:    FormatTable,
			Precision: 6,
		},
	}
}

// Load reads and validates the configuration at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of [Default] and validates the result. Unknown
// keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their YAML names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks field constraints. The returned error matches
// [ErrInvalidConfig] and names every offending field.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		_, field, _ := strings.Cut(fe.Namespace(), ".")
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s, got %v", field, fe.Tag(), fe.Param(), fe.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s, got %v", field, fe.Tag(), fe.Value()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

// BoundaryCondition converts the boundary settings.
func (c Config) BoundaryCondition() catenary.Boundary {
	return catenary.Boundary{A: c.Boundary.A, Y0: c.Boundary.Y0, Y1: c.Boundary.Y1}
}

// InitialGuess converts the guess settings.
func (c Config) InitialGuess() catenary.Params {
	return catenary.Params{C1: c.Guess.C1, C2: c.Guess.C2, Lambda: c.Guess.Lambda}
}

// Options converts the solver settings. Zero values select the library
// defaults.
func (c Config) Options() (catenary.Options, error) {
	m, err := catenary.ParseMethod(c.Solver.Method)
	if err != nil {
		return catenary.Options{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return catenary.Options{
		Method:        m,
		Tolerance:     c.Solver.Tolerance,
		MaxIterations: c.Solver.MaxIterations,
		Accuracy:      c.Solver.Accuracy,
	}, nil
}
