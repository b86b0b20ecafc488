package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honnef.co/go/catenary"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, catenary.Boundary{A: 1, Y0: 4, Y1: 5}, cfg.BoundaryCondition())
	assert.Equal(t, catenary.Params{C1: 0, C2: 0, Lambda: 1}, cfg.InitialGuess())
	assert.Equal(t, 5.0, cfg.Length)

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Equal(t, catenary.DefaultOptions, opts)
}

func TestParse_OverridesDefaults(t *testing.T) {
	data := []byte(`
boundary:
  a: 2
  y0: 1
  y1: 3
length: 10
solver:
  method: bfgs
  tolerance: 1.0e-8
output:
  format: json
`)
	cfg, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, catenary.Boundary{A: 2, Y0: 1, Y1: 3}, cfg.BoundaryCondition())
	assert.Equal(t, 10.0, cfg.Length)
	assert.Equal(t, FormatJSON, cfg.Output.Format)
	// Untouched fields keep their defaults.
	assert.Equal(t, 100, cfg.Output.Samples)
	assert.Equal(t, Default().Guess, cfg.Guess)

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Equal(t, catenary.BFGS, opts.Method)
	assert.InDelta(t, 1e-8, opts.Tolerance, 1e-20)
	assert.Equal(t, catenary.DefaultOptions.MaxIterations, opts.MaxIterations)
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_Invalid(t *testing.T) {
	cases := []struct {
		name  string
		input string
		field string
	}{
		{"zero half-width", "boundary: {a: 0}", "boundary.a"},
		{"negative length", "length: -1", "length"},
		{"unknown method", "solver: {method: newton}", "solver.method"},
		{"unknown format", "output: {format: png}", "output.format"},
		{"negative samples", "output: {samples: -3}", "output.samples"},
		{"precision too high", "output: {precision: 40}", "output.precision"},
		{"unknown key", "lenght: 5", "lenght"},
		{"malformed", "boundary: [1, 2", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse([]byte(c.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			if c.field != "" {
				assert.Contains(t, err.Error(), c.field)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "fit.yaml")
	require.NoError(t, os.WriteFile(p, []byte("length: 7\n"), 0o644))

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 7.0, cfg.Length)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOptions_UnknownMethod(t *testing.T) {
	cfg := Default()
	cfg.Solver.Method = "simplex"
	_, err := cfg.Options()
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorIs(t, err, catenary.ErrInvalidInput)
}
