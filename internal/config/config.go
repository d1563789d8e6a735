// Package config parses and validates the command-line configuration of the
// riemann driver. Values come from flags, then RIEMANN_* environment
// variables, then defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/riemann/internal/errors"
	"github.com/agbru/riemann/internal/riemann"
)

// EnvPrefix is the prefix of every environment variable override.
const EnvPrefix = "RIEMANN_"

// Default values of the run.
const (
	DefaultA       = 0.0
	DefaultB       = 4.0
	DefaultFunc    = "square"
	DefaultAlgo    = "all"
	DefaultTimeout = 5 * time.Minute
)

var logLevels = []string{"trace", "debug", "info", "warn", "error", "disabled"}

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// A and B are the bounds of integration. A may exceed B.
	A, B float64
	// N is the number of rectangles.
	N int
	// Threads is the worker count of the parallel accumulator; 0 selects one
	// worker per logical CPU.
	Threads int
	// Func is the name of the integrand.
	Func string
	// Algo selects the calculators: "all" or a registered name.
	Algo string
	// Timeout bounds the whole run.
	Timeout time.Duration
	// Quiet prints only the result.
	Quiet bool
	// Verbose adds host information and resource usage to the report.
	Verbose bool
	// NoColor disables ANSI colors.
	NoColor bool
	// OutputFile, when set, receives the result as text, JSON or YAML
	// depending on its extension.
	OutputFile string
	// MetricsOut, when set, receives the Prometheus text exposition of the run.
	MetricsOut string
	// TUI runs the interactive dashboard instead of the console report.
	TUI bool
	// LogLevel is the level of the diagnostic log written to stderr.
	LogLevel string
	// List prints the available integrands and exits.
	List bool
	// ShowVersion prints the build information and exits.
	ShowVersion bool
}

// ParseConfig parses args (without the program name) into an AppConfig and
// validates it. A -h/-help request yields flag.ErrHelp.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableAlgos, availableFuncs []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)
	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [flags]\n\n", programName)
		fmt.Fprintf(errWriter, "Estimates the integral of f over [a, b] with a Left Riemann Sum,\n")
		fmt.Fprintf(errWriter, "timing a parallel and a serial accumulator.\n\nFlags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(errWriter, "\nEvery flag can also be set through %s<NAME> (e.g. %sN=1000).\n", EnvPrefix, EnvPrefix)
	}

	cfg := AppConfig{}
	fs.Float64Var(&cfg.A, "a", DefaultA, "Lower bound of integration.")
	fs.Float64Var(&cfg.B, "b", DefaultB, "Upper bound of integration.")
	fs.IntVar(&cfg.N, "n", riemann.DefaultPartitions, "Number of rectangles.")
	fs.IntVar(&cfg.Threads, "threads", riemann.DefaultThreads, "Workers of the parallel accumulator (0 = one per logical CPU).")
	fs.StringVar(&cfg.Func, "func", DefaultFunc, fmt.Sprintf("Integrand (%s).", strings.Join(availableFuncs, ", ")))
	fs.StringVar(&cfg.Func, "f", DefaultFunc, "Shorthand for -func.")
	fs.StringVar(&cfg.Algo, "algo", DefaultAlgo, fmt.Sprintf("Calculators to run ('all' or %s).", strings.Join(availableAlgos, ", ")))
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Maximum duration of the run.")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Print only the result.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Shorthand for -quiet.")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Show host details and resource usage.")
	fs.BoolVar(&cfg.Verbose, "v", false, "Shorthand for -verbose.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&cfg.OutputFile, "output", "", "Write the result to a file (.json, .yaml/.yml or text).")
	fs.StringVar(&cfg.OutputFile, "o", "", "Shorthand for -output.")
	fs.StringVar(&cfg.MetricsOut, "metrics-out", "", "Write Prometheus metrics of the run to a textfile.")
	fs.BoolVar(&cfg.TUI, "tui", false, "Show an interactive dashboard during the run.")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", fmt.Sprintf("Diagnostic log level (%s).", strings.Join(logLevels, ", ")))
	fs.BoolVar(&cfg.List, "list", false, "List the available integrands and exit.")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Print version information and exit.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %v", fs.Args())
	}

	applyEnvOverrides(&cfg, fs)

	if err := cfg.Validate(availableAlgos, availableFuncs); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks the semantic consistency of the configuration.
func (c AppConfig) Validate(availableAlgos, availableFuncs []string) error {
	if c.N <= 0 {
		return apperrors.NewConfigError("-n must be positive, got %d", c.N)
	}
	if c.Threads < 0 {
		return apperrors.NewConfigError("-threads must not be negative, got %d", c.Threads)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("-timeout must be positive, got %s", c.Timeout)
	}
	for _, bound := range []float64{c.A, c.B} {
		if math.IsNaN(bound) || math.IsInf(bound, 0) {
			return apperrors.NewConfigError("bounds must be finite, got [%g, %g]", c.A, c.B)
		}
	}
	if c.Algo != "all" && !slices.Contains(availableAlgos, c.Algo) {
		return apperrors.NewConfigError("unknown algorithm %q (available: all, %s)", c.Algo, strings.Join(availableAlgos, ", "))
	}
	if !slices.Contains(availableFuncs, c.Func) {
		return apperrors.NewConfigError("unknown integrand %q (available: %s)", c.Func, strings.Join(availableFuncs, ", "))
	}
	if !slices.Contains(logLevels, strings.ToLower(c.LogLevel)) {
		return apperrors.NewConfigError("unknown log level %q", c.LogLevel)
	}
	if c.Quiet && c.Verbose {
		return apperrors.NewConfigError("-quiet and -verbose are mutually exclusive")
	}
	if c.Quiet && c.TUI {
		return apperrors.NewConfigError("-quiet and -tui are mutually exclusive")
	}
	return nil
}
