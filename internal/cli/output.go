// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietResult].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteResultToFile].

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "github.com/agbru/riemann/internal/errors"
	"github.com/agbru/riemann/internal/orchestration"
)

// RunEntry is the outcome of one calculator in a Report. Area is nil exactly
// when Error is set, so a zero area stays distinguishable from a failed run.
type RunEntry struct {
	Calculator string   `json:"calculator" yaml:"calculator"`
	Area       *float64 `json:"area,omitempty" yaml:"area,omitempty"`
	DurationNs int64    `json:"duration_ns" yaml:"duration_ns"`
	Duration   string   `json:"duration" yaml:"duration"`
	Error      string   `json:"error,omitempty" yaml:"error,omitempty"`
}

// Report is the document written by WriteResultToFile.
type Report struct {
	RunID     string     `json:"run_id" yaml:"run_id"`
	Generated time.Time  `json:"generated" yaml:"generated"`
	Integrand string     `json:"integrand" yaml:"integrand"`
	Formula   string     `json:"formula" yaml:"formula"`
	A         float64    `json:"a" yaml:"a"`
	B         float64    `json:"b" yaml:"b"`
	N         int        `json:"n" yaml:"n"`
	Threads   int        `json:"threads" yaml:"threads"`
	Area      float64    `json:"area" yaml:"area"`
	Tolerance float64    `json:"tolerance" yaml:"tolerance"`
	Runs      []RunEntry `json:"runs" yaml:"runs"`
}

// NewRunEntries converts orchestration results into report entries.
func NewRunEntries(results []orchestration.CalculationResult) []RunEntry {
	entries := make([]RunEntry, len(results))
	for i, res := range results {
		entries[i] = RunEntry{
			Calculator: res.Name,
			DurationNs: res.Duration.Nanoseconds(),
			Duration:   res.Duration.String(),
		}
		if res.Err != nil {
			entries[i].Error = res.Err.Error()
		} else {
			area := res.Result
			entries[i].Area = &area
		}
	}
	return entries
}

// WriteResultToFile writes report to path. The extension selects the
// encoding: ".json" for JSON, ".yaml" or ".yml" for YAML, anything else for a
// commented text file. Missing parent directories are created. An empty path
// is a no-op.
func WriteResultToFile(report Report, path string) error {
	if path == "" {
		return nil
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.WrapError(err, "failed to create directory %s", dir)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return apperrors.WrapError(err, "failed to create output file")
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		enc := json.NewEncoder(file)
		enc.SetIndent("", "  ")
		err = enc.Encode(report)
	case ".yaml", ".yml":
		enc := yaml.NewEncoder(file)
		enc.SetIndent(2)
		err = enc.Encode(report)
		if cerr := enc.Close(); err == nil {
			err = cerr
		}
	default:
		err = writeText(file, report)
	}
	if err != nil {
		return apperrors.WrapError(err, "failed to write result to %s", path)
	}
	return nil
}

func writeText(w io.Writer, r Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# Left Riemann Sum Result\n")
	fmt.Fprintf(&b, "# Run ID: %s\n", r.RunID)
	fmt.Fprintf(&b, "# Generated: %s\n", r.Generated.Format(time.RFC3339))
	fmt.Fprintf(&b, "# Integrand: %s (%s)\n", r.Integrand, r.Formula)
	fmt.Fprintf(&b, "# Interval: [%g, %g]\n", r.A, r.B)
	fmt.Fprintf(&b, "# N: %d\n", r.N)
	fmt.Fprintf(&b, "# Threads: %d\n", r.Threads)
	fmt.Fprintf(&b, "# Tolerance: %g\n", r.Tolerance)
	for _, run := range r.Runs {
		if run.Area == nil {
			fmt.Fprintf(&b, "# %s: failed after %s: %s\n", run.Calculator, run.Duration, run.Error)
		} else {
			fmt.Fprintf(&b, "# %s: %s in %s\n", run.Calculator, FormatQuietResult(*run.Area), run.Duration)
		}
	}
	fmt.Fprintf(&b, "\nArea = %s\n", FormatQuietResult(r.Area))
	_, err := io.WriteString(w, b.String())
	return err
}

// FormatQuietResult formats an area for quiet mode: the shortest
// representation that round-trips, suitable for scripting.
func FormatQuietResult(area float64) string {
	return strconv.FormatFloat(area, 'g', -1, 64)
}

// DisplayQuietResult writes the area alone on a line.
func DisplayQuietResult(out io.Writer, area float64) {
	fmt.Fprintln(out, FormatQuietResult(area))
}
