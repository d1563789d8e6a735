package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/agbru/riemann/internal/errors"
	"github.com/agbru/riemann/internal/format"
	"github.com/agbru/riemann/internal/orchestration"
	"github.com/agbru/riemann/internal/ui"
)

// NewProgressReporter returns the console progress reporter: a spinner with
// an aggregated progress bar.
func NewProgressReporter() orchestration.ProgressReporter {
	return orchestration.ProgressReporterFunc(DisplayProgress)
}

// CLIColorProvider implements apperrors.ColorProvider with the active theme.
type CLIColorProvider struct{}

var _ apperrors.ColorProvider = CLIColorProvider{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

// CLIResultPresenter implements the presentation interfaces of the
// orchestration layer for console output.
type CLIResultPresenter struct{}

var (
	_ orchestration.ResultPresenter = CLIResultPresenter{}
	_ orchestration.ErrorHandler    = CLIResultPresenter{}
)

// PresentComparisonTable displays one row per calculator with its result,
// duration and status, followed by the speedup of the fastest run over the
// slowest one. Padding is computed on the plain text so that ANSI codes do not
// break the alignment.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.CalculationResult, out io.Writer) {
	fmt.Fprintf(out, "\n%s\n", ui.Title("Comparison Summary"))

	rows := make([][3]string, len(results))
	widths := [3]int{len("Calculator"), len("Result"), len("Duration")}
	for i, res := range results {
		value := "-"
		if res.Err == nil {
			value = formatArea(res.Result)
		}
		rows[i] = [3]string{res.Name, value, durationCell(res.Duration)}
		for j, cell := range rows[i] {
			widths[j] = max(widths[j], len([]rune(cell)))
		}
	}

	fmt.Fprintf(out, "%sCalculator%s%s   %sResult%s%s   %sDuration%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), pad(widths[0]-len("Calculator")),
		ui.ColorUnderline(), ui.ColorReset(), pad(widths[1]-len("Result")),
		ui.ColorUnderline(), ui.ColorReset(), pad(widths[2]-len("Duration")),
		ui.ColorUnderline(), ui.ColorReset())

	for i, res := range results {
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		} else {
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
		}
		name, value, duration := rows[i][0], rows[i][1], rows[i][2]
		fmt.Fprintf(out, "%s%s%s%s   %s%s   %s%s%s%s   %s\n",
			ui.ColorBlue(), name, ui.ColorReset(), pad(widths[0]-len([]rune(name))),
			value, pad(widths[1]-len([]rune(value))),
			ui.ColorYellow(), duration, ui.ColorReset(), pad(widths[2]-len([]rune(duration))),
			status)
	}

	if fast, slow, ok := fastestAndSlowest(results); ok {
		fmt.Fprintf(out, "\n%s is %s%s%s faster than %s.\n",
			fast.Name, ui.ColorGreen(), format.FormatSpeedup(slow.Duration, fast.Duration), ui.ColorReset(), slow.Name)
	}
}

// PresentResult displays the agreed area.
func (CLIResultPresenter) PresentResult(result orchestration.CalculationResult, opts orchestration.PresentationOptions, out io.Writer) {
	DisplayResult(result, opts, out)
}

// HandleError implements orchestration.ErrorHandler.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, out, CLIColorProvider{})
}

// DisplayResult prints the area of a successful calculation.
func DisplayResult(result orchestration.CalculationResult, opts orchestration.PresentationOptions, out io.Writer) {
	fmt.Fprintf(out, "\n%s\n", ui.Title("Result"))
	fmt.Fprintf(out, "Area: %s%s%s\n", ui.ColorBold(), formatArea(result.Result), ui.ColorReset())
	if opts.Verbose {
		fmt.Fprintf(out, "Calculator:  %s\n", result.Name)
		fmt.Fprintf(out, "Rectangles:  %s\n", format.FormatCount(opts.N))
		fmt.Fprintf(out, "Tolerance:   %g\n", opts.Tolerance)
		fmt.Fprintf(out, "Time:        %s\n", format.FormatExecutionDuration(result.Duration))
	}
}

// formatArea prints an area with enough digits to tell two accumulators apart.
func formatArea(v float64) string {
	return fmt.Sprintf("%.15g", v)
}

func durationCell(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

func pad(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

// fastestAndSlowest returns the extreme successful runs when there are at
// least two of them.
func fastestAndSlowest(results []orchestration.CalculationResult) (fast, slow orchestration.CalculationResult, ok bool) {
	count := 0
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		if count == 0 || res.Duration < fast.Duration {
			fast = res
		}
		if count == 0 || res.Duration > slow.Duration {
			slow = res
		}
		count++
	}
	return fast, slow, count >= 2 && fast.Name != slow.Name
}

// QuietResultPresenter prints nothing but the agreed area on Out, and errors
// on ErrOut. The writer passed by the orchestration layer is ignored.
type QuietResultPresenter struct {
	Out    io.Writer
	ErrOut io.Writer
}

var (
	_ orchestration.ResultPresenter = QuietResultPresenter{}
	_ orchestration.ErrorHandler    = QuietResultPresenter{}
)

// PresentComparisonTable implements orchestration.ResultPresenter.
func (QuietResultPresenter) PresentComparisonTable([]orchestration.CalculationResult, io.Writer) {}

// PresentResult implements orchestration.ResultPresenter.
func (q QuietResultPresenter) PresentResult(result orchestration.CalculationResult, _ orchestration.PresentationOptions, _ io.Writer) {
	DisplayQuietResult(q.Out, result.Result)
}

// HandleError implements orchestration.ErrorHandler.
func (q QuietResultPresenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, q.ErrOut, CLIColorProvider{})
}
