package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/riemann/internal/config"
	"github.com/agbru/riemann/internal/format"
	"github.com/agbru/riemann/internal/riemann"
	"github.com/agbru/riemann/internal/sysmon"
	"github.com/agbru/riemann/internal/ui"
)

// PrintExecutionConfig displays the problem and the environment of the run.
// Host details are added in verbose mode.
//
// Parameters:
//   - cfg: The application configuration.
//   - f: The selected integrand.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, f riemann.NamedIntegrand, out io.Writer) {
	fmt.Fprintf(out, "%s\n", ui.Title("Execution Configuration"))
	fmt.Fprintf(out, "Integrating %sf(x) = %s%s over %s[%g, %g]%s with %s%s%s rectangles, timeout %s%s%s.\n",
		ui.ColorMagenta(), f.Formula, ui.ColorReset(),
		ui.ColorMagenta(), cfg.A, cfg.B, ui.ColorReset(),
		ui.ColorMagenta(), format.FormatCount(cfg.N), ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, %s%d%s worker threads, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(),
		ui.ColorCyan(), cfg.Threads, ui.ColorReset(),
		ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	if cfg.Verbose {
		PrintHostInfo(sysmon.Host(), out)
	}
}

// PrintHostInfo displays static host information.
func PrintHostInfo(h sysmon.HostInfo, out io.Writer) {
	model := h.CPUModel
	if model == "" {
		model = "unknown CPU"
	}
	fmt.Fprintf(out, "Host: %s (%d cores, %d threads), %s RAM, SIMD: %s.\n",
		model, h.PhysicalCores, h.LogicalCPUs, formatBytes(h.TotalMemory), config.CPUFeatures())
}

// PrintExecutionMode displays whether calculators are compared or a single
// one runs.
//
// Parameters:
//   - calculators: The calculators that will be executed.
//   - out: The writer for standard output.
func PrintExecutionMode(calculators []riemann.Calculator, out io.Writer) {
	var modeDesc string
	if len(calculators) > 1 {
		modeDesc = "Back-to-back comparison of"
		for i, c := range calculators {
			sep := ","
			if i == 0 {
				sep = ""
			} else if i == len(calculators)-1 {
				sep = " and"
			}
			modeDesc += fmt.Sprintf("%s %s%s%s", sep, ui.ColorGreen(), c.Name(), ui.ColorReset())
		}
	} else {
		modeDesc = fmt.Sprintf("Single calculation with the %s%s%s accumulator",
			ui.ColorGreen(), calculators[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n%s\n", ui.Title("Starting Execution"))
}

// PrintResourceSummary displays the peak system usage and GC activity
// observed during the run.
func PrintResourceSummary(s sysmon.Summary, gcCycles uint32, heapAlloc uint64, out io.Writer) {
	fmt.Fprintf(out, "\n%s\n", ui.Title("Resources"))
	fmt.Fprintf(out, "Peak CPU: %.1f%%  Peak memory: %.1f%%  (%d samples)\n",
		s.PeakCPUPercent, s.PeakMemPercent, s.Samples)
	fmt.Fprintf(out, "Heap in use: %s  GC cycles: %d\n", formatBytes(heapAlloc), gcCycles)
}

func formatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
