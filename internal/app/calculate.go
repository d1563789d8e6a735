package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/agbru/riemann/internal/cli"
	apperrors "github.com/agbru/riemann/internal/errors"
	"github.com/agbru/riemann/internal/logging"
	"github.com/agbru/riemann/internal/metrics"
	"github.com/agbru/riemann/internal/orchestration"
	"github.com/agbru/riemann/internal/riemann"
	"github.com/agbru/riemann/internal/sysmon"
	"github.com/agbru/riemann/internal/tui"
	"github.com/agbru/riemann/internal/ui"
)

// monitorInterval is the sampling period of the verbose resource monitor.
const monitorInterval = 250 * time.Millisecond

// runSetup is what both the console and the dashboard runs start from.
type runSetup struct {
	integrand   riemann.NamedIntegrand
	problem     riemann.Problem
	opts        riemann.Options
	calculators []riemann.Calculator
}

// prepareRun resolves the integrand and the calculators of the run. A
// non-zero code is the exit code of a rejected configuration.
func (a *Application) prepareRun() (runSetup, int) {
	f, err := riemann.LookupIntegrand(a.Config.Func)
	if err != nil {
		return runSetup{}, apperrors.HandleCalculationError(err, 0, a.ErrWriter, cli.CLIColorProvider{})
	}
	calculators := orchestration.GetCalculatorsToRun(a.Config.Algo, a.Factory)
	if len(calculators) == 0 {
		err := apperrors.NewConfigError("no calculator matches %q", a.Config.Algo)
		return runSetup{}, apperrors.HandleCalculationError(err, 0, a.ErrWriter, cli.CLIColorProvider{})
	}
	a.Logger.Debug("run started",
		logging.String("run_id", a.RunID),
		logging.String("integrand", f.Name),
		logging.Float64("a", a.Config.A),
		logging.Float64("b", a.Config.B),
		logging.Int("n", a.Config.N),
		logging.Int("threads", a.Config.Threads),
		logging.String("algo", a.Config.Algo),
	)
	return runSetup{
		integrand:   f,
		problem:     riemann.NewProblem(f, a.Config.A, a.Config.B, a.Config.N),
		opts:        riemann.Options{Threads: a.Config.Threads},
		calculators: calculators,
	}, apperrors.ExitSuccess
}

// withLifecycle bounds ctx by the run timeout and the termination signals.
func (a *Application) withLifecycle(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	return ctx, func() {
		stopSignals()
		cancelTimeout()
	}
}

// runCalculate orchestrates the execution of the integration command.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	setup, code := a.prepareRun()
	if code != apperrors.ExitSuccess {
		return code
	}
	f, p, opts, calculatorsToRun := setup.integrand, setup.problem, setup.opts, setup.calculators

	ctx, stop := a.withLifecycle(ctx)
	defer stop()

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, f, out)
		cli.PrintExecutionMode(calculatorsToRun, out)
	}

	var progressReporter orchestration.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	} else {
		progressReporter = cli.NewProgressReporter()
	}

	memCollector := metrics.NewMemoryCollector()
	memBefore := memCollector.Snapshot()
	var monitor *sysmon.Monitor
	if a.Config.Verbose {
		monitor = sysmon.StartMonitor(ctx, monitorInterval)
	}

	results := orchestration.ExecuteCalculations(ctx, calculatorsToRun, p, opts, progressReporter, progressOut)
	orchestration.ApplyTimeoutLimit(results, a.Config.Timeout)

	memAfter := memCollector.Snapshot()
	var usage sysmon.Summary
	if monitor != nil {
		usage = monitor.Stop()
	}

	runMetrics := a.recordResults(results, p, opts, memBefore, memAfter)

	presOpts := orchestration.PresentationOptions{
		N:         p.N,
		Tolerance: p.Tolerance(),
		Verbose:   a.Config.Verbose,
	}
	exitCode := a.analyzeResults(results, presOpts, out)

	if exitCode == apperrors.ExitSuccess {
		if code := a.saveResultIfNeeded(results, f, presOpts, out); code != apperrors.ExitSuccess {
			exitCode = code
		}
	}
	if a.Config.Verbose {
		cli.PrintResourceSummary(usage, memAfter.GCSince(memBefore), memAfter.HeapAlloc, out)
	}
	a.exportMetrics(runMetrics)

	a.Logger.Debug("run finished", logging.String("run_id", a.RunID), logging.Int("exit_code", exitCode))
	return exitCode
}

// runTUI runs the calculators under the interactive dashboard. The result
// file and the metrics are written once the dashboard is closed.
func (a *Application) runTUI(ctx context.Context, out io.Writer) int {
	setup, code := a.prepareRun()
	if code != apperrors.ExitSuccess {
		return code
	}
	ctx, stop := a.withLifecycle(ctx)
	defer stop()

	memCollector := metrics.NewMemoryCollector()
	memBefore := memCollector.Snapshot()
	outcome := tui.Run(ctx, tui.Session{
		Calculators: setup.calculators,
		Problem:     setup.problem,
		Options:     setup.opts,
		Integrand:   setup.integrand.Name,
		Timeout:     a.Config.Timeout,
		Verbose:     a.Config.Verbose,
		Version:     Version,
	}, out)
	memAfter := memCollector.Snapshot()

	exitCode := outcome.ExitCode
	if outcome.Results != nil {
		runMetrics := a.recordResults(outcome.Results, setup.problem, setup.opts, memBefore, memAfter)
		if exitCode == apperrors.ExitSuccess {
			presOpts := orchestration.PresentationOptions{N: setup.problem.N, Tolerance: setup.problem.Tolerance()}
			exitCode = a.saveResultIfNeeded(outcome.Results, setup.integrand, presOpts, out)
		}
		a.exportMetrics(runMetrics)
	}
	a.Logger.Debug("run finished", logging.String("run_id", a.RunID), logging.Int("exit_code", exitCode))
	return exitCode
}

// recordResults logs every result and folds it into the run metrics.
func (a *Application) recordResults(results []orchestration.CalculationResult, p riemann.Problem, opts riemann.Options, memBefore, memAfter metrics.MemorySnapshot) *metrics.RunMetrics {
	runMetrics := metrics.NewRunMetrics()
	runMetrics.SetProblem(p.N, opts.Threads)
	runMetrics.RecordMemory(memBefore, memAfter)
	for _, res := range results {
		runMetrics.ObserveCalculation(res.Name, res.Duration, res.Err)
		if res.Err != nil {
			a.Logger.Error("calculation failed", res.Err,
				logging.String("run_id", a.RunID), logging.String("calculator", res.Name), logging.Duration("duration", res.Duration))
			continue
		}
		a.Logger.Debug("calculation finished",
			logging.String("run_id", a.RunID),
			logging.String("calculator", res.Name),
			logging.Float64("area", res.Result),
			logging.Duration("duration", res.Duration),
		)
	}
	return runMetrics
}

// analyzeResults compares the results and prints the report, or only the
// area in quiet mode.
func (a *Application) analyzeResults(results []orchestration.CalculationResult, presOpts orchestration.PresentationOptions, out io.Writer) int {
	if a.Config.Quiet {
		q := cli.QuietResultPresenter{Out: out, ErrOut: a.ErrWriter}
		code := orchestration.AnalyzeComparisonResults(results, presOpts, q, q, io.Discard)
		if code == apperrors.ExitErrorMismatch {
			fmt.Fprintf(a.ErrWriter, "results disagree beyond tolerance %g\n", presOpts.Tolerance)
		}
		return code
	}
	presenter := cli.CLIResultPresenter{}
	return orchestration.AnalyzeComparisonResults(results, presOpts, presenter, presenter, out)
}

// saveResultIfNeeded writes the result file when -output is set. The
// reported area is the one of the fastest successful run; the runs keep the
// calculator order.
func (a *Application) saveResultIfNeeded(results []orchestration.CalculationResult, f riemann.NamedIntegrand, presOpts orchestration.PresentationOptions, out io.Writer) int {
	fastest, ok := orchestration.FastestResult(results)
	if a.Config.OutputFile == "" || !ok {
		return apperrors.ExitSuccess
	}
	report := cli.Report{
		RunID:     a.RunID,
		Generated: time.Now().UTC(),
		Integrand: f.Name,
		Formula:   f.Formula,
		A:         a.Config.A,
		B:         a.Config.B,
		N:         a.Config.N,
		Threads:   a.Config.Threads,
		Area:      fastest.Result,
		Tolerance: presOpts.Tolerance,
		Runs:      cli.NewRunEntries(results),
	}
	if err := cli.WriteResultToFile(report, a.Config.OutputFile); err != nil {
		a.Logger.Error("saving result failed", err, logging.String("path", a.Config.OutputFile))
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	if !a.Config.Quiet {
		fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
			ui.ColorGreen(), ui.ColorCyan(), a.Config.OutputFile, ui.ColorReset())
	}
	return apperrors.ExitSuccess
}

// exportMetrics writes the Prometheus textfile when -metrics-out is set.
// A failure is logged but does not change the exit code.
func (a *Application) exportMetrics(m *metrics.RunMetrics) {
	if a.Config.MetricsOut == "" {
		return
	}
	if err := m.WriteToTextfile(a.Config.MetricsOut); err != nil {
		a.Logger.Error("metrics export failed", err, logging.String("path", a.Config.MetricsOut))
		return
	}
	a.Logger.Info("metrics exported", logging.String("run_id", a.RunID), logging.String("path", a.Config.MetricsOut))
}
