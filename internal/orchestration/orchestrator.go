package orchestration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/riemann/internal/errors"
	"github.com/agbru/riemann/internal/progress"
	"github.com/agbru/riemann/internal/riemann"
)

// ProgressBufferMultiplier defines the buffer size multiplier for the progress
// channel. A larger buffer reduces the likelihood of dropped updates when the
// UI is slow to consume them.
const ProgressBufferMultiplier = 5

const tracerName = "github.com/agbru/riemann/internal/orchestration"

// ExecuteCalculations runs one or more calculators on the same problem.
//
// Calculators run back-to-back in the given order, one at a time, so that the
// measured wall-clock durations do not interfere with each other. Progress
// updates from all of them are funneled to a single reporter. Each run is
// wrapped in a trace span.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - calculators: The calculators to execute.
//   - p: The problem every calculator evaluates.
//   - opts: Run options such as the worker count.
//   - progressReporter: The progress reporter (use NullProgressReporter for quiet mode).
//   - out: The io.Writer for displaying progress updates.
//
// Returns:
//   - []CalculationResult: The results, in the order of calculators.
func ExecuteCalculations(ctx context.Context, calculators []riemann.Calculator, p riemann.Problem, opts riemann.Options, progressReporter ProgressReporter, out io.Writer) []CalculationResult {
	results := make([]CalculationResult, len(calculators))
	progressChan := make(chan progress.ProgressUpdate, len(calculators)*ProgressBufferMultiplier)
	tracer := otel.Tracer(tracerName)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(calculators), out)

	var g errgroup.Group
	g.SetLimit(1)
	for i, calculator := range calculators {
		g.Go(func() error {
			spanCtx, span := tracer.Start(ctx, "riemann.calculate", trace.WithAttributes(
				attribute.String("calculator", calculator.Name()),
				attribute.Int("n", p.N),
				attribute.Int("threads", opts.Threads),
			))
			defer span.End()

			startTime := time.Now()
			res, err := calculator.Calculate(spanCtx, progressChan, i, p, opts)
			results[i] = CalculationResult{
				Name: calculator.Name(), Result: res, Duration: time.Since(startTime), Err: err,
			}
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			return nil
		})
	}
	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// ApplyTimeoutLimit replaces every deadline error in results by a
// TimeoutError naming the calculator and the limit of the run.
func ApplyTimeoutLimit(results []CalculationResult, limit time.Duration) {
	for i := range results {
		if results[i].Err != nil && errors.Is(results[i].Err, context.DeadlineExceeded) {
			results[i].Err = apperrors.TimeoutError{Operation: results[i].Name, Limit: limit}
		}
	}
}

// FastestResult returns the successful result with the shortest duration.
// Ties keep the calculator order. ok is false when no calculator succeeded.
func FastestResult(results []CalculationResult) (fastest CalculationResult, ok bool) {
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		if !ok || res.Duration < fastest.Duration {
			fastest, ok = res, true
		}
	}
	return fastest, ok
}

// AnalyzeComparisonResults processes the results of all calculators and
// generates a summary report.
//
// The comparison table keeps the calculator order. A run interrupted by a
// timeout or a cancellation aborts the comparison and yields the matching
// exit code. Otherwise the successful results must agree within
// opts.Tolerance, and the fastest one is presented.
//
// Parameters:
//   - results: The calculation results, in calculator order.
//   - opts: Presentation options, including the agreement tolerance.
//   - presenter: The result presenter for display formatting.
//   - errHandler: Maps a failure to an exit code.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparisonResults(results []CalculationResult, opts PresentationOptions, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	presenter.PresentComparisonTable(results, out)

	var firstFailure *CalculationResult
	for i := range results {
		if results[i].Err == nil {
			continue
		}
		if apperrors.IsContextError(results[i].Err) {
			fmt.Fprintf(out, "\nGlobal Status: Interrupted. %s did not complete, the results were not compared.\n", results[i].Name)
			return errHandler.HandleError(results[i].Err, results[i].Duration, out)
		}
		if firstFailure == nil {
			firstFailure = &results[i]
		}
	}

	reference, ok := FastestResult(results)
	if !ok {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No calculator could complete the integration.\n")
		if firstFailure == nil {
			return errHandler.HandleError(nil, 0, out)
		}
		return errHandler.HandleError(firstFailure.Err, firstFailure.Duration, out)
	}

	for _, res := range results {
		if res.Err == nil && !riemann.Agree(res.Result, reference.Result, opts.Tolerance) {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! %s and %s differ by more than %g.\n",
				res.Name, reference.Name, opts.Tolerance)
			return apperrors.ExitErrorMismatch
		}
	}

	if firstFailure != nil {
		fmt.Fprintf(out, "\nGlobal Status: Partial success. Valid results agree within %g.\n", opts.Tolerance)
	} else {
		fmt.Fprintf(out, "\nGlobal Status: Success. All results agree within %g.\n", opts.Tolerance)
	}
	presenter.PresentResult(reference, opts, out)
	return apperrors.ExitSuccess
}
