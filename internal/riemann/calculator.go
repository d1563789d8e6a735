//go:generate mockgen -source=calculator.go -destination=../orchestration/mocks/mock_calculator.go -package=mocks

package riemann

import (
	"context"
	"errors"

	apperrors "github.com/agbru/riemann/internal/errors"
	"github.com/agbru/riemann/internal/progress"
)

// Options carries per-run settings that do not belong to the problem itself.
type Options struct {
	// Threads is the worker count of the parallel accumulator. The serial
	// accumulator ignores it.
	Threads int
}

// Calculator evaluates a Problem and reports its progress on a channel.
type Calculator interface {
	// Calculate evaluates p. Progress updates tagged with calcIndex are sent
	// to progressChan without blocking; a nil channel disables reporting.
	// Cancellation of ctx is observed between blocks of ProgressBlockSize
	// iterations.
	Calculate(ctx context.Context, progressChan chan<- progress.ProgressUpdate, calcIndex int, p Problem, opts Options) (float64, error)
	// Name returns a human-readable name for reports.
	Name() string
}

// SerialCalculator runs LeftSum's ordered pass.
type SerialCalculator struct{}

// Name implements Calculator.
func (SerialCalculator) Name() string { return "Serial" }

// Calculate implements Calculator.
func (SerialCalculator) Calculate(ctx context.Context, progressChan chan<- progress.ProgressUpdate, calcIndex int, p Problem, _ Options) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	sum, err := serialSum(ctx, p, progress.NewChannelCallback(progressChan, calcIndex))
	return sum, wrapCalculationError(err)
}

// ParallelCalculator runs ParallelLeftSum's fork-join reduction.
type ParallelCalculator struct{}

// Name implements Calculator.
func (ParallelCalculator) Name() string { return "Parallel" }

// Calculate implements Calculator.
func (ParallelCalculator) Calculate(ctx context.Context, progressChan chan<- progress.ProgressUpdate, calcIndex int, p Problem, opts Options) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if err := validateThreads(opts.Threads); err != nil {
		return 0, err
	}
	sum, err := parallelSum(ctx, p, opts.Threads, progress.NewChannelCallback(progressChan, calcIndex))
	return sum, wrapCalculationError(err)
}

// wrapCalculationError marks integrand failures as calculation errors and
// leaves context errors untouched.
func wrapCalculationError(err error) error {
	if err == nil || apperrors.IsContextError(err) {
		return err
	}
	if errors.Is(err, ErrUndefinedIntegrand) {
		return apperrors.CalculationError{Cause: err}
	}
	return err
}
