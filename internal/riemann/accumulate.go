package riemann

import (
	"context"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/agbru/riemann/internal/progress"
)

// LeftSum computes the Left Riemann Sum of f over [a, b] with n rectangles in
// a single pass on the calling goroutine. Terms are added in index order, so
// the result is reproducible for fixed inputs.
//
// The first rectangle starts at min(a, b), so swapping the bounds yields the
// same value. LeftSum returns an error wrapping ErrInvalidPartition when
// n <= 0 and an *UndefinedIntegrandError when f yields NaN or ±Inf at a
// sample point.
func LeftSum(f Integrand, a, b float64, n int) (float64, error) {
	p := NewProblem(f, a, b, n)
	if err := p.Validate(); err != nil {
		return 0, err
	}
	return serialSum(context.Background(), p, nil)
}

// ParallelLeftSum computes the same sum as LeftSum with the index range split
// across threads workers. Each worker owns a contiguous slice and a private
// partial sum; the last worker absorbs the remainder when n is not a multiple
// of the worker count. Partials are reduced after all workers have joined.
//
// The result differs from LeftSum only by floating-point reassociation; use
// Tolerance to compare them. ParallelLeftSum rejects n <= 0 with
// ErrInvalidPartition and threads <= 0 with ErrInvalidThreadCount.
func ParallelLeftSum(f Integrand, a, b float64, n, threads int) (float64, error) {
	p := NewProblem(f, a, b, n)
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if err := validateThreads(threads); err != nil {
		return 0, err
	}
	return parallelSum(context.Background(), p, threads, nil)
}

// accumulate adds f(lo + i*dx)*dx to sum for i in [from, to), in order.
func accumulate(f Integrand, lo, dx float64, from, to int, sum float64) (float64, error) {
	for i := from; i < to; i++ {
		x := lo + float64(i)*dx
		y := f.Evaluate(x)
		if !isFinite(y) {
			return sum, &UndefinedIntegrandError{X: x, Value: y}
		}
		sum += y * dx
	}
	return sum, nil
}

// serialSum runs the ordered pass in blocks, checking ctx and reporting
// progress between blocks. p must be valid.
func serialSum(ctx context.Context, p Problem, report progress.ProgressCallback) (float64, error) {
	lo, dx := p.Interval.Lo(), p.Step()
	sum := 0.0
	for from := 0; from < p.N; from += ProgressBlockSize {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		to := min(from+ProgressBlockSize, p.N)
		var err error
		if sum, err = accumulate(p.F, lo, dx, from, to, sum); err != nil {
			return 0, err
		}
		if report != nil {
			report(float64(to) / float64(p.N))
		}
	}
	return checkSum(sum)
}

// parallelSum forks min(threads, p.N) workers over contiguous slices and
// reduces their partials. p and threads must be valid.
func parallelSum(ctx context.Context, p Problem, threads int, report progress.ProgressCallback) (float64, error) {
	lo, dx := p.Interval.Lo(), p.Step()
	workers := min(threads, p.N)
	chunk := p.N / workers
	partials := make([]float64, workers)
	counter := progress.NewCounter(int64(p.N), report)

	g, gctx := errgroup.WithContext(ctx)
	for w := range workers {
		from := w * chunk
		to := from + chunk
		if w == workers-1 {
			to = p.N
		}
		g.Go(func() error {
			local := 0.0
			for start := from; start < to; start += ProgressBlockSize {
				if err := gctx.Err(); err != nil {
					return err
				}
				end := min(start+ProgressBlockSize, to)
				var err error
				if local, err = accumulate(p.F, lo, dx, start, end, local); err != nil {
					return err
				}
				counter.Add(int64(end - start))
			}
			partials[w] = local
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return checkSum(floats.Sum(partials))
}
