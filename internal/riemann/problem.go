package riemann

import (
	"fmt"
	"math"

	apperrors "github.com/agbru/riemann/internal/errors"
)

// Interval holds the bounds of integration. A may be greater than B.
type Interval struct {
	A, B float64
}

// Width returns |B - A|.
func (iv Interval) Width() float64 { return math.Abs(iv.B - iv.A) }

// Lo returns the smaller bound, where the first rectangle starts.
// For A > B the sum is therefore the positive-orientation area over [B, A].
func (iv Interval) Lo() float64 { return math.Min(iv.A, iv.B) }

// Problem is one Left Riemann Sum to evaluate.
type Problem struct {
	F        Integrand
	Interval Interval
	N        int
}

// NewProblem builds a Problem for f over [a, b] with n rectangles.
func NewProblem(f Integrand, a, b float64, n int) Problem {
	return Problem{F: f, Interval: Interval{A: a, B: b}, N: n}
}

// Step returns the rectangle width. It is only meaningful once Validate has
// succeeded.
func (p Problem) Step() float64 {
	return p.Interval.Width() / float64(p.N)
}

// Validate checks the problem before any division by N takes place.
func (p Problem) Validate() error {
	if p.N <= 0 {
		return apperrors.ValidationError{
			Field:   "n",
			Message: fmt.Sprintf("must be positive, got %d", p.N),
			Err:     ErrInvalidPartition,
		}
	}
	if p.F == nil {
		return apperrors.ValidationError{Field: "func", Message: "no integrand given", Err: ErrNilIntegrand}
	}
	if !isFinite(p.Interval.A) || !isFinite(p.Interval.B) {
		return apperrors.ValidationError{
			Field:   "interval",
			Message: fmt.Sprintf("bounds must be finite, got [%v, %v]", p.Interval.A, p.Interval.B),
			Err:     ErrInvalidInterval,
		}
	}
	return nil
}

func validateThreads(threads int) error {
	if threads <= 0 {
		return apperrors.ValidationError{
			Field:   "threads",
			Message: fmt.Sprintf("must be positive, got %d", threads),
			Err:     ErrInvalidThreadCount,
		}
	}
	return nil
}
