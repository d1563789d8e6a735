package riemann

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidPartition is returned when the partition count is not positive.
	ErrInvalidPartition = errors.New("partition count must be positive")
	// ErrInvalidThreadCount is returned when the worker count is not positive.
	ErrInvalidThreadCount = errors.New("thread count must be positive")
	// ErrInvalidInterval is returned when a bound is NaN or infinite.
	ErrInvalidInterval = errors.New("interval bounds must be finite")
	// ErrNilIntegrand is returned when no integrand is supplied.
	ErrNilIntegrand = errors.New("integrand must not be nil")
	// ErrUndefinedIntegrand matches any *UndefinedIntegrandError.
	ErrUndefinedIntegrand = errors.New("integrand is undefined")
)

// UndefinedIntegrandError reports a non-finite value met during accumulation,
// either from the integrand at X or, when Overflow is set, from the sum of
// finite terms.
type UndefinedIntegrandError struct {
	X        float64
	Value    float64
	Overflow bool
}

func (e *UndefinedIntegrandError) Error() string {
	if e.Overflow {
		return fmt.Sprintf("%v: accumulated sum overflowed to %v", ErrUndefinedIntegrand, e.Value)
	}
	return fmt.Sprintf("%v: f(%g) = %v", ErrUndefinedIntegrand, e.X, e.Value)
}

// Is reports whether target is ErrUndefinedIntegrand.
func (e *UndefinedIntegrandError) Is(target error) bool {
	return target == ErrUndefinedIntegrand
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// checkSum rejects a non-finite total built from finite terms.
func checkSum(sum float64) (float64, error) {
	if !isFinite(sum) {
		return 0, &UndefinedIntegrandError{X: math.NaN(), Value: sum, Overflow: true}
	}
	return sum, nil
}
