package riemann

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Tolerance returns the largest difference expected between two summation
// orders of the same n terms whose magnitudes add up to about magnitude:
// 2·n·u·max(1, |magnitude|), with u the unit roundoff.
func Tolerance(n int, magnitude float64) float64 {
	return 2 * float64(n) * unitRoundoff * math.Max(1, math.Abs(magnitude))
}

// Agree reports whether x and y differ by at most tol.
func Agree(x, y, tol float64) bool {
	return scalar.EqualWithinAbs(x, y, tol)
}

// magnitudeSamples is the grid size used to estimate the mass of |f|.
const magnitudeSamples = 1024

// Tolerance returns the agreement tolerance of p. The magnitude is a coarse
// left-sum estimate of the integral of |f|, so that integrands whose signed
// area cancels out still get a tolerance that matches the size of the terms.
// Non-finite samples are skipped.
func (p Problem) Tolerance() float64 {
	m := min(p.N, magnitudeSamples)
	if m <= 0 || p.F == nil {
		return 0
	}
	lo, dx := p.Interval.Lo(), p.Interval.Width()/float64(m)
	var mass float64
	for i := 0; i < m; i++ {
		if y := p.F.Evaluate(lo + float64(i)*dx); isFinite(y) {
			mass += math.Abs(y) * dx
		}
	}
	return Tolerance(p.N, mass)
}
