// Package riemann estimates definite integrals with the Left Riemann Sum.
//
// The interval is partitioned into n rectangles of width |b-a|/n and the
// integrand is evaluated at the left edge of each one. Two accumulators are
// provided: LeftSum runs a single ordered pass on the calling goroutine and is
// reproducible bit for bit; ParallelLeftSum splits the index range across a
// fixed number of workers, each summing into a private partial, and reduces
// the partials once every worker has finished. The two results agree within
// Tolerance but are not guaranteed to be identical, since floating-point
// addition is not associative.
//
// Calculators wrap both accumulators for the orchestration layer, adding
// progress reporting and context cancellation between blocks of
// ProgressBlockSize iterations.
package riemann
