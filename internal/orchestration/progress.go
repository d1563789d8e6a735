package orchestration

import (
	"time"

	"github.com/agbru/riemann/internal/progress"
)

// ProgressAggregator manages multi-calculator progress aggregation.
// It tracks the latest value of every calculator and derives an overall
// average and a linear ETA. Both the CLI reporter and tests use it.
type ProgressAggregator struct {
	progresses     []float64
	numCalculators int
	start          time.Time
	now            func() time.Time
}

// NewProgressAggregator creates a new aggregator for the given number
// of calculators. Returns nil if numCalculators <= 0.
func NewProgressAggregator(numCalculators int) *ProgressAggregator {
	if numCalculators <= 0 {
		return nil
	}
	return &ProgressAggregator{
		progresses:     make([]float64, numCalculators),
		numCalculators: numCalculators,
		start:          time.Now(),
		now:            time.Now,
	}
}

// AggregatedProgress holds the result of processing a single progress update.
type AggregatedProgress struct {
	// CalculatorIndex is the index of the calculator that sent the update.
	CalculatorIndex int
	// Value is the raw progress value from the update (0.0 to 1.0).
	Value float64
	// AverageProgress is the aggregated average across all calculators.
	AverageProgress float64
	// ETA is the estimated time remaining, 0 when unknown.
	ETA time.Duration
}

// Update processes a single progress update and returns the aggregated result.
// Updates for unknown calculator indices are ignored.
func (a *ProgressAggregator) Update(update progress.ProgressUpdate) AggregatedProgress {
	if update.CalculatorIndex >= 0 && update.CalculatorIndex < len(a.progresses) {
		a.progresses[update.CalculatorIndex] = update.Value
	}
	return AggregatedProgress{
		CalculatorIndex: update.CalculatorIndex,
		Value:           update.Value,
		AverageProgress: a.CalculateAverage(),
		ETA:             a.GetETA(),
	}
}

// CalculateAverage returns the current average progress without updating.
func (a *ProgressAggregator) CalculateAverage() float64 {
	var total float64
	for _, p := range a.progresses {
		total += p
	}
	return total / float64(a.numCalculators)
}

// GetETA extrapolates the remaining time from the elapsed time and the
// average progress. It returns 0 before any progress has been made.
func (a *ProgressAggregator) GetETA() time.Duration {
	avg := a.CalculateAverage()
	if avg <= 0 || avg >= 1 {
		return 0
	}
	elapsed := a.now().Sub(a.start)
	return time.Duration(float64(elapsed) * (1 - avg) / avg)
}

// NumCalculators returns the number of calculators being tracked.
func (a *ProgressAggregator) NumCalculators() int {
	return a.numCalculators
}

// IsMultiCalculator returns true if tracking more than one calculator.
func (a *ProgressAggregator) IsMultiCalculator() bool {
	return a.numCalculators > 1
}

// DrainChannel reads all updates from the channel without processing.
func DrainChannel(progressChan <-chan progress.ProgressUpdate) {
	for range progressChan {
	}
}
