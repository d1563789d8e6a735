// Package progress defines the progress types shared between the
// accumulators, the orchestration layer and the presentation layer.
package progress

import (
	"sync/atomic"
)

// ProgressUpdate is a single progress notification sent by a calculator.
type ProgressUpdate struct {
	// CalculatorIndex identifies the calculator that sent the update.
	CalculatorIndex int
	// Value is the completed fraction, from 0.0 to 1.0.
	Value float64
}

// ProgressCallback receives the completed fraction of a calculation.
type ProgressCallback func(value float64)

// NewChannelCallback returns a callback that forwards progress values to
// progressChan tagged with calcIndex. Sends never block: when the channel is
// full the update is dropped, since a later one supersedes it. A nil channel
// yields a no-op callback.
func NewChannelCallback(progressChan chan<- ProgressUpdate, calcIndex int) ProgressCallback {
	if progressChan == nil {
		return func(float64) {}
	}
	return func(value float64) {
		select {
		case progressChan <- ProgressUpdate{CalculatorIndex: calcIndex, Value: value}:
		default:
		}
	}
}

// Counter tracks completed work items shared by several workers and reports
// the completed fraction of total through a callback. Workers call Add once
// per completed block, never per item.
type Counter struct {
	done     atomic.Int64
	total    int64
	callback ProgressCallback
}

// NewCounter creates a counter for total work items. A nil callback is
// replaced by a no-op.
func NewCounter(total int64, callback ProgressCallback) *Counter {
	if callback == nil {
		callback = func(float64) {}
	}
	return &Counter{total: total, callback: callback}
}

// Add records delta completed items and reports the new fraction.
func (c *Counter) Add(delta int64) {
	done := c.done.Add(delta)
	if c.total <= 0 {
		return
	}
	value := float64(done) / float64(c.total)
	if value > 1.0 {
		value = 1.0
	}
	c.callback(value)
}

// Done returns the number of completed items.
func (c *Counter) Done() int64 {
	return c.done.Load()
}
