package orchestration

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/agbru/riemann/internal/progress"
	"github.com/agbru/riemann/internal/riemann"
)

// stubCalculator simulates various calculator behaviors for deadlock testing.
type stubCalculator struct {
	name     string
	behavior string // "instant", "slow", "error", "progress_flood"
	delay    time.Duration
}

func (m *stubCalculator) Calculate(ctx context.Context, progressChan chan<- progress.ProgressUpdate, calcIndex int, p riemann.Problem, opts riemann.Options) (float64, error) {
	switch m.behavior {
	case "slow":
		for i := 0; i < 100; i++ {
			select {
			case <-ctx.Done():
				return 0, ctx.Err()
			case progressChan <- progress.ProgressUpdate{CalculatorIndex: calcIndex, Value: float64(i) / 100.0}:
			default:
			}
			time.Sleep(m.delay)
		}
	case "error":
		return 0, errors.New("simulated error")
	case "progress_flood":
		for i := 0; i < 10000; i++ {
			select {
			case progressChan <- progress.ProgressUpdate{CalculatorIndex: calcIndex, Value: float64(i) / 10000.0}:
			default:
			}
		}
	}
	return 1, nil
}

func (m *stubCalculator) Name() string { return m.name }

// slowReporter consumes updates with a delay to simulate a sluggish UI.
type slowReporter struct{}

func (slowReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
		time.Sleep(10 * time.Microsecond)
	}
}

// TestOrchestrationNoDeadlock_MixedBehaviors verifies that ExecuteCalculations
// completes without deadlocking under various calculator behavior combinations.
func TestOrchestrationNoDeadlock_MixedBehaviors(t *testing.T) {
	testCases := []struct {
		name        string
		calculators []riemann.Calculator
		reporter    ProgressReporter
	}{
		{
			name: "all_instant",
			calculators: []riemann.Calculator{
				&stubCalculator{name: "c1", behavior: "instant"},
				&stubCalculator{name: "c2", behavior: "instant"},
			},
			reporter: NullProgressReporter{},
		},
		{
			name: "mixed_instant_and_slow",
			calculators: []riemann.Calculator{
				&stubCalculator{name: "fast", behavior: "instant"},
				&stubCalculator{name: "slow", behavior: "slow", delay: time.Millisecond},
			},
			reporter: NullProgressReporter{},
		},
		{
			name: "mixed_with_errors",
			calculators: []riemann.Calculator{
				&stubCalculator{name: "ok", behavior: "instant"},
				&stubCalculator{name: "err", behavior: "error"},
			},
			reporter: NullProgressReporter{},
		},
		{
			name: "progress_flood_slow_reporter",
			calculators: []riemann.Calculator{
				&stubCalculator{name: "flood1", behavior: "progress_flood"},
				&stubCalculator{name: "flood2", behavior: "progress_flood"},
			},
			reporter: slowReporter{},
		},
		{
			name:        "no_calculators",
			calculators: nil,
			reporter:    NullProgressReporter{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			p := riemann.NewProblem(riemann.Square, 0, 4, 100)
			done := make(chan []CalculationResult)
			go func() {
				done <- ExecuteCalculations(ctx, tc.calculators, p, riemann.Options{Threads: 2}, tc.reporter, io.Discard)
			}()

			select {
			case results := <-done:
				if len(results) != len(tc.calculators) {
					t.Errorf("expected %d results, got %d", len(tc.calculators), len(results))
				}
			case <-time.After(5 * time.Second):
				t.Fatal("ExecuteCalculations deadlocked")
			}
		})
	}
}

// TestOrchestrationNoDeadlock_Cancellation verifies that a canceled context
// stops a long run and every calculator still yields a result.
func TestOrchestrationNoDeadlock_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calcs := []riemann.Calculator{
		&stubCalculator{name: "slow1", behavior: "slow", delay: 10 * time.Millisecond},
		&stubCalculator{name: "slow2", behavior: "slow", delay: 10 * time.Millisecond},
	}

	done := make(chan []CalculationResult)
	go func() {
		done <- ExecuteCalculations(ctx, calcs, riemann.NewProblem(riemann.Square, 0, 4, 100), riemann.Options{Threads: 1}, NullProgressReporter{}, io.Discard)
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case results := <-done:
		for _, r := range results {
			if !errors.Is(r.Err, context.Canceled) {
				t.Errorf("%s: expected context.Canceled, got %v", r.Name, r.Err)
			}
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ExecuteCalculations did not return after cancellation")
	}
}
