package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	apperrors "github.com/agbru/riemann/internal/errors"
	"github.com/agbru/riemann/internal/orchestration"
	"github.com/agbru/riemann/internal/progress"
)

func TestTUIProgressReporter_DrainsChannel(t *testing.T) {
	reporter := &TUIProgressReporter{ref: &programRef{}}

	ch := make(chan progress.ProgressUpdate, 8)
	for _, v := range []float64{0.25, 0.5, 0.75, 1} {
		ch <- progress.ProgressUpdate{CalculatorIndex: 0, Value: v}
		ch <- progress.ProgressUpdate{CalculatorIndex: 1, Value: v / 2}
	}
	close(ch)

	var wg sync.WaitGroup
	wg.Add(1)
	go reporter.DisplayProgress(&wg, ch, 2, nil)
	wg.Wait()

	if len(ch) != 0 {
		t.Errorf("expected the channel to be drained, %d updates left", len(ch))
	}
}

func TestTUIProgressReporter_ZeroCalculators(t *testing.T) {
	reporter := &TUIProgressReporter{ref: &programRef{}}

	ch := make(chan progress.ProgressUpdate, 1)
	ch <- progress.ProgressUpdate{Value: 0.5}
	close(ch)

	var wg sync.WaitGroup
	wg.Add(1)
	go reporter.DisplayProgress(&wg, ch, 0, nil)
	wg.Wait()
}

func TestProgramRef_SendWithoutProgram(t *testing.T) {
	ref := &programRef{}
	ref.Send(ProgressDoneMsg{})
	ref.SetProgram(nil)
	ref.Send(ComparisonResultsMsg{})
}

func TestTUIResultPresenter_HandleError(t *testing.T) {
	presenter := &TUIResultPresenter{ref: &programRef{}}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, apperrors.ExitSuccess},
		{"timeout", apperrors.TimeoutError{Operation: "Serial", Limit: time.Second}, apperrors.ExitErrorTimeout},
		{"deadline", context.DeadlineExceeded, apperrors.ExitErrorTimeout},
		{"canceled", context.Canceled, apperrors.ExitErrorCanceled},
		{"generic", errors.New("integrand is undefined"), apperrors.ExitErrorGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := presenter.HandleError(tt.err, time.Second, nil); got != tt.want {
				t.Errorf("expected exit code %d, got %d", tt.want, got)
			}
		})
	}
}

func TestTUIResultPresenter_NilProgram(t *testing.T) {
	presenter := &TUIResultPresenter{ref: &programRef{}}
	res := orchestration.CalculationResult{Name: "Serial", Result: 2, Duration: time.Millisecond}
	presenter.PresentComparisonTable([]orchestration.CalculationResult{res}, nil)
	presenter.PresentResult(res, orchestration.PresentationOptions{N: 4}, nil)
}
