package tui

import (
	"time"

	"github.com/agbru/riemann/internal/orchestration"
	"github.com/agbru/riemann/internal/sysmon"
)

// ProgressMsg carries one aggregated progress update.
type ProgressMsg struct {
	CalculatorIndex int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// ProgressDoneMsg signals that the progress channel was closed.
type ProgressDoneMsg struct{}

// ComparisonResultsMsg carries every result, in calculator order.
type ComparisonResultsMsg struct {
	Results []orchestration.CalculationResult
}

// FinalResultMsg carries the presented result once the runs agree.
type FinalResultMsg struct {
	Result  orchestration.CalculationResult
	Options orchestration.PresentationOptions
}

// ErrorMsg carries the failure that decided the exit code.
type ErrorMsg struct {
	Err      error
	Duration time.Duration
}

// TickMsg drives the periodic refresh.
type TickMsg time.Time

// SysStatsMsg carries one system-wide usage sample.
type SysStatsMsg struct {
	Stats sysmon.Stats
}

// CalculationCompleteMsg is sent when the orchestration has returned.
type CalculationCompleteMsg struct {
	ExitCode int
	Results  []orchestration.CalculationResult
}

// ContextCancelledMsg is sent when the run context ends.
type ContextCancelledMsg struct {
	Err error
}
