// Package tui renders an interactive dashboard of a Riemann sum run: one
// progress bar per calculator, live system usage and the comparison verdict.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/agbru/riemann/internal/errors"
	"github.com/agbru/riemann/internal/format"
	"github.com/agbru/riemann/internal/orchestration"
	"github.com/agbru/riemann/internal/riemann"
	"github.com/agbru/riemann/internal/sysmon"
)

const (
	tickInterval = 500 * time.Millisecond
	defaultWidth = 80
	minBarWidth  = 10
	maxBarWidth  = 40
)

// Session describes the run shown by the dashboard.
type Session struct {
	Calculators []riemann.Calculator
	Problem     riemann.Problem
	Options     riemann.Options
	Integrand   string
	Timeout     time.Duration
	Verbose     bool
	Version     string
}

// Outcome is what the dashboard hands back once closed.
type Outcome struct {
	ExitCode int
	// Results is nil when the dashboard was closed before the run completed.
	Results []orchestration.CalculationResult
}

type calcRow struct {
	name     string
	progress float64
	result   *orchestration.CalculationResult
}

// Model is the bubbletea model of the dashboard.
type Model struct {
	session Session
	rows    []calcRow

	keymap KeyMap
	help   help.Model

	average float64
	eta     time.Duration
	sys     sysmon.Stats
	peaks   sysmon.Summary

	final   *FinalResultMsg
	failure *ErrorMsg
	results []orchestration.CalculationResult

	start    time.Time
	elapsed  time.Duration
	width    int
	done     bool
	exitCode int

	ctx    context.Context
	cancel context.CancelFunc
	ref    *programRef
}

// NewModel creates the dashboard of s. The run is bound to a child of
// parentCtx that is canceled when the user quits.
func NewModel(parentCtx context.Context, s Session) Model {
	rows := make([]calcRow, len(s.Calculators))
	for i, c := range s.Calculators {
		rows[i] = calcRow{name: c.Name()}
	}
	ctx, cancel := context.WithCancel(parentCtx)
	return Model{
		session:  s,
		rows:     rows,
		keymap:   DefaultKeyMap(),
		help:     help.New(),
		start:    time.Now(),
		width:    defaultWidth,
		exitCode: apperrors.ExitSuccess,
		ctx:      ctx,
		cancel:   cancel,
		ref:      &programRef{},
	}
}

// Init starts the run, the refresh tick and the context watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startCalculationCmd(m.ref, m.ctx, m.session),
		watchContextCmd(m.ctx),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case ProgressMsg:
		if msg.CalculatorIndex >= 0 && msg.CalculatorIndex < len(m.rows) {
			m.rows[msg.CalculatorIndex].progress = msg.Value
		}
		m.average = msg.AverageProgress
		m.eta = msg.ETA
		return m, nil

	case ProgressDoneMsg:
		return m, nil

	case ComparisonResultsMsg:
		for i := range msg.Results {
			if i < len(m.rows) {
				res := msg.Results[i]
				m.rows[i].result = &res
				if res.Err == nil {
					m.rows[i].progress = 1
				}
			}
		}
		return m, nil

	case FinalResultMsg:
		m.final = &msg
		return m, nil

	case ErrorMsg:
		m.failure = &msg
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		m.elapsed = time.Since(m.start)
		return m, tea.Batch(sampleSysStatsCmd(), tickCmd())

	case SysStatsMsg:
		m.sys = msg.Stats
		m.peaks.Add(msg.Stats)
		return m, nil

	case CalculationCompleteMsg:
		m.done = true
		m.exitCode = msg.ExitCode
		m.results = msg.Results
		m.elapsed = time.Since(m.start)
		return m, nil

	case ContextCancelledMsg:
		if m.done {
			return m, nil
		}
		m.done = true
		m.exitCode = apperrors.HandleCalculationError(msg.Err, time.Since(m.start), io.Discard, nil)
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if !m.done {
			m.done = true
			m.exitCode = apperrors.ExitErrorCanceled
		}
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	return m, nil
}

// ExitCode returns the exit code of the run, or ExitErrorCanceled when the
// user quit before it completed.
func (m Model) ExitCode() int { return m.exitCode }

// View renders the dashboard.
func (m Model) View() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		"",
		m.rowsView(),
		"",
		m.systemView(),
		m.verdictView(),
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		panelStyle.Render(body),
		m.help.View(m.keymap),
	)
}

// Summary renders the dashboard without the key help, for printing once the
// program has left the alternate screen.
func (m Model) Summary() string {
	return lipgloss.JoinVertical(lipgloss.Left, m.headerView(), m.rowsView(), m.verdictView())
}

func (m Model) headerView() string {
	p := m.session.Problem
	title := titleStyle.Render("Left Riemann Sum")
	if m.session.Version != "" {
		title += labelStyle.Render(" " + m.session.Version)
	}
	problem := fmt.Sprintf("%s over [%g, %g], n = %s, %d threads",
		m.session.Integrand, p.Interval.A, p.Interval.B, format.FormatCount(p.N), m.session.Options.Threads)
	elapsed := labelStyle.Render("elapsed " + format.FormatExecutionDuration(m.elapsed.Round(time.Millisecond)))
	return lipgloss.JoinVertical(lipgloss.Left, title, problem+"  "+elapsed)
}

func (m Model) barWidth() int {
	return min(max(m.width-50, minBarWidth), maxBarWidth)
}

func (m Model) rowsView() string {
	nameWidth := 0
	for _, r := range m.rows {
		nameWidth = max(nameWidth, len(r.name))
	}
	lines := make([]string, 0, len(m.rows)+1)
	for _, r := range m.rows {
		line := fmt.Sprintf("%-*s [%s] %5.1f%%", nameWidth, r.name,
			barStyle.Render(format.ProgressBar(r.progress, m.barWidth())), min(max(r.progress, 0), 1)*100)
		if r.result != nil {
			if r.result.Err != nil {
				line += "  " + errorStyle.Render("failed: "+r.result.Err.Error())
			} else {
				line += fmt.Sprintf("  %.15g in %s", r.result.Result, format.FormatExecutionDuration(r.result.Duration))
			}
		}
		lines = append(lines, line)
	}
	if !m.done && len(m.rows) > 1 {
		lines = append(lines, labelStyle.Render(fmt.Sprintf("average %5.1f%%  ETA %s", m.average*100, format.FormatETA(m.eta))))
	}
	return strings.Join(lines, "\n")
}

func (m Model) systemView() string {
	return fmt.Sprintf("%s %5.1f%% (peak %.1f%%)   %s %5.1f%% (peak %.1f%%)",
		labelStyle.Render("CPU"), m.sys.CPUPercent, m.peaks.PeakCPUPercent,
		labelStyle.Render("MEM"), m.sys.MemPercent, m.peaks.PeakMemPercent)
}

func (m Model) verdictView() string {
	if !m.done {
		return ""
	}
	var lines []string
	if fast, slow, ok := extremes(m.results); ok {
		lines = append(lines, fmt.Sprintf("%s is %s faster than %s.", fast.Name, format.FormatSpeedup(slow.Duration, fast.Duration), slow.Name))
	}
	switch {
	case m.exitCode == apperrors.ExitSuccess && m.final != nil:
		lines = append(lines,
			successStyle.Render("Success.")+fmt.Sprintf(" Area: %.15g", m.final.Result.Result),
			labelStyle.Render(fmt.Sprintf("All results agree within %g.", m.final.Options.Tolerance)))
	case m.exitCode == apperrors.ExitErrorMismatch:
		lines = append(lines, errorStyle.Render("Mismatch.")+
			fmt.Sprintf(" The results disagree beyond %g.", m.session.Problem.Tolerance()))
	case m.failure != nil:
		lines = append(lines, errorStyle.Render("Failure.")+" "+m.failure.Err.Error())
	case m.exitCode == apperrors.ExitErrorCanceled:
		lines = append(lines, errorStyle.Render("Canceled."))
	case m.exitCode != apperrors.ExitSuccess:
		lines = append(lines, errorStyle.Render(fmt.Sprintf("Failure (exit code %d).", m.exitCode)))
	}
	return "\n" + strings.Join(lines, "\n")
}

// extremes returns the fastest and slowest successful runs when they differ.
func extremes(results []orchestration.CalculationResult) (fast, slow orchestration.CalculationResult, ok bool) {
	fast, ok = orchestration.FastestResult(results)
	if !ok {
		return fast, slow, false
	}
	slow = fast
	for _, res := range results {
		if res.Err == nil && res.Duration > slow.Duration {
			slow = res
		}
	}
	return fast, slow, slow.Name != fast.Name
}

// Run shows the dashboard until the user quits and returns the outcome.
func Run(ctx context.Context, s Session, out io.Writer) Outcome {
	// Rebuild styles from the theme set by app.Run.
	initStyles()

	model := NewModel(ctx, s)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithOutput(out))
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		fmt.Fprintf(out, "dashboard failed: %v\n", err)
		return Outcome{ExitCode: apperrors.ExitErrorGeneric}
	}
	m, ok := finalModel.(Model)
	if !ok {
		return Outcome{ExitCode: apperrors.ExitErrorGeneric}
	}
	m.cancel()
	fmt.Fprintln(out, m.Summary())
	return Outcome{ExitCode: m.exitCode, Results: m.results}
}

// startCalculationCmd runs the orchestration and reports through ref.
func startCalculationCmd(ref *programRef, ctx context.Context, s Session) tea.Cmd {
	return func() tea.Msg {
		reporter := &TUIProgressReporter{ref: ref}
		presenter := &TUIResultPresenter{ref: ref}

		results := orchestration.ExecuteCalculations(ctx, s.Calculators, s.Problem, s.Options, reporter, io.Discard)
		orchestration.ApplyTimeoutLimit(results, s.Timeout)
		presOpts := orchestration.PresentationOptions{
			N:         s.Problem.N,
			Tolerance: s.Problem.Tolerance(),
			Verbose:   s.Verbose,
		}
		exitCode := orchestration.AnalyzeComparisonResults(results, presOpts, presenter, presenter, io.Discard)
		return CalculationCompleteMsg{ExitCode: exitCode, Results: results}
	}
}

// watchContextCmd reports the end of ctx.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleSysStatsCmd reads system-wide CPU and memory usage.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		return SysStatsMsg{Stats: sysmon.Sample()}
	}
}
