package config

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"runtime"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/riemann/internal/errors"
	"github.com/agbru/riemann/internal/riemann"
)

var (
	testAlgos = []string{"parallel", "serial"}
	testFuncs = []string{"quartic", "sin", "square", "two-plus-sin"}
)

func parse(t *testing.T, args ...string) (AppConfig, error) {
	t.Helper()
	return ParseConfig("riemann", args, io.Discard, testAlgos, testFuncs)
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := parse(t)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := AppConfig{
		A: 0, B: 4, N: riemann.DefaultPartitions, Threads: riemann.DefaultThreads,
		Func: "square", Algo: "all", Timeout: DefaultTimeout, LogLevel: "info",
	}
	if cfg != want {
		t.Errorf("defaults mismatch:\n got %+v\nwant %+v", cfg, want)
	}
}

func TestParseConfig_Flags(t *testing.T) {
	cfg, err := parse(t, "-a", "-1.5", "-b", "2", "-n", "1000", "-threads", "8",
		"-f", "sin", "-algo", "serial", "-timeout", "10s", "-v", "-no-color",
		"-o", "out.json", "-metrics-out", "run.prom", "-log-level", "debug")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.A != -1.5 || cfg.B != 2 || cfg.N != 1000 || cfg.Threads != 8 {
		t.Errorf("numeric flags not applied: %+v", cfg)
	}
	if cfg.Func != "sin" || cfg.Algo != "serial" || cfg.Timeout != 10*time.Second {
		t.Errorf("string flags not applied: %+v", cfg)
	}
	if !cfg.Verbose || !cfg.NoColor || cfg.OutputFile != "out.json" || cfg.MetricsOut != "run.prom" || cfg.LogLevel != "debug" {
		t.Errorf("output flags not applied: %+v", cfg)
	}
}

func TestParseConfig_EnvOverrides(t *testing.T) {
	t.Setenv("RIEMANN_N", "1_000")
	t.Setenv("RIEMANN_A", "4")
	t.Setenv("RIEMANN_B", "0")
	t.Setenv("RIEMANN_FUNC", "quartic")
	t.Setenv("RIEMANN_QUIET", "yes")
	t.Setenv("RIEMANN_THREADS", "not-a-number")

	cfg, err := parse(t)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.N != 1000 || cfg.A != 4 || cfg.B != 0 || cfg.Func != "quartic" || !cfg.Quiet {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
	if cfg.Threads != riemann.DefaultThreads {
		t.Errorf("invalid env value should be ignored, got threads=%d", cfg.Threads)
	}
}

func TestParseConfig_TUI(t *testing.T) {
	cfg, err := parse(t, "-tui")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.TUI {
		t.Error("-tui not applied")
	}

	t.Setenv("RIEMANN_TUI", "1")
	cfg, err = parse(t)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.TUI {
		t.Error("RIEMANN_TUI not applied")
	}
	cfg, err = parse(t, "-tui=false")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TUI {
		t.Error("-tui=false should beat RIEMANN_TUI")
	}
}

func TestParseConfig_FlagsBeatEnv(t *testing.T) {
	t.Setenv("RIEMANN_N", "1000")
	t.Setenv("RIEMANN_FUNC", "sin")

	cfg, err := parse(t, "-n", "42", "-func", "square")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.N != 42 || cfg.Func != "square" {
		t.Errorf("flags should take priority over env: %+v", cfg)
	}
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"zero partitions", []string{"-n", "0"}, "-n must be positive"},
		{"negative threads", []string{"-threads", "-1"}, "-threads"},
		{"zero timeout", []string{"-timeout", "0s"}, "-timeout"},
		{"nan bound", []string{"-a", "NaN"}, "finite"},
		{"unknown algo", []string{"-algo", "simpson"}, "unknown algorithm"},
		{"unknown func", []string{"-f", "cosh"}, "unknown integrand"},
		{"unknown log level", []string{"-log-level", "chatty"}, "log level"},
		{"quiet and verbose", []string{"-q", "-v"}, "mutually exclusive"},
		{"quiet and tui", []string{"-q", "-tui"}, "-tui"},
		{"positional args", []string{"extra"}, "unexpected arguments"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.args...)
			var cfgErr apperrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestParseConfig_Help(t *testing.T) {
	var buf bytes.Buffer
	_, err := ParseConfig("riemann", []string{"-h"}, &buf, testAlgos, testFuncs)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	for _, want := range []string{"Usage: riemann", "-threads", "RIEMANN_"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("usage should mention %q", want)
		}
	}
}

func TestParseBoolEnv(t *testing.T) {
	t.Parallel()
	tests := []struct {
		val  string
		def  bool
		want bool
	}{
		{"TRUE", false, true},
		{"1", false, true},
		{"no", true, false},
		{"maybe", true, true},
	}
	for _, tt := range tests {
		if got := parseBoolEnv(tt.val, tt.def); got != tt.want {
			t.Errorf("parseBoolEnv(%q, %v) = %v", tt.val, tt.def, got)
		}
	}
}

func TestApplyAdaptiveThreads(t *testing.T) {
	t.Parallel()
	if got := ApplyAdaptiveThreads(AppConfig{Threads: 0}).Threads; got != runtime.NumCPU() {
		t.Errorf("Threads = %d, want %d", got, runtime.NumCPU())
	}
	if got := ApplyAdaptiveThreads(AppConfig{Threads: 3}).Threads; got != 3 {
		t.Errorf("explicit thread count changed to %d", got)
	}
}

func TestCPUFeatures(t *testing.T) {
	t.Parallel()
	if CPUFeatures() == "" {
		t.Error("CPUFeatures should never be empty")
	}
}
