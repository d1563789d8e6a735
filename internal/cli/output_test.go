package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/agbru/riemann/internal/orchestration"
)

func sampleReport() Report {
	return Report{
		RunID:     "7d4f3c1e-0000-4000-8000-000000000000",
		Generated: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Integrand: "square",
		Formula:   "x^2",
		A:         0,
		B:         4,
		N:         4,
		Threads:   2,
		Area:      14,
		Tolerance: 1e-15,
		Runs: NewRunEntries([]orchestration.CalculationResult{
			{Name: "Parallel", Result: 14, Duration: 100 * time.Millisecond},
			{Name: "Serial", Duration: time.Second, Err: errors.New("context canceled")},
		}),
	}
}

func TestNewRunEntries(t *testing.T) {
	t.Parallel()
	entries := sampleReport().Runs
	if entries[0].Area == nil || *entries[0].Area != 14 || entries[0].Error != "" || entries[0].DurationNs != int64(100*time.Millisecond) {
		t.Errorf("unexpected success entry: %+v", entries[0])
	}
	if entries[1].Area != nil || entries[1].Error != "context canceled" {
		t.Errorf("unexpected failure entry: %+v", entries[1])
	}
}

func TestWriteResultToFile(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	testCases := []struct {
		name      string
		path      string
		checkFunc func(t *testing.T, content []byte)
	}{
		{
			name: "Text",
			path: filepath.Join(tmpDir, "result.txt"),
			checkFunc: func(t *testing.T, content []byte) {
				s := string(content)
				for _, want := range []string{"# Run ID: 7d4f3c1e", "# Integrand: square (x^2)", "# Interval: [0, 4]", "# Serial: failed", "Area = 14"} {
					if !strings.Contains(s, want) {
						t.Errorf("text output should contain %q:\n%s", want, s)
					}
				}
			},
		},
		{
			name: "JSON",
			path: filepath.Join(tmpDir, "result.json"),
			checkFunc: func(t *testing.T, content []byte) {
				var got Report
				if err := json.Unmarshal(content, &got); err != nil {
					t.Fatalf("invalid JSON: %v", err)
				}
				if got.Area != 14 || got.N != 4 || len(got.Runs) != 2 || got.Runs[1].Error == "" {
					t.Errorf("unexpected JSON report: %+v", got)
				}
			},
		},
		{
			name: "YAML",
			path: filepath.Join(tmpDir, "nested", "dir", "result.yml"),
			checkFunc: func(t *testing.T, content []byte) {
				var got map[string]any
				if err := yaml.Unmarshal(content, &got); err != nil {
					t.Fatalf("invalid YAML: %v", err)
				}
				if got["integrand"] != "square" || got["run_id"] != sampleReport().RunID {
					t.Errorf("unexpected YAML report: %v", got)
				}
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if err := WriteResultToFile(sampleReport(), tc.path); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			content, err := os.ReadFile(tc.path)
			if err != nil {
				t.Fatalf("Failed to read output file: %v", err)
			}
			tc.checkFunc(t, content)
		})
	}
}

// TestWriteResultToFile_ZeroArea checks that a run whose area is exactly zero
// keeps its area key, unlike a failed run.
func TestWriteResultToFile_ZeroArea(t *testing.T) {
	t.Parallel()
	report := sampleReport()
	report.Area = 0
	report.Runs = NewRunEntries([]orchestration.CalculationResult{
		{Name: "Parallel", Result: 0},
		{Name: "Serial", Err: errors.New("undefined integrand")},
	})
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "zero.json")
	if err := WriteResultToFile(report, jsonPath); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	content, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	var raw struct {
		Runs []map[string]any `json:"runs"`
	}
	if err := json.Unmarshal(content, &raw); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if area, ok := raw.Runs[0]["area"]; !ok || area != 0.0 {
		t.Errorf("zero area should be written, got %v", raw.Runs[0])
	}
	if _, ok := raw.Runs[1]["area"]; ok {
		t.Errorf("failed run should have no area, got %v", raw.Runs[1])
	}

	yamlPath := filepath.Join(dir, "zero.yaml")
	if err := WriteResultToFile(report, yamlPath); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	content, err = os.ReadFile(yamlPath)
	if err != nil {
		t.Fatal(err)
	}
	var got Report
	if err := yaml.Unmarshal(content, &got); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	if got.Runs[0].Area == nil || *got.Runs[0].Area != 0 || got.Runs[1].Area != nil {
		t.Errorf("unexpected YAML runs: %+v", got.Runs)
	}

	textPath := filepath.Join(dir, "zero.txt")
	if err := WriteResultToFile(report, textPath); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	content, err = os.ReadFile(textPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(content, []byte("# Parallel: 0 in")) || !bytes.Contains(content, []byte("# Serial: failed")) {
		t.Errorf("unexpected text report:\n%s", content)
	}
}

func TestWriteResultToFile_EmptyPath(t *testing.T) {
	t.Parallel()
	if err := WriteResultToFile(sampleReport(), ""); err != nil {
		t.Errorf("empty path should be a no-op, got %v", err)
	}
}

func TestWriteResultToFile_Unwritable(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	err := WriteResultToFile(sampleReport(), filepath.Join(blocker, "out.json"))
	if err == nil {
		t.Fatal("expected an error when the parent is a regular file")
	}
	if !strings.Contains(err.Error(), "failed to create directory") || errors.Unwrap(err) == nil {
		t.Errorf("expected a wrapped directory error, got %v", err)
	}
}

func TestFormatQuietResult(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   float64
		want string
	}{
		{14, "14"},
		{21.333333333333332, "21.333333333333332"},
		{-0.5, "-0.5"},
	}
	for _, tt := range tests {
		if got := FormatQuietResult(tt.in); got != tt.want {
			t.Errorf("FormatQuietResult(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}

	var buf bytes.Buffer
	DisplayQuietResult(&buf, 14)
	if buf.String() != "14\n" {
		t.Errorf("DisplayQuietResult wrote %q", buf.String())
	}
}
