package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

const testRunID = "3b1f2a9e-5c4d-4e8f-9a7b-0c6d5e4f3a2b"

// logRun emits the entries a calculation run produces, one per level.
func logRun(l Logger) {
	l.Debug("run started",
		String("run_id", testRunID),
		String("integrand", "square"),
		Float64("a", 0),
		Float64("b", 4),
		Int("n", 4),
	)
	l.Info("metrics exported", String("run_id", testRunID), String("path", "riemann.prom"))
	l.Error("calculation failed", errors.New("integrand is undefined: f(0) = +Inf"),
		String("run_id", testRunID),
		String("calculator", "Serial"),
		Duration("duration", 1500*time.Microsecond),
	)
}

func decodeEntries(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var entry map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			t.Fatalf("invalid JSON log line %q: %v", scanner.Text(), err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestNewLevelLogger_Filtering(t *testing.T) {
	t.Parallel()
	tests := []struct {
		level    string
		messages []string
	}{
		{"debug", []string{"run started", "metrics exported", "calculation failed"}},
		{"DEBUG", []string{"run started", "metrics exported", "calculation failed"}},
		{"info", []string{"metrics exported", "calculation failed"}},
		{"", []string{"metrics exported", "calculation failed"}},
		{"chatty", []string{"metrics exported", "calculation failed"}},
		{"error", []string{"calculation failed"}},
		{"disabled", nil},
	}
	for _, tt := range tests {
		t.Run("level="+tt.level, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			logRun(NewLevelLogger(&buf, "riemann", tt.level))

			entries := decodeEntries(t, &buf)
			if len(entries) != len(tt.messages) {
				t.Fatalf("expected %d entries, got %d: %v", len(tt.messages), len(entries), entries)
			}
			for i, want := range tt.messages {
				if entries[i]["message"] != want {
					t.Errorf("entry %d: expected %q, got %v", i, want, entries[i]["message"])
				}
				if entries[i]["run_id"] != testRunID || entries[i]["component"] != "riemann" {
					t.Errorf("entry %d lost its run fields: %v", i, entries[i])
				}
				if _, ok := entries[i]["time"]; !ok {
					t.Errorf("entry %d has no timestamp", i)
				}
			}
		})
	}
}

func TestZerologAdapter_RunFields(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logRun(NewLevelLogger(&buf, "riemann", "debug"))
	entries := decodeEntries(t, &buf)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	started := entries[0]
	if started["level"] != "debug" || started["integrand"] != "square" || started["n"] != 4.0 || started["b"] != 4.0 {
		t.Errorf("unexpected run start entry: %v", started)
	}

	failed := entries[2]
	if failed["level"] != "error" || failed["calculator"] != "Serial" {
		t.Errorf("unexpected failure entry: %v", failed)
	}
	if failed["error"] != "integrand is undefined: f(0) = +Inf" {
		t.Errorf("expected the cause under \"error\", got %v", failed["error"])
	}
	if failed["duration"] != 1.5 {
		t.Errorf("expected the duration in milliseconds, got %v", failed["duration"])
	}
}

func TestZerologAdapter_ErrorWithoutCause(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	NewLevelLogger(&buf, "riemann", "info").Error("saving result failed", nil, String("path", "out.json"))

	entries := decodeEntries(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if _, ok := entries[0]["error"]; ok {
		t.Errorf("nil error should not be written: %v", entries[0])
	}
	if entries[0]["path"] != "out.json" {
		t.Errorf("unexpected entry: %v", entries[0])
	}
}

func TestApplyFields_OtherValues(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	NewLevelLogger(&buf, "riemann", "info").Info("worker summary",
		Field{Key: "cause", Value: errors.New("canceled")},
		Field{Key: "partials", Value: []float64{1.5, 2.5}},
		Field{Key: "parallel", Value: true},
	)

	entries := decodeEntries(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry["cause"] != "canceled" || entry["parallel"] != true {
		t.Errorf("unexpected entry: %v", entry)
	}
	partials, ok := entry["partials"].([]any)
	if !ok || len(partials) != 2 || partials[1] != 2.5 {
		t.Errorf("expected the slice to be encoded, got %v", entry["partials"])
	}
}

var _ Logger = (*ZerologAdapter)(nil)
