package ui

import (
	"strings"
	"testing"
)

func TestSetTheme(t *testing.T) {
	orig := GetCurrentTheme()
	defer SetCurrentTheme(orig)

	tests := []struct {
		name string
		want string
	}{
		{"dark", "dark"},
		{"light", "light"},
		{"none", "none"},
		{"unknown", "dark"},
	}
	for _, tt := range tests {
		SetTheme(tt.name)
		if got := GetCurrentTheme().Name; got != tt.want {
			t.Errorf("SetTheme(%q): got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestInitTheme_NoColorFlag(t *testing.T) {
	orig := GetCurrentTheme()
	defer SetCurrentTheme(orig)

	InitTheme(true)
	if IsColorEnabled() {
		t.Error("expected colors to be disabled")
	}
	if ColorRed() != "" || ColorReset() != "" {
		t.Error("expected empty escape codes")
	}
}

func TestInitTheme_NoColorEnv(t *testing.T) {
	orig := GetCurrentTheme()
	defer SetCurrentTheme(orig)

	t.Setenv("NO_COLOR", "1")
	InitTheme(false)
	if GetCurrentTheme().Name != "none" {
		t.Errorf("expected none theme, got %s", GetCurrentTheme().Name)
	}
}

func TestColorAccessors(t *testing.T) {
	orig := GetCurrentTheme()
	defer SetCurrentTheme(orig)

	SetCurrentTheme(DarkTheme)
	pairs := map[string]string{
		ColorRed():       DarkTheme.Error,
		ColorGreen():     DarkTheme.Success,
		ColorYellow():    DarkTheme.Warning,
		ColorBlue():      DarkTheme.Primary,
		ColorMagenta():   DarkTheme.Info,
		ColorCyan():      DarkTheme.Secondary,
		ColorBold():      DarkTheme.Bold,
		ColorUnderline(): DarkTheme.Underline,
		ColorReset():     DarkTheme.Reset,
	}
	for got, want := range pairs {
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
}

func TestTitle(t *testing.T) {
	orig := GetCurrentTheme()
	defer SetCurrentTheme(orig)

	SetCurrentTheme(NoColorTheme)
	if got := Title("Results"); got != "--- Results ---" {
		t.Errorf("Title() = %q", got)
	}
	if got := Dim("x"); got != "x" {
		t.Errorf("Dim() = %q", got)
	}

	SetCurrentTheme(DarkTheme)
	if got := Title("Results"); !strings.Contains(got, "Results") {
		t.Errorf("Title() = %q", got)
	}
}
