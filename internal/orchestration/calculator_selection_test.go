package orchestration

import (
	"testing"

	"github.com/agbru/riemann/internal/riemann"
)

func TestGetCalculatorsToRun(t *testing.T) {
	t.Parallel()
	factory := riemann.NewDefaultFactory()

	tests := []struct {
		algo  string
		names []string
	}{
		{"all", []string{"Parallel", "Serial"}},
		{"parallel", []string{"Parallel"}},
		{"serial", []string{"Serial"}},
		{"simpson", nil},
	}
	for _, tt := range tests {
		t.Run(tt.algo, func(t *testing.T) {
			t.Parallel()
			calcs := GetCalculatorsToRun(tt.algo, factory)
			if len(calcs) != len(tt.names) {
				t.Fatalf("expected %d calculators, got %d", len(tt.names), len(calcs))
			}
			for i, c := range calcs {
				if c.Name() != tt.names[i] {
					t.Errorf("calculator %d: expected %s, got %s", i, tt.names[i], c.Name())
				}
			}
		})
	}
}
