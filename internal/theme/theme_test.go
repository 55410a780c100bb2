package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/photodesk/internal/model"
)

func TestFormatPrice(t *testing.T) {
	price := 1500000
	if got := FormatPrice(&price); got != "$1.500.000" {
		t.Errorf("FormatPrice(1500000) = %q, want %q", got, "$1.500.000")
	}
	if got := FormatPrice(nil); got != "" {
		t.Errorf("FormatPrice(nil) = %q, want empty", got)
	}
}

func TestProgressStyleDistinguishesStates(t *testing.T) {
	complete := ProgressStyle(5, 5).GetForeground()
	started := ProgressStyle(2, 5).GetForeground()
	untouched := ProgressStyle(0, 5).GetForeground()

	if complete == started || started == untouched || complete == untouched {
		t.Error("expected three distinct progress colors")
	}
}

func TestStatusStyleColors(t *testing.T) {
	tests := []struct {
		status string
		want   lipgloss.TerminalColor
	}{
		{model.EventStatusActive, ColorBlue},
		{model.SessionStatusPending, ColorYellow},
		{model.SessionStatusCompleted, ColorGreen},
		{model.EventStatusCompleted, ColorGreen},
		{model.EventStatusArchived, ColorGray},
	}
	for _, tt := range tests {
		if got := StatusStyle(tt.status).GetForeground(); got != tt.want {
			t.Errorf("StatusStyle(%q) foreground = %v, want %v", tt.status, got, tt.want)
		}
	}
}
