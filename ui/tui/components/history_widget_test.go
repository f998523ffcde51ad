package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestHistoryWidgetUpdate(t *testing.T) {
	var c Component = NewHistoryWidget(40, 6, 3)
	hw := c.(*HistoryWidget)

	c.Update(HistoryMsg{10, 20, 30, 40})
	want := []float64{20, 30, 40}
	if len(hw.History) != len(want) {
		t.Fatalf("Expected %d values, got %v", len(want), hw.History)
	}
	for i, v := range want {
		if hw.History[i] != v {
			t.Errorf("History[%d] = %v; want %v", i, hw.History[i], v)
		}
	}

	c.Update(tea.WindowSizeMsg{Width: 64, Height: 30})
	if hw.Width != 60 || hw.Height != 6 {
		t.Errorf("Expected 60x6 after resize, got %dx%d", hw.Width, hw.Height)
	}

	c.Update(tea.WindowSizeMsg{Width: 8, Height: 30})
	if hw.Width != 60 {
		t.Errorf("Expected tiny terminals ignored, got width %d", hw.Width)
	}

	if !strings.Contains(c.View(), "Slider History") {
		t.Error("Expected the chart title in the view")
	}
}
