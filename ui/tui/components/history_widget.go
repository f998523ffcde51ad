package components

import (
	"widgetdemo/ui/tui/styles"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/linechart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HistoryMsg replaces the values shown by a HistoryWidget.
type HistoryMsg []float64

// HistoryWidget charts the most recent slider values.
type HistoryWidget struct {
	Chart    linechart.Model
	History  []float64
	Capacity int
	Width    int
	Height   int
}

func NewHistoryWidget(width, height, capacity int) *HistoryWidget {
	if capacity < 2 {
		capacity = 2
	}
	// width, height, minX, maxX, minY, maxY
	lc := linechart.New(width, height, 0, float64(capacity-1), 0, 100)
	return &HistoryWidget{
		Chart:    lc,
		History:  make([]float64, 0, capacity),
		Capacity: capacity,
		Width:    width,
		Height:   height,
	}
}

func (c *HistoryWidget) Init() tea.Cmd {
	return nil
}

// Push appends one value, dropping the oldest beyond capacity.
func (c *HistoryWidget) Push(value float64) {
	c.History = append(c.History, value)
	if len(c.History) > c.Capacity {
		c.History = c.History[len(c.History)-c.Capacity:]
	}
}

// Set replaces the charted values with the tail of values.
func (c *HistoryWidget) Set(values []float64) {
	c.History = c.History[:0]
	for _, v := range values {
		c.Push(v)
	}
}

// Update follows the terminal width and takes new values from HistoryMsg.
func (c *HistoryWidget) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.Resize(msg.Width-4, c.Height)
	case HistoryMsg:
		c.Set(msg)
	}
	return c, nil
}

func (c *HistoryWidget) Resize(w, h int) {
	if w < 10 || h < 3 {
		return
	}
	c.Width = w
	c.Height = h
	c.Chart.Resize(w, h)
}

func (c *HistoryWidget) View() string {
	c.Chart.Clear()
	for i := 0; i < len(c.History)-1; i++ {
		c.Chart.DrawBrailleLine(
			canvas.Float64Point{X: float64(i), Y: c.History[i]},
			canvas.Float64Point{X: float64(i + 1), Y: c.History[i+1]},
		)
	}
	c.Chart.DrawXYAxisAndLabel()

	return styles.ChartCardStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Bold(true).Render("Slider History"),
			c.Chart.View(),
		),
	)
}
