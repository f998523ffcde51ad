package tui

import (
	"log/slog"
	"time"

	"widgetdemo/internal/config"
	"widgetdemo/internal/demo"
	"widgetdemo/ui/tui/components"
	"widgetdemo/ui/tui/state"
	"widgetdemo/ui/tui/styles"
	"widgetdemo/ui/tui/widget"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/oklog/ulid/v2"
)

const (
	chartHeight   = 6
	minChartSpace = 20
)

// MainModel is the Bubble Tea model in front of the demo controller. It
// turns keys and pointer events into controller input and draws frames.
type MainModel struct {
	ctl   *demo.Controller
	cfg   config.Config
	log   *slog.Logger
	zones *zone.Manager
	keys  keyMap
	help  help.Model

	history components.Component

	screen    ulid.ULID
	focus     int
	pressed   *widget.Widget
	dragging  *widget.Widget
	animating bool
	quitting  bool
	width     int
	height    int
}

// AnimateMsg drives a pending screen transition.
type AnimateMsg time.Time

// InitialModel wraps a started controller.
func InitialModel(ctl *demo.Controller, cfg config.Config, log *slog.Logger) MainModel {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	m := MainModel{
		ctl:     ctl,
		cfg:     cfg,
		log:     log,
		zones:   zone.New(),
		keys:    newKeyMap(),
		help:    help.New(),
		history: components.NewHistoryWidget(widget.DefaultWidth-4, chartHeight, cfg.History.Capacity),
	}
	m.sync()
	return m
}

func (m *MainModel) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle("widgetdemo"), m.history.Init())
}

func (m *MainModel) animateCmd() tea.Cmd {
	fps := m.cfg.Transition.FPS
	if fps <= 0 {
		fps = 60
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return AnimateMsg(t)
	})
}

func (m *MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case AnimateMsg:
		return m.handleAnimateMsg(msg)

	case tea.WindowSizeMsg:
		return m.handleWindowSizeMsg(msg)
	}

	return m, nil
}

// sync resets per-screen input state when the active screen changes.
func (m *MainModel) sync() {
	active := m.ctl.Active()
	if active == nil || active.ID == m.screen {
		return
	}
	m.screen = active.ID
	m.focus = 0
	m.pressed = nil
	m.dragging = nil
	m.keys.forScreen(active.Kind)
}

// afterInput starts the animation ticker if input began a transition.
func (m *MainModel) afterInput() tea.Cmd {
	m.sync()
	if m.ctl.Transitioning() && !m.animating {
		m.animating = true
		return m.animateCmd()
	}
	return nil
}

func (m *MainModel) focused() *widget.Widget {
	if m.ctl.Active() == nil {
		return nil
	}
	ws := m.ctl.Active().Focusable()
	if len(ws) == 0 {
		return nil
	}
	return ws[m.focus%len(ws)]
}

func (m *MainModel) moveFocus(delta int) {
	ws := m.ctl.Active().Focusable()
	if len(ws) == 0 {
		return
	}
	m.focus = ((m.focus+delta)%len(ws) + len(ws)) % len(ws)
}

func (m *MainModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.ctl.Transitioning() {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Next):
		m.moveFocus(1)
	case key.Matches(msg, m.keys.Prev):
		m.moveFocus(-1)
	case key.Matches(msg, m.keys.Activate):
		if w := m.focused(); w != nil {
			m.ctl.Press(w)
			m.ctl.Click(w)
			m.ctl.Release(w)
		}
	case key.Matches(msg, m.keys.Tab):
		m.ctl.SelectTab(int(msg.Runes[0] - '1'))
		m.focus = 0
	case key.Matches(msg, m.keys.Dec):
		m.nudgeSlider(-1)
	case key.Matches(msg, m.keys.Inc):
		m.nudgeSlider(1)
	case key.Matches(msg, m.keys.PageDec):
		m.nudgeSlider(-10)
	case key.Matches(msg, m.keys.PageInc):
		m.nudgeSlider(10)
	case key.Matches(msg, m.keys.Min):
		m.jumpSlider(false)
	case key.Matches(msg, m.keys.Max):
		m.jumpSlider(true)
	}
	return m, m.afterInput()
}

func (m *MainModel) slider() *widget.Widget {
	if w := m.focused(); w != nil && w.Type() == widget.TypeSlider {
		return w
	}
	w, err := m.ctl.Find(widget.RoleSlider)
	if err != nil {
		return nil
	}
	return w
}

func (m *MainModel) nudgeSlider(delta int) {
	if s := m.slider(); s != nil {
		m.ctl.SetSliderValue(s, s.Value()+delta)
	}
}

func (m *MainModel) jumpSlider(top bool) {
	s := m.slider()
	if s == nil {
		return
	}
	lo, hi := s.Range()
	if top {
		m.ctl.SetSliderValue(s, hi)
	} else {
		m.ctl.SetSliderValue(s, lo)
	}
}

// hit returns the visible widget under the pointer.
func (m *MainModel) hit(msg tea.MouseMsg) *widget.Widget {
	active := m.ctl.Active()
	if active == nil {
		return nil
	}
	for _, w := range active.Visible() {
		z := m.zones.Get(widget.ZoneID(w))
		if z != nil && z.InBounds(msg) {
			return w
		}
	}
	return nil
}

// sliderValueAt maps a column inside a slider track to a value.
func sliderValueAt(s *widget.Widget, col int) int {
	cells := s.Width()
	lo, hi := s.Range()
	if cells < 2 {
		return lo
	}
	if col < 0 {
		col = 0
	}
	if col > cells-1 {
		col = cells - 1
	}
	return lo + (col*(hi-lo)+(cells-1)/2)/(cells-1)
}

func (m *MainModel) dragTo(msg tea.MouseMsg) {
	z := m.zones.Get(widget.ZoneID(m.dragging))
	if z == nil || z.IsZero() {
		return
	}
	m.ctl.SetSliderValue(m.dragging, sliderValueAt(m.dragging, msg.X-z.StartX))
}

func (m *MainModel) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.ctl.Transitioning() {
		if msg.Action == tea.MouseActionRelease && m.pressed != nil {
			m.ctl.Release(m.pressed)
			m.pressed = nil
		}
		m.dragging = nil
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		w := m.hit(msg)
		if w == nil {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if w.Type() == widget.TypeSlider {
				m.ctl.SetSliderValue(w, w.Value()+1)
			}
		case tea.MouseButtonWheelDown:
			if w.Type() == widget.TypeSlider {
				m.ctl.SetSliderValue(w, w.Value()-1)
			}
		case tea.MouseButtonLeft:
			m.focusOn(w)
			m.ctl.Press(w)
			if w.Type() == widget.TypeSlider {
				m.dragging = w
				m.dragTo(msg)
			} else {
				m.pressed = w
			}
		}

	case tea.MouseActionMotion:
		if m.dragging != nil {
			m.dragTo(msg)
		}

	case tea.MouseActionRelease:
		if m.dragging != nil {
			m.ctl.Release(m.dragging)
			m.dragging = nil
		}
		if m.pressed != nil {
			w := m.pressed
			m.pressed = nil
			m.ctl.Release(w)
			if m.hit(msg) == w {
				m.log.Debug("pointer click", "role", string(w.Role()), "widget", w.Type().String())
				m.ctl.Click(w)
			}
		}
	}
	return m, m.afterInput()
}

func (m *MainModel) focusOn(w *widget.Widget) {
	for i, f := range m.ctl.Active().Focusable() {
		if f == w {
			m.focus = i
			return
		}
	}
}

func (m *MainModel) handleAnimateMsg(msg AnimateMsg) (tea.Model, tea.Cmd) {
	m.ctl.Advance(time.Time(msg))
	m.sync()
	if m.ctl.Transitioning() {
		return m, m.animateCmd()
	}
	m.animating = false
	return m, nil
}

func (m *MainModel) handleWindowSizeMsg(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width
	_, cmd := m.history.Update(msg)
	return m, cmd
}

func (m *MainModel) showChart(bodyHeight int) bool {
	return m.ctl.State().Demo == state.DemoSlider && bodyHeight-chartHeight-3 >= minChartSpace
}

func (m *MainModel) View() string {
	if m.quitting {
		return "Bye!\n"
	}

	width, height := m.width, m.height
	if width <= 0 {
		width = widget.DefaultWidth
	}
	if height <= 0 {
		height = widget.DefaultHeight
	}

	footer := styles.FooterStyle.Render(m.help.View(m.keys))
	bodyHeight := height - lipgloss.Height(footer)

	var chart string
	if m.showChart(bodyHeight) {
		m.history.Update(components.HistoryMsg(m.ctl.State().SliderHistory))
		chart = m.history.View()
		bodyHeight -= lipgloss.Height(chart)
	}
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	frame := m.ctl.Frame(widget.RenderOptions{
		Width:  width,
		Height: bodyHeight,
		Marker: m.zones,
		Focus:  m.focused(),
	})

	parts := []string{frame}
	if chart != "" {
		parts = append(parts, chart)
	}
	parts = append(parts, footer)
	return m.zones.Scan(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// Start runs the interactive demo until the user quits.
func Start(cfg config.Config, log *slog.Logger) error {
	ctl := demo.New(demo.Options{
		Config: cfg,
		Styles: styles.Default(),
		Logger: log,
	})
	ctl.Start()

	m := InitialModel(ctl, cfg, log)
	defer m.zones.Close()

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(&m, opts...)
	_, err := p.Run()
	return err
}
