package tui

import (
	"strings"
	"testing"
	"time"

	"widgetdemo/internal/config"
	"widgetdemo/internal/demo"
	"widgetdemo/ui/tui/styles"
	"widgetdemo/ui/tui/widget"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
)

func newModel(t *testing.T, demoName string) *MainModel {
	t.Helper()
	cfg := config.Default().WithDemo(demoName)
	ctl := demo.New(demo.Options{Config: cfg, Styles: styles.New()})
	ctl.Start()
	m := InitialModel(ctl, cfg, nil)
	t.Cleanup(m.zones.Close)
	return &m
}

func press(m *MainModel, msg tea.KeyMsg) (*MainModel, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(*MainModel), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// settle completes any pending transition by jumping the animation clock.
func settle(m *MainModel) *MainModel {
	updated, _ := m.Update(AnimateMsg(time.Now().Add(time.Minute)))
	return updated.(*MainModel)
}

func TestInitialFocusIsNextButton(t *testing.T) {
	m := newModel(t, config.DemoBoot)

	if m.ctl.Active().Kind != widget.ScreenBoot {
		t.Fatalf("Expected boot screen, got %s", m.ctl.Active().Kind)
	}
	if f := m.focused(); f == nil || f.Role() != widget.RoleNext {
		t.Errorf("Expected focus on the next button, got %v", f)
	}
}

func TestFocusCycles(t *testing.T) {
	m := newModel(t, config.DemoBoot)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focused().Role() != widget.RoleAgree {
		t.Errorf("Expected focus on checkbox after tab, got %s", m.focused().Role())
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focused().Role() != widget.RoleNext {
		t.Errorf("Expected focus to wrap to next button, got %s", m.focused().Role())
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focused().Role() != widget.RoleAgree {
		t.Errorf("Expected shift+tab to go back to checkbox, got %s", m.focused().Role())
	}
}

func TestSpaceTogglesCheckbox(t *testing.T) {
	m := newModel(t, config.DemoBoot)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	cb := m.ctl.Active().Find(widget.RoleAgree)
	if !cb.Checked() {
		t.Error("Expected checkbox checked after space")
	}
	if cb.State()&styles.StatePressed != 0 {
		t.Error("Expected pressed state cleared after activation")
	}
}

func TestEnterNavigatesWithAnimation(t *testing.T) {
	m := newModel(t, config.DemoBoot)
	boot := m.ctl.Active()

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil || !m.animating {
		t.Fatal("Expected an animation tick after pressing next")
	}
	if m.ctl.Active() != boot {
		t.Error("Expected boot to stay active until the slide completes")
	}

	// Input is ignored while the slide runs.
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != 0 {
		t.Errorf("Expected focus unchanged during transition, got %d", m.focus)
	}

	m = settle(m)
	if m.ctl.Active().Kind != widget.ScreenTabs {
		t.Fatalf("Expected tabs screen after the slide, got %s", m.ctl.Active().Kind)
	}
	if m.animating {
		t.Error("Expected animation to stop once settled")
	}
	if f := m.focused(); f == nil || f.Role() != widget.RoleBack {
		t.Errorf("Expected focus on the back button, got %v", f)
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = settle(m)
	if m.ctl.Active() != boot {
		t.Error("Expected back to return to the original boot screen")
	}
}

func TestAnimateKeepsTickingUntilDone(t *testing.T) {
	m := newModel(t, config.DemoBoot)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})

	updated, cmd := m.Update(AnimateMsg(time.Now()))
	m = updated.(*MainModel)
	if cmd == nil {
		t.Error("Expected another tick while transitioning")
	}
	if strings.TrimSpace(ansi.Strip(m.View())) == "" {
		t.Error("Expected a frame during the transition")
	}
}

func TestTabKeysSelectPages(t *testing.T) {
	m := newModel(t, config.DemoBoot)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = settle(m)

	m, _ = press(m, runes("3"))
	tv := m.ctl.Active().Find(widget.RoleTabView)
	if tv.SelectedTab() != 2 {
		t.Errorf("Expected third tab selected, got %d", tv.SelectedTab())
	}
	if m.focused() != nil {
		t.Error("Expected nothing focusable on the third tab")
	}
	m, _ = press(m, runes("2"))
	if f := m.focused(); f == nil || f.Role() != widget.RoleTab2Button {
		t.Errorf("Expected second tab's button focused, got %v", f)
	}
}

func TestSliderKeys(t *testing.T) {
	m := newModel(t, config.DemoSlider)
	label := m.ctl.Active().Find(widget.RoleSliderLabel)

	steps := []struct {
		msg  tea.KeyMsg
		want string
	}{
		{tea.KeyMsg{Type: tea.KeyRight}, "1"},
		{tea.KeyMsg{Type: tea.KeyPgUp}, "11"},
		{tea.KeyMsg{Type: tea.KeyEnd}, "100"},
		{tea.KeyMsg{Type: tea.KeyRight}, "100"},
		{tea.KeyMsg{Type: tea.KeyPgDown}, "90"},
		{tea.KeyMsg{Type: tea.KeyLeft}, "89"},
		{tea.KeyMsg{Type: tea.KeyHome}, "0"},
	}
	for _, s := range steps {
		m, _ = press(m, s.msg)
		if label.Text() != s.want {
			t.Errorf("after %s: label = %q; want %q", s.msg, label.Text(), s.want)
		}
	}
}

func TestSliderKeysDisabledOnBoot(t *testing.T) {
	m := newModel(t, config.DemoBoot)
	if m.keys.Inc.Enabled() || m.keys.Tab.Enabled() {
		t.Error("Expected slider and tab bindings disabled on boot")
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	if m.ctl.Active().Kind != widget.ScreenBoot {
		t.Error("Expected right arrow to do nothing on boot")
	}
}

// zoneOf draws a frame and waits for the zone manager to record w.
func zoneOf(t *testing.T, m *MainModel, w *widget.Widget) *zone.ZoneInfo {
	t.Helper()
	m.View()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if z := m.zones.Get(widget.ZoneID(w)); !z.IsZero() {
			return z
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("zone for %s never recorded", w.Role())
	return nil
}

func mouse(m *MainModel, x, y int, action tea.MouseAction, button tea.MouseButton) (*MainModel, tea.Cmd) {
	updated, cmd := m.Update(tea.MouseMsg{X: x, Y: y, Action: action, Button: button})
	return updated.(*MainModel), cmd
}

func TestMouseClickOnNextNavigates(t *testing.T) {
	m := newModel(t, config.DemoBoot)
	next := m.ctl.Active().Find(widget.RoleNext)
	z := zoneOf(t, m, next)

	m, _ = mouse(m, z.StartX, z.StartY, tea.MouseActionPress, tea.MouseButtonLeft)
	if next.State()&styles.StatePressed == 0 {
		t.Error("Expected the button pressed while the pointer is down")
	}
	if m.ctl.Transitioning() {
		t.Fatal("Expected no navigation before release")
	}

	m, cmd := mouse(m, z.StartX, z.StartY, tea.MouseActionRelease, tea.MouseButtonNone)
	if next.State()&styles.StatePressed != 0 {
		t.Error("Expected pressed state cleared on release")
	}
	if cmd == nil || !m.ctl.Transitioning() {
		t.Fatal("Expected release inside the button to start the slide")
	}

	m = settle(m)
	if m.ctl.Active().Kind != widget.ScreenTabs {
		t.Errorf("Expected tabs screen after the click, got %s", m.ctl.Active().Kind)
	}
}

func TestMouseReleaseOutsideCancels(t *testing.T) {
	m := newModel(t, config.DemoBoot)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = settle(m)

	back := m.ctl.Active().Find(widget.RoleBack)
	z := zoneOf(t, m, back)

	m, _ = mouse(m, z.StartX, z.StartY, tea.MouseActionPress, tea.MouseButtonLeft)
	m, cmd := mouse(m, z.EndX+5, z.EndY+5, tea.MouseActionRelease, tea.MouseButtonNone)
	if cmd != nil || m.ctl.Transitioning() {
		t.Error("Expected release outside the button to do nothing")
	}
	if back.State()&styles.StatePressed != 0 {
		t.Error("Expected pressed state cleared on release")
	}
	if m.ctl.Active().Kind != widget.ScreenTabs {
		t.Errorf("Expected to stay on tabs, got %s", m.ctl.Active().Kind)
	}
}

func TestMouseDragMovesSlider(t *testing.T) {
	m := newModel(t, config.DemoSlider)
	slider := m.ctl.Active().Find(widget.RoleSlider)
	label := m.ctl.Active().Find(widget.RoleSliderLabel)
	z := zoneOf(t, m, slider)

	steps := []struct {
		x      int
		action tea.MouseAction
		want   string
	}{
		{z.StartX + slider.Width() - 1, tea.MouseActionPress, "100"},
		{z.StartX + 10, tea.MouseActionMotion, "53"},
		{z.StartX - 5, tea.MouseActionMotion, "0"},
		{z.StartX + 1, tea.MouseActionMotion, "5"},
	}
	for _, s := range steps {
		m, _ = mouse(m, s.x, z.StartY, s.action, tea.MouseButtonLeft)
		if label.Text() != s.want {
			t.Errorf("pointer at %d: label = %q; want %q", s.x-z.StartX, label.Text(), s.want)
		}
	}
	if slider.State()&styles.StatePressed == 0 {
		t.Error("Expected the slider pressed while dragging")
	}

	m, _ = mouse(m, z.StartX+19, z.StartY, tea.MouseActionRelease, tea.MouseButtonNone)
	if slider.State()&styles.StatePressed != 0 || m.dragging != nil {
		t.Error("Expected the drag to end on release")
	}
	m, _ = mouse(m, z.StartX+19, z.StartY, tea.MouseActionMotion, tea.MouseButtonNone)
	if label.Text() != "5" {
		t.Errorf("Expected motion after release ignored, label = %q", label.Text())
	}
}

func TestMouseWheelNudgesSlider(t *testing.T) {
	m := newModel(t, config.DemoSlider)
	slider := m.ctl.Active().Find(widget.RoleSlider)
	z := zoneOf(t, m, slider)

	steps := []struct {
		button tea.MouseButton
		want   int
	}{
		{tea.MouseButtonWheelUp, 1},
		{tea.MouseButtonWheelUp, 2},
		{tea.MouseButtonWheelDown, 1},
		{tea.MouseButtonWheelDown, 0},
		{tea.MouseButtonWheelDown, 0},
	}
	for i, s := range steps {
		m, _ = mouse(m, z.StartX+3, z.StartY, tea.MouseActionPress, s.button)
		if slider.Value() != s.want {
			t.Errorf("step %d: value = %d; want %d", i, slider.Value(), s.want)
		}
	}

	m, _ = mouse(m, 0, 0, tea.MouseActionPress, tea.MouseButtonWheelUp)
	if slider.Value() != 0 {
		t.Errorf("Expected wheel away from the slider ignored, got %d", slider.Value())
	}
}

func TestSliderValueAt(t *testing.T) {
	scr := widget.NewScreen(widget.ScreenSlider)
	s := widget.Create(widget.TypeSlider, scr.Root())
	s.SetWidth(21)

	tests := []struct {
		col  int
		want int
	}{
		{-5, 0},
		{0, 0},
		{10, 50},
		{20, 100},
		{40, 100},
	}
	for _, tt := range tests {
		if got := sliderValueAt(s, tt.col); got != tt.want {
			t.Errorf("sliderValueAt(%d) = %d; want %d", tt.col, got, tt.want)
		}
	}
}

func TestViewLayout(t *testing.T) {
	m := newModel(t, config.DemoSlider)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 70, Height: 40})
	m = updated.(*MainModel)

	out := ansi.Strip(m.View())
	if !strings.Contains(out, "Welcome to the slider+label demo!") {
		t.Error("Expected the info label in the frame")
	}
	if !strings.Contains(out, "Slider History") {
		t.Error("Expected the history chart on a tall terminal")
	}
	if !strings.Contains(out, "quit") {
		t.Error("Expected the help footer")
	}

	updated, _ = m.Update(tea.WindowSizeMsg{Width: 70, Height: 20})
	m = updated.(*MainModel)
	if strings.Contains(ansi.Strip(m.View()), "Slider History") {
		t.Error("Expected the chart hidden on a short terminal")
	}
}

func TestQuit(t *testing.T) {
	m := newModel(t, config.DemoBoot)
	m, cmd := press(m, runes("q"))
	if cmd == nil || !m.quitting {
		t.Fatal("Expected quit command")
	}
	if m.View() != "Bye!\n" {
		t.Errorf("Unexpected final view %q", m.View())
	}
}
