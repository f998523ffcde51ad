// Package demo owns the application state of the widget demo and applies
// user input to it.
//
// A Controller is not safe for concurrent use. The TUI calls it from the
// Bubble Tea update loop; the MCP server serialises calls with a mutex.
package demo

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"widgetdemo/internal/config"
	"widgetdemo/ui/tui/router"
	"widgetdemo/ui/tui/state"
	"widgetdemo/ui/tui/styles"
	"widgetdemo/ui/tui/transition"
	"widgetdemo/ui/tui/views"
	"widgetdemo/ui/tui/widget"
)

var (
	// ErrTransitioning is returned for input that arrives while a screen
	// load is animating.
	ErrTransitioning = errors.New("screen transition in progress")
	// ErrNoWidget is returned when a role is not on the active screen.
	ErrNoWidget = errors.New("widget not on active screen")
)

// Options configures a Controller.
type Options struct {
	Config config.Config
	Styles *styles.Registry
	Clock  func() time.Time
	Logger *slog.Logger
}

// Controller drives the demo: it builds screens, routes events and
// completes transitions.
type Controller struct {
	cfg     config.Config
	styles  *styles.Registry
	router  *router.Router
	physics transition.Physics
	now     func() time.Time
	log     *slog.Logger

	state state.AppState
	built []*widget.Screen
}

// New returns a controller. Call Start before feeding input.
func New(opts Options) *Controller {
	if opts.Styles == nil {
		opts.Styles = styles.Default()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	cfg := opts.Config
	timing := router.Timing{Duration: cfg.Transition.Duration, Delay: cfg.Transition.Delay}
	return &Controller{
		cfg:    cfg,
		styles: opts.Styles,
		router: router.New(timing, opts.Logger),
		physics: transition.Physics{
			FPS:       cfg.Transition.FPS,
			Frequency: cfg.Transition.Frequency,
			Damping:   cfg.Transition.Damping,
		},
		now:   opts.Clock,
		log:   opts.Logger,
		state: state.AppState{Demo: state.Demo(cfg.Demo)},
	}
}

// Start initialises styles and shows the first screen of the configured
// demo without animation.
func (c *Controller) Start() {
	c.styles.Init()
	switch c.state.Demo {
	case state.DemoSlider:
		c.activate(c.build(widget.ScreenSlider))
	default:
		c.loadBootScreen()
	}
}

func (c *Controller) loadBootScreen() {
	c.state.Boot = c.build(widget.ScreenBoot)
	c.activate(c.state.Boot)
}

// State returns a copy of the application state.
func (c *Controller) State() state.AppState { return c.state }

// Active returns the displayed screen.
func (c *Controller) Active() *widget.Screen { return c.state.Active }

// Transitioning reports whether a screen load is animating.
func (c *Controller) Transitioning() bool { return c.state.Pending != nil }

// LoadTabs builds a fresh tabs screen. It satisfies router.Navigator.
func (c *Controller) LoadTabs() *widget.Screen {
	return c.build(widget.ScreenTabs)
}

// BootScreen returns the boot screen kept for reuse.
func (c *Controller) BootScreen() *widget.Screen {
	return c.state.Boot
}

// LoadScreenAnimated schedules s to become active once spec completes.
// A load requested while another is in flight is ignored.
func (c *Controller) LoadScreenAnimated(s *widget.Screen, spec transition.Spec) {
	if s == nil {
		return
	}
	if c.state.Pending != nil {
		c.log.Warn("screen load ignored", "screen", string(s.Kind), "reason", "transition in progress")
		return
	}
	if spec.Total() <= 0 {
		c.activate(s)
		return
	}
	now := c.now()
	c.state.Pending = &state.Pending{
		Incoming:   s,
		Transition: transition.Begin(spec, c.physics, now),
	}
	c.log.Info("transition started",
		"from", string(c.state.ActiveKind()),
		"to", string(s.Kind),
		"direction", spec.Direction.String(),
		"duration", spec.Duration,
		"delay", spec.Delay,
	)
}

// Advance steps the pending transition to now and completes it when its
// time is up. It reports whether a transition was in flight.
func (c *Controller) Advance(now time.Time) bool {
	p := c.state.Pending
	if p == nil {
		return false
	}
	p.Transition.Step(now)
	if p.Transition.Done(now) {
		c.state.Pending = nil
		c.activate(p.Incoming)
		c.log.Info("transition committed", "screen", string(p.Incoming.Kind))
	}
	return true
}

func (c *Controller) build(kind widget.ScreenKind) *widget.Screen {
	s := views.Build(kind, c.styles)
	c.state.Live++
	c.built = append(c.built, s)
	c.log.Debug("screen built", "screen", string(kind), "id", s.ID.String(), "live", c.state.Live)
	return s
}

func (c *Controller) activate(s *widget.Screen) {
	old := c.state.Active
	c.state.Active = s
	c.log.Info("screen activated", "screen", string(s.Kind), "id", s.ID.String())
	if old != nil && old != s && old != c.state.Boot {
		c.release(old)
	}
}

func (c *Controller) release(s *widget.Screen) {
	if s.Released() {
		return
	}
	s.Release()
	c.state.Live--
	c.log.Debug("screen released", "screen", string(s.Kind), "id", s.ID.String(), "live", c.state.Live)
}

// dispatch routes ev and releases any screen a handler built but did not
// hand to a load.
func (c *Controller) dispatch(ev router.Event) bool {
	c.built = c.built[:0]
	handled := c.router.Dispatch(c, c.state.Active, ev)
	for _, s := range c.built {
		if s == c.state.Active || s == c.state.Boot {
			continue
		}
		if c.state.Pending != nil && s == c.state.Pending.Incoming {
			continue
		}
		c.release(s)
	}
	c.built = c.built[:0]
	return handled
}

func (c *Controller) accepts(w *widget.Widget) bool {
	return c.state.Pending == nil && c.state.Active != nil && c.state.Active.Owns(w)
}

// Press marks w pressed.
func (c *Controller) Press(w *widget.Widget) bool {
	if !c.accepts(w) {
		return false
	}
	w.AddState(styles.StatePressed)
	c.dispatch(router.Event{Kind: router.KindPressed, Target: w})
	return true
}

// Release clears the pressed state of w. The state is cleared even when
// input is blocked so a widget never stays pressed across a transition.
func (c *Controller) Release(w *widget.Widget) bool {
	if w == nil {
		return false
	}
	w.ClearState(styles.StatePressed)
	if !c.accepts(w) {
		return false
	}
	c.dispatch(router.Event{Kind: router.KindReleased, Target: w})
	return true
}

// Click performs the widget's primary action: buttons activate,
// checkboxes toggle and tab headers select their page.
func (c *Controller) Click(w *widget.Widget) bool {
	if !c.accepts(w) {
		return false
	}
	switch w.Type() {
	case widget.TypeButton:
		c.dispatch(router.Event{Kind: router.KindActivated, Target: w})
	case widget.TypeCheckbox:
		w.SetChecked(!w.Checked())
		c.dispatch(router.Event{Kind: router.KindValueChanged, Target: w})
	case widget.TypeTab:
		w.Parent().SelectTab(w.TabIndex())
	default:
		return false
	}
	return true
}

// SetSliderValue drags slider w to v. ValueChanged fires only when the
// clamped value differs from the current one.
func (c *Controller) SetSliderValue(w *widget.Widget, v int) bool {
	if !c.accepts(w) || w.Type() != widget.TypeSlider {
		return false
	}
	if !w.SetValue(v) {
		return false
	}
	c.recordHistory(w.Value())
	c.dispatch(router.Event{Kind: router.KindValueChanged, Target: w})
	return true
}

// SelectTab shows page i of the active screen's tab view.
func (c *Controller) SelectTab(i int) bool {
	if c.state.Pending != nil || c.state.Active == nil {
		return false
	}
	tv := c.state.Active.Find(widget.RoleTabView)
	if tv == nil {
		return false
	}
	return tv.SelectTab(i)
}

func (c *Controller) recordHistory(v int) {
	h := append(c.state.SliderHistory, float64(v))
	if n := c.cfg.History.Capacity; n > 0 && len(h) > n {
		h = h[len(h)-n:]
	}
	c.state.SliderHistory = h
}

// Find returns the widget with role on the active screen.
func (c *Controller) Find(role widget.Role) (*widget.Widget, error) {
	if c.state.Pending != nil {
		return nil, ErrTransitioning
	}
	if c.state.Active == nil {
		return nil, ErrNoWidget
	}
	w := c.state.Active.Find(role)
	if w == nil {
		return nil, fmt.Errorf("%w: %q on %s", ErrNoWidget, role, c.state.Active.Kind)
	}
	return w, nil
}

// ClickRole clicks the widget with role on the active screen.
func (c *Controller) ClickRole(role widget.Role) error {
	w, err := c.Find(role)
	if err != nil {
		return err
	}
	if !c.Click(w) {
		return fmt.Errorf("%s %q does not take clicks", w.Type(), role)
	}
	return nil
}
