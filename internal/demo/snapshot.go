package demo

import (
	"widgetdemo/ui/tui/transition"
	"widgetdemo/ui/tui/widget"
)

// Snapshot is a serialisable summary of what the user sees.
type Snapshot struct {
	Demo          string `json:"demo"`
	Screen        string `json:"screen"`
	ScreenID      string `json:"screen_id"`
	Transitioning bool   `json:"transitioning"`
	Incoming      string `json:"incoming,omitempty"`
	SliderValue   *int   `json:"slider_value,omitempty"`
	SliderLabel   string `json:"slider_label,omitempty"`
	Agreed        *bool  `json:"agreed,omitempty"`
	SelectedTab   *int   `json:"selected_tab,omitempty"`
	LiveScreens   int    `json:"live_screens"`
}

// Snapshot summarises the active screen.
func (c *Controller) Snapshot() Snapshot {
	snap := Snapshot{
		Demo:          string(c.state.Demo),
		Transitioning: c.state.Pending != nil,
		LiveScreens:   c.state.Live,
	}
	if p := c.state.Pending; p != nil {
		snap.Incoming = string(p.Incoming.Kind)
	}

	scr := c.state.Active
	if scr == nil {
		return snap
	}
	snap.Screen = string(scr.Kind)
	snap.ScreenID = scr.ID.String()

	if s := scr.Find(widget.RoleSlider); s != nil {
		v := s.Value()
		snap.SliderValue = &v
	}
	if l := scr.Find(widget.RoleSliderLabel); l != nil {
		snap.SliderLabel = l.Text()
	}
	if cb := scr.Find(widget.RoleAgree); cb != nil {
		on := cb.Checked()
		snap.Agreed = &on
	}
	if tv := scr.Find(widget.RoleTabView); tv != nil {
		i := tv.SelectedTab()
		snap.SelectedTab = &i
	}
	return snap
}

// Frame renders the active screen, or the slide between the active and
// incoming screens while a transition is pending. Pointer markers and
// focus are only drawn on settled frames.
func (c *Controller) Frame(opts widget.RenderOptions) string {
	if c.state.Active == nil {
		return ""
	}
	p := c.state.Pending
	if p == nil {
		return c.state.Active.Render(opts)
	}

	plain := widget.RenderOptions{Width: opts.Width, Height: opts.Height}
	from := c.state.Active.Render(plain)
	to := p.Incoming.Render(plain)
	width := opts.Width
	if width <= 0 {
		width = widget.DefaultWidth
	}
	spec := p.Transition.Spec
	return transition.Compose(from, to, width, spec.Direction, spec.Reverse, p.Transition.Visible())
}
