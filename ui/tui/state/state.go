package state

import (
	"widgetdemo/ui/tui/transition"
	"widgetdemo/ui/tui/widget"
)

// Demo selects which demo the application runs.
type Demo string

const (
	DemoBoot   Demo = "boot"
	DemoSlider Demo = "slider"
)

// Pending is a screen load waiting for its transition to finish.
type Pending struct {
	Incoming   *widget.Screen
	Transition *transition.Transition
}

// AppState is the single record of what is on screen. Only the controller
// writes it, and only from the loop goroutine.
type AppState struct {
	Demo Demo

	// Active is the displayed screen. It is replaced only when a pending
	// transition completes, so exactly one screen is active at any time.
	Active *widget.Screen

	// Boot is kept across navigation and re-activated by "Back".
	Boot *widget.Screen

	Pending *Pending

	SliderHistory []float64
	Live          int
}

// ActiveKind returns the kind of the active screen, or "" before start.
func (s AppState) ActiveKind() widget.ScreenKind {
	if s.Active == nil {
		return ""
	}
	return s.Active.Kind
}

// Transitioning reports whether a screen load is in flight.
func (s AppState) Transitioning() bool {
	return s.Pending != nil
}
