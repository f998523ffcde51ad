// Package router maps widget events to application actions.
//
// Handlers are looked up by the active screen's kind, the target widget's
// role and the event kind, so no handler compares widget identities.
package router

import (
	"log/slog"
	"strconv"
	"time"

	"widgetdemo/ui/tui/transition"
	"widgetdemo/ui/tui/widget"
)

// Kind is the tag of an Event.
type Kind int

const (
	KindPressed Kind = iota
	KindReleased
	KindActivated
	KindValueChanged
)

func (k Kind) String() string {
	switch k {
	case KindPressed:
		return "pressed"
	case KindReleased:
		return "released"
	case KindActivated:
		return "activated"
	case KindValueChanged:
		return "value-changed"
	default:
		return "unknown"
	}
}

// Event is an interaction on a widget.
type Event struct {
	Kind   Kind
	Target *widget.Widget
}

// Navigator is the part of the controller that handlers drive.
type Navigator interface {
	// LoadTabs builds a fresh tabs screen without showing it.
	LoadTabs() *widget.Screen
	// BootScreen returns the existing boot screen.
	BootScreen() *widget.Screen
	// LoadScreenAnimated makes s the active screen once spec completes.
	LoadScreenAnimated(s *widget.Screen, spec transition.Spec)
}

// Handler reacts to one event.
type Handler func(nav Navigator, ev Event)

// Key selects a handler.
type Key struct {
	Screen widget.ScreenKind
	Role   widget.Role
	Kind   Kind
}

// Timing is the animation applied to navigation.
type Timing struct {
	Duration time.Duration
	Delay    time.Duration
}

// DefaultTiming is a 300ms slide after a 100ms delay.
func DefaultTiming() Timing {
	return Timing{Duration: 300 * time.Millisecond, Delay: 100 * time.Millisecond}
}

// Router holds the handler table.
type Router struct {
	handlers map[Key]Handler
	timing   Timing
	log      *slog.Logger
}

// New returns a router with the demo handlers registered.
func New(timing Timing, log *slog.Logger) *Router {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	r := &Router{
		handlers: make(map[Key]Handler),
		timing:   timing,
		log:      log,
	}
	r.Handle(Key{widget.ScreenSlider, widget.RoleSlider, KindValueChanged}, syncSliderLabel)
	r.Handle(Key{widget.ScreenBoot, widget.RoleNext, KindActivated}, r.next)
	r.Handle(Key{widget.ScreenTabs, widget.RoleBack, KindActivated}, r.back)
	r.Handle(Key{widget.ScreenBoot, widget.RoleAgree, KindValueChanged}, r.agree)
	return r
}

// Handle registers h for key, replacing any previous handler.
func (r *Router) Handle(key Key, h Handler) {
	r.handlers[key] = h
}

// Lookup returns the handler for key.
func (r *Router) Lookup(key Key) (Handler, bool) {
	h, ok := r.handlers[key]
	return h, ok
}

// Dispatch runs the handler for ev. Events whose target is not part of the
// active screen are dropped. It reports whether a handler ran.
func (r *Router) Dispatch(nav Navigator, active *widget.Screen, ev Event) bool {
	if ev.Target == nil || active == nil || !active.Owns(ev.Target) {
		r.log.Debug("event dropped", "kind", ev.Kind.String(), "reason", "target not on active screen")
		return false
	}
	key := Key{Screen: active.Kind, Role: ev.Target.Role(), Kind: ev.Kind}
	h, ok := r.handlers[key]
	if !ok {
		return false
	}
	r.log.Debug("event dispatched", "screen", string(key.Screen), "role", string(key.Role), "kind", key.Kind.String())
	h(nav, ev)
	return true
}

func (r *Router) slide(dir transition.Direction) transition.Spec {
	return transition.Spec{
		Direction: dir,
		Duration:  r.timing.Duration,
		Delay:     r.timing.Delay,
		Reverse:   false,
	}
}

func (r *Router) next(nav Navigator, _ Event) {
	tabs := nav.LoadTabs()
	nav.LoadScreenAnimated(tabs, r.slide(transition.OverRight))
}

func (r *Router) back(nav Navigator, _ Event) {
	// The tabs tree built here is never shown; the controller releases it
	// when the boot screen load replaces it.
	nav.LoadTabs()
	nav.LoadScreenAnimated(nav.BootScreen(), r.slide(transition.OverLeft))
}

func (r *Router) agree(_ Navigator, ev Event) {
	r.log.Info("terms agreement changed", "checked", ev.Target.Checked())
}

// syncSliderLabel copies the slider value into its companion label.
func syncSliderLabel(_ Navigator, ev Event) {
	label := ev.Target.Screen().Find(widget.RoleSliderLabel)
	if label == nil {
		return
	}
	label.SetText(strconv.Itoa(ev.Target.Value()))
}
