// Package transition animates a screen swap.
//
// Completion is purely time based: a transition is done once its delay
// and duration have elapsed. In between, the visible share of the incoming
// screen follows a spring chasing the linear progress, which gives the
// slide a soft start and stop.
package transition

import (
	"strings"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/x/ansi"
)

// Direction says where the incoming screen enters from.
type Direction int

const (
	// None swaps immediately.
	None Direction = iota
	// OverRight slides the new screen in from the right edge.
	OverRight
	// OverLeft slides the new screen in from the left edge.
	OverLeft
)

func (d Direction) String() string {
	switch d {
	case OverRight:
		return "over-right"
	case OverLeft:
		return "over-left"
	default:
		return "none"
	}
}

// Spec describes an animated screen load.
type Spec struct {
	Direction Direction
	Duration  time.Duration
	Delay     time.Duration
	Reverse   bool
}

// Total is the time from start until the new screen is active.
func (s Spec) Total() time.Duration {
	if s.Direction == None {
		return 0
	}
	return s.Delay + s.Duration
}

// Physics tunes the spring that drives the visible slide.
type Physics struct {
	FPS       int
	Frequency float64
	Damping   float64
}

// DefaultPhysics matches a 60 FPS animation tick.
func DefaultPhysics() Physics {
	return Physics{FPS: 60, Frequency: 12.0, Damping: 0.9}
}

// Transition is one in-flight animation.
type Transition struct {
	Spec  Spec
	start time.Time

	spring   harmonica.Spring
	pos, vel float64
}

// Begin starts a transition at now.
func Begin(spec Spec, phys Physics, now time.Time) *Transition {
	if phys.FPS <= 0 {
		phys = DefaultPhysics()
	}
	return &Transition{
		Spec:   spec,
		start:  now,
		spring: harmonica.NewSpring(harmonica.FPS(phys.FPS), phys.Frequency, phys.Damping),
	}
}

// Deadline is the instant at which the transition completes.
func (t *Transition) Deadline() time.Time { return t.start.Add(t.Spec.Total()) }

// Done reports whether the transition has completed at now.
func (t *Transition) Done(now time.Time) bool {
	return !now.Before(t.Deadline())
}

// Progress is the linear completion in [0,1] at now. It stays at zero
// during the delay.
func (t *Transition) Progress(now time.Time) float64 {
	if t.Done(now) {
		return 1
	}
	elapsed := now.Sub(t.start) - t.Spec.Delay
	if elapsed <= 0 || t.Spec.Duration <= 0 {
		return 0
	}
	return float64(elapsed) / float64(t.Spec.Duration)
}

// Step advances the spring one frame toward the progress at now and
// returns the visible share of the incoming screen.
func (t *Transition) Step(now time.Time) float64 {
	target := t.Progress(now)
	if target >= 1 {
		t.pos, t.vel = 1, 0
		return 1
	}
	t.pos, t.vel = t.spring.Update(t.pos, t.vel, target)
	if t.pos < 0 {
		t.pos = 0
	}
	if t.pos > 1 {
		t.pos = 1
	}
	return t.pos
}

// Visible is the share computed by the last Step.
func (t *Transition) Visible() float64 { return t.pos }

// Compose draws one frame of the slide. from and to are full-size frames
// of width cells; visible is the share of to already on screen.
func Compose(from, to string, width int, dir Direction, reverse bool, visible float64) string {
	if width <= 0 || dir == None {
		return to
	}
	shown := int(visible*float64(width) + 0.5)
	if shown < 0 {
		shown = 0
	}
	if shown > width {
		shown = width
	}

	fromLines := strings.Split(from, "\n")
	toLines := strings.Split(to, "\n")
	rows := len(fromLines)
	if len(toLines) > rows {
		rows = len(toLines)
	}

	out := make([]string, rows)
	for i := 0; i < rows; i++ {
		a := pad(lineAt(fromLines, i), width)
		b := pad(lineAt(toLines, i), width)
		out[i] = slideRow(a, b, width, shown, dir, reverse)
	}
	return strings.Join(out, "\n")
}

func slideRow(from, to string, width, shown int, dir Direction, reverse bool) string {
	switch {
	case dir == OverRight && !reverse:
		// Left edge of the new screen sits at width-shown.
		return ansi.Truncate(from, width-shown, "") + ansi.Truncate(to, shown, "")
	case dir == OverRight && reverse:
		// The old screen leaves towards the right, uncovering the new one.
		return ansi.Truncate(to, shown, "") + ansi.Truncate(from, width-shown, "")
	case dir == OverLeft && !reverse:
		return ansi.TruncateLeft(to, width-shown, "") + ansi.TruncateLeft(from, shown, "")
	default:
		return ansi.TruncateLeft(from, shown, "") + ansi.TruncateLeft(to, width-shown, "")
	}
}

func lineAt(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}

func pad(line string, width int) string {
	n := ansi.StringWidth(line)
	if n >= width {
		return ansi.Truncate(line, width, "")
	}
	return line + strings.Repeat(" ", width-n)
}
