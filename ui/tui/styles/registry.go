// Package styles holds the named visual styles applied to demo widgets.
//
// A Style maps interaction states to visual properties. Styles are
// populated once by Init and then shared read-only by every widget that
// references them.
package styles

import (
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// State is a bit set of widget interaction states.
type State uint8

// Higher bits take precedence when resolving properties.
const (
	StateDefault State = 0
	StateFocused State = 1 << 0
	StateChecked State = 1 << 1
	StatePressed State = 1 << 2
)

func (s State) String() string {
	if s == StateDefault {
		return "default"
	}
	out := ""
	add := func(name string) {
		if out != "" {
			out += "|"
		}
		out += name
	}
	if s&StateChecked != 0 {
		add("checked")
	}
	if s&StateFocused != 0 {
		add("focused")
	}
	if s&StatePressed != 0 {
		add("pressed")
	}
	return out
}

// Font describes a text face.
type Font struct {
	Name string
	Size int
}

func (f Font) IsZero() bool { return f.Name == "" && f.Size == 0 }

// Props is the set of visual properties defined for one state. Zero
// values mean "not set for this state".
type Props struct {
	Background lipgloss.Color
	Border     lipgloss.Color
	Text       lipgloss.Color
	Outline    lipgloss.Color
	Font       Font
}

// Style is a named bundle of per-state properties.
type Style struct {
	Name   string
	states map[State]Props
}

func newStyle(name string) *Style {
	return &Style{Name: name, states: make(map[State]Props)}
}

func (s *Style) update(state State, fn func(p *Props)) {
	p := s.states[state]
	fn(&p)
	s.states[state] = p
}

// States lists the states that carry explicit properties, most specific last.
func (s *Style) States() []State {
	out := make([]State, 0, len(s.states))
	for st := range s.states {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Props resolves the effective properties for state. Each property comes
// from the highest defined state that is a subset of state, falling back
// to the default state.
func (s *Style) Props(state State) Props {
	if s == nil {
		return Props{}
	}
	candidates := s.States()
	var out Props
	for i := len(candidates) - 1; i >= 0; i-- {
		st := candidates[i]
		if st&state != st {
			continue
		}
		p := s.states[st]
		if out.Background == "" {
			out.Background = p.Background
		}
		if out.Border == "" {
			out.Border = p.Border
		}
		if out.Text == "" {
			out.Text = p.Text
		}
		if out.Outline == "" {
			out.Outline = p.Outline
		}
		if out.Font.IsZero() {
			out.Font = p.Font
		}
	}
	return out
}

// Render converts the resolved properties for state into a Lip Gloss style.
func (s *Style) Render(state State) lipgloss.Style {
	p := s.Props(state)
	ls := lipgloss.NewStyle()
	if p.Background != "" {
		ls = ls.Background(p.Background)
	}
	if p.Text != "" {
		ls = ls.Foreground(p.Text)
	}
	if p.Border != "" {
		ls = ls.Border(lipgloss.RoundedBorder()).BorderForeground(p.Border)
	}
	if p.Font.Size >= 16 {
		ls = ls.Bold(true)
	}
	return ls
}

// Names of the registered styles.
const (
	NameBoot     = "boot"
	NameCheckbox = "checkbox"
	NameButton   = "button"
)

// Registry owns a fixed set of named styles.
type Registry struct {
	once   sync.Once
	styles map[string]*Style
}

// New returns an empty registry. Call Init before use.
func New() *Registry {
	return &Registry{}
}

// Init populates the registry. Subsequent calls are no-ops.
func (r *Registry) Init() {
	r.once.Do(func() {
		r.styles = populate()
	})
}

// Get returns the named style, or nil if the registry has not been
// initialised or the name is unknown.
func (r *Registry) Get(name string) *Style {
	if r == nil || r.styles == nil {
		return nil
	}
	return r.styles[name]
}

// Initialized reports whether Init has run.
func (r *Registry) Initialized() bool {
	return r != nil && r.styles != nil
}

func populate() map[string]*Style {
	boot := newStyle(NameBoot)
	boot.update(StateDefault, func(p *Props) { p.Background = White })

	cb := newStyle(NameCheckbox)
	cb.update(StateChecked, func(p *Props) {
		p.Background = Cyan
		p.Border = Teal
	})
	cb.update(StateDefault, func(p *Props) { p.Border = Blue })
	cb.update(StateChecked|StatePressed, func(p *Props) {
		p.Border = Teal
		p.Background = Teal
	})

	btn := newStyle(NameButton)
	btn.update(StateDefault, func(p *Props) {
		p.Border = Teal
		p.Font = FontMontserrat18
		p.Outline = White
	})
	btn.update(StatePressed, func(p *Props) {
		p.Border = Teal
		p.Background = Teal
		p.Text = White
	})
	btn.update(StateChecked, func(p *Props) { p.Background = White })

	return map[string]*Style{
		NameBoot:     boot,
		NameCheckbox: cb,
		NameButton:   btn,
	}
}

var defaultRegistry = New()

// Init initialises the process-wide registry.
func Init() { defaultRegistry.Init() }

// Get looks up a style in the process-wide registry.
func Get(name string) *Style { return defaultRegistry.Get(name) }

// Default exposes the process-wide registry.
func Default() *Registry { return defaultRegistry }
