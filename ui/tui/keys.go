package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"widgetdemo/ui/tui/widget"
)

type keyMap struct {
	Quit     key.Binding
	Next     key.Binding
	Prev     key.Binding
	Activate key.Binding
	Dec      key.Binding
	Inc      key.Binding
	PageDec  key.Binding
	PageInc  key.Binding
	Min      key.Binding
	Max      key.Binding
	Tab      key.Binding
	Help     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next widget")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev widget")),
		Activate: key.NewBinding(key.WithKeys("enter", " ", "space"), key.WithHelp("enter/space", "press")),
		Dec:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "slider -1")),
		Inc:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "slider +1")),
		PageDec:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "slider -10")),
		PageInc:  key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "slider +10")),
		Min:      key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "slider min")),
		Max:      key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "slider max")),
		Tab:      key.NewBinding(key.WithKeys("1", "2", "3"), key.WithHelp("1-3", "select tab")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}
}

// forScreen enables only the bindings that do something on kind.
func (k *keyMap) forScreen(kind widget.ScreenKind) {
	slider := kind == widget.ScreenSlider
	for _, b := range []*key.Binding{&k.Dec, &k.Inc, &k.PageDec, &k.PageInc, &k.Min, &k.Max} {
		b.SetEnabled(slider)
	}
	k.Tab.SetEnabled(kind == widget.ScreenTabs)
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help, k.Next, k.Activate, k.Inc, k.Dec, k.Tab}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Activate},
		{k.Inc, k.Dec, k.PageInc, k.PageDec, k.Min, k.Max},
		{k.Tab, k.Help, k.Quit},
	}
}
