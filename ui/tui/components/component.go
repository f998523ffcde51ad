package components

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Component is a self-contained piece of chrome drawn around the active
// screen. It is similar to tea.Model but may ignore messages it has no
// use for.
type Component interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (tea.Model, tea.Cmd)
	View() string
}

var _ Component = (*HistoryWidget)(nil)
