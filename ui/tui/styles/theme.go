package styles

import "github.com/charmbracelet/lipgloss"

// Colour literals shared by the demo styles.
var (
	White = lipgloss.Color("#FFFFFF")
	Cyan  = lipgloss.Color("#00FFFF")
	Blue  = lipgloss.Color("#0000FF")
	Teal  = lipgloss.Color("#008080")

	Subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	Highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
)

// FontMontserrat18 is the button font. The terminal cannot change glyph
// size, so anything at or above 16pt renders bold.
var FontMontserrat18 = Font{Name: "montserrat", Size: 18}

// Chrome used around screens rather than inside them.
var (
	FooterStyle = lipgloss.NewStyle().
			Foreground(Subtle).
			PaddingLeft(1)

	ChartCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Highlight).
			Padding(0, 1)

	TabHeaderStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("#AAA"))

	ActiveTabHeaderStyle = TabHeaderStyle.
				Bold(true).
				Foreground(White).
				Background(Teal)
)
