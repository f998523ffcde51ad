package views

import (
	"widgetdemo/ui/tui/styles"
	"widgetdemo/ui/tui/widget"
)

// FirstTabText is the description shown on the first tab.
const FirstTabText = "This the first tab\n\n" +
	"If the content\n" +
	"of a tab\n" +
	"become too long\n" +
	"the it \n" +
	"automatically\n" +
	"become\n" +
	"scrollable."

// LoadTabs builds the tab view screen. It does not activate it. The tabs
// screen uses the toolkit defaults, so the registry is unused.
func LoadTabs(_ *styles.Registry) *widget.Screen {
	scr := widget.NewScreen(widget.ScreenTabs)

	tv := widget.Create(widget.TypeTabView, scr.Root())
	tv.SetRole(widget.RoleTabView)

	tab1 := tv.AddTab("Tab 1")
	tab2 := tv.AddTab("Tab 2")
	tab3 := tv.AddTab("Tab 3")

	label := widget.Create(widget.TypeLabel, tab1)
	label.SetText(FirstTabText)

	back := widget.Create(widget.TypeButton, tab1)
	back.SetRole(widget.RoleBack)
	back.Align(nil, widget.AlignInBottomMid, 0, -2)
	label = widget.Create(widget.TypeLabel, back)
	label.SetText(SymbolPrev + " BACK")

	label = widget.Create(widget.TypeLabel, tab2)
	label.SetText("Second tab")

	btn := widget.Create(widget.TypeButton, tab2)
	btn.SetRole(widget.RoleTab2Button)
	btn.Align(nil, widget.AlignInBottomMid, 0, -2)

	label = widget.Create(widget.TypeLabel, tab3)
	label.SetText("Third tab")

	return scr
}
