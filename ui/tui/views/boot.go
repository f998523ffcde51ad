package views

import (
	"widgetdemo/ui/tui/styles"
	"widgetdemo/ui/tui/widget"
)

const (
	SymbolNext = "▶"
	SymbolPrev = "◀"
)

// BootLogo is drawn in the middle of the boot screen.
var BootLogo = []string{
	"╭────────────────────────╮",
	"│   ▄▀▀▄  widget  ▄▀▀▄   │",
	"│   ▀▄▄▀   demo   ▀▄▄▀   │",
	"╰────────────────────────╯",
}

// LoadBoot builds the boot screen: logo, terms checkbox and a button that
// leads to the tabs screen.
func LoadBoot(reg *styles.Registry) *widget.Screen {
	scr := widget.NewScreen(widget.ScreenBoot)
	root := scr.Root()
	root.SetStyle(reg.Get(styles.NameBoot))

	logo := widget.Create(widget.TypeImage, root)
	logo.SetRole(widget.RoleLogo)
	logo.SetImage(BootLogo)
	logo.Align(nil, widget.AlignCenter, 0, -3)

	btn := widget.Create(widget.TypeButton, root)
	btn.SetRole(widget.RoleNext)
	btn.Align(nil, widget.AlignInBottomMid, 0, -2)
	btn.SetStyle(reg.Get(styles.NameButton))

	label := widget.Create(widget.TypeLabel, btn)
	label.SetText("Button " + SymbolNext)

	cb := widget.Create(widget.TypeCheckbox, root)
	cb.SetRole(widget.RoleAgree)
	cb.SetText("I agree to terms and conditions.")
	cb.Align(nil, widget.AlignInBottomMid, 0, -6)
	cb.SetStyle(reg.Get(styles.NameCheckbox))
	cb.SetOutlineWidth(0)

	return scr
}
