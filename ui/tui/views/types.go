// Package views builds the demo screens from widgets.
//
// Builders only construct trees. Making a screen visible, with or without
// an animation, is the controller's job.
package views

import (
	"widgetdemo/ui/tui/styles"
	"widgetdemo/ui/tui/widget"
)

// Builder constructs a fresh screen using styles from reg.
type Builder func(reg *styles.Registry) *widget.Screen

// Builders maps each screen kind to its builder.
var Builders = map[widget.ScreenKind]Builder{
	widget.ScreenBoot:   LoadBoot,
	widget.ScreenTabs:   LoadTabs,
	widget.ScreenSlider: LoadSlider,
}

// Build constructs a screen of kind, or returns nil for an unknown kind.
func Build(kind widget.ScreenKind, reg *styles.Registry) *widget.Screen {
	b, ok := Builders[kind]
	if !ok {
		return nil
	}
	return b(reg)
}
