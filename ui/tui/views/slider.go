package views

import (
	"widgetdemo/ui/tui/styles"
	"widgetdemo/ui/tui/widget"
)

// SliderInfoText is the informative label of the slider demo.
const SliderInfoText = "Welcome to the slider+label demo!\n" +
	"Move the slider and see that the label\n" +
	"updates to match it."

// LoadSlider builds the slider demo: a centred slider, a label below it
// tracking its value, and an informative label in the corner.
func LoadSlider(_ *styles.Registry) *widget.Screen {
	scr := widget.NewScreen(widget.ScreenSlider)
	root := scr.Root()

	slider := widget.Create(widget.TypeSlider, root)
	slider.SetRole(widget.RoleSlider)
	slider.SetWidth(20)
	slider.Align(nil, widget.AlignCenter, 0, 0)
	slider.SetRange(0, 100)

	// Layout is recomputed every frame, so the label stays centred under
	// the slider as its text grows.
	label := widget.Create(widget.TypeLabel, root)
	label.SetRole(widget.RoleSliderLabel)
	label.SetText("0")
	label.Align(slider, widget.AlignOutBottomMid, 0, 1)

	info := widget.Create(widget.TypeLabel, root)
	info.SetRole(widget.RoleInfo)
	info.SetText(SliderInfoText)
	info.Align(nil, widget.AlignInTopLeft, 1, 1)

	return scr
}
