// Package widget is a small retained widget tree rendered to the terminal.
//
// It offers the primitive set the demo screens are written against:
// create a widget under a parent, align it, attach a style, set its text
// or value. Layout and rendering happen in Screen.Render.
package widget

import (
	"strings"
	"sync/atomic"

	"widgetdemo/ui/tui/styles"
)

// Type identifies a widget kind.
type Type int

const (
	TypeScreen Type = iota
	TypeImage
	TypeLabel
	TypeButton
	TypeCheckbox
	TypeSlider
	TypeTabView
	TypeTab
)

func (t Type) String() string {
	switch t {
	case TypeScreen:
		return "screen"
	case TypeImage:
		return "image"
	case TypeLabel:
		return "label"
	case TypeButton:
		return "button"
	case TypeCheckbox:
		return "checkbox"
	case TypeSlider:
		return "slider"
	case TypeTabView:
		return "tabview"
	case TypeTab:
		return "tab"
	default:
		return "unknown"
	}
}

// Role names a widget for event routing. Widgets without a role never
// reach a handler.
type Role string

const (
	RoleNone        Role = ""
	RoleLogo        Role = "logo"
	RoleNext        Role = "next"
	RoleBack        Role = "back"
	RoleAgree       Role = "agree"
	RoleTabView     Role = "tabview"
	RoleTab2Button  Role = "tab2-button"
	RoleSlider      Role = "slider"
	RoleSliderLabel Role = "slider-label"
	RoleInfo        Role = "info"
)

// AlignMode positions a widget relative to a reference box.
type AlignMode int

const (
	// AlignNone places the widget at the top-left of its parent.
	AlignNone AlignMode = iota
	AlignCenter
	AlignInTopLeft
	AlignInTopMid
	AlignInBottomMid
	AlignOutBottomMid
)

// Alignment is the placement recorded by Align. A nil Ref aligns to the
// parent's content area.
type Alignment struct {
	Ref  *Widget
	Mode AlignMode
	DX   int
	DY   int
}

var nextID atomic.Uint64

// Widget is a node in a screen's tree.
type Widget struct {
	id       uint64
	kind     Type
	role     Role
	parent   *Widget
	children []*Widget
	screen   *Screen

	text  string
	image []string
	style *styles.Style
	state styles.State
	align Alignment

	width        int
	outlineWidth int

	lo, hi, value int

	selected int
}

// Create adds a widget of kind t under parent.
func Create(t Type, parent *Widget) *Widget {
	if parent == nil {
		panic("widget: Create with nil parent")
	}
	w := newWidget(t)
	w.parent = parent
	w.screen = parent.screen
	parent.children = append(parent.children, w)
	return w
}

func newWidget(t Type) *Widget {
	w := &Widget{
		id:           nextID.Add(1),
		kind:         t,
		outlineWidth: 1,
	}
	if t == TypeSlider {
		w.hi = 100
		w.width = 20
	}
	return w
}

func (w *Widget) ID() uint64       { return w.id }
func (w *Widget) Type() Type       { return w.kind }
func (w *Widget) Role() Role       { return w.role }
func (w *Widget) Parent() *Widget  { return w.parent }
func (w *Widget) Screen() *Screen  { return w.screen }
func (w *Widget) SetRole(r Role)   { w.role = r }
func (w *Widget) Text() string     { return w.text }
func (w *Widget) SetText(s string) { w.text = s }

// Children returns a copy of the widget's children.
func (w *Widget) Children() []*Widget {
	return append([]*Widget(nil), w.children...)
}

// SetStyle binds a shared style. The style is not copied.
func (w *Widget) SetStyle(s *styles.Style) { w.style = s }
func (w *Widget) Style() *styles.Style     { return w.style }

// Align records the widget's placement relative to ref (nil for parent).
func (w *Widget) Align(ref *Widget, mode AlignMode, dx, dy int) {
	w.align = Alignment{Ref: ref, Mode: mode, DX: dx, DY: dy}
}

func (w *Widget) Alignment() Alignment { return w.align }

// SetImage sets the source of an image widget, one string per row.
func (w *Widget) SetImage(rows []string) {
	w.image = append([]string(nil), rows...)
}

// SetWidth fixes the width in cells of widgets that have no natural size.
func (w *Widget) SetWidth(cells int) {
	if cells > 0 {
		w.width = cells
	}
}

func (w *Widget) Width() int { return w.width }

// SetOutlineWidth controls the focus outline. Zero disables it.
func (w *Widget) SetOutlineWidth(n int) {
	if n < 0 {
		n = 0
	}
	w.outlineWidth = n
}

func (w *Widget) OutlineWidth() int { return w.outlineWidth }

// State returns the widget's interaction state.
func (w *Widget) State() styles.State      { return w.state }
func (w *Widget) AddState(s styles.State)   { w.state |= s }
func (w *Widget) ClearState(s styles.State) { w.state &^= s }

// SetRange sets the bounds of a slider and re-clamps its value.
func (w *Widget) SetRange(lo, hi int) {
	if hi < lo {
		lo, hi = hi, lo
	}
	w.lo, w.hi = lo, hi
	w.value = clamp(w.value, lo, hi)
}

func (w *Widget) Range() (lo, hi int) { return w.lo, w.hi }
func (w *Widget) Value() int            { return w.value }

// SetValue clamps v into the slider range and reports whether the value
// changed.
func (w *Widget) SetValue(v int) bool {
	v = clamp(v, w.lo, w.hi)
	if v == w.value {
		return false
	}
	w.value = v
	return true
}

// Checked reports the checkbox state.
func (w *Widget) Checked() bool { return w.state&styles.StateChecked != 0 }

// SetChecked updates the checkbox state and reports whether it changed.
func (w *Widget) SetChecked(on bool) bool {
	if on == w.Checked() {
		return false
	}
	if on {
		w.AddState(styles.StateChecked)
	} else {
		w.ClearState(styles.StateChecked)
	}
	return true
}

// AddTab appends a tab page to a tab view.
func (w *Widget) AddTab(name string) *Widget {
	tab := Create(TypeTab, w)
	tab.text = name
	return tab
}

// Tabs returns the pages of a tab view.
func (w *Widget) Tabs() []*Widget {
	var out []*Widget
	for _, c := range w.children {
		if c.kind == TypeTab {
			out = append(out, c)
		}
	}
	return out
}

// SelectTab makes tab i visible. It reports whether the selection changed.
func (w *Widget) SelectTab(i int) bool {
	if i < 0 || i >= len(w.Tabs()) || i == w.selected {
		return false
	}
	w.selected = i
	return true
}

func (w *Widget) SelectedTab() int { return w.selected }

// TabIndex returns the position of tab within its tab view, or -1.
func (w *Widget) TabIndex() int {
	if w.kind != TypeTab || w.parent == nil {
		return -1
	}
	for i, t := range w.parent.Tabs() {
		if t == w {
			return i
		}
	}
	return -1
}

// Caption is the text a widget shows: its own text, or for buttons the
// joined text of their labels.
func (w *Widget) Caption() string {
	if w.kind != TypeButton {
		return w.text
	}
	var parts []string
	for _, c := range w.children {
		if c.kind == TypeLabel {
			parts = append(parts, c.text)
		}
	}
	return strings.Join(parts, " ")
}

// Interactive reports whether the widget takes pointer or keyboard input.
func (w *Widget) Interactive() bool {
	switch w.kind {
	case TypeButton, TypeCheckbox, TypeSlider, TypeTab:
		return true
	}
	return false
}

// Focusable reports whether keyboard focus may land on the widget.
func (w *Widget) Focusable() bool {
	return w.Interactive() && w.kind != TypeTab
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
