package widget

import "github.com/oklog/ulid/v2"

// ScreenKind identifies which demo screen a tree represents.
type ScreenKind string

const (
	ScreenBoot   ScreenKind = "boot"
	ScreenTabs   ScreenKind = "tabs"
	ScreenSlider ScreenKind = "slider"
)

// Screen is the root of a widget tree. Each built screen carries a unique
// instance ID so rebuilt trees can be told apart.
type Screen struct {
	Kind ScreenKind
	ID   ulid.ULID

	root     *Widget
	released bool
}

// NewScreen creates an empty screen of the given kind.
func NewScreen(kind ScreenKind) *Screen {
	s := &Screen{
		Kind: kind,
		ID:   ulid.Make(),
	}
	root := newWidget(TypeScreen)
	root.screen = s
	s.root = root
	return s
}

// Root is the screen's top-level container.
func (s *Screen) Root() *Widget { return s.root }

// Released reports whether Release has been called.
func (s *Screen) Released() bool { return s.released }

// Release drops the widget tree. A released screen renders nothing and
// owns no widgets.
func (s *Screen) Release() {
	if s.released {
		return
	}
	s.released = true
	s.root.children = nil
}

// Walk visits widgets depth-first in creation order. Returning false from
// fn skips the widget's subtree.
func (s *Screen) Walk(fn func(w *Widget) bool) {
	walk(s.root, fn)
}

func walk(w *Widget, fn func(w *Widget) bool) {
	if !fn(w) {
		return
	}
	for _, c := range w.children {
		walk(c, fn)
	}
}

// Find returns the first widget with role, or nil.
func (s *Screen) Find(role Role) *Widget {
	var found *Widget
	s.Walk(func(w *Widget) bool {
		if found != nil {
			return false
		}
		if w.role == role && role != RoleNone {
			found = w
			return false
		}
		return true
	})
	return found
}

// ByID returns the widget with id, or nil.
func (s *Screen) ByID(id uint64) *Widget {
	var found *Widget
	s.Walk(func(w *Widget) bool {
		if found != nil {
			return false
		}
		if w.id == id {
			found = w
			return false
		}
		return true
	})
	return found
}

// Visible lists the interactive widgets currently reachable by the user,
// in tree order. Only the selected page of a tab view is visible, while
// every tab header is.
func (s *Screen) Visible() []*Widget {
	var out []*Widget
	s.Walk(func(w *Widget) bool {
		if w.kind == TypeTab {
			out = append(out, w)
			return w.parent.selected == w.TabIndex()
		}
		if w.Interactive() {
			out = append(out, w)
		}
		return true
	})
	return out
}

// Focusable lists the visible widgets that accept keyboard focus.
func (s *Screen) Focusable() []*Widget {
	var out []*Widget
	for _, w := range s.Visible() {
		if w.Focusable() {
			out = append(out, w)
		}
	}
	return out
}

// Owns reports whether w belongs to this screen's live tree.
func (s *Screen) Owns(w *Widget) bool {
	if w == nil || s.released || w.screen != s {
		return false
	}
	return s.ByID(w.id) == w
}
