package widget

import (
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"widgetdemo/ui/tui/styles"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// Marker wraps rendered output so pointer events can be hit-tested later.
// *zone.Manager satisfies it.
type Marker interface {
	Mark(id, v string) string
}

// ZoneID is the marker id used for w.
func ZoneID(w *Widget) string {
	return "w" + strconv.FormatUint(w.id, 10)
}

// RenderOptions controls a single frame.
type RenderOptions struct {
	Width, Height int
	Marker        Marker
	Focus         *Widget
}

func (o RenderOptions) size() (int, int) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

// Box is a placed rectangle in cells.
type Box struct {
	X, Y, W, H int
}

func (b Box) Contains(x, y int) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

type placement struct {
	w       *Widget
	box     Box
	content string
}

// Layout computes the box of every placed widget for a frame of the given
// size. Labels inside buttons are part of the button and are not placed.
func (s *Screen) Layout(width, height int) map[*Widget]Box {
	out := make(map[*Widget]Box)
	for _, p := range s.layout(RenderOptions{Width: width, Height: height}) {
		out[p.w] = p.box
	}
	return out
}

// Render draws the screen into a width x height block.
func (s *Screen) Render(opts RenderOptions) string {
	width, height := opts.size()
	placed := s.layout(opts)
	lines := compose(width, height, placed)
	body := strings.Join(lines, "\n")

	if p := s.root.style.Props(styles.StateDefault); p.Background != "" {
		body = lipgloss.NewStyle().Background(p.Background).Render(body)
	}
	return body
}

func (s *Screen) layout(opts RenderOptions) []placement {
	if s.released {
		return nil
	}
	width, height := opts.size()
	var out []placement
	boxes := make(map[*Widget]Box)
	layoutChildren(s.root, Box{W: width, H: height}, opts, boxes, &out)
	return out
}

func layoutChildren(parent *Widget, area Box, opts RenderOptions, boxes map[*Widget]Box, out *[]placement) {
	for _, c := range parent.children {
		if c.kind == TypeTab {
			continue
		}

		content := renderSelf(c, area, opts)
		w, h := lipgloss.Width(content), lipgloss.Height(content)
		if c.kind == TypeTabView {
			w, h = area.W, area.H
		}

		ref := area
		if c.align.Ref != nil {
			if b, ok := boxes[c.align.Ref]; ok {
				ref = b
			}
		}
		x, y := position(c.align, ref, w, h)
		x = fit(x, area.X, area.W, w)
		y = fit(y, area.Y, area.H, h)
		box := Box{X: x, Y: y, W: w, H: h}
		boxes[c] = box

		if opts.Marker != nil && c.Interactive() {
			content = opts.Marker.Mark(ZoneID(c), content)
		}
		*out = append(*out, placement{w: c, box: box, content: content})

		if c.kind == TypeTabView {
			tabs := c.Tabs()
			if len(tabs) > 0 {
				page := Box{X: box.X, Y: box.Y + tabHeaderHeight, W: box.W, H: box.H - tabHeaderHeight}
				layoutChildren(tabs[c.selected], page, opts, boxes, out)
			}
		}
	}
}

func position(a Alignment, ref Box, w, h int) (int, int) {
	x, y := ref.X, ref.Y
	midX := ref.X + (ref.W-w)/2
	switch a.Mode {
	case AlignCenter:
		x, y = midX, ref.Y+(ref.H-h)/2
	case AlignInTopMid:
		x = midX
	case AlignInBottomMid:
		x, y = midX, ref.Y+ref.H-h
	case AlignOutBottomMid:
		x, y = midX, ref.Y+ref.H
	}
	return x + a.DX, y + a.DY
}

// fit keeps a span of size n starting at v inside [start, start+span).
func fit(v, start, span, n int) int {
	if v+n > start+span {
		v = start + span - n
	}
	if v < start {
		v = start
	}
	return v
}

const tabHeaderHeight = 2

func renderSelf(w *Widget, area Box, opts RenderOptions) string {
	state := w.state
	focused := opts.Focus == w
	if focused {
		state |= styles.StateFocused
	}

	switch w.kind {
	case TypeLabel:
		return w.style.Render(state).Render(w.text)

	case TypeImage:
		return w.style.Render(state).Render(strings.Join(w.image, "\n"))

	case TypeButton:
		st := w.style.Render(state).Padding(0, 1)
		if w.style == nil {
			st = st.Border(lipgloss.RoundedBorder())
		}
		if focused && w.outlineWidth > 0 {
			outline := w.style.Props(state).Outline
			if outline == "" {
				outline = lipgloss.Color("#7D56F4")
			}
			st = st.BorderForeground(outline).Underline(true)
		}
		return st.Render(w.Caption())

	case TypeCheckbox:
		p := w.style.Props(state)
		bullet := lipgloss.NewStyle()
		if p.Border != "" {
			bullet = bullet.Foreground(p.Border)
		}
		if p.Background != "" {
			bullet = bullet.Background(p.Background)
		}
		mark := "[ ]"
		if w.Checked() {
			mark = "[x]"
		}
		text := lipgloss.NewStyle()
		if focused && w.outlineWidth > 0 {
			text = text.Underline(true)
		}
		return bullet.Render(mark) + " " + text.Render(w.text)

	case TypeSlider:
		return renderSlider(w, state)

	case TypeTabView:
		return renderTabHeader(w, area.W, opts)
	}
	return ""
}

func renderSlider(w *Widget, state styles.State) string {
	cells := w.width
	if cells < 2 {
		cells = 2
	}
	knob := 0
	if span := w.hi - w.lo; span > 0 {
		knob = (w.value - w.lo) * (cells - 1) / span
	}

	knobStyle := lipgloss.NewStyle().Bold(true)
	if state&styles.StateFocused != 0 {
		knobStyle = knobStyle.Foreground(styles.Highlight)
	}
	if state&styles.StatePressed != 0 {
		knobStyle = knobStyle.Reverse(true)
	}

	filled := lipgloss.NewStyle().Foreground(styles.Teal).Render(strings.Repeat("━", knob))
	rest := lipgloss.NewStyle().Foreground(styles.Subtle).Render(strings.Repeat("─", cells-1-knob))
	return filled + knobStyle.Render("●") + rest
}

func renderTabHeader(w *Widget, width int, opts RenderOptions) string {
	var names []string
	for i, tab := range w.Tabs() {
		st := styles.TabHeaderStyle
		if i == w.selected {
			st = styles.ActiveTabHeaderStyle
		}
		name := st.Render(tab.text)
		if opts.Marker != nil {
			name = opts.Marker.Mark(ZoneID(tab), name)
		}
		names = append(names, name)
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top, names...)
	if width < 1 {
		width = 1
	}
	rule := lipgloss.NewStyle().Foreground(styles.Teal).Render(strings.Repeat("─", width))
	return header + "\n" + rule
}

type fragment struct {
	x    int
	line string
}

// compose paints placed blocks onto a width x height grid. A fragment that
// starts inside an earlier fragment on the same row is dropped.
func compose(width, height int, placed []placement) []string {
	rows := make([][]fragment, height)
	for _, p := range placed {
		for i, line := range strings.Split(p.content, "\n") {
			y := p.box.Y + i
			if y < 0 || y >= height {
				continue
			}
			rows[y] = append(rows[y], fragment{x: p.box.X, line: line})
		}
	}

	out := make([]string, height)
	for y, frags := range rows {
		sort.SliceStable(frags, func(i, j int) bool { return frags[i].x < frags[j].x })
		var b strings.Builder
		cursor := 0
		for _, f := range frags {
			if f.x < cursor || f.x >= width {
				continue
			}
			b.WriteString(strings.Repeat(" ", f.x-cursor))
			line := f.line
			if ansi.StringWidth(line) > width-f.x {
				line = ansi.Truncate(line, width-f.x, "")
			}
			b.WriteString(line)
			cursor = f.x + ansi.StringWidth(line)
		}
		if cursor < width {
			b.WriteString(strings.Repeat(" ", width-cursor))
		}
		out[y] = b.String()
	}
	return out
}
