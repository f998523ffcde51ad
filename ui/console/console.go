package console

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"widgetdemo/ui/tui/styles"
	"widgetdemo/ui/tui/widget"

	"github.com/charmbracelet/x/ansi"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

type palette struct {
	reset, accent string
	state         func(styles.State) string
}

var (
	colored = palette{reset: colorReset, accent: colorCyan, state: colorFor}
	plain   = palette{state: func(styles.State) string { return "" }}
)

// Print writes a compact outline of the screen's widget tree.
func Print(w io.Writer, scr *widget.Screen) {
	write(w, scr, colored)
}

// Dump returns the same outline as Print without colour codes.
func Dump(scr *widget.Screen) string {
	var buf bytes.Buffer
	write(&buf, scr, plain)
	return buf.String()
}

func write(w io.Writer, scr *widget.Screen, p palette) {
	if scr == nil {
		fmt.Fprintf(w, "%s■ NO SCREEN%s\n", p.accent, p.reset)
		return
	}
	fmt.Fprintf(w, "%s■ %s SCREEN %s%s\n", p.accent, strings.ToUpper(string(scr.Kind)), scr.ID, p.reset)
	if scr.Released() {
		fmt.Fprintf(w, "  (released)\n")
		return
	}

	depth := map[*widget.Widget]int{scr.Root(): 0}
	hidden := map[*widget.Widget]bool{}
	scr.Walk(func(wd *widget.Widget) bool {
		if wd == scr.Root() {
			return true
		}
		d := depth[wd.Parent()] + 1
		depth[wd] = d
		if hidden[wd.Parent()] {
			hidden[wd] = true
		}
		if wd.Type() == widget.TypeTab && wd.TabIndex() != wd.Parent().SelectedTab() {
			hidden[wd] = true
		}
		fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", d), line(wd, hidden[wd], p))
		return true
	})
}

func line(wd *widget.Widget, hidden bool, p palette) string {
	var b strings.Builder
	b.WriteString(wd.Type().String())
	if wd.Role() != widget.RoleNone {
		fmt.Fprintf(&b, " %s%s%s", p.accent, wd.Role(), p.reset)
	}

	// Compact text (max 25 cells, first line only)
	if text := strings.SplitN(wd.Text(), "\n", 2)[0]; text != "" {
		fmt.Fprintf(&b, " %q", ansi.Truncate(text, 25, "..."))
	}

	switch wd.Type() {
	case widget.TypeSlider:
		lo, hi := wd.Range()
		fmt.Fprintf(&b, " %d [%d..%d]", wd.Value(), lo, hi)
	case widget.TypeCheckbox:
		if wd.Checked() {
			b.WriteString(" [x]")
		} else {
			b.WriteString(" [ ]")
		}
	}

	if st := wd.Style(); st != nil {
		fmt.Fprintf(&b, " style=%s", st.Name)
	}
	if s := wd.State(); s != styles.StateDefault {
		fmt.Fprintf(&b, " %s%s%s", p.state(s), s, p.reset)
	}
	if hidden {
		b.WriteString(" (hidden)")
	}
	return b.String()
}

func colorFor(s styles.State) string {
	switch {
	case s&styles.StatePressed != 0:
		return colorYellow
	case s&styles.StateChecked != 0:
		return colorGreen
	case s&styles.StateFocused != 0:
		return colorCyan
	default:
		return colorRed
	}
}
