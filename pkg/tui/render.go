package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/stefanpenner/focusone/pkg/goal"
	"github.com/stefanpenner/focusone/pkg/timeline"
)

// pxPerCol is the assumed pixel width of one terminal cell. Layouts are
// computed at TrackCols*pxPerCol so label fitting matches what fits on screen.
const pxPerCol = 7

const (
	laneLabelCols = 10
	flatLabelCols = 18
	minLabeledW   = 40
)

// RenderOptions controls RenderTimeline.
type RenderOptions struct {
	Width    int    // total columns, row labels included
	Color    bool   // emit ANSI styles
	Selected string // goal id drawn on top and highlighted
	MaxRows  int    // 0 renders every row
}

// LabelCols is the width of the row label gutter for a mode.
func LabelCols(mode timeline.Mode, width int) int {
	if width < minLabeledW {
		return 0
	}
	if mode == timeline.ModeFlat {
		return flatLabelCols
	}
	return laneLabelCols
}

// TrackCols is the number of columns bars can occupy.
func TrackCols(mode timeline.Mode, width int) int {
	return max(minTrackCols, width-LabelCols(mode, width))
}

// WidthPx converts a track width in columns to layout pixels.
func WidthPx(cols int) float64 {
	return float64(cols * pxPerCol)
}

const minTrackCols = 10

// RenderTimeline draws a computed layout as text: a quarter line, a month
// axis, one line per row and a today line.
func RenderTimeline(l timeline.Layout, opts RenderOptions) string {
	labelCols := LabelCols(l.Mode, opts.Width)
	cols := TrackCols(l.Mode, opts.Width)
	gutter := strings.Repeat(" ", labelCols)

	var lines []string
	render := func(label line, track line) {
		lines = append(lines, label.render(opts.Color)+track.render(opts.Color))
	}
	plainGutter := lineOf(gutter, nil)

	render(plainGutter, quarterLine(l, cols))
	render(plainGutter, monthAxis(l, cols))

	first, last := visibleRows(l, opts)
	if len(l.Rows) == 0 {
		empty := newLine(cols)
		empty.text(0, "No goals in view", &AxisStyle)
		render(plainGutter, empty)
	}
	for i := first; i < last; i++ {
		render(rowLabel(l, i, labelCols, opts.Selected), rowTrack(l, i, cols, opts.Selected))
	}
	if first > 0 || last < len(l.Rows) {
		more := newLine(cols)
		more.text(0, fmt.Sprintf("rows %d-%d of %d", first+1, last, len(l.Rows)), &AxisStyle)
		render(plainGutter, more)
	}
	if tl := todayLine(l, cols); tl != nil {
		render(plainGutter, tl)
	}
	return strings.Join(lines, "\n")
}

// visibleRows returns the row window to draw, scrolled so the selected
// goal's row stays on screen.
func visibleRows(l timeline.Layout, opts RenderOptions) (int, int) {
	n := len(l.Rows)
	if opts.MaxRows <= 0 || n <= opts.MaxRows {
		return 0, n
	}
	sel := 0
	for _, b := range l.Bars {
		if b.GoalID == opts.Selected {
			sel = b.Row
			break
		}
	}
	first := max(0, min(sel-opts.MaxRows/2, n-opts.MaxRows))
	return first, first + opts.MaxRows
}

func quarterLine(l timeline.Layout, cols int) line {
	ln := newLine(cols)
	end := -1
	for _, q := range l.Quarters {
		c := colOf(q.LeftPct, cols)
		if c <= end {
			continue
		}
		end = ln.text(c, q.Label, &AxisStyle)
	}
	return ln
}

func monthAxis(l timeline.Layout, cols int) line {
	ln := newLine(cols)
	ln.text(0, l.Range.Start.Format("Jan"), &AxisStyle)
	end := len([]rune(l.Range.Start.Format("Jan")))
	for _, m := range l.Months {
		c := colOf(m.Pct, cols)
		if c <= end {
			continue
		}
		end = ln.text(c, m.Label, &AxisStyle)
	}
	return ln
}

func rowLabel(l timeline.Layout, i, labelCols int, selected string) line {
	if labelCols == 0 {
		return nil
	}
	row := l.Rows[i]
	st := &RowLabelStyle
	if l.Mode == timeline.ModeLanes {
		cs := categoryStyle(row.Category).Bold(true)
		st = &cs
	} else if row.Key == selected {
		st = &SelectedStyle
	}
	ln := newLine(labelCols)
	ln.text(0, truncate(row.Label, labelCols-1), st)
	return ln
}

func rowTrack(l timeline.Layout, row, cols int, selected string) line {
	ln := newLine(cols)
	for _, m := range l.Months {
		ln.put(colOf(m.Pct, cols), GlyphGrid, &GridStyle)
	}

	var bars []timeline.Bar
	var sel *timeline.Bar
	for _, b := range l.BarsInRow(row) {
		if b.GoalID == selected {
			sel = &b
			continue
		}
		bars = append(bars, b)
	}
	if sel != nil {
		bars = append(bars, *sel)
	}

	if l.Today.Visible {
		ln.put(colOf(l.Today.Pct, cols), GlyphToday, &TodayStyle)
	}
	for _, b := range bars {
		drawBar(ln, b, cols, b.GoalID == selected)
	}
	for _, b := range bars {
		drawLabel(ln, b, cols, b.GoalID == selected)
	}
	return ln
}

func drawBar(ln line, b timeline.Bar, cols int, selected bool) {
	from, to := barCols(b, cols)
	st := lipgloss.NewStyle().Foreground(lipgloss.Color(b.Color))
	if selected {
		st = st.Bold(true)
	}
	glyph := barGlyph(b, selected)
	for c := from; c <= to; c++ {
		ln.put(c, glyph, &st)
	}
	if m := b.Milestone; m != nil {
		ms := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.Color)).Background(ColorDim)
		if m.Type == goal.MilestoneWindow {
			for c := colOf(m.LeftPct, cols); c <= colOf(m.LeftPct+m.WidthPct, cols); c++ {
				ln.put(c, GlyphWindow, &ms)
			}
		} else {
			ln.put(colOf(m.X, cols), GlyphPoint, &ms)
		}
	}
}

// barGlyph shades by priority weight; done goals use the lightest shade.
func barGlyph(b timeline.Bar, selected bool) rune {
	switch {
	case selected:
		return GlyphBar
	case b.Done:
		return GlyphBarDone
	case b.Opacity >= 0.9:
		return GlyphBar
	case b.Opacity >= 0.7:
		return GlyphBarMedium
	default:
		return GlyphBarLight
	}
}

func drawLabel(ln line, b timeline.Bar, cols int, selected bool) {
	from, to := barCols(b, cols)
	title := b.Title
	if b.Overdue {
		title = IconOverdue + " " + title
	}
	n := len([]rune(title))

	var st lipgloss.Style
	switch {
	case selected:
		st = SelectedStyle
	case b.Placement == timeline.PlaceInside:
		st = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#111111")).Background(lipgloss.Color(b.Color))
	case b.Overdue:
		st = OverdueStyle
	default:
		st = lipgloss.NewStyle().Foreground(lipgloss.Color(b.Color))
	}

	switch b.Placement {
	case timeline.PlaceInside:
		width := to - from + 1
		if width < 3 {
			return
		}
		title = truncate(title, width-2)
		ln.text(from+1, title, &st)
	case timeline.PlaceOutsideLeft:
		ln.text(from-1-n, title, &st)
	case timeline.PlaceOutsideRight:
		ln.text(to+2, title, &st)
	default:
		// Centered on the bar; slide inward when it would run off an edge.
		start := (from+to)/2 - n/2
		start = max(0, min(start, cols-n))
		ln.text(start, title, &st)
	}
}

func todayLine(l timeline.Layout, cols int) line {
	if !l.Today.Visible {
		return nil
	}
	label := "▲ today " + l.Today.Date.Format("Jan 2")
	n := len([]rune(label))
	c := colOf(l.Today.Pct, cols)
	var start int
	switch l.Today.Align {
	case timeline.AlignLeft:
		start = c
	case timeline.AlignRight:
		label = "today " + l.Today.Date.Format("Jan 2") + " ▲"
		start = c - n + 1
	default:
		start = c - n/2
	}
	ln := newLine(cols)
	ln.text(max(0, start), label, &TodayStyle)
	return ln
}

// colOf maps a percentage of the range to a track column.
func colOf(pct float64, cols int) int {
	c := int(math.Floor(pct / 100 * float64(cols)))
	return max(0, min(cols-1, c))
}

// barCols returns the inclusive column span of a bar. Every bar occupies at
// least one column, so bars clamped past an edge stay visible there.
func barCols(b timeline.Bar, cols int) (int, int) {
	from := colOf(b.LeftPct, cols)
	to := int(math.Ceil(b.RightPct()/100*float64(cols))) - 1
	return from, max(from, min(cols-1, to))
}

// truncate shortens s to n runes, ending with an ellipsis when cut.
func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

type cell struct {
	r  rune
	st *lipgloss.Style
}

// line is a fixed-width row of styled cells. Adjacent cells sharing a style
// pointer are rendered as one run.
type line []cell

func newLine(n int) line {
	ln := make(line, n)
	for i := range ln {
		ln[i].r = ' '
	}
	return ln
}

func lineOf(s string, st *lipgloss.Style) line {
	ln := newLine(len([]rune(s)))
	ln.text(0, s, st)
	return ln
}

func (ln line) put(i int, r rune, st *lipgloss.Style) {
	if i >= 0 && i < len(ln) {
		ln[i] = cell{r: r, st: st}
	}
}

// text writes s from column i, clipping at both edges, and returns the
// column after the last rune.
func (ln line) text(i int, s string, st *lipgloss.Style) int {
	for _, r := range s {
		ln.put(i, r, st)
		i++
	}
	return i
}

func (ln line) String() string { return ln.render(false) }

func (ln line) render(color bool) string {
	var b strings.Builder
	var run []rune
	var cur *lipgloss.Style
	flush := func() {
		if len(run) == 0 {
			return
		}
		s := string(run)
		if color && cur != nil {
			s = cur.Render(s)
		}
		b.WriteString(s)
		run = run[:0]
	}
	for _, c := range ln {
		if c.st != cur {
			flush()
			cur = c.st
		}
		run = append(run, c.r)
	}
	flush()
	return b.String()
}
