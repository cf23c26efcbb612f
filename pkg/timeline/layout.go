package timeline

import (
	"slices"

	"github.com/stefanpenner/focusone/pkg/goal"
)

const (
	// Bars are at least 1% wide, or 6px when that is wider.
	minBarPct = 1.0
	minBarPx  = 6.0

	// Window milestones are at least 2% wide.
	minWindowPct = 2.0

	// Today labels within this distance of an edge align away from it.
	todayEdgePct = 10
)

// Align is the horizontal alignment of a marker label.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Row is one horizontal track.
type Row struct {
	Key      string        `json:"key"`
	Label    string        `json:"label"`
	Category goal.Category `json:"category,omitempty"`
}

// MilestoneMark is the overlay geometry of a milestone.
type MilestoneMark struct {
	ID    string             `json:"id"`
	Type  goal.MilestoneType `json:"type"`
	Label string             `json:"label"`
	Color string             `json:"color"`
	// Point milestones.
	X float64 `json:"x,omitempty"`
	// Window milestones.
	LeftPct  float64 `json:"leftPct,omitempty"`
	WidthPct float64 `json:"widthPct,omitempty"`
}

// Bar is the geometry of one goal.
type Bar struct {
	GoalID    string         `json:"goalId"`
	Title     string         `json:"title"`
	Subtitle  string         `json:"subtitle"`
	Row       int            `json:"row"`
	LeftPct   float64        `json:"leftPct"`
	WidthPct  float64        `json:"widthPct"`
	Placement Placement      `json:"placement"`
	Detail    Detail         `json:"detail"`
	Color     string         `json:"color"`
	Opacity   float64        `json:"opacity"`
	Done      bool           `json:"done"`
	Overdue   bool           `json:"overdue"`
	Milestone *MilestoneMark `json:"milestone,omitempty"`
}

// RightPct is the bar's right edge.
func (b Bar) RightPct() float64 { return b.LeftPct + b.WidthPct }

// TodayMarker is the position of the current day.
type TodayMarker struct {
	Date    goal.Date `json:"date"`
	Pct     float64   `json:"pct"`
	Visible bool      `json:"visible"`
	Align   Align     `json:"align"`
}

// Layout is the complete geometry of a timeline.
type Layout struct {
	Preset    Preset        `json:"preset"`
	Range     Range         `json:"range"`
	Mode      Mode          `json:"mode"`
	Density   Density       `json:"density"`
	WidthPx   float64       `json:"widthPx"`
	RowHeight float64       `json:"rowHeight"`
	Rows      []Row         `json:"rows"`
	Bars      []Bar         `json:"bars"`
	Today     TodayMarker   `json:"today"`
	Months    []Gridline    `json:"months"`
	Quarters  []QuarterBand `json:"quarters"`
}

// Height is the total height of all rows in pixels.
func (l Layout) Height() float64 {
	return l.RowHeight * float64(len(l.Rows))
}

// BarsInRow returns the bars placed on row i.
func (l Layout) BarsInRow(i int) []Bar {
	var out []Bar
	for _, b := range l.Bars {
		if b.Row == i {
			out = append(out, b)
		}
	}
	return out
}

// Compute lays out goals for preset. Goals are expected to be the visible
// set; goals outside the range keep their clamped bars rather than being
// dropped.
func Compute(goals []goal.Goal, preset Preset, cfg Config, today goal.Date) Layout {
	cfg = cfg.withDefaults()
	if _, err := ParsePreset(string(preset)); err != nil {
		preset = PresetFit
	}
	r := Resolve(preset, goals, today)
	s := NewScale(r)

	sorted := slices.Clone(goals)
	slices.SortStableFunc(sorted, func(a, b goal.Goal) int {
		if c := a.StartDate.Compare(b.StartDate); c != 0 {
			return c
		}
		return a.EndDate.Compare(b.EndDate)
	})

	l := Layout{
		Preset:   preset,
		Range:    r,
		Mode:     cfg.Mode,
		Density:  cfg.Density,
		WidthPx:  cfg.WidthPx,
		Bars:     make([]Bar, 0, len(sorted)),
		Today:    todayMarker(s, today),
		Months:   MonthGridlines(r, s),
		Quarters: Quarters(r, s),
	}

	laneOf := map[goal.Category]int{}
	if cfg.Mode == ModeLanes {
		for i, c := range goal.Categories {
			laneOf[c] = i
			l.Rows = append(l.Rows, Row{Key: string(c), Label: c.Label(), Category: c})
		}
	} else {
		for _, g := range sorted {
			l.Rows = append(l.Rows, Row{Key: g.ID, Label: g.DisplayTitle(), Category: g.Category})
		}
	}
	l.RowHeight = RowHeight(cfg.TargetHeightPx, len(l.Rows), cfg.Density)

	minWidth := max(minBarPct, minBarPx/cfg.WidthPx*100)
	for i, g := range sorted {
		row := i
		if cfg.Mode == ModeLanes {
			row = laneOf[g.Category]
		}
		l.Bars = append(l.Bars, layoutBar(g, row, s, minWidth, cfg.WidthPx, l.RowHeight, today))
	}
	return l
}

func layoutBar(g goal.Goal, row int, s Scale, minWidth, widthPx, rowPx float64, today goal.Date) Bar {
	left, width := s.Span(g.StartDate, g.EndDate, minWidth)
	title := g.DisplayTitle()
	place := PlaceLabel(title, left, width, widthPx)
	return Bar{
		GoalID:    g.ID,
		Title:     title,
		Subtitle:  subtitle(g),
		Row:       row,
		LeftPct:   left,
		WidthPct:  width,
		Placement: place,
		Detail:    DetailFor(place, rowPx),
		Color:     g.Category.Color(),
		Opacity:   g.Priority.Meta().Weight,
		Done:      g.IsDone(),
		Overdue:   g.IsOverdue(today),
		Milestone: milestoneMark(g, s),
	}
}

func subtitle(g goal.Goal) string {
	layout := "Jan 2"
	if g.StartDate.Year() != g.EndDate.Year() {
		layout = "Jan 2 2006"
	}
	return g.StartDate.Format(layout) + " → " + g.EndDate.Format(layout)
}

func milestoneMark(g goal.Goal, s Scale) *MilestoneMark {
	m := g.Milestone
	if m == nil {
		return nil
	}
	mark := &MilestoneMark{ID: m.ID, Type: m.Type, Label: m.Label, Color: m.Color}
	if mark.Color == "" {
		mark.Color = g.Category.Color()
	}
	if m.Type == goal.MilestoneWindow {
		mark.LeftPct, mark.WidthPct = s.Span(m.WindowStart, m.WindowEnd, minWindowPct)
		return mark
	}
	mark.Type = goal.MilestonePoint
	mark.X = s.Pct(m.Date)
	return mark
}

func todayMarker(s Scale, today goal.Date) TodayMarker {
	raw := s.RawPct(today)
	t := TodayMarker{
		Date:    today,
		Pct:     clamp(raw, MinPct, MaxPct),
		Visible: raw >= MinPct && raw <= MaxPct,
		Align:   AlignCenter,
	}
	switch {
	case raw < todayEdgePct:
		t.Align = AlignLeft
	case raw > 100-todayEdgePct:
		t.Align = AlignRight
	}
	return t
}
