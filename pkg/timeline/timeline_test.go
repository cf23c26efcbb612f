package timeline

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stefanpenner/focusone/pkg/goal"
)

var today = goal.MustParseDate("2025-06-15")

func span(id, start, end string) goal.Goal {
	return goal.Goal{
		ID:        id,
		Title:     "Goal " + id,
		StartDate: goal.MustParseDate(start),
		EndDate:   goal.MustParseDate(end),
		Category:  goal.CategoryProject,
		Priority:  goal.PriorityMedium,
		Status:    goal.StatusOpen,
	}
}

func TestFitScenario(t *testing.T) {
	goals := []goal.Goal{
		span("a", "2025-01-10", "2025-02-28"),
		span("b", "2025-03-01", "2025-04-15"),
	}
	l := Compute(goals, PresetFit, Config{}, today)

	assert.Equal(t, "2025-01-01", l.Range.Start.String())
	assert.Equal(t, "2025-04-30", l.Range.End.String())

	require.Len(t, l.Bars, 2)
	// 9 of 119 days into the range
	assert.InDelta(t, 9.0/119*100, l.Bars[0].LeftPct, 1e-9)
	assert.InDelta(t, 59.0/119*100, l.Bars[1].LeftPct, 1e-9)
	assert.InDelta(t, NewScale(l.Range).Pct(goal.MustParseDate("2025-03-01")), l.Bars[1].LeftPct, 1e-9)
	assert.InDelta(t, 100, l.Bars[1].RightPct()+(15.0/119*100), 1e-9)
}

func TestFitEmpty(t *testing.T) {
	l := Compute(nil, PresetFit, Config{}, today)
	assert.Equal(t, DefaultRange(today), l.Range)
	assert.Equal(t, "2025-06-01", l.Range.Start.String())
	assert.Equal(t, "2025-11-30", l.Range.End.String())
	assert.Empty(t, l.Bars)
	assert.Len(t, l.Rows, len(goal.Categories))
	assert.NotEmpty(t, l.Months)
	assert.True(t, l.Today.Visible)
}

func TestFitSpansBoundingMonths(t *testing.T) {
	goals := []goal.Goal{
		span("a", "2024-11-20", "2025-01-03"),
		span("b", "2025-07-04", "2025-09-09"),
		span("c", "2025-02-01", "2025-02-02"),
	}
	r := Resolve(PresetFit, goals, today)
	assert.Equal(t, "2024-11-01", r.Start.String())
	assert.Equal(t, "2025-09-30", r.End.String())
}

func TestResolvePresets(t *testing.T) {
	tests := []struct {
		preset     Preset
		start, end string
	}{
		{PresetThisMonth, "2025-06-01", "2025-06-30"},
		{PresetSixMonths, "2025-06-01", "2025-11-30"},
		{PresetYearToDate, "2025-01-01", "2025-06-15"},
		{PresetNextYearToDate, "2025-06-15", "2026-12-31"},
		{PresetFiveYears, "2025-06-01", "2030-05-31"},
		{Preset("bogus"), "2025-06-01", "2025-11-30"},
	}
	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			r := Resolve(tt.preset, nil, today)
			assert.Equal(t, tt.start, r.Start.String())
			assert.Equal(t, tt.end, r.End.String())
		})
	}
}

func TestResolveCollapsesInvertedRange(t *testing.T) {
	bad := span("x", "2025-05-10", "2025-03-01")
	r := Resolve(PresetFit, []goal.Goal{bad}, today)
	assert.Equal(t, r.Start, r.End)
	assert.Equal(t, 1, r.Days())

	jan1 := goal.MustParseDate("2025-01-01")
	r = Resolve(PresetYearToDate, nil, jan1)
	assert.Equal(t, jan1, r.Start)
	assert.Equal(t, jan1, r.End)

	// a single-day range must not divide by zero
	s := NewScale(r)
	assert.Equal(t, 0.0, s.Pct(jan1))
	assert.Equal(t, MaxPct, s.Pct(jan1.AddDays(1)))
}

func TestParsePreset(t *testing.T) {
	p, err := ParsePreset(" 6-Months ")
	require.NoError(t, err)
	assert.Equal(t, PresetSixMonths, p)

	p, err = ParsePreset("decade")
	assert.ErrorIs(t, err, ErrUnknownPreset)
	assert.Equal(t, PresetFit, p)

	assert.Equal(t, PresetThisMonth, PresetFit.Next())
	assert.Equal(t, PresetFit, PresetFiveYears.Next())
	assert.Equal(t, "Year to date", PresetYearToDate.Label())
}

func TestScaleClamps(t *testing.T) {
	s := NewScale(Range{Start: goal.MustParseDate("2025-01-01"), End: goal.MustParseDate("2025-01-11")})
	assert.Equal(t, 50.0, s.Pct(goal.MustParseDate("2025-01-06")))
	assert.Equal(t, MinPct, s.Pct(goal.MustParseDate("2024-01-01")))
	assert.Equal(t, MaxPct, s.Pct(goal.MustParseDate("2026-01-01")))
	assert.Less(t, s.RawPct(goal.MustParseDate("2024-01-01")), MinPct)
}

func TestBarsStayInPaddedAxis(t *testing.T) {
	base := goal.MustParseDate("2024-01-01")
	var goals []goal.Goal
	for i := 0; i < 40; i++ {
		start := base.AddDays(i * 23)
		end := start.AddDays((i * 37) % 400)
		if i%7 == 0 {
			end = start
		}
		goals = append(goals, goal.Goal{
			ID:        fmt.Sprint(i),
			Title:     fmt.Sprintf("goal number %d", i),
			StartDate: start,
			EndDate:   end,
			Category:  goal.Categories[i%len(goal.Categories)],
			Priority:  goal.PriorityHigh,
			Status:    goal.StatusOpen,
			Milestone: &goal.Milestone{
				ID:          "m",
				Type:        goal.MilestoneWindow,
				Label:       "w",
				WindowStart: end,
				WindowEnd:   end,
			},
		})
	}
	for _, preset := range Presets {
		for _, width := range []float64{120, 480, 1440} {
			for _, mode := range []Mode{ModeLanes, ModeFlat} {
				l := Compute(goals, preset, Config{WidthPx: width, Mode: mode}, today)
				for _, b := range l.Bars {
					assert.GreaterOrEqual(t, b.LeftPct, MinPct, "preset %s bar %s", preset, b.GoalID)
					assert.LessOrEqual(t, b.RightPct(), MaxPct+1e-9, "preset %s bar %s", preset, b.GoalID)
					assert.GreaterOrEqual(t, b.WidthPct, max(1, 6/width*100)-1e-9)
					require.NotNil(t, b.Milestone)
					assert.GreaterOrEqual(t, b.Milestone.WidthPct, 2.0)
					assert.LessOrEqual(t, b.Milestone.LeftPct+b.Milestone.WidthPct, MaxPct+1e-9)
					assert.GreaterOrEqual(t, b.Milestone.LeftPct, MinPct)
				}
			}
		}
	}
}

func TestMinimumBarWidth(t *testing.T) {
	goals := []goal.Goal{span("a", "2025-03-10", "2025-03-10")}

	l := Compute(goals, PresetFit, Config{WidthPx: 960}, today)
	assert.InDelta(t, 1.0, l.Bars[0].WidthPct, 1e-9)

	l = Compute(goals, PresetFit, Config{WidthPx: 300}, today)
	assert.InDelta(t, 2.0, l.Bars[0].WidthPct, 1e-9)
}

func TestBarOutsideRangeIsShiftedNotHidden(t *testing.T) {
	goals := []goal.Goal{
		span("late", "2027-01-01", "2027-02-01"),
		span("early", "2020-01-01", "2020-02-01"),
	}
	l := Compute(goals, PresetThisMonth, Config{WidthPx: 960}, today)
	require.Len(t, l.Bars, 2)
	early, late := l.Bars[0], l.Bars[1]
	assert.Equal(t, MinPct, early.LeftPct)
	assert.InDelta(t, 1.0, early.WidthPct, 1e-9)
	assert.InDelta(t, MaxPct, late.RightPct(), 1e-9)
	assert.InDelta(t, 104.0, late.LeftPct, 1e-9)
}

func TestRowsLaneMode(t *testing.T) {
	a := span("a", "2025-01-01", "2025-02-01")
	a.Category = goal.CategoryDaily
	b := span("b", "2025-01-05", "2025-03-01")
	b.Category = goal.CategoryStrategy
	c := span("c", "2025-01-20", "2025-01-25")
	c.Category = goal.CategoryDaily

	l := Compute([]goal.Goal{a, b, c}, PresetFit, Config{Mode: ModeLanes}, today)
	require.Len(t, l.Rows, 5)
	assert.Equal(t, "STRATEGY", l.Rows[0].Key)
	assert.Equal(t, "Daily", l.Rows[4].Label)
	assert.Len(t, l.BarsInRow(4), 2)
	assert.Len(t, l.BarsInRow(0), 1)
	assert.Empty(t, l.BarsInRow(1))
	assert.Equal(t, 48.0, l.RowHeight)
	assert.Equal(t, 240.0, l.Height())
}

func TestRowsFlatMode(t *testing.T) {
	goals := []goal.Goal{
		span("b", "2025-02-01", "2025-03-01"),
		span("a", "2025-01-01", "2025-03-01"),
	}
	l := Compute(goals, PresetFit, Config{Mode: ModeFlat}, today)
	require.Len(t, l.Rows, 2)
	assert.Equal(t, "a", l.Rows[0].Key)
	assert.Equal(t, "a", l.Bars[0].GoalID)
	assert.Equal(t, 0, l.Bars[0].Row)
	assert.Equal(t, 1, l.Bars[1].Row)
}

func TestRowHeightBands(t *testing.T) {
	tests := []struct {
		rows    int
		density Density
		want    float64
	}{
		{5, DensityComfortable, 64},
		{5, DensityBalanced, 48},
		{5, DensityCompact, 34},
		{10, DensityComfortable, 44},
		{10, DensityBalanced, 42},
		{10, DensityCompact, 34},
		{20, DensityBalanced, 32},
		{50, DensityCompact, 22},
		{0, DensityBalanced, 48},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RowHeight(420, tt.rows, tt.density), "%d rows %s", tt.rows, tt.density)
	}
}

func TestParseDensityAndMode(t *testing.T) {
	d, err := ParseDensity("Compact")
	require.NoError(t, err)
	assert.Equal(t, DensityCompact, d)
	_, err = ParseDensity("airy")
	assert.Error(t, err)
	assert.Equal(t, Band{Min: 32, Max: 48}, Density("airy").Band())

	m, err := ParseMode("flat")
	require.NoError(t, err)
	assert.Equal(t, ModeFlat, m)
	_, err = ParseMode("grid")
	assert.Error(t, err)
}

func TestEstimateLabelWidth(t *testing.T) {
	assert.Equal(t, 32.0, EstimateLabelWidth(""))
	assert.Equal(t, 82.0, EstimateLabelWidth("abcdefghij"))
	assert.Equal(t, 82.0, EstimateLabelWidth("äöüßéèêëïî"))
	assert.Equal(t, 280.0, EstimateLabelWidth(string(make([]byte, 100))))
}

func TestPlaceLabel(t *testing.T) {
	title := "Define Life Vision" // 138px estimate
	tests := []struct {
		name        string
		left, width float64
		want        Placement
	}{
		{"wide bar", 40, 20, PlaceInside},
		{"short near left", 2, 5, PlaceOutsideRight},
		{"short near right", 88, 5, PlaceOutsideLeft},
		{"short ending at 85", 80, 5, PlaceOutsideLeft},
		{"short in middle", 50, 5, PlaceOutsideCenter},
		{"wide bar across both edge zones", 10, 80, PlaceInside},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlaceLabel(title, tt.left, tt.width, 960))
		})
	}
	assert.True(t, PlaceOutsideLeft.Outside())
	assert.False(t, PlaceInside.Outside())
}

func TestLabelDetail(t *testing.T) {
	assert.Equal(t, DetailExpanded, DetailFor(PlaceInside, 36))
	assert.Equal(t, DetailCompact, DetailFor(PlaceInside, 34))
	assert.Equal(t, DetailCompact, DetailFor(PlaceOutsideCenter, 64))

	goals := []goal.Goal{span("a", "2025-01-01", "2025-06-30")}
	l := Compute(goals, PresetFit, Config{Density: DensityCompact}, today)
	assert.Equal(t, PlaceInside, l.Bars[0].Placement)
	assert.Equal(t, DetailCompact, l.Bars[0].Detail)

	l = Compute(goals, PresetFit, Config{Density: DensityComfortable}, today)
	assert.Equal(t, DetailExpanded, l.Bars[0].Detail)
	assert.Equal(t, "Jan 1 → Jun 30", l.Bars[0].Subtitle)
}

func TestUntitledBar(t *testing.T) {
	g := span("a", "2025-01-01", "2025-02-01")
	g.Title = ""
	l := Compute([]goal.Goal{g}, PresetFit, Config{}, today)
	assert.Equal(t, "Untitled", l.Bars[0].Title)
}

func TestMilestones(t *testing.T) {
	point := span("p", "2025-01-01", "2025-01-31")
	point.Milestone = &goal.Milestone{ID: "m1", Type: goal.MilestonePoint, Label: "Demo", Date: goal.MustParseDate("2025-01-16")}
	window := span("w", "2025-01-01", "2025-01-31")
	window.Milestone = &goal.Milestone{
		ID:          "m2",
		Type:        goal.MilestoneWindow,
		Label:       "Trip",
		WindowStart: goal.MustParseDate("2025-01-21"),
		WindowEnd:   goal.MustParseDate("2025-01-11"),
		Color:       "#ffffff",
	}
	degenerate := span("d", "2025-01-01", "2025-01-31")
	degenerate.Milestone = &goal.Milestone{
		ID:          "m3",
		Type:        goal.MilestoneWindow,
		WindowStart: goal.MustParseDate("2025-01-31"),
		WindowEnd:   goal.MustParseDate("2025-01-31"),
	}

	l := Compute([]goal.Goal{point, window, degenerate}, PresetFit, Config{}, today)
	require.Len(t, l.Bars, 3)

	pm := l.Bars[0].Milestone
	require.NotNil(t, pm)
	assert.Equal(t, goal.MilestonePoint, pm.Type)
	assert.InDelta(t, 50.0, pm.X, 1e-9)
	assert.Equal(t, goal.CategoryProject.Color(), pm.Color)

	wm := l.Bars[1].Milestone
	require.NotNil(t, wm)
	assert.InDelta(t, 100.0/3, wm.LeftPct, 1e-9)
	assert.InDelta(t, 100.0/3, wm.WidthPct, 1e-9)
	assert.Equal(t, "#ffffff", wm.Color)

	dm := l.Bars[2].Milestone
	require.NotNil(t, dm)
	assert.InDelta(t, 2.0, dm.WidthPct, 1e-9)
	assert.InDelta(t, 100.0, dm.LeftPct, 1e-9)
}

func TestTodayMarker(t *testing.T) {
	r := Range{Start: goal.MustParseDate("2025-01-01"), End: goal.MustParseDate("2025-12-31")}
	s := NewScale(r)

	m := todayMarker(s, goal.MustParseDate("2025-07-01"))
	assert.True(t, m.Visible)
	assert.Equal(t, AlignCenter, m.Align)

	m = todayMarker(s, goal.MustParseDate("2025-01-05"))
	assert.True(t, m.Visible)
	assert.Equal(t, AlignLeft, m.Align)

	m = todayMarker(s, goal.MustParseDate("2025-12-30"))
	assert.Equal(t, AlignRight, m.Align)

	m = todayMarker(s, goal.MustParseDate("2027-01-01"))
	assert.False(t, m.Visible)
	assert.Equal(t, MaxPct, m.Pct)

	// within the padding still shows
	m = todayMarker(s, goal.MustParseDate("2024-12-25"))
	assert.True(t, m.Visible)
}

func TestMonthGridlines(t *testing.T) {
	r := Range{Start: goal.MustParseDate("2024-11-01"), End: goal.MustParseDate("2025-02-28")}
	lines := MonthGridlines(r, NewScale(r))
	require.Len(t, lines, 3)
	assert.Equal(t, "Dec", lines[0].Label)
	assert.Equal(t, "Jan 2025", lines[1].Label)
	assert.Equal(t, "2025-02-01", lines[2].Date.String())
	for _, l := range lines {
		assert.Greater(t, l.Pct, 0.0)
		assert.Less(t, l.Pct, 100.0)
	}

	// mid-month start still gets the next boundary
	r = Range{Start: goal.MustParseDate("2025-01-15"), End: goal.MustParseDate("2025-02-01")}
	lines = MonthGridlines(r, NewScale(r))
	require.Len(t, lines, 1)
	assert.InDelta(t, 100.0, lines[0].Pct, 1e-9)
}

func TestQuarters(t *testing.T) {
	r := Range{Start: goal.MustParseDate("2025-02-15"), End: goal.MustParseDate("2025-08-10")}
	bands := Quarters(r, NewScale(r))
	require.Len(t, bands, 3)
	assert.Equal(t, "Q1 2025", bands[0].Label)
	assert.Equal(t, "2025-02-15", bands[0].Start.String())
	assert.Equal(t, "2025-03-31", bands[0].End.String())
	assert.Equal(t, 0.0, bands[0].LeftPct)
	assert.Equal(t, "Q2 2025", bands[1].Label)
	assert.Equal(t, "2025-04-01", bands[1].Start.String())
	assert.Equal(t, "Q3 2025", bands[2].Label)
	assert.Equal(t, "2025-08-10", bands[2].End.String())
	assert.Equal(t, 100.0, bands[2].RightPct)
	for i := 1; i < len(bands); i++ {
		assert.InDelta(t, bands[i].LeftPct, bands[i-1].RightPct, 1e-9, "band %d", i)
	}

	r = Range{Start: goal.MustParseDate("2025-12-01"), End: goal.MustParseDate("2026-01-31")}
	bands = Quarters(r, NewScale(r))
	require.Len(t, bands, 2)
	assert.Equal(t, "Q4 2025", bands[0].Label)
	assert.Equal(t, "Q1 2026", bands[1].Label)
}

func TestLayoutJSON(t *testing.T) {
	l := Compute([]goal.Goal{span("a", "2025-01-01", "2025-02-01")}, PresetFit, Config{}, today)
	out, err := json.Marshal(l)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"preset":"fit"`)
	assert.Contains(t, string(out), `"start":"2025-01-01"`)
	assert.Contains(t, string(out), `"placement":"inside"`)
}

func TestDensityAndModeCycling(t *testing.T) {
	assert.Equal(t, DensityBalanced, DensityComfortable.Next())
	assert.Equal(t, DensityCompact, DensityBalanced.Next())
	assert.Equal(t, DensityComfortable, DensityCompact.Next())
	assert.Equal(t, ModeFlat, ModeLanes.Toggle())
	assert.Equal(t, ModeLanes, ModeFlat.Toggle())
}
