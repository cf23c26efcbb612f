package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stefanpenner/focusone/pkg/goal"
	"github.com/stefanpenner/focusone/pkg/timeline"
)

var today = goal.MustParseDate("2025-06-15")

func sampleLayout(mode timeline.Mode, width int) timeline.Layout {
	cfg := timeline.Config{WidthPx: WidthPx(TrackCols(mode, width)), Mode: mode}
	return timeline.Compute(goal.Samples(), timeline.PresetFit, cfg, today)
}

func TestColOf(t *testing.T) {
	assert.Equal(t, 0, colOf(-5, 50))
	assert.Equal(t, 0, colOf(0, 50))
	assert.Equal(t, 25, colOf(50, 50))
	assert.Equal(t, 49, colOf(100, 50))
	assert.Equal(t, 49, colOf(105, 50))
}

func TestBarCols(t *testing.T) {
	from, to := barCols(timeline.Bar{LeftPct: 10, WidthPct: 20}, 100)
	assert.Equal(t, 10, from)
	assert.Equal(t, 29, to)

	// Narrow bars keep one column.
	from, to = barCols(timeline.Bar{LeftPct: 50, WidthPct: 0.1}, 40)
	assert.Equal(t, from, to)

	// Clamped past the right edge: pinned to the last column.
	from, to = barCols(timeline.Bar{LeftPct: 104, WidthPct: 1}, 40)
	assert.Equal(t, 39, from)
	assert.Equal(t, 39, to)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", truncate("hello", 5))
	assert.Equal(t, "hel…", truncate("hello", 4))
	assert.Equal(t, "…", truncate("hello", 1))
	assert.Equal(t, "", truncate("hello", 0))
	assert.Equal(t, "Zö…", truncate("Zöpfe", 3))
}

func TestLineText(t *testing.T) {
	ln := newLine(6)
	end := ln.text(4, "abc", nil)
	assert.Equal(t, 7, end)
	assert.Equal(t, "    ab", ln.String())

	ln = newLine(4)
	ln.text(-2, "wxyz", nil)
	assert.Equal(t, "yz  ", ln.String())
}

func TestRenderTimelineLanes(t *testing.T) {
	l := sampleLayout(timeline.ModeLanes, 80)
	out := RenderTimeline(l, RenderOptions{Width: 80})
	lines := strings.Split(out, "\n")

	// quarters, months, five lanes; today is outside the range
	require.Len(t, lines, 7)
	assert.Contains(t, lines[0], "Q4 2025")
	assert.Contains(t, lines[0], "Q1 2026")
	assert.Contains(t, lines[1], "Jan 2026")

	assert.True(t, strings.HasPrefix(lines[2], "Strategy"))
	assert.Contains(t, lines[2], "Define Life Vision")
	assert.Contains(t, lines[2], string(GlyphBarMedium))

	assert.True(t, strings.HasPrefix(lines[4], "Tactical"))
	assert.Contains(t, lines[4], "A2 German Course")
	assert.Contains(t, lines[4], string(GlyphBar))

	assert.NotContains(t, lines[3], string(GlyphBar))
	for _, ln := range lines {
		assert.Equal(t, 80, len([]rune(ln)))
	}
	assert.NotContains(t, out, "\x1b", "plain output has no escapes")
}

func TestRenderTimelineFlat(t *testing.T) {
	l := sampleLayout(timeline.ModeFlat, 80)
	lines := strings.Split(RenderTimeline(l, RenderOptions{Width: 80}), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[2], "Define Life Visi…"))
	assert.Contains(t, lines[3], "A2 German Course")
}

func TestRenderTimelineNarrowDropsGutter(t *testing.T) {
	l := sampleLayout(timeline.ModeLanes, 30)
	lines := strings.Split(RenderTimeline(l, RenderOptions{Width: 30}), "\n")
	assert.False(t, strings.HasPrefix(lines[2], "Strategy"))
	assert.Equal(t, 30, len([]rune(lines[2])))
}

func TestRenderTimelineEmpty(t *testing.T) {
	cfg := timeline.Config{Mode: timeline.ModeFlat}
	l := timeline.Compute(nil, timeline.PresetFit, cfg, today)
	out := RenderTimeline(l, RenderOptions{Width: 60})
	assert.Contains(t, out, "No goals in view")
	assert.Contains(t, out, "today", "default range contains today")
}

func TestRenderTimelineScrollsToSelection(t *testing.T) {
	var goals []goal.Goal
	for i := range 6 {
		g := goal.NewDefault(today.AddDays(i * 10))
		g.ID = string(rune('a' + i))
		g.Title = "goal " + g.ID
		goals = append(goals, g)
	}
	l := timeline.Compute(goals, timeline.PresetFit, timeline.Config{Mode: timeline.ModeFlat}, today)

	out := RenderTimeline(l, RenderOptions{Width: 80, MaxRows: 2, Selected: "f"})
	assert.Contains(t, out, "goal f")
	assert.NotContains(t, out, "goal a")
	assert.Contains(t, out, "rows 5-6 of 6")
}

func TestRenderTimelineTodayAlignment(t *testing.T) {
	g := goal.NewDefault(today)
	g.ID, g.Title = "x", "Now"
	l := timeline.Compute([]goal.Goal{g}, timeline.PresetThisMonth, timeline.Config{}, today)
	require.True(t, l.Today.Visible)

	lines := strings.Split(RenderTimeline(l, RenderOptions{Width: 80}), "\n")
	last := lines[len(lines)-1]
	assert.Contains(t, last, "today Jun 15")
	assert.Contains(t, lines[2], string(GlyphToday), "marker drawn on empty lanes")
}

func TestRenderTimelineMilestones(t *testing.T) {
	g := goal.NewDefault(goal.MustParseDate("2025-06-01"))
	g.ID, g.Title = "m", "M"
	g.Category = goal.CategoryStrategy
	g.Milestone = &goal.Milestone{ID: "p", Type: goal.MilestonePoint, Label: "Beta", Date: goal.MustParseDate("2025-06-20")}
	l := timeline.Compute([]goal.Goal{g}, timeline.PresetFit, timeline.Config{}, today)
	lines := strings.Split(RenderTimeline(l, RenderOptions{Width: 80}), "\n")
	assert.Contains(t, lines[2], string(GlyphPoint))

	g.Milestone = &goal.Milestone{ID: "w", Type: goal.MilestoneWindow, Label: "Freeze",
		WindowStart: goal.MustParseDate("2025-06-10"), WindowEnd: goal.MustParseDate("2025-06-20")}
	l = timeline.Compute([]goal.Goal{g}, timeline.PresetFit, timeline.Config{}, today)
	lines = strings.Split(RenderTimeline(l, RenderOptions{Width: 80}), "\n")
	assert.Contains(t, lines[2], string(GlyphWindow))
}

func TestLabelPlacementOutside(t *testing.T) {
	g := goal.NewDefault(today)
	g.ID, g.Title = "x", "A rather long title that cannot fit"
	g.EndDate = today.AddDays(1)
	l := timeline.Compute([]goal.Goal{g}, timeline.PresetSixMonths, timeline.Config{WidthPx: WidthPx(TrackCols(timeline.ModeLanes, 100))}, today)
	require.Equal(t, timeline.PlaceOutsideRight, l.Bars[0].Placement)

	out := RenderTimeline(l, RenderOptions{Width: 100})
	assert.Contains(t, out, "A rather long title")
}
