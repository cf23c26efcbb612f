package goal

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID returns a fresh random identifier.
func NewID() string {
	return uuid.NewString()
}

// FromRaw coerces a loosely typed record (decoded JSON or YAML) into a
// normalized Goal. It never fails: unknown or malformed fields fall back to
// defaults.
func FromRaw(raw map[string]any, today Date) Goal {
	g := Goal{
		ID:        rawString(raw["id"]),
		Title:     rawString(raw["title"]),
		Notes:     rawString(raw["notes"]),
		StartDate: rawDate(raw["startDate"]),
		EndDate:   rawDate(raw["endDate"]),
	}
	if c, ok := ParseCategory(rawString(raw["category"])); ok {
		g.Category = c
	}
	if p, ok := ParsePriority(rawString(raw["priority"])); ok {
		g.Priority = p
	}
	if s, ok := ParseStatus(rawString(raw["status"])); ok {
		g.Status = s
	}
	if m, ok := raw["milestone"].(map[string]any); ok {
		g.Milestone = milestoneFromRaw(m)
	}
	return Normalize(g, today)
}

func milestoneFromRaw(raw map[string]any) *Milestone {
	m := &Milestone{
		ID:          rawString(raw["id"]),
		Label:       rawString(raw["label"]),
		Date:        rawDate(raw["date"]),
		WindowStart: rawDate(raw["windowStart"]),
		WindowEnd:   rawDate(raw["windowEnd"]),
		Color:       rawString(raw["color"]),
	}
	if strings.EqualFold(rawString(raw["type"]), string(MilestoneWindow)) {
		m.Type = MilestoneWindow
	} else {
		m.Type = MilestonePoint
	}
	return m
}

// Normalize fills defaults and repairs inconsistent fields. It is
// idempotent: Normalize(Normalize(g)) == Normalize(g).
func Normalize(g Goal, today Date) Goal {
	g = g.Clone()
	if strings.TrimSpace(g.ID) == "" {
		g.ID = NewID()
	}
	if !g.Category.Valid() {
		g.Category = CategoryProject
	}
	if !g.Priority.Valid() {
		g.Priority = PriorityMedium
	}
	if !g.Status.Valid() {
		g.Status = StatusOpen
	}

	switch {
	case g.StartDate.IsZero() && g.EndDate.IsZero():
		g.StartDate, g.EndDate = today, today
	case g.EndDate.IsZero():
		g.EndDate = g.StartDate
	case g.StartDate.IsZero():
		g.StartDate = g.EndDate
	}
	if g.EndDate.Before(g.StartDate) {
		g.StartDate, g.EndDate = g.EndDate, g.StartDate
	}

	g.Milestone = NormalizeMilestone(g.Milestone, g.EndDate)
	return g
}

// NormalizeMilestone repairs a milestone draft. Missing dates fall back to
// fallback (normally the goal's end date), an inverted window is swapped, and
// a draft with neither a label nor any date is dropped (nil).
func NormalizeMilestone(m *Milestone, fallback Date) *Milestone {
	if m == nil {
		return nil
	}
	label := strings.TrimSpace(m.Label)
	out := Milestone{ID: m.ID, Color: m.Color}
	if strings.TrimSpace(out.ID) == "" {
		out.ID = NewID()
	}

	if m.Type == MilestoneWindow {
		if label == "" && m.WindowStart.IsZero() && m.WindowEnd.IsZero() {
			return nil
		}
		start := m.WindowStart
		if start.IsZero() {
			start = fallback
		}
		end := m.WindowEnd
		if end.IsZero() {
			end = start
		}
		if end.Before(start) {
			start, end = end, start
		}
		if label == "" {
			label = "Milestone window"
		}
		out.Type = MilestoneWindow
		out.Label = label
		out.WindowStart, out.WindowEnd = start, end
		return &out
	}

	if label == "" && m.Date.IsZero() {
		return nil
	}
	date := m.Date
	if date.IsZero() {
		date = fallback
	}
	if label == "" {
		label = "Milestone"
	}
	out.Type = MilestonePoint
	out.Label = label
	out.Date = date
	return &out
}

func rawString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case time.Time:
		return x.Format(DateLayout)
	case fmt.Stringer:
		return x.String()
	case bool, int, int64, float64:
		return fmt.Sprint(x)
	}
	return ""
}

// rawDate accepts "YYYY-MM-DD" strings, ISO timestamps, and the time.Time
// values yaml.v3 produces for unquoted dates. Stored records are read
// leniently: a string that starts with a date keeps that date. Anything else
// is "missing".
func rawDate(v any) Date {
	switch x := v.(type) {
	case time.Time:
		if x.IsZero() {
			return Date{}
		}
		return DateOf(x)
	case string:
		if d, err := ParseDate(x); err == nil {
			return d
		}
		x = strings.TrimSpace(x)
		if len(x) > len(DateLayout) {
			if d, err := ParseDate(x[:len(DateLayout)]); err == nil {
				return d
			}
		}
	}
	return Date{}
}
