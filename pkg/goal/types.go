package goal

import "strings"

// Category is the planning horizon a goal belongs to. It doubles as the lane
// in the timeline's lane layout.
type Category string

const (
	CategoryStrategy Category = "STRATEGY"
	CategoryVision   Category = "VISION"
	CategoryTactical Category = "TACTICAL"
	CategoryProject  Category = "PROJECT"
	CategoryDaily    Category = "DAILY"
)

// Priority is an ordinal visual weight. It has no scheduling effect.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Status drives grouping and coloring only; any transition is allowed.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in-progress"
	StatusBlocked    Status = "blocked"
	StatusDone       Status = "done"
)

// MilestoneType tags the Milestone union.
type MilestoneType string

const (
	MilestonePoint  MilestoneType = "point"
	MilestoneWindow MilestoneType = "window"
)

// Goal is a date-ranged intention with category, priority and status.
type Goal struct {
	ID        string     `json:"id" yaml:"id"`
	Title     string     `json:"title" yaml:"title"`
	StartDate Date       `json:"startDate" yaml:"startDate"`
	EndDate   Date       `json:"endDate" yaml:"endDate"`
	Category  Category   `json:"category" yaml:"category"`
	Priority  Priority   `json:"priority" yaml:"priority"`
	Status    Status     `json:"status" yaml:"status"`
	Notes     string     `json:"notes,omitempty" yaml:"notes,omitempty"`
	Milestone *Milestone `json:"milestone,omitempty" yaml:"milestone,omitempty"`
}

// Milestone is an optional sub-event of a goal: a single labeled date
// (point) or a labeled sub-range (window). Only the fields of the active
// variant are set.
type Milestone struct {
	ID          string        `json:"id" yaml:"id"`
	Type        MilestoneType `json:"type" yaml:"type"`
	Label       string        `json:"label" yaml:"label"`
	Date        Date          `json:"date,omitzero" yaml:"date,omitempty"`
	WindowStart Date          `json:"windowStart,omitzero" yaml:"windowStart,omitempty"`
	WindowEnd   Date          `json:"windowEnd,omitzero" yaml:"windowEnd,omitempty"`
	Color       string        `json:"color,omitempty" yaml:"color,omitempty"`
}

// DisplayTitle returns the title, or "Untitled" when it is blank.
func (g Goal) DisplayTitle() string {
	if strings.TrimSpace(g.Title) != "" {
		return g.Title
	}
	return "Untitled"
}

// IsDone reports whether the goal is finished.
func (g Goal) IsDone() bool {
	return g.Status == StatusDone
}

// IsOverdue reports whether an unfinished goal ended before today.
func (g Goal) IsOverdue(today Date) bool {
	return !g.IsDone() && !g.EndDate.IsZero() && g.EndDate.Before(today)
}

// Clone returns a deep copy so callers cannot mutate shared milestones.
func (g Goal) Clone() Goal {
	if g.Milestone != nil {
		m := *g.Milestone
		g.Milestone = &m
	}
	return g
}

// CloneAll deep-copies a slice of goals.
func CloneAll(goals []Goal) []Goal {
	if goals == nil {
		return nil
	}
	out := make([]Goal, len(goals))
	for i, g := range goals {
		out[i] = g.Clone()
	}
	return out
}

// Span returns the milestone's extent on the calendar. A point milestone
// starts and ends on its date.
func (m Milestone) Span() (Date, Date) {
	if m.Type == MilestoneWindow {
		return m.WindowStart, m.WindowEnd
	}
	return m.Date, m.Date
}
