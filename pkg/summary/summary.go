// Package summary aggregates a goal set into counts for the KPI strip and
// the category and priority histograms.
package summary

import "github.com/stefanpenner/focusone/pkg/goal"

// Counts tallies goals by status.
type Counts struct {
	Total      int `json:"total"`
	Open       int `json:"open"`
	InProgress int `json:"inProgress"`
	Blocked    int `json:"blocked"`
	Done       int `json:"done"`
	Active     int `json:"active"`
}

// Compute counts goals by status. Active is everything not done.
func Compute(goals []goal.Goal) Counts {
	var c Counts
	for _, g := range goals {
		c.Total++
		switch g.Status {
		case goal.StatusInProgress:
			c.InProgress++
		case goal.StatusBlocked:
			c.Blocked++
		case goal.StatusDone:
			c.Done++
		default:
			c.Open++
		}
	}
	c.Active = c.Total - c.Done
	return c
}

// Of returns the count for a single status.
func (c Counts) Of(s goal.Status) int {
	switch s {
	case goal.StatusOpen:
		return c.Open
	case goal.StatusInProgress:
		return c.InProgress
	case goal.StatusBlocked:
		return c.Blocked
	case goal.StatusDone:
		return c.Done
	}
	return 0
}

// KPI is one cell of the summary strip.
type KPI struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value int    `json:"value"`
}

// KPIs returns the compact strip: total, active, blocked, done.
func (c Counts) KPIs() []KPI {
	return []KPI{
		{Key: "total", Label: "Total", Value: c.Total},
		{Key: "active", Label: "Active", Value: c.Active},
		{Key: "blocked", Label: "Blocked", Value: c.Blocked},
		{Key: "done", Label: "Done", Value: c.Done},
	}
}
