package filter

import "github.com/stefanpenner/focusone/pkg/goal"

// GroupMode selects how the goal list is sectioned.
type GroupMode string

const (
	GroupByStatus   GroupMode = "status"
	GroupByPriority GroupMode = "priority"
	GroupFlow       GroupMode = "flow"
)

// GroupModes lists the modes in cycling order.
var GroupModes = []GroupMode{GroupByStatus, GroupByPriority, GroupFlow}

// Next returns the mode after g, wrapping around.
func (g GroupMode) Next() GroupMode {
	for i, x := range GroupModes {
		if x == g {
			return GroupModes[(i+1)%len(GroupModes)]
		}
	}
	return GroupByStatus
}

// ParseGroupMode returns the mode named s, defaulting to status.
func ParseGroupMode(s string) GroupMode {
	switch GroupMode(s) {
	case GroupByPriority, GroupFlow:
		return GroupMode(s)
	}
	return GroupByStatus
}

// Section is one titled block of the goal list.
type Section struct {
	Key   string
	Label string
	Goals []goal.Goal
}

// Group sections goals for the list view. Input order is kept within each
// section and empty sections are dropped.
func Group(goals []goal.Goal, mode GroupMode) []Section {
	var sections []Section
	switch mode {
	case GroupFlow:
		sections = []Section{{Key: "all", Label: "All goals", Goals: goals}}
	case GroupByPriority:
		for i := len(goal.Priorities) - 1; i >= 0; i-- {
			p := goal.Priorities[i]
			sections = append(sections, Section{
				Key:   "priority-" + string(p),
				Label: p.Label(),
				Goals: pick(goals, func(g goal.Goal) bool { return g.Priority == p }),
			})
		}
	default:
		for _, s := range goal.Statuses {
			sections = append(sections, Section{
				Key:   "status-" + string(s),
				Label: s.Label(),
				Goals: pick(goals, func(g goal.Goal) bool { return g.Status == s }),
			})
		}
	}

	out := sections[:0]
	for _, sec := range sections {
		if len(sec.Goals) > 0 {
			out = append(out, sec)
		}
	}
	return out
}

func pick(goals []goal.Goal, keep func(goal.Goal) bool) []goal.Goal {
	var out []goal.Goal
	for _, g := range goals {
		if keep(g) {
			out = append(out, g)
		}
	}
	return out
}
