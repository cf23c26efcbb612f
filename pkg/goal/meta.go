package goal

import "strings"

// Meta is the display metadata of an enum member. Every package reads labels,
// colors and ordering from here instead of keeping its own copy.
type Meta struct {
	Label  string
	Color  string  // hex, e.g. "#38bdf8"
	Order  int     // ascending display order
	Weight float64 // visual weight in [0,1]; used by priorities
}

// Categories lists every category in lane order.
var Categories = []Category{
	CategoryStrategy,
	CategoryVision,
	CategoryTactical,
	CategoryProject,
	CategoryDaily,
}

// Priorities lists every priority from lowest to highest.
var Priorities = []Priority{
	PriorityLow,
	PriorityMedium,
	PriorityHigh,
	PriorityCritical,
}

// Statuses lists every status in workflow order.
var Statuses = []Status{
	StatusOpen,
	StatusInProgress,
	StatusBlocked,
	StatusDone,
}

var categoryMeta = map[Category]Meta{
	CategoryStrategy: {Label: "Strategy", Color: "#38bdf8", Order: 0},
	CategoryVision:   {Label: "Vision", Color: "#a855f7", Order: 1},
	CategoryTactical: {Label: "Tactical", Color: "#14b8a6", Order: 2},
	CategoryProject:  {Label: "Project", Color: "#f97316", Order: 3},
	CategoryDaily:    {Label: "Daily", Color: "#facc15", Order: 4},
}

var priorityMeta = map[Priority]Meta{
	PriorityLow:      {Label: "Low", Color: "#34d399", Order: 0, Weight: 0.5},
	PriorityMedium:   {Label: "Medium", Color: "#fbbf24", Order: 1, Weight: 0.7},
	PriorityHigh:     {Label: "High", Color: "#fb923c", Order: 2, Weight: 0.9},
	PriorityCritical: {Label: "Critical", Color: "#f43f5e", Order: 3, Weight: 1.0},
}

var statusMeta = map[Status]Meta{
	StatusOpen:       {Label: "Open", Color: "#94a3b8", Order: 0},
	StatusInProgress: {Label: "In progress", Color: "#60a5fa", Order: 1},
	StatusBlocked:    {Label: "Blocked", Color: "#f87171", Order: 2},
	StatusDone:       {Label: "Done", Color: "#4ade80", Order: 3},
}

func (c Category) Meta() Meta { return categoryMeta[c] }
func (c Category) Label() string { return categoryMeta[c].Label }
func (c Category) Color() string { return categoryMeta[c].Color }
func (c Category) Valid() bool {
	_, ok := categoryMeta[c]
	return ok
}

func (p Priority) Meta() Meta { return priorityMeta[p] }
func (p Priority) Label() string { return priorityMeta[p].Label }
func (p Priority) Color() string { return priorityMeta[p].Color }
func (p Priority) Valid() bool {
	_, ok := priorityMeta[p]
	return ok
}

func (s Status) Meta() Meta { return statusMeta[s] }
func (s Status) Label() string { return statusMeta[s].Label }
func (s Status) Color() string { return statusMeta[s].Color }
func (s Status) Valid() bool {
	_, ok := statusMeta[s]
	return ok
}

// ParseCategory matches a category case-insensitively.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	return c, c.Valid()
}

// ParsePriority matches a priority case-insensitively.
func ParsePriority(s string) (Priority, bool) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	return p, p.Valid()
}

// ParseStatus matches a status case-insensitively. "in progress" and
// "in_progress" are accepted for in-progress.
func ParseStatus(s string) (Status, bool) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "-", "_", "-").Replace(norm)
	st := Status(norm)
	return st, st.Valid()
}

// NextStatus cycles open → in-progress → blocked → done → open.
func NextStatus(s Status) Status {
	for i, st := range Statuses {
		if st == s {
			return Statuses[(i+1)%len(Statuses)]
		}
	}
	return StatusOpen
}
