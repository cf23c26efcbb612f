package goal

// DefaultDuration is the length of a freshly drafted goal, in days.
const DefaultDuration = 30

// NewDefault returns a draft goal spanning today through today+30 days.
// The draft has no id; the store assigns one on create.
func NewDefault(today Date) Goal {
	return Goal{
		StartDate: today,
		EndDate:   today.AddDays(DefaultDuration),
		Category:  CategoryProject,
		Priority:  PriorityMedium,
		Status:    StatusOpen,
	}
}

// Samples returns the built-in goal set shown when storage is empty or
// unreadable, so the dashboard is never blank on first run.
func Samples() []Goal {
	return []Goal{
		{
			ID:        "g1",
			Title:     "Define Life Vision",
			StartDate: NewDate(2025, 11, 1),
			EndDate:   NewDate(2025, 12, 15),
			Category:  CategoryStrategy,
			Priority:  PriorityMedium,
			Status:    StatusOpen,
		},
		{
			ID:        "g2",
			Title:     "A2 German Course",
			StartDate: NewDate(2025, 11, 2),
			EndDate:   NewDate(2026, 2, 7),
			Category:  CategoryTactical,
			Priority:  PriorityCritical,
			Status:    StatusOpen,
		},
	}
}
