package goal

import (
	"errors"
	"strings"
)

var (
	ErrEmptyTitle          = errors.New("goal title is empty")
	ErrEndBeforeStart      = errors.New("end date is before start date")
	ErrMissingDates        = errors.New("start and end dates are required")
	ErrMilestoneLabel      = errors.New("milestone label is empty")
	ErrMilestoneDate       = errors.New("milestone date is required")
	ErrMilestoneWindow     = errors.New("milestone window needs a start and end")
	ErrMilestoneWindowSpan = errors.New("milestone window ends before it starts")
)
	ErrEndBeforeStart      = errors.New("End date must be after start date.")
	ErrMissingDates        = errors.New("Pick a start and end date.")
	ErrMilestoneLabel      = errors.New("Give the milestone a label.")
	ErrMilestoneDate       = errors.New("Pick a target date.")
	ErrMilestoneWindow     = errors.New("Provide the window start and end.")
	ErrMilestoneWindowSpan = errors.New("Window end must be after window start.")
)

// ValidationError collects every problem found in a goal draft.
type ValidationError struct {
	Problems []error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = p.Error()
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() []error { return e.Problems }

// Validate checks a draft before it is saved from an editor. It returns nil
// or a *ValidationError; match individual problems with errors.Is.
func Validate(g Goal) error {
	var problems []error
	if strings.TrimSpace(g.Title) == "" {
		problems = append(problems, ErrEmptyTitle)
	}
	switch {
	case g.StartDate.IsZero() || g.EndDate.IsZero():
		problems = append(problems, ErrMissingDates)
	case g.EndDate.Before(g.StartDate):
		problems = append(problems, ErrEndBeforeStart)
	}
	if g.Milestone != nil {
		problems = append(problems, ValidateMilestone(*g.Milestone)...)
	}
	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}

// ValidateMilestone returns the problems with a milestone draft.
func ValidateMilestone(m Milestone) []error {
	var problems []error
	if strings.TrimSpace(m.Label) == "" {
		problems = append(problems, ErrMilestoneLabel)
	}
	if m.Type == MilestoneWindow {
		switch {
		case m.WindowStart.IsZero() || m.WindowEnd.IsZero():
			problems = append(problems, ErrMilestoneWindow)
		case m.WindowEnd.Before(m.WindowStart):
			problems = append(problems, ErrMilestoneWindowSpan)
		}
		return problems
	}
	if m.Date.IsZero() {
		problems = append(problems, ErrMilestoneDate)
	}
	return problems
}
