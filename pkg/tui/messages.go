package tui

import (
	"strings"

	"github.com/stefanpenner/focusone/pkg/goal"
)

// editorMessages is the wording shown in the dashboard for draft problems.
var editorMessages = map[error]string{
	goal.ErrEmptyTitle:          "Give the goal a title.",
	goal.ErrEndBeforeStart:      "End date must be after start date.",
	goal.ErrMissingDates:        "Pick a start and end date.",
	goal.ErrMilestoneLabel:      "Give the milestone a label.",
	goal.ErrMilestoneDate:       "Pick a target date.",
	goal.ErrMilestoneWindow:     "Provide the window start and end.",
	goal.ErrMilestoneWindowSpan: "Window end must be after window start.",
}

// errorText renders err for the status line. Validation problems read as
// editor prompts; anything else is shown as an error.
func errorText(err error) string {
	var msgs []string
	for _, leaf := range leaves(err) {
		msg, ok := editorMessages[leaf]
		if !ok {
			return "Error: " + err.Error()
		}
		msgs = append(msgs, msg)
	}
	if len(msgs) == 0 {
		return "Error: " + err.Error()
	}
	return strings.Join(msgs, " ")
}

// leaves flattens joined and multi-wrapped errors.
func leaves(err error) []error {
	if err == nil {
		return nil
	}
	if multi, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range multi.Unwrap() {
			out = append(out, leaves(e)...)
		}
		return out
	}
	return []error{err}
}

