// Package filter derives the visible subset of goals from a filter spec.
package filter

import (
	"slices"
	"strings"

	"github.com/stefanpenner/focusone/pkg/goal"
)

// Set is an optional selector over one enum dimension. A nil Set matches
// everything.
type Set[T comparable] map[T]struct{}

// NewSet builds a selector from values.
func NewSet[T comparable](values ...T) Set[T] {
	s := make(Set[T], len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Has reports whether v is selected.
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// allPass reports whether the selector filters nothing: nil, empty, or
// holding every member of the enum. An empty set passes everything so a
// user can never toggle themselves into an empty list.
func (s Set[T]) allPass(all []T) bool {
	if len(s) == 0 {
		return true
	}
	for _, v := range all {
		if !s.Has(v) {
			return false
		}
	}
	return true
}

// Spec selects the visible goals. An empty set on a dimension passes all.
type Spec struct {
	Categories Set[goal.Category]
	Priorities Set[goal.Priority]
	Statuses   Set[goal.Status]
	Query      string
}

// IsZero reports whether the spec passes every goal.
func (s Spec) IsZero() bool {
	return s.Categories.allPass(goal.Categories) &&
		s.Priorities.allPass(goal.Priorities) &&
		s.Statuses.allPass(goal.Statuses) &&
		strings.TrimSpace(s.Query) == ""
}

// Reset clears every dimension and the query.
func (s *Spec) Reset() {
	*s = Spec{}
}

// Match reports whether a single goal passes the spec.
func (s Spec) Match(g goal.Goal) bool {
	return s.match(g, normQuery(s.Query))
}

func (s Spec) match(g goal.Goal, q string) bool {
	if !s.Categories.allPass(goal.Categories) && !s.Categories.Has(g.Category) {
		return false
	}
	if !s.Priorities.allPass(goal.Priorities) && !s.Priorities.Has(g.Priority) {
		return false
	}
	if !s.Statuses.allPass(goal.Statuses) && !s.Statuses.Has(g.Status) {
		return false
	}
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(g.Title), q) ||
		strings.Contains(strings.ToLower(g.Notes), q) ||
		strings.Contains(strings.ToLower(string(g.Category)), q) ||
		strings.Contains(strings.ToLower(g.Category.Label()), q)
}

func normQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// Visible returns the goals passing spec, sorted by start date then end
// date. The result is a fresh slice; all is not modified.
func Visible(all []goal.Goal, spec Spec) []goal.Goal {
	q := normQuery(spec.Query)
	out := make([]goal.Goal, 0, len(all))
	for _, g := range all {
		if spec.match(g, q) {
			out = append(out, g.Clone())
		}
	}
	SortByDate(out)
	return out
}

// SortByDate orders goals by start date, then end date. Ties keep their
// original order.
func SortByDate(goals []goal.Goal) {
	slices.SortStableFunc(goals, func(a, b goal.Goal) int {
		if c := a.StartDate.Compare(b.StartDate); c != 0 {
			return c
		}
		return a.EndDate.Compare(b.EndDate)
	})
}

// Toggle flips v in sel. Toggling from a nil selector starts from the full
// set, and a result that selects every member collapses back to nil.
func Toggle[T comparable](sel Set[T], v T, all []T) Set[T] {
	next := make(Set[T], len(all))
	if sel == nil {
		for _, a := range all {
			next[a] = struct{}{}
		}
	} else {
		for k := range sel {
			next[k] = struct{}{}
		}
	}
	if next.Has(v) {
		delete(next, v)
	} else {
		next[v] = struct{}{}
	}
	if len(next) == len(all) && next.allPass(all) {
		return nil
	}
	return next
}

// IsActive reports whether v shows as selected in the filter chips.
func IsActive[T comparable](sel Set[T], v T, all []T) bool {
	if sel == nil || len(sel) == len(all) {
		return true
	}
	return sel.Has(v)
}
