package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/stefanpenner/focusone/pkg/filter"
	"github.com/stefanpenner/focusone/pkg/goal"
)

// filterFlags are the goal selection flags shared by list and timeline.
type filterFlags struct {
	categories []string
	priorities []string
	statuses   []string
	query      string
}

func (f *filterFlags) register(fs *pflag.FlagSet) {
	fs.StringSliceVar(&f.categories, "category", nil, "only these categories (repeatable)")
	fs.StringSliceVar(&f.priorities, "priority", nil, "only these priorities (repeatable)")
	fs.StringSliceVar(&f.statuses, "status", nil, "only these statuses (repeatable)")
	fs.StringVarP(&f.query, "query", "q", "", "case-insensitive text search")
}

func (f *filterFlags) spec() (filter.Spec, error) {
	var spec filter.Spec
	for _, s := range f.categories {
		c, ok := goal.ParseCategory(s)
		if !ok {
			return spec, fmt.Errorf("unknown category %q", s)
		}
		spec.Categories = addTo(spec.Categories, c)
	}
	for _, s := range f.priorities {
		p, ok := goal.ParsePriority(s)
		if !ok {
			return spec, fmt.Errorf("unknown priority %q", s)
		}
		spec.Priorities = addTo(spec.Priorities, p)
	}
	for _, s := range f.statuses {
		st, ok := goal.ParseStatus(s)
		if !ok {
			return spec, fmt.Errorf("unknown status %q", s)
		}
		spec.Statuses = addTo(spec.Statuses, st)
	}
	spec.Query = f.query
	return spec, nil
}

func addTo[T comparable](s filter.Set[T], v T) filter.Set[T] {
	if s == nil {
		s = filter.NewSet[T]()
	}
	s[v] = struct{}{}
	return s
}
