package tui

import (
	"github.com/stefanpenner/focusone/pkg/filter"
	"github.com/stefanpenner/focusone/pkg/goal"
)

// ListItem is one line of the goal list: a section header or a goal.
type ListItem struct {
	ID              string // goal id, or section key for headers
	SectionKey      string
	Name            string
	Goal            goal.Goal
	Count           int  // goals in the section; headers only
	IsSectionHeader bool
	IsCollapsed     bool
}

// BuildListItems sections the visible goals and flattens them for
// rendering. Goals in a collapsed section are omitted but the header stays.
func BuildListItems(visible []goal.Goal, mode filter.GroupMode, collapsed map[string]bool) []ListItem {
	var result []ListItem
	for _, sec := range filter.Group(visible, mode) {
		result = append(result, ListItem{
			ID:              sec.Key,
			SectionKey:      sec.Key,
			Name:            sec.Label,
			Count:           len(sec.Goals),
			IsSectionHeader: true,
			IsCollapsed:     collapsed[sec.Key],
		})
		if collapsed[sec.Key] {
			continue
		}
		for _, g := range sec.Goals {
			result = append(result, ListItem{
				ID:         g.ID,
				SectionKey: sec.Key,
				Name:       g.DisplayTitle(),
				Goal:       g,
			})
		}
	}
	return result
}

// indexOfID returns the position of the item with id, or -1.
func indexOfID(items []ListItem, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// nearestGoal returns the closest non-header index to i, searching forward
// first, or -1 when there are no goals.
func nearestGoal(items []ListItem, i int) int {
	if i < 0 {
		i = 0
	}
	for j := i; j < len(items); j++ {
		if !items[j].IsSectionHeader {
			return j
		}
	}
	for j := min(i, len(items)-1); j >= 0; j-- {
		if !items[j].IsSectionHeader {
			return j
		}
	}
	return -1
}
