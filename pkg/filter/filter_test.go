package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stefanpenner/focusone/pkg/goal"
)

func mk(id, title string, start, end string, c goal.Category, p goal.Priority, s goal.Status) goal.Goal {
	return goal.Goal{
		ID:        id,
		Title:     title,
		StartDate: goal.MustParseDate(start),
		EndDate:   goal.MustParseDate(end),
		Category:  c,
		Priority:  p,
		Status:    s,
	}
}

func fixture() []goal.Goal {
	return []goal.Goal{
		mk("c", "Learn German", "2025-03-01", "2025-06-01", goal.CategoryTactical, goal.PriorityCritical, goal.StatusInProgress),
		mk("a", "Life vision", "2025-01-01", "2025-02-01", goal.CategoryStrategy, goal.PriorityLow, goal.StatusOpen),
		mk("b", "Morning run", "2025-01-01", "2025-01-15", goal.CategoryDaily, goal.PriorityMedium, goal.StatusDone),
		mk("d", "Ship app", "2025-02-01", "2025-04-01", goal.CategoryProject, goal.PriorityHigh, goal.StatusBlocked),
	}
}

func ids(goals []goal.Goal) []string {
	out := make([]string, len(goals))
	for i, g := range goals {
		out[i] = g.ID
	}
	return out
}

func TestVisibleSortsByStartThenEnd(t *testing.T) {
	got := Visible(fixture(), Spec{})
	assert.Equal(t, []string{"b", "a", "d", "c"}, ids(got))
}

func TestVisibleEmptySelectorsPassAll(t *testing.T) {
	all := fixture()
	specs := []Spec{
		{},
		{Categories: Set[goal.Category]{}, Priorities: Set[goal.Priority]{}, Statuses: Set[goal.Status]{}},
		{Categories: NewSet(goal.Categories...), Statuses: NewSet(goal.Statuses...)},
	}
	for _, spec := range specs {
		assert.ElementsMatch(t, ids(all), ids(Visible(all, spec)))
		assert.True(t, spec.IsZero())
	}
}

func TestVisibleDimensions(t *testing.T) {
	all := fixture()

	got := Visible(all, Spec{Categories: NewSet(goal.CategoryDaily, goal.CategoryProject)})
	assert.Equal(t, []string{"b", "d"}, ids(got))

	got = Visible(all, Spec{
		Categories: NewSet(goal.CategoryDaily, goal.CategoryProject),
		Statuses:   NewSet(goal.StatusBlocked),
	})
	assert.Equal(t, []string{"d"}, ids(got))

	got = Visible(all, Spec{Priorities: NewSet(goal.PriorityCritical, goal.PriorityLow)})
	assert.Equal(t, []string{"a", "c"}, ids(got))
}

func TestVisibleQuery(t *testing.T) {
	all := fixture()
	all[1].Notes = "Write it DOWN"

	assert.Equal(t, []string{"c"}, ids(Visible(all, Spec{Query: "  GERMAN "})))
	assert.Equal(t, []string{"a"}, ids(Visible(all, Spec{Query: "down"})))
	assert.Equal(t, []string{"c"}, ids(Visible(all, Spec{Query: "tactical"})))
	assert.Empty(t, Visible(all, Spec{Query: "nothing matches"}))
	assert.False(t, Spec{Query: "x"}.IsZero())
}

func TestVisibleReturnsFreshSlice(t *testing.T) {
	all := fixture()
	got := Visible(all, Spec{})
	got[0].Title = "changed"
	assert.Equal(t, "Learn German", all[0].Title)
	assert.Equal(t, "Morning run", all[2].Title)
}

func TestToggle(t *testing.T) {
	all := goal.Statuses

	sel := Toggle[goal.Status](nil, goal.StatusDone, all)
	require.NotNil(t, sel)
	assert.Len(t, sel, 3)
	assert.False(t, sel.Has(goal.StatusDone))
	assert.False(t, IsActive(sel, goal.StatusDone, all))
	assert.True(t, IsActive(sel, goal.StatusOpen, all))

	sel = Toggle(sel, goal.StatusDone, all)
	assert.Nil(t, sel)
	assert.True(t, IsActive(sel, goal.StatusDone, all))
}

func TestReset(t *testing.T) {
	spec := Spec{Query: "x", Statuses: NewSet(goal.StatusOpen)}
	spec.Reset()
	assert.True(t, spec.IsZero())
	assert.Nil(t, spec.Statuses)
}

func TestGroup(t *testing.T) {
	visible := Visible(fixture(), Spec{})

	sections := Group(visible, GroupByStatus)
	require.Len(t, sections, 4)
	assert.Equal(t, "Open", sections[0].Label)
	assert.Equal(t, "status-done", sections[3].Key)

	sections = Group(visible, GroupByPriority)
	require.Len(t, sections, 4)
	assert.Equal(t, "Critical", sections[0].Label)
	assert.Equal(t, "Low", sections[3].Label)

	sections = Group(Visible(fixture(), Spec{Statuses: NewSet(goal.StatusOpen)}), GroupByStatus)
	require.Len(t, sections, 1)
	assert.Equal(t, []string{"a"}, ids(sections[0].Goals))

	sections = Group(visible, GroupFlow)
	require.Len(t, sections, 1)
	assert.Len(t, sections[0].Goals, 4)

	assert.Empty(t, Group(nil, GroupFlow))
	assert.Equal(t, GroupByStatus, ParseGroupMode("bogus"))
}

func TestGroupModeNext(t *testing.T) {
	assert.Equal(t, GroupByPriority, GroupByStatus.Next())
	assert.Equal(t, GroupFlow, GroupByPriority.Next())
	assert.Equal(t, GroupByStatus, GroupFlow.Next())
	assert.Equal(t, GroupByStatus, GroupMode("bogus").Next())
}
