package projection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"planboard/internal/model"
	"planboard/internal/projection"
	"planboard/internal/viewstate"
)

func TestFilter_ArchivedHiddenByDefault(t *testing.T) {
	ds := newDataset()
	st := viewstate.NewRegistry(0).For("p1")

	assert.Equal(t, []string{"t1", "t2", "t3", "t5", "t6"}, ids(projection.Filter(ds, st)))

	st.ToggleShowArchived()
	assert.Equal(t, []string{"t1", "t2", "t3", "t4", "t5", "t6"}, ids(projection.Filter(ds, st)))
}

func TestFilter_AssigneeAndArchivedCompose(t *testing.T) {
	ds := &projection.Dataset{Tasks: []*model.Task{
		{ID: "a", AssigneeID: model.StringPtr("A")},
		{ID: "b", AssigneeID: model.StringPtr("B"), IsArchived: true},
	}}
	st := viewstate.NewRegistry(0).For("p")
	st.SetAssigneeFilter([]string{"A"})

	assert.Equal(t, []string{"a"}, ids(projection.Filter(ds, st)))
}

func TestFilter_UnassignedSentinelAndEmptySelection(t *testing.T) {
	ds := newDataset()
	st := viewstate.NewRegistry(0).For("p1")

	st.SetAssigneeFilter([]string{viewstate.UnassignedFilter, "u2"})
	assert.Equal(t, []string{"t2", "t3"}, ids(projection.Filter(ds, st)))

	st.SetAssigneeFilter([]string{})
	assert.Len(t, projection.Filter(ds, st), 5)
}

func TestFilter_AssignedToMe(t *testing.T) {
	ds := newDataset()
	st := viewstate.NewRegistry(0).For("p1")
	st.ToggleAssignedToMe()

	assert.Equal(t, []string{"t1"}, ids(projection.Filter(ds, st)))

	st.ToggleShowArchived()
	assert.Equal(t, []string{"t1", "t4"}, ids(projection.Filter(ds, st)))
}

func TestFilter_SearchMatchesAnyField(t *testing.T) {
	ds := newDataset()
	cases := map[string][]string{
		"LOGIN":    {"t1"},
		"limiting": {"t2"},
		"web-3":    {"t3"},
		"bob":      {"t2"},
		"bug":      {"t3"},
		"  docs ":  {"t5"},
		"nothing":  {},
	}
	for query, want := range cases {
		st := viewstate.NewRegistry(0).For("p1")
		st.SetSearch(query)
		assert.Equal(t, want, ids(projection.Filter(ds, st)), query)
	}
}

func TestFilter_IsIntersectionOfIndependentFilters(t *testing.T) {
	ds := newDataset()
	only := func(mut func(*viewstate.ProjectState)) map[string]bool {
		st := viewstate.NewRegistry(0).For("p1")
		st.ToggleShowArchived()
		mut(st)
		out := map[string]bool{}
		for _, task := range projection.Filter(ds, st) {
			out[task.ID] = true
		}
		return out
	}
	archived := func(st *viewstate.ProjectState) { st.ToggleShowArchived() }
	mine := func(st *viewstate.ProjectState) { st.ToggleAssignedToMe() }
	assignee := func(st *viewstate.ProjectState) { st.SetAssigneeFilter([]string{"u1", "u3"}) }
	search := func(st *viewstate.ProjectState) { st.SetSearch("o") }

	combos := [][]func(*viewstate.ProjectState){
		{archived, assignee},
		{archived, search},
		{mine, search},
		{archived, mine, assignee, search},
		{assignee, search},
	}
	for i, combo := range combos {
		want := map[string]bool{}
		for _, task := range ds.Tasks {
			want[task.ID] = true
		}
		for _, f := range combo {
			set := only(f)
			for id := range want {
				if !set[id] {
					delete(want, id)
				}
			}
		}

		st := viewstate.NewRegistry(0).For("p1")
		st.ToggleShowArchived()
		for _, f := range combo {
			f(st)
		}
		got := map[string]bool{}
		for _, task := range projection.Filter(ds, st) {
			got[task.ID] = true
		}
		assert.Equal(t, want, got, "combo %d", i)
	}
}
