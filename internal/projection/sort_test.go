package projection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"planboard/internal/model"
	"planboard/internal/projection"
	"planboard/internal/viewstate"
)

func TestSortTasks(t *testing.T) {
	ds := newDataset()
	active := ds.Tasks[:3]
	cases := []struct {
		order viewstate.Sort
		want  []string
	}{
		{viewstate.Sort{Field: viewstate.SortManual, Direction: viewstate.Asc}, []string{"t2", "t3", "t1"}},
		{viewstate.Sort{Field: viewstate.SortTitle, Direction: viewstate.Asc}, []string{"t2", "t3", "t1"}},
		{viewstate.Sort{Field: viewstate.SortTitle, Direction: viewstate.Desc}, []string{"t1", "t3", "t2"}},
		{viewstate.Sort{Field: viewstate.SortPriority, Direction: viewstate.Desc}, []string{"t2", "t1", "t3"}},
		{viewstate.Sort{Field: viewstate.SortDueDate, Direction: viewstate.Asc}, []string{"t3", "t1", "t2"}},
		{viewstate.Sort{Field: viewstate.SortDueDate, Direction: viewstate.Desc}, []string{"t1", "t3", "t2"}},
		{viewstate.Sort{Field: viewstate.SortCreated, Direction: viewstate.Desc}, []string{"t3", "t2", "t1"}},
		{viewstate.Sort{Field: viewstate.SortUpdated, Direction: viewstate.Asc}, []string{"t3", "t2", "t1"}},
	}
	for _, tc := range cases {
		got := projection.SortTasks(active, tc.order, ds.Priorities)
		assert.Equal(t, tc.want, ids(got), "%s %s", tc.order.Field, tc.order.Direction)
	}
	assert.Equal(t, []string{"t1", "t2", "t3"}, ids(active), "input must not be reordered")
}

func TestSortTasks_PriorityNoneIsLeastUrgent(t *testing.T) {
	ds := newDataset()
	got := projection.SortTasks([]*model.Task{ds.Tasks[4], ds.Tasks[2]}, viewstate.Sort{Field: viewstate.SortPriority, Direction: viewstate.Asc}, ds.Priorities)
	assert.Equal(t, []string{"t5", "t3"}, ids(got))
}
