package dnd_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planboard/internal/bucket"
	"planboard/internal/dnd"
	"planboard/internal/loader"
	"planboard/internal/model"
	"planboard/internal/projection"
	"planboard/internal/repository"
)

var epoch = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// setupStore builds project P with Todo, Doing, Done and tasks T1@Todo, T2@Todo, T3@Doing.
func setupStore(t *testing.T) (*repository.Store, *time.Time) {
	t.Helper()
	now := epoch
	c := &loader.Collections{
		Projects: []*model.Project{{ID: "p", Identifier: "P", Slug: "p"}},
		Statuses: []*model.Status{
			{ID: "todo", ProjectID: "p", Name: "Todo", Category: model.CategoryTodo, SortOrder: 1},
			{ID: "doing", ProjectID: "p", Name: "Doing", Category: model.CategoryInProgress, SortOrder: 2},
			{ID: "done", ProjectID: "p", Name: "Done", Category: model.CategoryDone, SortOrder: 3},
		},
		Priorities: []*model.Priority{{ID: "high", Name: "High", SortOrder: 3}},
		Users:      []*model.User{{ID: "u1", Name: "Ada"}},
		Tasks: []*model.Task{
			{ID: "T1", ProjectID: "p", SequenceID: 1, StatusID: "todo", SortOrder: 1, PriorityID: model.StringPtr("high"), UpdatedAt: epoch},
			{ID: "T2", ProjectID: "p", SequenceID: 2, StatusID: "todo", SortOrder: 2, UpdatedAt: epoch},
			{ID: "T3", ProjectID: "p", SequenceID: 3, StatusID: "doing", SortOrder: 1, UpdatedAt: epoch},
		},
	}
	store := repository.NewStore(c, repository.WithClock(func() time.Time { return now }))
	return store, &now
}

func task(t *testing.T, s *repository.Store, id string) *model.Task {
	t.Helper()
	task, err := s.GetTaskByID(id)
	require.NoError(t, err)
	return task
}

func order(s *repository.Store, statusID string) []string {
	out := []string{}
	for _, t := range s.GetStatusBucket("p", statusID) {
		out = append(out, fmt.Sprintf("%s=%d", t.ID, t.SortOrder))
	}
	return out
}

func progress(s *repository.Store) int {
	return projection.Progress(s.GetTasksByProject("p"), s.GetStatusesByProject("p"))
}

func TestDrop_MoveToDoneUpdatesProgressAndReindexes(t *testing.T) {
	store, now := setupStore(t)
	engine := dnd.NewEngine(store)
	assert.Equal(t, 0, progress(store))

	require.NoError(t, engine.Begin("T1"))
	*now = epoch.Add(time.Hour)
	res, err := engine.Drop(dnd.Target{Buckets: []bucket.Bucket{bucket.Status{StatusID: "done"}}})

	require.NoError(t, err)
	assert.Equal(t, []dnd.Change{{Field: "status", Value: "Done"}}, res.Changes)
	assert.Equal(t, "Moved to status: Done", res.Message())
	assert.IsType(t, dnd.Idle{}, engine.State())
	assert.Equal(t, 33, progress(store))
	assert.Equal(t, []string{"T1=1"}, order(store, "done"))
	assert.Equal(t, []string{"T2=1"}, order(store, "todo"))
	assert.Equal(t, epoch.Add(time.Hour), task(t, store, "T1").UpdatedAt)
}

func TestDrop_InsertsAboveOrBelowTarget(t *testing.T) {
	store, _ := setupStore(t)
	engine := dnd.NewEngine(store)

	require.NoError(t, engine.Begin("T3"))
	ind, err := engine.Hover("T1", 25, 0, 40)
	require.NoError(t, err)
	assert.Equal(t, &dnd.Indicator{TargetID: "T1", Side: dnd.Below}, ind)

	_, err = engine.Drop(dnd.Target{Buckets: []bucket.Bucket{bucket.Status{StatusID: "todo"}}, TaskID: "T1", Side: ind.Side})
	require.NoError(t, err)
	assert.Equal(t, []string{"T1=1", "T3=2", "T2=3"}, order(store, "todo"))
	assert.Empty(t, order(store, "doing"))

	require.NoError(t, engine.Begin("T2"))
	res, err := engine.Drop(dnd.Target{Buckets: []bucket.Bucket{bucket.Status{StatusID: "todo"}}, TaskID: "T1", Side: dnd.Above})
	require.NoError(t, err)
	assert.Empty(t, res.Changes)
	assert.True(t, res.Reordered)
	assert.Equal(t, []string{"T2=1", "T1=2", "T3=3"}, order(store, "todo"))
}

func TestDrop_BackToOriginalPositionChangesNothing(t *testing.T) {
	store, now := setupStore(t)
	// Sparse orders must survive a no-op drop untouched.
	task(t, store, "T2").SortOrder = 7
	engine := dnd.NewEngine(store)

	require.NoError(t, engine.Begin("T1"))
	*now = epoch.Add(time.Hour)
	res, err := engine.Drop(dnd.Target{Buckets: []bucket.Bucket{bucket.Status{StatusID: "todo"}}, TaskID: "T2", Side: dnd.Above})

	require.NoError(t, err)
	assert.True(t, res.Noop())
	assert.Equal(t, 1, task(t, store, "T1").SortOrder)
	assert.Equal(t, 7, task(t, store, "T2").SortOrder)
	assert.Equal(t, epoch, task(t, store, "T1").UpdatedAt)
	assert.Equal(t, "todo", task(t, store, "T1").StatusID)
	assert.Equal(t, "high", *task(t, store, "T1").PriorityID)
}

func TestDrop_SameBucketWithoutTargetIsStable(t *testing.T) {
	store, _ := setupStore(t)
	engine := dnd.NewEngine(store)

	require.NoError(t, engine.Begin("T1"))
	res, err := engine.Drop(dnd.Target{Buckets: []bucket.Bucket{bucket.Status{StatusID: "todo"}}})

	require.NoError(t, err)
	assert.True(t, res.Noop())
	assert.Equal(t, []string{"T1=1", "T2=2"}, order(store, "todo"))
}

func TestDrop_OntoItselfIsIgnored(t *testing.T) {
	store, _ := setupStore(t)
	engine := dnd.NewEngine(store)
	require.NoError(t, engine.Begin("T1"))

	res, err := engine.Drop(dnd.Target{Buckets: []bucket.Bucket{bucket.Status{StatusID: "done"}}, TaskID: "T1"})

	require.NoError(t, err)
	assert.True(t, res.Noop())
	assert.IsType(t, dnd.Dragging{}, engine.State())
	assert.Equal(t, "todo", task(t, store, "T1").StatusID)
	assert.True(t, engine.Cancel())
	assert.IsType(t, dnd.Idle{}, engine.State())
}

func TestDropOutside_IsSilentNoop(t *testing.T) {
	store, _ := setupStore(t)
	engine := dnd.NewEngine(store)
	require.NoError(t, engine.Begin("T2"))

	res, err := engine.DropOutside()

	require.NoError(t, err)
	assert.True(t, res.Noop())
	assert.IsType(t, dnd.Idle{}, engine.State())
	assert.Equal(t, []string{"T1=1", "T2=2"}, order(store, "todo"))
}

func TestDrop_PriorityAndAssigneeSentinels(t *testing.T) {
	store, _ := setupStore(t)
	engine := dnd.NewEngine(store)

	require.NoError(t, engine.Begin("T1"))
	res, err := engine.Drop(dnd.Target{Buckets: []bucket.Bucket{bucket.Priority{}}})
	require.NoError(t, err)
	assert.Nil(t, task(t, store, "T1").PriorityID)
	assert.Equal(t, []dnd.Change{{Field: "priority", Value: "No Priority"}}, res.Changes)
	// Classification moves outside the status dimension reorder to the end of the status bucket.
	assert.Equal(t, []string{"T2=1", "T1=2"}, order(store, "todo"))

	require.NoError(t, engine.Begin("T3"))
	res, err = engine.Drop(dnd.Target{Buckets: []bucket.Bucket{
		bucket.Status{StatusID: "todo"},
		bucket.Assignee{UserID: model.StringPtr("u1")},
	}, TaskID: "T2", Side: dnd.Above})
	require.NoError(t, err)
	assert.Equal(t, "Moved to status: Todo, assignee: Ada", res.Message())
	assert.Equal(t, "u1", *task(t, store, "T3").AssigneeID)
	assert.Equal(t, []string{"T3=1", "T2=2", "T1=3"}, order(store, "todo"))
}

func TestEngine_StateGuards(t *testing.T) {
	store, _ := setupStore(t)
	engine := dnd.NewEngine(store)

	_, err := engine.Drop(dnd.Target{})
	assert.ErrorIs(t, err, dnd.ErrNotDragging)
	_, err = engine.Hover("T1", 0, 0, 10)
	assert.ErrorIs(t, err, dnd.ErrNotDragging)
	assert.False(t, engine.Cancel())

	assert.ErrorIs(t, engine.Begin("missing"), repository.ErrTaskNotFound)
	require.NoError(t, engine.Begin("T1"))
	assert.ErrorIs(t, engine.Begin("T2"), dnd.ErrAlreadyDragging)

	d := engine.State().(dnd.Dragging)
	assert.Equal(t, "T1", d.TaskID)
	assert.Equal(t, bucket.Status{StatusID: "todo"}, d.Source.Status)
}

func TestDrop_KeepsEveryBucketDense(t *testing.T) {
	store, _ := setupStore(t)
	engine := dnd.NewEngine(store)
	statuses := []string{"todo", "doing", "done"}
	ids := []string{"T1", "T2", "T3"}

	for i := 0; i < 30; i++ {
		moved := ids[i%3]
		dest := statuses[(i*7)%3]
		targetID := ids[(i+1)%3]
		require.NoError(t, engine.Begin(moved))
		_, err := engine.Drop(dnd.Target{
			Buckets: []bucket.Bucket{bucket.Status{StatusID: dest}},
			TaskID:  targetID,
			Side:    dnd.Side(i % 2),
		})
		require.NoError(t, err)

		for _, s := range statuses {
			for pos, t2 := range store.GetStatusBucket("p", s) {
				assert.Equal(t, pos+1, t2.SortOrder, "step %d status %s", i, s)
			}
		}
	}
}

func TestSideOf(t *testing.T) {
	assert.Equal(t, dnd.Above, dnd.SideOf(10, 0, 40))
	assert.Equal(t, dnd.Above, dnd.SideOf(20, 0, 40))
	assert.Equal(t, dnd.Below, dnd.SideOf(21, 0, 40))
	assert.Equal(t, dnd.Below, dnd.ParseSide("below"))
	assert.Equal(t, dnd.Above, dnd.ParseSide("anything"))
}
