package repository_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planboard/internal/loader"
	"planboard/internal/model"
	"planboard/internal/repository"
)

var now = time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC)

func newStore() *repository.Store {
	seq := 0
	return repository.NewStore(&loader.Collections{
		Projects: []*model.Project{
			{ID: "p", Name: "Website", Slug: "website"},
			{ID: "q", Name: "Website", Slug: "website-2"},
		},
		Statuses: []*model.Status{
			{ID: "todo", ProjectID: "p", Name: "Todo", SortOrder: 2},
			{ID: "backlog", ProjectID: "p", Name: "Backlog", SortOrder: 1},
		},
		Priorities: []*model.Priority{{ID: "low", SortOrder: 1}, {ID: "urgent", SortOrder: 4}, {ID: "high", SortOrder: 3}},
		Labels:     []*model.Label{{ID: "bug", ProjectID: "p"}},
		Users:      []*model.User{{ID: "ada", Name: "Ada"}, {ID: "bob", Name: "Bob"}},
		Tasks: []*model.Task{
			{ID: "a", ProjectID: "p", SequenceID: 1, StatusID: "todo", SortOrder: 5, LabelIDs: []string{"bug"}},
			{ID: "b", ProjectID: "p", SequenceID: 7, StatusID: "todo", SortOrder: 2, LabelIDs: []string{}},
			{ID: "c", ProjectID: "p", SequenceID: 3, StatusID: "todo", SortOrder: 2, LabelIDs: []string{}, IsArchived: true},
			{ID: "d", ProjectID: "q", SequenceID: 1, StatusID: "todo", SortOrder: 1, LabelIDs: []string{}},
		},
		Files: []*model.File{{ID: "f1", ProjectID: "p"}, {ID: "f2", ProjectID: "q"}},
	},
		repository.WithClock(func() time.Time { return now }),
		repository.WithIDGenerator(func() string { seq++; return fmt.Sprintf("id-%d", seq) }),
	)
}

func ids(tasks []*model.Task) []string {
	var out []string
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestNewStore_DensifiesLoadedBuckets(t *testing.T) {
	s := newStore()

	bucket := s.GetStatusBucket("p", "todo")
	assert.Equal(t, []string{"b", "a"}, ids(bucket))
	assert.Equal(t, 1, bucket[0].SortOrder)
	assert.Equal(t, 2, bucket[1].SortOrder)
	// загрузка не трогает updated_at
	assert.True(t, bucket[1].UpdatedAt.IsZero())

	// archived tasks keep their order
	c, err := s.GetTaskByID("c")
	require.NoError(t, err)
	assert.Equal(t, 2, c.SortOrder)
}

func TestCompactBucket_StampsMovedTasks(t *testing.T) {
	s := newStore()
	a, _ := s.GetTaskByID("a")
	a.SortOrder = 9

	s.CompactBucket("p", "todo")

	assert.Equal(t, 2, a.SortOrder)
	assert.Equal(t, now, a.UpdatedAt)
	b, _ := s.GetTaskByID("b")
	assert.True(t, b.UpdatedAt.IsZero())
}

func TestReindexBucket_TouchesOnlyChanged(t *testing.T) {
	s := newStore()
	b, _ := s.GetTaskByID("b")
	a, _ := s.GetTaskByID("a")

	changed := s.ReindexBucket([]*model.Task{a, b})

	assert.Equal(t, 2, changed)
	assert.Equal(t, 0, s.ReindexBucket([]*model.Task{a, b}))
}

func TestNextBucketPosition_ClosesGaps(t *testing.T) {
	s := newStore()
	b, _ := s.GetTaskByID("b")
	a, _ := s.GetTaskByID("a")
	b.SortOrder, a.SortOrder = 3, 8

	assert.Equal(t, 3, s.NextBucketPosition("p", "todo"))
	assert.Equal(t, 1, b.SortOrder)
	assert.Equal(t, 2, a.SortOrder)
	assert.Equal(t, 1, s.NextBucketPosition("p", "backlog"))
}

func TestCreateTask_FillsDefaults(t *testing.T) {
	s := newStore()
	task := &model.Task{ProjectID: "p", StatusID: "todo"}

	s.CreateTask(task)

	assert.Equal(t, "id-1", task.ID)
	assert.Equal(t, 8, task.SequenceID)
	assert.Equal(t, now, task.CreatedAt)
	assert.NotNil(t, task.LabelIDs)
	assert.Len(t, s.GetTasksByProject("p"), 4)
}

func TestUniqueSlug(t *testing.T) {
	s := newStore()

	assert.Equal(t, "website-3", s.UniqueSlug("Website", ""))
	assert.Equal(t, "website", s.UniqueSlug("Website", "p"))
	assert.Equal(t, "project", s.UniqueSlug("!!!", ""))
	assert.Equal(t, "q3-roadmap-v2", repository.Slugify("  Q3 Roadmap: v2 "))
}

func TestGetStatusesByProject_SortedAndDefault(t *testing.T) {
	s := newStore()

	statuses := s.GetStatusesByProject("p")
	require.Len(t, statuses, 2)
	assert.Equal(t, "backlog", statuses[0].ID)

	def, err := s.DefaultStatus("p")
	require.NoError(t, err)
	assert.Equal(t, "backlog", def.ID)

	_, err = s.DefaultStatus("q")
	assert.ErrorIs(t, err, repository.ErrStatusNotFound)
}

func TestDeleteProject_Cascades(t *testing.T) {
	s := newStore()

	require.NoError(t, s.DeleteProject("p"))

	_, err := s.GetProjectByID("p")
	assert.ErrorIs(t, err, repository.ErrProjectNotFound)
	assert.Empty(t, s.GetTasksByProject("p"))
	assert.Empty(t, s.GetStatusesByProject("p"))
	assert.Empty(t, s.GetFilesByProject("p"))
	assert.Len(t, s.GetTasksByProject("q"), 1)
	assert.ErrorIs(t, s.DeleteProject("p"), repository.ErrProjectNotFound)
}

func TestDeleteLabel_DetachesFromTasks(t *testing.T) {
	s := newStore()

	require.NoError(t, s.DeleteLabel("bug"))

	a, _ := s.GetTaskByID("a")
	assert.Empty(t, a.LabelIDs)
	assert.Equal(t, now, a.UpdatedAt)
	assert.ErrorIs(t, s.DeleteLabel("bug"), repository.ErrLabelNotFound)
}

func TestListPriorities_MostUrgentFirst(t *testing.T) {
	s := newStore()

	var order []string
	for _, p := range s.ListPriorities() {
		order = append(order, p.ID)
	}
	assert.Equal(t, []string{"urgent", "high", "low"}, order)
}

func TestCurrentUserAndMembers(t *testing.T) {
	s := newStore()

	assert.Equal(t, "ada", s.CurrentUser().ID)
	members := s.GetProjectMembers(&model.Project{MemberIDs: []string{"bob", "ghost"}})
	require.Len(t, members, 1)
	assert.Equal(t, "bob", members[0].ID)

	assert.Nil(t, repository.NewStore(nil).CurrentUser())
}
