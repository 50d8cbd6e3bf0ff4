package projection_test

import (
	"time"

	"planboard/internal/model"
	"planboard/internal/projection"
)

var (
	userAda   = &model.User{ID: "u1", Name: "Ada Lovelace"}
	userBob   = &model.User{ID: "u2", Name: "Bob Stone"}
	userCarol = &model.User{ID: "u3", Name: "carol Diaz"}

	prioUrgent = &model.Priority{ID: "p-urgent", Name: "Urgent", Color: "#f00", SortOrder: 5}
	prioHigh   = &model.Priority{ID: "p-high", Name: "High", Color: "#f80", SortOrder: 4}
	prioMedium = &model.Priority{ID: "p-med", Name: "Medium", Color: "#fc0", SortOrder: 3}
	prioLow    = &model.Priority{ID: "p-low", Name: "Low", Color: "#0c0", SortOrder: 2}
)

func day(d int) *model.Date {
	return model.DatePtr(model.NewDate(2025, time.January, d))
}

func ts(hour int) time.Time {
	return time.Date(2025, time.January, 1, hour, 0, 0, 0, time.UTC)
}

// newDataset builds project WEB with statuses Todo, Doing, Done and six tasks.
func newDataset() *projection.Dataset {
	project := &model.Project{ID: "p1", Identifier: "WEB", Slug: "web"}
	statuses := []*model.Status{
		{ID: "s-todo", ProjectID: "p1", Name: "Todo", Category: model.CategoryTodo, SortOrder: 1},
		{ID: "s-doing", ProjectID: "p1", Name: "Doing", Category: model.CategoryInProgress, SortOrder: 2},
		{ID: "s-done", ProjectID: "p1", Name: "Done", Category: model.CategoryDone, SortOrder: 3},
	}
	labels := []*model.Label{{ID: "l-bug", ProjectID: "p1", Name: "Bug"}}
	tasks := []*model.Task{
		{ID: "t1", ProjectID: "p1", SequenceID: 1, Title: "Login page", StatusID: "s-todo", SortOrder: 2,
			AssigneeID: model.StringPtr("u1"), PriorityID: model.StringPtr("p-high"), DueDate: day(10), CreatedAt: ts(1), UpdatedAt: ts(6)},
		{ID: "t2", ProjectID: "p1", SequenceID: 2, Title: "api gateway", Description: "rate limiting", StatusID: "s-todo", SortOrder: 1,
			AssigneeID: model.StringPtr("u2"), PriorityID: model.StringPtr("p-urgent"), CreatedAt: ts(2), UpdatedAt: ts(5)},
		{ID: "t3", ProjectID: "p1", SequenceID: 3, Title: "Billing", StatusID: "s-doing", SortOrder: 1,
			PriorityID: model.StringPtr("p-low"), DueDate: day(5), LabelIDs: []string{"l-bug"}, CreatedAt: ts(3), UpdatedAt: ts(4)},
		{ID: "t4", ProjectID: "p1", SequenceID: 4, Title: "Archived thing", StatusID: "s-done", SortOrder: 1,
			AssigneeID: model.StringPtr("u1"), IsArchived: true, CreatedAt: ts(4), UpdatedAt: ts(3)},
		{ID: "t5", ProjectID: "p1", SequenceID: 5, Title: "Docs", StatusID: "s-done", SortOrder: 1,
			AssigneeID: model.StringPtr("u3"), DueDate: day(2), CreatedAt: ts(5), UpdatedAt: ts(2)},
		{ID: "t6", ProjectID: "p1", SequenceID: 6, Title: "Orphan", StatusID: "s-gone", SortOrder: 1,
			AssigneeID: model.StringPtr("u-ghost"), PriorityID: model.StringPtr("p-ghost"), CreatedAt: ts(6), UpdatedAt: ts(1)},
	}
	return &projection.Dataset{
		Project:       project,
		Tasks:         tasks,
		Statuses:      statuses,
		Priorities:    []*model.Priority{prioLow, prioUrgent, prioMedium, prioHigh},
		Labels:        labels,
		Users:         []*model.User{userAda, userBob, userCarol},
		CurrentUserID: "u1",
		Today:         model.NewDate(2025, time.January, 6),
	}
}

func ids(tasks []*model.Task) []string {
	out := []string{}
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func viewIDs(views []*projection.TaskView) []string {
	out := []string{}
	for _, v := range views {
		out = append(out, v.ID)
	}
	return out
}
