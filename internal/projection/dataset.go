// Package projection derives the filtered, grouped and sorted task views that
// the list, board and insights tabs render. Every function is pure: inputs are
// never mutated and results never alias store-owned tasks.
package projection

import (
	"planboard/internal/model"
)

// Dataset is the slice of the entity store a projection is computed from.
type Dataset struct {
	Project       *model.Project
	Tasks         []*model.Task
	Statuses      []*model.Status
	Priorities    []*model.Priority
	Labels        []*model.Label
	Users         []*model.User
	CurrentUserID string
	Today         model.Date
}

// NeutralColor is used whenever a lookup misses.
const NeutralColor = "#9ca3af"

type index struct {
	project    *model.Project
	statuses   map[string]*model.Status
	priorities map[string]*model.Priority
	labels     map[string]*model.Label
	users      map[string]*model.User
}

func newIndex(ds *Dataset) *index {
	idx := &index{
		project:    ds.Project,
		statuses:   make(map[string]*model.Status, len(ds.Statuses)),
		priorities: make(map[string]*model.Priority, len(ds.Priorities)),
		labels:     make(map[string]*model.Label, len(ds.Labels)),
		users:      make(map[string]*model.User, len(ds.Users)),
	}
	for _, s := range ds.Statuses {
		idx.statuses[s.ID] = s
	}
	for _, p := range ds.Priorities {
		idx.priorities[p.ID] = p
	}
	for _, l := range ds.Labels {
		idx.labels[l.ID] = l
	}
	for _, u := range ds.Users {
		idx.users[u.ID] = u
	}
	return idx
}

func (idx *index) status(id string) *model.Status {
	return idx.statuses[id]
}

func (idx *index) priority(id *string) *model.Priority {
	if id == nil {
		return nil
	}
	return idx.priorities[*id]
}

func (idx *index) user(id *string) *model.User {
	if id == nil {
		return nil
	}
	return idx.users[*id]
}

func (idx *index) taskKey(t *model.Task) string {
	identifier := ""
	if idx.project != nil {
		identifier = idx.project.Identifier
	}
	return t.Key(identifier)
}

func (idx *index) isDone(t *model.Task) bool {
	s := idx.status(t.StatusID)
	return s != nil && s.Category == model.CategoryDone
}
