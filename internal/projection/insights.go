package projection

import (
	"sort"

	"planboard/internal/model"
	"planboard/internal/viewstate"
)

type Count struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Color string `json:"color"`
	Count int    `json:"count"`
}

type Insights struct {
	Total       int                          `json:"total"`
	Completed   int                          `json:"completed"`
	InProgress  int                          `json:"in_progress"`
	Overdue     int                          `json:"overdue"`
	Completion  int                          `json:"completion"`
	ByCategory  map[model.StatusCategory]int `json:"by_category"`
	ByStatus    []Count                      `json:"by_status"`
	ByPriority  []Count                      `json:"by_priority"`
	ByAssignee  []Count                      `json:"by_assignee"`
	DueThisWeek []*TaskView                  `json:"due_this_week"`
}

// Insights summarizes the non-archived tasks of the project.
func (c *Computer) Insights(ds *Dataset) *Insights {
	idx := newIndex(ds)
	var active []*model.Task
	for _, t := range ds.Tasks {
		if !t.IsArchived {
			active = append(active, t)
		}
	}

	in := &Insights{
		Total:       len(active),
		ByCategory:  map[model.StatusCategory]int{},
		DueThisWeek: []*TaskView{},
	}
	weekEnd := ds.Today.AddDays(7)
	var due []*model.Task
	for _, t := range active {
		s := idx.status(t.StatusID)
		if s != nil {
			in.ByCategory[s.Category]++
		}
		switch {
		case s != nil && s.Category == model.CategoryDone:
			in.Completed++
		case s != nil && s.Category == model.CategoryInProgress:
			in.InProgress++
		}
		closed := s != nil && s.Category.Closed()
		if t.DueDate == nil || closed {
			continue
		}
		if t.DueDate.Before(ds.Today) {
			in.Overdue++
		} else if t.DueDate.Before(weekEnd) {
			due = append(due, t)
		}
	}
	in.Completion = percent(in.Completed, in.Total)

	in.ByStatus = countGroups(groupByStatus(idx, ds, active))
	in.ByPriority = countGroups(c.Group(ds, active, viewstate.GroupPriority))
	in.ByAssignee = countGroups(groupByAssignee(idx, ds, active))

	sort.SliceStable(due, func(i, j int) bool { return due[i].DueDate.Before(*due[j].DueDate) })
	in.DueThisWeek = idx.views(due, ds.Today, nil)
	return in
}

func countGroups(groups []*Group) []Count {
	out := make([]Count, 0, len(groups))
	for _, g := range groups {
		out = append(out, Count{Key: g.Key, Label: g.Label, Color: g.Color, Count: len(g.Tasks)})
	}
	return out
}
