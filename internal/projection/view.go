package projection

import (
	"planboard/internal/model"
)

type Chip struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type UserChip struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Initials string `json:"initials"`
}

// TaskView is a render-ready task: a private copy of the task plus resolved lookups.
type TaskView struct {
	*model.Task
	Key      string    `json:"key"`
	Status   Chip      `json:"status"`
	Priority *Chip     `json:"priority,omitempty"`
	Assignee *UserChip `json:"assignee,omitempty"`
	Labels   []Chip    `json:"labels"`
	Overdue  bool      `json:"overdue"`
	Selected bool      `json:"selected"`
}

func (idx *index) view(t *model.Task, today model.Date, selected map[string]bool) *TaskView {
	v := &TaskView{
		Task:     t.Clone(),
		Key:      idx.taskKey(t),
		Status:   Chip{ID: t.StatusID, Name: "Unknown", Color: NeutralColor},
		Labels:   []Chip{},
		Selected: selected[t.ID],
	}
	status := idx.status(t.StatusID)
	if status != nil {
		v.Status = Chip{ID: status.ID, Name: status.Name, Color: status.Color}
	}
	if p := idx.priority(t.PriorityID); p != nil {
		v.Priority = &Chip{ID: p.ID, Name: p.Name, Color: p.Color}
	}
	if u := idx.user(t.AssigneeID); u != nil {
		v.Assignee = &UserChip{ID: u.ID, Name: u.Name, Initials: u.Initials()}
	}
	for _, id := range t.LabelIDs {
		if l, ok := idx.labels[id]; ok {
			v.Labels = append(v.Labels, Chip{ID: l.ID, Name: l.Name, Color: l.Color})
		}
	}
	closed := status != nil && status.Category.Closed()
	v.Overdue = t.DueDate != nil && !closed && !today.Time.IsZero() && t.DueDate.Before(today)
	return v
}

func (idx *index) views(tasks []*model.Task, today model.Date, selected map[string]bool) []*TaskView {
	out := make([]*TaskView, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, idx.view(t, today, selected))
	}
	return out
}
