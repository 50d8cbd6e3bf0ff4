package repository

import (
	"planboard/internal/model"
)

// GetLabelsByProject retrieves all labels for a specific project
func (s *Store) GetLabelsByProject(projectID string) []*model.Label {
	var out []*model.Label
	for _, l := range s.labels {
		if l.ProjectID == projectID {
			out = append(out, l)
		}
	}
	return out
}

// GetLabelByID retrieves a label by its ID
func (s *Store) GetLabelByID(id string) (*model.Label, error) {
	for _, l := range s.labels {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, ErrLabelNotFound
}

// CreateLabel adds a new label
func (s *Store) CreateLabel(l *model.Label) {
	if l.ID == "" {
		l.ID = s.newID()
	}
	s.labels = append(s.labels, l)
}

// DeleteLabel removes the label and detaches it from every task carrying it.
func (s *Store) DeleteLabel(id string) error {
	idx := -1
	for i, l := range s.labels {
		if l.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrLabelNotFound
	}
	s.labels = append(s.labels[:idx], s.labels[idx+1:]...)
	for _, t := range s.tasks {
		if t.HasLabel(id) {
			t.LabelIDs = filter(t.LabelIDs, func(l string) bool { return l != id })
			s.TouchTask(t)
		}
	}
	return nil
}

// ListPriorities returns the workspace priorities, most urgent first.
func (s *Store) ListPriorities() []*model.Priority {
	out := append([]*model.Priority{}, s.priorities...)
	sortPriorities(out)
	return out
}

func (s *Store) GetPriorityByID(id string) (*model.Priority, error) {
	for _, p := range s.priorities {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, ErrPriorityNotFound
}
