package repository

import (
	"sort"

	"planboard/internal/model"
)

// GetStatusesByProject returns the project workflow in column order.
func (s *Store) GetStatusesByProject(projectID string) []*model.Status {
	var out []*model.Status
	for _, st := range s.statuses {
		if st.ProjectID == projectID {
			out = append(out, st)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out
}

func (s *Store) GetStatusByID(id string) (*model.Status, error) {
	for _, st := range s.statuses {
		if st.ID == id {
			return st, nil
		}
	}
	return nil, ErrStatusNotFound
}

// DefaultStatus is the first todo-category status in column order, else the first status.
func (s *Store) DefaultStatus(projectID string) (*model.Status, error) {
	statuses := s.GetStatusesByProject(projectID)
	if len(statuses) == 0 {
		return nil, ErrStatusNotFound
	}
	for _, st := range statuses {
		if st.Category == model.CategoryTodo {
			return st, nil
		}
	}
	return statuses[0], nil
}

func (s *Store) GetMaxStatusPosition(projectID string) int {
	max := 0
	for _, st := range s.statuses {
		if st.ProjectID == projectID && st.SortOrder > max {
			max = st.SortOrder
		}
	}
	return max
}

func (s *Store) CreateStatus(st *model.Status) {
	if st.ID == "" {
		st.ID = s.newID()
	}
	s.statuses = append(s.statuses, st)
}

func (s *Store) DeleteStatus(id string) error {
	for i, st := range s.statuses {
		if st.ID == id {
			s.statuses = append(s.statuses[:i], s.statuses[i+1:]...)
			return nil
		}
	}
	return ErrStatusNotFound
}

// CountTasksWithStatus counts tasks (archived included) referencing the status.
func (s *Store) CountTasksWithStatus(statusID string) int {
	n := 0
	for _, t := range s.tasks {
		if t.StatusID == statusID {
			n++
		}
	}
	return n
}
