package service

import (
	"fmt"
	"strings"

	"planboard/internal/model"
)

type StatusPatch struct {
	Name     *string
	Color    *string
	Category *model.StatusCategory
}

// CreateStatus appends a status to the end of the project workflow.
func (s *Service) CreateStatus(projectID, name, color string, category model.StatusCategory) (*model.Status, error) {
	if _, err := s.store.GetProjectByID(projectID); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: status name is required", ErrInvalidInput)
	}
	if category == "" {
		category = model.CategoryTodo
	}
	if !category.Valid() {
		return nil, fmt.Errorf("%w: unknown status category %q", ErrInvalidInput, category)
	}
	st := &model.Status{
		ProjectID: projectID,
		Name:      name,
		Color:     color,
		Category:  category,
		SortOrder: s.store.GetMaxStatusPosition(projectID) + 1,
	}
	s.store.CreateStatus(st)
	return st, nil
}

func (s *Service) UpdateStatus(statusID string, patch StatusPatch) (*model.Status, error) {
	st, err := s.store.GetStatusByID(statusID)
	if err != nil {
		return nil, err
	}
	name := st.Name
	if patch.Name != nil {
		if name = strings.TrimSpace(*patch.Name); name == "" {
			return nil, fmt.Errorf("%w: status name is required", ErrInvalidInput)
		}
	}
	if patch.Category != nil && !patch.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown status category %q", ErrInvalidInput, *patch.Category)
	}
	st.Name = name
	if patch.Color != nil {
		st.Color = *patch.Color
	}
	if patch.Category != nil {
		st.Category = *patch.Category
	}
	return st, nil
}

// DeleteStatus removes a status. The last status of a project cannot go; a
// status still referenced by tasks needs confirmed, and its tasks then move
// to the end of the first remaining status.
func (s *Service) DeleteStatus(statusID string, confirmed bool) (*model.Status, error) {
	st, err := s.store.GetStatusByID(statusID)
	if err != nil {
		return nil, err
	}
	var fallback *model.Status
	for _, other := range s.store.GetStatusesByProject(st.ProjectID) {
		if other.ID != st.ID {
			fallback = other
			break
		}
	}
	if fallback == nil {
		return nil, ErrLastStatus
	}
	inUse := s.store.CountTasksWithStatus(st.ID)
	if inUse > 0 && !confirmed {
		return nil, fmt.Errorf("%w: %d task(s) use %q", ErrStatusInUse, inUse, st.Name)
	}

	if inUse > 0 {
		moving := s.store.GetStatusBucket(st.ProjectID, st.ID)
		next := s.store.NextBucketPosition(st.ProjectID, fallback.ID)
		for _, t := range moving {
			t.StatusID = fallback.ID
			t.SortOrder = next
			next++
			s.store.TouchTask(t)
		}
		for _, t := range s.store.GetTasksByProject(st.ProjectID) {
			if t.IsArchived && t.StatusID == st.ID {
				t.StatusID = fallback.ID
				s.store.TouchTask(t)
			}
		}
	}
	if err := s.store.DeleteStatus(st.ID); err != nil {
		return nil, err
	}
	return fallback, nil
}

// ReorderStatuses sets the workflow order to ids, which must be a permutation
// of the project's statuses.
func (s *Service) ReorderStatuses(projectID string, ids []string) ([]*model.Status, error) {
	current := s.store.GetStatusesByProject(projectID)
	if len(ids) != len(current) {
		return nil, ErrStatusOrder
	}
	byID := make(map[string]*model.Status, len(current))
	for _, st := range current {
		byID[st.ID] = st
	}
	ordered := make([]*model.Status, 0, len(ids))
	for _, id := range ids {
		st, ok := byID[id]
		if !ok {
			return nil, ErrStatusOrder
		}
		delete(byID, id)
		ordered = append(ordered, st)
	}
	for i, st := range ordered {
		st.SortOrder = i + 1
	}
	return ordered, nil
}
