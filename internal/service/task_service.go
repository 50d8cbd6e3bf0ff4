package service

import (
	"fmt"
	"strings"

	"planboard/internal/bucket"
	"planboard/internal/dnd"
	"planboard/internal/model"
)

type TaskInput struct {
	Title       string
	Description string
	StatusID    string
	PriorityID  *string
	AssigneeID  *string
	StartDate   *model.Date
	DueDate     *model.Date
	LabelIDs    []string
}

// TaskPatch holds the fields to change. Classification changes are typed
// buckets so that "no priority" and "unassigned" are explicit.
type TaskPatch struct {
	Title          *string
	Description    *string
	Status         *bucket.Status
	Priority       *bucket.Priority
	Assignee       *bucket.Assignee
	StartDate      *model.Date
	DueDate        *model.Date
	ClearStartDate bool
	ClearDueDate   bool
	LabelIDs       []string
}

// QuickAddTask creates a task titled title in the given bucket. A nil bucket,
// or a non-status bucket, places the task in the default status.
func (s *Service) QuickAddTask(projectID string, b bucket.Bucket, title string) (*model.Task, error) {
	in := TaskInput{Title: title}
	switch b := b.(type) {
	case bucket.Status:
		in.StatusID = b.StatusID
	case bucket.Priority:
		in.PriorityID = b.PriorityID
	case bucket.Assignee:
		in.AssigneeID = b.UserID
	}
	return s.CreateTask(projectID, in)
}

// CreateTask validates references and appends the task to the end of its status bucket.
func (s *Service) CreateTask(projectID string, in TaskInput) (*model.Task, error) {
	p, err := s.store.GetProjectByID(projectID)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: task title is required", ErrInvalidInput)
	}

	var status *model.Status
	if in.StatusID != "" {
		status, err = s.projectStatus(p.ID, in.StatusID)
	} else {
		status, err = s.store.DefaultStatus(p.ID)
	}
	if err != nil {
		return nil, err
	}
	if err := s.checkPriority(in.PriorityID); err != nil {
		return nil, err
	}
	if err := s.checkUser(in.AssigneeID); err != nil {
		return nil, err
	}
	labels, err := s.projectLabels(p.ID, in.LabelIDs)
	if err != nil {
		return nil, err
	}

	t := &model.Task{
		ProjectID:   p.ID,
		Title:       title,
		Description: in.Description,
		StatusID:    status.ID,
		PriorityID:  in.PriorityID,
		AssigneeID:  in.AssigneeID,
		StartDate:   in.StartDate,
		DueDate:     in.DueDate,
		LabelIDs:    labels,
		SortOrder:   s.store.NextBucketPosition(p.ID, status.ID),
	}
	s.store.CreateTask(t)
	s.store.TouchProject(p)
	return t, nil
}

// UpdateTask applies the patch. Nothing is written unless every field is valid.
func (s *Service) UpdateTask(taskID string, patch TaskPatch) (*model.Task, error) {
	t, err := s.store.GetTaskByID(taskID)
	if err != nil {
		return nil, err
	}
	var title string
	if patch.Title != nil {
		title = strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: task title is required", ErrInvalidInput)
		}
	}
	var moves []bucket.Bucket
	if patch.Status != nil {
		if _, err := s.projectStatus(t.ProjectID, patch.Status.StatusID); err != nil {
			return nil, err
		}
		moves = append(moves, *patch.Status)
	}
	if patch.Priority != nil {
		if err := s.checkPriority(patch.Priority.PriorityID); err != nil {
			return nil, err
		}
		moves = append(moves, *patch.Priority)
	}
	if patch.Assignee != nil {
		if err := s.checkUser(patch.Assignee.UserID); err != nil {
			return nil, err
		}
		moves = append(moves, *patch.Assignee)
	}
	var labels []string
	if patch.LabelIDs != nil {
		if labels, err = s.projectLabels(t.ProjectID, patch.LabelIDs); err != nil {
			return nil, err
		}
	}

	changed := false
	if patch.Title != nil && title != t.Title {
		t.Title, changed = title, true
	}
	if patch.Description != nil && *patch.Description != t.Description {
		t.Description, changed = *patch.Description, true
	}
	if patch.ClearStartDate && t.StartDate != nil {
		t.StartDate, changed = nil, true
	} else if patch.StartDate != nil && (t.StartDate == nil || !t.StartDate.Equal(*patch.StartDate)) {
		t.StartDate, changed = model.DatePtr(*patch.StartDate), true
	}
	if patch.ClearDueDate && t.DueDate != nil {
		t.DueDate, changed = nil, true
	} else if patch.DueDate != nil && (t.DueDate == nil || !t.DueDate.Equal(*patch.DueDate)) {
		t.DueDate, changed = model.DatePtr(*patch.DueDate), true
	}
	if labels != nil && !sameSet(labels, t.LabelIDs) {
		t.LabelIDs, changed = labels, true
	}
	if changed {
		s.store.TouchTask(t)
	}
	if len(moves) > 0 {
		// Reclassification appends to the end of the resulting status bucket.
		if _, err := s.moves.Move(t.ID, dnd.Target{Buckets: moves}); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// MoveTask reclassifies and repositions a task the way a drop would.
func (s *Service) MoveTask(taskID string, target dnd.Target) (dnd.Result, error) {
	t, err := s.store.GetTaskByID(taskID)
	if err != nil {
		return dnd.Result{}, err
	}
	for _, b := range target.Buckets {
		switch b := b.(type) {
		case bucket.Status:
			if _, err := s.projectStatus(t.ProjectID, b.StatusID); err != nil {
				return dnd.Result{}, err
			}
		case bucket.Priority:
			if err := s.checkPriority(b.PriorityID); err != nil {
				return dnd.Result{}, err
			}
		case bucket.Assignee:
			if err := s.checkUser(b.UserID); err != nil {
				return dnd.Result{}, err
			}
		}
	}
	if target.TaskID != "" {
		other, err := s.store.GetTaskByID(target.TaskID)
		if err != nil {
			return dnd.Result{}, err
		}
		if other.ProjectID != t.ProjectID {
			return dnd.Result{}, ErrForeignEntity
		}
	}
	return s.moves.Move(taskID, target)
}

// ArchiveTasks archives every listed task and compacts the buckets they left.
// It returns the archived tasks.
func (s *Service) ArchiveTasks(ids []string) ([]*model.Task, error) {
	tasks := make([]*model.Task, 0, len(ids))
	for _, id := range ids {
		t, err := s.store.GetTaskByID(id)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	type key struct{ project, status string }
	left := map[key]bool{}
	var archived []*model.Task
	for _, t := range tasks {
		if t.IsArchived {
			continue
		}
		t.IsArchived = true
		s.store.TouchTask(t)
		left[key{t.ProjectID, t.StatusID}] = true
		archived = append(archived, t)
	}
	for k := range left {
		s.store.CompactBucket(k.project, k.status)
	}
	return archived, nil
}

func (s *Service) ArchiveTask(taskID string) (*model.Task, error) {
	if _, err := s.ArchiveTasks([]string{taskID}); err != nil {
		return nil, err
	}
	return s.store.GetTaskByID(taskID)
}

// RestoreTask brings an archived task back at the end of its status bucket.
func (s *Service) RestoreTask(taskID string) (*model.Task, error) {
	t, err := s.store.GetTaskByID(taskID)
	if err != nil {
		return nil, err
	}
	if !t.IsArchived {
		return t, nil
	}
	if _, err := s.store.GetStatusByID(t.StatusID); err != nil {
		st, derr := s.store.DefaultStatus(t.ProjectID)
		if derr != nil {
			return nil, derr
		}
		t.StatusID = st.ID
	}
	t.SortOrder = s.store.NextBucketPosition(t.ProjectID, t.StatusID)
	t.IsArchived = false
	s.store.TouchTask(t)
	return t, nil
}

func (s *Service) AddLabelToTask(taskID, labelID string) (*model.Task, error) {
	t, err := s.store.GetTaskByID(taskID)
	if err != nil {
		return nil, err
	}
	if _, err := s.projectLabels(t.ProjectID, []string{labelID}); err != nil {
		return nil, err
	}
	if !t.HasLabel(labelID) {
		t.LabelIDs = append(t.LabelIDs, labelID)
		s.store.TouchTask(t)
	}
	return t, nil
}

func (s *Service) RemoveLabelFromTask(taskID, labelID string) (*model.Task, error) {
	t, err := s.store.GetTaskByID(taskID)
	if err != nil {
		return nil, err
	}
	if t.HasLabel(labelID) {
		kept := make([]string, 0, len(t.LabelIDs)-1)
		for _, id := range t.LabelIDs {
			if id != labelID {
				kept = append(kept, id)
			}
		}
		t.LabelIDs = kept
		s.store.TouchTask(t)
	}
	return t, nil
}

func (s *Service) projectStatus(projectID, statusID string) (*model.Status, error) {
	st, err := s.store.GetStatusByID(statusID)
	if err != nil {
		return nil, err
	}
	if st.ProjectID != projectID {
		return nil, ErrForeignEntity
	}
	return st, nil
}

func (s *Service) checkPriority(id *string) error {
	if id == nil {
		return nil
	}
	_, err := s.store.GetPriorityByID(*id)
	return err
}

func (s *Service) checkUser(id *string) error {
	if id == nil {
		return nil
	}
	_, err := s.store.GetUserByID(*id)
	return err
}

// projectLabels validates and de-duplicates label ids, keeping their order.
func (s *Service) projectLabels(projectID string, ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	seen := map[string]bool{}
	for _, id := range ids {
		if seen[id] {
			continue
		}
		l, err := s.store.GetLabelByID(id)
		if err != nil {
			return nil, err
		}
		if l.ProjectID != projectID {
			return nil, ErrForeignEntity
		}
		seen[id] = true
		out = append(out, id)
	}
	return out, nil
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	in := make(map[string]bool, len(a))
	for _, id := range a {
		in[id] = true
	}
	for _, id := range b {
		if !in[id] {
			return false
		}
	}
	return true
}
