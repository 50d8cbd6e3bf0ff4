package repository

import (
	"sort"

	"planboard/internal/model"
)

// GetTasksByProject returns every task of the project, archived included, in load order.
func (s *Store) GetTasksByProject(projectID string) []*model.Task {
	var out []*model.Task
	for _, t := range s.tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out
}

func (s *Store) GetTaskByID(id string) (*model.Task, error) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, ErrTaskNotFound
}

// NextSequenceID is one past the highest sequence id ever used in the project.
// Archived tasks count, so numbers are never reused.
func (s *Store) NextSequenceID(projectID string) int {
	max := 0
	for _, t := range s.tasks {
		if t.ProjectID == projectID && t.SequenceID > max {
			max = t.SequenceID
		}
	}
	return max + 1
}

// CreateTask adds a task. Id, sequence id and timestamps are filled when empty.
func (s *Store) CreateTask(t *model.Task) {
	if t.ID == "" {
		t.ID = s.newID()
	}
	if t.SequenceID == 0 {
		t.SequenceID = s.NextSequenceID(t.ProjectID)
	}
	if t.LabelIDs == nil {
		t.LabelIDs = []string{}
	}
	now := s.now()
	t.CreatedAt = now
	t.UpdatedAt = now
	s.tasks = append(s.tasks, t)
}

// TouchTask refreshes updated_at after a field write.
func (s *Store) TouchTask(t *model.Task) {
	t.UpdatedAt = s.now()
}

// GetStatusBucket returns the non-archived tasks of one (project, status) bucket
// ordered by sort_order, ties broken by sequence id.
func (s *Store) GetStatusBucket(projectID, statusID string) []*model.Task {
	var bucket []*model.Task
	for _, t := range s.tasks {
		if t.ProjectID == projectID && t.StatusID == statusID && !t.IsArchived {
			bucket = append(bucket, t)
		}
	}
	sort.SliceStable(bucket, func(i, j int) bool {
		if bucket[i].SortOrder != bucket[j].SortOrder {
			return bucket[i].SortOrder < bucket[j].SortOrder
		}
		return bucket[i].SequenceID < bucket[j].SequenceID
	})
	return bucket
}

// ReindexBucket assigns sort_order = index+1 to the ordered tasks. Only tasks
// whose order actually changes are touched. It returns how many changed.
func (s *Store) ReindexBucket(ordered []*model.Task) int {
	changed := 0
	for i, t := range ordered {
		if t.SortOrder != i+1 {
			t.SortOrder = i + 1
			s.TouchTask(t)
			changed++
		}
	}
	return changed
}

// CompactBucket re-densifies a bucket after a task left it.
func (s *Store) CompactBucket(projectID, statusID string) {
	s.ReindexBucket(s.GetStatusBucket(projectID, statusID))
}

// NextBucketPosition compacts the bucket and returns the sort_order that
// appends a task to its end.
func (s *Store) NextBucketPosition(projectID, statusID string) int {
	bucket := s.GetStatusBucket(projectID, statusID)
	s.ReindexBucket(bucket)
	return len(bucket) + 1
}

// GetFilesByTask lists the files attached to a task.
func (s *Store) GetFilesByTask(taskID string) []*model.File {
	var out []*model.File
	for _, f := range s.files {
		if f.TaskID != nil && *f.TaskID == taskID {
			out = append(out, f)
		}
	}
	return out
}
