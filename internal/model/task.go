package model

import (
	"strconv"
	"time"
)

type Task struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	SequenceID  int       `json:"sequence_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StatusID    string    `json:"status_id"`
	PriorityID  *string   `json:"priority_id"`
	AssigneeID  *string   `json:"assignee_id"`
	StartDate   *Date     `json:"start_date"`
	DueDate     *Date     `json:"due_date"`
	LabelIDs    []string  `json:"label_ids"`
	SortOrder   int       `json:"sort_order"`
	IsArchived  bool      `json:"is_archived"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Key is the human readable task reference, e.g. "WEB-12".
func (t *Task) Key(identifier string) string {
	return identifier + "-" + strconv.Itoa(t.SequenceID)
}

func (t *Task) HasLabel(labelID string) bool {
	for _, id := range t.LabelIDs {
		if id == labelID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy, so projections never alias store-owned slices.
func (t *Task) Clone() *Task {
	c := *t
	c.LabelIDs = append([]string(nil), t.LabelIDs...)
	if t.PriorityID != nil {
		v := *t.PriorityID
		c.PriorityID = &v
	}
	if t.AssigneeID != nil {
		v := *t.AssigneeID
		c.AssigneeID = &v
	}
	if t.StartDate != nil {
		v := *t.StartDate
		c.StartDate = &v
	}
	if t.DueDate != nil {
		v := *t.DueDate
		c.DueDate = &v
	}
	return &c
}

// StringPtr is a convenience for optional foreign keys.
func StringPtr(s string) *string {
	return &s
}

// SameStringPtr compares two optional ids by value.
func SameStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
