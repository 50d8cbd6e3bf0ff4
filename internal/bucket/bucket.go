// Package bucket models the classification dimensions a task can be partitioned
// by (status, priority, assignee) as a closed set of typed buckets.
package bucket

import (
	"errors"
	"fmt"
	"strings"

	"planboard/internal/model"
)

type Dimension int

const (
	DimStatus Dimension = iota
	DimPriority
	DimAssignee
)

func (d Dimension) String() string {
	switch d {
	case DimStatus:
		return "status"
	case DimPriority:
		return "priority"
	case DimAssignee:
		return "assignee"
	}
	return "unknown"
}

func ParseDimension(s string) (Dimension, error) {
	switch s {
	case "status":
		return DimStatus, nil
	case "priority":
		return DimPriority, nil
	case "assignee":
		return DimAssignee, nil
	}
	return 0, fmt.Errorf("unknown classification dimension %q", s)
}

// Sentinel keys addressing the "no value" bucket of a dimension.
const (
	PriorityNone = "priority-none"
	Unassigned   = "unassigned"
)

var ErrInvalidKey = errors.New("invalid bucket key")

// Bucket is one of Status, Priority or Assignee.
type Bucket interface {
	Dimension() Dimension
	// Key is the stable, addressable representation used by renderers and clients.
	Key() string
	isBucket()
}

type Status struct {
	StatusID string
}

// Priority with a nil PriorityID is the no-priority bucket.
type Priority struct {
	PriorityID *string
}

// Assignee with a nil UserID is the unassigned bucket.
type Assignee struct {
	UserID *string
}

func (Status) Dimension() Dimension   { return DimStatus }
func (Priority) Dimension() Dimension { return DimPriority }
func (Assignee) Dimension() Dimension { return DimAssignee }

func (b Status) Key() string { return "status:" + b.StatusID }

func (b Priority) Key() string {
	if b.PriorityID == nil {
		return PriorityNone
	}
	return "priority:" + *b.PriorityID
}

func (b Assignee) Key() string {
	if b.UserID == nil {
		return Unassigned
	}
	return "assignee:" + *b.UserID
}

func (Status) isBucket()   {}
func (Priority) isBucket() {}
func (Assignee) isBucket() {}

// ParseKey turns a bucket key received from a client back into a Bucket.
// This is the only place sentinel strings are interpreted.
func ParseKey(key string) (Bucket, error) {
	switch key {
	case PriorityNone:
		return Priority{}, nil
	case Unassigned:
		return Assignee{}, nil
	}
	kind, id, ok := strings.Cut(key, ":")
	if !ok || id == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	switch kind {
	case "status":
		return Status{StatusID: id}, nil
	case "priority":
		return Priority{PriorityID: model.StringPtr(id)}, nil
	case "assignee":
		return Assignee{UserID: model.StringPtr(id)}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidKey, key)
}

// Of returns the bucket the task currently sits in for dimension d.
func Of(t *model.Task, d Dimension) Bucket {
	switch d {
	case DimPriority:
		return Priority{PriorityID: t.PriorityID}
	case DimAssignee:
		return Assignee{UserID: t.AssigneeID}
	}
	return Status{StatusID: t.StatusID}
}

// Contains reports whether the task currently belongs to b.
func Contains(b Bucket, t *model.Task) bool {
	switch b := b.(type) {
	case Status:
		return t.StatusID == b.StatusID
	case Priority:
		return model.SameStringPtr(t.PriorityID, b.PriorityID)
	case Assignee:
		return model.SameStringPtr(t.AssigneeID, b.UserID)
	}
	return false
}

// Assign writes the bucket's value into the matching task field and reports
// whether anything changed. It does not touch updated_at.
func Assign(b Bucket, t *model.Task) bool {
	if Contains(b, t) {
		return false
	}
	switch b := b.(type) {
	case Status:
		t.StatusID = b.StatusID
	case Priority:
		t.PriorityID = clone(b.PriorityID)
	case Assignee:
		t.AssigneeID = clone(b.UserID)
	default:
		return false
	}
	return true
}

// Snapshot captures every classification of a task at once.
type Snapshot struct {
	Status   Status
	Priority Priority
	Assignee Assignee
}

func SnapshotOf(t *model.Task) Snapshot {
	return Snapshot{
		Status:   Status{StatusID: t.StatusID},
		Priority: Priority{PriorityID: clone(t.PriorityID)},
		Assignee: Assignee{UserID: clone(t.AssigneeID)},
	}
}

func clone(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
