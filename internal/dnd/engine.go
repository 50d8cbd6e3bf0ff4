package dnd

import (
	"fmt"

	"planboard/internal/bucket"
	"planboard/internal/model"
	"planboard/internal/repository"
)

// Target describes where a drop landed. Buckets are the classifications of the
// container (a status column, a list group, a swimlane inside a column); empty
// means the container does not reclassify. TaskID is the hovered task, if any.
type Target struct {
	Buckets []bucket.Bucket
	TaskID  string
	Side    Side
}

// Change names a classification field that a drop rewrote.
type Change struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type Result struct {
	TaskID    string   `json:"task_id"`
	Changes   []Change `json:"changes"`
	Reordered bool     `json:"reordered"`
}

// Noop reports whether the drop left the store untouched.
func (r Result) Noop() bool {
	return len(r.Changes) == 0 && !r.Reordered
}

// Engine is the drag-and-drop state machine for list rows and board cards.
type Engine struct {
	store *repository.Store
	state State
}

func NewEngine(store *repository.Store) *Engine {
	return &Engine{store: store, state: Idle{}}
}

func (e *Engine) State() State {
	return e.state
}

// Begin starts dragging the task, capturing its current classification.
func (e *Engine) Begin(taskID string) error {
	if _, ok := e.state.(Dragging); ok {
		return ErrAlreadyDragging
	}
	task, err := e.store.GetTaskByID(taskID)
	if err != nil {
		return err
	}
	e.state = Dragging{TaskID: task.ID, Source: bucket.SnapshotOf(task)}
	return nil
}

// Hover updates the drop indicator. Hovering the dragged task itself clears it.
func (e *Engine) Hover(targetID string, pointerY, top, height float64) (*Indicator, error) {
	d, ok := e.state.(Dragging)
	if !ok {
		return nil, ErrNotDragging
	}
	d.Indicator = nil
	if targetID != "" && targetID != d.TaskID {
		d.Indicator = &Indicator{TargetID: targetID, Side: SideOf(pointerY, top, height)}
	}
	e.state = d
	return d.Indicator, nil
}

// Cancel abandons the drag without touching data. It reports whether a drag was active.
func (e *Engine) Cancel() bool {
	_, ok := e.state.(Dragging)
	e.state = Idle{}
	return ok
}

// DropOutside ends a drag whose drop container could not be resolved.
func (e *Engine) DropOutside() (Result, error) {
	d, ok := e.state.(Dragging)
	if !ok {
		return Result{}, ErrNotDragging
	}
	e.state = Idle{}
	return Result{TaskID: d.TaskID, Changes: []Change{}}, nil
}

// Drop commits the drag. Dropping a task onto itself is ignored and the drag
// stays active. Every other drop returns the machine to Idle.
func (e *Engine) Drop(target Target) (Result, error) {
	d, ok := e.state.(Dragging)
	if !ok {
		return Result{}, ErrNotDragging
	}
	if target.TaskID == d.TaskID {
		return Result{TaskID: d.TaskID, Changes: []Change{}}, nil
	}
	e.state = Idle{}

	task, err := e.store.GetTaskByID(d.TaskID)
	if err != nil {
		return Result{}, err
	}
	return e.apply(task, target), nil
}

// Move applies a drop directly, without a pointer gesture.
func (e *Engine) Move(taskID string, target Target) (Result, error) {
	task, err := e.store.GetTaskByID(taskID)
	if err != nil {
		return Result{}, err
	}
	if target.TaskID == task.ID {
		return Result{TaskID: task.ID, Changes: []Change{}}, nil
	}
	return e.apply(task, target), nil
}

func (e *Engine) apply(task *model.Task, target Target) Result {
	res := Result{TaskID: task.ID, Changes: []Change{}}
	oldStatus := task.StatusID

	for _, b := range target.Buckets {
		if bucket.Assign(b, task) {
			res.Changes = append(res.Changes, e.describe(b))
		}
	}
	if len(res.Changes) > 0 {
		e.store.TouchTask(task)
	}

	if !task.IsArchived && (len(res.Changes) > 0 || target.TaskID != "") {
		res.Reordered = e.reorder(task, target, len(res.Changes) > 0)
	}
	if task.StatusID != oldStatus {
		e.store.CompactBucket(task.ProjectID, oldStatus)
	}
	return res
}

// reorder places the task inside its (project, status) bucket and densely
// reindexes the bucket. An unchanged order is left alone unless force is set.
// It reports whether any sort_order changed.
func (e *Engine) reorder(task *model.Task, target Target, force bool) bool {
	current := e.store.GetStatusBucket(task.ProjectID, task.StatusID)
	rest := make([]*model.Task, 0, len(current))
	for _, t := range current {
		if t.ID != task.ID {
			rest = append(rest, t)
		}
	}

	insertAt := len(rest)
	for i, t := range rest {
		if t.ID == target.TaskID {
			insertAt = i
			if target.Side == Below {
				insertAt++
			}
			break
		}
	}

	ordered := make([]*model.Task, 0, len(rest)+1)
	ordered = append(ordered, rest[:insertAt]...)
	ordered = append(ordered, task)
	ordered = append(ordered, rest[insertAt:]...)

	if !force && sameOrder(current, ordered) {
		return false
	}
	return e.store.ReindexBucket(ordered) > 0
}

func sameOrder(a, b []*model.Task) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}

func (e *Engine) describe(b bucket.Bucket) Change {
	switch b := b.(type) {
	case bucket.Status:
		name := b.StatusID
		if s, err := e.store.GetStatusByID(b.StatusID); err == nil {
			name = s.Name
		}
		return Change{Field: "status", Value: name}
	case bucket.Priority:
		name := "No Priority"
		if b.PriorityID != nil {
			name = *b.PriorityID
			if p, err := e.store.GetPriorityByID(*b.PriorityID); err == nil {
				name = p.Name
			}
		}
		return Change{Field: "priority", Value: name}
	case bucket.Assignee:
		name := "Unassigned"
		if b.UserID != nil {
			name = *b.UserID
			if u, err := e.store.GetUserByID(*b.UserID); err == nil {
				name = u.Name
			}
		}
		return Change{Field: "assignee", Value: name}
	}
	return Change{Field: b.Dimension().String()}
}

// Message is the acknowledgement shown after a drop; empty when nothing
// worth announcing happened.
func (r Result) Message() string {
	switch len(r.Changes) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("Moved to %s: %s", r.Changes[0].Field, r.Changes[0].Value)
	}
	msg := "Moved to"
	for i, c := range r.Changes {
		if i > 0 {
			msg += ","
		}
		msg += fmt.Sprintf(" %s: %s", c.Field, c.Value)
	}
	return msg
}
