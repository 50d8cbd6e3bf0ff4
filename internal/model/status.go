package model

type StatusCategory string

const (
	CategoryBacklog    StatusCategory = "backlog"
	CategoryTodo       StatusCategory = "todo"
	CategoryInProgress StatusCategory = "in_progress"
	CategoryDone       StatusCategory = "done"
	CategoryCancelled  StatusCategory = "cancelled"
)

// Valid reports whether c is one of the known workflow categories.
func (c StatusCategory) Valid() bool {
	switch c {
	case CategoryBacklog, CategoryTodo, CategoryInProgress, CategoryDone, CategoryCancelled:
		return true
	}
	return false
}

// Closed reports whether tasks in this category no longer need work.
func (c StatusCategory) Closed() bool {
	return c == CategoryDone || c == CategoryCancelled
}

type Status struct {
	ID        string         `json:"id"`
	ProjectID string         `json:"project_id"`
	Name      string         `json:"name"`
	Color     string         `json:"color"`
	Category  StatusCategory `json:"category"`
	SortOrder int            `json:"sort_order"`
}
