package repository

import "errors"

// Common repository errors
var (
	// ErrProjectNotFound is returned when a project is not found by id or slug
	ErrProjectNotFound = errors.New("project not found")

	// ErrTaskNotFound is returned when a task is not found
	ErrTaskNotFound = errors.New("task not found")

	// ErrStatusNotFound is returned when a status is not found
	ErrStatusNotFound = errors.New("status not found")

	// ErrLabelNotFound is returned when a label is not found
	ErrLabelNotFound = errors.New("label not found")

	ErrPriorityNotFound = errors.New("priority not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrFileNotFound     = errors.New("file not found")
)
