package service

import "errors"

var (
	// ErrInvalidInput wraps every rejected field value.
	ErrInvalidInput         = errors.New("invalid input")
	ErrConfirmationMismatch = errors.New("confirmation does not match the project name")
	ErrLastStatus           = errors.New("cannot delete the last status of a project")
	ErrStatusInUse          = errors.New("status is still used by tasks")
	ErrStatusOrder          = errors.New("status order must list every status of the project exactly once")
	ErrForeignEntity        = errors.New("entity belongs to another project")
)
