package models

import "errors"

var (
	ErrListNotFound = errors.New("list not found")
	ErrTaskNotFound = errors.New("task not found")
	ErrTagNotFound  = errors.New("tag not found")

	// ErrNullField marks an explicit null sent for a column that cannot be
	// cleared. Wrapped with the field name by Apply.
	ErrNullField = errors.New("field cannot be null")

	ErrInvalidInput = errors.New("invalid input")
)
