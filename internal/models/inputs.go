package models

import "time"

// Create inputs carry only caller-settable fields. Owner is never part of
// an input; it is stamped from the verified principal by the service layer.

type CreateListInput struct {
	Title string
	Color *string
	Rank  *float64
}

type CreateTaskInput struct {
	ListID    string
	Title     string
	Notes     *string
	DueDate   *string
	DueTime   *string
	Important bool
	Priority  *int
	Rank      *float64
}

type CreateTagInput struct {
	Name  string
	Color *string
}

type CreateReminderInput struct {
	TaskID string
	FireAt time.Time
}
