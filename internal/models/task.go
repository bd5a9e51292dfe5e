package models

import (
	"fmt"
	"time"
)

// TaskStatus defines the possible statuses for a task.
type TaskStatus string

const (
	StatusOpen       TaskStatus = "open"
	StatusInProgress TaskStatus = "in_progress"
	StatusDone       TaskStatus = "done"
	StatusCancelled  TaskStatus = "cancelled"
)

// ValidTaskStatus reports whether s is one of the known statuses.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusDone, StatusCancelled:
		return true
	}
	return false
}

// Priority bounds; 1 is the highest priority, 3 the default.
const (
	PriorityHighest = 1
	PriorityDefault = 3
	PriorityLowest  = 5
)

// Task represents a single to-do item. Owner always equals the owning
// list's owner. DueDate is "YYYY-MM-DD" and DueTime "HH:MM"; both are
// independent of each other and of any timezone. CompletedAt is set only
// when the caller supplies it, never derived from status.
type Task struct {
	ID          string     `db:"id" json:"id"`
	OwnerID     string     `db:"owner_id" json:"owner_id"`
	ListID      string     `db:"list_id" json:"list_id"`
	Title       string     `db:"title" json:"title"`
	Notes       *string    `db:"notes" json:"notes,omitempty"`
	Status      TaskStatus `db:"status" json:"status"`
	Priority    int        `db:"priority" json:"priority"`
	DueDate     *string    `db:"due_date" json:"due_date,omitempty"`
	DueTime     *string    `db:"due_time" json:"due_time,omitempty"`
	Important   bool       `db:"important" json:"important"`
	Rank        float64    `db:"rank" json:"rank"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// TaskFilter defines the available parameters for filtering tasks.
type TaskFilter struct {
	ListID *string
}

// TaskPatch is a sparse update. Absent fields keep the stored value;
// notes, due_date, due_time and completed_at may be cleared with null.
type TaskPatch struct {
	ListID      Optional[string]     `json:"list_id"`
	Title       Optional[string]     `json:"title"`
	Notes       Optional[string]     `json:"notes"`
	Status      Optional[TaskStatus] `json:"status"`
	Priority    Optional[int]        `json:"priority"`
	DueDate     Optional[string]     `json:"due_date"`
	DueTime     Optional[string]     `json:"due_time"`
	Important   Optional[bool]       `json:"important"`
	Rank        Optional[float64]    `json:"rank"`
	CompletedAt Optional[time.Time]  `json:"completed_at"`
}

// Apply merges the patch into t.
func (p TaskPatch) Apply(t *Task) error {
	if p.ListID.Present {
		if p.ListID.Null {
			return fmt.Errorf("list_id: %w", ErrNullField)
		}
		t.ListID = p.ListID.Value
	}
	if p.Title.Present {
		if p.Title.Null {
			return fmt.Errorf("title: %w", ErrNullField)
		}
		t.Title = p.Title.Value
	}
	if p.Notes.Present {
		if p.Notes.Null {
			t.Notes = nil
		} else {
			n := p.Notes.Value
			t.Notes = &n
		}
	}
	if p.Status.Present {
		if p.Status.Null {
			return fmt.Errorf("status: %w", ErrNullField)
		}
		if !ValidTaskStatus(p.Status.Value) {
			return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, p.Status.Value)
		}
		t.Status = p.Status.Value
	}
	if p.Priority.Present {
		if p.Priority.Null {
			return fmt.Errorf("priority: %w", ErrNullField)
		}
		if p.Priority.Value < PriorityHighest || p.Priority.Value > PriorityLowest {
			return fmt.Errorf("%w: priority must be between %d and %d", ErrInvalidInput, PriorityHighest, PriorityLowest)
		}
		t.Priority = p.Priority.Value
	}
	if p.DueDate.Present {
		if p.DueDate.Null {
			t.DueDate = nil
		} else {
			d := p.DueDate.Value
			t.DueDate = &d
		}
	}
	if p.DueTime.Present {
		if p.DueTime.Null {
			t.DueTime = nil
		} else {
			d := p.DueTime.Value
			t.DueTime = &d
		}
	}
	if p.Important.Present {
		if p.Important.Null {
			return fmt.Errorf("important: %w", ErrNullField)
		}
		t.Important = p.Important.Value
	}
	if p.Rank.Present {
		if p.Rank.Null {
			return fmt.Errorf("rank: %w", ErrNullField)
		}
		t.Rank = p.Rank.Value
	}
	if p.CompletedAt.Present {
		if p.CompletedAt.Null {
			t.CompletedAt = nil
		} else {
			c := p.CompletedAt.Value
			t.CompletedAt = &c
		}
	}
	return nil
}
