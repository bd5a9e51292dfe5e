package models

import (
	"fmt"
	"time"
)

// List is a named collection of tasks belonging to one principal.
// Owner never changes after creation; Rank orders lists relative to the
// caller's other lists.
type List struct {
	ID        string    `db:"id" json:"id"`
	OwnerID   string    `db:"owner_id" json:"owner_id"`
	Title     string    `db:"title" json:"title"`
	Color     *string   `db:"color" json:"color,omitempty"`
	Archived  bool      `db:"archived" json:"archived"`
	Rank      float64   `db:"rank" json:"rank"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ListPatch is a sparse update. Absent fields keep the stored value.
type ListPatch struct {
	Title    Optional[string]  `json:"title"`
	Color    Optional[string]  `json:"color"`
	Archived Optional[bool]    `json:"archived"`
	Rank     Optional[float64] `json:"rank"`
}

// Apply merges the patch into l. Only color may be cleared with null.
func (p ListPatch) Apply(l *List) error {
	if p.Title.Present {
		if p.Title.Null {
			return fmt.Errorf("title: %w", ErrNullField)
		}
		l.Title = p.Title.Value
	}
	if p.Color.Present {
		if p.Color.Null {
			l.Color = nil
		} else {
			c := p.Color.Value
			l.Color = &c
		}
	}
	if p.Archived.Present {
		if p.Archived.Null {
			return fmt.Errorf("archived: %w", ErrNullField)
		}
		l.Archived = p.Archived.Value
	}
	if p.Rank.Present {
		if p.Rank.Null {
			return fmt.Errorf("rank: %w", ErrNullField)
		}
		l.Rank = p.Rank.Value
	}
	return nil
}
