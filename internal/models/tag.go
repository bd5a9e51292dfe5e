package models

import (
	"fmt"
	"time"
)

// Tag is an owner-scoped label. (owner, name) is unique; creating a
// duplicate name merges into the existing row instead of failing.
type Tag struct {
	ID        string    `db:"id" json:"id"`
	OwnerID   string    `db:"owner_id" json:"owner_id"`
	Name      string    `db:"name" json:"name"`
	Color     *string   `db:"color" json:"color,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// TagPatch is a sparse update; only color may be cleared with null.
type TagPatch struct {
	Name  Optional[string] `json:"name"`
	Color Optional[string] `json:"color"`
}

func (p TagPatch) Apply(t *Tag) error {
	if p.Name.Present {
		if p.Name.Null {
			return fmt.Errorf("name: %w", ErrNullField)
		}
		t.Name = p.Name.Value
	}
	if p.Color.Present {
		if p.Color.Null {
			t.Color = nil
		} else {
			c := p.Color.Value
			t.Color = &c
		}
	}
	return nil
}
