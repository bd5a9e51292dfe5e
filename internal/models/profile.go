package models

import (
	"fmt"
	"time"
)

// Profile holds display data for one principal. The principal id itself is
// the key; it is issued and verified by the external identity system.
type Profile struct {
	PrincipalID string    `db:"principal_id" json:"principal_id"`
	DisplayName string    `db:"display_name" json:"display_name"`
	AvatarURL   *string   `db:"avatar_url" json:"avatar_url,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// ProfilePatch is a sparse update; only avatar_url may be cleared with null.
type ProfilePatch struct {
	DisplayName Optional[string] `json:"display_name"`
	AvatarURL   Optional[string] `json:"avatar_url"`
}

func (p ProfilePatch) Apply(pr *Profile) error {
	if p.DisplayName.Present {
		if p.DisplayName.Null {
			return fmt.Errorf("display_name: %w", ErrNullField)
		}
		pr.DisplayName = p.DisplayName.Value
	}
	if p.AvatarURL.Present {
		if p.AvatarURL.Null {
			pr.AvatarURL = nil
		} else {
			u := p.AvatarURL.Value
			pr.AvatarURL = &u
		}
	}
	return nil
}
