package models

import "time"

// Reminder records that a task should fire a notification at FireAt.
// Delivery itself happens elsewhere; Delivered only flips false -> true.
type Reminder struct {
	ID        string    `db:"id" json:"id"`
	OwnerID   string    `db:"owner_id" json:"owner_id"`
	TaskID    string    `db:"task_id" json:"task_id"`
	FireAt    time.Time `db:"fire_at" json:"fire_at"`
	Delivered bool      `db:"delivered" json:"delivered"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
