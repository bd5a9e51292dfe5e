package models

import "time"

// ActivityAction tags an activity entry with what happened to the task.
type ActivityAction string

const (
	ActionCreate       ActivityAction = "create"
	ActionUpdateStatus ActivityAction = "update_status"
	ActionUpdateDue    ActivityAction = "update_due"
	ActionComplete     ActivityAction = "complete"
	ActionReopen       ActivityAction = "reopen"
	ActionEditTitle    ActivityAction = "edit_title"
)

// Activity is one append-only audit entry. Entries are never updated or
// removed except when their task is deleted.
type Activity struct {
	Seq       int64          `db:"seq" json:"seq"`
	TaskID    string         `db:"task_id" json:"task_id"`
	OwnerID   string         `db:"owner_id" json:"owner_id"`
	Action    ActivityAction `db:"action" json:"action"`
	Before    Snapshot       `db:"before_state" json:"before,omitempty"`
	After     Snapshot       `db:"after_state" json:"after,omitempty"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}
