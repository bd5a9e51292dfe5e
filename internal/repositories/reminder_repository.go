package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"listkeeper/internal/models"
)

// ReminderRepository is owner-scoped CRUD over reminders.
type ReminderRepository interface {
	WithTx(tx *sqlx.Tx) ReminderRepository
	Store(ctx context.Context, rem *models.Reminder) error
	FindAll(ctx context.Context, principal string) ([]models.Reminder, error)
	Delete(ctx context.Context, principal, id string) (int64, error)
	MarkDelivered(ctx context.Context, principal, id string) (int64, error)
	DeleteForTasks(ctx context.Context, taskIDs []string) error
	PurgeOwner(ctx context.Context, principal string) error
}

type reminderRepository struct {
	db sqlx.ExtContext
}

func NewReminderRepository(db *sqlx.DB) ReminderRepository {
	return &reminderRepository{db: db}
}

func (r *reminderRepository) WithTx(tx *sqlx.Tx) ReminderRepository {
	return &reminderRepository{db: tx}
}

func (r *reminderRepository) Store(ctx context.Context, rem *models.Reminder) error {
	q := r.db.Rebind(`
		INSERT INTO reminders (id, owner_id, task_id, fire_at, delivered, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, q,
		rem.ID, rem.OwnerID, rem.TaskID, rem.FireAt, rem.Delivered, rem.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("storing reminder: %w", err)
	}
	return nil
}

func (r *reminderRepository) FindAll(ctx context.Context, principal string) ([]models.Reminder, error) {
	var rems []models.Reminder
	q := r.db.Rebind(`SELECT * FROM reminders WHERE owner_id = ? ORDER BY fire_at ASC`)
	if err := sqlx.SelectContext(ctx, r.db, &rems, q, principal); err != nil {
		return nil, fmt.Errorf("querying reminders: %w", err)
	}
	return rems, nil
}

func (r *reminderRepository) Delete(ctx context.Context, principal, id string) (int64, error) {
	q := r.db.Rebind(`DELETE FROM reminders WHERE id = ? AND owner_id = ?`)
	res, err := r.db.ExecContext(ctx, q, id, principal)
	if err != nil {
		return 0, fmt.Errorf("deleting reminder: %w", err)
	}
	return res.RowsAffected()
}

// MarkDelivered flips delivered to true. The delivered predicate makes the
// transition write-once: a second call matches zero rows.
func (r *reminderRepository) MarkDelivered(ctx context.Context, principal, id string) (int64, error) {
	q := r.db.Rebind(`
		UPDATE reminders SET delivered = TRUE
		WHERE id = ? AND owner_id = ? AND delivered = FALSE`)
	res, err := r.db.ExecContext(ctx, q, id, principal)
	if err != nil {
		return 0, fmt.Errorf("marking reminder delivered: %w", err)
	}
	return res.RowsAffected()
}

func (r *reminderRepository) DeleteForTasks(ctx context.Context, taskIDs []string) error {
	if len(taskIDs) == 0 {
		return nil
	}
	q, args, err := sqlx.In(`DELETE FROM reminders WHERE task_id IN (?)`, taskIDs)
	if err != nil {
		return fmt.Errorf("building reminder delete: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(q), args...); err != nil {
		return fmt.Errorf("deleting reminders of tasks: %w", err)
	}
	return nil
}

func (r *reminderRepository) PurgeOwner(ctx context.Context, principal string) error {
	q := r.db.Rebind(`DELETE FROM reminders WHERE owner_id = ?`)
	if _, err := r.db.ExecContext(ctx, q, principal); err != nil {
		return fmt.Errorf("purging reminders: %w", err)
	}
	return nil
}
