package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"listkeeper/internal/models"
)

// ActivityRepository appends to and reads the audit trail. Entries are
// never updated; the only deletions are the cascade from their task and
// the owner purge.
type ActivityRepository interface {
	WithTx(tx *sqlx.Tx) ActivityRepository
	Append(ctx context.Context, entry *models.Activity) error
	ForTask(ctx context.Context, principal, taskID string) ([]models.Activity, error)
	DeleteForTasks(ctx context.Context, taskIDs []string) error
	PurgeOwner(ctx context.Context, principal string) error
}

type activityRepository struct {
	db sqlx.ExtContext
}

func NewActivityRepository(db *sqlx.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) WithTx(tx *sqlx.Tx) ActivityRepository {
	return &activityRepository{db: tx}
}

func (r *activityRepository) Append(ctx context.Context, entry *models.Activity) error {
	q := r.db.Rebind(`
		INSERT INTO activity (task_id, owner_id, action, before_state, after_state, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, q,
		entry.TaskID, entry.OwnerID, entry.Action, entry.Before, entry.After, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("appending activity: %w", err)
	}
	return nil
}

func (r *activityRepository) ForTask(ctx context.Context, principal, taskID string) ([]models.Activity, error) {
	var entries []models.Activity
	q := r.db.Rebind(`
		SELECT * FROM activity WHERE task_id = ? AND owner_id = ? ORDER BY seq ASC`)
	if err := sqlx.SelectContext(ctx, r.db, &entries, q, taskID, principal); err != nil {
		return nil, fmt.Errorf("querying activity: %w", err)
	}
	return entries, nil
}

func (r *activityRepository) DeleteForTasks(ctx context.Context, taskIDs []string) error {
	if len(taskIDs) == 0 {
		return nil
	}
	q, args, err := sqlx.In(`DELETE FROM activity WHERE task_id IN (?)`, taskIDs)
	if err != nil {
		return fmt.Errorf("building activity delete: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(q), args...); err != nil {
		return fmt.Errorf("deleting activity of tasks: %w", err)
	}
	return nil
}

func (r *activityRepository) PurgeOwner(ctx context.Context, principal string) error {
	q := r.db.Rebind(`DELETE FROM activity WHERE owner_id = ?`)
	if _, err := r.db.ExecContext(ctx, q, principal); err != nil {
		return fmt.Errorf("purging activity: %w", err)
	}
	return nil
}
