package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"listkeeper/internal/models"
)

// TaskRepository is owner-scoped CRUD over tasks.
type TaskRepository interface {
	WithTx(tx *sqlx.Tx) TaskRepository
	Store(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, principal, id string) (*models.Task, error)
	FindAll(ctx context.Context, principal string, filter models.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) (int64, error)
	Delete(ctx context.Context, principal, id string) (int64, error)
	DeleteByList(ctx context.Context, principal, listID string) (int64, error)
	IDsByList(ctx context.Context, principal, listID string) ([]string, error)
	OwnedExists(ctx context.Context, principal, id string) (bool, error)
	MaxRank(ctx context.Context, principal, listID string) (float64, error)
	PurgeOwner(ctx context.Context, principal string) error
}

type taskRepository struct {
	db sqlx.ExtContext
}

func NewTaskRepository(db *sqlx.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) WithTx(tx *sqlx.Tx) TaskRepository {
	return &taskRepository{db: tx}
}

func (r *taskRepository) Store(ctx context.Context, task *models.Task) error {
	q := r.db.Rebind(`
		INSERT INTO tasks (
			id, owner_id, list_id, title, notes, status, priority,
			due_date, due_time, important, rank, completed_at, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, q,
		task.ID, task.OwnerID, task.ListID, task.Title, task.Notes, task.Status, task.Priority,
		task.DueDate, task.DueTime, task.Important, task.Rank, task.CompletedAt,
		task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("storing task: %w", err)
	}
	return nil
}

func (r *taskRepository) FindByID(ctx context.Context, principal, id string) (*models.Task, error) {
	task := &models.Task{}
	q := r.db.Rebind(`SELECT * FROM tasks WHERE id = ? AND owner_id = ?`)
	err := sqlx.GetContext(ctx, r.db, task, q, id, principal)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding task: %w", err)
	}
	return task, nil
}

func (r *taskRepository) FindAll(ctx context.Context, principal string, filter models.TaskFilter) ([]models.Task, error) {
	q := `SELECT * FROM tasks WHERE owner_id = ?`
	args := []interface{}{principal}

	if filter.ListID != nil {
		q += ` AND list_id = ?`
		args = append(args, *filter.ListID)
	}
	q += ` ORDER BY rank ASC, created_at ASC`

	var tasks []models.Task
	if err := sqlx.SelectContext(ctx, r.db, &tasks, r.db.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	return tasks, nil
}

func (r *taskRepository) Update(ctx context.Context, task *models.Task) (int64, error) {
	q := r.db.Rebind(`
		UPDATE tasks SET
			list_id = ?, title = ?, notes = ?, status = ?, priority = ?,
			due_date = ?, due_time = ?, important = ?, rank = ?, completed_at = ?, updated_at = ?
		WHERE id = ? AND owner_id = ?`)
	res, err := r.db.ExecContext(ctx, q,
		task.ListID, task.Title, task.Notes, task.Status, task.Priority,
		task.DueDate, task.DueTime, task.Important, task.Rank, task.CompletedAt, task.UpdatedAt,
		task.ID, task.OwnerID,
	)
	if err != nil {
		return 0, fmt.Errorf("updating task: %w", err)
	}
	return res.RowsAffected()
}

func (r *taskRepository) Delete(ctx context.Context, principal, id string) (int64, error) {
	q := r.db.Rebind(`DELETE FROM tasks WHERE id = ? AND owner_id = ?`)
	res, err := r.db.ExecContext(ctx, q, id, principal)
	if err != nil {
		return 0, fmt.Errorf("deleting task: %w", err)
	}
	return res.RowsAffected()
}

func (r *taskRepository) DeleteByList(ctx context.Context, principal, listID string) (int64, error) {
	q := r.db.Rebind(`DELETE FROM tasks WHERE list_id = ? AND owner_id = ?`)
	res, err := r.db.ExecContext(ctx, q, listID, principal)
	if err != nil {
		return 0, fmt.Errorf("deleting tasks of list: %w", err)
	}
	return res.RowsAffected()
}

func (r *taskRepository) IDsByList(ctx context.Context, principal, listID string) ([]string, error) {
	var ids []string
	q := r.db.Rebind(`SELECT id FROM tasks WHERE list_id = ? AND owner_id = ?`)
	if err := sqlx.SelectContext(ctx, r.db, &ids, q, listID, principal); err != nil {
		return nil, fmt.Errorf("listing task ids of list: %w", err)
	}
	return ids, nil
}

func (r *taskRepository) OwnedExists(ctx context.Context, principal, id string) (bool, error) {
	var n int
	q := r.db.Rebind(`SELECT COUNT(*) FROM tasks WHERE id = ? AND owner_id = ?`)
	if err := sqlx.GetContext(ctx, r.db, &n, q, id, principal); err != nil {
		return false, fmt.Errorf("checking task ownership: %w", err)
	}
	return n > 0, nil
}

func (r *taskRepository) MaxRank(ctx context.Context, principal, listID string) (float64, error) {
	var max float64
	q := r.db.Rebind(`SELECT COALESCE(MAX(rank), 0) FROM tasks WHERE list_id = ? AND owner_id = ?`)
	if err := sqlx.GetContext(ctx, r.db, &max, q, listID, principal); err != nil {
		return 0, fmt.Errorf("getting max task rank: %w", err)
	}
	return max, nil
}

func (r *taskRepository) PurgeOwner(ctx context.Context, principal string) error {
	q := r.db.Rebind(`DELETE FROM tasks WHERE owner_id = ?`)
	if _, err := r.db.ExecContext(ctx, q, principal); err != nil {
		return fmt.Errorf("purging tasks: %w", err)
	}
	return nil
}
