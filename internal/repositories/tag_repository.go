package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"listkeeper/internal/models"
)

// TagRepository covers tags and the task_tags relation table. The
// composite primary key on (task_id, tag_id) backs idempotent assignment
// under concurrent callers.
type TagRepository interface {
	WithTx(tx *sqlx.Tx) TagRepository
	Store(ctx context.Context, tag *models.Tag) error
	FindByID(ctx context.Context, principal, id string) (*models.Tag, error)
	FindByName(ctx context.Context, principal, name string) (*models.Tag, error)
	FindAll(ctx context.Context, principal string) ([]models.Tag, error)
	Update(ctx context.Context, tag *models.Tag) (int64, error)
	Delete(ctx context.Context, principal, id string) (int64, error)

	Assign(ctx context.Context, taskID, tagID string) error
	AssignmentExists(ctx context.Context, taskID, tagID string) (bool, error)
	Unassign(ctx context.Context, taskID, tagID string) (int64, error)
	TagsForTask(ctx context.Context, principal, taskID string) ([]models.Tag, error)
	DeleteAssignmentsForTag(ctx context.Context, tagID string) error
	DeleteAssignmentsForTasks(ctx context.Context, taskIDs []string) error
	PurgeOwner(ctx context.Context, principal string) error
}

type tagRepository struct {
	db sqlx.ExtContext
}

func NewTagRepository(db *sqlx.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) WithTx(tx *sqlx.Tx) TagRepository {
	return &tagRepository{db: tx}
}

func (r *tagRepository) Store(ctx context.Context, tag *models.Tag) error {
	q := r.db.Rebind(`
		INSERT INTO tags (id, owner_id, name, color, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, q,
		tag.ID, tag.OwnerID, tag.Name, tag.Color, tag.CreatedAt, tag.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("storing tag: %w", err)
	}
	return nil
}

func (r *tagRepository) FindByID(ctx context.Context, principal, id string) (*models.Tag, error) {
	tag := &models.Tag{}
	q := r.db.Rebind(`SELECT * FROM tags WHERE id = ? AND owner_id = ?`)
	err := sqlx.GetContext(ctx, r.db, tag, q, id, principal)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding tag: %w", err)
	}
	return tag, nil
}

func (r *tagRepository) FindByName(ctx context.Context, principal, name string) (*models.Tag, error) {
	tag := &models.Tag{}
	q := r.db.Rebind(`SELECT * FROM tags WHERE owner_id = ? AND name = ?`)
	err := sqlx.GetContext(ctx, r.db, tag, q, principal, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding tag by name: %w", err)
	}
	return tag, nil
}

func (r *tagRepository) FindAll(ctx context.Context, principal string) ([]models.Tag, error) {
	var tags []models.Tag
	q := r.db.Rebind(`SELECT * FROM tags WHERE owner_id = ? ORDER BY name ASC`)
	if err := sqlx.SelectContext(ctx, r.db, &tags, q, principal); err != nil {
		return nil, fmt.Errorf("querying tags: %w", err)
	}
	return tags, nil
}

func (r *tagRepository) Update(ctx context.Context, tag *models.Tag) (int64, error) {
	q := r.db.Rebind(`
		UPDATE tags SET name = ?, color = ?, updated_at = ?
		WHERE id = ? AND owner_id = ?`)
	res, err := r.db.ExecContext(ctx, q, tag.Name, tag.Color, tag.UpdatedAt, tag.ID, tag.OwnerID)
	if err != nil {
		return 0, fmt.Errorf("updating tag: %w", err)
	}
	return res.RowsAffected()
}

func (r *tagRepository) Delete(ctx context.Context, principal, id string) (int64, error) {
	q := r.db.Rebind(`DELETE FROM tags WHERE id = ? AND owner_id = ?`)
	res, err := r.db.ExecContext(ctx, q, id, principal)
	if err != nil {
		return 0, fmt.Errorf("deleting tag: %w", err)
	}
	return res.RowsAffected()
}

func (r *tagRepository) Assign(ctx context.Context, taskID, tagID string) error {
	q := r.db.Rebind(`INSERT INTO task_tags (task_id, tag_id) VALUES (?, ?)`)
	if _, err := r.db.ExecContext(ctx, q, taskID, tagID); err != nil {
		return fmt.Errorf("assigning tag: %w", err)
	}
	return nil
}

func (r *tagRepository) AssignmentExists(ctx context.Context, taskID, tagID string) (bool, error) {
	var n int
	q := r.db.Rebind(`SELECT COUNT(*) FROM task_tags WHERE task_id = ? AND tag_id = ?`)
	if err := sqlx.GetContext(ctx, r.db, &n, q, taskID, tagID); err != nil {
		return false, fmt.Errorf("checking assignment: %w", err)
	}
	return n > 0, nil
}

func (r *tagRepository) Unassign(ctx context.Context, taskID, tagID string) (int64, error) {
	q := r.db.Rebind(`DELETE FROM task_tags WHERE task_id = ? AND tag_id = ?`)
	res, err := r.db.ExecContext(ctx, q, taskID, tagID)
	if err != nil {
		return 0, fmt.Errorf("unassigning tag: %w", err)
	}
	return res.RowsAffected()
}

func (r *tagRepository) TagsForTask(ctx context.Context, principal, taskID string) ([]models.Tag, error) {
	var tags []models.Tag
	q := r.db.Rebind(`
		SELECT t.* FROM tags t
		INNER JOIN task_tags tt ON t.id = tt.tag_id
		WHERE tt.task_id = ? AND t.owner_id = ?
		ORDER BY t.name ASC`)
	if err := sqlx.SelectContext(ctx, r.db, &tags, q, taskID, principal); err != nil {
		return nil, fmt.Errorf("querying tags for task: %w", err)
	}
	return tags, nil
}

func (r *tagRepository) DeleteAssignmentsForTag(ctx context.Context, tagID string) error {
	q := r.db.Rebind(`DELETE FROM task_tags WHERE tag_id = ?`)
	if _, err := r.db.ExecContext(ctx, q, tagID); err != nil {
		return fmt.Errorf("clearing tag assignments: %w", err)
	}
	return nil
}

func (r *tagRepository) DeleteAssignmentsForTasks(ctx context.Context, taskIDs []string) error {
	if len(taskIDs) == 0 {
		return nil
	}
	q, args, err := sqlx.In(`DELETE FROM task_tags WHERE task_id IN (?)`, taskIDs)
	if err != nil {
		return fmt.Errorf("building assignment delete: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(q), args...); err != nil {
		return fmt.Errorf("clearing task assignments: %w", err)
	}
	return nil
}

func (r *tagRepository) PurgeOwner(ctx context.Context, principal string) error {
	q := r.db.Rebind(`
		DELETE FROM task_tags WHERE tag_id IN (SELECT id FROM tags WHERE owner_id = ?)`)
	if _, err := r.db.ExecContext(ctx, q, principal); err != nil {
		return fmt.Errorf("purging tag assignments: %w", err)
	}
	q = r.db.Rebind(`DELETE FROM tags WHERE owner_id = ?`)
	if _, err := r.db.ExecContext(ctx, q, principal); err != nil {
		return fmt.Errorf("purging tags: %w", err)
	}
	return nil
}
