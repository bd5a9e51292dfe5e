package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"listkeeper/internal/models"
)

// ListRepository is owner-scoped CRUD over lists. Every read and write
// carries an owner predicate; a wrong id and a foreign id are
// indistinguishable from the caller's side.
type ListRepository interface {
	WithTx(tx *sqlx.Tx) ListRepository
	Store(ctx context.Context, list *models.List) error
	FindByID(ctx context.Context, principal, id string) (*models.List, error)
	FindAll(ctx context.Context, principal string, includeArchived bool) ([]models.List, error)
	Update(ctx context.Context, list *models.List) (int64, error)
	Delete(ctx context.Context, principal, id string) (int64, error)
	MaxRank(ctx context.Context, principal string) (float64, error)
	PurgeOwner(ctx context.Context, principal string) error
}

type listRepository struct {
	db sqlx.ExtContext
}

func NewListRepository(db *sqlx.DB) ListRepository {
	return &listRepository{db: db}
}

func (r *listRepository) WithTx(tx *sqlx.Tx) ListRepository {
	return &listRepository{db: tx}
}

func (r *listRepository) Store(ctx context.Context, list *models.List) error {
	q := r.db.Rebind(`
		INSERT INTO lists (id, owner_id, title, color, archived, rank, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, q,
		list.ID, list.OwnerID, list.Title, list.Color, list.Archived, list.Rank,
		list.CreatedAt, list.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("storing list: %w", err)
	}
	return nil
}

func (r *listRepository) FindByID(ctx context.Context, principal, id string) (*models.List, error) {
	list := &models.List{}
	q := r.db.Rebind(`SELECT * FROM lists WHERE id = ? AND owner_id = ?`)
	err := sqlx.GetContext(ctx, r.db, list, q, id, principal)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding list: %w", err)
	}
	return list, nil
}

func (r *listRepository) FindAll(ctx context.Context, principal string, includeArchived bool) ([]models.List, error) {
	q := `SELECT * FROM lists WHERE owner_id = ?`
	if !includeArchived {
		q += ` AND archived = FALSE`
	}
	q += ` ORDER BY rank ASC, created_at ASC`

	var lists []models.List
	if err := sqlx.SelectContext(ctx, r.db, &lists, r.db.Rebind(q), principal); err != nil {
		return nil, fmt.Errorf("querying lists: %w", err)
	}
	return lists, nil
}

func (r *listRepository) Update(ctx context.Context, list *models.List) (int64, error) {
	q := r.db.Rebind(`
		UPDATE lists SET title = ?, color = ?, archived = ?, rank = ?, updated_at = ?
		WHERE id = ? AND owner_id = ?`)
	res, err := r.db.ExecContext(ctx, q,
		list.Title, list.Color, list.Archived, list.Rank, list.UpdatedAt,
		list.ID, list.OwnerID,
	)
	if err != nil {
		return 0, fmt.Errorf("updating list: %w", err)
	}
	return res.RowsAffected()
}

func (r *listRepository) Delete(ctx context.Context, principal, id string) (int64, error) {
	q := r.db.Rebind(`DELETE FROM lists WHERE id = ? AND owner_id = ?`)
	res, err := r.db.ExecContext(ctx, q, id, principal)
	if err != nil {
		return 0, fmt.Errorf("deleting list: %w", err)
	}
	return res.RowsAffected()
}

func (r *listRepository) MaxRank(ctx context.Context, principal string) (float64, error) {
	var max float64
	q := r.db.Rebind(`SELECT COALESCE(MAX(rank), 0) FROM lists WHERE owner_id = ?`)
	if err := sqlx.GetContext(ctx, r.db, &max, q, principal); err != nil {
		return 0, fmt.Errorf("getting max list rank: %w", err)
	}
	return max, nil
}

func (r *listRepository) PurgeOwner(ctx context.Context, principal string) error {
	q := r.db.Rebind(`DELETE FROM lists WHERE owner_id = ?`)
	if _, err := r.db.ExecContext(ctx, q, principal); err != nil {
		return fmt.Errorf("purging lists: %w", err)
	}
	return nil
}
