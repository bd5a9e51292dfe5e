package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"listkeeper/internal/models"
)

// ProfileRepository stores one profile row per principal.
type ProfileRepository interface {
	WithTx(tx *sqlx.Tx) ProfileRepository
	Store(ctx context.Context, p *models.Profile) error
	Find(ctx context.Context, principal string) (*models.Profile, error)
	Update(ctx context.Context, p *models.Profile) (int64, error)
	Delete(ctx context.Context, principal string) (int64, error)
}

type profileRepository struct {
	db sqlx.ExtContext
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) WithTx(tx *sqlx.Tx) ProfileRepository {
	return &profileRepository{db: tx}
}

func (r *profileRepository) Store(ctx context.Context, p *models.Profile) error {
	q := r.db.Rebind(`
		INSERT INTO profiles (principal_id, display_name, avatar_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, q,
		p.PrincipalID, p.DisplayName, p.AvatarURL, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("storing profile: %w", err)
	}
	return nil
}

func (r *profileRepository) Find(ctx context.Context, principal string) (*models.Profile, error) {
	p := &models.Profile{}
	q := r.db.Rebind(`SELECT * FROM profiles WHERE principal_id = ?`)
	err := sqlx.GetContext(ctx, r.db, p, q, principal)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding profile: %w", err)
	}
	return p, nil
}

func (r *profileRepository) Update(ctx context.Context, p *models.Profile) (int64, error) {
	q := r.db.Rebind(`
		UPDATE profiles SET display_name = ?, avatar_url = ?, updated_at = ?
		WHERE principal_id = ?`)
	res, err := r.db.ExecContext(ctx, q, p.DisplayName, p.AvatarURL, p.UpdatedAt, p.PrincipalID)
	if err != nil {
		return 0, fmt.Errorf("updating profile: %w", err)
	}
	return res.RowsAffected()
}

func (r *profileRepository) Delete(ctx context.Context, principal string) (int64, error) {
	q := r.db.Rebind(`DELETE FROM profiles WHERE principal_id = ?`)
	res, err := r.db.ExecContext(ctx, q, principal)
	if err != nil {
		return 0, fmt.Errorf("deleting profile: %w", err)
	}
	return res.RowsAffected()
}
