package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"listkeeper/internal/models"
	"listkeeper/internal/repositories"
)

// TagService defines tag CRUD plus the task<->tag relation. Creating a tag
// is a get-or-create-and-update: a duplicate name merges into the existing
// row. Assign and unassign are idempotent and re-verify ownership on every
// call.
type TagService interface {
	Create(ctx context.Context, principal string, input models.CreateTagInput) (*models.Tag, error)
	GetAll(ctx context.Context, principal string) ([]models.Tag, error)
	Update(ctx context.Context, principal, id string, patch models.TagPatch) (*models.Tag, error)
	Delete(ctx context.Context, principal, id string) (int64, error)

	Assign(ctx context.Context, principal, taskID, tagID string) error
	Unassign(ctx context.Context, principal, taskID, tagID string) error
	TagsForTask(ctx context.Context, principal, taskID string) ([]models.Tag, error)
}

type tagService struct {
	db    *sqlx.DB
	tags  repositories.TagRepository
	tasks repositories.TaskRepository
}

// NewTagService creates a new instance of TagService.
func NewTagService(db *sqlx.DB, tags repositories.TagRepository, tasks repositories.TaskRepository) TagService {
	return &tagService{db: db, tags: tags, tasks: tasks}
}

func (s *tagService) Create(ctx context.Context, principal string, input models.CreateTagInput) (*models.Tag, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: tag name must not be empty", models.ErrInvalidInput)
	}

	var tag *models.Tag
	err := inTx(ctx, s.db, func(tx *sqlx.Tx) error {
		tags := s.tags.WithTx(tx)

		existing, err := tags.FindByName(ctx, principal, input.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			// Merge, not error: the second create wins the color.
			if input.Color != nil {
				existing.Color = input.Color
				existing.UpdatedAt = time.Now().UTC()
				if _, err := tags.Update(ctx, existing); err != nil {
					return err
				}
			}
			tag = existing
			return nil
		}

		now := time.Now().UTC()
		tag = &models.Tag{
			ID:        uuid.New().String(),
			OwnerID:   principal,
			Name:      input.Name,
			Color:     input.Color,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return tags.Store(ctx, tag)
	})
	if err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *tagService) GetAll(ctx context.Context, principal string) ([]models.Tag, error) {
	return s.tags.FindAll(ctx, principal)
}

func (s *tagService) Update(ctx context.Context, principal, id string, patch models.TagPatch) (*models.Tag, error) {
	var updated *models.Tag
	err := inTx(ctx, s.db, func(tx *sqlx.Tx) error {
		tags := s.tags.WithTx(tx)

		current, err := tags.FindByID(ctx, principal, id)
		if err != nil {
			return err
		}
		if current == nil {
			return nil
		}

		merged := *current
		if err := patch.Apply(&merged); err != nil {
			return err
		}
		merged.UpdatedAt = time.Now().UTC()

		count, err := tags.Update(ctx, &merged)
		if err != nil {
			return err
		}
		if count == 0 {
			return nil
		}
		updated = &merged
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the tag and its task assignments in one transaction.
func (s *tagService) Delete(ctx context.Context, principal, id string) (int64, error) {
	var count int64
	err := inTx(ctx, s.db, func(tx *sqlx.Tx) error {
		tags := s.tags.WithTx(tx)

		current, err := tags.FindByID(ctx, principal, id)
		if err != nil {
			return err
		}
		if current == nil {
			return nil
		}
		if err := tags.DeleteAssignmentsForTag(ctx, id); err != nil {
			return err
		}
		count, err = tags.Delete(ctx, principal, id)
		return err
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Assign links the tag to the task. Both rows must belong to the caller;
// ownership is checked on every call, never cached. A pair that already
// exists is a silent no-op.
func (s *tagService) Assign(ctx context.Context, principal, taskID, tagID string) error {
	return inTx(ctx, s.db, func(tx *sqlx.Tx) error {
		owned, err := s.tasks.WithTx(tx).OwnedExists(ctx, principal, taskID)
		if err != nil {
			return err
		}
		if !owned {
			return models.ErrTaskNotFound
		}

		tags := s.tags.WithTx(tx)
		tag, err := tags.FindByID(ctx, principal, tagID)
		if err != nil {
			return err
		}
		if tag == nil {
			return models.ErrTagNotFound
		}

		exists, err := tags.AssignmentExists(ctx, taskID, tagID)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}
		return tags.Assign(ctx, taskID, tagID)
	})
}

// Unassign removes the pair when the task belongs to the caller. A missing
// pair, and a task that is not the caller's, both end as silent no-ops.
func (s *tagService) Unassign(ctx context.Context, principal, taskID, tagID string) error {
	return inTx(ctx, s.db, func(tx *sqlx.Tx) error {
		owned, err := s.tasks.WithTx(tx).OwnedExists(ctx, principal, taskID)
		if err != nil {
			return err
		}
		if !owned {
			return nil
		}
		_, err = s.tags.WithTx(tx).Unassign(ctx, taskID, tagID)
		return err
	})
}

func (s *tagService) TagsForTask(ctx context.Context, principal, taskID string) ([]models.Tag, error) {
	return s.tags.TagsForTask(ctx, principal, taskID)
}
