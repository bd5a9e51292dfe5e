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

// ListService defines the list-related business logic. Every call takes the
// verified principal; list rows of other principals are invisible to it.
type ListService interface {
	Create(ctx context.Context, principal string, input models.CreateListInput) (*models.List, error)
	GetByID(ctx context.Context, principal, id string) (*models.List, error)
	GetAll(ctx context.Context, principal string, includeArchived bool) ([]models.List, error)
	Update(ctx context.Context, principal, id string, patch models.ListPatch) (*models.List, error)
	Delete(ctx context.Context, principal, id string) (int64, error)
}

type listService struct {
	db        *sqlx.DB
	lists     repositories.ListRepository
	tasks     repositories.TaskRepository
	tags      repositories.TagRepository
	reminders repositories.ReminderRepository
	activity  repositories.ActivityRepository
}

// NewListService creates a new instance of ListService.
func NewListService(
	db *sqlx.DB,
	lists repositories.ListRepository,
	tasks repositories.TaskRepository,
	tags repositories.TagRepository,
	reminders repositories.ReminderRepository,
	activity repositories.ActivityRepository,
) ListService {
	return &listService{db: db, lists: lists, tasks: tasks, tags: tags, reminders: reminders, activity: activity}
}

func (s *listService) Create(ctx context.Context, principal string, input models.CreateListInput) (*models.List, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", models.ErrInvalidInput)
	}

	now := time.Now().UTC()
	list := &models.List{
		ID:        uuid.New().String(),
		OwnerID:   principal,
		Title:     input.Title,
		Color:     input.Color,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := inTx(ctx, s.db, func(tx *sqlx.Tx) error {
		lists := s.lists.WithTx(tx)
		if input.Rank != nil {
			list.Rank = *input.Rank
		} else {
			max, err := lists.MaxRank(ctx, principal)
			if err != nil {
				return err
			}
			list.Rank = max + 1
		}
		return lists.Store(ctx, list)
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (s *listService) GetByID(ctx context.Context, principal, id string) (*models.List, error) {
	return s.lists.FindByID(ctx, principal, id)
}

func (s *listService) GetAll(ctx context.Context, principal string, includeArchived bool) ([]models.List, error) {
	return s.lists.FindAll(ctx, principal, includeArchived)
}

func (s *listService) Update(ctx context.Context, principal, id string, patch models.ListPatch) (*models.List, error) {
	var updated *models.List
	err := inTx(ctx, s.db, func(tx *sqlx.Tx) error {
		lists := s.lists.WithTx(tx)

		current, err := lists.FindByID(ctx, principal, id)
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

		count, err := lists.Update(ctx, &merged)
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

// Delete removes the list and fans out to its tasks: each task's tag
// assignments, reminders and activity entries go first, then the tasks,
// then the list itself. All inside one transaction.
func (s *listService) Delete(ctx context.Context, principal, id string) (int64, error) {
	var count int64
	err := inTx(ctx, s.db, func(tx *sqlx.Tx) error {
		tasks := s.tasks.WithTx(tx)

		taskIDs, err := tasks.IDsByList(ctx, principal, id)
		if err != nil {
			return err
		}
		if err := s.tags.WithTx(tx).DeleteAssignmentsForTasks(ctx, taskIDs); err != nil {
			return err
		}
		if err := s.reminders.WithTx(tx).DeleteForTasks(ctx, taskIDs); err != nil {
			return err
		}
		if err := s.activity.WithTx(tx).DeleteForTasks(ctx, taskIDs); err != nil {
			return err
		}
		if _, err := tasks.DeleteByList(ctx, principal, id); err != nil {
			return err
		}

		count, err = s.lists.WithTx(tx).Delete(ctx, principal, id)
		return err
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
