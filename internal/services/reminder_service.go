package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"listkeeper/internal/models"
	"listkeeper/internal/repositories"
)

// ReminderService records that a task should fire at some point. Delivery
// itself belongs to an external collaborator, which reports back through
// MarkDelivered exactly once.
type ReminderService interface {
	Create(ctx context.Context, principal string, input models.CreateReminderInput) (*models.Reminder, error)
	GetAll(ctx context.Context, principal string) ([]models.Reminder, error)
	Delete(ctx context.Context, principal, id string) (int64, error)
	MarkDelivered(ctx context.Context, principal, id string) (int64, error)
}

type reminderService struct {
	db        *sqlx.DB
	reminders repositories.ReminderRepository
	tasks     repositories.TaskRepository
}

// NewReminderService creates a new instance of ReminderService.
func NewReminderService(db *sqlx.DB, reminders repositories.ReminderRepository, tasks repositories.TaskRepository) ReminderService {
	return &reminderService{db: db, reminders: reminders, tasks: tasks}
}

func (s *reminderService) Create(ctx context.Context, principal string, input models.CreateReminderInput) (*models.Reminder, error) {
	rem := &models.Reminder{
		ID:        uuid.New().String(),
		OwnerID:   principal,
		TaskID:    input.TaskID,
		FireAt:    input.FireAt.UTC(),
		CreatedAt: time.Now().UTC(),
	}

	err := inTx(ctx, s.db, func(tx *sqlx.Tx) error {
		owned, err := s.tasks.WithTx(tx).OwnedExists(ctx, principal, input.TaskID)
		if err != nil {
			return err
		}
		if !owned {
			return models.ErrTaskNotFound
		}
		return s.reminders.WithTx(tx).Store(ctx, rem)
	})
	if err != nil {
		return nil, err
	}
	return rem, nil
}

func (s *reminderService) GetAll(ctx context.Context, principal string) ([]models.Reminder, error) {
	return s.reminders.FindAll(ctx, principal)
}

func (s *reminderService) Delete(ctx context.Context, principal, id string) (int64, error) {
	return s.reminders.Delete(ctx, principal, id)
}

func (s *reminderService) MarkDelivered(ctx context.Context, principal, id string) (int64, error) {
	return s.reminders.MarkDelivered(ctx, principal, id)
}
