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

// TaskService defines the task-related business logic, including the audit
// trail written alongside every task mutation.
type TaskService interface {
	Create(ctx context.Context, principal string, input models.CreateTaskInput) (*models.Task, error)
	GetByID(ctx context.Context, principal, id string) (*models.Task, error)
	GetAll(ctx context.Context, principal string, filter models.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, principal, id string, patch models.TaskPatch) (*models.Task, error)
	Move(ctx context.Context, principal, id string, lo, hi float64) (*models.Task, error)
	Delete(ctx context.Context, principal, id string) (int64, error)
	Activity(ctx context.Context, principal, taskID string) ([]models.Activity, error)
}

type taskService struct {
	db        *sqlx.DB
	tasks     repositories.TaskRepository
	lists     repositories.ListRepository
	tags      repositories.TagRepository
	reminders repositories.ReminderRepository
	activity  repositories.ActivityRepository
}

// NewTaskService creates a new instance of TaskService.
func NewTaskService(
	db *sqlx.DB,
	tasks repositories.TaskRepository,
	lists repositories.ListRepository,
	tags repositories.TagRepository,
	reminders repositories.ReminderRepository,
	activity repositories.ActivityRepository,
) TaskService {
	return &taskService{db: db, tasks: tasks, lists: lists, tags: tags, reminders: reminders, activity: activity}
}

func (s *taskService) Create(ctx context.Context, principal string, input models.CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", models.ErrInvalidInput)
	}

	priority := models.PriorityDefault
	if input.Priority != nil {
		priority = *input.Priority
	}
	if priority < models.PriorityHighest || priority > models.PriorityLowest {
		return nil, fmt.Errorf("%w: priority must be between %d and %d",
			models.ErrInvalidInput, models.PriorityHighest, models.PriorityLowest)
	}

	now := time.Now().UTC()
	task := &models.Task{
		ID:        uuid.New().String(),
		OwnerID:   principal,
		ListID:    input.ListID,
		Title:     input.Title,
		Notes:     input.Notes,
		Status:    models.StatusOpen,
		Priority:  priority,
		DueDate:   input.DueDate,
		DueTime:   input.DueTime,
		Important: input.Important,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := inTx(ctx, s.db, func(tx *sqlx.Tx) error {
		// The target list must belong to the caller; a foreign list id is
		// rejected before anything is written.
		list, err := s.lists.WithTx(tx).FindByID(ctx, principal, input.ListID)
		if err != nil {
			return err
		}
		if list == nil {
			return models.ErrListNotFound
		}

		tasks := s.tasks.WithTx(tx)
		if input.Rank != nil {
			task.Rank = *input.Rank
		} else {
			max, err := tasks.MaxRank(ctx, principal, input.ListID)
			if err != nil {
				return err
			}
			task.Rank = max + 1
		}

		if err := tasks.Store(ctx, task); err != nil {
			return err
		}
		return s.activity.WithTx(tx).Append(ctx, &models.Activity{
			TaskID:    task.ID,
			OwnerID:   principal,
			Action:    models.ActionCreate,
			After:     snapshotTask(task),
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) GetByID(ctx context.Context, principal, id string) (*models.Task, error) {
	return s.tasks.FindByID(ctx, principal, id)
}

func (s *taskService) GetAll(ctx context.Context, principal string, filter models.TaskFilter) ([]models.Task, error) {
	return s.tasks.FindAll(ctx, principal, filter)
}

func (s *taskService) Update(ctx context.Context, principal, id string, patch models.TaskPatch) (*models.Task, error) {
	var updated *models.Task
	err := inTx(ctx, s.db, func(tx *sqlx.Tx) error {
		tasks := s.tasks.WithTx(tx)

		current, err := tasks.FindByID(ctx, principal, id)
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
		if merged.ListID != current.ListID {
			list, err := s.lists.WithTx(tx).FindByID(ctx, principal, merged.ListID)
			if err != nil {
				return err
			}
			if list == nil {
				return models.ErrListNotFound
			}
		}
		// updated_at moves on every successful merge, changed fields or not.
		now := time.Now().UTC()
		merged.UpdatedAt = now

		count, err := tasks.Update(ctx, &merged)
		if err != nil {
			return err
		}
		if count == 0 {
			return nil
		}

		if err := s.auditUpdate(ctx, tx, current, &merged, now); err != nil {
			return err
		}
		updated = &merged
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Move places the task strictly between two sibling rank keys, rewriting
// only this one row.
func (s *taskService) Move(ctx context.Context, principal, id string, lo, hi float64) (*models.Task, error) {
	if hi <= lo {
		return nil, fmt.Errorf("%w: rank bounds must satisfy lo < hi", models.ErrInvalidInput)
	}
	return s.Update(ctx, principal, id, models.TaskPatch{Rank: models.Some(RankBetween(lo, hi))})
}

// Delete removes the task with its tag assignments, reminders and activity
// entries in one transaction. A missing or foreign id deletes nothing and
// reports zero rows.
func (s *taskService) Delete(ctx context.Context, principal, id string) (int64, error) {
	var count int64
	err := inTx(ctx, s.db, func(tx *sqlx.Tx) error {
		tasks := s.tasks.WithTx(tx)

		owned, err := tasks.OwnedExists(ctx, principal, id)
		if err != nil {
			return err
		}
		if !owned {
			return nil
		}

		ids := []string{id}
		if err := s.tags.WithTx(tx).DeleteAssignmentsForTasks(ctx, ids); err != nil {
			return err
		}
		if err := s.reminders.WithTx(tx).DeleteForTasks(ctx, ids); err != nil {
			return err
		}
		if err := s.activity.WithTx(tx).DeleteForTasks(ctx, ids); err != nil {
			return err
		}

		count, err = tasks.Delete(ctx, principal, id)
		return err
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *taskService) Activity(ctx context.Context, principal, taskID string) ([]models.Activity, error) {
	return s.activity.ForTask(ctx, principal, taskID)
}

// auditUpdate appends one entry per changed aspect. A status change emits
// exactly one action: complete when the task reached done, reopen when it
// left done, update_status otherwise.
func (s *taskService) auditUpdate(ctx context.Context, tx *sqlx.Tx, before, after *models.Task, now time.Time) error {
	var actions []models.ActivityAction

	if after.Status != before.Status {
		switch {
		case after.Status == models.StatusDone:
			actions = append(actions, models.ActionComplete)
		case before.Status == models.StatusDone:
			actions = append(actions, models.ActionReopen)
		default:
			actions = append(actions, models.ActionUpdateStatus)
		}
	}
	if after.Title != before.Title {
		actions = append(actions, models.ActionEditTitle)
	}
	if !eqStrPtr(after.DueDate, before.DueDate) || !eqStrPtr(after.DueTime, before.DueTime) {
		actions = append(actions, models.ActionUpdateDue)
	}
	if len(actions) == 0 {
		return nil
	}

	activity := s.activity.WithTx(tx)
	beforeSnap := snapshotTask(before)
	afterSnap := snapshotTask(after)
	for _, action := range actions {
		err := activity.Append(ctx, &models.Activity{
			TaskID:    after.ID,
			OwnerID:   after.OwnerID,
			Action:    action,
			Before:    beforeSnap,
			After:     afterSnap,
			CreatedAt: now,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// snapshotTask flattens the audited fields of a task into an opaque blob.
// The activity layer stores it verbatim and never looks inside.
func snapshotTask(t *models.Task) models.Snapshot {
	snap := models.Snapshot{
		"list_id":   t.ListID,
		"title":     t.Title,
		"status":    string(t.Status),
		"priority":  t.Priority,
		"important": t.Important,
		"rank":      t.Rank,
	}
	if t.Notes != nil {
		snap["notes"] = *t.Notes
	}
	if t.DueDate != nil {
		snap["due_date"] = *t.DueDate
	}
	if t.DueTime != nil {
		snap["due_time"] = *t.DueTime
	}
	if t.CompletedAt != nil {
		snap["completed_at"] = t.CompletedAt.Format(time.RFC3339)
	}
	return snap
}

func eqStrPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
