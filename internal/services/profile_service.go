package services

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"listkeeper/internal/models"
	"listkeeper/internal/repositories"
)

// ProfileService manages the one profile row per principal. Purge is the
// hook for the external identity lifecycle: removing a principal takes the
// whole ownership chain with it.
type ProfileService interface {
	Ensure(ctx context.Context, principal string) (*models.Profile, error)
	Update(ctx context.Context, principal string, patch models.ProfilePatch) (*models.Profile, error)
	Purge(ctx context.Context, principal string) error
}

type profileService struct {
	db        *sqlx.DB
	profiles  repositories.ProfileRepository
	lists     repositories.ListRepository
	tasks     repositories.TaskRepository
	tags      repositories.TagRepository
	reminders repositories.ReminderRepository
	activity  repositories.ActivityRepository
}

// NewProfileService creates a new instance of ProfileService.
func NewProfileService(
	db *sqlx.DB,
	profiles repositories.ProfileRepository,
	lists repositories.ListRepository,
	tasks repositories.TaskRepository,
	tags repositories.TagRepository,
	reminders repositories.ReminderRepository,
	activity repositories.ActivityRepository,
) ProfileService {
	return &profileService{
		db: db, profiles: profiles, lists: lists, tasks: tasks,
		tags: tags, reminders: reminders, activity: activity,
	}
}

// Ensure returns the caller's profile, creating an empty one on first touch.
func (s *profileService) Ensure(ctx context.Context, principal string) (*models.Profile, error) {
	existing, err := s.profiles.Find(ctx, principal)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	now := time.Now().UTC()
	profile := &models.Profile{
		PrincipalID: principal,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.profiles.Store(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *profileService) Update(ctx context.Context, principal string, patch models.ProfilePatch) (*models.Profile, error) {
	current, err := s.Ensure(ctx, principal)
	if err != nil {
		return nil, err
	}

	merged := *current
	if err := patch.Apply(&merged); err != nil {
		return nil, err
	}
	merged.UpdatedAt = time.Now().UTC()

	if _, err := s.profiles.Update(ctx, &merged); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Purge deletes everything the principal owns, children before parents, in
// one transaction: tag assignments, tags, reminders, activity, tasks,
// lists, profile.
func (s *profileService) Purge(ctx context.Context, principal string) error {
	return inTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if err := s.tags.WithTx(tx).PurgeOwner(ctx, principal); err != nil {
			return err
		}
		if err := s.reminders.WithTx(tx).PurgeOwner(ctx, principal); err != nil {
			return err
		}
		if err := s.activity.WithTx(tx).PurgeOwner(ctx, principal); err != nil {
			return err
		}
		if err := s.tasks.WithTx(tx).PurgeOwner(ctx, principal); err != nil {
			return err
		}
		if err := s.lists.WithTx(tx).PurgeOwner(ctx, principal); err != nil {
			return err
		}
		_, err := s.profiles.WithTx(tx).Delete(ctx, principal)
		return err
	})
}
