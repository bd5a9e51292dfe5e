package services_test

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"listkeeper/internal/models"
	"listkeeper/internal/repositories"
	"listkeeper/internal/services"
	"listkeeper/internal/storage"
)

// env wires the full service stack over an in-memory sqlite store with all
// migrations applied. The store is closed when the test completes.
type env struct {
	db        *sqlx.DB
	lists     services.ListService
	tasks     services.TaskService
	tags      services.TagService
	reminders services.ReminderService
	profiles  services.ProfileService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db, err := storage.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})

	profileRepo := repositories.NewProfileRepository(db)
	listRepo := repositories.NewListRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	tagRepo := repositories.NewTagRepository(db)
	reminderRepo := repositories.NewReminderRepository(db)
	activityRepo := repositories.NewActivityRepository(db)

	return &env{
		db:        db,
		lists:     services.NewListService(db, listRepo, taskRepo, tagRepo, reminderRepo, activityRepo),
		tasks:     services.NewTaskService(db, taskRepo, listRepo, tagRepo, reminderRepo, activityRepo),
		tags:      services.NewTagService(db, tagRepo, taskRepo),
		reminders: services.NewReminderService(db, reminderRepo, taskRepo),
		profiles:  services.NewProfileService(db, profileRepo, listRepo, taskRepo, tagRepo, reminderRepo, activityRepo),
	}
}

// count runs a COUNT(*) query directly against the store.
func (e *env) count(t *testing.T, query string, args ...interface{}) int {
	t.Helper()
	var n int
	require.NoError(t, e.db.Get(&n, query, args...))
	return n
}

// mustList creates a list for the principal.
func (e *env) mustList(t *testing.T, principal, title string) *models.List {
	t.Helper()
	list, err := e.lists.Create(context.Background(), principal, models.CreateListInput{Title: title})
	require.NoError(t, err)
	return list
}

// mustTask creates a task in the given list.
func (e *env) mustTask(t *testing.T, principal, listID, title string) *models.Task {
	t.Helper()
	task, err := e.tasks.Create(context.Background(), principal, models.CreateTaskInput{
		ListID: listID,
		Title:  title,
	})
	require.NoError(t, err)
	return task
}
