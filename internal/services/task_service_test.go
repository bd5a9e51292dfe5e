package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"listkeeper/internal/models"
)

func TestTaskCreateDefaults(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	list := e.mustList(t, "alice", "Inbox")
	task := e.mustTask(t, "alice", list.ID, "Buy milk")

	require.Equal(t, "alice", task.OwnerID)
	require.Equal(t, models.StatusOpen, task.Status)
	require.Equal(t, models.PriorityDefault, task.Priority)
	require.Nil(t, task.CompletedAt)
	require.Equal(t, 1.0, task.Rank)

	got, err := e.tasks.GetByID(ctx, "alice", task.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "Buy milk", got.Title)
}

func TestTaskCreateForeignListRejected(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	list := e.mustList(t, "alice", "Inbox")

	_, err := e.tasks.Create(ctx, "bob", models.CreateTaskInput{ListID: list.ID, Title: "sneak"})
	require.ErrorIs(t, err, models.ErrListNotFound)
	require.Equal(t, 0, e.count(t, "SELECT COUNT(*) FROM tasks"))
}

func TestTaskCreateValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	list := e.mustList(t, "alice", "Inbox")

	_, err := e.tasks.Create(ctx, "alice", models.CreateTaskInput{ListID: list.ID, Title: "   "})
	require.ErrorIs(t, err, models.ErrInvalidInput)

	bad := 9
	_, err = e.tasks.Create(ctx, "alice", models.CreateTaskInput{ListID: list.ID, Title: "x", Priority: &bad})
	require.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestTaskOwnershipIsolation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	list := e.mustList(t, "alice", "Inbox")
	task := e.mustTask(t, "alice", list.ID, "secret")

	got, err := e.tasks.GetByID(ctx, "bob", task.ID)
	require.NoError(t, err)
	require.Nil(t, got)

	updated, err := e.tasks.Update(ctx, "bob", task.ID, models.TaskPatch{Title: models.Some("stolen")})
	require.NoError(t, err)
	require.Nil(t, updated)

	count, err := e.tasks.Delete(ctx, "bob", task.ID)
	require.NoError(t, err)
	require.Zero(t, count)

	// Alice's row is untouched.
	got, err = e.tasks.GetByID(ctx, "alice", task.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "secret", got.Title)
}

func TestTaskCompleteScenario(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	list := e.mustList(t, "alice", "Inbox")
	task := e.mustTask(t, "alice", list.ID, "Buy milk")

	updated, err := e.tasks.Update(ctx, "alice", task.ID, models.TaskPatch{
		Status: models.Some(models.StatusDone),
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	require.Equal(t, models.StatusDone, updated.Status)
	require.Equal(t, "Buy milk", updated.Title)
	require.Nil(t, updated.CompletedAt)

	entries, err := e.tasks.Activity(ctx, "alice", task.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, models.ActionCreate, entries[0].Action)
	require.Equal(t, models.ActionComplete, entries[1].Action)
	require.Equal(t, "done", entries[1].After["status"])
}

func TestTaskCompletedAtOnlyWhenSupplied(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	list := e.mustList(t, "alice", "Inbox")
	task := e.mustTask(t, "alice", list.ID, "Buy milk")

	done := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	updated, err := e.tasks.Update(ctx, "alice", task.ID, models.TaskPatch{
		Status:      models.Some(models.StatusDone),
		CompletedAt: models.Some(done),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)
	require.True(t, updated.CompletedAt.Equal(done))

	// Clearing works with an explicit null even while the status stays done.
	updated, err = e.tasks.Update(ctx, "alice", task.ID, models.TaskPatch{
		CompletedAt: models.Null[time.Time](),
	})
	require.NoError(t, err)
	require.Nil(t, updated.CompletedAt)
	require.Equal(t, models.StatusDone, updated.Status)
}

func TestTaskEmptyPatchTouchesOnlyUpdatedAt(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	list := e.mustList(t, "alice", "Inbox")
	task := e.mustTask(t, "alice", list.ID, "Buy milk")

	time.Sleep(20 * time.Millisecond)

	updated, err := e.tasks.Update(ctx, "alice", task.ID, models.TaskPatch{})
	require.NoError(t, err)
	require.NotNil(t, updated)
	require.Equal(t, task.Title, updated.Title)
	require.Equal(t, task.Status, updated.Status)
	require.Equal(t, task.Priority, updated.Priority)
	require.Equal(t, task.Rank, updated.Rank)
	require.True(t, updated.UpdatedAt.After(task.UpdatedAt))

	// No audit entry beyond the create.
	entries, err := e.tasks.Activity(ctx, "alice", task.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestTaskNullSemantics(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	list := e.mustList(t, "alice", "Inbox")
	notes := "remember the oat one"
	task, err := e.tasks.Create(ctx, "alice", models.CreateTaskInput{
		ListID: list.ID, Title: "Buy milk", Notes: &notes,
	})
	require.NoError(t, err)

	// Explicit null clears a nullable field.
	updated, err := e.tasks.Update(ctx, "alice", task.ID, models.TaskPatch{
		Notes: models.Null[string](),
	})
	require.NoError(t, err)
	require.Nil(t, updated.Notes)

	// Null on a non-nullable field is rejected and nothing changes.
	_, err = e.tasks.Update(ctx, "alice", task.ID, models.TaskPatch{
		Title: models.Null[string](),
	})
	require.ErrorIs(t, err, models.ErrNullField)

	got, err := e.tasks.GetByID(ctx, "alice", task.ID)
	require.NoError(t, err)
	require.Equal(t, "Buy milk", got.Title)
}

func TestTaskMoveToForeignListRejected(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	mine := e.mustList(t, "alice", "Inbox")
	theirs := e.mustList(t, "bob", "Work")
	task := e.mustTask(t, "alice", mine.ID, "Buy milk")

	_, err := e.tasks.Update(ctx, "alice", task.ID, models.TaskPatch{
		ListID: models.Some(theirs.ID),
	})
	require.ErrorIs(t, err, models.ErrListNotFound)

	got, err := e.tasks.GetByID(ctx, "alice", task.ID)
	require.NoError(t, err)
	require.Equal(t, mine.ID, got.ListID)
}

func TestTaskAuditTaxonomy(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	list := e.mustList(t, "alice", "Inbox")
	task := e.mustTask(t, "alice", list.ID, "Buy milk")

	steps := []struct {
		patch models.TaskPatch
		want  models.ActivityAction
	}{
		{models.TaskPatch{Status: models.Some(models.StatusInProgress)}, models.ActionUpdateStatus},
		{models.TaskPatch{Status: models.Some(models.StatusDone)}, models.ActionComplete},
		{models.TaskPatch{Status: models.Some(models.StatusOpen)}, models.ActionReopen},
		{models.TaskPatch{Title: models.Some("Buy oat milk")}, models.ActionEditTitle},
		{models.TaskPatch{DueDate: models.Some("2026-09-01")}, models.ActionUpdateDue},
		{models.TaskPatch{DueTime: models.Some("09:30")}, models.ActionUpdateDue},
	}
	for _, step := range steps {
		_, err := e.tasks.Update(ctx, "alice", task.ID, step.patch)
		require.NoError(t, err)
	}

	entries, err := e.tasks.Activity(ctx, "alice", task.ID)
	require.NoError(t, err)
	require.Len(t, entries, len(steps)+1)

	got := make([]models.ActivityAction, 0, len(steps))
	for _, entry := range entries[1:] {
		got = append(got, entry.Action)
	}
	want := make([]models.ActivityAction, 0, len(steps))
	for _, step := range steps {
		want = append(want, step.want)
	}
	require.Equal(t, want, got)

	// Ordered by seq, strictly increasing.
	for i := 1; i < len(entries); i++ {
		require.Greater(t, entries[i].Seq, entries[i-1].Seq)
	}
}

func TestTaskStatusAndTitleChangeEmitsTwoEntries(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	list := e.mustList(t, "alice", "Inbox")
	task := e.mustTask(t, "alice", list.ID, "Buy milk")

	_, err := e.tasks.Update(ctx, "alice", task.ID, models.TaskPatch{
		Status: models.Some(models.StatusDone),
		Title:  models.Some("Bought milk"),
	})
	require.NoError(t, err)

	entries, err := e.tasks.Activity(ctx, "alice", task.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, models.ActionComplete, entries[1].Action)
	require.Equal(t, models.ActionEditTitle, entries[2].Action)
}

func TestTaskDeleteCascades(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	list := e.mustList(t, "alice", "Inbox")
	task := e.mustTask(t, "alice", list.ID, "Buy milk")

	_, err := e.reminders.Create(ctx, "alice", models.CreateReminderInput{
		TaskID: task.ID, FireAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	tag, err := e.tags.Create(ctx, "alice", models.CreateTagInput{Name: "errands"})
	require.NoError(t, err)
	require.NoError(t, e.tags.Assign(ctx, "alice", task.ID, tag.ID))

	count, err := e.tasks.Delete(ctx, "alice", task.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	require.Equal(t, 0, e.count(t, "SELECT COUNT(*) FROM tasks"))
	require.Equal(t, 0, e.count(t, "SELECT COUNT(*) FROM reminders"))
	require.Equal(t, 0, e.count(t, "SELECT COUNT(*) FROM task_tags"))
	require.Equal(t, 0, e.count(t, "SELECT COUNT(*) FROM activity"))

	// The tag itself survives.
	require.Equal(t, 1, e.count(t, "SELECT COUNT(*) FROM tags"))
}

func TestTaskListFilter(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	inbox := e.mustList(t, "alice", "Inbox")
	work := e.mustList(t, "alice", "Work")
	e.mustTask(t, "alice", inbox.ID, "a")
	e.mustTask(t, "alice", work.ID, "b")
	e.mustTask(t, "alice", work.ID, "c")

	all, err := e.tasks.GetAll(ctx, "alice", models.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)

	scoped, err := e.tasks.GetAll(ctx, "alice", models.TaskFilter{ListID: &work.ID})
	require.NoError(t, err)
	require.Len(t, scoped, 2)

	none, err := e.tasks.GetAll(ctx, "bob", models.TaskFilter{})
	require.NoError(t, err)
	require.Empty(t, none)
}
