package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"listkeeper/internal/models"
)

func TestReminderCreateRequiresOwnedTask(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	list := e.mustList(t, "alice", "Inbox")
	task := e.mustTask(t, "alice", list.ID, "Buy milk")

	_, err := e.reminders.Create(ctx, "bob", models.CreateReminderInput{
		TaskID: task.ID, FireAt: time.Now().Add(time.Hour),
	})
	require.ErrorIs(t, err, models.ErrTaskNotFound)

	fireAt := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	rem, err := e.reminders.Create(ctx, "alice", models.CreateReminderInput{
		TaskID: task.ID, FireAt: fireAt,
	})
	require.NoError(t, err)
	require.False(t, rem.Delivered)
	require.True(t, rem.FireAt.Equal(fireAt))
}

func TestReminderListOrderedByFireTime(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	list := e.mustList(t, "alice", "Inbox")
	task := e.mustTask(t, "alice", list.ID, "Buy milk")

	base := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	for _, offset := range []time.Duration{2 * time.Hour, 0, time.Hour} {
		_, err := e.reminders.Create(ctx, "alice", models.CreateReminderInput{
			TaskID: task.ID, FireAt: base.Add(offset),
		})
		require.NoError(t, err)
	}

	all, err := e.reminders.GetAll(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i := 1; i < len(all); i++ {
		require.False(t, all[i].FireAt.Before(all[i-1].FireAt))
	}

	none, err := e.reminders.GetAll(ctx, "bob")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestReminderMarkDeliveredWriteOnce(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	list := e.mustList(t, "alice", "Inbox")
	task := e.mustTask(t, "alice", list.ID, "Buy milk")
	rem, err := e.reminders.Create(ctx, "alice", models.CreateReminderInput{
		TaskID: task.ID, FireAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	// Foreign callers cannot flip it.
	count, err := e.reminders.MarkDelivered(ctx, "bob", rem.ID)
	require.NoError(t, err)
	require.Zero(t, count)

	count, err = e.reminders.MarkDelivered(ctx, "alice", rem.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	// Second report is a no-op.
	count, err = e.reminders.MarkDelivered(ctx, "alice", rem.ID)
	require.NoError(t, err)
	require.Zero(t, count)

	all, err := e.reminders.GetAll(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.True(t, all[0].Delivered)
}

func TestReminderDelete(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	list := e.mustList(t, "alice", "Inbox")
	task := e.mustTask(t, "alice", list.ID, "Buy milk")
	rem, err := e.reminders.Create(ctx, "alice", models.CreateReminderInput{
		TaskID: task.ID, FireAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	count, err := e.reminders.Delete(ctx, "bob", rem.ID)
	require.NoError(t, err)
	require.Zero(t, count)

	count, err = e.reminders.Delete(ctx, "alice", rem.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
	require.Equal(t, 0, e.count(t, "SELECT COUNT(*) FROM reminders"))
}
