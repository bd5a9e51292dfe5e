package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"listkeeper/internal/models"
)

func TestProfileEnsureCreatesOnce(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	first, err := e.profiles.Ensure(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "alice", first.PrincipalID)

	second, err := e.profiles.Ensure(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, first.PrincipalID, second.PrincipalID)
	require.Equal(t, 1, e.count(t, "SELECT COUNT(*) FROM profiles"))
}

func TestProfileUpdate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	updated, err := e.profiles.Update(ctx, "alice", models.ProfilePatch{
		DisplayName: models.Some("Alice"),
		AvatarURL:   models.Some("https://example.com/a.png"),
	})
	require.NoError(t, err)
	require.Equal(t, "Alice", updated.DisplayName)
	require.NotNil(t, updated.AvatarURL)

	updated, err = e.profiles.Update(ctx, "alice", models.ProfilePatch{
		AvatarURL: models.Null[string](),
	})
	require.NoError(t, err)
	require.Equal(t, "Alice", updated.DisplayName)
	require.Nil(t, updated.AvatarURL)

	_, err = e.profiles.Update(ctx, "alice", models.ProfilePatch{
		DisplayName: models.Null[string](),
	})
	require.ErrorIs(t, err, models.ErrNullField)
}

func TestProfilePurgeRemovesOwnershipChain(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.profiles.Ensure(ctx, "alice")
	require.NoError(t, err)

	list := e.mustList(t, "alice", "Inbox")
	task := e.mustTask(t, "alice", list.ID, "Buy milk")
	tag, err := e.tags.Create(ctx, "alice", models.CreateTagInput{Name: "errands"})
	require.NoError(t, err)
	require.NoError(t, e.tags.Assign(ctx, "alice", task.ID, tag.ID))
	_, err = e.reminders.Create(ctx, "alice", models.CreateReminderInput{
		TaskID: task.ID, FireAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	// A second principal's data must survive the purge.
	otherList := e.mustList(t, "bob", "Keep")
	e.mustTask(t, "bob", otherList.ID, "stays")

	require.NoError(t, e.profiles.Purge(ctx, "alice"))

	require.Zero(t, e.count(t, "SELECT COUNT(*) FROM profiles WHERE principal_id = ?", "alice"))
	for _, table := range []string{"lists", "tasks", "tags", "reminders", "activity"} {
		require.Zero(t, e.count(t, "SELECT COUNT(*) FROM "+table+" WHERE owner_id = ?", "alice"),
			"table %s still holds rows", table)
	}
	require.Equal(t, 0, e.count(t, "SELECT COUNT(*) FROM task_tags WHERE task_id = ?", task.ID))
	require.Equal(t, 1, e.count(t, "SELECT COUNT(*) FROM lists"))
	require.Equal(t, 1, e.count(t, "SELECT COUNT(*) FROM tasks"))
}
