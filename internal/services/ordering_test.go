package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"listkeeper/internal/models"
	"listkeeper/internal/services"
)

func TestRankBetween(t *testing.T) {
	require.Equal(t, 1.5, services.RankBetween(1, 2))
	require.Equal(t, 0.75, services.RankBetween(0.5, 1))
	require.Equal(t, -0.5, services.RankBetween(-2, 1))
}

func TestTaskMoveRewritesSingleRow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	list := e.mustList(t, "alice", "Inbox")
	first := e.mustTask(t, "alice", list.ID, "first")
	second := e.mustTask(t, "alice", list.ID, "second")
	third := e.mustTask(t, "alice", list.ID, "third")

	require.Equal(t, []float64{1, 2, 3}, []float64{first.Rank, second.Rank, third.Rank})

	moved, err := e.tasks.Move(ctx, "alice", third.ID, first.Rank, second.Rank)
	require.NoError(t, err)
	require.Equal(t, 1.5, moved.Rank)

	tasks, err := e.tasks.GetAll(ctx, "alice", models.TaskFilter{ListID: &list.ID})
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	require.Equal(t,
		[]string{first.ID, third.ID, second.ID},
		[]string{tasks[0].ID, tasks[1].ID, tasks[2].ID})

	// Neighbours keep their keys.
	require.Equal(t, 1.0, tasks[0].Rank)
	require.Equal(t, 2.0, tasks[2].Rank)
}

func TestTaskMoveValidatesBounds(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	list := e.mustList(t, "alice", "Inbox")
	task := e.mustTask(t, "alice", list.ID, "only")

	_, err := e.tasks.Move(ctx, "alice", task.ID, 2, 2)
	require.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = e.tasks.Move(ctx, "alice", task.ID, 3, 1)
	require.ErrorIs(t, err, models.ErrInvalidInput)

	// Moving a foreign task changes nothing and returns no row.
	moved, err := e.tasks.Move(ctx, "bob", task.ID, 0, 1)
	require.NoError(t, err)
	require.Nil(t, moved)
}

func TestTaskDefaultRankScopedToList(t *testing.T) {
	e := newEnv(t)

	inbox := e.mustList(t, "alice", "Inbox")
	work := e.mustList(t, "alice", "Work")

	a := e.mustTask(t, "alice", inbox.ID, "a")
	b := e.mustTask(t, "alice", inbox.ID, "b")
	c := e.mustTask(t, "alice", work.ID, "c")

	require.Equal(t, 1.0, a.Rank)
	require.Equal(t, 2.0, b.Rank)
	require.Equal(t, 1.0, c.Rank)
}
