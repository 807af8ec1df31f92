package persistence

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/task"
	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/tasklist"
	"github.com/felixgeelhaar/taskrank/internal/shared/infrastructure/database"
	_ "github.com/felixgeelhaar/taskrank/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/taskrank/internal/shared/infrastructure/migrations"
)

func setupSQLite(t *testing.T) (database.Connection, tasklist.Repository) {
	t.Helper()
	ctx := context.Background()

	conn, err := database.Open(ctx, database.Config{
		Driver:     database.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "taskrank.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, migrations.Run(ctx, conn))

	repo, err := NewTaskListRepository(conn)
	require.NoError(t, err)
	return conn, repo
}

func sampleTasks() []task.Task {
	due := task.MustParseDate("2025-03-12")
	return []task.Task{
		{Title: "Write report", DueDate: &due, EstimatedHours: task.Int(3), Importance: task.Int(8)},
		{Title: "Review PR", Dependencies: []int{0}},
	}
}

func TestSQLiteTaskListRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	_, repo := setupSQLite(t)

	list, err := tasklist.New("sprint-12", sampleTasks())
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, list))

	found, err := repo.FindByName(ctx, "sprint-12")
	require.NoError(t, err)
	assert.Equal(t, list.ID(), found.ID())
	assert.Equal(t, "sprint-12", found.Name())
	require.Equal(t, 2, found.Len())
	assert.Equal(t, "Write report", found.Tasks()[0].Title)
	assert.Equal(t, "2025-03-12", found.Tasks()[0].DueDate.String())
	assert.Equal(t, []int{0}, found.Tasks()[1].Dependencies)
	assert.True(t, list.CreatedAt().Equal(found.CreatedAt()))
}

func TestSQLiteTaskListRepository_SaveReplacesByName(t *testing.T) {
	ctx := context.Background()
	_, repo := setupSQLite(t)

	first, err := tasklist.New("inbox", sampleTasks())
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, first))

	second, err := tasklist.New("inbox", []task.Task{{Title: "Only one"}})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, second))

	found, err := repo.FindByName(ctx, "inbox")
	require.NoError(t, err)
	assert.Equal(t, first.ID(), found.ID(), "existing row keeps its id")
	require.Equal(t, 1, found.Len())
	assert.Equal(t, "Only one", found.Tasks()[0].Title)

	lists, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, lists, 1)
}

func TestSQLiteTaskListRepository_ListOrdersByName(t *testing.T) {
	ctx := context.Background()
	_, repo := setupSQLite(t)

	for _, name := range []string{"zeta", "alpha", "mid"} {
		list, err := tasklist.New(name, nil)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, list))
	}

	lists, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, lists, 3)
	assert.Equal(t, "alpha", lists[0].Name())
	assert.Equal(t, "mid", lists[1].Name())
	assert.Equal(t, "zeta", lists[2].Name())
	assert.Empty(t, lists[0].Tasks())
}

func TestSQLiteTaskListRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	_, repo := setupSQLite(t)

	_, err := repo.FindByName(ctx, "missing")
	assert.ErrorIs(t, err, tasklist.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, "missing"), tasklist.ErrNotFound)
}

func TestSQLiteTaskListRepository_Delete(t *testing.T) {
	ctx := context.Background()
	_, repo := setupSQLite(t)

	list, err := tasklist.New("done", sampleTasks())
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, list))

	require.NoError(t, repo.Delete(ctx, "done"))

	_, err = repo.FindByName(ctx, "done")
	assert.ErrorIs(t, err, tasklist.ErrNotFound)
}
