package migrations_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/taskrank/internal/shared/infrastructure/database"
	_ "github.com/felixgeelhaar/taskrank/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/taskrank/internal/shared/infrastructure/migrations"
)

func TestFiles(t *testing.T) {
	files, err := migrations.Files(database.DriverPostgres)
	require.NoError(t, err)
	assert.Equal(t, []string{"postgres/001_task_lists.up.sql"}, files)

	_, err = migrations.Files("mysql")
	assert.Error(t, err)
}

func TestRun_SQLiteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	conn, err := database.Open(ctx, database.Config{
		Driver:     database.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "taskrank.db"),
	})
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, migrations.Run(ctx, conn))
	require.NoError(t, migrations.Run(ctx, conn))

	var count int
	require.NoError(t, conn.QueryRow(ctx, `SELECT COUNT(*) FROM task_lists`).Scan(&count))
	assert.Equal(t, 0, count)
}
