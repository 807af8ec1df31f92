// Package persistence stores task lists in SQLite or PostgreSQL.
package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/task"
	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/tasklist"
	"github.com/felixgeelhaar/taskrank/internal/shared/infrastructure/database"
)

// NewTaskListRepository returns the repository matching the connection's driver.
func NewTaskListRepository(conn database.Connection) (tasklist.Repository, error) {
	switch conn.Driver() {
	case database.DriverSQLite:
		return NewSQLiteTaskListRepository(conn), nil
	case database.DriverPostgres:
		return NewPostgresTaskListRepository(conn), nil
	}
	return nil, fmt.Errorf("unsupported database driver: %s", conn.Driver())
}

func encodeTasks(tasks []task.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []task.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tasks: %w", err)
	}
	return data, nil
}

func decodeTasks(data []byte) ([]task.Task, error) {
	var tasks []task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	return tasks, nil
}
