package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/tasklist"
	"github.com/felixgeelhaar/taskrank/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

// SQLiteTaskListRepository stores task lists in SQLite. Timestamps are
// RFC 3339 text and tasks a JSON array.
type SQLiteTaskListRepository struct {
	exec database.Executor
}

// NewSQLiteTaskListRepository creates a new SQLite task list repository.
func NewSQLiteTaskListRepository(exec database.Executor) *SQLiteTaskListRepository {
	return &SQLiteTaskListRepository{exec: exec}
}

// Save inserts the list or replaces the tasks of the list with the same name.
func (r *SQLiteTaskListRepository) Save(ctx context.Context, list *tasklist.TaskList) error {
	tasks, err := encodeTasks(list.Tasks())
	if err != nil {
		return err
	}

	query := `
		INSERT INTO task_lists (id, name, tasks, task_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			tasks = excluded.tasks,
			task_count = excluded.task_count,
			updated_at = excluded.updated_at
	`
	_, err = r.exec.Exec(ctx, query,
		list.ID().String(),
		list.Name(),
		string(tasks),
		list.Len(),
		list.CreatedAt().UTC().Format(time.RFC3339Nano),
		list.UpdatedAt().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to save task list: %w", err)
	}
	return nil
}

// FindByName returns the named list or tasklist.ErrNotFound.
func (r *SQLiteTaskListRepository) FindByName(ctx context.Context, name string) (*tasklist.TaskList, error) {
	query := `SELECT id, name, tasks, created_at, updated_at FROM task_lists WHERE name = ?`

	list, err := r.scan(r.exec.QueryRow(ctx, query, name))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, tasklist.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task list: %w", err)
	}
	return list, nil
}

// List returns every list ordered by name.
func (r *SQLiteTaskListRepository) List(ctx context.Context) ([]*tasklist.TaskList, error) {
	query := `SELECT id, name, tasks, created_at, updated_at FROM task_lists ORDER BY name`

	rows, err := r.exec.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list task lists: %w", err)
	}
	defer rows.Close()

	lists := []*tasklist.TaskList{}
	for rows.Next() {
		list, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task list: %w", err)
		}
		lists = append(lists, list)
	}
	return lists, rows.Err()
}

// Delete removes the named list or returns tasklist.ErrNotFound.
func (r *SQLiteTaskListRepository) Delete(ctx context.Context, name string) error {
	n, err := r.exec.Exec(ctx, `DELETE FROM task_lists WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete task list: %w", err)
	}
	if n == 0 {
		return tasklist.ErrNotFound
	}
	return nil
}

func (r *SQLiteTaskListRepository) scan(row database.Row) (*tasklist.TaskList, error) {
	var (
		id, name, tasksJSON  string
		createdAt, updatedAt string
	)
	if err := row.Scan(&id, &name, &tasksJSON, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	listID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid task list id %q: %w", id, err)
	}
	tasks, err := decodeTasks([]byte(tasksJSON))
	if err != nil {
		return nil, err
	}
	created, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at: %w", err)
	}
	updated, err := time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid updated_at: %w", err)
	}

	return tasklist.Rehydrate(listID, name, tasks, created, updated), nil
}
