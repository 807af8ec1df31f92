package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/tasklist"
	"github.com/felixgeelhaar/taskrank/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

// PostgresTaskListRepository stores task lists in PostgreSQL with tasks as JSONB.
type PostgresTaskListRepository struct {
	exec database.Executor
}

// NewPostgresTaskListRepository creates a new PostgreSQL task list repository.
func NewPostgresTaskListRepository(exec database.Executor) *PostgresTaskListRepository {
	return &PostgresTaskListRepository{exec: exec}
}

// Save inserts the list or replaces the tasks of the list with the same name.
func (r *PostgresTaskListRepository) Save(ctx context.Context, list *tasklist.TaskList) error {
	tasks, err := encodeTasks(list.Tasks())
	if err != nil {
		return err
	}

	query := `
		INSERT INTO task_lists (id, name, tasks, task_count, created_at, updated_at)
		VALUES ($1, $2, $3::jsonb, $4, $5, $6)
		ON CONFLICT (name) DO UPDATE SET
			tasks = EXCLUDED.tasks,
			task_count = EXCLUDED.task_count,
			updated_at = EXCLUDED.updated_at
	`
	_, err = r.exec.Exec(ctx, query,
		list.ID(),
		list.Name(),
		string(tasks),
		list.Len(),
		list.CreatedAt(),
		list.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to save task list: %w", err)
	}
	return nil
}

// FindByName returns the named list or tasklist.ErrNotFound.
func (r *PostgresTaskListRepository) FindByName(ctx context.Context, name string) (*tasklist.TaskList, error) {
	query := `SELECT id, name, tasks, created_at, updated_at FROM task_lists WHERE name = $1`

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
func (r *PostgresTaskListRepository) List(ctx context.Context) ([]*tasklist.TaskList, error) {
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
func (r *PostgresTaskListRepository) Delete(ctx context.Context, name string) error {
	n, err := r.exec.Exec(ctx, `DELETE FROM task_lists WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("failed to delete task list: %w", err)
	}
	if n == 0 {
		return tasklist.ErrNotFound
	}
	return nil
}

func (r *PostgresTaskListRepository) scan(row database.Row) (*tasklist.TaskList, error) {
	var (
		id                   uuid.UUID
		name                 string
		tasksJSON            []byte
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &name, &tasksJSON, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	tasks, err := decodeTasks(tasksJSON)
	if err != nil {
		return nil, err
	}
	return tasklist.Rehydrate(id, name, tasks, createdAt, updatedAt), nil
}
