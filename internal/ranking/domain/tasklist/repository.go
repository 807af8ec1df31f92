package tasklist

import "context"

// Repository persists task lists by name.
type Repository interface {
	// Save inserts the list, or replaces the tasks of the list with the same name.
	Save(ctx context.Context, list *TaskList) error
	FindByName(ctx context.Context, name string) (*TaskList, error)
	List(ctx context.Context) ([]*TaskList, error)
	Delete(ctx context.Context, name string) error
}
