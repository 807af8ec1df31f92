// Package tasklist defines named, saved batches of tasks.
package tasklist

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/task"
	"github.com/google/uuid"
)

const MaxNameLength = 100

var (
	ErrNotFound    = errors.New("task list not found")
	ErrInvalidName = errors.New("invalid task list name")
	// ErrUnavailable is returned when no task list store is configured.
	ErrUnavailable = errors.New("task list store unavailable")
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// ValidateName checks that name is 1 to MaxNameLength characters of
// letters, digits, '_', '.' or '-'.
func ValidateName(name string) error {
	if name == "" || len(name) > MaxNameLength || !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// TaskList is a named batch of tasks kept for later ranking.
type TaskList struct {
	id        uuid.UUID
	name      string
	tasks     []task.Task
	createdAt time.Time
	updatedAt time.Time
}

// New creates a task list.
func New(name string, tasks []task.Task) (*TaskList, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &TaskList{
		id:        uuid.New(),
		name:      name,
		tasks:     tasks,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Rehydrate recreates a task list from persisted state.
func Rehydrate(id uuid.UUID, name string, tasks []task.Task, createdAt, updatedAt time.Time) *TaskList {
	return &TaskList{
		id:        id,
		name:      name,
		tasks:     tasks,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (l *TaskList) ID() uuid.UUID        { return l.id }
func (l *TaskList) Name() string         { return l.name }
func (l *TaskList) Tasks() []task.Task   { return l.tasks }
func (l *TaskList) Len() int             { return len(l.tasks) }
func (l *TaskList) CreatedAt() time.Time { return l.createdAt }
func (l *TaskList) UpdatedAt() time.Time { return l.updatedAt }

// Replace swaps the tasks of the list.
func (l *TaskList) Replace(tasks []task.Task) {
	l.tasks = tasks
	l.updatedAt = time.Now().UTC()
}
