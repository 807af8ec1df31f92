package commands

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoTasks is returned when an analyze request carries no tasks.
	ErrNoTasks = errors.New("no tasks provided")
	// ErrBatchTooLarge is returned when a request exceeds Options.MaxBatchSize.
	ErrBatchTooLarge = errors.New("too many tasks")
	// ErrUnknownStrategy is returned in strict mode for unrecognized strategies.
	ErrUnknownStrategy = errors.New("unknown strategy")
)

// MissingFieldsError rejects a batch in which a task lacks a required field.
type MissingFieldsError struct {
	Index  int
	Title  string
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("Missing required fields in task: %s", e.Title)
}

// Detail lists the missing fields and the task position.
func (e *MissingFieldsError) Detail() string {
	return fmt.Sprintf("task %d (%s) is missing %s", e.Index, e.Title, strings.Join(e.Fields, ", "))
}
