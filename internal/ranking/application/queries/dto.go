package queries

import (
	"time"

	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/task"
	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/tasklist"
	"github.com/google/uuid"
)

// TaskListSummaryDTO describes a saved list without its tasks.
type TaskListSummaryDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	TaskCount int       `json:"task_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaskListDTO is a saved list with its tasks.
type TaskListDTO struct {
	TaskListSummaryDTO
	Tasks []task.Task `json:"tasks"`
}

// SummaryOf converts a list to its summary.
func SummaryOf(l *tasklist.TaskList) TaskListSummaryDTO {
	return TaskListSummaryDTO{
		ID:        l.ID(),
		Name:      l.Name(),
		TaskCount: l.Len(),
		CreatedAt: l.CreatedAt(),
		UpdatedAt: l.UpdatedAt(),
	}
}

// TaskListOf converts a list to its full DTO.
func TaskListOf(l *tasklist.TaskList) TaskListDTO {
	tasks := l.Tasks()
	if tasks == nil {
		tasks = []task.Task{}
	}
	return TaskListDTO{TaskListSummaryDTO: SummaryOf(l), Tasks: tasks}
}
