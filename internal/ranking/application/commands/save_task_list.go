package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/task"
	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/tasklist"
	"github.com/felixgeelhaar/taskrank/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/taskrank/pkg/observability"
)

// SaveTaskListCommand stores tasks under a name, replacing any list of
// that name.
type SaveTaskListCommand struct {
	Name  string
	Tasks []task.Task
}

// SaveTaskListResult contains the stored list.
type SaveTaskListResult struct {
	List    *tasklist.TaskList
	Created bool
}

// TaskListSavedPayload is published under eventbus.RoutingKeyTaskListSaved.
type TaskListSavedPayload struct {
	Name      string `json:"name"`
	TaskCount int    `json:"task_count"`
	Created   bool   `json:"created"`
}

// SaveTaskListHandler handles the SaveTaskListCommand.
type SaveTaskListHandler struct {
	lists    tasklist.Repository
	notifier notifier
	opts     Options
}

// NewSaveTaskListHandler creates a new SaveTaskListHandler.
func NewSaveTaskListHandler(lists tasklist.Repository, publisher eventbus.Publisher, metrics observability.Metrics, logger *slog.Logger, opts Options) *SaveTaskListHandler {
	metrics, logger = defaults(metrics, logger)
	return &SaveTaskListHandler{
		lists:    lists,
		notifier: newNotifier(publisher, metrics, logger),
		opts:     opts,
	}
}

// Handle executes the SaveTaskListCommand.
func (h *SaveTaskListHandler) Handle(ctx context.Context, cmd SaveTaskListCommand) (*SaveTaskListResult, error) {
	if h.lists == nil {
		return nil, tasklist.ErrUnavailable
	}
	if err := tasklist.ValidateName(cmd.Name); err != nil {
		return nil, err
	}
	if err := h.opts.checkBatch(cmd.Tasks); err != nil {
		return nil, err
	}

	created := false
	list, err := h.lists.FindByName(ctx, cmd.Name)
	switch {
	case err == nil:
		list.Replace(cmd.Tasks)
	case errors.Is(err, tasklist.ErrNotFound):
		created = true
		list, err = tasklist.New(cmd.Name, cmd.Tasks)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := h.lists.Save(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to save task list %s: %w", cmd.Name, err)
	}

	h.notifier.publish(ctx, eventbus.RoutingKeyTaskListSaved, TaskListSavedPayload{
		Name:      list.Name(),
		TaskCount: list.Len(),
		Created:   created,
	})

	return &SaveTaskListResult{List: list, Created: created}, nil
}
