package commands

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/tasklist"
	"github.com/felixgeelhaar/taskrank/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/taskrank/pkg/observability"
)

// DeleteTaskListCommand removes a saved list.
type DeleteTaskListCommand struct {
	Name string
}

// TaskListDeletedPayload is published under eventbus.RoutingKeyTaskListDeleted.
type TaskListDeletedPayload struct {
	Name string `json:"name"`
}

// DeleteTaskListHandler handles the DeleteTaskListCommand.
type DeleteTaskListHandler struct {
	lists    tasklist.Repository
	notifier notifier
}

// NewDeleteTaskListHandler creates a new DeleteTaskListHandler.
func NewDeleteTaskListHandler(lists tasklist.Repository, publisher eventbus.Publisher, metrics observability.Metrics, logger *slog.Logger) *DeleteTaskListHandler {
	metrics, logger = defaults(metrics, logger)
	return &DeleteTaskListHandler{
		lists:    lists,
		notifier: newNotifier(publisher, metrics, logger),
	}
}

// Handle executes the DeleteTaskListCommand. Deleting an unknown list
// returns tasklist.ErrNotFound.
func (h *DeleteTaskListHandler) Handle(ctx context.Context, cmd DeleteTaskListCommand) error {
	if h.lists == nil {
		return tasklist.ErrUnavailable
	}
	if err := h.lists.Delete(ctx, cmd.Name); err != nil {
		return err
	}
	h.notifier.publish(ctx, eventbus.RoutingKeyTaskListDeleted, TaskListDeletedPayload{Name: cmd.Name})
	return nil
}
