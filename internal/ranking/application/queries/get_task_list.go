package queries

import (
	"context"

	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/tasklist"
)

// GetTaskListQuery looks up a saved list by name.
type GetTaskListQuery struct {
	Name string
}

// GetTaskListHandler handles the GetTaskListQuery.
type GetTaskListHandler struct {
	lists tasklist.Repository
}

// NewGetTaskListHandler creates a new GetTaskListHandler.
func NewGetTaskListHandler(lists tasklist.Repository) *GetTaskListHandler {
	return &GetTaskListHandler{lists: lists}
}

// Handle executes the GetTaskListQuery.
func (h *GetTaskListHandler) Handle(ctx context.Context, query GetTaskListQuery) (*TaskListDTO, error) {
	if h.lists == nil {
		return nil, tasklist.ErrUnavailable
	}
	l, err := h.lists.FindByName(ctx, query.Name)
	if err != nil {
		return nil, err
	}
	dto := TaskListOf(l)
	return &dto, nil
}
