package queries

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/tasklist"
)

// ListTaskListsHandler returns summaries of every saved list, by name.
type ListTaskListsHandler struct {
	lists tasklist.Repository
}

// NewListTaskListsHandler creates a new ListTaskListsHandler.
func NewListTaskListsHandler(lists tasklist.Repository) *ListTaskListsHandler {
	return &ListTaskListsHandler{lists: lists}
}

// Handle returns the summaries.
func (h *ListTaskListsHandler) Handle(ctx context.Context) ([]TaskListSummaryDTO, error) {
	if h.lists == nil {
		return nil, tasklist.ErrUnavailable
	}
	lists, err := h.lists.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list task lists: %w", err)
	}

	dtos := make([]TaskListSummaryDTO, 0, len(lists))
	for _, l := range lists {
		dtos = append(dtos, SummaryOf(l))
	}
	return dtos, nil
}
