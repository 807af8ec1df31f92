package mcp

import (
	"context"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/taskrank/internal/ranking/application/commands"
	"github.com/felixgeelhaar/taskrank/internal/ranking/application/queries"
	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/tasklist"
)

type saveListInput struct {
	Name  string           `json:"name" jsonschema:"required"`
	Tasks []map[string]any `json:"tasks" jsonschema:"required"`
}

type getListInput struct {
	Name string `json:"name" jsonschema:"required"`
}

type listsOutput struct {
	Lists []queries.TaskListSummaryDTO `json:"lists"`
}

func registerListTools(srv *mcp.Server, deps ToolDependencies) {
	srv.Tool("lists.save").
		Description("Save a named task list, replacing any list with the same name.").
		Handler(func(ctx context.Context, input saveListInput) (queries.TaskListDTO, error) {
			if deps.SaveList == nil {
				return queries.TaskListDTO{}, tasklist.ErrUnavailable
			}
			tasks, err := decodeTasks(deps.Validator, input.Tasks, "")
			if err != nil {
				return queries.TaskListDTO{}, err
			}
			result, err := deps.SaveList.Handle(ctx, commands.SaveTaskListCommand{Name: input.Name, Tasks: tasks})
			if err != nil {
				return queries.TaskListDTO{}, err
			}
			return queries.TaskListOf(result.List), nil
		})

	srv.Tool("lists.get").
		Description("Get a saved task list by name.").
		Handler(func(ctx context.Context, input getListInput) (*queries.TaskListDTO, error) {
			if deps.GetList == nil {
				return nil, tasklist.ErrUnavailable
			}
			return deps.GetList.Handle(ctx, queries.GetTaskListQuery{Name: input.Name})
		})

	srv.Tool("lists.list").
		Description("List saved task lists.").
		Handler(func(ctx context.Context, input struct{}) (listsOutput, error) {
			if deps.ListLists == nil {
				return listsOutput{}, tasklist.ErrUnavailable
			}
			lists, err := deps.ListLists.Handle(ctx)
			if err != nil {
				return listsOutput{}, err
			}
			return listsOutput{Lists: lists}, nil
		})
}
