// Package mcp exposes taskrank as Model Context Protocol tools.
package mcp

import (
	"errors"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/taskrank/internal/app"
	"github.com/felixgeelhaar/taskrank/internal/ranking/application/commands"
	"github.com/felixgeelhaar/taskrank/internal/ranking/application/queries"
	"github.com/felixgeelhaar/taskrank/internal/ranking/infrastructure/validation"
)

// ToolDependencies provides the handlers behind the MCP tools. The list
// handlers may be nil when no store is configured.
type ToolDependencies struct {
	Validator  *validation.Validator
	Analyze    *commands.AnalyzeTasksHandler
	Suggest    *commands.SuggestTasksHandler
	SaveList   *commands.SaveTaskListHandler
	GetList    *queries.GetTaskListHandler
	ListLists  *queries.ListTaskListsHandler
	Strategies *queries.ListStrategiesHandler
}

// DependenciesFrom takes the handlers out of a container.
func DependenciesFrom(c *app.Container) ToolDependencies {
	return ToolDependencies{
		Validator:  c.Validator,
		Analyze:    c.AnalyzeTasksHandler,
		Suggest:    c.SuggestTasksHandler,
		SaveList:   c.SaveTaskListHandler,
		GetList:    c.GetTaskListHandler,
		ListLists:  c.ListTaskListsHandler,
		Strategies: c.ListStrategiesHandler,
	}
}

// RegisterTools registers the ranking and task-list tools.
func RegisterTools(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return errors.New("server is required")
	}
	if deps.Validator == nil || deps.Analyze == nil || deps.Suggest == nil || deps.Strategies == nil {
		return errors.New("ranking handlers are required")
	}

	registerRankingTools(srv, deps)
	registerListTools(srv, deps)
	return nil
}
