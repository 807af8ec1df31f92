package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/taskrank/internal/ranking/application/commands"
	"github.com/felixgeelhaar/taskrank/internal/ranking/application/queries"
	"github.com/felixgeelhaar/taskrank/internal/ranking/application/services"
	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/task"
	"github.com/felixgeelhaar/taskrank/internal/ranking/infrastructure/validation"
)

type analyzeInput struct {
	Tasks    []map[string]any `json:"tasks,omitempty"`
	Strategy *string          `json:"strategy,omitempty"`
	List     string           `json:"list,omitempty"`
}

type suggestInput struct {
	Tasks    []map[string]any `json:"tasks,omitempty"`
	Strategy *string          `json:"strategy,omitempty"`
	Limit    int              `json:"limit,omitempty"`
	List     string           `json:"list,omitempty"`
}

type suggestOutput struct {
	Suggestions  []services.Suggestion `json:"suggestions"`
	StrategyUsed string                `json:"strategy_used"`
}

func registerRankingTools(srv *mcp.Server, deps ToolDependencies) {
	srv.Tool("tasks.analyze").
		Description("Score and rank tasks by priority. Pass tasks, or the name of a saved list.").
		Handler(func(ctx context.Context, input analyzeInput) (services.Ranking, error) {
			tasks, err := decodeTasks(deps.Validator, input.Tasks, input.List)
			if err != nil {
				return services.Ranking{}, err
			}
			result, err := deps.Analyze.Handle(ctx, commands.AnalyzeTasksCommand{
				Tasks:    tasks,
				Strategy: input.Strategy,
				ListName: input.List,
			})
			if err != nil {
				return services.Ranking{}, err
			}
			return result.Ranking, nil
		})

	srv.Tool("tasks.suggest").
		Description("Recommend the top tasks to work on next, with reasons.").
		Handler(func(ctx context.Context, input suggestInput) (suggestOutput, error) {
			tasks, err := decodeTasks(deps.Validator, input.Tasks, input.List)
			if err != nil {
				return suggestOutput{}, err
			}
			result, err := deps.Suggest.Handle(ctx, commands.SuggestTasksCommand{
				Tasks:    tasks,
				Strategy: input.Strategy,
				Limit:    input.Limit,
				ListName: input.List,
			})
			if err != nil {
				return suggestOutput{}, err
			}
			return suggestOutput{Suggestions: result.Suggestions, StrategyUsed: result.StrategyUsed}, nil
		})

	srv.Tool("tasks.strategies").
		Description("List the scoring strategies and the default one.").
		Handler(func(ctx context.Context, input struct{}) (queries.StrategiesDTO, error) {
			return deps.Strategies.Handle(ctx), nil
		})
}

// decodeTasks round-trips loosely typed tool input through the request
// schema. Required fields are left to the command handlers so that the
// missing-fields message names the task.
func decodeTasks(v *validation.Validator, raw []map[string]any, list string) ([]task.Task, error) {
	if list != "" {
		if len(raw) > 0 {
			return nil, errors.New("pass either tasks or list, not both")
		}
		return nil, nil
	}
	body, err := json.Marshal(map[string]any{"tasks": raw})
	if err != nil {
		return nil, fmt.Errorf("failed to encode tasks: %w", err)
	}
	req, err := v.Decode(validation.KindSuggest, body)
	if err != nil {
		return nil, err
	}
	return req.Tasks, nil
}
