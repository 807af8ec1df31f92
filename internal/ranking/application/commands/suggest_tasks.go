package commands

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/taskrank/internal/ranking/application/services"
	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/task"
	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/tasklist"
	"github.com/felixgeelhaar/taskrank/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/taskrank/pkg/observability"
)

// SuggestTasksCommand asks for the best tasks of a batch. A Limit below 1
// means Options.SuggestLimit.
type SuggestTasksCommand struct {
	Tasks    []task.Task
	Strategy *string
	Limit    int
	ListName string
}

// SuggestTasksResult contains the suggestions, best first.
type SuggestTasksResult struct {
	Suggestions  []services.Suggestion
	StrategyUsed string
}

// SuggestionsGeneratedPayload is published under
// eventbus.RoutingKeySuggestionsGenerated.
type SuggestionsGeneratedPayload struct {
	TaskCount       int    `json:"task_count"`
	SuggestionCount int    `json:"suggestion_count"`
	Strategy        string `json:"strategy"`
}

// SuggestTasksHandler handles the SuggestTasksCommand. Unlike analyze it
// accepts tasks with missing fields, scoring them with defaults.
type SuggestTasksHandler struct {
	ranker   *services.Ranker
	lists    tasklist.Repository
	notifier notifier
	metrics  observability.Metrics
	logger   *slog.Logger
	opts     Options
}

// NewSuggestTasksHandler creates a new SuggestTasksHandler.
func NewSuggestTasksHandler(
	ranker *services.Ranker,
	lists tasklist.Repository,
	publisher eventbus.Publisher,
	metrics observability.Metrics,
	logger *slog.Logger,
	opts Options,
) *SuggestTasksHandler {
	metrics, logger = defaults(metrics, logger)
	return &SuggestTasksHandler{
		ranker:   ranker,
		lists:    lists,
		notifier: newNotifier(publisher, metrics, logger),
		metrics:  metrics,
		logger:   logger,
		opts:     opts,
	}
}

// Handle executes the SuggestTasksCommand. An empty batch yields no
// suggestions and no error.
func (h *SuggestTasksHandler) Handle(ctx context.Context, cmd SuggestTasksCommand) (*SuggestTasksResult, error) {
	tasks, err := loadTasks(ctx, h.lists, cmd.ListName, cmd.Tasks)
	if err != nil {
		return nil, err
	}
	if err := h.opts.checkBatch(tasks); err != nil {
		return nil, err
	}

	strategy, err := h.opts.resolveStrategy(ctx, h.logger, cmd.Strategy)
	if err != nil {
		return nil, err
	}

	limit := cmd.Limit
	if limit < 1 {
		limit = h.opts.SuggestLimit
	}

	result := &SuggestTasksResult{
		Suggestions:  []services.Suggestion{},
		StrategyUsed: strategy.String(),
	}
	if len(tasks) > 0 {
		result.Suggestions = h.ranker.Suggest(tasks, strategy, limit)
	}

	h.metrics.Counter(observability.MetricSuggestTotal, 1, observability.T("strategy", result.StrategyUsed))
	h.notifier.publish(ctx, eventbus.RoutingKeySuggestionsGenerated, SuggestionsGeneratedPayload{
		TaskCount:       len(tasks),
		SuggestionCount: len(result.Suggestions),
		Strategy:        result.StrategyUsed,
	})

	return result, nil
}
