package commands

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/taskrank/internal/ranking/application/services"
	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/task"
	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/tasklist"
	"github.com/felixgeelhaar/taskrank/internal/ranking/infrastructure/cache"
	"github.com/felixgeelhaar/taskrank/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/taskrank/pkg/observability"
)

// AnalyzeTasksCommand ranks a batch of tasks. When ListName is set the
// tasks are read from the saved list of that name and Tasks is ignored.
type AnalyzeTasksCommand struct {
	Tasks    []task.Task
	Strategy *string
	ListName string
}

// AnalyzeTasksResult contains the ranking and whether it came from the cache.
type AnalyzeTasksResult struct {
	services.Ranking
	Cached bool
}

// TasksAnalyzedPayload is published under eventbus.RoutingKeyTasksAnalyzed.
type TasksAnalyzedPayload struct {
	TaskCount  int      `json:"task_count"`
	Strategy   string   `json:"strategy"`
	CycleCount int      `json:"cycle_count"`
	TopScore   *float64 `json:"top_score,omitempty"`
	ListName   string   `json:"list_name,omitempty"`
	Cached     bool     `json:"cached"`
}

// AnalyzeTasksHandler handles the AnalyzeTasksCommand.
type AnalyzeTasksHandler struct {
	ranker   *services.Ranker
	lists    tasklist.Repository
	cache    cache.Cache
	notifier notifier
	metrics  observability.Metrics
	logger   *slog.Logger
	opts     Options
}

// NewAnalyzeTasksHandler creates a new AnalyzeTasksHandler. lists, results
// and publisher may be nil.
func NewAnalyzeTasksHandler(
	ranker *services.Ranker,
	lists tasklist.Repository,
	results cache.Cache,
	publisher eventbus.Publisher,
	metrics observability.Metrics,
	logger *slog.Logger,
	opts Options,
) *AnalyzeTasksHandler {
	metrics, logger = defaults(metrics, logger)
	return &AnalyzeTasksHandler{
		ranker:   ranker,
		lists:    lists,
		cache:    results,
		notifier: newNotifier(publisher, metrics, logger),
		metrics:  metrics,
		logger:   logger,
		opts:     opts,
	}
}

// Handle executes the AnalyzeTasksCommand.
func (h *AnalyzeTasksHandler) Handle(ctx context.Context, cmd AnalyzeTasksCommand) (*AnalyzeTasksResult, error) {
	start := time.Now()
	result, err := h.handle(ctx, cmd)
	if err != nil {
		h.metrics.Counter(observability.MetricAnalyzeErrors, 1)
		return nil, err
	}

	tags := []observability.Tag{observability.T("strategy", result.StrategyUsed)}
	h.metrics.Counter(observability.MetricAnalyzeTotal, 1, tags...)
	h.metrics.Timing(observability.MetricAnalyzeDuration, time.Since(start), tags...)
	if result.Cached {
		h.metrics.Counter(observability.MetricAnalyzeCacheHits, 1, tags...)
	} else {
		h.metrics.Counter(observability.MetricTasksScored, int64(len(result.Tasks)))
		h.metrics.Counter(observability.MetricCyclesFound, int64(len(result.CircularDependencies)))
	}

	payload := TasksAnalyzedPayload{
		TaskCount:  len(result.Tasks),
		Strategy:   result.StrategyUsed,
		CycleCount: len(result.CircularDependencies),
		ListName:   cmd.ListName,
		Cached:     result.Cached,
	}
	if top, ok := result.Top(); ok {
		payload.TopScore = &top.PriorityScore
	}
	h.notifier.publish(ctx, eventbus.RoutingKeyTasksAnalyzed, payload)

	h.logger.DebugContext(ctx, "tasks analyzed",
		"tasks", len(result.Tasks),
		"strategy", result.StrategyUsed,
		"cycles", len(result.CircularDependencies),
		"cached", result.Cached,
	)
	return result, nil
}

func (h *AnalyzeTasksHandler) handle(ctx context.Context, cmd AnalyzeTasksCommand) (*AnalyzeTasksResult, error) {
	tasks, err := loadTasks(ctx, h.lists, cmd.ListName, cmd.Tasks)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, ErrNoTasks
	}
	if err := h.opts.checkBatch(tasks); err != nil {
		return nil, err
	}
	for i, t := range tasks {
		if missing := t.MissingFields(); len(missing) > 0 {
			return nil, &MissingFieldsError{Index: i, Title: t.DisplayTitle(), Fields: missing}
		}
	}

	strategy, err := h.opts.resolveStrategy(ctx, h.logger, cmd.Strategy)
	if err != nil {
		return nil, err
	}

	key := h.cacheKey(ctx, tasks, strategy.String())
	if ranking, ok := h.cached(ctx, key); ok {
		return &AnalyzeTasksResult{Ranking: ranking, Cached: true}, nil
	}

	ranking := h.ranker.Rank(tasks, strategy)
	h.store(ctx, key, ranking)

	return &AnalyzeTasksResult{Ranking: ranking}, nil
}

// cacheKey digests the batch, the strategy and the current date. It returns
// "" when caching is off.
func (h *AnalyzeTasksHandler) cacheKey(ctx context.Context, tasks []task.Task, strategy string) string {
	if h.cache == nil || h.opts.CacheTTL <= 0 {
		return ""
	}
	body, err := json.Marshal(tasks)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to encode tasks for cache key", observability.ErrorKey, err)
		return ""
	}
	return cache.Key(body, []byte(strategy), []byte(h.ranker.Today().String()))
}

func (h *AnalyzeTasksHandler) cached(ctx context.Context, key string) (services.Ranking, bool) {
	var ranking services.Ranking
	if key == "" {
		return ranking, false
	}

	data, err := h.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			h.logger.WarnContext(ctx, "cache read failed", observability.ErrorKey, err)
		}
		return ranking, false
	}
	if err := json.Unmarshal(data, &ranking); err != nil {
		h.logger.WarnContext(ctx, "discarding undecodable cache entry", observability.ErrorKey, err)
		return ranking, false
	}
	return ranking, true
}

func (h *AnalyzeTasksHandler) store(ctx context.Context, key string, ranking services.Ranking) {
	if key == "" {
		return
	}
	data, err := json.Marshal(ranking)
	if err == nil {
		err = h.cache.Set(ctx, key, data, h.opts.CacheTTL)
	}
	if err != nil {
		h.logger.WarnContext(ctx, "cache write failed", observability.ErrorKey, err)
	}
}
