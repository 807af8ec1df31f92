package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/scoring"
	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/task"
	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/tasklist"
	"github.com/felixgeelhaar/taskrank/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/taskrank/pkg/observability"
)

// Options tunes the ranking commands.
type Options struct {
	DefaultStrategy scoring.Strategy
	// StrictStrategy turns an unrecognized strategy into ErrUnknownStrategy
	// instead of a zero score.
	StrictStrategy bool
	MaxBatchSize   int
	SuggestLimit   int
	// CacheTTL is how long analyze results are cached. Zero disables caching.
	CacheTTL time.Duration
}

// DefaultOptions returns the built-in options.
func DefaultOptions() Options {
	return Options{
		DefaultStrategy: scoring.DefaultStrategy,
		MaxBatchSize:    500,
		SuggestLimit:    3,
		CacheTTL:        5 * time.Minute,
	}
}

// resolveStrategy applies the default when no strategy was given. Names
// match exactly; an unrecognized one, the empty string included, is passed
// through and scores every task 0 unless strict mode rejects it.
func (o Options) resolveStrategy(ctx context.Context, logger *slog.Logger, requested *string) (scoring.Strategy, error) {
	if requested == nil {
		return o.DefaultStrategy, nil
	}
	name := *requested
	if s, ok := scoring.ParseStrategy(name); ok {
		return s, nil
	}
	logger.WarnContext(ctx, "unknown strategy", "strategy", name, "strict", o.StrictStrategy)
	if o.StrictStrategy {
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return scoring.Strategy(name), nil
}

func (o Options) checkBatch(tasks []task.Task) error {
	if o.MaxBatchSize > 0 && len(tasks) > o.MaxBatchSize {
		return fmt.Errorf("%w: %d tasks, limit is %d", ErrBatchTooLarge, len(tasks), o.MaxBatchSize)
	}
	return nil
}

// loadTasks returns the saved list when name is set, else tasks.
func loadTasks(ctx context.Context, lists tasklist.Repository, name string, tasks []task.Task) ([]task.Task, error) {
	if name == "" {
		return tasks, nil
	}
	if lists == nil {
		return nil, tasklist.ErrUnavailable
	}
	list, err := lists.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return list.Tasks(), nil
}

// notifier publishes events on behalf of a handler. Failures are logged and
// counted, never returned.
type notifier struct {
	publisher eventbus.Publisher
	metrics   observability.Metrics
	logger    *slog.Logger
}

func newNotifier(publisher eventbus.Publisher, metrics observability.Metrics, logger *slog.Logger) notifier {
	if publisher == nil {
		publisher = eventbus.NewNoopPublisher(logger)
	}
	return notifier{publisher: publisher, metrics: metrics, logger: logger}
}

func (n notifier) publish(ctx context.Context, routingKey string, payload any) {
	event, err := eventbus.NewEvent(routingKey, payload)
	if err == nil {
		event.CorrelationID = observability.CorrelationIDFromContext(ctx)
		err = eventbus.PublishEvent(ctx, n.publisher, event)
	}
	if err != nil {
		n.logger.WarnContext(ctx, "failed to publish event", "routing_key", routingKey, observability.ErrorKey, err)
		n.metrics.Counter(observability.MetricEventsPublished, 1, observability.T("status", "error"))
		return
	}
	n.metrics.Counter(observability.MetricEventsPublished, 1, observability.T("status", "ok"))
}

func defaults(metrics observability.Metrics, logger *slog.Logger) (observability.Metrics, *slog.Logger) {
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return metrics, logger
}
