package app

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/taskrank/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/taskrank/pkg/observability"
)

// activityLog records every in-process event in the log and metrics.
type activityLog struct {
	logger  *slog.Logger
	metrics observability.Metrics
}

func newActivityLog(logger *slog.Logger, metrics observability.Metrics) *activityLog {
	return &activityLog{logger: logger, metrics: metrics}
}

func (a *activityLog) EventTypes() []string {
	return []string{eventbus.AllEvents}
}

func (a *activityLog) Handle(ctx context.Context, event *eventbus.Event) error {
	a.metrics.Counter(observability.MetricEventsConsumed, 1, observability.T("routing_key", event.RoutingKey))
	a.logger.DebugContext(ctx, "event",
		"routing_key", event.RoutingKey,
		"event_id", event.EventID,
		"payload", string(event.Payload),
	)
	return nil
}
