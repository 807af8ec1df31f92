package observability

import (
	"context"
	"log/slog"
	"time"
)

// Timer measures one operation and reports it to a logger and metrics.
type Timer struct {
	operation string
	metric    string
	start     time.Time
	logger    *slog.Logger
	metrics   Metrics
	tags      []Tag
}

// StartTimer starts timing operation. The duration is recorded under
// MetricCommandDuration unless WithMetric names another series.
func StartTimer(operation string) *Timer {
	return &Timer{
		operation: operation,
		metric:    MetricCommandDuration,
		start:     time.Now(),
	}
}

// WithLogger logs the outcome on Stop.
func (t *Timer) WithLogger(logger *slog.Logger) *Timer {
	t.logger = logger
	return t
}

// WithMetrics records the duration on Stop.
func (t *Timer) WithMetrics(metrics Metrics, metric string) *Timer {
	t.metrics = metrics
	if metric != "" {
		t.metric = metric
	}
	return t
}

// WithTags labels the recorded duration.
func (t *Timer) WithTags(tags ...Tag) *Timer {
	t.tags = append(t.tags, tags...)
	return t
}

// Stop records the duration with the outcome of err.
func (t *Timer) Stop(ctx context.Context, err error) time.Duration {
	duration := time.Since(t.start)

	if t.logger != nil {
		if err != nil {
			t.logger.ErrorContext(ctx, "operation failed",
				"operation", t.operation,
				DurationKey, duration.Milliseconds(),
				ErrorKey, err.Error(),
			)
		} else {
			t.logger.InfoContext(ctx, "operation completed",
				"operation", t.operation,
				DurationKey, duration.Milliseconds(),
			)
		}
	}

	if t.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		tags := append(append([]Tag{}, t.tags...), T("status", status))
		t.metrics.Timing(t.metric, duration, tags...)
	}

	return duration
}

// TimeOperation runs fn under a Timer.
func TimeOperation(ctx context.Context, logger *slog.Logger, metrics Metrics, operation string, fn func() error) error {
	timer := StartTimer(operation).
		WithLogger(logger).
		WithMetrics(metrics, "").
		WithTags(T("operation", operation))

	err := fn()
	timer.Stop(ctx, err)
	return err
}
