package commands

import (
	"context"
	"encoding/json"
	"time"

	"github.com/felixgeelhaar/taskrank/internal/ranking/application/services"
	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/scoring"
	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/task"
	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/tasklist"
	"github.com/felixgeelhaar/taskrank/internal/shared/infrastructure/eventbus"
	"github.com/stretchr/testify/mock"
)

// mockTaskListRepo is a mock implementation of tasklist.Repository.
type mockTaskListRepo struct {
	mock.Mock
}

func (m *mockTaskListRepo) Save(ctx context.Context, list *tasklist.TaskList) error {
	args := m.Called(ctx, list)
	return args.Error(0)
}

func (m *mockTaskListRepo) FindByName(ctx context.Context, name string) (*tasklist.TaskList, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tasklist.TaskList), args.Error(1)
}

func (m *mockTaskListRepo) List(ctx context.Context) ([]*tasklist.TaskList, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tasklist.TaskList), args.Error(1)
}

func (m *mockTaskListRepo) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

// mockPublisher is a mock implementation of eventbus.Publisher.
type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	args := m.Called(ctx, routingKey, payload)
	return args.Error(0)
}

func (m *mockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// decodeEvent returns the envelope passed to the nth Publish call.
func (m *mockPublisher) decodeEvent(n int) *eventbus.Event {
	event := &eventbus.Event{}
	_ = json.Unmarshal(m.Calls[n].Arguments.Get(2).([]byte), event)
	return event
}

func strategyName(name string) *string {
	return &name
}

var today = task.MustParseDate("2025-03-10")

func newTestRanker() *services.Ranker {
	return services.NewRanker(scoring.NewScorer(scoring.NewFixedClock(today)))
}

func completeTask(title string, dueInDays, hours, importance int, deps ...int) task.Task {
	due := today.AddDays(dueInDays)
	return task.Task{
		Title:          title,
		DueDate:        &due,
		EstimatedHours: task.Int(hours),
		Importance:     task.Int(importance),
		Dependencies:   deps,
	}
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.CacheTTL = time.Minute
	return opts
}
