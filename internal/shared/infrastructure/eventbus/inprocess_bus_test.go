package eventbus_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/felixgeelhaar/taskrank/internal/shared/infrastructure/eventbus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSubscriber struct {
	mu     sync.Mutex
	types  []string
	err    error
	events []*eventbus.Event
}

func (s *recordingSubscriber) EventTypes() []string { return s.types }

func (s *recordingSubscriber) Handle(_ context.Context, event *eventbus.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return s.err
}

func newTestBus() (*eventbus.InProcessBus, *bytes.Buffer) {
	var buf bytes.Buffer
	return eventbus.NewInProcessBus(slog.New(slog.NewTextHandler(&buf, nil))), &buf
}

type analyzedPayload struct {
	TaskCount int    `json:"task_count"`
	Strategy  string `json:"strategy"`
}

func TestInProcessBus_PublishEvent(t *testing.T) {
	bus, _ := newTestBus()
	analyzed := &recordingSubscriber{types: []string{eventbus.RoutingKeyTasksAnalyzed}}
	saved := &recordingSubscriber{types: []string{eventbus.RoutingKeyTaskListSaved}}
	all := &recordingSubscriber{types: []string{eventbus.AllEvents}}
	bus.Subscribe(analyzed)
	bus.Subscribe(saved)
	bus.Subscribe(all)
	assert.Equal(t, 3, bus.SubscriberCount())

	event, err := eventbus.NewEvent(eventbus.RoutingKeyTasksAnalyzed, analyzedPayload{TaskCount: 4, Strategy: "smart"})
	require.NoError(t, err)

	require.NoError(t, eventbus.PublishEvent(context.Background(), bus, event))

	require.Len(t, analyzed.events, 1)
	assert.Empty(t, saved.events)
	require.Len(t, all.events, 1)

	got := analyzed.events[0]
	assert.Equal(t, event.EventID, got.EventID)
	assert.Equal(t, eventbus.RoutingKeyTasksAnalyzed, got.RoutingKey)

	var payload analyzedPayload
	require.NoError(t, got.DecodePayload(&payload))
	assert.Equal(t, analyzedPayload{TaskCount: 4, Strategy: "smart"}, payload)
}

func TestInProcessBus_SubscriberErrorIsLogged(t *testing.T) {
	bus, logs := newTestBus()
	failing := &recordingSubscriber{types: []string{eventbus.RoutingKeyTaskListDeleted}, err: errors.New("boom")}
	bus.Subscribe(failing)

	event, err := eventbus.NewEvent(eventbus.RoutingKeyTaskListDeleted, map[string]string{"name": "weekly"})
	require.NoError(t, err)

	require.NoError(t, eventbus.PublishEvent(context.Background(), bus, event))
	assert.Len(t, failing.events, 1)
	assert.Contains(t, logs.String(), "subscriber failed to handle event")
}

func TestInProcessBus_InvalidPayload(t *testing.T) {
	bus, logs := newTestBus()
	sub := &recordingSubscriber{types: []string{eventbus.AllEvents}}
	bus.Subscribe(sub)

	err := bus.Publish(context.Background(), eventbus.RoutingKeyTasksAnalyzed, []byte("not json"))

	require.NoError(t, err)
	assert.Empty(t, sub.events)
	assert.Contains(t, logs.String(), "failed to unmarshal event payload")
}

func TestInProcessBus_RoutingKeyFallsBackToArgument(t *testing.T) {
	bus, _ := newTestBus()
	sub := &recordingSubscriber{types: []string{"custom.key"}}
	bus.Subscribe(sub)

	require.NoError(t, bus.Publish(context.Background(), "custom.key", []byte(`{"payload":{}}`)))

	require.Len(t, sub.events, 1)
	assert.Equal(t, "custom.key", sub.events[0].RoutingKey)
}

func TestNoopPublisher(t *testing.T) {
	p := eventbus.NewNoopPublisher(nil)
	assert.NoError(t, p.Publish(context.Background(), "any", []byte("{}")))
	assert.NoError(t, p.Close())
}

type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, string, []byte) error { return errors.New("down") }
func (failingPublisher) Close() error                                   { return nil }

func TestPublishEvent_WrapsError(t *testing.T) {
	event, err := eventbus.NewEvent(eventbus.RoutingKeyTaskListSaved, nil)
	require.NoError(t, err)

	err = eventbus.PublishEvent(context.Background(), failingPublisher{}, event)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to publish tasklist.saved")
}
