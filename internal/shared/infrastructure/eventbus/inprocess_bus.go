package eventbus

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
)

// AllEvents subscribes a Subscriber to every routing key.
const AllEvents = "#"

// Subscriber handles events of the routing keys it declares.
type Subscriber interface {
	EventTypes() []string
	Handle(ctx context.Context, event *Event) error
}

// InProcessBus delivers events synchronously to subscribers in the same
// process. It is used when no broker is configured.
type InProcessBus struct {
	mu          sync.RWMutex
	subscribers map[string][]Subscriber
	logger      *slog.Logger
}

// NewInProcessBus creates an empty bus.
func NewInProcessBus(logger *slog.Logger) *InProcessBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &InProcessBus{
		subscribers: make(map[string][]Subscriber),
		logger:      logger,
	}
}

// Subscribe registers s for its event types.
func (b *InProcessBus) Subscribe(s Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, key := range s.EventTypes() {
		b.subscribers[key] = append(b.subscribers[key], s)
	}
}

// SubscriberCount returns the number of registrations.
func (b *InProcessBus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n := 0
	for _, subs := range b.subscribers {
		n += len(subs)
	}
	return n
}

// Publish decodes payload as an Event and hands it to every matching
// subscriber. Subscriber failures and undecodable payloads are logged and
// never returned, so publishing cannot fail a request.
func (b *InProcessBus) Publish(ctx context.Context, routingKey string, payload []byte) error {
	event := &Event{}
	if err := json.Unmarshal(payload, event); err != nil {
		b.logger.ErrorContext(ctx, "failed to unmarshal event payload",
			"routing_key", routingKey,
			"error", err,
		)
		return nil
	}
	if event.RoutingKey == "" {
		event.RoutingKey = routingKey
	}

	b.mu.RLock()
	targets := append([]Subscriber{}, b.subscribers[event.RoutingKey]...)
	targets = append(targets, b.subscribers[AllEvents]...)
	b.mu.RUnlock()

	for _, s := range targets {
		if err := s.Handle(ctx, event); err != nil {
			b.logger.ErrorContext(ctx, "subscriber failed to handle event",
				"routing_key", event.RoutingKey,
				"event_id", event.EventID,
				"error", err,
			)
		}
	}
	return nil
}

// Close is a no-op.
func (b *InProcessBus) Close() error {
	return nil
}
