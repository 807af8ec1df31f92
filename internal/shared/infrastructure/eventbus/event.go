package eventbus

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Routing keys published by taskrank.
const (
	RoutingKeyTasksAnalyzed        = "ranking.tasks.analyzed"
	RoutingKeySuggestionsGenerated = "ranking.suggestions.generated"
	RoutingKeyTaskListSaved        = "tasklist.saved"
	RoutingKeyTaskListDeleted      = "tasklist.deleted"
)

// Event is the envelope every message on the bus is wrapped in.
type Event struct {
	EventID       uuid.UUID       `json:"event_id"`
	RoutingKey    string          `json:"routing_key"`
	OccurredAt    time.Time       `json:"occurred_at"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

// NewEvent wraps payload in an envelope with a fresh id.
func NewEvent(routingKey string, payload any) (*Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", routingKey, err)
	}
	return &Event{
		EventID:    uuid.New(),
		RoutingKey: routingKey,
		OccurredAt: time.Now().UTC(),
		Payload:    raw,
	}, nil
}

// DecodePayload unmarshals the event payload into v.
func (e *Event) DecodePayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}
