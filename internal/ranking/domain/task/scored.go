package task

import (
	"encoding/json"
	"strings"
)

// ExplanationSeparator joins reason fragments into an explanation.
const ExplanationSeparator = " | "

// PriorityLevel buckets a priority score.
type PriorityLevel string

const (
	PriorityHigh   PriorityLevel = "HIGH"
	PriorityMedium PriorityLevel = "MEDIUM"
	PriorityLow    PriorityLevel = "LOW"
)

// String returns the level name.
func (l PriorityLevel) String() string {
	return string(l)
}

// LevelFor returns HIGH above 80, MEDIUM above 40, LOW otherwise.
func LevelFor(score float64) PriorityLevel {
	switch {
	case score > 80:
		return PriorityHigh
	case score > 40:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// ScoredTask is a task together with its computed priority.
type ScoredTask struct {
	Task

	PriorityScore float64
	Explanation   string
	PriorityLevel PriorityLevel

	// Reasons holds the fragments Explanation was joined from.
	Reasons []string
}

// NewScoredTask attaches a score and its reasons to t.
func NewScoredTask(t Task, score float64, reasons []string) ScoredTask {
	return ScoredTask{
		Task:          t,
		PriorityScore: score,
		Explanation:   strings.Join(reasons, ExplanationSeparator),
		PriorityLevel: LevelFor(score),
		Reasons:       reasons,
	}
}

// MarshalJSON writes the task fields followed by the computed ones, which
// replace any passthrough keys of the same name.
func (s ScoredTask) MarshalJSON() ([]byte, error) {
	fields, err := s.Task.fields()
	if err != nil {
		return nil, err
	}
	computed := map[string]any{
		"priority_score": s.PriorityScore,
		"explanation":    s.Explanation,
		"priority_level": s.PriorityLevel,
	}
	for key, value := range computed {
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		fields[key] = raw
	}
	return json.Marshal(fields)
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *ScoredTask) UnmarshalJSON(data []byte) error {
	var t Task
	if err := t.UnmarshalJSON(data); err != nil {
		return err
	}
	var computed struct {
		PriorityScore float64       `json:"priority_score"`
		Explanation   string        `json:"explanation"`
		PriorityLevel PriorityLevel `json:"priority_level"`
	}
	if err := json.Unmarshal(data, &computed); err != nil {
		return err
	}
	for _, key := range []string{"priority_score", "explanation", "priority_level"} {
		delete(t.Extra, key)
	}
	if len(t.Extra) == 0 {
		t.Extra = nil
	}

	var reasons []string
	if computed.Explanation != "" {
		reasons = strings.Split(computed.Explanation, ExplanationSeparator)
	}
	*s = ScoredTask{
		Task:          t,
		PriorityScore: computed.PriorityScore,
		Explanation:   computed.Explanation,
		PriorityLevel: computed.PriorityLevel,
		Reasons:       reasons,
	}
	return nil
}
