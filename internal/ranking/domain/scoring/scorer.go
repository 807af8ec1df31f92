// Package scoring computes priority scores for tasks under a named strategy.
package scoring

import (
	"fmt"
	"math"

	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/task"
)

// Scorer computes priority scores. It holds no mutable state and is safe
// for concurrent use.
type Scorer struct {
	clock Clock
}

// NewScorer creates a scorer measuring urgency against clock. A nil clock
// means the system clock.
func NewScorer(clock Clock) *Scorer {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Scorer{clock: clock}
}

// Today returns the date the scorer measures urgency against.
func (s *Scorer) Today() task.Date {
	return s.clock.Today()
}

// Score rates t under strategy. all is the batch t belongs to; when it is
// empty, dependency references do not contribute to the score. An unknown
// strategy scores 0 with no explanation.
func (s *Scorer) Score(t task.Task, all []task.Task, strategy Strategy) task.ScoredTask {
	today := s.clock.Today()
	days := t.DueDateOr(today).DaysSince(today)
	importance := t.ImportanceOrDefault()
	hours := t.HoursOrDefault()

	deps := 0
	if len(all) > 0 {
		deps = t.DependencyCount()
	}

	urgency, urgencyReason := Urgency(days)
	var reasons []string
	if urgencyReason != "" {
		reasons = append(reasons, urgencyReason)
	}

	var score float64
	switch strategy {
	case StrategySmart:
		score = urgency + float64(5*importance) + float64(10*deps) - float64(2*hours)
		if importance >= 8 {
			reasons = append(reasons, fmt.Sprintf("High importance (%d/10)", importance))
		}
		if hours <= 2 {
			reasons = append(reasons, fmt.Sprintf("Quick win (%dh)", hours))
		}
		if deps > 0 {
			reasons = append(reasons, fmt.Sprintf("Blocks %d tasks", deps))
		}
	case StrategyFastest:
		score = urgency + float64(2*importance) - float64(10*hours)
		reasons = append(reasons, fmt.Sprintf("Low effort prioritized (%dh)", hours))
	case StrategyImpact:
		score = float64(10*importance) + urgency
		reasons = append(reasons, fmt.Sprintf("High impact focus (importance: %d/10)", importance))
	case StrategyDeadline:
		score = urgency + float64(2*importance)
		reasons = append(reasons, "Deadline focused")
	default:
		return task.NewScoredTask(t, 0, nil)
	}

	return task.NewScoredTask(t, round2(score), reasons)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
