package services

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/dependency"
	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/scoring"
	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/task"
)

// DefaultSuggestionLimit is the number of suggestions returned when the
// caller asks for none in particular.
const DefaultSuggestionLimit = 3

// Ranking is a scored batch, highest score first.
type Ranking struct {
	Tasks                []task.ScoredTask `json:"tasks"`
	CircularDependencies []int             `json:"circular_dependencies"`
	StrategyUsed         string            `json:"strategy_used"`
}

// Top returns the highest ranked task, if any.
func (r Ranking) Top() (task.ScoredTask, bool) {
	if len(r.Tasks) == 0 {
		return task.ScoredTask{}, false
	}
	return r.Tasks[0], true
}

// Suggestion is one entry of a top-N recommendation.
type Suggestion struct {
	Rank   int             `json:"rank"`
	Task   task.ScoredTask `json:"task"`
	Reason string          `json:"reason"`
}

// Ranker scores, orders and checks a batch of tasks.
type Ranker struct {
	scorer *scoring.Scorer
}

// NewRanker creates a ranker around scorer.
func NewRanker(scorer *scoring.Scorer) *Ranker {
	return &Ranker{scorer: scorer}
}

// Today returns the date urgency is measured against.
func (r *Ranker) Today() task.Date {
	return r.scorer.Today()
}

// Rank scores every task with the whole batch as context, sorts them by
// descending score and reports the dependency cycles of the batch. Tasks
// with equal scores keep their input order.
func (r *Ranker) Rank(tasks []task.Task, strategy scoring.Strategy) Ranking {
	scored := make([]task.ScoredTask, 0, len(tasks))
	for _, t := range tasks {
		scored = append(scored, r.scorer.Score(t, tasks, strategy))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].PriorityScore > scored[j].PriorityScore
	})

	return Ranking{
		Tasks:                scored,
		CircularDependencies: dependency.FindCycles(tasks),
		StrategyUsed:         strategy.String(),
	}
}

// Suggest returns the limit best tasks. A limit below 1 means
// DefaultSuggestionLimit.
func (r *Ranker) Suggest(tasks []task.Task, strategy scoring.Strategy, limit int) []Suggestion {
	if limit < 1 {
		limit = DefaultSuggestionLimit
	}

	ranked := r.Rank(tasks, strategy).Tasks
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	suggestions := make([]Suggestion, 0, len(ranked))
	for i, st := range ranked {
		suggestions = append(suggestions, Suggestion{
			Rank:   i + 1,
			Task:   st,
			Reason: SuggestionReason(st),
		})
	}
	return suggestions
}

// SuggestionReason formats the reason line of a suggestion.
func SuggestionReason(st task.ScoredTask) string {
	return fmt.Sprintf("Score: %s - %s", FormatScore(st.PriorityScore), st.Explanation)
}

// FormatScore renders a score with the fewest digits needed, so 144 prints
// as "144" and 12.5 as "12.5".
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
