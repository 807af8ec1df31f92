package services

import (
	"sort"
	"testing"
	"time"

	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/scoring"
	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = task.NewDate(2025, time.March, 10)

func newTestRanker() *Ranker {
	return NewRanker(scoring.NewScorer(scoring.NewFixedClock(today)))
}

func newTask(title string, dueInDays, hours, importance int, deps ...int) task.Task {
	due := today.AddDays(dueInDays)
	return task.Task{
		Title:          title,
		DueDate:        &due,
		EstimatedHours: task.Int(hours),
		Importance:     task.Int(importance),
		Dependencies:   deps,
	}
}

func sampleBatch() []task.Task {
	return []task.Task{
		newTask("Write report", 10, 6, 4),
		newTask("Pay invoice", -2, 1, 9),
		newTask("Book flights", 1, 1, 6),
		newTask("Refactor", 30, 12, 7, 0),
	}
}

func TestRanker_Rank(t *testing.T) {
	r := newTestRanker()

	ranking := r.Rank(sampleBatch(), scoring.StrategySmart)

	require.Len(t, ranking.Tasks, 4)
	assert.Equal(t, "smart", ranking.StrategyUsed)
	assert.Equal(t, []int{}, ranking.CircularDependencies)

	titles := make([]string, 0, len(ranking.Tasks))
	for _, st := range ranking.Tasks {
		titles = append(titles, st.Title)
	}
	// Pay invoice 110+45-2=153, Write report 80+20-12=88,
	// Book flights 60+30-2=88, Refactor 40+35+10-24=61. Ties keep input order.
	assert.Equal(t, []string{"Pay invoice", "Write report", "Book flights", "Refactor"}, titles)

	top, ok := ranking.Top()
	require.True(t, ok)
	assert.Equal(t, 153.0, top.PriorityScore)
}

func TestRanker_RankIsNonIncreasing(t *testing.T) {
	r := newTestRanker()
	batch := sampleBatch()
	for i := 0; i < 20; i++ {
		batch = append(batch, newTask("filler", i-5, i%7+1, i%10+1))
	}

	for _, info := range scoring.Strategies() {
		t.Run(info.Name.String(), func(t *testing.T) {
			ranking := r.Rank(batch, info.Name)
			assert.True(t, sort.SliceIsSorted(ranking.Tasks, func(i, j int) bool {
				return ranking.Tasks[i].PriorityScore > ranking.Tasks[j].PriorityScore
			}))
		})
	}
}

func TestRanker_RankReportsCycles(t *testing.T) {
	r := newTestRanker()
	batch := []task.Task{
		newTask("A", 1, 1, 5, 1),
		newTask("B", 1, 1, 5, 2),
		newTask("C", 1, 1, 5, 0),
	}

	ranking := r.Rank(batch, scoring.StrategyDeadline)

	assert.Equal(t, []int{0}, ranking.CircularDependencies)
}

func TestRanker_RankEmpty(t *testing.T) {
	ranking := newTestRanker().Rank(nil, scoring.StrategySmart)

	assert.Empty(t, ranking.Tasks)
	assert.Equal(t, []int{}, ranking.CircularDependencies)
	_, ok := ranking.Top()
	assert.False(t, ok)
}

func TestRanker_Suggest(t *testing.T) {
	r := newTestRanker()

	t.Run("default limit is three", func(t *testing.T) {
		suggestions := r.Suggest(sampleBatch(), scoring.StrategySmart, 0)

		require.Len(t, suggestions, 3)
		for i, s := range suggestions {
			assert.Equal(t, i+1, s.Rank)
		}
		assert.Equal(t, "Pay invoice", suggestions[0].Task.Title)
		assert.Equal(t, "Score: 153 - OVERDUE by 2 days (+110 urgency) | High importance (9/10) | Quick win (1h)", suggestions[0].Reason)
	})

	t.Run("limit larger than batch", func(t *testing.T) {
		suggestions := r.Suggest(sampleBatch()[:2], scoring.StrategyImpact, 10)
		assert.Len(t, suggestions, 2)
	})

	t.Run("empty batch", func(t *testing.T) {
		suggestions := r.Suggest(nil, scoring.StrategySmart, 3)
		assert.NotNil(t, suggestions)
		assert.Empty(t, suggestions)
	})
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "144", FormatScore(144))
	assert.Equal(t, "12.5", FormatScore(12.5))
	assert.Equal(t, "-8", FormatScore(-8))
	assert.Equal(t, "0", FormatScore(0))
}
