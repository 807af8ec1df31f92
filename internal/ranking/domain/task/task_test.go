package task_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func TestParseDate(t *testing.T) {
	d, err := task.ParseDate("2025-03-09")
	require.NoError(t, err)
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 9, d.Day())
	assert.Equal(t, "2025-03-09", d.String())
}

func TestParseDate_Invalid(t *testing.T) {
	for _, input := range []string{"", "03/09/2025", "2025-13-01", "tomorrow", "2025-03-09T10:00:00Z"} {
		t.Run(input, func(t *testing.T) {
			_, err := task.ParseDate(input)
			require.Error(t, err)
			assert.ErrorIs(t, err, task.ErrInvalidDate)

			var dateErr *task.DateError
			require.ErrorAs(t, err, &dateErr)
			assert.Equal(t, input, dateErr.Value)
		})
	}
}

func TestDate_DaysSince(t *testing.T) {
	today := task.NewDate(2025, time.March, 30)

	assert.Equal(t, 0, today.DaysSince(today))
	assert.Equal(t, 3, today.AddDays(3).DaysSince(today))
	assert.Equal(t, -5, today.AddDays(-5).DaysSince(today))
	// Crosses a month boundary.
	assert.Equal(t, 2, task.NewDate(2025, time.April, 1).DaysSince(today))
}

func TestTask_Defaults(t *testing.T) {
	var tk task.Task
	today := task.NewDate(2025, time.January, 1)

	assert.Equal(t, task.DefaultImportance, tk.ImportanceOrDefault())
	assert.Equal(t, task.DefaultEstimatedHours, tk.HoursOrDefault())
	assert.Equal(t, today, tk.DueDateOr(today))
	assert.Equal(t, 0, tk.DependencyCount())

	due := today.AddDays(4)
	tk = task.Task{
		DueDate:        &due,
		Importance:     task.Int(9),
		EstimatedHours: task.Int(6),
		Dependencies:   []int{1, 7},
		DependsOn:      []string{"write-report"},
	}
	assert.Equal(t, 9, tk.ImportanceOrDefault())
	assert.Equal(t, 6, tk.HoursOrDefault())
	assert.Equal(t, due, tk.DueDateOr(today))
	assert.Equal(t, 3, tk.DependencyCount())
}

func TestTask_MissingFields(t *testing.T) {
	t.Run("all missing", func(t *testing.T) {
		assert.Equal(t, []string{"title", "due_date", "estimated_hours", "importance"}, task.Task{}.MissingFields())
	})

	t.Run("complete", func(t *testing.T) {
		due := task.NewDate(2025, time.June, 1)
		tk := task.Task{Title: "Ship", DueDate: &due, EstimatedHours: task.Int(1), Importance: task.Int(5)}
		assert.Empty(t, tk.MissingFields())
	})

	t.Run("blank title", func(t *testing.T) {
		due := task.NewDate(2025, time.June, 1)
		tk := task.Task{Title: "  ", DueDate: &due, EstimatedHours: task.Int(1), Importance: task.Int(5)}
		assert.Empty(t, tk.MissingFields())
		assert.Equal(t, "Unknown", tk.DisplayTitle())
	})

	t.Run("empty title key counts as present", func(t *testing.T) {
		var tk task.Task
		require.NoError(t, json.Unmarshal([]byte(`{"title": "", "due_date": "2025-06-01", "estimated_hours": 1, "importance": 5}`), &tk))
		assert.Empty(t, tk.MissingFields())
		assert.Equal(t, "Unknown", tk.DisplayTitle())
	})

	t.Run("absent title key", func(t *testing.T) {
		var tk task.Task
		require.NoError(t, json.Unmarshal([]byte(`{"due_date": "2025-06-01", "estimated_hours": 1, "importance": 5}`), &tk))
		assert.Equal(t, []string{"title"}, tk.MissingFields())
	})
}

func TestTask_JSONRoundTripKeepsUnknownFields(t *testing.T) {
	input := `{
		"title": "Write tests",
		"due_date": "2025-05-01",
		"estimated_hours": 2,
		"importance": 7,
		"dependencies": [2, 3],
		"owner": "sam",
		"tags": ["qa"]
	}`

	var tk task.Task
	require.NoError(t, json.Unmarshal([]byte(input), &tk))

	assert.Equal(t, "Write tests", tk.Title)
	require.NotNil(t, tk.DueDate)
	assert.Equal(t, "2025-05-01", tk.DueDate.String())
	assert.Equal(t, 2, *tk.EstimatedHours)
	assert.Equal(t, 7, *tk.Importance)
	assert.Equal(t, []int{2, 3}, tk.Dependencies)
	require.Len(t, tk.Extra, 2)
	assert.JSONEq(t, `"sam"`, string(tk.Extra["owner"]))

	out, err := json.Marshal(tk)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"title": "Write tests",
		"due_date": "2025-05-01",
		"estimated_hours": 2,
		"importance": 7,
		"dependencies": [2, 3],
		"owner": "sam",
		"tags": ["qa"]
	}`, string(out))
}

func TestTask_UnmarshalRejectsBadDate(t *testing.T) {
	var tk task.Task
	err := json.Unmarshal([]byte(`{"title":"x","due_date":"31-12-2025"}`), &tk)
	require.Error(t, err)
	assert.ErrorIs(t, err, task.ErrInvalidDate)
}

func TestTask_JSONEchoesOnlyCarriedKeys(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "no dependencies key", input: `{"title": "Solo", "due_date": "2025-05-01", "estimated_hours": 1, "importance": 3}`},
		{name: "empty dependencies", input: `{"title": "Solo", "dependencies": []}`},
		{name: "empty title and id", input: `{"id": "", "title": "", "importance": 3}`},
		{name: "null depends_on", input: `{"title": "Solo", "depends_on": null}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tk task.Task
			require.NoError(t, json.Unmarshal([]byte(tt.input), &tk))

			out, err := json.Marshal(tk)
			require.NoError(t, err)
			assert.JSONEq(t, tt.input, string(out))
		})
	}
}

func TestTask_MarshalOmitsUnsetFields(t *testing.T) {
	out, err := json.Marshal(task.Task{Title: "Solo"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Solo"}`, string(out))
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		score float64
		want  task.PriorityLevel
	}{
		{score: 125, want: task.PriorityHigh},
		{score: 80.01, want: task.PriorityHigh},
		{score: 80, want: task.PriorityMedium},
		{score: 40.5, want: task.PriorityMedium},
		{score: 40, want: task.PriorityLow},
		{score: 0, want: task.PriorityLow},
		{score: -30, want: task.PriorityLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, task.LevelFor(tt.score), "score %v", tt.score)
	}
}

func TestScoredTask_MarshalOverwritesComputedFields(t *testing.T) {
	var tk task.Task
	require.NoError(t, json.Unmarshal([]byte(`{
		"title": "Pay rent",
		"priority_score": 1,
		"priority_level": "LOW",
		"note": "monthly"
	}`), &tk))

	scored := task.NewScoredTask(tk, 95, []string{"Due TODAY (+80 urgency)", "Deadline focused"})
	assert.Equal(t, "Due TODAY (+80 urgency) | Deadline focused", scored.Explanation)
	assert.Equal(t, task.PriorityHigh, scored.PriorityLevel)

	out, err := json.Marshal(scored)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"title": "Pay rent",
		"note": "monthly",
		"priority_score": 95,
		"explanation": "Due TODAY (+80 urgency) | Deadline focused",
		"priority_level": "HIGH"
	}`, string(out))

	var decoded task.ScoredTask
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, 95.0, decoded.PriorityScore)
	assert.Equal(t, task.PriorityHigh, decoded.PriorityLevel)
	assert.Equal(t, scored.Reasons, decoded.Reasons)
	assert.Equal(t, "Pay rent", decoded.Title)
	assert.NotContains(t, decoded.Extra, "priority_score")
	assert.Contains(t, decoded.Extra, "note")
}

func TestDate_YAML(t *testing.T) {
	var doc struct {
		Due task.Date `yaml:"due"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("due: 2025-07-04\n"), &doc))
	assert.Equal(t, "2025-07-04", doc.Due.String())

	out, err := yaml.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "2025-07-04")

	err = yaml.Unmarshal([]byte("due: next week\n"), &doc)
	assert.ErrorIs(t, err, task.ErrInvalidDate)
}
