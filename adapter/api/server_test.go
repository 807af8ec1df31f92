package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/taskrank/internal/app"
	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/scoring"
	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/task"
	"github.com/felixgeelhaar/taskrank/pkg/config"
	"github.com/felixgeelhaar/taskrank/pkg/observability"
)

func newTestServer(t *testing.T, opts app.Options) http.Handler {
	t.Helper()
	cfg := config.Defaults()
	cfg.AppEnv = "test"
	cfg.SQLitePath = filepath.Join(t.TempDir(), "taskrank.db")

	opts.Clock = scoring.NewFixedClock(task.MustParseDate("2025-03-10"))
	c, err := app.NewContainer(context.Background(), cfg, observability.Discard(), opts)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	serverCfg := DefaultServerConfig()
	serverCfg.CORSOrigins = []string{"http://localhost:3000"}
	return NewServer(serverCfg, c).Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

const twoTasks = `{"tasks": [
	{"title": "Later", "due_date": "2025-04-30", "estimated_hours": 4, "importance": 5},
	{"title": "Tomorrow", "due_date": "2025-03-11", "estimated_hours": 1, "importance": 5}
]}`

func TestAnalyze(t *testing.T) {
	h := newTestServer(t, app.Options{})

	for _, path := range []string{"/api/tasks/analyze/", "/api/tasks/analyze"} {
		t.Run(path, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, path, twoTasks)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

			var resp struct {
				Tasks []struct {
					Title         string  `json:"title"`
					PriorityScore float64 `json:"priority_score"`
					PriorityLevel string  `json:"priority_level"`
				} `json:"tasks"`
				CircularDependencies []int  `json:"circular_dependencies"`
				StrategyUsed         string `json:"strategy_used"`
			}
			decode(t, rec, &resp)

			require.Len(t, resp.Tasks, 2)
			assert.Equal(t, "Tomorrow", resp.Tasks[0].Title)
			assert.Equal(t, 83.0, resp.Tasks[0].PriorityScore)
			assert.Equal(t, "HIGH", resp.Tasks[0].PriorityLevel)
			assert.Equal(t, "Later", resp.Tasks[1].Title)
			assert.Equal(t, 17.0, resp.Tasks[1].PriorityScore)
			assert.Equal(t, "LOW", resp.Tasks[1].PriorityLevel)
			assert.Empty(t, resp.CircularDependencies)
			assert.Equal(t, "smart", resp.StrategyUsed)
		})
	}
}

func TestAnalyze_StrategyNames(t *testing.T) {
	h := newTestServer(t, app.Options{})
	const one = `{"title": "Tomorrow", "due_date": "2025-03-11", "estimated_hours": 1, "importance": 5}`

	tests := []struct {
		name     string
		body     string
		score    float64
		strategy string
	}{
		{name: "absent uses the default", body: `{"tasks": [` + one + `]}`, score: 83, strategy: "smart"},
		{name: "exact name", body: `{"tasks": [` + one + `], "strategy": "deadline"}`, score: 70, strategy: "deadline"},
		{name: "wrong case", body: `{"tasks": [` + one + `], "strategy": "Smart"}`, score: 0, strategy: "Smart"},
		{name: "surrounding spaces", body: `{"tasks": [` + one + `], "strategy": " deadline "}`, score: 0, strategy: " deadline "},
		{name: "empty name", body: `{"tasks": [` + one + `], "strategy": ""}`, score: 0, strategy: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/tasks/analyze/", tt.body)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var resp struct {
				Tasks []struct {
					PriorityScore float64 `json:"priority_score"`
					Explanation   string  `json:"explanation"`
				} `json:"tasks"`
				StrategyUsed string `json:"strategy_used"`
			}
			decode(t, rec, &resp)

			require.Len(t, resp.Tasks, 1)
			assert.Equal(t, tt.score, resp.Tasks[0].PriorityScore)
			assert.Equal(t, tt.strategy, resp.StrategyUsed)
			if tt.score == 0 {
				assert.Empty(t, resp.Tasks[0].Explanation)
			}
		})
	}
}

func TestAnalyze_SecondCallIsCached(t *testing.T) {
	h := newTestServer(t, app.Options{})

	first := do(t, h, http.MethodPost, "/api/tasks/analyze/", twoTasks)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "miss", first.Header().Get("X-Cache"))

	second := do(t, h, http.MethodPost, "/api/tasks/analyze/", twoTasks)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "hit", second.Header().Get("X-Cache"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestAnalyze_Errors(t *testing.T) {
	h := newTestServer(t, app.Options{})

	tests := []struct {
		name    string
		body    string
		status  int
		message string
	}{
		{name: "empty tasks", body: `{"tasks": []}`, status: http.StatusBadRequest, message: "No tasks provided"},
		{name: "missing tasks", body: `{}`, status: http.StatusBadRequest, message: "No tasks provided"},
		{name: "missing fields", body: `{"tasks": [{"title": "x"}]}`, status: http.StatusBadRequest},
		{name: "malformed", body: `{"tasks": [`, status: http.StatusBadRequest},
		{name: "bad date", body: `{"tasks": [{"title": "x", "due_date": "soon", "estimated_hours": 1, "importance": 5}]}`, status: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/tasks/analyze/", tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())

			var resp ErrorResponse
			decode(t, rec, &resp)
			assert.NotEmpty(t, resp.Error)
			if tt.message != "" {
				assert.Equal(t, tt.message, resp.Error)
			}
		})
	}
}

func TestAnalyze_BodyTooLarge(t *testing.T) {
	h := newTestServer(t, app.Options{})

	body := `{"tasks": [], "pad": "` + strings.Repeat("x", MaxBodyBytes) + `"}`
	rec := do(t, h, http.MethodPost, "/api/tasks/analyze/", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestSuggest(t *testing.T) {
	h := newTestServer(t, app.Options{})

	t.Run("top suggestion", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/tasks/suggest/", twoTasks)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp struct {
			Suggestions []struct {
				Rank   int    `json:"rank"`
				Reason string `json:"reason"`
				Task   struct {
					Title string `json:"title"`
				} `json:"task"`
			} `json:"suggestions"`
		}
		decode(t, rec, &resp)

		require.Len(t, resp.Suggestions, 2)
		assert.Equal(t, 1, resp.Suggestions[0].Rank)
		assert.Equal(t, "Tomorrow", resp.Suggestions[0].Task.Title)
		assert.True(t, strings.HasPrefix(resp.Suggestions[0].Reason, "Score: 83"), resp.Suggestions[0].Reason)
	})

	t.Run("empty batch", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/tasks/suggest", `{"tasks": []}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"suggestions": []}`, rec.Body.String())
	})
}

func TestStrategies(t *testing.T) {
	h := newTestServer(t, app.Options{})

	rec := do(t, h, http.MethodGet, "/api/strategies", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Strategies []struct {
			Name string `json:"name"`
		} `json:"strategies"`
		Default string `json:"default"`
	}
	decode(t, rec, &resp)
	assert.Len(t, resp.Strategies, 4)
	assert.Equal(t, "smart", resp.Default)
}

func TestLists(t *testing.T) {
	h := newTestServer(t, app.Options{})

	rec := do(t, h, http.MethodPut, "/api/lists/weekly", twoTasks)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPut, "/api/lists/weekly", twoTasks)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/lists", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var lists ListsResponse
	decode(t, rec, &lists)
	require.Len(t, lists.Lists, 1)
	assert.Equal(t, "weekly", lists.Lists[0].Name)
	assert.Equal(t, 2, lists.Lists[0].TaskCount)

	rec = do(t, h, http.MethodPost, "/api/lists/weekly/analyze", `{"strategy": "deadline"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var ranking struct {
		StrategyUsed string `json:"strategy_used"`
	}
	decode(t, rec, &ranking)
	assert.Equal(t, "deadline", ranking.StrategyUsed)

	rec = do(t, h, http.MethodDelete, "/api/lists/weekly", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/lists/weekly", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLists_StoreUnavailable(t *testing.T) {
	h := newTestServer(t, app.Options{SkipStore: true})

	rec := do(t, h, http.MethodGet, "/api/lists", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	h := newTestServer(t, app.Options{})

	rec := do(t, h, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var report observability.HealthReport
	decode(t, rec, &report)
	assert.Equal(t, observability.HealthStatusHealthy, report.Status)

	rec = do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), observability.MetricHTTPRequests)
}

func TestCORS(t *testing.T) {
	h := newTestServer(t, app.Options{})

	req := httptest.NewRequest(http.MethodOptions, "/api/tasks/analyze/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/strategies", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestIDIsPropagated(t *testing.T) {
	h := newTestServer(t, app.Options{})

	req := httptest.NewRequest(http.MethodGet, "/api/strategies", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
}
