package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/felixgeelhaar/taskrank/internal/ranking/application/commands"
	"github.com/felixgeelhaar/taskrank/internal/ranking/application/services"
	"github.com/felixgeelhaar/taskrank/internal/ranking/infrastructure/validation"
)

// SuggestResponse is the body of POST /api/tasks/suggest.
type SuggestResponse struct {
	Suggestions []services.Suggestion `json:"suggestions"`
}

// readBody reads at most MaxBodyBytes.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
}

// hasTasks reports whether body carries a non-empty "tasks" array. Bodies
// that are not JSON objects report true and are left to the validator.
func hasTasks(body []byte) bool {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return true
	}
	var tasks []json.RawMessage
	if err := json.Unmarshal(probe["tasks"], &tasks); err != nil {
		return len(probe["tasks"]) > 0
	}
	return len(tasks) > 0
}

// handleAnalyze handles POST /api/tasks/analyze/
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !hasTasks(body) {
		s.writeError(w, r, commands.ErrNoTasks)
		return
	}

	req, err := s.c.Validator.Decode(validation.KindAnalyze, body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.c.AnalyzeTasksHandler.Handle(r.Context(), commands.AnalyzeTasksCommand{
		Tasks:    req.Tasks,
		Strategy: req.Strategy,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeRanking(w, result)
}

// handleSuggest handles POST /api/tasks/suggest/
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	req, err := s.c.Validator.Decode(validation.KindSuggest, body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.c.SuggestTasksHandler.Handle(r.Context(), commands.SuggestTasksCommand{
		Tasks:    req.Tasks,
		Strategy: req.Strategy,
		Limit:    req.Limit,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SuggestResponse{Suggestions: result.Suggestions})
}

// handleStrategies handles GET /api/strategies
func (s *Server) handleStrategies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.c.ListStrategiesHandler.Handle(r.Context()))
}

func writeRanking(w http.ResponseWriter, result *commands.AnalyzeTasksResult) {
	cacheStatus := "miss"
	if result.Cached {
		cacheStatus = "hit"
	}
	w.Header().Set("X-Cache", cacheStatus)
	writeJSON(w, http.StatusOK, result.Ranking)
}

