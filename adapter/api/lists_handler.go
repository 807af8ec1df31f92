package api

import (
	"encoding/json"
	"net/http"

	"github.com/felixgeelhaar/taskrank/internal/ranking/application/commands"
	"github.com/felixgeelhaar/taskrank/internal/ranking/application/queries"
	"github.com/felixgeelhaar/taskrank/internal/ranking/infrastructure/validation"
)

// ListsResponse is the body of GET /api/lists.
type ListsResponse struct {
	Lists []queries.TaskListSummaryDTO `json:"lists"`
}

// handleListLists handles GET /api/lists
func (s *Server) handleListLists(w http.ResponseWriter, r *http.Request) {
	lists, err := s.c.ListTaskListsHandler.Handle(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ListsResponse{Lists: lists})
}

// handleGetList handles GET /api/lists/{name}
func (s *Server) handleGetList(w http.ResponseWriter, r *http.Request) {
	dto, err := s.c.GetTaskListHandler.Handle(r.Context(), queries.GetTaskListQuery{Name: r.PathValue("name")})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// handleSaveList handles PUT /api/lists/{name}. The body is a suggest-style
// request; fields are checked when the list is analyzed.
func (s *Server) handleSaveList(w http.ResponseWriter, r *http.Request) {
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

	result, err := s.c.SaveTaskListHandler.Handle(r.Context(), commands.SaveTaskListCommand{
		Name:  r.PathValue("name"),
		Tasks: req.Tasks,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	writeJSON(w, status, queries.TaskListOf(result.List))
}

// handleDeleteList handles DELETE /api/lists/{name}
func (s *Server) handleDeleteList(w http.ResponseWriter, r *http.Request) {
	err := s.c.DeleteTaskListHandler.Handle(r.Context(), commands.DeleteTaskListCommand{Name: r.PathValue("name")})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAnalyzeList handles POST /api/lists/{name}/analyze. The body is
// optional and may carry a strategy.
func (s *Server) handleAnalyzeList(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req struct {
		Strategy *string `json:"strategy"`
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	result, err := s.c.AnalyzeTasksHandler.Handle(r.Context(), commands.AnalyzeTasksCommand{
		ListName: r.PathValue("name"),
		Strategy: req.Strategy,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeRanking(w, result)
}
