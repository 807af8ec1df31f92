package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/felixgeelhaar/taskrank/internal/ranking/application/commands"
	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/task"
	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/tasklist"
	"github.com/felixgeelhaar/taskrank/internal/ranking/infrastructure/validation"
	"github.com/felixgeelhaar/taskrank/pkg/observability"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error  string             `json:"error"`
	Issues []validation.Issue `json:"issues,omitempty"`
}

// statusFor maps an application error to an HTTP status.
func statusFor(err error) int {
	var (
		validationErr *validation.Error
		missingErr    *commands.MissingFieldsError
		syntaxErr     *json.SyntaxError
		typeErr       *json.UnmarshalTypeError
		tooLargeErr   *http.MaxBytesError
	)
	switch {
	case errors.As(err, &tooLargeErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &validationErr),
		errors.As(err, &missingErr),
		errors.As(err, &syntaxErr),
		errors.As(err, &typeErr),
		errors.Is(err, task.ErrInvalidDate),
		errors.Is(err, commands.ErrNoTasks),
		errors.Is(err, commands.ErrBatchTooLarge),
		errors.Is(err, commands.ErrUnknownStrategy),
		errors.Is(err, tasklist.ErrInvalidName):
		return http.StatusBadRequest
	case errors.Is(err, tasklist.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, tasklist.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	resp := ErrorResponse{Error: err.Error()}

	var validationErr *validation.Error
	switch {
	case errors.Is(err, commands.ErrNoTasks):
		resp.Error = "No tasks provided"
	case errors.As(err, &validationErr):
		resp.Issues = validationErr.Issues
	}

	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, observability.ErrorKey, err)
	}
	writeJSON(w, status, resp)
}
