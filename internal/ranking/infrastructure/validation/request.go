package validation

import (
	"encoding/json"

	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/task"
)

// Request is the body accepted by the analyze and suggest operations.
// Strategy is nil when the body has no strategy key.
type Request struct {
	Tasks    []task.Task `json:"tasks"`
	Strategy *string     `json:"strategy,omitempty"`
	Limit    int         `json:"limit,omitempty"`
}

// Decode validates body against the schema of kind and decodes it. Date
// errors surface as task.ErrInvalidDate.
func (v *Validator) Decode(kind Kind, body []byte) (*Request, error) {
	if err := v.Validate(kind, body); err != nil {
		return nil, err
	}
	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, err
	}
	return &req, nil
}
