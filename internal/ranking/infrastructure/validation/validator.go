// Package validation checks request bodies against the embedded JSON
// Schemas before they are decoded into tasks.
package validation

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const schemaBaseURL = "https://taskrank.local/schemas/"

// Kind selects the schema a body is checked against.
type Kind string

const (
	// KindAnalyze requires every task field the scorer reads.
	KindAnalyze Kind = "analyze_request"
	// KindSuggest checks types only; suggestion requests may omit fields.
	KindSuggest Kind = "suggest_request"
)

// Issue is one schema violation.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Error lists every violation found in a body.
type Error struct {
	Issues []Issue
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Path == "" {
			parts = append(parts, issue.Message)
			continue
		}
		parts = append(parts, issue.Path+": "+issue.Message)
	}
	return "invalid request: " + strings.Join(parts, "; ")
}

// Validator holds the compiled schemas.
type Validator struct {
	schemas map[Kind]*jsonschema.Schema
}

// New compiles the embedded schemas.
func New() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	kinds := []Kind{KindAnalyze, KindSuggest}
	for _, kind := range kinds {
		data, err := schemaFS.ReadFile("schemas/" + string(kind) + ".json")
		if err != nil {
			return nil, fmt.Errorf("failed to read %s schema: %w", kind, err)
		}
		if err := compiler.AddResource(schemaBaseURL+string(kind)+".json", bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("failed to load %s schema: %w", kind, err)
		}
	}

	v := &Validator{schemas: make(map[Kind]*jsonschema.Schema, len(kinds))}
	for _, kind := range kinds {
		schema, err := compiler.Compile(schemaBaseURL + string(kind) + ".json")
		if err != nil {
			return nil, fmt.Errorf("failed to compile %s schema: %w", kind, err)
		}
		v.schemas[kind] = schema
	}
	return v, nil
}

// MustNew is like New but panics on error.
func MustNew() *Validator {
	v, err := New()
	if err != nil {
		panic(err)
	}
	return v
}

// Validate checks body against the schema of kind. Violations are returned
// as *Error.
func (v *Validator) Validate(kind Kind, body []byte) error {
	schema, ok := v.schemas[kind]
	if !ok {
		return fmt.Errorf("unknown schema %q", kind)
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return &Error{Issues: []Issue{{Message: "malformed JSON: " + err.Error()}}}
	}

	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return err
		}
		result := &Error{}
		collectIssues(result, ve)
		return result
	}
	return nil
}

func collectIssues(result *Error, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		result.Issues = append(result.Issues, Issue{
			Path:    pointerToPath(err.InstanceLocation),
			Message: err.Message,
		})
		return
	}
	for _, cause := range err.Causes {
		collectIssues(result, cause)
	}
}

// pointerToPath turns "/tasks/0/importance" into "tasks[0].importance".
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(strings.TrimPrefix(ptr, "#"), "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
