// Package taskfile reads task batches from JSON, YAML and iCalendar files
// and normalizes them into the JSON request body the rankers accept.
package taskfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/task"
	"go.yaml.in/yaml/v3"
)

// Format names a task file encoding.
type Format string

const (
	FormatAuto Format = ""
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatICS  Format = "ics"
)

// ErrUnsupportedFormat is returned for formats Decode does not know.
var ErrUnsupportedFormat = errors.New("unsupported task file format")

// ParseFormat maps a user supplied name to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "ics", "ical", "icalendar":
		return FormatICS, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// DetectFormat picks a format from the file extension. Unknown extensions
// and "-" give FormatAuto.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".ics", ".ical", ".ifb":
		return FormatICS
	}
	return FormatAuto
}

// Sniff guesses the format of data from its first bytes.
func Sniff(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0:
		return FormatJSON
	case trimmed[0] == '{' || trimmed[0] == '[':
		return FormatJSON
	case bytes.HasPrefix(bytes.ToUpper(trimmed), []byte("BEGIN:VCALENDAR")):
		return FormatICS
	}
	return FormatYAML
}

// Decode converts a task file into a request body of the form
// {"tasks": [...], ...}. A bare list of tasks is wrapped; other top-level
// keys of an object document, such as "strategy", are kept.
func Decode(data []byte, format Format) ([]byte, error) {
	if format == FormatAuto {
		format = Sniff(data)
	}

	var (
		doc any
		err error
	)
	switch format {
	case FormatJSON:
		doc, err = decodeJSON(data)
	case FormatYAML:
		doc, err = decodeYAML(data)
	case FormatICS:
		doc, err = decodeICS(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}

	body, err := wrap(doc)
	if err != nil {
		return nil, err
	}
	return json.Marshal(body)
}

func wrap(doc any) (map[string]any, error) {
	switch v := doc.(type) {
	case nil:
		return map[string]any{"tasks": []any{}}, nil
	case []any:
		return map[string]any{"tasks": v}, nil
	case map[string]any:
		if _, ok := v["tasks"]; !ok {
			return nil, errors.New("task file has no \"tasks\" list")
		}
		return v, nil
	}
	return nil, fmt.Errorf("task file must hold a list of tasks or an object with \"tasks\", got %T", doc)
}

func decodeJSON(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON task file: %w", err)
	}
	return doc, nil
}

func decodeYAML(data []byte) (any, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML task file: %w", err)
	}
	return normalizeYAML(doc), nil
}

// normalizeYAML rewrites native YAML values into their JSON equivalents:
// timestamps become YYYY-MM-DD dates and mappings get string keys.
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case time.Time:
		return task.DateOf(val).String()
	case map[string]any:
		for k, item := range val {
			val[k] = normalizeYAML(item)
		}
		return val
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = normalizeYAML(item)
		}
		return out
	case []any:
		for i, item := range val {
			val[i] = normalizeYAML(item)
		}
		return val
	}
	return v
}
