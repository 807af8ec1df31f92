// Package task defines the to-do records that are scored and ranked.
package task

import (
	"encoding/json"
	"strings"
)

// Defaults applied when optional scoring inputs are absent.
const (
	DefaultImportance     = 5
	DefaultEstimatedHours = 1
)

// Required field names, in the order they are reported.
const (
	FieldTitle          = "title"
	FieldDueDate        = "due_date"
	FieldEstimatedHours = "estimated_hours"
	FieldImportance     = "importance"
)

// Task is a to-do item supplied by a caller.
//
// Optional inputs are pointers so that "absent" and "zero" stay distinct;
// the accessor methods apply the defaults. Keys the type does not know are
// kept in Extra and written back unchanged.
type Task struct {
	ID             string
	Title          string
	DueDate        *Date
	EstimatedHours *int
	Importance     *int
	Dependencies   []int
	DependsOn      []string
	Extra          map[string]json.RawMessage

	// present records the known keys a decoded task carried, so that they
	// are written back even when empty.
	present fieldSet
}

type fieldSet uint8

const (
	hasID fieldSet = 1 << iota
	hasTitle
	hasDueDate
	hasEstimatedHours
	hasImportance
	hasDependencies
	hasDependsOn
)

// Int returns a pointer to n.
func Int(n int) *int {
	return &n
}

// ImportanceOrDefault returns the importance, or DefaultImportance when absent.
func (t Task) ImportanceOrDefault() int {
	if t.Importance == nil {
		return DefaultImportance
	}
	return *t.Importance
}

// HoursOrDefault returns the estimated hours, or DefaultEstimatedHours when absent.
func (t Task) HoursOrDefault() int {
	if t.EstimatedHours == nil {
		return DefaultEstimatedHours
	}
	return *t.EstimatedHours
}

// DueDateOr returns the due date, or fallback when absent.
func (t Task) DueDateOr(fallback Date) Date {
	if t.DueDate == nil {
		return fallback
	}
	return *t.DueDate
}

// DependencyCount is the number of dependency references the task carries,
// whether or not they resolve to another task.
func (t Task) DependencyCount() int {
	return len(t.Dependencies) + len(t.DependsOn)
}

// MissingFields lists the required fields the task does not carry. A title
// key that is present counts even when empty.
func (t Task) MissingFields() []string {
	var missing []string
	if t.Title == "" && t.present&hasTitle == 0 {
		missing = append(missing, FieldTitle)
	}
	if t.DueDate == nil {
		missing = append(missing, FieldDueDate)
	}
	if t.EstimatedHours == nil {
		missing = append(missing, FieldEstimatedHours)
	}
	if t.Importance == nil {
		missing = append(missing, FieldImportance)
	}
	return missing
}

// DisplayTitle returns the title, or "Unknown" when it is blank.
func (t Task) DisplayTitle() string {
	if strings.TrimSpace(t.Title) == "" {
		return "Unknown"
	}
	return t.Title
}

type taskJSON struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	DueDate        *Date    `json:"due_date"`
	EstimatedHours *int     `json:"estimated_hours"`
	Importance     *int     `json:"importance"`
	Dependencies   []int    `json:"dependencies"`
	DependsOn      []string `json:"depends_on"`
}

var knownKeys = map[string]fieldSet{
	"id":              hasID,
	"title":           hasTitle,
	"due_date":        hasDueDate,
	"estimated_hours": hasEstimatedHours,
	"importance":      hasImportance,
	"dependencies":    hasDependencies,
	"depends_on":      hasDependsOn,
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Task) UnmarshalJSON(data []byte) error {
	var known taskJSON
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}

	*t = Task{
		ID:             known.ID,
		Title:          known.Title,
		DueDate:        known.DueDate,
		EstimatedHours: known.EstimatedHours,
		Importance:     known.Importance,
		Dependencies:   known.Dependencies,
		DependsOn:      known.DependsOn,
	}
	for key, raw := range all {
		if bit, ok := knownKeys[key]; ok {
			t.present |= bit
			continue
		}
		if t.Extra == nil {
			t.Extra = make(map[string]json.RawMessage)
		}
		t.Extra[key] = raw
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Task) MarshalJSON() ([]byte, error) {
	fields, err := t.fields()
	if err != nil {
		return nil, err
	}
	return json.Marshal(fields)
}

// fields flattens the task and its passthrough keys into one object. A known
// key is written when it was decoded or when its value is set.
func (t Task) fields() (map[string]json.RawMessage, error) {
	known := []struct {
		key   string
		bit   fieldSet
		set   bool
		value any
	}{
		{key: "id", bit: hasID, set: t.ID != "", value: t.ID},
		{key: "title", bit: hasTitle, set: t.Title != "", value: t.Title},
		{key: "due_date", bit: hasDueDate, set: t.DueDate != nil, value: t.DueDate},
		{key: "estimated_hours", bit: hasEstimatedHours, set: t.EstimatedHours != nil, value: t.EstimatedHours},
		{key: "importance", bit: hasImportance, set: t.Importance != nil, value: t.Importance},
		{key: "dependencies", bit: hasDependencies, set: t.Dependencies != nil, value: t.Dependencies},
		{key: "depends_on", bit: hasDependsOn, set: t.DependsOn != nil, value: t.DependsOn},
	}

	fields := make(map[string]json.RawMessage, len(t.Extra)+len(known))
	for key, raw := range t.Extra {
		fields[key] = raw
	}
	for _, f := range known {
		if !f.set && t.present&f.bit == 0 {
			continue
		}
		raw, err := json.Marshal(f.value)
		if err != nil {
			return nil, err
		}
		fields[f.key] = raw
	}
	return fields, nil
}
