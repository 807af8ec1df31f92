package taskfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/task"
)

// PropEstimatedHours carries an explicit effort estimate on a VTODO.
const PropEstimatedHours = "X-ESTIMATED-HOURS"

// decodeICS turns the VTODO components of one or more calendars into task
// objects. Completed and cancelled to-dos are skipped.
func decodeICS(data []byte) (any, error) {
	dec := ical.NewDecoder(bytes.NewReader(data))

	tasks := []any{}
	for {
		cal, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse iCalendar task file: %w", err)
		}

		for _, child := range cal.Children {
			if child.Name != ical.CompToDo {
				continue
			}
			t, skip, err := todoToTask(child)
			if err != nil {
				return nil, err
			}
			if !skip {
				tasks = append(tasks, t)
			}
		}
	}
	return tasks, nil
}

func todoToTask(todo *ical.Component) (map[string]any, bool, error) {
	if status := propText(todo, ical.PropStatus); status == "COMPLETED" || status == "CANCELLED" {
		return nil, true, nil
	}

	t := map[string]any{
		"title":        propText(todo, ical.PropSummary),
		"dependencies": []any{},
	}
	if uid := propText(todo, ical.PropUID); uid != "" {
		t["id"] = uid
	}
	if desc := propText(todo, ical.PropDescription); desc != "" {
		t["description"] = desc
	}

	if prop := todo.Props.Get(ical.PropDue); prop != nil {
		due, err := prop.DateTime(time.UTC)
		if err != nil {
			return nil, false, fmt.Errorf("invalid DUE on to-do %q: %w", t["title"], err)
		}
		t["due_date"] = task.DateOf(due).String()
	}

	if prop := todo.Props.Get(ical.PropPriority); prop != nil {
		priority, err := prop.Int()
		if err != nil {
			return nil, false, fmt.Errorf("invalid PRIORITY on to-do %q: %w", t["title"], err)
		}
		if importance, ok := importanceFromPriority(priority); ok {
			t["importance"] = importance
		}
	}

	hours, err := estimatedHours(todo)
	if err != nil {
		return nil, false, fmt.Errorf("invalid effort on to-do %q: %w", t["title"], err)
	}
	if hours > 0 {
		t["estimated_hours"] = hours
	}

	var related []any
	for _, prop := range todo.Props.Values(ical.PropRelatedTo) {
		if v := strings.TrimSpace(prop.Value); v != "" {
			related = append(related, v)
		}
	}
	if len(related) > 0 {
		t["depends_on"] = related
	}

	return t, false, nil
}

// importanceFromPriority maps iCalendar PRIORITY (1 highest, 9 lowest,
// 0 undefined) onto importance 10..2.
func importanceFromPriority(priority int) (int, bool) {
	if priority < 1 || priority > 9 {
		return 0, false
	}
	return 11 - priority, true
}

// estimatedHours reads X-ESTIMATED-HOURS, falling back to DURATION rounded
// up to whole hours. Zero means neither is present.
func estimatedHours(todo *ical.Component) (int, error) {
	if v := propText(todo, PropEstimatedHours); v != "" {
		return strconv.Atoi(v)
	}
	prop := todo.Props.Get(ical.PropDuration)
	if prop == nil {
		return 0, nil
	}
	d, err := prop.Duration()
	if err != nil {
		return 0, err
	}
	hours := int(math.Ceil(d.Hours()))
	if hours < 1 {
		hours = 1
	}
	return hours, nil
}

func propText(c *ical.Component, name string) string {
	prop := c.Props.Get(name)
	if prop == nil {
		return ""
	}
	text, err := prop.Text()
	if err != nil {
		return strings.TrimSpace(prop.Value)
	}
	return strings.TrimSpace(text)
}
