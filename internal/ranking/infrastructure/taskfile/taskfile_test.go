package taskfile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	tests := map[string]Format{
		"tasks.json":      FormatJSON,
		"tasks.YAML":      FormatYAML,
		"tasks.yml":       FormatYAML,
		"calendar.ics":    FormatICS,
		"-":               FormatAuto,
		"tasks":           FormatAuto,
		"dir/tasks.v2.js": FormatAuto,
	}
	for path, want := range tests {
		assert.Equal(t, want, DetectFormat(path), path)
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestSniff(t *testing.T) {
	assert.Equal(t, FormatJSON, Sniff([]byte("  [ ]")))
	assert.Equal(t, FormatJSON, Sniff([]byte(`{"tasks": []}`)))
	assert.Equal(t, FormatICS, Sniff([]byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n")))
	assert.Equal(t, FormatYAML, Sniff([]byte("tasks:\n  - title: x\n")))
}

func TestDecode_JSON(t *testing.T) {
	t.Run("bare array is wrapped", func(t *testing.T) {
		body, err := Decode([]byte(`[{"title":"A","importance":7}]`), FormatJSON)
		require.NoError(t, err)
		assert.JSONEq(t, `{"tasks":[{"title":"A","importance":7}]}`, string(body))
	})

	t.Run("object keeps strategy", func(t *testing.T) {
		body, err := Decode([]byte(`{"strategy":"impact","tasks":[{"title":"A"}]}`), FormatAuto)
		require.NoError(t, err)
		assert.JSONEq(t, `{"strategy":"impact","tasks":[{"title":"A"}]}`, string(body))
	})

	t.Run("empty input", func(t *testing.T) {
		body, err := Decode([]byte("  \n"), FormatJSON)
		require.NoError(t, err)
		assert.JSONEq(t, `{"tasks":[]}`, string(body))
	})

	t.Run("object without tasks", func(t *testing.T) {
		_, err := Decode([]byte(`{"items":[]}`), FormatJSON)
		assert.ErrorContains(t, err, `no "tasks" list`)
	})

	t.Run("scalar document", func(t *testing.T) {
		_, err := Decode([]byte(`42`), FormatJSON)
		assert.Error(t, err)
	})

	t.Run("syntax error", func(t *testing.T) {
		_, err := Decode([]byte(`{"tasks":[`), FormatJSON)
		assert.ErrorContains(t, err, "failed to parse JSON task file")
	})
}

func TestDecode_YAML(t *testing.T) {
	data := []byte(`
strategy: deadline
tasks:
  - title: Renew passport
    due_date: 2025-04-01
    estimated_hours: 2
    importance: 8
    dependencies: [1]
  - title: Book photo appointment
    due_date: "2025-03-20"
    estimated_hours: 1
    importance: 6
    labels:
      errand: true
`)

	body, err := Decode(data, FormatYAML)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"strategy": "deadline",
		"tasks": [
			{"title": "Renew passport", "due_date": "2025-04-01", "estimated_hours": 2, "importance": 8, "dependencies": [1]},
			{"title": "Book photo appointment", "due_date": "2025-03-20", "estimated_hours": 1, "importance": 6, "labels": {"errand": true}}
		]
	}`, string(body))
}

func TestDecode_YAMLList(t *testing.T) {
	body, err := Decode([]byte("- title: a\n- title: b\n"), FormatAuto)
	require.NoError(t, err)

	var doc struct {
		Tasks []map[string]any `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(body, &doc))
	assert.Len(t, doc.Tasks, 2)
}

const sampleICS = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//Test//EN\r\n" +
	"BEGIN:VTODO\r\n" +
	"UID:report\r\n" +
	"DTSTAMP:20250301T090000Z\r\n" +
	"SUMMARY:Quarterly report\r\n" +
	"DUE;VALUE=DATE:20250314\r\n" +
	"PRIORITY:1\r\n" +
	"X-ESTIMATED-HOURS:5\r\n" +
	"RELATED-TO:numbers\r\n" +
	"END:VTODO\r\n" +
	"BEGIN:VTODO\r\n" +
	"UID:numbers\r\n" +
	"DTSTAMP:20250301T090000Z\r\n" +
	"SUMMARY:Collect numbers\r\n" +
	"DUE:20250310T170000Z\r\n" +
	"PRIORITY:5\r\n" +
	"DURATION:PT90M\r\n" +
	"END:VTODO\r\n" +
	"BEGIN:VTODO\r\n" +
	"UID:done\r\n" +
	"DTSTAMP:20250301T090000Z\r\n" +
	"SUMMARY:Already done\r\n" +
	"STATUS:COMPLETED\r\n" +
	"END:VTODO\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:meeting\r\n" +
	"DTSTAMP:20250301T090000Z\r\n" +
	"DTSTART:20250310T100000Z\r\n" +
	"SUMMARY:Not a task\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestDecode_ICS(t *testing.T) {
	body, err := Decode([]byte(sampleICS), FormatAuto)
	require.NoError(t, err)

	assert.JSONEq(t, `{"tasks": [
		{
			"id": "report",
			"title": "Quarterly report",
			"due_date": "2025-03-14",
			"importance": 10,
			"estimated_hours": 5,
			"dependencies": [],
			"depends_on": ["numbers"]
		},
		{
			"id": "numbers",
			"title": "Collect numbers",
			"due_date": "2025-03-10",
			"importance": 6,
			"estimated_hours": 2,
			"dependencies": []
		}
	]}`, string(body))
}

func TestImportanceFromPriority(t *testing.T) {
	for priority, want := range map[int]int{1: 10, 5: 6, 9: 2} {
		got, ok := importanceFromPriority(priority)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
	_, ok := importanceFromPriority(0)
	assert.False(t, ok)
}
