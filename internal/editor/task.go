package editor

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/amonks/taskgraph/internal/dates"
	"github.com/amonks/taskgraph/todo"
)

// DateLayout is how dates are written into the editor buffer.
const DateLayout = "2006-01-02 15:04"

// TaskData represents the data used to render the TOML template.
type TaskData struct {
	// Number is the display number (only for updates).
	Number int
	// IsUpdate is true when editing an existing task.
	IsUpdate bool
	// Desc is the task description.
	Desc string
	// Priority is the explicit priority.
	Priority int
	// DueDate is the explicit due date, nil for none.
	DueDate *time.Time
	// StartDate is set when the task is snoozed.
	StartDate *time.Time
}

// DefaultCreateData returns TaskData with default values for adding a task.
func DefaultCreateData() TaskData {
	return TaskData{}
}

// DataFromTask creates TaskData from an existing task for editing.
func DataFromTask(number int, t todo.Task, now time.Time) TaskData {
	data := TaskData{
		Number:   number,
		IsUpdate: true,
		Desc:     t.Desc,
		Priority: t.Priority,
		DueDate:  t.DueDate,
	}
	if t.IsSnoozed(now) {
		start := t.StartDate
		data.StartDate = &start
	}
	return data
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Local().Format(DateLayout)
}

var taskTemplate = template.Must(template.New("task").Funcs(template.FuncMap{
	"date": formatDate,
}).Parse(`{{- if .IsUpdate }}# task {{ .Number }}
{{ end -}}
priority = {{ .Priority }} # higher is more urgent
due = {{ printf "%q" (date .DueDate) }} # e.g. 2025-01-31, friday, +3d; empty for none
start = {{ printf "%q" (date .StartDate) }} # snooze until this date; empty to start now
---
{{ .Desc }}
`))

// RenderTaskTOML renders the task data as a TOML string for editing.
func RenderTaskTOML(data TaskData) (string, error) {
	var buf bytes.Buffer
	if err := taskTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

// ParsedTask represents the parsed result from the TOML editor output.
type ParsedTask struct {
	Desc      string
	Priority  int
	DueDate   *time.Time
	StartDate *time.Time
}

type frontmatter struct {
	Priority int    `toml:"priority"`
	Due      string `toml:"due"`
	Start    string `toml:"start"`
}

// ParseTaskTOML parses the TOML content from the editor. Dates left exactly
// as rendered from base keep their original value, so an untouched buffer
// changes nothing.
func ParseTaskTOML(content string, base TaskData, now time.Time) (*ParsedTask, error) {
	head, body := splitFrontmatter(content)

	var fm frontmatter
	meta, err := toml.Decode(head, &fm)
	if err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parse TOML: unknown key %s", undecoded[0])
	}

	parsed := ParsedTask{
		Desc:     todo.NormalizeDesc(body),
		Priority: fm.Priority,
	}
	if err := todo.ValidateDesc(parsed.Desc); err != nil {
		return nil, err
	}

	parsed.DueDate, err = parseDateField("due", fm.Due, base.DueDate, now)
	if err != nil {
		return nil, err
	}
	parsed.StartDate, err = parseDateField("start", fm.Start, base.StartDate, now)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseDateField(name, value string, original *time.Time, now time.Time) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if original != nil && value == formatDate(original) {
		return original, nil
	}
	parsed, err := dates.ParseOptional(value, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return parsed, nil
}

func splitFrontmatter(content string) (string, string) {
	content = strings.TrimLeft(content, "\n")
	if content == "" {
		return "", ""
	}

	lines := strings.Split(content, "\n")
	separatorIndex := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			separatorIndex = i
			break
		}
	}
	if separatorIndex == -1 {
		return content, ""
	}

	frontmatter := strings.Join(lines[:separatorIndex], "\n")
	body := strings.Join(lines[separatorIndex+1:], "\n")
	return frontmatter, body
}

func createTaskTempFile() (*os.File, error) {
	return os.CreateTemp("", "tg-task-*.md")
}

// EditTaskWithData opens the editor with pre-populated data and returns the parsed result.
func EditTaskWithData(data TaskData, now time.Time) (*ParsedTask, error) {
	content, err := RenderTaskTOML(data)
	if err != nil {
		return nil, err
	}

	tmpfile, err := createTaskTempFile()
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpfile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpfile.WriteString(content); err != nil {
		tmpfile.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpfile.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	if err := Edit(tmpPath); err != nil {
		return nil, err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("read edited file: %w", err)
	}

	return ParseTaskTOML(string(edited), data, now)
}

// Apply writes the parsed fields onto a task. An empty start date wakes a
// snoozed task and leaves an awake one alone.
func (p *ParsedTask) Apply(l *todo.List, id todo.ID) error {
	task, err := l.Get(id)
	if err != nil {
		return err
	}
	if err := l.SetDesc(id, p.Desc); err != nil {
		return err
	}
	if err := l.SetPriority(id, p.Priority); err != nil {
		return err
	}
	if err := l.SetDueDate(id, p.DueDate); err != nil {
		return err
	}

	now := l.Now()
	switch {
	case p.StartDate != nil:
		return l.SetStartDate(id, *p.StartDate)
	case task.IsSnoozed(now):
		return l.SetStartDate(id, now)
	}
	return nil
}
