package editor

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/amonks/taskgraph/internal/dates"
	"github.com/amonks/taskgraph/todo"
)

var now = time.Date(2025, 1, 1, 9, 0, 0, 0, time.Local)

func TestRenderTaskTOML_Create(t *testing.T) {
	content, err := RenderTaskTOML(DefaultCreateData())
	if err != nil {
		t.Fatalf("RenderTaskTOML failed: %v", err)
	}

	if !strings.Contains(content, "priority = 0") {
		t.Error("expected default priority 0")
	}
	if !strings.Contains(content, `due = ""`) {
		t.Error("expected empty due date")
	}
	if !strings.Contains(content, "---") {
		t.Error("expected frontmatter separator")
	}
	if strings.Contains(content, "# task") {
		t.Error("expected no task header for create")
	}
}

func TestRenderTaskTOML_Update(t *testing.T) {
	due := now.Add(48 * time.Hour)
	task := todo.Task{
		Desc:         "write report",
		CreationTime: now,
		Priority:     3,
		DueDate:      &due,
		StartDate:    now.Add(24 * time.Hour),
	}

	content, err := RenderTaskTOML(DataFromTask(4, task, now))
	if err != nil {
		t.Fatalf("RenderTaskTOML failed: %v", err)
	}
	for _, want := range []string{
		"# task 4",
		"priority = 3",
		`due = "` + due.Format(DateLayout) + `"`,
		`start = "` + now.Add(24*time.Hour).Format(DateLayout) + `"`,
		"---\nwrite report\n",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("expected %q in:\n%s", want, content)
		}
	}
}

func TestParseTaskTOML(t *testing.T) {
	content := `
priority = 2
due = "tomorrow"
start = ""
---
  buy
  milk
`

	parsed, err := ParseTaskTOML(content, DefaultCreateData(), now)
	if err != nil {
		t.Fatalf("ParseTaskTOML failed: %v", err)
	}
	if parsed.Desc != "buy milk" {
		t.Errorf("expected normalized desc, got %q", parsed.Desc)
	}
	if parsed.Priority != 2 {
		t.Errorf("expected priority 2, got %d", parsed.Priority)
	}
	want, _ := dates.Parse("tomorrow", now)
	if parsed.DueDate == nil || !parsed.DueDate.Equal(want) {
		t.Errorf("expected due %s, got %v", want, parsed.DueDate)
	}
	if parsed.StartDate != nil {
		t.Errorf("expected no start date, got %v", parsed.StartDate)
	}
}

func TestParseTaskTOMLKeepsUntouchedDates(t *testing.T) {
	due := now.Add(90*time.Minute + 17*time.Second)
	data := DataFromTask(1, todo.Task{Desc: "a", CreationTime: now, DueDate: &due, StartDate: now}, now)
	content, err := RenderTaskTOML(data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	parsed, err := ParseTaskTOML(content, data, now)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.DueDate == nil || !parsed.DueDate.Equal(due) {
		t.Fatalf("expected due date to survive to the second, got %v", parsed.DueDate)
	}
}

func TestParseTaskTOML_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"missing desc", "priority = 1\n---\n", todo.ErrEmptyDesc},
		{"bad due", "due = \"soon\"\n---\na", dates.ErrInvalidDate},
		{"bad start", "start = \"soon\"\n---\na", dates.ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTaskTOML(tt.content, DefaultCreateData(), now)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParseTaskTOMLRejectsUnknownKeys(t *testing.T) {
	_, err := ParseTaskTOML("title = \"x\"\n---\na", DefaultCreateData(), now)
	if err == nil || !strings.Contains(err.Error(), "unknown key title") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestParseTaskTOMLBadSyntax(t *testing.T) {
	if _, err := ParseTaskTOML("priority = \n---\na", DefaultCreateData(), now); err == nil {
		t.Fatalf("expected TOML error")
	}
}

func TestApply(t *testing.T) {
	l, err := todo.New(todo.Options{Clock: todo.ClockFunc(func() time.Time { return now })})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	id, err := l.Add("old")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := l.SetStartDate(id, now.Add(time.Hour)); err != nil {
		t.Fatalf("snooze: %v", err)
	}

	due := now.Add(time.Hour)
	parsed := &ParsedTask{Desc: "new", Priority: 5, DueDate: &due}
	if err := parsed.Apply(l, id); err != nil {
		t.Fatalf("apply: %v", err)
	}

	task, _ := l.Get(id)
	if task.Desc != "new" || task.Priority != 5 || task.DueDate == nil || !task.DueDate.Equal(due) {
		t.Fatalf("unexpected task %+v", task)
	}
	if task.IsSnoozed(now) {
		t.Fatalf("expected empty start to wake the task")
	}
}

func TestEditTaskWithData(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "fake-editor")
	body := "#!/bin/sh\nprintf 'priority = 7\\n---\\nedited task\\n' > \"$1\"\n"
	if err := os.WriteFile(script, []byte(body), 0755); err != nil {
		t.Fatalf("write editor: %v", err)
	}
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", script)

	parsed, err := EditTaskWithData(DefaultCreateData(), now)
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if parsed.Desc != "edited task" || parsed.Priority != 7 {
		t.Fatalf("unexpected parsed task %+v", parsed)
	}
}

func TestEditReportsEditorFailure(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "false")
	if err := Edit(filepath.Join(t.TempDir(), "x")); err == nil || !strings.Contains(err.Error(), "status 1") {
		t.Fatalf("expected exit status error, got %v", err)
	}
}
