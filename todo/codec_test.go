package todo

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func buildSampleList(t *testing.T) (*List, *testClock) {
	t.Helper()

	l, clock := newTestList(t, "")
	ids := addTasks(t, l, clock, "write report", "gather data", "scratch", "email boss", "book room")
	report, data, scratch, email, room := ids[0], ids[1], ids[2], ids[3], ids[4]
	due := testEpoch.Add(72 * time.Hour)

	mustBlock(t, l, data, report)
	mustBlock(t, l, report, email)
	_ = l.SetPriority(email, 2)
	_ = l.SetDueDate(report, &due)
	_ = l.SetStartDate(room, testEpoch.Add(24*time.Hour))
	if err := l.Remove(scratch); err != nil {
		t.Fatalf("remove: %v", err)
	}
	mustCheck(t, l, data)
	return l, clock
}

func TestMarshalRoundTripIsByteStable(t *testing.T) {
	l, _ := buildSampleList(t)

	first, err := Marshal(l)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	decoded, err := Unmarshal(first, Options{})
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	second, err := Marshal(decoded)
	if err != nil {
		t.Fatalf("marshal decoded: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("round trip changed bytes:\n%s\n---\n%s", first, second)
	}
}

func TestUnmarshalPreservesObservableState(t *testing.T) {
	l, _ := buildSampleList(t)
	data, err := Marshal(l)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	decoded, err := Unmarshal(data, Options{})
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	assertDescs(t, descs(decoded, decoded.AllTasks()), descs(l, l.AllTasks()))
	if decoded.Len() != l.Len() {
		t.Fatalf("expected %d tasks, got %d", l.Len(), decoded.Len())
	}

	for n := 0; n <= 3; n++ {
		want, _ := l.LookupByNumber(n)
		got, err := decoded.LookupByNumber(n)
		if err != nil {
			t.Fatalf("lookup %d: %v", n, err)
		}
		if decoded.tasks[got].Desc != l.tasks[want].Desc {
			t.Fatalf("number %d: expected %q, got %q", n, l.tasks[want].Desc, decoded.tasks[got].Desc)
		}
		wantStatus, _ := l.Status(want)
		if gotStatus := mustStatus(t, decoded, got); gotStatus != wantStatus {
			t.Fatalf("number %d: expected %s, got %s", n, wantStatus, gotStatus)
		}
		wantPriority, _ := l.ImplicitPriority(want)
		if gotPriority, _ := decoded.ImplicitPriority(got); gotPriority != wantPriority {
			t.Fatalf("number %d: expected implicit priority %d, got %d", n, wantPriority, gotPriority)
		}
	}
}

func TestMarshalEmptyList(t *testing.T) {
	l, _ := newTestList(t, "")

	data, err := Marshal(l)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, field := range []string{`"tasks": []`, `"edges": []`, `"incomplete": []`, `"complete": []`} {
		if !strings.Contains(string(data), field) {
			t.Fatalf("expected %s in %s", field, data)
		}
	}
	if _, err := Unmarshal(data, Options{}); err != nil {
		t.Fatalf("unmarshal empty list: %v", err)
	}
}

const validTask = `{"desc": "a", "creation_time": "2025-01-01T09:00:00Z", "priority": 0, "start_date": "2025-01-01T09:00:00Z"}`
const completeTask = `{"desc": "b", "creation_time": "2025-01-01T09:00:00Z", "completion_time": "2025-01-01T10:00:00Z", "priority": 0, "start_date": "2025-01-01T09:00:00Z"}`

func TestUnmarshalRejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{"not json", `{`, nil},
		{"wrong version", `{"version": 2, "tasks": [], "edges": [], "incomplete": [], "complete": []}`, nil},
		{"missing field", `{"version": 1, "tasks": [], "edges": [], "incomplete": []}`, nil},
		{"unknown field", `{"version": 1, "tasks": [], "edges": [], "incomplete": [], "complete": [], "extra": 1}`, nil},
		{"bad timestamp", `{"version": 1, "tasks": [{"desc": "a", "creation_time": "yesterday", "priority": 0, "start_date": "2025-01-01T09:00:00Z"}], "edges": [], "incomplete": [0], "complete": []}`, nil},
		{"empty desc", `{"version": 1, "tasks": [{"desc": "", "creation_time": "2025-01-01T09:00:00Z", "priority": 0, "start_date": "2025-01-01T09:00:00Z"}], "edges": [], "incomplete": [0], "complete": []}`, nil},
		{"edge out of range", `{"version": 1, "tasks": [` + validTask + `], "edges": [{"blocker": 0, "blocked": 3}], "incomplete": [0], "complete": []}`, nil},
		{"order out of range", `{"version": 1, "tasks": [` + validTask + `], "edges": [], "incomplete": [0, 1], "complete": []}`, nil},
		{"cycle", `{"version": 1, "tasks": [` + validTask + `, ` + validTask + `], "edges": [{"blocker": 0, "blocked": 1}, {"blocker": 1, "blocked": 0}], "incomplete": [0, 1], "complete": []}`, ErrWouldCycle},
		{"misfiled", `{"version": 1, "tasks": [` + validTask + `, ` + completeTask + `], "edges": [], "incomplete": [0, 1], "complete": []}`, nil},
		{"duplicate", `{"version": 1, "tasks": [` + validTask + `], "edges": [], "incomplete": [0, 0], "complete": []}`, nil},
		{"missing from orderings", `{"version": 1, "tasks": [` + validTask + `], "edges": [], "incomplete": [], "complete": []}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.doc), Options{})
			if !errors.Is(err, ErrDeserialize) {
				t.Fatalf("expected ErrDeserialize, got %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestUnmarshalLenientThenClean(t *testing.T) {
	doc := `{"version": 1, "tasks": [` + validTask + `, ` + completeTask + `, ` + validTask + `], "edges": [], "incomplete": [1, 0, 0], "complete": []}`

	l, err := UnmarshalLenient([]byte(doc), Options{})
	if err != nil {
		t.Fatalf("unmarshal lenient: %v", err)
	}
	if err := l.Validate(); err == nil {
		t.Fatalf("expected corrupted orderings to fail validation")
	}

	l.Clean()
	if err := l.Validate(); err != nil {
		t.Fatalf("expected clean to repair orderings: %v", err)
	}
	if got := len(l.incomplete); got != 2 {
		t.Fatalf("expected 2 incomplete tasks, got %d", got)
	}
	if got := len(l.complete); got != 1 {
		t.Fatalf("expected 1 complete task, got %d", got)
	}
}

func TestSchemaPath(t *testing.T) {
	tests := []struct {
		ptr  string
		want string
	}{
		{"", "document"},
		{"/tasks/0/desc", "tasks[0].desc"},
		{"/edges/12", "edges[12]"},
		{"#/version", "version"},
	}
	for _, tt := range tests {
		if got := schemaPath(tt.ptr); got != tt.want {
			t.Errorf("schemaPath(%q) = %q, want %q", tt.ptr, got, tt.want)
		}
	}
}
