package main

import (
	"errors"
	"testing"
	"time"

	"github.com/amonks/taskgraph/todo"
)

var testNow = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

func newTestList(t *testing.T, descs ...string) (*todo.List, []todo.ID) {
	t.Helper()

	l, err := todo.New(todo.Options{Clock: todo.ClockFunc(func() time.Time { return testNow })})
	if err != nil {
		t.Fatalf("new list: %v", err)
	}
	ids := make([]todo.ID, 0, len(descs))
	for _, desc := range descs {
		id, err := l.Add(desc)
		if err != nil {
			t.Fatalf("add %q: %v", desc, err)
		}
		ids = append(ids, id)
	}
	return l, ids
}

func TestResolveKey(t *testing.T) {
	l, ids := newTestList(t, "write report", "email report", "buy milk")

	id, err := resolveKey(l, "2")
	if err != nil || id != ids[1] {
		t.Fatalf("expected number 2 to resolve to %v, got %v, %v", ids[1], id, err)
	}

	id, err = resolveKey(l, "milk")
	if err != nil || id != ids[2] {
		t.Fatalf("expected milk to resolve to %v, got %v, %v", ids[2], id, err)
	}

	_, err = resolveKey(l, "report")
	if !errors.Is(err, errAmbiguousKey) {
		t.Fatalf("expected ambiguous key error, got %v", err)
	}
	if want := `ambiguous task key: "report" matches tasks 1, 2`; err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}

	if _, err := resolveKey(l, "7"); !errors.Is(err, todo.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
	if _, err := resolveKey(l, "eggs"); !errors.Is(err, todo.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestResolveKeysStopsAtFirstError(t *testing.T) {
	l, _ := newTestList(t, "a", "b")

	if _, err := resolveKeys(l, []string{"1", "9"}); err == nil {
		t.Fatalf("expected error")
	}
	ids, err := resolveKeys(l, []string{"2", "1"})
	if err != nil || len(ids) != 2 {
		t.Fatalf("expected two ids, got %v, %v", ids, err)
	}
}

func TestSplitTrailing(t *testing.T) {
	keys, last := splitTrailing([]string{"1", "2", "5"})
	if len(keys) != 2 || keys[1] != "2" || last != "5" {
		t.Fatalf("unexpected split %v %q", keys, last)
	}
}
