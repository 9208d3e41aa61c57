package todo

import (
	"slices"
	"testing"
	"time"
)

var testEpoch = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestList(t *testing.T, policy CheckPolicy) (*List, *testClock) {
	t.Helper()

	clock := &testClock{now: testEpoch}
	l, err := New(Options{Clock: clock, CheckPolicy: policy})
	if err != nil {
		t.Fatalf("new list: %v", err)
	}
	return l, clock
}

// addTasks adds one task per description and advances the clock a minute
// between them.
func addTasks(t *testing.T, l *List, clock *testClock, descs ...string) []ID {
	t.Helper()

	ids := make([]ID, 0, len(descs))
	for _, desc := range descs {
		id, err := l.Add(desc)
		if err != nil {
			t.Fatalf("add %q: %v", desc, err)
		}
		ids = append(ids, id)
		clock.Advance(time.Minute)
	}
	return ids
}

func mustBlock(t *testing.T, l *List, a, b ID) {
	t.Helper()
	if err := l.Block(a, b); err != nil {
		t.Fatalf("block %s on %s: %v", b, a, err)
	}
}

func mustCheck(t *testing.T, l *List, id ID) TaskSet {
	t.Helper()
	unblocked, err := l.Check(id)
	if err != nil {
		t.Fatalf("check %s: %v", id, err)
	}
	return unblocked
}

func mustStatus(t *testing.T, l *List, id ID) Status {
	t.Helper()
	status, err := l.Status(id)
	if err != nil {
		t.Fatalf("status %s: %v", id, err)
	}
	return status
}

func mustNumber(t *testing.T, l *List, id ID) int {
	t.Helper()
	n, err := l.Number(id)
	if err != nil {
		t.Fatalf("number %s: %v", id, err)
	}
	return n
}

// descs returns the descriptions yielded by seq.
func descs(l *List, seq func(yield func(ID) bool)) []string {
	var out []string
	for id := range seq {
		out = append(out, l.tasks[id].Desc)
	}
	return out
}

func assertDescs(t *testing.T, got, want []string) {
	t.Helper()
	if !slices.Equal(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
