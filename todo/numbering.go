package todo

import (
	"fmt"
	"strconv"
	"strings"
)

// Number returns a task's display number. Incomplete tasks are numbered
// 1..N in the incomplete order; complete tasks are numbered 0, -1, -2, ...
// from the most recently completed backward. Numbers are never stored and
// shift as tasks are added, removed, checked and restored.
func (l *List) Number(id ID) (int, error) {
	if err := l.ensureLive(id); err != nil {
		return 0, err
	}
	if index := indexOf(l.incomplete, id); index >= 0 {
		return index + 1, nil
	}
	if index := indexOf(l.complete, id); index >= 0 {
		return index - (len(l.complete) - 1), nil
	}
	return 0, missingTaskError(id)
}

// numbers returns the display number of every task.
func (l *List) numbers() map[ID]int {
	out := make(map[ID]int, l.Len())
	for i, id := range l.incomplete {
		out[id] = i + 1
	}
	for i, id := range l.complete {
		out[id] = i - (len(l.complete) - 1)
	}
	return out
}

// LookupByNumber returns the task with the given display number.
func (l *List) LookupByNumber(n int) (ID, error) {
	if n >= 1 {
		if n > len(l.incomplete) {
			return 0, &NumberError{Number: n}
		}
		return l.incomplete[n-1], nil
	}

	index := len(l.complete) - 1 + n
	if index < 0 {
		return 0, &NumberError{Number: n}
	}
	return l.complete[index], nil
}

// LookupByName returns every task whose description contains text,
// case-sensitively, in display order.
func (l *List) LookupByName(text string) []ID {
	var matches []ID
	for id := range l.AllTasks() {
		if strings.Contains(l.tasks[id].Desc, text) {
			matches = append(matches, id)
		}
	}
	return matches
}

// Resolve interprets key as a display number when it parses as an integer
// and as a description substring otherwise.
func (l *List) Resolve(key string) ([]ID, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("%w: empty key", ErrTaskNotFound)
	}
	if n, err := strconv.Atoi(key); err == nil {
		id, err := l.LookupByNumber(n)
		if err != nil {
			return nil, err
		}
		return []ID{id}, nil
	}

	matches := l.LookupByName(key)
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrTaskNotFound, key)
	}
	return matches, nil
}
