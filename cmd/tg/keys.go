package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/amonks/taskgraph/todo"
)

var errAmbiguousKey = errors.New("ambiguous task key")

// resolveKey finds the single task named by key.
func resolveKey(l *todo.List, key string) (todo.ID, error) {
	ids, err := l.Resolve(key)
	if err != nil {
		return 0, err
	}
	if len(ids) > 1 {
		numbers := make([]string, 0, len(ids))
		for _, id := range ids {
			number, _ := l.Number(id)
			numbers = append(numbers, strconv.Itoa(number))
		}
		return 0, fmt.Errorf("%w: %q matches tasks %s", errAmbiguousKey, key, strings.Join(numbers, ", "))
	}
	return ids[0], nil
}

// resolveKeys resolves every key before anything is changed, since numbers
// shift as tasks are modified.
func resolveKeys(l *todo.List, keys []string) ([]todo.ID, error) {
	ids := make([]todo.ID, 0, len(keys))
	for _, key := range keys {
		id, err := resolveKey(l, key)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// splitTrailing separates the final argument, as in "prio 1 2 5".
func splitTrailing(args []string) ([]string, string) {
	return args[:len(args)-1], args[len(args)-1]
}
