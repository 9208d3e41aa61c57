package todo

import (
	"encoding/json"
	"fmt"
)

// FormatVersion is the version of the persisted document.
const FormatVersion = 1

// document is the persisted form of a List. Task indexes are dense: the
// live tasks in ID order.
type document struct {
	Version    int            `json:"version"`
	Tasks      []Task         `json:"tasks"`
	Edges      []documentEdge `json:"edges"`
	Incomplete []int          `json:"incomplete"`
	Complete   []int          `json:"complete"`
}

type documentEdge struct {
	// Blocker is the index of the task that must finish first.
	Blocker int `json:"blocker"`

	// Blocked is the index of the task that waits.
	Blocked int `json:"blocked"`
}

// Marshal encodes the list, including every task, edge and both orderings.
// Decoding the result and marshaling again yields identical bytes.
func Marshal(l *List) ([]byte, error) {
	index := make(map[ID]int, l.Len())
	doc := document{
		Version:    FormatVersion,
		Tasks:      make([]Task, 0, l.Len()),
		Edges:      []documentEdge{},
		Incomplete: make([]int, 0, len(l.incomplete)),
		Complete:   make([]int, 0, len(l.complete)),
	}

	for i := range l.tasks {
		id := ID(i)
		if !l.graph.Contains(id) {
			continue
		}
		index[id] = len(doc.Tasks)
		doc.Tasks = append(doc.Tasks, l.tasks[id].clone())
	}
	for _, edge := range l.graph.Edges() {
		doc.Edges = append(doc.Edges, documentEdge{
			Blocker: index[edge.Blocker],
			Blocked: index[edge.Blocked],
		})
	}
	for _, id := range l.incomplete {
		doc.Incomplete = append(doc.Incomplete, index[id])
	}
	for _, id := range l.complete {
		doc.Complete = append(doc.Complete, index[id])
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal task list: %w", err)
	}
	return append(data, '\n'), nil
}

// Unmarshal decodes a list written by Marshal. The document must satisfy
// the state schema, reference only existing tasks, be acyclic and file
// every task exactly once in the ordering matching its completion state.
func Unmarshal(data []byte, opts Options) (*List, error) {
	return unmarshal(data, opts, true)
}

// UnmarshalLenient decodes a list like Unmarshal but accepts orderings that
// are out of sync with task state. The result should be repaired with
// List.Clean before other mutations.
func UnmarshalLenient(data []byte, opts Options) (*List, error) {
	return unmarshal(data, opts, false)
}

func unmarshal(data []byte, opts Options, strict bool) (*List, error) {
	if err := validateSchema(data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeserialize, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeserialize, err)
	}

	l, err := New(opts)
	if err != nil {
		return nil, err
	}

	for i := range doc.Tasks {
		if err := ValidateTask(&doc.Tasks[i]); err != nil {
			return nil, fmt.Errorf("%w: task %d: %w", ErrDeserialize, i, err)
		}
		l.graph.AddNode()
		l.tasks = append(l.tasks, doc.Tasks[i])
	}

	inRange := func(index int) bool {
		return index >= 0 && index < len(doc.Tasks)
	}
	for i, edge := range doc.Edges {
		if !inRange(edge.Blocker) || !inRange(edge.Blocked) {
			return nil, fmt.Errorf("%w: edge %d references a missing task", ErrDeserialize, i)
		}
		if err := l.graph.AddEdge(ID(edge.Blocker), ID(edge.Blocked)); err != nil {
			return nil, fmt.Errorf("%w: edge %d: %w", ErrDeserialize, i, err)
		}
	}
	for _, index := range doc.Incomplete {
		if !inRange(index) {
			return nil, fmt.Errorf("%w: incomplete order references missing task %d", ErrDeserialize, index)
		}
		l.incomplete = append(l.incomplete, ID(index))
	}
	for _, index := range doc.Complete {
		if !inRange(index) {
			return nil, fmt.Errorf("%w: complete history references missing task %d", ErrDeserialize, index)
		}
		l.complete = append(l.complete, ID(index))
	}

	if strict {
		if err := l.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDeserialize, err)
		}
	}
	return l, nil
}

// Validate checks that every live task appears exactly once, in the
// incomplete order when incomplete and in the complete history when
// complete.
func (l *List) Validate() error {
	seen := NewTaskSet()
	check := func(ids []ID, complete bool, name string) error {
		for _, id := range ids {
			if !l.graph.Contains(id) {
				return fmt.Errorf("%s references missing task %s", name, id)
			}
			if seen.Contains(id) {
				return fmt.Errorf("task %s is listed more than once", id)
			}
			seen.Add(id)
			if l.tasks[id].IsComplete() != complete {
				return fmt.Errorf("task %s is filed in the %s but its completion state disagrees", id, name)
			}
		}
		return nil
	}
	if err := check(l.incomplete, false, "incomplete order"); err != nil {
		return err
	}
	if err := check(l.complete, true, "complete history"); err != nil {
		return err
	}
	if seen.Len() != l.graph.Len() {
		return fmt.Errorf("%d tasks are missing from both orderings", l.graph.Len()-seen.Len())
	}
	return nil
}
