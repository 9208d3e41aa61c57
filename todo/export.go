package todo

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// ExportedTask is a read-only view of a task with its derived values,
// identified by display number.
type ExportedTask struct {
	Number           int        `json:"number" yaml:"number"`
	Desc             string     `json:"desc" yaml:"desc"`
	Status           Status     `json:"status" yaml:"status"`
	Snoozed          bool       `json:"snoozed,omitempty" yaml:"snoozed,omitempty"`
	Priority         int        `json:"priority" yaml:"priority"`
	ImplicitPriority int        `json:"implicit_priority" yaml:"implicit_priority"`
	DueDate          *time.Time `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	ImplicitDueDate  *time.Time `json:"implicit_due_date,omitempty" yaml:"implicit_due_date,omitempty"`
	StartDate        time.Time  `json:"start_date" yaml:"start_date"`
	CreationTime     time.Time  `json:"creation_time" yaml:"creation_time"`
	CompletionTime   *time.Time `json:"completion_time,omitempty" yaml:"completion_time,omitempty"`
	BlockedBy        []int      `json:"blocked_by,omitempty" yaml:"blocked_by,omitempty"`
	Blocks           []int      `json:"blocks,omitempty" yaml:"blocks,omitempty"`
}

// Export returns a view of the tasks yielded by seq.
func Export(l *List, seq func(yield func(ID) bool)) []ExportedTask {
	numbers := l.numbers()
	derived := l.layers()
	now := l.clock.Now()

	toNumbers := func(ids []ID) []int {
		var out []int
		for _, id := range ids {
			out = append(out, numbers[id])
		}
		return out
	}

	out := []ExportedTask{}
	for id := range seq {
		task := l.tasks[id].clone()
		exported := ExportedTask{
			Number:           numbers[id],
			Desc:             task.Desc,
			Status:           l.status(id),
			Snoozed:          task.IsSnoozed(now),
			Priority:         task.Priority,
			ImplicitPriority: derived.priority[id],
			DueDate:          task.DueDate,
			StartDate:        task.StartDate,
			CreationTime:     task.CreationTime,
			CompletionTime:   task.CompletionTime,
			BlockedBy:        toNumbers(l.Ordered(l.graph.DirectPredecessors(id))),
			Blocks:           toNumbers(l.Ordered(l.graph.DirectSuccessors(id))),
		}
		if due := derived.due[id]; due != nil {
			exported.ImplicitDueDate = TimePtr(*due)
		}
		out = append(out, exported)
	}
	return out
}

// WriteYAML writes every task in display order as a YAML sequence.
func WriteYAML(w io.Writer, l *List) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Export(l, l.AllTasks())); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// WriteJSON writes every task in display order as a JSON array.
func WriteJSON(w io.Writer, l *List) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Export(l, l.AllTasks())); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
