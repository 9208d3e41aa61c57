package todo

import (
	"iter"
	"slices"
	"time"

	"github.com/amonks/taskgraph/internal/validation"
)

// Options configures a List.
type Options struct {
	// Clock supplies timestamps. If nil, SystemClock is used.
	Clock Clock

	// CheckPolicy decides whether blocked tasks may be checked.
	// Defaults to CheckRejectBlocked.
	CheckPolicy CheckPolicy
}

// List owns every task, the dependency graph, the incomplete order and the
// complete history. It is not safe for concurrent use; callers serialize
// whole commands (see Store.Update).
type List struct {
	clock       Clock
	checkPolicy CheckPolicy

	graph *Graph

	// tasks is parallel to graph's arena. Dead slots hold zero Tasks.
	tasks []Task

	// incomplete is the explicit order of incomplete tasks; position 0 is
	// number 1.
	incomplete []ID

	// complete is the completion history, oldest first; the last entry is
	// number 0.
	complete []ID

	// cached derived values; nil when stale.
	derived *layers
}

// New returns an empty list.
func New(opts Options) (*List, error) {
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.CheckPolicy == "" {
		opts.CheckPolicy = CheckRejectBlocked
	}
	if !opts.CheckPolicy.IsValid() {
		return nil, validation.FormatInvalidValueError(ErrInvalidCheckPolicy, opts.CheckPolicy, ValidCheckPolicies())
	}

	return &List{
		clock:       opts.Clock,
		checkPolicy: opts.CheckPolicy,
		graph:       NewGraph(),
	}, nil
}

// Now returns the list clock's current time.
func (l *List) Now() time.Time {
	return l.clock.Now()
}

// CheckPolicy returns the configured check policy.
func (l *List) CheckPolicy() CheckPolicy {
	return l.checkPolicy
}

// Len returns the number of live tasks.
func (l *List) Len() int {
	return len(l.incomplete) + len(l.complete)
}

// Contains reports whether id refers to a live task.
func (l *List) Contains(id ID) bool {
	return l.graph.Contains(id)
}

func (l *List) ensureLive(ids ...ID) error {
	for _, id := range ids {
		if !l.graph.Contains(id) {
			return missingTaskError(id)
		}
	}
	return nil
}

func (l *List) invalidate() {
	l.derived = nil
}

func (l *List) layers() *layers {
	if l.derived == nil {
		computed := computeLayers(l.graph, l.tasks)
		l.derived = &computed
	}
	return l.derived
}

// Get returns a copy of the task's attributes.
func (l *List) Get(id ID) (Task, error) {
	if err := l.ensureLive(id); err != nil {
		return Task{}, err
	}
	return l.tasks[id].clone(), nil
}

// Status returns the derived status of a task.
func (l *List) Status(id ID) (Status, error) {
	if err := l.ensureLive(id); err != nil {
		return "", err
	}
	return l.status(id), nil
}

// status only inspects direct blockers: an incomplete blocker further up
// the chain implies the direct blocker below it is not complete either.
func (l *List) status(id ID) Status {
	if l.tasks[id].IsComplete() {
		return StatusComplete
	}
	for _, pred := range l.graph.nodes[id].in {
		if !l.tasks[pred].IsComplete() {
			return StatusBlocked
		}
	}
	return StatusIncomplete
}

// ImplicitPriority returns the highest priority among the task and every
// task it transitively blocks.
func (l *List) ImplicitPriority(id ID) (int, error) {
	if err := l.ensureLive(id); err != nil {
		return 0, err
	}
	return l.layers().priority[id], nil
}

// ImplicitDueDate returns the earliest due date among the task and every
// task it transitively blocks, or nil if none has one.
func (l *List) ImplicitDueDate(id ID) (*time.Time, error) {
	if err := l.ensureLive(id); err != nil {
		return nil, err
	}
	due := l.layers().due[id]
	if due == nil {
		return nil, nil
	}
	value := *due
	return &value, nil
}

// IsSnoozed reports whether the task is incomplete with a future start date.
func (l *List) IsSnoozed(id ID) (bool, error) {
	if err := l.ensureLive(id); err != nil {
		return false, err
	}
	return l.tasks[id].IsSnoozed(l.clock.Now()), nil
}

// DirectBlockers returns the tasks directly blocking id, in display order.
func (l *List) DirectBlockers(id ID) ([]ID, error) {
	if err := l.ensureLive(id); err != nil {
		return nil, err
	}
	return l.Ordered(l.graph.DirectPredecessors(id)), nil
}

// DirectBlocked returns the tasks id directly blocks, in display order.
func (l *List) DirectBlocked(id ID) ([]ID, error) {
	if err := l.ensureLive(id); err != nil {
		return nil, err
	}
	return l.Ordered(l.graph.DirectSuccessors(id)), nil
}

// Edges returns every blocking edge.
func (l *List) Edges() []Edge {
	return l.graph.Edges()
}

// AllTasks yields every task in display order: the complete history from
// oldest to newest, then the incomplete order.
func (l *List) AllTasks() iter.Seq[ID] {
	return func(yield func(ID) bool) {
		for _, id := range l.complete {
			if !yield(id) {
				return
			}
		}
		for _, id := range l.incomplete {
			if !yield(id) {
				return
			}
		}
	}
}

// IncompleteTasks yields incomplete tasks in the incomplete order.
func (l *List) IncompleteTasks() iter.Seq[ID] {
	return func(yield func(ID) bool) {
		for _, id := range l.incomplete {
			if !yield(id) {
				return
			}
		}
	}
}

// CompleteTasks yields complete tasks from oldest to most recent.
func (l *List) CompleteTasks() iter.Seq[ID] {
	return func(yield func(ID) bool) {
		for _, id := range l.complete {
			if !yield(id) {
				return
			}
		}
	}
}

// Actionable returns incomplete, unblocked, unsnoozed tasks in order.
func (l *List) Actionable() []ID {
	now := l.clock.Now()
	var ready []ID
	for _, id := range l.incomplete {
		if l.status(id) != StatusIncomplete || l.tasks[id].IsSnoozed(now) {
			continue
		}
		ready = append(ready, id)
	}
	return ready
}

// Ordered returns the IDs of set sorted by display number. IDs that are not
// live are dropped.
func (l *List) Ordered(set TaskSet) []ID {
	var out []ID
	for id := range l.AllTasks() {
		if set.Contains(id) {
			out = append(out, id)
		}
	}
	return out
}

func indexOf(ids []ID, target ID) int {
	return slices.Index(ids, target)
}
