package todo

import (
	"cmp"
	"fmt"
	"slices"
	"time"
)

// Add creates a new task at the end of the incomplete order.
func (l *List) Add(desc string) (ID, error) {
	if err := ValidateDesc(desc); err != nil {
		return 0, err
	}

	now := l.clock.Now()
	id := l.graph.AddNode()
	l.tasks = append(l.tasks, Task{
		Desc:         desc,
		CreationTime: now,
		StartDate:    now,
	})
	l.incomplete = append(l.incomplete, id)
	l.invalidate()
	return id, nil
}

// Remove deletes a task and its edges. Other tasks keep their IDs; only
// display numbers shift.
func (l *List) Remove(id ID) error {
	if err := l.ensureLive(id); err != nil {
		return err
	}

	l.graph.RemoveNode(id)
	l.tasks[id] = Task{}
	l.incomplete = removeID(l.incomplete, id)
	l.complete = removeID(l.complete, id)
	l.invalidate()
	return nil
}

// Block records that a blocks b.
func (l *List) Block(a, b ID) error {
	if err := l.ensureLive(a, b); err != nil {
		return err
	}
	if err := l.checkBlockable(a, b); err != nil {
		return err
	}
	if err := l.graph.AddEdge(a, b); err != nil {
		return err
	}
	l.invalidate()
	return nil
}

// checkBlockable keeps complete tasks from depending on incomplete ones.
func (l *List) checkBlockable(a, b ID) error {
	if l.tasks[b].IsComplete() && !l.tasks[a].IsComplete() {
		return fmt.Errorf("%w: complete task %s cannot be blocked by incomplete task %s", ErrWouldOrphanDependents, b, a)
	}
	return nil
}

// Unblock removes the edge a→b if present.
func (l *List) Unblock(a, b ID) error {
	if err := l.ensureLive(a, b); err != nil {
		return err
	}
	if l.graph.RemoveEdge(a, b) {
		l.invalidate()
	}
	return nil
}

// UnblockFrom removes the edges from each of from to b. With no sources it
// removes every edge into b.
func (l *List) UnblockFrom(b ID, from ...ID) error {
	if err := l.ensureLive(b); err != nil {
		return err
	}
	if err := l.ensureLive(from...); err != nil {
		return err
	}
	if len(from) == 0 {
		from = l.graph.DirectPredecessors(b).Slice()
	}
	for _, a := range from {
		l.graph.RemoveEdge(a, b)
	}
	l.invalidate()
	return nil
}

// Check completes a task, making it the most recent entry of the complete
// history (number 0). It returns the tasks that became unblocked as a result.
func (l *List) Check(id ID) (TaskSet, error) {
	if err := l.ensureLive(id); err != nil {
		return TaskSet{}, err
	}
	if l.tasks[id].IsComplete() {
		return TaskSet{}, fmt.Errorf("%w: %s", ErrAlreadyComplete, id)
	}
	if l.checkPolicy == CheckRejectBlocked && l.status(id) == StatusBlocked {
		return TaskSet{}, fmt.Errorf("%w: %s", ErrBlocked, id)
	}

	var wasBlocked []ID
	for _, succ := range l.graph.nodes[id].out {
		if l.status(succ) == StatusBlocked {
			wasBlocked = append(wasBlocked, succ)
		}
	}

	now := l.clock.Now()
	l.tasks[id].CompletionTime = &now
	l.incomplete = removeID(l.incomplete, id)
	l.complete = append(l.complete, id)
	l.invalidate()

	unblocked := NewTaskSet()
	for _, succ := range wasBlocked {
		if l.status(succ) == StatusIncomplete {
			unblocked.Add(succ)
		}
	}
	return unblocked, nil
}

// Restore marks a complete task incomplete again.
//
// If a complete task directly depends on id, Restore fails with
// ErrWouldOrphanDependents unless force is set, in which case those
// dependents are restored too, recursively. Restored tasks are appended to
// the end of the incomplete order with blockers ahead of the tasks they
// block. The restored set is returned.
func (l *List) Restore(id ID, force bool) (TaskSet, error) {
	if err := l.ensureLive(id); err != nil {
		return TaskSet{}, err
	}
	if !l.tasks[id].IsComplete() {
		return TaskSet{}, fmt.Errorf("%w: %s", ErrAlreadyIncomplete, id)
	}

	restore := NewTaskSet(id)
	stack := []ID{id}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, succ := range l.graph.nodes[current].out {
			if !l.tasks[succ].IsComplete() || restore.Contains(succ) {
				continue
			}
			if !force {
				return TaskSet{}, fmt.Errorf("%w: %s blocks complete task %s", ErrWouldOrphanDependents, id, succ)
			}
			restore.Add(succ)
			stack = append(stack, succ)
		}
	}

	for _, restored := range l.graph.TopologicalOrder() {
		if !restore.Contains(restored) {
			continue
		}
		l.tasks[restored].CompletionTime = nil
		l.complete = removeID(l.complete, restored)
		l.incomplete = append(l.incomplete, restored)
	}
	l.invalidate()
	return restore, nil
}

// Punt moves an incomplete task to the end of the incomplete order.
func (l *List) Punt(id ID) error {
	if err := l.ensureLive(id); err != nil {
		return err
	}
	index := indexOf(l.incomplete, id)
	if index < 0 {
		return fmt.Errorf("%w: %s", ErrAlreadyComplete, id)
	}
	l.incomplete = append(slices.Delete(l.incomplete, index, index+1), id)
	return nil
}

// SetDesc replaces a task's description.
func (l *List) SetDesc(id ID, desc string) error {
	if err := l.ensureLive(id); err != nil {
		return err
	}
	if err := ValidateDesc(desc); err != nil {
		return err
	}
	l.tasks[id].Desc = desc
	return nil
}

// SetPriority replaces a task's explicit priority.
func (l *List) SetPriority(id ID, priority int) error {
	if err := l.ensureLive(id); err != nil {
		return err
	}
	l.tasks[id].Priority = priority
	l.invalidate()
	return nil
}

// SetDueDate replaces a task's explicit due date. Nil clears it.
func (l *List) SetDueDate(id ID, due *time.Time) error {
	if err := l.ensureLive(id); err != nil {
		return err
	}
	if due != nil {
		value := *due
		due = &value
	}
	l.tasks[id].DueDate = due
	l.invalidate()
	return nil
}

// SetStartDate replaces a task's start date. A future start date snoozes it.
func (l *List) SetStartDate(id ID, start time.Time) error {
	if err := l.ensureLive(id); err != nil {
		return err
	}
	l.tasks[id].StartDate = start
	return nil
}

// Chain makes each task block the next one. Either every edge is added or
// none is. The incomplete tasks of the chain are then reordered into chain
// order within the positions they already occupy.
func (l *List) Chain(ids []ID) error {
	if err := l.ensureLive(ids...); err != nil {
		return err
	}

	scratch := l.graph.Clone()
	for i := 0; i+1 < len(ids); i++ {
		if err := l.checkBlockable(ids[i], ids[i+1]); err != nil {
			return err
		}
		if err := scratch.AddEdge(ids[i], ids[i+1]); err != nil {
			return err
		}
	}
	l.graph = scratch

	var positions []int
	var members []ID
	seen := NewTaskSet()
	for _, id := range ids {
		if seen.Contains(id) {
			continue
		}
		seen.Add(id)
		if index := indexOf(l.incomplete, id); index >= 0 {
			positions = append(positions, index)
			members = append(members, id)
		}
	}
	slices.Sort(positions)
	for i, position := range positions {
		l.incomplete[position] = members[i]
	}

	l.invalidate()
	return nil
}

// Merge replaces ids with one new task described by desc. The new task
// blocks everything the merged tasks blocked and is blocked by everything
// that blocked them, ignoring edges among the merged tasks. It takes the
// highest priority and earliest due date of the merged tasks and the
// earliest of their positions in the incomplete order.
func (l *List) Merge(ids []ID, desc string) (ID, error) {
	if len(ids) == 0 {
		return 0, fmt.Errorf("no tasks to merge")
	}
	if err := ValidateDesc(desc); err != nil {
		return 0, err
	}
	if err := l.ensureLive(ids...); err != nil {
		return 0, err
	}
	merged := NewTaskSet(ids...)
	for _, id := range merged.Slice() {
		if l.tasks[id].IsComplete() {
			return 0, fmt.Errorf("%w: cannot merge %s", ErrAlreadyComplete, id)
		}
	}

	preds := NewTaskSet()
	succs := NewTaskSet()
	for _, id := range merged.Slice() {
		for _, pred := range l.graph.nodes[id].in {
			if !merged.Contains(pred) {
				preds.Add(pred)
			}
		}
		for _, succ := range l.graph.nodes[id].out {
			if !merged.Contains(succ) {
				succs.Add(succ)
			}
		}
	}

	scratch := l.graph.Clone()
	for _, id := range merged.Slice() {
		scratch.RemoveNode(id)
	}
	mergedID := scratch.AddNode()
	for _, pred := range preds.Slice() {
		if err := scratch.AddEdge(pred, mergedID); err != nil {
			return 0, err
		}
	}
	for _, succ := range succs.Slice() {
		if err := scratch.AddEdge(mergedID, succ); err != nil {
			return 0, err
		}
	}

	now := l.clock.Now()
	task := Task{
		Desc:         desc,
		CreationTime: now,
		StartDate:    now,
	}
	for i, id := range merged.Slice() {
		source := l.tasks[id]
		if i == 0 || source.Priority > task.Priority {
			task.Priority = source.Priority
		}
		task.DueDate = earlier(task.DueDate, source.DueDate)
	}
	if task.DueDate != nil {
		task.DueDate = TimePtr(*task.DueDate)
	}

	insertAt := -1
	remaining := make([]ID, 0, len(l.incomplete))
	for _, id := range l.incomplete {
		if merged.Contains(id) {
			if insertAt < 0 {
				insertAt = len(remaining)
			}
			continue
		}
		remaining = append(remaining, id)
	}
	if insertAt < 0 {
		insertAt = len(remaining)
	}

	l.graph = scratch
	for _, id := range merged.Slice() {
		l.tasks[id] = Task{}
	}
	l.tasks = append(l.tasks, task)
	l.incomplete = slices.Insert(remaining, insertAt, mergedID)
	l.invalidate()
	return mergedID, nil
}

// Path returns the tasks on dependency paths from a to b in topological
// order: a, every task that is both blocked by a and blocks b, then b.
func (l *List) Path(a, b ID) ([]ID, error) {
	if err := l.ensureLive(a, b); err != nil {
		return nil, err
	}
	if a == b {
		return []ID{a}, nil
	}
	if !l.graph.Reaches(a, b) {
		return nil, fmt.Errorf("%w: from %s to %s", ErrNoPath, a, b)
	}

	after := l.graph.TransitiveSuccessors(a)
	before := l.graph.TransitivePredecessors(b)

	var path []ID
	for _, id := range l.graph.TopologicalOrder() {
		if id == a || id == b || (after.Contains(id) && before.Contains(id)) {
			path = append(path, id)
		}
	}
	return path, nil
}

// Clean rebuilds the incomplete order and complete history from task
// state. Dead, duplicate or misfiled entries are dropped and missing tasks
// are added. Incomplete tasks are sorted by blocker depth, then implicit
// priority (highest first), then implicit due date (earliest first, none
// last), then their previous position. The tasks whose number changed are
// returned.
func (l *List) Clean() TaskSet {
	before := l.numbers()

	seen := NewTaskSet()
	var incomplete, complete []ID
	keep := func(id ID) {
		if !l.graph.Contains(id) || seen.Contains(id) {
			return
		}
		seen.Add(id)
		if l.tasks[id].IsComplete() {
			complete = append(complete, id)
		} else {
			incomplete = append(incomplete, id)
		}
	}
	for _, id := range l.incomplete {
		keep(id)
	}
	for _, id := range l.complete {
		keep(id)
	}
	for i := range l.tasks {
		keep(ID(i))
	}

	positions := make(map[ID]int, len(incomplete))
	for i, id := range incomplete {
		positions[id] = i
	}

	derived := computeLayers(l.graph, l.tasks)
	slices.SortStableFunc(incomplete, func(a, b ID) int {
		if c := cmp.Compare(derived.depth[a], derived.depth[b]); c != 0 {
			return c
		}
		if c := cmp.Compare(derived.priority[b], derived.priority[a]); c != 0 {
			return c
		}
		if c := compareDue(derived.due[a], derived.due[b]); c != 0 {
			return c
		}
		return cmp.Compare(positions[a], positions[b])
	})
	slices.SortStableFunc(complete, func(a, b ID) int {
		return l.tasks[a].CompletionTime.Compare(*l.tasks[b].CompletionTime)
	})

	l.incomplete = incomplete
	l.complete = complete
	l.invalidate()

	changed := NewTaskSet()
	for id, number := range l.numbers() {
		if previous, ok := before[id]; !ok || previous != number {
			changed.Add(id)
		}
	}
	return changed
}

// compareDue orders due dates earliest first with nil last.
func compareDue(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return a.Compare(*b)
	}
}
