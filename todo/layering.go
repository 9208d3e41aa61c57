package todo

import "time"

// layers holds values derived from the graph, indexed by ID.
type layers struct {
	priority []int
	due      []*time.Time

	// depth is the length of the longest chain of incomplete blockers above
	// a task. Sources and complete tasks have depth 0.
	depth []int
}

// computeLayers derives implicit priority and due date for every live task.
//
// Nodes are visited in reverse topological order, so every task a node blocks
// is final before the node itself is computed. Max and min are
// order-independent, so ties in the topological order do not matter.
func computeLayers(g *Graph, tasks []Task) layers {
	out := layers{
		priority: make([]int, len(tasks)),
		due:      make([]*time.Time, len(tasks)),
		depth:    make([]int, len(tasks)),
	}

	order := g.TopologicalOrder()
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		priority := tasks[id].Priority
		due := tasks[id].DueDate
		for _, succ := range g.nodes[id].out {
			if out.priority[succ] > priority {
				priority = out.priority[succ]
			}
			due = earlier(due, out.due[succ])
		}
		out.priority[id] = priority
		out.due[id] = due
	}

	for _, id := range order {
		if tasks[id].IsComplete() {
			continue
		}
		depth := 0
		for _, pred := range g.nodes[id].in {
			if tasks[pred].IsComplete() {
				continue
			}
			if out.depth[pred]+1 > depth {
				depth = out.depth[pred] + 1
			}
		}
		out.depth[id] = depth
	}

	return out
}

// earlier returns the earlier of two due dates, treating nil as +∞.
func earlier(a, b *time.Time) *time.Time {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if b.Before(*a) {
		return b
	}
	return a
}
