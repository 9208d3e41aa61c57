package todo

// Edge represents a blocking relationship between two tasks.
type Edge struct {
	// Blocker is the task that must be completed first.
	Blocker ID

	// Blocked is the task that waits on Blocker.
	Blocked ID
}

// DepTreeNode represents a node in a blocker tree.
type DepTreeNode struct {
	// ID is the task at this node.
	ID ID

	// Task is a copy of the task at this node.
	Task Task

	// Status is the task's derived status.
	Status Status

	// Children are the tasks that directly block this task.
	Children []*DepTreeNode
}

// DepTree returns the tree of tasks blocking id, transitively.
func (l *List) DepTree(id ID) (*DepTreeNode, error) {
	if err := l.ensureLive(id); err != nil {
		return nil, err
	}

	path := make(map[ID]bool)
	return l.buildDepTree(id, path), nil
}

func (l *List) buildDepTree(id ID, path map[ID]bool) *DepTreeNode {
	node := &DepTreeNode{
		ID:     id,
		Task:   l.tasks[id].clone(),
		Status: l.status(id),
	}
	if path[id] {
		return node
	}
	path[id] = true
	defer delete(path, id)

	for _, blocker := range l.Ordered(l.graph.DirectPredecessors(id)) {
		node.Children = append(node.Children, l.buildDepTree(blocker, path))
	}

	return node
}
