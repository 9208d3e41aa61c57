package todo

import (
	"fmt"
	"slices"
)

// Graph is a directed acyclic graph over task IDs. An edge u→v means u
// blocks v. Nodes live in an arena indexed by ID; removed nodes leave dead
// slots so IDs are never reused.
type Graph struct {
	nodes []graphNode
}

type graphNode struct {
	live bool
	out  []ID
	in   []ID
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{}
}

// AddNode creates an isolated node.
func (g *Graph) AddNode() ID {
	g.nodes = append(g.nodes, graphNode{live: true})
	return ID(len(g.nodes) - 1)
}

// Contains reports whether u is a live node.
func (g *Graph) Contains(u ID) bool {
	return u >= 0 && int(u) < len(g.nodes) && g.nodes[u].live
}

// Len returns the number of live nodes.
func (g *Graph) Len() int {
	count := 0
	for _, node := range g.nodes {
		if node.live {
			count++
		}
	}
	return count
}

// HasEdge reports whether u directly blocks v.
func (g *Graph) HasEdge(u, v ID) bool {
	if !g.Contains(u) || !g.Contains(v) {
		return false
	}
	return slices.Contains(g.nodes[u].out, v)
}

// AddEdge inserts u→v. It fails with ErrWouldCycle when v already reaches u,
// including u == v. Adding an existing edge is a no-op.
func (g *Graph) AddEdge(u, v ID) error {
	if !g.Contains(u) {
		return missingTaskError(u)
	}
	if !g.Contains(v) {
		return missingTaskError(v)
	}
	if u == v {
		return fmt.Errorf("%w: %s cannot block itself", ErrWouldCycle, u)
	}
	if g.HasEdge(u, v) {
		return nil
	}
	if g.Reaches(v, u) {
		return fmt.Errorf("%w: %s already depends on %s", ErrWouldCycle, u, v)
	}

	g.nodes[u].out = append(g.nodes[u].out, v)
	g.nodes[v].in = append(g.nodes[v].in, u)
	return nil
}

// RemoveEdge deletes u→v and reports whether it existed.
func (g *Graph) RemoveEdge(u, v ID) bool {
	if !g.HasEdge(u, v) {
		return false
	}
	g.nodes[u].out = removeID(g.nodes[u].out, v)
	g.nodes[v].in = removeID(g.nodes[v].in, u)
	return true
}

// RemoveNode deletes u and all incident edges.
func (g *Graph) RemoveNode(u ID) {
	if !g.Contains(u) {
		return
	}
	for _, v := range g.nodes[u].out {
		g.nodes[v].in = removeID(g.nodes[v].in, u)
	}
	for _, p := range g.nodes[u].in {
		g.nodes[p].out = removeID(g.nodes[p].out, u)
	}
	g.nodes[u] = graphNode{}
}

// DirectSuccessors returns the tasks u directly blocks.
func (g *Graph) DirectSuccessors(u ID) TaskSet {
	if !g.Contains(u) {
		return NewTaskSet()
	}
	return NewTaskSet(g.nodes[u].out...)
}

// DirectPredecessors returns the tasks directly blocking u.
func (g *Graph) DirectPredecessors(u ID) TaskSet {
	if !g.Contains(u) {
		return NewTaskSet()
	}
	return NewTaskSet(g.nodes[u].in...)
}

// TransitiveSuccessors returns every task reachable from u, excluding u.
func (g *Graph) TransitiveSuccessors(u ID) TaskSet {
	return g.walk(u, func(n graphNode) []ID { return n.out })
}

// TransitivePredecessors returns every task that reaches u, excluding u.
func (g *Graph) TransitivePredecessors(u ID) TaskSet {
	return g.walk(u, func(n graphNode) []ID { return n.in })
}

// Reaches reports whether a path of one or more edges leads from u to v, or
// u == v.
func (g *Graph) Reaches(u, v ID) bool {
	if !g.Contains(u) || !g.Contains(v) {
		return false
	}
	if u == v {
		return true
	}
	return g.TransitiveSuccessors(u).Contains(v)
}

func (g *Graph) walk(start ID, next func(graphNode) []ID) TaskSet {
	seen := NewTaskSet()
	if !g.Contains(start) {
		return seen
	}

	stack := append([]ID(nil), next(g.nodes[start])...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen.Contains(id) {
			continue
		}
		seen.Add(id)
		stack = append(stack, next(g.nodes[id])...)
	}
	seen.Remove(start)
	return seen
}

// TopologicalOrder returns all live nodes with every blocker before the
// tasks it blocks. Sources come first in ID order.
func (g *Graph) TopologicalOrder() []ID {
	indegree := make([]int, len(g.nodes))
	var ready []ID
	for i, node := range g.nodes {
		if !node.live {
			continue
		}
		indegree[i] = len(node.in)
		if indegree[i] == 0 {
			ready = append(ready, ID(i))
		}
	}

	order := make([]ID, 0, len(g.nodes))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)
		for _, v := range g.nodes[id].out {
			indegree[v]--
			if indegree[v] == 0 {
				ready = append(ready, v)
			}
		}
	}
	return order
}

// Edges returns every edge, ordered by blocker then insertion.
func (g *Graph) Edges() []Edge {
	var edges []Edge
	for i, node := range g.nodes {
		if !node.live {
			continue
		}
		for _, v := range node.out {
			edges = append(edges, Edge{Blocker: ID(i), Blocked: v})
		}
	}
	return edges
}

// Clone returns a deep copy used to validate batch edits before committing.
func (g *Graph) Clone() *Graph {
	out := &Graph{nodes: make([]graphNode, len(g.nodes))}
	for i, node := range g.nodes {
		out.nodes[i] = graphNode{
			live: node.live,
			out:  slices.Clone(node.out),
			in:   slices.Clone(node.in),
		}
	}
	return out
}

func removeID(ids []ID, target ID) []ID {
	return slices.DeleteFunc(ids, func(id ID) bool { return id == target })
}
