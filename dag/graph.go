package dag

import (
	"container/heap"

	werrors "github.com/kbukum/wirekit/errors"
	"github.com/kbukum/wirekit/spec"
)

// Graph maps every entry to the known entries it references.
type Graph struct {
	names      []string
	index      map[string]int
	deps       map[string][]string
	dependents map[string][]string
}

// New builds the graph of entries. References to unknown names form no edge.
func New(entries []*spec.Entry) *Graph {
	g := &Graph{
		names:      make([]string, len(entries)),
		index:      make(map[string]int, len(entries)),
		deps:       make(map[string][]string, len(entries)),
		dependents: make(map[string][]string, len(entries)),
	}
	for i, e := range entries {
		g.names[i] = e.Name
		g.index[e.Name] = i
	}
	for _, e := range entries {
		for _, ref := range e.Refs() {
			if _, ok := g.index[ref]; !ok {
				continue
			}
			g.deps[e.Name] = append(g.deps[e.Name], ref)
			g.dependents[ref] = append(g.dependents[ref], e.Name)
		}
	}
	return g
}

// Nodes returns every node in specification order.
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.names))
	copy(out, g.names)
	return out
}

// Dependencies returns the names name references, in evaluation order.
func (g *Graph) Dependencies(name string) []string { return g.deps[name] }

// Dependents returns the names that reference name.
func (g *Graph) Dependents(name string) []string { return g.dependents[name] }

// Order returns a topological order in which every entry follows its
// dependencies. Among entries that are ready at the same time, the one
// declared first comes first.
func (g *Graph) Order() ([]string, error) {
	inDegree := make(map[string]int, len(g.names))
	ready := &indexHeap{}
	for i, name := range g.names {
		inDegree[name] = len(g.deps[name])
		if inDegree[name] == 0 {
			heap.Push(ready, i)
		}
	}

	order := make([]string, 0, len(g.names))
	for ready.Len() > 0 {
		name := g.names[heap.Pop(ready).(int)]
		order = append(order, name)
		for _, d := range g.dependents[name] {
			inDegree[d]--
			if inDegree[d] == 0 {
				heap.Push(ready, g.index[d])
			}
		}
	}

	if len(order) != len(g.names) {
		return nil, g.cycleError(inDegree)
	}
	return order, nil
}

// Levels groups the nodes by dependency depth. Nodes within a level do not
// reference each other; each level is in specification order.
func (g *Graph) Levels() ([][]string, error) {
	inDegree := make(map[string]int, len(g.names))
	var queue []string
	for _, name := range g.names {
		inDegree[name] = len(g.deps[name])
		if inDegree[name] == 0 {
			queue = append(queue, name)
		}
	}

	var levels [][]string
	visited := 0
	for len(queue) > 0 {
		levels = append(levels, queue)
		visited += len(queue)

		var next []int
		for _, name := range queue {
			for _, d := range g.dependents[name] {
				inDegree[d]--
				if inDegree[d] == 0 {
					next = append(next, g.index[d])
				}
			}
		}
		queue = g.byIndex(next)
	}

	if visited != len(g.names) {
		return nil, g.cycleError(inDegree)
	}
	return levels, nil
}

// cycleError reports every node whose in-degree never dropped to zero.
func (g *Graph) cycleError(inDegree map[string]int) error {
	var unresolved []string
	remaining := make(map[string]bool)
	for _, name := range g.names {
		if inDegree[name] > 0 {
			unresolved = append(unresolved, name)
			remaining[name] = true
		}
	}
	return werrors.CircularDependency(unresolved, g.findCycle(unresolved, remaining))
}

func (g *Graph) byIndex(idx []int) []string {
	if len(idx) == 0 {
		return nil
	}
	h := indexHeap(idx)
	heap.Init(&h)
	out := make([]string, 0, len(idx))
	for h.Len() > 0 {
		out = append(out, g.names[heap.Pop(&h).(int)])
	}
	return out
}

// indexHeap is a min-heap of specification indices.
type indexHeap []int

func (h indexHeap) Len() int           { return len(h) }
func (h indexHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h indexHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *indexHeap) Push(x any)        { *h = append(*h, x.(int)) }
func (h *indexHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
