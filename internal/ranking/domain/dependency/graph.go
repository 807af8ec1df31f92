// Package dependency models the dependency references between tasks of one
// batch and finds circular chains among them.
package dependency

import "github.com/felixgeelhaar/taskrank/internal/ranking/domain/task"

// Graph is a directed graph with one node per task position. An edge i -> j
// means task i lists task j as a dependency.
type Graph struct {
	edges [][]int
}

// BuildIndex maps each non-empty task id to its position. When ids repeat,
// the first position wins.
func BuildIndex(tasks []task.Task) map[string]int {
	index := make(map[string]int, len(tasks))
	for i, t := range tasks {
		if t.ID == "" {
			continue
		}
		if _, seen := index[t.ID]; !seen {
			index[t.ID] = i
		}
	}
	return index
}

// NewGraph builds the dependency graph of tasks. Positional references come
// first, followed by id references resolved through BuildIndex. References
// that point outside the batch are dropped.
func NewGraph(tasks []task.Task) *Graph {
	index := BuildIndex(tasks)
	g := &Graph{edges: make([][]int, len(tasks))}
	for i, t := range tasks {
		for _, dep := range t.Dependencies {
			if dep < 0 || dep >= len(tasks) {
				continue
			}
			g.edges[i] = append(g.edges[i], dep)
		}
		for _, id := range t.DependsOn {
			if dep, ok := index[id]; ok {
				g.edges[i] = append(g.edges[i], dep)
			}
		}
	}
	return g
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.edges)
}

// Edges returns the dependencies of node i.
func (g *Graph) Edges(i int) []int {
	if i < 0 || i >= len(g.edges) {
		return nil
	}
	return g.edges[i]
}
