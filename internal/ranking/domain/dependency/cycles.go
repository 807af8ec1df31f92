package dependency

import "github.com/felixgeelhaar/taskrank/internal/ranking/domain/task"

// FindCycles returns the positions of the tasks from which a depth-first
// search reached a dependency cycle, in ascending order.
//
// Only the search root is reported, not every member of the cycle. Nodes
// explored by an earlier search are not searched again, so a cycle reachable
// from several roots is reported once, under the first of them.
func FindCycles(tasks []task.Task) []int {
	return NewGraph(tasks).Cycles()
}

// Cycles runs the search of FindCycles over g.
func (g *Graph) Cycles() []int {
	visited := make([]bool, g.Len())

	var hasCycle func(node int, onPath map[int]bool) bool
	hasCycle = func(node int, onPath map[int]bool) bool {
		visited[node] = true
		onPath[node] = true

		for _, dep := range g.Edges(node) {
			if !visited[dep] {
				if hasCycle(dep, onPath) {
					return true
				}
			} else if onPath[dep] {
				return true
			}
		}

		onPath[node] = false
		return false
	}

	var roots []int
	for i := 0; i < g.Len(); i++ {
		if visited[i] {
			continue
		}
		if hasCycle(i, make(map[int]bool)) {
			roots = append(roots, i)
		}
	}
	if roots == nil {
		roots = []int{}
	}
	return roots
}
