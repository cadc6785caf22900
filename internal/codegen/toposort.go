package codegen

import (
	"sort"

	"github.com/ajaykumargdr/flowc/internal/diagnostics"
	"github.com/ajaykumargdr/flowc/internal/model"
)

// edge is a (predecessor, successor) pair over task declaration indices.
type edge struct {
	pred, succ int
}

// buildEdges derives the deduplicated, declaration-stable edge list for
// a workflow: one edge per Depend, from the predecessor task's index to
// the dependent task's index.
func buildEdges(w model.Workflow) ([]edge, error) {
	index := make(map[string]int, len(w.Order))
	for i, name := range w.Order {
		index[name] = i
	}

	seen := make(map[edge]bool)
	var edges []edge
	for _, name := range w.Order {
		t := w.Tasks[name]
		for _, dep := range t.DependOn {
			predIdx, ok := index[dep.TaskName]
			if !ok {
				return nil, diagnostics.DanglingTask(t.ActionName, dep.TaskName)
			}
			e := edge{pred: predIdx, succ: index[name]}
			if !seen[e] {
				seen[e] = true
				edges = append(edges, e)
			}
		}
	}
	return edges, nil
}

// topoOrder computes a stable topological order over n tasks given
// edges (pred -> succ): Kahn's algorithm over a ready frontier that
// always yields its lowest declaration index next, so ties break by
// declaration order at every step rather than only within one round
// (a round-robin scan defers a successor freed mid-pass to the next
// round even when its index is lower than one already emitted this
// round). It fails loudly with a Cycle diagnostic when a cycle
// prevents a full ordering.
func topoOrder(workflowName string, n int, edges []edge, order []string) ([]int, error) {
	indegree := make([]int, n)
	adj := make([][]int, n)
	for _, e := range edges {
		adj[e.pred] = append(adj[e.pred], e.succ)
		indegree[e.succ]++
	}

	ready := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if indegree[i] == 0 {
			ready = append(ready, i)
		}
	}
	sort.Ints(ready)

	visited := make([]bool, n)
	result := make([]int, 0, n)

	for len(ready) > 0 {
		idx := ready[0]
		ready = ready[1:]
		visited[idx] = true
		result = append(result, idx)
		for _, succ := range adj[idx] {
			indegree[succ]--
			if indegree[succ] == 0 {
				pos := sort.SearchInts(ready, succ)
				ready = append(ready, 0)
				copy(ready[pos+1:], ready[pos:])
				ready[pos] = succ
			}
		}
	}

	if len(result) < n {
		var remaining []string
		for i := 0; i < n; i++ {
			if !visited[i] {
				remaining = append(remaining, order[i])
			}
		}
		return nil, diagnostics.Cycle(workflowName, remaining)
	}
	return result, nil
}
