// Package analysis provides pure traversal and path primitives over a
// lineage graph snapshot: reachability, bounded path enumeration, shortest
// path, and cycle detection. All functions are read-only with respect to
// their inputs and hold no state between calls.
package analysis

import (
	"container/heap"

	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/graph"
)

// Direction selects which edges a traversal follows.
type Direction string

const (
	// Upstream follows edges where the current node is the target.
	Upstream Direction = "upstream"
	// Downstream follows edges where the current node is the source.
	Downstream Direction = "downstream"
	// Both follows edges in either orientation.
	Both Direction = "both"
)

// ConnectedNodes returns the set of node ids reachable from startID over
// edges in the given direction, excluding startID itself. Terminates on
// cyclic graphs via a visited set.
func ConnectedNodes(startID string, edges []graph.Edge, dir Direction) map[string]struct{} {
	visited := map[string]struct{}{startID: {}}
	queue := []string{startID}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for i := range edges {
			e := &edges[i]
			var next string
			switch {
			case (dir == Downstream || dir == Both) && e.Source == current:
				next = e.Target
			case (dir == Upstream || dir == Both) && e.Target == current:
				next = e.Source
			default:
				continue
			}
			if _, seen := visited[next]; !seen {
				visited[next] = struct{}{}
				queue = append(queue, next)
			}
		}
	}

	delete(visited, startID)
	return visited
}

// AllPaths enumerates every simple path from sourceID to targetID of at
// most maxDepth hops, as node-id sequences. A branch that exceeds maxDepth
// is abandoned, not an error; an unreachable target yields an empty result.
func AllPaths(nodes []graph.Node, edges []graph.Edge, sourceID, targetID string, maxDepth int) [][]string {
	idx := graph.NewIndex(nodes, edges)
	var paths [][]string

	if _, ok := idx.Node(sourceID); !ok {
		return paths
	}
	if _, ok := idx.Node(targetID); !ok {
		return paths
	}

	onPath := make(map[string]bool)
	var current []string

	var walk func(id string)
	walk = func(id string) {
		current = append(current, id)
		onPath[id] = true
		defer func() {
			current = current[:len(current)-1]
			onPath[id] = false
		}()

		if id == targetID {
			path := make([]string, len(current))
			copy(path, current)
			paths = append(paths, path)
			return
		}
		if len(current)-1 >= maxDepth {
			return
		}
		for _, e := range idx.Outgoing(id) {
			if !onPath[e.Target] {
				walk(e.Target)
			}
		}
	}

	walk(sourceID)
	return paths
}

// ShortestPath returns the node-id sequence of a shortest path from
// sourceID to targetID, treating every edge as weight 1. Returns nil when
// the target is unreachable and [sourceID] when source equals target.
//
// Implemented as Dijkstra with a priority queue rather than plain BFS so
// weighted edges can be introduced without changing the contract.
func ShortestPath(nodes []graph.Node, edges []graph.Edge, sourceID, targetID string) []string {
	idx := graph.NewIndex(nodes, edges)
	if _, ok := idx.Node(sourceID); !ok {
		return nil
	}
	if _, ok := idx.Node(targetID); !ok {
		return nil
	}
	if sourceID == targetID {
		return []string{sourceID}
	}

	dist := map[string]float64{sourceID: 0}
	prev := make(map[string]string)
	done := make(map[string]bool)

	pq := &nodeHeap{{id: sourceID, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		item := heap.Pop(pq).(nodeItem)
		if done[item.id] {
			continue
		}
		done[item.id] = true
		if item.id == targetID {
			break
		}
		for _, e := range idx.Outgoing(item.id) {
			const weight = 1
			alt := dist[item.id] + weight
			if d, seen := dist[e.Target]; !seen || alt < d {
				dist[e.Target] = alt
				prev[e.Target] = item.id
				heap.Push(pq, nodeItem{id: e.Target, dist: alt})
			}
		}
	}

	if !done[targetID] {
		return nil
	}

	// Walk predecessors back to the source.
	var path []string
	for at := targetID; ; at = prev[at] {
		path = append([]string{at}, path...)
		if at == sourceID {
			break
		}
	}
	return path
}

// DetectCycles reports directed cycles as node-id sequences running from
// the repeated node back to itself inclusive. Overlapping cycles sharing
// nodes or edges are each reported; no deduplication or minimal-cycle-basis
// reduction is performed.
func DetectCycles(nodes []graph.Node, edges []graph.Edge) [][]string {
	idx := graph.NewIndex(nodes, edges)
	var cycles [][]string

	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	var stack []string

	var dfs func(id string)
	dfs = func(id string) {
		visited[id] = true
		onStack[id] = true
		stack = append(stack, id)

		for _, e := range idx.Outgoing(id) {
			next := e.Target
			if !visited[next] {
				dfs(next)
			} else if onStack[next] {
				// Slice the current stack from the repeated node and
				// close the loop.
				start := 0
				for i, sid := range stack {
					if sid == next {
						start = i
						break
					}
				}
				cycle := make([]string, 0, len(stack)-start+1)
				cycle = append(cycle, stack[start:]...)
				cycle = append(cycle, next)
				cycles = append(cycles, cycle)
			}
		}

		stack = stack[:len(stack)-1]
		onStack[id] = false
	}

	for _, id := range idx.NodeIDs() {
		if !visited[id] {
			dfs(id)
		}
	}
	return cycles
}

// nodeItem is a priority queue entry for Dijkstra.
type nodeItem struct {
	id   string
	dist float64
}

type nodeHeap []nodeItem

func (h nodeHeap) Len() int            { return len(h) }
func (h nodeHeap) Less(i, j int) bool  { return h[i].dist < h[j].dist }
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x interface{}) { *h = append(*h, x.(nodeItem)) }
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
