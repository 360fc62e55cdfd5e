package layout

import (
	"context"
	"sort"

	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/graph"
)

// sugiyamaDelegate is the built-in layered layout: longest-path layer
// assignment, barycenter crossing reduction, then coordinate assignment
// along the configured direction. It implements Delegate so tests and the
// UI can swap in an external solver without touching the engine.
type sugiyamaDelegate struct{}

// barycenterSweeps is the number of down/up ordering passes. Two round
// trips settle most lineage graphs; more buys little.
const barycenterSweeps = 4

func (d *sugiyamaDelegate) Layout(ctx context.Context, nodes []graph.Node, edges []graph.Edge, opts Options) (map[string]graph.Position, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	idx := graph.NewIndex(nodes, edges)
	layers := assignLayers(idx)
	orderLayers(idx, layers)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return assignCoordinates(layers, opts), nil
}

// assignLayers ranks nodes by longest path from a root using Kahn's
// topological traversal: each node sits one layer below its deepest
// parent, so every parent is strictly above its children. Nodes caught in
// a cycle never reach zero in-degree; they are appended to a trailing
// layer rather than dropped, so the delegate still covers every node.
func assignLayers(idx *graph.Index) [][]string {
	ids := idx.NodeIDs()
	inDegree := make(map[string]int, len(ids))
	rank := make(map[string]int, len(ids))
	var queue []string

	for _, id := range ids {
		deg := len(idx.Incoming(id))
		inDegree[id] = deg
		if deg == 0 {
			queue = append(queue, id)
		}
	}

	placed := make(map[string]bool, len(ids))
	maxRank := 0
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		placed[current] = true
		if rank[current] > maxRank {
			maxRank = rank[current]
		}
		for _, e := range idx.Outgoing(current) {
			child := e.Target
			if r := rank[current] + 1; r > rank[child] {
				rank[child] = r
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	layers := make([][]string, maxRank+1)
	for _, id := range ids {
		if placed[id] {
			layers[rank[id]] = append(layers[rank[id]], id)
		}
	}

	// Cycle members land together below everything they depend on.
	var leftover []string
	for _, id := range ids {
		if !placed[id] {
			leftover = append(leftover, id)
		}
	}
	if len(leftover) > 0 {
		layers = append(layers, leftover)
	}
	return layers
}

// orderLayers reduces edge crossings with alternating barycenter sweeps:
// each node is sorted by the mean position of its neighbors in the fixed
// adjacent layer. Ties keep the existing order, so the result is
// deterministic for a given input.
func orderLayers(idx *graph.Index, layers [][]string) {
	slot := make(map[string]int)
	reindex := func(layer []string) {
		for i, id := range layer {
			slot[id] = i
		}
	}
	for _, layer := range layers {
		reindex(layer)
	}

	barycenter := func(id string, upward bool) float64 {
		var sum, count float64
		if upward {
			for _, e := range idx.Incoming(id) {
				sum += float64(slot[e.Source])
				count++
			}
		} else {
			for _, e := range idx.Outgoing(id) {
				sum += float64(slot[e.Target])
				count++
			}
		}
		if count == 0 {
			return float64(slot[id])
		}
		return sum / count
	}

	for sweep := 0; sweep < barycenterSweeps; sweep++ {
		downward := sweep%2 == 0
		if downward {
			for li := 1; li < len(layers); li++ {
				sortLayer(layers[li], slot, func(id string) float64 { return barycenter(id, true) })
				reindex(layers[li])
			}
		} else {
			for li := len(layers) - 2; li >= 0; li-- {
				sortLayer(layers[li], slot, func(id string) float64 { return barycenter(id, false) })
				reindex(layers[li])
			}
		}
	}
}

func sortLayer(layer []string, slot map[string]int, weight func(string) float64) {
	sort.SliceStable(layer, func(i, j int) bool {
		wi, wj := weight(layer[i]), weight(layer[j])
		if wi != wj {
			return wi < wj
		}
		return slot[layer[i]] < slot[layer[j]]
	})
}

// assignCoordinates spaces layers along the flow axis and centers each
// layer on the cross axis, then maps the abstract (cross, flow) frame onto
// canvas x/y per the configured direction.
func assignCoordinates(layers [][]string, opts Options) map[string]graph.Position {
	widest := 0
	for _, layer := range layers {
		if len(layer) > widest {
			widest = len(layer)
		}
	}

	crossStep := opts.NodeWidth + opts.NodeSpacing
	flowStep := opts.NodeHeight + opts.LayerSpacing
	if opts.Direction == DirectionLeft || opts.Direction == DirectionRight {
		crossStep = opts.NodeHeight + opts.NodeSpacing
		flowStep = opts.NodeWidth + opts.LayerSpacing
	}

	positions := make(map[string]graph.Position)
	for li, layer := range layers {
		offset := float64(widest-len(layer)) * crossStep / 2
		for ni, id := range layer {
			cross := opts.Margin + offset + float64(ni)*crossStep
			flow := opts.Margin + float64(li)*flowStep

			var pos graph.Position
			switch opts.Direction {
			case DirectionRight:
				pos = graph.Position{X: flow, Y: cross}
			case DirectionLeft:
				pos = graph.Position{X: -flow, Y: cross}
			case DirectionUp:
				pos = graph.Position{X: cross, Y: -flow}
			default: // down
				pos = graph.Position{X: cross, Y: flow}
			}
			positions[id] = pos
		}
	}
	return positions
}
