// Package highlight computes the ephemeral visual overlay layered on a
// lineage graph: emphasis and dimming for path traces, selections, and
// search matches. The overlay is derived state; the underlying node and
// edge records are never mutated.
package highlight

import (
	"sort"

	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/graph"
)

// DimmedOpacity is applied to elements outside the active highlight set.
const DimmedOpacity = 0.3

// FullOpacity is the baseline for unhighlighted rendering.
const FullOpacity = 1.0

// Overlay is the highlight/selection input state. Nil sets are treated as
// empty.
type Overlay struct {
	NodeIDs     map[string]struct{}
	EdgeIDs     map[string]struct{}
	SelectedIDs map[string]struct{}
}

// Active reports whether any highlight set is non-empty. Selection alone
// does not dim the rest of the graph.
func (o Overlay) Active() bool {
	return len(o.NodeIDs) > 0 || len(o.EdgeIDs) > 0
}

// MatchedNodeIDs returns the highlighted node ids as a sorted slice for
// stable serialization.
func (o Overlay) MatchedNodeIDs() []string {
	ids := make([]string, 0, len(o.NodeIDs))
	for id := range o.NodeIDs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// NewOverlay builds an overlay from id slices; a convenience for callers
// holding backend path results.
func NewOverlay(nodeIDs, edgeIDs, selectedIDs []string) Overlay {
	return Overlay{
		NodeIDs:     toSet(nodeIDs),
		EdgeIDs:     toSet(edgeIDs),
		SelectedIDs: toSet(selectedIDs),
	}
}

// Node is a graph node decorated for rendering.
type Node struct {
	graph.Node
	Highlighted bool    `json:"highlighted"`
	Selected    bool    `json:"selected"`
	Opacity     float64 `json:"opacity"`
}

// Edge is a graph edge decorated for rendering. Animated marks edges on an
// actively traced path so the renderer can run a flow animation.
type Edge struct {
	graph.Edge
	Highlighted bool    `json:"highlighted"`
	Animated    bool    `json:"animated"`
	Opacity     float64 `json:"opacity"`
}

// Apply decorates a snapshot with the overlay. When any highlight set is
// non-empty, non-matching elements dim to DimmedOpacity; otherwise every
// element keeps full opacity. An edge counts as on the highlighted path
// only when both of its endpoints are highlighted nodes, or when the edge
// id itself is highlighted.
func Apply(nodes []graph.Node, edges []graph.Edge, overlay Overlay) ([]Node, []Edge) {
	active := overlay.Active()

	outNodes := make([]Node, len(nodes))
	for i, n := range nodes {
		_, hl := overlay.NodeIDs[n.ID]
		_, sel := overlay.SelectedIDs[n.ID]
		opacity := FullOpacity
		if active && !hl {
			opacity = DimmedOpacity
		}
		outNodes[i] = Node{Node: n, Highlighted: hl, Selected: sel, Opacity: opacity}
	}

	outEdges := make([]Edge, len(edges))
	for i, e := range edges {
		_, hl := overlay.EdgeIDs[e.ID]
		if !hl {
			_, srcHL := overlay.NodeIDs[e.Source]
			_, tgtHL := overlay.NodeIDs[e.Target]
			hl = srcHL && tgtHL
		}
		opacity := FullOpacity
		if active && !hl {
			opacity = DimmedOpacity
		}
		outEdges[i] = Edge{Edge: e, Highlighted: hl, Animated: hl, Opacity: opacity}
	}

	return outNodes, outEdges
}

// Clear returns the baseline decoration: full opacity, no flags. Clearing
// an already-clear graph yields the identical result.
func Clear(nodes []graph.Node, edges []graph.Edge) ([]Node, []Edge) {
	return Apply(nodes, edges, Overlay{})
}

// PathOverlay converts a node-id path into an overlay highlighting the
// nodes on it. Edges light up via the both-endpoints rule in Apply.
func PathOverlay(path []string) Overlay {
	return Overlay{NodeIDs: toSet(path)}
}

func toSet(ids []string) map[string]struct{} {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
