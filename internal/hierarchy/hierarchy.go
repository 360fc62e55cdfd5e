// Package hierarchy projects a lineage graph's parent/child structure into
// a rooted forest. The hierarchy arrives in two encodings, an explicit
// ParentID on nodes and edges of the hierarchy kind; this package merges
// them (ParentID wins on conflict), guards against cycles, and exposes
// only root nodes to the layout engine.
package hierarchy

import (
	"sort"
	"strings"

	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/graph"
)

// hierarchyKeywords matches loosely-tagged edges whose label marks
// containment even though the edge kind is not hierarchy. Kept for
// backward compatibility with schemas imported from older exports.
var hierarchyKeywords = map[string]bool{
	"subclass":    true,
	"subclass_of": true,
	"is_a":        true,
	"parent":      true,
	"extends":     true,
}

// Node is a read-only projection of a graph node into the hierarchy
// forest. Level is depth from the nearest root (root = 0).
type Node struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	DisplayName   string            `json:"displayName"`
	Level         int               `json:"level"`
	ParentID      string            `json:"parentId,omitempty"`
	Children      []*Node           `json:"children,omitempty"`
	Attributes    []graph.Attribute `json:"attributes,omitempty"`
	InstanceCount int               `json:"instanceCount"`
	Collapsed     bool              `json:"collapsed"`
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Classification labels the node for display: a node with children or a
// parent renders as a subclass, everything else as a plain class.
func (n *Node) Classification() string {
	if len(n.Children) > 0 || n.ParentID != "" {
		return "subclass"
	}
	return "class"
}

// Diagnostics reports non-fatal problems found while building the forest.
// The rest of the forest still builds when these are non-empty.
type Diagnostics struct {
	// CycleNodeIDs lists nodes whose expansion was stopped because they
	// already appear in their own ancestor chain.
	CycleNodeIDs []string
	// ConflictingEdgeIDs lists hierarchy edges that disagree with the
	// target node's ParentID. ParentID won; the edge was ignored.
	ConflictingEdgeIDs []string
}

// Forest is a rooted projection of the hierarchy, keyed by root node id.
type Forest struct {
	Roots       map[string]*Node
	Diagnostics Diagnostics
}

// RootIDs returns the root ids in sorted order for deterministic display.
func (f *Forest) RootIDs() []string {
	ids := make([]string, 0, len(f.Roots))
	for id := range f.Roots {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// BuildForest derives the parent map from both hierarchy encodings and
// recursively builds each root's subtree. A per-branch visited set stops
// expansion when a node would re-appear in its own ancestor chain, so a
// cyclic hierarchy terminates and is reported instead of looping.
func BuildForest(nodes []graph.Node, edges []graph.Edge) *Forest {
	byID := make(map[string]*graph.Node, len(nodes))
	order := make([]string, 0, len(nodes))
	for i := range nodes {
		if _, dup := byID[nodes[i].ID]; dup {
			continue
		}
		byID[nodes[i].ID] = &nodes[i]
		order = append(order, nodes[i].ID)
	}

	forest := &Forest{Roots: make(map[string]*Node)}

	// child id -> parent id, explicit ParentID first.
	parentOf := make(map[string]string, len(nodes))
	for _, id := range order {
		if pid := byID[id].ParentID; pid != "" {
			if _, ok := byID[pid]; ok {
				parentOf[id] = pid
			}
		}
	}
	for i := range edges {
		e := &edges[i]
		if !isHierarchyEdge(e) {
			continue
		}
		if _, ok := byID[e.Source]; !ok {
			continue
		}
		if _, ok := byID[e.Target]; !ok {
			continue
		}
		if existing, ok := parentOf[e.Target]; ok {
			if existing != e.Source {
				forest.Diagnostics.ConflictingEdgeIDs = append(forest.Diagnostics.ConflictingEdgeIDs, e.ID)
			}
			continue
		}
		parentOf[e.Target] = e.Source
	}

	childrenOf := make(map[string][]string, len(nodes))
	for _, id := range order {
		if pid, ok := parentOf[id]; ok {
			childrenOf[pid] = append(childrenOf[pid], id)
		}
	}

	cycleSeen := make(map[string]bool)

	var build func(id string, level int, ancestors map[string]bool) *Node
	build = func(id string, level int, ancestors map[string]bool) *Node {
		src := byID[id]
		node := &Node{
			ID:            src.ID,
			Name:          src.Name,
			DisplayName:   src.Label(),
			Level:         level,
			ParentID:      parentOf[id],
			Attributes:    src.Attributes,
			InstanceCount: src.InstanceCount,
			Collapsed:     src.Collapsed,
		}
		ancestors[id] = true
		for _, childID := range childrenOf[id] {
			if ancestors[childID] {
				// Would revisit an ancestor: stop this branch.
				if !cycleSeen[childID] {
					cycleSeen[childID] = true
					forest.Diagnostics.CycleNodeIDs = append(forest.Diagnostics.CycleNodeIDs, childID)
				}
				continue
			}
			node.Children = append(node.Children, build(childID, level+1, ancestors))
		}
		delete(ancestors, id)
		return node
	}

	for _, id := range order {
		if _, hasParent := parentOf[id]; hasParent {
			continue
		}
		forest.Roots[id] = build(id, 0, make(map[string]bool))
	}

	// A fully cyclic component has no root at all; report its members so
	// the caller can surface them. They are intentionally not grafted
	// into the forest.
	if countForest(forest.Roots) < len(order) {
		inForest := make(map[string]bool, len(order))
		for _, root := range forest.Roots {
			markForest(root, inForest)
		}
		for _, id := range order {
			if !inForest[id] && !cycleSeen[id] {
				cycleSeen[id] = true
				forest.Diagnostics.CycleNodeIDs = append(forest.Diagnostics.CycleNodeIDs, id)
			}
		}
	}

	return forest
}

// RootNodes filters the snapshot down to nodes without a hierarchy parent.
// These are the only nodes positioned as top-level entities by the layout
// engine; descendants render inside their parent via Forest children.
func RootNodes(nodes []graph.Node, edges []graph.Edge) []graph.Node {
	hasParent := make(map[string]bool, len(nodes))
	ids := make(map[string]bool, len(nodes))
	for i := range nodes {
		ids[nodes[i].ID] = true
	}
	for i := range nodes {
		if pid := nodes[i].ParentID; pid != "" && ids[pid] {
			hasParent[nodes[i].ID] = true
		}
	}
	for i := range edges {
		e := &edges[i]
		if isHierarchyEdge(e) && ids[e.Source] && ids[e.Target] {
			hasParent[e.Target] = true
		}
	}

	var roots []graph.Node
	for i := range nodes {
		if !hasParent[nodes[i].ID] {
			roots = append(roots, nodes[i])
		}
	}
	return roots
}

// RootGraph projects the snapshot to layout input: root nodes plus the
// edges joining two roots. Edges touching a descendant are not positioned
// independently; they render inside the parent via Forest children.
func RootGraph(nodes []graph.Node, edges []graph.Edge) ([]graph.Node, []graph.Edge) {
	roots := RootNodes(nodes, edges)
	rootIDs := make(map[string]bool, len(roots))
	for i := range roots {
		rootIDs[roots[i].ID] = true
	}

	kept := make([]graph.Edge, 0, len(edges))
	for i := range edges {
		e := &edges[i]
		if rootIDs[e.Source] && rootIDs[e.Target] {
			kept = append(kept, *e)
		}
	}
	return roots, kept
}

// InstanceCounts sums instance counts per subtree, so a collapsed root can
// display the total number of instances beneath it.
func InstanceCounts(f *Forest) map[string]int {
	counts := make(map[string]int)
	var sum func(n *Node) int
	sum = func(n *Node) int {
		total := n.InstanceCount
		for _, child := range n.Children {
			total += sum(child)
		}
		counts[n.ID] = total
		return total
	}
	for _, root := range f.Roots {
		sum(root)
	}
	return counts
}

// EffectiveAttributes returns a node's own attributes prefixed by every
// ancestor's, nearest root first, preserving declaration order within each
// class. An attribute shadowed by a descendant of the same name is kept
// once, in the ancestor's slot, with the most-derived definition winning.
// Used by the class detail display to show inherited columns.
func EffectiveAttributes(f *Forest, nodeID string) []graph.Attribute {
	var chain []*Node
	var find func(n *Node, trail []*Node) []*Node
	find = func(n *Node, trail []*Node) []*Node {
		trail = append(trail, n)
		if n.ID == nodeID {
			out := make([]*Node, len(trail))
			copy(out, trail)
			return out
		}
		for _, child := range n.Children {
			if found := find(child, trail); found != nil {
				return found
			}
		}
		return nil
	}
	for _, root := range f.Roots {
		if found := find(root, nil); found != nil {
			chain = found
			break
		}
	}
	if chain == nil {
		return nil
	}

	seen := make(map[string]int)
	var attrs []graph.Attribute
	for _, n := range chain {
		for _, a := range n.Attributes {
			if i, dup := seen[a.Name]; dup {
				attrs[i] = a // most-derived definition wins in place
				continue
			}
			seen[a.Name] = len(attrs)
			attrs = append(attrs, a)
		}
	}
	return attrs
}

func isHierarchyEdge(e *graph.Edge) bool {
	if e.Kind == graph.KindHierarchy {
		return true
	}
	return hierarchyKeywords[strings.ToLower(strings.TrimSpace(e.Label))]
}

func countForest(roots map[string]*Node) int {
	total := 0
	var count func(n *Node)
	count = func(n *Node) {
		total++
		for _, c := range n.Children {
			count(c)
		}
	}
	for _, root := range roots {
		count(root)
	}
	return total
}

func markForest(n *Node, seen map[string]bool) {
	seen[n.ID] = true
	for _, c := range n.Children {
		markForest(c, seen)
	}
}
