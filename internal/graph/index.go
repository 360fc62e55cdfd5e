package graph

// Index is a derived adjacency view over a node/edge snapshot. It is built
// once per snapshot and never written back; callers must not mutate the
// snapshot while an Index over it is in use.
type Index struct {
	nodes    map[string]*Node
	order    []string // node ids in input order
	outgoing map[string][]*Edge
	incoming map[string][]*Edge
}

// NewIndex builds an adjacency index. Edges referencing unknown nodes are
// skipped; run Validate first to surface them.
func NewIndex(nodes []Node, edges []Edge) *Index {
	idx := &Index{
		nodes:    make(map[string]*Node, len(nodes)),
		order:    make([]string, 0, len(nodes)),
		outgoing: make(map[string][]*Edge, len(nodes)),
		incoming: make(map[string][]*Edge, len(nodes)),
	}
	for i := range nodes {
		n := &nodes[i]
		if _, exists := idx.nodes[n.ID]; exists {
			continue
		}
		idx.nodes[n.ID] = n
		idx.order = append(idx.order, n.ID)
	}
	for i := range edges {
		e := &edges[i]
		if _, ok := idx.nodes[e.Source]; !ok {
			continue
		}
		if _, ok := idx.nodes[e.Target]; !ok {
			continue
		}
		idx.outgoing[e.Source] = append(idx.outgoing[e.Source], e)
		idx.incoming[e.Target] = append(idx.incoming[e.Target], e)
	}
	return idx
}

// Node returns the node with the given id.
func (idx *Index) Node(id string) (*Node, bool) {
	n, ok := idx.nodes[id]
	return n, ok
}

// NodeIDs returns all node ids in input order.
func (idx *Index) NodeIDs() []string {
	return idx.order
}

// Outgoing returns edges whose source is id.
func (idx *Index) Outgoing(id string) []*Edge {
	return idx.outgoing[id]
}

// Incoming returns edges whose target is id.
func (idx *Index) Incoming(id string) []*Edge {
	return idx.incoming[id]
}

// Degree returns in-degree plus out-degree of id.
func (idx *Index) Degree(id string) int {
	return len(idx.incoming[id]) + len(idx.outgoing[id])
}

// Neighbors returns the distinct ids adjacent to id, ignoring direction,
// in first-seen edge order. The node itself is never included.
func (idx *Index) Neighbors(id string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(other string) {
		if other != id && !seen[other] {
			seen[other] = true
			out = append(out, other)
		}
	}
	for _, e := range idx.outgoing[id] {
		add(e.Target)
	}
	for _, e := range idx.incoming[id] {
		add(e.Source)
	}
	return out
}

// NodeCount returns the number of distinct nodes.
func (idx *Index) NodeCount() int {
	return len(idx.order)
}
