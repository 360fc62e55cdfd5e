package analysis

import "github.com/Joseph-k-iype/datavisual-graph-sub000/internal/graph"

// DefaultHubCount is the number of hub nodes DegreeStats reports.
const DefaultHubCount = 5

// Hub is a node ranked by total degree.
type Hub struct {
	ID        string `json:"id"`
	InDegree  int    `json:"inDegree"`
	OutDegree int    `json:"outDegree"`
}

// Degree returns in-degree plus out-degree.
func (h Hub) Degree() int { return h.InDegree + h.OutDegree }

// DegreeStatsResult summarizes connectivity of a graph.
type DegreeStatsResult struct {
	// HubNodes holds the top-k nodes by total degree; ties keep input
	// node order.
	HubNodes []Hub `json:"hubNodes"`
	// IsolatedNodes lists nodes with no edges at all, in input order.
	IsolatedNodes []string `json:"isolatedNodes"`
}

// DegreeStats computes hub and isolation statistics in a single pass over
// the edge list. topK <= 0 selects DefaultHubCount.
func DegreeStats(nodes []graph.Node, edges []graph.Edge, topK int) DegreeStatsResult {
	if topK <= 0 {
		topK = DefaultHubCount
	}

	in := make(map[string]int, len(nodes))
	out := make(map[string]int, len(nodes))
	for i := range edges {
		out[edges[i].Source]++
		in[edges[i].Target]++
	}

	hubs := make([]Hub, 0, len(nodes))
	var isolated []string
	for i := range nodes {
		id := nodes[i].ID
		h := Hub{ID: id, InDegree: in[id], OutDegree: out[id]}
		if h.Degree() == 0 {
			isolated = append(isolated, id)
			continue
		}
		hubs = append(hubs, h)
	}

	// Stable insertion sort by descending degree: equal-degree nodes stay
	// in input order.
	for i := 1; i < len(hubs); i++ {
		for j := i; j > 0 && hubs[j].Degree() > hubs[j-1].Degree(); j-- {
			hubs[j], hubs[j-1] = hubs[j-1], hubs[j]
		}
	}
	if len(hubs) > topK {
		hubs = hubs[:topK]
	}

	return DegreeStatsResult{HubNodes: hubs, IsolatedNodes: isolated}
}

// ClusteringCoefficient computes the local clustering coefficient of a
// node: the fraction of its neighbor pairs that are themselves connected
// by an edge in either direction. Returns 0 when the node has fewer than
// two neighbors, by definition rather than as an error.
func ClusteringCoefficient(nodeID string, nodes []graph.Node, edges []graph.Edge) float64 {
	idx := graph.NewIndex(nodes, edges)
	neighbors := idx.Neighbors(nodeID)
	if len(neighbors) < 2 {
		return 0
	}

	inSet := make(map[string]bool, len(neighbors))
	for _, id := range neighbors {
		inSet[id] = true
	}

	// Count distinct connected neighbor pairs, ignoring edge direction.
	linked := make(map[[2]string]bool)
	for i := range edges {
		e := &edges[i]
		if e.Source == e.Target || !inSet[e.Source] || !inSet[e.Target] {
			continue
		}
		a, b := e.Source, e.Target
		if a > b {
			a, b = b, a
		}
		linked[[2]string{a, b}] = true
	}

	n := float64(len(neighbors))
	possible := n * (n - 1) / 2
	return float64(len(linked)) / possible
}
