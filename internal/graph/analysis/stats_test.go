package analysis

import (
	"math"
	"testing"
)

func TestDegreeStats_HubsAndIsolated(t *testing.T) {
	nodes := makeNodes("hub", "a", "b", "c", "lonely")
	edges := makeEdges(
		[2]string{"hub", "a"},
		[2]string{"hub", "b"},
		[2]string{"c", "hub"},
		[2]string{"a", "b"},
	)

	stats := DegreeStats(nodes, edges, 0)

	if len(stats.HubNodes) == 0 || stats.HubNodes[0].ID != "hub" {
		t.Fatalf("expected hub first, got %v", stats.HubNodes)
	}
	if got := stats.HubNodes[0].Degree(); got != 3 {
		t.Errorf("expected hub degree 3, got %d", got)
	}
	if len(stats.IsolatedNodes) != 1 || stats.IsolatedNodes[0] != "lonely" {
		t.Errorf("expected lonely isolated, got %v", stats.IsolatedNodes)
	}
}

func TestDegreeStats_TopKAndStableTies(t *testing.T) {
	nodes := makeNodes("a", "b", "c", "d", "e", "f", "g")
	// Every node ends up with degree 1: three disjoint pairs plus one
	// self-contained pair member order tie.
	edges := makeEdges(
		[2]string{"a", "b"},
		[2]string{"c", "d"},
		[2]string{"e", "f"},
	)

	stats := DegreeStats(nodes, edges, 5)
	if len(stats.HubNodes) != 5 {
		t.Fatalf("expected top-5, got %d", len(stats.HubNodes))
	}
	// Equal degrees keep input node order.
	want := []string{"a", "b", "c", "d", "e"}
	for i, id := range want {
		if stats.HubNodes[i].ID != id {
			t.Errorf("hub %d: expected %s, got %s", i, id, stats.HubNodes[i].ID)
		}
	}
	if len(stats.IsolatedNodes) != 1 || stats.IsolatedNodes[0] != "g" {
		t.Errorf("expected g isolated, got %v", stats.IsolatedNodes)
	}
}

func TestClusteringCoefficient_Triangle(t *testing.T) {
	nodes := makeNodes("a", "b", "c")
	edges := makeEdges([2]string{"a", "b"}, [2]string{"a", "c"}, [2]string{"b", "c"})

	if got := ClusteringCoefficient("a", nodes, edges); got != 1.0 {
		t.Errorf("expected 1.0 for a closed triangle, got %v", got)
	}
}

func TestClusteringCoefficient_Open(t *testing.T) {
	// a's neighbors b and c are not connected to each other.
	nodes := makeNodes("a", "b", "c")
	edges := makeEdges([2]string{"a", "b"}, [2]string{"a", "c"})

	if got := ClusteringCoefficient("a", nodes, edges); got != 0 {
		t.Errorf("expected 0 for open wedge, got %v", got)
	}
}

func TestClusteringCoefficient_Partial(t *testing.T) {
	// a has neighbors b, c, d; only b-c connected: 1 of 3 pairs.
	nodes := makeNodes("a", "b", "c", "d")
	edges := makeEdges(
		[2]string{"a", "b"},
		[2]string{"a", "c"},
		[2]string{"a", "d"},
		[2]string{"b", "c"},
	)

	got := ClusteringCoefficient("a", nodes, edges)
	if math.Abs(got-1.0/3.0) > 1e-9 {
		t.Errorf("expected 1/3, got %v", got)
	}
}

func TestClusteringCoefficient_FewNeighbors(t *testing.T) {
	nodes := makeNodes("a", "b")
	edges := makeEdges([2]string{"a", "b"})

	if got := ClusteringCoefficient("a", nodes, edges); got != 0 {
		t.Errorf("expected 0 with fewer than two neighbors, got %v", got)
	}
	if got := ClusteringCoefficient("isolated", nodes, edges); got != 0 {
		t.Errorf("expected 0 for unknown node, got %v", got)
	}
}
