package highlight

import (
	"reflect"
	"testing"

	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/graph"
)

var testNodes = []graph.Node{
	{ID: "a", Name: "orders"},
	{ID: "b", Name: "customers"},
	{ID: "c", Name: "payments"},
}

var testEdges = []graph.Edge{
	{ID: "ab", Source: "a", Target: "b"},
	{ID: "bc", Source: "b", Target: "c"},
}

func TestApply_DimsNonMatching(t *testing.T) {
	nodes, edges := Apply(testNodes, testEdges, NewOverlay([]string{"a", "b"}, nil, nil))

	if !nodes[0].Highlighted || !nodes[1].Highlighted || nodes[2].Highlighted {
		t.Errorf("unexpected highlight flags: %+v", nodes)
	}
	if nodes[0].Opacity != FullOpacity {
		t.Errorf("highlighted node should keep full opacity, got %v", nodes[0].Opacity)
	}
	if nodes[2].Opacity != DimmedOpacity {
		t.Errorf("non-matching node should dim, got %v", nodes[2].Opacity)
	}

	// ab has both endpoints highlighted; bc has only one.
	if !edges[0].Highlighted || !edges[0].Animated {
		t.Error("expected ab highlighted and animated")
	}
	if edges[1].Highlighted {
		t.Error("edge with a single matching endpoint must not highlight")
	}
	if edges[1].Opacity != DimmedOpacity {
		t.Errorf("expected bc dimmed, got %v", edges[1].Opacity)
	}
}

func TestApply_ExplicitEdgeHighlight(t *testing.T) {
	_, edges := Apply(testNodes, testEdges, NewOverlay(nil, []string{"bc"}, nil))
	if !edges[1].Highlighted {
		t.Error("explicitly highlighted edge id should light up")
	}
	if edges[0].Opacity != DimmedOpacity {
		t.Error("other edges should dim while a highlight is active")
	}
}

func TestApply_SelectionDoesNotDim(t *testing.T) {
	nodes, edges := Apply(testNodes, testEdges, NewOverlay(nil, nil, []string{"b"}))

	if !nodes[1].Selected {
		t.Error("expected b selected")
	}
	for _, n := range nodes {
		if n.Opacity != FullOpacity {
			t.Errorf("selection alone must not dim, got %v for %s", n.Opacity, n.ID)
		}
	}
	for _, e := range edges {
		if e.Opacity != FullOpacity {
			t.Errorf("selection alone must not dim edges, got %v", e.Opacity)
		}
	}
}

func TestClear_Idempotent(t *testing.T) {
	// Applying then clearing lands on the same baseline as clearing alone.
	Apply(testNodes, testEdges, NewOverlay([]string{"a"}, nil, nil))

	onceNodes, onceEdges := Clear(testNodes, testEdges)
	twiceNodes, twiceEdges := Clear(testNodes, testEdges)

	if !reflect.DeepEqual(onceNodes, twiceNodes) || !reflect.DeepEqual(onceEdges, twiceEdges) {
		t.Error("clearing must be idempotent")
	}
	for _, n := range onceNodes {
		if n.Highlighted || n.Selected || n.Opacity != FullOpacity {
			t.Errorf("clear left residual state: %+v", n)
		}
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	before := make([]graph.Node, len(testNodes))
	copy(before, testNodes)

	Apply(testNodes, testEdges, NewOverlay([]string{"a"}, nil, nil))

	if !reflect.DeepEqual(before, testNodes) {
		t.Error("Apply mutated the input snapshot")
	}
}

func TestMatchedNodeIDs_Sorted(t *testing.T) {
	o := NewOverlay([]string{"c", "a", "b"}, nil, nil)
	got := o.MatchedNodeIDs()
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("expected sorted ids, got %v", got)
	}

	if got := (Overlay{}).MatchedNodeIDs(); got == nil || len(got) != 0 {
		t.Errorf("empty overlay should yield an empty, non-nil slice, got %#v", got)
	}
}

func TestPathOverlay(t *testing.T) {
	overlay := PathOverlay([]string{"a", "b"})
	_, edges := Apply(testNodes, testEdges, overlay)
	if !edges[0].Highlighted {
		t.Error("expected edge on path highlighted")
	}
	if edges[1].Highlighted {
		t.Error("edge off path should not highlight")
	}
}

func TestMatchQuery_MetaFields(t *testing.T) {
	nodes := []graph.Node{
		{ID: "n1", Name: "customer_data", Meta: map[string]string{"category": "PII Data"}},
		{ID: "n2", Name: "weather"},
	}

	overlay := MatchQuery(nodes, "pii")
	if _, ok := overlay.NodeIDs["n1"]; !ok {
		t.Error("expected n1 matched via category meta field")
	}
	if _, ok := overlay.NodeIDs["n2"]; ok {
		t.Error("n2 should not match")
	}
}

func TestMatchQuery_NameAndID(t *testing.T) {
	overlay := MatchQuery(testNodes, "ORD")
	if _, ok := overlay.NodeIDs["a"]; !ok {
		t.Error("expected case-insensitive match on name")
	}

	overlay = MatchQuery(testNodes, "c")
	if len(overlay.NodeIDs) < 2 {
		t.Errorf("substring match should hit customers and c, got %v", overlay.NodeIDs)
	}
}

func TestMatchQuery_EmptyClearsNotMatchesAll(t *testing.T) {
	for _, q := range []string{"", "   "} {
		overlay := MatchQuery(testNodes, q)
		if overlay.Active() {
			t.Errorf("empty query %q must clear, not match everything", q)
		}
	}
}
