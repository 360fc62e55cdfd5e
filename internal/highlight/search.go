package highlight

import (
	"strings"

	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/graph"
)

// searchMetaFields is the fixed list of Meta keys consulted by search, in
// addition to the node's label, id, and name.
var searchMetaFields = []string{
	"code",
	"region",
	"type",
	"category",
	"classification",
	"sensitivity",
	"dataType",
	"owner",
	"group",
}

// MatchQuery returns an overlay highlighting every node whose label, id,
// name, or classification metadata contains the query as a
// case-insensitive substring. An empty (or all-whitespace) query returns
// an empty overlay, which clears highlighting rather than matching
// everything.
func MatchQuery(nodes []graph.Node, query string) Overlay {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return Overlay{}
	}

	matched := make(map[string]struct{})
	for i := range nodes {
		if nodeMatches(&nodes[i], query) {
			matched[nodes[i].ID] = struct{}{}
		}
	}
	if len(matched) == 0 {
		return Overlay{}
	}
	return Overlay{NodeIDs: matched}
}

func nodeMatches(n *graph.Node, query string) bool {
	for _, field := range []string{n.Label(), n.ID, n.Name} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	for _, key := range searchMetaFields {
		if v, ok := n.Meta[key]; ok && strings.Contains(strings.ToLower(v), query) {
			return true
		}
	}
	return false
}
