package graph

// Normalize returns a copy of nodes with all display defaults applied.
// This is the single place defaults are derived; downstream packages must
// not re-derive them.
//
// Applied defaults:
//   - DisplayName falls back to Name, then to "Unknown"
//   - negative InstanceCount is clamped to 0
//   - Collapsed is forced to true for nodes that have children or
//     instances; expansion state travels per request (expandedClassIDs),
//     never on the stored node
//
// The input slice is not modified.
func Normalize(nodes []Node) []Node {
	hasChildren := make(map[string]bool, len(nodes))
	for i := range nodes {
		if nodes[i].ParentID != "" {
			hasChildren[nodes[i].ParentID] = true
		}
	}

	out := make([]Node, len(nodes))
	for i, n := range nodes {
		if n.DisplayName == "" {
			n.DisplayName = n.Name
		}
		if n.DisplayName == "" {
			n.DisplayName = "Unknown"
		}
		if n.InstanceCount < 0 {
			n.InstanceCount = 0
		}
		if hasChildren[n.ID] || n.InstanceCount > 0 {
			n.Collapsed = true
		}
		out[i] = n
	}
	return out
}
