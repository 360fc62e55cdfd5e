package graph

import (
	"fmt"
	"strings"
)

// ValidationError reports structural problems in a graph. Offending ids are
// listed so the caller can surface them; it is up to the caller whether to
// reject the graph or exclude the listed edges from traversal.
type ValidationError struct {
	// DanglingEdges lists edge ids whose source or target references a
	// node that does not exist.
	DanglingEdges []string
	// ConflictingHierarchyEdges lists hierarchy edge ids whose target
	// node carries a ParentID different from the edge's source. ParentID
	// wins for tree building; the edge is reported, not guessed at.
	ConflictingHierarchyEdges []string
	// DuplicateNodeIDs lists node ids that appear more than once.
	DuplicateNodeIDs []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.DuplicateNodeIDs) > 0 {
		parts = append(parts, fmt.Sprintf("duplicate node ids: %s", strings.Join(e.DuplicateNodeIDs, ", ")))
	}
	if len(e.DanglingEdges) > 0 {
		parts = append(parts, fmt.Sprintf("dangling edges: %s", strings.Join(e.DanglingEdges, ", ")))
	}
	if len(e.ConflictingHierarchyEdges) > 0 {
		parts = append(parts, fmt.Sprintf("conflicting hierarchy edges: %s", strings.Join(e.ConflictingHierarchyEdges, ", ")))
	}
	return "invalid graph: " + strings.Join(parts, "; ")
}

// Validate checks node uniqueness, edge endpoint existence, and agreement
// between the two hierarchy encodings. Returns nil when the graph is
// structurally sound.
func Validate(nodes []Node, edges []Edge) error {
	byID := make(map[string]*Node, len(nodes))
	verr := &ValidationError{}

	for i := range nodes {
		if _, dup := byID[nodes[i].ID]; dup {
			verr.DuplicateNodeIDs = append(verr.DuplicateNodeIDs, nodes[i].ID)
			continue
		}
		byID[nodes[i].ID] = &nodes[i]
	}

	for i := range edges {
		e := &edges[i]
		_, srcOK := byID[e.Source]
		target, tgtOK := byID[e.Target]
		if !srcOK || !tgtOK {
			verr.DanglingEdges = append(verr.DanglingEdges, e.ID)
			continue
		}
		if e.Kind == KindHierarchy && target.ParentID != "" && target.ParentID != e.Source {
			verr.ConflictingHierarchyEdges = append(verr.ConflictingHierarchyEdges, e.ID)
		}
	}

	if len(verr.DanglingEdges) > 0 || len(verr.ConflictingHierarchyEdges) > 0 || len(verr.DuplicateNodeIDs) > 0 {
		return verr
	}
	return nil
}

// ExcludeInvalidEdges returns the edges that survived validation: dangling
// and conflicting edges reported by verr are dropped. Used to keep building
// a hierarchy or layout after reporting a malformed graph instead of
// failing it wholesale.
func ExcludeInvalidEdges(edges []Edge, verr *ValidationError) []Edge {
	if verr == nil {
		return edges
	}
	bad := make(map[string]bool, len(verr.DanglingEdges)+len(verr.ConflictingHierarchyEdges))
	for _, id := range verr.DanglingEdges {
		bad[id] = true
	}
	for _, id := range verr.ConflictingHierarchyEdges {
		bad[id] = true
	}
	out := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if !bad[e.ID] {
			out = append(out, e)
		}
	}
	return out
}
