package graph

import (
	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/backend"
	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/hierarchy"
	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/highlight"
	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/layout"
	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/store"
)

// SchemaListResponse lists the available schemas.
type SchemaListResponse struct {
	Schemas []*store.Schema `json:"schemas"`
}

// GraphResponse is a render-ready graph snapshot: nodes and edges carry
// highlight decorations (full opacity unless an overlay is active), and
// Hierarchy holds the rooted forest so descendants can render inside
// their parent node.
type GraphResponse struct {
	Nodes     []highlight.Node           `json:"nodes"`
	Edges     []highlight.Edge           `json:"edges"`
	Hierarchy map[string]*hierarchy.Node `json:"hierarchy,omitempty"`
	Metadata  backend.GraphMetadata      `json:"metadata"`
}

// LayoutResponse carries one completed layout pass. Generation ties the
// response to the request that asked for it; clients drop responses whose
// generation is older than the last one they applied.
type LayoutResponse struct {
	Strategy   layout.Strategy `json:"strategy"`
	Generation int64           `json:"generation"`
	layout.Result

	// ExcludedEdges lists edge ids dropped from the pass because an
	// endpoint was missing.
	ExcludedEdges []string `json:"excludedEdges,omitempty"`
}

// HighlightResponse decorates the graph for a search query, plus the ids
// that matched so the client can populate a result list.
type HighlightResponse struct {
	Query   string           `json:"query"`
	Matches []string         `json:"matches"`
	Nodes   []highlight.Node `json:"nodes"`
	Edges   []highlight.Edge `json:"edges"`
}

// UpdateSignal is the SSE payload pushed when a schema's stored graph
// changes; clients re-fetch the graph and recompute layout.
type UpdateSignal struct {
	SchemaID string `json:"schemaId"`
	Name     string `json:"schemaName"`
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error string `json:"error"`
}
