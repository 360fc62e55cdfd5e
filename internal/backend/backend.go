// Package backend defines the lineage service boundary the dashboard
// consumes: fetching a schema's graph, answering path queries, and
// reporting schema statistics. Local serves these from the embedded
// store; Client proxies a remote deployment over HTTP with bounded
// retries. Either way, a failed call never hands partial data to the
// layout or analysis layers.
package backend

import (
	"context"

	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/graph"
)

// DefaultPathDepth bounds path enumeration when the caller does not say.
const DefaultPathDepth = 6

// LineageGraph is a full node/edge snapshot for one schema.
type LineageGraph struct {
	Nodes    []graph.Node  `json:"nodes"`
	Edges    []graph.Edge  `json:"edges"`
	Metadata GraphMetadata `json:"metadata"`
}

// GraphMetadata identifies the snapshot so the caller can detect when a
// cached layout is stale.
type GraphMetadata struct {
	SchemaID  string `json:"schemaId"`
	Version   int64  `json:"version"`
	NodeCount int    `json:"nodeCount"`
	EdgeCount int    `json:"edgeCount"`
}

// PathsResult is the answer to a path query: the discovered paths plus
// the node/edge id sets the highlight overlay should light up.
type PathsResult struct {
	Paths            [][]string `json:"paths"`
	HighlightedNodes []string   `json:"highlightedNodes"`
	HighlightedEdges []string   `json:"highlightedEdges"`
}

// SchemaStats mirrors store-level statistics at the service boundary.
type SchemaStats struct {
	TotalClasses       int            `json:"totalClasses"`
	TotalRelationships int            `json:"totalRelationships"`
	TotalInstances     int            `json:"totalInstances"`
	InstancesByClass   map[string]int `json:"instancesByClass"`
}

// Service is the lineage backend contract.
type Service interface {
	// GetLineageGraph returns the schema's graph. expandedClassIDs lists
	// classes whose data instances should be included; empty means
	// classes only.
	GetLineageGraph(ctx context.Context, schemaID string, expandedClassIDs []string) (*LineageGraph, error)

	// FindPaths enumerates paths between the given node ids (pairwise,
	// in order) up to maxDepth hops and returns the ids to highlight.
	FindPaths(ctx context.Context, schemaID string, nodeIDs []string, maxDepth int) (*PathsResult, error)

	// GetSchemaStats summarizes the schema.
	GetSchemaStats(ctx context.Context, schemaID string) (*SchemaStats, error)
}
