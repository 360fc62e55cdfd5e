package backend

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/graph"
	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/graph/analysis"
	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/store"
)

// Local serves lineage queries directly from the embedded store.
type Local struct {
	store  store.Store
	logger *slog.Logger
}

// NewLocal creates a store-backed service.
func NewLocal(st store.Store, logger *slog.Logger) *Local {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Local{store: st, logger: logger}
}

// GetLineageGraph reads the schema snapshot. Data-instance nodes are kept
// only for the expanded classes; the rest of the graph is classes and
// their relationships.
func (l *Local) GetLineageGraph(ctx context.Context, schemaID string, expandedClassIDs []string) (*LineageGraph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	schema, err := l.store.GetSchema(schemaID)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema %s: %w", schemaID, err)
	}
	nodes, edges, err := l.store.GetGraph(schemaID)
	if err != nil {
		return nil, fmt.Errorf("failed to load graph for schema %s: %w", schemaID, err)
	}

	expanded := make(map[string]bool, len(expandedClassIDs))
	for _, id := range expandedClassIDs {
		expanded[id] = true
	}

	kept := make([]graph.Node, 0, len(nodes))
	keptIDs := make(map[string]bool, len(nodes))
	for i := range nodes {
		n := &nodes[i]
		if n.Kind == graph.KindDataInstance && !expanded[n.ParentID] {
			continue
		}
		kept = append(kept, *n)
		keptIDs[n.ID] = true
	}

	keptEdges := make([]graph.Edge, 0, len(edges))
	for i := range edges {
		e := &edges[i]
		if keptIDs[e.Source] && keptIDs[e.Target] {
			keptEdges = append(keptEdges, *e)
		}
	}

	return &LineageGraph{
		Nodes: kept,
		Edges: keptEdges,
		Metadata: GraphMetadata{
			SchemaID:  schemaID,
			Version:   schema.Version,
			NodeCount: len(kept),
			EdgeCount: len(keptEdges),
		},
	}, nil
}

// FindPaths answers a trace query between consecutive node id pairs. All
// simple paths within maxDepth are collected; the shortest connection per
// pair seeds the highlighted node set, and edges joining two highlighted
// nodes make up the highlighted edge set.
func (l *Local) FindPaths(ctx context.Context, schemaID string, nodeIDs []string, maxDepth int) (*PathsResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if maxDepth <= 0 {
		maxDepth = DefaultPathDepth
	}
	nodes, edges, err := l.store.GetGraph(schemaID)
	if err != nil {
		return nil, fmt.Errorf("failed to load graph for schema %s: %w", schemaID, err)
	}

	result := &PathsResult{Paths: [][]string{}}
	highlighted := make(map[string]struct{})

	for i := 0; i+1 < len(nodeIDs); i++ {
		source, target := nodeIDs[i], nodeIDs[i+1]

		for _, path := range analysis.AllPaths(nodes, edges, source, target, maxDepth) {
			result.Paths = append(result.Paths, path)
		}
		// An unreachable pair is a valid empty answer, not an error.
		if shortest := analysis.ShortestPath(nodes, edges, source, target); shortest != nil {
			for _, id := range shortest {
				highlighted[id] = struct{}{}
			}
		}
	}

	for id := range highlighted {
		result.HighlightedNodes = append(result.HighlightedNodes, id)
	}
	sort.Strings(result.HighlightedNodes)
	for i := range edges {
		e := &edges[i]
		_, srcOK := highlighted[e.Source]
		_, tgtOK := highlighted[e.Target]
		if srcOK && tgtOK {
			result.HighlightedEdges = append(result.HighlightedEdges, e.ID)
		}
	}
	return result, nil
}

// GetSchemaStats proxies the store aggregation.
func (l *Local) GetSchemaStats(ctx context.Context, schemaID string) (*SchemaStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stats, err := l.store.GetStats(schemaID)
	if err != nil {
		return nil, fmt.Errorf("failed to load stats for schema %s: %w", schemaID, err)
	}
	return &SchemaStats{
		TotalClasses:       stats.TotalClasses,
		TotalRelationships: stats.TotalRelationships,
		TotalInstances:     stats.TotalInstances,
		InstancesByClass:   stats.InstancesByClass,
	}, nil
}
